// Package gallery draws the abstract prize artwork and saves it to disk.
package gallery

import (
	"image"
	"image/color"
	"math"

	"github.com/fogleman/gg"
)

// Count is the number of abstract compositions.
const Count = 3

// Names are the display names of the compositions, by index.
var Names = [Count]string{"Dawn Bloom", "Ember Rings", "Tide Lines"}

type palette struct {
	bgTop, bgBottom color.RGBA
	accents         []color.RGBA
}

var palettes = [Count]palette{
	{
		bgTop:    color.RGBA{0xFF, 0xE3, 0xD8, 0xFF},
		bgBottom: color.RGBA{0xB8, 0x8B, 0xD9, 0xFF},
		accents: []color.RGBA{
			{0xFF, 0x9E, 0xAA, 0xB0},
			{0xFF, 0xD1, 0x66, 0xA0},
			{0x7B, 0x5E, 0xA7, 0x90},
		},
	},
	{
		bgTop:    color.RGBA{0x2B, 0x10, 0x2F, 0xFF},
		bgBottom: color.RGBA{0xC0, 0x39, 0x2B, 0xFF},
		accents: []color.RGBA{
			{0xF3, 0x9C, 0x12, 0xC0},
			{0xE6, 0x7E, 0x22, 0x90},
			{0xFF, 0xF1, 0xC1, 0x70},
		},
	},
	{
		bgTop:    color.RGBA{0xD6, 0xF5, 0xF7, 0xFF},
		bgBottom: color.RGBA{0x1B, 0x4F, 0x72, 0xFF},
		accents: []color.RGBA{
			{0x48, 0xC9, 0xB0, 0xB0},
			{0x2E, 0x86, 0xC1, 0xA0},
			{0xFF, 0xFF, 0xFF, 0x80},
		},
	},
}

// Render draws composition index (modulo Count) at w x h.
func Render(index, w, h int) image.Image {
	if w <= 0 || h <= 0 {
		w, h = 1080, 1920
	}
	index = ((index % Count) + Count) % Count
	p := palettes[index]

	dc := gg.NewContext(w, h)
	grad := gg.NewLinearGradient(0, 0, 0, float64(h))
	grad.AddColorStop(0, p.bgTop)
	grad.AddColorStop(1, p.bgBottom)
	dc.SetFillStyle(grad)
	dc.DrawRectangle(0, 0, float64(w), float64(h))
	dc.Fill()

	switch index {
	case 0:
		drawBloom(dc, p, float64(w), float64(h))
	case 1:
		drawRings(dc, p, float64(w), float64(h))
	default:
		drawTides(dc, p, float64(w), float64(h))
	}
	return dc.Image()
}

// petals around the centre
func drawBloom(dc *gg.Context, p palette, w, h float64) {
	cx, cy := w/2, h/2
	r := math.Min(w, h) / 4
	for i := 0; i < 12; i++ {
		dc.Push()
		dc.RotateAbout(gg.Radians(float64(i)*30), cx, cy)
		dc.SetColor(p.accents[i%len(p.accents)])
		dc.DrawEllipse(cx, cy-r, r/3, r)
		dc.Fill()
		dc.Pop()
	}
	dc.SetColor(p.accents[1])
	dc.DrawCircle(cx, cy, r/3)
	dc.Fill()
}

func drawRings(dc *gg.Context, p palette, w, h float64) {
	cx, cy := w/2, h*0.6
	maxR := math.Min(w, h) / 2
	for i := 8; i > 0; i-- {
		dc.SetColor(p.accents[i%len(p.accents)])
		dc.SetLineWidth(maxR / 20)
		dc.DrawCircle(cx, cy, maxR*float64(i)/8)
		dc.Stroke()
	}
}

func drawTides(dc *gg.Context, p palette, w, h float64) {
	bands := 9
	for b := 0; b < bands; b++ {
		y0 := h * float64(b+1) / float64(bands+1)
		amp := h / 40
		dc.SetColor(p.accents[b%len(p.accents)])
		dc.SetLineWidth(h / 60)
		dc.MoveTo(0, y0)
		for x := 0.0; x <= w; x += w / 60 {
			dc.LineTo(x, y0+amp*math.Sin(x/w*4*math.Pi+float64(b)))
		}
		dc.Stroke()
	}
}
