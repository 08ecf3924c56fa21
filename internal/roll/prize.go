package roll

import "fmt"

// Symbol is a reel face.
type Symbol int

const (
	Lotus Symbol = iota
	Flame
	Wave
)

// NumSymbols is the number of distinct reel faces.
const NumSymbols = 3

// Symbols lists every reel face in index order.
var Symbols = []Symbol{Lotus, Flame, Wave}

func (s Symbol) String() string {
	switch s {
	case Lotus:
		return "lotus"
	case Flame:
		return "flame"
	case Wave:
		return "wave"
	}
	return fmt.Sprintf("symbol(%d)", int(s))
}

// Glyph is the terminal rendering of s.
func (s Symbol) Glyph() string {
	switch s {
	case Lotus:
		return "🪷"
	case Flame:
		return "🔥"
	case Wave:
		return "🌊"
	}
	return "?"
}

// PrizeKind is what a winning roll awards.
type PrizeKind string

const (
	PrizeStory     PrizeKind = "story"
	PrizeWallpaper PrizeKind = "wallpaper"
	PrizeAbstract  PrizeKind = "abstract"
)

// NumAbstractImages is the size of the abstract artwork set.
const NumAbstractImages = 3

// Prize is the award for a win.
type Prize struct {
	Kind          PrizeKind
	Symbol        Symbol // the matched symbol
	AbstractIndex int    // which abstract image, for PrizeAbstract
}

// Title is the prize card heading.
func (p Prize) Title() string {
	switch p.Kind {
	case PrizeStory:
		return StoryTitle
	case PrizeWallpaper:
		return "WALLPAPERS"
	}
	return "ABSTRACT IMAGE"
}

// KindFor maps a matched symbol to its prize kind.
func KindFor(s Symbol) PrizeKind {
	switch s {
	case Lotus:
		return PrizeStory
	case Flame:
		return PrizeWallpaper
	}
	return PrizeAbstract
}

// The story prize.
const (
	StoryTitle = "THE LAST PUSH"
	StoryText  = "A young swimmer trained for years to cross a cold, rough channel. " +
		"On the final swim, fog surrounded her. She gave up. " +
		"Later she learned — she was only 500 meters from the finish. " +
		"One week later, she tried again — same fog — but this time she finished. " +
		"Success often comes one step after you feel like quitting."

	StoryShareTitle   = "Motivational Story: The Last Push"
	StoryShareMessage = `Read this inspiring story: "The Last Push" - A young swimmer trained for years... ` +
		"Success often comes one step after you feel like quitting."
)
