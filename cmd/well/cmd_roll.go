package main

import (
	"context"
	"errors"
	"fmt"
	"io"
	"os/signal"
	"strings"
	"syscall"
	"time"

	"wellspring/internal/gallery"
	"wellspring/internal/roll"
	"wellspring/internal/share"

	"github.com/spf13/cobra"
)

var (
	rollUntilWin  bool
	rollFast      bool
	rollSaveImage bool
	rollShare     bool
)

// rollCmd spins the reward reels
var rollCmd = &cobra.Command{
	Use:   "roll",
	Short: "Spin the daily reward reels",
	Long: `Spins three reels. Three matching symbols win a prize:

  lotus  a short motivational story
  flame  a wallpaper for the roll screen
  wave   an abstract image you can save to your gallery

If a roll misses, the next one is guaranteed to win.`,
	Args: cobra.NoArgs,
	RunE: runRoll,
}

func init() {
	rollCmd.Flags().BoolVar(&rollUntilWin, "until-win", false, "Keep rolling until a prize is won")
	rollCmd.Flags().BoolVar(&rollFast, "fast", false, "Skip the reel animation delays")
	rollCmd.Flags().BoolVar(&rollSaveImage, "save-image", false, "Save a won abstract image to the gallery")
	rollCmd.Flags().BoolVar(&rollShare, "share", false, "Share a won story")
}

func runRoll(cmd *cobra.Command, args []string) error {
	ctx, stop := signal.NotifyContext(context.Background(), syscall.SIGINT, syscall.SIGTERM)
	defer stop()
	out := cmd.OutOrStdout()

	a, err := openApp(ctx)
	if err != nil {
		return err
	}
	defer a.Close()

	offsets := a.cfg.GetSettleOffsets()
	if rollFast {
		offsets = [roll.NumReels]time.Duration{0, time.Millisecond, 2 * time.Millisecond}
	}

	for {
		final, err := spinOnce(ctx, out, a.roll, offsets)
		if err != nil {
			return err
		}
		if final.Win {
			return showPrize(ctx, out, a, *final.Prize)
		}
		fmt.Fprintln(out, "So close! Try again.")
		if !rollUntilWin {
			return nil
		}
	}
}

// spinOnce starts a spin and prints each reel as it stops.
func spinOnce(ctx context.Context, out io.Writer, e *roll.Engine, offsets [roll.NumReels]time.Duration) (roll.Settlement, error) {
	spin, err := e.Start()
	if err != nil {
		return roll.Settlement{}, err
	}
	faces := make([]string, 0, roll.NumReels)
	fmt.Fprint(out, "Rolling… ")
	return e.Run(ctx, spin, offsets, func(st roll.Settlement) {
		faces = append(faces, st.Symbol.Glyph())
		fmt.Fprintf(out, "\rRolling… %s", strings.Join(faces, " "))
		if st.Final {
			fmt.Fprintln(out)
		}
	})
}

func showPrize(ctx context.Context, out io.Writer, a *app, p roll.Prize) error {
	fmt.Fprintf(out, "You won! %s\n\n", p.Title())

	switch p.Kind {
	case roll.PrizeStory:
		fmt.Fprintf(out, "%s\n", roll.StoryText)
		if rollShare {
			_, _ = share.Send(ctx, a.sharer, share.Payload{Title: roll.StoryShareTitle, Message: roll.StoryShareMessage}, a.shareLog())
		}

	case roll.PrizeWallpaper:
		if err := a.roll.ApplyWallpaper(); err != nil {
			return err
		}
		fmt.Fprintln(out, "A new wallpaper is on your roll screen.")

	case roll.PrizeAbstract:
		fmt.Fprintf(out, "%q\n", gallery.Names[p.AbstractIndex%gallery.Count])
		if !rollSaveImage {
			fmt.Fprintln(out, "Run with --save-image to keep it.")
			return nil
		}
		path, err := a.gallery.Save(ctx, p.AbstractIndex)
		var perm *gallery.PermissionError
		switch {
		case errors.As(err, &perm):
			fmt.Fprintf(out, "Couldn't save the image. %s\n", perm.Remedy)
		case err != nil:
			return fmt.Errorf("failed to save image: %w", err)
		default:
			fmt.Fprintf(out, "Saved to %s\n", path)
		}
	}
	return nil
}
