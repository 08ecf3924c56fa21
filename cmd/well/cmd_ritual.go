package main

import (
	"context"
	"errors"
	"fmt"
	"io"
	"os/signal"
	"syscall"
	"time"

	"wellspring/internal/catalog"
	"wellspring/internal/choreo"
	"wellspring/internal/config"
	"wellspring/internal/ritual"
	"wellspring/internal/share"

	"github.com/spf13/cobra"
)

var (
	ritualDuration time.Duration
	ritualMood     string
	ritualSave     bool
	ritualShare    bool
)

// ritualCmd runs today's ritual in line mode
var ritualCmd = &cobra.Command{
	Use:   "ritual",
	Short: "Walk through today's ritual in the terminal",
	Long: `Draws a task and runs its countdown, then shows an affirmation and
records how you feel.

Examples:
  well ritual
  well ritual --duration 30s --mood grounded --save`,
	Args: cobra.NoArgs,
	RunE: runRitual,
}

func init() {
	ritualCmd.Flags().DurationVar(&ritualDuration, "duration", 0, "Task countdown length (default from config)")
	ritualCmd.Flags().StringVar(&ritualMood, "mood", "", "Mood to record: grounded, driven or flow (prompted when empty)")
	ritualCmd.Flags().BoolVar(&ritualSave, "save", false, "Save the affirmation")
	ritualCmd.Flags().BoolVar(&ritualShare, "share", false, "Share the affirmation")
}

func runRitual(cmd *cobra.Command, args []string) error {
	ctx, stop := signal.NotifyContext(context.Background(), syscall.SIGINT, syscall.SIGTERM)
	defer stop()
	out := cmd.OutOrStdout()

	var mood catalog.Category
	if ritualMood != "" {
		var err error
		if mood, err = catalog.ParseCategory(ritualMood); err != nil {
			return err
		}
	}
	if cfg == nil {
		cfg = config.DefaultConfig()
	}
	if ritualDuration > 0 {
		cfg.Ritual.TaskDuration = ritualDuration.String()
	}

	a, err := openApp(ctx)
	if err != nil {
		return err
	}
	defer a.Close()

	e := a.ritual
	s := e.NewSession()
	fmt.Fprintf(out, "Today's task (%s)\n  %s\n\n", s.Task.Category.Label(), s.Task.Text)

	if err := countdown(ctx, out, e, s); err != nil {
		return err
	}
	if err := e.CompleteTask(s); err != nil {
		return err
	}

	fmt.Fprintf(out, "\nYour affirmation\n  “%s”\n", s.Affirmation)
	if ritualSave {
		added, err := e.SaveAffirmation(ctx, s)
		switch {
		case err != nil:
			fmt.Fprintf(out, "Warning: couldn't save the affirmation: %v\n", err)
		case added:
			fmt.Fprintln(out, "Saved to your affirmations.")
		default:
			fmt.Fprintln(out, "Already in your saved affirmations.")
		}
	}
	if ritualShare {
		text, _ := s.ShareText()
		_, _ = share.Send(ctx, a.sharer, share.Payload{Message: text}, a.shareLog())
	}

	if err := e.BeginMoodSelection(s); err != nil {
		return err
	}
	if mood == "" {
		fmt.Fprintln(out, "\nHow are you feeling right now?")
		labels := make([]string, len(catalog.Categories))
		for i, c := range catalog.Categories {
			labels[i] = c.Label()
		}
		idx, err := newPrompter(cmd.InOrStdin(), out).choose(labels)
		if err != nil {
			return err
		}
		mood = catalog.Categories[idx]
	}
	if err := e.SelectMood(s, mood); err != nil {
		return err
	}
	if err := e.ConfirmMood(ctx, s); err != nil {
		fmt.Fprintf(out, "Warning: couldn't save today's mood: %v\n", err)
	}

	fmt.Fprintf(out, "\nRitual complete. Today you felt %s.\n", s.Mood.Label())
	return nil
}

// countdown runs the task timer to zero, printing the remaining time as it goes.
func countdown(ctx context.Context, out io.Writer, e *ritual.Engine, s *ritual.Session) error {
	token, err := e.StartTimer(s)
	if err != nil {
		return err
	}

	interval := min(time.Second, s.Duration)
	count := int((s.Duration + interval - 1) / interval)
	ticks := make(chan struct{}, count)
	tl := choreo.Play(choreo.Ticks(interval, count, func(int) any { return nil }), func(choreo.Step) {
		ticks <- struct{}{}
	})
	defer tl.Stop()

	fmt.Fprintf(out, "⏳ %s", ritual.FormatRemaining(s.Remaining))
	for !s.TaskReady {
		select {
		case <-ctx.Done():
			fmt.Fprintln(out)
			return ctx.Err()
		case <-ticks:
			e.Tick(s, token, interval)
			fmt.Fprintf(out, "\r⏳ %s", ritual.FormatRemaining(s.Remaining))
		case <-tl.Done():
			if len(ticks) == 0 && !s.TaskReady {
				return errors.New("countdown ended early")
			}
		}
	}
	fmt.Fprintln(out, "  done!")
	return nil
}
