package main

import (
	"context"
	"encoding/json"
	"fmt"

	"wellspring/internal/catalog"
	"wellspring/internal/quiz"
	"wellspring/internal/share"
	"wellspring/internal/stats"

	"github.com/spf13/cobra"
)

var (
	statsJSON  bool
	statsShare bool
	statsYes   bool
)

// statsCmd shows mood statistics
var statsCmd = &cobra.Command{
	Use:   "stats",
	Short: "Show your personality type and mood statistics",
	Args:  cobra.NoArgs,
	RunE:  runStats,
}

var statsResetCmd = &cobra.Command{
	Use:   "reset",
	Short: "Remove every recorded mood",
	Args:  cobra.NoArgs,
	RunE:  runStatsReset,
}

func init() {
	statsCmd.Flags().BoolVar(&statsJSON, "json", false, "Print as JSON")
	statsCmd.Flags().BoolVar(&statsShare, "share", false, "Share your statistics")
	statsResetCmd.Flags().BoolVarP(&statsYes, "yes", "y", false, "Don't ask for confirmation")
	statsCmd.AddCommand(statsResetCmd)
}

// statsReport is the --json shape.
type statsReport struct {
	Personality  quiz.Personality `json:"personality"`
	HasProfile   bool             `json:"has_profile"`
	TotalRituals int              `json:"total_rituals"`
	Percent      map[string]int   `json:"percent"`
	Counts       map[string]int   `json:"counts"`
	Skipped      int              `json:"skipped,omitempty"`
}

func newStatsReport(d stats.Dashboard) statsReport {
	r := statsReport{
		Personality:  d.Profile,
		HasProfile:   d.HasProfile,
		TotalRituals: d.Summary.TotalRituals,
		Percent:      make(map[string]int, len(catalog.Categories)),
		Counts:       make(map[string]int, len(catalog.Categories)),
		Skipped:      d.Skipped,
	}
	for _, c := range catalog.Categories {
		r.Percent[string(c)] = d.Summary.Percent(c)
		r.Counts[string(c)] = d.Summary.Counts[c]
	}
	return r
}

func runStats(cmd *cobra.Command, args []string) error {
	ctx := context.Background()
	out := cmd.OutOrStdout()

	a, err := openApp(ctx)
	if err != nil {
		return err
	}
	defer a.Close()

	d, err := a.stats.Load(ctx)
	if err != nil {
		return fmt.Errorf("failed to load statistics: %w", err)
	}

	if statsJSON {
		enc := json.NewEncoder(out)
		enc.SetIndent("", "  ")
		return enc.Encode(newStatsReport(d))
	}

	desc := quiz.Describe(d.Profile)
	fmt.Fprintf(out, "You are a %s\n", desc.Title)
	if !d.HasProfile {
		fmt.Fprintln(out, "  (take the quiz to find your type: well quiz)")
	}
	fmt.Fprintln(out)
	for _, c := range catalog.Categories {
		fmt.Fprintf(out, "  %-9s %3d%%\n", c.Short(), d.Summary.Percent(c))
	}
	fmt.Fprintf(out, "\n%d rituals completed\n", d.Summary.TotalRituals)
	if d.Skipped > 0 {
		fmt.Fprintf(out, "%d unreadable entries skipped\n", d.Skipped)
	}

	if statsShare {
		_, _ = share.Send(ctx, a.sharer, share.Payload{Message: stats.ShareText(d.Summary)}, a.shareLog())
	}
	return nil
}

func runStatsReset(cmd *cobra.Command, args []string) error {
	ctx := context.Background()
	out := cmd.OutOrStdout()

	if !statsYes {
		ok, err := newPrompter(cmd.InOrStdin(), out).confirm("Remove every recorded mood?")
		if err != nil || !ok {
			fmt.Fprintln(out, "Nothing removed.")
			return nil
		}
	}

	a, err := openApp(ctx)
	if err != nil {
		return err
	}
	defer a.Close()

	n, err := a.stats.Reset(ctx)
	if err != nil {
		return fmt.Errorf("failed to reset statistics: %w", err)
	}
	fmt.Fprintf(out, "Removed %d mood entries.\n", n)
	return nil
}
