package main

import (
	"context"
	"fmt"
	"strconv"

	"wellspring/internal/journal"
	"wellspring/internal/ritual"
	"wellspring/internal/share"

	"github.com/spf13/cobra"
)

var savedYes bool

// savedCmd manages saved affirmations
var savedCmd = &cobra.Command{
	Use:   "saved",
	Short: "Manage your saved affirmations",
}

var savedListCmd = &cobra.Command{
	Use:   "list",
	Short: "List saved affirmations",
	Args:  cobra.NoArgs,
	RunE:  runSavedList,
}

var savedRemoveCmd = &cobra.Command{
	Use:   "remove [n]",
	Short: "Remove the n-th saved affirmation (as numbered by list)",
	Args:  cobra.ExactArgs(1),
	RunE:  runSavedRemove,
}

var savedClearCmd = &cobra.Command{
	Use:   "clear",
	Short: "Remove every saved affirmation",
	Args:  cobra.NoArgs,
	RunE:  runSavedClear,
}

var savedShareCmd = &cobra.Command{
	Use:   "share [n]",
	Short: "Share the n-th saved affirmation",
	Args:  cobra.ExactArgs(1),
	RunE:  runSavedShare,
}

func init() {
	savedClearCmd.Flags().BoolVarP(&savedYes, "yes", "y", false, "Don't ask for confirmation")
	savedCmd.AddCommand(savedListCmd, savedRemoveCmd, savedClearCmd, savedShareCmd)
}

// pickSaved resolves a 1-based list position.
func pickSaved(ctx context.Context, v *journal.AffirmationVault, arg string) (journal.SavedAffirmation, error) {
	n, err := strconv.Atoi(arg)
	if err != nil {
		return journal.SavedAffirmation{}, fmt.Errorf("invalid number %q", arg)
	}
	list, err := v.List(ctx)
	if err != nil {
		return journal.SavedAffirmation{}, fmt.Errorf("failed to list saved affirmations: %w", err)
	}
	if n < 1 || n > len(list) {
		return journal.SavedAffirmation{}, fmt.Errorf("no saved affirmation %d (have %d)", n, len(list))
	}
	return list[n-1], nil
}

func runSavedList(cmd *cobra.Command, args []string) error {
	ctx := context.Background()
	out := cmd.OutOrStdout()

	a, err := openApp(ctx)
	if err != nil {
		return err
	}
	defer a.Close()

	list, err := a.vault.List(ctx)
	if err != nil {
		return fmt.Errorf("failed to list saved affirmations: %w", err)
	}
	if len(list) == 0 {
		fmt.Fprintln(out, "No saved affirmations yet.")
		return nil
	}
	for i, s := range list {
		if s.SavedAt.IsZero() {
			fmt.Fprintf(out, "%2d. %s\n", i+1, s.Text)
		} else {
			fmt.Fprintf(out, "%2d. %s  (%s)\n", i+1, s.Text, s.SavedAt.Local().Format("Jan 2, 2006"))
		}
	}
	return nil
}

func runSavedRemove(cmd *cobra.Command, args []string) error {
	ctx := context.Background()

	a, err := openApp(ctx)
	if err != nil {
		return err
	}
	defer a.Close()

	s, err := pickSaved(ctx, a.vault, args[0])
	if err != nil {
		return err
	}
	if _, err := a.vault.Delete(ctx, s.Text); err != nil {
		return fmt.Errorf("failed to remove affirmation: %w", err)
	}
	fmt.Fprintf(cmd.OutOrStdout(), "Removed “%s”.\n", s.Text)
	return nil
}

func runSavedClear(cmd *cobra.Command, args []string) error {
	ctx := context.Background()
	out := cmd.OutOrStdout()

	if !savedYes {
		ok, err := newPrompter(cmd.InOrStdin(), out).confirm("Remove every saved affirmation?")
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

	if err := a.vault.Clear(ctx); err != nil {
		return fmt.Errorf("failed to clear saved affirmations: %w", err)
	}
	fmt.Fprintln(out, "Cleared your saved affirmations.")
	return nil
}

func runSavedShare(cmd *cobra.Command, args []string) error {
	ctx := context.Background()

	a, err := openApp(ctx)
	if err != nil {
		return err
	}
	defer a.Close()

	s, err := pickSaved(ctx, a.vault, args[0])
	if err != nil {
		return err
	}
	_, err = share.Send(ctx, a.sharer, share.Payload{Message: ritual.AffirmationShareText(s.Text)}, a.shareLog())
	return err
}
