package cmd

import (
	"fmt"
	"strings"

	"github.com/spf13/cobra"
)

var deckCmd = &cobra.Command{
	Use:   "deck",
	Short: "Inspect slide decks",
}

var deckValidateCmd = &cobra.Command{
	Use:   "validate <file>",
	Short: "Check a deck file against the deck schema",
	Args:  cobra.ExactArgs(1),
	RunE: func(cmd *cobra.Command, args []string) error {
		d, err := loadDeck(args[0])
		if err != nil {
			return err
		}
		fmt.Fprintf(cmd.OutOrStdout(), "%s: ok (%d slides, format %s)\n", args[0], d.Len(), d.Format)
		return nil
	},
}

var deckListCmd = &cobra.Command{
	Use:   "list [file]",
	Short: "List the slides of a deck (the built-in deck by default)",
	Args:  cobra.MaximumNArgs(1),
	RunE: func(cmd *cobra.Command, args []string) error {
		path := settings.Deck
		if len(args) == 1 {
			path = args[0]
		}
		d, err := loadDeck(path)
		if err != nil {
			return err
		}

		out := cmd.OutOrStdout()
		fmt.Fprintln(out, d.Title)
		fmt.Fprintln(out, strings.Repeat("─", 60))
		fmt.Fprintf(out, "%-3s  %-14s  %-14s  %s\n", "#", "ID", "Kind", "Title")
		for i, s := range d.Slides {
			fmt.Fprintf(out, "%-3d  %-14s  %-14s  %s\n", i+1, truncate(s.ID, 14), s.Kind, s.Title)
		}
		return nil
	},
}

func init() {
	deckCmd.AddCommand(deckValidateCmd)
	deckCmd.AddCommand(deckListCmd)
}
