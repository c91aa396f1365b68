package cmd

import (
	"errors"
	"fmt"
	"strings"

	"github.com/abhisek/pitchdeck/internal/assistant"
	"github.com/spf13/cobra"
)

var askCmd = &cobra.Command{
	Use:   "ask <question>",
	Short: "Ask the strategy assistant one question and print the answer",
	Args:  cobra.MinimumNArgs(1),
	RunE: func(cmd *cobra.Command, args []string) error {
		d, err := loadDeck(settings.Deck)
		if err != nil {
			return err
		}
		st, err := openStore(settings)
		if err != nil {
			return err
		}
		defer st.Close()

		svc := newAssistant(cmd.Context(), settings, d, st.EventRepo(), false)
		answer, err := askOnce(assistant.NewLifecycle(svc), strings.Join(args, " "))
		if err != nil {
			return err
		}
		fmt.Fprintln(cmd.OutOrStdout(), answer)
		return nil
	},
}

// askOnce runs a single query through the lifecycle and waits for its
// answer. Collaborator failures come back as fallback text, not errors.
func askOnce(life *assistant.Lifecycle, question string) (string, error) {
	defer life.Close()

	run, err := life.Submit(question)
	if err != nil {
		if errors.Is(err, assistant.ErrEmptyInput) {
			return "", fmt.Errorf("question is empty")
		}
		return "", err
	}
	msg, ok := run().(assistant.AnswerMsg)
	if !ok || !life.Resolve(msg) {
		return assistant.FallbackUnavailable, nil
	}
	return life.LastResponse, nil
}
