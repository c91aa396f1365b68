package cmd

import (
	"context"
	"fmt"
	"io"
	"strconv"
	"strings"

	"charm.land/lipgloss/v2"
	"charm.land/lipgloss/v2/table"
	"github.com/spf13/cobra"

	"github.com/abhisek/pitchdeck/internal/llm"
	"github.com/abhisek/pitchdeck/internal/store"
)

const timeLayout = "2006-01-02 15:04:05"

var llmCmd = &cobra.Command{
	Use:   "llm",
	Short: "Inspect the assistant's LLM request log",
}

var llmListCmd = &cobra.Command{
	Use:   "list",
	Short: "List recent LLM requests",
	RunE: func(cmd *cobra.Command, args []string) error {
		limit, _ := cmd.Flags().GetInt("limit")
		purpose, _ := cmd.Flags().GetString("purpose")

		return withEvents(cmd, func(ctx context.Context, repo store.EventRepo) error {
			events, err := repo.QueryLLMEvents(ctx, store.QueryOpts{Limit: limit, Purpose: purpose})
			if err != nil {
				return fmt.Errorf("query events: %w", err)
			}
			out := cmd.OutOrStdout()
			if len(events) == 0 {
				fmt.Fprintln(out, "No LLM requests recorded.")
				return nil
			}

			t := grid("ID", "Time", "Purpose", "Model", "In", "Out", "Ms", "OK")
			for _, e := range events {
				ok := "✓"
				if !e.Success {
					ok = "✗"
				}
				t.Row(
					strconv.Itoa(e.ID),
					e.Timestamp.Local().Format(timeLayout),
					e.Purpose,
					truncate(e.Model, 28),
					strconv.Itoa(e.InputTokens),
					strconv.Itoa(e.OutputTokens),
					strconv.FormatInt(e.LatencyMs, 10),
					ok,
				)
			}
			fmt.Fprintln(out, t.Render())
			return nil
		})
	},
}

var llmViewCmd = &cobra.Command{
	Use:   "view <id>",
	Short: "Show the prompt and reply of one LLM request",
	Args:  cobra.ExactArgs(1),
	RunE: func(cmd *cobra.Command, args []string) error {
		id, err := strconv.Atoi(args[0])
		if err != nil {
			return fmt.Errorf("invalid ID %q", args[0])
		}

		return withEvents(cmd, func(ctx context.Context, repo store.EventRepo) error {
			e, err := repo.GetLLMEvent(ctx, id)
			if err != nil {
				return fmt.Errorf("get event: %w", err)
			}
			if e == nil {
				return fmt.Errorf("event %d not found", id)
			}
			writeEvent(cmd.OutOrStdout(), e)
			return nil
		})
	},
}

var llmStatsCmd = &cobra.Command{
	Use:   "stats",
	Short: "Show token usage and estimated cost",
	RunE: func(cmd *cobra.Command, args []string) error {
		return withEvents(cmd, func(ctx context.Context, repo store.EventRepo) error {
			byPurpose, err := repo.LLMUsageByPurpose(ctx)
			if err != nil {
				return fmt.Errorf("query usage: %w", err)
			}
			out := cmd.OutOrStdout()
			if len(byPurpose) == 0 {
				fmt.Fprintln(out, "No LLM usage recorded yet.")
				return nil
			}
			byModel, err := repo.LLMUsageByModel(ctx)
			if err != nil {
				return fmt.Errorf("query model usage: %w", err)
			}

			fmt.Fprintln(out, "Usage by purpose")
			fmt.Fprintln(out, purposeTable(byPurpose).Render())
			fmt.Fprintln(out)
			fmt.Fprintln(out, "Estimated cost (USD)")
			t, unpriced := costTable(byModel)
			fmt.Fprintln(out, t.Render())
			if len(unpriced) > 0 {
				fmt.Fprintf(out, "\nNo price list entry for: %s\n", strings.Join(unpriced, ", "))
			}
			return nil
		})
	},
}

// withEvents opens the configured store for the duration of fn.
func withEvents(cmd *cobra.Command, fn func(context.Context, store.EventRepo) error) error {
	s, err := openStore(settings)
	if err != nil {
		return err
	}
	defer s.Close()
	return fn(cmd.Context(), s.EventRepo())
}

// grid is a borderless table with a rule under the header.
func grid(headers ...string) *table.Table {
	return table.New().
		Headers(headers...).
		Border(lipgloss.NormalBorder()).
		BorderTop(false).
		BorderBottom(false).
		BorderLeft(false).
		BorderRight(false).
		BorderColumn(false).
		StyleFunc(func(row, col int) lipgloss.Style {
			s := lipgloss.NewStyle().PaddingRight(2)
			if row == table.HeaderRow {
				s = s.Bold(true)
			}
			return s
		})
}

func purposeTable(usage []store.PurposeUsage) *table.Table {
	t := grid("Purpose", "Calls", "Input", "Output", "Total", "Avg ms")
	var calls, in, outTok int
	for _, u := range usage {
		t.Row(u.Purpose, strconv.Itoa(u.Calls), strconv.Itoa(u.InputTokens), strconv.Itoa(u.OutputTokens),
			strconv.Itoa(u.InputTokens+u.OutputTokens), strconv.Itoa(u.AvgLatencyMs))
		calls += u.Calls
		in += u.InputTokens
		outTok += u.OutputTokens
	}
	t.Row("TOTAL", strconv.Itoa(calls), strconv.Itoa(in), strconv.Itoa(outTok), strconv.Itoa(in+outTok), "")
	return t
}

// costTable prices each model and returns the models it could not price.
func costTable(usage []store.ModelUsage) (*table.Table, []string) {
	t := grid("Model", "Calls", "Input", "Output", "Cost")
	var total float64
	var unpriced []string
	for _, u := range usage {
		cost := "?"
		if c, ok := llm.EstimateCost(u.Model, u.InputTokens, u.OutputTokens); ok {
			total += c
			cost = formatCost(c)
		} else {
			unpriced = append(unpriced, u.Model)
		}
		t.Row(truncate(u.Model, 32), strconv.Itoa(u.Calls), strconv.Itoa(u.InputTokens), strconv.Itoa(u.OutputTokens), cost)
	}

	label := "TOTAL"
	if len(unpriced) > 0 {
		label = "TOTAL (partial)"
	}
	t.Row(label, "", "", "", formatCost(total))
	return t, unpriced
}

func writeEvent(w io.Writer, e *store.LLMEvent) {
	fields := [][2]string{
		{"ID", strconv.Itoa(e.ID)},
		{"Time", e.Timestamp.Local().Format(timeLayout)},
		{"Provider", e.Provider},
		{"Model", e.Model},
		{"Purpose", e.Purpose},
		{"Request", e.RequestID},
		{"Tokens", fmt.Sprintf("%d in / %d out", e.InputTokens, e.OutputTokens)},
		{"Latency", fmt.Sprintf("%dms", e.LatencyMs)},
		{"Success", strconv.FormatBool(e.Success)},
	}
	if e.ErrorMessage != "" {
		fields = append(fields, [2]string{"Error", e.ErrorMessage})
	}
	for _, f := range fields {
		fmt.Fprintf(w, "%-10s %s\n", f[0]+":", f[1])
	}

	rule := strings.Repeat("─", 60)
	for _, section := range [][2]string{{"PROMPT", e.RequestBody}, {"REPLY", e.ResponseBody}} {
		body := section[1]
		if body == "" {
			body = "(not captured)"
		}
		fmt.Fprintf(w, "\n%s\n%s\n%s\n%s\n", rule, section[0], rule, body)
	}
}

func truncate(s string, n int) string {
	if len(s) <= n {
		return s
	}
	return s[:n]
}

func formatCost(usd float64) string {
	if usd < 0.01 {
		return fmt.Sprintf("$%.4f", usd)
	}
	return fmt.Sprintf("$%.2f", usd)
}

func init() {
	llmListCmd.Flags().IntP("limit", "n", 20, "Number of requests to show")
	llmListCmd.Flags().StringP("purpose", "p", "", "Filter by purpose (e.g. assistant)")

	llmCmd.AddCommand(llmListCmd, llmViewCmd, llmStatsCmd)
}
