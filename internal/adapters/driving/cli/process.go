package cli

import (
	"errors"
	"fmt"

	"github.com/spf13/cobra"

	"github.com/custodia-labs/triage-cli/internal/core/domain"
)

var processJSON bool

var processCmd = &cobra.Command{
	Use:   "process <tickets-file>",
	Short: "Classify and record a batch of tickets",
	Long: `Read a batch of tickets from a JSON or YAML file, classify each one
against the active custom rules and the built-in ladder, and append the
results to the processed-ticket log.

Tickets that declare an unknown area are rejected and not recorded.`,
	Args: cobra.ExactArgs(1),
	RunE: runProcess,
}

func init() {
	processCmd.Flags().BoolVar(&processJSON, "json", false, "output processed tickets as JSON")
	rootCmd.AddCommand(processCmd)
}

type processedOutput struct {
	EntryID     string                      `json:"entry_id"`
	Ticket      domain.Ticket               `json:"ticket"`
	Result      domain.ClassificationResult `json:"result"`
	ProcessedAt string                      `json:"processed_at"`
}

func runProcess(cmd *cobra.Command, args []string) error {
	if ticketSource == nil || intakeService == nil {
		return errors.New("intake service not configured")
	}

	tickets, err := ticketSource.ReadTickets(cmd.Context(), args[0])
	if err != nil {
		return fmt.Errorf("reading tickets: %w", err)
	}

	result, err := intakeService.ProcessBatch(cmd.Context(), tickets)
	if err != nil {
		return fmt.Errorf("processing tickets: %w", err)
	}

	if processJSON {
		out := make([]processedOutput, 0, len(result.Processed))
		for i := range result.Processed {
			p := &result.Processed[i]
			out = append(out, processedOutput{
				EntryID:     p.EntryID,
				Ticket:      p.Ticket,
				Result:      p.Result,
				ProcessedAt: p.ProcessedAt.Format(domain.TimestampLayout),
			})
		}
		if err := printJSON(cmd, out); err != nil {
			return err
		}
	} else {
		st := stylesFor(cmd.OutOrStdout())
		for i := range result.Processed {
			p := &result.Processed[i]
			cmd.Printf("%-10s %-10s %-8s %s\n", ticketLabel(p.Ticket, i), p.Result.Category,
				st.priority(p.Result.Priority), p.Result.Assignee)
			cmd.Printf("           %s\n", st.muted.Render(p.Result.RuleApplied))
		}
	}

	for _, f := range result.Failed {
		cmd.PrintErrf("rejected %s: %v\n", ticketLabel(f.Ticket, -1), f.Err)
	}

	if !processJSON {
		cmd.Printf("\nProcessed %d, rejected %d\n", len(result.Processed), len(result.Failed))
	}
	if len(result.Failed) > 0 {
		return fmt.Errorf("%d of %d tickets rejected", len(result.Failed), len(tickets))
	}
	return nil
}

// ticketLabel names a ticket for output, falling back to its position.
func ticketLabel(t domain.Ticket, i int) string {
	if t.ID != "" {
		return t.ID
	}
	if i < 0 {
		return "(no id)"
	}
	return fmt.Sprintf("#%d", i+1)
}
