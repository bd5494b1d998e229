package cli

import (
	"bufio"
	"errors"
	"fmt"
	"sort"
	"strings"

	"github.com/spf13/cobra"
)

var inferCmd = &cobra.Command{
	Use:   "infer",
	Short: "Score tickets read from standard input",
	Long: `Read one ticket per line from standard input and score each with the
category scorer. Every ticket gets a sequential TICKET-NNNN id, a request
type, a priority and a recommended action. Session statistics are printed
when input ends. Blank lines are skipped.`,
	Args: cobra.NoArgs,
	RunE: runInfer,
}

func init() {
	rootCmd.AddCommand(inferCmd)
}

func runInfer(cmd *cobra.Command, _ []string) error {
	if inferenceService == nil {
		return errors.New("inference service not configured")
	}

	st := stylesFor(cmd.OutOrStdout())
	scanner := bufio.NewScanner(cmd.InOrStdin())
	for scanner.Scan() {
		if err := cmd.Context().Err(); err != nil {
			return err
		}
		line := strings.TrimSpace(scanner.Text())
		if line == "" {
			continue
		}

		result := inferenceService.Process(line, "")
		if result.Failed() {
			cmd.PrintErrf("%s\n", st.err.Render(result.Error))
			continue
		}
		cmd.Printf("%s  %-9s %-8s %s\n", result.TicketID, result.Category, result.Type, st.priority(result.Priority))
		cmd.Printf("  %s\n", st.muted.Render(result.Action))
	}
	if err := scanner.Err(); err != nil {
		return fmt.Errorf("reading stdin: %w", err)
	}

	stats := inferenceService.Statistics()
	cmd.Println()
	cmd.Println(st.header.Render("Session"))
	cmd.Printf("  Tickets: %d\n", stats.Total)
	printCounts(cmd, "By category", stringCounts(stats.ByCategory))
	printCounts(cmd, "By type", stringCounts(stats.ByType))
	printCounts(cmd, "By priority", stringCounts(stats.ByPriority))
	return nil
}

func stringCounts[K ~string](m map[K]int) map[string]int {
	out := make(map[string]int, len(m))
	for k, v := range m {
		out[string(k)] = v
	}
	return out
}

// printCounts prints a titled count table in key order.
func printCounts(cmd *cobra.Command, title string, counts map[string]int) {
	if len(counts) == 0 {
		return
	}
	keys := make([]string, 0, len(counts))
	for k := range counts {
		keys = append(keys, k)
	}
	sort.Strings(keys)

	cmd.Printf("  %s:\n", title)
	for _, k := range keys {
		cmd.Printf("    %-28s %d\n", k, counts[k])
	}
}
