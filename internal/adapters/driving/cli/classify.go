package cli

import (
	"encoding/json"
	"errors"
	"fmt"
	"io"
	"strings"

	"github.com/spf13/cobra"

	"github.com/custodia-labs/triage-cli/internal/core/domain"
)

var (
	classifyStrategy string
	classifyJSON     bool
)

var classifyCmd = &cobra.Command{
	Use:   "classify [text]",
	Short: "Classify a ticket text",
	Long: `Classify a ticket text and print the category, priority and assignee.

The text is taken from the arguments, or from standard input when none are given.

Strategies:
  ladder - custom rules, then the built-in ladder; first match wins
  scorer - keyword hit counts per category, with request type and recommended action`,
	RunE: runClassify,
}

func init() {
	classifyCmd.Flags().StringVarP(&classifyStrategy, "strategy", "s", "",
		"classification strategy: ladder or scorer (default from settings)")
	classifyCmd.Flags().BoolVar(&classifyJSON, "json", false, "output result as JSON")
	rootCmd.AddCommand(classifyCmd)
}

func runClassify(cmd *cobra.Command, args []string) error {
	text := strings.Join(args, " ")
	if len(args) == 0 {
		data, err := io.ReadAll(cmd.InOrStdin())
		if err != nil {
			return fmt.Errorf("reading ticket from stdin: %w", err)
		}
		text = string(data)
	}

	strategy, err := resolveStrategy()
	if err != nil {
		return err
	}

	if strategy == domain.StrategyScorer {
		return classifyWithScorer(cmd, text)
	}
	return classifyWithLadder(cmd, text)
}

// resolveStrategy prefers the flag, then the configured default.
func resolveStrategy() (domain.Strategy, error) {
	if classifyStrategy != "" {
		s := domain.Strategy(strings.ToLower(strings.TrimSpace(classifyStrategy)))
		if !s.IsValid() {
			return "", fmt.Errorf("%w: strategy %q (want one of %v)",
				domain.ErrInvalidInput, classifyStrategy, domain.AllStrategies())
		}
		return s, nil
	}
	if settingsService != nil {
		if settings, err := settingsService.Get(); err == nil {
			return settings.Classifier.Strategy, nil
		}
	}
	return domain.StrategyLadder, nil
}

func classifyWithLadder(cmd *cobra.Command, text string) error {
	if classifierService == nil {
		return errors.New("classifier service not configured")
	}

	var rules []domain.Rule
	if ruleService != nil {
		rules = ruleService.Active()
	}
	result := classifierService.Classify(text, rules)

	if classifyJSON {
		return printJSON(cmd, result)
	}

	st := stylesFor(cmd.OutOrStdout())
	cmd.Printf("Rule:     %s\n", result.RuleApplied)
	cmd.Printf("Category: %s\n", result.Category)
	cmd.Printf("Priority: %s\n", st.priority(result.Priority))
	cmd.Printf("Assignee: %s\n", result.Assignee)
	return nil
}

type scoreOutput struct {
	Category domain.Category         `json:"category"`
	Type     domain.RequestType      `json:"type"`
	Priority domain.Priority         `json:"priority"`
	Action   string                  `json:"action"`
	Counts   map[domain.Category]int `json:"counts"`
}

func classifyWithScorer(cmd *cobra.Command, text string) error {
	if scorerService == nil {
		return errors.New("scorer service not configured")
	}
	if strings.TrimSpace(text) == "" {
		return fmt.Errorf("%w: ticket is empty", domain.ErrInvalidInput)
	}

	result := scorerService.Score(text)

	if classifyJSON {
		return printJSON(cmd, scoreOutput{
			Category: result.Category,
			Type:     result.Type,
			Priority: result.Priority,
			Action:   result.Action,
			Counts:   result.Counts,
		})
	}

	st := stylesFor(cmd.OutOrStdout())
	cmd.Printf("Category: %s\n", result.Category)
	cmd.Printf("Type:     %s\n", result.Type)
	cmd.Printf("Priority: %s\n", st.priority(result.Priority))
	cmd.Printf("Action:   %s\n", result.Action)
	return nil
}

func printJSON(cmd *cobra.Command, v any) error {
	data, err := json.MarshalIndent(v, "", "  ")
	if err != nil {
		return fmt.Errorf("failed to marshal output: %w", err)
	}
	cmd.Println(string(data))
	return nil
}
