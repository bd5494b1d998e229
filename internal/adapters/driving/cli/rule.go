package cli

import (
	"errors"
	"fmt"
	"strings"

	"github.com/spf13/cobra"

	"github.com/custodia-labs/triage-cli/internal/core/domain"
)

var (
	ruleListActive   bool
	ruleListInactive bool
	ruleListCategory string
	ruleListPriority string

	ruleName     string
	ruleKeywords string
	ruleCategory string
	rulePriority string
	ruleAssignee string
	ruleInactive bool
	ruleActive   bool
)

var ruleCmd = &cobra.Command{
	Use:   "rule",
	Short: "Manage custom classification rules",
	Long: `Custom rules are evaluated in order before the built-in ladder.
A rule matches when any of its keywords appears in the ticket text.`,
}

var ruleListCmd = &cobra.Command{
	Use:   "list",
	Short: "List custom rules",
	Example: `  triage rule list --inactive
  triage rule list --category network --priority high`,
	Args: cobra.NoArgs,
	RunE: runRuleList,
}

var ruleAddCmd = &cobra.Command{
	Use:   "add",
	Short: "Add a custom rule",
	Long: `Add a custom rule. Keywords are comma-separated and matched case-insensitively.

Categories: HARDWARE, SOFTWARE, NETWORK, SECURITY, PRINT_SCAN
Priorities: High, Medium, Low`,
	Example: `  triage rule add --name "Printers" --keywords "impresora,toner" \
    --category PRINT_SCAN --priority Medium --assignee "Printer Team"`,
	Args: cobra.NoArgs,
	RunE: runRuleAdd,
}

var ruleUpdateCmd = &cobra.Command{
	Use:   "update <id>",
	Short: "Update fields of a custom rule",
	Args:  cobra.ExactArgs(1),
	RunE:  runRuleUpdate,
}

var ruleDeleteCmd = &cobra.Command{
	Use:   "delete <id>",
	Short: "Delete a custom rule",
	Args:  cobra.ExactArgs(1),
	RunE:  runRuleDelete,
}

var ruleToggleCmd = &cobra.Command{
	Use:   "toggle <id>",
	Short: "Activate or deactivate a custom rule",
	Args:  cobra.ExactArgs(1),
	RunE:  runRuleToggle,
}

var ruleStatsCmd = &cobra.Command{
	Use:   "stats",
	Short: "Show custom rule statistics",
	Args:  cobra.NoArgs,
	RunE:  runRuleStats,
}

var ruleLadderCmd = &cobra.Command{
	Use:   "ladder",
	Short: "Show the built-in rules in evaluation order",
	Args:  cobra.NoArgs,
	RunE:  runRuleLadder,
}

func init() {
	ruleListCmd.Flags().BoolVar(&ruleListActive, "active", false, "only show active rules")
	ruleListCmd.Flags().BoolVar(&ruleListInactive, "inactive", false, "only show inactive rules")
	ruleListCmd.Flags().StringVar(&ruleListCategory, "category", "", "only show rules assigning this category")
	ruleListCmd.Flags().StringVar(&ruleListPriority, "priority", "", "only show rules assigning this priority")
	ruleListCmd.MarkFlagsMutuallyExclusive("active", "inactive")

	for _, c := range []*cobra.Command{ruleAddCmd, ruleUpdateCmd} {
		c.Flags().StringVar(&ruleName, "name", "", "rule name")
		c.Flags().StringVar(&ruleKeywords, "keywords", "", "comma-separated keywords")
		c.Flags().StringVar(&ruleCategory, "category", "", "category")
		c.Flags().StringVar(&rulePriority, "priority", "", "priority")
		c.Flags().StringVar(&ruleAssignee, "assignee", "", "team or person the ticket is routed to")
	}
	ruleAddCmd.Flags().BoolVar(&ruleInactive, "inactive", false, "create the rule deactivated")
	ruleUpdateCmd.Flags().BoolVar(&ruleActive, "active", true, "set the active flag")

	ruleCmd.AddCommand(ruleListCmd)
	ruleCmd.AddCommand(ruleAddCmd)
	ruleCmd.AddCommand(ruleUpdateCmd)
	ruleCmd.AddCommand(ruleDeleteCmd)
	ruleCmd.AddCommand(ruleToggleCmd)
	ruleCmd.AddCommand(ruleStatsCmd)
	ruleCmd.AddCommand(ruleLadderCmd)
	rootCmd.AddCommand(ruleCmd)
}

func requireRuleService() error {
	if ruleService == nil {
		return errors.New("rule service not configured")
	}
	return nil
}

func runRuleList(cmd *cobra.Command, _ []string) error {
	if err := requireRuleService(); err != nil {
		return err
	}

	filter, err := ruleListFilter()
	if err != nil {
		return err
	}

	rules := ruleService.Filter(filter)
	if len(rules) == 0 {
		if filter == (domain.RuleFilter{}) {
			cmd.Println("No custom rules.")
		} else {
			cmd.Println("No rules match the filter.")
		}
		return nil
	}

	st := stylesFor(cmd.OutOrStdout())
	for i := range rules {
		printRule(cmd, st, &rules[i])
	}
	return nil
}

func ruleListFilter() (domain.RuleFilter, error) {
	var filter domain.RuleFilter
	if ruleListActive || ruleListInactive {
		active := ruleListActive
		filter.Active = &active
	}

	var err error
	if ruleListCategory != "" {
		if filter.Category, err = domain.ParseCategory(ruleListCategory); err != nil {
			return filter, err
		}
	}
	if ruleListPriority != "" {
		if filter.Priority, err = domain.ParsePriority(ruleListPriority); err != nil {
			return filter, err
		}
	}
	return filter, nil
}

func printRule(cmd *cobra.Command, st outputStyles, r *domain.Rule) {
	state := "active"
	if !r.Active {
		state = "inactive"
	}
	cmd.Printf("%s  %s %s\n", st.header.Render(r.ID), r.Name, st.muted.Render("("+state+")"))
	cmd.Printf("     %s / %s -> %s\n", r.Category, st.priority(r.Priority), r.Assignee)
	cmd.Printf("     keywords: %s\n", strings.Join(r.Keywords, ", "))
}

func runRuleAdd(cmd *cobra.Command, _ []string) error {
	if err := requireRuleService(); err != nil {
		return err
	}

	category, err := domain.ParseCategory(ruleCategory)
	if err != nil {
		return err
	}
	priority, err := domain.ParsePriority(rulePriority)
	if err != nil {
		return err
	}
	active := !ruleInactive

	rule, err := ruleService.Add(cmd.Context(), domain.RuleInput{
		Name:     ruleName,
		Keywords: domain.SplitKeywords(ruleKeywords),
		Category: category,
		Priority: priority,
		Assignee: ruleAssignee,
		Active:   &active,
	})
	if err != nil {
		return fmt.Errorf("failed to add rule: %w", err)
	}

	cmd.Printf("Added rule %s (%s)\n", rule.ID, rule.Name)
	return nil
}

func runRuleUpdate(cmd *cobra.Command, args []string) error {
	if err := requireRuleService(); err != nil {
		return err
	}

	var update domain.RuleUpdate
	flags := cmd.Flags()
	if flags.Changed("name") {
		update.Name = &ruleName
	}
	if flags.Changed("keywords") {
		update.Keywords = domain.SplitKeywords(ruleKeywords)
	}
	if flags.Changed("category") {
		category, err := domain.ParseCategory(ruleCategory)
		if err != nil {
			return err
		}
		update.Category = &category
	}
	if flags.Changed("priority") {
		priority, err := domain.ParsePriority(rulePriority)
		if err != nil {
			return err
		}
		update.Priority = &priority
	}
	if flags.Changed("assignee") {
		update.Assignee = &ruleAssignee
	}
	if flags.Changed("active") {
		update.Active = &ruleActive
	}
	if update.IsEmpty() {
		return fmt.Errorf("%w: nothing to update", domain.ErrInvalidInput)
	}

	rule, err := ruleService.Update(cmd.Context(), args[0], update)
	if err != nil {
		return fmt.Errorf("failed to update rule: %w", err)
	}

	cmd.Printf("Updated rule %s\n", rule.ID)
	return nil
}

func runRuleDelete(cmd *cobra.Command, args []string) error {
	if err := requireRuleService(); err != nil {
		return err
	}
	if err := ruleService.Delete(cmd.Context(), args[0]); err != nil {
		return fmt.Errorf("failed to delete rule: %w", err)
	}
	cmd.Printf("Deleted rule %s\n", args[0])
	return nil
}

func runRuleToggle(cmd *cobra.Command, args []string) error {
	if err := requireRuleService(); err != nil {
		return err
	}
	rule, err := ruleService.Toggle(cmd.Context(), args[0])
	if err != nil {
		return fmt.Errorf("failed to toggle rule: %w", err)
	}
	state := "activated"
	if !rule.Active {
		state = "deactivated"
	}
	cmd.Printf("Rule %s %s\n", rule.ID, state)
	return nil
}

func runRuleStats(cmd *cobra.Command, _ []string) error {
	if err := requireRuleService(); err != nil {
		return err
	}

	stats := ruleService.Statistics()
	cmd.Printf("Rules: %d (%d active, %d inactive)\n", stats.Total, stats.Active, stats.Inactive)
	printCounts(cmd, "By category", stringCounts(stats.ByCategory))
	printCounts(cmd, "By priority", stringCounts(stats.ByPriority))
	return nil
}

func runRuleLadder(cmd *cobra.Command, _ []string) error {
	if classifierService == nil {
		return errors.New("classifier service not configured")
	}

	st := stylesFor(cmd.OutOrStdout())
	for i, b := range classifierService.Ladder() {
		cmd.Printf("%2d. %s\n", i+1, st.header.Render(b.Label))
		cmd.Printf("    %s / %s -> %s\n", b.Category, st.priority(b.Priority), b.Assignee)
		cmd.Printf("    keywords: %s\n", strings.Join(b.Keywords, ", "))
	}
	return nil
}
