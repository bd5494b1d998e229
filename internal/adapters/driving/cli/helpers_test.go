package cli

import (
	"bytes"
	"context"
	"strings"
	"testing"

	"github.com/spf13/cobra"
	"github.com/spf13/pflag"
	"github.com/stretchr/testify/require"

	"github.com/custodia-labs/triage-cli/internal/adapters/driven/report/xlsx"
	"github.com/custodia-labs/triage-cli/internal/adapters/driven/storage/memory"
	"github.com/custodia-labs/triage-cli/internal/adapters/driven/tickets"
	"github.com/custodia-labs/triage-cli/internal/core/services"
)

// testServices exposes the concrete services behind the CLI for assertions.
type testServices struct {
	rules    *services.RuleStore
	areas    *services.AreaStore
	log      *memory.TicketLog
	config   *memory.ConfigStore
	settings *services.SettingsService
}

// setupTestServices wires the CLI to in-memory services and returns a cleanup
// that restores the previous wiring.
func setupTestServices(t *testing.T) *testServices {
	t.Helper()
	ctx := context.Background()

	rules := services.NewRuleStore(memory.NewRuleStore())
	require.NoError(t, rules.Load(ctx))
	areas := services.NewAreaStore(memory.NewAreaStore())
	require.NoError(t, areas.Load(ctx))
	log := memory.NewTicketLog()
	config := memory.NewConfigStore()
	settings := services.NewSettingsService(config)
	classifier := services.NewClassifier()

	oldBootstrap := bootstrap
	bootstrap = nil
	SetServices(&Services{
		Rules:      rules,
		Areas:      areas,
		Classifier: classifier,
		Scorer:     services.NewCategoryScorer(),
		Inference:  services.NewInferenceSession(nil),
		Intake:     services.NewIntakeService(rules, areas, classifier, log),
		Report:     services.NewReportService(log, xlsx.NewExporter()),
		Settings:   settings,
		Tickets:    tickets.NewFileReader(),
	})

	t.Cleanup(func() {
		SetServices(&Services{})
		bootstrap = oldBootstrap
	})

	return &testServices{rules: rules, areas: areas, log: log, config: config, settings: settings}
}

// execute runs the root command with args and returns stdout and stderr.
// Flags are reset afterwards so values do not leak between tests.
func execute(t *testing.T, stdin string, args ...string) (string, string, error) {
	t.Helper()

	var out, errOut bytes.Buffer
	rootCmd.SetOut(&out)
	rootCmd.SetErr(&errOut)
	rootCmd.SetIn(strings.NewReader(stdin))
	rootCmd.SetArgs(args)
	defer func() {
		rootCmd.SetArgs(nil)
		rootCmd.SetIn(nil)
		resetFlags(rootCmd)
	}()

	err := rootCmd.Execute()
	return out.String(), errOut.String(), err
}

func resetFlags(cmd *cobra.Command) {
	reset := func(f *pflag.Flag) {
		_ = f.Value.Set(f.DefValue)
		f.Changed = false
	}
	cmd.Flags().VisitAll(reset)
	cmd.PersistentFlags().VisitAll(reset)
	for _, c := range cmd.Commands() {
		resetFlags(c)
	}
}
