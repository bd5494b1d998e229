// Package cli implements the triage command-line interface with cobra.
//
// Commands run against package-level services. cmd/triage installs a
// Bootstrap that builds them once global flags are parsed; tests assign
// them directly through SetServices.
package cli

import (
	"context"
	"fmt"

	"github.com/spf13/cobra"

	"github.com/custodia-labs/triage-cli/internal/core/ports/driven"
	"github.com/custodia-labs/triage-cli/internal/core/ports/driving"
	"github.com/custodia-labs/triage-cli/internal/logger"
)

// version is set at build time.
var version = "dev"

// Services holds everything the commands run against.
type Services struct {
	Rules      driving.RuleService
	Areas      driving.AreaService
	Classifier driving.ClassifierService
	Scorer     driving.ScorerService
	Inference  driving.InferenceService
	Intake     driving.IntakeService
	Report     driving.ReportService
	Settings   driving.SettingsService
	Tickets    driven.TicketSource

	// RulesPath is the rule file watched by "rule watch".
	RulesPath string

	// Close releases resources such as database handles. May be nil.
	Close func() error
}

// Options carries the global flags to a Bootstrap.
type Options struct {
	ConfigDir string
	Verbose   bool
}

// Bootstrap builds the services for one invocation.
type Bootstrap func(ctx context.Context, opts Options) (*Services, error)

var (
	ruleService       driving.RuleService
	areaService       driving.AreaService
	classifierService driving.ClassifierService
	scorerService     driving.ScorerService
	inferenceService  driving.InferenceService
	intakeService     driving.IntakeService
	reportService     driving.ReportService
	settingsService   driving.SettingsService
	ticketSource      driven.TicketSource
	rulesPath         string
	closeServices     func() error
)

var bootstrap Bootstrap

var (
	verbose   bool
	configDir string
)

var rootCmd = &cobra.Command{
	Use:   "triage",
	Short: "Classify support tickets with keyword rules",
	Long: `triage routes free-text support tickets to a category, priority and team.

Custom rules are evaluated first, in order, followed by a fixed built-in
ladder. The first rule with a keyword contained in the ticket wins.`,
	SilenceUsage:       true,
	PersistentPreRunE:  setup,
	PersistentPostRunE: teardown,
}

func init() {
	rootCmd.PersistentFlags().BoolVarP(&verbose, "verbose", "v", false, "enable debug output")
	rootCmd.PersistentFlags().StringVar(&configDir, "config-dir", "", "configuration directory (default ~/.triage)")
}

// SetVersion sets the version reported by the version command.
func SetVersion(v string) {
	version = v
}

// SetBootstrap installs the function that builds services after flag parsing.
func SetBootstrap(b Bootstrap) {
	bootstrap = b
}

// SetServices assigns the services used by the commands.
func SetServices(s *Services) {
	ruleService = s.Rules
	areaService = s.Areas
	classifierService = s.Classifier
	scorerService = s.Scorer
	inferenceService = s.Inference
	intakeService = s.Intake
	reportService = s.Report
	settingsService = s.Settings
	ticketSource = s.Tickets
	rulesPath = s.RulesPath
	closeServices = s.Close
}

// Execute runs the root command.
func Execute(ctx context.Context) error {
	return rootCmd.ExecuteContext(ctx)
}

func setup(cmd *cobra.Command, _ []string) error {
	logger.SetVerbose(verbose)
	if bootstrap == nil {
		return nil
	}

	services, err := bootstrap(cmd.Context(), Options{ConfigDir: configDir, Verbose: verbose})
	if err != nil {
		return fmt.Errorf("initialising: %w", err)
	}
	SetServices(services)
	return nil
}

func teardown(_ *cobra.Command, _ []string) error {
	if closeServices == nil {
		return nil
	}
	return closeServices()
}
