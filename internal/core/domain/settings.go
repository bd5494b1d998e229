package domain

const unknownDescription = "Unknown"

// Strategy selects how free-text tickets are classified.
type Strategy string

// Available classification strategies.
const (
	// StrategyLadder uses custom rules then the built-in ladder, first match wins.
	StrategyLadder Strategy = "ladder"

	// StrategyScorer counts keyword hits per category and picks the highest.
	StrategyScorer Strategy = "scorer"
)

// IsValid returns true if the strategy is recognised.
func (s Strategy) IsValid() bool {
	switch s {
	case StrategyLadder, StrategyScorer:
		return true
	default:
		return false
	}
}

// String returns the string representation.
func (s Strategy) String() string {
	return string(s)
}

// Description returns a human-readable description of the strategy.
func (s Strategy) Description() string {
	switch s {
	case StrategyLadder:
		return "Ladder (custom rules, then built-in rules, first match wins)"
	case StrategyScorer:
		return "Scorer (keyword count per category)"
	default:
		return unknownDescription
	}
}

// TicketLogBackend selects where processed tickets are recorded.
type TicketLogBackend string

// Available ticket log backends.
const (
	TicketLogJSON   TicketLogBackend = "json"
	TicketLogSQLite TicketLogBackend = "sqlite"
)

// IsValid returns true if the backend is recognised.
func (b TicketLogBackend) IsValid() bool {
	switch b {
	case TicketLogJSON, TicketLogSQLite:
		return true
	default:
		return false
	}
}

// String returns the string representation.
func (b TicketLogBackend) String() string {
	return string(b)
}

// StorageSettings holds file locations.
type StorageSettings struct {
	// DataDir holds the rule, area and ticket log files.
	// Empty means the default (~/.triage).
	DataDir string

	// RulesFile is the custom rule collection file name, relative to DataDir.
	RulesFile string

	// AreasFile is the area list file name, relative to DataDir.
	AreasFile string

	// TicketLog selects the processed-ticket log backend.
	TicketLog TicketLogBackend
}

// ClassifierSettings holds classification behaviour configuration.
type ClassifierSettings struct {
	// Strategy is the default strategy of the classify command.
	Strategy Strategy
}

// AppSettings holds all application settings.
type AppSettings struct {
	Storage    StorageSettings
	Classifier ClassifierSettings
}

// DefaultAppSettings returns settings with sensible defaults.
func DefaultAppSettings() AppSettings {
	return AppSettings{
		Storage: StorageSettings{
			RulesFile: "rules.json",
			AreasFile: "areas.json",
			TicketLog: TicketLogJSON,
		},
		Classifier: ClassifierSettings{
			Strategy: StrategyLadder,
		},
	}
}

// AllStrategies returns all classification strategies.
func AllStrategies() []Strategy {
	return []Strategy{StrategyLadder, StrategyScorer}
}

// AllTicketLogBackends returns all ticket log backends.
func AllTicketLogBackends() []TicketLogBackend {
	return []TicketLogBackend{TicketLogJSON, TicketLogSQLite}
}
