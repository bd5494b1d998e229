package driving

import "github.com/custodia-labs/triage-cli/internal/core/domain"

// InferenceService scores tickets and keeps a history of the results.
type InferenceService interface {
	// Process scores text. An empty id is replaced by a sequential ticket ID.
	Process(text, id string) domain.InferenceResult

	// Statistics summarises the history.
	Statistics() domain.SessionStats

	// History returns the recorded results in processing order.
	History() []domain.InferenceResult

	// Reset clears the history and the processed counter.
	Reset()
}
