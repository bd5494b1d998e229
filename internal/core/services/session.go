package services

import (
	"fmt"
	"strings"
	"sync"

	"github.com/custodia-labs/triage-cli/internal/core/domain"
	"github.com/custodia-labs/triage-cli/internal/core/ports/driving"
)

// Ensure InferenceSession implements the interface.
var _ driving.InferenceService = (*InferenceSession)(nil)

// errEmptyTicket is reported for tickets with no text.
const errEmptyTicket = "ticket is empty"

// InferenceSession scores tickets with a ScorerService and records the results.
// Each interaction context owns its own session; nothing is shared between sessions.
type InferenceSession struct {
	scorer driving.ScorerService

	mu        sync.Mutex
	processed int
	history   []domain.InferenceResult
}

// NewInferenceSession creates an empty session.
// A nil scorer uses the category scorer.
func NewInferenceSession(scorer driving.ScorerService) *InferenceSession {
	if scorer == nil {
		scorer = NewCategoryScorer()
	}
	return &InferenceSession{scorer: scorer}
}

// Process scores text and appends the result to the history.
// Empty text is rejected without being recorded.
func (s *InferenceSession) Process(text, id string) domain.InferenceResult {
	if strings.TrimSpace(text) == "" {
		return domain.InferenceResult{TicketID: id, Text: text, Error: errEmptyTicket}
	}

	score := s.scorer.Score(text)

	s.mu.Lock()
	defer s.mu.Unlock()

	if id == "" {
		id = fmt.Sprintf("TICKET-%04d", s.processed+1)
	}
	result := domain.InferenceResult{
		TicketID:    id,
		Text:        text,
		ScoreResult: score,
	}
	s.history = append(s.history, result)
	s.processed++
	return result
}

// Statistics counts the history by category, type and priority.
func (s *InferenceSession) Statistics() domain.SessionStats {
	s.mu.Lock()
	defer s.mu.Unlock()

	stats := domain.SessionStats{
		Total:      len(s.history),
		ByCategory: make(map[domain.Category]int),
		ByType:     make(map[domain.RequestType]int),
		ByPriority: make(map[domain.Priority]int),
	}
	for i := range s.history {
		stats.ByCategory[s.history[i].Category]++
		stats.ByType[s.history[i].Type]++
		stats.ByPriority[s.history[i].Priority]++
	}
	return stats
}

// History returns a copy of the recorded results.
func (s *InferenceSession) History() []domain.InferenceResult {
	s.mu.Lock()
	defer s.mu.Unlock()

	out := make([]domain.InferenceResult, len(s.history))
	copy(out, s.history)
	return out
}

// Processed returns the number of tickets processed since the last reset.
func (s *InferenceSession) Processed() int {
	s.mu.Lock()
	defer s.mu.Unlock()
	return s.processed
}

// Reset clears the history and the processed counter together.
func (s *InferenceSession) Reset() {
	s.mu.Lock()
	defer s.mu.Unlock()
	s.history = nil
	s.processed = 0
}
