package services

import (
	"context"
	"fmt"
	"strings"
	"time"

	"github.com/google/uuid"

	"github.com/custodia-labs/triage-cli/internal/core/domain"
	"github.com/custodia-labs/triage-cli/internal/core/ports/driven"
	"github.com/custodia-labs/triage-cli/internal/core/ports/driving"
	"github.com/custodia-labs/triage-cli/internal/logger"
)

// Ensure IntakeService implements the interface.
var _ driving.IntakeService = (*IntakeService)(nil)

// IntakeService is the boundary between incoming tickets and the classifier.
// It validates the declared area, classifies against the active custom rules,
// and appends the result to the ticket log.
type IntakeService struct {
	rules      driving.RuleService
	areas      driving.AreaService
	classifier driving.ClassifierService
	log        driven.TicketLog
	now        func() time.Time
}

// NewIntakeService creates an intake service.
// areas may be nil, in which case declared areas are not validated.
func NewIntakeService(
	rules driving.RuleService,
	areas driving.AreaService,
	classifier driving.ClassifierService,
	log driven.TicketLog,
) *IntakeService {
	return &IntakeService{
		rules:      rules,
		areas:      areas,
		classifier: classifier,
		log:        log,
		now:        func() time.Time { return time.Now().Truncate(time.Second) },
	}
}

// SetClock replaces the time source used for processed_at stamps.
func (s *IntakeService) SetClock(now func() time.Time) {
	s.now = now
}

// Process validates, classifies and logs a single ticket.
// Empty content is not rejected: it is logged with the empty-content outcome.
func (s *IntakeService) Process(ctx context.Context, ticket domain.Ticket) (*domain.ProcessedTicket, error) {
	if s.classifier == nil || s.log == nil {
		return nil, domain.ErrNotImplemented
	}

	ticket = ticket.Normalized()
	if err := s.validateArea(ticket.Area); err != nil {
		return nil, err
	}

	var rules []domain.Rule
	if s.rules != nil {
		rules = s.rules.Active()
	}

	entry := domain.ProcessedTicket{
		EntryID:     uuid.NewString(),
		Ticket:      ticket,
		Result:      s.classifier.Classify(ticket.Content, rules),
		ProcessedAt: s.now(),
	}
	if entry.Ticket.ID == "" {
		entry.Ticket.ID = generatedTicketID(entry.ProcessedAt, entry.EntryID)
	}

	if err := s.log.Append(ctx, entry); err != nil {
		logger.Error("recording ticket %s: %v", ticket.ID, err)
		return nil, fmt.Errorf("recording ticket: %w", err)
	}

	logger.Debug("ticket %s -> %s (%s)", ticket.ID, entry.Result.Category, entry.Result.RuleApplied)
	return &entry, nil
}

// generatedTicketID names a ticket that arrived without an ID: "TK" plus the
// processing stamp, suffixed with the start of the entry ID so tickets
// processed within the same second stay distinct.
func generatedTicketID(at time.Time, entryID string) string {
	suffix := strings.ReplaceAll(entryID, "-", "")
	if len(suffix) > 8 {
		suffix = suffix[:8]
	}
	return "TK" + at.Format("20060102150405") + "-" + suffix
}

// ProcessBatch processes tickets in order, collecting rejected tickets.
// It stops early only when the context is cancelled.
func (s *IntakeService) ProcessBatch(ctx context.Context, tickets []domain.Ticket) (*domain.BatchResult, error) {
	result := &domain.BatchResult{}
	for i := range tickets {
		if err := ctx.Err(); err != nil {
			return result, err
		}
		entry, err := s.Process(ctx, tickets[i])
		if err != nil {
			result.Failed = append(result.Failed, domain.TicketFailure{Ticket: tickets[i], Err: err})
			continue
		}
		result.Processed = append(result.Processed, *entry)
	}
	logger.Info("batch: %d processed, %d rejected", len(result.Processed), len(result.Failed))
	return result, nil
}

// validateArea accepts tickets with no declared area, and any area when no
// area list has been configured.
func (s *IntakeService) validateArea(area string) error {
	if area == "" || s.areas == nil || s.areas.Statistics().Total == 0 {
		return nil
	}
	return s.areas.Validate(area)
}
