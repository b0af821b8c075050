package service

import (
	"context"
	"errors"
	"fmt"
	"strings"

	"arduino_agent/internal/models"
	"arduino_agent/internal/repository"
)

// ErrInvalidFilter marks a history query the caller got wrong.
var ErrInvalidFilter = errors.New("invalid event filter")

// EventLogService reads the agent history: uploads and board attach/detach.
type EventLogService struct {
	eventRepo repository.EventRepo
}

func NewEventLogService(eventRepo repository.EventRepo) *EventLogService {
	return &EventLogService{eventRepo: eventRepo}
}

// normalize puts bounds in UTC, canonicalizes the type and rejects filters
// that can never match.
func normalize(f LogFilter) (LogFilter, error) {
	if !f.From.IsZero() {
		f.From = f.From.UTC()
	}
	if !f.To.IsZero() {
		f.To = f.To.UTC()
	}
	if !f.From.IsZero() && !f.To.IsZero() && f.From.After(f.To) {
		return f, fmt.Errorf("%w: from %s is after to %s", ErrInvalidFilter, f.From.Format(timeLayout), f.To.Format(timeLayout))
	}

	f.Type = strings.ToUpper(strings.TrimSpace(f.Type))
	if f.Type != "" && !models.IsEventType(f.Type) {
		return f, fmt.Errorf("%w: unknown type %q (want one of %s)", ErrInvalidFilter, f.Type, strings.Join(models.EventTypes, ", "))
	}
	if f.Limit < 0 {
		return f, fmt.Errorf("%w: negative limit %d", ErrInvalidFilter, f.Limit)
	}
	return f, nil
}

// List returns matching events oldest first. With a Limit only the newest
// Limit events are kept, still oldest first.
func (s *EventLogService) List(ctx context.Context, f LogFilter) ([]models.AgentEvent, error) {
	f, err := normalize(f)
	if err != nil {
		return nil, err
	}
	events, err := s.eventRepo.List(ctx, f.From, f.To, f.Type)
	if err != nil {
		return nil, fmt.Errorf("list events: %w", err)
	}
	if f.Limit > 0 && len(events) > f.Limit {
		events = events[len(events)-f.Limit:]
	}
	return events, nil
}
