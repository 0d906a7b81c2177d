// Package service orchestrates the chat pipeline: interpret the question,
// translate it to a query plan, filter the dataset, aggregate, and record
// the turn in the session history.
package service

import (
	"context"
	"errors"
	"strings"
	"time"

	"github.com/google/uuid"

	"github.com/seclens/seclens/internal/aggregate"
	"github.com/seclens/seclens/internal/history"
	"github.com/seclens/seclens/internal/interpreter"
	"github.com/seclens/seclens/internal/logging"
	"github.com/seclens/seclens/internal/messaging"
	"github.com/seclens/seclens/internal/metrics"
	"github.com/seclens/seclens/internal/models"
	"github.com/seclens/seclens/internal/store"
	"github.com/seclens/seclens/internal/translator"
)

// ErrEmptyQuery is returned when the message is blank after trimming.
var ErrEmptyQuery = errors.New("query must not be empty")

// Questions shorter than this many words are treated as follow-ups and
// inherit filters and time range from the previous turn.
const followUpWordLimit = 6

// Publisher emits query lifecycle events; nil disables publishing.
type Publisher interface {
	PublishQueryProcessed(ctx context.Context, event messaging.QueryProcessedEvent) error
}

// ChatService processes natural-language questions against the event store.
type ChatService struct {
	store       *store.EventStore
	interpreter *interpreter.Interpreter
	translator  *translator.Translator
	turns       history.TurnStore
	publisher   Publisher
	logger      *logging.Logger
}

// New wires the pipeline together. publisher may be nil.
func New(st *store.EventStore, turns history.TurnStore, publisher Publisher, logger *logging.Logger) *ChatService {
	return &ChatService{
		store:       st,
		interpreter: interpreter.New(),
		translator:  translator.New(),
		turns:       turns,
		publisher:   publisher,
		logger:      logger,
	}
}

// Process handles one chat turn for the given session.
func (s *ChatService) Process(ctx context.Context, sessionID, message string) (*models.ChatResponse, error) {
	message = strings.TrimSpace(message)
	if message == "" {
		metrics.InvalidRequestsTotal.Inc()
		return nil, ErrEmptyQuery
	}

	started := time.Now()

	prior, err := s.lastParsed(ctx, sessionID)
	if err != nil {
		// History is best effort on the read side; a failed lookup
		// degrades to a context-free query.
		s.logger.WarnContext(ctx, "failed to load session history",
			"session_id", sessionID, "error", err)
		prior = nil
	}

	parsed := s.interpreter.Interpret(message, prior)

	// Short follow-ups inherit what the previous turn established.
	if prior != nil && len(strings.Fields(message)) < followUpWordLimit {
		parsed.Filters = models.MergeFilters(prior.Filters, parsed.Filters)
		if parsed.TimeRange == nil {
			parsed.TimeRange = prior.TimeRange
		}
	}

	dsl, plan := s.translator.Translate(parsed)
	matched := s.store.Filter(plan)
	result := aggregate.Aggregate(matched, plan)
	result.QueryDSL = dsl

	turn := &models.Turn{
		ID:          uuid.NewString(),
		SessionID:   sessionID,
		UserQuery:   message,
		Parsed:      *parsed,
		QueryDSL:    dsl,
		ResultCount: result.Stats.TotalEvents,
		Timestamp:   time.Now().UTC(),
	}
	if err := s.turns.Append(ctx, turn); err != nil {
		// The answer is still valid without the recorded turn.
		s.logger.ErrorContext(ctx, "failed to append turn",
			"session_id", sessionID, "error", err)
	}

	metrics.QueriesTotal.WithLabelValues(parsed.Intent).Inc()
	if result.Stats.TotalEvents == 0 {
		metrics.EmptyResultsTotal.Inc()
	}
	metrics.ProcessDuration.Observe(time.Since(started).Seconds())

	if s.publisher != nil {
		event := messaging.QueryProcessedEvent{
			SessionID:   sessionID,
			Intent:      parsed.Intent,
			UserQuery:   message,
			ResultCount: result.Stats.TotalEvents,
			HighRisk:    result.Stats.HighRiskEvents,
			Timestamp:   turn.Timestamp,
		}
		if err := s.publisher.PublishQueryProcessed(ctx, event); err != nil {
			s.logger.WarnContext(ctx, "failed to publish query event", "error", err)
		}
	}

	return &models.ChatResponse{
		Message:     message,
		ParsedQuery: parsed,
		Results:     result,
	}, nil
}

// History returns the session's recorded turns in order.
func (s *ChatService) History(ctx context.Context, sessionID string) ([]models.Turn, error) {
	return s.turns.List(ctx, sessionID)
}

// Events exposes the raw dataset, capped to limit when limit > 0.
func (s *ChatService) Events(limit int) []models.Event {
	events := s.store.Events()
	if limit > 0 && len(events) > limit {
		events = events[:limit]
	}
	return events
}

func (s *ChatService) lastParsed(ctx context.Context, sessionID string) (*models.ParsedQuery, error) {
	turns, err := s.turns.List(ctx, sessionID)
	if err != nil {
		return nil, err
	}
	if len(turns) == 0 {
		return nil, nil
	}
	last := turns[len(turns)-1].Parsed
	return &last, nil
}
