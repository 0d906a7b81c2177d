// Package store holds the normalized event collection in memory. The dataset
// is loaded once at startup and never mutated afterwards.
package store

import (
	"encoding/json"
	"log/slog"
	"os"
	"strings"
	"sync"
	"time"

	"github.com/google/uuid"

	"github.com/seclens/seclens/internal/models"
)

// RawRecord is the shape of one dataset entry as produced by the collectors.
type RawRecord struct {
	Timestamp     string `json:"@timestamp"`
	SourceIP      string `json:"source_ip"`
	DestinationIP string `json:"destination_ip"`
	EventType     string `json:"event_type"`
	Details       string `json:"details"`
	Signature     string `json:"signature,omitempty"`
	Username      string `json:"username,omitempty"`
	Label         string `json:"label,omitempty"`
}

// eventTypeAliases maps raw collector categories to their normalized names.
// Unrecognized categories pass through unchanged.
var eventTypeAliases = map[string]string{
	"login_failed":        "failed_login",
	"login_success":       "successful_login",
	"malware_detected":    "malware",
	"vpn_access":          "vpn_connection",
	"suspicious_activity": "suspicious",
}

// EventStore is the read-only in-memory event collection.
type EventStore struct {
	mu     sync.RWMutex
	events []models.Event
}

// New returns an empty event store.
func New() *EventStore {
	return &EventStore{}
}

// Load reads the dataset file at path and replaces the store contents with the
// normalized records. A missing or malformed file leaves the store empty and
// is logged, not fatal: the service stays up and every query matches nothing.
func (s *EventStore) Load(path string) error {
	data, err := os.ReadFile(path)
	if err != nil {
		slog.Warn("dataset unavailable, starting with empty store",
			slog.String("path", path),
			slog.String("error", err.Error()))
		return err
	}

	var raw []RawRecord
	if err := json.Unmarshal(data, &raw); err != nil {
		slog.Warn("dataset malformed, starting with empty store",
			slog.String("path", path),
			slog.String("error", err.Error()))
		return err
	}

	events := make([]models.Event, 0, len(raw))
	for _, r := range raw {
		events = append(events, Normalize(r))
	}

	s.mu.Lock()
	s.events = events
	s.mu.Unlock()

	slog.Info("dataset loaded", slog.String("path", path), slog.Int("events", len(events)))
	return nil
}

// SetEvents replaces the store contents directly. Intended for tests and the
// one-shot CLI path.
func (s *EventStore) SetEvents(events []models.Event) {
	s.mu.Lock()
	s.events = events
	s.mu.Unlock()
}

// Normalize converts a raw dataset record into a normalized Event: category
// aliasing, risk derivation from the label, VPN service tagging, and MFA
// auth-method detection from signature or details.
func Normalize(r RawRecord) models.Event {
	eventType := r.EventType
	if alias, ok := eventTypeAliases[r.EventType]; ok {
		eventType = alias
	}

	risk := models.RiskLow
	switch r.Label {
	case "high_risk":
		risk = models.RiskHigh
	case "suspicious":
		risk = models.RiskMedium
	}

	var srcService, dstService string
	if r.EventType == "vpn_access" {
		srcService = "vpn"
		dstService = "vpn"
	}

	var authMethod string
	if mentionsMFA(r.Signature) || mentionsMFA(r.Details) {
		authMethod = "mfa"
	}

	ts, err := time.Parse(time.RFC3339, r.Timestamp)
	if err != nil {
		// Kept with a zero timestamp: the event still counts toward totals,
		// it just never lands in a timeline bucket or a time-bounded range.
		ts = time.Time{}
	}

	return models.Event{
		ID:         uuid.NewString(),
		Timestamp:  ts.UTC(),
		SrcIP:      r.SourceIP,
		DstIP:      r.DestinationIP,
		EventType:  eventType,
		Message:    r.Details,
		Signature:  r.Signature,
		SrcService: srcService,
		DstService: dstService,
		AuthMethod: authMethod,
		Username:   r.Username,
		Label:      r.Label,
		RiskLevel:  risk,
	}
}

func mentionsMFA(s string) bool {
	lower := strings.ToLower(s)
	return strings.Contains(lower, "mfa") || strings.Contains(lower, "multi-factor")
}

// Len returns the number of events in the store.
func (s *EventStore) Len() int {
	s.mu.RLock()
	defer s.mu.RUnlock()
	return len(s.events)
}

// Events returns a copy of the full event list in load order.
func (s *EventStore) Events() []models.Event {
	s.mu.RLock()
	defer s.mu.RUnlock()
	out := make([]models.Event, len(s.events))
	copy(out, s.events)
	return out
}

// Filter applies the clause plan as a sequential narrowing chain (logical AND
// across clause kinds), preserving store iteration order.
func (s *EventStore) Filter(plan []models.Clause) []models.Event {
	results := s.Events()
	for _, clause := range plan {
		results = applyClause(results, clause)
	}
	return results
}

func applyClause(events []models.Event, clause models.Clause) []models.Event {
	switch clause.Kind {
	case models.ClauseTime:
		return filterTime(events, clause.Time)
	case models.ClauseEventType:
		return filterFunc(events, func(e models.Event) bool {
			return e.EventType == clause.Value
		})
	case models.ClauseVPN:
		return filterFunc(events, func(e models.Event) bool {
			return e.SrcService == "vpn" || e.DstService == "vpn"
		})
	case models.ClauseMFA:
		return filterFunc(events, func(e models.Event) bool {
			return e.AuthMethod == "mfa"
		})
	case models.ClauseSuspicious:
		return filterFunc(events, func(e models.Event) bool {
			return e.Label == "suspicious"
		})
	case models.ClauseUsername:
		return filterFunc(events, func(e models.Event) bool {
			return e.Username == clause.Value
		})
	case models.ClauseIPs:
		return filterFunc(events, func(e models.Event) bool {
			return inSet(clause.Values, e.SrcIP) || inSet(clause.Values, e.DstIP)
		})
	case models.ClauseExcludeIPs:
		return filterFunc(events, func(e models.Event) bool {
			return !inSet(clause.Values, e.SrcIP) && !inSet(clause.Values, e.DstIP)
		})
	default:
		return events
	}
}

func filterTime(events []models.Event, tr *models.TimeRange) []models.Event {
	if tr == nil {
		return events
	}
	start, end, ok := Bounds(tr)
	if !ok {
		// Unparseable bounds match nothing rather than everything.
		return nil
	}
	return filterFunc(events, func(e models.Event) bool {
		if e.Timestamp.IsZero() {
			return false
		}
		return !e.Timestamp.Before(start) && e.Timestamp.Before(end)
	})
}

// Bounds resolves a time range to concrete [start, end) instants. A date-only
// end bound is extended by one day so the whole end day is included; a full
// timestamp end stays exclusive as given. The renderer applies the same rule,
// keeping the displayed query in lockstep with what actually executes.
func Bounds(tr *models.TimeRange) (start, end time.Time, ok bool) {
	start, err := parseBound(tr.Start)
	if err != nil {
		return time.Time{}, time.Time{}, false
	}
	end, err = parseBound(tr.End)
	if err != nil {
		return time.Time{}, time.Time{}, false
	}
	if tr.DateOnly() {
		end = end.AddDate(0, 0, 1)
	}
	return start, end, true
}

func parseBound(s string) (time.Time, error) {
	if strings.Contains(s, "T") {
		return time.Parse(time.RFC3339, s)
	}
	return time.Parse("2006-01-02", s)
}

func filterFunc(events []models.Event, keep func(models.Event) bool) []models.Event {
	out := events[:0:0]
	for _, e := range events {
		if keep(e) {
			out = append(out, e)
		}
	}
	return out
}

func inSet(set []string, v string) bool {
	if v == "" {
		return false
	}
	for _, s := range set {
		if s == v {
			return true
		}
	}
	return false
}
