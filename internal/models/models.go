package models

import "time"

// Risk levels derived from the raw label on ingestion.
const (
	RiskHigh   = "high"
	RiskMedium = "medium"
	RiskLow    = "low"
)

// Intents recognized by the interpreter.
const (
	IntentInvestigate = "investigate"
	IntentReport      = "report"
)

// Event is one normalized security log record. Events are immutable after load.
type Event struct {
	ID         string    `json:"id"`
	Timestamp  time.Time `json:"timestamp"`
	SrcIP      string    `json:"src_ip"`
	DstIP      string    `json:"dst_ip,omitempty"`
	EventType  string    `json:"event_type"`
	Message    string    `json:"message"`
	Signature  string    `json:"signature,omitempty"`
	SrcService string    `json:"src_service,omitempty"`
	DstService string    `json:"dst_service,omitempty"`
	AuthMethod string    `json:"auth_method,omitempty"`
	Username   string    `json:"username,omitempty"`
	Label      string    `json:"label,omitempty"`
	RiskLevel  string    `json:"risk_level"`
}

// TimeRange bounds a query with ISO date or RFC3339 timestamp strings.
// The precision of End carries meaning: a date-only end is inclusive of the
// whole day (the filter and renderer both add one day and compare exclusively),
// while a full timestamp end is exclusive as given.
type TimeRange struct {
	Start string `json:"start"`
	End   string `json:"end"`
}

// DateOnly reports whether the end bound has no time-of-day component.
func (tr *TimeRange) DateOnly() bool {
	return !containsT(tr.End)
}

func containsT(s string) bool {
	for i := 0; i < len(s); i++ {
		if s[i] == 'T' {
			return true
		}
	}
	return false
}

// Filters is the tagged filter set extracted from a question. Zero values mean
// "not present"; the interpreter only ever sets fields it detected, which is
// what makes the follow-up overlay merge well defined.
type Filters struct {
	EventType  string   `json:"event_type,omitempty"`
	VPN        bool     `json:"vpn,omitempty"`
	MFA        bool     `json:"mfa,omitempty"`
	Suspicious bool     `json:"suspicious,omitempty"`
	Username   string   `json:"username,omitempty"`
	IPs        []string `json:"ips,omitempty"`
	ExcludeIPs []string `json:"exclude_ips,omitempty"`
}

// MergeFilters overlays the fields set in next onto a copy of prior. Fields the
// new query did not set persist from the prior turn; fields it did set win.
func MergeFilters(prior, next Filters) Filters {
	merged := prior
	if next.EventType != "" {
		merged.EventType = next.EventType
	}
	if next.VPN {
		merged.VPN = true
	}
	if next.MFA {
		merged.MFA = true
	}
	if next.Suspicious {
		merged.Suspicious = true
	}
	if next.Username != "" {
		merged.Username = next.Username
	}
	if len(next.IPs) > 0 {
		merged.IPs = next.IPs
	}
	if len(next.ExcludeIPs) > 0 {
		merged.ExcludeIPs = next.ExcludeIPs
	}
	return merged
}

// ParsedQuery is the structured descriptor produced from a natural-language
// question. Context, when present, is the prior turn's descriptor and is kept
// for traceability only.
type ParsedQuery struct {
	Intent    string       `json:"intent"`
	TimeRange *TimeRange   `json:"time_range,omitempty"`
	Filters   Filters      `json:"filters"`
	Raw       string       `json:"raw"`
	Context   *ParsedQuery `json:"context,omitempty"`
}

// ClauseKind identifies one filter clause in a query plan.
type ClauseKind string

const (
	ClauseTime       ClauseKind = "time"
	ClauseEventType  ClauseKind = "event_type"
	ClauseVPN        ClauseKind = "vpn"
	ClauseMFA        ClauseKind = "mfa"
	ClauseSuspicious ClauseKind = "suspicious"
	ClauseUsername   ClauseKind = "username"
	ClauseIPs        ClauseKind = "ips"
	ClauseExcludeIPs ClauseKind = "exclude_ips"
)

// Clause is one step of the ordered filter plan shared by the filter engine and
// the DSL renderer. Exactly one payload field is meaningful per kind: Time for
// time clauses, Value for event_type/username, Values for ips/exclude_ips; the
// boolean kinds carry no payload.
type Clause struct {
	Kind   ClauseKind `json:"kind"`
	Time   *TimeRange `json:"time,omitempty"`
	Value  string     `json:"value,omitempty"`
	Values []string   `json:"values,omitempty"`
}

// Turn is one request/response exchange retained in the session history.
type Turn struct {
	ID          string      `json:"id"`
	SessionID   string      `json:"session_id"`
	UserQuery   string      `json:"user_query"`
	Parsed      ParsedQuery `json:"parsed_query"`
	QueryDSL    string      `json:"query_dsl"`
	ResultCount int         `json:"result_count"`
	Timestamp   time.Time   `json:"timestamp"`
}

// ChartSeries is one labeled series for the dashboard charts.
type ChartSeries struct {
	Labels []string `json:"labels"`
	Values []int    `json:"values"`
}

// ChartData groups the chart-ready aggregates of a query result.
type ChartData struct {
	SourceIP ChartSeries `json:"source_ip"`
	Timeline ChartSeries `json:"timeline"`
	Users    ChartSeries `json:"users"`
}

// Stats summarizes a matched event set.
type Stats struct {
	TotalEvents    int    `json:"total_events"`
	UniqueIPs      int    `json:"unique_ips"`
	UniqueUsers    int    `json:"unique_users"`
	HighRiskEvents int    `json:"high_risk_events"`
	TimeRange      string `json:"time_range"`
}

// QueryResult is the response payload for one processed question. Events is
// capped to the first 20 matches in store order; it is a display cap, not a
// pagination cursor.
type QueryResult struct {
	Narrative string    `json:"narrative"`
	QueryDSL  string    `json:"query_dsl"`
	Events    []Event   `json:"events"`
	ChartData ChartData `json:"chart_data"`
	Stats     Stats     `json:"stats"`
}

// ChatRequest is the body of POST /api/v1/chat.
type ChatRequest struct {
	Message string `json:"message"`
}

// ChatResponse echoes the question alongside the parsed descriptor and result.
type ChatResponse struct {
	Message     string       `json:"message"`
	ParsedQuery *ParsedQuery `json:"parsed_query"`
	Results     *QueryResult `json:"results"`
}
