package interpreter

import (
	"testing"
	"time"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/seclens/seclens/internal/models"
)

// Friday, mid-morning UTC. Chosen so weekday math has a non-trivial answer.
var fixedNow = time.Date(2024, 3, 15, 10, 0, 0, 0, time.UTC)

func newFixed(t *testing.T) *Interpreter {
	t.Helper()
	return New(WithClock(func() time.Time { return fixedNow }))
}

func TestInterpret_Intent(t *testing.T) {
	tests := []struct {
		name   string
		query  string
		intent string
	}{
		{"plain question", "show me failed logins", models.IntentInvestigate},
		{"summary phrase", "give me a summary of activity", models.IntentReport},
		{"chart phrase", "chart of vpn connections", models.IntentReport},
		{"monthly report", "monthly report please", models.IntentReport},
		{"how many", "how many failed logins today", models.IntentReport},
		{"count", "count of malware events", models.IntentReport},
		{"stats", "login stats for this week", models.IntentReport},
		{"total", "total suspicious events", models.IntentReport},
	}

	i := newFixed(t)
	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			parsed := i.Interpret(tt.query, nil)
			assert.Equal(t, tt.intent, parsed.Intent)
		})
	}
}

func TestInterpret_EventTypes(t *testing.T) {
	tests := []struct {
		name    string
		query   string
		filters models.Filters
	}{
		{
			name:    "failed login",
			query:   "show failed logins",
			filters: models.Filters{EventType: "failed_login"},
		},
		{
			name:    "invalid credentials",
			query:   "any invalid credentials events",
			filters: models.Filters{EventType: "failed_login"},
		},
		{
			name:    "successful login",
			query:   "successful logins please",
			filters: models.Filters{EventType: "successful_login"},
		},
		{
			name:    "vpn",
			query:   "vpn connections",
			filters: models.Filters{VPN: true},
		},
		{
			name:    "remote access",
			query:   "remote access sessions",
			filters: models.Filters{VPN: true},
		},
		{
			name:    "mfa",
			query:   "logins with mfa",
			filters: models.Filters{MFA: true},
		},
		{
			name:    "two-factor",
			query:   "two-factor authentications",
			filters: models.Filters{MFA: true},
		},
		{
			name:    "malware",
			query:   "malware detections",
			filters: models.Filters{EventType: "malware"},
		},
		{
			name:    "ransomware",
			query:   "any ransomware activity",
			filters: models.Filters{EventType: "malware"},
		},
		{
			name:    "suspicious",
			query:   "suspicious behavior",
			filters: models.Filters{Suspicious: true},
		},
		{
			name:    "anomaly",
			query:   "show anomaly events",
			filters: models.Filters{Suspicious: true},
		},
	}

	i := newFixed(t)
	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			parsed := i.Interpret(tt.query, nil)
			assert.Equal(t, tt.filters, parsed.Filters)
		})
	}
}

// A question naming both a login category and malware resolves to malware:
// the malware rule runs later in the table and overwrites event_type.
func TestInterpret_MalwareOverridesLogin(t *testing.T) {
	i := newFixed(t)
	parsed := i.Interpret("failed logins caused by malware", nil)
	assert.Equal(t, "malware", parsed.Filters.EventType)
}

func TestInterpret_TimeRanges(t *testing.T) {
	tests := []struct {
		name  string
		query string
		want  *models.TimeRange
	}{
		{
			name:  "no time phrase",
			query: "failed logins",
			want:  nil,
		},
		{
			name:  "yesterday",
			query: "failed logins yesterday",
			want:  &models.TimeRange{Start: "2024-03-14", End: "2024-03-14"},
		},
		{
			name:  "today",
			query: "what happened today",
			want:  &models.TimeRange{Start: "2024-03-15", End: "2024-03-15"},
		},
		{
			name:  "past week",
			query: "events from the past week",
			want: &models.TimeRange{
				Start: "2024-03-08T10:00:00Z",
				End:   "2024-03-15T10:00:00Z",
			},
		},
		{
			name:  "last week is previous monday through sunday",
			query: "events from last week",
			want:  &models.TimeRange{Start: "2024-03-04", End: "2024-03-10"},
		},
		{
			name:  "this week is monday through today",
			query: "events this week",
			want:  &models.TimeRange{Start: "2024-03-11", End: "2024-03-15"},
		},
		{
			name:  "past month rolls back 30 days",
			query: "summary for the past month",
			want: &models.TimeRange{
				Start: "2024-02-14T10:00:00Z",
				End:   "2024-03-15T10:00:00Z",
			},
		},
		{
			name:  "last month is previous calendar month",
			query: "events last month",
			want:  &models.TimeRange{Start: "2024-02-01", End: "2024-02-29"},
		},
		{
			name:  "this month starts on the 1st",
			query: "events this month",
			want:  &models.TimeRange{Start: "2024-03-01", End: "2024-03-15"},
		},
		{
			name:  "last 24 hours",
			query: "activity in the last 24 hours",
			want: &models.TimeRange{
				Start: "2024-03-14T10:00:00Z",
				End:   "2024-03-15T10:00:00Z",
			},
		},
		{
			name:  "past 24 hours",
			query: "activity in the past 24 hours",
			want: &models.TimeRange{
				Start: "2024-03-14T10:00:00Z",
				End:   "2024-03-15T10:00:00Z",
			},
		},
	}

	i := newFixed(t)
	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			parsed := i.Interpret(tt.query, nil)
			assert.Equal(t, tt.want, parsed.TimeRange)
		})
	}
}

func TestInterpret_LastWeekOnSunday(t *testing.T) {
	sunday := time.Date(2024, 3, 17, 12, 0, 0, 0, time.UTC)
	i := New(WithClock(func() time.Time { return sunday }))

	parsed := i.Interpret("events last week", nil)
	require.NotNil(t, parsed.TimeRange)
	assert.Equal(t, "2024-03-04", parsed.TimeRange.Start)
	assert.Equal(t, "2024-03-10", parsed.TimeRange.End)

	parsed = i.Interpret("events this week", nil)
	require.NotNil(t, parsed.TimeRange)
	assert.Equal(t, "2024-03-11", parsed.TimeRange.Start)
	assert.Equal(t, "2024-03-17", parsed.TimeRange.End)
}

func TestInterpret_IPs(t *testing.T) {
	i := newFixed(t)

	t.Run("single ip", func(t *testing.T) {
		parsed := i.Interpret("events from 192.168.1.50", nil)
		assert.Equal(t, []string{"192.168.1.50"}, parsed.Filters.IPs)
	})

	t.Run("multiple ips", func(t *testing.T) {
		parsed := i.Interpret("traffic between 10.0.0.1 and 10.0.0.2", nil)
		assert.Equal(t, []string{"10.0.0.1", "10.0.0.2"}, parsed.Filters.IPs)
	})

	t.Run("out of range octets still match", func(t *testing.T) {
		parsed := i.Interpret("events from 999.999.999.999", nil)
		assert.Equal(t, []string{"999.999.999.999"}, parsed.Filters.IPs)
	})

	t.Run("exclude ip", func(t *testing.T) {
		parsed := i.Interpret("all events exclude 10.0.0.5", nil)
		assert.Equal(t, []string{"10.0.0.5"}, parsed.Filters.ExcludeIPs)
		// The excluded address is still captured by the plain IP scan.
		assert.Equal(t, []string{"10.0.0.5"}, parsed.Filters.IPs)
	})
}

func TestInterpret_Username(t *testing.T) {
	tests := []struct {
		name  string
		query string
		want  string
	}{
		{"user colon", "events for user: alice", "alice"},
		{"user equals", "user=bob.smith failed logins", "bob.smith"},
		{"username keyword", "username jdoe activity", "jdoe"},
		{"for phrase", "failed logins for charlie", "charlie"},
		{"no username", "failed logins yesterday", ""},
		{"ip after for is not a username", "events for 10.0.0.1", ""},
	}

	i := newFixed(t)
	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			parsed := i.Interpret(tt.query, nil)
			assert.Equal(t, tt.want, parsed.Filters.Username)
		})
	}
}

func TestInterpret_AttachesPriorContext(t *testing.T) {
	i := newFixed(t)

	first := i.Interpret("failed logins yesterday", nil)
	assert.Nil(t, first.Context)

	second := i.Interpret("only vpn", first)
	require.NotNil(t, second.Context)
	assert.Equal(t, "failed logins yesterday", second.Context.Raw)
	// Interpret itself does not merge; that is the caller's decision.
	assert.Empty(t, second.Filters.EventType)
	assert.True(t, second.Filters.VPN)
}

func TestInterpret_RawPreservesCase(t *testing.T) {
	i := newFixed(t)
	parsed := i.Interpret("Show Me FAILED Logins", nil)
	assert.Equal(t, "Show Me FAILED Logins", parsed.Raw)
	assert.Equal(t, "failed_login", parsed.Filters.EventType)
}
