// Package interpreter turns a natural-language question into a structured
// query descriptor. It is a deterministic rule table over lowercased text, not
// a grammar parser: phrase sets assign fields in a fixed priority order, and
// dotted-quad / username tokens are pulled out with regular expressions.
package interpreter

import (
	"regexp"
	"strings"
	"time"

	"github.com/seclens/seclens/internal/models"
)

var (
	ipPattern      = regexp.MustCompile(`\b(\d{1,3}(?:\.\d{1,3}){3})\b`)
	ipExactPattern = regexp.MustCompile(`^\d{1,3}(?:\.\d{1,3}){3}$`)
	excludePattern = regexp.MustCompile(`exclude\s+([0-9.]+)`)
	userPattern    = regexp.MustCompile(`user(?:name)?\s*[:=]?\s*([a-z][\w.\-]+)`)
	forUserPattern = regexp.MustCompile(`\bfor\s+([a-z][\w.\-]+)\b`)
)

// Interpreter converts question text to a ParsedQuery. It is pure apart from
// reading the clock for relative-date resolution; the clock is injectable so
// tests can pin "now".
type Interpreter struct {
	rules ruleSet
	now   func() time.Time
}

// Option configures an Interpreter.
type Option func(*Interpreter)

// WithClock overrides the wall clock used for relative time phrases.
func WithClock(now func() time.Time) Option {
	return func(i *Interpreter) { i.now = now }
}

// New returns an Interpreter with the embedded rule table.
func New(opts ...Option) *Interpreter {
	i := &Interpreter{
		rules: mustLoadRules(),
		now:   time.Now,
	}
	for _, opt := range opts {
		opt(i)
	}
	return i
}

// Interpret extracts intent, time range, and filters from the question. The
// prior descriptor, when given, is attached as context for traceability; the
// caller decides whether to merge it into the new descriptor.
func (i *Interpreter) Interpret(query string, prior *models.ParsedQuery) *models.ParsedQuery {
	text := strings.ToLower(query)
	parsed := &models.ParsedQuery{
		Intent: models.IntentInvestigate,
		Raw:    query,
	}

	if containsAny(text, i.rules.Intent.Report) {
		parsed.Intent = models.IntentReport
	}

	parsed.TimeRange = resolveTimeRange(text, i.now())

	// Filter rules run in table order; a later event_type rule overrides an
	// earlier one, so malware wins over login categories when both match.
	for _, rule := range i.rules.Filters {
		if !containsAny(text, rule.Phrases) {
			continue
		}
		switch rule.Field {
		case "event_type":
			parsed.Filters.EventType = rule.Value
		case "vpn":
			parsed.Filters.VPN = true
		case "mfa":
			parsed.Filters.MFA = true
		case "suspicious":
			parsed.Filters.Suspicious = true
		}
	}

	// Any dotted quad of 1-3 digit groups qualifies, out-of-range octets
	// included; the dataset is the source of truth, not address validity.
	if ips := ipPattern.FindAllString(text, -1); len(ips) > 0 {
		parsed.Filters.IPs = ips
	}

	if matches := excludePattern.FindAllStringSubmatch(text, -1); len(matches) > 0 {
		excluded := make([]string, 0, len(matches))
		for _, m := range matches {
			excluded = append(excluded, m[1])
		}
		parsed.Filters.ExcludeIPs = excluded
	}

	if user := extractUsername(text); user != "" {
		parsed.Filters.Username = user
	}

	// Quantity phrases are a second, independent trigger for report intent.
	if containsAny(text, i.rules.Intent.Quantity) {
		parsed.Intent = models.IntentReport
	}

	if prior != nil {
		parsed.Context = prior
	}

	return parsed
}

// extractUsername tries "user[:=] token" first, then "for token", rejecting a
// candidate that is itself a dotted quad so an address is never misread as a
// username.
func extractUsername(text string) string {
	m := userPattern.FindStringSubmatch(text)
	if m == nil {
		m = forUserPattern.FindStringSubmatch(text)
	}
	if m == nil {
		return ""
	}
	if ipExactPattern.MatchString(m[1]) {
		return ""
	}
	return m[1]
}

func containsAny(text string, phrases []string) bool {
	for _, p := range phrases {
		if strings.Contains(text, p) {
			return true
		}
	}
	return false
}
