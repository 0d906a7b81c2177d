// Package translator converts a parsed query descriptor into two lockstep
// artifacts: the ordered clause plan the filter engine executes, and a
// display-only Elasticsearch-style DSL whose clauses correspond 1:1 with the
// plan. The DSL is never sent to any engine; it exists so an analyst can see
// exactly what was executed in a familiar syntax.
package translator

import (
	"encoding/json"
	"fmt"
	"strings"
	"time"

	"github.com/seclens/seclens/internal/models"
)

// Translator builds DSL text and clause plans from descriptors.
type Translator struct{}

// New returns a Translator.
func New() *Translator {
	return &Translator{}
}

// Translate returns the rendered DSL and the ordered clause plan for the
// descriptor. It is a pure function: translating the same descriptor twice
// yields identical output.
func (t *Translator) Translate(parsed *models.ParsedQuery) (string, []models.Clause) {
	var clauses []string
	var plan []models.Clause

	if parsed.TimeRange != nil {
		clauses = append(clauses, t.renderTimeClause(parsed.TimeRange))
		plan = append(plan, models.Clause{Kind: models.ClauseTime, Time: parsed.TimeRange})
	}

	if parsed.Filters.EventType != "" {
		clauses = append(clauses, fmt.Sprintf(`"term": { "event_type": %q }`, parsed.Filters.EventType))
		plan = append(plan, models.Clause{Kind: models.ClauseEventType, Value: parsed.Filters.EventType})
	}

	if parsed.Filters.VPN {
		clauses = append(clauses, `"bool": { "should": [{ "term": { "src_service": "vpn" } }, { "term": { "dst_service": "vpn" } }] }`)
		plan = append(plan, models.Clause{Kind: models.ClauseVPN})
	}

	if parsed.Filters.MFA {
		clauses = append(clauses, `"term": { "auth_method": "mfa" }`)
		plan = append(plan, models.Clause{Kind: models.ClauseMFA})
	}

	if parsed.Filters.Suspicious {
		clauses = append(clauses, `"term": { "label": "suspicious" }`)
		plan = append(plan, models.Clause{Kind: models.ClauseSuspicious})
	}

	if parsed.Filters.Username != "" {
		clauses = append(clauses, fmt.Sprintf(`"term": { "username": %q }`, parsed.Filters.Username))
		plan = append(plan, models.Clause{Kind: models.ClauseUsername, Value: parsed.Filters.Username})
	}

	if len(parsed.Filters.IPs) > 0 {
		ips := mustJSON(parsed.Filters.IPs)
		clauses = append(clauses, fmt.Sprintf(`"bool": { "should": [{ "terms": { "src_ip": %s } }, { "terms": { "dst_ip": %s } }] }`, ips, ips))
		plan = append(plan, models.Clause{Kind: models.ClauseIPs, Values: parsed.Filters.IPs})
	}

	if len(parsed.Filters.ExcludeIPs) > 0 {
		ips := mustJSON(parsed.Filters.ExcludeIPs)
		clauses = append(clauses, fmt.Sprintf(`"bool": { "must_not": [{ "terms": { "src_ip": %s } }, { "terms": { "dst_ip": %s } }] }`, ips, ips))
		plan = append(plan, models.Clause{Kind: models.ClauseExcludeIPs, Values: parsed.Filters.ExcludeIPs})
	}

	wrapped := make([]string, len(clauses))
	for i, c := range clauses {
		wrapped[i] = fmt.Sprintf("{ %s }", c)
	}

	dsl := fmt.Sprintf(`{
  "query": {
    "bool": {
      "must": [
        %s
      ]
    }
  }
}`, strings.Join(wrapped, ",\n        "))

	return dsl, plan
}

// renderTimeClause emits a [gte, lt) range using the same end adjustment as
// the filter engine: date-only ends gain one day, full-timestamp ends pass
// through unchanged.
func (t *Translator) renderTimeClause(tr *models.TimeRange) string {
	end := tr.End
	if tr.DateOnly() {
		if d, err := time.Parse("2006-01-02", tr.End); err == nil {
			end = d.AddDate(0, 0, 1).Format("2006-01-02")
		}
	}
	return fmt.Sprintf(`"range": { "@timestamp": { "gte": %q, "lt": %q } }`, tr.Start, end)
}

func mustJSON(v interface{}) string {
	b, err := json.Marshal(v)
	if err != nil {
		return "[]"
	}
	return string(b)
}
