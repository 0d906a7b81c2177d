// Package aggregate computes summary statistics and chart-ready series from a
// matched event set. Everything here is a deterministic, pure function of the
// input sequence.
package aggregate

import (
	"fmt"
	"sort"

	"github.com/seclens/seclens/internal/models"
)

const (
	topN        = 5
	displayCap  = 20
	noEventsMsg = "No events found matching the specified criteria."
)

// Aggregate builds a QueryResult from the matched events. The clause plan is
// consulted only for the time-range display string; QueryDSL is left for the
// caller to fill in.
func Aggregate(events []models.Event, plan []models.Clause) *models.QueryResult {
	uniqueIPs := make(map[string]struct{})
	uniqueUsers := make(map[string]struct{})
	highRisk := 0
	for _, e := range events {
		uniqueIPs[e.SrcIP] = struct{}{}
		if e.Username != "" {
			uniqueUsers[e.Username] = struct{}{}
		}
		if e.RiskLevel == models.RiskHigh {
			highRisk++
		}
	}

	topIPs := topCounts(events, topN, func(e models.Event) string { return e.SrcIP })
	topUsers := topCounts(events, topN, func(e models.Event) string { return e.Username })

	narrative := noEventsMsg
	if len(events) > 0 {
		narrative = fmt.Sprintf(
			"Found %d matching security events. Analysis shows %d high-risk events from %d unique source IPs.",
			len(events), highRisk, len(uniqueIPs))
	}

	display := events
	if len(display) > displayCap {
		display = display[:displayCap]
	}
	if display == nil {
		display = []models.Event{}
	}

	return &models.QueryResult{
		Narrative: narrative,
		Events:    display,
		ChartData: models.ChartData{
			SourceIP: topIPs,
			Timeline: timeline(events),
			Users:    topUsers,
		},
		Stats: models.Stats{
			TotalEvents:    len(events),
			UniqueIPs:      len(uniqueIPs),
			UniqueUsers:    len(uniqueUsers),
			HighRiskEvents: highRisk,
			TimeRange:      timeRangeLabel(plan),
		},
	}
}

// topCounts returns the n most frequent non-empty keys by descending count.
// Ties keep first-encounter order, so an address seen earlier in the store
// ranks above a later one with the same count.
func topCounts(events []models.Event, n int, key func(models.Event) string) models.ChartSeries {
	counts := make(map[string]int)
	var order []string
	for _, e := range events {
		k := key(e)
		if k == "" {
			continue
		}
		if _, seen := counts[k]; !seen {
			order = append(order, k)
		}
		counts[k]++
	}

	sort.SliceStable(order, func(i, j int) bool {
		return counts[order[i]] > counts[order[j]]
	})
	if len(order) > n {
		order = order[:n]
	}

	series := models.ChartSeries{Labels: []string{}, Values: []int{}}
	for _, k := range order {
		series.Labels = append(series.Labels, k)
		series.Values = append(series.Values, counts[k])
	}
	return series
}

// timeline buckets events by UTC hour of day ("HH:00"). Labels sort
// lexicographically, which is chronological for same-day data. Events with a
// zero timestamp are skipped here but still count toward every other
// aggregate.
func timeline(events []models.Event) models.ChartSeries {
	buckets := make(map[string]int)
	for _, e := range events {
		if e.Timestamp.IsZero() {
			continue
		}
		buckets[e.Timestamp.UTC().Format("15")+":00"]++
	}

	labels := make([]string, 0, len(buckets))
	for k := range buckets {
		labels = append(labels, k)
	}
	sort.Strings(labels)

	series := models.ChartSeries{Labels: labels, Values: make([]int, len(labels))}
	for i, k := range labels {
		series.Values[i] = buckets[k]
	}
	return series
}

// timeRangeLabel shows the descriptor's raw bounds, not the adjusted ones: the
// stats line tells the user what they asked for, the DSL tells them what ran.
func timeRangeLabel(plan []models.Clause) string {
	for _, c := range plan {
		if c.Kind == models.ClauseTime && c.Time != nil {
			return fmt.Sprintf("%s to %s", c.Time.Start, c.Time.End)
		}
	}
	return "All time"
}
