package aggregate

import (
	"fmt"
	"testing"
	"time"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/seclens/seclens/internal/models"
)

func eventAt(hour int, srcIP, username, risk string) models.Event {
	return models.Event{
		ID:        fmt.Sprintf("%s-%s-%d", srcIP, username, hour),
		Timestamp: time.Date(2024, 3, 14, hour, 0, 0, 0, time.UTC),
		SrcIP:     srcIP,
		EventType: "failed_login",
		Username:  username,
		RiskLevel: risk,
	}
}

func TestAggregate_Empty(t *testing.T) {
	result := Aggregate(nil, nil)

	assert.Equal(t, "No events found matching the specified criteria.", result.Narrative)
	assert.NotNil(t, result.Events)
	assert.Empty(t, result.Events)
	assert.Equal(t, 0, result.Stats.TotalEvents)
	assert.Equal(t, "All time", result.Stats.TimeRange)
	assert.Empty(t, result.ChartData.Timeline.Labels)
}

func TestAggregate_Narrative(t *testing.T) {
	events := []models.Event{
		eventAt(8, "10.0.0.1", "alice", models.RiskHigh),
		eventAt(9, "10.0.0.2", "bob", models.RiskLow),
		eventAt(10, "10.0.0.1", "alice", models.RiskHigh),
	}

	result := Aggregate(events, nil)
	assert.Equal(t,
		"Found 3 matching security events. Analysis shows 2 high-risk events from 2 unique source IPs.",
		result.Narrative)
	assert.Equal(t, 3, result.Stats.TotalEvents)
	assert.Equal(t, 2, result.Stats.UniqueIPs)
	assert.Equal(t, 2, result.Stats.UniqueUsers)
	assert.Equal(t, 2, result.Stats.HighRiskEvents)
}

func TestAggregate_TopIPs(t *testing.T) {
	var events []models.Event
	// 10.0.0.2 three times, 10.0.0.1 twice, four singles.
	for i := 0; i < 3; i++ {
		events = append(events, eventAt(8+i, "10.0.0.2", "bob", models.RiskLow))
	}
	for i := 0; i < 2; i++ {
		events = append(events, eventAt(11+i, "10.0.0.1", "alice", models.RiskLow))
	}
	for i := 0; i < 4; i++ {
		events = append(events, eventAt(13+i, fmt.Sprintf("10.0.1.%d", i), "carol", models.RiskLow))
	}

	result := Aggregate(events, nil)
	series := result.ChartData.SourceIP

	require.Len(t, series.Labels, 5)
	assert.Equal(t, "10.0.0.2", series.Labels[0])
	assert.Equal(t, 3, series.Values[0])
	assert.Equal(t, "10.0.0.1", series.Labels[1])
	assert.Equal(t, 2, series.Values[1])
	// Ties keep first-encounter order.
	assert.Equal(t, []string{"10.0.1.0", "10.0.1.1"}, series.Labels[2:4])
}

func TestAggregate_TopUsersSkipsEmpty(t *testing.T) {
	events := []models.Event{
		eventAt(8, "10.0.0.1", "alice", models.RiskLow),
		eventAt(9, "10.0.0.2", "", models.RiskLow),
		eventAt(10, "10.0.0.3", "alice", models.RiskLow),
	}

	result := Aggregate(events, nil)
	assert.Equal(t, []string{"alice"}, result.ChartData.Users.Labels)
	assert.Equal(t, []int{2}, result.ChartData.Users.Values)
	assert.Equal(t, 1, result.Stats.UniqueUsers)
}

func TestAggregate_Timeline(t *testing.T) {
	events := []models.Event{
		eventAt(9, "10.0.0.1", "alice", models.RiskLow),
		eventAt(9, "10.0.0.2", "bob", models.RiskLow),
		eventAt(14, "10.0.0.1", "alice", models.RiskLow),
		// Zero timestamp is counted in totals but not bucketed.
		{ID: "zero", SrcIP: "10.0.0.9", EventType: "failed_login"},
	}

	result := Aggregate(events, nil)
	assert.Equal(t, []string{"09:00", "14:00"}, result.ChartData.Timeline.Labels)
	assert.Equal(t, []int{2, 1}, result.ChartData.Timeline.Values)
	assert.Equal(t, 4, result.Stats.TotalEvents)
}

func TestAggregate_DisplayCap(t *testing.T) {
	var events []models.Event
	for i := 0; i < 25; i++ {
		events = append(events, eventAt(i%24, fmt.Sprintf("10.0.0.%d", i), "alice", models.RiskLow))
	}

	result := Aggregate(events, nil)
	assert.Len(t, result.Events, 20)
	assert.Equal(t, 25, result.Stats.TotalEvents)
	// The cap takes the first events in order.
	assert.Equal(t, "10.0.0.0", result.Events[0].SrcIP)
	assert.Equal(t, "10.0.0.19", result.Events[19].SrcIP)
}

func TestAggregate_TimeRangeLabel(t *testing.T) {
	plan := []models.Clause{{
		Kind: models.ClauseTime,
		Time: &models.TimeRange{Start: "2024-03-14", End: "2024-03-14"},
	}}

	result := Aggregate(nil, plan)
	// The label shows the raw descriptor bounds, not the adjusted ones.
	assert.Equal(t, "2024-03-14 to 2024-03-14", result.Stats.TimeRange)
}
