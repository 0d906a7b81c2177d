package interpreter

import (
	"strings"
	"time"

	"github.com/seclens/seclens/internal/models"
)

const dateOnly = "2006-01-02"

// timeTrigger pairs a phrase with the range it resolves to. Triggers are
// mutually exclusive and checked in a fixed order: only the first match
// applies, so "past week" must come before "last week" never matters, but
// "last 24 hours" must come after the calendar phrases that contain "last".
type timeTrigger struct {
	phrases []string
	resolve func(now time.Time) *models.TimeRange
}

var timeTriggers = []timeTrigger{
	{phrases: []string{"yesterday"}, resolve: rangeYesterday},
	{phrases: []string{"today"}, resolve: rangeToday},
	{phrases: []string{"past week"}, resolve: rangePastWeek},
	{phrases: []string{"last week"}, resolve: rangeLastWeek},
	{phrases: []string{"this week"}, resolve: rangeThisWeek},
	{phrases: []string{"past month"}, resolve: rangePastMonth},
	{phrases: []string{"last month"}, resolve: rangeLastMonth},
	{phrases: []string{"this month"}, resolve: rangeThisMonth},
	{phrases: []string{"last 24 hours", "past 24 hours"}, resolve: rangeLast24Hours},
}

// resolveTimeRange returns the range for the first matching trigger, or nil
// when the text carries no recognized time phrase.
func resolveTimeRange(text string, now time.Time) *models.TimeRange {
	for _, t := range timeTriggers {
		for _, p := range t.phrases {
			if strings.Contains(text, p) {
				return t.resolve(now.UTC())
			}
		}
	}
	return nil
}

// Date-only triggers produce date bounds with no time-of-day; the filter and
// renderer treat such an end as inclusive of the whole day. Rolling-hour
// triggers produce full timestamps, which stay half-open as given.

func rangeYesterday(now time.Time) *models.TimeRange {
	d := now.AddDate(0, 0, -1).Format(dateOnly)
	return &models.TimeRange{Start: d, End: d}
}

func rangeToday(now time.Time) *models.TimeRange {
	d := now.Format(dateOnly)
	return &models.TimeRange{Start: d, End: d}
}

func rangePastWeek(now time.Time) *models.TimeRange {
	return &models.TimeRange{
		Start: now.Add(-7 * 24 * time.Hour).Format(time.RFC3339),
		End:   now.Format(time.RFC3339),
	}
}

// rangeLastWeek resolves to the previous Monday-through-Sunday calendar week.
func rangeLastWeek(now time.Time) *models.TimeRange {
	daysToLastMonday := int(now.Weekday()) + 6
	if now.Weekday() == time.Sunday {
		daysToLastMonday = 13
	}
	lastMonday := now.AddDate(0, 0, -daysToLastMonday)
	lastSunday := lastMonday.AddDate(0, 0, 6)
	return &models.TimeRange{
		Start: lastMonday.Format(dateOnly),
		End:   lastSunday.Format(dateOnly),
	}
}

// rangeThisWeek resolves to this Monday through today.
func rangeThisWeek(now time.Time) *models.TimeRange {
	daysToMonday := int(now.Weekday()) - 1
	if now.Weekday() == time.Sunday {
		daysToMonday = 6
	}
	return &models.TimeRange{
		Start: now.AddDate(0, 0, -daysToMonday).Format(dateOnly),
		End:   now.Format(dateOnly),
	}
}

func rangePastMonth(now time.Time) *models.TimeRange {
	return &models.TimeRange{
		Start: now.Add(-30 * 24 * time.Hour).Format(time.RFC3339),
		End:   now.Format(time.RFC3339),
	}
}

// rangeLastMonth resolves to the previous calendar month, first day through
// last day.
func rangeLastMonth(now time.Time) *models.TimeRange {
	firstOfThis := time.Date(now.Year(), now.Month(), 1, 0, 0, 0, 0, time.UTC)
	firstOfLast := firstOfThis.AddDate(0, -1, 0)
	endOfLast := firstOfThis.AddDate(0, 0, -1)
	return &models.TimeRange{
		Start: firstOfLast.Format(dateOnly),
		End:   endOfLast.Format(dateOnly),
	}
}

// rangeThisMonth resolves to the 1st of the current month through today.
func rangeThisMonth(now time.Time) *models.TimeRange {
	first := time.Date(now.Year(), now.Month(), 1, 0, 0, 0, 0, time.UTC)
	return &models.TimeRange{
		Start: first.Format(dateOnly),
		End:   now.Format(dateOnly),
	}
}

func rangeLast24Hours(now time.Time) *models.TimeRange {
	return &models.TimeRange{
		Start: now.Add(-24 * time.Hour).Format(time.RFC3339),
		End:   now.Format(time.RFC3339),
	}
}
