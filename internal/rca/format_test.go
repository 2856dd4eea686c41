package rca

import (
	"fmt"
	"strings"
	"testing"
	"time"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func sampleReport(t *testing.T) *Report {
	t.Helper()
	pct := 50.0
	avg := 4.5
	return &Report{
		Status:              StatusOK,
		ID:                  "test-report",
		IncidentDescription: "Login outage on 3/1/2024",
		RelatedTickets:      2,
		FilterMode:          string(ModeTimeWindow),
		Timeline: []TimelineEvent{
			{Timestamp: *mustTime(t, "2024-03-01 09:00"), EventType: EventCreated, TicketID: "INC001", Description: "Login broken"},
			{Timestamp: *mustTime(t, "2024-03-01 13:00"), EventType: EventResolved, TicketID: "INC001", Description: "Resolution: Restarted"},
		},
		ContributingFactors: &Factors{
			SystemComponents: []ComponentCount{{Label: "Server", Count: 2}},
			TimePatterns:     TimePatterns{PeakHours: map[int]int{9: 2}},
			CommonErrors:     map[string]int{"timeouts": 2, "crashes": 0},
			RelatedChanges: []RelatedChange{
				{TicketID: "CHG001", Description: "Deploy v2", Evidence: "recent deployment"},
			},
		},
		Impact: &Impact{
			TicketCount:            2,
			HighPriorityPercentage: &pct,
			AvgResolutionTime:      &avg,
		},
		Hypotheses:      []string{"**Timeouts Issues**: 2 tickets reported problems related to timeouts."},
		Recommendations: baselineRecommendations,
	}
}

func TestFormatReportSectionOrder(t *testing.T) {
	output := FormatReport(sampleReport(t))

	headings := []string{
		"# Root Cause Analysis Report",
		"## Incident Overview",
		"## Impact Analysis",
		"## Incident Timeline",
		"## Contributing Factors",
		"### Affected System Components",
		"### Time Patterns",
		"### Common Errors",
		"### Related Changes",
		"## Root Cause Hypothesis",
		"## Recommendations",
	}
	last := -1
	for _, heading := range headings {
		idx := strings.Index(output, heading)
		require.GreaterOrEqual(t, idx, 0, "missing heading %q", heading)
		assert.Greater(t, idx, last, "heading %q out of order", heading)
		last = idx
	}
}

func TestFormatReportContent(t *testing.T) {
	output := FormatReport(sampleReport(t))

	assert.Contains(t, output, "**Description:** Login outage on 3/1/2024")
	assert.Contains(t, output, "**Related Tickets:** 2")
	assert.Contains(t, output, "**High Priority Percentage:** 50%")
	assert.Contains(t, output, "**Average Resolution Time:** 4.50 hours")
	assert.Contains(t, output, "2024-03-01 09:00:00")
	assert.Contains(t, output, "**Server**: 2 tickets")
	assert.Contains(t, output, "Hour 9: 2 tickets")
	assert.Contains(t, output, "**Timeouts**: 2 tickets")
	assert.NotContains(t, output, "Crashes")
	assert.Contains(t, output, "Deploy v2")
}

func TestFormatReportTimelineCap(t *testing.T) {
	report := sampleReport(t)
	report.Timeline = nil
	base := *mustTime(t, "2024-03-01 00:00")
	for i := 0; i < 15; i++ {
		report.Timeline = append(report.Timeline, TimelineEvent{
			Timestamp:   base.Add(time.Duration(i) * time.Hour),
			EventType:   EventCreated,
			TicketID:    fmt.Sprintf("INC%03d", i),
			Description: "entry",
		})
	}

	output := FormatReport(report)

	assert.Equal(t, timelineDisplayLimit, strings.Count(output, "Ticket Created"))
	assert.Contains(t, output, "INC009")
	assert.NotContains(t, output, "INC010")
}

func TestFormatReportChangeCap(t *testing.T) {
	report := sampleReport(t)
	report.ContributingFactors.RelatedChanges = nil
	for i := 0; i < 8; i++ {
		report.ContributingFactors.RelatedChanges = append(
			report.ContributingFactors.RelatedChanges,
			RelatedChange{TicketID: fmt.Sprintf("CHG%03d", i), Description: "change"},
		)
	}

	output := FormatReport(report)

	assert.Contains(t, output, "CHG004")
	assert.NotContains(t, output, "CHG005")
}

func TestFormatReportEmptySections(t *testing.T) {
	report := sampleReport(t)
	report.Timeline = nil
	report.ContributingFactors = &Factors{CommonErrors: map[string]int{}}
	report.Hypotheses = nil

	output := FormatReport(report)

	assert.Contains(t, output, "No timeline data available")
	assert.Contains(t, output, "No system component data available")
	assert.Contains(t, output, "No common error patterns detected")
	assert.Contains(t, output, "No related changes detected")
	assert.Contains(t, output, "Insufficient data to generate specific hypotheses")
}

func TestFormatReportInsufficientData(t *testing.T) {
	report := &Report{Status: StatusInsufficientData, Message: insufficientDataMessage}

	output := FormatReport(report)

	assert.True(t, strings.HasPrefix(output, "## RCA Analysis: Insufficient Data"))
	assert.Contains(t, output, insufficientDataMessage)
	assert.NotContains(t, output, "Incident Overview")
}
