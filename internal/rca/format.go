package rca

import (
	"fmt"
	"sort"
	"strings"
)

// timelineDisplayLimit caps the number of events rendered.
const timelineDisplayLimit = 10

// changeDisplayLimit caps the number of related changes rendered.
const changeDisplayLimit = 5

// FormatReport renders a report as a sectioned markdown document with fixed
// section order: Incident Overview, Impact Analysis, Timeline, Contributing
// Factors (Components, Time Patterns, Common Errors, Related Changes), Root
// Cause Hypothesis, Recommendations. Pure formatting; no analysis happens
// here.
func FormatReport(report *Report) string {
	if report.Status == StatusInsufficientData {
		return fmt.Sprintf("## RCA Analysis: Insufficient Data\n\n%s", report.Message)
	}

	var sections []string
	add := func(format string, args ...interface{}) {
		sections = append(sections, fmt.Sprintf(format, args...))
	}

	add("# Root Cause Analysis Report")
	add("## Incident Overview")
	add("**Description:** %s", report.IncidentDescription)
	add("**Related Tickets:** %d", report.RelatedTickets)

	add("\n## Impact Analysis")
	impact := report.Impact
	add("**Total Tickets:** %d", impact.TicketCount)
	if impact.HighPriorityPercentage != nil {
		add("**High Priority Percentage:** %v%%", *impact.HighPriorityPercentage)
	}
	if impact.AvgResolutionTime != nil {
		add("**Average Resolution Time:** %.2f hours", *impact.AvgResolutionTime)
	}
	if impact.MaxResolutionTime != nil {
		add("**Maximum Resolution Time:** %.2f hours", *impact.MaxResolutionTime)
	}

	add("\n## Incident Timeline")
	if len(report.Timeline) > 0 {
		limit := len(report.Timeline)
		if limit > timelineDisplayLimit {
			limit = timelineDisplayLimit
		}
		for _, event := range report.Timeline[:limit] {
			add("- **%s** - %s: %s (%s)",
				event.Timestamp.Format("2006-01-02 15:04:05"),
				event.EventType, event.Description, event.TicketID)
		}
	} else {
		add("No timeline data available")
	}

	factors := report.ContributingFactors
	add("\n## Contributing Factors")

	add("\n### Affected System Components")
	if len(factors.SystemComponents) > 0 {
		for _, c := range factors.SystemComponents {
			add("- **%s**: %d tickets", c.Label, c.Count)
		}
	} else {
		add("No system component data available")
	}

	add("\n### Time Patterns")
	if len(factors.TimePatterns.PeakHours) > 0 {
		add("**Peak Hours:**")
		for _, hour := range sortedHours(factors.TimePatterns.PeakHours) {
			add("- Hour %d: %d tickets", hour, factors.TimePatterns.PeakHours[hour])
		}
	}

	add("\n### Common Errors")
	if errorLines := formatCommonErrors(factors.CommonErrors); len(errorLines) > 0 {
		sections = append(sections, errorLines...)
	} else {
		add("No common error patterns detected")
	}

	add("\n### Related Changes")
	if len(factors.RelatedChanges) > 0 {
		limit := len(factors.RelatedChanges)
		if limit > changeDisplayLimit {
			limit = changeDisplayLimit
		}
		for _, change := range factors.RelatedChanges[:limit] {
			date := "unknown date"
			if change.Date != nil {
				date = change.Date.Format("2006-01-02")
			}
			add("- **%s** - %s (%s)", date, change.Description, change.TicketID)
			if change.Evidence != "" {
				add("  - Evidence: %q", change.Evidence)
			}
		}
	} else {
		add("No related changes detected")
	}

	add("\n## Root Cause Hypothesis")
	add("Based on the analysis of related tickets and contributing factors, the most likely root causes are:")
	if len(report.Hypotheses) > 0 {
		for _, h := range report.Hypotheses {
			add("- %s", h)
		}
	} else {
		add("- Insufficient data to generate specific hypotheses")
	}

	add("\n## Recommendations")
	for _, r := range report.Recommendations {
		add("- %s", r)
	}

	return strings.Join(sections, "\n\n")
}

// formatCommonErrors renders the nonzero error categories in their fixed
// pattern order.
func formatCommonErrors(errors map[string]int) []string {
	var lines []string
	for _, category := range ErrorCategories() {
		if errors[category] > 0 {
			lines = append(lines, fmt.Sprintf("- **%s**: %d tickets",
				errorDisplayName(category), errors[category]))
		}
	}
	return lines
}

func sortedHours(peaks map[int]int) []int {
	hours := make([]int, 0, len(peaks))
	for h := range peaks {
		hours = append(hours, h)
	}
	sort.Ints(hours)
	return hours
}
