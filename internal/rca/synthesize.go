package rca

import (
	"fmt"
	"strings"
)

// baselineRecommendations are always emitted, in this order.
var baselineRecommendations = []string{
	"**Review Recent Changes**: Investigate any recent changes or deployments that coincide with the incident timeframe.",
	"**Monitor System Components**: Implement enhanced monitoring for the affected system components.",
	"**Resource Allocation**: Evaluate resource allocation during peak hours to prevent similar incidents.",
}

const (
	timeoutRecommendation = "**Connection Timeout Investigation**: Review connection timeout settings and network stability."
	accessRecommendation  = "**Access Control Review**: Audit authentication and authorization mechanisms."
)

// synthesizeHypotheses reduces the mined factors into ranked causal
// hypotheses. Precedence is fixed: top error category, top component,
// recent changes, peak hour. Each rule is independently optional and the
// output keeps insertion order.
func synthesizeHypotheses(factors *Factors) []string {
	var hypotheses []string

	if category, count := topErrorCategory(factors.CommonErrors); count > 0 {
		name := errorDisplayName(category)
		hypotheses = append(hypotheses, fmt.Sprintf(
			"**%s Issues**: %d tickets reported problems related to %s.",
			name, count, strings.ToLower(name)))
	}

	if len(factors.SystemComponents) > 0 {
		top := factors.SystemComponents[0]
		if top.Count > 0 {
			hypotheses = append(hypotheses, fmt.Sprintf(
				"**%s Issues**: %d tickets were related to this component.",
				top.Label, top.Count))
		}
	}

	if n := len(factors.RelatedChanges); n > 0 {
		hypotheses = append(hypotheses, fmt.Sprintf(
			"**Recent Changes**: %d potentially related changes were identified that may have contributed to the incident.", n))
	}

	if hour, count, ok := largestPeakHour(factors.TimePatterns.PeakHours); ok {
		hypotheses = append(hypotheses, fmt.Sprintf(
			"**Time-Based Pattern**: A significant number of tickets (%d) were created during hour %d, suggesting potential resource constraints or scheduled job issues.",
			count, hour))
	}

	return hypotheses
}

// synthesizeRecommendations emits the three baseline recommendations plus
// the conditional timeout and access-control recommendations.
func synthesizeRecommendations(factors *Factors) []string {
	recommendations := make([]string, len(baselineRecommendations))
	copy(recommendations, baselineRecommendations)

	if factors.CommonErrors["timeouts"] > 0 {
		recommendations = append(recommendations, timeoutRecommendation)
	}
	if factors.CommonErrors["access_issues"] > 0 {
		recommendations = append(recommendations, accessRecommendation)
	}
	return recommendations
}

// topErrorCategory returns the category with the highest ticket count.
// Ties resolve to the category listed first in the fixed pattern order.
func topErrorCategory(errors map[string]int) (string, int) {
	best, bestCount := "", 0
	for _, category := range ErrorCategories() {
		if errors[category] > bestCount {
			best, bestCount = category, errors[category]
		}
	}
	return best, bestCount
}

// largestPeakHour returns the peak hour with the highest count. Ties
// resolve to the smallest hour for determinism.
func largestPeakHour(peaks map[int]int) (int, int, bool) {
	if len(peaks) == 0 {
		return 0, 0, false
	}
	bestHour, bestCount := -1, -1
	for hour, count := range peaks {
		if count > bestCount || (count == bestCount && hour < bestHour) {
			bestHour, bestCount = hour, count
		}
	}
	return bestHour, bestCount, true
}

// errorDisplayName turns "access_issues" into "Access Issues".
func errorDisplayName(category string) string {
	words := strings.Split(category, "_")
	for i, w := range words {
		if w == "" {
			continue
		}
		words[i] = strings.ToUpper(w[:1]) + w[1:]
	}
	return strings.Join(words, " ")
}
