package rca

import (
	"math"
	"sort"
	"strings"

	"github.com/pb003jbl/ticketrca/internal/logging"
	"github.com/pb003jbl/ticketrca/internal/ticket"
)

// Miner extracts the four independent contributing-factor classes from a
// related-ticket set. Each sub-analysis tolerates missing source columns by
// producing an empty result.
type Miner struct {
	topComponents int
	logger        *logging.Logger
}

// DefaultTopComponents caps the system-component ranking.
const DefaultTopComponents = 10

// NewMiner creates a factor miner.
func NewMiner() *Miner {
	return &Miner{
		topComponents: DefaultTopComponents,
		logger:        logging.GetLogger("rca.miner"),
	}
}

// Mine runs all four sub-analyses over the related tickets.
func (m *Miner) Mine(store *ticket.Store, related []ticket.Ticket) *Factors {
	return &Factors{
		TimePatterns:     m.analyzeTimePatterns(store, related),
		SystemComponents: m.extractSystemComponents(store, related),
		CommonErrors:     m.extractCommonErrors(store, related),
		RelatedChanges:   m.identifyRelatedChanges(store, related),
	}
}

// analyzeTimePatterns groups tickets by hour of creation and flags peak
// hours whose count exceeds mean + 1 stddev of the observed hour counts.
// Fewer than two distinct hours yield no peaks (the spread is undefined).
func (m *Miner) analyzeTimePatterns(store *ticket.Store, related []ticket.Ticket) TimePatterns {
	patterns := TimePatterns{}
	if !store.HasColumn(ticket.FieldCreatedAt) {
		return patterns
	}

	hourCounts := make(map[int]int)
	dayCounts := make(map[string]int)
	for _, t := range related {
		if hour, ok := t.CreatedHour(); ok {
			hourCounts[hour]++
		}
		if day, ok := t.CreatedDay(); ok {
			dayCounts[day]++
		}
	}

	if len(dayCounts) > 0 {
		patterns.DayDistribution = dayCounts
	}
	if len(hourCounts) >= 2 {
		mean, stddev := hourStats(hourCounts)
		peaks := make(map[int]int)
		for hour, count := range hourCounts {
			if float64(count) > mean+stddev {
				peaks[hour] = count
			}
		}
		if len(peaks) > 0 {
			patterns.PeakHours = peaks
		}
	}
	return patterns
}

// hourStats computes mean and sample standard deviation over the hour
// distribution counts.
func hourStats(hourCounts map[int]int) (float64, float64) {
	n := float64(len(hourCounts))
	total := 0.0
	for _, c := range hourCounts {
		total += float64(c)
	}
	mean := total / n

	sumSq := 0.0
	for _, c := range hourCounts {
		d := float64(c) - mean
		sumSq += d * d
	}
	stddev := math.Sqrt(sumSq / (n - 1))
	return mean, stddev
}

// extractSystemComponents aggregates component counts from category values,
// subcategory values and the component pattern families over descriptions.
// Result is the top-N labels by count descending, ties by first appearance.
func (m *Miner) extractSystemComponents(store *ticket.Store, related []ticket.Ticket) []ComponentCount {
	counts := make(map[string]int)
	var order []string
	add := func(label string, n int) {
		if _, seen := counts[label]; !seen {
			order = append(order, label)
		}
		counts[label] += n
	}

	if store.HasColumn(ticket.FieldCategory) {
		for _, t := range related {
			if t.Category != "" {
				add("Category: "+t.Category, 1)
			}
		}
	}
	if store.HasColumn(ticket.FieldSubcategory) {
		for _, t := range related {
			if t.Subcategory != "" {
				add("Subcategory: "+t.Subcategory, 1)
			}
		}
	}
	if store.HasColumn(ticket.FieldDescription) {
		for _, t := range related {
			for _, p := range componentPatterns {
				for _, match := range p.Pattern.FindAllStringSubmatch(t.Description, -1) {
					add(capitalizeTerm(match[1]), 1)
				}
			}
		}
	}

	firstSeen := make(map[string]int, len(order))
	for i, label := range order {
		firstSeen[label] = i
	}
	sort.SliceStable(order, func(i, j int) bool {
		if counts[order[i]] != counts[order[j]] {
			return counts[order[i]] > counts[order[j]]
		}
		return firstSeen[order[i]] < firstSeen[order[j]]
	})

	if len(order) > m.topComponents {
		order = order[:m.topComponents]
	}
	result := make([]ComponentCount, 0, len(order))
	for _, label := range order {
		result = append(result, ComponentCount{Label: label, Count: counts[label]})
	}
	return result
}

// extractCommonErrors counts, per category, the tickets whose short
// description or description matches the category pattern. All categories
// are present in the result, zero counts included.
func (m *Miner) extractCommonErrors(store *ticket.Store, related []ticket.Ticket) map[string]int {
	errors := make(map[string]int, len(errorPatterns))
	for _, p := range errorPatterns {
		errors[p.Label] = 0
	}

	hasShort := store.HasColumn(ticket.FieldShortDescription)
	hasDesc := store.HasColumn(ticket.FieldDescription)
	if !hasShort && !hasDesc {
		return errors
	}

	for _, t := range related {
		for _, p := range errorPatterns {
			if (hasShort && p.Pattern.MatchString(t.ShortDescription)) ||
				(hasDesc && p.Pattern.MatchString(t.Description)) {
				errors[p.Label]++
			}
		}
	}
	return errors
}

// identifyRelatedChanges runs both change detectors. A ticket whose category
// mentions "change" and whose description also matches a change pattern
// produces two entries; the duplication is accepted by design.
func (m *Miner) identifyRelatedChanges(store *ticket.Store, related []ticket.Ticket) []RelatedChange {
	var changes []RelatedChange

	if store.HasColumn(ticket.FieldCategory) {
		for _, t := range related {
			if !strings.Contains(strings.ToLower(t.Category), "change") {
				continue
			}
			changes = append(changes, RelatedChange{
				TicketID:    t.Number,
				Description: t.Field(ticket.FieldShortDescription, "N/A"),
				Date:        t.CreatedAt,
			})
		}
	}

	if store.HasColumn(ticket.FieldDescription) {
		for _, t := range related {
			for _, p := range changePatterns {
				span := p.Pattern.FindString(t.Description)
				if span == "" {
					continue
				}
				changes = append(changes, RelatedChange{
					TicketID:    t.Number,
					Description: t.Field(ticket.FieldShortDescription, "N/A"),
					Date:        t.CreatedAt,
					Evidence:    span,
				})
				break
			}
		}
	}
	return changes
}

// capitalizeTerm uppercases the first rune and lowercases the rest, so that
// "API", "api" and "Api" all count as the same component.
func capitalizeTerm(s string) string {
	if s == "" {
		return s
	}
	return strings.ToUpper(s[:1]) + strings.ToLower(s[1:])
}
