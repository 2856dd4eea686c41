package ticket

import (
	"regexp"
	"sort"
	"strings"
)

// keyword extraction drops these words plus anything shorter than 3 chars.
var keywordStopwords = map[string]bool{
	"the": true, "and": true, "is": true, "in": true, "to": true,
	"for": true, "of": true, "a": true, "with": true, "on": true,
	"an": true, "this": true, "that": true, "are": true, "as": true,
	"at": true, "be": true, "by": true, "from": true, "has": true,
	"have": true, "i": true, "it": true, "not": true, "was": true,
	"were": true,
}

var nonWordRe = regexp.MustCompile(`[^a-z0-9_\s]`)

// KeywordCount is a keyword with its frequency across the dataset.
type KeywordCount struct {
	Word  string `json:"word"`
	Count int    `json:"count"`
}

// Summary holds dataset-level metrics used by the inspect command.
type Summary struct {
	TicketCount          int            `json:"ticket_count"`
	Columns              []string       `json:"columns"`
	AvgTicketsPerDay     *float64       `json:"avg_tickets_per_day,omitempty"`
	AvgResolutionHours   *float64       `json:"avg_resolution_hours,omitempty"`
	MedianResolutionHrs  *float64       `json:"median_resolution_hours,omitempty"`
	TicketsByWeekday     map[string]int `json:"tickets_by_weekday,omitempty"`
	TicketsByHour        map[int]int    `json:"tickets_by_hour,omitempty"`
	CategoryDistribution map[string]int `json:"category_distribution,omitempty"`
	PriorityDistribution map[string]int `json:"priority_distribution,omitempty"`
	StatusDistribution   map[string]int `json:"status_distribution,omitempty"`
	CommonKeywords       []KeywordCount `json:"common_keywords,omitempty"`
}

// Summarize computes dataset-level metrics over a normalized store. Metrics
// whose source column is absent are simply omitted.
func Summarize(store *Store) *Summary {
	s := &Summary{
		TicketCount: store.Len(),
		Columns:     store.Columns(),
	}

	if store.HasColumn(FieldCreatedAt) {
		days := make(map[string]int)
		weekdays := make(map[string]int)
		hours := make(map[int]int)
		for i := range store.Tickets {
			t := &store.Tickets[i]
			if t.CreatedAt == nil {
				continue
			}
			days[t.CreatedAt.Format("2006-01-02")]++
			weekdays[t.CreatedAt.Weekday().String()]++
			hours[t.CreatedAt.Hour()]++
		}
		if len(days) > 0 {
			total := 0
			for _, c := range days {
				total += c
			}
			avg := float64(total) / float64(len(days))
			s.AvgTicketsPerDay = &avg
			s.TicketsByWeekday = weekdays
			s.TicketsByHour = hours
		}
	}

	var resolutions []float64
	for i := range store.Tickets {
		if h := store.Tickets[i].ResolutionTimeHours; h != nil {
			resolutions = append(resolutions, *h)
		}
	}
	if len(resolutions) > 0 {
		avg := mean(resolutions)
		med := median(resolutions)
		s.AvgResolutionHours = &avg
		s.MedianResolutionHrs = &med
	}

	if store.HasColumn(FieldCategory) {
		s.CategoryDistribution = valueCounts(store, func(t *Ticket) string { return t.Category })
	}
	if store.HasColumn(FieldPriority) {
		s.PriorityDistribution = valueCounts(store, func(t *Ticket) string { return t.Priority })
	}
	if store.HasColumn(FieldStatus) {
		s.StatusDistribution = valueCounts(store, func(t *Ticket) string { return t.Status })
	}

	if store.HasColumn(FieldShortDescription) {
		s.CommonKeywords = ExtractKeywords(store, FieldShortDescription, 20)
	}

	return s
}

// ExtractKeywords returns the top-n keyword frequencies over a text column.
// Ties are broken by first appearance so repeated runs are deterministic.
func ExtractKeywords(store *Store, column string, n int) []KeywordCount {
	counts := make(map[string]int)
	var order []string

	for i := range store.Tickets {
		text := strings.ToLower(store.Tickets[i].Fields[column])
		text = nonWordRe.ReplaceAllString(text, " ")
		for _, word := range strings.Fields(text) {
			if keywordStopwords[word] || len(word) <= 2 {
				continue
			}
			if _, seen := counts[word]; !seen {
				order = append(order, word)
			}
			counts[word]++
		}
	}

	firstSeen := make(map[string]int, len(order))
	for i, w := range order {
		firstSeen[w] = i
	}
	sort.SliceStable(order, func(i, j int) bool {
		if counts[order[i]] != counts[order[j]] {
			return counts[order[i]] > counts[order[j]]
		}
		return firstSeen[order[i]] < firstSeen[order[j]]
	})

	if len(order) > n {
		order = order[:n]
	}
	result := make([]KeywordCount, 0, len(order))
	for _, w := range order {
		result = append(result, KeywordCount{Word: w, Count: counts[w]})
	}
	return result
}

func valueCounts(store *Store, get func(*Ticket) string) map[string]int {
	counts := make(map[string]int)
	for i := range store.Tickets {
		v := get(&store.Tickets[i])
		if v == "" {
			continue
		}
		counts[v]++
	}
	return counts
}

func mean(values []float64) float64 {
	total := 0.0
	for _, v := range values {
		total += v
	}
	return total / float64(len(values))
}

func median(values []float64) float64 {
	sorted := make([]float64, len(values))
	copy(sorted, values)
	sort.Float64s(sorted)
	mid := len(sorted) / 2
	if len(sorted)%2 == 0 {
		return (sorted[mid-1] + sorted[mid]) / 2
	}
	return sorted[mid]
}
