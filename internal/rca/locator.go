package rca

import (
	"regexp"
	"sort"
	"strconv"
	"strings"
	"time"

	"github.com/pb003jbl/ticketrca/internal/logging"
	"github.com/pb003jbl/ticketrca/internal/ticket"
)

// Mode identifies the filtering rule that produced a related-ticket set.
type Mode string

const (
	// ModeTimeWindow selects tickets created within the incident window.
	ModeTimeWindow Mode = "time_window"
	// ModeKeyword selects tickets whose text matches the incident key terms.
	ModeKeyword Mode = "keyword"
)

// DefaultWindowDays is the default half-width of the incident time window.
const DefaultWindowDays = 3

// DefaultScoreThreshold is the minimum relatedness score a scorer must
// assign for a ticket to be kept.
const DefaultScoreThreshold = 0.3

// Query describes the incident under investigation. IncidentDate, when set
// by the caller, overrides any date extracted from the description text.
type Query struct {
	Description  string
	IncidentDate *time.Time
	WindowDays   int
}

// Scorer is an optional relatedness scorer the locator consults to refine
// the candidate set, e.g. via semantic similarity. The locator is fully
// functional without one.
type Scorer interface {
	// Score returns a relatedness score in [0,1] for the ticket against the
	// incident description.
	Score(incidentDescription string, t ticket.Ticket) float64
}

// RelatedSet is the filtered subset of the store plus the rule that
// produced it. Ticket order matches the store order.
type RelatedSet struct {
	Tickets  []ticket.Ticket
	Mode     Mode
	Anchor   *time.Time
	KeyTerms []string
}

// incidentDateRe matches numeric dates in incident text. The convention is
// fixed to month/day/year; day-first inputs that yield an impossible month
// are treated as "no date" rather than silently mis-parsed.
var incidentDateRe = regexp.MustCompile(`(\d{1,2})[/-](\d{1,2})[/-](\d{2,4})`)

// keyTermStopwords are discarded before key term ranking, along with any
// word shorter than 4 characters.
var keyTermStopwords = map[string]bool{
	"the": true, "and": true, "is": true, "in": true, "to": true,
	"a": true, "for": true, "of": true, "on": true, "with": true,
}

var punctuationRe = regexp.MustCompile(`[^a-z0-9_\s]`)

// Locator filters a ticket store down to the tickets plausibly related to
// an incident.
type Locator struct {
	scorer    Scorer
	threshold float64
	logger    *logging.Logger
}

// NewLocator creates a locator. scorer may be nil.
func NewLocator(scorer Scorer) *Locator {
	return &Locator{
		scorer:    scorer,
		threshold: DefaultScoreThreshold,
		logger:    logging.GetLogger("rca.locator"),
	}
}

// Locate resolves the incident anchor and filters the store. Mode selection
// is a pure function of the query: an explicit or extractable date selects
// time-window mode, otherwise keyword mode. An empty result is a valid,
// first-class outcome.
func (l *Locator) Locate(store *ticket.Store, query Query) RelatedSet {
	windowDays := query.WindowDays
	if windowDays <= 0 {
		windowDays = DefaultWindowDays
	}

	anchor := query.IncidentDate
	if anchor == nil {
		anchor = ExtractIncidentDate(query.Description)
	}

	var result RelatedSet
	if anchor != nil {
		result = l.locateByWindow(store, *anchor, windowDays)
	} else {
		result = l.locateByKeywords(store, query.Description)
	}

	if l.scorer != nil && len(result.Tickets) > 0 {
		kept := result.Tickets[:0:0]
		for _, t := range result.Tickets {
			if l.scorer.Score(query.Description, t) >= l.threshold {
				kept = append(kept, t)
			}
		}
		result.Tickets = kept
	}

	l.logger.DebugWithFields("located related tickets",
		logging.Field("mode", string(result.Mode)),
		logging.Field("count", len(result.Tickets)),
	)
	return result
}

// locateByWindow selects tickets created within [anchor-window, anchor+window]
// inclusive. When the schema has no created_at column the whole store is
// returned; degraded behavior, not an error.
func (l *Locator) locateByWindow(store *ticket.Store, anchor time.Time, windowDays int) RelatedSet {
	result := RelatedSet{Mode: ModeTimeWindow, Anchor: &anchor}

	if !store.HasColumn(ticket.FieldCreatedAt) {
		l.logger.Warn("store has no created_at column, returning all %d tickets", store.Len())
		result.Tickets = append(result.Tickets, store.Tickets...)
		return result
	}

	start := anchor.AddDate(0, 0, -windowDays)
	end := anchor.AddDate(0, 0, windowDays)
	for _, t := range store.Tickets {
		if t.CreatedAt == nil {
			continue
		}
		if t.CreatedAt.Before(start) || t.CreatedAt.After(end) {
			continue
		}
		result.Tickets = append(result.Tickets, t)
	}
	return result
}

// locateByKeywords selects tickets whose short description or description
// contains any of the incident key terms, case-insensitively.
func (l *Locator) locateByKeywords(store *ticket.Store, description string) RelatedSet {
	terms := ExtractKeyTerms(description)
	result := RelatedSet{Mode: ModeKeyword, KeyTerms: terms}

	for _, t := range store.Tickets {
		shortDesc := strings.ToLower(t.ShortDescription)
		desc := strings.ToLower(t.Description)
		for _, term := range terms {
			if strings.Contains(shortDesc, term) || strings.Contains(desc, term) {
				result.Tickets = append(result.Tickets, t)
				break
			}
		}
	}
	return result
}

// ExtractIncidentDate extracts an explicit calendar date from incident text
// using the fixed M/D/Y convention. Two-digit years are assumed to be in the
// 2000s. Returns nil when no well-formed date is present.
func ExtractIncidentDate(text string) *time.Time {
	m := incidentDateRe.FindStringSubmatch(text)
	if m == nil {
		return nil
	}

	month, _ := strconv.Atoi(m[1])
	day, _ := strconv.Atoi(m[2])
	year, _ := strconv.Atoi(m[3])
	if len(m[3]) == 2 {
		year += 2000
	}

	if month < 1 || month > 12 || day < 1 || day > 31 {
		return nil
	}
	date := time.Date(year, time.Month(month), day, 0, 0, 0, 0, time.UTC)
	// Reject day values that rolled over into the next month (e.g. 2/30).
	if int(date.Month()) != month || date.Day() != day {
		return nil
	}
	return &date
}

// ExtractKeyTerms tokenizes incident text into its top 10 key terms:
// lowercased, punctuation stripped, stopwords and words under 4 characters
// discarded, ranked by frequency with ties broken by first appearance.
func ExtractKeyTerms(text string) []string {
	cleaned := punctuationRe.ReplaceAllString(strings.ToLower(text), " ")

	counts := make(map[string]int)
	var order []string
	for _, word := range strings.Fields(cleaned) {
		if keyTermStopwords[word] || len(word) < 4 {
			continue
		}
		if _, seen := counts[word]; !seen {
			order = append(order, word)
		}
		counts[word]++
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

	if len(order) > 10 {
		order = order[:10]
	}
	return order
}
