package rca

import (
	"github.com/google/uuid"

	"github.com/pb003jbl/ticketrca/internal/logging"
	"github.com/pb003jbl/ticketrca/internal/ticket"
)

// insufficientDataMessage is returned when no related tickets are found.
const insufficientDataMessage = "No related tickets found for this incident. Please provide more details or check the data."

// sampleTicketCount caps the raw records echoed back in the report.
const sampleTicketCount = 5

// Analyzer orchestrates the analysis pipeline over one ticket store
// snapshot: locate related tickets, reconstruct the timeline, mine
// contributing factors, quantify impact and synthesize the report.
type Analyzer struct {
	store   *ticket.Store
	locator *Locator
	miner   *Miner
	logger  *logging.Logger
}

// Option configures an Analyzer.
type Option func(*Analyzer)

// WithScorer installs an optional related-ticket scorer consulted by the
// locator.
func WithScorer(s Scorer) Option {
	return func(a *Analyzer) {
		a.locator = NewLocator(s)
	}
}

// WithTopComponents overrides the cap on the affected-component ranking.
// Non-positive values keep the default.
func WithTopComponents(n int) Option {
	return func(a *Analyzer) {
		if n > 0 {
			a.miner.topComponents = n
		}
	}
}

// NewAnalyzer creates an analyzer over the given store snapshot. The store
// must not be shared with concurrently running analyzers.
func NewAnalyzer(store *ticket.Store, opts ...Option) *Analyzer {
	a := &Analyzer{
		store:   store,
		locator: NewLocator(nil),
		miner:   NewMiner(),
		logger:  logging.GetLogger("rca.analyzer"),
	}
	for _, opt := range opts {
		opt(a)
	}
	return a
}

// GenerateReport runs the full pipeline for the incident query. When the
// related-ticket set is empty it returns exactly the insufficient-data
// sentinel and performs no further computation.
func (a *Analyzer) GenerateReport(query Query) *Report {
	related := a.locator.Locate(a.store, query)

	if len(related.Tickets) == 0 {
		a.logger.Info("no related tickets found for incident")
		return &Report{
			Status:  StatusInsufficientData,
			Message: insufficientDataMessage,
		}
	}

	timeline := BuildTimeline(related.Tickets)
	factors := a.miner.Mine(a.store, related.Tickets)
	impact := analyzeImpact(a.store, related.Tickets)

	report := &Report{
		Status:              StatusOK,
		ID:                  uuid.NewString(),
		IncidentDescription: query.Description,
		RelatedTickets:      len(related.Tickets),
		FilterMode:          string(related.Mode),
		Timeline:            timeline,
		ContributingFactors: factors,
		Impact:              impact,
		Hypotheses:          synthesizeHypotheses(factors),
		Recommendations:     synthesizeRecommendations(factors),
		SampleTickets:       sampleTickets(related.Tickets),
	}

	a.logger.InfoWithFields("generated RCA report",
		logging.Field("related_tickets", report.RelatedTickets),
		logging.Field("mode", report.FilterMode),
		logging.Field("hypotheses", len(report.Hypotheses)),
	)
	return report
}

func sampleTickets(related []ticket.Ticket) []map[string]string {
	n := len(related)
	if n > sampleTicketCount {
		n = sampleTicketCount
	}
	samples := make([]map[string]string, 0, n)
	for _, t := range related[:n] {
		record := make(map[string]string, len(t.Fields))
		for k, v := range t.Fields {
			record[k] = v
		}
		samples = append(samples, record)
	}
	return samples
}
