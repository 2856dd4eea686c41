// Package rca implements the rule-based root cause analysis engine: related
// ticket retrieval, timeline reconstruction, contributing factor mining,
// impact quantification and hypothesis synthesis.
//
// The whole pipeline is a pure transformation from a ticket store snapshot
// and an incident query to a report. There is no shared mutable state, so
// concurrent invocations are safe as long as each call gets its own store.
package rca

import "time"

// Report status values. A report is either complete or the
// insufficient-data sentinel; no partial state is valid.
const (
	StatusOK               = "ok"
	StatusInsufficientData = "insufficient_data"
)

// Timeline event types.
const (
	EventCreated  = "Ticket Created"
	EventResolved = "Ticket Resolved"
	EventUpdated  = "Ticket Updated"
)

// TimelineEvent is a single entry in the reconstructed incident timeline.
type TimelineEvent struct {
	Timestamp   time.Time `json:"timestamp"`
	EventType   string    `json:"event_type"`
	TicketID    string    `json:"ticket_id"`
	Description string    `json:"description"`
}

// ComponentCount is an affected-component label with its ticket count.
// Components are kept as an ordered slice so that the top-10 ranking and
// its tie-break order survive serialization.
type ComponentCount struct {
	Label string `json:"label"`
	Count int    `json:"count"`
}

// TimePatterns describes temporal clustering of the related tickets.
type TimePatterns struct {
	// PeakHours maps hour-of-day to ticket count for hours whose volume
	// exceeds mean + 1 stddev of the hour distribution.
	PeakHours map[int]int `json:"peak_hours,omitempty"`
	// DayDistribution maps weekday name to ticket count.
	DayDistribution map[string]int `json:"day_distribution,omitempty"`
}

// RelatedChange is evidence of a change that may relate to the incident.
// The same ticket can appear twice when both the category detector and the
// description detector fire; that duplication is intentional.
type RelatedChange struct {
	TicketID    string     `json:"ticket_id"`
	Description string     `json:"description"`
	Date        *time.Time `json:"date,omitempty"`
	Evidence    string     `json:"evidence,omitempty"`
}

// Factors bundles the four independent contributing-factor analyses.
// None of the maps are mutated after mining.
type Factors struct {
	TimePatterns     TimePatterns     `json:"time_patterns"`
	SystemComponents []ComponentCount `json:"system_components"`
	CommonErrors     map[string]int   `json:"common_errors"`
	RelatedChanges   []RelatedChange  `json:"related_changes"`
}

// Impact quantifies the blast radius of the incident.
type Impact struct {
	TicketCount            int            `json:"ticket_count"`
	PriorityDistribution   map[string]int `json:"priority_distribution,omitempty"`
	HighPriorityPercentage *float64       `json:"high_priority_percentage,omitempty"`
	AffectedUserCount      *int           `json:"affected_user_count,omitempty"`
	AvgResolutionTime      *float64       `json:"avg_resolution_time,omitempty"`
	MaxResolutionTime      *float64       `json:"max_resolution_time,omitempty"`
}

// Report is the terminal artifact of the pipeline. When Status is
// StatusInsufficientData only Status and Message are set.
type Report struct {
	Status  string `json:"status"`
	Message string `json:"message,omitempty"`

	ID                  string              `json:"id,omitempty"`
	IncidentDescription string              `json:"incident_description,omitempty"`
	RelatedTickets      int                 `json:"related_tickets,omitempty"`
	FilterMode          string              `json:"filter_mode,omitempty"`
	Timeline            []TimelineEvent     `json:"timeline,omitempty"`
	ContributingFactors *Factors            `json:"contributing_factors,omitempty"`
	Impact              *Impact             `json:"impact,omitempty"`
	Hypotheses          []string            `json:"hypotheses,omitempty"`
	Recommendations     []string            `json:"recommendations,omitempty"`
	SampleTickets       []map[string]string `json:"sample_tickets,omitempty"`
}
