// Package ticket provides the canonical ticket model and the normalizer that
// turns an arbitrary tabular export into an analysis-ready Store.
package ticket

import (
	"sort"
	"time"
)

// Canonical field names produced by the normalizer.
const (
	FieldNumber           = "number"
	FieldShortDescription = "short_description"
	FieldDescription      = "description"
	FieldStatus           = "status"
	FieldPriority         = "priority"
	FieldCategory         = "category"
	FieldSubcategory      = "subcategory"
	FieldAssignedTo       = "assigned_to"
	FieldAssignmentGroup  = "assignment_group"
	FieldAffectedUser     = "affected_user"
	FieldCreatedAt        = "created_at"
	FieldResolvedAt       = "resolved_at"
	FieldClosedAt         = "closed_at"
	FieldUpdatedAt        = "updated_at"
	FieldResolution       = "resolution"
)

// Ticket is a single normalized incident ticket. Tickets are immutable
// inputs to the analysis pipeline; nil timestamps mean the value was absent
// or did not parse, never a zero default.
type Ticket struct {
	Number           string
	ShortDescription string
	Description      string
	Status           string
	// Priority is the standardized display value ("1".."4" when the raw
	// value mapped onto the ordinal scale, the trimmed raw text otherwise).
	Priority string
	// PriorityNum is set when Priority resolved to the 1..4 ordinal scale.
	PriorityNum *int
	Category    string
	Subcategory string
	AssignedTo  string

	CreatedAt  *time.Time
	ResolvedAt *time.Time
	UpdatedAt  *time.Time

	// ResolutionTimeHours is derived and equals (ResolvedAt - CreatedAt) in
	// hours. It is only set when both timestamps parsed successfully.
	ResolutionTimeHours *float64

	// Fields holds the full normalized record, including columns the model
	// does not promote to typed fields (resolution, affected_user, ...).
	Fields map[string]string
}

// CreatedHour returns the hour-of-day the ticket was created and whether the
// creation timestamp is present.
func (t *Ticket) CreatedHour() (int, bool) {
	if t.CreatedAt == nil {
		return 0, false
	}
	return t.CreatedAt.Hour(), true
}

// CreatedDay returns the weekday name the ticket was created on and whether
// the creation timestamp is present.
func (t *Ticket) CreatedDay() (string, bool) {
	if t.CreatedAt == nil {
		return "", false
	}
	return t.CreatedAt.Weekday().String(), true
}

// Field returns the raw normalized value for a column, or fallback when the
// value is absent or empty.
func (t *Ticket) Field(name, fallback string) string {
	if v, ok := t.Fields[name]; ok && v != "" {
		return v
	}
	return fallback
}

// Store is an ordered, immutable collection of normalized tickets plus the
// set of canonical columns present in the input schema. A Store is created
// once per analysis invocation and never written back to.
type Store struct {
	Tickets []Ticket
	columns map[string]bool
}

// NewStore creates a store from normalized tickets and schema columns.
func NewStore(tickets []Ticket, columns []string) *Store {
	colSet := make(map[string]bool, len(columns))
	for _, c := range columns {
		colSet[c] = true
	}
	return &Store{Tickets: tickets, columns: colSet}
}

// Len returns the number of tickets in the store.
func (s *Store) Len() int {
	return len(s.Tickets)
}

// HasColumn reports whether the input schema contained the given canonical
// column. Sub-analyses use this to degrade to empty results instead of
// treating an absent column as a failure.
func (s *Store) HasColumn(name string) bool {
	return s.columns[name]
}

// Columns returns the schema columns in stable order.
func (s *Store) Columns() []string {
	cols := make([]string, 0, len(s.columns))
	for c := range s.columns {
		cols = append(cols, c)
	}
	sort.Strings(cols)
	return cols
}
