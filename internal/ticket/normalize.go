package ticket

import (
	"strconv"
	"strings"
	"time"

	dps "github.com/markusmobius/go-dateparser"

	"github.com/pb003jbl/ticketrca/internal/dataset"
	"github.com/pb003jbl/ticketrca/internal/logging"
)

// columnSynonyms maps common export column names onto canonical field names.
// First match wins and an existing canonical column is never overwritten.
var columnSynonyms = []struct {
	From string
	To   string
}{
	{"incident_number", FieldNumber},
	{"ticket_number", FieldNumber},
	{"id", FieldNumber},
	{"summary", FieldShortDescription},
	{"title", FieldShortDescription},
	{"issue", FieldShortDescription},
	{"details", FieldDescription},
	{"state", FieldStatus},
	{"ticket_state", FieldStatus},
	{"priority_level", FieldPriority},
	{"urgency", FieldPriority},
	{"issue_category", FieldCategory},
	{"type", FieldCategory},
	{"subtype", FieldSubcategory},
	{"sub_category", FieldSubcategory},
	{"assignee", FieldAssignedTo},
	{"owner", FieldAssignedTo},
	{"assigned_group", FieldAssignmentGroup},
	{"support_group", FieldAssignmentGroup},
	{"team", FieldAssignmentGroup},
	{"created_date", FieldCreatedAt},
	{"opened_at", FieldCreatedAt},
	{"open_time", FieldCreatedAt},
	{"creation_date", FieldCreatedAt},
	{"resolved_date", FieldResolvedAt},
	{"resolution_date", FieldResolvedAt},
	{"closed_at", FieldResolvedAt},
	{"close_time", FieldResolvedAt},
}

// statusSynonyms maps raw status values (lowercased) onto the standard
// Open / In Progress / Resolved / Closed vocabulary.
var statusSynonyms = map[string]string{
	"new":                "Open",
	"open":               "Open",
	"in progress":        "In Progress",
	"in-progress":        "In Progress",
	"pending":            "In Progress",
	"on hold":            "In Progress",
	"awaiting user info": "In Progress",
	"resolved":           "Resolved",
	"closed":             "Closed",
	"cancelled":          "Closed",
	"canceled":           "Closed",
}

// prioritySynonyms maps raw priority values (lowercased, spaces removed)
// onto the 1..4 ordinal scale.
var prioritySynonyms = map[string]int{
	"1-critical": 1, "1": 1, "critical": 1,
	"2-high": 2, "2": 2, "high": 2,
	"3-moderate": 3, "3": 3, "moderate": 3,
	"4-low": 4, "4": 4, "low": 4,
}

// Normalizer turns raw tabular datasets into analysis-ready ticket stores.
type Normalizer struct {
	parser dps.Parser
	logger *logging.Logger
}

// NewNormalizer creates a new normalizer
func NewNormalizer() *Normalizer {
	return &Normalizer{
		parser: dps.Parser{},
		logger: logging.GetLogger("ticket.normalizer"),
	}
}

// Normalize standardizes column names and field types of the raw table and
// returns a new Store. The input table is never mutated. Per-field parse
// failures are treated as missing data, not errors; no row is dropped.
func (n *Normalizer) Normalize(table *dataset.Table) *Store {
	renames := buildColumnRenames(table.Columns)

	columns := make([]string, len(table.Columns))
	for i, col := range table.Columns {
		name := canonicalizeColumnName(col)
		if to, ok := renames[name]; ok {
			name = to
		}
		columns[i] = name
	}

	tickets := make([]Ticket, 0, len(table.Rows))
	for _, row := range table.Rows {
		record := make(map[string]string, len(columns))
		for i, col := range table.Columns {
			record[columns[i]] = row[col]
		}
		tickets = append(tickets, n.normalizeRecord(record))
	}

	n.logger.Debug("Normalized %d tickets with columns %v", len(tickets), columns)
	return NewStore(tickets, columns)
}

func (n *Normalizer) normalizeRecord(record map[string]string) Ticket {
	t := Ticket{
		Number:           record[FieldNumber],
		ShortDescription: record[FieldShortDescription],
		Description:      record[FieldDescription],
		Category:         record[FieldCategory],
		Subcategory:      record[FieldSubcategory],
		AssignedTo:       record[FieldAssignedTo],
	}

	if raw, ok := record[FieldStatus]; ok {
		t.Status = standardizeStatus(raw)
		record[FieldStatus] = t.Status
	}
	if raw, ok := record[FieldPriority]; ok {
		t.Priority, t.PriorityNum = standardizePriority(raw)
		record[FieldPriority] = t.Priority
	}

	t.CreatedAt = n.parseTime(record[FieldCreatedAt])
	t.ResolvedAt = n.parseTime(record[FieldResolvedAt])
	t.UpdatedAt = n.parseTime(record[FieldUpdatedAt])

	if t.CreatedAt != nil && t.ResolvedAt != nil {
		hours := t.ResolvedAt.Sub(*t.CreatedAt).Hours()
		t.ResolutionTimeHours = &hours
	}

	t.Fields = record
	return t
}

// parseTime parses a timestamp leniently. An unparseable value is missing
// data, never an error.
func (n *Normalizer) parseTime(raw string) *time.Time {
	raw = strings.TrimSpace(raw)
	if raw == "" {
		return nil
	}

	parsed, err := n.parser.Parse(&dps.Configuration{}, raw)
	if err != nil || parsed.IsZero() {
		return nil
	}
	t := parsed.Time
	return &t
}

// buildColumnRenames resolves the synonym table against the normalized
// column set. A synonym is only applied when its canonical target does not
// already exist and has not been claimed by an earlier synonym.
func buildColumnRenames(rawColumns []string) map[string]string {
	present := make(map[string]bool, len(rawColumns))
	for _, col := range rawColumns {
		present[canonicalizeColumnName(col)] = true
	}

	renames := make(map[string]string)
	claimed := make(map[string]bool)
	for _, syn := range columnSynonyms {
		if !present[syn.From] {
			continue
		}
		if present[syn.To] || claimed[syn.To] {
			continue
		}
		renames[syn.From] = syn.To
		claimed[syn.To] = true
	}
	return renames
}

// canonicalizeColumnName lowercases a column name and replaces whitespace
// with underscores.
func canonicalizeColumnName(name string) string {
	name = strings.ToLower(strings.TrimSpace(name))
	return strings.Join(strings.Fields(name), "_")
}

// standardizeStatus maps a raw status value onto the standard vocabulary.
// Unknown values are kept, capitalized.
func standardizeStatus(raw string) string {
	trimmed := strings.TrimSpace(raw)
	if trimmed == "" {
		return ""
	}
	lower := strings.ToLower(trimmed)
	if mapped, ok := statusSynonyms[lower]; ok {
		return mapped
	}
	return capitalize(lower)
}

// standardizePriority maps a raw priority value onto the 1..4 ordinal scale
// where possible. Values that neither match the synonym table nor parse as a
// number keep their trimmed raw text and no ordinal.
func standardizePriority(raw string) (string, *int) {
	trimmed := strings.TrimSpace(raw)
	if trimmed == "" {
		return "", nil
	}

	key := strings.ToLower(strings.ReplaceAll(trimmed, " ", ""))
	if num, ok := prioritySynonyms[key]; ok {
		return strconv.Itoa(num), &num
	}
	if num, err := strconv.Atoi(key); err == nil {
		return strconv.Itoa(num), &num
	}
	return trimmed, nil
}

// capitalize uppercases the first rune and lowercases the rest.
func capitalize(s string) string {
	if s == "" {
		return s
	}
	return strings.ToUpper(s[:1]) + strings.ToLower(s[1:])
}
