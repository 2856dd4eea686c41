package rca

import (
	"testing"
	"time"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/pb003jbl/ticketrca/internal/ticket"
)

func mustTime(t *testing.T, value string) *time.Time {
	t.Helper()
	parsed, err := time.Parse("2006-01-02 15:04", value)
	require.NoError(t, err)
	return &parsed
}

// allColumns is the full canonical schema used by most tests.
var allColumns = []string{
	ticket.FieldNumber, ticket.FieldShortDescription, ticket.FieldDescription,
	ticket.FieldStatus, ticket.FieldPriority, ticket.FieldCategory,
	ticket.FieldSubcategory, ticket.FieldCreatedAt, ticket.FieldResolvedAt,
	ticket.FieldUpdatedAt,
}

func TestExtractIncidentDate(t *testing.T) {
	tests := []struct {
		name     string
		text     string
		expected string // empty means no date
	}{
		{"slash MDY", "Outage on 3/1/2024 affecting login", "2024-03-01"},
		{"dash MDY", "Outage on 12-31-2024", "2024-12-31"},
		{"two digit year", "Outage on 3/1/24", "2024-03-01"},
		{"no date", "Widespread login failures this morning", ""},
		{"month out of range", "Outage on 25/12/2024", ""},
		{"day out of range", "Outage on 2/30/2024", ""},
		{"zero day", "Outage on 3/0/2024", ""},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			date := ExtractIncidentDate(tt.text)
			if tt.expected == "" {
				assert.Nil(t, date)
				return
			}
			require.NotNil(t, date)
			assert.Equal(t, tt.expected, date.Format("2006-01-02"))
		})
	}
}

func TestLocateTimeWindow(t *testing.T) {
	// Scenario: window of 3 days around 3/1/2024 includes 2024-02-28 and
	// excludes 2024-03-05.
	store := ticket.NewStore([]ticket.Ticket{
		{Number: "INC001", CreatedAt: mustTime(t, "2024-02-28 10:00")},
		{Number: "INC002", CreatedAt: mustTime(t, "2024-03-05 10:00")},
	}, allColumns)

	result := NewLocator(nil).Locate(store, Query{
		Description: "Outage on 3/1/2024 affecting login",
		WindowDays:  3,
	})

	assert.Equal(t, ModeTimeWindow, result.Mode)
	require.NotNil(t, result.Anchor)
	assert.Equal(t, "2024-03-01", result.Anchor.Format("2006-01-02"))
	require.Len(t, result.Tickets, 1)
	assert.Equal(t, "INC001", result.Tickets[0].Number)
}

func TestLocateTimeWindowInclusiveBounds(t *testing.T) {
	store := ticket.NewStore([]ticket.Ticket{
		{Number: "INC001", CreatedAt: mustTime(t, "2024-02-27 00:00")},
		{Number: "INC002", CreatedAt: mustTime(t, "2024-03-04 00:00")},
		{Number: "INC003", CreatedAt: mustTime(t, "2024-03-04 00:01")},
		{Number: "INC004"},
	}, allColumns)

	result := NewLocator(nil).Locate(store, Query{Description: "issue on 3/1/2024"})

	require.Len(t, result.Tickets, 2)
	assert.Equal(t, "INC001", result.Tickets[0].Number)
	assert.Equal(t, "INC002", result.Tickets[1].Number)
}

func TestLocateCallerDateOverridesText(t *testing.T) {
	store := ticket.NewStore([]ticket.Ticket{
		{Number: "INC001", CreatedAt: mustTime(t, "2024-06-15 10:00")},
	}, allColumns)

	result := NewLocator(nil).Locate(store, Query{
		Description:  "Outage on 3/1/2024",
		IncidentDate: mustTime(t, "2024-06-15 00:00"),
	})

	assert.Equal(t, ModeTimeWindow, result.Mode)
	assert.Equal(t, "2024-06-15", result.Anchor.Format("2006-01-02"))
	assert.Len(t, result.Tickets, 1)
}

func TestLocateWindowWithoutCreatedAtColumn(t *testing.T) {
	// Degraded behavior: without a created_at column the whole store is
	// returned in time-window mode.
	store := ticket.NewStore([]ticket.Ticket{
		{Number: "INC001"},
		{Number: "INC002"},
	}, []string{ticket.FieldNumber})

	result := NewLocator(nil).Locate(store, Query{Description: "issue on 3/1/2024"})

	assert.Equal(t, ModeTimeWindow, result.Mode)
	assert.Len(t, result.Tickets, 2)
}

func TestLocateKeywordMode(t *testing.T) {
	store := ticket.NewStore([]ticket.Ticket{
		{Number: "INC001", ShortDescription: "Login page unreachable"},
		{Number: "INC002", Description: "Users report login failures"},
		{Number: "INC003", ShortDescription: "Printer out of toner"},
	}, allColumns)

	result := NewLocator(nil).Locate(store, Query{
		Description: "Widespread login problems reported",
	})

	assert.Equal(t, ModeKeyword, result.Mode)
	assert.Contains(t, result.KeyTerms, "login")
	require.Len(t, result.Tickets, 2)
	assert.Equal(t, "INC001", result.Tickets[0].Number)
	assert.Equal(t, "INC002", result.Tickets[1].Number)
}

func TestLocateEmptyResultIsValid(t *testing.T) {
	store := ticket.NewStore([]ticket.Ticket{
		{Number: "INC001", ShortDescription: "Printer out of toner"},
	}, allColumns)

	result := NewLocator(nil).Locate(store, Query{Description: "network outage downtown"})

	assert.Equal(t, ModeKeyword, result.Mode)
	assert.Empty(t, result.Tickets)
}

func TestLocateModeSelectionIsDeterministic(t *testing.T) {
	store := ticket.NewStore(nil, allColumns)
	locator := NewLocator(nil)

	for i := 0; i < 5; i++ {
		withDate := locator.Locate(store, Query{Description: "crash on 5/20/2024"})
		withoutDate := locator.Locate(store, Query{Description: "crash this morning"})
		assert.Equal(t, ModeTimeWindow, withDate.Mode)
		assert.Equal(t, ModeKeyword, withoutDate.Mode)
	}
}

func TestExtractKeyTerms(t *testing.T) {
	terms := ExtractKeyTerms("The login server failed, login timeout for the server!")

	// "login" and "server" appear twice, ranked first; stopwords and short
	// words are gone.
	require.True(t, len(terms) >= 3)
	assert.Equal(t, "login", terms[0])
	assert.Equal(t, "server", terms[1])
	assert.NotContains(t, terms, "the")
	assert.NotContains(t, terms, "for")
}

func TestExtractKeyTermsCapAndOrder(t *testing.T) {
	terms := ExtractKeyTerms("alpha bravo charlie delta echoes foxtrot golfing hotels indigo juliet kilos limas")
	assert.Len(t, terms, 10)
	assert.Equal(t, "alpha", terms[0])
}

type thresholdScorer struct {
	scores map[string]float64
}

func (s *thresholdScorer) Score(_ string, t ticket.Ticket) float64 {
	return s.scores[t.Number]
}

func TestLocateConsultsScorer(t *testing.T) {
	store := ticket.NewStore([]ticket.Ticket{
		{Number: "INC001", ShortDescription: "login broken"},
		{Number: "INC002", ShortDescription: "login slow"},
	}, allColumns)

	scorer := &thresholdScorer{scores: map[string]float64{"INC001": 0.9, "INC002": 0.1}}
	result := NewLocator(scorer).Locate(store, Query{Description: "login issues everywhere"})

	require.Len(t, result.Tickets, 1)
	assert.Equal(t, "INC001", result.Tickets[0].Number)
}

func TestLocateWorksWithoutScorer(t *testing.T) {
	store := ticket.NewStore([]ticket.Ticket{
		{Number: "INC001", ShortDescription: "login broken"},
	}, allColumns)

	result := NewLocator(nil).Locate(store, Query{Description: "login issues everywhere"})
	assert.Len(t, result.Tickets, 1)
}
