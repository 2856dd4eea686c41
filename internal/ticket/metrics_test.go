package ticket

import (
	"testing"
	"time"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func mustTime(t *testing.T, value string) *time.Time {
	t.Helper()
	parsed, err := time.Parse("2006-01-02 15:04", value)
	require.NoError(t, err)
	return &parsed
}

func hoursPtr(h float64) *float64 { return &h }

func TestSummarize(t *testing.T) {
	columns := []string{FieldNumber, FieldShortDescription, FieldStatus, FieldPriority, FieldCategory, FieldCreatedAt, FieldResolvedAt}
	tickets := []Ticket{
		{
			Number: "INC001", ShortDescription: "Database timeout during login",
			Status: "Open", Priority: "1", Category: "Database",
			CreatedAt:           mustTime(t, "2024-03-01 09:00"),
			ResolutionTimeHours: hoursPtr(4),
			Fields:              map[string]string{FieldShortDescription: "Database timeout during login"},
		},
		{
			Number: "INC002", ShortDescription: "Database slow again",
			Status: "Closed", Priority: "3", Category: "Database",
			CreatedAt:           mustTime(t, "2024-03-01 14:00"),
			ResolutionTimeHours: hoursPtr(8),
			Fields:              map[string]string{FieldShortDescription: "Database slow again"},
		},
		{
			Number: "INC003", ShortDescription: "Printer jam",
			Status: "Open", Priority: "4", Category: "Hardware",
			CreatedAt: mustTime(t, "2024-03-02 09:00"),
			Fields:    map[string]string{FieldShortDescription: "Printer jam"},
		},
	}
	store := NewStore(tickets, columns)

	summary := Summarize(store)

	assert.Equal(t, 3, summary.TicketCount)
	require.NotNil(t, summary.AvgTicketsPerDay)
	assert.InDelta(t, 1.5, *summary.AvgTicketsPerDay, 0.001)

	require.NotNil(t, summary.AvgResolutionHours)
	assert.InDelta(t, 6.0, *summary.AvgResolutionHours, 0.001)
	require.NotNil(t, summary.MedianResolutionHrs)
	assert.InDelta(t, 6.0, *summary.MedianResolutionHrs, 0.001)

	assert.Equal(t, map[string]int{"Database": 2, "Hardware": 1}, summary.CategoryDistribution)
	assert.Equal(t, map[string]int{"Open": 2, "Closed": 1}, summary.StatusDistribution)
	assert.Equal(t, map[string]int{"1": 1, "3": 1, "4": 1}, summary.PriorityDistribution)
	assert.Equal(t, map[int]int{9: 2, 14: 1}, summary.TicketsByHour)
}

func TestSummarizeMissingColumns(t *testing.T) {
	store := NewStore([]Ticket{{Number: "INC001"}}, []string{FieldNumber})

	summary := Summarize(store)

	assert.Equal(t, 1, summary.TicketCount)
	assert.Nil(t, summary.AvgTicketsPerDay)
	assert.Nil(t, summary.CategoryDistribution)
	assert.Nil(t, summary.CommonKeywords)
}

func TestStoreColumnsSorted(t *testing.T) {
	store := NewStore(nil, []string{FieldStatus, FieldCategory, FieldNumber})
	assert.Equal(t, []string{FieldCategory, FieldNumber, FieldStatus}, store.Columns())
}

func TestExtractKeywords(t *testing.T) {
	columns := []string{FieldShortDescription}
	tickets := []Ticket{
		{Fields: map[string]string{FieldShortDescription: "Database timeout on the login page"}},
		{Fields: map[string]string{FieldShortDescription: "database connection timeout"}},
		{Fields: map[string]string{FieldShortDescription: "timeout again"}},
	}
	store := NewStore(tickets, columns)

	keywords := ExtractKeywords(store, FieldShortDescription, 20)

	require.NotEmpty(t, keywords)
	assert.Equal(t, KeywordCount{Word: "timeout", Count: 3}, keywords[0])
	assert.Equal(t, KeywordCount{Word: "database", Count: 2}, keywords[1])
	for _, kw := range keywords {
		assert.NotContains(t, []string{"the", "on"}, kw.Word)
	}
}

func TestExtractKeywordsCap(t *testing.T) {
	columns := []string{FieldShortDescription}
	tickets := []Ticket{{Fields: map[string]string{
		FieldShortDescription: "alpha beta gamma delta epsilon zeta",
	}}}
	store := NewStore(tickets, columns)

	keywords := ExtractKeywords(store, FieldShortDescription, 3)
	assert.Len(t, keywords, 3)
	// Ties resolve by first appearance.
	assert.Equal(t, "alpha", keywords[0].Word)
	assert.Equal(t, "beta", keywords[1].Word)
}
