package rca

import (
	"fmt"
	"sort"

	"github.com/pb003jbl/ticketrca/internal/ticket"
)

// BuildTimeline merges creation, resolution and update events from the
// related tickets into one sequence, sorted ascending by timestamp. The sort
// is stable: events with equal timestamps keep their emission order
// (created events first, then resolved, then updated, each in store order).
// Pure function of its input; re-running yields an identical sequence.
func BuildTimeline(related []ticket.Ticket) []TimelineEvent {
	var timeline []TimelineEvent

	for _, t := range related {
		if t.CreatedAt == nil {
			continue
		}
		timeline = append(timeline, TimelineEvent{
			Timestamp:   *t.CreatedAt,
			EventType:   EventCreated,
			TicketID:    t.Number,
			Description: t.Field(ticket.FieldShortDescription, "N/A"),
		})
	}

	for _, t := range related {
		if t.ResolvedAt == nil {
			continue
		}
		timeline = append(timeline, TimelineEvent{
			Timestamp:   *t.ResolvedAt,
			EventType:   EventResolved,
			TicketID:    t.Number,
			Description: fmt.Sprintf("Resolution: %s", t.Field(ticket.FieldResolution, "N/A")),
		})
	}

	for _, t := range related {
		if t.UpdatedAt == nil {
			continue
		}
		timeline = append(timeline, TimelineEvent{
			Timestamp:   *t.UpdatedAt,
			EventType:   EventUpdated,
			TicketID:    t.Number,
			Description: fmt.Sprintf("Status: %s", t.Field(ticket.FieldStatus, "N/A")),
		})
	}

	sort.SliceStable(timeline, func(i, j int) bool {
		return timeline[i].Timestamp.Before(timeline[j].Timestamp)
	})
	return timeline
}
