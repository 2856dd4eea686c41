package rca

import (
	"math"
	"strings"

	"github.com/pb003jbl/ticketrca/internal/ticket"
)

// highPriorityValues is the fixed best-effort set of values that count as
// high priority across differing priority encodings.
var highPriorityValues = map[string]bool{
	"1": true, "2": true, "critical": true, "high": true,
}

// analyzeImpact quantifies the incident's impact over the related tickets.
func analyzeImpact(store *ticket.Store, related []ticket.Ticket) *Impact {
	impact := &Impact{TicketCount: len(related)}

	if store.HasColumn(ticket.FieldPriority) && len(related) > 0 {
		dist := make(map[string]int)
		high := 0
		for _, t := range related {
			if t.Priority != "" {
				dist[t.Priority]++
			}
			if isHighPriority(&t) {
				high++
			}
		}
		if len(dist) > 0 {
			impact.PriorityDistribution = dist
		}
		pct := round2(float64(high) / float64(len(related)) * 100)
		impact.HighPriorityPercentage = &pct
	}

	if store.HasColumn(ticket.FieldAffectedUser) {
		users := make(map[string]bool)
		for _, t := range related {
			if u := t.Fields[ticket.FieldAffectedUser]; u != "" {
				users[u] = true
			}
		}
		count := len(users)
		impact.AffectedUserCount = &count
	}

	var resolutions []float64
	for _, t := range related {
		if t.ResolutionTimeHours != nil {
			resolutions = append(resolutions, *t.ResolutionTimeHours)
		}
	}
	if len(resolutions) > 0 {
		avg, max := 0.0, resolutions[0]
		for _, h := range resolutions {
			avg += h
			if h > max {
				max = h
			}
		}
		avg /= float64(len(resolutions))
		impact.AvgResolutionTime = &avg
		impact.MaxResolutionTime = &max
	}

	return impact
}

// isHighPriority tests a ticket against the fixed high-priority set
// {1, 2, "1", "2", "Critical", "High"}.
func isHighPriority(t *ticket.Ticket) bool {
	if t.PriorityNum != nil {
		return *t.PriorityNum == 1 || *t.PriorityNum == 2
	}
	return highPriorityValues[strings.ToLower(t.Priority)]
}

func round2(v float64) float64 {
	return math.Round(v*100) / 100
}
