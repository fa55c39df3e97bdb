// Package seating turns per-zone capacity and row width into a deterministic
// grid of seat descriptors. The same computation sizes ledger inventory at
// event creation and re-renders availability from live inventory later, so
// both sides agree on row and column numbering.
package seating

import (
	"sort"

	"github.com/ticketblock/ticketblock/internal/domain"
)

// Allocate produces one descriptor per requested seat. Zones are processed in
// sorted-name order so the output is stable for a given input. A zone with a
// zero quantity or zero row width contributes no descriptors.
//
// For a zone with quantity q and row width w, row r (1-based) holds
// min(w, q-(r-1)*w) seats with columns numbered 1..count; only the last row
// may be short.
func Allocate(quantities map[string]int, seatsPerRow map[string]int) []domain.SeatDescriptor {
	zones := make([]string, 0, len(quantities))
	for z := range quantities {
		zones = append(zones, z)
	}
	sort.Strings(zones)

	var out []domain.SeatDescriptor
	for _, zone := range zones {
		q := quantities[zone]
		w := seatsPerRow[zone]
		if q <= 0 || w <= 0 {
			continue
		}

		row := 1
		for remaining := q; remaining > 0; row++ {
			width := w
			if remaining < width {
				width = remaining
			}
			for col := 1; col <= width; col++ {
				out = append(out, domain.SeatDescriptor{
					Zone:   zone,
					Row:    row,
					Column: col,
				})
			}
			remaining -= width
		}
	}

	return out
}

// SeatMap correlates live inventory records with the allocator's numbering.
// Records already carry their row and column, so this is a pure relabeling
// into per-seat status for rendering.
func SeatMap(tickets []domain.Ticket) []domain.SeatWithStatus {
	out := make([]domain.SeatWithStatus, 0, len(tickets))
	for _, t := range tickets {
		status := domain.SeatAvailable
		switch {
		case t.Scanned:
			status = domain.SeatScanned
		case t.Sold:
			status = domain.SeatSold
		}

		out = append(out, domain.SeatWithStatus{
			SeatDescriptor: domain.SeatDescriptor{
				Zone:   t.Zone,
				Row:    t.Row,
				Column: t.Column,
			},
			TicketID: t.TicketID,
			Status:   status,
		})
	}

	return out
}
