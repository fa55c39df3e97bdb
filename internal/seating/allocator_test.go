package seating_test

import (
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
	"github.com/ticketblock/ticketblock/internal/domain"
	"github.com/ticketblock/ticketblock/internal/seating"
)

func TestAllocate_SingleZoneExactRows(t *testing.T) {
	seats := seating.Allocate(
		map[string]int{"VIP": 10},
		map[string]int{"VIP": 10},
	)

	require.Len(t, seats, 10)
	for i, s := range seats {
		assert.Equal(t, "VIP", s.Zone)
		assert.Equal(t, 1, s.Row)
		assert.Equal(t, i+1, s.Column)
	}
}

func TestAllocate_LastRowShort(t *testing.T) {
	seats := seating.Allocate(
		map[string]int{"General A": 23},
		map[string]int{"General A": 10},
	)

	require.Len(t, seats, 23)

	rows := map[int]int{}
	for _, s := range seats {
		rows[s.Row]++
	}

	assert.Equal(t, map[int]int{1: 10, 2: 10, 3: 3}, rows)

	// the short row is numbered 1..3, never over-full
	last := seats[len(seats)-1]
	assert.Equal(t, 3, last.Row)
	assert.Equal(t, 3, last.Column)
}

func TestAllocate_CountInvariantPerZone(t *testing.T) {
	quantities := map[string]int{
		"VIP":       7,
		"General A": 31,
		"General B": 1,
		"Lawn":      0,
	}
	widths := map[string]int{
		"VIP":       3,
		"General A": 8,
		"General B": 10,
		"Lawn":      5,
	}

	seats := seating.Allocate(quantities, widths)

	counts := map[string]int{}
	for _, s := range seats {
		counts[s.Zone]++
		assert.LessOrEqual(t, s.Column, widths[s.Zone])
		assert.GreaterOrEqual(t, s.Row, 1)
		assert.GreaterOrEqual(t, s.Column, 1)
	}

	for zone, q := range quantities {
		assert.Equal(t, q, counts[zone], "zone %s", zone)
	}
}

func TestAllocate_ZeroWidthZoneSkipped(t *testing.T) {
	seats := seating.Allocate(
		map[string]int{"A": 5, "B": 4},
		map[string]int{"A": 0, "B": 2},
	)

	require.Len(t, seats, 4)
	for _, s := range seats {
		assert.Equal(t, "B", s.Zone)
	}
}

func TestAllocate_Deterministic(t *testing.T) {
	quantities := map[string]int{"VIP": 5, "General A": 12, "General B": 9}
	widths := map[string]int{"VIP": 2, "General A": 5, "General B": 4}

	first := seating.Allocate(quantities, widths)
	second := seating.Allocate(quantities, widths)

	assert.Equal(t, first, second)
}

func TestAllocate_RowLabelsRepeatAcrossZones(t *testing.T) {
	seats := seating.Allocate(
		map[string]int{"A": 2, "B": 2},
		map[string]int{"A": 2, "B": 2},
	)

	require.Len(t, seats, 4)
	assert.Equal(t, 1, seats[0].Row)
	assert.Equal(t, 1, seats[2].Row)
}

func TestSeatMap_StatusProjection(t *testing.T) {
	token := uint64(7)
	tickets := []domain.Ticket{
		{EventID: 1, TicketID: 0, Zone: "VIP", Row: 1, Column: 1},
		{EventID: 1, TicketID: 1, Zone: "VIP", Row: 1, Column: 2, Sold: true, Owner: "0xabc", TokenID: &token},
		{EventID: 1, TicketID: 2, Zone: "VIP", Row: 1, Column: 3, Sold: true, Scanned: true, Owner: "0xabc"},
	}

	sm := seating.SeatMap(tickets)
	require.Len(t, sm, 3)
	assert.Equal(t, domain.SeatAvailable, sm[0].Status)
	assert.Equal(t, domain.SeatSold, sm[1].Status)
	assert.Equal(t, domain.SeatScanned, sm[2].Status)
	assert.Equal(t, uint64(2), sm[2].TicketID)
}
