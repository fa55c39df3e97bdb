package query_test

import (
	"context"
	"encoding/json"
	"testing"
	"time"

	"github.com/go-redis/redismock/v9"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
	"github.com/ticketblock/ticketblock/internal/domain"
	"github.com/ticketblock/ticketblock/internal/ledger/memory"
	redisrepo "github.com/ticketblock/ticketblock/internal/repository/redis"
	"github.com/ticketblock/ticketblock/internal/seating"
	"github.com/ticketblock/ticketblock/internal/service/query"
)

func seedLedger(t *testing.T) *memory.Ledger {
	t.Helper()

	l := memory.New()
	zones := []domain.Zone{{Name: "VIP", Price: 3, Quantity: 4, SeatsPerRow: 2}}
	seats := seating.Allocate(map[string]int{"VIP": 4}, map[string]int{"VIP": 2})
	require.NoError(t, l.CreateEventInventory(context.Background(), domain.Event{
		ID:     2,
		Title:  "Concert",
		Starts: time.Date(2026, 11, 5, 20, 0, 0, 0, time.UTC),
		Active: true,
	}, zones, seats))

	return l
}

func TestGetEvent_CacheMissThenFill(t *testing.T) {
	l := seedLedger(t)
	rdb, mock := redismock.NewClientMock()
	svc := query.New(l, redisrepo.New(rdb), query.Config{EventSummaryTTL: time.Minute})
	ctx := context.Background()

	want, err := l.GetEvent(ctx, 2)
	require.NoError(t, err)
	body, err := json.Marshal(want)
	require.NoError(t, err)

	key := redisrepo.KeyEventSummary(2)
	mock.ExpectGet(key).RedisNil()
	mock.ExpectGet(key).RedisNil()
	mock.ExpectSet(key, string(body), time.Minute).SetVal("OK")

	ev, err := svc.GetEvent(ctx, 2)
	require.NoError(t, err)
	assert.Equal(t, "Concert", ev.Title)
	assert.NoError(t, mock.ExpectationsWereMet())
}

func TestGetEvent_ServedFromCache(t *testing.T) {
	l := seedLedger(t)
	rdb, mock := redismock.NewClientMock()
	svc := query.New(l, redisrepo.New(rdb), query.Config{})
	ctx := context.Background()

	cached := domain.Event{ID: 2, Title: "Cached Title", Active: true}
	body, err := json.Marshal(cached)
	require.NoError(t, err)

	mock.ExpectGet(redisrepo.KeyEventSummary(2)).SetVal(string(body))

	ev, err := svc.GetEvent(ctx, 2)
	require.NoError(t, err)
	// the ledger was never consulted
	assert.Equal(t, "Cached Title", ev.Title)
	assert.NoError(t, mock.ExpectationsWereMet())
}

func TestGetEvent_NotFound(t *testing.T) {
	l := seedLedger(t)
	rdb, mock := redismock.NewClientMock()
	svc := query.New(l, redisrepo.New(rdb), query.Config{})

	mock.ExpectGet(redisrepo.KeyEventSummary(404)).RedisNil()
	mock.ExpectGet(redisrepo.KeyEventSummary(404)).RedisNil()

	_, err := svc.GetEvent(context.Background(), 404)
	assert.ErrorIs(t, err, query.ErrEventNotFound)
}

func TestCountsByStatus(t *testing.T) {
	l := seedLedger(t)
	rdb, mock := redismock.NewClientMock()
	svc := query.New(l, redisrepo.New(rdb), query.Config{AvailabilityTTL: 15 * time.Second})
	ctx := context.Background()

	require.NoError(t, l.BuyTicket(ctx, 2, 0, "0xaaa", 3))
	require.NoError(t, l.ScanTicket(ctx, 2, 0))
	require.NoError(t, l.BuyTicket(ctx, 2, 1, "0xbbb", 3))

	want := domain.EventCounts{Total: 4, Sold: 2, Scanned: 1, Remaining: 2}
	body, err := json.Marshal(want)
	require.NoError(t, err)

	key := redisrepo.KeyEventAvailability(2)
	mock.ExpectGet(key).RedisNil()
	mock.ExpectGet(key).RedisNil()
	mock.ExpectSet(key, string(body), 15*time.Second).SetVal("OK")

	counts, err := svc.CountsByStatus(ctx, 2)
	require.NoError(t, err)
	assert.Equal(t, want, *counts)
	assert.NoError(t, mock.ExpectationsWereMet())
}

func TestSeatMap(t *testing.T) {
	l := seedLedger(t)
	rdb, mock := redismock.NewClientMock()
	svc := query.New(l, redisrepo.New(rdb), query.Config{EventSeatMapTTL: time.Minute})
	ctx := context.Background()

	require.NoError(t, l.BuyTicket(ctx, 2, 0, "0xaaa", 3))

	tickets, err := l.GetTicketsByEvent(ctx, 2)
	require.NoError(t, err)
	want := seating.SeatMap(tickets)
	body, err := json.Marshal(want)
	require.NoError(t, err)

	key := redisrepo.KeyEventSeatMap(2)
	mock.ExpectGet(key).RedisNil()
	mock.ExpectGet(key).RedisNil()
	mock.ExpectSet(key, string(body), time.Minute).SetVal("OK")

	seatsOut, err := svc.SeatMap(ctx, 2)
	require.NoError(t, err)
	require.Len(t, seatsOut, 4)
	assert.Equal(t, domain.SeatSold, seatsOut[0].Status)
	assert.NoError(t, mock.ExpectationsWereMet())
}

func TestListEventTickets(t *testing.T) {
	l := seedLedger(t)
	rdb, _ := redismock.NewClientMock()
	svc := query.New(l, redisrepo.New(rdb), query.Config{})
	ctx := context.Background()

	tickets, err := svc.ListEventTickets(ctx, 2)
	require.NoError(t, err)
	assert.Len(t, tickets, 4)

	_, err = svc.ListEventTickets(ctx, 404)
	assert.ErrorIs(t, err, query.ErrEventNotFound)
}

func TestGetTicket(t *testing.T) {
	l := seedLedger(t)
	rdb, _ := redismock.NewClientMock()
	svc := query.New(l, redisrepo.New(rdb), query.Config{})
	ctx := context.Background()

	tk, err := svc.GetTicket(ctx, 2, 3)
	require.NoError(t, err)
	assert.Equal(t, "VIP", tk.Zone)

	_, err = svc.GetTicket(ctx, 2, 42)
	assert.ErrorIs(t, err, query.ErrTicketNotFound)
}
