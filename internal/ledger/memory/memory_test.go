package memory_test

import (
	"context"
	"testing"
	"time"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
	"github.com/ticketblock/ticketblock/internal/domain"
	"github.com/ticketblock/ticketblock/internal/ledger"
	"github.com/ticketblock/ticketblock/internal/ledger/memory"
	"github.com/ticketblock/ticketblock/internal/seating"
)

func seedEvent(t *testing.T, l *memory.Ledger) {
	t.Helper()

	zones := []domain.Zone{
		{Name: "VIP", Price: 500, Quantity: 4, SeatsPerRow: 2},
		{Name: "General A", Price: 200, Quantity: 6, SeatsPerRow: 3},
	}
	seats := seating.Allocate(
		map[string]int{"VIP": 4, "General A": 6},
		map[string]int{"VIP": 2, "General A": 3},
	)

	err := l.CreateEventInventory(context.Background(), domain.Event{
		ID:     1,
		Title:  "Concert",
		Starts: time.Now().Add(24 * time.Hour),
		Active: true,
	}, zones, seats)
	require.NoError(t, err)
}

func TestBuyTicket_GuardedBySold(t *testing.T) {
	l := memory.New()
	seedEvent(t, l)
	ctx := context.Background()

	require.NoError(t, l.BuyTicket(ctx, 1, 3, "0xaaa", 200))

	// idempotency key is the ticket id: a second buy fails cleanly
	err := l.BuyTicket(ctx, 1, 3, "0xbbb", 200)
	assert.ErrorIs(t, err, ledger.ErrAlreadySold)

	rec, err := l.GetTicket(ctx, 1, 3)
	require.NoError(t, err)
	assert.Equal(t, domain.Address("0xaaa"), rec.Owner)

	ev, err := l.GetEvent(ctx, 1)
	require.NoError(t, err)
	assert.Equal(t, int64(1), ev.TicketsSold)
}

func TestBuyTicket_InsufficientPayment(t *testing.T) {
	l := memory.New()
	seedEvent(t, l)

	err := l.BuyTicket(context.Background(), 1, 0, "0xaaa", 499)
	assert.ErrorIs(t, err, ledger.ErrInsufficientPayment)

	rec, err := l.GetTicket(context.Background(), 1, 0)
	require.NoError(t, err)
	assert.False(t, rec.Sold)
}

func TestScanTicket_GuardedByScanned(t *testing.T) {
	l := memory.New()
	seedEvent(t, l)
	ctx := context.Background()

	assert.ErrorIs(t, l.ScanTicket(ctx, 1, 2), ledger.ErrNotSold)

	require.NoError(t, l.BuyTicket(ctx, 1, 2, "0xaaa", 500))
	require.NoError(t, l.ScanTicket(ctx, 1, 2))

	err := l.ScanTicket(ctx, 1, 2)
	assert.ErrorIs(t, err, ledger.ErrAlreadyScanned)

	// rejected attempt leaves the flag set, not cleared
	rec, err := l.GetTicket(ctx, 1, 2)
	require.NoError(t, err)
	assert.True(t, rec.Scanned)
}

func TestLinkCredentialToken(t *testing.T) {
	l := memory.New()
	seedEvent(t, l)
	ctx := context.Background()

	tokenID, err := l.MintCredentialToken(ctx, "0xaaa", "ipfs://meta")
	require.NoError(t, err)

	// link requires a sold record
	assert.ErrorIs(t, l.LinkCredentialToken(ctx, 1, 4, tokenID), ledger.ErrNotSold)

	require.NoError(t, l.BuyTicket(ctx, 1, 4, "0xaaa", 200))
	require.NoError(t, l.LinkCredentialToken(ctx, 1, 4, tokenID))

	assert.ErrorIs(t, l.LinkCredentialToken(ctx, 1, 4, tokenID), ledger.ErrAlreadyLinked)

	rec, err := l.GetTicket(ctx, 1, 4)
	require.NoError(t, err)
	require.NotNil(t, rec.TokenID)
	assert.Equal(t, tokenID, *rec.TokenID)
}

func TestTransfer_ConvergesOwnerAndHolder(t *testing.T) {
	l := memory.New()
	seedEvent(t, l)
	ctx := context.Background()

	require.NoError(t, l.BuyTicket(ctx, 1, 0, "0xaaa", 500))
	tokenID, err := l.MintCredentialToken(ctx, "0xaaa", "ipfs://meta")
	require.NoError(t, err)
	require.NoError(t, l.LinkCredentialToken(ctx, 1, 0, tokenID))

	// transfer without authorization is rejected
	assert.ErrorIs(t, l.TransferTicket(ctx, tokenID, "0xbbb"), ledger.ErrNotAuthorized)

	// only the holder can authorize
	assert.ErrorIs(t, l.AuthorizeTransfer(ctx, tokenID, "0xbbb", "0xccc"), ledger.ErrNotAuthorized)

	require.NoError(t, l.AuthorizeTransfer(ctx, tokenID, "0xaaa", "0xbbb"))
	require.NoError(t, l.TransferTicket(ctx, tokenID, "0xbbb"))

	holder, err := l.TokenHolder(ctx, tokenID)
	require.NoError(t, err)
	rec, err := l.GetTicket(ctx, 1, 0)
	require.NoError(t, err)

	assert.Equal(t, holder, rec.Owner)
	assert.Equal(t, domain.Address("0xbbb"), holder)
}

func TestTransfer_ScannedTicketStillTransferable(t *testing.T) {
	l := memory.New()
	seedEvent(t, l)
	ctx := context.Background()

	require.NoError(t, l.BuyTicket(ctx, 1, 1, "0xaaa", 500))
	tokenID, err := l.MintCredentialToken(ctx, "0xaaa", "ipfs://meta")
	require.NoError(t, err)
	require.NoError(t, l.LinkCredentialToken(ctx, 1, 1, tokenID))
	require.NoError(t, l.ScanTicket(ctx, 1, 1))

	require.NoError(t, l.AuthorizeTransfer(ctx, tokenID, "0xaaa", "0xbbb"))
	require.NoError(t, l.TransferTicket(ctx, tokenID, "0xbbb"))

	rec, err := l.GetTicket(ctx, 1, 1)
	require.NoError(t, err)
	assert.True(t, rec.Scanned, "scan state persists across transfer")
	assert.Equal(t, domain.Address("0xbbb"), rec.Owner)
}

func TestGetTicket_NotFound(t *testing.T) {
	l := memory.New()
	seedEvent(t, l)

	_, err := l.GetTicket(context.Background(), 1, 99)
	assert.ErrorIs(t, err, ledger.ErrNotFound)

	_, err = l.GetTicket(context.Background(), 9, 0)
	assert.ErrorIs(t, err, ledger.ErrNotFound)
}
