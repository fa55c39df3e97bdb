package gate_test

import (
	"context"
	"testing"
	"time"

	"github.com/decred/dcrd/dcrec/secp256k1/v4"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
	"github.com/ticketblock/ticketblock/internal/credential"
	"github.com/ticketblock/ticketblock/internal/domain"
	"github.com/ticketblock/ticketblock/internal/ledger/memory"
	"github.com/ticketblock/ticketblock/internal/seating"
	"github.com/ticketblock/ticketblock/internal/service/gate"
)

// soldTicket seeds an event, buys ticket 0 for the key's address and returns
// a valid credential payload for it.
func soldTicket(t *testing.T, l *memory.Ledger) (*secp256k1.PrivateKey, credential.Payload) {
	t.Helper()

	key, err := secp256k1.GeneratePrivateKey()
	require.NoError(t, err)
	holder := credential.AddressFromKey(key)

	zones := []domain.Zone{{Name: "VIP", Price: 3, Quantity: 4, SeatsPerRow: 2}}
	seats := seating.Allocate(map[string]int{"VIP": 4}, map[string]int{"VIP": 2})
	require.NoError(t, l.CreateEventInventory(context.Background(), domain.Event{
		ID:     5,
		Title:  "Concert",
		Starts: time.Now().Add(time.Hour),
		Active: true,
	}, zones, seats))

	require.NoError(t, l.BuyTicket(context.Background(), 5, 0, holder, 3))

	p, err := credential.Sign(5, 0, key)
	require.NoError(t, err)

	return key, p
}

func TestScan_AcceptsValidCredentialOnce(t *testing.T) {
	l := memory.New()
	_, p := soldTicket(t, l)
	svc := gate.New(l)
	ctx := context.Background()

	res, err := svc.Scan(ctx, p)
	require.NoError(t, err)
	assert.Equal(t, uint64(5), res.EventID)
	assert.Equal(t, "VIP", res.Zone)

	rec, err := l.GetTicket(ctx, 5, 0)
	require.NoError(t, err)
	assert.True(t, rec.Scanned)

	// the same credential presented again is a state conflict, not a
	// signature failure
	_, err = svc.Scan(ctx, p)
	var cErr *domain.StateConflictError
	require.ErrorAs(t, err, &cErr)
	assert.ErrorIs(t, err, credential.ErrAlreadyScanned)
}

func TestScan_UnsoldTicket(t *testing.T) {
	l := memory.New()
	key, _ := soldTicket(t, l)
	svc := gate.New(l)

	// valid signature over a seat that was never sold
	p, err := credential.Sign(5, 1, key)
	require.NoError(t, err)

	_, err = svc.Scan(context.Background(), p)
	var cErr *domain.StateConflictError
	assert.ErrorAs(t, err, &cErr)
}

func TestScan_WrongKeyRejected(t *testing.T) {
	l := memory.New()
	soldTicket(t, l)
	svc := gate.New(l)

	other, err := secp256k1.GeneratePrivateKey()
	require.NoError(t, err)
	forged, err := credential.Sign(5, 0, other)
	require.NoError(t, err)

	_, err = svc.Scan(context.Background(), forged)
	require.Error(t, err)

	// the recovered address mismatch must not mark the seat scanned
	rec, err := l.GetTicket(context.Background(), 5, 0)
	require.NoError(t, err)
	assert.False(t, rec.Scanned)
}

func TestScan_MalformedSignature(t *testing.T) {
	l := memory.New()
	_, p := soldTicket(t, l)
	svc := gate.New(l)

	p.Signature = "0xzz"
	_, err := svc.Scan(context.Background(), p)
	var vErr *domain.ValidationError
	assert.ErrorAs(t, err, &vErr)
}

func TestScan_UnknownTicket(t *testing.T) {
	l := memory.New()
	key, _ := soldTicket(t, l)
	svc := gate.New(l)

	p, err := credential.Sign(5, 99, key)
	require.NoError(t, err)

	_, err = svc.Scan(context.Background(), p)
	assert.ErrorIs(t, err, gate.ErrTicketNotFound)
}

func TestSummary(t *testing.T) {
	l := memory.New()
	_, p := soldTicket(t, l)
	svc := gate.New(l)
	ctx := context.Background()

	sum, err := svc.Summary(ctx, 5)
	require.NoError(t, err)
	assert.Equal(t, gate.EntrySummary{Total: 4, Sold: 1, Scanned: 0, Outstanding: 1}, *sum)

	_, err = svc.Scan(ctx, p)
	require.NoError(t, err)

	// after entry nothing is outstanding, but unsold seats do not count
	sum, err = svc.Summary(ctx, 5)
	require.NoError(t, err)
	assert.Equal(t, gate.EntrySummary{Total: 4, Sold: 1, Scanned: 1, Outstanding: 0}, *sum)

	_, err = svc.Summary(ctx, 404)
	assert.ErrorIs(t, err, gate.ErrTicketNotFound)
}
