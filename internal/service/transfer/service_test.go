package transfer_test

import (
	"context"
	"testing"
	"time"

	"github.com/decred/dcrd/dcrec/secp256k1/v4"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
	"github.com/ticketblock/ticketblock/internal/credential"
	"github.com/ticketblock/ticketblock/internal/domain"
	"github.com/ticketblock/ticketblock/internal/ledger"
	"github.com/ticketblock/ticketblock/internal/ledger/memory"
	"github.com/ticketblock/ticketblock/internal/metadata"
	"github.com/ticketblock/ticketblock/internal/seating"
	"github.com/ticketblock/ticketblock/internal/service/purchase"
	"github.com/ticketblock/ticketblock/internal/service/transfer"
)

type stubPinner struct{}

func (stubPinner) Pin(context.Context, metadata.Document) (string, error) {
	return "ipfs://QmStub", nil
}

// linkedTicket runs a full purchase so the transfer starts from the linked
// state the workflow normally produces.
func linkedTicket(t *testing.T, l *memory.Ledger, owner domain.Address) *purchase.Receipt {
	t.Helper()

	zones := []domain.Zone{{Name: "General A", Price: 2, Quantity: 6, SeatsPerRow: 3}}
	seats := seating.Allocate(map[string]int{"General A": 6}, map[string]int{"General A": 3})
	require.NoError(t, l.CreateEventInventory(context.Background(), domain.Event{
		ID:     3,
		Title:  "Concert",
		Starts: time.Now().Add(time.Hour),
		Active: true,
	}, zones, seats))

	receipt, err := purchase.New(l, stubPinner{}).Purchase(context.Background(), 3, 0, owner, 2)
	require.NoError(t, err)
	return receipt
}

func TestTransfer_MovesTokenAndRecord(t *testing.T) {
	l := memory.New()
	receipt := linkedTicket(t, l, "0xalice")
	svc := transfer.New(l)
	ctx := context.Background()

	require.NoError(t, svc.Transfer(ctx, 3, 0, receipt.TokenID, "0xalice", "0xbob"))

	// token holder and seat record converge on the recipient
	holder, err := l.TokenHolder(ctx, receipt.TokenID)
	require.NoError(t, err)
	assert.Equal(t, domain.Address("0xbob"), holder)

	rec, err := l.GetTicket(ctx, 3, 0)
	require.NoError(t, err)
	assert.Equal(t, domain.Address("0xbob"), rec.Owner)
}

func TestTransfer_InvalidatesOldCredential(t *testing.T) {
	l := memory.New()
	key, err := secp256k1.GeneratePrivateKey()
	require.NoError(t, err)
	owner := credential.AddressFromKey(key)
	receipt := linkedTicket(t, l, owner)
	svc := transfer.New(l)
	ctx := context.Background()

	stale, err := credential.Sign(3, 0, key)
	require.NoError(t, err)

	require.NoError(t, svc.Transfer(ctx, 3, 0, receipt.TokenID, owner, "0xbob"))

	rec, err := l.GetTicket(ctx, 3, 0)
	require.NoError(t, err)
	assert.ErrorIs(t, credential.Verify(stale, *rec), credential.ErrOwnerMismatch)
}

func TestTransfer_Validation(t *testing.T) {
	l := memory.New()
	receipt := linkedTicket(t, l, "0xalice")
	svc := transfer.New(l)
	ctx := context.Background()

	var vErr *domain.ValidationError
	assert.ErrorAs(t, svc.Transfer(ctx, 3, 0, receipt.TokenID, domain.ZeroAddress, "0xbob"), &vErr)
	assert.ErrorAs(t, svc.Transfer(ctx, 3, 0, receipt.TokenID, "0xalice", domain.ZeroAddress), &vErr)
	assert.ErrorAs(t, svc.Transfer(ctx, 3, 0, receipt.TokenID, "0xalice", "0xalice"), &vErr)

	assert.ErrorIs(t,
		svc.Transfer(ctx, 3, 9, receipt.TokenID, "0xalice", "0xbob"),
		transfer.ErrTicketNotFound)

	// unlinked seat: token does not back it
	require.NoError(t, l.BuyTicket(ctx, 3, 1, "0xalice", 2))
	assert.ErrorIs(t,
		svc.Transfer(ctx, 3, 1, receipt.TokenID, "0xalice", "0xbob"),
		transfer.ErrTokenMismatch)
}

func TestTransfer_OnlyOwnerMayTransfer(t *testing.T) {
	l := memory.New()
	receipt := linkedTicket(t, l, "0xalice")
	svc := transfer.New(l)

	err := svc.Transfer(context.Background(), 3, 0, receipt.TokenID, "0xmallory", "0xbob")
	assert.ErrorIs(t, err, ledger.ErrNotAuthorized)
}

func TestTransfer_ScannedTicketStillTransfers(t *testing.T) {
	l := memory.New()
	receipt := linkedTicket(t, l, "0xalice")
	svc := transfer.New(l)
	ctx := context.Background()

	require.NoError(t, l.ScanTicket(ctx, 3, 0))

	// a used ticket keeps its collectible value
	require.NoError(t, svc.Transfer(ctx, 3, 0, receipt.TokenID, "0xalice", "0xbob"))

	rec, err := l.GetTicket(ctx, 3, 0)
	require.NoError(t, err)
	assert.True(t, rec.Scanned)
	assert.Equal(t, domain.Address("0xbob"), rec.Owner)
}
