// Package ledger defines the operation contracts of the authoritative,
// serializing state store for events, tickets and credential tokens. The core
// never reads-then-blind-writes: every mutation is guarded and the ledger
// rejects a conflicting transition instead of silently no-opping.
package ledger

import (
	"context"
	"errors"

	"github.com/ticketblock/ticketblock/internal/domain"
)

var (
	ErrNotFound            = errors.New("not found")
	ErrConflict            = errors.New("conflict")
	ErrAlreadySold         = errors.New("ticket already sold")
	ErrNotSold             = errors.New("ticket not sold")
	ErrAlreadyScanned      = errors.New("ticket already scanned")
	ErrInsufficientPayment = errors.New("insufficient payment")
	ErrAlreadyLinked       = errors.New("credential token already linked")
	ErrNotAuthorized       = errors.New("not authorized")
	ErrUnavailable         = errors.New("ledger unavailable")
)

// Ledger is the only mutation and query surface the orchestrators use. The
// caller's address is always explicit; there is no ambient session.
type Ledger interface {
	// CreateEventInventory stores the event and seeds one unsold ticket
	// record per allocated seat, priced by zone.
	CreateEventInventory(ctx context.Context, ev domain.Event, zones []domain.Zone, seats []domain.SeatDescriptor) error

	GetEvent(ctx context.Context, eventID uint64) (*domain.Event, error)
	GetTicket(ctx context.Context, eventID, ticketID uint64) (*domain.Ticket, error)
	GetTicketsByEvent(ctx context.Context, eventID uint64) ([]domain.Ticket, error)

	// BuyTicket marks the record sold and sets its owner, guarded by
	// sold=false. Exactly one of two racing purchasers succeeds; the other
	// gets ErrAlreadySold. Payment below the record price is rejected.
	BuyTicket(ctx context.Context, eventID, ticketID uint64, buyer domain.Address, payment domain.Amount) error

	// MintCredentialToken creates a fresh token bound to the metadata
	// reference and held by owner. Independent of any inventory record
	// until linked.
	MintCredentialToken(ctx context.Context, owner domain.Address, metadataRef string) (uint64, error)

	// LinkCredentialToken sets the record's credential token id, guarded by
	// sold=true and no prior link.
	LinkCredentialToken(ctx context.Context, eventID, ticketID, tokenID uint64) error

	// ScanTicket flips scanned to true, guarded by scanned=false. A second
	// concurrent scan is rejected with ErrAlreadyScanned, never no-opped.
	ScanTicket(ctx context.Context, eventID, ticketID uint64) error

	// AuthorizeTransfer lets the current holder approve a recipient.
	AuthorizeTransfer(ctx context.Context, tokenID uint64, holder, to domain.Address) error

	// TransferTicket moves the token to the approved recipient and updates
	// the linked record's owner in the same call, so the two never diverge.
	TransferTicket(ctx context.Context, tokenID uint64, to domain.Address) error

	// TokenHolder reports the current holder of a credential token.
	TokenHolder(ctx context.Context, tokenID uint64) (domain.Address, error)
}
