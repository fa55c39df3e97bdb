// Package transfer moves an issued credential token, and the seat record it
// backs, to a new holder.
package transfer

import (
	"context"
	"errors"
	"fmt"

	"github.com/ticketblock/ticketblock/internal/domain"
	"github.com/ticketblock/ticketblock/internal/ledger"
)

var (
	ErrTicketNotFound = errors.New("ticket not found")
	ErrTokenMismatch  = errors.New("token does not back this ticket")
)

type Service struct {
	ledger ledger.Ledger
}

func New(l ledger.Ledger) *Service {
	return &Service{ledger: l}
}

// Transfer hands the credential token for a seat over to a new holder.
//
// The ledger requires an explicit authorization step before the handover, so
// a transfer is a two-step workflow: authorize, then move. If the move fails
// after a successful authorization the caller gets a PartialWorkflowError with
// Committed="authorized"; re-running Transfer is safe because authorizing the
// same recipient again is idempotent on the ledger side.
func (s *Service) Transfer(ctx context.Context, eventID, ticketID, tokenID uint64, from, to domain.Address) error {
	const op = "service.transfer.Transfer"

	if from == domain.ZeroAddress {
		return fmt.Errorf("%s: %w", op, domain.NewValidationError("from address is empty"))
	}
	if to == domain.ZeroAddress {
		return fmt.Errorf("%s: %w", op, domain.NewValidationError("to address is empty"))
	}
	if from == to {
		return fmt.Errorf("%s: %w", op, domain.NewValidationError("sender and recipient are the same address"))
	}

	rec, err := s.ledger.GetTicket(ctx, eventID, ticketID)
	if err != nil {
		return fmt.Errorf("%s: %w", op, mapLedgerErr(err))
	}
	if rec.TokenID == nil || *rec.TokenID != tokenID {
		return fmt.Errorf("%s: %w", op, ErrTokenMismatch)
	}
	if rec.Owner != from {
		return fmt.Errorf("%s: %w", op, ledger.ErrNotAuthorized)
	}

	if err := s.ledger.AuthorizeTransfer(ctx, tokenID, from, to); err != nil {
		return fmt.Errorf("%s: %w", op, mapLedgerErr(err))
	}

	if err := s.ledger.TransferTicket(ctx, tokenID, to); err != nil {
		return fmt.Errorf("%s: %w", op, &domain.PartialWorkflowError{
			Step:      "transfer",
			Committed: "authorized",
			EventID:   eventID,
			TicketID:  ticketID,
			TokenID:   tokenID,
			Err:       mapLedgerErr(err),
		})
	}

	return nil
}

func mapLedgerErr(err error) error {
	switch {
	case errors.Is(err, ledger.ErrNotFound):
		return ErrTicketNotFound
	case errors.Is(err, ledger.ErrNotAuthorized):
		return ledger.ErrNotAuthorized
	case errors.Is(err, ledger.ErrUnavailable):
		return &domain.UnavailableError{Err: err}
	default:
		return err
	}
}
