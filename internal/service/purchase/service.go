// Package purchase sequences the non-atomic mint -> buy -> link workflow.
// There is no cross-operation atomicity: each step is an independent ledger
// call, and a failure leaves whatever the last confirmed step produced. The
// service flags partial states explicitly instead of rolling them back, and
// exposes RepairLink for the one partial state that is recoverable later.
package purchase

import (
	"context"
	"errors"
	"fmt"

	"github.com/ticketblock/ticketblock/internal/domain"
	"github.com/ticketblock/ticketblock/internal/ledger"
	"github.com/ticketblock/ticketblock/internal/metadata"
)

type Service struct {
	ledger ledger.Ledger
	meta   metadata.Store
}

func New(l ledger.Ledger, meta metadata.Store) *Service {
	return &Service{
		ledger: l,
		meta:   meta,
	}
}

// Receipt reports the outcome of a purchase. State is StateLinked on full
// success; a PartialWorkflowError carries the committed state otherwise.
type Receipt struct {
	EventID     uint64
	TicketID    uint64
	TokenID     uint64
	Owner       domain.Address
	Price       domain.Amount
	MetadataRef string
	State       State
}

// Purchase runs the full workflow for one ticket:
//
//  1. pin metadata and mint a credential token for the buyer (a failure here
//     aborts everything; no charge is attempted);
//  2. buy the ticket, paying the record's price (the ledger's serialization
//     point; losing a race leaves an orphaned token, flagged and never
//     blindly retried since the first attempt may have actually succeeded);
//  3. link the token into the inventory record (a failure here leaves a
//     sold-but-unlinked ticket, repairable via RepairLink).
//
// The ticket id is the idempotency key for step 2: re-invoking a purchase of
// an already-sold ticket fails cleanly without charging again.
func (s *Service) Purchase(
	ctx context.Context,
	eventID, ticketID uint64,
	buyer domain.Address,
	payment domain.Amount,
) (*Receipt, error) {
	const op = "service.purchase.Purchase"

	if buyer == domain.ZeroAddress {
		return nil, fmt.Errorf("%s: %w", op, domain.NewValidationError("buyer address required"))
	}

	ev, err := s.ledger.GetEvent(ctx, eventID)
	if err != nil {
		return nil, fmt.Errorf("%s: %w", op, mapLedgerErr(err, ErrEventNotFound))
	}

	if !ev.Active {
		return nil, fmt.Errorf("%s: %w", op, ErrEventInactive)
	}

	rec, err := s.ledger.GetTicket(ctx, eventID, ticketID)
	if err != nil {
		return nil, fmt.Errorf("%s: %w", op, mapLedgerErr(err, ErrTicketNotFound))
	}

	// cheap prechecks before anything mints: a lost race later is still
	// possible, but a ticket known to be sold or an underpayment must not
	// leave an orphaned token behind
	if rec.Sold {
		return nil, fmt.Errorf("%s: %w", op, &domain.StateConflictError{
			Reason: "ticket already sold",
			Err:    ledger.ErrAlreadySold,
		})
	}

	if payment < rec.Price {
		return nil, fmt.Errorf("%s: %w", op,
			domain.NewValidationError("payment %d below ticket price %d", payment, rec.Price))
	}

	receipt := &Receipt{
		EventID:  eventID,
		TicketID: ticketID,
		Owner:    buyer,
		Price:    rec.Price,
		State:    StateAvailable,
	}

	// step 1: mint
	ref, err := s.meta.Pin(ctx, metadata.TicketDocument(ev, rec))
	if err != nil {
		return nil, fmt.Errorf("%s: pin metadata: %w", op, err)
	}

	tokenID, err := s.ledger.MintCredentialToken(ctx, buyer, ref)
	if err != nil {
		return nil, fmt.Errorf("%s: %w", op, mapLedgerErr(err, nil))
	}

	receipt.TokenID = tokenID
	receipt.MetadataRef = ref
	receipt.State = StateMinted

	// step 2: buy
	if err := s.ledger.BuyTicket(ctx, eventID, ticketID, buyer, payment); err != nil {
		return receipt, fmt.Errorf("%s: %w", op, &domain.PartialWorkflowError{
			Step:      StepBuy,
			Committed: string(StateMinted),
			EventID:   eventID,
			TicketID:  ticketID,
			TokenID:   tokenID,
			Err:       mapLedgerErr(err, nil),
		})
	}

	receipt.State = StateSold

	// step 3: link
	if err := s.ledger.LinkCredentialToken(ctx, eventID, ticketID, tokenID); err != nil {
		return receipt, fmt.Errorf("%s: %w", op, &domain.PartialWorkflowError{
			Step:      StepLink,
			Committed: string(StateSold),
			EventID:   eventID,
			TicketID:  ticketID,
			TokenID:   tokenID,
			Err:       mapLedgerErr(err, nil),
		})
	}

	receipt.State = StateLinked

	return receipt, nil
}

// RepairLink finishes a purchase whose link step failed. Ownership from step
// 2 is already final, so only the link is re-attempted; the caller must be
// the record's owner and hold the token.
func (s *Service) RepairLink(
	ctx context.Context,
	eventID, ticketID, tokenID uint64,
	owner domain.Address,
) error {
	const op = "service.purchase.RepairLink"

	rec, err := s.ledger.GetTicket(ctx, eventID, ticketID)
	if err != nil {
		return fmt.Errorf("%s: %w", op, mapLedgerErr(err, ErrTicketNotFound))
	}

	if !rec.Sold {
		return fmt.Errorf("%s: %w", op, &domain.StateConflictError{
			Reason: "ticket not sold",
			Err:    ledger.ErrNotSold,
		})
	}

	if rec.Owner != owner {
		return fmt.Errorf("%s: %w", op, &domain.StateConflictError{
			Reason: "caller is not the ticket owner",
			Err:    ledger.ErrNotAuthorized,
		})
	}

	// already linked to this very token: nothing to repair
	if rec.TokenID != nil && *rec.TokenID == tokenID {
		return nil
	}

	holder, err := s.ledger.TokenHolder(ctx, tokenID)
	if err != nil {
		return fmt.Errorf("%s: %w", op, mapLedgerErr(err, nil))
	}

	if holder != owner {
		return fmt.Errorf("%s: %w", op, &domain.StateConflictError{
			Reason: "caller does not hold the credential token",
			Err:    ledger.ErrNotAuthorized,
		})
	}

	if err := s.ledger.LinkCredentialToken(ctx, eventID, ticketID, tokenID); err != nil {
		return fmt.Errorf("%s: %w", op, mapLedgerErr(err, nil))
	}

	return nil
}

// mapLedgerErr translates ledger sentinels into the error taxonomy without
// masking a state conflict as a partial failure or vice versa.
func mapLedgerErr(err error, notFound error) error {
	switch {
	case err == nil:
		return nil
	case errors.Is(err, ledger.ErrNotFound):
		if notFound != nil {
			return notFound
		}
		return err
	case errors.Is(err, ledger.ErrUnavailable):
		return &domain.UnavailableError{Err: err}
	case errors.Is(err, ledger.ErrAlreadySold):
		return &domain.StateConflictError{Reason: "ticket already sold", Err: err}
	case errors.Is(err, ledger.ErrAlreadyScanned):
		return &domain.StateConflictError{Reason: "ticket already scanned", Err: err}
	case errors.Is(err, ledger.ErrNotSold):
		return &domain.StateConflictError{Reason: "ticket not sold", Err: err}
	case errors.Is(err, ledger.ErrAlreadyLinked):
		return &domain.StateConflictError{Reason: "credential token already linked", Err: err}
	case errors.Is(err, ledger.ErrInsufficientPayment):
		return &domain.StateConflictError{Reason: "insufficient payment", Err: err}
	case errors.Is(err, ledger.ErrNotAuthorized):
		return &domain.StateConflictError{Reason: "not authorized", Err: err}
	default:
		return err
	}
}
