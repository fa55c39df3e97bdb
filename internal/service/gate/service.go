// Package gate drives credential verification at the point of entry and the
// guarded mark-scanned transition that prevents re-entry.
package gate

import (
	"context"
	"errors"
	"fmt"

	"github.com/ticketblock/ticketblock/internal/credential"
	"github.com/ticketblock/ticketblock/internal/domain"
	"github.com/ticketblock/ticketblock/internal/ledger"
)

var ErrTicketNotFound = errors.New("ticket not found")

type Service struct {
	ledger ledger.Ledger
}

func New(l ledger.Ledger) *Service {
	return &Service{ledger: l}
}

// Result describes an accepted scan for the gate display.
type Result struct {
	EventID  uint64
	TicketID uint64
	Zone     string
	Row      int
	Column   int
	Owner    domain.Address
}

// Scan validates a credential payload against the ledger's current record and
// marks the ticket scanned exactly once.
//
// The verifier runs first and is pure; on any verification rejection no
// mutation is attempted. The mark-scanned mutation itself is guarded by
// scanned=false on the ledger, so when two gates race the loser is told
// "ticket already scanned" rather than anything suggesting a bad signature.
func (s *Service) Scan(ctx context.Context, p credential.Payload) (*Result, error) {
	const op = "service.gate.Scan"

	rec, err := s.ledger.GetTicket(ctx, p.EventID, p.TicketID)
	if err != nil {
		if errors.Is(err, ledger.ErrNotFound) {
			return nil, fmt.Errorf("%s: %w", op, ErrTicketNotFound)
		}
		if errors.Is(err, ledger.ErrUnavailable) {
			return nil, fmt.Errorf("%s: %w", op, &domain.UnavailableError{Err: err})
		}
		return nil, fmt.Errorf("%s: %w", op, err)
	}

	if err := credential.Verify(p, *rec); err != nil {
		return nil, fmt.Errorf("%s: %w", op, verifyReason(err))
	}

	if err := s.ledger.ScanTicket(ctx, p.EventID, p.TicketID); err != nil {
		switch {
		case errors.Is(err, ledger.ErrAlreadyScanned):
			// lost the race after a clean verify; this is a state
			// conflict, never a signature failure
			return nil, fmt.Errorf("%s: %w", op, &domain.StateConflictError{
				Reason: "ticket already scanned",
				Err:    err,
			})
		case errors.Is(err, ledger.ErrNotSold):
			return nil, fmt.Errorf("%s: %w", op, &domain.StateConflictError{
				Reason: "ticket not sold",
				Err:    err,
			})
		case errors.Is(err, ledger.ErrUnavailable):
			return nil, fmt.Errorf("%s: %w", op, &domain.UnavailableError{Err: err})
		default:
			return nil, fmt.Errorf("%s: %w", op, err)
		}
	}

	return &Result{
		EventID:  rec.EventID,
		TicketID: rec.TicketID,
		Zone:     rec.Zone,
		Row:      rec.Row,
		Column:   rec.Column,
		Owner:    rec.Owner,
	}, nil
}

// EntrySummary reports gate-side totals for an event. Outstanding counts
// sold tickets whose holders have not entered yet; unsold inventory is the
// query service's concern, not the gate's.
type EntrySummary struct {
	Total       int64
	Sold        int64
	Scanned     int64
	Outstanding int64
}

// Summary tallies the event's tickets for the gate display.
func (s *Service) Summary(ctx context.Context, eventID uint64) (*EntrySummary, error) {
	const op = "service.gate.Summary"

	tickets, err := s.ledger.GetTicketsByEvent(ctx, eventID)
	if err != nil {
		if errors.Is(err, ledger.ErrNotFound) {
			return nil, fmt.Errorf("%s: %w", op, ErrTicketNotFound)
		}
		return nil, fmt.Errorf("%s: %w", op, err)
	}

	sum := &EntrySummary{Total: int64(len(tickets))}
	for _, t := range tickets {
		if t.Sold {
			sum.Sold++
		}
		if t.Scanned {
			sum.Scanned++
		}
	}
	sum.Outstanding = sum.Sold - sum.Scanned

	return sum, nil
}

// verifyReason keeps the verifier's distinct rejection reasons intact while
// fitting them into the error taxonomy.
func verifyReason(err error) error {
	var vErr *domain.ValidationError
	if errors.As(err, &vErr) {
		return err
	}

	return &domain.StateConflictError{Reason: err.Error(), Err: err}
}
