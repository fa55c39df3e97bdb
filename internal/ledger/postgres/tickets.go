package postgres

import (
	"context"
	"fmt"

	"github.com/ticketblock/ticketblock/internal/domain"
	"github.com/ticketblock/ticketblock/internal/ledger"
	"github.com/ticketblock/ticketblock/internal/uow"
)

// BuyTicket marks the record sold, guarded by sold=false. When two buyers
// race, the conditional UPDATE lets exactly one through; the loser's zero-row
// result is diagnosed into the precise rejection.
func (l *Ledger) BuyTicket(
	ctx context.Context,
	eventID, ticketID uint64,
	buyer domain.Address,
	payment domain.Amount,
) error {
	const op = "ledgerpg.BuyTicket"

	err := l.uow.Do(ctx, func(ctx context.Context, tx DB, after func(uow.AfterCommit)) error {
		tag, err := tx.Exec(ctx,
			`UPDATE tickets
			 SET sold = TRUE, owner_address = $3
			 WHERE event_id = $1 AND ticket_id = $2
			   AND sold = FALSE
			   AND price <= $4`,
			eventID, ticketID, string(buyer), payment,
		)
		if err != nil {
			return wrapDBErr(op, err)
		}

		if tag.RowsAffected() == 0 {
			return diagnoseBuy(ctx, tx, op, eventID, ticketID, payment)
		}

		if _, err := tx.Exec(ctx,
			`UPDATE events SET tickets_sold = tickets_sold + 1 WHERE event_id = $1`,
			eventID,
		); err != nil {
			return wrapDBErr(op, err)
		}

		l.afterCommit(after, eventID)

		return nil
	})

	return err
}

// ScanTicket flips scanned to true, guarded by scanned=false. The guard makes
// the second of two concurrent scans fail instead of silently no-opping.
func (l *Ledger) ScanTicket(ctx context.Context, eventID, ticketID uint64) error {
	const op = "ledgerpg.ScanTicket"

	err := l.uow.Do(ctx, func(ctx context.Context, tx DB, after func(uow.AfterCommit)) error {
		tag, err := tx.Exec(ctx,
			`UPDATE tickets
			 SET scanned = TRUE
			 WHERE event_id = $1 AND ticket_id = $2
			   AND sold = TRUE
			   AND scanned = FALSE`,
			eventID, ticketID,
		)
		if err != nil {
			return wrapDBErr(op, err)
		}

		if tag.RowsAffected() == 0 {
			return diagnoseScan(ctx, tx, op, eventID, ticketID)
		}

		l.afterCommit(after, eventID)

		return nil
	})

	return err
}

// LinkCredentialToken sets the record's token pointer, guarded by sold=true
// and no existing link on either side.
func (l *Ledger) LinkCredentialToken(ctx context.Context, eventID, ticketID, tokenID uint64) error {
	const op = "ledgerpg.LinkCredentialToken"

	err := l.uow.Do(ctx, func(ctx context.Context, tx DB, after func(uow.AfterCommit)) error {
		tag, err := tx.Exec(ctx,
			`UPDATE credential_tokens
			 SET event_id = $1, ticket_id = $2
			 WHERE token_id = $3 AND event_id IS NULL`,
			eventID, ticketID, tokenID,
		)
		if err != nil {
			return wrapDBErr(op, err)
		}
		if tag.RowsAffected() == 0 {
			return diagnoseTokenLink(ctx, tx, op, tokenID)
		}

		tag, err = tx.Exec(ctx,
			`UPDATE tickets
			 SET token_id = $3
			 WHERE event_id = $1 AND ticket_id = $2
			   AND sold = TRUE
			   AND token_id IS NULL`,
			eventID, ticketID, tokenID,
		)
		if err != nil {
			return wrapDBErr(op, err)
		}
		if tag.RowsAffected() == 0 {
			return diagnoseRecordLink(ctx, tx, op, eventID, ticketID)
		}

		l.afterCommit(after, eventID)

		return nil
	})

	return err
}

func diagnoseBuy(ctx context.Context, tx DB, op string, eventID, ticketID uint64, payment domain.Amount) error {
	var (
		sold  bool
		price domain.Amount
	)

	if err := tx.QueryRow(ctx,
		`SELECT sold, price FROM tickets WHERE event_id = $1 AND ticket_id = $2`,
		eventID, ticketID,
	).Scan(&sold, &price); err != nil {
		return wrapDBErr(op, err)
	}

	if sold {
		return fmt.Errorf("%s: %w", op, ledger.ErrAlreadySold)
	}

	if payment < price {
		return fmt.Errorf("%s: %w", op, ledger.ErrInsufficientPayment)
	}

	return fmt.Errorf("%s: %w", op, ledger.ErrConflict)
}

func diagnoseScan(ctx context.Context, tx DB, op string, eventID, ticketID uint64) error {
	var sold, scanned bool

	if err := tx.QueryRow(ctx,
		`SELECT sold, scanned FROM tickets WHERE event_id = $1 AND ticket_id = $2`,
		eventID, ticketID,
	).Scan(&sold, &scanned); err != nil {
		return wrapDBErr(op, err)
	}

	if scanned {
		return fmt.Errorf("%s: %w", op, ledger.ErrAlreadyScanned)
	}

	if !sold {
		return fmt.Errorf("%s: %w", op, ledger.ErrNotSold)
	}

	return fmt.Errorf("%s: %w", op, ledger.ErrConflict)
}

func diagnoseTokenLink(ctx context.Context, tx DB, op string, tokenID uint64) error {
	var linked *uint64

	if err := tx.QueryRow(ctx,
		`SELECT event_id FROM credential_tokens WHERE token_id = $1`,
		tokenID,
	).Scan(&linked); err != nil {
		return wrapDBErr(op, err)
	}

	return fmt.Errorf("%s: %w", op, ledger.ErrAlreadyLinked)
}

func diagnoseRecordLink(ctx context.Context, tx DB, op string, eventID, ticketID uint64) error {
	var (
		sold    bool
		tokenID *uint64
	)

	if err := tx.QueryRow(ctx,
		`SELECT sold, token_id FROM tickets WHERE event_id = $1 AND ticket_id = $2`,
		eventID, ticketID,
	).Scan(&sold, &tokenID); err != nil {
		return wrapDBErr(op, err)
	}

	if tokenID != nil {
		return fmt.Errorf("%s: %w", op, ledger.ErrAlreadyLinked)
	}

	if !sold {
		return fmt.Errorf("%s: %w", op, ledger.ErrNotSold)
	}

	return fmt.Errorf("%s: %w", op, ledger.ErrConflict)
}
