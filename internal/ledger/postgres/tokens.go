package postgres

import (
	"context"
	"errors"
	"fmt"

	"github.com/ticketblock/ticketblock/internal/domain"
	"github.com/ticketblock/ticketblock/internal/ledger"
	"github.com/ticketblock/ticketblock/internal/uow"
)

func (l *Ledger) MintCredentialToken(
	ctx context.Context,
	owner domain.Address,
	metadataRef string,
) (uint64, error) {
	const op = "ledgerpg.MintCredentialToken"

	var tokenID uint64
	if err := l.store.pool.QueryRow(ctx,
		`INSERT INTO credential_tokens(holder, metadata_ref)
		 VALUES ($1, $2)
		 RETURNING token_id`,
		string(owner), metadataRef,
	).Scan(&tokenID); err != nil {
		return 0, wrapDBErr(op, err)
	}

	return tokenID, nil
}

func (l *Ledger) AuthorizeTransfer(
	ctx context.Context,
	tokenID uint64,
	holder, to domain.Address,
) error {
	const op = "ledgerpg.AuthorizeTransfer"

	tag, err := l.store.pool.Exec(ctx,
		`UPDATE credential_tokens
		 SET approved_for = $3
		 WHERE token_id = $1 AND holder = $2`,
		tokenID, string(holder), string(to),
	)
	if err != nil {
		return wrapDBErr(op, err)
	}

	if tag.RowsAffected() == 0 {
		var exists bool
		if err := l.store.pool.QueryRow(ctx,
			`SELECT EXISTS (SELECT 1 FROM credential_tokens WHERE token_id = $1)`,
			tokenID,
		).Scan(&exists); err != nil {
			return wrapDBErr(op, err)
		}

		if !exists {
			return fmt.Errorf("%s: %w", op, ledger.ErrNotFound)
		}

		return fmt.Errorf("%s: %w", op, ledger.ErrNotAuthorized)
	}

	return nil
}

// TransferTicket moves the token to its approved recipient and, when the
// token is linked, rewrites the inventory record's owner in the same
// transaction. Holder and record owner can never diverge past a commit.
func (l *Ledger) TransferTicket(ctx context.Context, tokenID uint64, to domain.Address) error {
	const op = "ledgerpg.TransferTicket"

	err := l.uow.Do(ctx, func(ctx context.Context, tx DB, after func(uow.AfterCommit)) error {
		var (
			eventID  *uint64
			ticketID *uint64
		)

		if err := tx.QueryRow(ctx,
			`UPDATE credential_tokens
			 SET holder = $2, approved_for = NULL
			 WHERE token_id = $1 AND approved_for = $2
			 RETURNING event_id, ticket_id`,
			tokenID, string(to),
		).Scan(&eventID, &ticketID); err != nil {
			return diagnoseTransfer(ctx, tx, op, tokenID, err)
		}

		if eventID != nil && ticketID != nil {
			if _, err := tx.Exec(ctx,
				`UPDATE tickets
				 SET owner_address = $3
				 WHERE event_id = $1 AND ticket_id = $2`,
				*eventID, *ticketID, string(to),
			); err != nil {
				return wrapDBErr(op, err)
			}

			l.afterCommit(after, *eventID)
		}

		return nil
	})

	return err
}

func (l *Ledger) TokenHolder(ctx context.Context, tokenID uint64) (domain.Address, error) {
	const op = "ledgerpg.TokenHolder"

	var holder string
	if err := l.store.pool.QueryRow(ctx,
		`SELECT holder FROM credential_tokens WHERE token_id = $1`,
		tokenID,
	).Scan(&holder); err != nil {
		return domain.ZeroAddress, wrapDBErr(op, err)
	}

	return domain.Address(holder), nil
}

func diagnoseTransfer(ctx context.Context, tx DB, op string, tokenID uint64, cause error) error {
	var exists bool
	if err := tx.QueryRow(ctx,
		`SELECT EXISTS (SELECT 1 FROM credential_tokens WHERE token_id = $1)`,
		tokenID,
	).Scan(&exists); err != nil {
		return wrapDBErr(op, err)
	}

	if !exists {
		return fmt.Errorf("%s: %w", op, ledger.ErrNotFound)
	}

	if wrapped := wrapDBErr(op, cause); !errors.Is(wrapped, ledger.ErrNotFound) {
		return wrapped
	}

	// token exists but the recipient was never approved
	return fmt.Errorf("%s: %w", op, ledger.ErrNotAuthorized)
}
