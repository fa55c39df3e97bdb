package postgres

import (
	"context"

	"github.com/jackc/pgx/v5"

	"github.com/ticketblock/ticketblock/internal/domain"
	"github.com/ticketblock/ticketblock/internal/uow"
)

// CreateEventInventory stores the event, its zone definitions, and one unsold
// ticket record per allocated seat, all in one transaction.
func (l *Ledger) CreateEventInventory(
	ctx context.Context,
	ev domain.Event,
	zones []domain.Zone,
	seats []domain.SeatDescriptor,
) error {
	const op = "ledgerpg.CreateEventInventory"

	prices := make(map[string]domain.Amount, len(zones))
	for _, z := range zones {
		prices[z.Name] = z.Price
	}

	err := l.uow.Do(ctx, func(ctx context.Context, tx DB, after func(uow.AfterCommit)) error {
		if _, err := tx.Exec(ctx,
			`INSERT INTO events(event_id, title, description, category, venue, starts_at, active)
			 VALUES ($1, $2, $3, $4, $5, $6, $7)`,
			ev.ID, ev.Title, ev.Description, ev.Category, ev.Venue, ev.Starts, ev.Active,
		); err != nil {
			return wrapDBErr(op, err)
		}

		batch := &pgx.Batch{}
		for _, z := range zones {
			batch.Queue(
				`INSERT INTO event_zones(event_id, name, price, quantity, seats_per_row)
				 VALUES ($1, $2, $3, $4, $5)`,
				ev.ID, z.Name, z.Price, z.Quantity, z.SeatsPerRow,
			)
		}
		for i, s := range seats {
			batch.Queue(
				`INSERT INTO tickets(event_id, ticket_id, zone, row_no, col_no, price)
				 VALUES ($1, $2, $3, $4, $5, $6)`,
				ev.ID, uint64(i), s.Zone, s.Row, s.Column, prices[s.Zone],
			)
		}
		if err := tx.SendBatch(ctx, batch).Close(); err != nil {
			return wrapDBErr(op, err)
		}

		l.afterCommit(after, ev.ID)

		return nil
	})

	return err
}

func (l *Ledger) GetEvent(ctx context.Context, eventID uint64) (*domain.Event, error) {
	const op = "ledgerpg.GetEvent"

	var ev domain.Event
	if err := l.store.pool.QueryRow(ctx,
		`SELECT event_id, title, description, category, venue, starts_at, active, tickets_sold
		 FROM events
		 WHERE event_id = $1`,
		eventID,
	).Scan(
		&ev.ID, &ev.Title, &ev.Description, &ev.Category,
		&ev.Venue, &ev.Starts, &ev.Active, &ev.TicketsSold,
	); err != nil {
		return nil, wrapDBErr(op, err)
	}

	return &ev, nil
}

func (l *Ledger) GetTicket(ctx context.Context, eventID, ticketID uint64) (*domain.Ticket, error) {
	const op = "ledgerpg.GetTicket"

	t, err := scanTicket(l.store.pool.QueryRow(ctx,
		ticketColumns+` WHERE event_id = $1 AND ticket_id = $2`,
		eventID, ticketID,
	))
	if err != nil {
		return nil, wrapDBErr(op, err)
	}

	return t, nil
}

func (l *Ledger) GetTicketsByEvent(ctx context.Context, eventID uint64) ([]domain.Ticket, error) {
	const op = "ledgerpg.GetTicketsByEvent"

	rows, err := l.store.pool.Query(ctx,
		ticketColumns+` WHERE event_id = $1 ORDER BY ticket_id`,
		eventID,
	)
	if err != nil {
		return nil, wrapDBErr(op, err)
	}
	defer rows.Close()

	var out []domain.Ticket
	for rows.Next() {
		t, err := scanTicket(rows)
		if err != nil {
			return nil, wrapDBErr(op, err)
		}
		out = append(out, *t)
	}
	if err := rows.Err(); err != nil {
		return nil, wrapDBErr(op, err)
	}

	return out, nil
}

const ticketColumns = `SELECT event_id, ticket_id, zone, row_no, col_no, price,
	owner_address, sold, scanned, token_id
 FROM tickets`

func scanTicket(row pgx.Row) (*domain.Ticket, error) {
	var (
		t     domain.Ticket
		owner *string
	)

	if err := row.Scan(
		&t.EventID, &t.TicketID, &t.Zone, &t.Row, &t.Column,
		&t.Price, &owner, &t.Sold, &t.Scanned, &t.TokenID,
	); err != nil {
		return nil, err
	}

	if owner != nil {
		t.Owner = domain.Address(*owner)
	}

	return &t, nil
}
