// Package postgres implements the ledger contracts on a postgres database.
// Every guarded transition is a conditional UPDATE under a serializable
// transaction, so the database itself is the serialization point the
// orchestrators rely on.
package postgres

import (
	"context"
	"fmt"

	"github.com/jackc/pgx/v5"
	"github.com/jackc/pgx/v5/pgxpool"

	"github.com/ticketblock/ticketblock/internal/ledger"
	"github.com/ticketblock/ticketblock/internal/uow"
)

// DB is the shared statement surface for the pool and open transactions.
type DB = uow.DB

// Store owns the connection pool and transaction management.
type Store struct {
	pool *pgxpool.Pool
}

func NewStore(pool *pgxpool.Pool) *Store {
	return &Store{pool: pool}
}

func (s *Store) RunTx(
	ctx context.Context,
	opts *pgx.TxOptions,
	fn func(ctx context.Context, tx DB) error,
) error {
	txOpts := pgx.TxOptions{
		IsoLevel:   pgx.Serializable,
		AccessMode: pgx.ReadWrite,
	}

	if opts != nil {
		txOpts = *opts
	}

	tx, err := s.pool.BeginTx(ctx, txOpts)
	if err != nil {
		return err
	}

	defer tx.Rollback(ctx)

	if err := fn(ctx, tx); err != nil {
		return err
	}

	if err := tx.Commit(ctx); err != nil {
		return fmt.Errorf("commit: %w", err)
	}

	return nil
}

// Option configures a Ledger.
type Option func(*Ledger)

// WithAfterCommit registers a hook fired after every committed mutation that
// changed an event's inventory, with the event id it touched. Used for cache
// invalidation and change notifications; a rolled-back transaction never
// fires it.
func WithAfterCommit(fn func(ctx context.Context, eventID uint64)) Option {
	return func(l *Ledger) {
		l.notify = fn
	}
}

// Ledger is the postgres-backed implementation of ledger.Ledger.
type Ledger struct {
	store  *Store
	uow    *uow.UoW
	notify func(ctx context.Context, eventID uint64)
}

func New(pool *pgxpool.Pool, opts ...Option) *Ledger {
	store := NewStore(pool)

	l := &Ledger{
		store: store,
		uow:   uow.New(store),
	}

	for _, opt := range opts {
		opt(l)
	}

	return l
}

func (l *Ledger) afterCommit(after func(uow.AfterCommit), eventID uint64) {
	if l.notify == nil {
		return
	}

	after(func(ctx context.Context) {
		l.notify(ctx, eventID)
	})
}

var _ ledger.Ledger = (*Ledger)(nil)
