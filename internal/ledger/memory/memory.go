// Package memory is an in-process ledger with the same guard semantics as the
// postgres implementation. It backs unit tests and local development.
package memory

import (
	"context"
	"fmt"
	"sync"

	"github.com/ticketblock/ticketblock/internal/domain"
	"github.com/ticketblock/ticketblock/internal/ledger"
)

type token struct {
	holder      domain.Address
	metadataRef string
	approved    domain.Address
	linked      bool
	eventID     uint64
	ticketID    uint64
}

type Ledger struct {
	mu          sync.Mutex
	events      map[uint64]domain.Event
	tickets     map[uint64]map[uint64]*domain.Ticket
	tokens      map[uint64]*token
	nextTokenID uint64
}

func New() *Ledger {
	return &Ledger{
		events:      make(map[uint64]domain.Event),
		tickets:     make(map[uint64]map[uint64]*domain.Ticket),
		tokens:      make(map[uint64]*token),
		nextTokenID: 1,
	}
}

func (l *Ledger) CreateEventInventory(
	_ context.Context,
	ev domain.Event,
	zones []domain.Zone,
	seats []domain.SeatDescriptor,
) error {
	l.mu.Lock()
	defer l.mu.Unlock()

	if _, ok := l.events[ev.ID]; ok {
		return fmt.Errorf("event %d: %w", ev.ID, ledger.ErrConflict)
	}

	prices := make(map[string]domain.Amount, len(zones))
	for _, z := range zones {
		prices[z.Name] = z.Price
	}

	records := make(map[uint64]*domain.Ticket, len(seats))
	for i, s := range seats {
		id := uint64(i)
		records[id] = &domain.Ticket{
			EventID:  ev.ID,
			TicketID: id,
			Zone:     s.Zone,
			Row:      s.Row,
			Column:   s.Column,
			Price:    prices[s.Zone],
		}
	}

	l.events[ev.ID] = ev
	l.tickets[ev.ID] = records

	return nil
}

func (l *Ledger) GetEvent(_ context.Context, eventID uint64) (*domain.Event, error) {
	l.mu.Lock()
	defer l.mu.Unlock()

	ev, ok := l.events[eventID]
	if !ok {
		return nil, ledger.ErrNotFound
	}

	cp := ev
	return &cp, nil
}

func (l *Ledger) GetTicket(_ context.Context, eventID, ticketID uint64) (*domain.Ticket, error) {
	l.mu.Lock()
	defer l.mu.Unlock()

	t, err := l.ticket(eventID, ticketID)
	if err != nil {
		return nil, err
	}

	cp := *t
	if t.TokenID != nil {
		tid := *t.TokenID
		cp.TokenID = &tid
	}
	return &cp, nil
}

func (l *Ledger) GetTicketsByEvent(_ context.Context, eventID uint64) ([]domain.Ticket, error) {
	l.mu.Lock()
	defer l.mu.Unlock()

	records, ok := l.tickets[eventID]
	if !ok {
		return nil, ledger.ErrNotFound
	}

	out := make([]domain.Ticket, 0, len(records))
	for i := uint64(0); i < uint64(len(records)); i++ {
		out = append(out, *records[i])
	}
	return out, nil
}

func (l *Ledger) BuyTicket(
	_ context.Context,
	eventID, ticketID uint64,
	buyer domain.Address,
	payment domain.Amount,
) error {
	l.mu.Lock()
	defer l.mu.Unlock()

	t, err := l.ticket(eventID, ticketID)
	if err != nil {
		return err
	}

	if t.Sold {
		return ledger.ErrAlreadySold
	}

	if payment < t.Price {
		return ledger.ErrInsufficientPayment
	}

	t.Sold = true
	t.Owner = buyer

	ev := l.events[eventID]
	ev.TicketsSold++
	l.events[eventID] = ev

	return nil
}

func (l *Ledger) MintCredentialToken(
	_ context.Context,
	owner domain.Address,
	metadataRef string,
) (uint64, error) {
	l.mu.Lock()
	defer l.mu.Unlock()

	id := l.nextTokenID
	l.nextTokenID++

	l.tokens[id] = &token{holder: owner, metadataRef: metadataRef}

	return id, nil
}

func (l *Ledger) LinkCredentialToken(_ context.Context, eventID, ticketID, tokenID uint64) error {
	l.mu.Lock()
	defer l.mu.Unlock()

	t, err := l.ticket(eventID, ticketID)
	if err != nil {
		return err
	}

	tok, ok := l.tokens[tokenID]
	if !ok {
		return ledger.ErrNotFound
	}

	if !t.Sold {
		return ledger.ErrNotSold
	}

	if t.TokenID != nil || tok.linked {
		return ledger.ErrAlreadyLinked
	}

	tid := tokenID
	t.TokenID = &tid
	tok.linked = true
	tok.eventID = eventID
	tok.ticketID = ticketID

	return nil
}

func (l *Ledger) ScanTicket(_ context.Context, eventID, ticketID uint64) error {
	l.mu.Lock()
	defer l.mu.Unlock()

	t, err := l.ticket(eventID, ticketID)
	if err != nil {
		return err
	}

	if !t.Sold {
		return ledger.ErrNotSold
	}

	if t.Scanned {
		return ledger.ErrAlreadyScanned
	}

	t.Scanned = true

	return nil
}

func (l *Ledger) AuthorizeTransfer(_ context.Context, tokenID uint64, holder, to domain.Address) error {
	l.mu.Lock()
	defer l.mu.Unlock()

	tok, ok := l.tokens[tokenID]
	if !ok {
		return ledger.ErrNotFound
	}

	if tok.holder != holder {
		return ledger.ErrNotAuthorized
	}

	tok.approved = to

	return nil
}

func (l *Ledger) TransferTicket(_ context.Context, tokenID uint64, to domain.Address) error {
	l.mu.Lock()
	defer l.mu.Unlock()

	tok, ok := l.tokens[tokenID]
	if !ok {
		return ledger.ErrNotFound
	}

	if tok.approved != to || to == domain.ZeroAddress {
		return ledger.ErrNotAuthorized
	}

	// token holder and linked record owner move in the same call
	tok.holder = to
	tok.approved = domain.ZeroAddress

	if tok.linked {
		t, err := l.ticket(tok.eventID, tok.ticketID)
		if err != nil {
			return err
		}
		t.Owner = to
	}

	return nil
}

func (l *Ledger) TokenHolder(_ context.Context, tokenID uint64) (domain.Address, error) {
	l.mu.Lock()
	defer l.mu.Unlock()

	tok, ok := l.tokens[tokenID]
	if !ok {
		return domain.ZeroAddress, ledger.ErrNotFound
	}

	return tok.holder, nil
}

func (l *Ledger) ticket(eventID, ticketID uint64) (*domain.Ticket, error) {
	records, ok := l.tickets[eventID]
	if !ok {
		return nil, ledger.ErrNotFound
	}

	t, ok := records[ticketID]
	if !ok {
		return nil, ledger.ErrNotFound
	}

	return t, nil
}

var _ ledger.Ledger = (*Ledger)(nil)
