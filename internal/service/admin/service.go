package admin

import (
	"context"
	"errors"
	"fmt"
	"time"

	"github.com/ticketblock/ticketblock/internal/domain"
	"github.com/ticketblock/ticketblock/internal/ledger"
	"github.com/ticketblock/ticketblock/internal/seating"
)

// DefaultZones is the stock three-tier layout applied when an event is created
// without an explicit zone plan.
var DefaultZones = []domain.Zone{
	{Name: "VIP", Price: 3, Quantity: 10, SeatsPerRow: 5},
	{Name: "General A", Price: 2, Quantity: 20, SeatsPerRow: 10},
	{Name: "General B", Price: 1, Quantity: 30, SeatsPerRow: 10},
}

type Service struct {
	ledger ledger.Ledger
	now    func() time.Time
}

func New(l ledger.Ledger) *Service {
	return &Service{
		ledger: l,
		now:    time.Now,
	}
}

// CreateEventInput carries everything needed to open sales for a new event.
// EventID is caller-assigned so that the identifier printed on promotional
// material is known before the inventory exists.
type CreateEventInput struct {
	EventID     uint64
	Title       string
	Description string
	Category    string
	Venue       string
	Capacity    int // seats the venue can hold; 0 means unconstrained
	Starts      time.Time
	Zones       []domain.Zone
}

// CreateEvent validates the input, lays out the per-zone seat grid and writes
// the whole inventory in one transaction. An empty zone plan falls back to
// DefaultZones.
//
// Returns admin.ErrEventConflict when the event ID is already taken.
func (s *Service) CreateEvent(ctx context.Context, in CreateEventInput) (*domain.Event, error) {
	const op = "service.admin.CreateEvent"

	if in.EventID == 0 {
		return nil, fmt.Errorf("%s: %w", op, domain.NewValidationError("event id must be positive"))
	}
	if in.Title == "" {
		return nil, fmt.Errorf("%s: %w", op, domain.NewValidationError("title is required"))
	}
	if in.Starts.Before(s.now()) {
		return nil, fmt.Errorf("%s: %w", op, domain.NewValidationError("event start must be in the future"))
	}
	if in.Capacity < 0 {
		return nil, fmt.Errorf("%s: %w", op, domain.NewValidationError("venue capacity must not be negative"))
	}

	zones := in.Zones
	if len(zones) == 0 {
		zones = DefaultZones
	}

	quantities := make(map[string]int, len(zones))
	widths := make(map[string]int, len(zones))
	for _, z := range zones {
		if z.Name == "" {
			return nil, fmt.Errorf("%s: %w", op, domain.NewValidationError("zone name is required"))
		}
		if _, dup := quantities[z.Name]; dup {
			return nil, fmt.Errorf("%s: %w", op, domain.NewValidationError("duplicate zone %q", z.Name))
		}
		if z.Quantity <= 0 {
			return nil, fmt.Errorf("%s: %w", op, domain.NewValidationError("zone %q has no seats", z.Name))
		}
		if z.SeatsPerRow <= 0 {
			return nil, fmt.Errorf("%s: %w", op, domain.NewValidationError("zone %q has no row width", z.Name))
		}
		if z.Price < 0 {
			return nil, fmt.Errorf("%s: %w", op, domain.NewValidationError("zone %q has a negative price", z.Name))
		}
		quantities[z.Name] = z.Quantity
		widths[z.Name] = z.SeatsPerRow
	}

	if in.Capacity > 0 {
		total := 0
		for _, q := range quantities {
			total += q
		}
		if total > in.Capacity {
			return nil, fmt.Errorf("%s: %w", op, domain.NewValidationError("zone seats %d exceed venue capacity %d", total, in.Capacity))
		}
	}

	seats := seating.Allocate(quantities, widths)

	ev := domain.Event{
		ID:          in.EventID,
		Title:       in.Title,
		Description: in.Description,
		Category:    in.Category,
		Venue:       in.Venue,
		Starts:      in.Starts,
		Active:      true,
	}

	if err := s.ledger.CreateEventInventory(ctx, ev, zones, seats); err != nil {
		if errors.Is(err, ledger.ErrConflict) {
			return nil, fmt.Errorf("%s: %w", op, ErrEventConflict)
		}
		if errors.Is(err, ledger.ErrUnavailable) {
			return nil, fmt.Errorf("%s: %w", op, &domain.UnavailableError{Err: err})
		}
		return nil, fmt.Errorf("%s: %w", op, err)
	}

	return &ev, nil
}
