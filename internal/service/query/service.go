package query

import (
	"context"
	"errors"
	"fmt"
	"time"

	"github.com/ticketblock/ticketblock/internal/domain"
	"github.com/ticketblock/ticketblock/internal/ledger"
	redisrepo "github.com/ticketblock/ticketblock/internal/repository/redis"
	"github.com/ticketblock/ticketblock/internal/seating"
)

type Config struct {
	EventSummaryTTL time.Duration
	AvailabilityTTL time.Duration
	EventSeatMapTTL time.Duration
}

type Service struct {
	ledger ledger.Ledger
	cache  *redisrepo.Cache
	cfg    Config
}

func New(l ledger.Ledger, cache *redisrepo.Cache, cfg Config) *Service {
	if cfg.EventSummaryTTL <= 0 {
		cfg.EventSummaryTTL = 60 * time.Second
	}

	if cfg.AvailabilityTTL <= 0 {
		cfg.AvailabilityTTL = 15 * time.Second
	}

	if cfg.EventSeatMapTTL <= 0 {
		cfg.EventSeatMapTTL = 60 * time.Second
	}

	return &Service{
		ledger: l,
		cache:  cache,
		cfg:    cfg,
	}
}

// GetEvent retrieves an event summary by its ID, utilizing a caching layer to
// absorb the read traffic from event pages.
//
// Returns query.ErrEventNotFound if the event does not exist.
func (s *Service) GetEvent(ctx context.Context, id uint64) (*domain.Event, error) {
	const op = "service.query.GetEvent"

	key := redisrepo.KeyEventSummary(id)

	event, err := redisrepo.GetOrSetJSON(
		ctx,
		s.cache,
		key,
		s.cfg.EventSummaryTTL,
		func(ctx context.Context) (domain.Event, error) {
			e, err := s.ledger.GetEvent(ctx, id)
			if err != nil {
				if errors.Is(err, ledger.ErrNotFound) {
					return domain.Event{}, ErrEventNotFound
				}

				return domain.Event{}, err
			}

			return *e, nil
		},
	)
	if err != nil {
		return nil, fmt.Errorf("%s: %w", op, err)
	}

	return &event, nil
}

// GetTicket retrieves a single ticket record straight from the ledger.
// Ticket records change on purchase, scan and transfer, so they are never
// served from cache.
func (s *Service) GetTicket(ctx context.Context, eventID, ticketID uint64) (*domain.Ticket, error) {
	const op = "service.query.GetTicket"

	t, err := s.ledger.GetTicket(ctx, eventID, ticketID)
	if err != nil {
		if errors.Is(err, ledger.ErrNotFound) {
			return nil, fmt.Errorf("%s: %w", op, ErrTicketNotFound)
		}

		return nil, fmt.Errorf("%s: %w", op, err)
	}

	return t, nil
}

// ListEventTickets retrieves every ticket record of an event in seat order.
func (s *Service) ListEventTickets(ctx context.Context, eventID uint64) ([]domain.Ticket, error) {
	const op = "service.query.ListEventTickets"

	tickets, err := s.ledger.GetTicketsByEvent(ctx, eventID)
	if err != nil {
		if errors.Is(err, ledger.ErrNotFound) {
			return nil, fmt.Errorf("%s: %w", op, ErrEventNotFound)
		}

		return nil, fmt.Errorf("%s: %w", op, err)
	}

	return tickets, nil
}

// CountsByStatus retrieves the availability counters for an event. The result
// is cached briefly; purchases invalidate the key through the after-commit
// hook, so the TTL only bounds staleness when invalidation is missed.
func (s *Service) CountsByStatus(ctx context.Context, eventID uint64) (*domain.EventCounts, error) {
	const op = "service.query.CountsByStatus"

	key := redisrepo.KeyEventAvailability(eventID)

	eventCounts, err := redisrepo.GetOrSetJSON(
		ctx,
		s.cache,
		key,
		s.cfg.AvailabilityTTL,
		func(ctx context.Context) (domain.EventCounts, error) {
			tickets, err := s.ledger.GetTicketsByEvent(ctx, eventID)
			if err != nil {
				if errors.Is(err, ledger.ErrNotFound) {
					return domain.EventCounts{}, ErrEventNotFound
				}

				return domain.EventCounts{}, err
			}

			ec := domain.EventCounts{Total: int64(len(tickets))}
			for _, t := range tickets {
				if t.Sold {
					ec.Sold++
				}
				if t.Scanned {
					ec.Scanned++
				}
			}
			ec.Remaining = ec.Total - ec.Sold

			return ec, nil
		},
	)
	if err != nil {
		return nil, fmt.Errorf("%s: %w", op, err)
	}

	return &eventCounts, nil
}

// SeatMap retrieves the per-seat status projection for an event, cached under
// its own key so the seat picker does not hammer the ledger.
func (s *Service) SeatMap(ctx context.Context, eventID uint64) ([]domain.SeatWithStatus, error) {
	const op = "service.query.SeatMap"

	key := redisrepo.KeyEventSeatMap(eventID)

	seats, err := redisrepo.GetOrSetJSON(
		ctx,
		s.cache,
		key,
		s.cfg.EventSeatMapTTL,
		func(ctx context.Context) ([]domain.SeatWithStatus, error) {
			tickets, err := s.ledger.GetTicketsByEvent(ctx, eventID)
			if err != nil {
				if errors.Is(err, ledger.ErrNotFound) {
					return nil, ErrEventNotFound
				}

				return nil, err
			}

			return seating.SeatMap(tickets), nil
		},
	)
	if err != nil {
		return nil, fmt.Errorf("%s: %w", op, err)
	}

	return seats, nil
}
