package httpgin

import (
	"time"

	"github.com/ticketblock/ticketblock/internal/domain"
)

type PurchaseRequest struct {
	Buyer string `json:"buyer" binding:"required"`
	// Payment of zero is valid for free zones; the service rejects any
	// amount below the ticket price.
	Payment int64 `json:"payment" binding:"gte=0"`
}

type PurchaseResponse struct {
	EventID     uint64 `json:"event_id"`
	TicketID    uint64 `json:"ticket_id"`
	TokenID     uint64 `json:"token_id"`
	Owner       string `json:"owner"`
	Price       int64  `json:"price"`
	MetadataRef string `json:"metadata_ref"`
	State       string `json:"state"`
}

type RepairLinkRequest struct {
	Owner   string `json:"owner" binding:"required"`
	TokenID uint64 `json:"token_id" binding:"required"`
}

type ScanResponse struct {
	EventID  uint64 `json:"event_id"`
	TicketID uint64 `json:"ticket_id"`
	Zone     string `json:"zone"`
	Row      int    `json:"row"`
	Column   int    `json:"column"`
	Owner    string `json:"owner"`
}

type TransferRequest struct {
	EventID  uint64 `json:"event_id" binding:"required"`
	TicketID uint64 `json:"ticket_id"`
	TokenID  uint64 `json:"token_id" binding:"required"`
	From     string `json:"from" binding:"required"`
	To       string `json:"to" binding:"required"`
}

type ZoneInput struct {
	Name        string `json:"name" binding:"required"`
	Price       int64  `json:"price"`
	Quantity    int    `json:"quantity" binding:"required,gt=0"`
	SeatsPerRow int    `json:"seats_per_row" binding:"required,gt=0"`
}

type CreateEventRequest struct {
	EventID     uint64      `json:"event_id" binding:"required"`
	Title       string      `json:"title" binding:"required"`
	Description string      `json:"description"`
	Category    string      `json:"category"`
	Venue       string      `json:"venue"`
	Capacity    int         `json:"capacity" binding:"gte=0"`
	StartsAt    string      `json:"starts_at" binding:"required"`
	Zones       []ZoneInput `json:"zones"`
}

type CreateEventResponse struct {
	EventID uint64 `json:"event_id"`
	Tickets int    `json:"tickets"`
}

type ErrorResponse struct {
	Error string `json:"error"`
	Step  string `json:"step,omitempty"`
	State string `json:"state,omitempty"`
}

func parseRFC3339(s string) (time.Time, error) {
	return time.Parse(time.RFC3339, s)
}

func (z ZoneInput) toDomain() domain.Zone {
	return domain.Zone{
		Name:        z.Name,
		Price:       domain.Amount(z.Price),
		Quantity:    z.Quantity,
		SeatsPerRow: z.SeatsPerRow,
	}
}
