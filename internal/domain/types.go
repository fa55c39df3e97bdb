package domain

import "time"

// Address is a lowercase 0x-prefixed hex account identifier derived from a
// secp256k1 public key.
type Address string

const ZeroAddress Address = ""

// Amount is a ticket price in the ledger's smallest currency unit.
type Amount int64

type Event struct {
	ID          uint64
	Title       string
	Description string
	Category    string
	Venue       string
	Starts      time.Time
	Active      bool
	TicketsSold int64
}

// Zone is a named price tier within an event, defined once at event creation.
type Zone struct {
	Name        string
	Price       Amount
	Quantity    int
	SeatsPerRow int
}

// SeatDescriptor is a projection produced by the allocator. It is never
// persisted on its own; it sizes and labels ticket inventory. Row labels are
// 1-based per zone and not unique across zones.
type SeatDescriptor struct {
	Zone   string
	Row    int
	Column int
}

// Ticket is the authoritative inventory record for one seat.
// Lifecycle: unsold at event setup -> Sold+Owner set by purchase ->
// TokenID set by the link step -> Scanned set once by gate scan.
type Ticket struct {
	EventID  uint64
	TicketID uint64
	Zone     string
	Row      int
	Column   int
	Price    Amount
	Owner    Address
	Sold     bool
	Scanned  bool
	TokenID  *uint64
}

type SeatStatus string

const (
	SeatAvailable SeatStatus = "available"
	SeatSold      SeatStatus = "sold"
	SeatScanned   SeatStatus = "scanned"
)

type SeatWithStatus struct {
	SeatDescriptor
	TicketID uint64
	Status   SeatStatus
}

// EventCounts summarizes an event's sales inventory. Remaining counts
// unsold seats still available for purchase.
type EventCounts struct {
	Total     int64
	Sold      int64
	Scanned   int64
	Remaining int64
}
