package purchase

import "errors"

var (
	ErrEventNotFound  = errors.New("event not found")
	ErrTicketNotFound = errors.New("ticket not found")
	ErrEventInactive  = errors.New("event is not active")
)

// Workflow steps, in execution order.
const (
	StepMint = "mint"
	StepBuy  = "buy"
	StepLink = "link"
)

// State names the furthest point a purchase workflow has committed. Partial
// failures are representable states, not just caught exceptions.
type State string

const (
	StateAvailable State = "available"
	StateMinted    State = "minted"
	StateSold      State = "sold"
	StateLinked    State = "linked"
)
