package credential

import (
	"encoding/json"

	"github.com/ticketblock/ticketblock/internal/domain"
)

// Payload is the portable wire form of a credential. The shape must stay
// bit-exact between issuer and gate reader: exactly these three fields, ids
// non-negative, signature hex-encoded.
type Payload struct {
	EventID   uint64 `json:"event_id"`
	TicketID  uint64 `json:"ticket_id"`
	Signature string `json:"signature"`
}

// Encode serializes the payload for transport (typically into a QR code).
func (p Payload) Encode() ([]byte, error) {
	return json.Marshal(p)
}

// ParsePayload decodes a wire payload, rejecting anything that is not the
// exact three-field shape. Malformed input is a validation failure, never a
// crash.
func ParsePayload(data []byte) (Payload, error) {
	var fields map[string]json.RawMessage
	if err := json.Unmarshal(data, &fields); err != nil {
		return Payload{}, domain.NewValidationError("malformed payload: %v", err)
	}

	if len(fields) != 3 {
		return Payload{}, domain.NewValidationError("payload must have exactly event_id, ticket_id and signature")
	}

	var p Payload

	for _, f := range []struct {
		name string
		dst  any
	}{
		{"event_id", &p.EventID},
		{"ticket_id", &p.TicketID},
		{"signature", &p.Signature},
	} {
		raw, ok := fields[f.name]
		if !ok {
			return Payload{}, domain.NewValidationError("payload missing %s", f.name)
		}
		if err := json.Unmarshal(raw, f.dst); err != nil {
			return Payload{}, domain.NewValidationError("malformed %s: %v", f.name, err)
		}
	}

	if p.Signature == "" {
		return Payload{}, domain.NewValidationError("payload signature is empty")
	}

	return p, nil
}
