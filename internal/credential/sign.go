package credential

import (
	"encoding/hex"
	"errors"

	"github.com/decred/dcrd/dcrec/secp256k1/v4"
	"github.com/decred/dcrd/dcrec/secp256k1/v4/ecdsa"
)

// ErrNoSigningKey is returned when signing is requested without an available
// key. It is propagated, never retried silently.
var ErrNoSigningKey = errors.New("signing key unavailable")

// Sign produces a credential payload for a ticket identity. The signature is
// a 65-byte compact recoverable secp256k1 signature over Digest(eventID,
// ticketID), packaged with the plaintext ids so a verifier can recompute the
// hash itself instead of trusting an unsigned copy.
func Sign(eventID, ticketID uint64, key *secp256k1.PrivateKey) (Payload, error) {
	if key == nil {
		return Payload{}, ErrNoSigningKey
	}

	sig := ecdsa.SignCompact(key, Digest(eventID, ticketID), false)

	return Payload{
		EventID:   eventID,
		TicketID:  ticketID,
		Signature: "0x" + hex.EncodeToString(sig),
	}, nil
}
