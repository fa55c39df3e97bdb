package credential

import (
	"errors"

	"github.com/decred/dcrd/dcrec/secp256k1/v4/ecdsa"

	"github.com/ticketblock/ticketblock/internal/domain"
)

// Verification rejections. Each names the specific precondition that failed
// so a gate operator can tell a replay from a legitimate race loss.
var (
	ErrNotSold        = errors.New("ticket not sold")
	ErrAlreadyScanned = errors.New("ticket already scanned")
	ErrOwnerMismatch  = errors.New("signature does not match current owner")
)

// Verify checks a payload against the ledger's current record for the same
// ticket. It is pure: no ledger mutation, short-circuiting on the first
// failed check.
//
// The recovered signer is compared against the record's current owner, so a
// payload signed by a prior owner stops verifying after a transfer; only the
// new owner can regenerate a valid credential.
func Verify(p Payload, rec domain.Ticket) error {
	digest := Digest(p.EventID, p.TicketID)

	sig, err := decodeSignature(p.Signature)
	if err != nil {
		return err
	}

	pub, _, err := ecdsa.RecoverCompact(sig, digest)
	if err != nil {
		return domain.NewValidationError("signature recovery failed: %v", err)
	}

	if !rec.Sold {
		return ErrNotSold
	}

	if rec.Scanned {
		return ErrAlreadyScanned
	}

	if AddressFromPubKey(pub) != rec.Owner {
		return ErrOwnerMismatch
	}

	return nil
}
