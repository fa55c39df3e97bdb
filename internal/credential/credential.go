// Package credential implements the signed, scannable bearer credential for a
// ticket. A credential is a detached recoverable signature over a canonical
// hash of (eventID, ticketID); the verifier needs only the payload and the
// ledger's current record, never a separately transmitted public key.
package credential

import (
	"encoding/binary"
	"encoding/hex"
	"strings"

	"github.com/decred/dcrd/dcrec/secp256k1/v4"
	"golang.org/x/crypto/sha3"

	"github.com/ticketblock/ticketblock/internal/domain"
)

// Digest computes the canonical keccak-256 hash of a ticket identity. Both
// ids are encoded as fixed-width big-endian integers and concatenated without
// a delimiter, so (1,23) and (12,3) can never collide.
func Digest(eventID, ticketID uint64) []byte {
	var buf [16]byte
	binary.BigEndian.PutUint64(buf[0:8], eventID)
	binary.BigEndian.PutUint64(buf[8:16], ticketID)

	h := sha3.NewLegacyKeccak256()
	h.Write(buf[:])
	return h.Sum(nil)
}

// AddressFromPubKey derives the holder address: the last 20 bytes of the
// keccak-256 hash of the uncompressed public key body, 0x-prefixed hex.
func AddressFromPubKey(pub *secp256k1.PublicKey) domain.Address {
	raw := pub.SerializeUncompressed()

	h := sha3.NewLegacyKeccak256()
	h.Write(raw[1:]) // drop the 0x04 format byte
	sum := h.Sum(nil)

	return domain.Address("0x" + hex.EncodeToString(sum[len(sum)-20:]))
}

// AddressFromKey returns the address controlled by a private key.
func AddressFromKey(key *secp256k1.PrivateKey) domain.Address {
	return AddressFromPubKey(key.PubKey())
}

func decodeSignature(s string) ([]byte, error) {
	s = strings.TrimPrefix(s, "0x")

	sig, err := hex.DecodeString(s)
	if err != nil {
		return nil, domain.NewValidationError("malformed signature: %v", err)
	}

	return sig, nil
}
