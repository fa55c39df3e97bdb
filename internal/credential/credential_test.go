package credential_test

import (
	"errors"
	"testing"

	"github.com/decred/dcrd/dcrec/secp256k1/v4"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
	"github.com/ticketblock/ticketblock/internal/credential"
	"github.com/ticketblock/ticketblock/internal/domain"
)

func newKey(t *testing.T) *secp256k1.PrivateKey {
	t.Helper()
	key, err := secp256k1.GeneratePrivateKey()
	require.NoError(t, err)
	return key
}

func soldRecord(eventID, ticketID uint64, owner domain.Address) domain.Ticket {
	return domain.Ticket{
		EventID:  eventID,
		TicketID: ticketID,
		Owner:    owner,
		Sold:     true,
	}
}

func TestSignVerify_RoundTrip(t *testing.T) {
	key := newKey(t)
	owner := credential.AddressFromKey(key)

	p, err := credential.Sign(42, 7, key)
	require.NoError(t, err)

	assert.NoError(t, credential.Verify(p, soldRecord(42, 7, owner)))
}

func TestSign_NilKey(t *testing.T) {
	_, err := credential.Sign(1, 1, nil)
	assert.ErrorIs(t, err, credential.ErrNoSigningKey)
}

func TestVerify_TamperedIDs(t *testing.T) {
	key := newKey(t)
	owner := credential.AddressFromKey(key)

	p, err := credential.Sign(42, 7, key)
	require.NoError(t, err)

	tampered := p
	tampered.TicketID = 8
	assert.ErrorIs(t,
		credential.Verify(tampered, soldRecord(42, 8, owner)),
		credential.ErrOwnerMismatch,
	)

	tampered = p
	tampered.EventID = 43
	assert.ErrorIs(t,
		credential.Verify(tampered, soldRecord(43, 7, owner)),
		credential.ErrOwnerMismatch,
	)
}

func TestVerify_RejectsUnsold(t *testing.T) {
	key := newKey(t)
	owner := credential.AddressFromKey(key)

	p, err := credential.Sign(1, 2, key)
	require.NoError(t, err)

	rec := soldRecord(1, 2, owner)
	rec.Sold = false
	assert.ErrorIs(t, credential.Verify(p, rec), credential.ErrNotSold)
}

func TestVerify_RejectsScanned(t *testing.T) {
	key := newKey(t)
	owner := credential.AddressFromKey(key)

	p, err := credential.Sign(1, 2, key)
	require.NoError(t, err)

	rec := soldRecord(1, 2, owner)
	rec.Scanned = true
	assert.ErrorIs(t, credential.Verify(p, rec), credential.ErrAlreadyScanned)
}

func TestVerify_StalePayloadAfterTransfer(t *testing.T) {
	previous := newKey(t)
	current := newKey(t)

	// payload signed by the previous owner must fail against the record's
	// current owner
	p, err := credential.Sign(5, 9, previous)
	require.NoError(t, err)

	rec := soldRecord(5, 9, credential.AddressFromKey(current))
	assert.ErrorIs(t, credential.Verify(p, rec), credential.ErrOwnerMismatch)

	// the new owner's regenerated payload verifies
	p2, err := credential.Sign(5, 9, current)
	require.NoError(t, err)
	assert.NoError(t, credential.Verify(p2, rec))
}

func TestVerify_MalformedSignature(t *testing.T) {
	key := newKey(t)
	owner := credential.AddressFromKey(key)

	var vErr *domain.ValidationError

	p := credential.Payload{EventID: 1, TicketID: 2, Signature: "zzzz"}
	assert.True(t, errors.As(credential.Verify(p, soldRecord(1, 2, owner)), &vErr))

	p.Signature = "0xdead"
	assert.True(t, errors.As(credential.Verify(p, soldRecord(1, 2, owner)), &vErr))
}

func TestDigest_OrderSensitive(t *testing.T) {
	// fixed-width encoding: (1,23) and (12,3) must not collide
	assert.NotEqual(t, credential.Digest(1, 23), credential.Digest(12, 3))
	assert.NotEqual(t, credential.Digest(1, 2), credential.Digest(2, 1))
	assert.Equal(t, credential.Digest(7, 7), credential.Digest(7, 7))
}

func TestParsePayload(t *testing.T) {
	key := newKey(t)
	p, err := credential.Sign(3, 4, key)
	require.NoError(t, err)

	wire, err := p.Encode()
	require.NoError(t, err)

	got, err := credential.ParsePayload(wire)
	require.NoError(t, err)
	assert.Equal(t, p, got)
}

func TestParsePayload_Rejections(t *testing.T) {
	cases := map[string]string{
		"not json":        `{{`,
		"missing field":   `{"event_id":1,"ticket_id":2}`,
		"extra field":     `{"event_id":1,"ticket_id":2,"signature":"0x00","x":1}`,
		"negative id":     `{"event_id":-1,"ticket_id":2,"signature":"0x00"}`,
		"non-numeric id":  `{"event_id":"one","ticket_id":2,"signature":"0x00"}`,
		"fractional id":   `{"event_id":1.5,"ticket_id":2,"signature":"0x00"}`,
		"empty signature": `{"event_id":1,"ticket_id":2,"signature":""}`,
		"wrong sig type":  `{"event_id":1,"ticket_id":2,"signature":17}`,
	}

	for name, raw := range cases {
		t.Run(name, func(t *testing.T) {
			_, err := credential.ParsePayload([]byte(raw))
			var vErr *domain.ValidationError
			assert.True(t, errors.As(err, &vErr), "want ValidationError, got %v", err)
		})
	}
}
