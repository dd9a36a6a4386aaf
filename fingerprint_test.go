package stun

import (
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func TestFingerprintAddCheck(t *testing.T) {
	m := New()
	m.TransactionID = NewTransactionID()
	m.WriteHeader()
	m.Add(AttrUsername, []byte("carol"))
	m.WriteHeader()

	AddFingerprint(m)
	m.WriteHeader()

	require.NoError(t, CheckFingerprint(m))
}

func TestFingerprintCheckDetectsTamper(t *testing.T) {
	m := New()
	m.TransactionID = NewTransactionID()
	m.WriteHeader()
	AddFingerprint(m)
	m.WriteHeader()

	m.Raw[8] ^= 0xFF // corrupt a transaction ID byte after the fingerprint was computed

	err := CheckFingerprint(m)
	var mismatch *CRCMismatch
	assert.ErrorAs(t, err, &mismatch)
}

func TestFingerprintMissing(t *testing.T) {
	m := New()
	m.WriteHeader()
	assert.ErrorIs(t, CheckFingerprint(m), ErrAttributeNotFound)
}
