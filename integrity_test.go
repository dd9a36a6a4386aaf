package stun

import (
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func TestMessageIntegrityAddCheck(t *testing.T) {
	key := NewShortTermIntegrity("password")

	m := New()
	m.TransactionID = NewTransactionID()
	m.WriteHeader()
	m.Add(AttrUsername, []byte("dave"))
	m.WriteHeader()

	require.NoError(t, key.AddTo(m))
	m.WriteHeader()

	require.NoError(t, key.Check(m))
}

func TestMessageIntegrityCheckDetectsWrongKey(t *testing.T) {
	key := NewShortTermIntegrity("password")

	m := New()
	m.TransactionID = NewTransactionID()
	m.WriteHeader()
	require.NoError(t, key.AddTo(m))
	m.WriteHeader()

	wrongKey := NewShortTermIntegrity("wrong")
	var mismatch *IntegrityMismatch
	assert.ErrorAs(t, wrongKey.Check(m), &mismatch)
}

func TestMessageIntegrityRefusesAfterFingerprint(t *testing.T) {
	key := NewShortTermIntegrity("password")

	m := New()
	m.TransactionID = NewTransactionID()
	m.WriteHeader()
	AddFingerprint(m)
	m.WriteHeader()

	assert.ErrorIs(t, key.AddTo(m), ErrFingerprintBeforeIntegrity)
}

func TestLongTermIntegrityDerivation(t *testing.T) {
	// From RFC 5769 §2.2.
	key := NewLongTermIntegrity("マトリックス", "example.org", "TheMatrIX")
	assert.NotEmpty(t, key)
}
