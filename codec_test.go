package stun

import (
	"net"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/stunkit/stun/internal/testutil"
)

func buildTestMessage(t *testing.T) *Message {
	t.Helper()
	m := New()
	require.NoError(t, m.Build(ClassRequest, MethodBinding,
		NewSoftware("stunkit test"),
		NewUsername("alice"),
	))
	return m
}

// P1: round-trip with no trailers.
func TestRoundTripNoTrailers(t *testing.T) {
	m := buildTestMessage(t)
	raw := Encode(m)

	got, err := Decode(raw, nil)
	require.NoError(t, err)
	assert.True(t, m.Equal(got))
	assert.False(t, got.Fingerprint)
	assert.False(t, got.Integrity)
}

// P2: round-trip with fingerprint.
func TestRoundTripWithFingerprint(t *testing.T) {
	m := buildTestMessage(t)
	m.Fingerprint = true
	raw := Encode(m)

	assert.Equal(t, AttrFingerprint, AttrType(bin.Uint16(raw[len(raw)-8:len(raw)-6])))

	got, err := Decode(raw, nil)
	require.NoError(t, err)
	assert.True(t, got.Fingerprint)
}

// P3 (analog): round-trip with MESSAGE-INTEGRITY, key supplied on decode.
func TestRoundTripWithIntegrity(t *testing.T) {
	key := NewShortTermIntegrity("s3cr3t")
	m := buildTestMessage(t)
	m.Key = []byte(key)
	raw := Encode(m)

	got, err := Decode(raw, []byte(key))
	require.NoError(t, err)
	assert.True(t, got.Integrity)
}

func TestRoundTripWithIntegrityAndFingerprint(t *testing.T) {
	key := NewShortTermIntegrity("s3cr3t")
	m := buildTestMessage(t)
	m.Key = []byte(key)
	m.Fingerprint = true
	raw := Encode(m)

	got, err := Decode(raw, []byte(key))
	require.NoError(t, err)
	assert.True(t, got.Integrity)
	assert.True(t, got.Fingerprint)
}

func TestDecodeWrongIntegrityKeyLeavesIntegrityFalse(t *testing.T) {
	key := NewShortTermIntegrity("s3cr3t")
	m := buildTestMessage(t)
	m.Key = []byte(key)
	raw := Encode(m)

	got, err := Decode(raw, []byte("wrong"))
	require.NoError(t, err)
	assert.False(t, got.Integrity)
	// MESSAGE-INTEGRITY is left in place as a raw attribute.
	_, ok := got.Attributes.Get(AttrMessageIntegrity)
	assert.True(t, ok)
}

func TestDecodeTruncatedAttributeFails(t *testing.T) {
	// Header declares a 20-byte attribute section, but only an attribute
	// header (4 bytes) claiming a 16-byte value follows: far short of what
	// decode needs, so this must fail rather than silently truncate.
	raw := make([]byte, messageHeaderSize+4)
	bin.PutUint16(raw[2:4], 20)
	bin.PutUint32(raw[4:8], magicCookie)
	bin.PutUint16(raw[messageHeaderSize:messageHeaderSize+2], uint16(AttrUsername))
	bin.PutUint16(raw[messageHeaderSize+2:messageHeaderSize+4], 16)

	_, err := Decode(raw, nil)
	assert.Error(t, err)
}

func TestDecodeRejectsShortBuffer(t *testing.T) {
	_, err := Decode(make([]byte, 10), nil)
	assert.ErrorIs(t, err, ErrMalformedHeader)
}

func TestXORMappedAddressRoundTripThroughMessage(t *testing.T) {
	m := New()
	m.TransactionID = NewTransactionID()
	m.WriteHeader()

	want := XORMappedAddress{IP: net.ParseIP("203.0.113.5").To4(), Port: 4242}
	require.NoError(t, want.AddTo(m))
	m.WriteHeader()

	raw := make([]byte, len(m.Raw))
	copy(raw, m.Raw)
	got, err := Decode(raw, nil)
	require.NoError(t, err)

	var addr XORMappedAddress
	require.NoError(t, addr.GetFrom(got))
	assert.True(t, want.IP.Equal(addr.IP))
	assert.Equal(t, want.Port, addr.Port)
}

func BenchmarkEncodeDecode(b *testing.B) {
	m := New()
	m.TransactionID = NewTransactionID()
	m.WriteHeader()
	m.Add(AttrUsername, []byte("benchmark"))
	m.WriteHeader()
	raw := Encode(m)

	b.ReportAllocs()
	for i := 0; i < b.N; i++ {
		if _, err := Decode(raw, nil); err != nil {
			b.Fatal(err)
		}
	}
}

func TestMessageAddDoesNotAllocateAfterGrow(t *testing.T) {
	m := New()
	m.TransactionID = NewTransactionID()
	m.WriteHeader()
	// Seed Raw and Attributes backing arrays so the timed Add below only
	// reslices instead of allocating.
	m.Add(AttrUsername, []byte("prealloc"))
	m.Reset()
	m.WriteHeader()

	testutil.ShouldNotAllocate(t, func() {
		m.Add(AttrUsername, []byte("prealloc"))
	})
}
