package stun

import (
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func TestMessageTypeBitInterleave(t *testing.T) {
	// RFC 5389 §6: Binding Request is class=request(0x00), method=binding
	// (0x001), which packs to message type 0x0001.
	assert.Equal(t, uint16(0x0001), messageTypeValue(ClassRequest, MethodBinding))
	// Binding Success Response: class=success(0x02), method=binding(0x001)
	// packs to 0x0101.
	assert.Equal(t, uint16(0x0101), messageTypeValue(ClassSuccess, MethodBinding))
	// Binding Error Response: class=error(0x03) packs to 0x0111.
	assert.Equal(t, uint16(0x0111), messageTypeValue(ClassError, MethodBinding))
}

func TestMessageTypeRoundTrip(t *testing.T) {
	for class := MessageClass(0); class < 4; class++ {
		for method := Method(0); method < 0x1000; method += 0x037 {
			v := messageTypeValue(class, method)
			gotClass, gotMethod := readMessageType(v)
			assert.Equal(t, class, gotClass)
			assert.Equal(t, method, gotMethod)
		}
	}
}

func TestDecodeHeaderRejectsShortInput(t *testing.T) {
	_, _, _, _, err := decodeHeader(make([]byte, 19))
	assert.ErrorIs(t, err, ErrMalformedHeader)
}

func TestDecodeHeaderRejectsBadMarkerBits(t *testing.T) {
	b := make([]byte, messageHeaderSize)
	b[0] = 0xC0 // top two bits must be zero
	bin.PutUint32(b[4:8], magicCookie)
	_, _, _, _, err := decodeHeader(b)
	assert.ErrorIs(t, err, ErrMalformedHeader)
}

func TestDecodeHeaderRejectsBadCookie(t *testing.T) {
	b := make([]byte, messageHeaderSize)
	bin.PutUint32(b[4:8], 0xdeadbeef)
	_, _, _, _, err := decodeHeader(b)
	assert.ErrorIs(t, err, ErrMalformedHeader)
}

func TestMessageAddAndGet(t *testing.T) {
	m := New()
	m.Class = ClassRequest
	m.Method = MethodBinding
	m.TransactionID = NewTransactionID()
	m.WriteHeader()

	m.Add(AttrUsername, []byte("alice"))
	m.WriteHeader()

	v, err := m.Get(AttrUsername)
	require.NoError(t, err)
	assert.Equal(t, "alice", string(v))

	_, err = m.Get(AttrRealm)
	assert.ErrorIs(t, err, ErrAttributeNotFound)
}

func TestMessageAddPadsToFourBytes(t *testing.T) {
	m := New()
	m.WriteHeader()
	m.Add(AttrUsername, []byte("abc")) // 3 bytes, needs 1 byte padding
	assert.Equal(t, uint32(attributeHeaderSize+4), m.Length)
}

func TestIsMessage(t *testing.T) {
	m := New()
	m.Class = ClassRequest
	m.Method = MethodBinding
	m.TransactionID = NewTransactionID()
	m.WriteHeader()
	assert.True(t, IsMessage(m.Raw))
	assert.False(t, IsMessage(make([]byte, 19)))
	assert.False(t, IsMessage(make([]byte, 20))) // zero cookie
}

func TestMessageEqual(t *testing.T) {
	a := New()
	a.TransactionID = NewTransactionID()
	a.WriteHeader()
	a.Add(AttrUsername, []byte("bob"))

	b := New()
	b.TransactionID = a.TransactionID
	b.WriteHeader()
	b.Add(AttrUsername, []byte("bob"))

	assert.True(t, a.Equal(b))

	b.Attributes[0].Value = []byte("eve")
	assert.False(t, a.Equal(b))
}
