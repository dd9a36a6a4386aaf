package stun

import (
	"crypto/rand"
	"encoding/base64"
	"fmt"
)

// Sizes fixed by the wire format (spec §4.1/§4.3).
const (
	magicCookie         = 0x2112A442
	attributeHeaderSize = 4
	messageHeaderSize   = 20
	// TransactionIDSize is the width, in bytes, of a STUN transaction ID
	// (96 bits, spec I5).
	TransactionIDSize = 12
)

// MaxMessageSize is the RFC 5389 §7 recommended cap for a reassembled STUN
// message; the codec itself never enforces this — the size limit belongs to
// the transport layer, not the pure decode/encode functions.
const MaxMessageSize = 2048

// NewTransactionID returns a new random transaction ID from crypto/rand.
func NewTransactionID() (b [TransactionIDSize]byte) {
	if _, err := rand.Read(b[:]); err != nil {
		panic(err)
	}
	return b
}

// IsMessage reports whether b looks like a STUN message: long enough for a
// header and carrying the magic cookie. Useful for demultiplexing STUN from
// other protocols on the same port; does not guarantee Decode will succeed.
func IsMessage(b []byte) bool {
	return len(b) >= messageHeaderSize && bin.Uint32(b[4:8]) == magicCookie
}

// RawAttribute is one attribute exactly as it appears on the wire: type,
// unpadded length, and payload. The Attribute Stream Codec produces these;
// the Attribute Codec (attribute.go) turns them into typed Values.
type RawAttribute struct {
	Type   AttrType
	Length uint16
	Value  []byte
}

// Equal reports whether a and b carry the same type and value.
func (a RawAttribute) Equal(b RawAttribute) bool {
	if a.Type != b.Type || a.Length != b.Length {
		return false
	}
	if len(a.Value) != len(b.Value) {
		return false
	}
	for i := range a.Value {
		if a.Value[i] != b.Value[i] {
			return false
		}
	}
	return true
}

// Attributes is an ordered sequence of RawAttribute, preserving wire order
// (spec §9 design note: the sequence is the internal representation; the
// unordered name→value mapping returned by Message.Decoded is a view over it).
type Attributes []RawAttribute

// Get returns the first attribute of type t, and whether it was found.
func (a Attributes) Get(t AttrType) (RawAttribute, bool) {
	for _, attr := range a {
		if attr.Type == t {
			return attr, true
		}
	}
	return RawAttribute{}, false
}

// New returns a *Message with a header-sized, pre-allocated Raw buffer.
func New() *Message {
	const defaultRawCapacity = 120
	return &Message{Raw: make([]byte, messageHeaderSize, defaultRawCapacity)}
}

// Message is a single decoded (or to-be-encoded) STUN message.
//
// Message uses the same zero-allocation buffering discipline as the
// teacher's Message: Raw backs both Attributes' Value slices and the
// header, so a Message's fields are only valid until Raw is mutated
// (Reset, Add, or another Decode/Write into the same Message).
type Message struct {
	Class         MessageClass
	Method        Method
	TransactionID [TransactionIDSize]byte

	// Integrity is set true by Decode iff a valid MESSAGE-INTEGRITY
	// trailer was verified against Key. On Encode, MESSAGE-INTEGRITY is
	// appended iff Key is non-empty (spec §3): Integrity itself is not
	// consulted by Encode.
	Integrity bool
	// Key is the integrity key: on decode, the key the caller passed to
	// Decode; on encode, its presence triggers appending MESSAGE-INTEGRITY.
	Key []byte

	// Fingerprint is set true by Decode iff a valid FINGERPRINT trailer
	// was verified. On Encode, Fingerprint true means "append FINGERPRINT".
	Fingerprint bool

	// Attributes is the ordered wire-form attribute sequence. Use Add to
	// append to it (keeps Length and Raw in sync); use Decoded for the
	// name→value view described in spec §3.
	Attributes Attributes

	// Length is len(Raw) - messageHeaderSize: the size of the attribute
	// section, including any padding and any trailers already appended.
	Length uint32

	// Raw is the encoded form of the message. Valid after WriteHeader,
	// Encode, or a successful Decode/decodeFrom.
	Raw []byte
}

func (m Message) String() string {
	return fmt.Sprintf("%s %s l=%d attrs=%d id=%s",
		m.Method, m.Class, m.Length, len(m.Attributes),
		base64.StdEncoding.EncodeToString(m.TransactionID[:]))
}

// Reset clears m and its underlying buffer length, but keeps the
// buffer's capacity so the Message can be reused without reallocating.
func (m *Message) Reset() {
	m.Raw = m.Raw[:0]
	m.Length = 0
	m.Attributes = m.Attributes[:0]
}

// grow ensures Raw can hold n total bytes without reallocating on every Add.
func (m *Message) grow(n int) {
	for cap(m.Raw) < n {
		m.Raw = append(m.Raw, 0)
	}
	m.Raw = m.Raw[:n]
}

// Add appends a new attribute TLV to m, padding it to a 4-byte boundary
// (spec I2). The Length field written is the unpadded payload length.
func (m *Message) Add(t AttrType, v []byte) {
	allocSize := attributeHeaderSize + len(v)
	first := messageHeaderSize + int(m.Length)
	last := first + allocSize
	m.grow(last)
	m.Raw = m.Raw[:last]
	m.Length += uint32(allocSize) //nolint:gosec

	buf := m.Raw[first:last]
	value := buf[attributeHeaderSize:]
	attr := RawAttribute{Type: t, Length: uint16(len(v)), Value: value} //nolint:gosec

	bin.PutUint16(buf[0:2], uint16(t))
	bin.PutUint16(buf[2:4], attr.Length)
	copy(value, v)

	if pad := nearestPaddedValueLength(len(v)) - len(v); pad != 0 {
		last += pad
		m.grow(last)
		zeroes := m.Raw[last-pad : last]
		for i := range zeroes {
			zeroes[i] = 0
		}
		m.Raw = m.Raw[:last]
		m.Length += uint32(pad) //nolint:gosec
	}
	m.Attributes = append(m.Attributes, attr)
}

// Get returns the value of the first attribute of type t, or
// ErrAttributeNotFound if m carries none.
func (m *Message) Get(t AttrType) ([]byte, error) {
	a, ok := m.Attributes.Get(t)
	if !ok {
		return nil, ErrAttributeNotFound
	}
	return a.Value, nil
}

// Equal reports whether m and b carry the same class, method, transaction
// ID and attribute set (order-insensitive on attributes). Ignores Raw.
func (m *Message) Equal(b *Message) bool {
	if m.Class != b.Class || m.Method != b.Method {
		return false
	}
	if m.TransactionID != b.TransactionID {
		return false
	}
	if len(m.Attributes) != len(b.Attributes) {
		return false
	}
	for _, a := range m.Attributes {
		bAttr, ok := b.Attributes.Get(a.Type)
		if !ok || !bAttr.Equal(a) {
			return false
		}
	}
	return true
}

// WriteLength writes m.Length into the header's length field. Valid only
// once len(m.Raw) >= messageHeaderSize.
func (m *Message) WriteLength() {
	_ = m.Raw[3] // bounds check hint
	bin.PutUint16(m.Raw[2:4], uint16(m.Length)) //nolint:gosec
}

// messageTypeValue packs class and method into the 16-bit, bit-interleaved
// STUN Message Type field (spec §4.1):
//
//	bit:   0 1 | 2 3 4 5 6 | 7  | 8 9 10 | 11 | 12 13 14 15
//	field: 00  |   M2 (5)  | C1 | M1 (3) | C0 |   M0 (4)
//
// The method id is the concatenation M2‖M1‖M0 (12 bits); the class id is
// C1‖C0 (2 bits). This interleaving must be honored bit-for-bit.
func messageTypeValue(class MessageClass, method Method) uint16 {
	const (
		methodABits = 0xf   // M0: low 4 bits of method
		methodBBits = 0x70  // M1: next 3 bits
		methodDBits = 0xf80 // M2: top 5 bits

		methodBShift = 1
		methodDShift = 2

		c0Bit = 0x1
		c1Bit = 0x2

		classC0Shift = 4
		classC1Shift = 7
	)
	m := uint16(method)
	a := m & methodABits
	b := m & methodBBits
	d := m & methodDBits
	m = a + (b << methodBShift) + (d << methodDShift)

	c := uint16(class)
	c0 := (c & c0Bit) << classC0Shift
	c1 := (c & c1Bit) << classC1Shift

	return m + c0 + c1
}

// readMessageType is the inverse of messageTypeValue.
func readMessageType(v uint16) (MessageClass, Method) {
	const (
		methodABits = 0xf
		methodBBits = 0x70
		methodDBits = 0xf80

		methodBShift = 1
		methodDShift = 2

		c0Bit = 0x1
		c1Bit = 0x2

		classC0Shift = 4
		classC1Shift = 7
	)
	c0 := (v >> classC0Shift) & c0Bit
	c1 := (v >> classC1Shift) & c1Bit
	class := MessageClass(c0 + c1)

	a := v & methodABits
	b := (v >> methodBShift) & methodBBits
	d := (v >> methodDShift) & methodDBits
	method := Method(a + b + d)

	return class, method
}

// WriteHeader (re)writes the 20-byte STUN header into m.Raw from m.Class,
// m.Method and m.TransactionID, growing Raw if needed. The length field is
// taken from len(m.Raw) - messageHeaderSize.
func (m *Message) WriteHeader() {
	if len(m.Raw) < messageHeaderSize {
		m.grow(messageHeaderSize)
	}
	_ = m.Raw[:messageHeaderSize]

	bin.PutUint16(m.Raw[0:2], messageTypeValue(m.Class, m.Method))
	bin.PutUint16(m.Raw[2:4], uint16(len(m.Raw)-messageHeaderSize)) //nolint:gosec
	bin.PutUint32(m.Raw[4:8], magicCookie)
	copy(m.Raw[8:messageHeaderSize], m.TransactionID[:])
}

// WriteAttributes re-encodes m.Attributes into m.Raw, in the order given
// by the caller (spec §4.3 Encode: "concatenate in the order provided").
func (m *Message) WriteAttributes() {
	attrs := m.Attributes
	m.Attributes = m.Attributes[:0]
	m.Length = 0
	m.Raw = m.Raw[:messageHeaderSize]
	for _, a := range attrs {
		m.Add(a.Type, a.Value)
	}
}

// decodeHeader implements the Header Codec's decode_header operation
// (spec §4.1). It validates the STUN marker bits (I4) and magic cookie
// (I3) and returns the attribute-section length declared by the header.
func decodeHeader(b []byte) (class MessageClass, method Method, length int, tid [TransactionIDSize]byte, err error) {
	if len(b) < messageHeaderSize {
		return 0, 0, 0, tid, ErrMalformedHeader
	}
	t := bin.Uint16(b[0:2])
	if t&0xC000 != 0 { // top two bits must be 0b00 (I4)
		return 0, 0, 0, tid, ErrMalformedHeader
	}
	cookie := bin.Uint32(b[4:8])
	if cookie != magicCookie { // I3
		return 0, 0, 0, tid, ErrMalformedHeader
	}
	class, method = readMessageType(t)
	length = int(bin.Uint16(b[2:4]))
	copy(tid[:], b[8:messageHeaderSize])
	return class, method, length, tid, nil
}

// decodeAttributeStream implements the Attribute Stream Codec's decode
// loop (spec §4.3). It is tolerant of a final attribute that omits its
// trailing padding (a pragmatic relaxation for real-world peers), and of
// a declared length that overruns the actual attribute data: in that case
// it logs via warnf (if non-nil) and returns what it managed to decode,
// rather than failing the whole message.
func decodeAttributeStream(b []byte, declaredLength int, warnf func(format string, args ...interface{})) (Attributes, error) {
	var attrs Attributes
	remaining := declaredLength
	if remaining > len(b) {
		remaining = len(b)
	}
	buf := b[:remaining]
	offset := 0
	for offset < remaining {
		if len(buf) < attributeHeaderSize {
			return nil, newDecodeError("attribute header", fmt.Sprintf(
				"%d bytes left, need %d", len(buf), attributeHeaderSize))
		}
		typ := AttrType(bin.Uint16(buf[0:2]))
		itemLength := int(bin.Uint16(buf[2:4]))
		buf = buf[attributeHeaderSize:]
		offset += attributeHeaderSize

		if itemLength > len(buf) {
			return nil, newDecodeError("attribute value", fmt.Sprintf(
				"declared length %d exceeds %d bytes remaining", itemLength, len(buf)))
		}

		pad := nearestPaddedValueLength(itemLength) - itemLength
		// Pragmatic relaxation: if this attribute's declared length fills
		// the remaining buffer exactly, treat it as the (unpadded) last
		// attribute rather than demanding padding bytes that aren't there.
		if itemLength == len(buf) {
			pad = 0
		}
		if itemLength+pad > len(buf) {
			pad = len(buf) - itemLength
		}

		value := buf[:itemLength]
		attrs = append(attrs, RawAttribute{Type: typ, Length: uint16(itemLength), Value: value}) //nolint:gosec

		consumed := attributeHeaderSize + itemLength + pad
		offset += itemLength + pad
		buf = buf[itemLength+pad:]
		_ = consumed
	}
	if offset != declaredLength && warnf != nil {
		warnf("stun: attribute section declared %d bytes, consumed %d", declaredLength, offset)
	}
	return attrs, nil
}

// decodeFrom is the Message Codec's header+attribute decode step (spec
// §4.5 step 3-4), operating on bytes that have already had FINGERPRINT and
// MESSAGE-INTEGRITY stripped by the caller. warnf receives diagnostics for
// unknown attributes/methods/classes and length mismatches; may be nil.
func (m *Message) decodeFrom(b []byte, warnf func(format string, args ...interface{})) error {
	class, method, length, tid, err := decodeHeader(b)
	if err != nil {
		return err
	}
	attrs, err := decodeAttributeStream(b[messageHeaderSize:], length, warnf)
	if err != nil {
		return err
	}
	m.Class = class
	m.Method = method
	m.TransactionID = tid
	m.Length = uint32(length) //nolint:gosec
	m.Attributes = attrs
	m.Raw = b
	if warnf != nil {
		if _, ok := methodRegistry[method]; !ok {
			warnf("stun: unregistered method %s", method)
		}
		for _, a := range attrs {
			if _, ok := a.Type.shape(); !ok {
				warnf("stun: unregistered attribute 0x%04x (%d bytes), passing through raw", uint16(a.Type), len(a.Value))
			}
		}
	}
	return nil
}
