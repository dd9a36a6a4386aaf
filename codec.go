package stun

import "crypto/subtle"

// This file is the Message Codec: the two public entry points, Decode and
// Encode, orchestrating the Header Codec, Attribute Stream Codec, and the
// MESSAGE-INTEGRITY/FINGERPRINT trailers (spec §4.5).

const (
	fingerprintTrailerSize = attributeHeaderSize + fingerprintSize      // 8
	integrityTrailerSize   = attributeHeaderSize + messageIntegritySize // 24
	minLengthForIntegrity  = messageHeaderSize + integrityTrailerSize   // 44
)

// Decode parses b as a STUN message. key, if non-nil, is the
// MESSAGE-INTEGRITY key to verify against; pass nil to skip integrity
// verification entirely (Message.Integrity will read false).
//
// Decode fails only on ErrMalformedHeader or a *DecodeError wrapping
// ErrTruncatedAttribute (spec §7): unknown methods, classes, attributes,
// and failed MAC/CRC checks are never fatal — they are reported on the
// returned Message instead.
func Decode(b []byte, key []byte) (*Message, error) {
	return DecodeWithLogger(b, key, nil)
}

// DecodeWithLogger is Decode with an optional diagnostic sink: warnf is
// called (if non-nil) for non-fatal anomalies — unregistered attributes,
// a declared attribute-section length that does not match what was
// actually consumed. Pass nil for silent operation.
func DecodeWithLogger(b []byte, key []byte, warnf func(format string, args ...interface{})) (*Message, error) {
	fingerprintOK, rest := checkFingerprintTrailer(b)
	integrityOK, rest := checkIntegrityTrailer(rest, key)

	m := &Message{}
	if err := m.decodeFrom(rest, warnf); err != nil {
		return nil, err
	}
	m.Fingerprint = fingerprintOK
	m.Integrity = integrityOK
	m.Key = key
	return m, nil
}

// checkFingerprintTrailer implements spec §4.4's decoder-side FINGERPRINT
// step: if the last 8 bytes parse as a verifying FINGERPRINT TLV, it is
// stripped and the header length rewritten; otherwise b is returned
// unchanged and ok is false.
func checkFingerprintTrailer(b []byte) (ok bool, rest []byte) {
	if len(b) < messageHeaderSize+fingerprintTrailerSize {
		return false, b
	}
	trailer := b[len(b)-fingerprintTrailerSize:]
	if AttrType(bin.Uint16(trailer[0:2])) != AttrFingerprint {
		return false, b
	}
	if int(bin.Uint16(trailer[2:4])) != fingerprintSize {
		return false, b
	}
	got := bin.Uint32(trailer[4:8])
	body := b[:len(b)-fingerprintTrailerSize]
	if FingerprintValue(body) != got {
		return false, b
	}

	stripped := make([]byte, len(body))
	copy(stripped, body)
	rewriteLength(stripped, len(stripped)-messageHeaderSize)
	return true, stripped
}

// checkIntegrityTrailer implements spec §4.4's decoder-side
// MESSAGE-INTEGRITY step. Per spec §9, it is only attempted when the
// buffer is long enough to plausibly hold a trailer (> 44 bytes); it does
// not search for MESSAGE-INTEGRITY elsewhere in the attribute sequence.
func checkIntegrityTrailer(b []byte, key []byte) (ok bool, rest []byte) {
	if key == nil || len(b) <= minLengthForIntegrity {
		return false, b
	}
	trailer := b[len(b)-integrityTrailerSize:]
	if AttrType(bin.Uint16(trailer[0:2])) != AttrMessageIntegrity {
		return false, b
	}
	if int(bin.Uint16(trailer[2:4])) != messageIntegritySize {
		return false, b
	}
	mac := trailer[4 : 4+messageIntegritySize]
	body := b[:len(b)-integrityTrailerSize]

	expected := newHMAC(MessageIntegrity(key), body, nil)
	if len(mac) != len(expected) || subtle.ConstantTimeCompare(mac, expected) != 1 {
		return false, b
	}

	stripped := make([]byte, len(body))
	copy(stripped, body)
	rewriteLength(stripped, len(stripped)-messageHeaderSize)
	return true, stripped
}

// rewriteLength writes attrLength into a 20-byte-or-longer STUN header's
// length field (bytes 2..4), in place.
func rewriteLength(raw []byte, attrLength int) {
	bin.PutUint16(raw[2:4], uint16(attrLength)) //nolint:gosec
}

// Encode renders m to a freshly allocated byte slice (spec §4.5 Encode).
// It appends MESSAGE-INTEGRITY when m.Key is non-empty, then FINGERPRINT
// when m.Fingerprint is true — in that order, since FINGERPRINT must
// cover any MESSAGE-INTEGRITY trailer that precedes it.
func Encode(m *Message) []byte {
	out := New()
	out.Class = m.Class
	out.Method = m.Method
	out.TransactionID = m.TransactionID

	for _, a := range m.Attributes {
		out.Add(a.Type, a.Value)
	}
	out.WriteHeader()

	if len(m.Key) > 0 {
		if err := MessageIntegrity(m.Key).AddTo(out); err != nil {
			panic(err)
		}
		out.WriteHeader()
	}
	if m.Fingerprint {
		AddFingerprint(out)
		out.WriteHeader()
	}

	raw := make([]byte, len(out.Raw))
	copy(raw, out.Raw)
	return raw
}
