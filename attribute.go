package stun

import (
	"fmt"
	"net"
)

// This file is the Attribute Codec: given (type, payload, transaction id)
// it produces a typed Value, dispatching on the shape declared by the
// Registry (spec §4.2). It never fails a whole message: an unregistered
// type decodes as RawValue passthrough, exactly as it arrived on the wire.

// Value is the decoded payload of one attribute. Its dynamic type is one
// of RawValue, Address, ErrorValue or ChangeRequestValue, matching the
// shapes in spec §3's "Attribute value variants" table.
type Value interface{ isStunValue() }

// RawValue is an attribute's payload, verbatim, used for ShapeValue and
// for any attribute code the Registry does not recognize.
type RawValue []byte

func (RawValue) isStunValue() {}

// Address is the decoded (IP, port) pair shared by ShapeAddress and
// ShapeXORAddress attributes — once decoded, an XOR'd address and a plain
// one look identical (spec §3).
type Address struct {
	IP   net.IP
	Port int
}

func (Address) isStunValue() {}

func (a Address) String() string { return net.JoinHostPort(a.IP.String(), fmt.Sprint(a.Port)) }

// ErrorValue is the decoded payload of an ERROR-CODE attribute.
type ErrorValue struct {
	Code   int // class*100 + number, in [300, 699]
	Reason []byte
}

func (ErrorValue) isStunValue() {}

// ChangeRequestValue is the decoded payload of a CHANGE-REQUEST attribute:
// a subset of {ip, port} (spec §3/§4.2).
type ChangeRequestValue struct {
	ChangeIP   bool
	ChangePort bool
}

func (ChangeRequestValue) isStunValue() {}

const (
	changeRequestIPBit   = 0x4
	changeRequestPortBit = 0x2
)

// Address attribute wire layout (RFC 5389 §15.1).
const (
	addrFamilyIPv4 byte = 0x01
	addrFamilyIPv6 byte = 0x02
)

// decodeAttribute turns one wire attribute into a Value, per the shape
// registered for a.Type. Unregistered types pass through as RawValue and
// are reported via warnf (if non-nil) rather than failing the decode.
func decodeAttribute(a RawAttribute, tid [TransactionIDSize]byte, warnf func(format string, args ...interface{})) (Value, error) {
	shape, ok := a.Type.shape()
	if !ok {
		if warnf != nil {
			warnf("stun: unregistered attribute 0x%04x (%d bytes), passing through raw", uint16(a.Type), len(a.Value))
		}
		return RawValue(a.Value), nil
	}
	switch shape {
	case ShapeValue:
		return RawValue(a.Value), nil
	case ShapeAddress:
		return decodePlainAddress(a.Value)
	case ShapeXORAddress:
		return decodeXORAddress(a.Value, tid)
	case ShapeErrorCode:
		return decodeErrorValue(a.Value)
	case ShapeChangeRequest:
		return decodeChangeRequest(a.Value)
	default:
		return RawValue(a.Value), nil
	}
}

// encodeAttribute is the inverse of decodeAttribute: it renders v back to
// wire payload bytes for attribute type t. Encoding a structurally invalid
// value (wrong-arity address, out-of-range error code) is a programmer
// error and panics, per spec §4.2/§7.
func encodeAttribute(t AttrType, v Value, tid [TransactionIDSize]byte) []byte {
	shape, ok := t.shape()
	if !ok {
		shape = ShapeValue
	}
	switch shape {
	case ShapeValue:
		raw, ok := v.(RawValue)
		if !ok {
			panic(fmt.Sprintf("stun: attribute %s requires RawValue, got %T", t, v))
		}
		return raw
	case ShapeAddress:
		addr, ok := v.(Address)
		if !ok {
			panic(fmt.Sprintf("stun: attribute %s requires Address, got %T", t, v))
		}
		return encodePlainAddress(addr)
	case ShapeXORAddress:
		addr, ok := v.(Address)
		if !ok {
			panic(fmt.Sprintf("stun: attribute %s requires Address, got %T", t, v))
		}
		return encodeXORAddress(addr, tid)
	case ShapeErrorCode:
		ev, ok := v.(ErrorValue)
		if !ok {
			panic(fmt.Sprintf("stun: attribute %s requires ErrorValue, got %T", t, v))
		}
		return encodeErrorValue(ev)
	case ShapeChangeRequest:
		cr, ok := v.(ChangeRequestValue)
		if !ok {
			panic(fmt.Sprintf("stun: attribute %s requires ChangeRequestValue, got %T", t, v))
		}
		return encodeChangeRequest(cr)
	default:
		raw, _ := v.(RawValue)
		return raw
	}
}

func addressLength(ip net.IP) (net.IP, byte, error) {
	switch len(ip) {
	case net.IPv4len:
		return ip, addrFamilyIPv4, nil
	case net.IPv6len:
		if v4 := ip.To4(); v4 != nil {
			return v4, addrFamilyIPv4, nil
		}
		return ip, addrFamilyIPv6, nil
	default:
		return nil, 0, ErrBadIPLength
	}
}

// decodePlainAddress decodes RFC 5389 §15.1 MAPPED-ADDRESS framing.
func decodePlainAddress(v []byte) (Address, error) {
	if len(v) < 4 {
		return Address{}, newDecodeError("address", "too short for family+port")
	}
	family := v[1]
	if family != addrFamilyIPv4 && family != addrFamilyIPv6 {
		return Address{}, newDecodeError("address", fmt.Sprintf("bad family %d", family))
	}
	port := int(bin.Uint16(v[2:4]))
	ipLen := net.IPv4len
	if family == addrFamilyIPv6 {
		ipLen = net.IPv6len
	}
	if len(v[4:]) != ipLen {
		return Address{}, newDecodeError("address", fmt.Sprintf("bad address length %d for family %d", len(v[4:]), family))
	}
	ip := make(net.IP, ipLen)
	copy(ip, v[4:])
	return Address{IP: ip, Port: port}, nil
}

func encodePlainAddress(a Address) []byte {
	ip, family, err := addressLength(a.IP)
	if err != nil {
		panic(err)
	}
	v := make([]byte, 4+len(ip))
	v[0] = 0
	v[1] = family
	bin.PutUint16(v[2:4], uint16(a.Port)) //nolint:gosec
	copy(v[4:], ip)
	return v
}

func decodeErrorValue(v []byte) (ErrorValue, error) {
	const errorCodeHeaderSize = 4
	if len(v) < errorCodeHeaderSize {
		return ErrorValue{}, newDecodeError("error-code", "shorter than 4 bytes")
	}
	class := int(v[2])
	number := int(v[3])
	code := class*100 + number
	return ErrorValue{Code: code, Reason: v[errorCodeHeaderSize:]}, nil
}

func encodeErrorValue(e ErrorValue) []byte {
	if e.Code < 300 || e.Code > 699 {
		panic(ErrErrorCodeOutOfRange)
	}
	v := make([]byte, 4+len(e.Reason))
	v[2] = byte(e.Code / 100)
	v[3] = byte(e.Code % 100) //nolint:gosec
	copy(v[4:], e.Reason)
	return v
}

func decodeChangeRequest(v []byte) (ChangeRequestValue, error) {
	if len(v) != 4 {
		return ChangeRequestValue{}, newDecodeError("change-request", "must be 4 bytes")
	}
	flags := v[3]
	return ChangeRequestValue{
		ChangeIP:   flags&changeRequestIPBit != 0,
		ChangePort: flags&changeRequestPortBit != 0,
	}, nil
}

func encodeChangeRequest(c ChangeRequestValue) []byte {
	v := make([]byte, 4)
	var flags byte
	if c.ChangeIP {
		flags |= changeRequestIPBit
	}
	if c.ChangePort {
		flags |= changeRequestPortBit
	}
	v[3] = flags
	return v
}

// Decoded builds the spec §3 "attrs" mapping: attribute name → decoded
// Value. Message.Attributes remains the ordered, wire-form source of
// truth; Decoded is a derived, unordered view (spec §9 design note).
func (m *Message) Decoded() (map[string]Value, error) {
	return m.decodedWithWarn(nil)
}

func (m *Message) decodedWithWarn(warnf func(format string, args ...interface{})) (map[string]Value, error) {
	out := make(map[string]Value, len(m.Attributes))
	for _, a := range m.Attributes {
		if a.Type == AttrMessageIntegrity || a.Type == AttrFingerprint {
			// Only reach here if the trailer failed to verify and was left
			// in place per spec §4.4 — surfaced as a raw attribute.
			out[a.Type.Name()] = RawValue(a.Value)
			continue
		}
		v, err := decodeAttribute(a, m.TransactionID, warnf)
		if err != nil {
			return nil, err
		}
		// Later occurrences overwrite earlier ones (spec §4.3 Ordering).
		out[a.Type.Name()] = v
	}
	return out, nil
}
