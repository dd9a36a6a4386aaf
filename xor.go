package stun

import (
	"net"

	"github.com/pion/transport/v3/utils/xor"
)

// This file implements the XOR transform for ShapeXORAddress attributes
// (RFC 5389 §15.2). The framing is identical to ShapeAddress; only the
// address bytes (and, for the port, its high 16 bits) are masked, so
// decode and encode are a single xor.XorBytes call against xorMask in each
// direction — XOR is its own inverse.

// isIPv4Mapped reports whether a 16-byte IP is an IPv4 address in its
// IPv4-in-IPv6 form (::ffff:a.b.c.d).
func isIPv4Mapped(ip net.IP) bool {
	for _, b := range ip[0:10] {
		if b != 0 {
			return false
		}
	}
	return ip[10] == 0xff && ip[11] == 0xff
}

// xorMask returns the mask bytes for ipLen: 4 bytes of magic cookie for
// IPv4, magic cookie‖transaction-id for IPv6 (RFC 5389 §15.2).
func xorMask(ipLen int, tid [TransactionIDSize]byte) []byte {
	mask := make([]byte, net.IPv6len)
	bin.PutUint32(mask[0:4], magicCookie)
	copy(mask[4:], tid[:])
	return mask[:ipLen]
}

func decodeXORAddress(v []byte, tid [TransactionIDSize]byte) (Address, error) {
	if len(v) < 4 {
		return Address{}, newDecodeError("xor-address", "too short for family+port")
	}
	family := v[1]
	if family != addrFamilyIPv4 && family != addrFamilyIPv6 {
		return Address{}, newDecodeError("xor-address", "bad family")
	}
	ipLen := net.IPv4len
	if family == addrFamilyIPv6 {
		ipLen = net.IPv6len
	}
	if len(v[4:]) != ipLen {
		return Address{}, newDecodeError("xor-address", "bad address length for family")
	}

	port := int(bin.Uint16(v[2:4])) ^ (magicCookie >> 16)

	ip := make(net.IP, ipLen)
	xor.XorBytes(ip, v[4:], xorMask(ipLen, tid))

	return Address{IP: ip, Port: port}, nil
}

func encodeXORAddress(a Address, tid [TransactionIDSize]byte) []byte {
	ip := a.IP
	family := addrFamilyIPv4
	switch len(ip) {
	case net.IPv4len:
	case net.IPv6len:
		if isIPv4Mapped(ip) {
			ip = ip[12:16]
		} else {
			family = addrFamilyIPv6
		}
	default:
		panic(ErrBadIPLength)
	}

	v := make([]byte, 4+len(ip))
	v[1] = family
	bin.PutUint16(v[2:4], uint16(a.Port^(magicCookie>>16))) //nolint:gosec
	xor.XorBytes(v[4:], ip, xorMask(len(ip), tid))
	return v
}
