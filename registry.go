package stun

import (
	"fmt"
	"strconv"
)

// This file is the Registry component: three static, read-only tables
// mapping wire codes to names and decode shapes. Per spec §1/§6 the
// registry is fixed at build time — there is no file-loading or runtime
// plugin mechanism, deliberately (a dynamic registry is a Non-goal).

// AttrType is the 16-bit STUN attribute type.
type AttrType uint16

// Shape is the registry's decode/encode dispatch tag for an attribute
// (spec §3, "Registry rows"). The Attribute Codec switches on Shape to
// decide how to interpret an attribute's payload bytes.
type Shape int

// Attribute shapes recognized by the Attribute Codec.
const (
	// ShapeValue passes payload bytes through unmodified.
	ShapeValue Shape = iota
	// ShapeAddress decodes an RFC 5389 §15.1 (IP, port) pair.
	ShapeAddress
	// ShapeXORAddress decodes the same framing as ShapeAddress, but the
	// wire bytes are XOR-masked per RFC 5389 §15.2.
	ShapeXORAddress
	// ShapeErrorCode decodes an RFC 5389 §15.6 (code, reason) pair.
	ShapeErrorCode
	// ShapeChangeRequest decodes an RFC 3489 §11.2.4 CHANGE-REQUEST bit set.
	ShapeChangeRequest
)

func (s Shape) String() string {
	switch s {
	case ShapeValue:
		return "value"
	case ShapeAddress:
		return "address"
	case ShapeXORAddress:
		return "xattribute"
	case ShapeErrorCode:
		return "error_attribute"
	case ShapeChangeRequest:
		return "request"
	default:
		return "unknown"
	}
}

// attrInfo is one Attribute registry row.
type attrInfo struct {
	name  string
	shape Shape
}

// Canonical STUN/TURN/ICE attribute codes (spec §6 canonical starter set).
//
//nolint:gochecknoglobals
const (
	AttrMappedAddress    AttrType = 0x0001
	AttrChangeRequest    AttrType = 0x0003
	AttrSourceAddress    AttrType = 0x0004 // RFC 3489 §11.2.2, obsoleted by RFC 5389 but still seen on the wire
	AttrChangedAddress   AttrType = 0x0005 // RFC 3489 §11.2.3, ditto
	AttrUsername         AttrType = 0x0006
	AttrMessageIntegrity AttrType = 0x0008 // handled by the Message Codec, not dispatched here
	AttrErrorCode        AttrType = 0x0009
	AttrUnknownAttrs     AttrType = 0x000A
	AttrChannelNumber    AttrType = 0x000C
	AttrLifetime         AttrType = 0x000D
	AttrXORPeerAddress   AttrType = 0x0012
	AttrData             AttrType = 0x0013
	AttrRealm            AttrType = 0x0014
	AttrNonce            AttrType = 0x0015
	AttrXORRelayedAddr   AttrType = 0x0016
	AttrReqAddrFamily    AttrType = 0x0017
	AttrEvenPort         AttrType = 0x0018
	AttrReqTransport     AttrType = 0x0019
	AttrDontFragment     AttrType = 0x001A
	AttrReservationToken AttrType = 0x0022
	AttrPriority         AttrType = 0x0024
	AttrUseCandidate     AttrType = 0x0025
	AttrXORMappedAddress AttrType = 0x0020
	AttrSoftware         AttrType = 0x8022
	AttrAlternateServer  AttrType = 0x8023
	AttrFingerprint      AttrType = 0x8028 // handled by the Message Codec, not dispatched here
	AttrICEControlled    AttrType = 0x8029
	AttrICEControlling   AttrType = 0x802A
	AttrConnectionID     AttrType = 0x002A
	// AttrXORMappedAddressVovida is the pre-RFC 5389 "Vovida" draft code for
	// XOR-MAPPED-ADDRESS, still emitted by some deployed servers alongside
	// the registered 0x0020 attribute.
	AttrXORMappedAddressVovida AttrType = 0x8020
)

//nolint:gochecknoglobals
var attrRegistry = map[AttrType]attrInfo{
	AttrMappedAddress:    {"mapped_address", ShapeAddress},
	AttrChangeRequest:    {"change_request", ShapeChangeRequest},
	AttrSourceAddress:    {"source_address", ShapeAddress},
	AttrChangedAddress:   {"changed_address", ShapeAddress},
	AttrUsername:         {"username", ShapeValue},
	AttrMessageIntegrity: {"message_integrity", ShapeValue},
	AttrErrorCode:        {"error_code", ShapeErrorCode},
	AttrUnknownAttrs:     {"unknown_attributes", ShapeValue},
	AttrChannelNumber:    {"channel_number", ShapeValue},
	AttrLifetime:         {"lifetime", ShapeValue},
	AttrXORPeerAddress:   {"xor_peer_address", ShapeXORAddress},
	AttrData:             {"data", ShapeValue},
	AttrRealm:            {"realm", ShapeValue},
	AttrNonce:            {"nonce", ShapeValue},
	AttrXORRelayedAddr:   {"xor_relayed_address", ShapeXORAddress},
	AttrReqAddrFamily:    {"requested_address_family", ShapeValue},
	AttrEvenPort:         {"even_port", ShapeValue},
	AttrReqTransport:     {"requested_transport", ShapeValue},
	AttrDontFragment:     {"dont_fragment", ShapeValue},
	AttrReservationToken: {"reservation_token", ShapeValue},
	AttrPriority:         {"priority", ShapeValue},
	AttrUseCandidate:     {"use_candidate", ShapeValue},
	AttrXORMappedAddress: {"xor_mapped_address", ShapeXORAddress},
	AttrSoftware:         {"software", ShapeValue},
	AttrAlternateServer:  {"alternate_server", ShapeAddress},
	AttrFingerprint:      {"fingerprint", ShapeValue},
	AttrICEControlled:    {"ice_controlled", ShapeValue},
	AttrICEControlling:   {"ice_controlling", ShapeValue},
	AttrConnectionID:     {"connection_id", ShapeValue},
	AttrXORMappedAddressVovida: {"x_vovida_xor_mapped_address", ShapeXORAddress},
}

// Name returns the registered attribute name, or a "0x..." fallback for
// unregistered codes (spec §4.2: unknown attributes pass through, they
// never fail decoding).
func (t AttrType) Name() string {
	if info, ok := attrRegistry[t]; ok {
		return info.name
	}
	return fmt.Sprintf("0x%04x", uint16(t))
}

func (t AttrType) String() string { return t.Name() }

// shape reports the registered dispatch shape for t, and whether t is
// registered at all.
func (t AttrType) shape() (Shape, bool) {
	info, ok := attrRegistry[t]
	if !ok {
		return ShapeValue, false
	}
	return info.shape, true
}

// Method is the 12-bit STUN method.
type Method uint16

// Methods named by spec §3/§6.
//
//nolint:gochecknoglobals
const (
	MethodBinding          Method = 0x001
	MethodAllocate         Method = 0x003
	MethodRefresh          Method = 0x004
	MethodSend             Method = 0x006
	MethodData             Method = 0x007
	MethodCreatePermission Method = 0x008
	MethodChannelBind      Method = 0x009
)

//nolint:gochecknoglobals
var methodRegistry = map[Method]string{
	MethodBinding:          "binding",
	MethodAllocate:         "allocate",
	MethodRefresh:          "refresh",
	MethodSend:             "send",
	MethodData:             "data",
	MethodCreatePermission: "create_permission",
	MethodChannelBind:      "channel_bind",
}

// Name returns the registered method name, or the raw hex value for
// unrecognized methods (never an error — see spec §7).
func (m Method) Name() string {
	if name, ok := methodRegistry[m]; ok {
		return name
	}
	return "0x" + strconv.FormatUint(uint64(m), 16)
}

func (m Method) String() string { return m.Name() }

// MessageClass is the 2-bit STUN message class.
type MessageClass byte

// Classes named by spec §3/§6.
//
//nolint:gochecknoglobals
const (
	ClassRequest    MessageClass = 0x00
	ClassIndication MessageClass = 0x01
	ClassSuccess    MessageClass = 0x02
	ClassError      MessageClass = 0x03
)

//nolint:gochecknoglobals
var classRegistry = map[MessageClass]string{
	ClassRequest:    "request",
	ClassIndication: "indication",
	ClassSuccess:    "success",
	ClassError:      "error",
}

func (c MessageClass) Name() string {
	if name, ok := classRegistry[c]; ok {
		return name
	}
	return fmt.Sprintf("0x%x", byte(c))
}

func (c MessageClass) String() string { return c.Name() }
