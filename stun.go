// Package stun implements a Session Traversal Utilities for NAT (STUN)
// codec, as specified by RFC 5389, with awareness of RFC 3489
// MESSAGE-INTEGRITY and of TURN/ICE attribute extensions.
//
// The package is a pure, stateless encoder/decoder: it turns an opaque
// byte slice into a Message value and back. It does not open sockets,
// run timers, or keep any state beyond the compiled-in attribute/method/
// class registry (see registry.go), which is read-only after package
// init and safe for concurrent use from any number of goroutines.
//
// Definitions
//
// STUN Agent: an entity that implements the STUN protocol, either a STUN
// client or a STUN server.
//
// STUN Client: an entity that sends STUN requests and receives STUN
// responses. A STUN client can also send indications.
//
// STUN Server: an entity that receives STUN requests and sends STUN
// responses. A STUN server can also send indications.
//
// Transport Address: the combination of an IP address and port number.
package stun

import "encoding/binary"

// bin is shorthand to binary.BigEndian: STUN is a big-endian wire format.
var bin = binary.BigEndian //nolint:gochecknoglobals

// DefaultPort is the IANA assigned port for the "stun" protocol.
const DefaultPort = 3478

// DefaultTLSPort is the IANA assigned port for "stuns" (STUN over TLS/DTLS).
const DefaultTLSPort = 5349
