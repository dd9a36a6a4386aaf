package stun

import (
	"crypto/md5" //nolint:gosec
	"crypto/sha1"
	"crypto/subtle"
	"fmt"
	"strings"

	"github.com/stunkit/stun/internal/hmac"
)

// This file implements MESSAGE-INTEGRITY (RFC 5389 §15.4): an HMAC-SHA1
// over the message up to (but excluding) the MESSAGE-INTEGRITY attribute
// itself, computed with the header length field temporarily rewritten to
// include the attribute that is about to be appended (spec §4.4).

const credentialsSep = ":"

// MessageIntegrity is the key bytes used to key the HMAC-SHA1 that AddTo
// and Check compute; it is not itself the MAC value.
type MessageIntegrity []byte

// NewLongTermIntegrity derives a MessageIntegrity key from long-term
// credentials: MD5(username ":" realm ":" password), per RFC 5389 §15.4.
// username, realm and password must already be SASL-prepared.
func NewLongTermIntegrity(username, realm, password string) MessageIntegrity {
	k := strings.Join([]string{username, realm, password}, credentialsSep)
	h := md5.New() //nolint:gosec
	fmt.Fprint(h, k)
	return MessageIntegrity(h.Sum(nil))
}

// NewShortTermIntegrity derives a MessageIntegrity key from a short-term
// credential: the password itself, per RFC 5389 §15.4.
func NewShortTermIntegrity(password string) MessageIntegrity {
	return MessageIntegrity(password)
}

func (i MessageIntegrity) String() string { return fmt.Sprintf("KEY: 0x%x", []byte(i)) }

const messageIntegritySize = sha1.Size

func newHMAC(key, message, buf []byte) []byte {
	mac := hmac.AcquireSHA1(key)
	if _, err := mac.Write(message); err != nil {
		panic(err)
	}
	defer hmac.PutSHA1(mac)
	return mac.Sum(buf)
}

// AddTo appends a MESSAGE-INTEGRITY attribute to msg, computed over
// everything already written to msg.Raw. It refuses to run after
// FINGERPRINT has been added, since FINGERPRINT must be the last
// attribute (spec §4.4).
func (i MessageIntegrity) AddTo(msg *Message) error {
	if _, ok := msg.Attributes.Get(AttrFingerprint); ok {
		return ErrFingerprintBeforeIntegrity
	}

	length := msg.Length
	msg.Length += messageIntegritySize + attributeHeaderSize
	msg.WriteLength()
	mac := newHMAC(i, msg.Raw, nil)
	msg.Length = length
	msg.WriteLength()

	msg.Add(AttrMessageIntegrity, mac)
	return nil
}

// Check verifies a MESSAGE-INTEGRITY attribute already present in msg,
// recomputing the HMAC over the bytes that preceded it. Returns
// ErrAttributeNotFound if absent, *IntegrityMismatch if the MACs disagree.
func (i MessageIntegrity) Check(msg *Message) error {
	attr, ok := msg.Attributes.Get(AttrMessageIntegrity)
	if !ok {
		return ErrAttributeNotFound
	}

	length := msg.Length
	var sizeReduced uint32
	afterIntegrity := false
	for _, a := range msg.Attributes {
		if afterIntegrity {
			sizeReduced += uint32(nearestPaddedValueLength(int(a.Length)) + attributeHeaderSize) //nolint:gosec
		}
		if a.Type == AttrMessageIntegrity {
			afterIntegrity = true
		}
	}
	msg.Length -= sizeReduced
	msg.WriteLength()
	startOfHMAC := messageHeaderSize + int(msg.Length) - (attributeHeaderSize + messageIntegritySize)
	expected := newHMAC(i, msg.Raw[:startOfHMAC], nil)
	msg.Length = length
	msg.WriteLength()

	if len(attr.Value) != len(expected) || subtle.ConstantTimeCompare(attr.Value, expected) != 1 {
		return &IntegrityMismatch{}
	}
	return nil
}
