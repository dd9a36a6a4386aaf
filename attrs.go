package stun

// This file holds thin, typed convenience wrappers over the Attribute
// Codec: each gives a Go-native shape to one attribute, implementing
// Setter (AddTo) and Getter (GetFrom) so they compose with Message.Build
// and Message.Check. None of them are required reading the wire — Decoded
// already produces every attribute's Value — but they read better at call
// sites than repeated type assertions.

const (
	maxSoftwareBytes = 763
	maxUsernameBytes = 513
	maxRealmBytes    = 763
	maxNonceBytes    = 763
)

// ErrAttributeTooLong means a text attribute exceeded its RFC 5389 size cap.
const ErrAttributeTooLong Error = "stun: attribute value exceeds its maximum length"

// Software is the SOFTWARE attribute (RFC 5389 §15.10): a free-form
// description of the software in use, for diagnostics only.
type Software []byte

func NewSoftware(s string) Software { return Software(s) }

func (s Software) String() string { return string(s) }

func (s Software) AddTo(m *Message) error {
	if len(s) > maxSoftwareBytes {
		return ErrAttributeTooLong
	}
	m.Add(AttrSoftware, s)
	return nil
}

func (s *Software) GetFrom(m *Message) error {
	v, err := m.Get(AttrSoftware)
	if err != nil {
		return err
	}
	*s = v
	return nil
}

// Username is the USERNAME attribute (RFC 5389 §15.3).
type Username []byte

func NewUsername(u string) Username { return Username(u) }

func (u Username) String() string { return string(u) }

func (u Username) AddTo(m *Message) error {
	if len(u) > maxUsernameBytes {
		return ErrAttributeTooLong
	}
	m.Add(AttrUsername, u)
	return nil
}

func (u *Username) GetFrom(m *Message) error {
	v, err := m.Get(AttrUsername)
	if err != nil {
		return err
	}
	*u = v
	return nil
}

// Realm is the REALM attribute (RFC 5389 §15.7). Must already be
// SASL-prepared by the caller; this package performs no normalization.
type Realm []byte

func NewRealm(r string) Realm { return Realm(r) }

func (r Realm) String() string { return string(r) }

func (r Realm) AddTo(m *Message) error {
	if len(r) > maxRealmBytes {
		return ErrAttributeTooLong
	}
	m.Add(AttrRealm, r)
	return nil
}

func (r *Realm) GetFrom(m *Message) error {
	v, err := m.Get(AttrRealm)
	if err != nil {
		return err
	}
	*r = v
	return nil
}

// Nonce is the NONCE attribute (RFC 5389 §15.8).
type Nonce []byte

func NewNonce(n string) Nonce { return Nonce(n) }

func (n Nonce) String() string { return string(n) }

func (n Nonce) AddTo(m *Message) error {
	if len(n) > maxNonceBytes {
		return ErrAttributeTooLong
	}
	m.Add(AttrNonce, n)
	return nil
}

func (n *Nonce) GetFrom(m *Message) error {
	v, err := m.Get(AttrNonce)
	if err != nil {
		return err
	}
	*n = v
	return nil
}

// MappedAddress is the MAPPED-ADDRESS attribute (RFC 5389 §15.1).
type MappedAddress Address

func (a MappedAddress) AddTo(m *Message) error {
	m.Add(AttrMappedAddress, encodeAttribute(AttrMappedAddress, Address(a), m.TransactionID))
	return nil
}

func (a *MappedAddress) GetFrom(m *Message) error {
	raw, ok := m.Attributes.Get(AttrMappedAddress)
	if !ok {
		return ErrAttributeNotFound
	}
	v, err := decodePlainAddress(raw.Value)
	if err != nil {
		return err
	}
	*a = MappedAddress(v)
	return nil
}

// SourceAddress is the RFC 3489 §11.2.2 SOURCE-ADDRESS attribute: the
// server's own address as seen on the socket it received the request on.
// Obsoleted by RFC 5389 but still sent by deployed servers.
type SourceAddress Address

func (a SourceAddress) AddTo(m *Message) error {
	m.Add(AttrSourceAddress, encodeAttribute(AttrSourceAddress, Address(a), m.TransactionID))
	return nil
}

func (a *SourceAddress) GetFrom(m *Message) error {
	raw, ok := m.Attributes.Get(AttrSourceAddress)
	if !ok {
		return ErrAttributeNotFound
	}
	v, err := decodePlainAddress(raw.Value)
	if err != nil {
		return err
	}
	*a = SourceAddress(v)
	return nil
}

// ChangedAddress is the RFC 3489 §11.2.3 CHANGED-ADDRESS attribute: the
// address/port the server would use to respond from if the client's
// CHANGE-REQUEST asked it to change both. Obsoleted by RFC 5389, same
// status as SourceAddress.
type ChangedAddress Address

func (a ChangedAddress) AddTo(m *Message) error {
	m.Add(AttrChangedAddress, encodeAttribute(AttrChangedAddress, Address(a), m.TransactionID))
	return nil
}

func (a *ChangedAddress) GetFrom(m *Message) error {
	raw, ok := m.Attributes.Get(AttrChangedAddress)
	if !ok {
		return ErrAttributeNotFound
	}
	v, err := decodePlainAddress(raw.Value)
	if err != nil {
		return err
	}
	*a = ChangedAddress(v)
	return nil
}

// XORMappedAddress is the XOR-MAPPED-ADDRESS attribute (RFC 5389 §15.2).
type XORMappedAddress Address

func (a XORMappedAddress) AddTo(m *Message) error {
	m.Add(AttrXORMappedAddress, encodeXORAddress(Address(a), m.TransactionID))
	return nil
}

func (a *XORMappedAddress) GetFrom(m *Message) error {
	raw, ok := m.Attributes.Get(AttrXORMappedAddress)
	if !ok {
		return ErrAttributeNotFound
	}
	v, err := decodeXORAddress(raw.Value, m.TransactionID)
	if err != nil {
		return err
	}
	*a = XORMappedAddress(v)
	return nil
}

// XORMappedAddressVovida is the pre-RFC 5389 "Vovida" draft XOR-MAPPED-ADDRESS
// attribute (0x8020): same XOR framing as XORMappedAddress, different code.
type XORMappedAddressVovida Address

func (a XORMappedAddressVovida) AddTo(m *Message) error {
	m.Add(AttrXORMappedAddressVovida, encodeXORAddress(Address(a), m.TransactionID))
	return nil
}

func (a *XORMappedAddressVovida) GetFrom(m *Message) error {
	raw, ok := m.Attributes.Get(AttrXORMappedAddressVovida)
	if !ok {
		return ErrAttributeNotFound
	}
	v, err := decodeXORAddress(raw.Value, m.TransactionID)
	if err != nil {
		return err
	}
	*a = XORMappedAddressVovida(v)
	return nil
}

// ErrorCodeAttribute is the ERROR-CODE attribute (RFC 5389 §15.6).
type ErrorCodeAttribute struct {
	Code   int
	Reason []byte
}

func (e ErrorCodeAttribute) AddTo(m *Message) error {
	if e.Code < 300 || e.Code > 699 {
		return ErrErrorCodeOutOfRange
	}
	m.Add(AttrErrorCode, encodeErrorValue(ErrorValue(e)))
	return nil
}

func (e *ErrorCodeAttribute) GetFrom(m *Message) error {
	raw, ok := m.Attributes.Get(AttrErrorCode)
	if !ok {
		return ErrAttributeNotFound
	}
	v, err := decodeErrorValue(raw.Value)
	if err != nil {
		return err
	}
	*e = ErrorCodeAttribute(v)
	return nil
}

// ChangeRequest is the RFC 3489 §11.2.4 CHANGE-REQUEST attribute, used by
// the classic NAT-behavior-discovery Binding request.
type ChangeRequest ChangeRequestValue

func (c ChangeRequest) AddTo(m *Message) error {
	m.Add(AttrChangeRequest, encodeChangeRequest(ChangeRequestValue(c)))
	return nil
}

func (c *ChangeRequest) GetFrom(m *Message) error {
	raw, ok := m.Attributes.Get(AttrChangeRequest)
	if !ok {
		return ErrAttributeNotFound
	}
	v, err := decodeChangeRequest(raw.Value)
	if err != nil {
		return err
	}
	*c = ChangeRequest(v)
	return nil
}

// addUint32 and getUint32 factor the identical pack/unpack shape shared
// by the 4-byte Priority and Lifetime attributes.
func addUint32(m *Message, t AttrType, v uint32) {
	b := make([]byte, 4)
	bin.PutUint32(b, v)
	m.Add(t, b)
}

func getUint32(m *Message, t AttrType) (uint32, error) {
	v, err := m.Get(t)
	if err != nil {
		return 0, err
	}
	if len(v) != 4 {
		return 0, newDecodeError(t.Name(), "value is not 4 bytes")
	}
	return bin.Uint32(v), nil
}

// Priority is the ICE PRIORITY attribute (RFC 8445 §16.1).
type Priority uint32

func (p Priority) AddTo(m *Message) error { addUint32(m, AttrPriority, uint32(p)); return nil }

func (p *Priority) GetFrom(m *Message) error {
	v, err := getUint32(m, AttrPriority)
	if err != nil {
		return err
	}
	*p = Priority(v)
	return nil
}

// Lifetime is the TURN LIFETIME attribute (RFC 5766 §14.2), in seconds.
type Lifetime uint32

func (l Lifetime) AddTo(m *Message) error { addUint32(m, AttrLifetime, uint32(l)); return nil }

func (l *Lifetime) GetFrom(m *Message) error {
	v, err := getUint32(m, AttrLifetime)
	if err != nil {
		return err
	}
	*l = Lifetime(v)
	return nil
}

// ChannelNumber is the TURN CHANNEL-NUMBER attribute (RFC 5766 §14.1): a
// 16-bit channel number in the high bits, 16 reserved bits following.
type ChannelNumber uint16

func (c ChannelNumber) AddTo(m *Message) error {
	b := make([]byte, 4)
	bin.PutUint16(b[0:2], uint16(c))
	m.Add(AttrChannelNumber, b)
	return nil
}

func (c *ChannelNumber) GetFrom(m *Message) error {
	v, err := m.Get(AttrChannelNumber)
	if err != nil {
		return err
	}
	if len(v) != 4 {
		return newDecodeError("channel-number", "value is not 4 bytes")
	}
	*c = ChannelNumber(bin.Uint16(v[0:2]))
	return nil
}

// ReservationToken is the TURN RESERVATION-TOKEN attribute (RFC 5766
// §14.9): an 8-byte opaque token.
type ReservationToken []byte

func (r ReservationToken) AddTo(m *Message) error {
	if len(r) != 8 {
		return newDecodeError("reservation-token", "value is not 8 bytes")
	}
	m.Add(AttrReservationToken, r)
	return nil
}

func (r *ReservationToken) GetFrom(m *Message) error {
	v, err := m.Get(AttrReservationToken)
	if err != nil {
		return err
	}
	*r = v
	return nil
}

// flagAttr is the shared shape of the zero-length ICE flag attributes
// (USE-CANDIDATE): presence is the value, AddTo sets it and IsSet reports it.
type flagAttr struct{ t AttrType }

func (f flagAttr) addTo(m *Message) error {
	m.Add(f.t, nil)
	return nil
}

func (f flagAttr) isSet(m *Message) bool {
	_, ok := m.Attributes.Get(f.t)
	return ok
}

// UseCandidate is the ICE USE-CANDIDATE attribute (RFC 8445 §16.1): a
// zero-length flag.
type UseCandidate struct{}

func (UseCandidate) AddTo(m *Message) error { return flagAttr{AttrUseCandidate}.addTo(m) }

// IsSet reports whether m carries USE-CANDIDATE.
func (UseCandidate) IsSet(m *Message) bool { return flagAttr{AttrUseCandidate}.isSet(m) }

// ICEControlled is the ICE-CONTROLLED attribute (RFC 8445 §16.1): an
// 8-byte tiebreaker value carried by the controlled agent.
type ICEControlled uint64

func (c ICEControlled) AddTo(m *Message) error {
	b := make([]byte, 8)
	bin.PutUint64(b, uint64(c))
	m.Add(AttrICEControlled, b)
	return nil
}

func (c *ICEControlled) GetFrom(m *Message) error {
	v, err := m.Get(AttrICEControlled)
	if err != nil {
		return err
	}
	if len(v) != 8 {
		return newDecodeError("ice-controlled", "value is not 8 bytes")
	}
	*c = ICEControlled(bin.Uint64(v))
	return nil
}

// ICEControlling is the ICE-CONTROLLING attribute (RFC 8445 §16.1): the
// controlling agent's counterpart to ICEControlled.
type ICEControlling uint64

func (c ICEControlling) AddTo(m *Message) error {
	b := make([]byte, 8)
	bin.PutUint64(b, uint64(c))
	m.Add(AttrICEControlling, b)
	return nil
}

func (c *ICEControlling) GetFrom(m *Message) error {
	v, err := m.Get(AttrICEControlling)
	if err != nil {
		return err
	}
	if len(v) != 8 {
		return newDecodeError("ice-controlling", "value is not 8 bytes")
	}
	*c = ICEControlling(bin.Uint64(v))
	return nil
}
