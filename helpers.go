package stun

// Setter sets an attribute on a *Message being built.
type Setter interface {
	AddTo(m *Message) error
}

// Getter decodes an attribute from a *Message.
type Getter interface {
	GetFrom(m *Message) error
}

// Checker verifies something about a *Message (e.g. a trailer).
type Checker interface {
	Check(m *Message) error
}

// Build resets m, sets its class and method, assigns a random transaction
// ID if m has none (a non-zero TransactionID is kept), writes the header,
// and applies setters in order. Convenient for assembling a message from
// the typed attribute wrappers in attrs.go.
func (m *Message) Build(class MessageClass, method Method, setters ...Setter) error {
	m.Reset()
	m.Class = class
	m.Method = method
	if m.TransactionID == ([TransactionIDSize]byte{}) {
		m.TransactionID = NewTransactionID()
	}
	m.WriteHeader()
	for _, s := range setters {
		if err := s.AddTo(m); err != nil {
			return err
		}
	}
	m.WriteHeader()
	return nil
}

// Check runs each checker against m, stopping at the first error.
func (m *Message) Check(checkers ...Checker) error {
	for _, c := range checkers {
		if err := c.Check(m); err != nil {
			return err
		}
	}
	return nil
}

// BuildMessage is a free-function convenience wrapper around Build.
func BuildMessage(class MessageClass, method Method, setters ...Setter) (*Message, error) {
	m := New()
	return m, m.Build(class, method, setters...)
}
