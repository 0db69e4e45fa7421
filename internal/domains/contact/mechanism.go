package contact

import (
	"encoding/json"
	"fmt"
	"strings"
)

// Mechanism is an immutable value attachable to a contact: a phone number,
// an email address, or a mail address.
type Mechanism interface {
	HashedItem
}

// ContactMechanism pairs a mechanism with the Kind slot it occupies. It is
// the wire form of one sub-map entry.
type ContactMechanism struct {
	Type      Kind
	Mechanism Mechanism
}

type mechanismWire struct {
	Type      string          `json:"type"`
	Mechanism json.RawMessage `json:"mechanism"`
}

// mechanismPayload is the superset of the three mechanism payload shapes,
// used to decide which arm of the union a payload belongs to.
type mechanismPayload struct {
	Value  *string `json:"value"`
	Street *string `json:"street"`
	Office *string `json:"office"`
	City   *string `json:"city"`
	State  *string `json:"state"`
	Zip    *string `json:"zip"`
}

func (m ContactMechanism) MarshalJSON() ([]byte, error) {
	raw, err := json.Marshal(m.Mechanism)
	if err != nil {
		return nil, err
	}
	return json.Marshal(mechanismWire{Type: string(m.Type), Mechanism: raw})
}

// UnmarshalJSON bins a payload by shape: address fields mean a mail
// address, a value with '@' means an email, any other value a phone.
func (m *ContactMechanism) UnmarshalJSON(data []byte) error {
	var wire mechanismWire
	if err := json.Unmarshal(data, &wire); err != nil {
		return err
	}
	kind, err := ParseKind(wire.Type)
	if err != nil {
		return err
	}

	var payload mechanismPayload
	if err := json.Unmarshal(wire.Mechanism, &payload); err != nil {
		return err
	}

	switch {
	case payload.Street != nil || payload.City != nil || payload.State != nil || payload.Zip != nil:
		address := &MailAddress{}
		if err := json.Unmarshal(wire.Mechanism, address); err != nil {
			return err
		}
		m.Mechanism = address
	case payload.Value != nil && strings.Contains(*payload.Value, "@"):
		email := &EmailAddress{}
		if err := json.Unmarshal(wire.Mechanism, email); err != nil {
			return err
		}
		m.Mechanism = email
	case payload.Value != nil:
		phone := &PhoneNumber{}
		if err := json.Unmarshal(wire.Mechanism, phone); err != nil {
			return err
		}
		m.Mechanism = phone
	default:
		return fmt.Errorf("unrecognized contact mechanism payload")
	}
	m.Type = kind
	return nil
}
