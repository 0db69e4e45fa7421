package contact

import (
	"encoding/json"

	validation "github.com/go-ozzo/ozzo-validation/v4"
)

// ItemPart is a single-attribute update request against a contact: the
// owning contact's name plus a [type, kind, value] description. A part of
// type "name" creates the contact itself and carries no kind or value.
type ItemPart struct {
	Name        string   `json:"name"`
	Description []string `json:"description"`
}

// NewContactPart describes creation of a contact with just a name.
func NewContactPart(name string) ItemPart {
	return ItemPart{Name: name, Description: []string{string(IDName)}}
}

// NewPart describes attachment of a mechanism value to a named contact.
func NewPart(name string, idType IDType, kind Kind, value string) ItemPart {
	return ItemPart{Name: name, Description: []string{string(idType), string(kind), value}}
}

func (p ItemPart) PartType() (IDType, error) {
	if len(p.Description) == 0 {
		return "", ErrInvalidPart
	}
	return ParseIDType(p.Description[0])
}

func (p ItemPart) Kind() (Kind, error) {
	if len(p.Description) < 2 {
		return "", ErrInvalidPart
	}
	return ParseKind(p.Description[1])
}

func (p ItemPart) Value() string {
	if len(p.Description) < 3 {
		return ""
	}
	return p.Description[2]
}

// Validate checks the request structure; value well-formedness is left to
// the mechanism validators.
func (p ItemPart) Validate() error {
	return validation.ValidateStruct(&p,
		validation.Field(&p.Name, validation.Required, validation.Length(2, 100)),
		validation.Field(&p.Description, validation.Required, validation.Length(1, 3)),
	)
}

func (p ItemPart) String() string {
	raw, _ := json.Marshal(p)
	return string(raw)
}
