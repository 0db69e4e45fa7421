package contact

import "fmt"

// Kind is the slot discriminator inside a contact's mechanism maps.
type Kind string

const (
	KindHome     Kind = "HOME"
	KindWork     Kind = "WORK"
	KindMobile   Kind = "MOBILE"
	KindBilling  Kind = "BILLING"
	KindShipping Kind = "SHIPPING"
)

// PhoneKinds, EmailKinds and AddressKinds list the kinds each mechanism
// type accepts at the API surface. The maps themselves accept any Kind.
var (
	PhoneKinds   = []Kind{KindHome, KindWork, KindMobile}
	EmailKinds   = []Kind{KindHome, KindWork}
	AddressKinds = []Kind{KindHome, KindWork, KindBilling, KindShipping}
)

func ParseKind(s string) (Kind, error) {
	switch Kind(s) {
	case KindHome, KindWork, KindMobile, KindBilling, KindShipping:
		return Kind(s), nil
	}
	return "", fmt.Errorf("unknown contact kind %q", s)
}

// IDType identifies a kind of contact ID used by hash-based lookup,
// hash-based delete, and part creation.
type IDType string

const (
	IDName  IDType = "name"
	IDEmail IDType = "email"
	IDPhone IDType = "phone"
	IDMail  IDType = "mail"
)

func ParseIDType(s string) (IDType, error) {
	switch IDType(s) {
	case IDName, IDEmail, IDPhone, IDMail:
		return IDType(s), nil
	}
	return "", fmt.Errorf("unknown contact ID type %q", s)
}
