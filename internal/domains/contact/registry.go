package contact

// Registry maps each entity type to its persistence gateway. The container
// populates one at boot and freezes it behind Use; entities reach their
// store through Stores without holding a repository reference.
type Registry struct {
	Contacts  ContactStorage
	Phones    PhoneStorage
	Emails    EmailStorage
	Addresses AddressStorage
}

var stores *Registry

// Use installs the process-wide registry. Call once during boot, before
// any request is served; the registry is read-only afterwards.
func Use(r *Registry) { stores = r }

// Stores returns the registry installed at boot.
func Stores() *Registry {
	if stores == nil {
		panic("contact: storage registry not installed")
	}
	return stores
}
