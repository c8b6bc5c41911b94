package registry

import (
	"sync"

	"github.com/pkg/errors"
)

// Registry is the stable ordering of interfaces (by 7-bit ordinal) and
// methods within each interface, per spec.md §4.B. A Registry is an
// explicit value — construct one with New and pass it to (or share it
// between) Endpoints; nothing here is a package-level singleton.
type Registry struct {
	mu        sync.RWMutex
	byOrdinal map[uint8]*InterfaceDescriptor
}

// New returns an empty Registry.
func New() *Registry {
	return &Registry{byOrdinal: make(map[uint8]*InterfaceDescriptor)}
}

// Register adds an interface descriptor to the registry. It is fatal
// (returns ErrDuplicateOrdinal) to register two interfaces under the
// same ordinal, and ErrInvalidOrdinal if the ordinal is outside 1..127.
// Each parameter is checked for a nullable flag combined with a
// self-tagging wire.Option[T] type (ErrSchemaViolation). Parameter and
// return types are not walked here; a composite type's field schema is
// built by Walk when EncodeStruct/DecodeStruct first handle a value.
func (r *Registry) Register(desc InterfaceDescriptor) error {
	if desc.Ordinal < 1 || desc.Ordinal > 127 {
		return errors.Wrapf(ErrInvalidOrdinal, "ordinal %d", desc.Ordinal)
	}

	for _, m := range desc.Methods {
		for _, p := range m.Parameters {
			if p.Nullable && IsOptionType(p.Type) {
				return errors.Wrapf(ErrSchemaViolation,
					"interface %q method %q parameter %q: nullable flag combined with self-tagging Option type would double-tag presence",
					desc.Name, m.Name, p.Name)
			}
		}
	}

	r.mu.Lock()
	defer r.mu.Unlock()
	if _, exists := r.byOrdinal[desc.Ordinal]; exists {
		return errors.Wrapf(ErrDuplicateOrdinal, "ordinal %d (interface %q)", desc.Ordinal, desc.Name)
	}
	cp := desc
	r.byOrdinal[desc.Ordinal] = &cp
	return nil
}

// Interface resolves an interface by its ordinal.
func (r *Registry) Interface(ordinal uint8) (*InterfaceDescriptor, bool) {
	r.mu.RLock()
	defer r.mu.RUnlock()
	d, ok := r.byOrdinal[ordinal]
	return d, ok
}

// Method resolves a method by interface ordinal and method index.
func (r *Registry) Method(ordinal uint8, index uint8) (*MethodDescriptor, bool) {
	d, ok := r.Interface(ordinal)
	if !ok {
		return nil, false
	}
	return d.Method(index)
}
