package keys

import "reflect"

// ID identifies a key inside a registry. Two bindings of the same member
// on distinct instances compare unequal because Binding differs.
type ID struct {
	DeclaringType string
	Member        string
	Binding       any
}

// Key is a reference to a single named, typed storage slot. TryGet and
// TrySet report failure instead of erroring: a property without an
// accessor is an expected shape, not a fault.
type Key interface {
	Member() string
	DeclaringType() string
	ValueType() reflect.Type
	TryGet() (any, bool)
	TrySet(any) bool
	ID() ID
}
