package keys

import "reflect"

// Property is a key backed by an explicit getter/setter pair. Either
// side may be nil: a nil getter fails TryGet, a nil setter fails TrySet.
// Callers treat a missing setter as a silent skip since read-only
// properties are routinely listed for save without load-restore.
type Property struct {
	declaringType string
	member        string
	valueType     reflect.Type
	binding       any
	get           func() any
	set           func(any) bool
}

// NewProperty builds a property key. binding distinguishes instances of
// the same declaring type; pass nil for static properties.
func NewProperty[T any](declaringType, member string, binding any, get func() T, set func(T)) *Property {
	p := &Property{
		declaringType: declaringType,
		member:        member,
		valueType:     reflect.TypeFor[T](),
		binding:       binding,
	}

	if get != nil {
		p.get = func() any { return get() }
	}
	if set != nil {
		p.set = func(value any) bool {
			t, ok := value.(T)
			if !ok {
				return false
			}
			set(t)
			return true
		}
	}

	return p
}

func (p *Property) Member() string          { return p.member }
func (p *Property) DeclaringType() string   { return p.declaringType }
func (p *Property) ValueType() reflect.Type { return p.valueType }

func (p *Property) ID() ID {
	return ID{
		DeclaringType: p.declaringType,
		Member:        p.member,
		Binding:       p.binding,
	}
}

func (p *Property) TryGet() (any, bool) {
	if p.get == nil {
		return nil, false
	}
	return p.get(), true
}

func (p *Property) TrySet(value any) bool {
	if p.set == nil {
		return false
	}
	return p.set(value)
}
