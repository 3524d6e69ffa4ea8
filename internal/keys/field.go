package keys

import (
	"fmt"
	"reflect"
)

// Field is a key bound to an addressable value through a pointer: a
// package-level var or a struct field reachable from a live instance.
// Get always succeeds; Set succeeds for assignable values and for
// conversions that cannot lose information.
type Field struct {
	declaringType string
	member        string
	target        reflect.Value
	binding       any
}

// BindField binds a key to the value behind ptr. The pointer doubles as
// the key's identity binding, so the same member bound on two instances
// yields two distinct keys.
func BindField(declaringType, member string, ptr any) (*Field, error) {
	if declaringType == "" || member == "" {
		return nil, fmt.Errorf("binding field: declaring type and member are required")
	}

	v := reflect.ValueOf(ptr)
	if v.Kind() != reflect.Pointer || v.IsNil() {
		return nil, fmt.Errorf("binding field %s.%s: target must be a non-nil pointer", declaringType, member)
	}

	return &Field{
		declaringType: declaringType,
		member:        member,
		target:        v.Elem(),
		binding:       ptr,
	}, nil
}

func (f *Field) Member() string          { return f.member }
func (f *Field) DeclaringType() string   { return f.declaringType }
func (f *Field) ValueType() reflect.Type { return f.target.Type() }

func (f *Field) ID() ID {
	return ID{
		DeclaringType: f.declaringType,
		Member:        f.member,
		Binding:       f.binding,
	}
}

func (f *Field) TryGet() (any, bool) {
	return f.target.Interface(), true
}

func (f *Field) TrySet(value any) bool {
	if value == nil {
		f.target.Set(reflect.Zero(f.target.Type()))
		return true
	}

	v := reflect.ValueOf(value)
	switch {
	case v.Type().AssignableTo(f.target.Type()):
		f.target.Set(v)
	case losslessConvertible(v.Type(), f.target.Type()):
		f.target.Set(v.Convert(f.target.Type()))
	default:
		return false
	}

	return true
}

// losslessConvertible limits the Convert fallback to conversions that
// cannot lose information: named types over the same kind, and numeric
// widening within the same class. int64 into int8 truncates and int
// into string reinterprets, so both are refused.
func losslessConvertible(from, to reflect.Type) bool {
	if !from.ConvertibleTo(to) {
		return false
	}

	fk, tk := from.Kind(), to.Kind()
	if fk == tk {
		return true
	}
	if numericClass(fk) == 0 || numericClass(fk) != numericClass(tk) {
		return false
	}
	return from.Bits() <= to.Bits()
}

func numericClass(k reflect.Kind) int {
	switch k {
	case reflect.Int, reflect.Int8, reflect.Int16, reflect.Int32, reflect.Int64:
		return 1
	case reflect.Uint, reflect.Uint8, reflect.Uint16, reflect.Uint32, reflect.Uint64, reflect.Uintptr:
		return 2
	case reflect.Float32, reflect.Float64:
		return 3
	default:
		return 0
	}
}
