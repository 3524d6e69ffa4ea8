// Package container is the attribute-free alternative to per-key
// registration: every exported field of a struct instance is saved and
// loaded as one batch, keyed by the owner, the struct type name, an
// optional instance suffix, and the field name.
//
// Per-field behavior is controlled by the `modsave` struct tag:
//
//	Score   int  `modsave:"omitdefault"` // skip save while zero
//	Cache   *T   `modsave:"omitnil"`     // skip save while nil
//	Derived int  `modsave:"nosave"`      // loaded, never saved
//	Seed    int  `modsave:"noload"`      // saved, never restored
//	Scratch int  `modsave:"-"`           // never touched
//
// An absent or empty tag means the field participates normally.
package container

import (
	"fmt"
	"reflect"
	"strings"

	"github.com/pixil98/go-errors"
	"github.com/pixil98/go-modsave/internal/persist"
	"github.com/pixil98/go-modsave/internal/registry"
)

const tagName = "modsave"

// Base can be embedded to carry a per-instance suffix with the data it
// disambiguates. The field itself is never persisted.
type Base struct {
	Suffix string `modsave:"-"`
}

// Hooks a container struct may implement. PreLoad/PostLoad bracket the
// batch for validation, e.g. re-initializing a nil collection after a
// partial load.
type (
	PreSaver   interface{ PreSave() }
	PostSaver  interface{ PostSave() }
	PreLoader  interface{ PreLoad() }
	PostLoader interface{ PostLoad() }
)

type Option func(*batch)

// WithSuffix overrides the instance suffix, taking precedence over an
// embedded Base.
func WithSuffix(suffix string) Option {
	return func(b *batch) { b.suffix = suffix }
}

// WithTarget selects the store; the default is the current save.
func WithTarget(target registry.StoreTarget) Option {
	return func(b *batch) { b.target = target }
}

// Save persists every eligible exported field of v, a non-nil pointer
// to struct. Failed fields are collected; the rest of the batch still
// writes.
func Save(acc *persist.Accessor, owner string, v any, opts ...Option) error {
	b, err := newBatch(owner, v, opts)
	if err != nil {
		return err
	}

	if h, ok := v.(PreSaver); ok {
		h.PreSave()
	}

	el := errors.NewErrorList()
	b.forEachField(func(key string, field reflect.Value, rule tagRule) {
		if rule.noSave {
			return
		}
		if rule.omitNil && isNil(field) {
			return
		}
		if rule.omitDefault && field.IsZero() {
			return
		}

		if !acc.Save(field.Interface(), key, b.target, owner, false) {
			el.Add(fmt.Errorf("saving %s", key))
		}
	})

	if h, ok := v.(PostSaver); ok {
		h.PostSave()
	}

	return el.Err()
}

// Load restores every eligible exported field of v in place. Absent
// keys leave the field's current value untouched.
func Load(acc *persist.Accessor, owner string, v any, opts ...Option) error {
	b, err := newBatch(owner, v, opts)
	if err != nil {
		return err
	}

	if h, ok := v.(PreLoader); ok {
		h.PreLoad()
	}

	el := errors.NewErrorList()
	b.forEachField(func(key string, field reflect.Value, rule tagRule) {
		if rule.noLoad {
			return
		}

		out := reflect.New(field.Type())
		if !acc.Load(key, b.target, out.Interface(), owner, false) {
			return
		}

		if !field.CanSet() {
			el.Add(fmt.Errorf("loading %s: field is not settable", key))
			return
		}
		field.Set(out.Elem())
	})

	if h, ok := v.(PostLoader); ok {
		h.PostLoad()
	}

	return el.Err()
}

type batch struct {
	owner  string
	suffix string
	target registry.StoreTarget
	val    reflect.Value
}

func newBatch(owner string, v any, opts []Option) (*batch, error) {
	if owner == "" {
		return nil, fmt.Errorf("owner is required")
	}

	rv := reflect.ValueOf(v)
	if rv.Kind() != reflect.Pointer || rv.IsNil() || rv.Elem().Kind() != reflect.Struct {
		return nil, fmt.Errorf("container must be a non-nil pointer to struct")
	}

	b := &batch{
		owner:  owner,
		target: registry.TargetCurrentSave,
		val:    rv.Elem(),
	}

	// An embedded Base supplies the instance suffix unless an option
	// overrides it.
	if base, ok := v.(interface{ baseSuffix() string }); ok {
		b.suffix = base.baseSuffix()
	}

	for _, opt := range opts {
		opt(b)
	}

	return b, nil
}

func (b *Base) baseSuffix() string { return b.Suffix }

func (b *batch) forEachField(fn func(key string, field reflect.Value, rule tagRule)) {
	t := b.val.Type()
	for i := range t.NumField() {
		sf := t.Field(i)

		if !sf.IsExported() {
			continue
		}
		// The embedded Base is control state, never data.
		if sf.Anonymous && sf.Type == reflect.TypeFor[Base]() {
			continue
		}

		rule := parseTag(sf.Tag.Get(tagName))
		if rule.skip {
			continue
		}

		fn(b.fieldKey(t.Name(), sf.Name), b.val.Field(i), rule)
	}
}

func (b *batch) fieldKey(typeName, fieldName string) string {
	if b.suffix != "" {
		return b.owner + "." + typeName + "." + b.suffix + "." + fieldName
	}
	return b.owner + "." + typeName + "." + fieldName
}

type tagRule struct {
	skip        bool
	noSave      bool
	noLoad      bool
	omitNil     bool
	omitDefault bool
}

func parseTag(tag string) tagRule {
	var r tagRule
	if tag == "" {
		return r
	}
	if tag == "-" {
		r.skip = true
		return r
	}

	for _, part := range strings.Split(tag, ",") {
		switch part {
		case "nosave":
			r.noSave = true
		case "noload":
			r.noLoad = true
		case "omitnil":
			r.omitNil = true
		case "omitdefault":
			r.omitDefault = true
		}
	}
	return r
}

func isNil(v reflect.Value) bool {
	switch v.Kind() {
	case reflect.Pointer, reflect.Map, reflect.Slice, reflect.Interface, reflect.Func, reflect.Chan:
		return v.IsNil()
	default:
		return false
	}
}
