// Package api is the client-side model layer for the Toggl time-tracking
// service. It defines schema-described records (entities) built from field
// descriptors, the time entry with its duration sign-encoded lifecycle, and
// the lazily-populated reference lists the CLI resolves names against.
package api

import (
	"time"

	"github.com/swcurran/toggl-cli/internal/errors"
	"github.com/swcurran/toggl-cli/internal/timeutil"
)

// Getter produces the value of a named field on an entity. When serializing
// is true the result must be a wire-safe primitive.
type Getter func(name string, e *Entity, serializing bool) (any, error)

// Setter stores a value for a named field on an entity. init is true only on
// the construction and deserialization paths.
type Setter func(name string, e *Entity, value any, init bool) error

// Validator checks a candidate value before it is stored.
type Validator func(value any) error

// Field is a descriptor governing access, validation and wire
// (de)serialization for one named attribute of an entity type. A Field is
// owned by the type's Schema and shared by every instance; it holds no
// per-instance state.
type Field interface {
	Name() string
	IsRequired() bool
	IsReadOnly() bool
	IsWriteOnce() bool
	Default() any

	// Get returns the field's value on e. When serializing is true the
	// value is converted to a wire-safe primitive.
	Get(e *Entity, serializing bool) (any, error)
	// Set validates and stores value on e. Assigning to a read-only field
	// fails unless init is true; init is the only path that may supply a
	// read-only field's first value.
	Set(e *Entity, value any, init bool) error
	// Validate checks the value against the field's type contract.
	Validate(value any) error
	// Serialize converts a stored value to its wire representation.
	Serialize(value any) (any, error)
	// Deserialize converts a wire value back to the stored representation.
	Deserialize(raw any) (any, error)
}

// DefaultGetter reads the field's per-instance slot.
func DefaultGetter(name string, e *Entity, serializing bool) (any, error) {
	return e.values[name], nil
}

// DefaultSetter writes the field's per-instance slot. A nil value clears it.
func DefaultSetter(name string, e *Entity, value any, init bool) error {
	if value == nil {
		delete(e.values, name)
		return nil
	}
	e.values[name] = value
	return nil
}

// FieldOptions configures a PropertyField. Zero value means a plain
// slot-backed, optional, writable field.
type FieldOptions struct {
	Required  bool
	ReadOnly  bool
	WriteOnce bool
	Default   any
	Getter    Getter
	Setter    Setter
	Validator Validator
}

// PropertyField is the generic field variant: storage backed by a
// per-instance slot unless custom accessors are supplied.
type PropertyField struct {
	name      string
	required  bool
	readOnly  bool
	writeOnce bool
	def       any
	getter    Getter
	setter    Setter
	validator Validator
}

// NewPropertyField creates a generic field descriptor.
func NewPropertyField(name string, opts FieldOptions) *PropertyField {
	getter := opts.Getter
	if getter == nil {
		getter = DefaultGetter
	}
	setter := opts.Setter
	if setter == nil {
		setter = DefaultSetter
	}
	return &PropertyField{
		name:      name,
		required:  opts.Required,
		readOnly:  opts.ReadOnly,
		writeOnce: opts.WriteOnce,
		def:       opts.Default,
		getter:    getter,
		setter:    setter,
		validator: opts.Validator,
	}
}

func (f *PropertyField) Name() string      { return f.name }
func (f *PropertyField) IsRequired() bool  { return f.required }
func (f *PropertyField) IsReadOnly() bool  { return f.readOnly }
func (f *PropertyField) IsWriteOnce() bool { return f.writeOnce }
func (f *PropertyField) Default() any      { return f.def }

func (f *PropertyField) Get(e *Entity, serializing bool) (any, error) {
	v, err := f.getter(f.name, e, serializing)
	if err != nil {
		return nil, err
	}
	if serializing {
		return f.Serialize(v)
	}
	return v, nil
}

func (f *PropertyField) Set(e *Entity, value any, init bool) error {
	if err := checkAccess(f, e, init); err != nil {
		return err
	}
	if value != nil {
		if err := f.Validate(value); err != nil {
			return err
		}
	}
	if err := f.setter(f.name, e, value, init); err != nil {
		return err
	}
	if value != nil {
		e.written[f.name] = true
	}
	return nil
}

func (f *PropertyField) Validate(value any) error {
	if f.validator == nil {
		return nil
	}
	return f.validator(value)
}

func (f *PropertyField) Serialize(value any) (any, error) {
	return value, nil
}

func (f *PropertyField) Deserialize(raw any) (any, error) {
	return raw, nil
}

// DateTimeField holds a time.Time and marshals it to an ISO-8601 string on
// the wire. Any other value type is a type mismatch.
type DateTimeField struct {
	name      string
	required  bool
	readOnly  bool
	writeOnce bool
}

// NewDateTimeField creates a date-time field descriptor. Custom accessors are
// not supported; the value is always slot-backed.
func NewDateTimeField(name string, opts FieldOptions) *DateTimeField {
	return &DateTimeField{
		name:      name,
		required:  opts.Required,
		readOnly:  opts.ReadOnly,
		writeOnce: opts.WriteOnce,
	}
}

func (f *DateTimeField) Name() string      { return f.name }
func (f *DateTimeField) IsRequired() bool  { return f.required }
func (f *DateTimeField) IsReadOnly() bool  { return f.readOnly }
func (f *DateTimeField) IsWriteOnce() bool { return f.writeOnce }
func (f *DateTimeField) Default() any      { return nil }

func (f *DateTimeField) Get(e *Entity, serializing bool) (any, error) {
	v, err := DefaultGetter(f.name, e, serializing)
	if err != nil {
		return nil, err
	}
	if serializing {
		return f.Serialize(v)
	}
	return v, nil
}

func (f *DateTimeField) Set(e *Entity, value any, init bool) error {
	if err := checkAccess(f, e, init); err != nil {
		return err
	}
	if value != nil {
		if err := f.Validate(value); err != nil {
			return err
		}
	}
	if err := DefaultSetter(f.name, e, value, init); err != nil {
		return err
	}
	if value != nil {
		e.written[f.name] = true
	}
	return nil
}

func (f *DateTimeField) Validate(value any) error {
	if _, ok := value.(time.Time); !ok {
		return &errors.TypeMismatchError{Field: f.name, Want: "time.Time", Value: value}
	}
	return nil
}

func (f *DateTimeField) Serialize(value any) (any, error) {
	if value == nil {
		return nil, nil
	}
	t, ok := value.(time.Time)
	if !ok {
		return nil, &errors.TypeMismatchError{Field: f.name, Want: "time.Time", Value: value}
	}
	return timeutil.FormatISO(t), nil
}

func (f *DateTimeField) Deserialize(raw any) (any, error) {
	if raw == nil {
		return nil, nil
	}
	s, ok := raw.(string)
	if !ok {
		return nil, &errors.TypeMismatchError{Field: f.name, Want: "ISO-8601 string", Value: raw}
	}
	t, err := timeutil.ParseISO(s)
	if err != nil {
		return nil, err
	}
	return t, nil
}

// checkAccess enforces the read-only and write-once contracts shared by all
// field variants. init bypasses read-only (first value at construction) and
// write-once (trusted deserialization path).
func checkAccess(f Field, e *Entity, init bool) error {
	if init {
		return nil
	}
	if f.IsReadOnly() {
		return &errors.ReadOnlyError{Field: f.Name()}
	}
	if f.IsWriteOnce() && e.written[f.Name()] {
		return &errors.WriteOnceError{Field: f.Name()}
	}
	return nil
}
