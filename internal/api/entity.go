package api

import (
	"fmt"
	"reflect"
	"strings"

	"github.com/swcurran/toggl-cli/internal/errors"
)

// Schema is the ordered, immutable name → Field mapping of one entity type.
// It is assembled exactly once, when the type is defined, and referenced
// (never copied) by every instance of that type. After NewSchema returns it
// must not be mutated; concurrent readers need no synchronization.
type Schema struct {
	fields []Field
	byName map[string]Field
}

// NewSchema builds a schema from fields in declaration order. Duplicate
// names are a programming error and panic, matching the one-time
// registration at type definition.
func NewSchema(fields ...Field) *Schema {
	s := &Schema{
		fields: append([]Field(nil), fields...),
		byName: make(map[string]Field, len(fields)),
	}
	for _, f := range fields {
		if _, dup := s.byName[f.Name()]; dup {
			panic(fmt.Sprintf("api: duplicate field %q in schema", f.Name()))
		}
		s.byName[f.Name()] = f
	}
	return s
}

// Fields returns the declared fields in declaration order.
func (s *Schema) Fields() []Field {
	return s.fields
}

// Field returns the named field descriptor.
func (s *Schema) Field(name string) (Field, bool) {
	f, ok := s.byName[name]
	return f, ok
}

// Entity is one instance of a schema-described record. It holds only its
// field values; all access behavior lives in the shared Schema. Instances
// are not safe for concurrent mutation.
type Entity struct {
	schema  *Schema
	values  map[string]any
	written map[string]bool
}

func newEntity(schema *Schema) *Entity {
	return &Entity{
		schema:  schema,
		values:  map[string]any{},
		written: map[string]bool{},
	}
}

// New constructs an entity from typed field values. Every supplied value
// goes through Set with init=true, the only path allowed to give a read-only
// field its first value. A name the schema does not declare fails fast.
// Unsupplied fields keep their default without invoking the getter.
func New(schema *Schema, values map[string]any) (*Entity, error) {
	e := newEntity(schema)
	for name, v := range values {
		f, ok := schema.Field(name)
		if !ok {
			return nil, &errors.UnknownFieldError{Field: name}
		}
		if err := f.Set(e, v, true); err != nil {
			return nil, err
		}
	}
	e.applyDefaults(values)
	return e, nil
}

// Deserialize materializes an entity from wire values received from the
// remote store. Each value is converted by its field's Deserialize and then
// stored through the same init path as construction; required and write-once
// enforcement do not apply, the data is assumed valid upstream. Missing keys
// stay at their default.
func Deserialize(schema *Schema, raw map[string]any) (*Entity, error) {
	e := newEntity(schema)
	for name, rv := range raw {
		f, ok := schema.Field(name)
		if !ok {
			// Wire payloads may carry attributes this client does not
			// model; tolerate them on the way in.
			continue
		}
		v, err := f.Deserialize(rv)
		if err != nil {
			return nil, err
		}
		if err := f.Set(e, v, true); err != nil {
			return nil, err
		}
	}
	e.applyDefaults(raw)
	return e, nil
}

func (e *Entity) applyDefaults(supplied map[string]any) {
	for _, f := range e.schema.Fields() {
		if _, ok := supplied[f.Name()]; ok {
			continue
		}
		if def := f.Default(); def != nil {
			e.values[f.Name()] = def
		}
	}
}

// Schema returns the entity type's field schema.
func (e *Entity) Schema() *Schema {
	return e.schema
}

// Get returns the named field's value, or nil when unset.
func (e *Entity) Get(name string) (any, error) {
	f, ok := e.schema.Field(name)
	if !ok {
		return nil, &errors.UnknownFieldError{Field: name}
	}
	return f.Get(e, false)
}

// Set assigns the named field. Read-only and write-once violations surface
// here; init-time assignment goes through New or Deserialize instead.
func (e *Entity) Set(name string, value any) error {
	f, ok := e.schema.Field(name)
	if !ok {
		return &errors.UnknownFieldError{Field: name}
	}
	return f.Set(e, value, false)
}

// Validate checks that every required field holds a non-nil value, as the
// remote store demands before a record may be sent.
func (e *Entity) Validate() error {
	for _, f := range e.schema.Fields() {
		if !f.IsRequired() {
			continue
		}
		v, err := f.Get(e, false)
		if err != nil {
			return err
		}
		if v == nil {
			return &errors.ValidationError{Field: f.Name()}
		}
	}
	return nil
}

// SerializedValues returns field name → wire primitive for every declared
// field, unset fields included as nil.
func (e *Entity) SerializedValues() (map[string]any, error) {
	out := make(map[string]any, len(e.schema.fields))
	for _, f := range e.schema.Fields() {
		v, err := f.Get(e, true)
		if err != nil {
			return nil, err
		}
		out[f.Name()] = v
	}
	return out, nil
}

// Equal reports whether two entities of the same schema serialize to the
// same values. Identity never matters.
func (e *Entity) Equal(other *Entity) bool {
	if other == nil || e.schema != other.schema {
		return false
	}
	a, err := e.SerializedValues()
	if err != nil {
		return false
	}
	b, err := other.SerializedValues()
	if err != nil {
		return false
	}
	return reflect.DeepEqual(a, b)
}

// String renders the serialized field values in declaration order.
func (e *Entity) String() string {
	vals, err := e.SerializedValues()
	if err != nil {
		return fmt.Sprintf("entity(error: %v)", err)
	}
	parts := make([]string, 0, len(vals))
	for _, f := range e.schema.Fields() {
		parts = append(parts, fmt.Sprintf("%s=%v", f.Name(), vals[f.Name()]))
	}
	return "{" + strings.Join(parts, " ") + "}"
}
