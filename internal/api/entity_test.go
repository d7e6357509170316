package api

import (
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/swcurran/toggl-cli/internal/errors"
)

func testSchema() *Schema {
	return NewSchema(
		NewPropertyField("id", FieldOptions{ReadOnly: true}),
		NewPropertyField("name", FieldOptions{Required: true}),
		NewPropertyField("active", FieldOptions{Default: true}),
	)
}

func TestSchemaDeclarationOrder(t *testing.T) {
	schema := testSchema()

	names := []string{}
	for _, f := range schema.Fields() {
		names = append(names, f.Name())
	}
	assert.Equal(t, []string{"id", "name", "active"}, names)
}

func TestSchemaDuplicateFieldPanics(t *testing.T) {
	assert.Panics(t, func() {
		NewSchema(
			NewPropertyField("name", FieldOptions{}),
			NewPropertyField("name", FieldOptions{}),
		)
	})
}

func TestNewUnknownFieldFailsFast(t *testing.T) {
	_, err := New(testSchema(), map[string]any{"nope": 1})

	var ue *errors.UnknownFieldError
	require.ErrorAs(t, err, &ue)
	assert.Equal(t, "nope", ue.Field)
}

func TestNewAppliesDefaults(t *testing.T) {
	e, err := New(testSchema(), map[string]any{"name": "acme"})
	require.NoError(t, err)

	v, err := e.Get("active")
	require.NoError(t, err)
	assert.Equal(t, true, v)

	v, err = e.Get("id")
	require.NoError(t, err)
	assert.Nil(t, v)
}

func TestEntityValidateRequired(t *testing.T) {
	e, err := New(testSchema(), nil)
	require.NoError(t, err)

	err = e.Validate()
	var ve *errors.ValidationError
	require.ErrorAs(t, err, &ve)
	assert.Equal(t, "name", ve.Field)

	require.NoError(t, e.Set("name", "acme"))
	assert.NoError(t, e.Validate())
}

func TestDeserializeSkipsRequiredEnforcement(t *testing.T) {
	// Records from the remote store are assumed valid upstream; a missing
	// required field is not an error on this path.
	e, err := Deserialize(testSchema(), map[string]any{"id": int64(7)})
	require.NoError(t, err)

	v, err := e.Get("id")
	require.NoError(t, err)
	assert.Equal(t, int64(7), v)
}

func TestDeserializeToleratesUnknownWireKeys(t *testing.T) {
	e, err := Deserialize(testSchema(), map[string]any{
		"name":     "acme",
		"billable": true,
	})
	require.NoError(t, err)

	v, err := e.Get("name")
	require.NoError(t, err)
	assert.Equal(t, "acme", v)
}

func TestEntityEqualityBySerializedValues(t *testing.T) {
	schema := testSchema()
	a, err := New(schema, map[string]any{"name": "acme"})
	require.NoError(t, err)
	b, err := New(schema, map[string]any{"name": "acme"})
	require.NoError(t, err)
	c, err := New(schema, map[string]any{"name": "other"})
	require.NoError(t, err)

	assert.True(t, a.Equal(b))
	assert.False(t, a.Equal(c))
	assert.False(t, a.Equal(nil))
}

func TestEntityString(t *testing.T) {
	e, err := New(testSchema(), map[string]any{"name": "acme"})
	require.NoError(t, err)

	assert.Equal(t, "{id=<nil> name=acme active=true}", e.String())
}
