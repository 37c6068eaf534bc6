package spec

import (
	"encoding/json"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func decode(t *testing.T, raw string) interface{} {
	t.Helper()
	var v interface{}
	require.NoError(t, json.Unmarshal([]byte(raw), &v))
	return v
}

func TestInferSchemaObject(t *testing.T) {
	node := InferSchema(decode(t, `{"id": 1, "profile": {"email": "a@b.c"}}`))
	require.NotNil(t, node)
	assert.Equal(t, KindObject, node.Kind)
	assert.Equal(t, KindScalar, node.Properties["id"].Kind)
	assert.Equal(t, KindObject, node.Properties["profile"].Kind)
	assert.Equal(t, KindScalar, node.Properties["profile"].Properties["email"].Kind)
}

func TestInferSchemaArrayFirstElementOnly(t *testing.T) {
	node := InferSchema(decode(t, `[{"a": 1}, {"b": 2}]`))
	require.Equal(t, KindArray, node.Kind)
	require.NotNil(t, node.Items)
	assert.Equal(t, KindObject, node.Items.Kind)
	assert.Contains(t, node.Items.Properties, "a")
	assert.NotContains(t, node.Items.Properties, "b")
}

func TestInferSchemaEmptyArray(t *testing.T) {
	node := InferSchema(decode(t, `[]`))
	require.Equal(t, KindArray, node.Kind)
	assert.Nil(t, node.Items)
}

func TestInferSchemaScalars(t *testing.T) {
	for _, raw := range []string{`"x"`, `42`, `true`, `null`} {
		assert.Equal(t, KindScalar, InferSchema(decode(t, raw)).Kind, raw)
	}
}

func TestInferSchemaDepthBound(t *testing.T) {
	// Build a value deeper than the bound; inference must terminate and
	// collapse the tail into a scalar.
	v := interface{}("leaf")
	for i := 0; i < maxInferDepth*2; i++ {
		v = map[string]interface{}{"nested": v}
	}
	node := InferSchema(v)
	depth := 0
	for node.Kind == KindObject {
		node = node.Properties["nested"]
		depth++
	}
	assert.Equal(t, KindScalar, node.Kind)
	assert.LessOrEqual(t, depth, maxInferDepth)
}

func TestSchemaFromFieldPaths(t *testing.T) {
	node := SchemaFromFieldPaths([]string{"password", "user.email", "user.profile.ssn"})
	require.Equal(t, KindObject, node.Kind)
	assert.Equal(t, KindScalar, node.Properties["password"].Kind)

	user := node.Properties["user"]
	require.Equal(t, KindObject, user.Kind)
	assert.Equal(t, KindScalar, user.Properties["email"].Kind)
	assert.Equal(t, KindScalar, user.Properties["profile"].Properties["ssn"].Kind)
}

func TestSchemaFromFieldPathsLeafPromotion(t *testing.T) {
	// A field first seen as a leaf later turns out to have children.
	node := SchemaFromFieldPaths([]string{"token", "token.value"})
	tok := node.Properties["token"]
	require.Equal(t, KindObject, tok.Kind)
	assert.Equal(t, KindScalar, tok.Properties["value"].Kind)
}

func TestAddOperationKeepsFirst(t *testing.T) {
	s := NewCanonicalSpec(SourceCollection)
	s.AddOperation("/users", "get", Operation{Security: []string{"first"}})
	s.AddOperation("/users", "get", Operation{Security: []string{"second"}})
	assert.Equal(t, []string{"first"}, s.Paths["/users"]["get"].Security)
}

func TestFieldNames(t *testing.T) {
	node := InferSchema(decode(t, `{"b": 1, "a": 2}`))
	assert.Equal(t, []string{"a", "b"}, node.FieldNames())
	assert.Nil(t, (&SchemaNode{Kind: KindScalar}).FieldNames())
	var nilNode *SchemaNode
	assert.Nil(t, nilNode.FieldNames())
}
