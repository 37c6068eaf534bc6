package spec

import (
	"sort"
	"strings"
)

// maxInferDepth bounds recursion when inferring structure from observed
// JSON bodies. Real bodies are finite trees, so this is a safety margin
// against pathological input, not a correctness requirement.
const maxInferDepth = 24

// InferSchema builds a SchemaNode from a decoded JSON value. Objects
// recurse into their properties, arrays are inferred from their first
// element only (empty arrays get empty items), everything else is a
// scalar.
func InferSchema(v interface{}) *SchemaNode {
	return inferSchema(v, 0)
}

func inferSchema(v interface{}, depth int) *SchemaNode {
	if depth >= maxInferDepth {
		return &SchemaNode{Kind: KindScalar}
	}

	switch val := v.(type) {
	case map[string]interface{}:
		node := &SchemaNode{Kind: KindObject, Properties: make(map[string]*SchemaNode, len(val))}
		for k, child := range val {
			node.Properties[k] = inferSchema(child, depth+1)
		}
		return node
	case []interface{}:
		node := &SchemaNode{Kind: KindArray}
		if len(val) > 0 {
			node.Items = inferSchema(val[0], depth+1)
		}
		return node
	default:
		return &SchemaNode{Kind: KindScalar}
	}
}

// SchemaFromFieldPaths reconstructs an object schema from dotted field
// paths observed in a live response. Each path segment becomes a nested
// object property; leaves are scalar placeholders because the true type
// is unknown.
func SchemaFromFieldPaths(paths []string) *SchemaNode {
	root := &SchemaNode{Kind: KindObject, Properties: make(map[string]*SchemaNode)}
	for _, p := range paths {
		segments := strings.Split(p, ".")
		node := root
		for i, seg := range segments {
			if seg == "" {
				continue
			}
			child, ok := node.Properties[seg]
			if !ok || child == nil {
				if i == len(segments)-1 {
					child = &SchemaNode{Kind: KindScalar}
				} else {
					child = &SchemaNode{Kind: KindObject, Properties: make(map[string]*SchemaNode)}
				}
				node.Properties[seg] = child
			}
			if child.Kind != KindObject && i < len(segments)-1 {
				// A leaf recorded earlier turns out to have children.
				child.Kind = KindObject
				child.Properties = make(map[string]*SchemaNode)
			}
			node = child
		}
	}
	return root
}

// FieldNames returns the sorted direct property names of an object
// node, or nil for any other kind.
func (n *SchemaNode) FieldNames() []string {
	if n == nil || n.Kind != KindObject || len(n.Properties) == 0 {
		return nil
	}
	names := make([]string, 0, len(n.Properties))
	for k := range n.Properties {
		names = append(names, k)
	}
	sort.Strings(names)
	return names
}
