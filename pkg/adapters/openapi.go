package adapters

import (
	"strings"

	"github.com/user/apisentry/pkg/spec"
)

// maxRefDepth bounds $ref resolution so self-referential definitions
// cannot loop the adapter.
const maxRefDepth = 16

// OpenAPIAdapter normalizes OpenAPI 3.x and Swagger 2.0 documents.
//
// Swagger 2.0 is converted: the global security list is copied as-is
// and operations without an explicit security field get a value copy of
// it at conversion time. After conversion an operation with no security
// really has none; the inheritance is resolved into the document, not
// left implicit. OpenAPI 3.x passes through unchanged, preserving the
// distinction between an absent security field (inherit) and an
// explicitly empty one.
type OpenAPIAdapter struct{}

func (a *OpenAPIAdapter) Adapt(doc map[string]interface{}) *spec.CanonicalSpec {
	if doc == nil {
		doc = map[string]interface{}{}
	}
	if strings.HasPrefix(asString(doc["swagger"]), "2.") {
		return a.adaptSwagger2(doc)
	}
	return a.adaptOpenAPI3(doc)
}

func (a *OpenAPIAdapter) adaptOpenAPI3(doc map[string]interface{}) *spec.CanonicalSpec {
	out := spec.NewCanonicalSpec(spec.SourceOpenAPI3)
	out.GlobalSecurity = securityNames(doc["security"])
	if comp := asMap(doc["components"]); comp != nil {
		out.RegulatoryMeta = asMap(comp["securitySchemes"])
	}

	for path, rawItem := range asMap(doc["paths"]) {
		item := asMap(rawItem)
		if item == nil {
			continue
		}
		for method, rawOp := range item {
			m := strings.ToLower(method)
			if !httpMethods[m] {
				continue
			}
			op := asMap(rawOp)
			if op == nil {
				continue
			}
			out.AddOperation(path, m, spec.Operation{
				Security:  operationSecurity(op),
				Responses: a.responses(doc, op, false),
			})
		}
	}
	return out
}

func (a *OpenAPIAdapter) adaptSwagger2(doc map[string]interface{}) *spec.CanonicalSpec {
	out := spec.NewCanonicalSpec(spec.SourceSwaggerConverted)
	global := securityNames(doc["security"])
	out.GlobalSecurity = global
	out.RegulatoryMeta = asMap(doc["securityDefinitions"])

	for path, rawItem := range asMap(doc["paths"]) {
		item := asMap(rawItem)
		if item == nil {
			continue
		}
		for method, rawOp := range item {
			m := strings.ToLower(method)
			if !httpMethods[m] {
				continue
			}
			op := asMap(rawOp)
			if op == nil {
				continue
			}
			sec := operationSecurity(op)
			if sec == nil {
				// One-time value copy of the global list; the converted
				// operation no longer tracks the global block.
				sec = append([]string{}, global...)
			}
			out.AddOperation(path, m, spec.Operation{
				Security:  sec,
				Responses: a.responses(doc, op, true),
			})
		}
	}
	return out
}

// operationSecurity returns the operation's own security names, or nil
// when the field is absent so callers can tell "inherit" from
// "explicitly empty".
func operationSecurity(op map[string]interface{}) []string {
	raw, ok := op["security"]
	if !ok {
		return nil
	}
	return securityNames(raw)
}

func (a *OpenAPIAdapter) responses(doc, op map[string]interface{}, swagger2 bool) map[string]spec.ResponseSpec {
	out := make(map[string]spec.ResponseSpec)
	for code, rawResp := range asMap(op["responses"]) {
		resp := asMap(rawResp)
		if resp == nil {
			out[code] = spec.ResponseSpec{}
			continue
		}
		var schema map[string]interface{}
		if swagger2 {
			schema = asMap(resp["schema"])
		} else {
			schema = jsonContentSchema(asMap(resp["content"]))
		}
		out[code] = spec.ResponseSpec{Schema: schemaNode(doc, schema, 0)}
	}
	return out
}

// jsonContentSchema picks the schema of the JSON media type, falling
// back to the first media type that carries one.
func jsonContentSchema(content map[string]interface{}) map[string]interface{} {
	if content == nil {
		return nil
	}
	for mt, rawMedia := range content {
		if strings.Contains(strings.ToLower(mt), "json") {
			if s := asMap(asMap(rawMedia)["schema"]); s != nil {
				return s
			}
		}
	}
	for _, rawMedia := range content {
		if s := asMap(asMap(rawMedia)["schema"]); s != nil {
			return s
		}
	}
	return nil
}

// schemaNode converts a declared schema object into the structural
// model, resolving local $refs with a bounded depth.
func schemaNode(doc, schema map[string]interface{}, depth int) *spec.SchemaNode {
	if schema == nil || depth >= maxRefDepth {
		return nil
	}

	if ref := asString(schema["$ref"]); ref != "" {
		resolved := resolveLocalRef(doc, ref)
		if resolved == nil {
			return &spec.SchemaNode{Kind: spec.KindScalar}
		}
		return schemaNode(doc, resolved, depth+1)
	}

	typ := asString(schema["type"])
	props := asMap(schema["properties"])
	items := asMap(schema["items"])

	switch {
	case typ == "object" || props != nil:
		node := &spec.SchemaNode{Kind: spec.KindObject, Properties: make(map[string]*spec.SchemaNode, len(props))}
		for name, rawProp := range props {
			child := schemaNode(doc, asMap(rawProp), depth+1)
			if child == nil {
				child = &spec.SchemaNode{Kind: spec.KindScalar}
			}
			node.Properties[name] = child
		}
		return node
	case typ == "array" || items != nil:
		return &spec.SchemaNode{Kind: spec.KindArray, Items: schemaNode(doc, items, depth+1)}
	default:
		return &spec.SchemaNode{Kind: spec.KindScalar}
	}
}

// resolveLocalRef follows "#/components/schemas/X" and
// "#/definitions/X" pointers inside the same document. External refs
// are not fetched.
func resolveLocalRef(doc map[string]interface{}, ref string) map[string]interface{} {
	if !strings.HasPrefix(ref, "#/") {
		return nil
	}
	node := interface{}(doc)
	for _, seg := range strings.Split(strings.TrimPrefix(ref, "#/"), "/") {
		m, ok := node.(map[string]interface{})
		if !ok {
			return nil
		}
		node = m[seg]
	}
	return asMap(node)
}
