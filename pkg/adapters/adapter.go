package adapters

import (
	"sort"

	"github.com/user/apisentry/pkg/spec"
)

// Adapter converts one raw input format into the canonical spec model.
// Implementations are total over structurally incomplete documents:
// missing sections default to empty collections, never to a failure.
type Adapter interface {
	Adapt(doc map[string]interface{}) *spec.CanonicalSpec
}

// httpMethods is the fixed set of tokens treated as operations inside a
// path item. Everything else at the path level (parameters, $ref,
// summary, description, consumes, produces, servers) is skipped.
var httpMethods = map[string]bool{
	"get":     true,
	"put":     true,
	"post":    true,
	"delete":  true,
	"options": true,
	"head":    true,
	"patch":   true,
	"trace":   true,
}

// Detect picks the adapter matching a parsed document's shape: an
// openapi/swagger marker selects the OpenAPI adapter, a collection
// item tree selects the collection adapter, a capture log selects the
// traffic adapter. Nil means the document is not a recognized format.
func Detect(doc map[string]interface{}) Adapter {
	if doc == nil {
		return nil
	}
	if _, ok := doc["openapi"]; ok {
		return &OpenAPIAdapter{}
	}
	if _, ok := doc["swagger"]; ok {
		return &OpenAPIAdapter{}
	}
	if _, ok := doc["log"]; ok {
		return &TrafficAdapter{}
	}
	if _, ok := doc["item"]; ok {
		return &CollectionAdapter{}
	}
	return nil
}

// securityNames flattens a raw security requirement list (a sequence of
// objects keyed by scheme name) into an ordered name list. Keys within
// one requirement object are sorted so output is stable.
func securityNames(raw interface{}) []string {
	list, ok := raw.([]interface{})
	if !ok {
		return []string{}
	}
	names := []string{}
	for _, entry := range list {
		req, ok := entry.(map[string]interface{})
		if !ok {
			continue
		}
		keys := make([]string, 0, len(req))
		for k := range req {
			keys = append(keys, k)
		}
		sort.Strings(keys)
		names = append(names, keys...)
	}
	return names
}

func asMap(v interface{}) map[string]interface{} {
	m, _ := v.(map[string]interface{})
	return m
}

func asList(v interface{}) []interface{} {
	l, _ := v.([]interface{})
	return l
}

func asString(v interface{}) string {
	s, _ := v.(string)
	return s
}
