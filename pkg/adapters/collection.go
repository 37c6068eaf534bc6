package adapters

import (
	"net/url"
	"strings"

	"github.com/user/apisentry/pkg/spec"
)

// CollectionAdapter normalizes request-collection exports (Postman-style
// folder/item trees). Any item with nested items is a folder and is
// recursed into; any item carrying a request record yields exactly one
// operation. Response schemas are not part of this format, so every
// operation gets empty responses.
type CollectionAdapter struct{}

func (a *CollectionAdapter) Adapt(doc map[string]interface{}) *spec.CanonicalSpec {
	out := spec.NewCanonicalSpec(spec.SourceCollection)
	if doc == nil {
		return out
	}
	a.walkItems(out, asList(doc["item"]))
	return out
}

func (a *CollectionAdapter) walkItems(out *spec.CanonicalSpec, items []interface{}) {
	for _, rawItem := range items {
		item := asMap(rawItem)
		if item == nil {
			continue
		}
		if nested := asList(item["item"]); nested != nil {
			a.walkItems(out, nested)
			continue
		}
		req := asMap(item["request"])
		if req == nil {
			continue
		}

		path := requestPath(req["url"])
		if path == "" {
			continue
		}
		method := strings.ToLower(asString(req["method"]))
		if method == "" {
			method = "get"
		}

		out.AddOperation(path, method, spec.Operation{
			Security:  requestSecurity(req),
			Responses: map[string]spec.ResponseSpec{},
		})
	}
}

// requestPath extracts the path component from a collection URL, which
// may be a raw string or a structured {raw: ...} object. Relative forms
// are tolerated by prefixing a placeholder authority before parsing.
func requestPath(rawURL interface{}) string {
	raw := asString(rawURL)
	if raw == "" {
		raw = asString(asMap(rawURL)["raw"])
	}
	if raw == "" {
		return ""
	}
	if !strings.Contains(raw, "://") {
		if !strings.HasPrefix(raw, "/") {
			raw = "/" + raw
		}
		raw = "http://placeholder" + raw
	}
	u, err := url.Parse(raw)
	if err != nil || u.Path == "" {
		return ""
	}
	return u.Path
}

// requestSecurity detects authentication structurally: an explicit
// per-request auth block, or an Authorization / X-API-Key header. The
// request body is never inspected.
func requestSecurity(req map[string]interface{}) []string {
	if auth := asMap(req["auth"]); auth != nil {
		typ := asString(auth["type"])
		if typ != "" && typ != "noauth" {
			return []string{typ}
		}
	}
	for _, rawHeader := range asList(req["header"]) {
		h := asMap(rawHeader)
		key := asString(h["key"])
		if strings.EqualFold(key, "Authorization") || strings.EqualFold(key, "X-API-Key") {
			return []string{"header-auth"}
		}
	}
	return []string{}
}
