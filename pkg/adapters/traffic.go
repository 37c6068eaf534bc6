package adapters

import (
	"encoding/json"
	"fmt"
	"net/url"
	"strings"

	"github.com/user/apisentry/pkg/spec"
)

// TrafficAdapter normalizes recorded traffic captures (HAR-style
// browser or proxy exports). Entries missing either a request or a
// response, or whose request URL is not HTTP(S), are skipped. Security
// presence is read from request headers only; when a response body is
// JSON its structure is inferred and attached under the literal status
// code.
type TrafficAdapter struct{}

func (a *TrafficAdapter) Adapt(doc map[string]interface{}) *spec.CanonicalSpec {
	out := spec.NewCanonicalSpec(spec.SourceTrafficCapture)
	if doc == nil {
		return out
	}

	for _, rawEntry := range asList(asMap(doc["log"])["entries"]) {
		entry := asMap(rawEntry)
		req := asMap(entry["request"])
		resp := asMap(entry["response"])
		if req == nil || resp == nil {
			continue
		}

		u, err := url.Parse(asString(req["url"]))
		if err != nil || (u.Scheme != "http" && u.Scheme != "https") {
			continue
		}
		path := u.Path
		if path == "" {
			path = "/"
		}
		method := strings.ToLower(asString(req["method"]))
		if method == "" {
			method = "get"
		}

		out.AddOperation(path, method, spec.Operation{
			Security:  capturedSecurity(asList(req["headers"])),
			Responses: capturedResponse(resp),
		})
	}
	return out
}

// capturedSecurity reports auth presence from recorded request headers,
// matching authorization and x-api-key case-insensitively.
func capturedSecurity(headers []interface{}) []string {
	for _, rawHeader := range headers {
		h := asMap(rawHeader)
		name := strings.ToLower(asString(h["name"]))
		if name == "authorization" || name == "x-api-key" {
			return []string{"observed-auth"}
		}
	}
	return []string{}
}

func capturedResponse(resp map[string]interface{}) map[string]spec.ResponseSpec {
	status := statusString(resp["status"])
	if status == "" {
		return map[string]spec.ResponseSpec{}
	}

	var schema *spec.SchemaNode
	if body := asString(asMap(resp["content"])["text"]); body != "" {
		var decoded interface{}
		if err := json.Unmarshal([]byte(body), &decoded); err == nil {
			switch decoded.(type) {
			case map[string]interface{}, []interface{}:
				schema = spec.InferSchema(decoded)
			}
		}
	}
	return map[string]spec.ResponseSpec{status: {Schema: schema}}
}

// statusString renders a capture's status field, which decodes as
// float64 from JSON but may be an int or string in hand-written
// fixtures.
func statusString(v interface{}) string {
	switch s := v.(type) {
	case float64:
		return fmt.Sprintf("%d", int(s))
	case int:
		return fmt.Sprintf("%d", s)
	case string:
		return s
	default:
		return ""
	}
}
