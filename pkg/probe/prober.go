package probe

import (
	"context"
	"encoding/json"
	"fmt"
	"io"
	"net/http"
	"net/url"
	"sort"
	"strings"
	"time"

	"github.com/rs/zerolog/log"
	"gopkg.in/yaml.v3"

	"github.com/user/apisentry/pkg/sensitive"
)

const (
	defaultTimeout = 5 * time.Second
	defaultDelay   = 300 * time.Millisecond
	userAgent      = "apisentry/1.0 (+https://github.com/user/apisentry)"
	maxBodyBytes   = 4 << 20
	maxWalkDepth   = 24
)

// Result is one successfully probed endpoint.
type Result struct {
	Path          string
	StatusCode    int
	AuthChallenge bool
	// SensitiveFields holds dotted paths of sensitive keys observed in
	// the JSON response body.
	SensitiveFields []string
}

// Outcome is what a probing run produces: either a raw spec document
// (hand it to the OpenAPI adapter) or a probe result set (hand it to
// the probe adapter). Both empty is a valid, uninteresting outcome for
// an unreachable target, not an error.
type Outcome struct {
	SpecDoc map[string]interface{}
	SpecURL string
	Results []Result
}

// Prober discovers an API surface from a single URL. All requests are
// issued strictly sequentially with a fixed inter-request delay so the
// target is never hammered; every individual failure degrades to "no
// information".
type Prober struct {
	client *http.Client
	// CustomPatterns extends the sensitive-field catalogue for body
	// inspection during probing.
	CustomPatterns []string

	timeout time.Duration
	delay   time.Duration
}

// NewProber returns a prober with the fixed request timeout and
// inter-request delay.
func NewProber() *Prober {
	return &Prober{
		client:  &http.Client{},
		timeout: defaultTimeout,
		delay:   defaultDelay,
	}
}

// Run executes the discovery state machine for target:
//
//  1. a URL that plainly names a spec resource is fetched directly;
//  2. otherwise conventional spec locations are tried against the base;
//  3. otherwise conventional endpoints are probed one GET at a time.
//
// Run only fails on an unusable target URL; network trouble during any
// step is recovered locally.
func (p *Prober) Run(ctx context.Context, target string) (*Outcome, error) {
	u, err := url.Parse(target)
	if err != nil || u.Host == "" || (u.Scheme != "http" && u.Scheme != "https") {
		return nil, fmt.Errorf("target is not an absolute http(s) URL: %q", target)
	}

	if looksLikeSpecURL(u.Path) {
		if doc := p.fetchSpec(ctx, target); doc != nil {
			log.Info().Str("url", target).Msg("spec found")
			return &Outcome{SpecDoc: doc, SpecURL: target}, nil
		}
		log.Debug().Str("url", target).Msg("direct spec fetch failed")
	}

	base := u.Scheme + "://" + u.Host

	if p.robotsDisallow(ctx, base) {
		log.Info().Str("base", base).Msg("robots check disallows probing")
		return &Outcome{}, nil
	}

	for _, loc := range specLocations {
		if ctx.Err() != nil {
			break
		}
		specURL := base + loc
		if doc := p.fetchSpec(ctx, specURL); doc != nil {
			log.Info().Str("url", specURL).Msg("spec found")
			return &Outcome{SpecDoc: doc, SpecURL: specURL}, nil
		}
	}
	log.Info().Str("base", base).Msg("spec not found, falling back to endpoint probing")

	out := &Outcome{}
	for i, path := range endpointPaths {
		if ctx.Err() != nil {
			break
		}
		if i > 0 {
			// Soft rate limit between probes.
			select {
			case <-time.After(p.delay):
			case <-ctx.Done():
				return out, nil
			}
		}
		if res, ok := p.probeEndpoint(ctx, base+path, path); ok {
			out.Results = append(out.Results, res)
		}
	}
	return out, nil
}

// looksLikeSpecURL reports whether a URL path plainly names a spec
// resource.
func looksLikeSpecURL(path string) bool {
	p := strings.ToLower(path)
	return strings.Contains(p, "openapi") ||
		strings.Contains(p, "swagger") ||
		strings.Contains(p, "api-docs")
}

// robotsDisallow performs the narrow robots check: a 403 on exactly
// /robots.txt means "do not probe further". Anything else, including
// fetch failure, allows probing.
func (p *Prober) robotsDisallow(ctx context.Context, base string) bool {
	status, _, _, err := p.get(ctx, base+"/robots.txt")
	return err == nil && status == http.StatusForbidden
}

// fetchSpec retrieves a candidate document and accepts it only if it
// parses as JSON or YAML and carries an openapi or swagger top-level
// key. The check is deliberately permissive; structure beyond the
// marker key is not validated.
func (p *Prober) fetchSpec(ctx context.Context, specURL string) map[string]interface{} {
	status, body, contentType, err := p.get(ctx, specURL)
	if err != nil || status < 200 || status >= 300 || len(body) == 0 {
		return nil
	}
	doc := parseSpecDocument(body, contentType, specURL)
	if doc == nil {
		return nil
	}
	if _, ok := doc["openapi"]; ok {
		return doc
	}
	if _, ok := doc["swagger"]; ok {
		return doc
	}
	return nil
}

// parseSpecDocument decodes a spec body, choosing JSON or YAML by
// content type, then extension, then JSON-first with YAML fallback.
func parseSpecDocument(body []byte, contentType, specURL string) map[string]interface{} {
	ct := strings.ToLower(contentType)
	lower := strings.ToLower(specURL)

	jsonFirst := true
	switch {
	case strings.Contains(ct, "json"):
	case strings.Contains(ct, "yaml"):
		jsonFirst = false
	case strings.HasSuffix(lower, ".yaml") || strings.HasSuffix(lower, ".yml"):
		jsonFirst = false
	}

	var doc map[string]interface{}
	if jsonFirst {
		if err := json.Unmarshal(body, &doc); err == nil {
			return doc
		}
		if err := yaml.Unmarshal(body, &doc); err == nil {
			return doc
		}
		return nil
	}
	if err := yaml.Unmarshal(body, &doc); err == nil {
		return doc
	}
	if err := json.Unmarshal(body, &doc); err == nil {
		return doc
	}
	return nil
}

// probeEndpoint issues one GET. Only 2xx responses count; everything
// else, including timeouts, is dropped silently because the absence of
// an endpoint is a normal outcome.
func (p *Prober) probeEndpoint(ctx context.Context, target, path string) (Result, bool) {
	reqCtx, cancel := context.WithTimeout(ctx, p.timeout)
	defer cancel()

	req, err := http.NewRequestWithContext(reqCtx, http.MethodGet, target, nil)
	if err != nil {
		return Result{}, false
	}
	req.Header.Set("User-Agent", userAgent)

	resp, err := p.client.Do(req)
	if err != nil {
		if reqCtx.Err() == context.DeadlineExceeded {
			log.Debug().Str("path", path).Msg("endpoint timed out")
		}
		return Result{}, false
	}
	defer resp.Body.Close()

	if resp.StatusCode < 200 || resp.StatusCode >= 300 {
		return Result{}, false
	}

	res := Result{
		Path:          path,
		StatusCode:    resp.StatusCode,
		AuthChallenge: resp.Header.Get("WWW-Authenticate") != "",
	}

	body, err := io.ReadAll(io.LimitReader(resp.Body, maxBodyBytes))
	if err == nil && len(body) > 0 {
		var decoded interface{}
		if json.Unmarshal(body, &decoded) == nil {
			res.SensitiveFields = sensitivePaths(decoded, p.CustomPatterns)
		}
	}
	log.Debug().Str("path", path).Int("status", res.StatusCode).
		Int("sensitive_fields", len(res.SensitiveFields)).Msg("endpoint probed")
	return res, true
}

func (p *Prober) get(ctx context.Context, target string) (int, []byte, string, error) {
	reqCtx, cancel := context.WithTimeout(ctx, p.timeout)
	defer cancel()

	req, err := http.NewRequestWithContext(reqCtx, http.MethodGet, target, nil)
	if err != nil {
		return 0, nil, "", err
	}
	req.Header.Set("User-Agent", userAgent)

	resp, err := p.client.Do(req)
	if err != nil {
		return 0, nil, "", err
	}
	defer resp.Body.Close()

	body, err := io.ReadAll(io.LimitReader(resp.Body, maxBodyBytes))
	if err != nil {
		return resp.StatusCode, nil, "", err
	}
	return resp.StatusCode, body, resp.Header.Get("Content-Type"), nil
}

// sensitivePaths classifies every key of a decoded JSON value
// recursively, returning sorted dotted paths of sensitive fields.
func sensitivePaths(v interface{}, extra []string) []string {
	var out []string
	walkJSON(v, "", 0, extra, &out)
	sort.Strings(out)
	return out
}

func walkJSON(v interface{}, prefix string, depth int, extra []string, out *[]string) {
	if depth >= maxWalkDepth {
		return
	}
	switch val := v.(type) {
	case map[string]interface{}:
		for k, child := range val {
			dotted := k
			if prefix != "" {
				dotted = prefix + "." + k
			}
			if sensitive.Classify(k, extra).Sensitive {
				*out = append(*out, dotted)
			}
			walkJSON(child, dotted, depth+1, extra, out)
		}
	case []interface{}:
		if len(val) > 0 {
			walkJSON(val[0], prefix, depth+1, extra, out)
		}
	}
}
