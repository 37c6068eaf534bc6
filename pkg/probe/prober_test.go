package probe

import (
	"context"
	"net/http"
	"net/http/httptest"
	"sync"
	"testing"
	"time"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

// testProber returns a prober tuned for fast tests.
func testProber() *Prober {
	p := NewProber()
	p.timeout = 2 * time.Second
	p.delay = time.Millisecond
	return p
}

func TestRunDirectSpecURL(t *testing.T) {
	srv := httptest.NewServer(http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		require.Equal(t, "/openapi.json", r.URL.Path)
		w.Header().Set("Content-Type", "application/json")
		w.Write([]byte(`{"openapi": "3.0.0", "paths": {}}`))
	}))
	defer srv.Close()

	out, err := testProber().Run(context.Background(), srv.URL+"/openapi.json")
	require.NoError(t, err)
	require.NotNil(t, out.SpecDoc)
	assert.Equal(t, "3.0.0", out.SpecDoc["openapi"])
	assert.Empty(t, out.Results)
}

func TestRunDirectSpecURLYAML(t *testing.T) {
	srv := httptest.NewServer(http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		w.Header().Set("Content-Type", "application/yaml")
		w.Write([]byte("swagger: \"2.0\"\npaths: {}\n"))
	}))
	defer srv.Close()

	out, err := testProber().Run(context.Background(), srv.URL+"/docs/swagger.yaml")
	require.NoError(t, err)
	require.NotNil(t, out.SpecDoc)
	assert.Equal(t, "2.0", out.SpecDoc["swagger"])
}

func TestRunSpecDiscoveryShortCircuits(t *testing.T) {
	var mu sync.Mutex
	var requested []string

	srv := httptest.NewServer(http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		mu.Lock()
		requested = append(requested, r.URL.Path)
		mu.Unlock()
		if r.URL.Path == "/swagger.json" {
			w.Write([]byte(`{"swagger": "2.0"}`))
			return
		}
		w.WriteHeader(http.StatusNotFound)
	}))
	defer srv.Close()

	out, err := testProber().Run(context.Background(), srv.URL)
	require.NoError(t, err)
	require.NotNil(t, out.SpecDoc)

	// Locations before /swagger.json were tried in order; none after.
	mu.Lock()
	defer mu.Unlock()
	assert.Equal(t, []string{"/robots.txt", "/openapi.json", "/openapi.yaml", "/swagger.json"}, requested)
}

func TestRunRejectsNonSpecDocument(t *testing.T) {
	srv := httptest.NewServer(http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		// Valid JSON everywhere, but never a spec marker key, and no
		// sensitive fields anywhere.
		w.Write([]byte(`{"status": "ok"}`))
	}))
	defer srv.Close()

	out, err := testProber().Run(context.Background(), srv.URL)
	require.NoError(t, err)
	assert.Nil(t, out.SpecDoc, "document without openapi/swagger key must not be accepted")
	assert.Len(t, out.Results, len(endpointPaths), "probing fallback ran instead")
}

func TestRunProbingFallback(t *testing.T) {
	srv := httptest.NewServer(http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		switch r.URL.Path {
		case "/api/users":
			w.Header().Set("Content-Type", "application/json")
			w.Write([]byte(`{"users": [{"id": 1, "password": "x", "profile": {"email": "a@b"}}]}`))
		case "/admin":
			w.Header().Set("WWW-Authenticate", "Basic realm=admin")
			w.Write([]byte(`{}`))
		default:
			w.WriteHeader(http.StatusNotFound)
		}
	}))
	defer srv.Close()

	out, err := testProber().Run(context.Background(), srv.URL)
	require.NoError(t, err)
	assert.Nil(t, out.SpecDoc)
	require.Len(t, out.Results, 2)

	byPath := map[string]Result{}
	for _, r := range out.Results {
		byPath[r.Path] = r
	}

	users := byPath["/api/users"]
	assert.False(t, users.AuthChallenge)
	assert.Equal(t, []string{"users.password", "users.profile.email"}, users.SensitiveFields)

	admin := byPath["/admin"]
	assert.True(t, admin.AuthChallenge)
	assert.Empty(t, admin.SensitiveFields)
}

func TestRunAllPathsFailIsNotAnError(t *testing.T) {
	srv := httptest.NewServer(http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		w.WriteHeader(http.StatusNotFound)
	}))
	defer srv.Close()

	out, err := testProber().Run(context.Background(), srv.URL)
	require.NoError(t, err)
	assert.Nil(t, out.SpecDoc)
	assert.Empty(t, out.Results)
}

func TestRunUnreachableTarget(t *testing.T) {
	srv := httptest.NewServer(http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {}))
	srv.Close() // connection refused from here on

	out, err := testProber().Run(context.Background(), srv.URL)
	require.NoError(t, err, "network failure degrades to an empty result set")
	assert.Nil(t, out.SpecDoc)
	assert.Empty(t, out.Results)
}

func TestRunRobotsForbiddenStopsProbing(t *testing.T) {
	var mu sync.Mutex
	count := 0

	srv := httptest.NewServer(http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		mu.Lock()
		count++
		mu.Unlock()
		if r.URL.Path == "/robots.txt" {
			w.WriteHeader(http.StatusForbidden)
			return
		}
		w.Write([]byte(`{"openapi": "3.0.0"}`))
	}))
	defer srv.Close()

	out, err := testProber().Run(context.Background(), srv.URL)
	require.NoError(t, err)
	assert.Nil(t, out.SpecDoc)
	assert.Empty(t, out.Results)

	mu.Lock()
	defer mu.Unlock()
	assert.Equal(t, 1, count, "only /robots.txt was requested")
}

func TestRunInvalidTarget(t *testing.T) {
	p := testProber()
	for _, target := range []string{"not-a-url", "ftp://host/x", "http://"} {
		_, err := p.Run(context.Background(), target)
		assert.Error(t, err, target)
	}
}

func TestRunCancellation(t *testing.T) {
	ctx, cancel := context.WithCancel(context.Background())
	cancel()

	srv := httptest.NewServer(http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		w.WriteHeader(http.StatusNotFound)
	}))
	defer srv.Close()

	out, err := testProber().Run(ctx, srv.URL)
	require.NoError(t, err)
	assert.Empty(t, out.Results)
}

func TestLooksLikeSpecURL(t *testing.T) {
	assert.True(t, looksLikeSpecURL("/openapi.json"))
	assert.True(t, looksLikeSpecURL("/v3/api-docs"))
	assert.True(t, looksLikeSpecURL("/docs/Swagger.yaml"))
	assert.False(t, looksLikeSpecURL("/api/users"))
	assert.False(t, looksLikeSpecURL("/"))
}

func TestParseSpecDocumentFallbacks(t *testing.T) {
	jsonBody := []byte(`{"openapi": "3.0.0"}`)
	yamlBody := []byte("openapi: 3.0.0\n")

	assert.NotNil(t, parseSpecDocument(jsonBody, "application/json", "http://x/spec"))
	assert.NotNil(t, parseSpecDocument(yamlBody, "application/yaml", "http://x/spec"))
	// No content type, no extension: JSON first, then YAML.
	assert.NotNil(t, parseSpecDocument(jsonBody, "", "http://x/spec"))
	assert.NotNil(t, parseSpecDocument(yamlBody, "", "http://x/spec"))
	// YAML extension with YAML body.
	assert.NotNil(t, parseSpecDocument(yamlBody, "text/plain", "http://x/openapi.yaml"))
	assert.Nil(t, parseSpecDocument([]byte("<html>"), "", "http://x/spec"))
}

func TestSensitivePathsCustomPatterns(t *testing.T) {
	v := map[string]interface{}{"score": 1.0, "meta": map[string]interface{}{"token": "x"}}
	assert.Equal(t, []string{"meta.token"}, sensitivePaths(v, nil))
	assert.Equal(t, []string{"meta.token", "score"}, sensitivePaths(v, []string{"score"}))
}
