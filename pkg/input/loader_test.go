package input

import (
	"os"
	"path/filepath"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func writeTemp(t *testing.T, name, content string) string {
	t.Helper()
	path := filepath.Join(t.TempDir(), name)
	require.NoError(t, os.WriteFile(path, []byte(content), 0644))
	return path
}

func TestLoadDocumentByExtension(t *testing.T) {
	jsonPath := writeTemp(t, "spec.json", `{"openapi": "3.0.0"}`)
	doc, err := LoadDocument(jsonPath)
	require.NoError(t, err)
	assert.Equal(t, "3.0.0", doc["openapi"])

	yamlPath := writeTemp(t, "spec.yaml", "swagger: \"2.0\"\n")
	doc, err = LoadDocument(yamlPath)
	require.NoError(t, err)
	assert.Equal(t, "2.0", doc["swagger"])

	harPath := writeTemp(t, "cap.har", `{"log": {"entries": []}}`)
	doc, err = LoadDocument(harPath)
	require.NoError(t, err)
	assert.Contains(t, doc, "log")
}

func TestLoadDocumentUnknownExtensionFallback(t *testing.T) {
	path := writeTemp(t, "spec.txt", "openapi: 3.0.0\n")
	doc, err := LoadDocument(path)
	require.NoError(t, err)
	assert.Contains(t, doc, "openapi")
}

func TestLoadDocumentErrors(t *testing.T) {
	_, err := LoadDocument(filepath.Join(t.TempDir(), "missing.json"))
	assert.Error(t, err)

	bad := writeTemp(t, "bad.json", "{not json")
	_, err = LoadDocument(bad)
	assert.Error(t, err)
}

func TestIsURL(t *testing.T) {
	assert.True(t, IsURL("http://api.example.com"))
	assert.True(t, IsURL("https://api.example.com/openapi.json"))
	assert.False(t, IsURL("./openapi.json"))
	assert.False(t, IsURL("openapi.json"))
}
