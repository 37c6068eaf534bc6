package report

import (
	"bytes"
	"encoding/json"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/user/apisentry/pkg/engine"
)

func TestThreatMapCoversMessageVocabulary(t *testing.T) {
	for _, msg := range []string{
		engine.MsgMissingAuth,
		engine.MsgSensitiveData,
		engine.MsgExcessiveData,
		engine.MsgGDPRExposure,
		engine.MsgCCPAExposure,
		engine.MsgHIPAAExposure,
		engine.MsgPCIDSSExposure,
	} {
		label, ok := ThreatFor(msg)
		require.True(t, ok, "no threat label for %q", msg)
		assert.NotEmpty(t, label.STRIDE)
		assert.NotEmpty(t, label.OWASP)
	}

	_, ok := ThreatFor("made up message")
	assert.False(t, ok)
}

func TestRenderJSON(t *testing.T) {
	findings := []engine.Finding{
		{Severity: engine.SeverityHigh, Message: engine.MsgMissingAuth, Path: "/users", Method: "get"},
	}

	var buf bytes.Buffer
	require.NoError(t, RenderJSON(&buf, findings))

	var decoded []engine.Finding
	require.NoError(t, json.Unmarshal(buf.Bytes(), &decoded))
	require.Len(t, decoded, 1)
	assert.Equal(t, engine.MsgMissingAuth, decoded[0].Message)
}

func TestRenderConsole(t *testing.T) {
	var buf bytes.Buffer
	RenderConsole(&buf, nil)
	assert.Contains(t, buf.String(), "No findings")

	buf.Reset()
	RenderConsole(&buf, []engine.Finding{
		{
			Severity:    engine.SeverityHigh,
			Message:     engine.MsgGDPRExposure,
			Detail:      "GET /users exposes ssn",
			Fix:         "remove it",
			Regulations: []string{"GDPR"},
			Path:        "/users",
			Method:      "get",
		},
	})
	out := buf.String()
	assert.Contains(t, out, engine.MsgGDPRExposure)
	assert.Contains(t, out, "GDPR")
	assert.Contains(t, out, "Fix:")
}

func TestRenderBaselineDiff(t *testing.T) {
	var buf bytes.Buffer
	RenderBaselineDiff(&buf, engine.BaselineDiff{
		New:   []engine.Finding{{Message: engine.MsgMissingAuth, Path: "/a", Method: "get"}},
		Fixed: []engine.Finding{{Message: engine.MsgSensitiveData, Path: "/b", Method: "post"}},
	})
	out := buf.String()
	assert.Contains(t, out, "NEW: 1")
	assert.Contains(t, out, "FIXED: 1")
	assert.Contains(t, out, "UNCHANGED: 0")
}
