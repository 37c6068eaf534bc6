package adapters

import (
	"strconv"

	"github.com/user/apisentry/pkg/probe"
	"github.com/user/apisentry/pkg/spec"
)

// FromProbeResults adapts a live probe result set into the canonical
// model. Every successfully probed path becomes a GET operation with
// Probed set; an observed auth challenge counts as a security
// requirement. Observed sensitive fields are recorded both directly on
// the operation and as a synthetic schema reconstructed from the
// dotted paths, so the rule engine can consume whichever shape it
// prefers.
func FromProbeResults(results []probe.Result) *spec.CanonicalSpec {
	out := spec.NewCanonicalSpec(spec.SourceLiveProbe)
	for _, r := range results {
		security := []string{}
		if r.AuthChallenge {
			security = []string{"http-challenge"}
		}

		responses := map[string]spec.ResponseSpec{}
		if len(r.SensitiveFields) > 0 {
			responses[strconv.Itoa(r.StatusCode)] = spec.ResponseSpec{
				Schema: spec.SchemaFromFieldPaths(r.SensitiveFields),
			}
		}

		out.AddOperation(r.Path, "get", spec.Operation{
			Security:              security,
			Responses:             responses,
			Probed:                true,
			ProbedSensitiveFields: append([]string{}, r.SensitiveFields...),
		})
	}
	return out
}
