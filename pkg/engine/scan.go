package engine

import (
	"fmt"
	"sort"
	"strings"

	"github.com/user/apisentry/pkg/sensitive"
	"github.com/user/apisentry/pkg/spec"
)

// excessiveFieldThreshold is the direct-property count above which an
// object response is reported as excessive data exposure.
const excessiveFieldThreshold = 20

// maxSchemaDepth bounds defensive traversal of malformed schema graphs.
const maxSchemaDepth = 32

// Config controls one scan.
type Config struct {
	// IgnorePaths suppresses all findings for matching paths. A single
	// "*" wildcard matches any characters; plain patterns match by
	// substring.
	IgnorePaths []string

	// CustomSensitiveFields extends the built-in catalogue.
	CustomSensitiveFields []string

	// Compliance restricts sensitive-data findings to one regulatory
	// framework: gdpr, ccpa, hipaa or pci. Empty means standard mode.
	Compliance string

	// Rules carries a per-rule severity override map (error/warn/off).
	// Accepted for forward compatibility; not enforced yet.
	Rules map[string]string
}

// complianceModes maps a compliance mode to its regulation tag and
// finding message.
var complianceModes = map[string]struct {
	Tag     string
	Message string
}{
	"gdpr":  {"GDPR", MsgGDPRExposure},
	"ccpa":  {"CCPA", MsgCCPAExposure},
	"hipaa": {"HIPAA", MsgHIPAAExposure},
	"pci":   {"PCI-DSS", MsgPCIDSSExposure},
}

// fieldMatch is one sensitive field located during schema traversal.
type fieldMatch struct {
	Path        string
	Regulations []string
}

// Scan walks a canonical spec and returns findings in deterministic
// order: paths sorted, methods sorted within a path, and per operation
// the missing-authentication check, then per-response sensitive-data
// checks, then the excessive-exposure check. Scan performs no I/O and
// is pure given its inputs.
func Scan(s *spec.CanonicalSpec, cfg Config) []Finding {
	findings := []Finding{}
	if s == nil {
		return findings
	}

	paths := make([]string, 0, len(s.Paths))
	for p := range s.Paths {
		paths = append(paths, p)
	}
	sort.Strings(paths)

	for _, path := range paths {
		if pathIgnored(path, cfg.IgnorePaths) {
			continue
		}
		item := s.Paths[path]

		methods := make([]string, 0, len(item))
		for m := range item {
			methods = append(methods, m)
		}
		sort.Strings(methods)

		for _, method := range methods {
			op := item[method]
			findings = append(findings, scanOperation(s, path, method, op, cfg)...)
		}
	}
	return findings
}

func scanOperation(s *spec.CanonicalSpec, path, method string, op spec.Operation, cfg Config) []Finding {
	var findings []Finding
	ident := strings.ToUpper(method) + " " + path

	// Rule A: missing authentication.
	security := op.Security
	if security == nil {
		security = s.GlobalSecurity
	}
	if len(security) == 0 && !likelyPublic.MatchString(path) {
		findings = append(findings, Finding{
			Severity: SeverityHigh,
			Message:  MsgMissingAuth,
			Detail:   fmt.Sprintf("%s has no effective security requirement", ident),
			Fix:      FixFor(MsgMissingAuth),
			Path:     path,
			Method:   method,
		})
	}

	// Rules B / B': sensitive data exposure.
	if op.Probed && len(op.ProbedSensitiveFields) > 0 {
		matches := make([]fieldMatch, 0, len(op.ProbedSensitiveFields))
		for _, f := range op.ProbedSensitiveFields {
			cls := sensitive.Classify(f, cfg.CustomSensitiveFields)
			matches = append(matches, fieldMatch{Path: f, Regulations: cls.Regulations})
		}
		if f, ok := exposureFinding(path, method, ident, "live response", matches, cfg); ok {
			findings = append(findings, f)
		}
	} else {
		for _, code := range sortedCodes(op.Responses) {
			if !is2xx(code) {
				continue
			}
			schema := op.Responses[code].Schema
			if schema == nil {
				continue
			}
			matches := collectSensitive(schema, "", cfg.CustomSensitiveFields, 0)
			if f, ok := exposureFinding(path, method, ident, code+" response", matches, cfg); ok {
				findings = append(findings, f)
			}
		}
	}

	// Rule C: excessive data exposure. Independent of A/B and never
	// filtered by compliance mode.
	for _, code := range sortedCodes(op.Responses) {
		if !is2xx(code) {
			continue
		}
		schema := op.Responses[code].Schema
		if schema == nil || schema.Kind != spec.KindObject {
			continue
		}
		if count := len(schema.Properties); count > excessiveFieldThreshold {
			findings = append(findings, Finding{
				Severity: SeverityMedium,
				Message:  MsgExcessiveData,
				Detail:   fmt.Sprintf("%s returns an object with %d fields in its %s response", ident, count, code),
				Fix:      FixFor(MsgExcessiveData),
				Path:     path,
				Method:   method,
			})
		}
	}

	return findings
}

// exposureFinding turns a set of sensitive field matches into at most
// one finding. In standard mode every match is reported; in compliance
// mode matches are filtered to the mode's regulation tag and the
// standard finding is suppressed entirely.
func exposureFinding(path, method, ident, where string, matches []fieldMatch, cfg Config) (Finding, bool) {
	if len(matches) == 0 {
		return Finding{}, false
	}

	// An unrecognized compliance value falls back to standard mode
	// rather than silently dropping findings.
	mode, compliance := complianceModes[strings.ToLower(cfg.Compliance)]
	if !compliance {
		fields := make([]string, 0, len(matches))
		for _, m := range matches {
			fields = append(fields, m.Path)
		}
		return Finding{
			Severity: SeverityHigh,
			Message:  MsgSensitiveData,
			Detail:   fmt.Sprintf("%s exposes sensitive fields in its %s: %s", ident, where, strings.Join(fields, ", ")),
			Fix:      FixFor(MsgSensitiveData),
			Path:     path,
			Method:   method,
		}, true
	}

	fields := []string{}
	regs := make(map[string]struct{})
	for _, m := range matches {
		for _, r := range m.Regulations {
			if r == mode.Tag {
				fields = append(fields, m.Path)
				for _, all := range m.Regulations {
					regs[all] = struct{}{}
				}
				break
			}
		}
	}
	if len(fields) == 0 {
		return Finding{}, false
	}

	regList := make([]string, 0, len(regs))
	for r := range regs {
		regList = append(regList, r)
	}
	sort.Strings(regList)

	return Finding{
		Severity:    SeverityHigh,
		Message:     mode.Message,
		Detail:      fmt.Sprintf("%s exposes %s-regulated fields in its %s: %s", ident, mode.Tag, where, strings.Join(fields, ", ")),
		Fix:         FixFor(mode.Message),
		Regulations: regList,
		Path:        path,
		Method:      method,
	}, true
}

// collectSensitive recursively gathers sensitive field matches from a
// schema as dotted paths. Malformed nodes are skipped rather than
// failing the scan.
func collectSensitive(node *spec.SchemaNode, prefix string, extra []string, depth int) []fieldMatch {
	if node == nil || depth >= maxSchemaDepth {
		return nil
	}

	var matches []fieldMatch
	switch node.Kind {
	case spec.KindObject:
		names := make([]string, 0, len(node.Properties))
		for name := range node.Properties {
			names = append(names, name)
		}
		sort.Strings(names)
		for _, name := range names {
			dotted := name
			if prefix != "" {
				dotted = prefix + "." + name
			}
			if cls := sensitive.Classify(name, extra); cls.Sensitive {
				matches = append(matches, fieldMatch{Path: dotted, Regulations: cls.Regulations})
			}
			matches = append(matches, collectSensitive(node.Properties[name], dotted, extra, depth+1)...)
		}
	case spec.KindArray:
		matches = append(matches, collectSensitive(node.Items, prefix, extra, depth+1)...)
	}
	return matches
}

func sortedCodes(responses map[string]spec.ResponseSpec) []string {
	codes := make([]string, 0, len(responses))
	for c := range responses {
		codes = append(codes, c)
	}
	sort.Strings(codes)
	return codes
}

// is2xx accepts literal 2xx status codes and the "2XX" range form.
func is2xx(code string) bool {
	if len(code) != 3 || code[0] != '2' {
		return false
	}
	lower := strings.ToLower(code)
	if lower == "2xx" {
		return true
	}
	return code[1] >= '0' && code[1] <= '9' && code[2] >= '0' && code[2] <= '9'
}
