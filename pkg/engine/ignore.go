package engine

import (
	"regexp"
	"strings"
)

// pathIgnored reports whether a path matches any ignore pattern. A
// pattern containing a "*" is translated whole into a regular
// expression where the wildcard matches any characters; a pattern
// without one matches by substring containment, not exact equality.
func pathIgnored(path string, patterns []string) bool {
	for _, pat := range patterns {
		if pat == "" {
			continue
		}
		if strings.Contains(pat, "*") {
			expr := "^" + strings.ReplaceAll(regexp.QuoteMeta(pat), `\*`, ".*") + "$"
			re, err := regexp.Compile(expr)
			if err != nil {
				continue
			}
			if re.MatchString(path) {
				return true
			}
			continue
		}
		if strings.Contains(path, pat) {
			return true
		}
	}
	return false
}

// likelyPublic is the fixed heuristic for endpoints that are commonly
// unauthenticated on purpose; Rule A never fires for paths matching it.
var likelyPublic = regexp.MustCompile(`(?i)(login|logout|register|signup|sign-up|auth|public|health|healthz|ready|readyz|live|livez|ping|status|metrics|version|docs|openapi|swagger|api-docs|favicon|robots)`)
