package sensitive

import (
	"sort"
	"strings"
)

// Classification is the result of classifying a single field name.
type Classification struct {
	Sensitive   bool
	Regulations []string
}

// Classify reports whether fieldName is sensitive and which regulations
// apply to it. A field matches when its lowercased name contains any
// catalogue pattern or any caller-supplied extra pattern as a
// substring. A field can match several categories; its regulation set
// is the union, returned sorted. Classify is pure and safe for
// concurrent use.
func Classify(fieldName string, extraPatterns []string) Classification {
	name := strings.ToLower(fieldName)

	var out Classification
	regs := make(map[string]struct{})

	for _, cat := range Catalogue {
		for _, pat := range cat.Patterns {
			if strings.Contains(name, pat) {
				out.Sensitive = true
				for _, r := range cat.Regulations {
					regs[r] = struct{}{}
				}
				break
			}
		}
	}

	for _, pat := range extraPatterns {
		if pat == "" {
			continue
		}
		if strings.Contains(name, strings.ToLower(pat)) {
			out.Sensitive = true
		}
	}

	if len(regs) > 0 {
		out.Regulations = make([]string, 0, len(regs))
		for r := range regs {
			out.Regulations = append(out.Regulations, r)
		}
		sort.Strings(out.Regulations)
	}
	return out
}
