package report

import (
	"encoding/json"
	"fmt"
	"io"
	"strings"

	"github.com/fatih/color"

	"github.com/user/apisentry/pkg/engine"
)

var (
	highColor   = color.New(color.FgRed, color.Bold)
	mediumColor = color.New(color.FgYellow, color.Bold)
	dimColor    = color.New(color.Faint)
)

// RenderConsole writes a human-readable findings report.
func RenderConsole(w io.Writer, findings []engine.Finding) {
	if len(findings) == 0 {
		fmt.Fprintln(w, "No findings. Scan completed clean.")
		return
	}

	high := 0
	for _, f := range findings {
		if f.Severity == engine.SeverityHigh {
			high++
		}
	}
	fmt.Fprintf(w, "Found %d issue(s) (%d high, %d medium)\n\n", len(findings), high, len(findings)-high)

	for _, f := range findings {
		sev := mediumColor
		if f.Severity == engine.SeverityHigh {
			sev = highColor
		}
		fmt.Fprintf(w, "%s %s  %s %s\n", sev.Sprintf("[%s]", strings.ToUpper(string(f.Severity))), f.Message, strings.ToUpper(f.Method), f.Path)
		fmt.Fprintf(w, "  %s\n", f.Detail)
		if label, ok := ThreatFor(f.Message); ok {
			dimColor.Fprintf(w, "  Threat: %s / %s\n", label.STRIDE, label.OWASP)
		}
		if len(f.Regulations) > 0 {
			dimColor.Fprintf(w, "  Regulations: %s\n", strings.Join(f.Regulations, ", "))
		}
		fmt.Fprintf(w, "  Fix: %s\n\n", f.Fix)
	}
}

// RenderJSON writes findings as a JSON array.
func RenderJSON(w io.Writer, findings []engine.Finding) error {
	enc := json.NewEncoder(w)
	enc.SetIndent("", "  ")
	return enc.Encode(findings)
}

// RenderBaselineDiff writes a New / Fixed / Unchanged comparison.
func RenderBaselineDiff(w io.Writer, diff engine.BaselineDiff) {
	fmt.Fprintf(w, "Baseline comparison:\n")
	fmt.Fprintf(w, "  NEW: %d\n", len(diff.New))
	for _, f := range diff.New {
		fmt.Fprintf(w, "    [+] %s %s %s\n", f.Message, strings.ToUpper(f.Method), f.Path)
	}
	fmt.Fprintf(w, "  FIXED: %d\n", len(diff.Fixed))
	for _, f := range diff.Fixed {
		fmt.Fprintf(w, "    [-] %s %s %s\n", f.Message, strings.ToUpper(f.Method), f.Path)
	}
	fmt.Fprintf(w, "  UNCHANGED: %d\n", len(diff.Unchanged))
}
