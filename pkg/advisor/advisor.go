package advisor

import (
	"context"
	"fmt"
	"strings"

	"github.com/user/apisentry/pkg/engine"
	"github.com/user/apisentry/pkg/report"
)

// Provider defines the interface for different AI models used to turn
// scan findings into prioritized remediation guidance. The core
// scanner never touches this; it is an optional post-scan step.
type Provider interface {
	Generate(ctx context.Context, system, prompt string) (string, error)
	ListModels(ctx context.Context) ([]string, error)
}

// Advise builds a remediation prompt from findings and asks the
// provider for guidance.
func Advise(ctx context.Context, p Provider, findings []engine.Finding) (string, error) {
	if len(findings) == 0 {
		return "No findings to advise on. The last scan completed clean.", nil
	}
	return p.Generate(ctx, GetSystemPrompt(), findingsPrompt(findings))
}

// findingsPrompt renders findings into a compact text block for the
// model, including the presentation-layer threat labels.
func findingsPrompt(findings []engine.Finding) string {
	var sb strings.Builder
	sb.WriteString("Scan findings:\n")
	for i, f := range findings {
		sb.WriteString(fmt.Sprintf("%d. [%s] %s - %s %s\n", i+1, f.Severity, f.Message, strings.ToUpper(f.Method), f.Path))
		sb.WriteString(fmt.Sprintf("   Detail: %s\n", f.Detail))
		if label, ok := report.ThreatFor(f.Message); ok {
			sb.WriteString(fmt.Sprintf("   Threat: %s / %s\n", label.STRIDE, label.OWASP))
		}
		if len(f.Regulations) > 0 {
			sb.WriteString(fmt.Sprintf("   Regulations: %s\n", strings.Join(f.Regulations, ", ")))
		}
	}
	sb.WriteString("\nPrioritize these findings and give concrete remediation steps.")
	return sb.String()
}
