package engine

// Severity levels for findings.
type Severity string

const (
	SeverityHigh   Severity = "high"
	SeverityMedium Severity = "medium"
)

// The fixed finding message vocabulary. Downstream presentation joins
// on these exact strings (threat mapping, baselines), so they must not
// be reworded.
const (
	MsgMissingAuth    = "Missing authentication"
	MsgSensitiveData  = "Sensitive data exposed in response"
	MsgExcessiveData  = "Excessive data exposure"
	MsgGDPRExposure   = "GDPR-regulated data exposed in response"
	MsgCCPAExposure   = "CCPA-regulated data exposed in response"
	MsgHIPAAExposure  = "HIPAA-regulated data exposed in response"
	MsgPCIDSSExposure = "PCI-DSS-regulated data exposed in response"
)

// Finding is one reported security issue.
type Finding struct {
	Severity Severity `json:"severity"`
	Message  string   `json:"message"`
	Detail   string   `json:"detail"`
	Fix      string   `json:"fix"`
	// Regulations is present only in compliance mode.
	Regulations []string `json:"regulations,omitempty"`

	Path   string `json:"path"`
	Method string `json:"method"`
}

// fixTexts maps the message vocabulary to remediation guidance.
var fixTexts = map[string]string{
	MsgMissingAuth:    "Add an authentication requirement (e.g. bearer or API key security scheme) to this operation or to the global security block.",
	MsgSensitiveData:  "Remove sensitive fields from the response body, or mask/tokenize them and restrict the endpoint to authorized callers.",
	MsgExcessiveData:  "Return only the fields clients actually need; introduce a purpose-built response model instead of serializing the full entity.",
	MsgGDPRExposure:   "Minimize exposure of GDPR-protected personal data: drop or pseudonymize the listed fields and document a lawful basis for any that remain.",
	MsgCCPAExposure:   "Minimize exposure of CCPA-covered consumer data: drop the listed fields or gate them behind access controls and disclosure notices.",
	MsgHIPAAExposure:  "Remove protected health information from this response or restrict it to covered, authenticated workflows.",
	MsgPCIDSSExposure: "Never return cardholder data in API responses; truncate or tokenize the listed fields per PCI-DSS storage rules.",
}

// FixFor returns the remediation text for a finding message.
func FixFor(message string) string {
	return fixTexts[message]
}
