package report

import "github.com/user/apisentry/pkg/engine"

// ThreatLabel is the presentation-layer classification of a finding:
// its STRIDE category and the matching OWASP API Security reference.
// The lookup joins on the engine's fixed message vocabulary and carries
// no decision logic.
type ThreatLabel struct {
	STRIDE string
	OWASP  string
}

var threatLabels = map[string]ThreatLabel{
	engine.MsgMissingAuth: {
		STRIDE: "Spoofing",
		OWASP:  "API2:2023 Broken Authentication",
	},
	engine.MsgSensitiveData: {
		STRIDE: "Information Disclosure",
		OWASP:  "API3:2023 Broken Object Property Level Authorization",
	},
	engine.MsgExcessiveData: {
		STRIDE: "Information Disclosure",
		OWASP:  "API3:2023 Broken Object Property Level Authorization",
	},
	engine.MsgGDPRExposure: {
		STRIDE: "Information Disclosure",
		OWASP:  "API3:2023 Broken Object Property Level Authorization",
	},
	engine.MsgCCPAExposure: {
		STRIDE: "Information Disclosure",
		OWASP:  "API3:2023 Broken Object Property Level Authorization",
	},
	engine.MsgHIPAAExposure: {
		STRIDE: "Information Disclosure",
		OWASP:  "API3:2023 Broken Object Property Level Authorization",
	},
	engine.MsgPCIDSSExposure: {
		STRIDE: "Information Disclosure",
		OWASP:  "API3:2023 Broken Object Property Level Authorization",
	},
}

// ThreatFor returns the threat label for a finding message, if any.
func ThreatFor(message string) (ThreatLabel, bool) {
	label, ok := threatLabels[message]
	return label, ok
}
