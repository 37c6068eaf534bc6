package sensitive

// Category groups related field-name patterns and the regulations that
// attach to data matching them.
type Category struct {
	Name        string
	Patterns    []string
	Regulations []string
}

// Catalogue is the single source of truth for sensitive field
// detection. Matching is case-insensitive substring containment, so a
// pattern like "token" intentionally also hits "token_type"; recall is
// preferred over precision here. All components classify through this
// table rather than carrying their own literals, and tests enumerate
// it directly.
var Catalogue = []Category{
	{
		Name:     "credentials",
		Patterns: []string{"password", "passwd", "pwd", "secret", "credential", "passphrase"},
	},
	{
		Name: "encryption-keys",
		Patterns: []string{
			"private_key", "privatekey", "secret_key", "secretkey",
			"encryption_key", "signing_key", "master_key",
		},
	},
	{
		Name: "financial",
		Patterns: []string{
			"credit_card", "creditcard", "card_number", "cardnumber",
			"cvv", "cvc", "iban", "account_number", "routing_number",
			"swift_code", "tax_id", "salary",
		},
		Regulations: []string{"PCI-DSS", "SOX", "CCPA"},
	},
	{
		Name: "pii",
		Patterns: []string{
			"ssn", "social_security", "passport", "driver_license",
			"drivers_license", "national_id", "date_of_birth", "birthdate", "dob",
		},
		Regulations: []string{"GDPR", "CCPA", "PIPEDA", "LGPD"},
	},
	{
		Name: "personal",
		Patterns: []string{
			"email", "phone", "mobile", "home_address", "street_address",
			"postal_code", "zipcode", "gender", "nationality",
		},
		Regulations: []string{"GDPR", "CCPA"},
	},
	{
		Name: "health",
		Patterns: []string{
			"medical", "diagnosis", "prescription", "blood_type",
			"biometric", "fingerprint", "dna", "health_record", "insurance_number",
		},
		Regulations: []string{"HIPAA", "GDPR", "CCPA"},
	},
	{
		Name: "tokens",
		Patterns: []string{
			"token", "session_id", "sessionid", "api_key", "apikey",
			"access_key", "accesskey", "bearer", "jwt", "cookie", "auth_header",
		},
	},
	{
		Name: "cloud-secrets",
		Patterns: []string{
			"aws_access_key", "aws_secret", "azure_client_secret",
			"gcp_credentials", "service_account_key", "connection_string",
		},
	},
	{
		Name: "network-identifiers",
		Patterns: []string{
			"ip_address", "ipaddress", "mac_address", "imei", "imsi", "device_id",
		},
		Regulations: []string{"GDPR", "CCPA"},
	},
	{
		Name: "internal",
		Patterns: []string{
			"stack_trace", "stacktrace", "db_host", "db_password",
			"internal_ip", "debug_info",
		},
	},
	{
		Name: "ai-keys",
		Patterns: []string{
			"openai_key", "openai_api", "anthropic_key", "anthropic_api",
			"huggingface_token", "gemini_key",
		},
	},
}
