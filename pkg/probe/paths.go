package probe

// specLocations is the fixed ordered list of conventional spec
// locations tried relative to a base URL. The first response that
// parses as a valid spec wins and short-circuits the rest.
var specLocations = []string{
	"/openapi.json",
	"/openapi.yaml",
	"/swagger.json",
	"/swagger.yaml",
	"/api-docs",
	"/api-docs.json",
	"/v2/api-docs",
	"/v3/api-docs",
	"/api/openapi.json",
	"/api/swagger.json",
	"/docs/openapi.json",
	"/swagger/v1/swagger.json",
	"/.well-known/openapi.json",
}

// endpointPaths is the fixed list of conventional resource paths probed
// when no spec document can be discovered.
var endpointPaths = []string{
	"/api",
	"/api/users",
	"/api/v1/users",
	"/api/accounts",
	"/api/orders",
	"/api/config",
	"/api/keys",
	"/users",
	"/admin",
	"/admin/users",
	"/config.json",
	"/.env",
	"/health",
	"/status",
	"/metrics",
	"/debug",
	"/graphql",
}
