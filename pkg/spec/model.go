package spec

// SourceKind identifies which input format a CanonicalSpec was built from.
type SourceKind string

const (
	SourceOpenAPI3         SourceKind = "openapi3"
	SourceSwaggerConverted SourceKind = "swagger2-converted"
	SourceCollection       SourceKind = "collection"
	SourceTrafficCapture   SourceKind = "traffic-capture"
	SourceLiveProbe        SourceKind = "live-probe"
)

// CanonicalSpec is the normalized representation every adapter produces
// and the rule engine consumes. It is built once per scan and never
// mutated after scanning begins.
type CanonicalSpec struct {
	// Paths maps URL path templates (exact, non-normalized casing) to
	// their operations.
	Paths map[string]PathItem

	// GlobalSecurity lists spec-wide security requirement names. An
	// empty slice means no global requirement.
	GlobalSecurity []string

	SourceKind SourceKind

	// RegulatoryMeta retains the original security scheme definitions
	// for informational reporting only. Never consulted by rules.
	RegulatoryMeta map[string]interface{}
}

// PathItem maps lowercase HTTP method tokens to operations.
type PathItem map[string]Operation

// Operation is one HTTP method on one path.
type Operation struct {
	// Security is the operation's own security requirement list. A nil
	// slice means "inherit GlobalSecurity"; a non-nil empty slice means
	// the operation explicitly requires nothing.
	Security []string

	// Responses maps status code strings ("200", "default") to
	// response descriptions.
	Responses map[string]ResponseSpec

	// Probed is set when this operation's knowledge came from a live
	// probe rather than a declared document.
	Probed bool

	// ProbedSensitiveFields holds dotted field paths observed directly
	// in a live response body when no formal schema exists.
	ProbedSensitiveFields []string
}

// ResponseSpec describes one response. Schema is nil when the body
// structure is unknown.
type ResponseSpec struct {
	Schema *SchemaNode
}

// SchemaKind discriminates SchemaNode variants.
type SchemaKind int

const (
	KindScalar SchemaKind = iota
	KindObject
	KindArray
)

// SchemaNode is a recursive, structural view of a response body. Only
// the shape matters to the scanner; value types and formats are
// deliberately collapsed into scalars.
type SchemaNode struct {
	Kind       SchemaKind
	Properties map[string]*SchemaNode // object only
	Items      *SchemaNode            // array only, nil when unknown
}

// NewCanonicalSpec returns an empty spec of the given kind with all
// collections initialized, so adapters can fill it in incrementally.
func NewCanonicalSpec(kind SourceKind) *CanonicalSpec {
	return &CanonicalSpec{
		Paths:          make(map[string]PathItem),
		GlobalSecurity: []string{},
		SourceKind:     kind,
	}
}

// AddOperation inserts an operation, creating the path item on demand.
// An existing (path, method) pair is kept; later duplicates are
// dropped so that every pair yields at most one operation.
func (s *CanonicalSpec) AddOperation(path, method string, op Operation) {
	item, ok := s.Paths[path]
	if !ok {
		item = make(PathItem)
		s.Paths[path] = item
	}
	if _, exists := item[method]; exists {
		return
	}
	item[method] = op
}
