package tracing

// Span attribute keys for artifact creation tracing. These constants define
// the semantic conventions for span attributes in the creation framework.
const (
	// Artifact attributes
	AttrArtifactKind    = "artifact.kind"
	AttrArtifactName    = "artifact.name"
	AttrArtifactVersion = "artifact.version"
	AttrArtifactHash    = "artifact.hash"
	AttrRegisteredName  = "artifact.registered_name"

	// Lookup attributes
	AttrStrictMode  = "lookup.strict"
	AttrCacheHit    = "lookup.cache_hit"
	AttrFilterKind  = "lookup.filter_kind"
	AttrResolvedVia = "lookup.resolved_via"

	// Error attributes
	AttrErrorMessage = "error.message"
	AttrErrorType    = "error.type"
)

// Span names used by the creation framework.
const (
	SpanRetrieveOrCreate = "creator.retrieve_or_create"
	SpanCreateNew        = "creator.create_new"
	SpanMaterialize      = "creator.materialize"
)
