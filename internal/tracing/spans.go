package tracing

// Span names.
const (
	SpanTransition = "page.transition"
	SpanAction     = "action.execute"
	SpanScript     = "script.run"
)

// Span attribute keys.
const (
	// Manager attributes
	AttrManagerID = "page_manager.id"

	// Transition attributes
	AttrTransitionID   = "transition.id"
	AttrTransitionKind = "transition.kind"
	AttrIndexFrom      = "transition.from"
	AttrIndexTo        = "transition.to"
	AttrAnimation      = "transition.animation"
	AttrDurationMS     = "transition.duration_ms"

	// Page attributes
	AttrPageID    = "page.id"
	AttrPageLabel = "page.friendly_name"

	// Automation attributes
	AttrActionKind  = "action.kind"
	AttrActionIndex = "action.index"
	AttrScriptID    = "script.id"
)
