// Package nav declares the narrow contracts the session coordinator uses to
// reach its external collaborators: the editor-navigation service and the
// optional pinned-notification service. Concrete implementations live
// outside the core (internal/editor ships the filesystem-backed one).
package nav

// Source is an opaque handle to an opened source view. The navigation
// collaborator owns its lifetime; the coordinator only passes it back.
type Source interface {
	Path() string
}

// Highlight is a disposer token for a line highlight. Release must be
// idempotent; the collaborator owns the underlying resource.
type Highlight interface {
	Release()
}

// Notification is a disposer token for a pinned message.
type Notification interface {
	Dismiss()
}

// Navigator is the editor-navigation collaborator.
type Navigator interface {
	// ResolveLocation maps a location URL to an openable path. The second
	// return is false when the location does not resolve to a local source.
	ResolveLocation(url string) (string, bool)

	// OpenSource opens the source at path and returns a view handle.
	OpenSource(path string) (Source, error)

	// NavigateTo scrolls the view and positions its caret at line.
	NavigateTo(src Source, line int)

	// HighlightLine marks line in the view and returns a disposer for the
	// mark.
	HighlightLine(src Source, line int) Highlight
}

// Notifier is the optional notification collaborator. It may be absent
// entirely (a nil Notifier), in which case thread-switch messages are
// silently dropped.
type Notifier interface {
	// ShowPinnedMessage displays message anchored to the given view at line.
	ShowPinnedMessage(message string, anchor Source, line int) (Notification, error)
}
