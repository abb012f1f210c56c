package muxer

// DefaultDirectory is used when neither the pane, the window nor the session
// names a directory.
const DefaultDirectory = "."

// ResolveDirectory returns the first non-empty of pane, window and session,
// falling back to DefaultDirectory.
func ResolveDirectory(pane, window, session string) string {
	switch {
	case pane != "":
		return pane
	case window != "":
		return window
	case session != "":
		return session
	default:
		return DefaultDirectory
	}
}
