package muxer

import "fmt"

// SessionID addresses a tmux session. The name is taken verbatim; tmux decides
// what is legal.
type SessionID struct {
	name string
}

func NewSessionID(name string) SessionID {
	return SessionID{name: name}
}

func (s SessionID) Name() string { return s.name }

func (s SessionID) String() string { return s.name }

// WindowID addresses a window by backend index inside its session and renders
// as "session:index".
type WindowID struct {
	session SessionID
	index   int
}

func NewWindowID(session SessionID, index int) WindowID {
	return WindowID{session: session, index: index}
}

func (w WindowID) Session() SessionID { return w.session }

func (w WindowID) Index() int { return w.index }

func (w WindowID) String() string {
	return fmt.Sprintf("%s:%d", w.session, w.index)
}

// PaneID addresses a pane by backend index inside its window and renders as
// "session:window.pane". It carries its owning window, so a pane recorded
// during traversal can be targeted later without the declarative tree.
type PaneID struct {
	window WindowID
	index  int
}

func NewPaneID(window WindowID, index int) PaneID {
	return PaneID{window: window, index: index}
}

func (p PaneID) Window() WindowID { return p.window }

func (p PaneID) Session() SessionID { return p.window.session }

func (p PaneID) Index() int { return p.index }

func (p PaneID) String() string {
	return fmt.Sprintf("%s.%d", p.window, p.index)
}
