// Package project holds the declarative description of a tmux session: a
// named session with ordered windows, each with ordered panes.
package project

import "errors"

var ErrMissingName = errors.New("project has no session name")

// Session is the top-level unit. Name is used verbatim as the tmux session name.
type Session struct {
	Name      string   `yaml:"name"`
	Directory string   `yaml:"directory,omitempty"`
	Windows   []Window `yaml:"windows,omitempty"`
}

// Window is created in declaration order. An empty Name keeps the tmux default.
type Window struct {
	Name      string `yaml:"name,omitempty"`
	Directory string `yaml:"directory,omitempty"`
	Panes     []Pane `yaml:"panes,omitempty"`
}

// Pane is the leaf unit. Command is sent as a single shell line, never split.
type Pane struct {
	Focus     bool   `yaml:"focus,omitempty"`
	Directory string `yaml:"directory,omitempty"`
	Command   string `yaml:"command,omitempty"`
}

// ApplyDefaults fills absent windows and panes: a session without windows gets
// one window, and a window without panes gets one pane. Explicitly empty lists
// are left alone.
func (s *Session) ApplyDefaults() {
	if s.Windows == nil {
		s.Windows = []Window{{}}
	}
	for i := range s.Windows {
		s.Windows[i].ApplyDefaults()
	}
}

func (w *Window) ApplyDefaults() {
	if w.Panes == nil {
		w.Panes = []Pane{{}}
	}
}

func (s Session) Validate() error {
	if s.Name == "" {
		return ErrMissingName
	}
	return nil
}

// PaneCount returns the number of panes across all windows.
func (s Session) PaneCount() int {
	n := 0
	for _, w := range s.Windows {
		n += len(w.Panes)
	}
	return n
}
