// Package muxer turns a declarative project.Session into a live tmux session.
//
// Apply either switches to an already running session, leaving its layout
// untouched, or builds the session window by window and pane by pane. Window
// and pane identifiers are derived once from the backend's base-index and
// pane-base-index options plus the position in the tree.
package muxer

import (
	"fmt"
	"strconv"
	"strings"

	"github.com/alchemmist/tp/internal/logger"
	"github.com/alchemmist/tp/internal/project"
)

const (
	optionBaseIndex     = "base-index"
	optionPaneBaseIndex = "pane-base-index"
)

// WindowReport lists the backend index of a created window and of its panes.
type WindowReport struct {
	Index int
	Panes []int
}

// Output describes what Apply did. Windows is empty when an existing session
// was reused.
type Output struct {
	SessionName  string
	IsNewSession bool
	Windows      []WindowReport
}

// Muxer is not safe for concurrent use: base indices are stored per Apply call.
type Muxer struct {
	backend    Backend
	baseWindow int
	basePane   int
}

func New(backend Backend) *Muxer {
	return &Muxer{backend: backend}
}

// Apply reconciles s against the backend. When creation fails midway, the
// returned Output reports what was built before the failing call.
func (m *Muxer) Apply(s project.Session) (Output, error) {
	sessionID := NewSessionID(s.Name)
	out := Output{SessionName: s.Name}

	if m.backend.HasSession(sessionID) {
		logger.Info("session exists, switching", "session", sessionID)
		if err := m.backend.SwitchToSession(sessionID); err != nil {
			return out, failed("switch-to-session", sessionID, err)
		}
		return out, nil
	}

	if err := m.setupBaseIDs(); err != nil {
		return out, err
	}

	var first project.Window
	if len(s.Windows) > 0 {
		first = s.Windows[0]
	}
	initialDir := ResolveDirectory(firstPaneDirectory(first), first.Directory, s.Directory)
	logger.Debug("new-session", "session", sessionID, "dir", initialDir)
	if err := m.backend.NewSession(sessionID, initialDir); err != nil {
		return out, failed("new-session", sessionID, err)
	}
	out.IsNewSession = true

	var (
		focus    PaneID
		hasFocus bool
	)
	for w, win := range s.Windows {
		windowID := NewWindowID(sessionID, m.baseWindow+w)

		// The first window comes with the session.
		if w > 0 {
			dir := ResolveDirectory(firstPaneDirectory(win), win.Directory, s.Directory)
			logger.Debug("new-window", "window", windowID, "dir", dir)
			if err := m.backend.NewWindow(sessionID, dir); err != nil {
				return out, failed("new-window", windowID, err)
			}
		}

		if win.Name != "" {
			logger.Debug("rename-window", "window", windowID, "name", win.Name)
			if err := m.backend.RenameWindow(windowID, win.Name); err != nil {
				return out, failed("rename-window", windowID, err)
			}
		}

		report := WindowReport{Index: windowID.Index(), Panes: make([]int, 0, len(win.Panes))}
		for p, pane := range win.Panes {
			paneID := NewPaneID(windowID, m.basePane+p)

			if p > 0 {
				dir := ResolveDirectory(pane.Directory, win.Directory, s.Directory)
				logger.Debug("new-pane", "pane", paneID, "dir", dir)
				if err := m.backend.NewPane(windowID, dir); err != nil {
					return out, failed("new-pane", paneID, err)
				}
			}

			if pane.Command != "" {
				logger.Debug("send-keys", "pane", paneID, "command", pane.Command)
				if err := m.backend.SendKeys(paneID, pane.Command); err != nil {
					return out, failed("send-keys", paneID, err)
				}
			}

			// Last focused pane wins.
			if pane.Focus {
				focus, hasFocus = paneID, true
			}
			report.Panes = append(report.Panes, paneID.Index())
		}
		out.Windows = append(out.Windows, report)
	}

	if hasFocus {
		logger.Debug("select-pane", "pane", focus)
		if err := m.backend.SelectPane(focus); err != nil {
			return out, failed("select-pane", focus, err)
		}
	}

	logger.Info("session created", "session", sessionID, "windows", len(out.Windows))
	if err := m.backend.SwitchToSession(sessionID); err != nil {
		return out, failed("switch-to-session", sessionID, err)
	}
	return out, nil
}

func (m *Muxer) setupBaseIDs() error {
	win, err := m.baseIndex(optionBaseIndex)
	if err != nil {
		return err
	}
	pane, err := m.baseIndex(optionPaneBaseIndex)
	if err != nil {
		return err
	}
	m.baseWindow, m.basePane = win, pane
	logger.Debug("base ids", "window", win, "pane", pane)
	return nil
}

func (m *Muxer) baseIndex(option string) (int, error) {
	raw, err := m.backend.GetOption(option)
	if err != nil {
		return 0, &BaseIDsError{Option: option, Err: err}
	}
	n, err := strconv.Atoi(strings.TrimSpace(raw))
	if err != nil {
		return 0, &BaseIDsError{Option: option, Err: err}
	}
	if n < 0 {
		return 0, &BaseIDsError{Option: option, Err: fmt.Errorf("negative index %d", n)}
	}
	return n, nil
}

func firstPaneDirectory(w project.Window) string {
	if len(w.Panes) == 0 {
		return ""
	}
	return w.Panes[0].Directory
}

func failed(op string, t fmt.Stringer, err error) error {
	logger.Error("backend operation failed", "op", op, "target", t.String(), "err", err)
	return &OperationError{Op: op, Target: t.String(), Err: err}
}
