package app

import (
	"fmt"
	"io"
	"os"
	"strings"

	"github.com/alchemmist/tp/internal/config"
	"github.com/alchemmist/tp/internal/logger"
	"github.com/alchemmist/tp/internal/muxer"
	"github.com/alchemmist/tp/internal/project"
	"github.com/alchemmist/tp/internal/store"
	"github.com/alchemmist/tp/internal/tmux"
)

type App struct {
	cfg   config.Config
	store *store.Store
	tmux  muxer.Backend
}

type LoadOptions struct {
	// DryRun prints the tmux commands to Out instead of running them.
	DryRun bool
	Out    io.Writer
	// Ready runs once the layout is in place, just before switching to the
	// session. created is false when the session already existed. Attaching
	// blocks until the user detaches, so anything meant to be seen first goes
	// here.
	Ready func(sess project.Session, created bool)
}

// ProjectSummary is a listing entry. Err is set when the file does not parse.
type ProjectSummary struct {
	Name    string
	Windows int
	Panes   int
	Err     error
}

func New(cfg config.Config) *App {
	return &App{
		cfg:   cfg,
		store: store.New(cfg.SessionsDir),
		tmux:  tmux.NewClient(cfg.TmuxBin),
	}
}

// Load reads the named project and reconciles it against tmux.
func (a *App) Load(name string, opts LoadOptions) (muxer.Output, error) {
	name = strings.TrimSpace(name)
	if name == "" {
		return muxer.Output{}, fmt.Errorf("empty project name")
	}

	sess, err := a.store.Load(name)
	if err != nil {
		return muxer.Output{}, err
	}
	logger.Info("project loaded", "project", name, "session", sess.Name, "windows", len(sess.Windows))

	if opts.DryRun {
		out := opts.Out
		if out == nil {
			out = os.Stdout
		}
		return muxer.New(tmux.NewDryRun(a.tmux, out)).Apply(sess)
	}

	unlock, err := acquireLock(sess.Name)
	if err != nil {
		return muxer.Output{}, err
	}
	defer unlock()

	backend := &beforeSwitch{Backend: a.tmux, unlock: unlock}
	if opts.Ready != nil {
		backend.ready = func(created bool) { opts.Ready(sess, created) }
	}
	return muxer.New(backend).Apply(sess)
}

func (a *App) ListProjects() []string {
	return a.store.List()
}

// Summaries loads every project to report its size.
func (a *App) Summaries() []ProjectSummary {
	names := a.store.List()
	out := make([]ProjectSummary, 0, len(names))
	for _, name := range names {
		out = append(out, a.summary(name))
	}
	return out
}

func (a *App) summary(name string) ProjectSummary {
	sess, err := a.store.Load(name)
	if err != nil {
		logger.Warn("project does not load", "project", name, "err", err)
		return ProjectSummary{Name: name, Err: err}
	}
	return summarize(name, sess)
}

func summarize(name string, s project.Session) ProjectSummary {
	return ProjectSummary{Name: name, Windows: len(s.Windows), Panes: s.PaneCount()}
}

func (a *App) CreateProject(name string) (string, error) {
	return a.store.Create(name)
}

func (a *App) pickerProjects() ([]ProjectSummary, error) {
	projects := a.Summaries()
	if len(projects) == 0 {
		return nil, fmt.Errorf("no projects found in %s", a.store.Dir())
	}
	return projects, nil
}

func (a *App) SelectWithTUI() (string, error) {
	projects, err := a.pickerProjects()
	if err != nil {
		return "", err
	}
	return chooseProject(projects)
}

func (a *App) SelectWithFZF() (string, error) {
	projects, err := a.pickerProjects()
	if err != nil {
		return "", err
	}
	return chooseProjectFZF(projects)
}

// beforeSwitch releases the load lock and reports readiness before the
// switch, which blocks for as long as the user stays attached.
type beforeSwitch struct {
	muxer.Backend
	unlock  func()
	ready   func(created bool)
	created bool
}

func (b *beforeSwitch) NewSession(id muxer.SessionID, dir string) error {
	if err := b.Backend.NewSession(id, dir); err != nil {
		return err
	}
	b.created = true
	return nil
}

func (b *beforeSwitch) SwitchToSession(id muxer.SessionID) error {
	b.unlock()
	if b.ready != nil {
		b.ready(b.created)
	}
	return b.Backend.SwitchToSession(id)
}
