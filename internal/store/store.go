package store

import (
	"bytes"
	"os"
	"path/filepath"
	"sort"
	"strings"

	"github.com/pkg/errors"
	"gopkg.in/yaml.v3"

	"github.com/alchemmist/tp/internal/project"
)

const (
	dirEnv          = "TP_SESSIONS_DIR"
	defaultDirName  = ".config/tp"
	defaultDirPerm  = 0o755
	defaultFilePerm = 0o644
)

// Extensions are tried in this order when loading a project by name.
var extensions = []string{".yaml", ".yml", ".toml"}

var ErrInvalidProjectsDir = errors.New("invalid projects directory")

// Store reads project files from a single directory.
type Store struct {
	baseDir string
}

func New(baseDir string) *Store {
	return &Store{baseDir: baseDir}
}

// DefaultDir returns $TP_SESSIONS_DIR, or ~/.config/tp. It fails when neither
// the variable nor a home directory is available.
func DefaultDir() (string, error) {
	if v := strings.TrimSpace(os.Getenv(dirEnv)); v != "" {
		return v, nil
	}
	home := strings.TrimSpace(os.Getenv("HOME"))
	if home == "" {
		return "", ErrInvalidProjectsDir
	}
	return filepath.Join(home, defaultDirName), nil
}

func (s *Store) Dir() string { return s.baseDir }

// Load reads and decodes the project called name. Missing files wrap
// os.ErrNotExist.
func (s *Store) Load(name string) (project.Session, error) {
	if s.baseDir == "" {
		return project.Session{}, ErrInvalidProjectsDir
	}
	for _, ext := range extensions {
		path := filepath.Join(s.baseDir, name+ext)
		b, err := os.ReadFile(path)
		if err != nil {
			if errors.Is(err, os.ErrNotExist) {
				continue
			}
			return project.Session{}, errors.Wrapf(err, "unable to load %s", path)
		}
		sess, err := Parse(b, ext)
		if err != nil {
			return project.Session{}, errors.Wrapf(err, "parse %s", path)
		}
		return sess, nil
	}
	return project.Session{}, errors.Wrapf(os.ErrNotExist, "project %q in %s", name, s.baseDir)
}

// List returns the sorted names of all projects in the directory. A missing or
// unreadable directory yields no names.
func (s *Store) List() []string {
	if s.baseDir == "" {
		return nil
	}
	entries, err := os.ReadDir(s.baseDir)
	if err != nil {
		return nil
	}
	seen := map[string]struct{}{}
	names := make([]string, 0, len(entries))
	for _, e := range entries {
		if !e.Type().IsRegular() {
			continue
		}
		ext := filepath.Ext(e.Name())
		if !supported(ext) {
			continue
		}
		name := strings.TrimSuffix(e.Name(), ext)
		if _, ok := seen[name]; ok || name == "" {
			continue
		}
		seen[name] = struct{}{}
		names = append(names, name)
	}
	sort.Strings(names)
	return names
}

// Create writes a starter project and returns its path. It refuses to
// overwrite an existing file.
func (s *Store) Create(name string) (string, error) {
	if s.baseDir == "" {
		return "", ErrInvalidProjectsDir
	}
	name = strings.TrimSpace(name)
	if name == "" || strings.ContainsAny(name, `/\`) {
		return "", errors.Errorf("invalid project name %q", name)
	}

	sess := project.Session{
		Name:      name,
		Directory: ".",
		Windows: []project.Window{{
			Name:  "shell",
			Panes: []project.Pane{{Focus: true, Command: "echo 'Hello :)'"}},
		}},
	}

	var buf bytes.Buffer
	enc := yaml.NewEncoder(&buf)
	enc.SetIndent(2)
	if err := enc.Encode(sess); err != nil {
		return "", errors.Wrap(err, "encode project")
	}
	if err := enc.Close(); err != nil {
		return "", errors.Wrap(err, "encode project")
	}

	if err := os.MkdirAll(s.baseDir, defaultDirPerm); err != nil {
		return "", errors.Wrapf(err, "create %s", s.baseDir)
	}
	path := filepath.Join(s.baseDir, name+extensions[0])
	f, err := os.OpenFile(path, os.O_CREATE|os.O_EXCL|os.O_WRONLY, defaultFilePerm)
	if err != nil {
		return "", errors.Wrapf(err, "create %s", path)
	}
	if _, err := f.Write(buf.Bytes()); err != nil {
		_ = f.Close()
		return "", errors.Wrapf(err, "write %s", path)
	}
	return path, f.Close()
}

func supported(ext string) bool {
	for _, e := range extensions {
		if e == ext {
			return true
		}
	}
	return false
}
