package store

import (
	"bytes"
	"io"
	"os"
	"path/filepath"
	"strings"

	"github.com/pelletier/go-toml/v2"
	"github.com/pkg/errors"
	"gopkg.in/yaml.v3"

	"github.com/alchemmist/tp/internal/project"
)

// The on-disk shape uses pointers so that null list entries ("windows: [~]")
// survive decoding and become default windows or panes.
type sessionDoc struct {
	Name      string       `yaml:"name" toml:"name"`
	Directory string       `yaml:"directory" toml:"directory"`
	Windows   []*windowDoc `yaml:"windows" toml:"windows"`
}

type windowDoc struct {
	Name      string     `yaml:"name" toml:"name"`
	Directory string     `yaml:"directory" toml:"directory"`
	Panes     []*paneDoc `yaml:"panes" toml:"panes"`
}

type paneDoc struct {
	Focus     bool   `yaml:"focus" toml:"focus"`
	Directory string `yaml:"directory" toml:"directory"`
	Command   string `yaml:"command" toml:"command"`
}

// Parse decodes a project file. ext selects the format (".toml" for TOML,
// anything else is YAML). Unknown fields are rejected, defaults are applied
// and directories have a leading ~ expanded.
func Parse(data []byte, ext string) (project.Session, error) {
	var doc sessionDoc
	if strings.EqualFold(ext, ".toml") {
		dec := toml.NewDecoder(bytes.NewReader(data))
		dec.DisallowUnknownFields()
		if err := dec.Decode(&doc); err != nil {
			return project.Session{}, errors.Wrap(err, "parser error")
		}
	} else {
		dec := yaml.NewDecoder(bytes.NewReader(data))
		dec.KnownFields(true)
		if err := dec.Decode(&doc); err != nil {
			if errors.Is(err, io.EOF) {
				return project.Session{}, errors.Wrap(project.ErrMissingName, "parser error: empty document")
			}
			return project.Session{}, errors.Wrap(err, "parser error")
		}
	}

	sess := doc.session()
	sess.ApplyDefaults()
	if err := sess.Validate(); err != nil {
		return project.Session{}, err
	}
	return sess, nil
}

func (d sessionDoc) session() project.Session {
	s := project.Session{
		Name:      d.Name,
		Directory: ExpandHome(d.Directory),
	}
	if d.Windows == nil {
		return s
	}
	s.Windows = make([]project.Window, 0, len(d.Windows))
	for _, w := range d.Windows {
		if w == nil {
			s.Windows = append(s.Windows, project.Window{})
			continue
		}
		s.Windows = append(s.Windows, w.window())
	}
	return s
}

func (d windowDoc) window() project.Window {
	w := project.Window{
		Name:      d.Name,
		Directory: ExpandHome(d.Directory),
	}
	if d.Panes == nil {
		return w
	}
	w.Panes = make([]project.Pane, 0, len(d.Panes))
	for _, p := range d.Panes {
		if p == nil {
			w.Panes = append(w.Panes, project.Pane{})
			continue
		}
		w.Panes = append(w.Panes, project.Pane{
			Focus:     p.Focus,
			Directory: ExpandHome(p.Directory),
			Command:   p.Command,
		})
	}
	return w
}

// ExpandHome replaces a leading "~/" (or a bare "~") with $HOME. Paths are
// returned unchanged when HOME is unset.
func ExpandHome(path string) string {
	if path != "~" && !strings.HasPrefix(path, "~/") {
		return path
	}
	home := os.Getenv("HOME")
	if home == "" {
		return path
	}
	return filepath.Join(home, strings.TrimPrefix(path, "~"))
}
