package tmux

import (
	"fmt"
	"io"
	"strings"

	"github.com/alchemmist/tp/internal/muxer"
)

// DryRun answers queries from a real backend but prints mutating operations as
// tmux command lines instead of running them.
type DryRun struct {
	query muxer.Backend
	out   io.Writer
}

var _ muxer.Backend = (*DryRun)(nil)

func NewDryRun(query muxer.Backend, out io.Writer) *DryRun {
	return &DryRun{query: query, out: out}
}

func (d *DryRun) print(args []string) error {
	quoted := make([]string, 0, len(args)+1)
	quoted = append(quoted, "tmux")
	for _, a := range args {
		quoted = append(quoted, shellQuote(a))
	}
	_, err := fmt.Fprintln(d.out, strings.Join(quoted, " "))
	return err
}

func (d *DryRun) HasSession(id muxer.SessionID) bool { return d.query.HasSession(id) }

func (d *DryRun) GetOption(name string) (string, error) { return d.query.GetOption(name) }

func (d *DryRun) NewSession(id muxer.SessionID, dir string) error {
	return d.print(newSessionArgs(id, dir))
}

func (d *DryRun) SwitchToSession(id muxer.SessionID) error {
	return d.print(switchArgs(id))
}

func (d *DryRun) NewWindow(session muxer.SessionID, dir string) error {
	return d.print(newWindowArgs(session, dir))
}

func (d *DryRun) RenameWindow(id muxer.WindowID, name string) error {
	return d.print(renameWindowArgs(id, name))
}

func (d *DryRun) NewPane(window muxer.WindowID, dir string) error {
	return d.print(newPaneArgs(window, dir))
}

func (d *DryRun) SelectPane(id muxer.PaneID) error {
	for _, args := range selectPaneArgs(id) {
		if err := d.print(args); err != nil {
			return err
		}
	}
	return nil
}

func (d *DryRun) SendKeys(id muxer.PaneID, text string) error {
	return d.print(sendKeysArgs(id, text))
}

func (d *DryRun) SetOption(name, value string) error {
	return d.print(setOptionArgs(name, value))
}

const shellSafe = "abcdefghijklmnopqrstuvwxyzABCDEFGHIJKLMNOPQRSTUVWXYZ0123456789-_./:=@%+,"

func shellQuote(s string) string {
	if s == "" {
		return "''"
	}
	if strings.Trim(s, shellSafe) == "" {
		return s
	}
	return "'" + strings.ReplaceAll(s, "'", `'\''`) + "'"
}
