package tmux

import (
	"fmt"
	"os"
	"os/exec"
	"strings"

	"github.com/alchemmist/tp/internal/muxer"
	"github.com/pkg/errors"
)

// Client drives a tmux server through its command-line interface. Every call
// runs one tmux process and waits for it.
type Client struct {
	bin string
}

var _ muxer.Backend = (*Client)(nil)

func NewClient(bin string) *Client {
	if strings.TrimSpace(bin) == "" {
		bin = "tmux"
	}
	return &Client{bin: bin}
}

// Run executes tmux attached to the current terminal.
func (c *Client) Run(args ...string) error {
	cmd := exec.Command(c.bin, args...)
	cmd.Stdin = os.Stdin
	cmd.Stdout = os.Stdout
	cmd.Stderr = os.Stderr
	if err := cmd.Run(); err != nil {
		return errors.Wrapf(err, "tmux %s", strings.Join(args, " "))
	}
	return nil
}

func (c *Client) Output(args ...string) (string, error) {
	cmd := exec.Command(c.bin, args...)
	out, err := cmd.CombinedOutput()
	if err != nil {
		return "", errors.Wrapf(err, "tmux %s (%s)", strings.Join(args, " "), strings.TrimSpace(string(out)))
	}
	return string(out), nil
}

func (c *Client) HasSession(id muxer.SessionID) bool {
	err := exec.Command(c.bin, "has-session", "-t", exactSession(id)).Run()
	return err == nil
}

func (c *Client) NewSession(id muxer.SessionID, dir string) error {
	_, err := c.Output(newSessionArgs(id, dir)...)
	return err
}

// SwitchToSession moves the current client when running inside tmux and
// attaches the terminal otherwise.
func (c *Client) SwitchToSession(id muxer.SessionID) error {
	args := switchArgs(id)
	if insideTmux() {
		_, err := c.Output(args...)
		return err
	}
	return c.Run(args...)
}

func (c *Client) NewWindow(session muxer.SessionID, dir string) error {
	_, err := c.Output(newWindowArgs(session, dir)...)
	return err
}

func (c *Client) RenameWindow(id muxer.WindowID, name string) error {
	_, err := c.Output(renameWindowArgs(id, name)...)
	return err
}

func (c *Client) NewPane(window muxer.WindowID, dir string) error {
	_, err := c.Output(newPaneArgs(window, dir)...)
	return err
}

// SelectPane activates the pane's window first; tmux only shows the selected
// pane of the current window.
func (c *Client) SelectPane(id muxer.PaneID) error {
	for _, args := range selectPaneArgs(id) {
		if _, err := c.Output(args...); err != nil {
			return err
		}
	}
	return nil
}

func (c *Client) SendKeys(id muxer.PaneID, text string) error {
	_, err := c.Output(sendKeysArgs(id, text)...)
	return err
}

// GetOption reads a global session option. start-server runs first in the
// same invocation so the answer reflects the user's configuration even when
// no server was running yet.
func (c *Client) GetOption(name string) (string, error) {
	out, err := c.Output("start-server", ";", "show-options", "-gv", name)
	if err != nil {
		msg := err.Error()
		if strings.Contains(msg, "invalid option") || strings.Contains(msg, "unknown option") {
			return "", errors.Wrapf(muxer.ErrOptionNotFound, "%s", name)
		}
		return "", err
	}
	v := strings.TrimSpace(out)
	if v == "" {
		return "", errors.Wrapf(muxer.ErrOptionNotFound, "%s", name)
	}
	return v, nil
}

func (c *Client) SetOption(name, value string) error {
	_, err := c.Output(setOptionArgs(name, value)...)
	return err
}

func insideTmux() bool {
	return os.Getenv("TMUX") != ""
}

// tmux stores "." and ":" in session names as "_" since they separate
// window and pane in a target.
var sessionNameReplacer = strings.NewReplacer(".", "_", ":", "_")

// sessionTarget is the name tmux actually gives the session.
func sessionTarget(id muxer.SessionID) string {
	return sessionNameReplacer.Replace(id.Name())
}

func windowTarget(id muxer.WindowID) string {
	return fmt.Sprintf("%s:%d", sessionTarget(id.Session()), id.Index())
}

func paneTarget(id muxer.PaneID) string {
	return fmt.Sprintf("%s.%d", windowTarget(id.Window()), id.Index())
}

// exactSession prevents tmux from matching "api" against a running "api-v2".
func exactSession(id muxer.SessionID) string {
	return "=" + sessionTarget(id)
}

func newSessionArgs(id muxer.SessionID, dir string) []string {
	return []string{"new-session", "-d", "-s", sessionTarget(id), "-c", dir}
}

func switchArgs(id muxer.SessionID) []string {
	if insideTmux() {
		return []string{"switch-client", "-t", exactSession(id)}
	}
	return []string{"attach-session", "-t", exactSession(id)}
}

func newWindowArgs(session muxer.SessionID, dir string) []string {
	return []string{"new-window", "-t", sessionTarget(session), "-c", dir}
}

func renameWindowArgs(id muxer.WindowID, name string) []string {
	return []string{"rename-window", "-t", windowTarget(id), name}
}

func newPaneArgs(window muxer.WindowID, dir string) []string {
	return []string{"split-window", "-t", windowTarget(window), "-c", dir}
}

func selectPaneArgs(id muxer.PaneID) [][]string {
	return [][]string{
		{"select-window", "-t", windowTarget(id.Window())},
		{"select-pane", "-t", paneTarget(id)},
	}
}

func sendKeysArgs(id muxer.PaneID, text string) []string {
	return []string{"send-keys", "-t", paneTarget(id), text, "C-m"}
}

func setOptionArgs(name, value string) []string {
	return []string{"set-option", "-g", name, value}
}
