package app

import (
	"bytes"
	"fmt"
	"os/exec"
	"strings"
)

func chooseProjectFZF(projects []ProjectSummary) (string, error) {
	var input bytes.Buffer
	for _, p := range projects {
		size := fmt.Sprintf("%dw/%dp", p.Windows, p.Panes)
		if p.Err != nil {
			size = "invalid"
		}
		fmt.Fprintf(&input, "%s\t%s\n", p.Name, size)
	}

	cmd := exec.Command("fzf", "--prompt", "tp> ", "--delimiter", "\t", "--with-nth", "1,2", "--height", "100%", "--layout", "reverse")
	cmd.Stdin = &input
	out, err := cmd.Output()
	if err != nil {
		return "", fmt.Errorf("fzf selection canceled or failed: %w", err)
	}

	selected := strings.TrimSpace(string(out))
	if selected == "" {
		return "", fmt.Errorf("no project selected")
	}
	return strings.Split(selected, "\t")[0], nil
}
