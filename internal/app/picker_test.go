package app

import (
	"errors"
	"os"
	"path/filepath"
	"strings"
	"testing"

	tea "github.com/charmbracelet/bubbletea"
)

func TestChooseProjectFZFSuccess(t *testing.T) {
	t.Setenv("PATH", withFakeFZF(t, "#!/bin/sh\nprintf 'beta\t2w/3p\n'\n")+":"+os.Getenv("PATH"))

	projects := []ProjectSummary{
		{Name: "alpha", Windows: 1, Panes: 1},
		{Name: "beta", Windows: 2, Panes: 3},
	}

	selected, err := chooseProjectFZF(projects)
	if err != nil {
		t.Fatalf("chooseProjectFZF: %v", err)
	}
	if selected != "beta" {
		t.Fatalf("expected beta, got %q", selected)
	}
}

func TestChooseProjectFZFReceivesSummaries(t *testing.T) {
	input := filepath.Join(t.TempDir(), "stdin")
	t.Setenv("FZF_INPUT", input)
	t.Setenv("PATH", withFakeFZF(t, "#!/bin/sh\ncat > \"$FZF_INPUT\"\nhead -n1 \"$FZF_INPUT\"\n")+":"+os.Getenv("PATH"))

	projects := []ProjectSummary{
		{Name: "alpha", Windows: 2, Panes: 5},
		{Name: "broken", Err: errors.New("parser error")},
	}
	if _, err := chooseProjectFZF(projects); err != nil {
		t.Fatalf("chooseProjectFZF: %v", err)
	}

	b, err := os.ReadFile(input)
	if err != nil {
		t.Fatalf("read fzf input: %v", err)
	}
	if got, want := string(b), "alpha\t2w/5p\nbroken\tinvalid\n"; got != want {
		t.Fatalf("unexpected fzf input %q, want %q", got, want)
	}
}

func TestChooseProjectFZFEmptySelection(t *testing.T) {
	t.Setenv("PATH", withFakeFZF(t, "#!/bin/sh\nexit 0\n")+":"+os.Getenv("PATH"))

	_, err := chooseProjectFZF([]ProjectSummary{{Name: "alpha", Windows: 1, Panes: 1}})
	if err == nil {
		t.Fatal("expected error for empty selection")
	}
	if !strings.Contains(err.Error(), "no project selected") {
		t.Fatalf("unexpected error: %v", err)
	}
}

func TestChooseProjectFZFCommandFailure(t *testing.T) {
	t.Setenv("PATH", withFakeFZF(t, "#!/bin/sh\nexit 130\n")+":"+os.Getenv("PATH"))

	_, err := chooseProjectFZF([]ProjectSummary{{Name: "alpha", Windows: 1, Panes: 1}})
	if err == nil {
		t.Fatal("expected command failure error")
	}
	if !strings.Contains(err.Error(), "fzf selection canceled or failed") {
		t.Fatalf("unexpected error: %v", err)
	}
}

func TestFuzzyScore(t *testing.T) {
	if _, ok := fuzzyScore("xyz", "backend"); ok {
		t.Fatal("expected no match")
	}
	tight, ok := fuzzyScore("api", "api-server")
	if !ok {
		t.Fatal("expected match")
	}
	loose, ok := fuzzyScore("api", "a-p-i")
	if !ok {
		t.Fatal("expected subsequence match")
	}
	if tight <= loose {
		t.Fatalf("consecutive match should score higher: %d <= %d", tight, loose)
	}
}

func TestPickerModelFiltersAndSelects(t *testing.T) {
	m := newPickerModel([]ProjectSummary{
		{Name: "blog", Windows: 1, Panes: 1},
		{Name: "api-server", Windows: 3, Panes: 4},
	})
	if len(m.visible) != 2 || m.visible[0].project.Name != "api-server" {
		t.Fatalf("expected alphabetical order for empty query, got %+v", m.visible)
	}

	for _, r := range "blg" {
		next, _ := m.Update(tea.KeyMsg{Type: tea.KeyRunes, Runes: []rune{r}})
		m = next.(pickerModel)
	}
	if len(m.visible) != 1 || m.visible[0].project.Name != "blog" {
		t.Fatalf("unexpected filter result: %+v", m.visible)
	}

	next, cmd := m.Update(tea.KeyMsg{Type: tea.KeyEnter})
	m = next.(pickerModel)
	if m.selected != "blog" || cmd == nil {
		t.Fatalf("expected blog to be selected, got %q", m.selected)
	}
}

func TestPickerModelCancel(t *testing.T) {
	m := newPickerModel([]ProjectSummary{{Name: "blog"}})
	next, _ := m.Update(tea.KeyMsg{Type: tea.KeyEsc})
	if !next.(pickerModel).cancelled {
		t.Fatal("expected esc to cancel")
	}
}

func TestTrim(t *testing.T) {
	if got := trim("abcdef", 5); got != "ab..." {
		t.Fatalf("unexpected trim: %q", got)
	}
	if got := trim("abc", 5); got != "abc" {
		t.Fatalf("unexpected trim: %q", got)
	}
}

func withFakeFZF(t *testing.T, script string) string {
	t.Helper()
	dir := t.TempDir()
	path := filepath.Join(dir, "fzf")
	if err := os.WriteFile(path, []byte(script), 0o755); err != nil {
		t.Fatalf("write fake fzf: %v", err)
	}
	return dir
}
