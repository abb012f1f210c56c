package app

import (
	"fmt"
	"sort"
	"strings"

	"github.com/charmbracelet/bubbles/table"
	"github.com/charmbracelet/bubbles/textinput"
	tea "github.com/charmbracelet/bubbletea"
	"github.com/charmbracelet/lipgloss"
)

var (
	titleStyle = lipgloss.NewStyle().Bold(true).Foreground(lipgloss.Color("63"))
	hintStyle  = lipgloss.NewStyle().Faint(true)
	emptyStyle = lipgloss.NewStyle().Foreground(lipgloss.Color("203"))
)

type pickerRow struct {
	project ProjectSummary
	score   int
}

type pickerModel struct {
	allRows    []pickerRow
	visible    []pickerRow
	queryInput textinput.Model
	table      table.Model
	selected   string
	cancelled  bool
	width      int
	height     int
}

func newPickerModel(projects []ProjectSummary) pickerModel {
	input := textinput.New()
	input.Placeholder = "fuzzy search"
	input.Prompt = "project> "
	input.Focus()

	cols := []table.Column{
		{Title: "PROJECT", Width: 32},
		{Title: "WINS", Width: 6},
		{Title: "PANES", Width: 6},
	}

	tbl := table.New(
		table.WithColumns(cols),
		table.WithRows(nil),
		table.WithFocused(true),
		table.WithHeight(16),
	)

	m := pickerModel{
		queryInput: input,
		table:      tbl,
		allRows:    make([]pickerRow, 0, len(projects)),
	}
	for _, p := range projects {
		m.allRows = append(m.allRows, pickerRow{project: p})
	}
	m.applyFilter()
	return m
}

func (m pickerModel) Init() tea.Cmd {
	return textinput.Blink
}

func (m pickerModel) Update(msg tea.Msg) (tea.Model, tea.Cmd) {
	switch msg := msg.(type) {
	case tea.WindowSizeMsg:
		m.width = msg.Width
		m.height = msg.Height
		m.resize()
		return m, nil
	case tea.KeyMsg:
		switch msg.String() {
		case "ctrl+c", "esc":
			m.cancelled = true
			return m, tea.Quit
		case "enter":
			idx := m.table.Cursor()
			if idx >= 0 && idx < len(m.visible) {
				m.selected = m.visible[idx].project.Name
				return m, tea.Quit
			}
			return m, nil
		}
	}

	prevQuery := m.queryInput.Value()
	var cmdInput tea.Cmd
	m.queryInput, cmdInput = m.queryInput.Update(msg)
	if prevQuery != m.queryInput.Value() {
		m.applyFilter()
	}

	// Typed characters belong to the query, not to the table's vim keys.
	var cmdTable tea.Cmd
	if key, ok := msg.(tea.KeyMsg); !ok || key.Type != tea.KeyRunes {
		m.table, cmdTable = m.table.Update(msg)
	}

	return m, tea.Batch(cmdInput, cmdTable)
}

func (m pickerModel) View() string {
	var b strings.Builder
	b.WriteString(titleStyle.Render("tp projects"))
	b.WriteString("\n")
	b.WriteString(hintStyle.Render("enter: load  esc/ctrl-c: cancel  up/down: move"))
	b.WriteString("\n\n")
	b.WriteString(m.queryInput.View())
	b.WriteString("\n\n")
	if len(m.visible) == 0 {
		b.WriteString(emptyStyle.Render("No projects match query"))
		b.WriteString("\n")
		return b.String()
	}
	b.WriteString(m.table.View())
	return b.String()
}

func (m *pickerModel) resize() {
	if m.width <= 0 {
		return
	}
	nameW := m.width - 20
	if nameW < 16 {
		nameW = 16
	}
	cols := m.table.Columns()
	if len(cols) == 3 {
		cols[0].Width = nameW
		m.table.SetColumns(cols)
	}

	tableHeight := m.height - 7
	if tableHeight < 5 {
		tableHeight = 5
	}
	m.table.SetHeight(tableHeight)
}

func (m *pickerModel) applyFilter() {
	query := strings.TrimSpace(strings.ToLower(m.queryInput.Value()))
	rows := make([]pickerRow, 0, len(m.allRows))

	for _, row := range m.allRows {
		score, ok := fuzzyScore(query, strings.ToLower(row.project.Name))
		if !ok {
			continue
		}
		row.score = score
		rows = append(rows, row)
	}

	sort.SliceStable(rows, func(i, j int) bool {
		if rows[i].score == rows[j].score {
			return rows[i].project.Name < rows[j].project.Name
		}
		return rows[i].score > rows[j].score
	})

	m.visible = rows
	tableRows := make([]table.Row, 0, len(rows))
	for _, row := range rows {
		wins, panes := fmt.Sprintf("%d", row.project.Windows), fmt.Sprintf("%d", row.project.Panes)
		if row.project.Err != nil {
			wins, panes = "!", "!"
		}
		tableRows = append(tableRows, table.Row{trim(row.project.Name, 80), wins, panes})
	}
	m.table.SetRows(tableRows)

	if len(tableRows) == 0 {
		m.table.SetCursor(0)
		return
	}
	if m.table.Cursor() >= len(tableRows) {
		m.table.SetCursor(len(tableRows) - 1)
	}
}

// fuzzyScore matches query as a subsequence of target, rewarding runs of
// consecutive matches.
func fuzzyScore(query, target string) (int, bool) {
	if query == "" {
		return 1, true
	}
	qi := 0
	score := 0
	streak := 0
	for i := 0; i < len(target) && qi < len(query); i++ {
		if target[i] == query[qi] {
			score += 10 + streak*3
			streak++
			qi++
		} else {
			streak = 0
		}
	}
	if qi != len(query) {
		return 0, false
	}
	return score, true
}

func trim(s string, n int) string {
	r := []rune(s)
	if len(r) <= n {
		return s
	}
	if n <= 3 {
		return string(r[:n])
	}
	return string(r[:n-3]) + "..."
}

func chooseProject(projects []ProjectSummary) (string, error) {
	p := tea.NewProgram(newPickerModel(projects), tea.WithAltScreen())
	finalModel, err := p.Run()
	if err != nil {
		return "", err
	}

	result, ok := finalModel.(pickerModel)
	if !ok {
		return "", fmt.Errorf("unexpected picker model type")
	}
	if result.cancelled {
		return "", fmt.Errorf("selection canceled")
	}
	if strings.TrimSpace(result.selected) == "" {
		return "", fmt.Errorf("no project selected")
	}
	return result.selected, nil
}
