package main

import (
	"encoding/hex"
	"fmt"
	"strings"

	"github.com/charmbracelet/bubbles/table"
	tea "github.com/charmbracelet/bubbletea"
	"github.com/charmbracelet/lipgloss"
)

var (
	titleStyle = lipgloss.NewStyle().
			Bold(true).
			Foreground(lipgloss.Color("#FAFAFA")).
			Background(lipgloss.Color("#7D56F4")).
			Padding(0, 1)

	keyStyle = lipgloss.NewStyle().
			Foreground(lipgloss.Color("#98FB98"))

	labelStyle = lipgloss.NewStyle().
			Foreground(lipgloss.Color("#87CEEB"))

	changedStyle = lipgloss.NewStyle().
			Foreground(lipgloss.Color("#FFD700"))

	helpStyle = lipgloss.NewStyle().
			Foreground(lipgloss.Color("#666666"))

	borderStyle = lipgloss.NewStyle().
			BorderStyle(lipgloss.NormalBorder()).
			BorderForeground(lipgloss.Color("#666666"))
)

type viewMode int

const (
	modeTable viewMode = iota
	modeDetail
)

type interactiveModel struct {
	snap     *snapshot
	filename string
	after    []accountRow
	table    table.Model
	mode     viewMode
	showPost bool
}

func newInteractiveModel(filename string, snap *snapshot, after []accountRow) *interactiveModel {
	columns := []table.Column{
		{Title: "#", Width: 8},
		{Title: "Key", Width: 44},
		{Title: "Owner", Width: 44},
		{Title: "Flags", Width: 5},
		{Title: "Lamports", Width: 20},
		{Title: "Data", Width: 8},
	}

	t := table.New(
		table.WithColumns(columns),
		table.WithFocused(true),
		table.WithHeight(min(len(snap.accounts)+1, 20)),
	)

	s := table.DefaultStyles()
	s.Header = s.Header.
		BorderStyle(lipgloss.NormalBorder()).
		BorderForeground(lipgloss.Color("#666666")).
		BorderBottom(true).
		Bold(true)
	s.Selected = s.Selected.
		Foreground(lipgloss.Color("#FAFAFA")).
		Background(lipgloss.Color("#7D56F4")).
		Bold(false)
	t.SetStyles(s)

	m := &interactiveModel{
		snap:     snap,
		filename: filename,
		after:    after,
		table:    t,
	}
	m.table.SetRows(tableRows(m.rows()))
	return m
}

func (m *interactiveModel) rows() []accountRow {
	if m.showPost {
		return m.after
	}
	return m.snap.accounts
}

func tableRows(rows []accountRow) []table.Row {
	out := make([]table.Row, len(rows))
	for i, r := range rows {
		out[i] = table.Row{
			r.label(),
			r.key,
			r.owner,
			r.flags(),
			fmt.Sprint(r.lamports),
			fmt.Sprint(r.dataLen),
		}
	}
	return out
}

func (m *interactiveModel) Init() tea.Cmd {
	return nil
}

func (m *interactiveModel) Update(msg tea.Msg) (tea.Model, tea.Cmd) {
	if msg, ok := msg.(tea.KeyMsg); ok {
		switch msg.String() {
		case "ctrl+c", "q":
			return m, tea.Quit

		case "enter":
			if m.mode == modeTable && len(m.rows()) > 0 {
				m.mode = modeDetail
			}
			return m, nil

		case "esc":
			m.mode = modeTable
			return m, nil

		case "tab":
			if m.after != nil {
				m.showPost = !m.showPost
				m.table.SetRows(tableRows(m.rows()))
			}
			return m, nil
		}
	}

	if m.mode != modeTable {
		return m, nil
	}

	var cmd tea.Cmd
	m.table, cmd = m.table.Update(msg)
	return m, cmd
}

func (m *interactiveModel) View() string {
	var b strings.Builder

	title := "Input Inspector"
	if m.showPost {
		title += " (after invocation)"
	}
	b.WriteString(titleStyle.Render(title))
	b.WriteString(" ")
	b.WriteString(m.filename)
	b.WriteString("\n\n")

	switch m.mode {
	case modeTable:
		b.WriteString(borderStyle.Render(m.table.View()))
		b.WriteString("\n")
		b.WriteString(labelStyle.Render("instruction data: "))
		b.WriteString(fmt.Sprintf("%d bytes %s\n", len(m.snap.data), hexPreview(m.snap.data)))
		b.WriteString(labelStyle.Render("program id:       "))
		b.WriteString(keyStyle.Render(m.snap.programID.String()))
		b.WriteString("\n\n")
		help := "↑/↓ select • enter details • q quit"
		if m.after != nil {
			help = "↑/↓ select • enter details • tab before/after • q quit"
		}
		b.WriteString(helpStyle.Render(help))

	case modeDetail:
		b.WriteString(m.detail())
		b.WriteString("\n")
		b.WriteString(helpStyle.Render("esc back • q quit"))
	}

	return b.String()
}

func (m *interactiveModel) detail() string {
	rows := m.rows()
	i := m.table.Cursor()
	if i < 0 || i >= len(rows) {
		return ""
	}
	r := rows[i]

	var other *accountRow
	if m.after != nil && i < len(m.after) && i < len(m.snap.accounts) {
		if m.showPost {
			other = &m.snap.accounts[i]
		} else {
			other = &m.after[i]
		}
	}

	var b strings.Builder
	field := func(name, value string, changed bool) {
		b.WriteString(labelStyle.Render(fmt.Sprintf("%-10s", name)))
		if changed {
			value = changedStyle.Render(value)
		}
		b.WriteString(value)
		b.WriteString("\n")
	}

	field("account", r.label(), false)
	field("key", keyStyle.Render(r.key), false)
	field("owner", r.owner, false)
	field("flags", r.flags(), false)
	field("lamports", fmt.Sprint(r.lamports), other != nil && other.lamports != r.lamports)
	field("data_len", fmt.Sprint(r.dataLen), other != nil && other.dataLen != r.dataLen)
	b.WriteString("\n")
	if len(r.data) > 0 {
		b.WriteString(hex.Dump(r.data))
	}
	return b.String()
}

func runInteractive(filename string, snap *snapshot, after []accountRow) error {
	p := tea.NewProgram(newInteractiveModel(filename, snap, after), tea.WithAltScreen())
	_, err := p.Run()
	return err
}
