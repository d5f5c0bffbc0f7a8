package cli

import (
	"fmt"
	"time"

	"github.com/charmbracelet/bubbles/list"
	tea "github.com/charmbracelet/bubbletea"
	"github.com/charmbracelet/lipgloss"

	coreapp "inscope/internal/core/app"
	"inscope/internal/engine/symbols"
)

var (
	titleStyle = lipgloss.NewStyle().
			MarginLeft(2).
			Foreground(lipgloss.Color("#3B82F6")).
			Bold(true).
			Render

	docStyle = lipgloss.NewStyle().Margin(1, 2)

	unresolvedStyle = lipgloss.NewStyle().
			Foreground(lipgloss.Color("#F87171")).
			Bold(true)

	unusedStyle = lipgloss.NewStyle().
			Foreground(lipgloss.Color("#FBBF24")).
			Bold(true)

	successStyle = lipgloss.NewStyle().
			Foreground(lipgloss.Color("#10B981")).
			Bold(true)

	statusStyle = lipgloss.NewStyle().
			Foreground(lipgloss.Color("#64748B")).
			Italic(true)
)

type item struct {
	title, desc, file string
}

func (i item) Title() string       { return i.title }
func (i item) Description() string { return i.desc }
func (i item) FilterValue() string { return i.title + i.desc }

type model struct {
	issueList  list.Model
	classList  list.Model
	mode       panelMode
	table      *symbols.Table
	unresolved []coreapp.UnresolvedImport
	unused     []coreapp.UnusedImport
	classes    []string
	lastUpdate time.Time
	classCount int
	fileCount  int

	classDetail      classDetail
	hasClassDetail   bool
	sourceJumpStatus string
}

type classDetail struct {
	qualifiedName string
	packageName   string
	members       []string
}

type panelMode int

const (
	panelIssues panelMode = iota
	panelClasses
)

type updateMsg struct {
	unresolved []coreapp.UnresolvedImport
	unused     []coreapp.UnusedImport
	classes    []string
	classCount int
	fileCount  int
}

type sourceJumpResultMsg struct {
	target string
	err    error
}

func (m model) Init() tea.Cmd {
	return nil
}

func (m model) Update(msg tea.Msg) (tea.Model, tea.Cmd) {
	switch msg := msg.(type) {
	case tea.KeyMsg:
		return handleKeyActions(msg, m)
	case tea.WindowSizeMsg:
		h, v := docStyle.GetFrameSize()
		width := msg.Width - h
		height := msg.Height - v - 8
		if height < 5 {
			height = 5
		}
		m.issueList.SetSize(width, height)
		m.classList.SetSize(width, height)
	case updateMsg:
		m.unresolved = msg.unresolved
		m.unused = msg.unused
		m.classes = msg.classes
		m.classCount = msg.classCount
		m.fileCount = msg.fileCount
		m.lastUpdate = time.Now()

		items := []list.Item{}
		for _, u := range m.unresolved {
			items = append(items, item{
				title: "Unresolved Import",
				desc:  fmt.Sprintf("%s [%s] in %s", u.Reference, u.Kind, u.File),
				file:  u.File,
			})
		}
		for _, u := range m.unused {
			desc := fmt.Sprintf("%s [%s, confidence=%s] in %s", u.Reference, u.Kind, u.Confidence, u.File)
			if u.Alias != "" {
				desc = fmt.Sprintf("%s as %s [%s, confidence=%s] in %s", u.Reference, u.Alias, u.Kind, u.Confidence, u.File)
			}
			items = append(items, item{
				title: "Unused Import",
				desc:  desc,
				file:  u.File,
			})
		}
		m.issueList.SetItems(items)

		classItems := make([]list.Item, 0, len(m.classes))
		for _, qualified := range m.classes {
			classItems = append(classItems, item{
				title: qualified,
				desc:  "declared class",
			})
		}
		m.classList.SetItems(classItems)
		if m.hasClassDetail {
			m = refreshClassDetail(m)
		}
	case sourceJumpResultMsg:
		if msg.err != nil {
			m.sourceJumpStatus = statusStyle.Render(fmt.Sprintf("Source jump failed: %v", msg.err))
		} else {
			m.sourceJumpStatus = statusStyle.Render(fmt.Sprintf("Opened source: %s", msg.target))
		}
	}

	var cmd tea.Cmd
	if m.mode == panelIssues {
		m.issueList, cmd = m.issueList.Update(msg)
	} else {
		m.classList, cmd = m.classList.Update(msg)
	}
	return m, cmd
}

func (m model) View() string {
	status := statusStyle.Render(fmt.Sprintf("Last update: %v | %d files | %d classes",
		m.lastUpdate.Format("15:04:05"), m.fileCount, m.classCount))

	var summary string
	if len(m.unresolved) == 0 && len(m.unused) == 0 {
		summary = successStyle.Render("Imports Clean")
	} else {
		summary = fmt.Sprintf("%s | %s",
			unresolvedStyle.Render(fmt.Sprintf("%d unresolved", len(m.unresolved))),
			unusedStyle.Render(fmt.Sprintf("%d unused", len(m.unused))))
	}

	header := fmt.Sprintf("%s\n%s | %s\n", titleStyle("Import Scope Monitor"), status, summary)
	help := renderHelp(m)

	body := m.issueList.View()
	if m.mode == panelClasses {
		body = renderClassPanel(m)
	}
	if m.sourceJumpStatus != "" {
		body += "\n\n" + m.sourceJumpStatus
	}

	return docStyle.Render(header + "\n" + help + "\n\n" + body)
}

func initialModel(table *symbols.Table) model {
	issueList := list.New([]list.Item{}, list.NewDefaultDelegate(), 0, 0)
	issueList.Title = "Import Diagnostics"
	issueList.SetShowStatusBar(false)
	issueList.SetFilteringEnabled(true)

	classList := list.New([]list.Item{}, list.NewDefaultDelegate(), 0, 0)
	classList.Title = "Class Explorer"
	classList.SetShowStatusBar(false)
	classList.SetFilteringEnabled(true)

	return model{
		issueList:  issueList,
		classList:  classList,
		mode:       panelIssues,
		table:      table,
		lastUpdate: time.Now(),
	}
}
