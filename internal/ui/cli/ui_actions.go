package cli

import (
	"fmt"
	"os"
	"os/exec"
	"strings"

	tea "github.com/charmbracelet/bubbletea"

	"inscope/internal/engine/symbols"
)

func handleKeyActions(msg tea.KeyMsg, m model) (tea.Model, tea.Cmd) {
	switch msg.String() {
	case "ctrl+c", "q":
		return m, tea.Quit
	case "tab":
		if m.mode == panelIssues {
			m.mode = panelClasses
		} else {
			m.mode = panelIssues
		}
		return m, nil
	}

	if m.mode != panelClasses {
		switch msg.String() {
		case "o":
			target, ok := selectedIssueFile(m)
			if !ok {
				m.sourceJumpStatus = statusStyle.Render("No source target available.")
				return m, nil
			}
			return m, jumpToSourceCmd(target)
		}
		var cmd tea.Cmd
		m.issueList, cmd = m.issueList.Update(msg)
		return m, cmd
	}

	switch msg.String() {
	case "enter":
		m = refreshClassDetail(m)
		return m, nil
	case "esc", "backspace":
		m.hasClassDetail = false
		return m, nil
	}

	var cmd tea.Cmd
	m.classList, cmd = m.classList.Update(msg)
	return m, cmd
}

func refreshClassDetail(m model) model {
	if m.table == nil || len(m.classes) == 0 {
		return m
	}
	idx := m.classList.Index()
	if idx < 0 || idx >= len(m.classes) {
		idx = 0
	}
	qualified := m.classes[idx]
	class, ok := m.table.ResolveClass(qualified)
	if !ok {
		m.hasClassDetail = false
		return m
	}

	detail := classDetail{
		qualifiedName: class.QualifiedName(),
		packageName:   class.PackageName(),
	}
	class.ProcessMembers(func(member *symbols.Member) bool {
		line := fmt.Sprintf("%s (%s)", member.Name, member.Kind)
		if member.Static {
			line += " static"
		}
		detail.members = append(detail.members, line)
		return true
	}, symbols.MemberFilter{})

	m.classDetail = detail
	m.hasClassDetail = true
	return m
}

func selectedIssueFile(m model) (string, bool) {
	selected, ok := m.issueList.SelectedItem().(item)
	if !ok || selected.file == "" {
		return "", false
	}
	return selected.file, true
}

func jumpToSourceCmd(file string) tea.Cmd {
	editor := strings.TrimSpace(os.Getenv("EDITOR"))
	if editor == "" {
		editor = "vi"
	}
	cmd := exec.Command(editor, file)
	return tea.ExecProcess(cmd, func(err error) tea.Msg {
		return sourceJumpResultMsg{target: file, err: err}
	})
}
