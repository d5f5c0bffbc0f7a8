package cli

import (
	"fmt"
	"strings"
)

func renderHelp(m model) string {
	keys := "Keys: tab panel | / filter | enter members | esc back | q quit"
	if m.mode == panelIssues {
		keys = "Keys: tab panel | / filter | o open source | q quit"
	}
	return statusStyle.Render(keys)
}

func renderClassPanel(m model) string {
	summary := m.classList.View()
	details := renderClassSummary(m)
	if m.hasClassDetail {
		details = renderClassDetail(m)
	}
	return summary + "\n\n" + details
}

func renderClassSummary(m model) string {
	if len(m.classes) == 0 {
		return statusStyle.Render("No classes indexed.")
	}
	idx := m.classList.Index()
	if idx < 0 || idx >= len(m.classes) {
		idx = 0
	}
	return strings.Join([]string{
		"Selected Class",
		fmt.Sprintf("  Name: %s", m.classes[idx]),
		"  Press enter for member drill-down.",
	}, "\n")
}

func renderClassDetail(m model) string {
	d := m.classDetail
	pkg := d.packageName
	if pkg == "" {
		pkg = "(default)"
	}
	lines := []string{
		fmt.Sprintf("Class Detail: %s", d.qualifiedName),
		fmt.Sprintf("  Package: %s", pkg),
		fmt.Sprintf("  Members (%d):", len(d.members)),
	}
	for _, member := range d.members {
		lines = append(lines, "    "+member)
	}
	if len(d.members) == 0 {
		lines = append(lines, "    none")
	}
	lines = append(lines, "  Press esc to exit details.")
	return strings.Join(lines, "\n")
}
