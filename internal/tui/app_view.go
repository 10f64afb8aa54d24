package tui

import (
	"fmt"
	"strings"

	"github.com/charmbracelet/lipgloss"
	xansi "github.com/charmbracelet/x/ansi"

	"httag-cli/internal/docs"
	"httag-cli/internal/nav"
	"httag-cli/internal/tree"
)

func (m appModel) View() string {
	w := m.width
	if w <= 0 {
		w = 80
	}

	switch m.modal {
	case modalCreateChild, modalAddPredicate, modalAlert, modalHelp:
		return m.placeCentered(m.viewModal(w))
	}

	header := lipgloss.NewStyle().Bold(true).Render(truncate(
		fmt.Sprintf("httag  %s  tag: %s", emptyAsDash(m.page.URL), emptyAsDash(m.page.TagID)), w))

	var body string
	switch {
	case !m.loaded && m.loading:
		body = styleMuted().Render("loading " + m.loadingTarget + "…")
	case !m.loaded:
		body = styleMuted().Render("no page loaded (r: retry)")
	default:
		body = m.viewTree(w)
	}

	hints := "no tree links on this page"
	if !m.page.Snapshot.Empty() {
		hints = strings.Join(nav.Hints(m.page.Snapshot, m.opts.Platform), "   ")
	}
	status := styleMuted().Render(truncate(hints, w))
	if m.loading && m.loaded {
		status = styleMuted().Render(truncate("loading "+m.loadingTarget+"…", w))
	}

	footer := m.help.View(m.keys)
	return strings.Join([]string{header, body, status, footer}, "\n\n")
}

func (m appModel) viewTree(w int) string {
	if len(m.page.Nodes) == 0 {
		return styleMuted().Render("(empty tree)")
	}
	lines := make([]string, 0, len(m.page.Nodes))
	for i, n := range m.page.Nodes {
		line := strings.Repeat("  ", n.Depth) + relationGlyph(n.Relation) + " " + n.Label
		line = truncate(line, w)
		switch {
		case i == m.selected:
			line = styleSelected().Render(line)
		case n.Relation == tree.RelationID:
			line = styleCurrent().Render(line)
		}
		lines = append(lines, line)
	}
	return strings.Join(lines, "\n")
}

func relationGlyph(r tree.Relation) string {
	switch r {
	case tree.RelationSuper:
		return "▾"
	case tree.RelationID:
		return "●"
	case tree.RelationChild:
		return "▸"
	case tree.RelationSibling:
		return "·"
	default:
		return " "
	}
}

func (m appModel) viewModal(w int) string {
	switch m.modal {
	case modalCreateChild:
		bodyW := modalBodyWidth(w)
		rows := []string{
			formField("new tag id", m.newIDInput.View(), bodyW),
			"",
			formField("parent", m.parentIn.View(), bodyW),
		}
		return renderModalBox(w, "Add child", m.formFooter(rows, bodyW))

	case modalAddPredicate:
		bodyW := modalBodyWidth(w)
		rows := []string{
			formField(">> "+emptyAsDash(m.page.TagID), m.predInput.View(), bodyW),
		}
		return renderModalBox(w, "Add predicate", m.formFooter(rows, bodyW))

	case modalAlert:
		bodyW := modalBodyWidth(w)
		body := lipgloss.NewStyle().Width(bodyW).Render(m.alert)
		help := styleMuted().Render("enter/esc: dismiss")
		return renderModalBox(w, "Error", body+"\n\n"+help)

	case modalHelp:
		bodyW := modalBodyWidth(w)
		md, _ := docs.Get("keys", m.opts.Platform)
		return renderModalBox(w, "Help", renderMarkdown(md, bodyW)+"\n\n"+m.help.FullHelpView(m.keys.FullHelp()))
	}
	return ""
}

func (m appModel) formFooter(rows []string, bodyW int) string {
	rows = append(rows, "")
	switch {
	case m.submitting:
		rows = append(rows, styleMuted().Render("submitting…"))
	case m.notice != "":
		rows = append(rows, styleError().Width(bodyW).Render(m.notice))
	}
	rows = append(rows, styleMuted().Render("enter: submit   tab: next field   esc: cancel"))
	return strings.Join(rows, "\n")
}

// formField renders a label above a one-line input filling the modal body.
func formField(label, input string, bodyW int) string {
	field := lipgloss.NewStyle().
		Background(colorInputBg).
		Padding(0, 1).
		Width(bodyW).
		MaxWidth(bodyW).
		MaxHeight(1).
		Render(strings.NewReplacer("\r", "", "\n", " ").Replace(input))
	return styleMuted().Render(label) + "\n" + field
}

func modalBodyWidth(width int) int {
	w := width - 10
	if w > 72 {
		w = 72
	}
	if w < 20 {
		w = 20
	}
	return w
}

func renderModalBox(width int, title, content string) string {
	bodyW := modalBodyWidth(width)
	head := lipgloss.NewStyle().
		Bold(true).
		Foreground(colorSurfaceFg).
		Background(colorControlBg).
		Width(bodyW).
		Padding(0, 1).
		Render(title)
	box := lipgloss.NewStyle().
		Border(lipgloss.RoundedBorder()).
		BorderForeground(colorAccent).
		Padding(0, 1).
		Width(bodyW + 2)
	return box.Render(head + "\n\n" + content)
}

func (m appModel) placeCentered(s string) string {
	if m.width <= 0 || m.height <= 0 {
		return s
	}
	return lipgloss.Place(m.width, m.height, lipgloss.Center, lipgloss.Center, s)
}

func truncate(s string, w int) string {
	if w <= 0 {
		return s
	}
	return xansi.Truncate(s, w, "…")
}

func emptyAsDash(s string) string {
	if strings.TrimSpace(s) == "" {
		return "-"
	}
	return s
}
