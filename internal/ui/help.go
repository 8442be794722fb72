package ui

import (
	"fmt"
	"io"
	"strings"

	"github.com/charmbracelet/bubbles/key"
	tea "github.com/charmbracelet/bubbletea"
	"github.com/charmbracelet/lipgloss"
	"github.com/noborus/ov/oviewer"
)

// helpPagerMsg contains the result of a help pager command
type helpPagerMsg struct {
	err error
}

var helpSections = []struct {
	title string
	pick  func(keyMap) []helpEntry
}{
	{"Navigation", func(k keyMap) []helpEntry {
		return entries(k.Up, k.Down, k.PrevPage, k.NextPage)
	}},
	{"Selection", func(k keyMap) []helpEntry {
		return entries(k.Toggle, k.ShiftUp, k.ShiftDown, k.ShiftPick, k.Visual)
	}},
	{"Bulk", func(k keyMap) []helpEntry {
		return entries(k.Page, k.All, k.Clear, k.Delete)
	}},
	{"Other", func(k keyMap) []helpEntry {
		return entries(k.Help, k.Confirm, k.Quit)
	}},
}

// RenderHelpContent generates the full help text shown in the pager
func RenderHelpContent(keys keyMap) string {
	titleStyle := lipgloss.NewStyle().
		Bold(true).
		Foreground(lipgloss.Color("99")).
		MarginBottom(1)

	sectionStyle := lipgloss.NewStyle().
		Bold(true).
		Foreground(lipgloss.Color("39")).
		MarginTop(1)

	keyStyle := lipgloss.NewStyle().
		Foreground(lipgloss.Color("220")).
		Width(12)

	descStyle := lipgloss.NewStyle().
		Foreground(lipgloss.Color("252"))

	var help strings.Builder

	help.WriteString(titleStyle.Render("gridpick help"))
	help.WriteString("\n")

	for _, section := range helpSections {
		help.WriteString(sectionStyle.Render(section.title))
		help.WriteString("\n")
		for _, e := range section.pick(keys) {
			help.WriteString(fmt.Sprintf("  %s %s\n", keyStyle.Render(e.key), descStyle.Render(e.desc)))
		}
		help.WriteString("\n")
	}

	notes := lipgloss.NewStyle().Italic(true).Foreground(lipgloss.Color("241"))
	help.WriteString(notes.Render("  Shift gestures extend from the last shift-picked row."))
	help.WriteString("\n")
	help.WriteString(notes.Render("  Dimmed rows are excluded by the configured filter."))

	return help.String()
}

type helpEntry struct {
	key  string
	desc string
}

func entries(bindings ...key.Binding) []helpEntry {
	out := make([]helpEntry, 0, len(bindings))
	for _, b := range bindings {
		h := b.Help()
		out = append(out, helpEntry{key: h.Key, desc: h.Desc})
	}
	return out
}

// pagerCmd shows text in the ov pager. It satisfies tea.ExecCommand so the
// program releases the terminal while ov runs.
type pagerCmd struct {
	content string
}

func (p *pagerCmd) Run() error {
	root, err := oviewer.NewRoot(strings.NewReader(p.content))
	if err != nil {
		return err
	}

	config := oviewer.NewConfig()
	config.IsWriteOnExit = false
	config.IsWriteOriginal = false
	root.SetConfig(config)

	return root.Run()
}

func (p *pagerCmd) SetStdin(io.Reader)  {}
func (p *pagerCmd) SetStdout(io.Writer) {}
func (p *pagerCmd) SetStderr(io.Writer) {}

// showHelpInPager returns a command running the help pager
func showHelpInPager(keys keyMap) tea.Cmd {
	return tea.Exec(&pagerCmd{content: RenderHelpContent(keys)}, func(err error) tea.Msg {
		return helpPagerMsg{err: err}
	})
}
