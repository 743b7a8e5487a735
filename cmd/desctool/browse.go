package main

import (
	"fmt"
	"strings"

	"github.com/charmbracelet/bubbles/textinput"
	tea "github.com/charmbracelet/bubbletea"
	"github.com/charmbracelet/lipgloss"
	"github.com/spf13/cobra"

	"github.com/loomlang/descriptor-loader/metadata"
)

var (
	titleStyle = lipgloss.NewStyle().
			Bold(true).
			Foreground(lipgloss.Color("#FAFAFA")).
			Background(lipgloss.Color("#7D56F4")).
			Padding(0, 1)

	selectedStyle = lipgloss.NewStyle().
			Foreground(lipgloss.Color("#FAFAFA")).
			Background(lipgloss.Color("#7D56F4"))

	kindStyle = lipgloss.NewStyle().
			Foreground(lipgloss.Color("#87CEEB"))

	detailStyle = lipgloss.NewStyle().
			Foreground(lipgloss.Color("#98FB98"))

	errStyle = lipgloss.NewStyle().
			Foreground(lipgloss.Color("#FF6B6B"))

	dimStyle = lipgloss.NewStyle().
			Foreground(lipgloss.Color("#666666"))
)

func newBrowseCmd() *cobra.Command {
	return &cobra.Command{
		Use:   "browse <file>...",
		Short: "Browse containers interactively",
		Args:  cobra.MinimumNArgs(1),
		RunE: func(cmd *cobra.Command, args []string) error {
			cp, err := loadClasspath(args)
			if err != nil {
				return err
			}
			p := tea.NewProgram(newBrowseModel(cp), tea.WithAltScreen())
			_, err = p.Run()
			return err
		},
	}
}

type browseState int

const (
	stateList browseState = iota
	stateDetail
)

type browseModel struct {
	cp      *classpath
	session *session

	filter   textinput.Model
	visible  []metadata.ClassID
	selected int

	state  browseState
	detail string
}

func newBrowseModel(cp *classpath) *browseModel {
	filter := textinput.New()
	filter.Placeholder = "filter"
	filter.Prompt = "/ "
	filter.Width = 40
	filter.Focus()

	m := &browseModel{
		cp:      cp,
		session: newSession(cp),
		filter:  filter,
	}
	m.refilter()
	return m
}

func (m *browseModel) Init() tea.Cmd {
	return textinput.Blink
}

func (m *browseModel) refilter() {
	needle := strings.ToLower(m.filter.Value())
	m.visible = m.visible[:0]
	for _, id := range m.cp.order {
		if needle == "" || strings.Contains(strings.ToLower(id.String()), needle) {
			m.visible = append(m.visible, id)
		}
	}
	if m.selected >= len(m.visible) {
		m.selected = len(m.visible) - 1
	}
	if m.selected < 0 {
		m.selected = 0
	}
}

func (m *browseModel) Update(msg tea.Msg) (tea.Model, tea.Cmd) {
	if msg, ok := msg.(tea.KeyMsg); ok {
		switch msg.String() {
		case "ctrl+c":
			return m, tea.Quit

		case "esc":
			switch {
			case m.state == stateDetail:
				m.state = stateList
			case m.filter.Value() != "":
				m.filter.SetValue("")
				m.refilter()
			default:
				return m, tea.Quit
			}
			return m, nil

		case "up":
			if m.state == stateList && m.selected > 0 {
				m.selected--
			}
			return m, nil

		case "down":
			if m.state == stateList && m.selected < len(m.visible)-1 {
				m.selected++
			}
			return m, nil

		case "enter":
			if m.state == stateList && len(m.visible) > 0 {
				m.detail = m.describe(m.visible[m.selected])
				m.state = stateDetail
			}
			return m, nil
		}
	}

	if m.state == stateList {
		var cmd tea.Cmd
		m.filter, cmd = m.filter.Update(msg)
		m.refilter()
		return m, cmd
	}
	return m, nil
}

// describe resolves the selected entity through the real stack and
// renders it. Resolution failures render inline; browsing never aborts.
func (m *browseModel) describe(id metadata.ClassID) string {
	fc := m.cp.handles[id]
	h := fc.ClassHeader()

	switch {
	case !h.IsCompatible():
		return errStyle.Render(fmt.Sprintf(
			"%s\nmetadata version %s, reader expects %s",
			id, h.Version, metadata.CurrentABIVersion))

	case h.Kind == metadata.KindClass:
		class, ok := m.session.resolver.ResolveClass(fc)
		if !ok {
			return errStyle.Render(fmt.Sprintf("%s: unresolved", id))
		}
		return formatClass(class)

	case h.Kind == metadata.KindPackageFacade:
		scope, ok := m.session.resolver.CreatePackageScope(m.session.fragment(id.Package), fc)
		if !ok {
			return errStyle.Render(fmt.Sprintf("%s: unresolved", id))
		}
		var b strings.Builder
		fmt.Fprintf(&b, "package %s\n", id.Package)
		for _, name := range scope.AllNames() {
			members := scope.Members(name)
			if len(members) == 0 {
				fmt.Fprintf(&b, "  %s\n", name)
				continue
			}
			for _, member := range members {
				fmt.Fprintf(&b, "  %s\n", memberSignature(member))
			}
		}
		return b.String()

	default:
		return fmt.Sprintf("%s\nkind %s carries no browsable payload", id, h.Kind)
	}
}

func (m *browseModel) View() string {
	var b strings.Builder

	b.WriteString(titleStyle.Render("Metadata Browser"))
	fmt.Fprintf(&b, " %d containers\n\n", len(m.cp.order))

	switch m.state {
	case stateList:
		b.WriteString(m.filter.View())
		b.WriteString("\n\n")
		for i, id := range m.visible {
			kind := m.cp.handles[id].ClassHeader().Kind
			line := fmt.Sprintf("%-50s %s", id, kindStyle.Render(kind.String()))
			if i == m.selected {
				b.WriteString(selectedStyle.Render("> " + line))
			} else {
				b.WriteString("  " + line)
			}
			b.WriteByte('\n')
		}
		if len(m.visible) == 0 {
			b.WriteString(dimStyle.Render("  no matches"))
			b.WriteByte('\n')
		}
		b.WriteByte('\n')
		b.WriteString(dimStyle.Render("↑/↓ select • enter open • esc clear/quit"))

	case stateDetail:
		b.WriteString(detailStyle.Render(m.detail))
		b.WriteString("\n\n")
		b.WriteString(dimStyle.Render("esc back • ctrl+c quit"))
	}

	return b.String()
}
