package main

import (
	"fmt"
	"os"
	"strconv"
	"strings"

	"github.com/charmbracelet/bubbles/textinput"
	tea "github.com/charmbracelet/bubbletea"
	"github.com/charmbracelet/lipgloss"
	"github.com/spf13/cobra"
	"golang.org/x/term"

	"github.com/wippyai/fontguard/font"
)

var (
	titleStyle = lipgloss.NewStyle().
			Bold(true).
			Foreground(lipgloss.Color("#FAFAFA")).
			Background(lipgloss.Color("#7D56F4")).
			Padding(0, 1)

	labelStyle = lipgloss.NewStyle().
			Foreground(lipgloss.Color("#87CEEB"))

	okStyle = lipgloss.NewStyle().
		Foreground(lipgloss.Color("#90EE90"))

	errorStyle = lipgloss.NewStyle().
			Foreground(lipgloss.Color("#FF6B6B"))

	helpStyle = lipgloss.NewStyle().
			Foreground(lipgloss.Color("#666666"))
)

func (a *app) interactiveCommand() *cobra.Command {
	cmd := &cobra.Command{
		Use:   "interactive FONT",
		Short: "Type text and watch coverage and glyph ids update live",
		Args:  cobra.ExactArgs(1),
		RunE: func(cmd *cobra.Command, args []string) error {
			if !term.IsTerminal(int(os.Stdin.Fd())) || !term.IsTerminal(int(os.Stdout.Fd())) {
				return &ExitError{Code: 2, Message: "interactive mode needs a terminal"}
			}
			filter := a.filterFlag(cmd)
			return a.withLibrary(func(lib *font.Library) error {
				face, err := lib.LoadFontFile(args[0])
				if err != nil {
					return fmt.Errorf("load %s: %w", args[0], err)
				}
				defer func() { _ = face.Close() }()

				// Program.Run drives Update on this goroutine. Loading the face in
				// a tea.Cmd would hand it to another goroutine.
				p := tea.NewProgram(newInteractiveModel(face, args[0], filter), tea.WithAltScreen())
				_, err = p.Run()
				return err
			})
		},
	}
	cmd.Flags().Bool("filter", true, "ignore non-printable characters (default from config)")
	return cmd
}

type interactiveModel struct {
	face     *font.Face
	filename string
	input    textinput.Model
	filter   bool

	supported bool
	missing   []rune
	ids       []font.GlyphID
	err       error
}

func newInteractiveModel(face *font.Face, filename string, filter bool) *interactiveModel {
	ti := textinput.New()
	ti.Placeholder = "type some text"
	ti.Prompt = "text: "
	ti.Width = 60
	ti.Focus()

	m := &interactiveModel{
		face:     face,
		filename: filename,
		input:    ti,
		filter:   filter,
	}
	m.refresh()
	return m
}

func (m *interactiveModel) Init() tea.Cmd {
	return textinput.Blink
}

func (m *interactiveModel) Update(msg tea.Msg) (tea.Model, tea.Cmd) {
	if msg, ok := msg.(tea.KeyMsg); ok {
		switch msg.String() {
		case "ctrl+c", "esc":
			return m, tea.Quit
		case "ctrl+f":
			m.filter = !m.filter
			m.refresh()
			return m, nil
		}
	}

	var cmd tea.Cmd
	before := m.input.Value()
	m.input, cmd = m.input.Update(msg)
	if m.input.Value() != before {
		m.refresh()
	}
	return m, cmd
}

// refresh recomputes coverage for the current input. It must run on the
// goroutine that loaded the face.
func (m *interactiveModel) refresh() {
	text := m.input.Value()
	m.supported, m.missing, m.ids, m.err = false, nil, nil, nil

	ok, err := m.face.SupportsText(text, m.filter)
	if err != nil {
		m.err = err
		return
	}
	m.supported = ok
	if !ok {
		if m.missing, err = m.face.MissingRunes(text, m.filter); err != nil {
			m.err = err
			return
		}
	}
	m.ids, m.err = m.face.GlyphIDList(text)
}

func (m *interactiveModel) View() string {
	var b strings.Builder

	b.WriteString(titleStyle.Render("fontguard"))
	b.WriteString(" ")
	b.WriteString(m.filename)
	b.WriteString(" ")
	b.WriteString(labelStyle.Render(m.face.FamilyName() + " " + m.face.StyleName()))
	b.WriteString("\n\n")
	b.WriteString(m.input.View())
	b.WriteString("\n\n")

	switch {
	case m.err != nil:
		b.WriteString(errorStyle.Render(fmt.Sprintf("Error: %v", m.err)))
	case m.supported:
		b.WriteString(okStyle.Render("supported"))
	default:
		b.WriteString(errorStyle.Render("missing: " + formatRunes(m.missing)))
	}
	b.WriteString("\n")

	if len(m.ids) > 0 {
		ids := make([]string, len(m.ids))
		for i, id := range m.ids {
			ids[i] = strconv.FormatUint(uint64(id), 10)
		}
		b.WriteString(labelStyle.Render("glyphs: "))
		b.WriteString(strings.Join(ids, " "))
		b.WriteString("\n")
	}

	b.WriteString("\n")
	b.WriteString(helpStyle.Render(fmt.Sprintf("ctrl+f filter non-printable (%t) • esc quit", m.filter)))
	return b.String()
}
