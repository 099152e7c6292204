package cli

import (
	"fmt"
	"strings"

	tea "github.com/charmbracelet/bubbletea"
	"github.com/spf13/cobra"

	"github.com/SeamusWaldron/cubecode"
)

var editCmd = &cobra.Command{
	Use:   "edit [code|-]",
	Short: "Interactive sticker editor",
	Long: `Start an interactive editor over the cube net. Paint stickers to match a
physical cube, then write the result as the current code.

Keyboard shortcuts:
  arrows/hjkl  - Move within a face
  tab/S-tab    - Next/previous face (U R F D L B)
  1-6          - Select color (white red green yellow orange blue)
  space/enter  - Paint the cursor sticker with the selected color
  U R F D L B  - Paint the cursor sticker with that face's color
  c            - Paint the whole face with the selected color
  x            - Reset to the solved cube
  w            - Write the code and quit
  q/Esc        - Quit without writing`,
	Args: cobra.MaximumNArgs(1),
	RunE: runEdit,
}

func init() {
	rootCmd.AddCommand(editCmd)
}

// editModel is the editor state. It owns its CubeState; all access happens
// in the bubbletea update loop.
type editModel struct {
	state    *cubecode.CubeState
	cursor   cubecode.Cell
	selected cubecode.Color
	status   string
	written  bool
	quitting bool
}

func newEditModel(s *cubecode.CubeState) *editModel {
	return &editModel{
		state:    s,
		cursor:   cubecode.Cell{Face: cubecode.FaceF, Row: 1, Col: 1},
		selected: cubecode.Colors[0],
	}
}

// Code returns the canonical code of the edited state.
func (m *editModel) Code() string {
	return cubecode.Encode(m.state)
}

func (m *editModel) Init() tea.Cmd {
	return nil
}

func (m *editModel) Update(msg tea.Msg) (tea.Model, tea.Cmd) {
	key, ok := msg.(tea.KeyMsg)
	if !ok {
		return m, nil
	}
	m.status = ""

	switch k := key.String(); k {
	case "q", "esc", "ctrl+c":
		m.quitting = true
		return m, tea.Quit

	case "w":
		m.written = true
		m.quitting = true
		return m, tea.Quit

	case "up", "k":
		m.cursor.Row = (m.cursor.Row + 2) % 3
	case "down", "j":
		m.cursor.Row = (m.cursor.Row + 1) % 3
	case "left", "h":
		m.cursor.Col = (m.cursor.Col + 2) % 3
	case "right", "l":
		m.cursor.Col = (m.cursor.Col + 1) % 3
	case "tab":
		m.cursor.Face = cubecode.Faces[(int(m.cursor.Face)+1)%cubecode.NumFaces]
	case "shift+tab":
		m.cursor.Face = cubecode.Faces[(int(m.cursor.Face)+cubecode.NumFaces-1)%cubecode.NumFaces]

	case "1", "2", "3", "4", "5", "6":
		m.selected = cubecode.Colors[k[0]-'1']

	case " ", "enter":
		m.paint(m.cursor, m.selected)

	case "U", "R", "F", "D", "L", "B":
		f, err := cubecode.ParseFace(k)
		if err == nil {
			m.paint(m.cursor, f.Color())
		}

	case "c":
		for row := 0; row < 3; row++ {
			for col := 0; col < 3; col++ {
				m.paint(cubecode.Cell{Face: m.cursor.Face, Row: row, Col: col}, m.selected)
			}
		}

	case "x":
		m.state.Reset()
		m.status = "reset to solved"
	}

	return m, nil
}

func (m *editModel) paint(c cubecode.Cell, color cubecode.Color) {
	if err := m.state.SetColor(c.Face, c.Row, c.Col, color); err != nil {
		m.status = err.Error()
	}
}

func (m *editModel) View() string {
	if m.quitting {
		return ""
	}

	var b strings.Builder

	b.WriteString(titleStyle.Render("cubecode editor"))
	b.WriteString("\n\n")

	cursor := m.cursor
	b.WriteString(renderNet(m.state, &cursor))
	b.WriteString("\n")

	b.WriteString("Color: ")
	for i, c := range cubecode.Colors {
		label := fmt.Sprintf(" %d ", i+1)
		if c == m.selected {
			label = fmt.Sprintf("[%d]", i+1)
		}
		b.WriteString(stickerStyle(c).Render(label))
		b.WriteString(" ")
	}
	b.WriteString(statusStyle.Render(m.selected.String()))
	b.WriteString("\n")

	b.WriteString(statusStyle.Render(fmt.Sprintf("Cursor: %s", m.cursor)))
	b.WriteString("\n\n")

	code := m.Code()
	b.WriteString(code)
	b.WriteString("\n")
	b.WriteString(renderCounts(code))
	if m.state.IsSolved() {
		b.WriteString("  " + moveStyle.Render("solved"))
	}
	b.WriteString("\n")

	if m.status != "" {
		b.WriteString(errorStyle.Render(m.status))
		b.WriteString("\n")
	}

	b.WriteString("\n")
	b.WriteString(helpStyle.Render("hjkl move • tab face • 1-6 color • space paint • c fill • x reset • w write • q quit"))
	b.WriteString("\n")

	return b.String()
}

func runEdit(cmd *cobra.Command, args []string) error {
	code, err := readCode(cmd.InOrStdin(), args)
	if err != nil {
		return err
	}
	s, err := cubecode.Parse(code)
	if err != nil {
		return err
	}

	m := newEditModel(s)
	p := tea.NewProgram(m, tea.WithAltScreen())
	if _, err := p.Run(); err != nil {
		return fmt.Errorf("editor failed: %w", err)
	}

	if !m.written {
		return nil
	}
	code = m.Code()
	rememberCode(code)
	fmt.Fprintln(cmd.OutOrStdout(), code)
	return nil
}
