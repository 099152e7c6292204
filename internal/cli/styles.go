package cli

import (
	"strconv"
	"strings"

	"github.com/charmbracelet/lipgloss"

	"github.com/SeamusWaldron/cubecode"
)

// Styles
var (
	titleStyle = lipgloss.NewStyle().
			Bold(true).
			Foreground(lipgloss.Color("205"))

	statusStyle = lipgloss.NewStyle().
			Foreground(lipgloss.Color("241"))

	moveStyle = lipgloss.NewStyle().
			Foreground(lipgloss.Color("82"))

	errorStyle = lipgloss.NewStyle().
			Foreground(lipgloss.Color("196"))

	helpStyle = lipgloss.NewStyle().
			Foreground(lipgloss.Color("241"))
)

// stickerColors are ANSI 256 colors for each cube color.
var stickerColors = map[cubecode.Color]lipgloss.Color{
	cubecode.White:  lipgloss.Color("255"),
	cubecode.Red:    lipgloss.Color("160"),
	cubecode.Green:  lipgloss.Color("34"),
	cubecode.Yellow: lipgloss.Color("226"),
	cubecode.Orange: lipgloss.Color("208"),
	cubecode.Blue:   lipgloss.Color("27"),
}

func stickerStyle(c cubecode.Color) lipgloss.Style {
	return lipgloss.NewStyle().
		Background(stickerColors[c]).
		Foreground(lipgloss.Color("0"))
}

// sticker renders one cell as a three-column block labelled with its code.
// The cursor cell is bracketed.
func sticker(c cubecode.Color, cursor bool) string {
	label := " " + cubecode.ColorToCode(c).String() + " "
	if cursor {
		label = "[" + cubecode.ColorToCode(c).String() + "]"
	}
	return stickerStyle(c).Render(label)
}

// renderNet draws the unfolded cube with U above, L F R B across and D
// below. cursor may be nil.
func renderNet(s *cubecode.CubeState, cursor *cubecode.Cell) string {
	var b strings.Builder

	blank := strings.Repeat(" ", 3*3+1)
	writeRow := func(f cubecode.Face, row int) {
		for col := 0; col < 3; col++ {
			c := cubecode.Cell{Face: f, Row: row, Col: col}
			b.WriteString(sticker(s.At(c), cursor != nil && *cursor == c))
		}
		b.WriteByte(' ')
	}

	for _, band := range [][]cubecode.Face{
		{cubecode.FaceU},
		{cubecode.FaceL, cubecode.FaceF, cubecode.FaceR, cubecode.FaceB},
		{cubecode.FaceD},
	} {
		for row := 0; row < 3; row++ {
			if len(band) == 1 {
				b.WriteString(blank)
			}
			for _, f := range band {
				writeRow(f, row)
			}
			b.WriteString("\n")
		}
	}
	return b.String()
}

// renderCounts lists how many stickers of each color a code holds,
// marking counts other than nine.
func renderCounts(code string) string {
	counts := cubecode.CountColors(code)
	parts := make([]string, 0, len(counts))
	for _, f := range cubecode.Faces {
		part := f.String() + "=" + strconv.Itoa(counts[f])
		if counts[f] != 9 {
			part = errorStyle.Render(part)
		}
		parts = append(parts, part)
	}
	return strings.Join(parts, " ")
}
