// Package render draws the unfolded cube net and maps pointer positions
// back to cells and palette swatches.
package render

import (
	"image"
	"image/color"
	"image/draw"
	"image/png"
	"io"

	"golang.org/x/image/font"
	"golang.org/x/image/font/basicfont"
	"golang.org/x/image/math/fixed"

	"github.com/SeamusWaldron/cubecode"
)

// netPos is the grid slot of each face in the net:
//
//	   U
//	L  F  R  B
//	   D
var netPos = [cubecode.NumFaces]image.Point{
	cubecode.FaceU: {1, 0},
	cubecode.FaceR: {2, 1},
	cubecode.FaceF: {1, 1},
	cubecode.FaceD: {1, 2},
	cubecode.FaceL: {0, 1},
	cubecode.FaceB: {3, 1},
}

// Palette maps cube colors to display colors.
var Palette = map[cubecode.Color]color.RGBA{
	cubecode.White:  {0xF5, 0xF5, 0xF5, 0xFF},
	cubecode.Red:    {0xD0, 0x20, 0x20, 0xFF},
	cubecode.Green:  {0x20, 0xA0, 0x40, 0xFF},
	cubecode.Yellow: {0xF0, 0xD0, 0x20, 0xFF},
	cubecode.Orange: {0xFF, 0x80, 0x10, 0xFF},
	cubecode.Blue:   {0x20, 0x50, 0xD0, 0xFF},
}

var (
	background = color.RGBA{0xF5, 0xF5, 0xF5, 0xFF} // WhiteSmoke
	border     = color.RGBA{0x20, 0x20, 0x20, 0xFF}
	highlight  = color.RGBA{0x00, 0x00, 0x00, 0xFF}
)

// labelHeight is the room reserved above each face for its label.
const labelHeight = 16

// Layout holds the pixel geometry of the net and the color selector.
type Layout struct {
	Cell   int // edge of one facelet
	Gap    int // space between faces
	Margin int // outer margin
	Swatch int // edge of one selector swatch
}

// DefaultLayout matches a 50px facelet net with a 2x3 selector on the right.
func DefaultLayout() Layout {
	return Layout{Cell: 50, Gap: 20, Margin: 30, Swatch: 40}
}

func (l Layout) faceSize() int {
	return 3 * l.Cell
}

// FaceRect returns the pixel rectangle of a face.
func (l Layout) FaceRect(f cubecode.Face) image.Rectangle {
	p := netPos[f]
	step := l.faceSize() + l.Gap + labelHeight
	min := image.Pt(l.Margin+p.X*(l.faceSize()+l.Gap), l.Margin+labelHeight+p.Y*step)
	return image.Rectangle{Min: min, Max: min.Add(image.Pt(l.faceSize(), l.faceSize()))}
}

// CellRect returns the pixel rectangle of a facelet.
func (l Layout) CellRect(c cubecode.Cell) image.Rectangle {
	fr := l.FaceRect(c.Face)
	min := fr.Min.Add(image.Pt(c.Col*l.Cell, c.Row*l.Cell))
	return image.Rectangle{Min: min, Max: min.Add(image.Pt(l.Cell, l.Cell))}
}

// CellAt maps a pointer position to the facelet under it.
func (l Layout) CellAt(p image.Point) (cubecode.Cell, bool) {
	for _, f := range cubecode.Faces {
		fr := l.FaceRect(f)
		if !p.In(fr) {
			continue
		}
		d := p.Sub(fr.Min)
		return cubecode.Cell{Face: f, Row: d.Y / l.Cell, Col: d.X / l.Cell}, true
	}
	return cubecode.Cell{}, false
}

// SwatchRect returns the rectangle of selector swatch i (0..5), laid out
// in two rows of three to the right of the net.
func (l Layout) SwatchRect(i int) image.Rectangle {
	x0 := l.Margin + 4*(l.faceSize()+l.Gap)
	y0 := l.Margin + labelHeight
	gap := l.Swatch / 4
	min := image.Pt(x0+(i%3)*(l.Swatch+gap), y0+(i/3)*(l.Swatch+gap))
	return image.Rectangle{Min: min, Max: min.Add(image.Pt(l.Swatch, l.Swatch))}
}

// SwatchAt maps a pointer position to the selector color under it.
func (l Layout) SwatchAt(p image.Point) (cubecode.Color, bool) {
	for i, c := range cubecode.Colors {
		if p.In(l.SwatchRect(i)) {
			return c, true
		}
	}
	return cubecode.NoColor, false
}

// Bounds returns the size of the whole drawing.
func (l Layout) Bounds() image.Rectangle {
	w := l.SwatchRect(2).Max.X + l.Margin
	h := l.FaceRect(cubecode.FaceD).Max.Y + l.Margin
	return image.Rect(0, 0, w, h)
}

// Draw paints the net of s and the color selector onto dst.
// selected is outlined in the selector; pass cubecode.NoColor for none.
func (l Layout) Draw(dst draw.Image, s *cubecode.CubeState, selected cubecode.Color) {
	draw.Draw(dst, dst.Bounds(), image.NewUniform(background), image.Point{}, draw.Src)

	for _, f := range cubecode.Faces {
		fr := l.FaceRect(f)
		draw.Draw(dst, fr, image.NewUniform(border), image.Point{}, draw.Src)
		for row := 0; row < 3; row++ {
			for col := 0; col < 3; col++ {
				c := cubecode.Cell{Face: f, Row: row, Col: col}
				r := l.CellRect(c).Inset(1)
				draw.Draw(dst, r, image.NewUniform(Palette[s.At(c)]), image.Point{}, draw.Src)
			}
		}
		l.label(dst, f.String()+" "+f.Name(), image.Pt(fr.Min.X, fr.Min.Y-4))
	}

	for i, c := range cubecode.Colors {
		r := l.SwatchRect(i)
		if c == selected {
			draw.Draw(dst, r.Inset(-3), image.NewUniform(highlight), image.Point{}, draw.Src)
		}
		draw.Draw(dst, r, image.NewUniform(border), image.Point{}, draw.Src)
		draw.Draw(dst, r.Inset(1), image.NewUniform(Palette[c]), image.Point{}, draw.Src)
	}
}

func (l Layout) label(dst draw.Image, text string, at image.Point) {
	d := &font.Drawer{
		Dst:  dst,
		Src:  image.NewUniform(border),
		Face: basicfont.Face7x13,
		Dot:  fixed.P(at.X, at.Y),
	}
	d.DrawString(text)
}

// Image renders s into a new RGBA image.
func (l Layout) Image(s *cubecode.CubeState, selected cubecode.Color) *image.RGBA {
	img := image.NewRGBA(l.Bounds())
	l.Draw(img, s, selected)
	return img
}

// PNG writes the rendered net of s as a PNG image.
func (l Layout) PNG(w io.Writer, s *cubecode.CubeState, selected cubecode.Color) error {
	return png.Encode(w, l.Image(s, selected))
}
