package maply

import (
	"fmt"
	"image/color"
	"io"
	"strings"

	"github.com/charmbracelet/lipgloss"
	"github.com/disintegration/imaging"
	"github.com/pkg/errors"

	"github.com/go-maply/maply/utils"
)

// brailleDots maps a (column, row) position inside a braille cell onto its
// bit in the pattern block.
var brailleDots = [2][4]rune{
	{0x01, 0x02, 0x04, 0x40},
	{0x08, 0x10, 0x20, 0x80},
}

const brailleBase = 0x2800

// Preview writes a braille rendition of the figure, cols characters wide,
// for a quick look at the map without leaving the terminal. Each character
// cell covers a block of two by four pixels of the downscaled figure and is
// colored with the block's average ink color.
func (f *Figure) Preview(w io.Writer, cols int) error {
	if cols <= 0 {
		cols = 80
	}

	img := imaging.Resize(f.img, cols*2, 0, imaging.Box)
	bounds := img.Bounds()
	rows := (bounds.Dy() + 3) / 4

	var sb strings.Builder
	for row := 0; row < rows; row++ {
		for col := 0; col < cols; col++ {
			var mask rune
			var rSum, gSum, bSum, n int

			for dx := 0; dx < 2; dx++ {
				for dy := 0; dy < 4; dy++ {
					x, y := col*2+dx, row*4+dy
					if x >= bounds.Dx() || y >= bounds.Dy() {
						continue
					}
					c := img.NRGBAAt(bounds.Min.X+x, bounds.Min.Y+y)
					if !inked(c) {
						continue
					}
					mask |= brailleDots[dx][dy]
					rSum += int(c.R)
					gSum += int(c.G)
					bSum += int(c.B)
					n++
				}
			}

			if mask == 0 {
				sb.WriteByte(' ')
				continue
			}
			avg := color.NRGBA{
				R: uint8(rSum / n),
				G: uint8(gSum / n),
				B: uint8(bSum / n),
				A: 0xff,
			}
			sb.WriteString(lipgloss.NewStyle().
				Foreground(lipgloss.Color(utils.HexColor(avg))).
				Render(string(brailleBase + mask)))
		}
		sb.WriteByte('\n')
	}

	_, err := fmt.Fprint(w, sb.String())
	return errors.Wrap(err, "writing preview")
}

// inked reports whether a pixel carries drawing ink rather than the white
// backdrop.
func inked(c color.NRGBA) bool {
	if c.A == 0 {
		return false
	}
	return c.R < 0xf5 || c.G < 0xf5 || c.B < 0xf5
}
