package render

import (
	"image"
	"image/color"
	"math"
	"strconv"

	"github.com/geoforge/mapserv/internal/geom"
)

var (
	graticuleColor = color.NRGBA{120, 120, 120, 255}
	labelColor     = color.NRGBA{255, 255, 255, 255}
	labelBackColor = color.NRGBA{0, 0, 0, 180}
)

// drawGraticule overlays a coordinate grid at a fixed spacing in map units.
// Each grid crossing inside the image is labeled with its map coordinates.
func drawGraticule(img *image.RGBA, tr geom.Transform, spacing float64) {
	extent := tr.Extent()
	bounds := img.Bounds()

	var columns, rows []float64
	for x := math.Ceil(extent.MinX/spacing) * spacing; x <= extent.MaxX; x += spacing {
		columns = append(columns, x)
		px := tr.ToPixel(geom.Point{X: x, Y: extent.MaxY}).X
		for y := bounds.Min.Y; y < bounds.Max.Y; y++ {
			setClipped(img, px, y, graticuleColor)
		}
	}
	for y := math.Ceil(extent.MinY/spacing) * spacing; y <= extent.MaxY; y += spacing {
		rows = append(rows, y)
		py := tr.ToPixel(geom.Point{X: extent.MinX, Y: y}).Y
		for x := bounds.Min.X; x < bounds.Max.X; x++ {
			setClipped(img, x, py, graticuleColor)
		}
	}

	for _, y := range rows {
		for _, x := range columns {
			p := tr.ToPixel(geom.Point{X: x, Y: y})
			label := formatCoord(x) + "," + formatCoord(y)
			drawLabel(img, p.X+2, p.Y+2, label)
		}
	}
}

func formatCoord(v float64) string {
	return strconv.FormatFloat(v, 'f', -1, 64)
}

func setClipped(img *image.RGBA, x, y int, col color.Color) {
	if image.Pt(x, y).In(img.Bounds()) {
		img.Set(x, y, col)
	}
}

// labelGlyphs is a 3x5 pixel font covering the characters coordinate
// labels can contain.
var labelGlyphs = map[rune][]string{
	'0': {"111", "101", "101", "101", "111"},
	'1': {"010", "110", "010", "010", "111"},
	'2': {"111", "001", "111", "100", "111"},
	'3': {"111", "001", "111", "001", "111"},
	'4': {"101", "101", "111", "001", "001"},
	'5': {"111", "100", "111", "001", "111"},
	'6': {"111", "100", "111", "101", "111"},
	'7': {"111", "001", "001", "001", "001"},
	'8': {"111", "101", "111", "101", "111"},
	'9': {"111", "101", "111", "001", "111"},
	',': {"000", "000", "000", "010", "010"},
	'.': {"000", "000", "000", "000", "010"},
	'-': {"000", "000", "111", "000", "000"},
}

// drawLabel draws a small coordinate label with a dark backing box.
func drawLabel(img *image.RGBA, x, y int, text string) {
	const charWidth = 4
	labelWidth := len(text) * charWidth
	labelHeight := 7

	for dy := -1; dy < labelHeight; dy++ {
		for dx := -1; dx < labelWidth; dx++ {
			setClipped(img, x+dx, y+dy, labelBackColor)
		}
	}

	cx := x
	for _, ch := range text {
		glyph, ok := labelGlyphs[ch]
		if !ok {
			cx += charWidth
			continue
		}
		for row, line := range glyph {
			for col, bit := range line {
				if bit == '1' {
					setClipped(img, cx+col, y+row, labelColor)
				}
			}
		}
		cx += charWidth
	}
}
