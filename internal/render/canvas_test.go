package render

import (
	"image/color"
	"testing"

	"github.com/geoforge/mapserv/internal/geom"
)

func testCanvas(t *testing.T) *Canvas {
	t.Helper()
	tr, err := geom.NewTransform(
		geom.BoundingBox{MinX: 0, MinY: 0, MaxX: 10, MaxY: 10},
		geom.PixelRange{MinX: 0, MinY: 0, Width: 10, Height: 10},
	)
	if err != nil {
		t.Fatalf("NewTransform failed: %v", err)
	}
	return NewCanvas(tr, nil)
}

func rgbaAt(c *Canvas, x, y int) color.RGBA {
	return color.RGBAModel.Convert(c.Image().At(x, y)).(color.RGBA)
}

func TestNewCanvas_Background(t *testing.T) {
	tr, err := geom.NewTransform(
		geom.BoundingBox{MinX: 0, MinY: 0, MaxX: 10, MaxY: 10},
		geom.PixelRange{MinX: 0, MinY: 0, Width: 10, Height: 10},
	)
	if err != nil {
		t.Fatalf("NewTransform failed: %v", err)
	}

	c := NewCanvas(tr, color.White)
	if got := rgbaAt(c, 0, 0); got != (color.RGBA{255, 255, 255, 255}) {
		t.Errorf("background: got %v, want white", got)
	}

	transparent := NewCanvas(tr, nil)
	if got := rgbaAt(transparent, 0, 0); got.A != 0 {
		t.Errorf("nil background: got %v, want transparent", got)
	}
}

func TestCanvas_DrawPoint(t *testing.T) {
	c := testCanvas(t)
	red := color.NRGBA{255, 0, 0, 255}

	c.DrawPoint(geom.Point{X: 5.5, Y: 5.5}, 0, red)

	// (5.5, 5.5) lands on pixel (5, 4): the y axis is flipped.
	if got := rgbaAt(c, 5, 4); got != (color.RGBA{255, 0, 0, 255}) {
		t.Errorf("point pixel: got %v, want red", got)
	}
	if got := rgbaAt(c, 5, 5); got.A != 0 {
		t.Errorf("neighbor pixel: got %v, want untouched", got)
	}
}

func TestCanvas_DrawPoint_Radius(t *testing.T) {
	c := testCanvas(t)
	red := color.NRGBA{255, 0, 0, 255}

	c.DrawPoint(geom.Point{X: 5.5, Y: 5.5}, 2, red)

	for _, px := range [][2]int{{5, 4}, {3, 4}, {7, 4}, {5, 2}, {5, 6}} {
		if got := rgbaAt(c, px[0], px[1]); got.A == 0 {
			t.Errorf("disc pixel (%d,%d) should be set", px[0], px[1])
		}
	}
	if got := rgbaAt(c, 0, 0); got.A != 0 {
		t.Error("far corner should stay untouched")
	}
}

func TestCanvas_DrawPoint_OutsideClipped(t *testing.T) {
	c := testCanvas(t)
	// Way outside the extent: must not panic, must not write anything.
	c.DrawPoint(geom.Point{X: -100, Y: 200}, 3, color.NRGBA{255, 0, 0, 255})
}

func TestCanvas_DrawLine(t *testing.T) {
	c := testCanvas(t)
	blue := color.NRGBA{0, 0, 255, 255}

	c.DrawLine(geom.Point{X: 0.5, Y: 0.5}, geom.Point{X: 9.5, Y: 9.5}, 1, blue)

	// The diagonal runs from pixel (0,9) up to (9,0).
	for _, px := range [][2]int{{0, 9}, {9, 0}, {5, 4}} {
		if got := rgbaAt(c, px[0], px[1]); got.A == 0 {
			t.Errorf("line pixel (%d,%d) should be set", px[0], px[1])
		}
	}
	if got := rgbaAt(c, 0, 0); got.A != 0 {
		t.Error("pixel off the line should stay untouched")
	}
}

func TestCanvas_DrawPolygon(t *testing.T) {
	c := testCanvas(t)
	s := Style{
		Stroke:      color.NRGBA{0, 0, 0, 255},
		Fill:        color.NRGBA{0, 255, 0, 160},
		StrokeWidth: 1,
	}

	square := []geom.Point{{X: 2, Y: 2}, {X: 8, Y: 2}, {X: 8, Y: 8}, {X: 2, Y: 8}, {X: 2, Y: 2}}
	c.DrawPolygon([][]geom.Point{square}, s)

	if got := rgbaAt(c, 5, 5); got.A == 0 {
		t.Error("interior pixel should be filled")
	}
	if got := rgbaAt(c, 0, 0); got.A != 0 {
		t.Error("exterior pixel should stay untouched")
	}
	// Ring outline is stroked in the stroke color.
	if got := rgbaAt(c, 2, 5); got != (color.RGBA{0, 0, 0, 255}) {
		t.Errorf("outline pixel: got %v, want black stroke", got)
	}
}

func TestCanvas_DrawPolygon_Hole(t *testing.T) {
	c := testCanvas(t)
	s := Style{
		Stroke:      color.NRGBA{0, 0, 0, 255},
		Fill:        color.NRGBA{0, 255, 0, 255},
		StrokeWidth: 1,
	}

	outer := []geom.Point{{X: 0, Y: 0}, {X: 10, Y: 0}, {X: 10, Y: 10}, {X: 0, Y: 10}, {X: 0, Y: 0}}
	hole := []geom.Point{{X: 4, Y: 4}, {X: 7, Y: 4}, {X: 7, Y: 7}, {X: 4, Y: 7}, {X: 4, Y: 4}}
	c.DrawPolygon([][]geom.Point{outer, hole}, s)

	if got := rgbaAt(c, 2, 2); got.A == 0 {
		t.Error("pixel between outer ring and hole should be filled")
	}
	// (5.5, 5.5) maps to pixel (5,4), inside the hole.
	if got := rgbaAt(c, 5, 4); got.A != 0 && got == (color.RGBA{0, 255, 0, 255}) {
		t.Error("pixel inside the hole should not carry the fill color")
	}
}

func TestCanvas_DegenerateRingIgnored(t *testing.T) {
	c := testCanvas(t)
	c.DrawPolygon([][]geom.Point{{{X: 1, Y: 1}, {X: 2, Y: 2}}}, DefaultStyle())
	if got := rgbaAt(c, 1, 8); got.A != 0 {
		t.Error("two-vertex ring should draw nothing")
	}
}
