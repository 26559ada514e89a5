package geom

import (
	"errors"
	"testing"
)

func unitTransform(t *testing.T) Transform {
	t.Helper()
	tr, err := NewTransform(
		BoundingBox{MinX: 0, MinY: 0, MaxX: 100, MaxY: 100},
		PixelRange{MinX: 0, MinY: 0, Width: 100, Height: 100},
	)
	if err != nil {
		t.Fatalf("NewTransform failed: %v", err)
	}
	return tr
}

func TestNewTransform_Scales(t *testing.T) {
	tr, err := NewTransform(
		BoundingBox{MinX: 0, MinY: 0, MaxX: 200, MaxY: 100},
		PixelRange{MinX: 0, MinY: 0, Width: 100, Height: 100},
	)
	if err != nil {
		t.Fatalf("NewTransform failed: %v", err)
	}
	if tr.ScaleX() != 2 || tr.ScaleY() != 1 {
		t.Errorf("scales: got (%g,%g), want (2,1)", tr.ScaleX(), tr.ScaleY())
	}
}

func TestNewTransform_Invalid(t *testing.T) {
	tests := []struct {
		name       string
		extent     BoundingBox
		pixelRange PixelRange
	}{
		{"zero-width extent", BoundingBox{0, 0, 0, 100}, PixelRange{0, 0, 100, 100}},
		{"zero-height extent", BoundingBox{0, 0, 100, 0}, PixelRange{0, 0, 100, 100}},
		{"zero-width range", BoundingBox{0, 0, 100, 100}, PixelRange{0, 0, 0, 100}},
		{"zero-height range", BoundingBox{0, 0, 100, 100}, PixelRange{0, 0, 100, 0}},
		{"inverted extent", BoundingBox{100, 0, 0, 100}, PixelRange{0, 0, 100, 100}},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			_, err := NewTransform(tt.extent, tt.pixelRange)
			if !errors.Is(err, ErrInvalidGeometry) {
				t.Errorf("got %v, want ErrInvalidGeometry", err)
			}
		})
	}
}

func TestNewTransformAtScale_CeilsPixelRange(t *testing.T) {
	// Width 105 at 10 map units per pixel needs ceil(10.5) = 11 columns to
	// cover the whole extent.
	tr, err := NewTransformAtScale(BoundingBox{MinX: 0, MinY: 0, MaxX: 105, MaxY: 50}, 3, 7, 10)
	if err != nil {
		t.Fatalf("NewTransformAtScale failed: %v", err)
	}
	pr := tr.PixelRange()
	if pr.MinX != 3 || pr.MinY != 7 {
		t.Errorf("origin: got (%d,%d), want (3,7)", pr.MinX, pr.MinY)
	}
	if pr.Width != 11 || pr.Height != 5 {
		t.Errorf("dimensions: got %dx%d, want 11x5", pr.Width, pr.Height)
	}
	if tr.ScaleX() != 10 || tr.ScaleY() != 10 {
		t.Errorf("scales: got (%g,%g), want (10,10)", tr.ScaleX(), tr.ScaleY())
	}
}

func TestNewScaledTransform_OriginZero(t *testing.T) {
	tr, err := NewScaledTransform(BoundingBox{MinX: 0, MinY: 0, MaxX: 100, MaxY: 100}, 1)
	if err != nil {
		t.Fatalf("NewScaledTransform failed: %v", err)
	}
	want := PixelRange{MinX: 0, MinY: 0, Width: 100, Height: 100}
	if tr.PixelRange() != want {
		t.Errorf("pixel range: got %v, want %v", tr.PixelRange(), want)
	}
}

func TestNewScaledTransform_Invalid(t *testing.T) {
	tests := []struct {
		name   string
		extent BoundingBox
		scale  float64
	}{
		{"zero scale", BoundingBox{0, 0, 100, 100}, 0},
		{"negative scale", BoundingBox{0, 0, 100, 100}, -1},
		{"degenerate extent", BoundingBox{0, 0, 0, 0}, 1},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			_, err := NewScaledTransform(tt.extent, tt.scale)
			if !errors.Is(err, ErrInvalidGeometry) {
				t.Errorf("got %v, want ErrInvalidGeometry", err)
			}
		})
	}
}

func TestToPoint(t *testing.T) {
	tr := unitTransform(t)

	tests := []struct {
		name  string
		pixel Pixel
		want  Point
	}{
		{"origin pixel maps to upper-left", Pixel{0, 0}, Point{0, 100}},
		{"interior pixel", Pixel{50, 50}, Point{50, 50}},
		{"last pixel maps to its upper-left corner", Pixel{99, 99}, Point{99, 1}},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			if got := tr.ToPoint(tt.pixel); got != tt.want {
				t.Errorf("ToPoint(%v): got %v, want %v", tt.pixel, got, tt.want)
			}
		})
	}
}

func TestToPoint_NonUniformScale(t *testing.T) {
	tr, err := NewTransform(
		BoundingBox{MinX: 0, MinY: 0, MaxX: 200, MaxY: 100},
		PixelRange{MinX: 0, MinY: 0, Width: 100, Height: 100},
	)
	if err != nil {
		t.Fatalf("NewTransform failed: %v", err)
	}
	if got := tr.ToPoint(Pixel{10, 10}); got != (Point{20, 90}) {
		t.Errorf("ToPoint(10,10): got %v, want (20,90)", got)
	}
}

func TestToPixel_ExtentCorners(t *testing.T) {
	tr := unitTransform(t)

	// The corner special cases keep the full extent inside the pixel range.
	tests := []struct {
		name  string
		point Point
		want  Pixel
	}{
		{"upper-left", Point{0, 100}, Pixel{0, 0}},
		{"upper-right", Point{100, 100}, Pixel{99, 0}},
		{"lower-left", Point{0, 0}, Pixel{0, 99}},
		{"lower-right", Point{100, 0}, Pixel{99, 99}},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			if got := tr.ToPixel(tt.point); got != tt.want {
				t.Errorf("ToPixel(%v): got %v, want %v", tt.point, got, tt.want)
			}
		})
	}
}

func TestToPixel_InteriorAndOutOfRange(t *testing.T) {
	tr := unitTransform(t)

	tests := []struct {
		name  string
		point Point
		want  Pixel
	}{
		{"interior grid crossing goes right and below", Point{50, 50}, Pixel{50, 50}},
		{"off-grid point floors", Point{50.7, 49.2}, Pixel{50, 50}},
		{"point left of extent", Point{-10, 50}, Pixel{-10, 50}},
		{"point above extent", Point{50, 110}, Pixel{50, -10}},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			if got := tr.ToPixel(tt.point); got != tt.want {
				t.Errorf("ToPixel(%v): got %v, want %v", tt.point, got, tt.want)
			}
		})
	}
}

func TestToPixel_CornerOfOtherBoxNotSpecialCased(t *testing.T) {
	tr := unitTransform(t)

	// Only the transform's own extent corners get inclusive treatment. A
	// point on an interior grid line maps right/below even when it is the
	// corner of some sub-box.
	if got := tr.ToPixel(Point{50, 50}); got != (Pixel{50, 50}) {
		t.Errorf("interior boundary point: got %v, want (50,50)", got)
	}
}

func TestToPixelInclusive_TieBreak(t *testing.T) {
	tr := unitTransform(t)
	on := Point{50, 50} // exactly on a grid line on both axes

	tests := []struct {
		name        string
		left, lower bool
		want        Pixel
	}{
		{"default excludes left and lower", false, false, Pixel{50, 50}},
		{"left inclusive shifts X back", true, false, Pixel{49, 50}},
		{"lower inclusive shifts Y back", false, true, Pixel{50, 49}},
		{"both inclusive", true, true, Pixel{49, 49}},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			if got := tr.ToPixelInclusive(on, tt.left, tt.lower); got != tt.want {
				t.Errorf("ToPixelInclusive(%v,%v,%v): got %v, want %v", on, tt.left, tt.lower, got, tt.want)
			}
		})
	}
}

func TestToPixelInclusive_OffGridIgnoresFlags(t *testing.T) {
	tr := unitTransform(t)
	p := Point{50.5, 49.5}

	want := Pixel{50, 50}
	for _, left := range []bool{false, true} {
		for _, lower := range []bool{false, true} {
			if got := tr.ToPixelInclusive(p, left, lower); got != want {
				t.Errorf("ToPixelInclusive(%v,%v,%v): got %v, want %v", p, left, lower, got, want)
			}
		}
	}
}

func TestRoundTrip(t *testing.T) {
	tr := unitTransform(t)
	pr := tr.PixelRange()

	for y := pr.MinY; y <= pr.MaxY(); y++ {
		for x := pr.MinX; x <= pr.MaxX(); x++ {
			pixel := Pixel{X: x, Y: y}
			if got := tr.ToPixel(tr.ToPoint(pixel)); got != pixel {
				t.Fatalf("round trip %v: got %v", pixel, got)
			}
		}
	}
}

func TestRoundTrip_NonUniformScale(t *testing.T) {
	tr, err := NewTransform(
		BoundingBox{MinX: -300, MinY: 20, MaxX: 180, MaxY: 260},
		PixelRange{MinX: 0, MinY: 0, Width: 160, Height: 60},
	)
	if err != nil {
		t.Fatalf("NewTransform failed: %v", err)
	}
	pr := tr.PixelRange()
	for y := pr.MinY; y <= pr.MaxY(); y++ {
		for x := pr.MinX; x <= pr.MaxX(); x++ {
			pixel := Pixel{X: x, Y: y}
			if got := tr.ToPixel(tr.ToPoint(pixel)); got != pixel {
				t.Fatalf("round trip %v: got %v", pixel, got)
			}
		}
	}
}

func TestToPixelRange_Identity(t *testing.T) {
	tr := unitTransform(t)
	if got := tr.ToPixelRange(tr.Extent()); got != tr.PixelRange() {
		t.Errorf("ToPixelRange(extent): got %v, want %v", got, tr.PixelRange())
	}
}

func TestToPixelRange_SubBox(t *testing.T) {
	tr := unitTransform(t)

	tests := []struct {
		name string
		bbox BoundingBox
		want PixelRange
	}{
		{"aligned quarter", BoundingBox{0, 50, 50, 100}, PixelRange{0, 0, 50, 50}},
		{"grid-aligned interior", BoundingBox{10, 10, 20, 20}, PixelRange{10, 80, 10, 10}},
		{"fractional box grows to enclosing pixels", BoundingBox{10.2, 10.2, 19.8, 19.8}, PixelRange{10, 80, 10, 10}},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			if got := tr.ToPixelRange(tt.bbox); got != tt.want {
				t.Errorf("ToPixelRange(%v): got %v, want %v", tt.bbox, got, tt.want)
			}
		})
	}
}

func TestToPixelRange_MinimumOnePixel(t *testing.T) {
	tr := unitTransform(t)

	// A degenerate box still encloses at least one pixel in each dimension.
	got := tr.ToPixelRange(BoundingBox{MinX: 25.5, MinY: 25.5, MaxX: 25.5, MaxY: 25.5})
	if got.Width < 1 || got.Height < 1 {
		t.Errorf("degenerate box: got %v, want at least 1x1", got)
	}
}
