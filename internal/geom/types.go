package geom

import (
	"errors"
	"fmt"
)

// ErrInvalidGeometry is returned when a value type or transform would be
// constructed in violation of its invariants.
var ErrInvalidGeometry = errors.New("invalid geometry")

// Point is a coordinate in map units.
type Point struct {
	X float64
	Y float64
}

// Pixel is an integer image coordinate, origin at the upper-left corner,
// Y growing downward.
type Pixel struct {
	X int
	Y int
}

// BoundingBox is an axis-aligned rectangle in map units.
type BoundingBox struct {
	MinX float64
	MinY float64
	MaxX float64
	MaxY float64
}

// NewBoundingBox validates and returns a bounding box. Width and height
// must be non-negative.
func NewBoundingBox(minX, minY, maxX, maxY float64) (BoundingBox, error) {
	if maxX < minX || maxY < minY {
		return BoundingBox{}, fmt.Errorf("%w: bounding box (%g,%g,%g,%g) has negative width or height",
			ErrInvalidGeometry, minX, minY, maxX, maxY)
	}
	return BoundingBox{MinX: minX, MinY: minY, MaxX: maxX, MaxY: maxY}, nil
}

// Width returns the extent of the box along the X axis.
func (b BoundingBox) Width() float64 { return b.MaxX - b.MinX }

// Height returns the extent of the box along the Y axis.
func (b BoundingBox) Height() float64 { return b.MaxY - b.MinY }

// UpperLeft returns the corner with minimum X and maximum Y.
func (b BoundingBox) UpperLeft() Point { return Point{X: b.MinX, Y: b.MaxY} }

// UpperRight returns the corner with maximum X and maximum Y.
func (b BoundingBox) UpperRight() Point { return Point{X: b.MaxX, Y: b.MaxY} }

// LowerLeft returns the corner with minimum X and minimum Y.
func (b BoundingBox) LowerLeft() Point { return Point{X: b.MinX, Y: b.MinY} }

// LowerRight returns the corner with maximum X and minimum Y.
func (b BoundingBox) LowerRight() Point { return Point{X: b.MaxX, Y: b.MinY} }

// Intersects reports whether b and other share any area or edge.
func (b BoundingBox) Intersects(other BoundingBox) bool {
	return b.MinX <= other.MaxX && other.MinX <= b.MaxX &&
		b.MinY <= other.MaxY && other.MinY <= b.MaxY
}

func (b BoundingBox) String() string {
	return fmt.Sprintf("BBox(%g,%g,%g,%g)", b.MinX, b.MinY, b.MaxX, b.MaxY)
}

// PixelRange is an axis-aligned integer rectangle describing an image's
// addressable pixel grid.
type PixelRange struct {
	MinX   int
	MinY   int
	Width  int
	Height int
}

// NewPixelRange validates and returns a pixel range. Width and height must
// be at least one pixel.
func NewPixelRange(minX, minY, width, height int) (PixelRange, error) {
	if width < 1 || height < 1 {
		return PixelRange{}, fmt.Errorf("%w: pixel range %dx%d must be at least one pixel in each dimension",
			ErrInvalidGeometry, width, height)
	}
	return PixelRange{MinX: minX, MinY: minY, Width: width, Height: height}, nil
}

// MaxX returns the X coordinate of the last addressable pixel column.
func (r PixelRange) MaxX() int { return r.MinX + r.Width - 1 }

// MaxY returns the Y coordinate of the last addressable pixel row.
func (r PixelRange) MaxY() int { return r.MinY + r.Height - 1 }

// Intersects reports whether r and other share any pixel.
func (r PixelRange) Intersects(other PixelRange) bool {
	return r.MinX <= other.MaxX() && other.MinX <= r.MaxX() &&
		r.MinY <= other.MaxY() && other.MinY <= r.MaxY()
}

func (r PixelRange) String() string {
	return fmt.Sprintf("PixelRange(%d,%d %dx%d)", r.MinX, r.MinY, r.Width, r.Height)
}
