package geom

import (
	"fmt"
	"math"
)

// Transform maps between coordinates in map units and pixel coordinates.
//
// A Transform associates a BoundingBox in map units with a PixelRange, such
// that the upper-left corner of the extent is mapped to the pixel
// (MinX, MinY) and the lower-right corner to (MaxX, MaxY) of the range.
//
// A Transform is immutable: it is constructed once per request or region
// and queried many times, from any number of goroutines.
type Transform struct {
	extent     BoundingBox
	pixelRange PixelRange
	scaleX     float64 // map units per pixel along X
	scaleY     float64 // map units per pixel along Y
}

// NewTransform builds a transform from an extent and the pixel range it
// covers. The scale factors are derived exactly from the two rectangles.
func NewTransform(extent BoundingBox, pixelRange PixelRange) (Transform, error) {
	if extent.Width() <= 0 || extent.Height() <= 0 {
		return Transform{}, fmt.Errorf("%w: extent %s must have positive width and height", ErrInvalidGeometry, extent)
	}
	if pixelRange.Width < 1 || pixelRange.Height < 1 {
		return Transform{}, fmt.Errorf("%w: pixel range %s must be at least one pixel in each dimension", ErrInvalidGeometry, pixelRange)
	}
	return Transform{
		extent:     extent,
		pixelRange: pixelRange,
		scaleX:     extent.Width() / float64(pixelRange.Width),
		scaleY:     extent.Height() / float64(pixelRange.Height),
	}, nil
}

// NewTransformAtScale builds a transform from an extent and a uniform
// map-units-per-pixel scale. The pixel range is sized so that it always
// covers the full extent, rounding fractional pixels up, with its origin at
// (originX, originY).
func NewTransformAtScale(extent BoundingBox, originX, originY int, mapUnitsPerPixel float64) (Transform, error) {
	if mapUnitsPerPixel <= 0 {
		return Transform{}, fmt.Errorf("%w: scale %g must be positive", ErrInvalidGeometry, mapUnitsPerPixel)
	}
	if extent.Width() <= 0 || extent.Height() <= 0 {
		return Transform{}, fmt.Errorf("%w: extent %s must have positive width and height", ErrInvalidGeometry, extent)
	}
	width := int(math.Ceil(extent.Width() / mapUnitsPerPixel))
	height := int(math.Ceil(extent.Height() / mapUnitsPerPixel))
	pixelRange, err := NewPixelRange(originX, originY, width, height)
	if err != nil {
		return Transform{}, err
	}
	return Transform{
		extent:     extent,
		pixelRange: pixelRange,
		scaleX:     mapUnitsPerPixel,
		scaleY:     mapUnitsPerPixel,
	}, nil
}

// NewScaledTransform is NewTransformAtScale with the pixel origin at (0,0).
func NewScaledTransform(extent BoundingBox, mapUnitsPerPixel float64) (Transform, error) {
	return NewTransformAtScale(extent, 0, 0, mapUnitsPerPixel)
}

// Extent returns the bounding box the transform is anchored to.
func (t Transform) Extent() BoundingBox { return t.extent }

// PixelRange returns the pixel grid the transform is anchored to.
func (t Transform) PixelRange() PixelRange { return t.pixelRange }

// ScaleX returns the map units covered by one pixel along the X axis.
func (t Transform) ScaleX() float64 { return t.scaleX }

// ScaleY returns the map units covered by one pixel along the Y axis.
func (t Transform) ScaleY() float64 { return t.scaleY }

// ToPoint maps a pixel to a point in map units.
//
// The point corresponds exactly to the upper-left corner of the pixel.
func (t Transform) ToPoint(pixel Pixel) Point {
	x := t.extent.MinX + t.scaleX*float64(pixel.X-t.pixelRange.MinX)
	y := t.extent.MaxY - t.scaleY*float64(pixel.Y-t.pixelRange.MinY)
	return Point{X: x, Y: y}
}

// ToPixel maps a point to a pixel.
//
// A point that falls on the boundary between two pixels is mapped to the
// pixel on the right of and/or below the boundary. The four corners of the
// bound extent are the exception: their inclusivity is chosen so that the
// extent maps onto the full pixel range without overshooting it.
func (t Transform) ToPixel(point Point) Pixel {
	switch point {
	case t.extent.UpperRight():
		return t.ToPixelInclusive(point, true, false)
	case t.extent.UpperLeft():
		return t.ToPixelInclusive(point, false, false)
	case t.extent.LowerLeft():
		return t.ToPixelInclusive(point, false, true)
	case t.extent.LowerRight():
		return t.ToPixelInclusive(point, true, true)
	}
	return t.ToPixelInclusive(point, false, false)
}

// ToPixelInclusive maps a point to a pixel under an explicit boundary rule.
//
// If leftInclusive is true, a point that falls exactly on the left boundary
// of a pixel is assigned to the pixel left of that boundary; otherwise it is
// assigned to the pixel on the right. lowerInclusive applies the same rule
// to the lower boundary along the Y axis.
func (t Transform) ToPixelInclusive(point Point, leftInclusive, lowerInclusive bool) Pixel {
	xOffset := point.X - t.extent.MinX
	yOffset := t.extent.MaxY - point.Y
	x := float64(t.pixelRange.MinX) + xOffset/t.scaleX
	y := float64(t.pixelRange.MinY) + yOffset/t.scaleY
	xPix := int(math.Floor(x))
	if x == math.Floor(x) && leftInclusive {
		xPix = int(x) - 1
	}
	yPix := int(math.Floor(y))
	if y == math.Floor(y) && lowerInclusive {
		yPix = int(y) - 1
	}
	return Pixel{X: xPix, Y: yPix}
}

// ToPixelRange maps a bounding box to the minimal pixel rectangle that
// encloses it: at least one pixel in each dimension for any box with
// non-negative extent.
func (t Transform) ToPixelRange(bbox BoundingBox) PixelRange {
	ul := t.ToPixelInclusive(bbox.UpperLeft(), false, false)
	lr := t.ToPixelInclusive(bbox.LowerRight(), true, true)
	return PixelRange{
		MinX:   ul.X,
		MinY:   ul.Y,
		Width:  lr.X - ul.X + 1,
		Height: lr.Y - ul.Y + 1,
	}
}
