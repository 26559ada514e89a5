// Package geom provides the geometric core of the map server: immutable
// value types for map-unit and pixel coordinates, and the affine transform
// that binds a georeferenced extent to a discrete pixel grid.
//
// # Coordinate Systems
//
// Two coordinate systems are in play:
//
//   - Map units: real-valued coordinates in the source reference system
//     (meters, degrees, ...). X grows eastward, Y grows northward.
//   - Pixels: integer image coordinates. The origin is the upper-left
//     corner of the image, X grows rightward, Y grows downward.
//
// A Transform associates a BoundingBox in map units with a PixelRange such
// that the upper-left corner of the extent maps onto the first pixel of the
// range and the lower-right corner onto the last. Because the two Y axes
// run in opposite directions, the vertical axis is flipped by the mapping.
//
// # Boundary Inclusivity
//
// A point that falls exactly on a pixel-grid line belongs, by default, to
// the pixel to the right of and below the line. ToPixelInclusive exposes
// the general rule; ToPixel special-cases the four corners of the bound
// extent so that the whole extent maps onto the full pixel range without
// overshooting by one.
//
// # Error Handling
//
// Only construction can fail, and only with ErrInvalidGeometry: a bounding
// box with negative width or height, a pixel range smaller than one pixel,
// or a non-positive scale. The mapping operations are total: points outside
// the extent map to out-of-range pixel indices, which is a valid result and
// left to the caller to interpret.
//
// # Thread Safety
//
// All types in this package are immutable values. A Transform may be shared
// freely across goroutines without synchronization.
package geom
