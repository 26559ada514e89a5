package render

import (
	"image"
	"image/color"
	"image/draw"
	"sort"

	"github.com/geoforge/mapserv/internal/geom"
)

// Canvas rasterizes features onto an RGBA image through a map-unit to
// pixel transform. Writes outside the canvas are silently clipped, so
// features may safely extend past the rendered extent.
type Canvas struct {
	img *image.RGBA
	tr  geom.Transform
	pr  geom.PixelRange
}

// NewCanvas allocates a canvas covering the transform's pixel range. A nil
// background leaves the canvas fully transparent.
func NewCanvas(tr geom.Transform, bg color.Color) *Canvas {
	pr := tr.PixelRange()
	img := image.NewRGBA(image.Rect(0, 0, pr.Width, pr.Height))
	if bg != nil {
		draw.Draw(img, img.Bounds(), image.NewUniform(bg), image.Point{}, draw.Src)
	}
	return &Canvas{img: img, tr: tr, pr: pr}
}

// Image returns the backing image.
func (c *Canvas) Image() *image.RGBA { return c.img }

// Transform returns the transform the canvas draws through.
func (c *Canvas) Transform() geom.Transform { return c.tr }

// set writes one pixel addressed in transform pixel coordinates.
func (c *Canvas) set(px, py int, col color.Color) {
	x := px - c.pr.MinX
	y := py - c.pr.MinY
	if x < 0 || y < 0 || x >= c.pr.Width || y >= c.pr.Height {
		return
	}
	c.img.Set(x, y, col)
}

// stamp draws a filled disc centered on a pixel.
func (c *Canvas) stamp(px, py, radius int, col color.Color) {
	if radius <= 0 {
		c.set(px, py, col)
		return
	}
	for dy := -radius; dy <= radius; dy++ {
		for dx := -radius; dx <= radius; dx++ {
			if dx*dx+dy*dy <= radius*radius {
				c.set(px+dx, py+dy, col)
			}
		}
	}
}

// DrawPoint draws a point feature as a filled disc.
func (c *Canvas) DrawPoint(p geom.Point, radius int, col color.Color) {
	px := c.tr.ToPixel(p)
	c.stamp(px.X, px.Y, radius, col)
}

// DrawLine draws a straight segment between two map-unit points using
// Bresenham's walk on the pixel grid.
func (c *Canvas) DrawLine(a, b geom.Point, width int, col color.Color) {
	pa := c.tr.ToPixel(a)
	pb := c.tr.ToPixel(b)
	c.drawPixelLine(pa.X, pa.Y, pb.X, pb.Y, width, col)
}

// DrawLineString draws consecutive segments through the given vertices.
func (c *Canvas) DrawLineString(pts []geom.Point, width int, col color.Color) {
	for i := 1; i < len(pts); i++ {
		c.DrawLine(pts[i-1], pts[i], width, col)
	}
}

// DrawPolygon fills the polygon's rings with even-odd scanlines, treating
// rings after the first as holes, then strokes every ring outline.
func (c *Canvas) DrawPolygon(rings [][]geom.Point, s Style) {
	projected := make([][]geom.Pixel, 0, len(rings))
	for _, ring := range rings {
		if len(ring) < 3 {
			continue
		}
		rp := make([]geom.Pixel, len(ring))
		for i, p := range ring {
			rp[i] = c.tr.ToPixel(p)
		}
		projected = append(projected, rp)
	}
	if len(projected) == 0 {
		return
	}
	c.fillEvenOdd(projected, s.Fill)
	for _, rp := range projected {
		for i := range rp {
			a := rp[i]
			b := rp[(i+1)%len(rp)]
			c.drawPixelLine(a.X, a.Y, b.X, b.Y, s.StrokeWidth, s.Stroke)
		}
	}
}

func (c *Canvas) drawPixelLine(x0, y0, x1, y1, width int, col color.Color) {
	dx := abs(x1 - x0)
	sx := -1
	if x0 < x1 {
		sx = 1
	}
	dy := -abs(y1 - y0)
	sy := -1
	if y0 < y1 {
		sy = 1
	}
	err := dx + dy
	r := width / 2
	for {
		if r > 0 {
			c.stamp(x0, y0, r, col)
		} else {
			c.set(x0, y0, col)
		}
		if x0 == x1 && y0 == y1 {
			break
		}
		e2 := 2 * err
		if e2 >= dy {
			err += dy
			x0 += sx
		}
		if e2 <= dx {
			err += dx
			y0 += sy
		}
	}
}

// fillEvenOdd fills the area enclosed by the rings, one scanline at a time.
// Crossing parity handles holes without special-casing ring roles.
func (c *Canvas) fillEvenOdd(rings [][]geom.Pixel, col color.Color) {
	for y := c.pr.MinY; y <= c.pr.MaxY(); y++ {
		var xs []int
		for _, ring := range rings {
			for i := range ring {
				a := ring[i]
				b := ring[(i+1)%len(ring)]
				if a.Y == b.Y {
					continue
				}
				if (y >= a.Y && y < b.Y) || (y >= b.Y && y < a.Y) {
					t := float64(y-a.Y) / float64(b.Y-a.Y)
					xs = append(xs, a.X+int(t*float64(b.X-a.X)))
				}
			}
		}
		if len(xs) < 2 {
			continue
		}
		sort.Ints(xs)
		for i := 0; i+1 < len(xs); i += 2 {
			for x := xs[i]; x <= xs[i+1]; x++ {
				c.set(x, y, col)
			}
		}
	}
}

func abs(v int) int {
	if v < 0 {
		return -v
	}
	return v
}
