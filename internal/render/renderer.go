package render

import (
	"image"
	"image/color"
	"image/draw"

	"github.com/anthonynsimon/bild/blend"
	"github.com/disintegration/imaging"

	"github.com/geoforge/mapserv/internal/geom"
	"github.com/geoforge/mapserv/internal/layer"
)

// Layer pairs a dataset with the style it is drawn in.
type Layer struct {
	Name  string
	Data  *layer.Dataset
	Style Style
}

// Options controls a single map rendering.
type Options struct {
	// Background paints the canvas before any layer. nil keeps the map
	// transparent.
	Background color.Color

	// Antialias renders at twice the requested size and downscales with a
	// Lanczos filter.
	Antialias bool

	// Graticule draws a coordinate grid with the given spacing in map
	// units. Zero disables the grid.
	Graticule float64
}

// Map renders the given layers over extent into a width x height image.
// Layers are composited in slice order, the first at the bottom.
func Map(extent geom.BoundingBox, width, height int, layers []Layer, opts Options) (image.Image, error) {
	factor := 1
	if opts.Antialias {
		factor = 2
	}
	pixelRange, err := geom.NewPixelRange(0, 0, width*factor, height*factor)
	if err != nil {
		return nil, err
	}
	tr, err := geom.NewTransform(extent, pixelRange)
	if err != nil {
		return nil, err
	}

	out := image.NewRGBA(image.Rect(0, 0, pixelRange.Width, pixelRange.Height))
	if opts.Background != nil {
		draw.Draw(out, out.Bounds(), image.NewUniform(opts.Background), image.Point{}, draw.Src)
	}

	for _, l := range layers {
		if l.Data == nil || l.Data.Empty() {
			continue
		}
		if culled(tr, l.Data.Extent(), pixelRange) {
			continue
		}
		canvas := NewCanvas(tr, nil)
		drawDataset(canvas, l.Data, l.Style, pixelRange)
		out = blend.Normal(out, canvas.Image())
	}

	if factor > 1 {
		resized := imaging.Resize(out, width, height, imaging.Lanczos)
		out = image.NewRGBA(image.Rect(0, 0, width, height))
		draw.Draw(out, out.Bounds(), resized, image.Point{}, draw.Src)
	}

	if opts.Graticule > 0 {
		final, err := geom.NewTransform(extent, geom.PixelRange{MinX: 0, MinY: 0, Width: width, Height: height})
		if err != nil {
			return nil, err
		}
		drawGraticule(out, final, opts.Graticule)
	}

	return out, nil
}

func drawDataset(c *Canvas, d *layer.Dataset, s Style, clip geom.PixelRange) {
	for _, p := range d.Points {
		c.DrawPoint(p, s.PointRadius, s.Stroke)
	}
	for _, ls := range d.Lines {
		if len(ls) < 2 || culled(c.Transform(), extentOf(ls), clip) {
			continue
		}
		c.DrawLineString(ls, s.StrokeWidth, s.Stroke)
	}
	for _, rings := range d.Polygons {
		if len(rings) == 0 || len(rings[0]) < 3 || culled(c.Transform(), extentOf(rings[0]), clip) {
			continue
		}
		c.DrawPolygon(rings, s)
	}
}

// culled reports whether a feature's bounding box lands entirely outside
// the canvas. A box aligned to the pixel grid can enclose zero pixels;
// clamp to one so features on a grid line are still drawn.
func culled(tr geom.Transform, bbox geom.BoundingBox, clip geom.PixelRange) bool {
	pr := tr.ToPixelRange(bbox)
	if pr.Width < 1 {
		pr.Width = 1
	}
	if pr.Height < 1 {
		pr.Height = 1
	}
	return !pr.Intersects(clip)
}

func extentOf(pts []geom.Point) geom.BoundingBox {
	b := geom.BoundingBox{MinX: pts[0].X, MinY: pts[0].Y, MaxX: pts[0].X, MaxY: pts[0].Y}
	for _, p := range pts[1:] {
		if p.X < b.MinX {
			b.MinX = p.X
		}
		if p.Y < b.MinY {
			b.MinY = p.Y
		}
		if p.X > b.MaxX {
			b.MaxX = p.X
		}
		if p.Y > b.MaxY {
			b.MaxY = p.Y
		}
	}
	return b
}
