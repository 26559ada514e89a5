package layer

import (
	"github.com/geoforge/mapserv/internal/geom"
)

// Dataset is a parsed collection of vector features in map units.
type Dataset struct {
	Points   []geom.Point
	Lines    [][]geom.Point
	Polygons [][][]geom.Point // rings per polygon: first outer, rest holes
	BBox     geom.BoundingBox

	seeded bool
}

// Empty reports whether the dataset holds no features.
func (d *Dataset) Empty() bool {
	return len(d.Points) == 0 && len(d.Lines) == 0 && len(d.Polygons) == 0
}

// grow extends the dataset bounding box to include p.
func (d *Dataset) grow(p geom.Point) {
	if !d.seeded {
		d.seeded = true
		d.BBox = geom.BoundingBox{MinX: p.X, MinY: p.Y, MaxX: p.X, MaxY: p.Y}
		return
	}
	if p.X < d.BBox.MinX {
		d.BBox.MinX = p.X
	}
	if p.Y < d.BBox.MinY {
		d.BBox.MinY = p.Y
	}
	if p.X > d.BBox.MaxX {
		d.BBox.MaxX = p.X
	}
	if p.Y > d.BBox.MaxY {
		d.BBox.MaxY = p.Y
	}
}

func (d *Dataset) addPoint(p geom.Point) {
	d.grow(p)
	d.Points = append(d.Points, p)
}

func (d *Dataset) addLine(ls []geom.Point) {
	if len(ls) == 0 {
		return
	}
	for _, p := range ls {
		d.grow(p)
	}
	d.Lines = append(d.Lines, ls)
}

func (d *Dataset) addPolygon(rings [][]geom.Point) {
	if len(rings) == 0 {
		return
	}
	for _, ring := range rings {
		for _, p := range ring {
			d.grow(p)
		}
	}
	d.Polygons = append(d.Polygons, rings)
}

// Extent returns the bounding box of all features. For a dataset with a
// single point the box is degenerate (zero width and height), which is a
// valid BoundingBox.
func (d *Dataset) Extent() geom.BoundingBox {
	return d.BBox
}
