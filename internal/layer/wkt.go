package layer

import (
	"errors"
	"fmt"
	"io"
	"os"
	"strconv"
	"strings"

	"github.com/geoforge/mapserv/internal/geom"
)

// ParseWKT parses a subset of Well-Known Text into a Dataset. Supported
// geometries: POINT, MULTIPOINT, LINESTRING, and POLYGON (with holes).
// Multiple geometries may appear on separate lines of the input.
func ParseWKT(text string) (*Dataset, error) {
	d := &Dataset{}
	for _, line := range strings.Split(text, "\n") {
		line = strings.TrimSpace(line)
		if line == "" {
			continue
		}
		if err := parseWKTGeometry(line, d); err != nil {
			return nil, err
		}
	}
	if d.Empty() {
		return nil, errors.New("wkt: no geometries found")
	}
	return d, nil
}

// LoadWKT parses the WKT file at path.
func LoadWKT(path string) (*Dataset, error) {
	f, err := os.Open(path)
	if err != nil {
		return nil, fmt.Errorf("open wkt: %w", err)
	}
	defer f.Close()
	data, err := io.ReadAll(f)
	if err != nil {
		return nil, fmt.Errorf("read wkt: %w", err)
	}
	return ParseWKT(string(data))
}

func parseWKTGeometry(s string, d *Dataset) error {
	upper := strings.ToUpper(s)
	switch {
	case strings.HasPrefix(upper, "POINT"):
		pts, err := wktTuples(s, "POINT")
		if err != nil {
			return err
		}
		for _, p := range pts {
			d.addPoint(p)
		}
	case strings.HasPrefix(upper, "MULTIPOINT"):
		pts, err := wktTuples(s, "MULTIPOINT")
		if err != nil {
			return err
		}
		for _, p := range pts {
			d.addPoint(p)
		}
	case strings.HasPrefix(upper, "LINESTRING"):
		pts, err := wktTuples(s, "LINESTRING")
		if err != nil {
			return err
		}
		d.addLine(pts)
	case strings.HasPrefix(upper, "POLYGON"):
		i := strings.Index(s, "(")
		j := strings.LastIndex(s, ")")
		if i < 0 || j <= i || !strings.Contains(s, "((") {
			return errors.New("wkt polygon: missing ring parentheses")
		}
		var rings [][]geom.Point
		for _, part := range splitRings(s[i+1 : j]) {
			pts, err := parseTuples(part)
			if err != nil {
				return fmt.Errorf("wkt polygon: %w", err)
			}
			rings = append(rings, pts)
		}
		d.addPolygon(rings)
	default:
		return fmt.Errorf("wkt: unsupported geometry %q", firstWord(s))
	}
	return nil
}

func wktTuples(s, keyword string) ([]geom.Point, error) {
	i := strings.Index(s, "(")
	j := strings.LastIndex(s, ")")
	if i < 0 || j <= i {
		return nil, fmt.Errorf("wkt %s: missing parentheses", strings.ToLower(keyword))
	}
	// MULTIPOINT may wrap each tuple in its own parentheses.
	inner := strings.NewReplacer("(", " ", ")", " ").Replace(s[i+1 : j])
	pts, err := parseTuples(inner)
	if err != nil {
		return nil, fmt.Errorf("wkt %s: %w", strings.ToLower(keyword), err)
	}
	return pts, nil
}

func parseTuples(block string) ([]geom.Point, error) {
	var pts []geom.Point
	for _, tup := range strings.Split(block, ",") {
		fields := strings.Fields(tup)
		if len(fields) < 2 {
			return nil, fmt.Errorf("coordinate tuple %q needs two values", strings.TrimSpace(tup))
		}
		x, err := strconv.ParseFloat(fields[0], 64)
		if err != nil {
			return nil, fmt.Errorf("coordinate %q: %w", fields[0], err)
		}
		y, err := strconv.ParseFloat(fields[1], 64)
		if err != nil {
			return nil, fmt.Errorf("coordinate %q: %w", fields[1], err)
		}
		pts = append(pts, geom.Point{X: x, Y: y})
	}
	if len(pts) == 0 {
		return nil, errors.New("no coordinates")
	}
	return pts, nil
}

// splitRings splits the inner text of POLYGON((...),(...)) into ring blocks.
func splitRings(s string) []string {
	var out []string
	depth := 0
	start := 0
	for i, ch := range s {
		switch ch {
		case '(':
			depth++
		case ')':
			depth--
		case ',':
			if depth == 0 {
				out = append(out, strings.Trim(strings.TrimSpace(s[start:i]), "()"))
				start = i + 1
			}
		}
	}
	out = append(out, strings.Trim(strings.TrimSpace(s[start:]), "()"))
	return out
}

func firstWord(s string) string {
	if i := strings.IndexAny(s, " ("); i > 0 {
		return s[:i]
	}
	return s
}
