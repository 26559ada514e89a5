package wms

import (
	"image/color"
	"strconv"
	"strings"

	"github.com/geoforge/mapserv/internal/geom"
	"github.com/geoforge/mapserv/internal/render"
)

// maxImageDimension bounds the output size a single request may ask for.
const maxImageDimension = 4096

// GetMapRequest is a validated WMS GetMap request.
type GetMapRequest struct {
	Version     string
	Layers      []string
	Styles      []string
	SRS         string
	BBox        geom.BoundingBox
	Width       int
	Height      int
	Format      string
	BGColor     color.NRGBA
	Transparent bool
}

// canonical uppercases parameter names; WMS parameter names are
// case-insensitive.
func canonical(q map[string]string) map[string]string {
	out := make(map[string]string, len(q))
	for k, v := range q {
		out[strings.ToUpper(k)] = v
	}
	return out
}

// ParseGetMap validates WMS query parameters into a GetMapRequest.
func ParseGetMap(q map[string]string) (*GetMapRequest, error) {
	params := canonical(q)

	req := &GetMapRequest{
		Version: params["VERSION"],
		SRS:     params["SRS"],
	}
	if req.Version == "" {
		req.Version = "1.1.1"
	}
	if req.SRS == "" {
		req.SRS = params["CRS"] // WMS 1.3.0 spelling
	}
	if req.SRS == "" {
		return nil, Exceptionf(CodeInvalidSRS, "missing SRS parameter")
	}

	if params["LAYERS"] == "" {
		return nil, Exceptionf("", "missing LAYERS parameter")
	}
	req.Layers = strings.Split(params["LAYERS"], ",")
	if params["STYLES"] != "" {
		req.Styles = strings.Split(params["STYLES"], ",")
	}

	req.Format = params["FORMAT"]
	if req.Format == "" {
		req.Format = MIMEPNG
	}
	if !supportedFormats[req.Format] {
		return nil, Exceptionf(CodeInvalidFormat, "unsupported format %q", req.Format)
	}

	bbox, err := parseBBox(params["BBOX"])
	if err != nil {
		return nil, err
	}
	req.BBox = bbox

	req.Width, err = parseDimension(params["WIDTH"], "WIDTH")
	if err != nil {
		return nil, err
	}
	req.Height, err = parseDimension(params["HEIGHT"], "HEIGHT")
	if err != nil {
		return nil, err
	}

	req.BGColor, err = parseBGColor(params["BGCOLOR"])
	if err != nil {
		return nil, err
	}
	req.Transparent = strings.EqualFold(params["TRANSPARENT"], "true")

	return req, nil
}

// parseBBox parses "minx,miny,maxx,maxy". The box must have positive width
// and height: a degenerate box cannot anchor a transform.
func parseBBox(s string) (geom.BoundingBox, error) {
	if s == "" {
		return geom.BoundingBox{}, Exceptionf("", "missing BBOX parameter")
	}
	parts := strings.Split(s, ",")
	if len(parts) != 4 {
		return geom.BoundingBox{}, Exceptionf("", "BBOX needs four comma-separated values, got %q", s)
	}
	vals := make([]float64, 4)
	for i, part := range parts {
		v, err := strconv.ParseFloat(strings.TrimSpace(part), 64)
		if err != nil {
			return geom.BoundingBox{}, Exceptionf("", "BBOX value %q is not a number", part)
		}
		vals[i] = v
	}
	bbox, err := geom.NewBoundingBox(vals[0], vals[1], vals[2], vals[3])
	if err != nil {
		return geom.BoundingBox{}, Exceptionf("", "invalid BBOX %q: max must not be smaller than min", s)
	}
	if bbox.Width() <= 0 || bbox.Height() <= 0 {
		return geom.BoundingBox{}, Exceptionf("", "BBOX %q has no area", s)
	}
	return bbox, nil
}

func parseDimension(s, name string) (int, error) {
	if s == "" {
		return 0, Exceptionf("", "missing %s parameter", name)
	}
	v, err := strconv.Atoi(s)
	if err != nil {
		return 0, Exceptionf("", "%s value %q is not an integer", name, s)
	}
	if v < 1 || v > maxImageDimension {
		return 0, Exceptionf("", "%s must be between 1 and %d, got %d", name, maxImageDimension, v)
	}
	return v, nil
}

// parseBGColor parses the WMS "0xRRGGBB" background color notation.
func parseBGColor(s string) (color.NRGBA, error) {
	if s == "" {
		return color.NRGBA{255, 255, 255, 255}, nil
	}
	hex := s
	if strings.HasPrefix(hex, "0x") || strings.HasPrefix(hex, "0X") {
		hex = "#" + hex[2:]
	}
	c, err := render.ParseColor(hex)
	if err != nil {
		return color.NRGBA{}, Exceptionf("", "invalid BGCOLOR %q", s)
	}
	return c, nil
}
