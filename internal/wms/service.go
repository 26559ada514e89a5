package wms

import (
	"image"
	"time"

	"github.com/geoforge/mapserv/internal/layer"
	"github.com/geoforge/mapserv/internal/metrics"
	"github.com/geoforge/mapserv/internal/render"
)

// Service executes WMS operations against a set of configured layers.
type Service struct {
	registry *layer.Registry
	cache    *layer.Cache
	styles   map[string]render.Style // per-layer style, keyed by layer name

	title     string
	srs       string
	antialias bool
	graticule float64
}

// ServiceOptions configures a Service.
type ServiceOptions struct {
	Title     string
	SRS       string
	Antialias bool
	Graticule float64
}

// NewService builds a Service over the given registry. Layers without an
// entry in styles are drawn with the default style.
func NewService(registry *layer.Registry, cache *layer.Cache, styles map[string]render.Style, opts ServiceOptions) *Service {
	if styles == nil {
		styles = map[string]render.Style{}
	}
	if opts.Title == "" {
		opts.Title = "mapserv"
	}
	if opts.SRS == "" {
		opts.SRS = "EPSG:4326"
	}
	return &Service{
		registry:  registry,
		cache:     cache,
		styles:    styles,
		title:     opts.Title,
		srs:       opts.SRS,
		antialias: opts.Antialias,
		graticule: opts.Graticule,
	}
}

// SRS returns the coordinate reference system the service advertises.
func (s *Service) SRS() string { return s.srs }

// GetMap renders the layers named in the request into a single image.
func (s *Service) GetMap(req *GetMapRequest) (image.Image, error) {
	if req.SRS != s.srs {
		return nil, Exceptionf(CodeInvalidSRS, "unsupported SRS %q, this service provides %s", req.SRS, s.srs)
	}

	layers := make([]render.Layer, 0, len(req.Layers))
	for i, name := range req.Layers {
		def, err := s.registry.Get(name)
		if err != nil {
			return nil, Exceptionf(CodeLayerNotDefined, "layer %q is not defined", name)
		}
		if i < len(req.Styles) {
			if st := req.Styles[i]; st != "" && st != "default" {
				return nil, Exceptionf(CodeStyleNotDefined, "style %q is not defined for layer %q", st, name)
			}
		}
		data, err := s.cache.Load(def.Path)
		if err != nil {
			return nil, err
		}
		style, ok := s.styles[name]
		if !ok {
			style = render.DefaultStyle()
		}
		layers = append(layers, render.Layer{Name: name, Data: data, Style: style})
	}

	opts := render.Options{
		Antialias: s.antialias,
		Graticule: s.graticule,
	}
	if !req.Transparent {
		opts.Background = req.BGColor
	}

	start := time.Now()
	img, err := render.Map(req.BBox, req.Width, req.Height, layers, opts)
	if err != nil {
		return nil, err
	}
	metrics.RenderDuration.Observe(time.Since(start).Seconds())
	for _, name := range req.Layers {
		metrics.MapsRendered.WithLabelValues(name, req.Format).Inc()
	}
	return img, nil
}

// Capabilities describes the service and its layers. Extents are reported
// only for layers whose data is already cached or loads cleanly; a layer
// with a broken source file is still advertised, without an extent.
func (s *Service) Capabilities() (string, string, []LayerInfo) {
	infos := make([]LayerInfo, 0, len(s.registry.All()))
	for _, def := range s.registry.All() {
		info := LayerInfo{Name: def.Name, Title: def.Title}
		if data, err := s.cache.Load(def.Path); err == nil && !data.Empty() {
			ext := data.Extent()
			info.Extent = &ext
		}
		infos = append(infos, info)
	}
	return s.title, s.srs, infos
}
