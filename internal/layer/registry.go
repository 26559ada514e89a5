package layer

import (
	"errors"
	"fmt"
)

// ErrLayerNotFound is returned when a requested layer name is not defined.
var ErrLayerNotFound = errors.New("layer not defined")

// Definition describes one named layer served by the map service.
type Definition struct {
	Name  string
	Title string
	Path  string // source file, GeoJSON or WKT
}

// Registry holds the layers the service advertises, in registration order.
type Registry struct {
	defs  map[string]Definition
	order []string
}

// NewRegistry builds a registry from layer definitions. Names must be
// unique and non-empty, and every definition needs a source path.
func NewRegistry(defs []Definition) (*Registry, error) {
	r := &Registry{defs: make(map[string]Definition, len(defs))}
	for _, def := range defs {
		if def.Name == "" {
			return nil, errors.New("layer definition without a name")
		}
		if def.Path == "" {
			return nil, fmt.Errorf("layer %s: no source path", def.Name)
		}
		if _, dup := r.defs[def.Name]; dup {
			return nil, fmt.Errorf("layer %s: defined twice", def.Name)
		}
		r.defs[def.Name] = def
		r.order = append(r.order, def.Name)
	}
	return r, nil
}

// Get looks up a layer by name.
func (r *Registry) Get(name string) (Definition, error) {
	def, ok := r.defs[name]
	if !ok {
		return Definition{}, fmt.Errorf("%w: %s", ErrLayerNotFound, name)
	}
	return def, nil
}

// All returns every definition in registration order.
func (r *Registry) All() []Definition {
	out := make([]Definition, 0, len(r.order))
	for _, name := range r.order {
		out = append(out, r.defs[name])
	}
	return out
}
