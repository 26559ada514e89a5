// Package layer manages the vector datasets the map server renders.
//
// A Dataset holds parsed point, line, and polygon features in map units
// together with the bounding box that encloses them. Datasets are loaded
// from GeoJSON files or WKT text and are immutable once parsed.
//
// The Cache keeps parsed datasets in memory keyed by source path, so
// repeated map requests against the same layer do not re-read or re-parse
// the file. It is safe for concurrent use.
//
// The Registry maps the layer names advertised by the service to their
// dataset definitions.
package layer
