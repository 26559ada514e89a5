// Package wms implements the Web Map Service protocol surface: request
// parsing, the GetMap and GetCapabilities operations, and OGC service
// exception reporting.
//
// The package glues the protocol to the rendering core. A GetMap request
// carries a bounding box in map units and the pixel dimensions of the
// desired image; the service resolves the requested layers, renders them
// through internal/render, and encodes the result in the requested format.
//
// Protocol errors are reported as Service Exception XML with HTTP status
// 200, as WMS clients expect; only the Content-Type distinguishes an
// exception from a map image.
package wms
