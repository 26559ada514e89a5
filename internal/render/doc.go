// Package render rasterizes vector layers into images.
//
// The package draws point, line, and polygon features onto an RGBA canvas
// through a geom.Transform, which decides exactly which pixel every vertex
// lands on. Rasterization itself is deliberately simple: Bresenham line
// walking and even-odd scanline polygon filling on the integer pixel grid.
//
// Layers are rendered back to front, each onto its own transparent canvas,
// and composited over the background. Optional supersampling renders at
// twice the requested size and downscales with a Lanczos filter for
// smoother edges.
//
// Features whose bounding box maps to a pixel rectangle outside the canvas
// are culled before any vertex work.
package render
