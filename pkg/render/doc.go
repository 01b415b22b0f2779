// Package render converts rendered SVG into raster and print formats.
//
// [ToPNG] and [ToPDF] shell out to rsvg-convert from librsvg. When the tool
// is missing they fail with errors.ErrCodeUnsupported, so callers can skip
// those formats and keep the SVG.
//
//	svg := sink.RenderSVG(l)
//	pdf, err := render.ToPDF(svg)
//	png, err := render.ToPNG(svg, 2.0)
package render
