// Package sink turns a settled [layout.Layout] into output formats.
//
// Sinks are read-only consumers: they draw entries at the coordinates the
// layout engine produced and never feed anything back into it.
//
//   - [RenderSVG]: the chart with grid, rings, blips, legend, title and footer
//   - [RenderJSON]: ids, segments and settled coordinates for other tools
//   - [RenderPNG], [RenderPDF]: converted from the SVG (requires rsvg-convert)
//
// # Blips
//
// An entry is drawn as a circle, a square when its status is new, or a
// triangle when it moved since the last edition. Active entries (and every
// entry on a print layout) take their ring's color; the rest are grey.
//
// # Legend
//
// When the render settings ask for a print layout, each quadrant gets a
// legend block listing its entries ring by ring as "<id>. <label>", cut to
// 25 characters. Blocks follow the chart's presentation order, so reading
// the legends top-left to bottom-right counts ids upward. Hovering a blip
// highlights its legend line and the other way round.
//
//	svg := sink.RenderSVG(l, sink.WithPrintLayout(true))
//
// [layout.Layout]: github.com/matzehuels/stackradar/pkg/radar/layout.Layout
package sink
