// Package pkg provides the core libraries for Stackradar radar chart layout.
//
// # Overview
//
// Stackradar places labeled entries on a radar chart split into four
// quadrants and several concentric rings, then spreads overlapping entries
// apart without letting any of them leave its own quadrant and ring. The pkg
// directory is organized into these areas:
//
//  1. [radar] - Domain logic (chart model, geometry, placement, collision resolution, sinks)
//  2. [io] - Entry file import and export
//  3. [pipeline] - Orchestration (layout → render)
//  4. [render] - SVG conversion to PNG and PDF
//  5. [observability] - Hooks around the layout and render stages
//  6. [errors] - Coded errors shared by every package
//
// # Architecture
//
// The typical data flow through Stackradar:
//
//	entries.json + radar.toml
//	         ↓
//	    [radar/chart] package (validated configuration and entries)
//	         ↓
//	    [radar/segment] + [radar/prng] packages (deterministic initial points)
//	         ↓
//	    [radar/partition] package (legend ids in presentation order)
//	         ↓
//	    [radar/collide] package (relaxation until settled)
//	         ↓
//	    [radar/sink] package (SVG/PNG/PDF/JSON output)
//
// # Quick Start
//
//	entries, err := io.ImportEntries("entries.json")
//	if err != nil {
//	    return err
//	}
//	runner := pipeline.NewRunner(logger)
//	result, err := runner.Execute(ctx, chart.Default(), entries, pipeline.Options{
//	    Formats: []string{"svg"},
//	})
//	if err != nil {
//	    return err
//	}
//	os.WriteFile("radar.svg", result.Artifacts["svg"], 0o644)
//
// The same entries, chart and seed always produce the same positions.
package pkg
