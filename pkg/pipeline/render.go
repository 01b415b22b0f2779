package pipeline

import (
	"context"
	"fmt"
	"sync"

	"golang.org/x/sync/errgroup"

	"github.com/matzehuels/stackradar/pkg/radar/layout"
	"github.com/matzehuels/stackradar/pkg/radar/sink"
)

// Render generates the artifacts for every format in opts.Formats. Sinks
// only read the layout, so the formats are rendered concurrently; the first
// failure cancels the rest.
func Render(ctx context.Context, l layout.Layout, runID string, opts Options) (map[string][]byte, error) {
	svgOpts := buildSVGOptions(opts)

	var mu sync.Mutex
	artifacts := make(map[string][]byte, len(opts.Formats))

	g, gctx := errgroup.WithContext(ctx)
	for _, format := range opts.Formats {
		g.Go(func() error {
			if err := gctx.Err(); err != nil {
				return err
			}
			data, err := renderFormat(l, format, runID, svgOpts, opts)
			if err != nil {
				return fmt.Errorf("render %s: %w", format, err)
			}
			mu.Lock()
			artifacts[format] = data
			mu.Unlock()
			return nil
		})
	}
	if err := g.Wait(); err != nil {
		return nil, err
	}
	return artifacts, nil
}

func renderFormat(l layout.Layout, format, runID string, svgOpts []sink.SVGOption, opts Options) ([]byte, error) {
	switch format {
	case FormatSVG:
		return sink.RenderSVG(l, svgOpts...), nil
	case FormatPNG:
		return sink.RenderPNG(l, sink.WithPNGSVGOptions(svgOpts...), sink.WithScale(opts.Scale))
	case FormatPDF:
		return sink.RenderPDF(l, sink.WithPDFSVGOptions(svgOpts...))
	case FormatJSON:
		jsonOpts := []sink.JSONOption{sink.WithJSONRunID(runID)}
		if opts.Sampled {
			jsonOpts = append(jsonOpts, sink.WithJSONSampled())
		}
		return sink.RenderJSON(l, jsonOpts...)
	default:
		return nil, ValidateFormat(format)
	}
}

// buildSVGOptions builds SVG rendering options.
func buildSVGOptions(opts Options) []sink.SVGOption {
	var svgOpts []sink.SVGOption
	if opts.PrintLayout != nil {
		svgOpts = append(svgOpts, sink.WithPrintLayout(*opts.PrintLayout))
	}
	return svgOpts
}
