package sink

import (
	"bytes"
	"encoding/xml"
	"fmt"
	"strings"
	"unicode"

	"github.com/matzehuels/stackradar/pkg/radar/chart"
	"github.com/matzehuels/stackradar/pkg/radar/layout"
)

const radarCSS = `
    .blip { cursor: pointer; }
    .blip text { pointer-events: none; user-select: none; }
    .blip.highlight > * { stroke: %[1]s; stroke-width: 2; }
    .legend-item.highlight { filter: url(#solid); fill: %[2]s; }
    a { cursor: pointer; }`

const radarJS = `
    function highlight(id, on) {
      document.querySelectorAll('[data-id="' + id + '"]').forEach(el => el.classList.toggle('highlight', on));
    }
    document.querySelectorAll('.blip, .legend-item').forEach(el => {
      el.addEventListener('mouseenter', () => highlight(el.dataset.id, true));
      el.addEventListener('mouseleave', () => highlight(el.dataset.id, false));
    });`

// SVGOption configures [RenderSVG].
type SVGOption func(*svgRenderer)

type svgRenderer struct {
	render chart.Render
	print  *bool
}

// WithRender overrides the presentation settings carried by the layout's
// configuration.
func WithRender(r chart.Render) SVGOption { return func(s *svgRenderer) { s.render = r } }

// WithPrintLayout switches the legend, title and footer on or off. Without
// it the render settings decide.
func WithPrintLayout(on bool) SVGOption { return func(s *svgRenderer) { s.print = &on } }

// RenderSVG draws the settled layout. Entries are drawn exactly where the
// layout put them; nothing here moves a blip.
func RenderSVG(l layout.Layout, opts ...SVGOption) []byte {
	r := svgRenderer{render: settings(l.Config.Render)}
	for _, opt := range opts {
		opt(&r)
	}
	if r.print != nil {
		r.render.PrintLayout = *r.print
	}
	rs := r.render

	var buf bytes.Buffer
	fmt.Fprintf(&buf, `<svg xmlns="http://www.w3.org/2000/svg" xmlns:xlink="http://www.w3.org/1999/xlink" viewBox="0 0 %.0f %.0f" width="%.0f" height="%.0f" style="background-color:%s">`+"\n",
		rs.Width, rs.Height, rs.Width, rs.Height, escape(rs.Background))
	fmt.Fprintf(&buf, `  <defs><filter id="solid" x="0" y="0" width="1" height="1"><feFlood flood-color="%s"/><feComposite in="SourceGraphic"/></filter></defs>`+"\n",
		escape(rs.Text))
	fmt.Fprintf(&buf, `  <g transform="translate(%.1f,%.1f)">`+"\n", rs.Width/2, rs.Height/2)

	renderGrid(&buf, l.Config, rs)
	if rs.PrintLayout {
		renderFrame(&buf, l.Config, rs)
		renderLegend(&buf, BuildLegend(l), rs)
	}
	renderBlips(&buf, l, rs)

	buf.WriteString("  </g>\n")
	fmt.Fprintf(&buf, "  <style>%s\n  </style>\n", fmt.Sprintf(radarCSS, escape(rs.Text), escape(rs.Background)))
	fmt.Fprintf(&buf, "  <script type=\"text/javascript\"><![CDATA[%s\n  ]]></script>\n", radarJS)
	buf.WriteString("</svg>\n")
	return buf.Bytes()
}

// settings fills a zero Render with the stock values.
func settings(r chart.Render) chart.Render {
	if r.Width <= 0 || r.Height <= 0 {
		def := chart.DefaultRender()
		r.Width, r.Height = def.Width, def.Height
		if r.Font == "" {
			r.Font = def.Font
		}
		if r.Background == "" {
			r.Background = def.Background
		}
		if r.Text == "" {
			r.Text = def.Text
		}
		if r.Grid == "" {
			r.Grid = def.Grid
		}
		if r.Inactive == "" {
			r.Inactive = def.Inactive
		}
	}
	return r
}

func renderGrid(buf *bytes.Buffer, cfg chart.Config, rs chart.Render) {
	outer := cfg.OuterRadius()
	fmt.Fprintf(buf, `    <g id="grid" stroke="%s" stroke-width="2">`+"\n", escape(rs.Grid))
	fmt.Fprintf(buf, `      <line x1="0" y1="%.1f" x2="0" y2="%.1f"/>`+"\n", -outer, outer)
	fmt.Fprintf(buf, `      <line x1="%.1f" y1="0" x2="%.1f" y2="0"/>`+"\n", -outer, outer)
	for _, ring := range cfg.Rings {
		fmt.Fprintf(buf, `      <circle cx="0" cy="0" r="%.1f" fill="none"/>`+"\n", ring.Radius)
	}
	buf.WriteString("    </g>\n")

	if !rs.PrintLayout {
		return
	}
	for _, ring := range cfg.Rings {
		fmt.Fprintf(buf, `    <text y="%.1f" text-anchor="middle" fill="%s" opacity="0.75" font-family="%s" font-size="20" font-weight="900" pointer-events="none">%s</text>`+"\n",
			-ring.Radius+32, escape(ring.Color), escape(rs.Font), escape(strings.ToUpper(ring.Name)))
	}
}

func renderFrame(buf *bytes.Buffer, cfg chart.Config, rs chart.Render) {
	if cfg.Title != "" {
		fmt.Fprintf(buf, `    <text class="title" transform="translate(%.1f,%.1f)" font-family="%s" font-size="14" fill="%s">%s</text>`+"\n",
			titleOffset[0], titleOffset[1]+20, escape(rs.Font), escape(rs.Text), escape(cfg.Title))
	}
	if rs.Footer != "" {
		fmt.Fprintf(buf, `    <text class="footer" transform="translate(%.1f,%.1f)" xml:space="preserve" font-family="%s" font-size="10" fill="%s">%s</text>`+"\n",
			footerOffset[0], footerOffset[1], escape(rs.Font), escape(rs.Text), escape(rs.Footer))
	}
}

func renderLegend(buf *bytes.Buffer, blocks []LegendBlock, rs chart.Render) {
	buf.WriteString("    <g id=\"legend\">\n")
	for _, b := range blocks {
		fmt.Fprintf(buf, `      <text transform="translate(%.1f,%.1f)" font-family="%s" font-size="20" font-weight="900" fill="%s">%s</text>`+"\n",
			b.X, b.Y, escape(rs.Font), escape(rs.Text), escape(b.Name))
		for _, ring := range b.Rings {
			fmt.Fprintf(buf, `      <text transform="translate(%.1f,%.1f)" font-family="%s" font-size="18" font-weight="bold" fill="%s">%s</text>`+"\n",
				ring.X, ring.Y, escape(rs.Font), escape(ring.Color), escape(ring.Name))
			for _, it := range ring.Items {
				href := it.Link
				if href == "" {
					href = "#"
				}
				target := ""
				if it.Link != "" && rs.LinksInNewTab {
					target = ` target="_blank"`
				}
				fmt.Fprintf(buf, `      <a href="%s"%s><text id="legendItem%d" class="legend-item" data-id="%d" transform="translate(%.1f,%.1f)" font-family="%s" font-size="16" fill="%s">%s</text></a>`+"\n",
					escape(href), target, it.ID, it.ID, it.X, it.Y, escape(rs.Font), escape(rs.Text), escape(it.Text))
			}
		}
	}
	buf.WriteString("    </g>\n")
}

func renderBlips(buf *bytes.Buffer, l layout.Layout, rs chart.Render) {
	cfg := l.Config
	buf.WriteString("    <g id=\"rink\">\n")
	for _, p := range l.ByID() {
		ring := cfg.Rings[p.Entry.Ring]
		color := rs.Inactive
		if p.Entry.Active || rs.PrintLayout {
			color = ring.Color
		}

		fmt.Fprintf(buf, `      <g class="blip" id="blip-%d" data-id="%d" transform="translate(%.2f,%.2f)">`,
			p.ID, p.ID, p.X, p.Y)
		linked := p.Entry.Active && p.Entry.Link != ""
		if linked {
			target := ""
			if rs.LinksInNewTab {
				target = ` target="_blank"`
			}
			fmt.Fprintf(buf, `<a xlink:href="%s"%s>`, escape(p.Entry.Link), target)
		}
		fmt.Fprintf(buf, `<title>%s</title>`, escape(p.Entry.Label))

		switch p.Entry.Status {
		case chart.StatusNew:
			fmt.Fprintf(buf, `<rect x="-7" y="-6" width="15" height="15" fill="%s"/>`, escape(color))
		case chart.StatusMoved:
			fmt.Fprintf(buf, `<path d="M -11,5 11,5 0,-13 z" fill="%s"/>`, escape(color))
		default:
			fmt.Fprintf(buf, `<circle r="%.1f" fill="%s"/>`, p.Entry.SizeOr(cfg.Tuning.DefaultSize), escape(color))
		}

		if p.Entry.Active || rs.PrintLayout {
			text := blipLetter(p.Entry.Label)
			if rs.PrintLayout {
				text = fmt.Sprint(p.ID)
			}
			fmt.Fprintf(buf, `<text y="3" text-anchor="middle" fill="%s" font-family="%s" font-weight="bold" font-size="%.0f">%s</text>`,
				escape(ring.TextColor), escape(rs.Font), cfg.Tuning.DefaultSize, escape(text))
		}
		if linked {
			buf.WriteString("</a>")
		}
		buf.WriteString("</g>\n")
	}
	buf.WriteString("    </g>\n")
}

// blipLetter is the first letter of label, shown on a blip when ids are not
// printed.
func blipLetter(label string) string {
	for _, r := range label {
		if unicode.IsLetter(r) {
			return string(r)
		}
	}
	return ""
}

func escape(s string) string {
	var buf bytes.Buffer
	xml.EscapeText(&buf, []byte(s))
	return buf.String()
}
