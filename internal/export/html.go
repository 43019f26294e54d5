// Copyright (c) 2024-2025 Jesse Morgan / Morgan Forge
// SPDX-License-Identifier: AGPL-3.0-or-later

package export

import (
	"fmt"
	"html"
	"strings"

	"github.com/jeranaias/salesbrief/internal/present"
)

// HTMLExporter exports briefs to a standalone HTML page.
type HTMLExporter struct {
	options *Options
}

// NewHTMLExporter creates a new HTML exporter.
func NewHTMLExporter(opts *Options) *HTMLExporter {
	if opts == nil {
		opts = DefaultOptions()
	}
	return &HTMLExporter{options: opts}
}

const htmlStyle = `body{font-family:system-ui,sans-serif;max-width:46rem;margin:2rem auto;color:#1f2937}
h1{margin-bottom:.25rem}.badge{background:#10b981;color:#fff;border-radius:.5rem;padding:.1rem .5rem;font-size:.9rem}
.meta{color:#6b7280}.card{border:1px solid #e5e7eb;border-radius:.5rem;padding:.5rem 1rem;margin:.5rem 0}`

// Export renders the page as HTML. All service-provided text is escaped.
func (e *HTMLExporter) Export(b Brief) ([]byte, error) {
	h := b.Page.Header
	if h.Company == "" {
		return nil, fmt.Errorf("brief has no company")
	}
	esc := html.EscapeString

	var sb strings.Builder
	sb.WriteString("<!DOCTYPE html>\n<html lang=\"en\">\n<head>\n<meta charset=\"utf-8\">\n")
	fmt.Fprintf(&sb, "<title>%s - SalesBrief</title>\n<style>%s</style>\n</head>\n<body>\n", esc(h.Company), htmlStyle)
	fmt.Fprintf(&sb, "<h1>%s", esc(h.Company))
	if h.Badge != "" {
		fmt.Fprintf(&sb, " <span class=\"badge\">%s</span>", esc(h.Badge))
	}
	sb.WriteString("</h1>\n")
	if e.options.IncludeMetadata {
		var meta []string
		for _, s := range []string{h.Timestamp, h.Elapsed, b.RequestID} {
			if s != "" {
				meta = append(meta, esc(s))
			}
		}
		if len(meta) > 0 {
			fmt.Fprintf(&sb, "<p class=\"meta\">%s</p>\n", strings.Join(meta, " &middot; "))
		}
	}

	for _, s := range b.Page.Sections {
		fmt.Fprintf(&sb, "<section id=\"%s\">\n<h2>%s</h2>\n", esc(string(s.ID)), esc(s.Title))
		writeSectionHTML(&sb, s)
		sb.WriteString("</section>\n")
	}
	sb.WriteString("</body>\n</html>\n")
	return []byte(sb.String()), nil
}

func writeSectionHTML(sb *strings.Builder, s present.Section) {
	esc := html.EscapeString
	if s.Summary != "" {
		fmt.Fprintf(sb, "<p>%s</p>\n", esc(s.Summary))
	}
	var items []string
	for _, p := range s.Points {
		items = append(items, esc(p))
	}
	for _, a := range s.Actions {
		items = append(items, "&#9744; "+esc(a.Action))
	}
	for _, o := range s.Opportunities {
		item := "<strong>" + esc(o.Title) + "</strong>"
		if d, ok := o.Description.Get(); ok {
			item += ": " + esc(d)
		}
		items = append(items, item)
	}
	for _, r := range s.Risks {
		item := "<strong>" + esc(r.Risk) + "</strong>"
		if d, ok := r.Description.Get(); ok {
			item += ": " + esc(d)
		}
		if m, ok := r.Mitigation.Get(); ok {
			item += " <em>Mitigation: " + esc(m) + "</em>"
		}
		items = append(items, item)
	}
	if len(items) > 0 {
		sb.WriteString("<ul>\n")
		for _, it := range items {
			fmt.Fprintf(sb, "<li>%s</li>\n", it)
		}
		sb.WriteString("</ul>\n")
	}
	for _, c := range s.Cards {
		fmt.Fprintf(sb, "<div class=\"card\"><h3>%s <small>%s</small></h3>\n<ul>\n", esc(c.Title), esc(c.Status))
		for _, in := range c.Visible {
			fmt.Fprintf(sb, "<li>%s</li>\n", esc(in))
		}
		sb.WriteString("</ul>\n")
		if c.Hidden > 0 {
			fmt.Fprintf(sb, "<p class=\"meta\">%d more</p>\n", c.Hidden)
		}
		sb.WriteString("</div>\n")
	}
}

// FileExtension returns ".html".
func (e *HTMLExporter) FileExtension() string {
	return ".html"
}
