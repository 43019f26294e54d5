// Copyright (c) 2024-2025 Jesse Morgan / Morgan Forge
// SPDX-License-Identifier: AGPL-3.0-or-later

package export

import (
	"fmt"
	"strings"
	"time"
)

// MarkdownExporter exports briefs to Markdown.
type MarkdownExporter struct {
	options *Options
}

// NewMarkdownExporter creates a new Markdown exporter.
func NewMarkdownExporter(opts *Options) *MarkdownExporter {
	if opts == nil {
		opts = DefaultOptions()
	}
	return &MarkdownExporter{options: opts}
}

// Export renders the page as Markdown, with YAML frontmatter when
// metadata is enabled.
func (e *MarkdownExporter) Export(b Brief) ([]byte, error) {
	if b.Page.Header.Company == "" {
		return nil, fmt.Errorf("brief has no company")
	}

	var sb strings.Builder
	if e.options.IncludeMetadata {
		sb.WriteString("---\n")
		fmt.Fprintf(&sb, "company: %s\n", escapeYAML(b.Page.Header.Company))
		fmt.Fprintf(&sb, "kind: %s\n", b.Key.Kind)
		if b.Page.Header.Badge != "" {
			fmt.Fprintf(&sb, "readiness: %s\n", escapeYAML(b.Page.Header.Badge))
		}
		if b.RequestID != "" {
			fmt.Fprintf(&sb, "request_id: %s\n", b.RequestID)
		}
		if !b.GeneratedAt.IsZero() {
			fmt.Fprintf(&sb, "generated: %s\n", b.GeneratedAt.Format(time.RFC3339))
		}
		fmt.Fprintf(&sb, "exported: %s\n", e.options.now().Format(time.RFC3339))
		sb.WriteString("generator: salesbrief\n")
		sb.WriteString("---\n\n")
	}
	sb.WriteString("# ")
	sb.WriteString(b.Page.PlainText())
	return []byte(sb.String()), nil
}

// FileExtension returns ".md".
func (e *MarkdownExporter) FileExtension() string {
	return ".md"
}
