// Copyright (c) 2024-2025 Jesse Morgan / Morgan Forge
// SPDX-License-Identifier: AGPL-3.0-or-later

package export

import (
	"time"

	jsoniter "github.com/json-iterator/go"

	"github.com/jeranaias/salesbrief/internal/present"
)

var json = jsoniter.ConfigCompatibleWithStandardLibrary

// JSONExporter exports briefs to JSON.
type JSONExporter struct {
	options *Options
}

// NewJSONExporter creates a new JSON exporter.
func NewJSONExporter(opts *Options) *JSONExporter {
	if opts == nil {
		opts = DefaultOptions()
	}
	return &JSONExporter{options: opts}
}

type jsonBrief struct {
	Company     string            `json:"company"`
	Kind        string            `json:"kind,omitempty"`
	RequestID   string            `json:"request_id,omitempty"`
	GeneratedAt *time.Time        `json:"generated_at,omitempty"`
	ExportedAt  *time.Time        `json:"exported_at,omitempty"`
	Header      present.Header    `json:"header"`
	Sections    []present.Section `json:"sections"`
}

// Export encodes the page as indented JSON.
func (e *JSONExporter) Export(b Brief) ([]byte, error) {
	doc := jsonBrief{
		Company:  b.Page.Header.Company,
		Header:   b.Page.Header,
		Sections: b.Page.Sections,
	}
	if doc.Sections == nil {
		doc.Sections = []present.Section{}
	}
	if e.options.IncludeMetadata {
		doc.Kind = b.Key.Kind.String()
		doc.RequestID = b.RequestID
		if !b.GeneratedAt.IsZero() {
			doc.GeneratedAt = &b.GeneratedAt
		}
		now := e.options.now()
		doc.ExportedAt = &now
	}
	return json.MarshalIndent(doc, "", "  ")
}

// FileExtension returns ".json".
func (e *JSONExporter) FileExtension() string {
	return ".json"
}
