// Copyright (c) 2024-2025 Jesse Morgan / Morgan Forge
// SPDX-License-Identifier: AGPL-3.0-or-later

package export

import (
	"os"
	"path/filepath"
	"strings"
	"testing"
	"time"

	"github.com/jeranaias/salesbrief/internal/insight"
	"github.com/jeranaias/salesbrief/internal/normalize"
	"github.com/jeranaias/salesbrief/internal/present"
)

var fixedNow = time.Date(2025, 3, 14, 9, 26, 53, 0, time.UTC)

func testBrief(company string) Brief {
	in := normalize.Insight{
		Summary:       normalize.Some("Acme is expanding into EMEA."),
		TalkingPoints: []string{"Ask about the EMEA launch"},
		ActionItems:   []normalize.ActionItem{{Action: "Send deck", Priority: normalize.Some("high")}},
		Risks: []normalize.Risk{{
			Risk:       "Budget freeze",
			Mitigation: normalize.Some("Offer phased pricing"),
		}},
		Agents: []normalize.AgentOutput{{
			Agent:    normalize.AgentNews,
			Status:   "success",
			Insights: []string{"Raised Series C"},
		}},
		Readiness: normalize.Some(82),
	}
	return Brief{
		Key:         insight.NewKey(company, insight.KindFull),
		Page:        present.Build(in, company, present.NewState()),
		RequestID:   "req-123",
		GeneratedAt: fixedNow.Add(-time.Minute),
	}
}

func testOptions(dir string) *Options {
	return &Options{OutputDir: dir, IncludeMetadata: true, Now: func() time.Time { return fixedNow }}
}

func TestMarkdownExport(t *testing.T) {
	out, err := NewMarkdownExporter(testOptions("")).Export(testBrief("Acme"))
	if err != nil {
		t.Fatalf("Export failed: %v", err)
	}
	result := string(out)
	for _, want := range []string{
		"---\ncompany: Acme\n",
		"kind: full\n",
		"readiness: \"82% Ready\"\n",
		"request_id: req-123\n",
		"exported: 2025-03-14T09:26:53Z\n",
		"generator: salesbrief\n",
		"# Acme [82% Ready]",
		"## Executive Summary",
		"- [ ] Send deck",
		"Raised Series C",
	} {
		if !strings.Contains(result, want) {
			t.Errorf("markdown missing %q:\n%s", want, result)
		}
	}
}

func TestMarkdownExport_NoMetadata(t *testing.T) {
	opts := testOptions("")
	opts.IncludeMetadata = false
	out, err := NewMarkdownExporter(opts).Export(testBrief("Acme"))
	if err != nil {
		t.Fatalf("Export failed: %v", err)
	}
	if strings.HasPrefix(string(out), "---") {
		t.Errorf("frontmatter written without metadata:\n%s", out)
	}
}

// A company name with a newline must not inject frontmatter keys.
func TestMarkdownExport_YAMLInjection(t *testing.T) {
	out, err := NewMarkdownExporter(testOptions("")).Export(testBrief("Acme\ngenerator: evil"))
	if err != nil {
		t.Fatalf("Export failed: %v", err)
	}
	if strings.Contains(string(out), "\ngenerator: evil\n") {
		t.Errorf("newline not escaped in frontmatter:\n%s", out)
	}
}

func TestMarkdownExport_EmptyCompany(t *testing.T) {
	b := testBrief("")
	if _, err := NewMarkdownExporter(nil).Export(b); err == nil {
		t.Error("expected error for brief without company")
	}
}

func TestJSONExport(t *testing.T) {
	out, err := NewJSONExporter(testOptions("")).Export(testBrief("Acme"))
	if err != nil {
		t.Fatalf("Export failed: %v", err)
	}
	var doc map[string]any
	if err := json.Unmarshal(out, &doc); err != nil {
		t.Fatalf("invalid JSON: %v\n%s", err, out)
	}
	if doc["company"] != "Acme" || doc["kind"] != "full" || doc["request_id"] != "req-123" {
		t.Errorf("unexpected metadata: %v", doc)
	}
	sections, ok := doc["sections"].([]any)
	if !ok || len(sections) != 4 {
		t.Fatalf("expected 4 sections, got %v", doc["sections"])
	}
	// Absent optionals encode as null rather than {"Value":...,"Present":false}.
	if strings.Contains(string(out), "Present") {
		t.Errorf("Optional leaked its struct form:\n%s", out)
	}
}

func TestHTMLExport_Escapes(t *testing.T) {
	b := testBrief("<script>alert('xss')</script>")
	out, err := NewHTMLExporter(testOptions("")).Export(b)
	if err != nil {
		t.Fatalf("Export failed: %v", err)
	}
	result := string(out)
	if strings.Contains(result, "<script>alert") {
		t.Error("script tag not escaped")
	}
	if !strings.Contains(result, "&lt;script&gt;") {
		t.Error("expected escaped script tag in output")
	}
	if !strings.Contains(result, "Mitigation: Offer phased pricing") {
		t.Errorf("risk mitigation missing:\n%s", result)
	}
}

func TestNew(t *testing.T) {
	for _, f := range []Format{"md", "markdown", "JSON", "html"} {
		if _, err := New(f, nil); err != nil {
			t.Errorf("New(%q) failed: %v", f, err)
		}
	}
	if _, err := New("pdf", nil); err == nil {
		t.Error("expected error for unknown format")
	}
}

func TestToFile(t *testing.T) {
	dir := filepath.Join(t.TempDir(), "briefs")
	opts := testOptions(dir)

	path, err := ToFile(testBrief("Acme Corp"), NewMarkdownExporter(opts), opts)
	if err != nil {
		t.Fatalf("ToFile failed: %v", err)
	}
	if want := filepath.Join(dir, "brief_Acme_Corp_full_20250314_092653.md"); path != want {
		t.Errorf("path = %q, want %q", path, want)
	}
	data, err := os.ReadFile(path)
	if err != nil {
		t.Fatalf("read exported file: %v", err)
	}
	if !strings.Contains(string(data), "# Acme Corp") {
		t.Errorf("unexpected content:\n%s", data)
	}
}

func TestSanitizeFilename(t *testing.T) {
	tests := map[string]string{
		"Acme Corp":             "Acme_Corp",
		"a/b\\c:d":              "a-b-c-d",
		"  ":                    "company",
		"Café":                  "Café",
		strings.Repeat("x", 60): strings.Repeat("x", 50),
	}
	for in, want := range tests {
		if got := sanitizeFilename(in); got != want {
			t.Errorf("sanitizeFilename(%q) = %q, want %q", in, got, want)
		}
	}
}

func TestEscapeYAML(t *testing.T) {
	tests := map[string]string{
		"plain":      "plain",
		"a: b":       `"a: b"`,
		"line\nnext": `"line\nnext"`,
		`say "hi"`:   `"say \"hi\""`,
	}
	for in, want := range tests {
		if got := escapeYAML(in); got != want {
			t.Errorf("escapeYAML(%q) = %q, want %q", in, got, want)
		}
	}
}
