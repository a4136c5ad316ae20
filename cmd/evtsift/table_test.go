package main

import (
	"strings"
	"testing"
)

func TestRenderTableAlignsCountColumns(t *testing.T) {
	out := renderTable(
		[]string{"File", "Records"},
		[][]string{
			{"a.evtx", "7"},
			{"b.evtx", "1234"},
		}, 2)

	lines := strings.Split(out, "\n")
	var short, long string
	for _, line := range lines {
		if strings.Contains(line, "a.evtx") {
			short = line
		}
		if strings.Contains(line, "b.evtx") {
			long = line
		}
	}
	if short == "" || long == "" {
		t.Fatalf("rows missing from rendered table:\n%s", out)
	}
	// Right alignment pads the short count on the left.
	if strings.Index(short, "7") <= strings.Index(long, "1234") {
		t.Fatalf("count column not right-aligned:\n%s", out)
	}
}

func TestRenderTablePadsShortRows(t *testing.T) {
	out := renderTable(
		[]string{"File", "Status", "Detail"},
		[][]string{{"a.evtx", "failed"}})
	if !strings.Contains(out, "a.evtx") || !strings.Contains(out, "failed") {
		t.Fatalf("row content missing:\n%s", out)
	}
}

func TestRenderTableEmptyHeaders(t *testing.T) {
	if out := renderTable(nil, nil); out != "" {
		t.Fatalf("expected empty render, got %q", out)
	}
}

func TestRenderMetrics(t *testing.T) {
	out := renderMetrics([]metricPair{
		{"Files scanned", "3"},
		{"Records written", "42"},
	})
	for _, want := range []string{"Metric", "Count", "Files scanned", "42"} {
		if !strings.Contains(out, want) {
			t.Fatalf("summary table missing %q:\n%s", want, out)
		}
	}
}
