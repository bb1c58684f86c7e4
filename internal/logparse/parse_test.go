// Copyright Mesh Intelligence Inc., 2026. All rights reserved.

package logparse

import (
	"errors"
	"os"
	"path/filepath"
	"strings"
	"testing"

	"github.com/pdiddy/sim-extract/pkg/types"
)

const sampleLog = `FLAMEGPU Console mode
Initial states: iterations/0.xml
Output dir: iterations/
Device 0: NVIDIA GeForce RTX 3090
Some unrelated framework banner
Instrumentation: processing time = 12.5 (ms)
Instrumentation: render time = 3.25 (ms)
agent_Boid_default_count: 1024
Instrumentation: processing time = 13.1 (ms)
Instrumentation: render time = 3.5 (ms)
agent_Boid_default_count: 1020
Total Processing time: 1520.25 (ms)
`

func writeLog(t *testing.T, dir, name, content string) string {
	t.Helper()
	path := filepath.Join(dir, name)
	if err := os.WriteFile(path, []byte(content), 0o644); err != nil {
		t.Fatalf("writing fixture %s: %v", name, err)
	}
	return path
}

func TestParseFile(t *testing.T) {
	path := writeLog(t, t.TempDir(), "boids.log", sampleLog)

	run, err := ParseFile(path, types.DefaultPatterns())
	if err != nil {
		t.Fatalf("ParseFile: %v", err)
	}

	if run.InputFile != path {
		t.Errorf("InputFile = %q, want %q", run.InputFile, path)
	}
	if run.InitialStates != "iterations/0.xml" {
		t.Errorf("InitialStates = %q", run.InitialStates)
	}
	if run.OutputDir != "iterations/" {
		t.Errorf("OutputDir = %q", run.OutputDir)
	}
	if run.Device != "0: NVIDIA GeForce RTX 3090" {
		t.Errorf("Device = %q", run.Device)
	}
	if run.TotalProcessingTime != "1520.25" {
		t.Errorf("TotalProcessingTime = %q", run.TotalProcessingTime)
	}

	wantLabels := []string{"processing time", "render time"}
	if len(run.Labels) != len(wantLabels) {
		t.Fatalf("Labels = %v, want %v", run.Labels, wantLabels)
	}
	for i, l := range wantLabels {
		if run.Labels[i] != l {
			t.Errorf("Labels[%d] = %q, want %q", i, run.Labels[i], l)
		}
	}

	// Values keep the log's exact formatting.
	wantSeries := map[string][]string{
		"processing time": {"12.5", "13.1"},
		"render time":     {"3.25", "3.5"},
	}
	for label, want := range wantSeries {
		got := run.Instrumentation[label]
		if len(got) != len(want) {
			t.Fatalf("series %q = %v, want %v", label, got, want)
		}
		for i := range want {
			if got[i] != want[i] {
				t.Errorf("series %q[%d] = %q, want %q", label, i, got[i], want[i])
			}
		}
	}

	if run.Iterations() != 2 {
		t.Errorf("Iterations = %d, want 2", run.Iterations())
	}

	// Last population marker wins.
	if got := run.Populations["Boid_default"]; got != 1020 {
		t.Errorf("Populations[Boid_default] = %d, want 1020", got)
	}
	if len(run.PopulationNames) != 1 || run.PopulationNames[0] != "Boid_default" {
		t.Errorf("PopulationNames = %v", run.PopulationNames)
	}
}

func TestParseFileRejectsNonSimOutput(t *testing.T) {
	tests := []struct {
		name    string
		content string
	}{
		{name: "empty file", content: ""},
		{name: "unrelated text", content: "hello\nworld\n"},
		{name: "measurements without signature", content: "Instrumentation: processing time = 12.5 (ms)\n"},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			path := writeLog(t, t.TempDir(), "other.log", tt.content)
			_, err := ParseFile(path, types.DefaultPatterns())
			if !errors.Is(err, ErrNotSimOutput) {
				t.Fatalf("err = %v, want ErrNotSimOutput", err)
			}
		})
	}
}

func TestParseFileSignatureDisabled(t *testing.T) {
	pats := types.DefaultPatterns()
	pats.Signature = ""
	path := writeLog(t, t.TempDir(), "empty.log", "")

	run, err := ParseFile(path, pats)
	if err != nil {
		t.Fatalf("ParseFile: %v", err)
	}
	if run.Iterations() != 0 {
		t.Errorf("Iterations = %d, want 0", run.Iterations())
	}
}

func TestParseFileMissing(t *testing.T) {
	_, err := ParseFile(filepath.Join(t.TempDir(), "missing.log"), types.DefaultPatterns())
	if err == nil {
		t.Fatal("expected error for missing file")
	}
	if errors.Is(err, ErrNotSimOutput) {
		t.Fatalf("missing file reported as non-sim output: %v", err)
	}
}

func TestParseSkipsMalformedLines(t *testing.T) {
	content := strings.Join([]string{
		"FLAMEGPU Console mode",
		"Instrumentation: no separator here (ms)",
		"Instrumentation: processing time = not-a-number (ms)",
		"Instrumentation:  = 5.0 (ms)",
		"agent_Boid_default_count: not-a-count",
		"Instrumentation: processing time = 12.5 (ms)",
	}, "\n")
	path := writeLog(t, t.TempDir(), "noisy.log", content)

	run, err := ParseFile(path, types.DefaultPatterns())
	if err != nil {
		t.Fatalf("ParseFile: %v", err)
	}
	if len(run.Labels) != 1 || run.Labels[0] != "processing time" {
		t.Fatalf("Labels = %v, want only processing time", run.Labels)
	}
	if got := run.Instrumentation["processing time"]; len(got) != 1 || got[0] != "12.5" {
		t.Errorf("series = %v, want [12.5]", got)
	}
	if len(run.Populations) != 0 {
		t.Errorf("Populations = %v, want empty", run.Populations)
	}
}

func TestSplitMeasurement(t *testing.T) {
	pats := types.DefaultPatterns()
	tests := []struct {
		name      string
		line      string
		wantLabel string
		wantValue string
		wantOK    bool
	}{
		{
			name:      "plain measurement",
			line:      "Instrumentation: processing time = 12.5 (ms)",
			wantLabel: "processing time",
			wantValue: "12.5",
			wantOK:    true,
		},
		{
			name:      "no milliseconds suffix",
			line:      "Instrumentation: processing time = 12.5",
			wantLabel: "processing time",
			wantValue: "12.5",
			wantOK:    true,
		},
		{
			name:      "trailing zero preserved",
			line:      "Instrumentation: step = 12.50 (ms)",
			wantLabel: "step",
			wantValue: "12.50",
			wantOK:    true,
		},
		{name: "missing separator", line: "Instrumentation: processing time 12.5 (ms)"},
		{name: "two separators", line: "Instrumentation: a = b = 1.0 (ms)"},
		{name: "non-numeric value", line: "Instrumentation: processing time = fast (ms)"},
		{name: "empty label", line: "Instrumentation:  = 1.0 (ms)"},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			label, value, ok := splitMeasurement(tt.line, pats)
			if ok != tt.wantOK {
				t.Fatalf("ok = %v, want %v", ok, tt.wantOK)
			}
			if label != tt.wantLabel || value != tt.wantValue {
				t.Errorf("got (%q, %q), want (%q, %q)", label, value, tt.wantLabel, tt.wantValue)
			}
		})
	}
}

func TestParsePopulation(t *testing.T) {
	pats := types.DefaultPatterns()
	tests := []struct {
		name      string
		line      string
		wantName  string
		wantCount int
		wantOK    bool
	}{
		{
			name:      "type and state",
			line:      "agent_Boid_default_count: 1024",
			wantName:  "Boid_default",
			wantCount: 1024,
			wantOK:    true,
		},
		{name: "no colon space", line: "agent_Boid_default_count:1024"},
		{name: "non-numeric count", line: "agent_Boid_default_count: many"},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			name, count, ok := parsePopulation(tt.line, pats)
			if ok != tt.wantOK {
				t.Fatalf("ok = %v, want %v", ok, tt.wantOK)
			}
			if name != tt.wantName || count != tt.wantCount {
				t.Errorf("got (%q, %d), want (%q, %d)", name, count, tt.wantName, tt.wantCount)
			}
		})
	}
}

func TestParseCustomPatterns(t *testing.T) {
	pats := types.PatternSet{
		Signature:                "SIM v2",
		InstrumentationPrefix:    "timing ",
		InstrumentationSeparator: ": ",
		MillisecondsSuffix:       "ms",
	}
	content := "SIM v2\ntiming step: 4.75ms\ntiming step: 5.25ms\n"
	path := writeLog(t, t.TempDir(), "custom.log", content)

	run, err := ParseFile(path, pats)
	if err != nil {
		t.Fatalf("ParseFile: %v", err)
	}
	got := run.Instrumentation["step"]
	if len(got) != 2 || got[0] != "4.75" || got[1] != "5.25" {
		t.Fatalf("series = %v, want [4.75 5.25]", got)
	}
}

func TestParseAll(t *testing.T) {
	dir := t.TempDir()
	good := writeLog(t, dir, "good.log", sampleLog)
	other := writeLog(t, dir, "other.log", "plain text file\n")
	missing := filepath.Join(dir, "missing.log")

	var out strings.Builder
	runs, summary := ParseAll([]string{good, other, missing}, types.DefaultPatterns(), &out)

	if summary.Parsed != 1 || summary.Skipped != 1 || summary.Failed != 1 {
		t.Fatalf("summary = %+v", summary)
	}
	if summary.Total() != 3 {
		t.Errorf("Total = %d, want 3", summary.Total())
	}
	if !summary.HasFailures() {
		t.Error("HasFailures = false, want true")
	}
	if len(runs) != 1 || runs[0].InputFile != good {
		t.Fatalf("runs = %v", runs)
	}

	for _, want := range []string{"Processing 3 input files", "parsed", "skipped", "failed"} {
		if !strings.Contains(out.String(), want) {
			t.Errorf("output missing %q:\n%s", want, out.String())
		}
	}
}
