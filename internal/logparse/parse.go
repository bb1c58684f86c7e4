// Copyright Mesh Intelligence Inc., 2026. All rights reserved.

// Package logparse recognizes instrumentation markers in simulation logs
// and accumulates them into per-file Run tables.
package logparse

import (
	"bufio"
	"errors"
	"fmt"
	"io"
	"os"
	"strconv"
	"strings"

	"github.com/sirupsen/logrus"

	"github.com/pdiddy/sim-extract/pkg/types"
)

// ErrNotSimOutput reports a file that never produced the signature line
// and therefore is not simulation output.
var ErrNotSimOutput = errors.New("not FLAMEGPU output")

// maxLineSize bounds a single log line; instrumentation lines are short,
// but device description lines from some drivers are not.
const maxLineSize = 1024 * 1024

// ParseFile reads one log file line by line and extracts run metadata,
// instrumentation series, and population counts according to pats. Lines
// matching no marker are skipped. Returns ErrNotSimOutput (wrapped) when
// the signature never appears, including for empty files.
func ParseFile(path string, pats types.PatternSet) (*types.Run, error) {
	f, err := os.Open(path)
	if err != nil {
		return nil, fmt.Errorf("opening log %s: %w", path, err)
	}
	defer f.Close()

	return parse(f, path, pats)
}

func parse(r io.Reader, path string, pats types.PatternSet) (*types.Run, error) {
	run := types.NewRun(path)
	signatureSeen := pats.Signature == ""

	scanner := bufio.NewScanner(r)
	scanner.Buffer(make([]byte, 0, 64*1024), maxLineSize)
	for scanner.Scan() {
		line := strings.TrimRight(scanner.Text(), " \t\r")

		if pats.Signature != "" && strings.HasPrefix(line, pats.Signature) {
			signatureSeen = true
			continue
		}

		switch {
		case hasPrefix(line, pats.InitialStatesPrefix):
			run.InitialStates = strings.TrimPrefix(line, pats.InitialStatesPrefix)
		case hasPrefix(line, pats.OutputDirPrefix):
			run.OutputDir = strings.TrimPrefix(line, pats.OutputDirPrefix)
		case hasPrefix(line, pats.TotalProcessingTimePrefix):
			t := strings.TrimPrefix(line, pats.TotalProcessingTimePrefix)
			run.TotalProcessingTime = strings.TrimSuffix(t, pats.MillisecondsSuffix)
		case hasPrefix(line, pats.DevicePrefix):
			run.Device = strings.TrimPrefix(line, pats.DevicePrefix)
		case hasPrefix(line, pats.InstrumentationPrefix):
			label, value, ok := splitMeasurement(line, pats)
			if !ok {
				logrus.Debugf("skipping malformed measurement line: %q", line)
				continue
			}
			run.AddSample(label, value)
		case isPopulation(line, pats):
			name, count, ok := parsePopulation(line, pats)
			if !ok {
				logrus.Debugf("skipping malformed population line: %q", line)
				continue
			}
			run.SetPopulation(name, count)
		}
	}
	if err := scanner.Err(); err != nil {
		return nil, fmt.Errorf("reading log %s: %w", path, err)
	}

	if !signatureSeen {
		return nil, fmt.Errorf("%s: %w", path, ErrNotSimOutput)
	}
	return run, nil
}

func hasPrefix(line, prefix string) bool {
	return prefix != "" && strings.HasPrefix(line, prefix)
}

// splitMeasurement extracts the label and value text from a measurement
// line. The value must parse as a float but is returned as the literal
// token, so downstream output preserves the log's formatting.
func splitMeasurement(line string, pats types.PatternSet) (label, value string, ok bool) {
	if pats.InstrumentationSeparator == "" {
		return "", "", false
	}
	s := strings.TrimPrefix(line, pats.InstrumentationPrefix)
	s = strings.TrimSuffix(s, pats.MillisecondsSuffix)

	parts := strings.Split(s, pats.InstrumentationSeparator)
	if len(parts) != 2 || parts[0] == "" {
		return "", "", false
	}
	if _, err := strconv.ParseFloat(parts[1], 64); err != nil {
		return "", "", false
	}
	return parts[0], parts[1], true
}

// isPopulation reports whether the line looks like a population count
// marker, e.g. "agent_Boid_default_count: 1024".
func isPopulation(line string, pats types.PatternSet) bool {
	return hasPrefix(line, pats.PopulationPrefix) &&
		strings.Contains(line, pats.PopulationSuffix+":")
}

// parsePopulation extracts the agent type/state name and count from a
// population marker line.
func parsePopulation(line string, pats types.PatternSet) (name string, count int, ok bool) {
	head, tail, found := strings.Cut(line, ": ")
	if !found {
		return "", 0, false
	}
	name = strings.TrimPrefix(head, pats.PopulationPrefix)
	name = strings.TrimSuffix(name, pats.PopulationSuffix)
	if name == "" {
		return "", 0, false
	}
	count, err := strconv.Atoi(strings.TrimSpace(tail))
	if err != nil {
		return "", 0, false
	}
	return name, count, true
}

// BatchSummary holds counts from a batch parse run.
type BatchSummary struct {
	Parsed  int
	Skipped int
	Failed  int
}

// Total returns the number of files processed.
func (s BatchSummary) Total() int {
	return s.Parsed + s.Skipped + s.Failed
}

// HasFailures reports whether any files failed to parse.
func (s BatchSummary) HasFailures() bool {
	return s.Failed > 0
}

// ParseAll parses every file in files, printing per-file status lines to
// w. Files that are not simulation output are skipped; unreadable files
// count as failures. The returned runs keep the input order.
func ParseAll(files []string, pats types.PatternSet, w io.Writer) ([]*types.Run, BatchSummary) {
	fmt.Fprintf(w, "Processing %d input files\n", len(files))

	var runs []*types.Run
	var summary BatchSummary

	for _, file := range files {
		run, err := ParseFile(file, pats)
		switch {
		case errors.Is(err, ErrNotSimOutput):
			fmt.Fprintf(w, "skipped %s (not FLAMEGPU output)\n", file)
			summary.Skipped++
		case err != nil:
			fmt.Fprintf(w, "failed  %s: %v\n", file, err)
			summary.Failed++
		default:
			fmt.Fprintf(w, "parsed  %s (%d iterations, %d series)\n",
				file, run.Iterations(), len(run.Labels))
			runs = append(runs, run)
			summary.Parsed++
		}
	}
	return runs, summary
}
