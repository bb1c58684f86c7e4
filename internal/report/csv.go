// Copyright Mesh Intelligence Inc., 2026. All rights reserved.

// Package report renders parsed runs as CSV tables, one file per run.
package report

import (
	"bytes"
	"encoding/csv"
	"fmt"
	"io"
	"os"
	"path/filepath"
	"strconv"

	"github.com/pdiddy/sim-extract/pkg/types"
)

const (
	colFilename  = "filename"
	colTotalTime = "total processing time"
	colIteration = "iteration"
)

// Header returns the CSV column names for a run: file metadata, the
// iteration index, the population columns, then one column per
// instrumentation label with the milliseconds suffix restored.
func Header(run *types.Run, pats types.PatternSet) []string {
	header := []string{colFilename, colTotalTime + pats.MillisecondsSuffix, colIteration}
	header = append(header, run.PopulationNames...)
	for _, label := range run.Labels {
		header = append(header, label+pats.MillisecondsSuffix)
	}
	return header
}

// Rows returns one row per iteration. The row count is the length of the
// longest instrumentation series; shorter series pad the missing
// iterations with empty cells. Population counts are scalars and repeat
// on every row.
func Rows(run *types.Run) [][]string {
	n := run.Iterations()
	rows := make([][]string, 0, n)
	for i := 0; i < n; i++ {
		row := []string{run.InputFile, run.TotalProcessingTime, strconv.Itoa(i)}
		for _, name := range run.PopulationNames {
			row = append(row, strconv.Itoa(run.Populations[name]))
		}
		for _, label := range run.Labels {
			series := run.Instrumentation[label]
			if i < len(series) {
				row = append(row, series[i])
			} else {
				row = append(row, "")
			}
		}
		rows = append(rows, row)
	}
	return rows
}

// OutputName returns the CSV filename for the index-th run: the input
// file's base name prefixed with the index, so distinct inputs with the
// same base name do not collide.
func OutputName(run *types.Run, index int) string {
	return fmt.Sprintf("%d__%s.csv", index, filepath.Base(run.InputFile))
}

// WriteAll writes one CSV per run into cfg.OutputDir, creating the
// directory if needed. An existing output file prompts through confirm
// unless cfg.Force; declining skips that file. Pretty mode additionally
// renders each table to w. Any write error aborts the batch. Returns the
// number of files written.
func WriteAll(runs []*types.Run, cfg types.ExtractConfig, confirm ConfirmFunc, w io.Writer) (int, error) {
	if len(runs) == 0 {
		fmt.Fprintln(w, "no runs to write")
		return 0, nil
	}

	if err := os.MkdirAll(cfg.OutputDir, 0o755); err != nil {
		return 0, fmt.Errorf("creating output directory %s: %w", cfg.OutputDir, err)
	}

	written := 0
	for i, run := range runs {
		path := filepath.Join(cfg.OutputDir, OutputName(run, i))

		if _, err := os.Stat(path); err == nil && !cfg.Force {
			if !confirm(fmt.Sprintf("Do you wish to overwrite output file %s?", path)) {
				fmt.Fprintf(w, "skipped %s\n", path)
				continue
			}
		}

		data, err := renderCSV(run, cfg.Patterns)
		if err != nil {
			return written, fmt.Errorf("rendering %s: %w", path, err)
		}
		if err := os.WriteFile(path, data, 0o644); err != nil {
			return written, fmt.Errorf("writing %s: %w", path, err)
		}

		fmt.Fprintf(w, "wrote   %s\n", path)
		written++

		if cfg.Pretty {
			prettyPrint(w, Header(run, cfg.Patterns), Rows(run))
		}
	}
	return written, nil
}

// renderCSV serializes the run's table. A run with no instrumentation
// series produces a header-only CSV.
func renderCSV(run *types.Run, pats types.PatternSet) ([]byte, error) {
	var buf bytes.Buffer
	cw := csv.NewWriter(&buf)

	if err := cw.Write(Header(run, pats)); err != nil {
		return nil, fmt.Errorf("writing header: %w", err)
	}
	for _, row := range Rows(run) {
		if err := cw.Write(row); err != nil {
			return nil, fmt.Errorf("writing row: %w", err)
		}
	}

	cw.Flush()
	if err := cw.Error(); err != nil {
		return nil, err
	}
	return buf.Bytes(), nil
}
