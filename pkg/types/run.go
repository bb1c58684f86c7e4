// Copyright Mesh Intelligence Inc., 2026. All rights reserved.

// Package types holds the shared data model for sim-extract: parsed
// simulation runs and the configurable marker vocabulary.
package types

// Run is the extracted content of a single simulation log file: the run
// metadata lines, the per-iteration instrumentation series, and the final
// agent population counts.
type Run struct {
	// InputFile is the path of the log this run was parsed from.
	InputFile string `json:"input_file" yaml:"input_file"`

	// Device is the GPU device description reported by the simulation.
	Device string `json:"device,omitempty" yaml:"device,omitempty"`

	// InitialStates is the initial states file reported by the simulation.
	InitialStates string `json:"initial_states,omitempty" yaml:"initial_states,omitempty"`

	// OutputDir is the simulation's own output directory line.
	OutputDir string `json:"output_dir,omitempty" yaml:"output_dir,omitempty"`

	// TotalProcessingTime is the total run time in milliseconds, kept as
	// the literal text from the log.
	TotalProcessingTime string `json:"total_processing_time,omitempty" yaml:"total_processing_time,omitempty"`

	// Labels lists instrumentation labels in first-seen order. The CSV
	// column order follows this list.
	Labels []string `json:"labels,omitempty" yaml:"labels,omitempty"`

	// Instrumentation maps a label to its per-iteration values in log
	// order. Values keep the log's exact numeric formatting so the CSV
	// round-trips byte for byte.
	Instrumentation map[string][]string `json:"instrumentation,omitempty" yaml:"instrumentation,omitempty"`

	// PopulationNames lists agent population names in first-seen order.
	PopulationNames []string `json:"population_names,omitempty" yaml:"population_names,omitempty"`

	// Populations maps an agent type/state name to its reported count.
	Populations map[string]int `json:"populations,omitempty" yaml:"populations,omitempty"`
}

// NewRun returns an empty Run for the given input file.
func NewRun(inputFile string) *Run {
	return &Run{
		InputFile:       inputFile,
		Instrumentation: map[string][]string{},
		Populations:     map[string]int{},
	}
}

// AddSample appends one instrumentation value to the label's series,
// registering the label on first sight.
func (r *Run) AddSample(label, value string) {
	if _, ok := r.Instrumentation[label]; !ok {
		r.Labels = append(r.Labels, label)
	}
	r.Instrumentation[label] = append(r.Instrumentation[label], value)
}

// SetPopulation records the count for an agent population. A repeated
// marker for the same name overwrites the previous count.
func (r *Run) SetPopulation(name string, count int) {
	if _, ok := r.Populations[name]; !ok {
		r.PopulationNames = append(r.PopulationNames, name)
	}
	r.Populations[name] = count
}

// Iterations returns the number of data rows the run produces: the length
// of its longest instrumentation series.
func (r *Run) Iterations() int {
	n := 0
	for _, series := range r.Instrumentation {
		if len(series) > n {
			n = len(series)
		}
	}
	return n
}
