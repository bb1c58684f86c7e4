package types

// PatternSet is the marker vocabulary the parser recognizes. The defaults
// match FLAMEGPU console output; any field can be overridden through the
// config file's patterns section or an explicit patterns file, so the
// extractor can follow a changed log format without a rebuild.
type PatternSet struct {
	// Signature marks a file as simulation output. A file whose lines
	// never start with Signature is rejected. Empty disables the check
	// and accepts any file.
	Signature string `json:"signature" yaml:"signature" mapstructure:"signature"`

	// InstrumentationPrefix starts a timing measurement line.
	InstrumentationPrefix string `json:"instrumentation_prefix" yaml:"instrumentation_prefix" mapstructure:"instrumentation_prefix"`

	// InstrumentationSeparator splits a measurement into label and value.
	InstrumentationSeparator string `json:"instrumentation_separator" yaml:"instrumentation_separator" mapstructure:"instrumentation_separator"`

	// MillisecondsSuffix is stripped from measurement and total-time lines
	// and restored on the CSV column headers.
	MillisecondsSuffix string `json:"milliseconds_suffix" yaml:"milliseconds_suffix" mapstructure:"milliseconds_suffix"`

	// PopulationPrefix and PopulationSuffix bracket the agent type/state
	// name in a population count line, e.g. "agent_Boid_default_count: 1024".
	PopulationPrefix string `json:"population_prefix" yaml:"population_prefix" mapstructure:"population_prefix"`
	PopulationSuffix string `json:"population_suffix" yaml:"population_suffix" mapstructure:"population_suffix"`

	// InitialStatesPrefix starts the initial states metadata line.
	InitialStatesPrefix string `json:"initial_states_prefix" yaml:"initial_states_prefix" mapstructure:"initial_states_prefix"`

	// OutputDirPrefix starts the simulation output directory line.
	OutputDirPrefix string `json:"output_dir_prefix" yaml:"output_dir_prefix" mapstructure:"output_dir_prefix"`

	// DevicePrefix starts the GPU device description line.
	DevicePrefix string `json:"device_prefix" yaml:"device_prefix" mapstructure:"device_prefix"`

	// TotalProcessingTimePrefix starts the total run time line.
	TotalProcessingTimePrefix string `json:"total_processing_time_prefix" yaml:"total_processing_time_prefix" mapstructure:"total_processing_time_prefix"`
}

// DefaultPatterns returns the marker vocabulary of FLAMEGPU console output.
func DefaultPatterns() PatternSet {
	return PatternSet{
		Signature:                 "FLAMEGPU Console mode",
		InstrumentationPrefix:     "Instrumentation: ",
		InstrumentationSeparator:  " = ",
		MillisecondsSuffix:        " (ms)",
		PopulationPrefix:          "agent_",
		PopulationSuffix:          "_count",
		InitialStatesPrefix:       "Initial states: ",
		OutputDirPrefix:           "Output dir: ",
		DevicePrefix:              "Device ",
		TotalProcessingTimePrefix: "Total Processing time: ",
	}
}

// ExtractConfig holds the options for one extraction run.
type ExtractConfig struct {
	// InputPaths are the log files and directories to parse. Directories
	// are searched recursively.
	InputPaths []string `json:"input_paths" yaml:"input_paths"`

	// OutputDir receives one CSV file per parsed input file. It is
	// created if it does not exist.
	OutputDir string `json:"output_dir" yaml:"output_dir"`

	// Verbose enables debug-level diagnostics for skipped lines.
	Verbose bool `json:"verbose" yaml:"verbose"`

	// Force overwrites existing CSV files without prompting.
	Force bool `json:"force" yaml:"force"`

	// Pretty additionally renders each table to stdout in aligned columns.
	Pretty bool `json:"pretty" yaml:"pretty"`

	// Patterns is the marker vocabulary used by the parser.
	Patterns PatternSet `json:"patterns" yaml:"patterns"`
}
