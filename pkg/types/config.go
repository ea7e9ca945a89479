package types

// Default file name suffixes for conversion runs.
const (
	DefaultSourceSuffix = "pmwiki"
	DefaultTargetSuffix = "md"
)

// PairingConfig selects which source files are converted and where the
// results are written.
type PairingConfig struct {
	// SourceDir holds the PmWiki files to convert.
	SourceDir string `json:"source_dir" yaml:"source_dir"`

	// TargetDir receives the Markdown files.
	TargetDir string `json:"target_dir" yaml:"target_dir"`

	// SourceSuffix, when set, restricts conversion to files with that suffix
	// (default "pmwiki"). A leading dot is optional.
	SourceSuffix string `json:"source_suffix" yaml:"source_suffix"`

	// TargetSuffix, when set, is appended to every output file name after
	// the source suffix is stripped (default "md").
	TargetSuffix string `json:"target_suffix" yaml:"target_suffix"`
}

// EncodingConfig controls how source files are decoded and target files
// encoded. Empty encodings mean UTF-8.
type EncodingConfig struct {
	// Source is the IANA name of the source file encoding (e.g. "iso-8859-1").
	Source string `json:"source_encoding" yaml:"source_encoding"`

	// Target is the IANA name of the target file encoding.
	Target string `json:"target_encoding" yaml:"target_encoding"`

	// IgnoreDecodeErrors drops undecodable input instead of failing the file.
	IgnoreDecodeErrors bool `json:"ignore_codec_read_errors" yaml:"ignore_codec_read_errors"`
}

// ConversionConfig holds settings for a batch conversion run.
type ConversionConfig struct {
	PairingConfig  `yaml:",inline"`
	EncodingConfig `yaml:",inline"`

	// Workers is the number of files converted in parallel (0 = GOMAXPROCS).
	Workers int `json:"workers" yaml:"workers"`

	// Tables enables conversion of PmWiki simple tables.
	Tables bool `json:"tables" yaml:"tables"`

	// HistoryPath is the SQLite conversion history database. Empty disables
	// history.
	HistoryPath string `json:"history" yaml:"history"`

	// SkipUnchanged skips sources whose content is unchanged since their last
	// recorded conversion. It enables history at the default path when
	// HistoryPath is empty.
	SkipUnchanged bool `json:"skip_unchanged" yaml:"skip_unchanged"`

	// ReportPath, when set, receives a YAML report of the run.
	ReportPath string `json:"report" yaml:"report"`
}
