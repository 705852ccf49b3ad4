package config

// Config is the top-level YAML structure.
type Config struct {
	Version   string        `yaml:"version"`
	Generator GeneratorConf `yaml:"generator"`
	Output    OutputConf    `yaml:"output"`
	Filter    string        `yaml:"filter"`  // segment expression, empty = all rows
	Reports   []string      `yaml:"reports"` // empty = every report
}

// GeneratorConf holds the traffic simulation settings.
type GeneratorConf struct {
	Days                 int     `yaml:"days"`
	Seed                 int64   `yaml:"seed"`
	BaseVisits           float64 `yaml:"base_visits"`
	UserPool             int     `yaml:"user_pool"`
	NormalizeConversions bool    `yaml:"normalize_conversions"`
}

// OutputConf lists where results are written. Empty paths are skipped.
type OutputConf struct {
	DataFile    string `yaml:"data_file"`
	ChartsFile  string `yaml:"charts_file"`
	MetricsFile string `yaml:"metrics_file"`
	JSON        bool   `yaml:"json"`
}
