package configuration

type HistoryConfig struct {
	Enabled bool `json:"enabled" yaml:"enabled"`
	// Retain is the number of runs kept in the database, 0 keeps everything
	Retain int `json:"retain" yaml:"retain"`
}

type StatisticsConfig struct {
	Enabled bool `json:"enabled" yaml:"enabled"`
	// Textfile is written in the node_exporter textfile collector format
	Textfile string `json:"textfile" yaml:"textfile"`
}
