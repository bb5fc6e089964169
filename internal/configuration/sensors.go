package configuration

const (
	DefaultSensorId     = "disk0"
	DefaultSensorExec   = "/usr/local/bin/smartctl"
	DefaultSensorKey    = "194" // Temperature_Celsius
	DefaultSensorColumn = 9     // RAW_VALUE
)

// SensorConfig describes a command printing a table of labeled drive attributes, like "smartctl -A"
type SensorConfig struct {
	ID   string   `json:"id" yaml:"id"`
	Exec string   `json:"exec" yaml:"exec"`
	Args []string `json:"args" yaml:"args"`
	// Key selects the (unique) output line containing this substring
	Key string `json:"key" yaml:"key"`
	// Column is the 0-based index of the whitespace-delimited token holding the temperature.
	// Defaults to DefaultSensorColumn when absent.
	Column *int `json:"column,omitempty" yaml:"column,omitempty"`
}

func (s SensorConfig) GetColumn() int {
	if s.Column == nil {
		return DefaultSensorColumn
	}
	return *s.Column
}

func DefaultSensorConfig() SensorConfig {
	column := DefaultSensorColumn
	return SensorConfig{
		ID:     DefaultSensorId,
		Exec:   DefaultSensorExec,
		Args:   []string{"-A", "/dev/disk0"},
		Key:    DefaultSensorKey,
		Column: &column,
	}
}
