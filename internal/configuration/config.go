package configuration

import (
	"errors"
	"fmt"
	"github.com/markusressel/smartfan/internal/ui"
	"github.com/mitchellh/go-homedir"
	"github.com/mitchellh/mapstructure"
	"github.com/spf13/viper"
	"os"
	"strings"
	"time"
)

const (
	EnvPrefix = "SMARTFAN"

	DefaultConfigName = "smartfan"
)

type Configuration struct {
	DbPath string `json:"dbPath" yaml:"dbPath"`

	// CommandTimeout bounds every invocation of an external tool
	CommandTimeout time.Duration `json:"commandTimeout" yaml:"commandTimeout"`
	// CheckPermissions requires executables and the config file to be owned by root
	// and not writable by others. Homebrew installs smartctl as the installing user,
	// which needs this to be disabled.
	CheckPermissions bool `json:"checkPermissions" yaml:"checkPermissions"`

	// MaxSpeed is the upper bound (RPM) of every speed sent to the fan controller
	MaxSpeed int `json:"maxSpeed" yaml:"maxSpeed"`
	// FallbackSpeed is applied when no temperature could be sampled, defaults to MaxSpeed
	FallbackSpeed int `json:"fallbackSpeed" yaml:"fallbackSpeed"`
	// Policy for temperatures above the highest threshold: lenient | strict
	Policy string `json:"policy" yaml:"policy"`

	Speeds SpeedTableConfig `json:"speeds" yaml:"speeds"`

	Sensors []SensorConfig `json:"sensors" yaml:"sensors"`
	Fan     FanConfig      `json:"fan" yaml:"fan"`

	History    HistoryConfig    `json:"history" yaml:"history"`
	Statistics StatisticsConfig `json:"statistics" yaml:"statistics"`
}

var CurrentConfig Configuration

// InitConfig reads in config file and ENV variables if set.
func InitConfig(cfgFile string) {
	viper.SetConfigName(DefaultConfigName)

	if cfgFile != "" {
		// Use config file from the flag.
		viper.SetConfigFile(cfgFile)
	} else {
		// Find home directory.
		home, err := homedir.Dir()
		if err != nil {
			ui.Error("Couldn't detect home directory: %v", err)
			os.Exit(1)
		}

		viper.AddConfigPath(".")
		viper.AddConfigPath(home)
		viper.AddConfigPath("/etc/smartfan/")
	}

	viper.SetEnvPrefix(EnvPrefix)
	viper.SetEnvKeyReplacer(strings.NewReplacer(".", "_"))
	viper.AutomaticEnv() // read in environment variables that match

	setDefaultValues(viper.GetViper())
}

func setDefaultValues(v *viper.Viper) {
	v.SetDefault("dbPath", "/var/lib/smartfan/smartfan.db")
	v.SetDefault("commandTimeout", 10*time.Second)
	v.SetDefault("checkPermissions", true)
	v.SetDefault("maxSpeed", DefaultMaxSpeed)
	v.SetDefault("fallbackSpeed", 0)
	v.SetDefault("policy", "lenient")
	// no default here (see applyDefaults), bound so SMARTFAN_SPEEDS="31:1100,33:1200" is picked up
	_ = v.BindEnv("speeds")

	v.SetDefault("fan.id", DefaultFanId)
	v.SetDefault("fan.exec", DefaultFanExec)
	v.SetDefault("fan.args", DefaultFanArgs)

	v.SetDefault("history.enabled", true)
	v.SetDefault("history.retain", 500)

	v.SetDefault("statistics.enabled", false)
	v.SetDefault("statistics.textfile", "/var/lib/node_exporter/textfile_collector/smartfan.prom")
}

// DefaultConfig returns the configuration that is used when no config file is present
func DefaultConfig() Configuration {
	v := viper.New()
	setDefaultValues(v)

	var config Configuration
	if err := unmarshalConfig(v, &config); err != nil {
		// the defaults are static
		panic(err)
	}
	return config
}

// DetectAndReadConfigFile reads the config file and returns its path.
// Without a config file the built-in defaults are used and an empty path is returned.
func DetectAndReadConfigFile() string {
	if err := viper.ReadInConfig(); err != nil {
		var notFound viper.ConfigFileNotFoundError
		if errors.As(err, &notFound) {
			ui.Warning("No configuration file found, using defaults")
			return ""
		}
		// an explicitly given config file that cannot be read is an error
		ui.FatalWithoutStacktrace("Error reading config file, %s", err)
	}
	// this is only populated _after_ ReadInConfig()
	return viper.ConfigFileUsed()
}

// LoadConfig decodes the current viper state into CurrentConfig
func LoadConfig() {
	err := unmarshalConfig(viper.GetViper(), &CurrentConfig)
	if err != nil {
		ui.FatalWithoutStacktrace("unable to decode into struct, %v", err)
	}
}

func unmarshalConfig(v *viper.Viper, config *Configuration) error {
	err := v.Unmarshal(config, viper.DecodeHook(
		mapstructure.ComposeDecodeHookFunc(
			SpeedTableHookFunc(),
			mapstructure.StringToTimeDurationHookFunc(),
			mapstructure.StringToSliceHookFunc(","),
		),
	))
	if err != nil {
		return err
	}

	applyDefaults(config)
	return nil
}

// applyDefaults fills in the values viper cannot default on its own (lists and maps)
func applyDefaults(config *Configuration) {
	if len(config.Speeds) <= 0 {
		config.Speeds = DefaultSpeeds()
	}
	if len(config.Sensors) <= 0 {
		config.Sensors = []SensorConfig{DefaultSensorConfig()}
	}
	if config.FallbackSpeed <= 0 {
		config.FallbackSpeed = config.MaxSpeed
	}
}

func (c Configuration) String() string {
	return fmt.Sprintf("maxSpeed=%d fallbackSpeed=%d policy=%s speeds=%d sensors=%d", c.MaxSpeed, c.FallbackSpeed, c.Policy, len(c.Speeds), len(c.Sensors))
}
