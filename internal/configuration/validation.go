package configuration

import (
	"errors"
	"fmt"
	"github.com/markusressel/smartfan/internal/speeds"
	"github.com/markusressel/smartfan/internal/util"
	"strings"
)

func Validate(configPath string) error {
	return validateConfig(&CurrentConfig, configPath)
}

func validateConfig(config *Configuration, path string) error {
	err := validateSpeeds(config)
	if err != nil {
		return err
	}
	err = validateSensors(config)
	if err != nil {
		return err
	}
	err = validateFan(config)
	if err != nil {
		return err
	}
	err = validateOutputs(config)
	if err != nil {
		return err
	}

	if config.CommandTimeout <= 0 {
		return errors.New("commandTimeout must be > 0")
	}

	// smartfan executes the commands configured in this file, usually as root
	if len(path) > 0 && config.CheckPermissions {
		if _, err := util.CheckFilePermissionsForExecution(path); err != nil {
			return fmt.Errorf("config file '%s' has invalid permissions: %w", path, err)
		}
	}

	return nil
}

func validateSpeeds(config *Configuration) error {
	table, err := speeds.NewSpeedTableFromMap(config.Speeds)
	if err != nil {
		return err
	}

	if _, err := speeds.ParsePolicy(config.Policy); err != nil {
		return err
	}

	minSpeed := table.MinSpeed()
	if config.MaxSpeed < minSpeed {
		return fmt.Errorf("maxSpeed %d is below the speed of the lowest threshold (%d)", config.MaxSpeed, minSpeed)
	}

	// every resolvable speed has to pass validation, otherwise automatic runs would fail
	for _, entry := range table.Entries() {
		if entry.Speed < minSpeed {
			return fmt.Errorf("speed %d for threshold %d°C is below the speed of the lowest threshold (%d)", entry.Speed, entry.Threshold, minSpeed)
		}
		if entry.Speed > config.MaxSpeed {
			return fmt.Errorf("speed %d for threshold %d°C exceeds maxSpeed %d", entry.Speed, entry.Threshold, config.MaxSpeed)
		}
	}

	// the fallback path must never fail itself
	if config.FallbackSpeed < minSpeed || config.FallbackSpeed > config.MaxSpeed {
		return fmt.Errorf("fallbackSpeed %d is out of range [%d..%d]", config.FallbackSpeed, minSpeed, config.MaxSpeed)
	}

	return nil
}

func validateSensors(config *Configuration) error {
	if len(config.Sensors) <= 0 {
		return errors.New("no sensor configured")
	}

	var ids []string
	for _, sensorConfig := range config.Sensors {
		if len(sensorConfig.ID) <= 0 {
			return errors.New("sensor: missing id")
		}
		ids = append(ids, sensorConfig.ID)

		if len(sensorConfig.Exec) <= 0 {
			return fmt.Errorf("sensor %s: executable is missing", sensorConfig.ID)
		}
		if len(strings.TrimSpace(sensorConfig.Key)) <= 0 {
			return fmt.Errorf("sensor %s: key is missing", sensorConfig.ID)
		}
		if sensorConfig.GetColumn() < 0 {
			return fmt.Errorf("sensor %s: invalid column, must be >= 0", sensorConfig.ID)
		}
	}

	duplicates := util.Duplicates(ids)
	if len(duplicates) > 0 {
		return fmt.Errorf("duplicate sensor id detected: %s", strings.Join(duplicates, ", "))
	}

	return nil
}

func validateFan(config *Configuration) error {
	fanConfig := config.Fan
	if len(fanConfig.ID) <= 0 {
		return errors.New("fan: missing id")
	}
	if len(fanConfig.Exec) <= 0 {
		return fmt.Errorf("fan %s: executable is missing", fanConfig.ID)
	}
	return nil
}

func validateOutputs(config *Configuration) error {
	if config.History.Enabled {
		if len(config.DbPath) <= 0 {
			return errors.New("history is enabled but dbPath is empty")
		}
		if config.History.Retain < 0 {
			return fmt.Errorf("history: invalid retain value %d, must be >= 0", config.History.Retain)
		}
	}

	if config.Statistics.Enabled && len(config.Statistics.Textfile) <= 0 {
		return errors.New("statistics are enabled but no textfile is configured")
	}

	return nil
}
