package sensor

import (
	"context"
	"errors"
	"fmt"
	"github.com/markusressel/smartfan/cmd/global"
	"github.com/markusressel/smartfan/internal/configuration"
	"github.com/markusressel/smartfan/internal/controller"
	"github.com/markusressel/smartfan/internal/sensors"
	"github.com/markusressel/smartfan/internal/speeds"
	"github.com/markusressel/smartfan/internal/ui"
	"github.com/spf13/cobra"
)

var sensorId string

var Command = &cobra.Command{
	Use:   "sensor",
	Short: "Reads the drive temperature and prints the matching fan speed without setting it",
	Long: `Samples the configured sensors (or only the one given by --id)
the same way an automatic run does, but never touches the fan.`,
	Args: global.UsageArgs(cobra.NoArgs),
	RunE: func(cmd *cobra.Command, args []string) error {
		configPath := configuration.DetectAndReadConfigFile()
		if len(configPath) > 0 {
			ui.Info("Using configuration file at: %s", configPath)
		}
		configuration.LoadConfig()
		if err := configuration.Validate(configPath); err != nil {
			return err
		}

		settings, err := controller.NewSettings(configuration.CurrentConfig)
		if err != nil {
			return err
		}
		sensorList, err := getSensors(configuration.CurrentConfig, sensorId)
		if err != nil {
			return &global.UsageError{Err: err}
		}

		// the fan is never used by Sample
		fanController := controller.NewFanController(settings, sensorList, nil)
		sample := fanController.Sample(context.Background())
		if !sample.Available {
			return sample.Err
		}

		ui.Printfln("%s", describeSample(settings, sample))
		return nil
	},
}

func init() {
	Command.PersistentFlags().StringVarP(
		&sensorId,
		"id", "i",
		"",
		"Sensor ID as specified in the config (default: all sensors)",
	)
}

// getSensors creates the configured sensors, or only the one with the given id
func getSensors(config configuration.Configuration, id string) ([]sensors.Sensor, error) {
	var result []sensors.Sensor
	var availableSensorIds []string
	for _, sensorConfig := range config.Sensors {
		availableSensorIds = append(availableSensorIds, sensorConfig.ID)
		if len(id) > 0 && sensorConfig.ID != id {
			continue
		}

		sensor, err := sensors.NewSensor(sensorConfig, config.CommandTimeout, config.CheckPermissions)
		if err != nil {
			return nil, err
		}
		result = append(result, sensor)
	}

	if len(result) <= 0 {
		return nil, fmt.Errorf("no sensor with id found: %s, options: %s", id, availableSensorIds)
	}
	return result, nil
}

// describeSample reports the fan speed an automatic run would apply for the given sample
func describeSample(settings controller.Settings, sample controller.Sample) string {
	resolver := speeds.NewResolver(settings.Table, settings.Policy)

	speed, err := resolver.Resolve(sample.Temperature)
	var noMatch *speeds.NoMatchingSpeedError
	if errors.As(err, &noMatch) {
		return fmt.Sprintf("Drive temperature is %d (sensor %s). %v, would use fallback fan speed %d (%s)",
			sample.Temperature, sample.SensorId, err, settings.FallbackSpeed, speeds.Encode(settings.FallbackSpeed))
	}
	return fmt.Sprintf("Drive temperature is %d (sensor %s). Would set fan speed to %d (%s)",
		sample.Temperature, sample.SensorId, speed, speeds.Encode(speed))
}
