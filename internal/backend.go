package internal

import (
	"context"
	"errors"
	"fmt"
	"github.com/markusressel/smartfan/internal/configuration"
	"github.com/markusressel/smartfan/internal/controller"
	"github.com/markusressel/smartfan/internal/fans"
	"github.com/markusressel/smartfan/internal/persistence"
	"github.com/markusressel/smartfan/internal/sensors"
	"github.com/markusressel/smartfan/internal/statistics"
	"github.com/markusressel/smartfan/internal/ui"
	"github.com/oklog/run"
	"os"
	"os/signal"
	"sort"
	"syscall"
)

// RunOptions selects between the automatic sample-and-set run and a manual override
type RunOptions struct {
	Manual bool
	// Speed is the decimal fan speed (RPM) of a manual override
	Speed int
}

// RunOnce performs a single sample-and-set (or manual set) action using the current configuration
func RunOnce(opts RunOptions) error {
	if os.Geteuid() != 0 {
		ui.Warning("smartfan is not running as root, setting the fan speed will likely fail")
	}

	config := configuration.CurrentConfig
	fanController, fan, err := InitializeObjects(config)
	if err != nil {
		return err
	}

	result, runErr := runController(context.Background(), fanController, opts)
	if IsUsageError(runErr) {
		return runErr
	}

	if runErr != nil {
		ui.NotifyError("Fan Control Error", runErr.Error())
	} else if result.Fallback {
		ui.NotifyWarn("Fan Fallback", fmt.Sprintf("Fan %s set to fallback speed %d: %s", fan.GetId(), result.Speed, result.FallbackReason))
	}

	record := NewRunRecord(result, runErr)
	storeResult(config, fan.GetId(), record)

	return runErr
}

// InitializeObjects creates the sensors, the fan and the controller described by config
func InitializeObjects(config configuration.Configuration) (controller.FanController, fans.Fan, error) {
	settings, err := controller.NewSettings(config)
	if err != nil {
		return nil, nil, err
	}
	ui.Debug("Controller settings: %s", settings)

	for _, sensorConfig := range config.Sensors {
		sensor, err := sensors.NewSensor(sensorConfig, config.CommandTimeout, config.CheckPermissions)
		if err != nil {
			return nil, nil, fmt.Errorf("unable to process sensor configuration %s: %w", sensorConfig.ID, err)
		}
		sensors.SensorMap.Set(sensorConfig.ID, sensor)
	}

	fan, err := fans.NewFan(config.Fan, config.CommandTimeout, config.CheckPermissions)
	if err != nil {
		return nil, nil, fmt.Errorf("unable to process fan configuration %s: %w", config.Fan.ID, err)
	}

	return controller.NewFanController(settings, sortedSensors(), fan), fan, nil
}

func sortedSensors() []sensors.Sensor {
	ids := sensors.SensorMap.Keys()
	sort.Strings(ids)

	var result []sensors.Sensor
	for _, id := range ids {
		if sensor, ok := sensors.SensorMap.Get(id); ok {
			result = append(result, sensor)
		}
	}
	return result
}

// runController runs the controller next to a signal handler, so an interrupt
// cancels a hanging external command instead of leaving it behind.
func runController(ctx context.Context, fanController controller.FanController, opts RunOptions) (result controller.Result, err error) {
	ctx, cancel := context.WithCancel(ctx)
	defer cancel()

	var g run.Group
	{
		g.Add(func() error {
			if opts.Manual {
				result, err = fanController.RunManual(ctx, opts.Speed)
			} else {
				result, err = fanController.RunAutomatic(ctx)
			}
			return err
		}, func(err error) {
			cancel()
		})
	}
	{
		sig := make(chan os.Signal, 1)
		signal.Notify(sig, os.Interrupt, syscall.SIGTERM)

		g.Add(func() error {
			select {
			case s := <-sig:
				ui.Info("Received %s signal, exiting...", s)
				return fmt.Errorf("interrupted by %s", s)
			case <-ctx.Done():
				return nil
			}
		}, func(err error) {
			signal.Stop(sig)
			cancel()
		})
	}

	groupErr := g.Run()
	if err == nil && groupErr != nil {
		err = groupErr
	}
	return result, err
}

func NewRunRecord(result controller.Result, err error) persistence.RunRecord {
	record := persistence.RunRecord{
		Time:           result.Time,
		Mode:           string(result.Mode),
		Speed:          result.Speed,
		EncodedSpeed:   result.EncodedSpeed,
		Fallback:       result.Fallback,
		FallbackReason: result.FallbackReason,
		Applied:        result.Applied,
	}
	if result.Sample != nil && result.Sample.Available {
		temperature := result.Sample.Temperature
		record.Temperature = &temperature
		record.SensorId = result.Sample.SensorId
	}
	if err != nil {
		record.Error = err.Error()
	}
	return record
}

// storeResult writes the run history and statistics, failures are not fatal
func storeResult(config configuration.Configuration, fanId string, record persistence.RunRecord) {
	if record.Time.IsZero() {
		return
	}

	if config.History.Enabled {
		pers := persistence.NewPersistence(config.DbPath)
		err := pers.Init()
		if err == nil {
			err = pers.SaveRun(record, config.History.Retain)
		}
		if err != nil {
			ui.Warning("Unable to store run history in %s: %v", config.DbPath, err)
		}
	}

	if config.Statistics.Enabled {
		collector := statistics.NewRunCollector(fanId, record)
		err := statistics.WriteTextfile(config.Statistics.Textfile, collector)
		if err != nil {
			ui.Warning("Unable to write statistics to %s: %v", config.Statistics.Textfile, err)
		}
	}
}

// IsUsageError reports whether err was caused by invalid operator input rather than a system failure
func IsUsageError(err error) bool {
	var invalid *controller.InvalidFanSpeedError
	return errors.As(err, &invalid) && invalid.Mode == controller.ModeManual
}
