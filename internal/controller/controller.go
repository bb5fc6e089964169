package controller

import (
	"context"
	"errors"
	"fmt"
	"github.com/markusressel/smartfan/internal/configuration"
	"github.com/markusressel/smartfan/internal/fans"
	"github.com/markusressel/smartfan/internal/sensors"
	"github.com/markusressel/smartfan/internal/speeds"
	"github.com/markusressel/smartfan/internal/ui"
	"time"
)

// Settings is the immutable configuration of a FanController
type Settings struct {
	Table  *speeds.SpeedTable
	Policy speeds.Policy
	// MaxSpeed is the upper bound of the validator
	MaxSpeed int
	// FallbackSpeed is applied whenever no temperature is available
	FallbackSpeed int
}

func NewSettings(config configuration.Configuration) (Settings, error) {
	table, err := speeds.NewSpeedTableFromMap(config.Speeds)
	if err != nil {
		return Settings{}, err
	}
	policy, err := speeds.ParsePolicy(config.Policy)
	if err != nil {
		return Settings{}, err
	}

	return Settings{
		Table:         table,
		Policy:        policy,
		MaxSpeed:      config.MaxSpeed,
		FallbackSpeed: config.FallbackSpeed,
	}, nil
}

type FanController interface {
	// Sample reads the temperature of all sensors
	Sample(ctx context.Context) Sample
	// RunAutomatic samples the temperature and applies the matching fan speed
	RunAutomatic(ctx context.Context) (Result, error)
	// RunManual applies the given fan speed without sampling
	RunManual(ctx context.Context, speed int) (Result, error)
}

type fanController struct {
	settings  Settings
	resolver  *speeds.Resolver
	validator speeds.Validator
	sensors   []sensors.Sensor
	fan       fans.Fan
	now       func() time.Time
}

func NewFanController(settings Settings, sensorList []sensors.Sensor, fan fans.Fan) FanController {
	return &fanController{
		settings:  settings,
		resolver:  speeds.NewResolver(settings.Table, settings.Policy),
		validator: speeds.NewValidator(settings.Table, settings.MaxSpeed),
		sensors:   sensorList,
		fan:       fan,
		now:       time.Now,
	}
}

func (f *fanController) Sample(ctx context.Context) Sample {
	if len(f.sensors) <= 0 {
		return Sample{Err: &TemperatureUnavailableError{Err: errNoSensors}}
	}

	var ids []string
	var errs []error
	result := Sample{}
	for _, sensor := range f.sensors {
		value, err := sensor.GetValue(ctx)
		if err != nil {
			ui.Warning("Unable to read temperature of sensor %s: %v", sensor.GetId(), err)
			ids = append(ids, sensor.GetId())
			errs = append(errs, err)
			continue
		}

		// the hottest drive decides
		if !result.Available || value > result.Temperature {
			result = Sample{
				Available:   true,
				Temperature: value,
				SensorId:    sensor.GetId(),
			}
		}
	}

	if !result.Available {
		result.Err = &TemperatureUnavailableError{
			SensorIds: ids,
			Err:       errors.Join(errs...),
		}
	}

	return result
}

func (f *fanController) RunAutomatic(ctx context.Context) (Result, error) {
	sample := f.Sample(ctx)
	result := Result{
		Time:   f.now(),
		Mode:   ModeAutomatic,
		Sample: &sample,
	}

	if sample.Available {
		speed, err := f.resolver.Resolve(sample.Temperature)
		var noMatch *speeds.NoMatchingSpeedError
		if errors.As(err, &noMatch) {
			f.useFallback(&result, err)
		} else if err != nil {
			return result, err
		} else {
			ui.Debug("Resolved %d°C (sensor %s) to %d RPM", sample.Temperature, sample.SensorId, speed)
			result.Speed = speed
		}
	} else {
		f.useFallback(&result, sample.Err)
	}

	err := f.apply(ctx, &result)
	return result, err
}

func (f *fanController) useFallback(result *Result, reason error) {
	result.Speed = f.settings.FallbackSpeed
	result.Fallback = true
	result.FallbackReason = reason.Error()
	ui.Warning("%v, using fallback fan speed %d", reason, result.Speed)
}

func (f *fanController) RunManual(ctx context.Context, speed int) (Result, error) {
	result := Result{
		Time:  f.now(),
		Mode:  ModeManual,
		Speed: speed,
	}

	err := f.apply(ctx, &result)
	return result, err
}

// apply encodes, validates and sets result.Speed
func (f *fanController) apply(ctx context.Context, result *Result) error {
	result.EncodedSpeed = speeds.Encode(result.Speed)

	err := f.validator.Validate(result.Speed)
	if err == nil {
		err = f.validator.ValidateHex(result.EncodedSpeed)
	}
	if err != nil {
		return &InvalidFanSpeedError{
			Mode:  result.Mode,
			Speed: result.Speed,
			Err:   err,
		}
	}

	ui.Printfln("%s", result.String())

	err = f.fan.SetSpeed(ctx, result.EncodedSpeed)
	if err != nil {
		return &ApplyFailedError{
			FanId:        f.fan.GetId(),
			EncodedSpeed: result.EncodedSpeed,
			Err:          err,
		}
	}
	result.Applied = true

	return nil
}

func (s Settings) String() string {
	return fmt.Sprintf("policy=%s maxSpeed=%d fallbackSpeed=%d", s.Policy, s.MaxSpeed, s.FallbackSpeed)
}
