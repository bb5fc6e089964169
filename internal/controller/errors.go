package controller

import (
	"errors"
	"fmt"
	"strings"
)

// TemperatureUnavailableError is returned when no sensor delivered a temperature
type TemperatureUnavailableError struct {
	SensorIds []string
	Err       error
}

func (e *TemperatureUnavailableError) Error() string {
	if len(e.SensorIds) <= 0 {
		return fmt.Sprintf("temperature unavailable: %v", e.Err)
	}
	return fmt.Sprintf("temperature unavailable (%s): %v", strings.Join(e.SensorIds, ", "), e.Err)
}

func (e *TemperatureUnavailableError) Unwrap() error {
	return e.Err
}

// InvalidFanSpeedError is returned when a speed does not pass validation, nothing is applied in this case
type InvalidFanSpeedError struct {
	Mode  Mode
	Speed int
	Err   error
}

func (e *InvalidFanSpeedError) Error() string {
	return fmt.Sprintf("invalid %s fan speed %d: %v", e.Mode, e.Speed, e.Err)
}

func (e *InvalidFanSpeedError) Unwrap() error {
	return e.Err
}

// ApplyFailedError is returned when the fan control command did not succeed
type ApplyFailedError struct {
	FanId        string
	EncodedSpeed string
	Err          error
}

func (e *ApplyFailedError) Error() string {
	return fmt.Sprintf("failed to apply fan speed %s to fan %s: %v", e.EncodedSpeed, e.FanId, e.Err)
}

func (e *ApplyFailedError) Unwrap() error {
	return e.Err
}

var errNoSensors = errors.New("no sensor configured")
