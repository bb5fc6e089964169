package controller

import (
	"context"
	"errors"
	"github.com/markusressel/smartfan/internal/configuration"
	"github.com/markusressel/smartfan/internal/sensors"
	"github.com/markusressel/smartfan/internal/speeds"
	"github.com/markusressel/smartfan/internal/testingutils"
	"github.com/stretchr/testify/assert"
	"testing"
)

func createSettings(t *testing.T, policy speeds.Policy) Settings {
	return Settings{
		Table:         testingutils.CreateSpeedTable(t, testingutils.ShortTable),
		Policy:        policy,
		MaxSpeed:      6200,
		FallbackSpeed: 6200,
	}
}

func createController(t *testing.T, policy speeds.Policy, fan *testingutils.MockFan, sensorList ...sensors.Sensor) FanController {
	return NewFanController(createSettings(t, policy), sensorList, fan)
}

func TestNewSettings(t *testing.T) {
	// GIVEN
	config := configuration.Configuration{
		MaxSpeed:      6200,
		FallbackSpeed: 5000,
		Policy:        "strict",
		Speeds:        configuration.DefaultSpeeds(),
	}

	// WHEN
	settings, err := NewSettings(config)

	// THEN
	assert.NoError(t, err)
	assert.Equal(t, speeds.PolicyStrict, settings.Policy)
	assert.Equal(t, 6200, settings.MaxSpeed)
	assert.Equal(t, 5000, settings.FallbackSpeed)
	assert.Equal(t, 1100, settings.Table.MinSpeed())
	assert.Equal(t, 5000, settings.Table.MaxTableSpeed())
}

func TestRunAutomatic_ResolvesSampledTemperature(t *testing.T) {
	// GIVEN
	fan := &testingutils.MockFan{ID: "F1Mx"}
	controller := createController(t, speeds.PolicyLenient, fan, testingutils.MockSensor{ID: "disk0", Value: 34})

	// WHEN
	result, err := controller.RunAutomatic(context.Background())

	// THEN
	assert.NoError(t, err)
	assert.Equal(t, 1500, result.Speed)
	assert.Equal(t, "1770", result.EncodedSpeed)
	assert.False(t, result.Fallback)
	assert.True(t, result.Applied)
	assert.Equal(t, []string{"1770"}, fan.Applied)
	assert.Equal(t, "Drive temperature is 34. Setting fan speed to 1500 (1770)", result.String())
}

func TestRunAutomatic_SamplingFailsUsesFallback(t *testing.T) {
	// GIVEN
	fan := &testingutils.MockFan{ID: "F1Mx"}
	controller := createController(t, speeds.PolicyLenient, fan, testingutils.MockSensor{ID: "disk0", Err: errors.New("smartctl crashed")})

	// WHEN
	result, err := controller.RunAutomatic(context.Background())

	// THEN
	assert.NoError(t, err)
	assert.Equal(t, 6200, result.Speed)
	assert.Equal(t, "60e0", result.EncodedSpeed)
	assert.True(t, result.Fallback)
	assert.Contains(t, result.FallbackReason, "smartctl crashed")
	assert.Equal(t, TempNotFound, result.TemperatureString())
	assert.Equal(t, "Drive temperature is TEMP_NOT_FOUND. Setting fan speed to 6200 (60e0)", result.String())
	assert.Equal(t, []string{"60e0"}, fan.Applied)
}

func TestRunAutomatic_NoSensorsUsesFallback(t *testing.T) {
	// GIVEN
	fan := &testingutils.MockFan{ID: "F1Mx"}
	controller := createController(t, speeds.PolicyLenient, fan)

	// WHEN
	result, err := controller.RunAutomatic(context.Background())

	// THEN
	assert.NoError(t, err)
	assert.True(t, result.Fallback)
	assert.Equal(t, []string{"60e0"}, fan.Applied)
}

func TestRunAutomatic_Lenient_AboveHighestThreshold(t *testing.T) {
	// GIVEN
	fan := &testingutils.MockFan{ID: "F1Mx"}
	controller := createController(t, speeds.PolicyLenient, fan, testingutils.MockSensor{ID: "disk0", Value: 60})

	// WHEN
	result, err := controller.RunAutomatic(context.Background())

	// THEN
	assert.NoError(t, err)
	assert.Equal(t, 1500, result.Speed)
	assert.False(t, result.Fallback)
}

func TestRunAutomatic_Strict_AboveHighestThresholdUsesFallback(t *testing.T) {
	// GIVEN
	fan := &testingutils.MockFan{ID: "F1Mx"}
	controller := createController(t, speeds.PolicyStrict, fan, testingutils.MockSensor{ID: "disk0", Value: 60})

	// WHEN
	result, err := controller.RunAutomatic(context.Background())

	// THEN
	assert.NoError(t, err)
	assert.Equal(t, 6200, result.Speed)
	assert.True(t, result.Fallback)
	assert.Equal(t, "Drive temperature is 60. Setting fan speed to 6200 (60e0)", result.String())
}

func TestRunAutomatic_HottestSensorWins(t *testing.T) {
	// GIVEN
	fan := &testingutils.MockFan{ID: "F1Mx"}
	controller := createController(t, speeds.PolicyLenient, fan,
		testingutils.MockSensor{ID: "disk0", Value: 30},
		testingutils.MockSensor{ID: "disk1", Err: errors.New("no such device")},
		testingutils.MockSensor{ID: "disk2", Value: 32},
	)

	// WHEN
	result, err := controller.RunAutomatic(context.Background())

	// THEN
	assert.NoError(t, err)
	assert.Equal(t, "disk2", result.Sample.SensorId)
	assert.Equal(t, 32, result.Sample.Temperature)
	assert.Equal(t, 1200, result.Speed)
	assert.False(t, result.Fallback)
}

func TestRunAutomatic_InvalidResolvedSpeedIsFatal(t *testing.T) {
	// GIVEN
	fan := &testingutils.MockFan{ID: "F1Mx"}
	settings := createSettings(t, speeds.PolicyLenient)
	settings.MaxSpeed = 1400
	controller := NewFanController(settings, []sensors.Sensor{testingutils.MockSensor{ID: "disk0", Value: 34}}, fan)

	// WHEN
	result, err := controller.RunAutomatic(context.Background())

	// THEN
	var invalid *InvalidFanSpeedError
	assert.ErrorAs(t, err, &invalid)
	assert.Equal(t, ModeAutomatic, invalid.Mode)
	assert.Equal(t, 1500, invalid.Speed)
	var rangeErr *speeds.OutOfRangeError
	assert.ErrorAs(t, err, &rangeErr)
	assert.False(t, result.Applied)
	assert.Empty(t, fan.Applied)
}

func TestRunAutomatic_ApplyFails(t *testing.T) {
	// GIVEN
	fan := &testingutils.MockFan{ID: "F1Mx", Err: errors.New("smc: exit status 1")}
	controller := createController(t, speeds.PolicyLenient, fan, testingutils.MockSensor{ID: "disk0", Value: 34})

	// WHEN
	result, err := controller.RunAutomatic(context.Background())

	// THEN
	var applyErr *ApplyFailedError
	assert.ErrorAs(t, err, &applyErr)
	assert.Equal(t, "F1Mx", applyErr.FanId)
	assert.Equal(t, "1770", applyErr.EncodedSpeed)
	assert.EqualError(t, err, "failed to apply fan speed 1770 to fan F1Mx: smc: exit status 1")
	assert.False(t, result.Applied)
}

func TestRunManual(t *testing.T) {
	// GIVEN
	fan := &testingutils.MockFan{ID: "F1Mx"}
	controller := createController(t, speeds.PolicyLenient, fan, testingutils.MockSensor{ID: "disk0", Err: errors.New("must not be sampled")})

	// WHEN
	result, err := controller.RunManual(context.Background(), 3000)

	// THEN
	assert.NoError(t, err)
	assert.Nil(t, result.Sample)
	assert.Equal(t, ModeManual, result.Mode)
	assert.Equal(t, "2ee0", result.EncodedSpeed)
	assert.Equal(t, []string{"2ee0"}, fan.Applied)
	assert.Equal(t, "Manual override. Setting fan speed to 3000 (2ee0)", result.String())
}

func TestRunManual_BelowMinimumIsRejected(t *testing.T) {
	// GIVEN
	fan := &testingutils.MockFan{ID: "F1Mx"}
	controller := createController(t, speeds.PolicyLenient, fan)

	for _, speed := range []int{1099, 0, -1, 6201} {
		// WHEN
		result, err := controller.RunManual(context.Background(), speed)

		// THEN
		var invalid *InvalidFanSpeedError
		assert.ErrorAs(t, err, &invalid, "speed: %d", speed)
		assert.Equal(t, ModeManual, invalid.Mode)
		assert.False(t, result.Applied)
	}
	assert.Empty(t, fan.Applied)
}

func TestRunManual_Bounds(t *testing.T) {
	// GIVEN
	fan := &testingutils.MockFan{ID: "F1Mx"}
	controller := createController(t, speeds.PolicyLenient, fan)

	// WHEN
	_, errMin := controller.RunManual(context.Background(), 1100)
	_, errMax := controller.RunManual(context.Background(), 6200)

	// THEN
	assert.NoError(t, errMin)
	assert.NoError(t, errMax)
	assert.Equal(t, []string{"1130", "60e0"}, fan.Applied)
}

func TestSample_AllSensorsFail(t *testing.T) {
	// GIVEN
	fan := &testingutils.MockFan{ID: "F1Mx"}
	controller := createController(t, speeds.PolicyLenient, fan,
		testingutils.MockSensor{ID: "disk0", Err: errors.New("timeout")},
		testingutils.MockSensor{ID: "disk1", Err: errors.New("key not found")},
	)

	// WHEN
	sample := controller.Sample(context.Background())

	// THEN
	assert.False(t, sample.Available)
	var unavailable *TemperatureUnavailableError
	assert.ErrorAs(t, sample.Err, &unavailable)
	assert.Equal(t, []string{"disk0", "disk1"}, unavailable.SensorIds)
	assert.ErrorContains(t, sample.Err, "timeout")
	assert.ErrorContains(t, sample.Err, "key not found")
}
