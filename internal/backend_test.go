package internal

import (
	"context"
	"errors"
	"github.com/markusressel/smartfan/internal/configuration"
	"github.com/markusressel/smartfan/internal/controller"
	"github.com/markusressel/smartfan/internal/persistence"
	"github.com/markusressel/smartfan/internal/sensors"
	"github.com/markusressel/smartfan/internal/speeds"
	"github.com/markusressel/smartfan/internal/testingutils"
	"github.com/stretchr/testify/assert"
	"path/filepath"
	"testing"
	"time"
)

type mockController struct {
	result controller.Result
	err    error

	manualSpeed *int
}

func (c *mockController) Sample(ctx context.Context) controller.Sample {
	return controller.Sample{}
}

func (c *mockController) RunAutomatic(ctx context.Context) (controller.Result, error) {
	return c.result, c.err
}

func (c *mockController) RunManual(ctx context.Context, speed int) (controller.Result, error) {
	c.manualSpeed = &speed
	return c.result, c.err
}

func TestRunController_Automatic(t *testing.T) {
	// GIVEN
	expected := controller.Result{Mode: controller.ModeAutomatic, Speed: 1500, EncodedSpeed: "1770", Applied: true}
	c := &mockController{result: expected}

	// WHEN
	result, err := runController(context.Background(), c, RunOptions{})

	// THEN
	assert.NoError(t, err)
	assert.Equal(t, expected, result)
	assert.Nil(t, c.manualSpeed)
}

func TestRunController_Manual(t *testing.T) {
	// GIVEN
	c := &mockController{result: controller.Result{Mode: controller.ModeManual, Speed: 3000}}

	// WHEN
	_, err := runController(context.Background(), c, RunOptions{Manual: true, Speed: 3000})

	// THEN
	assert.NoError(t, err)
	assert.Equal(t, 3000, *c.manualSpeed)
}

func TestRunController_Error(t *testing.T) {
	// GIVEN
	applyErr := &controller.ApplyFailedError{FanId: "F1Mx", EncodedSpeed: "1770", Err: errors.New("exit status 1")}
	c := &mockController{err: applyErr}

	// WHEN
	_, err := runController(context.Background(), c, RunOptions{})

	// THEN
	assert.ErrorIs(t, err, applyErr)
}

func TestNewRunRecord(t *testing.T) {
	// GIVEN
	now := time.Unix(1700000000, 0)
	result := controller.Result{
		Time:         now,
		Mode:         controller.ModeAutomatic,
		Sample:       &controller.Sample{Available: true, Temperature: 34, SensorId: "disk0"},
		Speed:        1500,
		EncodedSpeed: "1770",
		Applied:      true,
	}

	// WHEN
	record := NewRunRecord(result, nil)

	// THEN
	assert.Equal(t, now, record.Time)
	assert.Equal(t, "automatic", record.Mode)
	assert.Equal(t, 34, *record.Temperature)
	assert.Equal(t, "disk0", record.SensorId)
	assert.Equal(t, "1770", record.EncodedSpeed)
	assert.True(t, record.Applied)
	assert.Empty(t, record.Error)
}

func TestNewRunRecord_Fallback(t *testing.T) {
	// GIVEN
	result := controller.Result{
		Time:           time.Unix(1700000000, 0),
		Mode:           controller.ModeAutomatic,
		Sample:         &controller.Sample{Err: errors.New("key not found")},
		Speed:          6200,
		EncodedSpeed:   "60e0",
		Fallback:       true,
		FallbackReason: "key not found",
	}

	// WHEN
	record := NewRunRecord(result, errors.New("exit status 1"))

	// THEN
	assert.Nil(t, record.Temperature)
	assert.True(t, record.Fallback)
	assert.Equal(t, "exit status 1", record.Error)
}

func TestStoreResult_History(t *testing.T) {
	// GIVEN
	dbPath := filepath.Join(t.TempDir(), "smartfan.db")
	config := configuration.Configuration{
		DbPath:  dbPath,
		History: configuration.HistoryConfig{Enabled: true, Retain: 10},
	}
	temperature := 34
	record := persistence.RunRecord{Time: time.Unix(1700000000, 0), Mode: "automatic", Temperature: &temperature, Speed: 1500}

	// WHEN
	storeResult(config, "F1Mx", record)

	// THEN
	runs, err := persistence.NewPersistence(dbPath).LoadRuns(0)
	assert.NoError(t, err)
	assert.Len(t, runs, 1)
	assert.Equal(t, 1500, runs[0].Speed)
}

func TestInitializeObjects(t *testing.T) {
	// GIVEN
	config := configuration.Configuration{
		CommandTimeout: time.Second,
		MaxSpeed:       6200,
		FallbackSpeed:  6200,
		Policy:         "lenient",
		Speeds:         configuration.DefaultSpeeds(),
		Sensors:        []configuration.SensorConfig{configuration.DefaultSensorConfig()},
		Fan: configuration.FanConfig{
			ID:   configuration.DefaultFanId,
			Exec: configuration.DefaultFanExec,
			Args: configuration.DefaultFanArgs,
		},
	}

	// WHEN
	fanController, fan, err := InitializeObjects(config)

	// THEN
	assert.NoError(t, err)
	assert.NotNil(t, fanController)
	assert.Equal(t, "F1Mx", fan.GetId())
	_, exists := sensors.SensorMap.Get("disk0")
	assert.True(t, exists)
}

func TestIsUsageError(t *testing.T) {
	assert.True(t, IsUsageError(&controller.InvalidFanSpeedError{Mode: controller.ModeManual, Speed: 10}))
	assert.False(t, IsUsageError(&controller.InvalidFanSpeedError{Mode: controller.ModeAutomatic, Speed: 10}))
	assert.False(t, IsUsageError(errors.New("other")))
}

func TestRunController_WithFanController(t *testing.T) {
	// GIVEN
	settings := controller.Settings{
		Table:         testingutils.CreateSpeedTable(t, testingutils.ShortTable),
		Policy:        speeds.PolicyLenient,
		MaxSpeed:      6200,
		FallbackSpeed: 6200,
	}
	fan := &testingutils.MockFan{ID: "F1Mx"}
	fanController := controller.NewFanController(settings, []sensors.Sensor{testingutils.MockSensor{ID: "disk0", Value: 34}}, fan)

	// WHEN
	result, err := runController(context.Background(), fanController, RunOptions{})

	// THEN
	assert.NoError(t, err)
	assert.Equal(t, 1500, result.Speed)
	assert.Equal(t, []string{"1770"}, fan.Applied)
	assert.Equal(t, "Drive temperature is 34. Setting fan speed to 1500 (1770)", result.String())
}
