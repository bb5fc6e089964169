package testingutils

import (
	"context"
	"github.com/markusressel/smartfan/internal/configuration"
	"github.com/markusressel/smartfan/internal/speeds"
	"github.com/stretchr/testify/assert"
	"testing"
)

var (
	// ShortTable is a small excerpt of the default speed table
	ShortTable = map[int]int{
		31: 1100,
		33: 1200,
		35: 1500,
	}
)

// CreateSpeedTable builds a speed table from the given steps and fails the test on error
func CreateSpeedTable(t *testing.T, steps map[int]int) *speeds.SpeedTable {
	table, err := speeds.NewSpeedTableFromMap(steps)
	assert.NoError(t, err)
	return table
}

type MockSensor struct {
	ID    string
	Value int
	Err   error
}

func (sensor MockSensor) GetId() string {
	return sensor.ID
}

func (sensor MockSensor) GetConfig() configuration.SensorConfig {
	return configuration.SensorConfig{ID: sensor.ID}
}

func (sensor MockSensor) GetValue(ctx context.Context) (int, error) {
	return sensor.Value, sensor.Err
}

// MockFan records every encoded speed it was set to
type MockFan struct {
	ID      string
	Err     error
	Applied []string
}

func (fan *MockFan) GetId() string {
	return fan.ID
}

func (fan *MockFan) GetConfig() configuration.FanConfig {
	return configuration.FanConfig{ID: fan.ID}
}

func (fan *MockFan) SetSpeed(ctx context.Context, encodedSpeed string) error {
	if fan.Err != nil {
		return fan.Err
	}
	fan.Applied = append(fan.Applied, encodedSpeed)
	return nil
}
