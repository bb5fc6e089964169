package sensors

import (
	"context"
	"fmt"
	"github.com/markusressel/smartfan/internal/configuration"
	cmap "github.com/orcaman/concurrent-map/v2"
	"time"
)

var (
	SensorMap = cmap.New[Sensor]()
)

type Sensor interface {
	GetId() string

	GetConfig() configuration.SensorConfig

	// GetValue samples the current drive temperature in °C
	GetValue(ctx context.Context) (int, error)
}

func NewSensor(config configuration.SensorConfig, timeout time.Duration, checkPermissions bool) (Sensor, error) {
	if len(config.Exec) > 0 {
		return &CmdSensor{
			Config:           config,
			Timeout:          timeout,
			CheckPermissions: checkPermissions,
		}, nil
	}

	return nil, fmt.Errorf("no matching sensor type for sensor: %s", config.ID)
}
