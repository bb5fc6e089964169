package sensors

import (
	"context"
	"fmt"
	"github.com/markusressel/smartfan/internal/configuration"
	"github.com/markusressel/smartfan/internal/ui"
	"github.com/markusressel/smartfan/internal/util"
	"time"
)

// CmdSensor reads the drive temperature from the attribute table printed by a diagnostic tool like "smartctl -A"
type CmdSensor struct {
	Config  configuration.SensorConfig `json:"config"`
	Timeout time.Duration              `json:"timeout"`

	// CheckPermissions runs the executable only if it passes util.CheckFilePermissionsForExecution
	CheckPermissions bool `json:"checkPermissions"`
}

func (sensor *CmdSensor) GetId() string {
	return sensor.Config.ID
}

func (sensor *CmdSensor) GetConfig() configuration.SensorConfig {
	return sensor.Config
}

func (sensor *CmdSensor) GetValue(ctx context.Context) (int, error) {
	exec := sensor.Config.Exec
	args := sensor.Config.Args
	execute := util.CmdExecution
	if sensor.CheckPermissions {
		execute = util.SafeCmdExecution
	}
	result, err := execute(ctx, exec, args, sensor.Timeout)
	if err != nil {
		return 0, fmt.Errorf("sensor %s: %w", sensor.GetId(), err)
	}

	temp, err := ParseAttributeTable(result, sensor.Config.Key, sensor.Config.GetColumn())
	if err != nil {
		ui.Warning("sensor %s: Unable to read temperature from command output: %s", sensor.GetId(), exec)
		return 0, fmt.Errorf("sensor %s: %w", sensor.GetId(), err)
	}

	ui.Debug("sensor %s: %d°C", sensor.GetId(), temp)
	return temp, nil
}
