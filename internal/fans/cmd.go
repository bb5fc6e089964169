package fans

import (
	"context"
	"fmt"
	"github.com/markusressel/smartfan/internal/configuration"
	"github.com/markusressel/smartfan/internal/util"
	"time"
)

// CmdFan sets the fan speed using a command line utility like "smc -k F1Mx -w <hex>"
type CmdFan struct {
	Config  configuration.FanConfig `json:"config"`
	Timeout time.Duration           `json:"timeout"`

	// CheckPermissions runs the executable only if it passes util.CheckFilePermissionsForExecution
	CheckPermissions bool `json:"checkPermissions"`
}

func (fan *CmdFan) GetId() string {
	return fan.Config.ID
}

func (fan *CmdFan) GetConfig() configuration.FanConfig {
	return fan.Config
}

// Args returns the full argument list for the given encoded speed
func (fan *CmdFan) Args(encodedSpeed string) []string {
	args := make([]string, 0, len(fan.Config.Args)+1)
	args = append(args, fan.Config.Args...)
	return append(args, encodedSpeed)
}

func (fan *CmdFan) SetSpeed(ctx context.Context, encodedSpeed string) error {
	execute := util.CmdExecution
	if fan.CheckPermissions {
		execute = util.SafeCmdExecution
	}
	_, err := execute(ctx, fan.Config.Exec, fan.Args(encodedSpeed), fan.Timeout)
	if err != nil {
		return fmt.Errorf("fan %s: %w", fan.GetId(), err)
	}
	return nil
}
