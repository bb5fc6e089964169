package fans

import (
	"context"
	"fmt"
	"github.com/markusressel/smartfan/internal/configuration"
	"time"
)

type Fan interface {
	GetId() string

	GetConfig() configuration.FanConfig

	// SetSpeed applies the given encoded speed (see speeds.Encode)
	SetSpeed(ctx context.Context, encodedSpeed string) error
}

func NewFan(config configuration.FanConfig, timeout time.Duration, checkPermissions bool) (Fan, error) {
	if len(config.Exec) > 0 {
		return &CmdFan{
			Config:           config,
			Timeout:          timeout,
			CheckPermissions: checkPermissions,
		}, nil
	}

	return nil, fmt.Errorf("no matching fan type for fan: %s", config.ID)
}
