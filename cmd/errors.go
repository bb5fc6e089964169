package cmd

import (
	"errors"
	"github.com/markusressel/smartfan/cmd/global"
	"github.com/markusressel/smartfan/internal"
	"github.com/spf13/cobra"
)

const (
	exitCodeFailure = 1
	exitCodeUsage   = 2
)

// exitCode maps the error returned by a command to the exit code of the process
func exitCode(err error) int {
	if err == nil {
		return 0
	}
	var usageErr *global.UsageError
	if errors.As(err, &usageErr) || internal.IsUsageError(err) {
		return exitCodeUsage
	}
	return exitCodeFailure
}

func init() {
	rootCmd.SetFlagErrorFunc(func(cmd *cobra.Command, err error) error {
		return &global.UsageError{Err: err}
	})
}
