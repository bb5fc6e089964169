package cmd

import (
	"fmt"
	"github.com/markusressel/smartfan/cmd/global"
	"github.com/markusressel/smartfan/internal"
	"github.com/spf13/cobra"
	"strconv"
)

var setCmd = &cobra.Command{
	Use:   "set <speed>",
	Short: "Set the fan to the given decimal speed (RPM), bypassing the temperature",
	Long: `Manual override of the fan speed.
The speed must lie between the speed of the lowest temperature threshold
and the maximum allowed speed.`,
	Example: "smartfan set 3000",
	Args:    global.UsageArgs(cobra.ExactArgs(1)),
	RunE: func(cmd *cobra.Command, args []string) error {
		speed, err := strconv.Atoi(args[0])
		if err != nil {
			return &global.UsageError{Err: fmt.Errorf("invalid fan speed '%s', expected a decimal number", args[0])}
		}

		if err := loadAndValidateConfig(); err != nil {
			return err
		}

		return internal.RunOnce(internal.RunOptions{
			Manual: true,
			Speed:  speed,
		})
	},
}

func init() {
	rootCmd.AddCommand(setCmd)
}
