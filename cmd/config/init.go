package config

import (
	"fmt"
	"github.com/markusressel/smartfan/cmd/global"
	"github.com/markusressel/smartfan/internal/configuration"
	"github.com/markusressel/smartfan/internal/ui"
	"github.com/markusressel/smartfan/internal/util"
	"github.com/spf13/cobra"
	"gopkg.in/yaml.v3"
	"os"
)

var force bool

var initCmd = &cobra.Command{
	Use:     "init <path>",
	Short:   "Writes the default configuration to the given file",
	Long: `Writes the default configuration to the given file.

By default (checkPermissions: true) the configured executables and the config
file have to be owned by root and must not be writable by others. smartctl
installed by Homebrew is owned by the installing user, set checkPermissions
to false (or SMARTFAN_CHECKPERMISSIONS=false) in that case.`,
	Example: "smartfan config init /etc/smartfan/smartfan.yaml",
	Args:    global.UsageArgs(cobra.ExactArgs(1)),
	RunE: func(cmd *cobra.Command, args []string) error {
		path := args[0]
		if err := writeDefaultConfig(path, force); err != nil {
			return err
		}
		ui.Success("Default configuration written to %s", path)
		return nil
	},
}

func writeDefaultConfig(path string, overwrite bool) error {
	if _, err := os.Stat(path); err == nil && !overwrite {
		return fmt.Errorf("%s already exists, use --force to overwrite it", path)
	}

	data, err := yaml.Marshal(configuration.DefaultConfig())
	if err != nil {
		return err
	}
	return util.WriteFileAtomic(path, data)
}

func init() {
	initCmd.Flags().BoolVarP(&force, "force", "f", false, "Overwrite an existing file")
	Command.AddCommand(initCmd)
}
