package config

import (
	"github.com/markusressel/smartfan/cmd/global"
	"github.com/markusressel/smartfan/internal/configuration"
	"github.com/markusressel/smartfan/internal/ui"
	"github.com/spf13/cobra"
	"gopkg.in/yaml.v3"
)

var showCmd = &cobra.Command{
	Use:   "show",
	Short: "Prints the effective configuration (including defaults) as YAML",
	Long:  ``,
	Args:  global.UsageArgs(cobra.NoArgs),
	RunE: func(cmd *cobra.Command, args []string) error {
		loadConfig()

		data, err := yaml.Marshal(configuration.CurrentConfig)
		if err != nil {
			return err
		}
		ui.Printf("%s", data)
		return nil
	},
}

func init() {
	Command.AddCommand(showCmd)
}
