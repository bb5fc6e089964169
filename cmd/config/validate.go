package config

import (
	"fmt"
	"github.com/markusressel/smartfan/cmd/global"
	"github.com/markusressel/smartfan/internal/configuration"
	"github.com/markusressel/smartfan/internal/ui"
	"github.com/spf13/cobra"
)

var validateCmd = &cobra.Command{
	Use:   "validate",
	Short: "Validates the current configuration",
	Long:  ``,
	Args:  global.UsageArgs(cobra.NoArgs),
	RunE: func(cmd *cobra.Command, args []string) error {
		configPath := loadConfig()

		if err := configuration.Validate(configPath); err != nil {
			return fmt.Errorf("validation failed: %w", err)
		}

		ui.Success("Config looks good! :)")
		return nil
	},
}

func init() {
	Command.AddCommand(validateCmd)
}
