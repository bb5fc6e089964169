package config

import (
	"github.com/markusressel/smartfan/internal/configuration"
	"github.com/markusressel/smartfan/internal/ui"
	"github.com/spf13/cobra"
)

var Command = &cobra.Command{
	Use:   "config",
	Short: "Configuration related commands",
	Long:  ``,
}

// loadConfig reads the config file given by the root command (-c) or the default search path
func loadConfig() string {
	configPath := configuration.DetectAndReadConfigFile()
	if len(configPath) > 0 {
		ui.Info("Using configuration file at: %s", configPath)
	}
	configuration.LoadConfig()
	return configPath
}
