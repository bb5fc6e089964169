package cmd

import (
	"github.com/markusressel/smartfan/cmd/global"
	"github.com/markusressel/smartfan/internal/ui"
	"github.com/spf13/cobra"
)

// Version is overridden at build time using -ldflags "-X github.com/markusressel/smartfan/cmd.Version=..."
var Version = "0.1.0"

var versionCmd = &cobra.Command{
	Use:   "version",
	Short: "Print the version number of smartfan",
	Long:  `All software has versions. This is smartfan's`,
	Args:  global.UsageArgs(cobra.NoArgs),
	Run: func(cmd *cobra.Command, args []string) {
		ui.Printfln("%s", Version)
	},
}

func init() {
	rootCmd.AddCommand(versionCmd)
}
