package cmd

import (
	"fmt"
	"github.com/markusressel/smartfan/cmd/config"
	"github.com/markusressel/smartfan/cmd/global"
	"github.com/markusressel/smartfan/cmd/sensor"
	"github.com/markusressel/smartfan/internal"
	"github.com/markusressel/smartfan/internal/configuration"
	"github.com/markusressel/smartfan/internal/ui"
	"github.com/pterm/pterm"
	"github.com/spf13/cobra"
	"os"
)

// rootCmd represents the base command when called without any subcommands
var rootCmd = &cobra.Command{
	Use:   "smartfan",
	Short: "Sets the fan speed based on the temperature of a drive.",
	Long: `smartfan reads the temperature of a drive using smartctl
and sets the speed of a fan using smc accordingly.
Each invocation performs exactly one sample-and-set action.`,
	Args:          global.UsageArgs(cobra.NoArgs),
	SilenceUsage:  true,
	SilenceErrors: true,

	PersistentPreRun: func(cmd *cobra.Command, args []string) {
		setupUi()
	},
	// this is the default command to run when no subcommand is specified
	RunE: func(cmd *cobra.Command, args []string) error {
		printHeader()

		if err := loadAndValidateConfig(); err != nil {
			return err
		}

		return internal.RunOnce(internal.RunOptions{})
	},
}

func init() {
	rootCmd.PersistentFlags().StringVarP(&global.CfgFile, "config", "c", "", "config file (default is smartfan.yaml in ., $HOME or /etc/smartfan/)")
	rootCmd.PersistentFlags().BoolVarP(&global.NoColor, "no-color", "", false, "Disable all terminal output coloration")
	rootCmd.PersistentFlags().BoolVarP(&global.NoStyle, "no-style", "", false, "Disable all terminal output styling")
	rootCmd.PersistentFlags().BoolVarP(&global.Verbose, "verbose", "v", false, "More verbose output")

	rootCmd.AddCommand(config.Command)
	rootCmd.AddCommand(sensor.Command)
}

func setupUi() {
	ui.SetDebugEnabled(global.Verbose)

	if global.NoColor {
		pterm.DisableColor()
	}
	if global.NoStyle {
		pterm.DisableStyling()
	}
}

// loadAndValidateConfig reads the config file (if any) into configuration.CurrentConfig and validates it
func loadAndValidateConfig() error {
	configPath := configuration.DetectAndReadConfigFile()
	if len(configPath) > 0 {
		ui.Info("Using configuration file at: %s", configPath)
	}
	configuration.LoadConfig()
	err := configuration.Validate(configPath)
	if err != nil {
		ui.NotifyError("Config Validation Error", err.Error())
		return fmt.Errorf("config validation failed: %w", err)
	}
	return nil
}

// Print a large text with the LetterStyle from the standard theme.
func printHeader() {
	if !global.Verbose {
		return
	}
	err := pterm.DefaultBigText.WithLetters(
		pterm.NewLettersFromStringWithStyle("smart", pterm.NewStyle(pterm.FgLightBlue)),
		pterm.NewLettersFromStringWithStyle("fan", pterm.NewStyle(pterm.FgWhite)),
	).Render()
	if err != nil {
		fmt.Println("smartfan")
	}
}

// Execute adds all child commands to the root command and sets flags appropriately.
// This is called by main.main(). It only needs to happen once to the rootCmd.
func Execute() {
	cobra.OnInitialize(func() {
		configuration.InitConfig(global.CfgFile)
	})

	cmd, err := rootCmd.ExecuteC()
	switch exitCode(err) {
	case 0:
		return
	case exitCodeUsage:
		fmt.Fprintf(os.Stderr, "Error: %v\n%s", err, cmd.UsageString())
		os.Exit(exitCodeUsage)
	default:
		fmt.Fprintln(os.Stderr, err)
		os.Exit(exitCodeFailure)
	}
}
