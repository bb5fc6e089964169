package cmd

import (
	"fmt"
	"github.com/guptarohit/asciigraph"
	"github.com/markusressel/smartfan/cmd/global"
	"github.com/markusressel/smartfan/internal/configuration"
	"github.com/markusressel/smartfan/internal/controller"
	"github.com/markusressel/smartfan/internal/speeds"
	"github.com/markusressel/smartfan/internal/ui"
	"github.com/spf13/cobra"
	"strconv"
)

// number of degrees shown below the lowest and above the highest threshold
const graphMargin = 3

var printCmd = &cobra.Command{
	Use:   "print",
	Short: "Print the fan speed table to console",
	Args:  global.UsageArgs(cobra.NoArgs),
	RunE: func(cmd *cobra.Command, args []string) error {
		if err := loadAndValidateConfig(); err != nil {
			return err
		}

		settings, err := controller.NewSettings(configuration.CurrentConfig)
		if err != nil {
			return err
		}

		ui.Printfln("FAN SPEED SETTINGS:")
		rows := make([][]string, 0, settings.Table.Len())
		for _, entry := range settings.Table.Entries() {
			rows = append(rows, []string{
				fmt.Sprintf("%d°C", entry.Threshold),
				strconv.Itoa(entry.Speed),
				speeds.Encode(entry.Speed),
			})
		}
		tableString, err := renderTable([]string{"Threshold", "Speed (RPM)", "Encoded"}, rows)
		if err != nil {
			return err
		}
		ui.Printfln("%s", tableString)

		ui.Printfln("Policy: %s, max speed: %d, fallback speed: %d (%s)",
			settings.Policy, settings.MaxSpeed, settings.FallbackSpeed, speeds.Encode(settings.FallbackSpeed))
		ui.Printfln("")

		values := speedCurve(settings)
		caption := fmt.Sprintf("RPM / °C (%d..%d)", settings.Table.MinThreshold()-graphMargin, settings.Table.MaxThreshold()+graphMargin)
		graph := asciigraph.Plot(values, asciigraph.Height(15), asciigraph.Width(100), asciigraph.Caption(caption))
		ui.Printfln("%s", graph)
		return nil
	},
}

// speedCurve returns the speed that an automatic run would apply for each
// temperature around the configured thresholds
func speedCurve(settings controller.Settings) []float64 {
	resolver := speeds.NewResolver(settings.Table, settings.Policy)
	from := settings.Table.MinThreshold() - graphMargin
	to := settings.Table.MaxThreshold() + graphMargin

	values := make([]float64, 0, to-from+1)
	for temperature := from; temperature <= to; temperature++ {
		speed, err := resolver.Resolve(temperature)
		if err != nil {
			speed = settings.FallbackSpeed
		}
		values = append(values, float64(speed))
	}
	return values
}

func init() {
	rootCmd.AddCommand(printCmd)
}
