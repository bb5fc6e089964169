package cmd

import (
	"fmt"
	"github.com/markusressel/smartfan/cmd/global"
	"github.com/markusressel/smartfan/internal/configuration"
	"github.com/markusressel/smartfan/internal/persistence"
	"github.com/markusressel/smartfan/internal/statistics"
	"github.com/markusressel/smartfan/internal/ui"
	"github.com/spf13/cobra"
	"strconv"
	"time"
)

var (
	historyLimit int
	historyClear bool
)

var historyCmd = &cobra.Command{
	Use:   "history",
	Short: "Print the most recent runs and their temperature statistics",
	Args:  global.UsageArgs(cobra.NoArgs),
	RunE: func(cmd *cobra.Command, args []string) error {
		if historyLimit <= 0 {
			return &global.UsageError{Err: fmt.Errorf("invalid number of runs: %d", historyLimit)}
		}
		if err := loadAndValidateConfig(); err != nil {
			return err
		}

		p := persistence.NewPersistence(configuration.CurrentConfig.DbPath)
		if historyClear {
			if err := p.DeleteRuns(); err != nil {
				return err
			}
			ui.Success("Run history cleared")
			return nil
		}

		if !configuration.CurrentConfig.History.Enabled {
			ui.Warning("Run history is disabled in the configuration")
		}

		records, err := p.LoadRuns(historyLimit)
		if err != nil {
			return err
		}
		if len(records) <= 0 {
			ui.Printfln("No runs recorded yet...")
			return nil
		}

		return printRuns(records, historyLimit)
	},
}

// printRuns prints the given records (newest first) and a temperature summary of the newest limit records
func printRuns(records []persistence.RunRecord, limit int) error {
	rows := make([][]string, 0, len(records))
	for _, record := range records {
		rows = append(rows, historyRow(record))
	}
	tableString, err := renderTable(
		[]string{"Time", "Mode", "Sensor", "Temperature", "Speed", "Encoded", "Fallback", "Applied", "Error"},
		rows,
	)
	if err != nil {
		return err
	}
	ui.Printfln("%s", tableString)

	summary := statistics.SummarizeTemperatures(records, limit)
	if summary.Samples <= 0 {
		ui.Printfln("No temperature samples in the last %d runs", summary.Runs)
		return nil
	}
	ui.Printfln("Last %d runs: avg %.1f°C, min %.0f°C, max %.0f°C, %d fallback(s)",
		summary.Runs, summary.Avg, summary.Min, summary.Max, summary.Fallbacks)
	return nil
}

func historyRow(record persistence.RunRecord) []string {
	temperature := "-"
	if record.Temperature != nil {
		temperature = fmt.Sprintf("%d°C", *record.Temperature)
	}
	sensorId := record.SensorId
	if len(sensorId) <= 0 {
		sensorId = "-"
	}
	fallback := "no"
	if record.Fallback {
		fallback = "yes"
		if len(record.FallbackReason) > 0 {
			fallback = fmt.Sprintf("yes (%s)", record.FallbackReason)
		}
	}
	return []string{
		record.Time.Local().Format(time.DateTime),
		record.Mode,
		sensorId,
		temperature,
		strconv.Itoa(record.Speed),
		record.EncodedSpeed,
		fallback,
		strconv.FormatBool(record.Applied),
		record.Error,
	}
}

func init() {
	historyCmd.Flags().IntVarP(&historyLimit, "number", "n", 20, "Number of runs to show")
	historyCmd.Flags().BoolVarP(&historyClear, "clear", "", false, "Delete the complete run history")
	rootCmd.AddCommand(historyCmd)
}
