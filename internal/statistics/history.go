package statistics

import (
	"github.com/asecurityteam/rolling"
	"github.com/markusressel/smartfan/internal/persistence"
)

// TemperatureSummary aggregates the sampled temperatures of recent runs
type TemperatureSummary struct {
	Runs      int
	Samples   int
	Fallbacks int
	Avg       float64
	Max       float64
	Min       float64
}

// SummarizeTemperatures aggregates the temperatures of the newest windowSize records
// (records are expected newest first). Runs without a temperature do not contribute a sample.
func SummarizeTemperatures(records []persistence.RunRecord, windowSize int) TemperatureSummary {
	summary := TemperatureSummary{}
	if windowSize <= 0 {
		return summary
	}
	if len(records) > windowSize {
		records = records[:windowSize]
	}
	summary.Runs = len(records)

	var temperatures []float64
	for _, record := range records {
		if record.Fallback {
			summary.Fallbacks++
		}
		if record.Temperature != nil {
			temperatures = append(temperatures, float64(*record.Temperature))
		}
	}
	if len(temperatures) <= 0 {
		return summary
	}

	// every bucket of a new window starts with a zero point,
	// so the window is sized to exactly the number of samples
	window := rolling.NewPointPolicy(rolling.NewWindow(len(temperatures)))
	for _, temperature := range temperatures {
		window.Append(temperature)
	}

	summary.Samples = int(window.Reduce(rolling.Count))
	summary.Avg = window.Reduce(rolling.Avg)
	summary.Max = window.Reduce(rolling.Max)
	summary.Min = window.Reduce(rolling.Min)
	return summary
}
