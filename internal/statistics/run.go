package statistics

import (
	"github.com/markusressel/smartfan/internal/persistence"
	"github.com/prometheus/client_golang/prometheus"
)

const runSubsystem = "run"

// RunCollector exposes the outcome of a single smartfan run
type RunCollector struct {
	fanId  string
	record persistence.RunRecord

	temperature *prometheus.Desc
	speed       *prometheus.Desc
	fallback    *prometheus.Desc
	applied     *prometheus.Desc
	timestamp   *prometheus.Desc
}

func NewRunCollector(fanId string, record persistence.RunRecord) *RunCollector {
	return &RunCollector{
		fanId:  fanId,
		record: record,
		temperature: prometheus.NewDesc(prometheus.BuildFQName(namespace, runSubsystem, "temperature_celsius"),
			"Drive temperature sampled during the last run",
			[]string{"sensor"}, nil,
		),
		speed: prometheus.NewDesc(prometheus.BuildFQName(namespace, runSubsystem, "fan_speed_rpm"),
			"Fan speed set during the last run",
			[]string{"fan", "mode"}, nil,
		),
		fallback: prometheus.NewDesc(prometheus.BuildFQName(namespace, runSubsystem, "fallback"),
			"1 if the fallback speed was used during the last run",
			[]string{"fan"}, nil,
		),
		applied: prometheus.NewDesc(prometheus.BuildFQName(namespace, runSubsystem, "applied"),
			"1 if the fan speed was applied successfully during the last run",
			[]string{"fan"}, nil,
		),
		timestamp: prometheus.NewDesc(prometheus.BuildFQName(namespace, runSubsystem, "timestamp_seconds"),
			"Unix time of the last run",
			nil, nil,
		),
	}
}

func (collector *RunCollector) Describe(ch chan<- *prometheus.Desc) {
	ch <- collector.temperature
	ch <- collector.speed
	ch <- collector.fallback
	ch <- collector.applied
	ch <- collector.timestamp
}

// Collect implements required collect function for all prometheus collectors
func (collector *RunCollector) Collect(ch chan<- prometheus.Metric) {
	record := collector.record
	if record.Temperature != nil {
		ch <- prometheus.MustNewConstMetric(collector.temperature, prometheus.GaugeValue, float64(*record.Temperature), record.SensorId)
	}
	ch <- prometheus.MustNewConstMetric(collector.speed, prometheus.GaugeValue, float64(record.Speed), collector.fanId, record.Mode)
	ch <- prometheus.MustNewConstMetric(collector.fallback, prometheus.GaugeValue, boolToFloat(record.Fallback), collector.fanId)
	ch <- prometheus.MustNewConstMetric(collector.applied, prometheus.GaugeValue, boolToFloat(record.Applied), collector.fanId)
	ch <- prometheus.MustNewConstMetric(collector.timestamp, prometheus.GaugeValue, float64(record.Time.Unix()))
}

func boolToFloat(b bool) float64 {
	if b {
		return 1
	}
	return 0
}
