package statistics

import (
	"github.com/prometheus/client_golang/prometheus"
	"os"
	"path/filepath"
)

const (
	namespace = "smartfan"
)

// WriteTextfile writes all metrics of the given collectors to path,
// in the format of the node_exporter textfile collector.
func WriteTextfile(path string, collectors ...prometheus.Collector) error {
	registry := prometheus.NewRegistry()
	for _, collector := range collectors {
		if err := registry.Register(collector); err != nil {
			return err
		}
	}

	if err := os.MkdirAll(filepath.Dir(path), 0755); err != nil {
		return err
	}
	return prometheus.WriteToTextfile(path, registry)
}
