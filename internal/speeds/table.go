package speeds

import (
	"cmp"
	"errors"
	"fmt"
	"github.com/markusressel/smartfan/internal/util"
	"golang.org/x/exp/slices"
)

// Entry maps a temperature threshold (°C) to a fan speed (RPM)
type Entry struct {
	Threshold int `json:"threshold"`
	Speed     int `json:"speed"`
}

// SpeedTable is an immutable list of entries, sorted ascending by threshold.
type SpeedTable struct {
	entries []Entry
}

func NewSpeedTable(entries []Entry) (*SpeedTable, error) {
	if len(entries) <= 0 {
		return nil, errors.New("speed table is empty")
	}

	sorted := slices.Clone(entries)
	slices.SortFunc(sorted, func(a, b Entry) int {
		return cmp.Compare(a.Threshold, b.Threshold)
	})

	for i, entry := range sorted {
		if entry.Speed < 0 {
			return nil, fmt.Errorf("speed table: negative speed %d for threshold %d°C", entry.Speed, entry.Threshold)
		}
		if i > 0 && sorted[i-1].Threshold == entry.Threshold {
			return nil, fmt.Errorf("speed table: duplicate threshold %d°C", entry.Threshold)
		}
	}

	return &SpeedTable{entries: sorted}, nil
}

// NewSpeedTableFromMap creates a SpeedTable from a threshold -> speed map
func NewSpeedTableFromMap(steps map[int]int) (*SpeedTable, error) {
	entries := make([]Entry, 0, len(steps))
	for _, threshold := range util.SortedKeys(steps) {
		entries = append(entries, Entry{Threshold: threshold, Speed: steps[threshold]})
	}
	return NewSpeedTable(entries)
}

// Entries returns a copy of all entries in ascending threshold order
func (t *SpeedTable) Entries() []Entry {
	return slices.Clone(t.entries)
}

func (t *SpeedTable) Len() int {
	return len(t.entries)
}

// MinSpeed returns the speed of the lowest threshold entry.
func (t *SpeedTable) MinSpeed() int {
	return t.entries[0].Speed
}

// MaxTableSpeed returns the speed of the highest threshold entry.
func (t *SpeedTable) MaxTableSpeed() int {
	return t.entries[len(t.entries)-1].Speed
}

func (t *SpeedTable) MinThreshold() int {
	return t.entries[0].Threshold
}

func (t *SpeedTable) MaxThreshold() int {
	return t.entries[len(t.entries)-1].Threshold
}
