package controller

import (
	"fmt"
	"strconv"
	"time"
)

// TempNotFound is reported in place of the temperature when sampling failed
const TempNotFound = "TEMP_NOT_FOUND"

type Mode string

const (
	ModeAutomatic Mode = "automatic"
	ModeManual    Mode = "manual"
)

// Sample is the outcome of reading all configured sensors.
// Either Available is set and Temperature holds the hottest reading, or Err explains why there is none.
type Sample struct {
	Available   bool
	Temperature int
	SensorId    string
	Err         error
}

type Result struct {
	Time time.Time
	Mode Mode
	// Sample is nil for manual runs
	Sample       *Sample
	Speed        int
	EncodedSpeed string
	// Fallback is set when the safe fallback speed was applied instead of a resolved one
	Fallback       bool
	FallbackReason string
	Applied        bool
}

func (r Result) TemperatureString() string {
	if r.Sample == nil || !r.Sample.Available {
		return TempNotFound
	}
	return strconv.Itoa(r.Sample.Temperature)
}

func (r Result) String() string {
	if r.Mode == ModeManual {
		return fmt.Sprintf("Manual override. Setting fan speed to %d (%s)", r.Speed, r.EncodedSpeed)
	}
	return fmt.Sprintf("Drive temperature is %s. Setting fan speed to %d (%s)", r.TemperatureString(), r.Speed, r.EncodedSpeed)
}
