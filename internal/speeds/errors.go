package speeds

import "fmt"

// FormatError is returned when an encoded speed is not a valid hexadecimal string.
type FormatError struct {
	Value string
	Err   error
}

func (e *FormatError) Error() string {
	return fmt.Sprintf("invalid encoded fan speed '%s': %v", e.Value, e.Err)
}

func (e *FormatError) Unwrap() error {
	return e.Err
}

// OutOfRangeError is returned when a speed lies outside of [Min, Max].
type OutOfRangeError struct {
	Speed int
	Min   int
	Max   int
}

func (e *OutOfRangeError) Error() string {
	return fmt.Sprintf("fan speed %d is out of range [%d..%d]", e.Speed, e.Min, e.Max)
}

// NoMatchingSpeedError is returned by a strict Resolver when the temperature is above every threshold.
type NoMatchingSpeedError struct {
	Temperature  int
	MaxThreshold int
}

func (e *NoMatchingSpeedError) Error() string {
	return fmt.Sprintf("no fan speed configured for temperature %d°C (highest threshold is %d°C)", e.Temperature, e.MaxThreshold)
}
