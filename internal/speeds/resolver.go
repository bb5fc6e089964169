package speeds

import (
	"fmt"
	"strings"
)

// Policy defines how a Resolver handles temperatures above the highest threshold
type Policy int

const (
	// PolicyLenient resolves to the speed of the highest threshold
	PolicyLenient Policy = iota
	// PolicyStrict fails with a NoMatchingSpeedError
	PolicyStrict
)

func (p Policy) String() string {
	switch p {
	case PolicyLenient:
		return "lenient"
	case PolicyStrict:
		return "strict"
	default:
		return fmt.Sprintf("Policy(%d)", int(p))
	}
}

func ParsePolicy(value string) (Policy, error) {
	switch strings.ToLower(value) {
	case "", "lenient":
		return PolicyLenient, nil
	case "strict":
		return PolicyStrict, nil
	default:
		return PolicyLenient, fmt.Errorf("unknown resolver policy '%s', use one of: lenient | strict", value)
	}
}

type Resolver struct {
	Table  *SpeedTable
	Policy Policy
}

func NewResolver(table *SpeedTable, policy Policy) *Resolver {
	return &Resolver{
		Table:  table,
		Policy: policy,
	}
}

// Resolve returns the speed of the first entry whose threshold is >= temperature.
// Temperatures below the lowest threshold resolve to the lowest entry.
func (r *Resolver) Resolve(temperature int) (int, error) {
	for _, entry := range r.Table.entries {
		if temperature <= entry.Threshold {
			return entry.Speed, nil
		}
	}

	if r.Policy == PolicyStrict {
		return 0, &NoMatchingSpeedError{
			Temperature:  temperature,
			MaxThreshold: r.Table.MaxThreshold(),
		}
	}

	return r.Table.MaxTableSpeed(), nil
}
