package configuration

const (
	DefaultMaxSpeed = 6200
)

// SpeedTableConfig maps a drive temperature threshold (°C) to a fan speed (RPM)
type SpeedTableConfig map[int]int

// DefaultSpeeds is the table used when the configuration does not specify one
func DefaultSpeeds() SpeedTableConfig {
	return SpeedTableConfig{
		31: 1100,
		33: 1200,
		35: 2000,
		40: 2900,
		44: 3800,
		46: 4300,
		48: 4700,
		52: 5000,
	}
}
