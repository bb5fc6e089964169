package configuration

const (
	DefaultFanId   = "F1Mx"
	DefaultFanExec = "/usr/local/sbin/smc"
)

var DefaultFanArgs = []string{"-k", "F1Mx", "-w"}

// FanConfig describes the command used to set the fan speed.
// The encoded speed is appended to Args as the final argument.
type FanConfig struct {
	ID   string   `json:"id" yaml:"id"`
	Exec string   `json:"exec" yaml:"exec"`
	Args []string `json:"args" yaml:"args"`
}
