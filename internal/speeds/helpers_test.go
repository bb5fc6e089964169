package speeds

import (
	"github.com/stretchr/testify/assert"
	"testing"
)

// the table smartfan ships with
var defaultSteps = map[int]int{
	31: 1100,
	33: 1200,
	35: 2000,
	40: 2900,
	44: 3800,
	46: 4300,
	48: 4700,
	52: 5000,
}

func createTable(t *testing.T, steps map[int]int) *SpeedTable {
	table, err := NewSpeedTableFromMap(steps)
	assert.NoError(t, err)
	return table
}
