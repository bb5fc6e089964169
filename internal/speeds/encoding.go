package speeds

import (
	"errors"
	"strconv"
)

// Encode converts a decimal RPM value to the representation understood by the
// fan controller: the value shifted left by 2 bits, as lowercase hex without prefix.
func Encode(speedRpm int) string {
	return strconv.FormatInt(int64(speedRpm)<<2, 16)
}

// Decode reverses Encode. The right shift truncates any remainder of the
// lowest two bits.
func Decode(hex string) (int, error) {
	if len(hex) <= 0 {
		return 0, &FormatError{Value: hex, Err: errors.New("empty value")}
	}
	value, err := strconv.ParseUint(hex, 16, 64)
	if err != nil {
		return 0, &FormatError{Value: hex, Err: err}
	}
	return int(value >> 2), nil
}
