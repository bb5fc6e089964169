package sensors

import (
	"errors"
	"fmt"
	"strconv"
	"strings"
)

var (
	ErrKeyNotFound   = errors.New("key not found")
	ErrAmbiguousKey  = errors.New("key matches more than one line")
	ErrColumnMissing = errors.New("column missing")
)

// ParseAttributeTable finds the unique line of output containing key and parses the
// whitespace-delimited token at the given 0-based column as a decimal integer.
func ParseAttributeTable(output string, key string, column int) (int, error) {
	var matches []string
	for _, line := range strings.Split(output, "\n") {
		if strings.Contains(line, key) {
			matches = append(matches, line)
		}
	}

	if len(matches) <= 0 {
		return 0, fmt.Errorf("%w: '%s'", ErrKeyNotFound, key)
	}
	if len(matches) > 1 {
		return 0, fmt.Errorf("%w: '%s' (%d lines)", ErrAmbiguousKey, key, len(matches))
	}

	fields := strings.Fields(matches[0])
	if column < 0 || column >= len(fields) {
		return 0, fmt.Errorf("%w: index %d in line '%s'", ErrColumnMissing, column, strings.TrimSpace(matches[0]))
	}

	value, err := strconv.Atoi(fields[column])
	if err != nil {
		return 0, fmt.Errorf("column %d is not a decimal integer: %w", column, err)
	}
	return value, nil
}
