package configuration

import (
	"fmt"
	"reflect"
	"strconv"
	"strings"

	"github.com/mitchellh/mapstructure"
)

// SpeedTableHookFunc returns a mapstructure decode hook that converts the
// various map types produced by YAML, env variables and viper defaults
// (string or interface{} keys, numeric or string values) into a SpeedTableConfig.
func SpeedTableHookFunc() mapstructure.DecodeHookFuncType {
	speedTableType := reflect.TypeOf(SpeedTableConfig{})

	return func(
		f reflect.Type,
		t reflect.Type,
		data interface{},
	) (interface{}, error) {
		if t != speedTableType {
			return data, nil
		}

		steps, err := parseIntMap(data)
		if err != nil {
			return nil, fmt.Errorf("speeds: %w", err)
		}
		return SpeedTableConfig(steps), nil
	}
}

// parseIntMap converts various map types into map[int]int.
func parseIntMap(data interface{}) (map[int]int, error) {
	result := make(map[int]int)
	switch v := data.(type) {
	case map[interface{}]interface{}:
		for k, val := range v {
			key, err := anyToInt(k)
			if err != nil {
				return nil, fmt.Errorf("invalid temperature %v: %w", k, err)
			}
			value, err := anyToInt(val)
			if err != nil {
				return nil, fmt.Errorf("invalid speed %v: %w", val, err)
			}
			result[key] = value
		}
	case map[string]interface{}:
		for k, val := range v {
			key, err := anyToInt(k)
			if err != nil {
				return nil, fmt.Errorf("invalid temperature %q: %w", k, err)
			}
			value, err := anyToInt(val)
			if err != nil {
				return nil, fmt.Errorf("invalid speed %v: %w", val, err)
			}
			result[key] = value
		}
	case map[string]int:
		for k, val := range v {
			key, err := anyToInt(k)
			if err != nil {
				return nil, fmt.Errorf("invalid temperature %q: %w", k, err)
			}
			result[key] = val
		}
	case map[int]int:
		for k, val := range v {
			result[k] = val
		}
	case SpeedTableConfig:
		for k, val := range v {
			result[k] = val
		}
	case string:
		// env variable format: "31:1100,33:1200"
		return parseIntMapString(v)
	default:
		return nil, fmt.Errorf("unsupported speed table type %T", data)
	}
	return result, nil
}

func parseIntMapString(value string) (map[int]int, error) {
	result := make(map[int]int)
	for _, pair := range strings.Split(value, ",") {
		pair = strings.TrimSpace(pair)
		if len(pair) <= 0 {
			continue
		}
		parts := strings.SplitN(pair, ":", 2)
		if len(parts) != 2 {
			return nil, fmt.Errorf("invalid entry %q, expected <temperature>:<speed>", pair)
		}
		key, err := anyToInt(strings.TrimSpace(parts[0]))
		if err != nil {
			return nil, fmt.Errorf("invalid temperature %q: %w", parts[0], err)
		}
		speed, err := anyToInt(strings.TrimSpace(parts[1]))
		if err != nil {
			return nil, fmt.Errorf("invalid speed %q: %w", parts[1], err)
		}
		result[key] = speed
	}
	return result, nil
}

// anyToInt converts numeric and string values to int.
func anyToInt(v interface{}) (int, error) {
	switch val := v.(type) {
	case int:
		return val, nil
	case int64:
		return int(val), nil
	case uint64:
		return int(val), nil
	case float64:
		if val != float64(int(val)) {
			return 0, fmt.Errorf("%v is not a whole number", val)
		}
		return int(val), nil
	case string:
		n, err := strconv.Atoi(val)
		if err != nil {
			return 0, fmt.Errorf("cannot parse %q as int: %w", val, err)
		}
		return n, nil
	default:
		return 0, fmt.Errorf("cannot convert %T to int", v)
	}
}
