package utils

import (
	"fmt"
	"os"
	"strconv"
)

type envValue interface {
	~string | ~int | ~bool
}

func parseEnv[T envValue](name, raw string) T {
	var out T
	switch ptr := any(&out).(type) {
	case *string:
		*ptr = raw
	case *int:
		v, err := strconv.Atoi(raw)
		if err != nil {
			panic(fmt.Sprintf("environment variable %s: %q is not an integer", name, raw))
		}
		*ptr = v
	case *bool:
		v, err := strconv.ParseBool(raw)
		if err != nil {
			panic(fmt.Sprintf("environment variable %s: %q is not a boolean", name, raw))
		}
		*ptr = v
	}
	return out
}

// GetEnv returns the value of the environment variable, or the fallback if it is
// unset or empty.
func GetEnv[T envValue](name string, fallback T) T {
	raw, ok := os.LookupEnv(name)
	if !ok || raw == "" {
		return fallback
	}
	return parseEnv[T](name, raw)
}

// GetRequiredEnv panics if the environment variable is unset or empty.
func GetRequiredEnv[T envValue](name string) T {
	raw, ok := os.LookupEnv(name)
	if !ok || raw == "" {
		panic(fmt.Sprintf("environment variable %s is required", name))
	}
	return parseEnv[T](name, raw)
}
