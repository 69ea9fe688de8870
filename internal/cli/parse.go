package cli

import (
	"fmt"
	"strconv"
	"strings"
)

// parseIntList parses a comma-separated list of non-negative integers, as
// used by the --uids and --netuids flags.
func parseIntList(s string) ([]int, error) {
	fields := splitList(s)
	if len(fields) == 0 {
		return nil, fmt.Errorf("empty list")
	}
	out := make([]int, 0, len(fields))
	for _, f := range fields {
		v, err := strconv.Atoi(f)
		if err != nil {
			return nil, fmt.Errorf("invalid integer %q: %w", f, err)
		}
		if v < 0 {
			return nil, fmt.Errorf("value cannot be negative, got %d", v)
		}
		out = append(out, v)
	}
	return out, nil
}

// parseFloatList parses a comma-separated list of floats, as used by the
// --weights and --proportions flags.
func parseFloatList(s string) ([]float64, error) {
	fields := splitList(s)
	if len(fields) == 0 {
		return nil, fmt.Errorf("empty list")
	}
	out := make([]float64, 0, len(fields))
	for _, f := range fields {
		v, err := strconv.ParseFloat(f, 64)
		if err != nil {
			return nil, fmt.Errorf("invalid number %q: %w", f, err)
		}
		out = append(out, v)
	}
	return out, nil
}

func splitList(s string) []string {
	var fields []string
	for _, f := range strings.Split(s, ",") {
		f = strings.TrimSpace(f)
		if f != "" {
			fields = append(fields, f)
		}
	}
	return fields
}
