// Package formatting parses and renders byte sizes for config values such as
// api.max_request_size and for the file sizes reported by exports.
package formatting

import (
	"errors"
	"fmt"
	"math"
	"regexp"
	"slices"
	"strconv"
	"strings"
)

// ErrInvalidSize indicates a byte size string that cannot be parsed or does not fit in an int64.
var ErrInvalidSize = errors.New("invalid byte size")

// units are base-1024. EB is the largest unit an int64 byte count can reach.
var units = []string{"B", "KB", "MB", "GB", "TB", "PB", "EB"}

var sizePattern = regexp.MustCompile(`^(\d+(?:\.\d+)?)\s*([A-Za-z]*)$`)

// FormatBytes renders a byte count with the largest unit that keeps the value at
// or above 1, using precision decimal places. Negative precision is treated as 0.
func FormatBytes(n int64, precision int) string {
	precision = max(precision, 0)

	sign := ""
	size := float64(n)
	if n < 0 {
		sign = "-"
		size = -size
	}

	i := 0
	for size >= 1024 && i < len(units)-1 {
		size /= 1024
		i++
	}

	if i == 0 {
		return sign + strconv.FormatInt(int64(size), 10) + " B"
	}
	return sign + strconv.FormatFloat(size, 'f', precision, 64) + " " + units[i]
}

// ParseBytes parses a size such as "1MB", "512 kb", or "2MiB" into a byte count.
// A bare number is a byte count. Units are base-1024 and case-insensitive.
func ParseBytes(s string) (int64, error) {
	s = strings.TrimSpace(s)
	m := sizePattern.FindStringSubmatch(s)
	if m == nil {
		return 0, fmt.Errorf("%w: %q", ErrInvalidSize, s)
	}

	value, err := strconv.ParseFloat(m[1], 64)
	if err != nil {
		return 0, fmt.Errorf("%w: %q: %v", ErrInvalidSize, s, err)
	}

	exp := slices.Index(units, unitName(m[2]))
	if exp < 0 {
		return 0, fmt.Errorf("%w: unknown unit %q", ErrInvalidSize, m[2])
	}

	n := value * math.Pow(1024, float64(exp))
	if n >= math.MaxInt64 {
		return 0, fmt.Errorf("%w: %q overflows", ErrInvalidSize, s)
	}
	return int64(n), nil
}

// unitName maps "", "kb", "KiB", and "k" style spellings onto the units table.
func unitName(u string) string {
	u = strings.ToUpper(u)
	switch {
	case u == "":
		return "B"
	case len(u) == 3 && strings.HasSuffix(u, "IB"):
		return u[:1] + "B"
	case len(u) == 1 && u != "B":
		return u + "B"
	}
	return u
}
