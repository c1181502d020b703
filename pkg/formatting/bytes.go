// Package formatting converts byte sizes between configuration strings such
// as "1MB" and their byte counts.
package formatting

import (
	"fmt"
	"math"
	"strconv"
	"strings"
)

type unit struct {
	symbol string
	size   int64
}

// Binary units; "KB" means 1024 bytes.
var units = []unit{
	{"B", 1},
	{"KB", 1 << 10},
	{"MB", 1 << 20},
	{"GB", 1 << 30},
	{"TB", 1 << 40},
	{"PB", 1 << 50},
	{"EB", 1 << 60},
}

// FormatBytes renders n in the largest unit that keeps the value at or above 1,
// with precision decimal places. Negative precision is treated as zero.
func FormatBytes(n int64, precision int) string {
	if precision < 0 {
		precision = 0
	}

	sign := ""
	if n < 0 {
		sign = "-"
		n = -n
	}

	u := units[0]
	for _, candidate := range units[1:] {
		if n < candidate.size {
			break
		}
		u = candidate
	}

	value := float64(n) / float64(u.size)
	if u.size == 1 {
		return sign + strconv.FormatInt(n, 10) + " B"
	}
	return sign + strconv.FormatFloat(value, 'f', precision, 64) + " " + u.symbol
}

// ParseBytes parses sizes such as "512", "64KB", "1.5 mb", "2KiB" or "10k".
// A bare number is a byte count.
func ParseBytes(s string) (int64, error) {
	s = strings.TrimSpace(s)
	if s == "" {
		return 0, fmt.Errorf("empty byte size string")
	}

	split := strings.IndexFunc(s, func(r rune) bool {
		return (r < '0' || r > '9') && r != '.'
	})
	number, suffix := s, ""
	if split >= 0 {
		number, suffix = s[:split], strings.TrimSpace(s[split:])
	}
	if number == "" {
		return 0, fmt.Errorf("invalid byte size: %q", s)
	}

	value, err := strconv.ParseFloat(number, 64)
	if err != nil {
		return 0, fmt.Errorf("invalid byte size number %q: %w", number, err)
	}

	size, err := unitSize(suffix)
	if err != nil {
		return 0, err
	}

	bytes := value * float64(size)
	if bytes >= math.MaxInt64 {
		return 0, fmt.Errorf("byte size overflows int64: %q", s)
	}
	return int64(bytes), nil
}

func unitSize(suffix string) (int64, error) {
	symbol := strings.ToUpper(suffix)
	switch {
	case symbol == "":
		return 1, nil
	case len(symbol) == 1 && symbol != "B":
		symbol += "B"
	case len(symbol) == 3 && strings.HasSuffix(symbol, "IB"):
		symbol = symbol[:1] + "B"
	}

	for _, u := range units {
		if u.symbol == symbol {
			return u.size, nil
		}
	}
	return 0, fmt.Errorf("unknown byte size unit: %q", suffix)
}
