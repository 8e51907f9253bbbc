package stopwatch

import (
	"fmt"
	"regexp"
	"strconv"
	"strings"
)

var timePattern = regexp.MustCompile(`^\d{2}:\d{2}:\d{2}$`)

// FormatTime renders seconds as hh:mm:ss. Hours are not bounded and grow
// past two digits when needed.
func FormatTime(seconds int64) string {
	if seconds < 0 {
		seconds = 0
	}
	h := seconds / 3600
	m := (seconds % 3600) / 60
	s := seconds % 60
	return fmt.Sprintf("%02d:%02d:%02d", h, m, s)
}

// ParseTime accepts exactly "dd:dd:dd" and returns the total seconds.
func ParseTime(input string) (int64, error) {
	if !timePattern.MatchString(input) {
		return 0, fmt.Errorf("%w: %q", ErrInvalidTime, input)
	}

	parts := strings.Split(input, ":")
	var total int64
	for i, mult := range []int64{3600, 60, 1} {
		v, err := strconv.ParseInt(parts[i], 10, 64)
		if err != nil {
			return 0, fmt.Errorf("%w: %q", ErrInvalidTime, input)
		}
		total += v * mult
	}
	return total, nil
}
