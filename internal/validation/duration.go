package validation

import (
	"strconv"
	"strings"
)

// ParseShareDuration parses a share lifetime of the form "<N>d" (whole
// days) and returns N. Anything else is rejected.
func ParseShareDuration(duration string) (int, error) {
	value, ok := strings.CutSuffix(duration, "d")
	if !ok {
		return 0, errorf(`duration must be of the form "<N>d"`)
	}

	days, err := strconv.Atoi(value)
	if err != nil || days < 1 {
		return 0, errorf("duration must be at least one whole day")
	}

	return days, nil
}
