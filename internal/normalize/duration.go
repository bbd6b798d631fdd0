package normalize

import (
	"fmt"
	"strconv"
	"strings"
)

// Duration normalizes an ISO 8601 duration (e.g. "PT1H2M3S") into a
// zero-padded "HH:MM:SS" string. Anything unparsable normalizes to
// "00:00:00"; a broken duration never fails the whole video record.
func Duration(iso string) string {
	seconds, err := parseISODuration(iso)
	if err != nil {
		return "00:00:00"
	}

	return fmt.Sprintf("%02d:%02d:%02d", seconds/3600, (seconds%3600)/60, seconds%60)
}

// parseISODuration converts an ISO 8601 time duration to total seconds.
// Example: "PT4M13S" -> 253.
func parseISODuration(duration string) (int, error) {
	if !strings.HasPrefix(duration, "PT") {
		return 0, fmt.Errorf("invalid duration format: %s", duration)
	}

	rest := strings.TrimPrefix(duration, "PT")
	if rest == "" {
		return 0, fmt.Errorf("empty duration: %s", duration)
	}

	var total int

	for _, unit := range []struct {
		suffix  string
		seconds int
	}{
		{"H", 3600},
		{"M", 60},
		{"S", 1},
	} {
		idx := strings.Index(rest, unit.suffix)
		if idx == -1 {
			continue
		}

		n, err := strconv.Atoi(rest[:idx])
		if err != nil {
			return 0, fmt.Errorf("invalid %s component in %s: %w", unit.suffix, duration, err)
		}

		total += n * unit.seconds
		rest = rest[idx+1:]
	}

	if rest != "" {
		return 0, fmt.Errorf("trailing garbage in duration: %s", duration)
	}

	return total, nil
}
