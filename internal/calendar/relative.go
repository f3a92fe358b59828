package calendar

import (
	"regexp"
	"strconv"
	"strings"
)

var (
	plusPattern  = regexp.MustCompile(`^N\+(\d+)$`)
	minusPattern = regexp.MustCompile(`^N-(\d+)$`)
)

// Resolve turns a column header into an absolute month. Headers are either
// offsets relative to the snapshot month ("N", "N+3", "N-1") or compact
// absolute labels ("Jul-24"). Offset matching is case-insensitive.
func Resolve(header string, snapshot Month) (Month, error) {
	normalized := strings.ToUpper(strings.TrimSpace(header))

	if normalized == "N" {
		return snapshot, nil
	}
	if m := plusPattern.FindStringSubmatch(normalized); m != nil {
		offset, err := strconv.Atoi(m[1])
		if err == nil {
			return snapshot.Add(offset), nil
		}
	}
	if m := minusPattern.FindStringSubmatch(normalized); m != nil {
		offset, err := strconv.Atoi(m[1])
		if err == nil {
			return snapshot.Add(-offset), nil
		}
	}
	return Parse(strings.TrimSpace(header))
}
