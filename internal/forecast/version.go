package forecast

import (
	"errors"
	"fmt"
	"sort"
	"strconv"

	"github.com/stairforecast/backend/internal/calendar"
)

var ErrInvalidSelector = errors.New("invalid version selector")

// Selector is a requested revision: either "latest" or an explicit
// non-negative revision number.
type Selector struct {
	Latest   bool
	Revision int
}

func LatestSelector() Selector { return Selector{Latest: true} }

// ParseSelector normalizes a caller-supplied version parameter. Empty and
// "latest" both mean latest; anything else must be a non-negative integer.
func ParseSelector(raw string) (Selector, error) {
	if raw == "" || raw == "latest" {
		return Selector{Latest: true}, nil
	}
	n, err := strconv.Atoi(raw)
	if err != nil || n < 0 {
		return Selector{}, fmt.Errorf("%w: %q", ErrInvalidSelector, raw)
	}
	return Selector{Revision: n}, nil
}

func (s Selector) String() string {
	if s.Latest {
		return "latest"
	}
	return strconv.Itoa(s.Revision)
}

// VersionGroup names one stored forecast version: the target month it
// predicts and its revision tag.
type VersionGroup struct {
	Month    calendar.Month
	Revision int
}

// Resolution maps each target month to the revision chosen for it.
// FallbackMonths lists the months where the explicitly requested revision
// did not exist and the latest one was substituted.
type Resolution struct {
	Effective      map[calendar.Month]int
	Available      []int
	FallbackMonths []calendar.Month
}

// Revision returns the chosen revision for a month, if any.
func (r Resolution) Revision(m calendar.Month) (int, bool) {
	rev, ok := r.Effective[m]
	return rev, ok
}

// ResolveVersions selects the effective revision per target month. With a
// latest selector the maximum revision in each month wins. With an explicit
// selector an exact match wins; a month without that revision falls back to
// its latest revision and is recorded as a fallback month. Fallback is
// per-month, never global.
func ResolveVersions(groups []VersionGroup, sel Selector) Resolution {
	latest := make(map[calendar.Month]int, len(groups))
	exact := make(map[calendar.Month]bool, len(groups))
	seen := make(map[int]bool)

	for _, g := range groups {
		seen[g.Revision] = true
		if cur, ok := latest[g.Month]; !ok || g.Revision > cur {
			latest[g.Month] = g.Revision
		}
		if !sel.Latest && g.Revision == sel.Revision {
			exact[g.Month] = true
		}
	}

	available := make([]int, 0, len(seen))
	for rev := range seen {
		available = append(available, rev)
	}
	sort.Ints(available)

	effective := make(map[calendar.Month]int, len(latest))
	var fallback []calendar.Month
	for month, latestRev := range latest {
		if sel.Latest {
			effective[month] = latestRev
			continue
		}
		if exact[month] {
			effective[month] = sel.Revision
			continue
		}
		effective[month] = latestRev
		fallback = append(fallback, month)
	}
	sort.Slice(fallback, func(i, j int) bool { return fallback[i].Before(fallback[j]) })

	return Resolution{
		Effective:      effective,
		Available:      available,
		FallbackMonths: fallback,
	}
}
