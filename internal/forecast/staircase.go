package forecast

import (
	"sort"
	"strings"

	"github.com/stairforecast/backend/internal/calendar"
)

type groupKey struct {
	shipTo   string // canonical (lowercased) code, empty in aggregate mode
	snapshot calendar.Month
}

// BuildStaircase pivots resolved observations into ordered rows keyed by
// snapshot month (and ship-to in per-ship-to mode) over a shared column axis
// of target months. Each row only claims the contiguous horizon
// [FirstMonth, LastMonth] it explicitly forecast; cells outside it are nil
// even when the axis extends further. Empty input yields an empty staircase.
func BuildStaircase(observations []Observation, mode Mode) Staircase {
	if len(observations) == 0 {
		return Staircase{}
	}

	axisSet := make(map[calendar.Month]bool)
	for _, o := range observations {
		axisSet[o.TargetMonth] = true
	}
	axis := make([]calendar.Month, 0, len(axisSet))
	for m := range axisSet {
		axis = append(axis, m)
	}
	sort.Slice(axis, func(i, j int) bool { return axis[i].Before(axis[j]) })
	columnAt := make(map[calendar.Month]int, len(axis))
	for i, m := range axis {
		columnAt[m] = i
	}

	// Fold observations into per-group cells. Multiple ship-tos landing on
	// the same (snapshot, target) coordinate in aggregate mode are summed.
	type group struct {
		shipToCode string
		shipToName string
		snapshot   calendar.Month
		cells      map[calendar.Month]int64
	}
	groups := make(map[groupKey]*group)
	for _, o := range observations {
		key := groupKey{snapshot: o.SnapshotMonth}
		if mode == ModePerShipTo {
			key.shipTo = strings.ToLower(o.ShipToCode)
		}
		g, ok := groups[key]
		if !ok {
			g = &group{
				snapshot: o.SnapshotMonth,
				cells:    make(map[calendar.Month]int64),
			}
			if mode == ModePerShipTo {
				g.shipToCode = o.ShipToCode
				g.shipToName = o.ShipToName
			}
			groups[key] = g
		}
		g.cells[o.TargetMonth] += o.Value
	}

	ordered := make([]*group, 0, len(groups))
	for _, g := range groups {
		ordered = append(ordered, g)
	}
	sort.Slice(ordered, func(i, j int) bool {
		a, b := ordered[i], ordered[j]
		ca, cb := strings.ToLower(a.shipToCode), strings.ToLower(b.shipToCode)
		if ca != cb {
			return ca < cb
		}
		return a.snapshot.Before(b.snapshot)
	})

	rows := make([]Row, 0, len(ordered))
	for _, g := range ordered {
		first, last := horizon(g.cells)
		values := make([]*int64, len(axis))
		for month, value := range g.cells {
			if month.Before(first) || month.After(last) {
				continue
			}
			v := value
			values[columnAt[month]] = &v
		}
		rows = append(rows, Row{
			SnapshotMonth: g.snapshot,
			ShipToCode:    g.shipToCode,
			ShipToName:    g.shipToName,
			FirstMonth:    first,
			LastMonth:     last,
			Values:        values,
		})
	}

	return Staircase{Axis: axis, Rows: rows}
}

// horizon returns the min and max target month carrying an observation.
func horizon(cells map[calendar.Month]int64) (calendar.Month, calendar.Month) {
	var first, last calendar.Month
	started := false
	for m := range cells {
		if !started {
			first, last = m, m
			started = true
			continue
		}
		if m.Before(first) {
			first = m
		}
		if m.After(last) {
			last = m
		}
	}
	return first, last
}
