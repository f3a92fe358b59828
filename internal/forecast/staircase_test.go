package forecast

import (
	"testing"
	"time"

	"github.com/stairforecast/backend/internal/calendar"
)

func obs(snapshot, target calendar.Month, shipTo string, value int64) Observation {
	return Observation{
		SnapshotMonth: snapshot,
		TargetMonth:   target,
		ShipToCode:    shipTo,
		Value:         value,
	}
}

func cell(v int64) *int64 { return &v }

func eqCells(got, want []*int64) bool {
	if len(got) != len(want) {
		return false
	}
	for i := range got {
		if (got[i] == nil) != (want[i] == nil) {
			return false
		}
		if got[i] != nil && *got[i] != *want[i] {
			return false
		}
	}
	return true
}

func TestBuildStaircaseEndToEnd(t *testing.T) {
	jul := month(2024, time.July)
	agu := month(2024, time.August)
	sep := month(2024, time.September)

	s := BuildStaircase([]Observation{
		obs(jul, jul, "DEFAULT", 3800),
		obs(jul, agu, "DEFAULT", 4600),
		obs(agu, agu, "DEFAULT", 2700),
		obs(agu, sep, "DEFAULT", 4300),
	}, ModeAggregate)

	if len(s.Axis) != 3 || s.Axis[0] != jul || s.Axis[1] != agu || s.Axis[2] != sep {
		t.Fatalf("axis=%v, want [Jul-24 Agu-24 Sep-24]", s.Axis)
	}
	if len(s.Rows) != 2 {
		t.Fatalf("rows=%d, want 2", len(s.Rows))
	}
	if !eqCells(s.Rows[0].Values, []*int64{cell(3800), cell(4600), nil}) {
		t.Fatalf("row Jul-24 values=%v", s.Rows[0].Values)
	}
	if !eqCells(s.Rows[1].Values, []*int64{nil, cell(2700), cell(4300)}) {
		t.Fatalf("row Agu-24 values=%v", s.Rows[1].Values)
	}
	if s.Rows[0].FirstMonth != jul || s.Rows[0].LastMonth != agu {
		t.Fatalf("row Jul-24 horizon=[%v %v]", s.Rows[0].FirstMonth, s.Rows[0].LastMonth)
	}
	if s.Rows[1].FirstMonth != agu || s.Rows[1].LastMonth != sep {
		t.Fatalf("row Agu-24 horizon=[%v %v]", s.Rows[1].FirstMonth, s.Rows[1].LastMonth)
	}

	deltas := DeltaRows(s)
	if !eqCells(deltas[0], []*int64{nil, nil, nil}) {
		t.Fatalf("first delta row=%v, want all nil", deltas[0])
	}
	if !eqCells(deltas[1], []*int64{nil, cell(-1900), nil}) {
		t.Fatalf("delta row Agu-24=%v, want [nil -1900 nil]", deltas[1])
	}
}

func TestBuildStaircaseHorizonClamping(t *testing.T) {
	// A snapshot forecasting only Sep-24..Feb-25 must stay nil outside that
	// span even when the axis stretches from Jul-24 to Jun-25.
	jul24 := month(2024, time.July)
	sep24 := month(2024, time.September)
	feb25 := month(2025, time.February)
	jun25 := month(2025, time.June)

	input := []Observation{
		// Wide snapshot that defines the full axis.
		obs(jul24, jul24, "", 100),
		obs(jul24, month(2024, time.December), "", 100),
		obs(jul24, jun25, "", 100),
		// Narrow snapshot.
		obs(sep24, sep24, "", 200),
		obs(sep24, feb25, "", 250),
	}
	s := BuildStaircase(input, ModeAggregate)

	if len(s.Rows) != 2 {
		t.Fatalf("rows=%d, want 2", len(s.Rows))
	}
	narrow := s.Rows[1]
	if narrow.FirstMonth != sep24 || narrow.LastMonth != feb25 {
		t.Fatalf("narrow horizon=[%v %v]", narrow.FirstMonth, narrow.LastMonth)
	}
	for i, m := range s.Axis {
		outside := m.Before(sep24) || m.After(feb25)
		if outside && narrow.Values[i] != nil {
			t.Fatalf("column %v outside horizon carries value %d", m, *narrow.Values[i])
		}
	}
	// Gap inside the horizon is nil, not zero.
	for i, m := range s.Axis {
		if m == month(2024, time.December) && narrow.Values[i] != nil {
			t.Fatalf("sparse gap at %v should be nil", m)
		}
	}
}

func TestBuildStaircaseAggregateSumsShipTos(t *testing.T) {
	jul := month(2024, time.July)
	agu := month(2024, time.August)

	input := []Observation{
		obs(jul, jul, "PLANT-A", 1000),
		obs(jul, jul, "PLANT-B", 500),
		obs(jul, agu, "PLANT-A", 700),
	}

	agg := BuildStaircase(input, ModeAggregate)
	if len(agg.Rows) != 1 {
		t.Fatalf("aggregate rows=%d, want 1", len(agg.Rows))
	}
	if !eqCells(agg.Rows[0].Values, []*int64{cell(1500), cell(700)}) {
		t.Fatalf("aggregate values=%v", agg.Rows[0].Values)
	}

	per := BuildStaircase(input, ModePerShipTo)
	if len(per.Rows) != 2 {
		t.Fatalf("per-ship-to rows=%d, want 2", len(per.Rows))
	}
	// Aggregated cell equals the sum of per-ship-to cells at the same
	// coordinate.
	for j := range agg.Axis {
		var sum int64
		seen := false
		for _, row := range per.Rows {
			if row.Values[j] != nil {
				sum += *row.Values[j]
				seen = true
			}
		}
		aggCell := agg.Rows[0].Values[j]
		if seen != (aggCell != nil) || (seen && sum != *aggCell) {
			t.Fatalf("column %d: per-ship-to sum=%d, aggregate=%v", j, sum, aggCell)
		}
	}
}

func TestBuildStaircasePerShipToOrdering(t *testing.T) {
	jul := month(2024, time.July)
	agu := month(2024, time.August)

	s := BuildStaircase([]Observation{
		obs(agu, agu, "plant-b", 1),
		obs(jul, jul, "PLANT-B", 2),
		obs(agu, agu, "PLANT-A", 3),
		obs(jul, jul, "PLANT-A", 4),
	}, ModePerShipTo)

	if len(s.Rows) != 4 {
		t.Fatalf("rows=%d, want 4", len(s.Rows))
	}
	wantOrder := []struct {
		code     string
		snapshot calendar.Month
	}{
		{"PLANT-A", jul},
		{"PLANT-A", agu},
		{"PLANT-B", jul},
		{"plant-b", agu},
	}
	for i, want := range wantOrder {
		if s.Rows[i].ShipToCode != want.code || s.Rows[i].SnapshotMonth != want.snapshot {
			t.Fatalf("row %d = (%s, %v), want (%s, %v)",
				i, s.Rows[i].ShipToCode, s.Rows[i].SnapshotMonth, want.code, want.snapshot)
		}
	}
}

func TestBuildStaircaseEmptyInput(t *testing.T) {
	s := BuildStaircase(nil, ModeAggregate)
	if len(s.Axis) != 0 || len(s.Rows) != 0 {
		t.Fatalf("empty input produced axis=%v rows=%v", s.Axis, s.Rows)
	}
}

func TestBuildStaircaseAxisSharedAcrossRows(t *testing.T) {
	jul := month(2024, time.July)
	des := month(2024, time.December)
	s := BuildStaircase([]Observation{
		obs(jul, jul, "A", 1),
		obs(des, des, "B", 2),
	}, ModePerShipTo)
	for i, row := range s.Rows {
		if len(row.Values) != len(s.Axis) {
			t.Fatalf("row %d has %d cells, axis has %d", i, len(row.Values), len(s.Axis))
		}
	}
}
