package forecast

import (
	"strings"
)

// Delta is the signed month-over-month difference between two cells. A nil
// operand means no delta is computable, not zero.
func Delta(current, previous *int64) *int64 {
	if current == nil || previous == nil {
		return nil
	}
	d := *current - *previous
	return &d
}

// DeltaRows computes, for every staircase row, the per-column delta against
// the chronologically preceding row of the same group. The first row of a
// group (and every row at a ship-to boundary) gets an all-nil delta row.
// The result is aligned to the staircase axis and recomputable from the
// staircase alone.
func DeltaRows(s Staircase) [][]*int64 {
	deltas := make([][]*int64, len(s.Rows))
	for i, row := range s.Rows {
		deltas[i] = make([]*int64, len(s.Axis))
		if i == 0 {
			continue
		}
		prev := s.Rows[i-1]
		if !strings.EqualFold(row.ShipToCode, prev.ShipToCode) {
			continue
		}
		for j := range s.Axis {
			deltas[i][j] = Delta(row.Values[j], prev.Values[j])
		}
	}
	return deltas
}
