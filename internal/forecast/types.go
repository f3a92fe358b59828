package forecast

import (
	"github.com/stairforecast/backend/internal/calendar"
)

// Mode controls row grouping in the staircase: one row per snapshot month
// with ship-to values summed, or one row per (ship-to, snapshot month).
type Mode int

const (
	ModeAggregate Mode = iota
	ModePerShipTo
)

// Observation is one resolved forecast value: taken in SnapshotMonth, it
// predicts demand for TargetMonth. ShipTo fields identify the destination
// and are ignored in aggregate mode.
type Observation struct {
	SnapshotMonth calendar.Month
	TargetMonth   calendar.Month
	ShipToCode    string
	ShipToName    string
	Value         int64
}

// Row is one staircase row. Values is aligned to the shared column axis of
// the invocation that produced it; cells outside [FirstMonth, LastMonth] or
// without an observation are nil.
type Row struct {
	SnapshotMonth calendar.Month
	ShipToCode    string
	ShipToName    string
	FirstMonth    calendar.Month
	LastMonth     calendar.Month
	Values        []*int64
}

// Staircase is the reconstructed table: Axis is the sorted distinct set of
// target months, identical for every row.
type Staircase struct {
	Axis []calendar.Month
	Rows []Row
}
