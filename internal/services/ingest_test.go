package services

import (
	"encoding/json"
	"errors"
	"strings"
	"testing"
)

func TestParseLayoutWithVersionColumn(t *testing.T) {
	header := []string{"MATERIAL", "MATERIAL DESC", "ORDER", "SHIP TO", "ORDER DATE", "ORDER VERSION", "Jul-24", "N+1", "N+2"}
	layout, err := parseLayout(header)
	if err != nil {
		t.Fatalf("parseLayout: %v", err)
	}
	if layout.shipToIndex != 3 {
		t.Errorf("shipToIndex = %d, want 3", layout.shipToIndex)
	}
	if layout.orderDateIndex != 4 {
		t.Errorf("orderDateIndex = %d, want 4", layout.orderDateIndex)
	}
	if layout.versionIndex != 5 {
		t.Errorf("versionIndex = %d, want 5", layout.versionIndex)
	}
	if layout.monthStart != 6 {
		t.Errorf("monthStart = %d, want 6", layout.monthStart)
	}
	want := []string{"Jul-24", "N+1", "N+2"}
	if len(layout.monthHeaders) != len(want) {
		t.Fatalf("monthHeaders = %v, want %v", layout.monthHeaders, want)
	}
	for i, h := range want {
		if layout.monthHeaders[i] != h {
			t.Errorf("monthHeaders[%d] = %q, want %q", i, layout.monthHeaders[i], h)
		}
	}
}

func TestParseLayoutWithoutVersionColumn(t *testing.T) {
	header := []string{"MATERIAL", "MATERIAL DESC", "ORDER", "SHIP TO", "ORDER DATE", "N", "N+1"}
	layout, err := parseLayout(header)
	if err != nil {
		t.Fatalf("parseLayout: %v", err)
	}
	if layout.versionIndex != -1 {
		t.Errorf("versionIndex = %d, want -1", layout.versionIndex)
	}
	if layout.monthStart != 5 {
		t.Errorf("monthStart = %d, want 5", layout.monthStart)
	}
}

func TestParseLayoutNormalizesHeaderWhitespace(t *testing.T) {
	header := []string{"MATERIAL", "DESC", "ORDER", "  ship   to ", " Order  Date ", "Jul-24"}
	layout, err := parseLayout(header)
	if err != nil {
		t.Fatalf("parseLayout: %v", err)
	}
	if layout.shipToIndex != 3 || layout.orderDateIndex != 4 {
		t.Errorf("indexes = (%d, %d), want (3, 4)", layout.shipToIndex, layout.orderDateIndex)
	}
}

func TestParseLayoutIgnoresEarlyShipToColumn(t *testing.T) {
	// A leading column that happens to be named SHIP TO must not be taken
	// for the marker, which only counts from the fourth column on.
	header := []string{"SHIP TO", "DESC", "ORDER", "SHIP TO", "ORDER DATE", "N"}
	layout, err := parseLayout(header)
	if err != nil {
		t.Fatalf("parseLayout: %v", err)
	}
	if layout.shipToIndex != 3 {
		t.Errorf("shipToIndex = %d, want 3", layout.shipToIndex)
	}
}

func TestParseLayoutMissingColumns(t *testing.T) {
	cases := []struct {
		name   string
		header []string
	}{
		{"no ship to", []string{"MATERIAL", "DESC", "ORDER", "ORDER DATE", "N"}},
		{"no order date", []string{"MATERIAL", "DESC", "ORDER", "SHIP TO", "N"}},
	}
	for _, tc := range cases {
		t.Run(tc.name, func(t *testing.T) {
			if _, err := parseLayout(tc.header); !errors.Is(err, ErrMissingRequiredColumn) {
				t.Errorf("parseLayout(%v) error = %v, want ErrMissingRequiredColumn", tc.header, err)
			}
		})
	}
}

func TestParseLayoutShipToNameOptional(t *testing.T) {
	header := []string{"MATERIAL", "DESC", "ORDER", "SHIP TO", "SHIP TO NAME", "ORDER DATE", "N"}
	layout, err := parseLayout(header)
	if err != nil {
		t.Fatalf("parseLayout: %v", err)
	}
	if layout.shipToNameIndex != 4 {
		t.Errorf("shipToNameIndex = %d, want 4", layout.shipToNameIndex)
	}
	if layout.monthStart != 6 {
		t.Errorf("monthStart = %d, want 6", layout.monthStart)
	}
}

func TestBulkIngestResultReportsUpserts(t *testing.T) {
	// The entry counter covers overwrites too, so it must not claim the
	// cells were created.
	raw, err := json.Marshal(&BulkIngestResult{EntriesUpserted: 3})
	if err != nil {
		t.Fatalf("marshal: %v", err)
	}
	if !strings.Contains(string(raw), `"entries_upserted":3`) {
		t.Errorf("report = %s, want entries_upserted counter", raw)
	}
	if strings.Contains(string(raw), "entries_created") {
		t.Errorf("report = %s, must not name overwrites as created", raw)
	}
}

func TestDropBlankRows(t *testing.T) {
	records := [][]string{
		{"a", "b"},
		{"", "  "},
		{},
		{"c"},
	}
	kept := dropBlankRows(records)
	if len(kept) != 2 {
		t.Fatalf("kept %d rows, want 2", len(kept))
	}
	if kept[0][0] != "a" || kept[1][0] != "c" {
		t.Errorf("kept = %v", kept)
	}
}
