package services

import (
	"strings"
	"testing"
)

func ptr(v int64) *int64 { return &v }

func TestRenderStaircaseCSVAggregate(t *testing.T) {
	result := &ResolveResult{
		Months:           []string{"Sep-24", "Okt-24", "Nov-24"},
		RequestedVersion: "latest",
		Rows: []StairRow{
			{OrderDate: "Jul-24", Values: []*int64{ptr(3800), ptr(4600), nil}, Deltas: []*int64{nil, nil, nil}},
			{OrderDate: "Agu-24", Values: []*int64{nil, ptr(2700), ptr(4300)}, Deltas: []*int64{nil, ptr(-1900), nil}},
		},
	}

	var sb strings.Builder
	if err := renderStaircaseCSV(result, "FG-100", &sb); err != nil {
		t.Fatalf("renderStaircaseCSV: %v", err)
	}

	want := strings.Join([]string{
		"FORECAST,FG-100,version latest",
		"ORDER DATE,Sep-24,Okt-24,Nov-24",
		"Jul-24,3800,4600,",
		"Agu-24,,2700,4300",
		"",
		"DELTA,FG-100,version latest",
		"ORDER DATE,Sep-24,Okt-24,Nov-24",
		"Jul-24,,,",
		"Agu-24,,-1900,",
		"",
	}, "\n")
	if sb.String() != want {
		t.Errorf("rendered CSV:\n%s\nwant:\n%s", sb.String(), want)
	}
}

func TestRenderStaircaseCSVPerShipTo(t *testing.T) {
	result := &ResolveResult{
		Months:           []string{"Sep-24"},
		RequestedVersion: "10",
		Rows: []StairRow{
			{OrderDate: "Jul-24", ShipTo: "JKT01", Values: []*int64{ptr(100)}, Deltas: []*int64{nil}},
			{OrderDate: "Jul-24", ShipTo: "SBY01", Values: []*int64{ptr(50)}, Deltas: []*int64{nil}},
		},
	}

	var sb strings.Builder
	if err := renderStaircaseCSV(result, "FG-200", &sb); err != nil {
		t.Fatalf("renderStaircaseCSV: %v", err)
	}

	lines := strings.Split(strings.TrimRight(sb.String(), "\n"), "\n")
	if lines[1] != "SHIP TO,ORDER DATE,Sep-24" {
		t.Errorf("header = %q, want ship-to column first", lines[1])
	}
	if lines[2] != "JKT01,Jul-24,100" {
		t.Errorf("row = %q", lines[2])
	}
}
