package services

import (
	"context"
	"encoding/csv"
	"fmt"
	"io"

	"gorm.io/gorm"

	"github.com/stairforecast/backend/internal/logger"
)

type ExportService interface {
	// WriteCSV renders a resolved staircase as two stacked CSV blocks: the
	// value matrix first, then the month-over-month delta matrix.
	WriteCSV(ctx context.Context, tx *gorm.DB, query ResolveQuery, title string, w io.Writer) error
}

type exportService struct {
	log      *logger.Logger
	forecast ForecastService
}

func NewExportService(baseLog *logger.Logger, forecastSvc ForecastService) ExportService {
	return &exportService{
		log:      baseLog.With("service", "ExportService"),
		forecast: forecastSvc,
	}
}

func (s *exportService) WriteCSV(ctx context.Context, tx *gorm.DB, query ResolveQuery, title string, w io.Writer) error {
	result, err := s.forecast.Resolve(ctx, tx, query)
	if err != nil {
		return err
	}
	return renderStaircaseCSV(result, title, w)
}

func renderStaircaseCSV(result *ResolveResult, title string, w io.Writer) error {
	cw := csv.NewWriter(w)

	perShipTo := false
	for _, row := range result.Rows {
		if row.ShipTo != "" {
			perShipTo = true
			break
		}
	}

	writeBlock := func(label string, cells func(StairRow) []*int64) error {
		if err := cw.Write([]string{label, title, "version " + result.RequestedVersion}); err != nil {
			return err
		}
		header := []string{"ORDER DATE"}
		if perShipTo {
			header = []string{"SHIP TO", "ORDER DATE"}
		}
		header = append(header, result.Months...)
		if err := cw.Write(header); err != nil {
			return err
		}
		for _, row := range result.Rows {
			record := make([]string, 0, len(header))
			if perShipTo {
				record = append(record, row.ShipTo)
			}
			record = append(record, row.OrderDate)
			for _, cell := range cells(row) {
				record = append(record, formatCell(cell))
			}
			if err := cw.Write(record); err != nil {
				return err
			}
		}
		return nil
	}

	if err := writeBlock("FORECAST", func(r StairRow) []*int64 { return r.Values }); err != nil {
		return err
	}
	if err := cw.Write([]string{}); err != nil {
		return err
	}
	if err := writeBlock("DELTA", func(r StairRow) []*int64 { return r.Deltas }); err != nil {
		return err
	}

	cw.Flush()
	return cw.Error()
}

func formatCell(v *int64) string {
	if v == nil {
		return ""
	}
	return fmt.Sprintf("%d", *v)
}
