package services

import (
	"context"
	"encoding/csv"
	"encoding/json"
	"errors"
	"fmt"
	"io"
	"sort"
	"strconv"
	"strings"

	"gorm.io/datatypes"
	"gorm.io/gorm"

	"github.com/stairforecast/backend/internal/calendar"
	"github.com/stairforecast/backend/internal/logger"
	"github.com/stairforecast/backend/internal/repos"
	"github.com/stairforecast/backend/internal/types"
)

// ErrMissingRequiredColumn aborts a whole bulk ingest: without the ship-to
// or order-date column no row can be processed.
var ErrMissingRequiredColumn = errors.New("missing required column")

// ErrEmptyUpload is returned when the file has no header or no data rows.
var ErrEmptyUpload = errors.New("file must contain a header and at least one data row")

// DefaultIngestVersion is the revision applied to rows that carry no ORDER
// VERSION value when the caller supplies none either.
const DefaultIngestVersion = 10

// BulkIngestResult is the legible partial-success report of one batch.
type BulkIngestResult struct {
	BatchID        string   `json:"batch_id,omitempty"`
	DefaultVersion int      `json:"default_version"`
	SKUsCreated    int      `json:"skus_created"`
	ShipTosCreated int      `json:"ship_tos_created"`
	EntriesUpserted int      `json:"entries_upserted"`
	VersionsUsed   []int    `json:"versions_used"`
	Errors         []string `json:"errors"`
}

type IngestService interface {
	// BulkIngest parses the tabular upload: fixed leading columns (part
	// number, part name, order id, then SHIP TO / ORDER DATE / optional
	// ORDER VERSION markers) followed by one column per target month. Row
	// failures are accumulated, not fatal; a missing required column is.
	BulkIngest(ctx context.Context, tx *gorm.DB, filename string, r io.Reader, defaultVersion int) (*BulkIngestResult, error)
	// ListBatches returns the most recent upload reports, newest first.
	ListBatches(ctx context.Context, tx *gorm.DB, limit int) ([]*types.UploadBatch, error)
}

type ingestService struct {
	db          *gorm.DB
	log         *logger.Logger
	skuRepo     repos.SKURepo
	shipToRepo  repos.ShipToRepo
	versionRepo repos.ForecastVersionRepo
	entryRepo   repos.ForecastEntryRepo
	batchRepo   repos.UploadBatchRepo
	cache       Cache
}

func NewIngestService(
	db *gorm.DB,
	baseLog *logger.Logger,
	skuRepo repos.SKURepo,
	shipToRepo repos.ShipToRepo,
	versionRepo repos.ForecastVersionRepo,
	entryRepo repos.ForecastEntryRepo,
	batchRepo repos.UploadBatchRepo,
	cache Cache,
) IngestService {
	return &ingestService{
		db:          db,
		log:         baseLog.With("service", "IngestService"),
		skuRepo:     skuRepo,
		shipToRepo:  shipToRepo,
		versionRepo: versionRepo,
		entryRepo:   entryRepo,
		batchRepo:   batchRepo,
		cache:       cache,
	}
}

func (s *ingestService) ListBatches(ctx context.Context, tx *gorm.DB, limit int) ([]*types.UploadBatch, error) {
	if limit <= 0 {
		limit = 20
	}
	return s.batchRepo.ListRecent(ctx, tx, limit)
}

// header positions discovered from the first row.
type uploadLayout struct {
	shipToIndex     int
	shipToNameIndex int
	orderDateIndex  int
	versionIndex    int
	monthStart      int
	monthHeaders    []string
}

func (s *ingestService) BulkIngest(ctx context.Context, tx *gorm.DB, filename string, r io.Reader, defaultVersion int) (*BulkIngestResult, error) {
	transaction := tx
	if transaction == nil {
		transaction = s.db
	}
	if defaultVersion < 0 {
		return nil, fmt.Errorf("invalid default version %d", defaultVersion)
	}

	reader := csv.NewReader(r)
	reader.FieldsPerRecord = -1
	reader.TrimLeadingSpace = true

	records, err := reader.ReadAll()
	if err != nil {
		return nil, fmt.Errorf("failed to read upload CSV: %w", err)
	}
	records = dropBlankRows(records)
	if len(records) < 2 {
		return nil, ErrEmptyUpload
	}

	layout, err := parseLayout(records[0])
	if err != nil {
		return nil, err
	}

	result := &BulkIngestResult{DefaultVersion: defaultVersion, Errors: []string{}}
	versionsUsed := map[int]bool{}

	for i, record := range records[1:] {
		rowNum := i + 2 // header is row 1
		if err := s.ingestRow(ctx, transaction, layout, record, defaultVersion, result, versionsUsed); err != nil {
			result.Errors = append(result.Errors, fmt.Sprintf("Row %d: %v", rowNum, err))
		}
	}

	result.VersionsUsed = make([]int, 0, len(versionsUsed))
	for v := range versionsUsed {
		result.VersionsUsed = append(result.VersionsUsed, v)
	}
	sort.Ints(result.VersionsUsed)

	batch, err := s.persistBatch(ctx, transaction, filename, defaultVersion, result)
	if err != nil {
		s.log.Error("Failed to persist upload batch report", "error", err)
	} else {
		result.BatchID = batch.ID.String()
	}

	if s.cache != nil {
		s.cache.Invalidate(ctx)
	}
	return result, nil
}

// ingestRow processes one data row; a returned error is recorded against the
// row and does not abort the batch. Bad month cells are reported per cell.
func (s *ingestService) ingestRow(
	ctx context.Context,
	tx *gorm.DB,
	layout uploadLayout,
	record []string,
	defaultVersion int,
	result *BulkIngestResult,
	versionsUsed map[int]bool,
) error {
	values := make([]string, len(record))
	for i, v := range record {
		values[i] = strings.TrimSpace(v)
	}
	if len(values) < layout.monthStart+1 {
		return fmt.Errorf("insufficient columns")
	}

	partNumber := values[0]
	if partNumber == "" {
		return fmt.Errorf("missing part number")
	}
	partName := fieldAt(values, 1)
	orderCode := fieldAt(values, 2)

	orderDate := fieldAt(values, layout.orderDateIndex)
	if orderDate == "" {
		return fmt.Errorf("missing order date")
	}
	snapshot, err := calendar.Parse(orderDate)
	if err != nil {
		return err
	}

	version := defaultVersion
	if layout.versionIndex >= 0 {
		if raw := fieldAt(values, layout.versionIndex); raw != "" {
			parsed, err := strconv.Atoi(raw)
			if err != nil || parsed < 0 {
				return fmt.Errorf("invalid order version %q", raw)
			}
			version = parsed
		}
	}

	sku, err := s.ensureSKU(ctx, tx, partNumber, partName, orderCode, result)
	if err != nil {
		return err
	}

	shipToCode := fieldAt(values, layout.shipToIndex)
	if shipToCode == "" {
		shipToCode = types.DefaultShipToCode
	}
	var shipToName *string
	if layout.shipToNameIndex >= 0 {
		if raw := fieldAt(values, layout.shipToNameIndex); raw != "" {
			shipToName = &raw
		}
	} else if shipToCode == types.DefaultShipToCode {
		name := "Default Ship To"
		shipToName = &name
	}
	shipTo, err := s.ensureShipToCounted(ctx, tx, sku, shipToCode, shipToName, result)
	if err != nil {
		return err
	}

	versionsUsed[version] = true

	var cellErrs []string
	for j := layout.monthStart; j < len(layout.monthHeaders)+layout.monthStart && j < len(values); j++ {
		header := layout.monthHeaders[j-layout.monthStart]
		raw := values[j]
		if header == "" || raw == "" || raw == "-" {
			continue
		}
		value, err := strconv.ParseInt(raw, 10, 64)
		if err != nil {
			cellErrs = append(cellErrs, fmt.Sprintf("non-numeric value %q in column %q", raw, header))
			continue
		}
		target, err := calendar.Resolve(header, snapshot)
		if err != nil {
			cellErrs = append(cellErrs, err.Error())
			continue
		}

		fv, err := s.versionRepo.Upsert(ctx, tx, target.Time(), version)
		if err != nil {
			return fmt.Errorf("upsert forecast version: %w", err)
		}
		if _, err := s.entryRepo.Upsert(ctx, tx, &types.ForecastEntry{
			ForecastVersionID: fv.ID,
			SKUID:             sku.ID,
			ShipToID:          shipTo.ID,
			OrderMonth:        snapshot.Time(),
			Value:             value,
		}); err != nil {
			return fmt.Errorf("upsert forecast entry: %w", err)
		}
		result.EntriesUpserted++
	}
	if len(cellErrs) > 0 {
		return errors.New(strings.Join(cellErrs, "; "))
	}
	return nil
}

func (s *ingestService) ensureSKU(ctx context.Context, tx *gorm.DB, partNumber, partName, orderCode string, result *BulkIngestResult) (*types.SKU, error) {
	sku, err := s.skuRepo.GetByPartNumber(ctx, tx, partNumber)
	if err != nil {
		return nil, fmt.Errorf("load sku: %w", err)
	}
	if sku != nil {
		return sku, nil
	}
	sku, err = s.skuRepo.Create(ctx, tx, &types.SKU{
		PartNumber: partNumber,
		PartName:   partName,
		OrderCode:  orderCode,
	})
	if err != nil {
		return nil, fmt.Errorf("create sku: %w", err)
	}
	result.SKUsCreated++
	return sku, nil
}

func (s *ingestService) ensureShipToCounted(ctx context.Context, tx *gorm.DB, sku *types.SKU, code string, name *string, result *BulkIngestResult) (*types.ShipTo, error) {
	shipTo, err := s.shipToRepo.GetBySKUAndCode(ctx, tx, sku.ID, code)
	if err != nil {
		return nil, fmt.Errorf("load ship-to: %w", err)
	}
	if shipTo != nil {
		return shipTo, nil
	}
	shipTo, err = s.shipToRepo.Create(ctx, tx, &types.ShipTo{
		SKUID: sku.ID,
		Code:  code,
		Name:  name,
	})
	if err != nil {
		return nil, fmt.Errorf("create ship-to: %w", err)
	}
	result.ShipTosCreated++
	return shipTo, nil
}

func (s *ingestService) persistBatch(ctx context.Context, tx *gorm.DB, filename string, defaultVersion int, result *BulkIngestResult) (*types.UploadBatch, error) {
	rowErrors, err := json.Marshal(result.Errors)
	if err != nil {
		return nil, err
	}
	return s.batchRepo.Create(ctx, tx, &types.UploadBatch{
		Filename:       filename,
		DefaultVersion: defaultVersion,
		SKUsCreated:    result.SKUsCreated,
		ShipTosCreated: result.ShipTosCreated,
		EntriesUpserted: result.EntriesUpserted,
		RowErrors:      datatypes.JSON(rowErrors),
	})
}

// parseLayout locates the marker columns in the header row. SHIP TO only
// counts from the fourth column on, so a part name containing "ship to"
// cannot shadow it.
func parseLayout(header []string) (uploadLayout, error) {
	layout := uploadLayout{
		shipToIndex:     -1,
		shipToNameIndex: -1,
		orderDateIndex:  -1,
		versionIndex:    -1,
	}
	normalized := make([]string, len(header))
	for i, h := range header {
		normalized[i] = normalizeHeader(h)
	}
	for i, h := range normalized {
		switch h {
		case "SHIP TO":
			if i >= 3 && layout.shipToIndex < 0 {
				layout.shipToIndex = i
			}
		case "SHIP TO NAME":
			if layout.shipToNameIndex < 0 {
				layout.shipToNameIndex = i
			}
		case "ORDER DATE":
			if layout.orderDateIndex < 0 {
				layout.orderDateIndex = i
			}
		case "ORDER VERSION":
			if layout.versionIndex < 0 {
				layout.versionIndex = i
			}
		}
	}
	if layout.shipToIndex < 0 {
		return layout, fmt.Errorf("%w: SHIP TO", ErrMissingRequiredColumn)
	}
	if layout.orderDateIndex < 0 {
		return layout, fmt.Errorf("%w: ORDER DATE", ErrMissingRequiredColumn)
	}

	layout.monthStart = layout.orderDateIndex + 1
	if layout.versionIndex >= 0 {
		layout.monthStart = layout.versionIndex + 1
	}
	for _, h := range header[layout.monthStart:] {
		layout.monthHeaders = append(layout.monthHeaders, strings.TrimSpace(h))
	}
	return layout, nil
}

func normalizeHeader(h string) string {
	return strings.Join(strings.Fields(strings.ToUpper(strings.TrimSpace(h))), " ")
}

func fieldAt(values []string, idx int) string {
	if idx < 0 || idx >= len(values) {
		return ""
	}
	return values[idx]
}

func dropBlankRows(records [][]string) [][]string {
	kept := records[:0]
	for _, record := range records {
		blank := true
		for _, v := range record {
			if strings.TrimSpace(v) != "" {
				blank = false
				break
			}
		}
		if !blank {
			kept = append(kept, record)
		}
	}
	return kept
}
