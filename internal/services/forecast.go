package services

import (
	"context"
	"crypto/sha256"
	"encoding/hex"
	"encoding/json"
	"errors"
	"fmt"
	"time"

	"github.com/google/uuid"
	"gorm.io/gorm"

	"github.com/stairforecast/backend/internal/calendar"
	"github.com/stairforecast/backend/internal/forecast"
	"github.com/stairforecast/backend/internal/logger"
	"github.com/stairforecast/backend/internal/repos"
	"github.com/stairforecast/backend/internal/types"
)

// ErrSKUNotFound signals an ingest against an unknown SKU id.
var ErrSKUNotFound = errors.New("sku not found")

// Cache is an optional read-through cache for resolved staircases. A nil
// Cache disables caching entirely.
type Cache interface {
	Get(ctx context.Context, key string) ([]byte, bool)
	Set(ctx context.Context, key string, payload []byte, ttl time.Duration)
	Invalidate(ctx context.Context)
}

// ResolveQuery names one staircase rendering request.
type ResolveQuery struct {
	SKUID      *uuid.UUID
	ShipToCode string // "" means all ship-tos
	Selector   forecast.Selector
	Mode       forecast.Mode
}

// StairRow is the wire shape of one staircase row: month labels instead of
// raw months, values and deltas aligned to the shared axis.
type StairRow struct {
	OrderDate  string   `json:"order_date"`
	ShipTo     string   `json:"ship_to,omitempty"`
	ShipToName string   `json:"ship_to_name,omitempty"`
	FirstMonth string   `json:"first_month"`
	LastMonth  string   `json:"last_month"`
	Values     []*int64 `json:"values"`
	Deltas     []*int64 `json:"deltas"`
}

type ResolveResult struct {
	Months            []string       `json:"months"`
	Rows              []StairRow     `json:"rows"`
	AvailableVersions []int          `json:"available_versions"`
	RequestedVersion  string         `json:"requested_version"`
	VersionSelection  map[string]int `json:"version_selection"`
	FallbackMonths    []string       `json:"fallback_months"`
}

type ForecastService interface {
	// Resolve composes version selection, staircase reconstruction and delta
	// computation into the externally visible rendering contract.
	Resolve(ctx context.Context, tx *gorm.DB, query ResolveQuery) (*ResolveResult, error)
	// IngestObservation upserts a single forecast value for an existing SKU.
	IngestObservation(ctx context.Context, tx *gorm.DB, req IngestRequest) (*types.ForecastEntry, error)
}

type IngestRequest struct {
	SKUID      uuid.UUID
	ShipToCode string // defaults to DEFAULT
	OrderDate  string // snapshot month label
	Month      string // target month: absolute label or N/N+k/N-k header
	Version    int
	Value      int64
}

type forecastService struct {
	db          *gorm.DB
	log         *logger.Logger
	versionRepo repos.ForecastVersionRepo
	entryRepo   repos.ForecastEntryRepo
	skuRepo     repos.SKURepo
	shipToRepo  repos.ShipToRepo
	cache       Cache
}

func NewForecastService(
	db *gorm.DB,
	baseLog *logger.Logger,
	versionRepo repos.ForecastVersionRepo,
	entryRepo repos.ForecastEntryRepo,
	skuRepo repos.SKURepo,
	shipToRepo repos.ShipToRepo,
	cache Cache,
) ForecastService {
	return &forecastService{
		db:          db,
		log:         baseLog.With("service", "ForecastService"),
		versionRepo: versionRepo,
		entryRepo:   entryRepo,
		skuRepo:     skuRepo,
		shipToRepo:  shipToRepo,
		cache:       cache,
	}
}

func (s *forecastService) Resolve(ctx context.Context, tx *gorm.DB, query ResolveQuery) (*ResolveResult, error) {
	cacheKey := resolveCacheKey(query)
	if s.cache != nil && tx == nil {
		if raw, ok := s.cache.Get(ctx, cacheKey); ok {
			var cached ResolveResult
			if err := json.Unmarshal(raw, &cached); err == nil {
				return &cached, nil
			}
		}
	}

	versions, err := s.versionRepo.ListWithEntries(ctx, tx, query.SKUID, nil)
	if err != nil {
		return nil, fmt.Errorf("load forecast versions: %w", err)
	}

	groups := make([]forecast.VersionGroup, 0, len(versions))
	byGroup := make(map[forecast.VersionGroup]*types.ForecastVersion, len(versions))
	for _, v := range versions {
		g := forecast.VersionGroup{
			Month:    calendar.FromTime(v.Month),
			Revision: v.Version,
		}
		groups = append(groups, g)
		byGroup[g] = v
	}

	resolution := forecast.ResolveVersions(groups, query.Selector)

	var observations []forecast.Observation
	for month, revision := range resolution.Effective {
		v := byGroup[forecast.VersionGroup{Month: month, Revision: revision}]
		if v == nil {
			continue
		}
		for _, e := range v.Entries {
			code, name := shipToIdentity(e.ShipTo)
			if query.ShipToCode != "" && code != query.ShipToCode {
				continue
			}
			observations = append(observations, forecast.Observation{
				SnapshotMonth: calendar.FromTime(e.OrderMonth),
				TargetMonth:   month,
				ShipToCode:    code,
				ShipToName:    name,
				Value:         e.Value,
			})
		}
	}

	stair := forecast.BuildStaircase(observations, query.Mode)
	deltas := forecast.DeltaRows(stair)

	result, err := renderResult(stair, deltas, resolution, query.Selector)
	if err != nil {
		return nil, err
	}

	if s.cache != nil && tx == nil {
		if raw, err := json.Marshal(result); err == nil {
			s.cache.Set(ctx, cacheKey, raw, 5*time.Minute)
		}
	}
	return result, nil
}

func (s *forecastService) IngestObservation(ctx context.Context, tx *gorm.DB, req IngestRequest) (*types.ForecastEntry, error) {
	transaction := tx
	if transaction == nil {
		transaction = s.db
	}

	sku, err := s.skuRepo.GetByID(ctx, transaction, req.SKUID)
	if err != nil {
		return nil, fmt.Errorf("load sku: %w", err)
	}
	if sku == nil {
		return nil, fmt.Errorf("%w: %s", ErrSKUNotFound, req.SKUID)
	}

	snapshot, err := calendar.Parse(req.OrderDate)
	if err != nil {
		return nil, err
	}
	target, err := calendar.Resolve(req.Month, snapshot)
	if err != nil {
		return nil, err
	}

	code := req.ShipToCode
	if code == "" {
		code = types.DefaultShipToCode
	}
	shipTo, err := s.ensureShipTo(ctx, transaction, sku.ID, code, nil)
	if err != nil {
		return nil, err
	}

	version, err := s.versionRepo.Upsert(ctx, transaction, target.Time(), req.Version)
	if err != nil {
		return nil, fmt.Errorf("upsert forecast version: %w", err)
	}

	entry, err := s.entryRepo.Upsert(ctx, transaction, &types.ForecastEntry{
		ForecastVersionID: version.ID,
		SKUID:             sku.ID,
		ShipToID:          shipTo.ID,
		OrderMonth:        snapshot.Time(),
		Value:             req.Value,
	})
	if err != nil {
		return nil, fmt.Errorf("upsert forecast entry: %w", err)
	}
	entry.ForecastVersion = version
	entry.SKU = sku
	entry.ShipTo = shipTo

	if s.cache != nil {
		s.cache.Invalidate(ctx)
	}
	return entry, nil
}

func (s *forecastService) ensureShipTo(ctx context.Context, tx *gorm.DB, skuID uuid.UUID, code string, name *string) (*types.ShipTo, error) {
	existing, err := s.shipToRepo.GetBySKUAndCode(ctx, tx, skuID, code)
	if err != nil {
		return nil, fmt.Errorf("load ship-to: %w", err)
	}
	if existing != nil {
		return existing, nil
	}
	return s.shipToRepo.Create(ctx, tx, &types.ShipTo{
		SKUID: skuID,
		Code:  code,
		Name:  name,
	})
}

func shipToIdentity(shipTo *types.ShipTo) (string, string) {
	if shipTo == nil {
		return types.DefaultShipToCode, ""
	}
	name := ""
	if shipTo.Name != nil {
		name = *shipTo.Name
	}
	return shipTo.Code, name
}

func renderResult(stair forecast.Staircase, deltas [][]*int64, resolution forecast.Resolution, sel forecast.Selector) (*ResolveResult, error) {
	months := make([]string, len(stair.Axis))
	for i, m := range stair.Axis {
		label, err := calendar.Format(m)
		if err != nil {
			return nil, err
		}
		months[i] = label
	}

	rows := make([]StairRow, len(stair.Rows))
	for i, row := range stair.Rows {
		orderDate, err := calendar.Format(row.SnapshotMonth)
		if err != nil {
			return nil, err
		}
		firstMonth, err := calendar.Format(row.FirstMonth)
		if err != nil {
			return nil, err
		}
		lastMonth, err := calendar.Format(row.LastMonth)
		if err != nil {
			return nil, err
		}
		rows[i] = StairRow{
			OrderDate:  orderDate,
			ShipTo:     row.ShipToCode,
			ShipToName: row.ShipToName,
			FirstMonth: firstMonth,
			LastMonth:  lastMonth,
			Values:     row.Values,
			Deltas:     deltas[i],
		}
	}

	selection := make(map[string]int, len(resolution.Effective))
	for month, revision := range resolution.Effective {
		label, err := calendar.Format(month)
		if err != nil {
			return nil, err
		}
		selection[label] = revision
	}

	fallback := make([]string, len(resolution.FallbackMonths))
	for i, m := range resolution.FallbackMonths {
		label, err := calendar.Format(m)
		if err != nil {
			return nil, err
		}
		fallback[i] = label
	}

	available := resolution.Available
	if available == nil {
		available = []int{}
	}

	return &ResolveResult{
		Months:            months,
		Rows:              rows,
		AvailableVersions: available,
		RequestedVersion:  sel.String(),
		VersionSelection:  selection,
		FallbackMonths:    fallback,
	}, nil
}

func resolveCacheKey(query ResolveQuery) string {
	skuPart := "all"
	if query.SKUID != nil {
		skuPart = query.SKUID.String()
	}
	raw := fmt.Sprintf("%s|%s|%s|%d", skuPart, query.ShipToCode, query.Selector.String(), query.Mode)
	sum := sha256.Sum256([]byte(raw))
	return "forecast:resolve:" + hex.EncodeToString(sum[:8])
}
