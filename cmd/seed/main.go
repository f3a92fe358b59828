package main

import (
	"context"
	"flag"
	"fmt"
	"math"
	"os"

	"github.com/joho/godotenv"
	"gopkg.in/yaml.v3"

	"github.com/stairforecast/backend/internal/app"
	"github.com/stairforecast/backend/internal/services"
	"github.com/stairforecast/backend/internal/types"
)

type seedFile struct {
	DefaultVersion int `yaml:"default_version"`
	Bump           struct {
		Version int      `yaml:"version"`
		Factor  float64  `yaml:"factor"`
		Months  []string `yaml:"months"`
	} `yaml:"bump"`
	SKUs []struct {
		PartNumber string `yaml:"part_number"`
		PartName   string `yaml:"part_name"`
		Order      string `yaml:"order"`
		Forecast   []struct {
			OrderDate string `yaml:"order_date"`
			Month     string `yaml:"month"`
			Value     int64  `yaml:"value"`
		} `yaml:"forecast"`
	} `yaml:"skus"`
}

func main() {
	if err := godotenv.Load(); err != nil {
		fmt.Println("No .env file found, relying on environment")
	}

	path := flag.String("file", "scripts/seed.yaml", "seed fixture path")
	flag.Parse()

	application, err := app.New()
	if err != nil {
		fmt.Printf("Failed to init app: %v\n", err)
		os.Exit(1)
	}
	defer application.Close()

	if err := run(application, *path); err != nil {
		application.Log.Error("Seeding failed", "error", err)
		os.Exit(1)
	}
}

func run(application *app.App, path string) error {
	raw, err := os.ReadFile(path)
	if err != nil {
		return fmt.Errorf("read seed file: %w", err)
	}
	var fixture seedFile
	if err := yaml.Unmarshal(raw, &fixture); err != nil {
		return fmt.Errorf("parse seed file: %w", err)
	}
	if fixture.DefaultVersion <= 0 {
		fixture.DefaultVersion = services.DefaultIngestVersion
	}

	ctx := context.Background()
	log := application.Log
	bumpMonths := make(map[string]bool, len(fixture.Bump.Months))
	for _, m := range fixture.Bump.Months {
		bumpMonths[m] = true
	}

	entries := 0
	for _, skuData := range fixture.SKUs {
		created, err := ensureSKU(ctx, application, skuData.PartNumber, skuData.PartName, skuData.Order)
		if err != nil {
			return err
		}

		for _, record := range skuData.Forecast {
			if _, err := application.Services.Forecast.IngestObservation(ctx, nil, services.IngestRequest{
				SKUID:     created.ID,
				OrderDate: record.OrderDate,
				Month:     record.Month,
				Version:   fixture.DefaultVersion,
				Value:     record.Value,
			}); err != nil {
				return fmt.Errorf("seed %s %s/%s: %w", skuData.PartNumber, record.OrderDate, record.Month, err)
			}
			entries++

			if bumpMonths[record.Month] && fixture.Bump.Version > 0 {
				bumped := int64(math.Round(float64(record.Value) * fixture.Bump.Factor))
				if bumped < 0 {
					bumped = 0
				}
				if _, err := application.Services.Forecast.IngestObservation(ctx, nil, services.IngestRequest{
					SKUID:     created.ID,
					OrderDate: record.OrderDate,
					Month:     record.Month,
					Version:   fixture.Bump.Version,
					Value:     bumped,
				}); err != nil {
					return fmt.Errorf("seed bump %s %s/%s: %w", skuData.PartNumber, record.OrderDate, record.Month, err)
				}
				entries++
			}
		}
		log.Info("Seeded SKU", "part_number", skuData.PartNumber, "rows", len(skuData.Forecast))
	}

	log.Info("Seeding complete", "skus", len(fixture.SKUs), "entries", entries)
	return nil
}

func ensureSKU(ctx context.Context, application *app.App, partNumber, partName, order string) (*types.SKU, error) {
	existing, err := application.Repos.SKU.GetByPartNumber(ctx, nil, partNumber)
	if err != nil {
		return nil, fmt.Errorf("load sku %s: %w", partNumber, err)
	}
	if existing != nil {
		return existing, nil
	}
	return application.Services.SKU.Create(ctx, nil, services.CreateSKURequest{
		PartNumber: partNumber,
		PartName:   partName,
		OrderCode:  order,
	})
}
