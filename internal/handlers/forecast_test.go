package handlers

import (
	"context"
	"fmt"
	"net/http"
	"net/http/httptest"
	"strings"
	"testing"

	"github.com/gin-gonic/gin"
	"gorm.io/gorm"

	"github.com/stairforecast/backend/internal/calendar"
	"github.com/stairforecast/backend/internal/logger"
	"github.com/stairforecast/backend/internal/services"
	"github.com/stairforecast/backend/internal/types"
)

type stubForecastService struct {
	ingestErr error
}

func (s *stubForecastService) Resolve(ctx context.Context, tx *gorm.DB, query services.ResolveQuery) (*services.ResolveResult, error) {
	return &services.ResolveResult{}, nil
}

func (s *stubForecastService) IngestObservation(ctx context.Context, tx *gorm.DB, req services.IngestRequest) (*types.ForecastEntry, error) {
	if s.ingestErr != nil {
		return nil, s.ingestErr
	}
	return &types.ForecastEntry{}, nil
}

func ingestHandler(tb testing.TB, svc services.ForecastService) *ForecastHandler {
	tb.Helper()
	log, err := logger.New("test")
	if err != nil {
		tb.Fatalf("init logger: %v", err)
	}
	return NewForecastHandler(log, svc)
}

func postIngest(handler *ForecastHandler, body string) *httptest.ResponseRecorder {
	gin.SetMode(gin.TestMode)
	rec := httptest.NewRecorder()
	c, _ := gin.CreateTestContext(rec)
	c.Request = httptest.NewRequest(http.MethodPost, "/api/forecast", strings.NewReader(body))
	c.Request.Header.Set("Content-Type", "application/json")
	handler.Ingest(c)
	return rec
}

func TestIngestStatusByErrorKind(t *testing.T) {
	const body = `{"sku_id":"0b36e5f8-94ad-4c3f-b7ad-0d7a81f1c6a1","order_date":"Jul-24","month":"N+1","value":100}`

	cases := []struct {
		name       string
		err        error
		wantStatus int
	}{
		{"invalid label", fmt.Errorf("%w: %q", calendar.ErrInvalidLabel, "Xyz-24"), http.StatusBadRequest},
		{"unknown sku", fmt.Errorf("%w: 0b36e5f8", services.ErrSKUNotFound), http.StatusNotFound},
		{"storage failure", fmt.Errorf("upsert forecast version: connection refused"), http.StatusInternalServerError},
		{"success", nil, http.StatusCreated},
	}
	for _, tc := range cases {
		t.Run(tc.name, func(t *testing.T) {
			handler := ingestHandler(t, &stubForecastService{ingestErr: tc.err})
			rec := postIngest(handler, body)
			if rec.Code != tc.wantStatus {
				t.Errorf("status = %d, want %d (body %s)", rec.Code, tc.wantStatus, rec.Body.String())
			}
		})
	}
}

func TestIngestRejectsMalformedBody(t *testing.T) {
	handler := ingestHandler(t, &stubForecastService{})
	rec := postIngest(handler, `{"sku_id":"not-a-uuid","order_date":"Jul-24","month":"N","value":1}`)
	if rec.Code != http.StatusBadRequest {
		t.Errorf("status = %d, want %d", rec.Code, http.StatusBadRequest)
	}
}
