package handler

import (
	"bytes"
	"context"
	"encoding/json"
	"net/http"
	"net/http/httptest"
	"sort"
	"testing"

	appinflation "github.com/Agustinixnova/monotributistapp-sub005/internal/application/inflation"
	"github.com/Agustinixnova/monotributistapp-sub005/internal/domain/inflation"
	"github.com/Agustinixnova/monotributistapp-sub005/internal/domain/shared"
	"github.com/Agustinixnova/monotributistapp-sub005/internal/domain/shared/valueobject"
	"github.com/gin-gonic/gin"
	"github.com/shopspring/decimal"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

type memRecordRepo struct {
	records map[string]*inflation.Record
}

func newMemRecordRepo() *memRecordRepo {
	return &memRecordRepo{records: make(map[string]*inflation.Record)}
}

func (m *memRecordRepo) FindInRange(ctx context.Context, from, to valueobject.Period) ([]inflation.Record, error) {
	var result []inflation.Record
	for _, r := range m.records {
		if !r.Period.Before(from) && !r.Period.After(to) {
			result = append(result, *r)
		}
	}
	sort.Slice(result, func(i, j int) bool { return result[i].Period.Before(result[j].Period) })
	return result, nil
}

func (m *memRecordRepo) FindByPeriod(ctx context.Context, period valueobject.Period) (*inflation.Record, error) {
	if r, ok := m.records[period.String()]; ok {
		copied := *r
		return &copied, nil
	}
	return nil, shared.ErrNotFound
}

func (m *memRecordRepo) Upsert(ctx context.Context, record *inflation.Record) error {
	copied := *record
	m.records[record.Period.String()] = &copied
	return nil
}

func (m *memRecordRepo) LatestPeriod(ctx context.Context) (valueobject.Period, error) {
	var latest valueobject.Period
	for _, r := range m.records {
		if latest.IsZero() || r.Period.After(latest) {
			latest = r.Period
		}
	}
	if latest.IsZero() {
		return valueobject.Period{}, shared.ErrNotFound
	}
	return latest, nil
}

func newInflationEngine(records *memRecordRepo) *gin.Engine {
	service := appinflation.NewAdjustmentService(records)
	engine := gin.New()
	api := engine.Group("/api/v1")
	NewInflationHandler(service).RegisterRoutes(api)
	return engine
}

func doJSON(t *testing.T, engine *gin.Engine, method, path string, body any) *httptest.ResponseRecorder {
	t.Helper()

	var buf bytes.Buffer
	if body != nil {
		require.NoError(t, json.NewEncoder(&buf).Encode(body))
	}
	req := httptest.NewRequest(method, path, &buf)
	req.Header.Set("Content-Type", "application/json")

	w := httptest.NewRecorder()
	engine.ServeHTTP(w, req)
	return w
}

func TestInflationHandlerUpsert(t *testing.T) {
	t.Run("publishes a rate and corrects it in place", func(t *testing.T) {
		records := newMemRecordRepo()
		engine := newInflationEngine(records)

		w := doJSON(t, engine, http.MethodPut, "/api/v1/inflation/records", appinflation.UpsertRecordRequest{
			Period:             "2024-03",
			MonthlyRatePercent: decimal.NewFromFloat(11.0),
		})
		require.Equal(t, http.StatusOK, w.Code)

		w = doJSON(t, engine, http.MethodPut, "/api/v1/inflation/records", appinflation.UpsertRecordRequest{
			Period:             "2024-03",
			MonthlyRatePercent: decimal.NewFromFloat(10.5),
		})
		require.Equal(t, http.StatusOK, w.Code)

		w = doJSON(t, engine, http.MethodGet, "/api/v1/inflation/records/2024-03", nil)
		require.Equal(t, http.StatusOK, w.Code)
		data := decodeResponse(t, w).Data.(map[string]any)
		assert.Equal(t, "10.5", data["monthly_rate_percent"])
	})

	t.Run("rejects a rate at -100%", func(t *testing.T) {
		engine := newInflationEngine(newMemRecordRepo())

		w := doJSON(t, engine, http.MethodPut, "/api/v1/inflation/records", appinflation.UpsertRecordRequest{
			Period:             "2024-03",
			MonthlyRatePercent: decimal.NewFromInt(-100),
		})

		assert.Equal(t, http.StatusBadRequest, w.Code)
	})
}

func TestInflationHandlerAdjustment(t *testing.T) {
	records := newMemRecordRepo()
	engine := newInflationEngine(records)

	for _, row := range []struct {
		period string
		rate   float64
	}{
		{"2024-02", 10},
		{"2024-03", 10},
	} {
		rec, err := inflation.NewRecord(mustPeriod(t, row.period), decimal.NewFromFloat(row.rate))
		require.NoError(t, err)
		require.NoError(t, records.Upsert(context.Background(), rec))
	}

	t.Run("compounds the rates after the base month", func(t *testing.T) {
		w := doJSON(t, engine, http.MethodPost, "/api/v1/inflation/adjustment", appinflation.AdjustmentRequest{
			Amount: decimal.NewFromInt(100),
			From:   "2024-01",
			To:     "2024-03",
		})

		require.Equal(t, http.StatusOK, w.Code)
		data := decodeResponse(t, w).Data.(map[string]any)
		assert.Equal(t, "21", data["accumulated_pct"])
		assert.Equal(t, "121", data["adjusted_amount"])
		assert.Equal(t, true, data["complete"])
	})

	t.Run("reports gaps in the window", func(t *testing.T) {
		w := doJSON(t, engine, http.MethodPost, "/api/v1/inflation/adjustment", appinflation.AdjustmentRequest{
			Amount: decimal.NewFromInt(100),
			From:   "2024-01",
			To:     "2024-04",
		})

		require.Equal(t, http.StatusOK, w.Code)
		data := decodeResponse(t, w).Data.(map[string]any)
		assert.Equal(t, false, data["complete"])
		assert.Equal(t, []any{"2024-04"}, data["missing_periods"])
	})

	t.Run("inverted window compounds to zero", func(t *testing.T) {
		w := doJSON(t, engine, http.MethodPost, "/api/v1/inflation/adjustment", appinflation.AdjustmentRequest{
			Amount: decimal.NewFromInt(100),
			From:   "2024-05",
			To:     "2024-01",
		})

		require.Equal(t, http.StatusOK, w.Code)
		data := decodeResponse(t, w).Data.(map[string]any)
		assert.Equal(t, "0", data["accumulated_pct"])
		assert.Equal(t, "100", data["adjusted_amount"])
		assert.Equal(t, true, data["complete"])
	})

	t.Run("malformed window is a validation failure", func(t *testing.T) {
		w := doJSON(t, engine, http.MethodPost, "/api/v1/inflation/adjustment", appinflation.AdjustmentRequest{
			Amount: decimal.NewFromInt(100),
			From:   "2025-13",
			To:     "2026-01",
		})

		assert.Equal(t, http.StatusBadRequest, w.Code)
	})
}

func TestInflationHandlerLatest(t *testing.T) {
	t.Run("empty series reports an empty period", func(t *testing.T) {
		engine := newInflationEngine(newMemRecordRepo())

		w := doJSON(t, engine, http.MethodGet, "/api/v1/inflation/latest", nil)

		require.Equal(t, http.StatusOK, w.Code)
		data := decodeResponse(t, w).Data.(map[string]any)
		assert.Equal(t, "", data["period"])
	})
}
