package http

import (
	"bytes"
	"encoding/json"
	"net/http"
	"net/http/httptest"
	"testing"

	"github.com/gin-gonic/gin"
	"github.com/google/uuid"
	"github.com/sirupsen/logrus"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/simaogato/dripsim-backend/internal/adapter/repository/memory"
	"github.com/simaogato/dripsim-backend/internal/domain"
	"github.com/simaogato/dripsim-backend/internal/usecase/scenario"
)

func init() {
	gin.SetMode(gin.TestMode)
}

func newTestRouter() *gin.Engine {
	logger := logrus.New()
	logger.SetOutput(bytes.NewBuffer(nil))
	return Router(scenario.NewService(memory.New()), logger)
}

func testAssumptions() domain.Assumptions {
	return domain.Assumptions{
		Investor: domain.InvestorProfile{
			InitialInvestment: 10_000,
			InitialSharePrice: 25,
		},
		Schedule: domain.Schedule{Months: 12, StartMonth: 1, StartYear: 2025},
		Price:    domain.PriceModelConfig{Model: domain.PriceGeometric},
		Dividend: domain.DividendModelConfig{
			Model:        domain.DividendYield,
			YieldPercent: 1,
			YieldPeriod:  domain.YieldPer4Week,
		},
	}
}

func doJSON(t *testing.T, router *gin.Engine, method, path string, body any) *httptest.ResponseRecorder {
	t.Helper()
	var reader *bytes.Reader
	if body != nil {
		raw, err := json.Marshal(body)
		require.NoError(t, err)
		reader = bytes.NewReader(raw)
	} else {
		reader = bytes.NewReader(nil)
	}
	req := httptest.NewRequest(method, path, reader)
	req.Header.Set("Content-Type", "application/json")
	rec := httptest.NewRecorder()
	router.ServeHTTP(rec, req)
	return rec
}

func TestSimulateEndpoint(t *testing.T) {
	router := newTestRouter()

	rec := doJSON(t, router, http.MethodPost, "/api/v1/simulate", testAssumptions())
	require.Equal(t, http.StatusOK, rec.Code)

	var result domain.SimulationResult
	require.NoError(t, json.Unmarshal(rec.Body.Bytes(), &result))
	assert.Len(t, result.Amortization, 13)
	assert.InDelta(t, 400, result.Summary.InitialShareCount, 1e-9)
}

func TestSimulateEndpoint_RejectsInvalidAssumptions(t *testing.T) {
	router := newTestRouter()

	bad := testAssumptions()
	bad.Schedule.Months = 0

	rec := doJSON(t, router, http.MethodPost, "/api/v1/simulate", bad)
	assert.Equal(t, http.StatusBadRequest, rec.Code)
}

func TestScenarioLifecycle(t *testing.T) {
	router := newTestRouter()

	rec := doJSON(t, router, http.MethodPost, "/api/v1/scenarios", map[string]any{
		"name":        "base case",
		"assumptions": testAssumptions(),
	})
	require.Equal(t, http.StatusCreated, rec.Code)

	var created domain.Scenario
	require.NoError(t, json.Unmarshal(rec.Body.Bytes(), &created))
	require.NotEqual(t, uuid.Nil, created.ID)

	rec = doJSON(t, router, http.MethodGet, "/api/v1/scenarios", nil)
	require.Equal(t, http.StatusOK, rec.Code)
	var listing struct {
		Scenarios []domain.Scenario `json:"scenarios"`
	}
	require.NoError(t, json.Unmarshal(rec.Body.Bytes(), &listing))
	assert.Len(t, listing.Scenarios, 1)

	rec = doJSON(t, router, http.MethodPost, "/api/v1/scenarios/"+created.ID.String()+"/run", nil)
	require.Equal(t, http.StatusOK, rec.Code)
	var result domain.SimulationResult
	require.NoError(t, json.Unmarshal(rec.Body.Bytes(), &result))
	assert.Len(t, result.Amortization, 13)

	rec = doJSON(t, router, http.MethodDelete, "/api/v1/scenarios/"+created.ID.String(), nil)
	require.Equal(t, http.StatusNoContent, rec.Code)

	rec = doJSON(t, router, http.MethodGet, "/api/v1/scenarios/"+created.ID.String(), nil)
	assert.Equal(t, http.StatusNotFound, rec.Code)
}

func TestScenarioEndpoints_BadID(t *testing.T) {
	router := newTestRouter()
	rec := doJSON(t, router, http.MethodGet, "/api/v1/scenarios/not-a-uuid", nil)
	assert.Equal(t, http.StatusBadRequest, rec.Code)
}

func TestSaveScenario_MissingName(t *testing.T) {
	router := newTestRouter()
	rec := doJSON(t, router, http.MethodPost, "/api/v1/scenarios", map[string]any{
		"assumptions": testAssumptions(),
	})
	assert.Equal(t, http.StatusBadRequest, rec.Code)
}
