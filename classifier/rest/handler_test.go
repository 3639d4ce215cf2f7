package rest_test

import (
	"bytes"
	"context"
	"encoding/json"
	"io"
	"net/http"
	"net/http/httptest"
	"testing"

	"github.com/incognnitamood/DeadlockPredictionAnalysis/classifier/app"
	"github.com/incognnitamood/DeadlockPredictionAnalysis/classifier/rest"
	"github.com/incognnitamood/DeadlockPredictionAnalysis/config"
	"github.com/incognnitamood/DeadlockPredictionAnalysis/engine/domain"
	"github.com/incognnitamood/DeadlockPredictionAnalysis/pkg/logger"
	"github.com/incognnitamood/DeadlockPredictionAnalysis/pkg/util"
	"github.com/labstack/echo/v4"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
	"github.com/stretchr/testify/suite"
	"go.uber.org/fx"
)

func TestHandlerTestSuite(t *testing.T) {
	suite.Run(t, new(HandlerTestSuite))
}

type HandlerTestSuite struct {
	suite.Suite
	Handler *rest.Handler
	Ctx     context.Context
	Engine  *echo.Echo
}

func (suite *HandlerTestSuite) SetupSuite() {
	logger.InitLogger()
	suite.Ctx = context.Background()

	cfg := config.ClassifierConfig{Simulation: config.SimulationConfig{Seed: 7}.WithDefaults()}
	cfgModule, err := app.ConfigModule(cfg)
	suite.Require().NoError(err, "Failed to create config module")
	serviceModule, err := app.ServiceModule(cfgModule)
	suite.Require().NoError(err, "Failed to create service module")
	handlerModule, err := app.HandlerModule(serviceModule)
	suite.Require().NoError(err, "Failed to create handler module")

	err = fx.New(handlerModule, fx.Populate(&suite.Handler), fx.NopLogger).Start(suite.Ctx)
	suite.Require().NoError(err, "Failed to start Fx app")
	e := echo.New()
	e.HideBanner = true
	e.HidePort = true
	suite.Engine = e
	suite.Handler.SetupRoutes(e)
}

func (suite *HandlerTestSuite) JSONDecode(r *httptest.ResponseRecorder, dst any) {
	rBody, err := io.ReadAll(r.Body)
	suite.Require().NoError(err, "Failed to read response body")
	err = json.Unmarshal(rBody, dst)
	suite.Require().NoErrorf(err, "Failed to decode JSON response, body: %s", string(rBody))
}

func (suite *HandlerTestSuite) post(body []byte) *httptest.ResponseRecorder {
	req := httptest.NewRequest(http.MethodPost, "/api/predict-realtime", bytes.NewReader(body))
	req.Header.Set("Content-Type", "application/json")
	rec := httptest.NewRecorder()
	suite.Engine.ServeHTTP(rec, req)
	return rec
}

func (suite *HandlerTestSuite) TestHealthCheck() {
	req := httptest.NewRequest(http.MethodGet, "/api/health", nil)
	rec := httptest.NewRecorder()
	suite.Engine.ServeHTTP(rec, req)

	suite.Equal(http.StatusOK, rec.Code, "Expected status OK")
	var resp map[string]any
	suite.JSONDecode(rec, &resp)
	suite.Equal("healthy", resp["status"].(string), "Expected status to be healthy")
	suite.Equal(true, resp["models_loaded"], "Expected the scoring model to be reported as loaded")
}

func (suite *HandlerTestSuite) TestPredictRealtime() {
	cases := []struct {
		name  string
		load  float64
		procs int
		label domain.Label
	}{
		{"idle system", 10, 2, domain.LabelSafe},
		{"busy system", 60, 10, domain.LabelUnsafe},
		{"saturated system", 90, 60, domain.LabelDeadlockProne},
	}
	for _, tc := range cases {
		suite.Run(tc.name, func() {
			body, err := json.Marshal(rest.PredictRealtimeRequest{
				CPUPercent:    util.Ptr(tc.load),
				MemoryPercent: util.Ptr(tc.load),
				IOPercent:     util.Ptr(tc.load),
				NumProcesses:  util.Ptr(tc.procs),
				Processes:     []rest.ProcessPayload{{PID: 5000, CPUUsage: tc.load, WorkloadType: "mixed"}},
			})
			suite.Require().NoError(err)
			rec := suite.post(body)
			suite.Require().Equal(http.StatusOK, rec.Code, rec.Body.String())

			var resp rest.PredictRealtimeResponse
			suite.JSONDecode(rec, &resp)
			label, err := domain.ParseLabel(string(resp.Prediction))
			suite.Require().NoError(err)
			suite.Equal(tc.label, label)
			suite.Require().NotNil(resp.Confidence)
			probs := domain.ProbabilitiesFromMap(resp.Probabilities)
			suite.InDelta(100, probs.Sum(), 0.01)
			suite.InDelta(probs.Max(), *resp.Confidence, 0.01)
		})
	}
}

func (suite *HandlerTestSuite) TestPredictRealtimeOutOfRange() {
	cases := []struct {
		name            string
		cpu, memory, io float64
		procs           int
		label           domain.Label
	}{
		{"percent above and below bounds", 500, -20, 20, 3, domain.LabelSafe},
		{"negative process count", 60, 60, 60, -500, domain.LabelUnsafe},
		{"all saturated past bounds", 500, 500, 500, 0, domain.LabelDeadlockProne},
	}
	for _, tc := range cases {
		suite.Run(tc.name, func() {
			body, err := json.Marshal(rest.PredictRealtimeRequest{
				CPUPercent:    util.Ptr(tc.cpu),
				MemoryPercent: util.Ptr(tc.memory),
				IOPercent:     util.Ptr(tc.io),
				NumProcesses:  util.Ptr(tc.procs),
			})
			suite.Require().NoError(err)
			rec := suite.post(body)
			suite.Require().Equal(http.StatusOK, rec.Code, rec.Body.String())

			var resp rest.PredictRealtimeResponse
			suite.JSONDecode(rec, &resp)
			label, err := domain.ParseLabel(string(resp.Prediction))
			suite.Require().NoError(err)
			suite.Equal(tc.label, label)
			probs := domain.ProbabilitiesFromMap(resp.Probabilities)
			suite.InDelta(100, probs.Sum(), 0.01)
		})
	}
}

func (suite *HandlerTestSuite) TestPredictRealtimeMissingField() {
	rec := suite.post([]byte(`{"cpu_percent": 10, "memory_percent": 10, "num_processes": 3}`))
	suite.Equal(http.StatusBadRequest, rec.Code)
	var resp rest.ErrorResponse
	suite.JSONDecode(rec, &resp)
	suite.Equal("Missing required field: io_percent", resp.Error)
}

func (suite *HandlerTestSuite) TestPredictRealtimeNoBody() {
	rec := suite.post(nil)
	suite.Equal(http.StatusBadRequest, rec.Code)
	var resp rest.ErrorResponse
	suite.JSONDecode(rec, &resp)
	suite.Equal("No data provided", resp.Error)
}

func (suite *HandlerTestSuite) TestPredictRealtimeMalformed() {
	rec := suite.post([]byte(`{"cpu_percent": "high"`))
	suite.Equal(http.StatusBadRequest, rec.Code)
}

func TestPredictionDecodesNumericClassID(t *testing.T) {
	var resp rest.PredictRealtimeResponse
	err := json.Unmarshal([]byte(`{"prediction": 0, "probabilities": {"DEADLOCK": 80}}`), &resp)
	require.NoError(t, err)
	label, err := domain.ParseLabel(string(resp.Prediction))
	require.NoError(t, err)
	assert.Equal(t, domain.LabelDeadlockProne, label)

	err = json.Unmarshal([]byte(`{"prediction": 1.5}`), &resp)
	assert.Error(t, err)
}
