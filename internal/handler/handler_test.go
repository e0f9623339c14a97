package handler_test

import (
	"bytes"
	"context"
	"encoding/json"
	"errors"
	"mime/multipart"
	"net/http"
	"net/http/httptest"
	"net/url"
	"strings"
	"testing"
	"time"

	"github.com/go-chi/chi/v5"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/agrimitra/agrimitra/internal/flow"
	"github.com/agrimitra/agrimitra/internal/handler"
	"github.com/agrimitra/agrimitra/internal/llm"
	"github.com/agrimitra/agrimitra/internal/models"
	"github.com/agrimitra/agrimitra/internal/prompt"
	"github.com/agrimitra/agrimitra/internal/render"
)

var fixedNow = time.Date(2024, time.June, 10, 8, 0, 0, 0, time.UTC)

func newRegistry(t *testing.T, gen llm.Generator) *flow.Registry {
	t.Helper()
	lib, err := prompt.NewLibrary("")
	require.NoError(t, err)
	return flow.Default(&flow.Env{
		Generator: gen,
		Prompts:   lib,
		Now:       func() time.Time { return fixedNow },
		Timeout:   time.Second,
	})
}

func answer(body string) llm.Generator {
	return llm.GeneratorFunc(func(ctx context.Context, req llm.Request) (*llm.Response, error) {
		return &llm.Response{JSON: json.RawMessage(body), Provider: "fake"}, nil
	})
}

func newRouter(t *testing.T, reg *flow.Registry) http.Handler {
	t.Helper()
	pages, err := render.New()
	require.NoError(t, err)

	flows := handler.NewFlowsHandler(reg, 1<<20)
	web := handler.NewWebHandler(reg, pages, 64<<10)

	r := chi.NewRouter()
	r.Get("/", web.Dashboard)
	r.Get("/features/{flow}", web.Form)
	r.Post("/features/{flow}", web.Submit)
	r.Get("/api/v1/flows", flows.List)
	r.Post("/api/v1/flows/{flow}", flows.Run)
	return r
}

func do(h http.Handler, req *http.Request) *httptest.ResponseRecorder {
	rr := httptest.NewRecorder()
	h.ServeHTTP(rr, req)
	return rr
}

func postJSON(path, body string) *http.Request {
	req := httptest.NewRequest(http.MethodPost, path, strings.NewReader(body))
	req.Header.Set("Content-Type", "application/json")
	return req
}

func TestHealth(t *testing.T) {
	rr := do(http.HandlerFunc(handler.NewHealthHandler("gemini", "gemini-2.0-flash", false, 7).Health),
		httptest.NewRequest(http.MethodGet, "/health", nil))
	require.Equal(t, http.StatusOK, rr.Code)

	var resp models.HealthResponse
	require.NoError(t, json.Unmarshal(rr.Body.Bytes(), &resp))
	assert.Equal(t, "degraded", resp.Status)
	assert.Equal(t, "disabled", resp.Checks["llm"])

	rr = do(http.HandlerFunc(handler.NewHealthHandler("gemini", "gemini-2.0-flash", true, 7).Health),
		httptest.NewRequest(http.MethodGet, "/health", nil))
	require.NoError(t, json.Unmarshal(rr.Body.Bytes(), &resp))
	assert.Equal(t, "healthy", resp.Status)
	assert.Equal(t, "gemini/gemini-2.0-flash", resp.Checks["llm"])
}

func TestListFlows(t *testing.T) {
	rr := do(newRouter(t, newRegistry(t, nil)), httptest.NewRequest(http.MethodGet, "/api/v1/flows", nil))
	require.Equal(t, http.StatusOK, rr.Code)

	var resp models.FlowListResponse
	require.NoError(t, json.Unmarshal(rr.Body.Bytes(), &resp))
	assert.False(t, resp.ModelAvailable)
	require.Len(t, resp.Flows, 7)
	assert.Equal(t, flow.CropRecommendationName, resp.Flows[0].Name)
	assert.NotEmpty(t, resp.Flows[0].InputSchema)
}

func TestRunWeatherWithoutModel(t *testing.T) {
	rr := do(newRouter(t, newRegistry(t, nil)), postJSON("/api/v1/flows/weather-forecast", `{"location":"Mumbai"}`))
	require.Equal(t, http.StatusOK, rr.Code, rr.Body.String())

	var resp struct {
		Status string                       `json:"status"`
		Type   string                       `json:"type"`
		Result models.WeatherForecastOutput `json:"result"`
	}
	require.NoError(t, json.Unmarshal(rr.Body.Bytes(), &resp))
	assert.Equal(t, "success", resp.Status)
	assert.Equal(t, string(models.ResultWeather), resp.Type)
	assert.Len(t, resp.Result.Forecast, models.ForecastDays)
}

func TestRunErrorStatuses(t *testing.T) {
	failing := llm.GeneratorFunc(func(ctx context.Context, req llm.Request) (*llm.Response, error) {
		return nil, errors.New("upstream 500")
	})

	cases := []struct {
		name string
		gen  llm.Generator
		path string
		body string
		code int
	}{
		{"unknown flow", nil, "/api/v1/flows/horoscope", `{}`, http.StatusNotFound},
		{"validation", nil, "/api/v1/flows/fertilizer-suggestion", `{"soilType":"loamy","pH":"abc","temperature":20,"crop":"Wheat"}`, http.StatusBadRequest},
		{"bad json", nil, "/api/v1/flows/market-price", `{"cropName":`, http.StatusBadRequest},
		{"no model", nil, "/api/v1/flows/market-price", `{"cropName":"Wheat","location":"Pune"}`, http.StatusServiceUnavailable},
		{"generation", failing, "/api/v1/flows/market-price", `{"cropName":"Wheat","location":"Pune"}`, http.StatusBadGateway},
	}
	for _, tc := range cases {
		t.Run(tc.name, func(t *testing.T) {
			rr := do(newRouter(t, newRegistry(t, tc.gen)), postJSON(tc.path, tc.body))
			assert.Equal(t, tc.code, rr.Code, rr.Body.String())

			var resp models.ErrorResponse
			require.NoError(t, json.Unmarshal(rr.Body.Bytes(), &resp))
			assert.Equal(t, "error", resp.Status)
		})
	}
}

func TestRunValidationListsFields(t *testing.T) {
	rr := do(newRouter(t, newRegistry(t, nil)),
		postJSON("/api/v1/flows/fertilizer-suggestion", `{"soilType":"loamy","pH":15,"temperature":20,"crop":"Wheat"}`))
	require.Equal(t, http.StatusBadRequest, rr.Code)

	var resp models.ErrorResponse
	require.NoError(t, json.Unmarshal(rr.Body.Bytes(), &resp))
	require.NotEmpty(t, resp.Errors)
	assert.Equal(t, "pH", resp.Errors[0].Field)
	assert.Equal(t, "pH must be between 0 and 14.", resp.Errors[0].Message)
}

func TestRunMarketPrice(t *testing.T) {
	gen := answer(`{"marketData":{"price":"2,150","unit":"quintal","trend":"Rising","analysis":"Demand is up."}}`)
	rr := do(newRouter(t, newRegistry(t, gen)), postJSON("/api/v1/flows/market-price", `{"cropName":"Wheat","location":"Pune"}`))
	require.Equal(t, http.StatusOK, rr.Code, rr.Body.String())

	var resp struct {
		Result models.MarketPriceOutput `json:"result"`
	}
	require.NoError(t, json.Unmarshal(rr.Body.Bytes(), &resp))
	assert.Equal(t, "Wheat", resp.Result.MarketData.CropName)
	assert.Equal(t, models.TrendRising, resp.Result.MarketData.Trend)
	assert.Equal(t, "2024-06-10", resp.Result.MarketData.Date)
}

func TestDashboardAndForm(t *testing.T) {
	h := newRouter(t, newRegistry(t, nil))

	rr := do(h, httptest.NewRequest(http.MethodGet, "/", nil))
	require.Equal(t, http.StatusOK, rr.Code)
	assert.Contains(t, rr.Body.String(), "/features/crop-calendar")

	rr = do(h, httptest.NewRequest(http.MethodGet, "/features/crop-calendar", nil))
	require.Equal(t, http.StatusOK, rr.Code)
	assert.Contains(t, rr.Body.String(), `name="plantingDate"`)

	rr = do(h, httptest.NewRequest(http.MethodGet, "/features/horoscope", nil))
	assert.Equal(t, http.StatusNotFound, rr.Code)
}

func postForm(path string, values url.Values) *http.Request {
	req := httptest.NewRequest(http.MethodPost, path, strings.NewReader(values.Encode()))
	req.Header.Set("Content-Type", "application/x-www-form-urlencoded")
	return req
}

func TestSubmitFormValidation(t *testing.T) {
	h := newRouter(t, newRegistry(t, nil))
	rr := do(h, postForm("/features/fertilizer-suggestion", url.Values{
		"soilType": {"loamy"}, "pH": {"abc"}, "temperature": {"25"}, "crop": {"Wheat"},
	}))
	require.Equal(t, http.StatusBadRequest, rr.Code)
	assert.Contains(t, rr.Body.String(), "Soil pH must be a number.")
	assert.Contains(t, rr.Body.String(), `value="Wheat"`)
}

func TestSubmitFormWeather(t *testing.T) {
	rr := do(newRouter(t, newRegistry(t, nil)), postForm("/features/weather-forecast", url.Values{"location": {"Pune"}}))
	require.Equal(t, http.StatusOK, rr.Code, rr.Body.String())
	assert.Contains(t, rr.Body.String(), "Weather Forecast &amp; Alerts")
	assert.Contains(t, rr.Body.String(), "2024-06-11")
}

func TestSubmitFormFailureNotice(t *testing.T) {
	rr := do(newRouter(t, newRegistry(t, nil)), postForm("/features/market-price", url.Values{
		"cropName": {"Wheat"}, "location": {"Pune"},
	}))
	assert.Equal(t, http.StatusServiceUnavailable, rr.Code)
	assert.Contains(t, rr.Body.String(), "Could not retrieve market price information.")
}

func TestSubmitDiseaseRejectsNonImage(t *testing.T) {
	var body bytes.Buffer
	mw := multipart.NewWriter(&body)
	part, err := mw.CreateFormFile("photoDataUri", "notes.txt")
	require.NoError(t, err)
	_, err = part.Write([]byte("just some text, not a photo"))
	require.NoError(t, err)
	require.NoError(t, mw.Close())

	req := httptest.NewRequest(http.MethodPost, "/features/disease-detection", &body)
	req.Header.Set("Content-Type", mw.FormDataContentType())

	rr := do(newRouter(t, newRegistry(t, answer(`{}`))), req)
	assert.Equal(t, http.StatusBadRequest, rr.Code)
	assert.Contains(t, rr.Body.String(), "Please select an image file.")
}

func TestStatusFor(t *testing.T) {
	assert.Equal(t, http.StatusOK, handler.StatusFor(nil))
	assert.Equal(t, http.StatusBadGateway, handler.StatusFor(flow.ErrGeneration))
	assert.Equal(t, http.StatusInternalServerError, handler.StatusFor(errors.New("boom")))
}
