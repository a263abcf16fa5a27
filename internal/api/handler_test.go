package api

import (
	"context"
	"encoding/json"
	"errors"
	"net/http"
	"net/http/httptest"
	"strings"
	"testing"
	"time"

	"github.com/BerylCAtieno/business-dashboard/internal/logger"
	"github.com/BerylCAtieno/business-dashboard/internal/models"
	"github.com/gin-gonic/gin"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

type stubGenerator struct {
	headline string
	err      error
	got      []string
}

func (s *stubGenerator) Generate(_ context.Context, name, location string) (string, error) {
	s.got = append(s.got, name+"|"+location)
	return s.headline, s.err
}

func newRouter(gen *stubGenerator) *gin.Engine {
	gin.SetMode(gin.TestMode)
	log := logger.NewNop()
	r := gin.New()
	r.Use(RequestLoggingMiddleware(log))
	NewHandler(gen, log, time.Second).Register(r)
	return r
}

func TestHandleBusinessData(t *testing.T) {
	gen := &stubGenerator{headline: "Best Cakes in Mumbai"}
	r := newRouter(gen)

	req := httptest.NewRequest(http.MethodPost, "/business-data", strings.NewReader(`{"name":"Cake & Co","location":"Mumbai"}`))
	req.Header.Set("Content-Type", "application/json")
	w := httptest.NewRecorder()
	r.ServeHTTP(w, req)

	require.Equal(t, http.StatusOK, w.Code)
	var resp models.BusinessDataResponse
	require.NoError(t, json.Unmarshal(w.Body.Bytes(), &resp))

	rating, reviews := EstimateReputation("Cake & Co", "Mumbai")
	assert.Equal(t, models.BusinessDataResponse{Rating: rating, Reviews: reviews, Headline: "Best Cakes in Mumbai"}, resp)
	assert.Equal(t, []string{"Cake & Co|Mumbai"}, gen.got)
	assert.NotEmpty(t, w.Header().Get(requestIDHeader))
}

func TestHandleBusinessDataRequiresFields(t *testing.T) {
	gen := &stubGenerator{headline: "unused"}
	r := newRouter(gen)

	req := httptest.NewRequest(http.MethodPost, "/business-data", strings.NewReader(`{"name":"Cake & Co"}`))
	req.Header.Set("Content-Type", "application/json")
	w := httptest.NewRecorder()
	r.ServeHTTP(w, req)

	assert.Equal(t, http.StatusBadRequest, w.Code)
	assert.JSONEq(t, `{"error":"name and location are required"}`, w.Body.String())
	assert.Empty(t, gen.got)
}

func TestHandleRegenerateHeadline(t *testing.T) {
	gen := &stubGenerator{headline: "Fresh Cakes Daily"}
	r := newRouter(gen)

	req := httptest.NewRequest(http.MethodGet, "/regenerate-headline?name=Cake+%26+Co&location=Navi%20Mumbai", nil)
	req.Header.Set(requestIDHeader, "req-123")
	w := httptest.NewRecorder()
	r.ServeHTTP(w, req)

	require.Equal(t, http.StatusOK, w.Code)
	assert.JSONEq(t, `{"headline":"Fresh Cakes Daily"}`, w.Body.String())
	assert.Equal(t, []string{"Cake & Co|Navi Mumbai"}, gen.got)
	assert.Equal(t, "req-123", w.Header().Get(requestIDHeader))
}

func TestHandleRegenerateHeadlineMissingQuery(t *testing.T) {
	r := newRouter(&stubGenerator{})

	w := httptest.NewRecorder()
	r.ServeHTTP(w, httptest.NewRequest(http.MethodGet, "/regenerate-headline?name=Cake", nil))

	assert.Equal(t, http.StatusBadRequest, w.Code)
}

func TestGeneratorFailureIsBadGateway(t *testing.T) {
	r := newRouter(&stubGenerator{err: errors.New("quota exceeded")})

	w := httptest.NewRecorder()
	r.ServeHTTP(w, httptest.NewRequest(http.MethodGet, "/regenerate-headline?name=Cake&location=Pune", nil))

	assert.Equal(t, http.StatusBadGateway, w.Code)
	assert.JSONEq(t, `{"error":"failed to generate headline"}`, w.Body.String())
}

func TestHealth(t *testing.T) {
	r := newRouter(&stubGenerator{})

	w := httptest.NewRecorder()
	r.ServeHTTP(w, httptest.NewRequest(http.MethodGet, "/health", nil))

	assert.Equal(t, http.StatusOK, w.Code)
	assert.Equal(t, "OK", w.Body.String())
}
