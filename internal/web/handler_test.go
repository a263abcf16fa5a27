package web

import (
	"context"
	"encoding/json"
	"errors"
	"net/http"
	"net/http/httptest"
	"net/url"
	"strings"
	"sync"
	"testing"

	"github.com/BerylCAtieno/business-dashboard/internal/form"
	"github.com/BerylCAtieno/business-dashboard/internal/logger"
	"github.com/BerylCAtieno/business-dashboard/internal/models"
	"github.com/BerylCAtieno/business-dashboard/internal/store"
	"github.com/gin-gonic/gin"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

type fakeBackend struct {
	mu          sync.Mutex
	fetches     int
	fetchErr    error
	headlineErr error
	headline    string
}

func (f *fakeBackend) FetchBusinessData(_ context.Context, name, location string) (*models.BusinessDataResponse, error) {
	f.mu.Lock()
	defer f.mu.Unlock()
	f.fetches++
	if f.fetchErr != nil {
		return nil, f.fetchErr
	}
	return &models.BusinessDataResponse{Rating: 4.5, Reviews: 120, Headline: "Best Cakes in " + location}, nil
}

func (f *fakeBackend) RegenerateHeadline(_ context.Context, name, location string) (*models.HeadlineResponse, error) {
	f.mu.Lock()
	defer f.mu.Unlock()
	if f.headlineErr != nil {
		return nil, f.headlineErr
	}
	return &models.HeadlineResponse{Headline: f.headline}, nil
}

type harness struct {
	router  *gin.Engine
	backend *fakeBackend
	store   *store.Store
	form    *form.Machine
}

func newHarness() *harness {
	gin.SetMode(gin.TestMode)
	backend := &fakeBackend{headline: "Mumbai's Sweetest Secret"}
	log := logger.NewNop()
	s := store.New(backend, log)
	m := form.New()

	r := gin.New()
	r.SetHTMLTemplate(Templates())
	NewHandler(s, m, log).Register(r)

	return &harness{router: r, backend: backend, store: s, form: m}
}

func (h *harness) get(path string) *httptest.ResponseRecorder {
	w := httptest.NewRecorder()
	h.router.ServeHTTP(w, httptest.NewRequest(http.MethodGet, path, nil))
	return w
}

func (h *harness) postForm(path string, values url.Values) *httptest.ResponseRecorder {
	req := httptest.NewRequest(http.MethodPost, path, strings.NewReader(values.Encode()))
	req.Header.Set("Content-Type", "application/x-www-form-urlencoded")
	w := httptest.NewRecorder()
	h.router.ServeHTTP(w, req)
	return w
}

func TestSelectTemplate(t *testing.T) {
	assert.Equal(t, "form.html", selectTemplate(store.ViewForm))
	assert.Equal(t, "card.html", selectTemplate(store.ViewCard))
}

func TestDashboardStartsOnForm(t *testing.T) {
	h := newHarness()

	w := h.get("/")

	require.Equal(t, http.StatusOK, w.Code)
	body := w.Body.String()
	assert.Contains(t, body, "Business Dashboard")
	assert.Contains(t, body, `name="businessName"`)
	assert.Contains(t, body, `name="location"`)
	assert.Contains(t, body, "Get Business Data")
	assert.NotContains(t, body, "Regenerate SEO Headline")
}

func TestFieldEvents(t *testing.T) {
	h := newHarness()

	w := h.postForm("/form/field", url.Values{"field": {"businessName"}, "value": {"A"}, "event": {"change"}})
	require.Equal(t, http.StatusOK, w.Code)
	assert.JSONEq(t, `{"field":"businessName","value":"A","error":"","touched":false}`, w.Body.String())

	w = h.postForm("/form/field", url.Values{"field": {"businessName"}, "value": {"A"}, "event": {"blur"}})
	require.Equal(t, http.StatusOK, w.Code)
	assert.JSONEq(t, `{"field":"businessName","value":"A","error":"Must be at least 2 characters","touched":true}`, w.Body.String())

	w = h.postForm("/form/field", url.Values{"field": {"businessName"}, "value": {"Ab"}, "event": {"change"}})
	assert.JSONEq(t, `{"field":"businessName","value":"Ab","error":"","touched":true}`, w.Body.String())
}

func TestFieldEventRejectsUnknownInput(t *testing.T) {
	h := newHarness()

	w := h.postForm("/form/field", url.Values{"field": {"email"}, "value": {"x"}, "event": {"blur"}})
	assert.Equal(t, http.StatusBadRequest, w.Code)

	w = h.postForm("/form/field", url.Values{"field": {"location"}, "value": {"x"}, "event": {"focus"}})
	assert.Equal(t, http.StatusBadRequest, w.Code)
}

func TestInvalidSubmitShowsErrorsWithoutFetching(t *testing.T) {
	h := newHarness()

	w := h.postForm("/submit", url.Values{"businessName": {"A"}, "location": {""}})
	require.Equal(t, http.StatusSeeOther, w.Code)
	assert.Equal(t, "/", w.Header().Get("Location"))
	assert.Equal(t, 0, h.backend.fetches)

	body := h.get("/").Body.String()
	assert.Contains(t, body, "Must be at least 2 characters")
	assert.Contains(t, body, "This field is required")
	assert.Contains(t, body, `class="invalid"`)
}

func TestValidSubmitShowsCard(t *testing.T) {
	h := newHarness()

	w := h.postForm("/submit", url.Values{"businessName": {"Cake & Co"}, "location": {"Mumbai"}})
	require.Equal(t, http.StatusSeeOther, w.Code)
	assert.Equal(t, 1, h.backend.fetches)

	body := h.get("/").Body.String()
	assert.Contains(t, body, "Cake &amp; Co Dashboard")
	assert.Contains(t, body, "4.5")
	assert.Contains(t, body, "(120 reviews)")
	assert.Contains(t, body, "Best Cakes in Mumbai")
	assert.Contains(t, body, "Regenerate SEO Headline")
}

func TestFailedSubmitStaysOnFormWithBanner(t *testing.T) {
	h := newHarness()
	h.backend.fetchErr = errors.New("connection refused")

	h.postForm("/submit", url.Values{"businessName": {"Cake & Co"}, "location": {"Mumbai"}})

	body := h.get("/").Body.String()
	assert.Contains(t, body, store.SubmitErrorMessage)
	assert.Contains(t, body, "Get Business Data")
	assert.Contains(t, body, `value="Cake &amp; Co"`)
}

func TestRegenerateUpdatesHeadline(t *testing.T) {
	h := newHarness()
	h.postForm("/submit", url.Values{"businessName": {"Cake & Co"}, "location": {"Mumbai"}})

	w := h.postForm("/regenerate", nil)
	require.Equal(t, http.StatusSeeOther, w.Code)

	body := h.get("/").Body.String()
	assert.Contains(t, body, "Mumbai&#39;s Sweetest Secret")
	assert.NotContains(t, body, "Best Cakes in Mumbai")
}

func TestRegenerateFailureShowsBanner(t *testing.T) {
	h := newHarness()
	h.postForm("/submit", url.Values{"businessName": {"Cake & Co"}, "location": {"Mumbai"}})
	h.backend.headlineErr = errors.New("timeout")

	h.postForm("/regenerate", nil)

	body := h.get("/").Body.String()
	assert.Contains(t, body, store.RegenerateErrorMessage)
	assert.Contains(t, body, "Best Cakes in Mumbai")
}

func TestRegenerateOnFormIsIgnored(t *testing.T) {
	h := newHarness()

	w := h.postForm("/regenerate", nil)

	assert.Equal(t, http.StatusSeeOther, w.Code)
	assert.Equal(t, store.ViewForm, h.store.Snapshot().ViewMode)
}

func TestServeState(t *testing.T) {
	h := newHarness()
	h.postForm("/submit", url.Values{"businessName": {"Cake & Co"}, "location": {"Mumbai"}})

	w := h.get("/state")
	require.Equal(t, http.StatusOK, w.Code)

	var got struct {
		Store struct {
			Loading  bool                  `json:"loading"`
			ViewMode string                `json:"viewMode"`
			Record   models.BusinessRecord `json:"record"`
		} `json:"store"`
		Form map[string]fieldReply `json:"form"`
	}
	require.NoError(t, json.Unmarshal(w.Body.Bytes(), &got))
	assert.False(t, got.Store.Loading)
	assert.Equal(t, "card", got.Store.ViewMode)
	assert.Equal(t, "Best Cakes in Mumbai", got.Store.Record.Headline)
	assert.True(t, got.Form["location"].Touched)
}
