// Package web serves the dashboard to browsers: the business form until a
// business has been fetched, the business card afterwards.
package web

import (
	"context"
	"embed"
	"errors"
	"html/template"
	"net/http"

	"github.com/BerylCAtieno/business-dashboard/internal/form"
	"github.com/BerylCAtieno/business-dashboard/internal/logger"
	"github.com/BerylCAtieno/business-dashboard/internal/models"
	"github.com/BerylCAtieno/business-dashboard/internal/store"
	"github.com/gin-gonic/gin"
)

//go:embed templates/*.html
var templateFS embed.FS

// Templates parses the embedded page templates for gin's HTML renderer.
func Templates() *template.Template {
	return template.Must(template.New("").ParseFS(templateFS, "templates/*.html"))
}

var fieldLabels = map[form.FieldName]struct{ label, placeholder string }{
	form.BusinessName: {"Business Name", "e.g., Cake & Co"},
	form.Location:     {"Location", "e.g., Mumbai"},
}

type fieldView struct {
	Name        string
	Label       string
	Placeholder string
	Value       string
	Error       string
	Invalid     bool
}

type pageView struct {
	Title   string
	Loading bool
	Errors  *store.OperationErrors
	Fields  []fieldView
	Record  models.BusinessRecord
}

type fieldEvent struct {
	Field string `form:"field" binding:"required"`
	Value string `form:"value"`
	Event string `form:"event" binding:"required,oneof=change blur"`
}

type fieldReply struct {
	Field   string `json:"field"`
	Value   string `json:"value"`
	Error   string `json:"error"`
	Touched bool   `json:"touched"`
}

type submission struct {
	BusinessName string `form:"businessName"`
	Location     string `form:"location"`
}

type Handler struct {
	store *store.Store
	form  *form.Machine
	log   logger.ILogger
}

func NewHandler(s *store.Store, m *form.Machine, log logger.ILogger) *Handler {
	return &Handler{
		store: s,
		form:  m,
		log:   log,
	}
}

// Register mounts the dashboard routes. The engine must have Templates()
// installed with SetHTMLTemplate.
func (h *Handler) Register(r gin.IRouter) {
	r.GET("/", h.ServeDashboard)
	r.POST("/form/field", h.HandleFieldEvent)
	r.POST("/submit", h.HandleSubmit)
	r.POST("/regenerate", h.HandleRegenerate)
	r.GET("/state", h.ServeState)
	r.GET("/health", func(c *gin.Context) {
		c.String(http.StatusOK, "OK")
	})
}

// selectTemplate is the view selector: the form until a fetch succeeds, the
// card from then on.
func selectTemplate(mode store.ViewMode) string {
	if mode == store.ViewCard {
		return "card.html"
	}
	return "form.html"
}

func (h *Handler) ServeDashboard(c *gin.Context) {
	snap := h.store.Snapshot()

	page := pageView{
		Loading: snap.Loading,
		Errors:  snap.LastError,
	}
	switch snap.ViewMode {
	case store.ViewCard:
		page.Title = snap.Record.Name + " Dashboard"
		page.Record = snap.Record
	default:
		page.Title = "Business Dashboard"
		page.Fields = h.fieldViews()
	}

	c.HTML(http.StatusOK, selectTemplate(snap.ViewMode), page)
}

func (h *Handler) fieldViews() []fieldView {
	fields := h.form.Fields()
	out := make([]fieldView, 0, len(form.FieldNames))
	for _, name := range form.FieldNames {
		f := fields[name]
		out = append(out, fieldView{
			Name:        string(name),
			Label:       fieldLabels[name].label,
			Placeholder: fieldLabels[name].placeholder,
			Value:       f.Value,
			Error:       f.Error,
			Invalid:     f.Invalid(),
		})
	}
	return out
}

// HandleFieldEvent applies a change or blur reported by the page script.
func (h *Handler) HandleFieldEvent(c *gin.Context) {
	var ev fieldEvent
	if err := c.ShouldBind(&ev); err != nil {
		c.JSON(http.StatusBadRequest, gin.H{"error": "field and event are required"})
		return
	}
	name, err := form.ParseFieldName(ev.Field)
	if err != nil {
		c.JSON(http.StatusBadRequest, gin.H{"error": err.Error()})
		return
	}

	var f form.Field
	if ev.Event == "blur" {
		f = h.form.BlurValue(name, ev.Value)
	} else {
		f = h.form.Change(name, ev.Value)
	}

	c.JSON(http.StatusOK, fieldReply{
		Field:   ev.Field,
		Value:   f.Value,
		Error:   f.Error,
		Touched: f.Touched,
	})
}

// HandleSubmit records the posted values, runs the form's submit transition
// and waits for the fetch before redirecting back to the dashboard.
func (h *Handler) HandleSubmit(c *gin.Context) {
	var sub submission
	if err := c.ShouldBind(&sub); err != nil {
		c.Redirect(http.StatusSeeOther, "/")
		return
	}
	h.form.Change(form.BusinessName, sub.BusinessName)
	h.form.Change(form.Location, sub.Location)

	done, err := h.form.Submit(c.Request.Context(), h.store)
	switch {
	case errors.Is(err, form.ErrInvalidForm):
		h.log.Debug("web", "submission blocked by validation", nil)
	case errors.Is(err, form.ErrSubmitDisabled), errors.Is(err, store.ErrBusy):
		h.log.Debug("web", "submission ignored while loading", nil)
	case err != nil:
		h.log.Warn("web", "submission failed to start", map[string]interface{}{"error": err.Error()})
	default:
		waitFor(c.Request.Context(), done)
	}

	c.Redirect(http.StatusSeeOther, "/")
}

func (h *Handler) HandleRegenerate(c *gin.Context) {
	done, err := h.store.RegenerateHeadline(c.Request.Context())
	if err != nil {
		h.log.Debug("web", "regenerate not started", map[string]interface{}{"reason": err.Error()})
	} else {
		waitFor(c.Request.Context(), done)
	}

	c.Redirect(http.StatusSeeOther, "/")
}

// ServeState exposes the store and form state as JSON.
func (h *Handler) ServeState(c *gin.Context) {
	fields := h.form.Fields()
	formState := make(map[string]fieldReply, len(fields))
	for name, f := range fields {
		formState[string(name)] = fieldReply{Field: string(name), Value: f.Value, Error: f.Error, Touched: f.Touched}
	}

	c.JSON(http.StatusOK, gin.H{
		"store": h.store.Snapshot(),
		"form":  formState,
	})
}

// wait blocks until the store operation finishes or the client goes away.
// The operation itself keeps running in the latter case.
func waitFor(ctx context.Context, done <-chan struct{}) {
	select {
	case <-done:
	case <-ctx.Done():
	}
}
