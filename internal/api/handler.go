package api

import (
	"context"
	"net/http"
	"time"

	"github.com/BerylCAtieno/business-dashboard/internal/headline"
	"github.com/BerylCAtieno/business-dashboard/internal/logger"
	"github.com/BerylCAtieno/business-dashboard/internal/models"
	"github.com/gin-gonic/gin"
	"github.com/google/uuid"
)

const requestIDHeader = "X-Request-ID"

type Handler struct {
	generator headline.Generator
	log       logger.ILogger
	timeout   time.Duration
}

func NewHandler(generator headline.Generator, log logger.ILogger, timeout time.Duration) *Handler {
	return &Handler{
		generator: generator,
		log:       log,
		timeout:   timeout,
	}
}

// Register mounts the backend routes on r.
func (h *Handler) Register(r gin.IRouter) {
	r.POST("/business-data", h.HandleBusinessData)
	r.GET("/regenerate-headline", h.HandleRegenerateHeadline)
	r.GET("/health", func(c *gin.Context) {
		c.String(http.StatusOK, "OK")
	})
}

// RequestLoggingMiddleware tags every request with an ID and logs its outcome.
func RequestLoggingMiddleware(log logger.ILogger) gin.HandlerFunc {
	return func(c *gin.Context) {
		requestID := c.GetHeader(requestIDHeader)
		if requestID == "" {
			requestID = uuid.New().String()
		}
		c.Set("request_id", requestID)
		c.Header(requestIDHeader, requestID)

		started := time.Now()
		c.Next()

		details := map[string]interface{}{
			"request_id":  requestID,
			"method":      c.Request.Method,
			"path":        c.Request.URL.Path,
			"status":      c.Writer.Status(),
			"duration_ms": time.Since(started).Milliseconds(),
		}
		if len(c.Errors) > 0 {
			details["error"] = c.Errors.String()
		}

		if c.Writer.Status() >= http.StatusInternalServerError {
			log.Error("api", "request failed", details)
		} else {
			log.Info("api", "request handled", details)
		}
	}
}

// HandleBusinessData answers POST /business-data.
func (h *Handler) HandleBusinessData(c *gin.Context) {
	var req models.BusinessDataRequest
	if err := c.ShouldBindJSON(&req); err != nil {
		h.sendErrorResponse(c, http.StatusBadRequest, "name and location are required", err)
		return
	}

	text, err := h.generate(c, req.Name, req.Location)
	if err != nil {
		h.sendErrorResponse(c, http.StatusBadGateway, "failed to generate headline", err)
		return
	}

	rating, reviews := EstimateReputation(req.Name, req.Location)
	c.JSON(http.StatusOK, models.BusinessDataResponse{
		Rating:   rating,
		Reviews:  reviews,
		Headline: text,
	})
}

// HandleRegenerateHeadline answers GET /regenerate-headline.
func (h *Handler) HandleRegenerateHeadline(c *gin.Context) {
	var query models.HeadlineQuery
	if err := c.ShouldBindQuery(&query); err != nil {
		h.sendErrorResponse(c, http.StatusBadRequest, "name and location are required", err)
		return
	}

	text, err := h.generate(c, query.Name, query.Location)
	if err != nil {
		h.sendErrorResponse(c, http.StatusBadGateway, "failed to generate headline", err)
		return
	}

	c.JSON(http.StatusOK, models.HeadlineResponse{Headline: text})
}

func (h *Handler) generate(c *gin.Context, name, location string) (string, error) {
	ctx, cancel := context.WithTimeout(c.Request.Context(), h.timeout)
	defer cancel()
	return h.generator.Generate(ctx, name, location)
}

func (h *Handler) sendErrorResponse(c *gin.Context, status int, message string, err error) {
	_ = c.Error(err)
	h.log.Warn("api", message, map[string]interface{}{
		"request_id": c.GetString("request_id"),
		"status":     status,
		"cause":      err.Error(),
	})
	c.JSON(status, gin.H{"error": message})
}
