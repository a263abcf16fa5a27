// Package backend talks to the business data service over HTTP.
package backend

import (
	"bytes"
	"context"
	"encoding/json"
	"fmt"
	"io"
	"net/http"
	"net/url"
	"strings"
	"time"

	"github.com/BerylCAtieno/business-dashboard/internal/logger"
	"github.com/BerylCAtieno/business-dashboard/internal/models"
)

const (
	businessDataPath       = "/business-data"
	regenerateHeadlinePath = "/regenerate-headline"
)

// StatusError is returned when the backend answers with a non-2xx status.
type StatusError struct {
	Method     string
	Path       string
	StatusCode int
	Body       string
}

func (e *StatusError) Error() string {
	return fmt.Sprintf("%s %s: unexpected status %d", e.Method, e.Path, e.StatusCode)
}

type Client struct {
	baseURL string
	client  *http.Client
	log     logger.ILogger
}

func NewClient(baseURL string, timeout time.Duration, log logger.ILogger) *Client {
	return &Client{
		baseURL: strings.TrimRight(baseURL, "/"),
		client: &http.Client{
			Timeout: timeout,
		},
		log: log,
	}
}

// FetchBusinessData posts the business name and location and returns the
// rating, review count and headline the backend knows for them.
func (c *Client) FetchBusinessData(ctx context.Context, name, location string) (*models.BusinessDataResponse, error) {
	body, err := json.Marshal(models.BusinessDataRequest{Name: name, Location: location})
	if err != nil {
		return nil, fmt.Errorf("failed to encode business data request: %w", err)
	}

	req, err := http.NewRequestWithContext(ctx, http.MethodPost, c.baseURL+businessDataPath, bytes.NewReader(body))
	if err != nil {
		return nil, fmt.Errorf("failed to build business data request: %w", err)
	}
	req.Header.Set("Content-Type", "application/json")

	var out models.BusinessDataResponse
	if err := c.do(req, &out); err != nil {
		return nil, err
	}
	return &out, nil
}

// RegenerateHeadline asks the backend for a fresh SEO headline.
func (c *Client) RegenerateHeadline(ctx context.Context, name, location string) (*models.HeadlineResponse, error) {
	query := url.Values{}
	query.Set("name", name)
	query.Set("location", location)

	req, err := http.NewRequestWithContext(ctx, http.MethodGet, c.baseURL+regenerateHeadlinePath+"?"+query.Encode(), nil)
	if err != nil {
		return nil, fmt.Errorf("failed to build headline request: %w", err)
	}

	var out models.HeadlineResponse
	if err := c.do(req, &out); err != nil {
		return nil, err
	}
	return &out, nil
}

func (c *Client) do(req *http.Request, out interface{}) error {
	started := time.Now()
	resp, err := c.client.Do(req)
	if err != nil {
		return fmt.Errorf("%s %s: %w", req.Method, req.URL.Path, err)
	}
	defer resp.Body.Close()

	c.log.Debug("backend", "response received", map[string]interface{}{
		"method":      req.Method,
		"path":        req.URL.Path,
		"status":      resp.StatusCode,
		"duration_ms": time.Since(started).Milliseconds(),
	})

	if resp.StatusCode < 200 || resp.StatusCode > 299 {
		snippet, _ := io.ReadAll(io.LimitReader(resp.Body, 512))
		return &StatusError{
			Method:     req.Method,
			Path:       req.URL.Path,
			StatusCode: resp.StatusCode,
			Body:       string(snippet),
		}
	}

	if err := json.NewDecoder(resp.Body).Decode(out); err != nil {
		return fmt.Errorf("failed to decode %s response: %w", req.URL.Path, err)
	}
	return nil
}
