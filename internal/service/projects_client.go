package service

import (
	"bytes"
	"context"
	"encoding/json"
	"fmt"
	"io"
	"net/http"
	"net/url"
	"strconv"
	"strings"
	"time"

	"offplanbot/internal/config"
	"offplanbot/internal/model"

	"github.com/sirupsen/logrus"
)

const projectsPath = "/api/projects"

// maxErrorBody bounds how much of a failed response ends up in the error text
const maxErrorBody = 512

// ProjectsClient talks to the property search backend over HTTP
type ProjectsClient struct {
	config     *config.BackendConfig
	httpClient *http.Client
}

// NewProjectsClient creates a backend client with the configured timeout
func NewProjectsClient(cfg *config.BackendConfig) *ProjectsClient {
	return &ProjectsClient{
		config: cfg,
		httpClient: &http.Client{
			Timeout: time.Duration(cfg.Timeout) * time.Second,
		},
	}
}

// SearchProjects posts the query and decodes the response envelope
func (c *ProjectsClient) SearchProjects(ctx context.Context, req *model.SearchRequest) (*model.ProjectSearchResponse, error) {
	reqBody, err := json.Marshal(req)
	if err != nil {
		return nil, fmt.Errorf("failed to marshal request: %w", err)
	}

	endpoint, err := c.searchURL(req)
	if err != nil {
		return nil, err
	}

	httpReq, err := http.NewRequestWithContext(ctx, http.MethodPost, endpoint, bytes.NewReader(reqBody))
	if err != nil {
		return nil, fmt.Errorf("failed to create request: %w", err)
	}

	httpReq.Header.Set("Content-Type", "application/json")
	if c.config.APIKey != "" {
		httpReq.Header.Set("Authorization", fmt.Sprintf("Bearer %s", c.config.APIKey))
	}

	logrus.WithFields(logrus.Fields{
		"url":       endpoint,
		"developer": derefString(req.Search),
		"locality":  derefString(req.Locality),
		"max_price": req.MaxPrice,
	}).Debug("sending project search")

	resp, err := c.httpClient.Do(httpReq)
	if err != nil {
		return nil, fmt.Errorf("%w: failed to send request: %v", ErrUpstreamUnavailable, err)
	}
	defer resp.Body.Close()

	body, err := io.ReadAll(resp.Body)
	if err != nil {
		return nil, fmt.Errorf("%w: failed to read response: %v", ErrUpstreamUnavailable, err)
	}

	if resp.StatusCode < 200 || resp.StatusCode >= 300 {
		detail := strings.TrimSpace(string(body))
		if detail == "" {
			detail = "No error details"
		}
		if len(detail) > maxErrorBody {
			detail = detail[:maxErrorBody]
		}
		return nil, fmt.Errorf("%w: API error: %d - %s", ErrUpstreamUnavailable, resp.StatusCode, detail)
	}

	var result model.ProjectSearchResponse
	if err := json.Unmarshal(body, &result); err != nil {
		return nil, fmt.Errorf("%w: failed to unmarshal response: %v", ErrUpstreamUnavailable, err)
	}

	return &result, nil
}

func (c *ProjectsClient) searchURL(req *model.SearchRequest) (string, error) {
	base, err := url.Parse(strings.TrimRight(c.config.BaseURL, "/") + projectsPath)
	if err != nil {
		return "", fmt.Errorf("invalid backend base url: %w", err)
	}

	page := req.Page
	if page < 1 {
		page = 1
	}
	q := base.Query()
	q.Set("page", strconv.Itoa(page))
	if req.PageSize > 0 {
		q.Set("limit", strconv.Itoa(req.PageSize))
	}
	base.RawQuery = q.Encode()

	return base.String(), nil
}

func derefString(s *string) string {
	if s == nil {
		return ""
	}
	return *s
}
