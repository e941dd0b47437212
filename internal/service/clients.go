package service

import (
	"context"

	"offplanbot/internal/model"
)

// ProjectSearcher is the interface for the property search backend
type ProjectSearcher interface {
	// SearchProjects runs one backend query and returns the raw records in backend order.
	// Transport failures and non-success statuses wrap ErrUpstreamUnavailable.
	SearchProjects(ctx context.Context, req *model.SearchRequest) (*model.ProjectSearchResponse, error)
}

// SearchLogger records completed backend searches
type SearchLogger interface {
	LogSearch(ctx context.Context, entry *model.SearchLogEntry) error
}

// Ensure ProjectsClient implements ProjectSearcher
var _ ProjectSearcher = (*ProjectsClient)(nil)
