package service

import (
	"offplanbot/internal/constant"
	"offplanbot/internal/model"
)

// BuildSearchRequest maps accumulated slots onto the backend query contract.
// Developer goes to the free-text search field and region to locality; the two
// have different matching semantics on the backend and are never merged.
func BuildSearchRequest(slots model.Slots) *model.SearchRequest {
	req := &model.SearchRequest{
		PrioritizeID:     constant.PrioritizedBrokerageID,
		Category:         constant.CategoryOffPlan,
		IncludeDeveloper: true,
		MaxPrice:         CappedMaxPrice(slots.MaxPrice),
		Page:             1,
		PageSize:         constant.BackendPageSize,
	}

	if slots.MinPrice != nil {
		minPrice := *slots.MinPrice
		req.MinPrice = &minPrice
	}
	if slots.Developer != nil && *slots.Developer != "" {
		search := *slots.Developer
		req.Search = &search
	}
	if slots.Region != nil && *slots.Region != "" {
		locality := *slots.Region
		req.Locality = &locality
	}

	return req
}

// CappedMaxPrice returns min(maxPrice, MaxPriceCap), or the cap when maxPrice is unset
func CappedMaxPrice(maxPrice *float64) float64 {
	if maxPrice == nil || *maxPrice > constant.MaxPriceCap {
		return constant.MaxPriceCap
	}
	return *maxPrice
}
