package model

// Project is a raw record returned by the property search backend
type Project struct {
	ID           string            `json:"id"`
	Title        string            `json:"title"`
	Description  string            `json:"description"`
	ImageURLs    []string          `json:"image_urls"`
	MinPrice     *float64          `json:"min_price,omitempty"`
	MaxPrice     *float64          `json:"max_price,omitempty"`
	Address      string            `json:"address"`
	City         string            `json:"city"`
	Type         []string          `json:"type"`
	Category     string            `json:"category"`
	ProjectName  string            `json:"project_name"`
	MinBedrooms  *string           `json:"min_bedrooms,omitempty"`
	MaxBedrooms  *string           `json:"max_bedrooms,omitempty"`
	MinBathrooms *string           `json:"min_bathrooms,omitempty"`
	MaxBathrooms *string           `json:"max_bathrooms,omitempty"`
	Developer    *ProjectDeveloper `json:"developer,omitempty"`
}

// ProjectDeveloper is the nested developer block included when include_developer is set
type ProjectDeveloper struct {
	Company *struct {
		Name *string `json:"name,omitempty"`
	} `json:"company,omitempty"`
}

// DeveloperName returns the nested company name, if any
func (p Project) DeveloperName() string {
	if p.Developer == nil || p.Developer.Company == nil || p.Developer.Company.Name == nil {
		return ""
	}
	return *p.Developer.Company.Name
}

// Pagination is the paging block of a backend response
type Pagination struct {
	Page       int `json:"page"`
	Limit      int `json:"limit"`
	Total      int `json:"total"`
	TotalPages int `json:"total_pages"`
}

// ProjectSearchResponse is the backend response envelope
type ProjectSearchResponse struct {
	Data       []Project   `json:"data"`
	Pagination *Pagination `json:"pagination,omitempty"`
}

// DisplayProperty is a project prepared for a property card.
// It only lives for the response cycle that produced it.
type DisplayProperty struct {
	ID            string   `json:"id"`
	LegacyID      int      `json:"property_id"` // display-only checksum, not a key
	Title         string   `json:"title"`
	Description   string   `json:"description"`
	Price         float64  `json:"price"`
	Bedrooms      int      `json:"bedrooms"`
	Bathrooms     int      `json:"bathrooms"`
	City          string   `json:"city_name"`
	Developer     string   `json:"developer"`
	Images        []string `json:"images"`
	PropertyTypes []string `json:"property_type"`
	ListingType   string   `json:"listing_type,omitempty"`
	Link          string   `json:"link"`
}
