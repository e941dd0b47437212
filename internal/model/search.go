package model

import (
	"time"

	"github.com/jmoiron/sqlx/types"
	"github.com/lib/pq"
)

// SearchRequest is the outbound query sent to the property search backend
type SearchRequest struct {
	PrioritizeID     string   `json:"prioritize_brokerage_id"`
	Category         string   `json:"category"`
	IncludeDeveloper bool     `json:"include_developer"`
	MinPrice         *float64 `json:"min_price,omitempty"`
	MaxPrice         float64  `json:"max_price"`
	Search           *string  `json:"search,omitempty"`   // developer, substring across several columns
	Locality         *string  `json:"locality,omitempty"` // region, area-contains match
	Page             int      `json:"-"`                  // sent as ?page=
	PageSize         int      `json:"-"`                  // sent as ?limit=
}

// SearchLogEntry is one audited backend search
type SearchLogEntry struct {
	SessionID      string
	Request        *SearchRequest
	ResultCount    int
	ReturnedIDs    []string
	ResponseTimeMs int
	Error          string
}

// SessionResponse describes a conversation returned to the transport layer
type SessionResponse struct {
	SessionID       string    `json:"session_id"`
	Step            string    `json:"step"`
	Slots           Slots     `json:"slots"`
	BedroomOverride *int      `json:"bedroom_override,omitempty"`
	Messages        []Message `json:"messages"`
	CreatedAt       time.Time `json:"created_at"`
}

// TextRequest carries a typed user message
type TextRequest struct {
	Text string `json:"text" binding:"required"`
}

// OptionRequest carries a button click
type OptionRequest struct {
	Option string `json:"option" binding:"required"`
}

// StreamRequest carries either a typed message or a button click
type StreamRequest struct {
	Text   string `json:"text,omitempty"`
	Option string `json:"option,omitempty"`
}

// TurnResponse lists the messages appended during one turn
type TurnResponse struct {
	SessionID string    `json:"session_id"`
	Step      string    `json:"step"`
	Messages  []Message `json:"messages"`
	Took      int64     `json:"took_ms"`
}

// FeedbackRequest records what a visitor did with a property card
type FeedbackRequest struct {
	SessionID string `json:"session_id" binding:"required"`
	ProjectID string `json:"project_id" binding:"required"`
	Action    string `json:"action" binding:"required"` // click, contact, view_details
}

// FeedbackResponse represents feedback response
type FeedbackResponse struct {
	Success bool   `json:"success"`
	Message string `json:"message,omitempty"`
}

// SearchLogRecord is a stored search audit row
type SearchLogRecord struct {
	ID             int64          `db:"id" json:"id"`
	SessionID      string         `db:"session_id" json:"session_id"`
	Request        types.JSONText `db:"request" json:"request"`
	ResultCount    int            `db:"result_count" json:"result_count"`
	ReturnedIDs    pq.StringArray `db:"returned_ids" json:"returned_ids"`
	ResponseTimeMs int            `db:"response_time_ms" json:"response_time_ms"`
	Error          string         `db:"error" json:"error,omitempty"`
	CreatedAt      time.Time      `db:"created_at" json:"created_at"`
}
