package model

import (
	"fmt"
	"strings"
)

// PartialSlots is the result of extracting search criteria from one piece of free text.
// A nil field means the category did not fire for that text.
type PartialSlots struct {
	MinPrice         *float64 `json:"min_price,omitempty"`
	MaxPrice         *float64 `json:"max_price,omitempty"`
	Developer        *string  `json:"developer,omitempty"`
	Region           *string  `json:"region,omitempty"`
	BedroomMentioned bool     `json:"bedroom_mentioned,omitempty"`
	BedroomCount     *int     `json:"bedroom_count,omitempty"` // 0-3, display override only
}

// IsEmpty reports whether no category produced anything
func (p PartialSlots) IsEmpty() bool {
	return p.MinPrice == nil &&
		p.MaxPrice == nil &&
		p.Developer == nil &&
		p.Region == nil &&
		!p.BedroomMentioned &&
		p.BedroomCount == nil
}

// HasPrice reports whether the price category fired
func (p PartialSlots) HasPrice() bool {
	return p.MinPrice != nil || p.MaxPrice != nil
}

// HasUsableBedroomCount reports whether a 0-3 bedroom count was captured
func (p PartialSlots) HasUsableBedroomCount() bool {
	return p.BedroomCount != nil && *p.BedroomCount >= 0 && *p.BedroomCount <= 3
}

// Slots accumulates search criteria over a conversation
type Slots struct {
	MinPrice         *float64 `json:"min_price,omitempty"`
	MaxPrice         *float64 `json:"max_price,omitempty"`
	Developer        *string  `json:"developer,omitempty"`
	Region           *string  `json:"region,omitempty"`
	BedroomMentioned bool     `json:"bedroom_mentioned"`
	BedroomCount     *int     `json:"bedroom_count,omitempty"`
}

// Merge overwrites only the fields the partial extraction produced.
// Everything else keeps its previous value.
func (s *Slots) Merge(p PartialSlots) {
	if p.MinPrice != nil {
		s.MinPrice = float64Ptr(*p.MinPrice)
	}
	if p.MaxPrice != nil {
		s.MaxPrice = float64Ptr(*p.MaxPrice)
	}
	if p.Developer != nil {
		s.Developer = stringPtr(*p.Developer)
	}
	if p.Region != nil {
		s.Region = stringPtr(*p.Region)
	}
	if p.BedroomMentioned {
		s.BedroomMentioned = true
	}
	if p.BedroomCount != nil {
		s.BedroomCount = intPtr(*p.BedroomCount)
	}
}

// Clone returns a deep copy so callers can hand slots to another goroutine
func (s Slots) Clone() Slots {
	out := Slots{BedroomMentioned: s.BedroomMentioned}
	if s.MinPrice != nil {
		out.MinPrice = float64Ptr(*s.MinPrice)
	}
	if s.MaxPrice != nil {
		out.MaxPrice = float64Ptr(*s.MaxPrice)
	}
	if s.Developer != nil {
		out.Developer = stringPtr(*s.Developer)
	}
	if s.Region != nil {
		out.Region = stringPtr(*s.Region)
	}
	if s.BedroomCount != nil {
		out.BedroomCount = intPtr(*s.BedroomCount)
	}
	return out
}

// IsZero reports whether nothing has been captured yet
func (s Slots) IsZero() bool {
	return s.MinPrice == nil && s.MaxPrice == nil && s.Developer == nil &&
		s.Region == nil && !s.BedroomMentioned && s.BedroomCount == nil
}

// String renders the captured criteria with pointers dereferenced, for logs
func (s Slots) String() string {
	var parts []string
	if s.MinPrice != nil {
		parts = append(parts, fmt.Sprintf("min_price=%.0f", *s.MinPrice))
	}
	if s.MaxPrice != nil {
		parts = append(parts, fmt.Sprintf("max_price=%.0f", *s.MaxPrice))
	}
	if s.Developer != nil {
		parts = append(parts, "developer="+*s.Developer)
	}
	if s.Region != nil {
		parts = append(parts, "region="+*s.Region)
	}
	if s.BedroomCount != nil {
		parts = append(parts, fmt.Sprintf("bedrooms=%d", *s.BedroomCount))
	} else if s.BedroomMentioned {
		parts = append(parts, "bedrooms=mentioned")
	}
	return "{" + strings.Join(parts, " ") + "}"
}

func float64Ptr(v float64) *float64 {
	return &v
}

func stringPtr(v string) *string {
	return &v
}

func intPtr(v int) *int {
	return &v
}
