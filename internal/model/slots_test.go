package model

import (
	"testing"

	"github.com/stretchr/testify/assert"
)

func TestSlots_String(t *testing.T) {
	minPrice, maxPrice := 1_500_000.0, 3_000_000.0
	developer, region := "EMAAR", "Dubai Marina"
	two := 2

	tests := []struct {
		name  string
		slots Slots
		want  string
	}{
		{name: "empty", slots: Slots{}, want: "{}"},
		{
			name:  "all fields",
			slots: Slots{MinPrice: &minPrice, MaxPrice: &maxPrice, Developer: &developer, Region: &region, BedroomMentioned: true, BedroomCount: &two},
			want:  "{min_price=1500000 max_price=3000000 developer=EMAAR region=Dubai Marina bedrooms=2}",
		},
		{name: "max only", slots: Slots{MaxPrice: &maxPrice}, want: "{max_price=3000000}"},
		{name: "bedroom without count", slots: Slots{BedroomMentioned: true}, want: "{bedrooms=mentioned}"},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			got := tt.slots.String()
			assert.Equal(t, tt.want, got)
			assert.NotContains(t, got, "0xc")
		})
	}
}
