package service

import (
	"strconv"
	"strings"

	"offplanbot/internal/constant"
	"offplanbot/internal/model"

	"github.com/google/uuid"
	"github.com/sirupsen/logrus"
)

const legacyIDModulus = 1_000_000

var bedroomLabels = map[string]int{
	"Studio":    0,
	"One":       1,
	"Two":       2,
	"Three":     3,
	"Four":      4,
	"Four_Plus": 5,
	"Five":      5,
	"Six":       6,
	"Seven":     7,
}

var bathroomLabels = map[string]int{
	"One":        1,
	"Two":        2,
	"Three_Plus": 3,
}

// ResultSet is the outcome of post-processing one backend response
type ResultSet struct {
	Properties []model.DisplayProperty // display cards, at most DisplayLimit
	Matched    int                     // records left after filtering, before the display cap
	Dropped    int                     // records removed by the blacklist
}

// ProcessResults normalizes raw backend records, drops blacklisted ones, caps the list for
// display and annotates links with the bedroom override. Backend order is preserved.
func ProcessResults(records []model.Project, bedroomOverride *int) ResultSet {
	mapped := make([]model.DisplayProperty, 0, len(records))
	for _, record := range records {
		mapped = append(mapped, toDisplayProperty(record))
	}

	kept := filterBlacklisted(mapped)
	set := ResultSet{
		Matched: len(kept),
		Dropped: len(mapped) - len(kept),
	}

	if len(kept) > constant.DisplayLimit {
		kept = kept[:constant.DisplayLimit]
	}
	for i := range kept {
		kept[i].Link = PropertyLink(kept[i].ID, bedroomOverride)
	}
	set.Properties = kept

	logrus.WithFields(logrus.Fields{
		"received": len(records),
		"matched":  set.Matched,
		"dropped":  set.Dropped,
		"shown":    len(set.Properties),
	}).Debug("processed search results")

	return set
}

// PropertyLink builds the detail link, carrying the bedroom override when one is set
func PropertyLink(id string, bedroomOverride *int) string {
	link := constant.ProjectLinkPrefix + id
	if bedroomOverride != nil {
		link += "?bedrooms=" + strconv.Itoa(*bedroomOverride)
	}
	return link
}

// LegacyID derives the numeric id older clients expect: the sum of the character codes of
// the uuid without hyphens, modulo one million. Collisions are possible; never use it as a key.
func LegacyID(id string) int {
	sum := 0
	for _, r := range strings.ReplaceAll(id, "-", "") {
		sum += int(r)
	}
	return sum % legacyIDModulus
}

// BedroomCount maps a bedroom enum label to a number; unknown labels map to 0
func BedroomCount(label string) int {
	return bedroomLabels[label]
}

// BathroomCount maps a bathroom enum label to a number; unknown labels map to 0
func BathroomCount(label string) int {
	return bathroomLabels[label]
}

func toDisplayProperty(p model.Project) model.DisplayProperty {
	if _, err := uuid.Parse(p.ID); err != nil {
		logrus.WithFields(logrus.Fields{
			"id":    p.ID,
			"error": err,
		}).Warn("backend returned a project with a malformed id")
	}

	images := p.ImageURLs
	if images == nil {
		images = []string{}
	}
	types := p.Type
	if types == nil {
		types = []string{}
	}

	return model.DisplayProperty{
		ID:            p.ID,
		LegacyID:      LegacyID(p.ID),
		Title:         firstNonEmpty(p.Title, p.ProjectName, "Untitled Property"),
		Description:   p.Description,
		Price:         firstPositive(p.MinPrice, p.MaxPrice),
		Bedrooms:      BedroomCount(firstLabel(p.MinBedrooms, p.MaxBedrooms)),
		Bathrooms:     BathroomCount(firstLabel(p.MinBathrooms, p.MaxBathrooms)),
		City:          firstNonEmpty(p.City, p.Address, "N/A"),
		Developer:     firstNonEmpty(p.DeveloperName(), "N/A"),
		Images:        images,
		PropertyTypes: types,
		ListingType:   p.Category,
	}
}

func filterBlacklisted(props []model.DisplayProperty) []model.DisplayProperty {
	kept := make([]model.DisplayProperty, 0, len(props))
	for _, p := range props {
		if strings.Contains(strings.ToLower(p.Description), constant.BlacklistedPhrase) {
			continue
		}
		kept = append(kept, p)
	}
	return kept
}

func firstLabel(labels ...*string) string {
	for _, l := range labels {
		if l != nil && *l != "" {
			return *l
		}
	}
	return ""
}

func firstPositive(values ...*float64) float64 {
	for _, v := range values {
		if v != nil && *v != 0 {
			return *v
		}
	}
	return 0
}

func firstNonEmpty(values ...string) string {
	for _, v := range values {
		if v != "" {
			return v
		}
	}
	return ""
}
