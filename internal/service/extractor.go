package service

import (
	"regexp"
	"strconv"
	"strings"

	"offplanbot/internal/constant"
	"offplanbot/internal/model"
	"offplanbot/internal/utils"

	"github.com/sirupsen/logrus"
)

const (
	million = 1_000_000

	approxLowerFactor = 0.8
	approxUpperFactor = 1.2

	bareIntegerMin = 100_000
	bareIntegerMax = 100_000_000
)

// Price patterns, most specific first. The magnitude suffix is m, million or mn.
var (
	rangeSuffixedRE = regexp.MustCompile(`(?i)(\d+\.?\d*)\s*(?:m|million|mn)\s*(?:to|-)\s*(\d+\.?\d*)\s*(?:m|million|mn)`)
	rangeBetweenRE  = regexp.MustCompile(`(?i)between\s*(\d+\.?\d*)\s*(?:m|million|mn)?\s*(?:to|-|and)\s*(\d+\.?\d*)\s*(?:m|million|mn)`)
	rangeTrailingRE = regexp.MustCompile(`(?i)(\d+\.?\d*)\s*(?:to|-)\s*(\d+\.?\d*)\s*(?:m|million|mn)`)
	maxOnlyRE       = regexp.MustCompile(`(?i)(?:under|below|max|maximum|up to|upto)\s*(?:aed\s*)?(\d+\.?\d*)\s*(?:m|million|mn)`)
	minOnlyRE       = regexp.MustCompile(`(?i)(?:above|over|minimum|min|from|starting)\s*(?:aed\s*)?(\d+\.?\d*)\s*(?:m|million|mn)`)
	approximateRE   = regexp.MustCompile(`(?i)(?:around|approximately|about|roughly)\s*(?:aed\s*)?(\d+\.?\d*)\s*(?:m|million|mn)`)
	bareMagnitudeRE = regexp.MustCompile(`(?i)\b(\d+\.?\d*)\s*(?:m|million|mn)\b`)
	rangeFollowRE   = regexp.MustCompile(`(?i)^\s*(?:to|-|and)`)
	bareIntegerRE   = regexp.MustCompile(`\b(\d{1,3}(?:,?\d{3})*)\b`)
)

// Bedroom patterns in priority order (BR is the most common format in Dubai listings)
var bedroomPatterns = []struct {
	name    string
	pattern *regexp.Regexp
}{
	{name: "BR format", pattern: regexp.MustCompile(`(?i)(\d+)\s*br\b`)},
	{name: "BHK format", pattern: regexp.MustCompile(`(?i)(\d+)\s*bhk\b`)},
	{name: "Bedroom format", pattern: regexp.MustCompile(`(?i)(\d+)\s*bedroom`)},
	{name: "Bed format", pattern: regexp.MustCompile(`(?i)(\d+)\s*bed\b`)},
}

// PriceBounds is what one price stage produced
type PriceBounds struct {
	Min *float64
	Max *float64
}

// priceStage is one step of the price cascade. The first stage that matches wins.
type priceStage struct {
	name  string
	match func(text, lower string) (PriceBounds, bool)
}

// bedroomStage is one step of the bedroom cascade
type bedroomStage struct {
	name  string
	match func(text, lower string) (mentioned bool, count *int, ok bool)
}

// Extractor turns free text into partial search slots.
// It is stateless; each category (price, developer, region, bedroom) runs its own cascade.
type Extractor struct {
	developers    *utils.Catalogue
	regions       *utils.Catalogue
	priceStages   []priceStage
	bedroomStages []bedroomStage
}

// NewExtractor creates an extractor over the built-in developer and region catalogues
func NewExtractor() *Extractor {
	return NewExtractorWithCatalogues(
		utils.NewCatalogue(constant.Developers...),
		utils.NewCatalogue(constant.Regions...),
	)
}

// NewExtractorWithCatalogues creates an extractor over custom catalogues
func NewExtractorWithCatalogues(developers, regions *utils.Catalogue) *Extractor {
	return &Extractor{
		developers: developers,
		regions:    regions,
		priceStages: []priceStage{
			{name: "range", match: matchPriceRange},
			{name: "max-only", match: matchPriceMaxOnly},
			{name: "min-only", match: matchPriceMinOnly},
			{name: "approximate", match: matchPriceApproximate},
			{name: "bare-magnitude", match: matchPriceBareMagnitude},
			{name: "bare-integer", match: matchPriceBareInteger},
		},
		bedroomStages: []bedroomStage{
			{name: "studio", match: matchStudio},
			{name: "numeric", match: matchBedroomCount},
		},
	}
}

// Developers returns the developer catalogue
func (e *Extractor) Developers() *utils.Catalogue {
	return e.developers
}

// Extract parses text into partial slots. It never fails: a category that does not
// match is simply absent from the result.
func (e *Extractor) Extract(text string) model.PartialSlots {
	var parsed model.PartialSlots
	lower := strings.ToLower(text)

	if dev, ok := e.developers.FirstIn(text); ok {
		parsed.Developer = &dev
	}

	if region, ok := e.regions.FirstIn(text); ok {
		parsed.Region = &region
	}

	for _, stage := range e.bedroomStages {
		mentioned, count, ok := stage.match(text, lower)
		if !ok {
			continue
		}
		parsed.BedroomMentioned = mentioned
		parsed.BedroomCount = count
		break
	}

	if bounds, stage, ok := e.extractPrice(text, lower); ok {
		parsed.MinPrice = bounds.Min
		parsed.MaxPrice = bounds.Max
		logrus.WithFields(logrus.Fields{
			"stage": stage,
		}).Debug("price detected")
	}

	logrus.WithFields(logrus.Fields{
		"input":  text,
		"parsed": parsed,
	}).Debug("parsed user input")

	return parsed
}

// ExtractPrice runs only the price cascade
func (e *Extractor) ExtractPrice(text string) (PriceBounds, bool) {
	bounds, _, ok := e.extractPrice(text, strings.ToLower(text))
	return bounds, ok
}

func (e *Extractor) extractPrice(text, lower string) (PriceBounds, string, bool) {
	for _, stage := range e.priceStages {
		if bounds, ok := stage.match(text, lower); ok {
			return bounds, stage.name, true
		}
	}
	return PriceBounds{}, "", false
}

func matchStudio(_, lower string) (bool, *int, bool) {
	if !strings.Contains(lower, "studio") {
		return false, nil, false
	}
	zero := 0
	return true, &zero, true
}

func matchBedroomCount(text, _ string) (bool, *int, bool) {
	for _, p := range bedroomPatterns {
		m := p.pattern.FindStringSubmatch(text)
		if m == nil {
			continue
		}
		n, err := strconv.Atoi(m[1])
		if err == nil && n >= 1 && n <= 3 {
			logrus.WithFields(logrus.Fields{"count": n, "format": p.name}).Debug("bedroom count captured")
			return true, &n, true
		}
		// 4+ (or 0 written as a number) cannot be served by the chat
		logrus.WithFields(logrus.Fields{"match": m[0], "format": p.name}).Debug("unsupported bedroom count")
		return true, nil, true
	}
	return false, nil, false
}

func matchPriceRange(text, _ string) (PriceBounds, bool) {
	for _, re := range []*regexp.Regexp{rangeSuffixedRE, rangeBetweenRE, rangeTrailingRE} {
		m := re.FindStringSubmatch(text)
		if m == nil {
			continue
		}
		lo, errLo := strconv.ParseFloat(m[1], 64)
		hi, errHi := strconv.ParseFloat(m[2], 64)
		if errLo != nil || errHi != nil {
			continue
		}
		return PriceBounds{Min: millions(lo), Max: millions(hi)}, true
	}
	return PriceBounds{}, false
}

func matchPriceMaxOnly(text, _ string) (PriceBounds, bool) {
	x, ok := firstAmount(maxOnlyRE, text)
	if !ok {
		return PriceBounds{}, false
	}
	return PriceBounds{Max: millions(x)}, true
}

func matchPriceMinOnly(text, _ string) (PriceBounds, bool) {
	x, ok := firstAmount(minOnlyRE, text)
	if !ok {
		return PriceBounds{}, false
	}
	return PriceBounds{Min: millions(x)}, true
}

func matchPriceApproximate(text, _ string) (PriceBounds, bool) {
	x, ok := firstAmount(approximateRE, text)
	if !ok {
		return PriceBounds{}, false
	}
	return approximateBand(x * million), true
}

// matchPriceBareMagnitude takes the first "<X>M" that is not the start of a range
func matchPriceBareMagnitude(text, lower string) (PriceBounds, bool) {
	for _, idx := range bareMagnitudeRE.FindAllStringSubmatchIndex(text, -1) {
		if rangeFollowRE.MatchString(text[idx[1]:]) {
			continue
		}
		x, err := strconv.ParseFloat(text[idx[2]:idx[3]], 64)
		if err != nil {
			continue
		}
		price := x * million
		switch {
		case containsAny(lower, "under", "below", "max"):
			return PriceBounds{Max: &price}, true
		case containsAny(lower, "above", "over", "min"):
			return PriceBounds{Min: &price}, true
		default:
			return approximateBand(price), true
		}
	}
	return PriceBounds{}, false
}

// matchPriceBareInteger accepts the first plain number only when it looks like a property price
func matchPriceBareInteger(text, _ string) (PriceBounds, bool) {
	m := bareIntegerRE.FindStringSubmatch(text)
	if m == nil {
		return PriceBounds{}, false
	}
	num, err := strconv.ParseInt(strings.ReplaceAll(m[1], ",", ""), 10, 64)
	if err != nil || num < bareIntegerMin || num > bareIntegerMax {
		return PriceBounds{}, false
	}
	return approximateBand(float64(num)), true
}

func firstAmount(re *regexp.Regexp, text string) (float64, bool) {
	m := re.FindStringSubmatch(text)
	if m == nil {
		return 0, false
	}
	x, err := strconv.ParseFloat(m[1], 64)
	if err != nil {
		return 0, false
	}
	return x, true
}

// approximateBand is the ±20% band around a stated price
func approximateBand(price float64) PriceBounds {
	lo := price * approxLowerFactor
	hi := price * approxUpperFactor
	return PriceBounds{Min: &lo, Max: &hi}
}

func millions(x float64) *float64 {
	v := x * million
	return &v
}

func containsAny(s string, subs ...string) bool {
	for _, sub := range subs {
		if strings.Contains(s, sub) {
			return true
		}
	}
	return false
}
