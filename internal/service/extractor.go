package service

import (
	"math"
	"strconv"
	"strings"

	"petchat/internal/model"
	"petchat/internal/utils"
)

// Rule chains are evaluated in slice order and the first keyword found wins.
// "áo" is checked before "áo khoác", so jackets are reported as shirts.
var (
	categoryRules = []utils.KeywordRule[model.Category]{
		{Keyword: "áo", Value: model.CategoryShirt},
		{Keyword: "áo khoác", Value: model.CategoryJacket},
		{Keyword: "váy", Value: model.CategoryDress},
		{Keyword: "quần", Value: model.CategoryPants},
		{Keyword: "yếm", Value: model.CategoryBib},
		{Keyword: "shirt", Value: model.CategoryShirt},
		{Keyword: "jacket", Value: model.CategoryJacket},
		{Keyword: "dress", Value: model.CategoryDress},
		{Keyword: "pants", Value: model.CategoryPants},
		{Keyword: "bib", Value: model.CategoryBib},
	}

	petTypeRules = []utils.KeywordRule[model.PetType]{
		{Keyword: "chó", Value: model.PetDog},
		{Keyword: "mèo", Value: model.PetCat},
		{Keyword: "dog", Value: model.PetDog},
		{Keyword: "cat", Value: model.PetCat},
	}

	// Matched against the text padded with one space on each side.
	sizeRules = []utils.KeywordRule[model.Size]{
		{Keyword: "size s", Value: model.SizeS},
		{Keyword: " s ", Value: model.SizeS},
		{Keyword: "size m", Value: model.SizeM},
		{Keyword: " m ", Value: model.SizeM},
		{Keyword: "size l", Value: model.SizeL},
		{Keyword: " l ", Value: model.SizeL},
		{Keyword: "size xl", Value: model.SizeXL},
		{Keyword: " xl ", Value: model.SizeXL},
	}

	materialRules = []utils.KeywordRule[model.Material]{
		{Keyword: "cotton", Value: model.MaterialCotton},
		{Keyword: "voan", Value: model.MaterialVoan},
		{Keyword: "jeans", Value: model.MaterialJeans},
		{Keyword: "len", Value: model.MaterialLen},
	}

	locationRules = []utils.KeywordRule[model.Location]{
		{Keyword: "hà nội", Value: model.LocationHaNoi},
		{Keyword: "tp.hcm", Value: model.LocationHCM},
		{Keyword: "sài gòn", Value: model.LocationHCM},
		{Keyword: "hồ chí minh", Value: model.LocationHCM},
		{Keyword: "đà nẵng", Value: model.LocationDaNang},
		{Keyword: "cần thơ", Value: model.LocationCanTho},
	}

	priceMarkers = []string{"dưới", "below"}
	colorMarkers = []string{"màu", "color"}
)

// AttributeExtractor derives structured attributes from free text with
// ordered keyword rules. Every rule is best-effort: a rule that cannot
// parse its value leaves the field unset.
type AttributeExtractor struct {
	categories []utils.KeywordRule[model.Category]
	petTypes   []utils.KeywordRule[model.PetType]
	sizes      []utils.KeywordRule[model.Size]
	materials  []utils.KeywordRule[model.Material]
	locations  []utils.KeywordRule[model.Location]
}

// NewAttributeExtractor creates an extractor with the shop's rule chains
func NewAttributeExtractor() *AttributeExtractor {
	return &AttributeExtractor{
		categories: categoryRules,
		petTypes:   petTypeRules,
		sizes:      sizeRules,
		materials:  materialRules,
		locations:  locationRules,
	}
}

// Extract runs every rule over the normalized text
func (e *AttributeExtractor) Extract(text string) model.ExtractedAttributes {
	text = utils.Normalize(text)
	var attrs model.ExtractedAttributes
	if text == "" {
		return attrs
	}

	attrs.PriceMax = extractPriceMax(text)
	attrs.Color = extractColor(text)

	if v, ok := utils.FirstMatch(text, e.categories); ok {
		attrs.Category = &v
	}
	if v, ok := utils.FirstMatch(text, e.petTypes); ok {
		attrs.PetType = &v
	}
	if v, ok := utils.FirstMatch(" "+text+" ", e.sizes); ok {
		attrs.Size = &v
	}
	if v, ok := utils.FirstMatch(text, e.materials); ok {
		attrs.Material = &v
	}
	if v, ok := utils.FirstMatch(text, e.locations); ok {
		attrs.Location = &v
	}

	return attrs
}

// extractPriceMax reads the number after the price marker. "200k" and
// "200 k" mean 200000; "200000" and "200.000" are taken as written.
// Decimals such as "1.5k" and values that overflow are treated as absent.
func extractPriceMax(text string) *int {
	rest, ok := utils.AfterMarker(text, priceMarkers)
	if !ok {
		return nil
	}
	tokens := strings.Fields(rest)
	if len(tokens) == 0 {
		return nil
	}

	first := tokens[0]
	end := 0
	for end < len(first) && (isDigit(first[end]) || first[end] == '.' || first[end] == ',') {
		end++
	}
	digits, ok := ungroupDigits(first[:end])
	if !ok {
		return nil
	}
	value, err := strconv.Atoi(digits)
	if err != nil {
		return nil
	}

	suffix := first[end:]
	if strings.HasPrefix(suffix, "k") || (suffix == "" && len(tokens) > 1 && tokens[1] == "k") {
		if value > math.MaxInt/1000 {
			return nil
		}
		value *= 1000
	}
	return &value
}

// ungroupDigits strips thousands separators from s. Every separator must be
// followed by exactly three digits, otherwise s is not an integer.
func ungroupDigits(s string) (string, bool) {
	s = strings.TrimRight(s, ".,")
	if s == "" || !isDigit(s[0]) {
		return "", false
	}
	groups := strings.FieldsFunc(s, func(r rune) bool { return r == '.' || r == ',' })
	if strings.Count(s, ".")+strings.Count(s, ",") != len(groups)-1 {
		return "", false
	}
	for _, g := range groups[1:] {
		if len(g) != 3 {
			return "", false
		}
	}
	return strings.Join(groups, ""), true
}

// extractColor takes the first word after the color marker. The word is not
// checked against any vocabulary.
func extractColor(text string) *string {
	rest, ok := utils.AfterMarker(text, colorMarkers)
	if !ok {
		return nil
	}
	tokens := strings.Fields(rest)
	if len(tokens) == 0 {
		return nil
	}
	color := strings.TrimRight(tokens[0], ".,!?;:")
	if color == "" {
		return nil
	}
	return &color
}

func isDigit(b byte) bool {
	return b >= '0' && b <= '9'
}
