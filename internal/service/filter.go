package service

import (
	"strings"

	"petchat/internal/model"
	"petchat/internal/utils"
)

// FilterProducts returns the products that satisfy every present attribute,
// in catalog order. Location does not constrain products.
func FilterProducts(products []model.Product, attrs model.ExtractedAttributes) []model.Product {
	results := make([]model.Product, 0, len(products))
	for _, p := range products {
		if productMatches(p, attrs) {
			results = append(results, p)
		}
	}
	return results
}

func productMatches(p model.Product, attrs model.ExtractedAttributes) bool {
	if attrs.PriceMax != nil && p.Price > *attrs.PriceMax {
		return false
	}
	if attrs.Color != nil && !strings.EqualFold(p.Color, *attrs.Color) {
		return false
	}
	if attrs.Category != nil && !strings.Contains(utils.Normalize(p.Name), utils.Normalize(string(*attrs.Category))) {
		return false
	}
	if attrs.PetType != nil && !strings.EqualFold(p.PetType, string(*attrs.PetType)) {
		return false
	}
	if attrs.Size != nil && !strings.EqualFold(string(p.Size), string(*attrs.Size)) {
		return false
	}
	if attrs.Material != nil && !strings.EqualFold(p.Material, string(*attrs.Material)) {
		return false
	}
	return true
}
