package service

import (
	"strconv"
	"strings"

	"petchat/internal/model"
)

// Fallback literals used when an attribute is missing
const (
	defaultClothing = "quần áo"
	defaultPet      = "thú cưng"
	defaultFit      = "phù hợp"
	defaultColor    = "đẹp"
	defaultLocation = "bạn"
)

// FillTemplate substitutes {placeholder} tokens with the given attributes.
// Every known placeholder has a fallback literal, so none survives.
func FillTemplate(template string, attrs model.ExtractedAttributes) string {
	if !strings.Contains(template, "{") {
		return template
	}

	clothing := defaultClothing
	if attrs.Category != nil {
		clothing = string(*attrs.Category)
	}
	pet := defaultPet
	if attrs.PetType != nil {
		pet = string(*attrs.PetType)
	}
	size := defaultFit
	if attrs.Size != nil {
		size = string(*attrs.Size)
	}
	color := defaultColor
	if attrs.Color != nil {
		color = *attrs.Color
	}
	location := defaultLocation
	if attrs.Location != nil {
		location = string(*attrs.Location)
	}
	material := defaultFit
	if attrs.Material != nil {
		material = string(*attrs.Material)
	}
	price := defaultFit
	if attrs.PriceMax != nil {
		price = strconv.Itoa(*attrs.PriceMax)
	}

	r := strings.NewReplacer(
		"{clothing_type}", clothing,
		"{category}", clothing,
		"{pet_type}", pet,
		"{size}", size,
		"{color}", color,
		"{location}", location,
		"{material}", material,
		"{price}", price,
		"{age}", defaultFit,
	)
	return r.Replace(template)
}
