package service

import (
	"testing"

	"petchat/internal/model"
	"petchat/internal/utils"

	"github.com/stretchr/testify/assert"
)

func TestAttributeExtractor_Extract(t *testing.T) {
	extractor := NewAttributeExtractor()

	tests := []struct {
		name  string
		input string
		want  model.ExtractedAttributes
	}{
		{
			name:  "shirt for dog under 200k in red",
			input: "áo cho chó dưới 200k màu đỏ",
			want: model.ExtractedAttributes{
				PriceMax: ptr(200000),
				Color:    ptr("đỏ"),
				Category: ptr(model.CategoryShirt),
				PetType:  ptr(model.PetDog),
			},
		},
		{
			name:  "dress with size and material",
			input: "Tìm váy cho mèo size S chất liệu voan",
			want: model.ExtractedAttributes{
				Category: ptr(model.CategoryDress),
				PetType:  ptr(model.PetCat),
				Size:     ptr(model.SizeS),
				Material: ptr(model.MaterialVoan),
			},
		},
		{
			name:  "separate k token",
			input: "below 300 k",
			want:  model.ExtractedAttributes{PriceMax: ptr(300000)},
		},
		{
			name:  "grouped digits without unit",
			input: "dưới 150.000đ",
			want:  model.ExtractedAttributes{PriceMax: ptr(150000)},
		},
		{
			name:  "several thousands groups",
			input: "dưới 1.200.000",
			want:  model.ExtractedAttributes{PriceMax: ptr(1200000)},
		},
		{
			name:  "sentence punctuation after price",
			input: "dưới 300k.",
			want:  model.ExtractedAttributes{PriceMax: ptr(300000)},
		},
		{
			name:  "decimal with k is absent",
			input: "áo dưới 1.5k",
			want:  model.ExtractedAttributes{Category: ptr(model.CategoryShirt)},
		},
		{
			name:  "decimal comma is absent",
			input: "áo dưới 1,5 triệu",
			want:  model.ExtractedAttributes{Category: ptr(model.CategoryShirt)},
		},
		{
			name:  "overflowing thousands is absent",
			input: "áo dưới 99999999999999999k",
			want:  model.ExtractedAttributes{Category: ptr(model.CategoryShirt)},
		},
		{
			name:  "overflowing integer is absent",
			input: "dưới 99999999999999999999999",
			want:  model.ExtractedAttributes{},
		},
		{
			name:  "unparseable price is absent",
			input: "dưới giá rẻ",
			want:  model.ExtractedAttributes{},
		},
		{
			name:  "jacket is reported as shirt",
			input: "áo khoác cho chó",
			want: model.ExtractedAttributes{
				Category: ptr(model.CategoryShirt),
				PetType:  ptr(model.PetDog),
			},
		},
		{
			name:  "bare size letter",
			input: "quần jeans m cho chó",
			want: model.ExtractedAttributes{
				Category: ptr(model.CategoryPants),
				PetType:  ptr(model.PetDog),
				Size:     ptr(model.SizeM),
				Material: ptr(model.MaterialJeans),
			},
		},
		{
			name:  "color keeps word, drops punctuation",
			input: "MÀU Xanh, size XL",
			want: model.ExtractedAttributes{
				Color: ptr("xanh"),
				Size:  ptr(model.SizeXL),
			},
		},
		{
			name:  "location alias",
			input: "ship về sài gòn bao lâu",
			want:  model.ExtractedAttributes{Location: ptr(model.LocationHCM)},
		},
		{
			name:  "english aliases",
			input: "dress for my cat",
			want: model.ExtractedAttributes{
				Category: ptr(model.CategoryDress),
				PetType:  ptr(model.PetCat),
			},
		},
		{
			name:  "marker without value",
			input: "màu",
			want:  model.ExtractedAttributes{},
		},
		{
			name:  "empty",
			input: "",
			want:  model.ExtractedAttributes{},
		},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			assert.Equal(t, tt.want, extractor.Extract(tt.input))
		})
	}
}

func TestAttributeExtractor_Idempotent(t *testing.T) {
	extractor := NewAttributeExtractor()
	inputs := []string{
		"áo cho chó dưới 200k màu đỏ",
		"  ÁO KHOÁC cho MÈO size L  ",
		"chào shop, giao hàng Hà Nội bao lâu?",
		"Ｖáy ｄưới ２００ｋ",
		"",
	}

	for _, input := range inputs {
		once := utils.Normalize(input)
		assert.Equal(t, extractor.Extract(once), extractor.Extract(utils.Normalize(once)), input)
	}
}

func TestAttributeExtractor_FullwidthPrice(t *testing.T) {
	attrs := NewAttributeExtractor().Extract("Ｖáy ｄưới ２００ｋ")

	if assert.NotNil(t, attrs.PriceMax) {
		assert.Equal(t, 200000, *attrs.PriceMax)
	}
	if assert.NotNil(t, attrs.Category) {
		assert.Equal(t, model.CategoryDress, *attrs.Category)
	}
}
