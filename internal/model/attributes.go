package model

// Category is a product category keyword
type Category string

const (
	CategoryShirt  Category = "áo"
	CategoryJacket Category = "áo khoác"
	CategoryDress  Category = "váy"
	CategoryPants  Category = "quần"
	CategoryBib    Category = "yếm"
)

// PetType is the kind of pet a product is made for
type PetType string

const (
	PetDog PetType = "chó"
	PetCat PetType = "mèo"
)

// Size is a garment size
type Size string

const (
	SizeS  Size = "S"
	SizeM  Size = "M"
	SizeL  Size = "L"
	SizeXL Size = "XL"
)

// Material is a fabric
type Material string

const (
	MaterialCotton Material = "cotton"
	MaterialVoan   Material = "voan"
	MaterialJeans  Material = "jeans"
	MaterialLen    Material = "len"
)

// Location is a delivery area
type Location string

const (
	LocationHaNoi  Location = "Hà Nội"
	LocationHCM    Location = "TP.HCM"
	LocationDaNang Location = "Đà Nẵng"
	LocationCanTho Location = "Cần Thơ"
)

// ExtractedAttributes holds the structured fields inferred from a message.
// A nil field is unconstrained when filtering and falls back to a default
// literal in response templates.
type ExtractedAttributes struct {
	PriceMax *int      `json:"price_max,omitempty"`
	Color    *string   `json:"color,omitempty"`
	Category *Category `json:"category,omitempty"`
	PetType  *PetType  `json:"pet_type,omitempty"`
	Size     *Size     `json:"size,omitempty"`
	Material *Material `json:"material,omitempty"`
	Location *Location `json:"location,omitempty"`
}

// IsEmpty reports whether no attribute was extracted
func (a ExtractedAttributes) IsEmpty() bool {
	return a.PriceMax == nil && a.Color == nil && a.Category == nil && a.PetType == nil &&
		a.Size == nil && a.Material == nil && a.Location == nil
}
