package model

// Product is one catalog entry. Products are immutable after load.
type Product struct {
	ID          string `json:"id" db:"id"`
	Name        string `json:"name" db:"name"`
	Category    string `json:"category" db:"category"`
	Price       int    `json:"price" db:"price"`
	Color       string `json:"color" db:"color"`
	PetType     string `json:"pet_type" db:"pet_type"`
	Size        Size   `json:"size" db:"size"`
	Material    string `json:"material" db:"material"`
	Stock       int    `json:"stock" db:"stock"`
	Description string `json:"description" db:"description"`
}

// Catalog holds the read-only intent and product tables
type Catalog struct {
	Intents  []Intent  `json:"intents"`
	Products []Product `json:"products"`
}

// EmptyCatalog returns tables with no intents and no products
func EmptyCatalog() *Catalog {
	return &Catalog{Intents: []Intent{}, Products: []Product{}}
}

// Intent looks up an intent by id
func (c *Catalog) Intent(id string) (*Intent, bool) {
	for i := range c.Intents {
		if c.Intents[i].ID == id {
			return &c.Intents[i], true
		}
	}
	return nil, false
}

// Product looks up a product by id
func (c *Catalog) Product(id string) (*Product, bool) {
	for i := range c.Products {
		if c.Products[i].ID == id {
			return &c.Products[i], true
		}
	}
	return nil, false
}

// ProductListResponse represents a product listing, optionally narrowed by a
// free-text query
type ProductListResponse struct {
	Products   []Product            `json:"products"`
	Total      int                  `json:"total"`
	Query      string               `json:"query,omitempty"`
	Attributes *ExtractedAttributes `json:"attributes,omitempty"`
}
