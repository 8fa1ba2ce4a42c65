package service

import (
	"context"
	"sync"

	"petchat/internal/model"
)

// seqPicker returns its values in turn
type seqPicker struct {
	mu     sync.Mutex
	values []int
	next   int
}

func (p *seqPicker) Intn(n int) int {
	p.mu.Lock()
	defer p.mu.Unlock()
	if len(p.values) == 0 {
		return 0
	}
	v := p.values[p.next%len(p.values)]
	p.next++
	return v % n
}

func ptr[T any](v T) *T {
	return &v
}

func testProducts() []model.Product {
	return []model.Product{
		{ID: "P001", Name: "Áo hoodie cho chó", Category: "áo", Price: 150000, Color: "đỏ", PetType: "chó", Size: model.SizeM, Material: "cotton"},
		{ID: "P002", Name: "Váy công chúa cho mèo", Category: "váy", Price: 250000, Color: "hồng", PetType: "mèo", Size: model.SizeS, Material: "voan"},
		{ID: "P003", Name: "Áo len cho mèo", Category: "áo", Price: 180000, Color: "xanh", PetType: "mèo", Size: model.SizeL, Material: "len"},
		{ID: "P004", Name: "Quần jeans cho chó", Category: "quần", Price: 300000, Color: "xanh", PetType: "chó", Size: model.SizeL, Material: "jeans"},
		{ID: "P005", Name: "Áo thun cho chó", Category: "áo", Price: 220000, Color: "đỏ", PetType: "chó", Size: model.SizeS, Material: "cotton"},
	}
}

func testIntents() []model.Intent {
	return []model.Intent{
		{
			ID:        model.IntentGreeting,
			Patterns:  []string{"xin chào", "hello"},
			Responses: []string{"Chào bạn! Shop có thể giúp gì cho bé {pet_type}?"},
		},
		{
			ID:       model.IntentInquireProduct,
			Patterns: []string{"tìm áo"},
			Responses: []string{
				"Shop có {clothing_type} cho {pet_type} size {size} màu {color} nè!",
				"Bạn xem {clothing_type} cho {pet_type} nhé!",
			},
		},
		{
			ID:        model.IntentCareInstructions,
			Responses: []string{"Giặt {clothing_type} bằng nước lạnh nhé!"},
		},
		{
			ID:        model.IntentDeliveryInfo,
			Responses: []string{"Giao tới {location} trong 2 ngày nha!"},
		},
	}
}

func testCatalog() *model.Catalog {
	return &model.Catalog{Intents: testIntents(), Products: testProducts()}
}

// withoutIntent returns the test catalog minus one intent
func withoutIntent(id string) *model.Catalog {
	c := testCatalog()
	kept := c.Intents[:0]
	for _, intent := range c.Intents {
		if intent.ID != id {
			kept = append(kept, intent)
		}
	}
	c.Intents = kept
	return c
}

// fakeGenerator records prompts and returns a fixed output or error
type fakeGenerator struct {
	mu      sync.Mutex
	output  string
	err     error
	prompts []string
	calls   int
}

func (g *fakeGenerator) Generate(ctx context.Context, prompt string, params GenerationParams) (string, error) {
	g.mu.Lock()
	defer g.mu.Unlock()
	g.calls++
	g.prompts = append(g.prompts, prompt)
	if g.err != nil {
		return "", g.err
	}
	return g.output, nil
}
