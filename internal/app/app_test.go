package app

import (
	"context"
	"os"
	"path/filepath"
	"testing"

	"petchat/internal/config"
	"petchat/internal/logger"
	"petchat/internal/model"
	"petchat/internal/repository"

	"github.com/alicebob/miniredis/v2"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

const training = `{
	"intents": [
		{"intent": "greeting", "examples": ["xin chào"], "responses": ["Chào bạn nha!"]}
	],
	"products": [
		{"id": "P001", "name": "Áo hoodie cho chó", "category": "áo", "price": 150000, "color": "đỏ", "pet_type": "chó", "size": "M", "material": "cotton"}
	]
}`

func testConfig(t *testing.T) *config.Config {
	t.Helper()
	dir := t.TempDir()
	path := filepath.Join(dir, "training.json")
	require.NoError(t, os.WriteFile(path, []byte(training), 0o600))

	return &config.Config{
		Catalog: config.CatalogConfig{
			TrainingFile:  path,
			ProductSource: config.ProductSourceJSON,
			SQLitePath:    filepath.Join(dir, "products.db"),
		},
		Context:   config.ContextConfig{WindowSize: 3, Store: config.ContextStoreMemory},
		Generator: config.GeneratorConfig{Mode: config.GeneratorModeCanned, MaxNewTokens: 150, Truncation: true},
		Responses: config.ResponseConfig{Seed: 7},
	}
}

func TestNew_JSONCatalog(t *testing.T) {
	a, err := New(context.Background(), testConfig(t), logger.Nop())
	require.NoError(t, err)
	defer a.Close()

	assert.Len(t, a.Catalog.Intents, 1)
	assert.Len(t, a.Catalog.Products, 1)
	assert.Nil(t, a.Generator)

	resp, err := a.Chat.Chat(context.Background(), &model.ChatRequest{Message: "xin chào"})
	require.NoError(t, err)
	assert.Equal(t, "Chào bạn nha!", resp.Response)
}

func TestNew_SQLiteProducts(t *testing.T) {
	cfg := testConfig(t)
	cfg.Catalog.ProductSource = config.ProductSourceSQLite

	store, err := OpenProductStore(cfg)
	require.NoError(t, err)
	require.NoError(t, store.EnsureSchema(context.Background()))
	_, errs := store.UpsertProducts(context.Background(), []model.Product{
		{ID: "DB1", Name: "Yếm jeans cho chó", Category: "yếm", Price: 200000, Color: "xanh", PetType: "chó", Size: model.SizeL, Material: "jeans"},
	})
	require.Empty(t, errs)
	require.NoError(t, store.Close())

	a, err := New(context.Background(), cfg, logger.Nop())
	require.NoError(t, err)
	defer a.Close()

	require.Len(t, a.Catalog.Products, 1)
	assert.Equal(t, "DB1", a.Catalog.Products[0].ID)

	// rows imported after startup are visible by id
	writer, err := OpenProductStore(cfg)
	require.NoError(t, err)
	_, errs = writer.UpsertProducts(context.Background(), []model.Product{
		{ID: "DB2", Name: "Váy voan cho mèo", Category: "váy", Price: 180000},
	})
	require.Empty(t, errs)
	require.NoError(t, writer.Close())

	p, ok := a.Chat.GetProduct(context.Background(), "DB2")
	require.True(t, ok)
	assert.Equal(t, "Váy voan cho mèo", p.Name)
	assert.Len(t, a.Catalog.Products, 1)
}

func TestNew_RedisContextStore(t *testing.T) {
	mr := miniredis.RunT(t)
	cfg := testConfig(t)
	cfg.Context.Store = config.ContextStoreRedis
	cfg.Redis = config.RedisConfig{Addr: mr.Addr(), Prefix: "t:"}

	a, err := New(context.Background(), cfg, logger.Nop())
	require.NoError(t, err)
	defer a.Close()

	_, err = a.Chat.Chat(context.Background(), &model.ChatRequest{Message: "xin chào", SessionID: "s1"})
	require.NoError(t, err)
	assert.True(t, mr.Exists("t:s1"))
}

func TestNew_RedisDownFallsBackToMemory(t *testing.T) {
	cfg := testConfig(t)
	cfg.Context.Store = config.ContextStoreRedis
	cfg.Redis = config.RedisConfig{Addr: "127.0.0.1:1"}

	a, err := New(context.Background(), cfg, logger.Nop())
	require.NoError(t, err)
	defer a.Close()

	resp, err := a.Chat.Chat(context.Background(), &model.ChatRequest{Message: "xin chào"})
	require.NoError(t, err)
	assert.Equal(t, "Chào bạn nha!", resp.Response)
}

func TestNew_GenerateModeBuildsGuard(t *testing.T) {
	cfg := testConfig(t)
	cfg.Generator.Mode = config.GeneratorModeGenerate

	a, err := New(context.Background(), cfg, logger.Nop())
	require.NoError(t, err)
	defer a.Close()
	require.NotNil(t, a.Generator)

	// no API key: generation fails and the canned sentence is used
	resp, err := a.Chat.Chat(context.Background(), &model.ChatRequest{Message: "giặt đồ thế nào"})
	require.NoError(t, err)
	assert.Equal(t, model.RouteCare, resp.Route)
	assert.NotEmpty(t, resp.Response)
}

func TestOpenProductStore_JSONHasNoStore(t *testing.T) {
	_, err := OpenProductStore(testConfig(t))
	assert.Error(t, err)
}

var _ repository.ProductStore = (*repository.SQLProductStore)(nil)
