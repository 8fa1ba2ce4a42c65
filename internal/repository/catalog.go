package repository

import (
	"context"

	"petchat/internal/logger"
	"petchat/internal/model"
)

// ProductStore provides product rows from an external store
type ProductStore interface {
	ListProducts(ctx context.Context) ([]model.Product, error)
}

// CatalogLoader builds the read-only intent and product tables at startup
type CatalogLoader struct {
	trainingFile string
	products     ProductStore // nil means products come from the training file
	log          *logger.Logger
}

// NewCatalogLoader creates a new catalog loader
func NewCatalogLoader(trainingFile string, products ProductStore, log *logger.Logger) *CatalogLoader {
	return &CatalogLoader{
		trainingFile: trainingFile,
		products:     products,
		log:          log,
	}
}

// Load reads the tables. It never fails: a missing or malformed source is
// logged and replaced by empty tables so the service can still start.
func (l *CatalogLoader) Load(ctx context.Context) *model.Catalog {
	catalog, warnings, err := ReadTrainingFile(l.trainingFile)
	if err != nil {
		l.log.Error("failed to load training data, using empty tables",
			"file", l.trainingFile, "error", err)
		catalog = model.EmptyCatalog()
	}
	for _, w := range warnings {
		l.log.Warn("training data", "file", l.trainingFile, "warning", w)
	}

	if l.products != nil {
		products, err := l.products.ListProducts(ctx)
		if err != nil {
			l.log.Error("failed to load products, using empty product table", "error", err)
			products = []model.Product{}
		}
		catalog.Products = products
	}

	ids := make([]string, 0, len(catalog.Intents))
	for _, intent := range catalog.Intents {
		ids = append(ids, intent.ID)
	}
	l.log.Info("catalog loaded",
		"intents", len(catalog.Intents),
		"intent_ids", ids,
		"products", len(catalog.Products))

	return catalog
}
