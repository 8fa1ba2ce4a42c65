package service

import (
	"context"
	"strings"
	"time"

	"petchat/internal/logger"
	"petchat/internal/model"
	"petchat/internal/utils"

	"github.com/google/uuid"
)

// ProductLookup fetches a single product from the backing store
type ProductLookup interface {
	GetProduct(ctx context.Context, id string) (*model.Product, error)
}

// ChatService handles one conversational turn per call
type ChatService struct {
	catalog  *model.Catalog
	composer *ResponseComposer
	store    ContextStore
	lookup   ProductLookup // optional
	log      *logger.Logger
}

// NewChatService creates a new chat service
func NewChatService(catalog *model.Catalog, composer *ResponseComposer, store ContextStore, log *logger.Logger) *ChatService {
	if log == nil {
		log = logger.Nop()
	}
	return &ChatService{
		catalog:  catalog,
		composer: composer,
		store:    store,
		log:      log,
	}
}

// Chat answers one message. A blank message returns model.ErrEmptyInput.
// A missing session id is replaced by a new one.
func (s *ChatService) Chat(ctx context.Context, req *model.ChatRequest) (*model.ChatResponse, error) {
	startTime := time.Now()

	input := utils.Normalize(req.Message)
	if input == "" {
		return nil, model.ErrEmptyInput
	}

	sessionID := strings.TrimSpace(req.SessionID)
	if sessionID == "" {
		sessionID = uuid.NewString()
	}

	history, err := s.store.Exchange(ctx, sessionID, input)
	if err != nil {
		// Answer without history rather than fail the turn
		s.log.Warn("context store unavailable", "session_id", sessionID, "error", err)
		history = nil
	}

	reply := s.composer.Compose(ctx, input, history)

	s.log.Info("chat turn",
		"session_id", sessionID,
		"route", reply.Route,
		"intent", reply.IntentID,
		"products", len(reply.Products),
	)

	return &model.ChatResponse{
		Response:   reply.Text,
		SessionID:  sessionID,
		Route:      reply.Route,
		Intent:     reply.IntentID,
		Attributes: reply.Attributes,
		Products:   reply.Products,
		Took:       time.Since(startTime).Milliseconds(),
	}, nil
}

// ResetSession forgets a session's recent turns
func (s *ChatService) ResetSession(ctx context.Context, sessionID string) error {
	return s.store.Reset(ctx, sessionID)
}

// ListProducts returns the whole catalog
func (s *ChatService) ListProducts() []model.Product {
	return s.catalog.Products
}

// SearchProducts filters the catalog by the attributes found in query. An
// empty query returns the whole catalog.
func (s *ChatService) SearchProducts(query string) ([]model.Product, model.ExtractedAttributes) {
	attrs := s.composer.extractor.Extract(query)
	return FilterProducts(s.catalog.Products, attrs), attrs
}

// WithProductLookup lets GetProduct see rows written to the product store
// after the catalog snapshot was loaded.
func (s *ChatService) WithProductLookup(lookup ProductLookup) *ChatService {
	s.lookup = lookup
	return s
}

// GetProduct retrieves a single product by ID, from the catalog first and
// then from the product store when one is set.
func (s *ChatService) GetProduct(ctx context.Context, id string) (*model.Product, bool) {
	if p, ok := s.catalog.Product(id); ok {
		return p, true
	}
	if s.lookup == nil {
		return nil, false
	}

	p, err := s.lookup.GetProduct(ctx, id)
	if err != nil {
		s.log.Warn("product lookup failed", "product_id", id, "error", err)
		return nil, false
	}
	return p, p != nil
}
