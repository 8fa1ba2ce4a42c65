package service

import (
	"context"
	"fmt"
	"sync"
	"time"

	"petchat/internal/config"
	"petchat/internal/logger"
)

// GeneratorFactory builds a ready-to-use generator
type GeneratorFactory func(ctx context.Context) (Generator, error)

// ModelHandle owns a generator instance and rebuilds it once it is older than
// maxAge. A maxAge of zero keeps the first instance forever.
type ModelHandle struct {
	factory GeneratorFactory
	maxAge  time.Duration
	now     func() time.Time
	log     *logger.Logger

	mu         sync.Mutex
	current    Generator
	acquiredAt time.Time
}

// NewModelHandle creates an empty handle. now defaults to time.Now.
func NewModelHandle(factory GeneratorFactory, maxAge time.Duration, now func() time.Time, log *logger.Logger) *ModelHandle {
	if now == nil {
		now = time.Now
	}
	if log == nil {
		log = logger.Nop()
	}
	return &ModelHandle{
		factory: factory,
		maxAge:  maxAge,
		now:     now,
		log:     log,
	}
}

// Acquire returns the current generator, building a new one when none is held
// or the held one is stale
func (h *ModelHandle) Acquire(ctx context.Context) (Generator, error) {
	h.mu.Lock()
	defer h.mu.Unlock()

	if h.current != nil && (h.maxAge <= 0 || h.now().Sub(h.acquiredAt) < h.maxAge) {
		return h.current, nil
	}
	if err := h.refreshLocked(ctx); err != nil {
		return nil, err
	}
	return h.current, nil
}

// Refresh rebuilds the generator now. On failure the handle is left empty so
// the next Acquire tries again.
func (h *ModelHandle) Refresh(ctx context.Context) error {
	h.mu.Lock()
	defer h.mu.Unlock()
	return h.refreshLocked(ctx)
}

func (h *ModelHandle) refreshLocked(ctx context.Context) error {
	g, err := h.factory(ctx)
	if err != nil {
		h.current = nil
		return fmt.Errorf("failed to acquire generator: %w", err)
	}
	h.current = g
	h.acquiredAt = h.now()
	h.log.Debug("generator acquired", "at", h.acquiredAt)
	return nil
}

// Generate acquires a generator and runs one completion
func (h *ModelHandle) Generate(ctx context.Context, prompt string, params GenerationParams) (string, error) {
	g, err := h.Acquire(ctx)
	if err != nil {
		return "", err
	}
	return g.Generate(ctx, prompt, params)
}

// OpenAIFactory builds OpenAI-compatible clients, pinging the API first when
// the configuration asks for it
func OpenAIFactory(cfg *config.GeneratorConfig, log *logger.Logger) GeneratorFactory {
	return func(ctx context.Context) (Generator, error) {
		client := NewOpenAIClient(cfg, log)
		if !client.IsEnabled() {
			return nil, ErrGeneratorDisabled
		}
		if cfg.PingOnAcquire {
			if err := client.Ping(ctx); err != nil {
				return nil, err
			}
		}
		return client, nil
	}
}
