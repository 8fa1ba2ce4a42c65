package service

import (
	"context"
	"errors"
	"testing"
	"time"

	"petchat/internal/config"

	"github.com/sony/gobreaker"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

type blockingGenerator struct{}

func (blockingGenerator) Generate(ctx context.Context, prompt string, params GenerationParams) (string, error) {
	<-ctx.Done()
	return "", ctx.Err()
}

func guardConfig() *config.GeneratorConfig {
	return &config.GeneratorConfig{
		RequestTimeout:     time.Second,
		BreakerMaxFailures: 3,
		BreakerOpenTimeout: time.Minute,
	}
}

func TestGuardedGenerator_PassesThrough(t *testing.T) {
	next := &fakeGenerator{output: "xin chào"}
	g := NewGuardedGenerator(next, guardConfig(), nil)

	out, err := g.Generate(context.Background(), "p", GenerationParams{})
	require.NoError(t, err)
	assert.Equal(t, "xin chào", out)
	assert.Equal(t, gobreaker.StateClosed, g.State())
}

func TestGuardedGenerator_BreakerOpens(t *testing.T) {
	next := &fakeGenerator{err: errors.New("boom")}
	g := NewGuardedGenerator(next, guardConfig(), nil)

	for i := 0; i < 3; i++ {
		_, err := g.Generate(context.Background(), "p", GenerationParams{})
		require.Error(t, err)
	}
	assert.Equal(t, gobreaker.StateOpen, g.State())

	_, err := g.Generate(context.Background(), "p", GenerationParams{})
	assert.ErrorIs(t, err, gobreaker.ErrOpenState)
	assert.Equal(t, 3, next.calls)
}

func TestGuardedGenerator_Timeout(t *testing.T) {
	cfg := guardConfig()
	cfg.RequestTimeout = 20 * time.Millisecond
	g := NewGuardedGenerator(blockingGenerator{}, cfg, nil)

	start := time.Now()
	_, err := g.Generate(context.Background(), "p", GenerationParams{})
	assert.ErrorIs(t, err, context.DeadlineExceeded)
	assert.Less(t, time.Since(start), time.Second)
}

func TestGuardedGenerator_RateLimitHonoursContext(t *testing.T) {
	cfg := guardConfig()
	cfg.RateLimit = 0.001
	cfg.RateBurst = 1
	cfg.RequestTimeout = 20 * time.Millisecond
	next := &fakeGenerator{output: "ok"}
	g := NewGuardedGenerator(next, cfg, nil)

	_, err := g.Generate(context.Background(), "p", GenerationParams{})
	require.NoError(t, err)

	_, err = g.Generate(context.Background(), "p", GenerationParams{})
	assert.Error(t, err)
	assert.Equal(t, 1, next.calls)
}
