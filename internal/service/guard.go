package service

import (
	"context"
	"fmt"
	"time"

	"petchat/internal/config"
	"petchat/internal/logger"

	"github.com/sony/gobreaker"
	"golang.org/x/time/rate"
)

// GuardedGenerator bounds calls to a slow generator with a per-call timeout,
// a rate limit and a circuit breaker
type GuardedGenerator struct {
	next    Generator
	timeout time.Duration
	limiter *rate.Limiter
	breaker *gobreaker.CircuitBreaker
}

// NewGuardedGenerator wraps next using the generator configuration
func NewGuardedGenerator(next Generator, cfg *config.GeneratorConfig, log *logger.Logger) *GuardedGenerator {
	if log == nil {
		log = logger.Nop()
	}

	var limiter *rate.Limiter
	if cfg.RateLimit > 0 {
		burst := cfg.RateBurst
		if burst < 1 {
			burst = 1
		}
		limiter = rate.NewLimiter(rate.Limit(cfg.RateLimit), burst)
	}

	maxFailures := uint32(1)
	if cfg.BreakerMaxFailures > 1 {
		maxFailures = uint32(cfg.BreakerMaxFailures)
	}

	breaker := gobreaker.NewCircuitBreaker(gobreaker.Settings{
		Name:    "generator",
		Timeout: cfg.BreakerOpenTimeout,
		ReadyToTrip: func(counts gobreaker.Counts) bool {
			return counts.ConsecutiveFailures >= maxFailures
		},
		OnStateChange: func(name string, from, to gobreaker.State) {
			log.Warn("circuit breaker state changed", "name", name, "from", from.String(), "to", to.String())
		},
	})

	return &GuardedGenerator{
		next:    next,
		timeout: cfg.RequestTimeout,
		limiter: limiter,
		breaker: breaker,
	}
}

// Generate runs one guarded completion. An open breaker fails fast with
// gobreaker.ErrOpenState.
func (g *GuardedGenerator) Generate(ctx context.Context, prompt string, params GenerationParams) (string, error) {
	if g.timeout > 0 {
		var cancel context.CancelFunc
		ctx, cancel = context.WithTimeout(ctx, g.timeout)
		defer cancel()
	}

	if g.limiter != nil {
		if err := g.limiter.Wait(ctx); err != nil {
			return "", fmt.Errorf("generator rate limit: %w", err)
		}
	}

	out, err := g.breaker.Execute(func() (interface{}, error) {
		return g.next.Generate(ctx, prompt, params)
	})
	if err != nil {
		return "", err
	}
	return out.(string), nil
}

// State reports the breaker state
func (g *GuardedGenerator) State() gobreaker.State {
	return g.breaker.State()
}
