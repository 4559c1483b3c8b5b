// Package workflow sequences page agents into end-to-end scenarios.
package workflow

import (
	"context"
	"time"

	"shopcheck/internal/application/port/output"
	"shopcheck/internal/domain/entity"
	"shopcheck/internal/usecase/page"
	"shopcheck/internal/usecase/pricing"
	"shopcheck/internal/usecase/retry"
)

const (
	CompletionMessage = "Thank you for your order!"

	defaultPurchaseCount  = 2
	defaultCartCheckCount = 3
)

type Config struct {
	BaseURL  string
	Timeouts page.Timeouts
	// Retry applies to idempotent reads and verifications only.
	Retry retry.Policy
	// PurchaseCount is how many of the cheapest products are bought.
	PurchaseCount int
	// CartCheckCount is how many products the cart check adds.
	CartCheckCount int
}

func DefaultConfig(baseURL string) Config {
	return Config{
		BaseURL:        baseURL,
		Timeouts:       page.DefaultTimeouts(),
		Retry:          retry.Policy{Attempts: 2, Delay: 500 * time.Millisecond},
		PurchaseCount:  defaultPurchaseCount,
		CartCheckCount: defaultCartCheckCount,
	}
}

// Orchestrator drives the pages of one session. Calls are strictly
// sequential and the first failing step aborts the scenario.
type Orchestrator struct {
	pages     *page.Pages
	fixture   entity.Fixture
	cfg       Config
	validator *pricing.Validator
	log       output.LoggerPort
}

func NewOrchestrator(session output.SessionPort, fixture entity.Fixture, cfg Config, log output.LoggerPort) *Orchestrator {
	return &Orchestrator{
		pages:     page.New(session, cfg.BaseURL, cfg.Timeouts),
		fixture:   fixture,
		cfg:       cfg,
		validator: pricing.NewValidator(),
		log:       log,
	}
}

func (o *Orchestrator) Pages() *page.Pages {
	return o.pages
}

// step runs one page operation and tags a failure with where it happened.
func (o *Orchestrator) step(ctx context.Context, stage entity.PageName, op string, fn func(ctx context.Context) error) error {
	if err := ctx.Err(); err != nil {
		return &entity.StageError{Stage: stage, Operation: op, Err: err}
	}

	start := time.Now()
	err := fn(ctx)
	o.log.Debug("step finished",
		"stage", stage,
		"operation", op,
		"duration_ms", time.Since(start).Milliseconds(),
		"ok", err == nil,
	)
	if err != nil {
		return &entity.StageError{Stage: stage, Operation: op, Err: err}
	}
	return nil
}

// check is step with the retry policy applied.
func (o *Orchestrator) check(ctx context.Context, stage entity.PageName, op string, fn func(ctx context.Context) error) error {
	return o.step(ctx, stage, op, func(ctx context.Context) error {
		return o.cfg.Retry.Run(ctx, fn)
	})
}

func (o *Orchestrator) enter(ctx context.Context, agent page.Agent) error {
	return o.step(ctx, agent.Name(), "verify_loaded", agent.VerifyLoaded)
}

func read[T any](ctx context.Context, o *Orchestrator, stage entity.PageName, op string, fn func(ctx context.Context) (T, error)) (T, error) {
	var result T
	err := o.check(ctx, stage, op, func(ctx context.Context) error {
		v, err := fn(ctx)
		if err != nil {
			return err
		}
		result = v
		return nil
	})
	return result, err
}

func mismatch(stage entity.PageName, op, field, expected, actual string) error {
	return &entity.StageError{Stage: stage, Operation: op, Err: entity.Mismatch(field, expected, actual)}
}
