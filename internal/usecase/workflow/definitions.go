package workflow

import (
	"context"

	"shopcheck/internal/application/port/input"
	"shopcheck/internal/application/port/output"
	"shopcheck/internal/domain/entity"
)

const (
	ScenarioCompletePurchase   = "complete-purchase"
	ScenarioRejectInvalidLogin = "reject-invalid-login"
	ScenarioCheckCartContents  = "check-cart-contents"
	ScenarioSortByPrice        = "sort-by-price"
	ScenarioEmptyCart          = "empty-cart"
)

var _ input.Scenario = (*Scenario)(nil)

// Scenario binds a workflow entry point to the fixture and configuration
// shared by a run. Each Run gets a fresh Orchestrator.
type Scenario struct {
	info    entity.ScenarioInfo
	fixture entity.Fixture
	cfg     Config
	run     func(ctx context.Context, o *Orchestrator) error
}

func (s *Scenario) Info() entity.ScenarioInfo {
	return s.info
}

func (s *Scenario) Run(ctx context.Context, session output.SessionPort, log output.LoggerPort) error {
	o := NewOrchestrator(session, s.fixture, s.cfg, log.WithField("scenario", s.info.Name))
	return s.run(ctx, o)
}

// Scenarios returns every built-in scenario in registration order.
func Scenarios(fixture entity.Fixture, cfg Config) []input.Scenario {
	defs := []struct {
		name string
		desc string
		tags []entity.Tag
		run  func(ctx context.Context, o *Orchestrator) error
	}{
		{
			name: ScenarioCompletePurchase,
			desc: "log in, buy the cheapest products and check cart, totals and confirmation",
			tags: []entity.Tag{entity.TagSmoke, entity.TagRegression},
			run: func(ctx context.Context, o *Orchestrator) error {
				_, err := o.CompletePurchase(ctx)
				return err
			},
		},
		{
			name: ScenarioRejectInvalidLogin,
			desc: "invalid credentials stay on the login page with the expected error",
			tags: []entity.Tag{entity.TagSmoke, entity.TagRegression},
			run: func(ctx context.Context, o *Orchestrator) error {
				_, err := o.RejectInvalidLogin(ctx)
				return err
			},
		},
		{
			name: ScenarioCheckCartContents,
			desc: "the cart lists exactly the products that were added",
			tags: []entity.Tag{entity.TagRegression},
			run: func(ctx context.Context, o *Orchestrator) error {
				_, err := o.CheckCartContents(ctx)
				return err
			},
		},
		{
			name: ScenarioSortByPrice,
			desc: "price sort orders the listing both ways",
			tags: []entity.Tag{entity.TagSmoke},
			run: func(ctx context.Context, o *Orchestrator) error {
				return o.SortByPrice(ctx)
			},
		},
		{
			name: ScenarioEmptyCart,
			desc: "adding an empty selection leaves the cart counter absent",
			tags: []entity.Tag{entity.TagRegression},
			run: func(ctx context.Context, o *Orchestrator) error {
				return o.EmptyCart(ctx)
			},
		},
	}

	scenarios := make([]input.Scenario, len(defs))
	for i, d := range defs {
		scenarios[i] = &Scenario{
			info:    entity.ScenarioInfo{Name: d.name, Description: d.desc, Tags: d.tags},
			fixture: fixture,
			cfg:     cfg,
			run:     d.run,
		}
	}
	return scenarios
}
