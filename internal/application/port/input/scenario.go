package input

import (
	"context"

	"shopcheck/internal/application/port/output"
	"shopcheck/internal/domain/entity"
)

// Scenario is one end-to-end test case driven over a single isolated session.
type Scenario interface {
	Info() entity.ScenarioInfo
	Run(ctx context.Context, session output.SessionPort, log output.LoggerPort) error
}

type ScenarioRunner interface {
	Run(ctx context.Context, scenarios []Scenario, engines []entity.Engine) (*entity.RunResult, error)
}
