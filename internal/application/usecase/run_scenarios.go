package usecase

import (
	"context"
	"errors"
	"fmt"
	"time"

	"shopcheck/internal/application/port/input"
	"shopcheck/internal/application/port/output"
	"shopcheck/internal/domain/entity"

	"github.com/google/uuid"
	"golang.org/x/sync/errgroup"
)

const (
	defaultWorkers  = 4
	snapshotTimeout = 15 * time.Second
)

var ErrUnknownEngine = errors.New("unknown engine")

var _ input.ScenarioRunner = (*RunScenariosUseCase)(nil)

// RunScenariosUseCase executes every (scenario, engine) pair on its own
// session, at most Workers at a time.
type RunScenariosUseCase struct {
	factories map[entity.Engine]output.SessionFactory
	artifacts output.ArtifactStore
	reporter  output.ReporterPort
	logger    output.LoggerPort
	workers   int
}

type RunScenariosConfig struct {
	Workers int
}

func NewRunScenariosUseCase(
	factories []output.SessionFactory,
	artifacts output.ArtifactStore,
	reporter output.ReporterPort,
	logger output.LoggerPort,
	cfg RunScenariosConfig,
) *RunScenariosUseCase {
	workers := cfg.Workers
	if workers <= 0 {
		workers = defaultWorkers
	}

	byEngine := make(map[entity.Engine]output.SessionFactory, len(factories))
	for _, f := range factories {
		byEngine[f.Engine()] = f
	}

	return &RunScenariosUseCase{
		factories: byEngine,
		artifacts: artifacts,
		reporter:  reporter,
		logger:    logger,
		workers:   workers,
	}
}

type job struct {
	scenario input.Scenario
	engine   entity.Engine
}

// Run returns one outcome per job in scenario-major order. Scenario failures
// are recorded in the outcomes; only setup problems are returned as errors.
func (uc *RunScenariosUseCase) Run(ctx context.Context, scenarios []input.Scenario, engines []entity.Engine) (*entity.RunResult, error) {
	for _, e := range engines {
		if _, ok := uc.factories[e]; !ok {
			return nil, fmt.Errorf("%w: %s", ErrUnknownEngine, e)
		}
	}

	jobs := make([]job, 0, len(scenarios)*len(engines))
	for _, s := range scenarios {
		for _, e := range engines {
			jobs = append(jobs, job{scenario: s, engine: e})
		}
	}

	runID := uuid.NewString()
	log := uc.logger.WithField("run_id", runID)
	log.Info("Run started", "jobs", len(jobs), "workers", uc.workers)

	start := time.Now()
	outcomes := make([]entity.ScenarioOutcome, len(jobs))

	g, gctx := errgroup.WithContext(ctx)
	g.SetLimit(uc.workers)
	for i, j := range jobs {
		g.Go(func() error {
			outcomes[i] = uc.runJob(gctx, runID, j, log)
			if uc.reporter != nil {
				uc.reporter.ScenarioFinished(outcomes[i])
			}
			return nil
		})
	}
	_ = g.Wait()

	result := &entity.RunResult{
		RunID:    runID,
		Outcomes: outcomes,
		Summary:  entity.Summarize(outcomes, time.Since(start)),
	}
	log.Info("Run finished",
		"passed", result.Summary.Passed,
		"failed", result.Summary.Failed,
		"duration_ms", result.Summary.Duration.Milliseconds(),
	)

	if uc.reporter != nil {
		if err := uc.reporter.RunFinished(result.Outcomes, result.Summary); err != nil {
			return result, fmt.Errorf("report run: %w", err)
		}
	}
	return result, nil
}

func (uc *RunScenariosUseCase) runJob(ctx context.Context, runID string, j job, log output.LoggerPort) entity.ScenarioOutcome {
	name := j.scenario.Info().Name
	log = log.WithFields(map[string]any{"scenario": name, "engine": j.engine})
	start := time.Now()

	session, err := uc.factories[j.engine].NewSession(ctx)
	if err != nil {
		log.Error("Session failed", "error", err)
		return entity.NewOutcome(name, j.engine, fmt.Errorf("open session: %w", err), time.Since(start))
	}
	defer func() {
		if err := session.Close(); err != nil {
			log.Warn("Session close failed", "error", err)
		}
	}()

	log.Info("Scenario started")
	runErr := j.scenario.Run(ctx, session, log)
	outcome := entity.NewOutcome(name, j.engine, runErr, time.Since(start))

	if runErr == nil {
		log.Info("Scenario passed", "duration_ms", outcome.Duration.Milliseconds())
		return outcome
	}

	log.Error("Scenario failed",
		"stage", outcome.Stage,
		"operation", outcome.Operation,
		"kind", outcome.Kind,
		"expected", outcome.Expected,
		"actual", outcome.Actual,
		"error", runErr,
	)
	outcome.Artifacts = uc.capture(runID, name, j.engine, session, log)
	return outcome
}

// capture saves the failing page before the session is torn down. It uses
// its own deadline so a timed-out scenario can still be diagnosed.
func (uc *RunScenariosUseCase) capture(runID, name string, engine entity.Engine, session output.SessionPort, log output.LoggerPort) []string {
	if uc.artifacts == nil {
		return nil
	}

	ctx, cancel := context.WithTimeout(context.Background(), snapshotTimeout)
	defer cancel()

	snap, err := session.Snapshot(ctx)
	if err != nil {
		log.Warn("Snapshot failed", "error", err)
		return nil
	}

	key := fmt.Sprintf("%s/%s-%s", runID, name, engine)
	paths, err := uc.artifacts.Save(ctx, key, snap)
	if err != nil {
		log.Warn("Saving artifacts failed", "error", err)
		return nil
	}
	return paths
}
