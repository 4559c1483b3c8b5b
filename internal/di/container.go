package di

import (
	"errors"
	"fmt"
	"io"
	"time"

	"shopcheck/internal/application/port/input"
	"shopcheck/internal/application/port/output"
	"shopcheck/internal/application/service"
	"shopcheck/internal/application/usecase"
	"shopcheck/internal/domain/entity"
	"shopcheck/internal/infrastructure/artifact"
	"shopcheck/internal/infrastructure/browser/memory"
	"shopcheck/internal/infrastructure/browser/playwright"
	"shopcheck/internal/infrastructure/browser/rod"
	"shopcheck/internal/infrastructure/fixture"
	"shopcheck/internal/infrastructure/logger"
	"shopcheck/internal/infrastructure/report"
	"shopcheck/internal/usecase/page"
	"shopcheck/internal/usecase/retry"
	"shopcheck/internal/usecase/workflow"
)

type Container struct {
	Logger   output.LoggerPort
	Fixture  entity.Fixture
	Registry *service.ScenarioRegistry
	Runner   input.ScenarioRunner
	Engines  []entity.Engine

	factories []output.SessionFactory
}

type Config struct {
	BaseURL     string
	FixturePath string
	Engines     []entity.Engine
	Workers     int

	Headless        bool
	SlowMotion      time.Duration
	InstallBrowsers bool
	RodControlURL   string

	LoadTimeout   time.Duration
	ActionTimeout time.Duration
	RetryAttempts int
	RetryDelay    time.Duration

	ArtifactDir string
	ReportPath  string

	Log logger.Config
}

// NewContainer loads the fixture once and wires the scenarios, engines and
// runner. Progress is reported to out.
func NewContainer(cfg Config, out io.Writer) (*Container, error) {
	log := logger.NewLoggerAdapter(cfg.Log)

	fx, err := fixture.Load(cfg.FixturePath)
	if err != nil {
		log.Close()
		return nil, fmt.Errorf("failed to load fixture: %w", err)
	}

	factories, err := newFactories(cfg)
	if err != nil {
		log.Close()
		return nil, err
	}

	baseURL := cfg.BaseURL
	if baseURL == "" {
		baseURL = memory.DefaultBaseURL
	}

	flowCfg := workflow.DefaultConfig(baseURL)
	flowCfg.Timeouts = page.Timeouts{Load: cfg.LoadTimeout, Action: cfg.ActionTimeout}
	flowCfg.Retry = retry.Policy{Attempts: cfg.RetryAttempts, Delay: cfg.RetryDelay}

	registry := service.NewScenarioRegistry(workflow.Scenarios(fx, flowCfg)...)

	var store output.ArtifactStore
	if cfg.ArtifactDir != "" {
		store = artifact.NewFileStore(cfg.ArtifactDir)
	}

	runner := usecase.NewRunScenariosUseCase(
		factories,
		store,
		report.NewConsole(out, cfg.ReportPath),
		log,
		usecase.RunScenariosConfig{Workers: cfg.Workers},
	)

	return &Container{
		Logger:    log,
		Fixture:   fx,
		Registry:  registry,
		Runner:    runner,
		Engines:   cfg.Engines,
		factories: factories,
	}, nil
}

func newFactories(cfg Config) ([]output.SessionFactory, error) {
	seen := make(map[entity.Engine]bool)
	var factories []output.SessionFactory

	for _, e := range cfg.Engines {
		if seen[e] {
			continue
		}
		seen[e] = true

		switch e {
		case entity.EngineRod:
			rodCfg := rod.DefaultConfig()
			rodCfg.Headless = cfg.Headless
			rodCfg.SlowMotion = cfg.SlowMotion
			rodCfg.ControlURL = cfg.RodControlURL
			factories = append(factories, rod.NewFactory(rodCfg))
		case entity.EngineChromium, entity.EngineFirefox, entity.EngineWebKit:
			f, err := playwright.NewFactory(playwright.Config{
				Engine:   e,
				Headless: cfg.Headless,
				SlowMo:   cfg.SlowMotion,
				Install:  cfg.InstallBrowsers,
			})
			if err != nil {
				return nil, err
			}
			factories = append(factories, f)
		case entity.EngineMemory:
			factories = append(factories, memory.NewFactory(memory.DefaultOptions()))
		default:
			return nil, fmt.Errorf("%w: %s", usecase.ErrUnknownEngine, e)
		}
	}
	return factories, nil
}

func (c *Container) Close() error {
	var errs []error
	for _, f := range c.factories {
		if err := f.Close(); err != nil {
			errs = append(errs, fmt.Errorf("close %s: %w", f.Engine(), err))
		}
	}
	if c.Logger != nil {
		errs = append(errs, c.Logger.Close())
	}
	return errors.Join(errs...)
}
