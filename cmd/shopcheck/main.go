package main

import (
	"errors"
	"fmt"
	"os"
	"os/signal"
	"path/filepath"
	"strings"
	"syscall"
	"text/tabwriter"
	"time"

	"shopcheck/internal/di"
	"shopcheck/internal/domain/entity"
	"shopcheck/internal/infrastructure/env"
	"shopcheck/internal/infrastructure/logger"

	"github.com/urfave/cli/v2"
)

var version = "0.1.0"

// errScenariosFailed makes the process exit nonzero without printing twice.
var errScenariosFailed = errors.New("scenarios failed")

func main() {
	app := newApp(env.NewEnvService())

	if err := app.Run(os.Args); err != nil {
		if !errors.Is(err, errScenariosFailed) {
			fmt.Fprintf(os.Stderr, "Error: %v\n", err)
		}
		os.Exit(1)
	}
}

func newApp(e *env.EnvService) *cli.App {
	return &cli.App{
		Name:    "shopcheck",
		Usage:   "Verify the storefront purchase flow end to end",
		Version: version,
		Commands: []*cli.Command{
			runCommand(e),
			listCommand(e),
		},
	}
}

func commonFlags(e *env.EnvService) []cli.Flag {
	return []cli.Flag{
		&cli.StringFlag{
			Name:  "fixture",
			Usage: "path to the fixture JSON document",
			Value: e.GetWithDefault("SHOPCHECK_FIXTURE", filepath.Join("fixtures", "saucedemo.json")),
		},
		&cli.StringFlag{
			Name:  "base-url",
			Usage: "storefront URL",
			Value: e.GetWithDefault("SHOPCHECK_BASE_URL", "https://www.saucedemo.com/"),
		},
		&cli.StringSliceFlag{
			Name:  "engine",
			Usage: "browser engine: rod, chromium, firefox, webkit or memory (repeatable)",
			Value: cli.NewStringSlice(e.GetList("SHOPCHECK_ENGINES", []string{string(entity.EngineRod)})...),
		},
	}
}

func runCommand(e *env.EnvService) *cli.Command {
	flags := append(commonFlags(e),
		&cli.StringSliceFlag{Name: "tag", Usage: "only run scenarios with this tag, e.g. smoke or regression (repeatable)"},
		&cli.StringSliceFlag{Name: "scenario", Usage: "only run this scenario (repeatable)"},
		&cli.IntFlag{Name: "workers", Usage: "concurrent sessions", Value: e.GetInt("SHOPCHECK_WORKERS", 4)},
		&cli.BoolFlag{Name: "headless", Usage: "run browsers without a window", Value: e.GetBool("SHOPCHECK_HEADLESS", true)},
		&cli.DurationFlag{Name: "slow-motion", Usage: "delay between browser actions", Value: e.GetDuration("SHOPCHECK_SLOW_MOTION", 0)},
		&cli.BoolFlag{Name: "install", Usage: "download playwright browsers before running", Value: e.GetBool("SHOPCHECK_INSTALL_BROWSERS", false)},
		&cli.StringFlag{Name: "rod-control-url", Usage: "connect rod to a running browser", Value: e.Get("SHOPCHECK_ROD_CONTROL_URL")},
		&cli.DurationFlag{Name: "load-timeout", Usage: "bound on waiting for a page to load", Value: e.GetDuration("SHOPCHECK_LOAD_TIMEOUT", 10*time.Second)},
		&cli.DurationFlag{Name: "action-timeout", Usage: "bound on a single UI action", Value: e.GetDuration("SHOPCHECK_ACTION_TIMEOUT", 5*time.Second)},
		&cli.IntFlag{Name: "retry-attempts", Usage: "retries for idempotent reads", Value: e.GetInt("SHOPCHECK_RETRY_ATTEMPTS", 2)},
		&cli.DurationFlag{Name: "retry-delay", Usage: "fixed delay between retries", Value: e.GetDuration("SHOPCHECK_RETRY_DELAY", 500*time.Millisecond)},
		&cli.StringFlag{Name: "artifacts", Usage: "directory for failure snapshots, empty to disable", Value: e.GetWithDefault("SHOPCHECK_ARTIFACT_DIR", "artifacts")},
		&cli.StringFlag{Name: "report", Usage: "write the JSON report to this file", Value: e.Get("SHOPCHECK_REPORT")},
	)

	return &cli.Command{
		Name:  "run",
		Usage: "Run scenarios against the storefront",
		Flags: flags,
		Action: func(c *cli.Context) error {
			ctx, stop := signal.NotifyContext(c.Context, os.Interrupt, syscall.SIGTERM)
			defer stop()

			container, err := di.NewContainer(configFrom(c, e), os.Stdout)
			if err != nil {
				return err
			}
			defer container.Close()

			scenarios, err := container.Registry.Filter(c.StringSlice("scenario"), tags(c.StringSlice("tag")))
			if err != nil {
				return err
			}
			if len(scenarios) == 0 {
				return fmt.Errorf("no scenarios match the given filters")
			}

			result, err := container.Runner.Run(ctx, scenarios, container.Engines)
			if err != nil {
				return err
			}
			if result.Failed() {
				return errScenariosFailed
			}
			return nil
		},
	}
}

func listCommand(e *env.EnvService) *cli.Command {
	return &cli.Command{
		Name:  "list",
		Usage: "List registered scenarios",
		Flags: commonFlags(e),
		Action: func(c *cli.Context) error {
			container, err := di.NewContainer(configFrom(c, e), os.Stdout)
			if err != nil {
				return err
			}
			defer container.Close()

			w := tabwriter.NewWriter(os.Stdout, 0, 4, 2, ' ', 0)
			for _, s := range container.Registry.All() {
				info := s.Info()
				names := make([]string, len(info.Tags))
				for i, t := range info.Tags {
					names[i] = string(t)
				}
				fmt.Fprintf(w, "%s\t%s\t%s\n", info.Name, strings.Join(names, ","), info.Description)
			}
			return w.Flush()
		},
	}
}

func configFrom(c *cli.Context, e *env.EnvService) di.Config {
	engines := make([]entity.Engine, 0, len(c.StringSlice("engine")))
	for _, name := range c.StringSlice("engine") {
		engines = append(engines, entity.Engine(strings.ToLower(strings.TrimSpace(name))))
	}

	return di.Config{
		BaseURL:         c.String("base-url"),
		FixturePath:     c.String("fixture"),
		Engines:         engines,
		Workers:         c.Int("workers"),
		Headless:        c.Bool("headless"),
		SlowMotion:      c.Duration("slow-motion"),
		InstallBrowsers: c.Bool("install"),
		RodControlURL:   c.String("rod-control-url"),
		LoadTimeout:     c.Duration("load-timeout"),
		ActionTimeout:   c.Duration("action-timeout"),
		RetryAttempts:   c.Int("retry-attempts"),
		RetryDelay:      c.Duration("retry-delay"),
		ArtifactDir:     c.String("artifacts"),
		ReportPath:      c.String("report"),
		Log: logger.Config{
			Level:      e.GetWithDefault("LOG_LEVEL", "info"),
			Format:     e.GetWithDefault("LOG_FORMAT", "console"),
			Output:     e.GetWithDefault("LOG_OUTPUT", "stderr"),
			TimeFormat: logger.DefaultConfig().TimeFormat,
		},
	}
}

func tags(values []string) []entity.Tag {
	result := make([]entity.Tag, 0, len(values))
	for _, v := range values {
		result = append(result, entity.Tag(strings.ToLower(v)))
	}
	return result
}
