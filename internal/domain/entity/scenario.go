package entity

import (
	"context"
	"errors"
	"fmt"
	"time"
)

type Tag string

const (
	TagSmoke      Tag = "smoke"
	TagRegression Tag = "regression"
)

type Engine string

const (
	EngineRod      Engine = "rod"
	EngineChromium Engine = "chromium"
	EngineFirefox  Engine = "firefox"
	EngineWebKit   Engine = "webkit"
	EngineMemory   Engine = "memory"
)

func (e Engine) String() string {
	return string(e)
}

type ScenarioInfo struct {
	Name        string `json:"name"`
	Description string `json:"description"`
	Tags        []Tag  `json:"tags"`
}

func (i ScenarioInfo) HasTag(tag Tag) bool {
	for _, t := range i.Tags {
		if t == tag {
			return true
		}
	}
	return false
}

// StageError ties a failure to the page and operation that produced it.
type StageError struct {
	Stage     PageName
	Operation string
	Err       error
}

func (e *StageError) Error() string {
	return fmt.Sprintf("%s.%s: %v", e.Stage, e.Operation, e.Err)
}

func (e *StageError) Unwrap() error {
	return e.Err
}

type ScenarioStatus string

const (
	StatusPassed ScenarioStatus = "passed"
	StatusFailed ScenarioStatus = "failed"
)

type ScenarioOutcome struct {
	Scenario  string         `json:"scenario"`
	Engine    Engine         `json:"engine"`
	Status    ScenarioStatus `json:"status"`
	Stage     PageName       `json:"stage,omitempty"`
	Operation string         `json:"operation,omitempty"`
	Kind      ErrorKind      `json:"kind,omitempty"`
	Error     string         `json:"error,omitempty"`
	Expected  string         `json:"expected,omitempty"`
	Actual    string         `json:"actual,omitempty"`
	Duration  time.Duration  `json:"duration_ns"`
	Artifacts []string       `json:"artifacts,omitempty"`
}

func (o ScenarioOutcome) Passed() bool {
	return o.Status == StatusPassed
}

// NewOutcome builds the outcome of a finished scenario from its terminal error.
func NewOutcome(scenario string, engine Engine, err error, elapsed time.Duration) ScenarioOutcome {
	out := ScenarioOutcome{
		Scenario: scenario,
		Engine:   engine,
		Status:   StatusPassed,
		Duration: elapsed,
	}
	if err == nil {
		return out
	}

	out.Status = StatusFailed
	out.Error = err.Error()
	out.Kind = KindOf(err)

	var stageErr *StageError
	if errors.As(err, &stageErr) {
		out.Stage = stageErr.Stage
		out.Operation = stageErr.Operation
	}

	var mismatch *AssertionMismatch
	if errors.As(err, &mismatch) {
		out.Expected = mismatch.Expected
		out.Actual = mismatch.Actual
	}
	return out
}

func KindOf(err error) ErrorKind {
	switch {
	case errors.Is(err, ErrNotLoaded):
		return KindNotLoaded
	case errors.Is(err, ErrAssertionMismatch):
		return KindAssertionMismatch
	case errors.Is(err, ErrAuthenticationRejected):
		return KindAuthenticationRejected
	case errors.Is(err, ErrTransientUI):
		return KindTransientUI
	case errors.Is(err, context.DeadlineExceeded):
		return KindTimeout
	default:
		return KindInternal
	}
}

type RunSummary struct {
	Total    int           `json:"total"`
	Passed   int           `json:"passed"`
	Failed   int           `json:"failed"`
	Duration time.Duration `json:"duration_ns"`
}

func Summarize(outcomes []ScenarioOutcome, elapsed time.Duration) RunSummary {
	s := RunSummary{Total: len(outcomes), Duration: elapsed}
	for _, o := range outcomes {
		if o.Passed() {
			s.Passed++
		} else {
			s.Failed++
		}
	}
	return s
}

type RunResult struct {
	RunID    string            `json:"run_id"`
	Outcomes []ScenarioOutcome `json:"outcomes"`
	Summary  RunSummary        `json:"summary"`
}

func (r *RunResult) Failed() bool {
	return r.Summary.Failed > 0
}
