package output

import "shopcheck/internal/domain/entity"

type ReporterPort interface {
	ScenarioFinished(outcome entity.ScenarioOutcome)
	RunFinished(outcomes []entity.ScenarioOutcome, summary entity.RunSummary) error
}
