package report

import (
	"encoding/json"
	"fmt"
	"io"
	"os"
	"path/filepath"

	"shopcheck/internal/domain/entity"
)

type document struct {
	Summary  entity.RunSummary        `json:"summary"`
	Outcomes []entity.ScenarioOutcome `json:"outcomes"`
}

func WriteJSON(w io.Writer, outcomes []entity.ScenarioOutcome, summary entity.RunSummary) error {
	enc := json.NewEncoder(w)
	enc.SetIndent("", "  ")
	if err := enc.Encode(document{Summary: summary, Outcomes: outcomes}); err != nil {
		return fmt.Errorf("encode report: %w", err)
	}
	return nil
}

func WriteJSONFile(path string, outcomes []entity.ScenarioOutcome, summary entity.RunSummary) error {
	if err := os.MkdirAll(filepath.Dir(path), 0755); err != nil {
		return fmt.Errorf("create report dir: %w", err)
	}
	f, err := os.Create(path)
	if err != nil {
		return fmt.Errorf("create report: %w", err)
	}
	if err := WriteJSON(f, outcomes, summary); err != nil {
		f.Close()
		return err
	}
	return f.Close()
}
