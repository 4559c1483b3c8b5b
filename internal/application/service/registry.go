package service

import (
	"errors"
	"fmt"

	"shopcheck/internal/application/port/input"
	"shopcheck/internal/domain/entity"
)

var ErrUnknownScenario = errors.New("unknown scenario")

// ScenarioRegistry keeps scenarios in registration order.
type ScenarioRegistry struct {
	order     []string
	scenarios map[string]input.Scenario
}

func NewScenarioRegistry(scenarios ...input.Scenario) *ScenarioRegistry {
	r := &ScenarioRegistry{
		scenarios: make(map[string]input.Scenario),
	}
	for _, s := range scenarios {
		r.Register(s)
	}
	return r
}

// Register adds s, replacing any scenario with the same name in place.
func (r *ScenarioRegistry) Register(s input.Scenario) {
	name := s.Info().Name
	if _, ok := r.scenarios[name]; !ok {
		r.order = append(r.order, name)
	}
	r.scenarios[name] = s
}

func (r *ScenarioRegistry) Get(name string) (input.Scenario, bool) {
	s, ok := r.scenarios[name]
	return s, ok
}

func (r *ScenarioRegistry) All() []input.Scenario {
	result := make([]input.Scenario, 0, len(r.order))
	for _, name := range r.order {
		result = append(result, r.scenarios[name])
	}
	return result
}

// Filter keeps scenarios named in names (all when empty) that carry at least
// one of tags (any when empty). Unknown names are an error.
func (r *ScenarioRegistry) Filter(names []string, tags []entity.Tag) ([]input.Scenario, error) {
	wanted := make(map[string]bool, len(names))
	for _, name := range names {
		if _, ok := r.scenarios[name]; !ok {
			return nil, fmt.Errorf("%w: %s", ErrUnknownScenario, name)
		}
		wanted[name] = true
	}

	var result []input.Scenario
	for _, s := range r.All() {
		info := s.Info()
		if len(wanted) > 0 && !wanted[info.Name] {
			continue
		}
		if len(tags) > 0 && !hasAnyTag(info, tags) {
			continue
		}
		result = append(result, s)
	}
	return result, nil
}

func hasAnyTag(info entity.ScenarioInfo, tags []entity.Tag) bool {
	for _, t := range tags {
		if info.HasTag(t) {
			return true
		}
	}
	return false
}
