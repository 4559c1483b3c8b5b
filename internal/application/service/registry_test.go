package service

import (
	"context"
	"testing"

	"shopcheck/internal/application/port/output"
	"shopcheck/internal/domain/entity"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

type stubScenario struct {
	info entity.ScenarioInfo
}

func (s *stubScenario) Info() entity.ScenarioInfo {
	return s.info
}

func (s *stubScenario) Run(context.Context, output.SessionPort, output.LoggerPort) error {
	return nil
}

func stub(name string, tags ...entity.Tag) *stubScenario {
	return &stubScenario{info: entity.ScenarioInfo{Name: name, Tags: tags}}
}

func names(t *testing.T, r *ScenarioRegistry, filter []string, tags ...entity.Tag) []string {
	t.Helper()
	scenarios, err := r.Filter(filter, tags)
	require.NoError(t, err)
	result := make([]string, len(scenarios))
	for i, s := range scenarios {
		result[i] = s.Info().Name
	}
	return result
}

func newRegistry() *ScenarioRegistry {
	return NewScenarioRegistry(
		stub("purchase", entity.TagSmoke, entity.TagRegression),
		stub("login", entity.TagSmoke),
		stub("cart", entity.TagRegression),
	)
}

func TestRegistry_KeepsOrder(t *testing.T) {
	assert.Equal(t, []string{"purchase", "login", "cart"}, names(t, newRegistry(), nil))
}

func TestRegistry_RegisterReplacesInPlace(t *testing.T) {
	r := newRegistry()
	replacement := stub("login", entity.TagRegression)
	r.Register(replacement)

	assert.Equal(t, []string{"purchase", "login", "cart"}, names(t, r, nil))
	got, ok := r.Get("login")
	require.True(t, ok)
	assert.Same(t, replacement, got)
}

func TestRegistry_FilterByTag(t *testing.T) {
	r := newRegistry()

	assert.Equal(t, []string{"purchase", "login"}, names(t, r, nil, entity.TagSmoke))
	assert.Equal(t, []string{"purchase", "cart"}, names(t, r, nil, entity.TagRegression))
	assert.Equal(t, []string{"purchase", "login", "cart"}, names(t, r, nil, entity.TagSmoke, entity.TagRegression))
	assert.Empty(t, names(t, r, nil, entity.Tag("nightly")))
}

func TestRegistry_FilterByName(t *testing.T) {
	r := newRegistry()

	assert.Equal(t, []string{"purchase", "cart"}, names(t, r, []string{"cart", "purchase"}))
	assert.Equal(t, []string{"purchase"}, names(t, r, []string{"cart", "purchase"}, entity.TagSmoke))
}

func TestRegistry_UnknownName(t *testing.T) {
	_, err := newRegistry().Filter([]string{"checkout"}, nil)
	assert.ErrorIs(t, err, ErrUnknownScenario)

	_, ok := newRegistry().Get("checkout")
	assert.False(t, ok)
}
