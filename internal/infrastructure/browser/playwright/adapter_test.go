package playwright

import (
	"context"
	"errors"
	"fmt"
	"os"
	"testing"
	"time"

	"shopcheck/internal/domain/entity"
	"shopcheck/internal/infrastructure/browser/storefronttest"
	"shopcheck/internal/infrastructure/logger"
	"shopcheck/internal/usecase/workflow"

	pw "github.com/playwright-community/playwright-go"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func TestNewFactory_Engines(t *testing.T) {
	for _, e := range []entity.Engine{entity.EngineChromium, entity.EngineFirefox, entity.EngineWebKit} {
		f, err := NewFactory(Config{Engine: e})
		require.NoError(t, err)
		assert.Equal(t, e, f.Engine())
		assert.NoError(t, f.Close())
	}

	_, err := NewFactory(Config{Engine: entity.EngineRod})
	assert.ErrorIs(t, err, ErrUnsupportedEngine)
}

func TestWaitMs(t *testing.T) {
	assert.Equal(t, float64(defaultWaitMs), *waitMs(context.Background()))

	ctx, cancel := context.WithTimeout(context.Background(), 2*time.Second)
	defer cancel()
	ms := *waitMs(ctx)
	assert.LessOrEqual(t, ms, 2000.0)
	assert.Greater(t, ms, 1000.0)

	expired, cancel2 := context.WithDeadline(context.Background(), time.Now().Add(-time.Second))
	defer cancel2()
	assert.Equal(t, 1.0, *waitMs(expired))
}

func TestClassify(t *testing.T) {
	err := classify("click", fmt.Errorf("wrapped: %w", pw.ErrTimeout))
	assert.ErrorIs(t, err, context.DeadlineExceeded)

	err = classify("text", errors.New("Element is not attached to the DOM"))
	assert.ErrorIs(t, err, entity.ErrTransientUI)

	plain := errors.New("strict mode violation")
	err = classify("click", plain)
	assert.ErrorIs(t, err, plain)
	assert.NotErrorIs(t, err, entity.ErrTransientUI)
}

func TestWorkflow_CompletePurchase(t *testing.T) {
	if os.Getenv("SHOPCHECK_BROWSER_TESTS") == "" {
		t.Skip("SHOPCHECK_BROWSER_TESTS not set")
	}

	f, err := NewFactory(Config{Engine: entity.EngineChromium, Headless: true})
	require.NoError(t, err)
	defer f.Close()

	srv := storefronttest.NewServer()
	defer srv.Close()

	session, err := f.NewSession(context.Background())
	require.NoError(t, err)
	defer session.Close()

	fixture := entity.Fixture{
		Users: entity.Users{
			Standard: entity.Credentials{Username: storefronttest.StandardUser, Password: storefronttest.StandardPassword},
			Invalid:  entity.Credentials{Username: "locked", Password: "nope"},
		},
		Customer:      entity.CustomerIdentity{FirstName: "Ada", LastName: "Lovelace", PostalCode: "10115"},
		ErrorMessages: entity.ErrorMessages{InvalidLogin: storefronttest.InvalidLogin},
	}

	o := workflow.NewOrchestrator(session, fixture, workflow.DefaultConfig(srv.URL), logger.NewNop())
	receipt, err := o.CompletePurchase(context.Background())
	require.NoError(t, err)
	assert.Len(t, receipt.Lines, 2)
	assert.Equal(t, workflow.CompletionMessage, receipt.Message)
}
