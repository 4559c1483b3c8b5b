package rod

import (
	"context"
	"errors"
	"os"
	"testing"
	"time"

	"shopcheck/internal/domain/entity"
	"shopcheck/internal/infrastructure/browser/storefronttest"
	"shopcheck/internal/infrastructure/logger"
	"shopcheck/internal/usecase/workflow"

	"github.com/go-rod/rod"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func TestDefaultConfig(t *testing.T) {
	cfg := DefaultConfig()

	assert.True(t, cfg.Headless)
	assert.Zero(t, cfg.SlowMotion)
	assert.Equal(t, defaultSettle, cfg.Settle)
	assert.Empty(t, cfg.ControlURL)
}

func TestNewFactory_NormalizesSettle(t *testing.T) {
	f := NewFactory(BrowserConfig{})
	assert.Equal(t, defaultSettle, f.cfg.Settle)
	assert.Equal(t, entity.EngineRod, f.Engine())
	assert.NoError(t, f.Close())
}

func TestClassify(t *testing.T) {
	err := classify("click", &rod.NotInteractableError{})
	assert.ErrorIs(t, err, entity.ErrTransientUI)

	plain := errors.New("boom")
	err = classify("click", plain)
	assert.ErrorIs(t, err, plain)
	assert.NotErrorIs(t, err, entity.ErrTransientUI)

	err = classify("text", context.DeadlineExceeded)
	assert.ErrorIs(t, err, context.DeadlineExceeded)
	assert.NotErrorIs(t, err, entity.ErrTransientUI)
}

// newSession launches a headless browser. Browser tests only run when
// SHOPCHECK_BROWSER_TESTS is set.
func newSession(t *testing.T) *Session {
	t.Helper()
	if os.Getenv("SHOPCHECK_BROWSER_TESTS") == "" {
		t.Skip("SHOPCHECK_BROWSER_TESTS not set")
	}

	f := NewFactory(DefaultConfig())
	t.Cleanup(func() { _ = f.Close() })

	s, err := f.NewSession(context.Background())
	require.NoError(t, err)
	t.Cleanup(func() { _ = s.Close() })
	return s.(*Session)
}

func testFixture(t *testing.T) entity.Fixture {
	return entity.Fixture{
		Users: entity.Users{
			Standard: entity.Credentials{Username: storefronttest.StandardUser, Password: storefronttest.StandardPassword},
			Invalid:  entity.Credentials{Username: "locked", Password: "nope"},
		},
		Customer:      entity.CustomerIdentity{FirstName: "Ada", LastName: "Lovelace", PostalCode: "10115"},
		ErrorMessages: entity.ErrorMessages{InvalidLogin: storefronttest.InvalidLogin},
	}
}

func TestSession_Elements(t *testing.T) {
	s := newSession(t)
	srv := storefronttest.NewServer()
	defer srv.Close()

	ctx, cancel := context.WithTimeout(context.Background(), 30*time.Second)
	defer cancel()

	require.NoError(t, s.Navigate(ctx, srv.URL))
	assert.Equal(t, srv.URL+"/", s.CurrentURL())

	_, err := s.WaitVisible(ctx, "#login-button")
	require.NoError(t, err)

	visible, err := s.IsVisible(ctx, ".inventory_list")
	require.NoError(t, err)
	assert.False(t, visible)

	visible, err = s.IsVisible(ctx, ".does-not-exist")
	require.NoError(t, err)
	assert.False(t, visible)

	user, err := s.Find(ctx, "#user-name")
	require.NoError(t, err)
	require.NoError(t, user.Fill(ctx, "first"))
	require.NoError(t, user.Fill(ctx, "standard_user"))

	pass, err := s.Find(ctx, "#password")
	require.NoError(t, err)
	require.NoError(t, pass.Fill(ctx, "secret_sauce"))

	btn, err := s.Find(ctx, "#login-button")
	require.NoError(t, err)
	require.NoError(t, btn.Click(ctx))

	_, err = s.WaitVisible(ctx, ".inventory_list")
	require.NoError(t, err)

	rows, err := s.FindAll(ctx, ".inventory_item")
	require.NoError(t, err)
	assert.Len(t, rows, 6)

	name, err := rows[0].Find(ctx, ".inventory_item_name")
	require.NoError(t, err)
	text, err := name.Text(ctx)
	require.NoError(t, err)
	assert.Equal(t, "Sauce Labs Backpack", text)
}

func TestSession_WaitVisibleTimesOut(t *testing.T) {
	s := newSession(t)
	srv := storefronttest.NewServer()
	defer srv.Close()

	require.NoError(t, s.Navigate(context.Background(), srv.URL))

	ctx, cancel := context.WithTimeout(context.Background(), 500*time.Millisecond)
	defer cancel()

	_, err := s.WaitVisible(ctx, ".cart_list")
	assert.ErrorIs(t, err, context.DeadlineExceeded)
}

func TestSession_Snapshot(t *testing.T) {
	s := newSession(t)
	srv := storefronttest.NewServer()
	defer srv.Close()

	ctx := context.Background()
	require.NoError(t, s.Navigate(ctx, srv.URL))

	snap, err := s.Snapshot(ctx)
	require.NoError(t, err)
	assert.Equal(t, "Swag Labs", snap.Title)
	assert.Contains(t, snap.HTML, "login-button")
	require.NotNil(t, snap.Screenshot)
	assert.NotEmpty(t, snap.Screenshot.Data)
}

func TestWorkflow_CompletePurchase(t *testing.T) {
	s := newSession(t)
	srv := storefronttest.NewServer()
	defer srv.Close()

	cfg := workflow.DefaultConfig(srv.URL)
	o := workflow.NewOrchestrator(s, testFixture(t), cfg, logger.NewNop())

	receipt, err := o.CompletePurchase(context.Background())
	require.NoError(t, err)

	assert.Equal(t, entity.Selection{
		{Name: "Sauce Labs Onesie", Price: "$7.99"},
		{Name: "Sauce Labs Bike Light", Price: "$9.99"},
	}, receipt.Selection)
	assert.Len(t, receipt.Lines, 2)
	assert.Equal(t, "17.98", receipt.Summary.Subtotal.StringFixed(2))
	assert.Equal(t, workflow.CompletionMessage, receipt.Message)
}

func TestWorkflow_RejectInvalidLogin(t *testing.T) {
	s := newSession(t)
	srv := storefronttest.NewServer()
	defer srv.Close()

	o := workflow.NewOrchestrator(s, testFixture(t), workflow.DefaultConfig(srv.URL), logger.NewNop())

	text, err := o.RejectInvalidLogin(context.Background())
	require.NoError(t, err)
	assert.Equal(t, storefronttest.InvalidLogin, text)
}
