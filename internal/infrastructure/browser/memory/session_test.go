package memory

import (
	"context"
	"errors"
	"testing"

	"shopcheck/internal/application/port/output"
	"shopcheck/internal/domain/entity"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func login(t *testing.T, s *Session) {
	t.Helper()
	ctx := context.Background()

	require.NoError(t, s.Navigate(ctx, DefaultBaseURL))
	fill(t, s, "#user-name", "standard_user")
	fill(t, s, "#password", "secret_sauce")
	click(t, s, "#login-button")

	visible, err := s.IsVisible(ctx, ".inventory_list")
	require.NoError(t, err)
	require.True(t, visible)
}

func fill(t *testing.T, s *Session, selector, value string) {
	t.Helper()
	el, err := s.Find(context.Background(), selector)
	require.NoError(t, err)
	require.NoError(t, el.Fill(context.Background(), value))
}

func click(t *testing.T, s *Session, selector string) {
	t.Helper()
	el, err := s.Find(context.Background(), selector)
	require.NoError(t, err)
	require.NoError(t, el.Click(context.Background()))
}

func text(t *testing.T, s *Session, selector string) string {
	t.Helper()
	el, err := s.Find(context.Background(), selector)
	require.NoError(t, err)
	v, err := el.Text(context.Background())
	require.NoError(t, err)
	return v
}

func rowNames(t *testing.T, rows []output.ElementPort) []string {
	t.Helper()
	names := make([]string, len(rows))
	for i, row := range rows {
		name, err := row.Find(context.Background(), ".inventory_item_name")
		require.NoError(t, err)
		names[i], err = name.Text(context.Background())
		require.NoError(t, err)
	}
	return names
}

func TestSession_StartsBlank(t *testing.T) {
	s := NewSession(DefaultOptions())

	assert.Equal(t, "about:blank", s.CurrentURL())
	visible, err := s.IsVisible(context.Background(), "#login-button")
	require.NoError(t, err)
	assert.False(t, visible)
}

func TestSession_Login(t *testing.T) {
	s := NewSession(DefaultOptions())
	login(t, s)

	assert.Equal(t, DefaultBaseURL+"inventory.html", s.CurrentURL())
}

func TestSession_InvalidLoginShowsError(t *testing.T) {
	ctx := context.Background()
	s := NewSession(DefaultOptions())
	require.NoError(t, s.Navigate(ctx, "https://shop.example"))

	fill(t, s, "#user-name", "invalid_user")
	fill(t, s, "#password", "wrong_password")
	click(t, s, "#login-button")

	assert.Equal(t, "https://shop.example/", s.CurrentURL())
	assert.Equal(t, InvalidLoginMessage, text(t, s, `[data-test="error"]`))

	visible, err := s.IsVisible(ctx, ".inventory_list")
	require.NoError(t, err)
	assert.False(t, visible)
}

func TestSession_MissingUsername(t *testing.T) {
	s := NewSession(DefaultOptions())
	require.NoError(t, s.Navigate(context.Background(), DefaultBaseURL))
	click(t, s, "#login-button")

	assert.Equal(t, missingUserMessage, text(t, s, `[data-test="error"]`))
}

func TestSession_SortOrders(t *testing.T) {
	ctx := context.Background()
	s := NewSession(DefaultOptions())
	login(t, s)

	sorter, err := s.Find(ctx, ".product_sort_container")
	require.NoError(t, err)
	require.NoError(t, sorter.Select(ctx, string(entity.SortPriceAsc)))

	rows, err := s.FindAll(ctx, ".inventory_item")
	require.NoError(t, err)
	names := rowNames(t, rows)
	require.Len(t, names, 6)
	assert.Equal(t, "Sauce Labs Onesie", names[0])
	assert.Equal(t, "Sauce Labs Bike Light", names[1])
	assert.Equal(t, "Sauce Labs Fleece Jacket", names[5])

	assert.Error(t, sorter.Select(ctx, "price"))
}

func TestSession_AddAndRemove(t *testing.T) {
	ctx := context.Background()
	s := NewSession(DefaultOptions())
	login(t, s)

	visible, err := s.IsVisible(ctx, ".shopping_cart_badge")
	require.NoError(t, err)
	assert.False(t, visible)

	rows, err := s.FindAll(ctx, ".inventory_item")
	require.NoError(t, err)
	btn, err := rows[0].Find(ctx, "button")
	require.NoError(t, err)

	require.NoError(t, btn.Click(ctx))
	assert.Equal(t, "1", text(t, s, ".shopping_cart_badge"))
	label, err := btn.Text(ctx)
	require.NoError(t, err)
	assert.Equal(t, "Remove", label)

	require.NoError(t, btn.Click(ctx))
	visible, err = s.IsVisible(ctx, ".shopping_cart_badge")
	require.NoError(t, err)
	assert.False(t, visible)
}

func TestSession_CheckoutTotals(t *testing.T) {
	ctx := context.Background()
	s := NewSession(DefaultOptions())
	login(t, s)

	rows, err := s.FindAll(ctx, ".inventory_item")
	require.NoError(t, err)
	for _, row := range rows[:2] {
		btn, err := row.Find(ctx, "button")
		require.NoError(t, err)
		require.NoError(t, btn.Click(ctx))
	}

	click(t, s, ".shopping_cart_link")
	lines, err := s.FindAll(ctx, ".cart_item")
	require.NoError(t, err)
	require.Len(t, lines, 2)
	qty, err := lines[0].Find(ctx, ".cart_quantity")
	require.NoError(t, err)
	v, err := qty.Text(ctx)
	require.NoError(t, err)
	assert.Equal(t, "1", v)

	click(t, s, "#checkout")
	click(t, s, "#continue")
	assert.Equal(t, "Error: First Name is required", text(t, s, `[data-test="error"]`))

	fill(t, s, "#first-name", "Ada")
	fill(t, s, "#last-name", "Lovelace")
	fill(t, s, "#postal-code", "10115")
	click(t, s, "#continue")

	// Backpack $29.99 + Bike Light $9.99 in name order
	assert.Equal(t, "Item total: $39.98", text(t, s, ".summary_subtotal_label"))
	assert.Equal(t, "Tax: $3.20", text(t, s, ".summary_tax_label"))
	assert.Equal(t, "Total: $43.18", text(t, s, ".summary_total_label"))

	click(t, s, "#finish")
	assert.Equal(t, CompletionMessage, text(t, s, ".complete-header"))
	assert.Equal(t, DefaultBaseURL+"checkout-complete.html", s.CurrentURL())
}

func TestElement_StaleAfterNavigation(t *testing.T) {
	ctx := context.Background()
	s := NewSession(DefaultOptions())
	login(t, s)

	link, err := s.Find(ctx, ".shopping_cart_link")
	require.NoError(t, err)
	require.NoError(t, link.Click(ctx))

	err = link.Click(ctx)
	require.Error(t, err)
	assert.True(t, errors.Is(err, entity.ErrTransientUI))
	assert.True(t, errors.Is(err, ErrStaleElement))
}

func TestFaults_TransientReads(t *testing.T) {
	ctx := context.Background()
	opts := DefaultOptions()
	opts.Faults.TransientReads = 2
	s := NewSession(opts)
	login(t, s)

	el, err := s.Find(ctx, ".product_sort_container")
	require.NoError(t, err)
	for i := 0; i < 2; i++ {
		_, err := el.Text(ctx)
		assert.ErrorIs(t, err, entity.ErrTransientUI)
	}
	v, err := el.Text(ctx)
	require.NoError(t, err)
	assert.Equal(t, "Name (A to Z)", v)
}

func TestFaults_HiddenSelector(t *testing.T) {
	ctx := context.Background()
	opts := DefaultOptions()
	opts.Faults.Hidden = []string{"#login-button"}
	s := NewSession(opts)
	require.NoError(t, s.Navigate(ctx, DefaultBaseURL))

	_, err := s.WaitVisible(ctx, "#login-button")
	assert.ErrorIs(t, err, ErrElementNotFound)

	_, err = s.Find(ctx, "#login-button")
	assert.NoError(t, err)
}

func TestSession_Snapshot(t *testing.T) {
	s := NewSession(DefaultOptions())
	login(t, s)

	snap, err := s.Snapshot(context.Background())
	require.NoError(t, err)
	assert.Equal(t, "Swag Labs", snap.Title)
	assert.Equal(t, s.CurrentURL(), snap.URL)
	assert.Contains(t, snap.HTML, "Sauce Labs Onesie")
	assert.Nil(t, snap.Screenshot)
}

func TestSession_Closed(t *testing.T) {
	s := NewSession(DefaultOptions())
	require.NoError(t, s.Close())

	err := s.Navigate(context.Background(), DefaultBaseURL)
	assert.ErrorIs(t, err, ErrSessionClosed)
}

func TestSession_CanceledContext(t *testing.T) {
	ctx, cancel := context.WithCancel(context.Background())
	cancel()

	s := NewSession(DefaultOptions())
	assert.ErrorIs(t, s.Navigate(ctx, DefaultBaseURL), context.Canceled)
}

func TestFactory_IndependentSessions(t *testing.T) {
	f := NewFactory(DefaultOptions())
	assert.Equal(t, entity.EngineMemory, f.Engine())

	a, err := f.NewSession(context.Background())
	require.NoError(t, err)
	b, err := f.NewSession(context.Background())
	require.NoError(t, err)

	login(t, a.(*Session))
	assert.Equal(t, "about:blank", b.CurrentURL())
	assert.NoError(t, f.Close())
}
