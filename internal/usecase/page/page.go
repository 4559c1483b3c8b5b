// Package page holds one agent per storefront page. Agents share the session
// they are constructed with and never outlive it.
package page

import (
	"context"
	"fmt"
	"strings"
	"time"

	"shopcheck/internal/application/port/output"
	"shopcheck/internal/domain/entity"
)

const (
	defaultLoadTimeout   = 10 * time.Second
	defaultActionTimeout = 5 * time.Second
	pollInterval         = 100 * time.Millisecond
)

// Agent is the capability shared by every page.
type Agent interface {
	Name() entity.PageName
	Marker() string
	VerifyLoaded(ctx context.Context) error
}

type Timeouts struct {
	Load   time.Duration
	Action time.Duration
}

func DefaultTimeouts() Timeouts {
	return Timeouts{
		Load:   defaultLoadTimeout,
		Action: defaultActionTimeout,
	}
}

func (t Timeouts) normalized() Timeouts {
	if t.Load <= 0 {
		t.Load = defaultLoadTimeout
	}
	if t.Action <= 0 {
		t.Action = defaultActionTimeout
	}
	return t
}

type base struct {
	session  output.SessionPort
	name     entity.PageName
	marker   string
	timeouts Timeouts
}

func newBase(session output.SessionPort, name entity.PageName, marker string, timeouts Timeouts) base {
	return base{
		session:  session,
		name:     name,
		marker:   marker,
		timeouts: timeouts.normalized(),
	}
}

func (b *base) Name() entity.PageName {
	return b.name
}

func (b *base) Marker() string {
	return b.marker
}

func (b *base) VerifyLoaded(ctx context.Context) error {
	ctx, cancel := context.WithTimeout(ctx, b.timeouts.Load)
	defer cancel()

	if _, err := b.session.WaitVisible(ctx, b.marker); err != nil {
		return &entity.NotLoadedError{Page: b.name, Marker: b.marker, Err: err}
	}
	return nil
}

// IsDisplayed reports, without waiting, whether the page marker is visible.
func (b *base) IsDisplayed(ctx context.Context) (bool, error) {
	return b.session.IsVisible(ctx, b.marker)
}

func (b *base) action(ctx context.Context) (context.Context, context.CancelFunc) {
	return context.WithTimeout(ctx, b.timeouts.Action)
}

func (b *base) fill(ctx context.Context, selector, value string) error {
	ctx, cancel := b.action(ctx)
	defer cancel()

	el, err := b.session.Find(ctx, selector)
	if err != nil {
		return fmt.Errorf("find %s: %w", selector, err)
	}
	if err := el.Fill(ctx, value); err != nil {
		return fmt.Errorf("fill %s: %w", selector, err)
	}
	return nil
}

func (b *base) click(ctx context.Context, selector string) error {
	ctx, cancel := b.action(ctx)
	defer cancel()

	el, err := b.session.Find(ctx, selector)
	if err != nil {
		return fmt.Errorf("find %s: %w", selector, err)
	}
	if err := el.Click(ctx); err != nil {
		return fmt.Errorf("click %s: %w", selector, err)
	}
	return nil
}

func (b *base) text(ctx context.Context, selector string) (string, error) {
	ctx, cancel := b.action(ctx)
	defer cancel()

	el, err := b.session.Find(ctx, selector)
	if err != nil {
		return "", fmt.Errorf("find %s: %w", selector, err)
	}
	return elementText(ctx, el, selector)
}

// waitAny polls until one of selectors is visible and returns it.
func (b *base) waitAny(ctx context.Context, selectors ...string) (string, error) {
	ctx, cancel := context.WithTimeout(ctx, b.timeouts.Load)
	defer cancel()

	ticker := time.NewTicker(pollInterval)
	defer ticker.Stop()

	for {
		for _, sel := range selectors {
			visible, err := b.session.IsVisible(ctx, sel)
			if err != nil {
				return "", fmt.Errorf("check %s: %w", sel, err)
			}
			if visible {
				return sel, nil
			}
		}

		select {
		case <-ctx.Done():
			return "", fmt.Errorf("none of %s became visible: %w", strings.Join(selectors, ", "), ctx.Err())
		case <-ticker.C:
		}
	}
}

func elementText(ctx context.Context, el output.ElementPort, selector string) (string, error) {
	text, err := el.Text(ctx)
	if err != nil {
		return "", fmt.Errorf("read %s: %w", selector, err)
	}
	return strings.TrimSpace(text), nil
}

func childText(ctx context.Context, parent output.ElementPort, selector string) (string, error) {
	el, err := parent.Find(ctx, selector)
	if err != nil {
		return "", fmt.Errorf("find %s: %w", selector, err)
	}
	return elementText(ctx, el, selector)
}
