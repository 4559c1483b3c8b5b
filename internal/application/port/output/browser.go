package output

import (
	"context"

	"shopcheck/internal/domain/entity"
)

// ElementPort is a handle to one element of the current remote page.
// Every call blocks until the remote UI acknowledges it or ctx expires.
type ElementPort interface {
	Text(ctx context.Context) (string, error)
	Visible(ctx context.Context) (bool, error)

	Fill(ctx context.Context, text string) error
	Click(ctx context.Context) error
	Select(ctx context.Context, value string) error

	// Find waits for a descendant matching selector.
	Find(ctx context.Context, selector string) (ElementPort, error)
}

// SessionPort is one isolated browser session. It is not safe for concurrent use.
type SessionPort interface {
	Navigate(ctx context.Context, url string) error

	// WaitVisible blocks until an element matching selector is visible.
	WaitVisible(ctx context.Context, selector string) (ElementPort, error)
	// Find blocks until an element matching selector is attached.
	Find(ctx context.Context, selector string) (ElementPort, error)
	// FindAll returns the elements currently matching selector, possibly none.
	FindAll(ctx context.Context, selector string) ([]ElementPort, error)
	// IsVisible reports without waiting whether selector matches a visible element.
	IsVisible(ctx context.Context, selector string) (bool, error)

	Snapshot(ctx context.Context) (*entity.PageSnapshot, error)
	CurrentURL() string
	Close() error
}

// SessionFactory opens isolated sessions for one browser engine.
type SessionFactory interface {
	Engine() entity.Engine
	NewSession(ctx context.Context) (SessionPort, error)
	Close() error
}
