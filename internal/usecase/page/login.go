package page

import (
	"context"
	"fmt"

	"shopcheck/internal/application/port/output"
	"shopcheck/internal/domain/entity"
)

type LoginPage struct {
	base
	baseURL string
}

func NewLoginPage(session output.SessionPort, baseURL string, timeouts Timeouts) *LoginPage {
	return &LoginPage{
		base:    newBase(session, entity.PageLogin, LoginMarker, timeouts),
		baseURL: baseURL,
	}
}

func (p *LoginPage) Open(ctx context.Context) error {
	ctx, cancel := context.WithTimeout(ctx, p.timeouts.Load)
	defer cancel()

	if err := p.session.Navigate(ctx, p.baseURL); err != nil {
		return fmt.Errorf("open %s: %w", p.baseURL, err)
	}
	return nil
}

// Authenticate submits creds and waits for either the inventory or the error
// region. A visible error region yields *entity.AuthenticationRejected.
func (p *LoginPage) Authenticate(ctx context.Context, creds entity.Credentials) error {
	if err := p.fill(ctx, LoginUsername, creds.Username); err != nil {
		return err
	}
	if err := p.fill(ctx, LoginPassword, creds.Password); err != nil {
		return err
	}
	if err := p.click(ctx, LoginSubmit); err != nil {
		return err
	}

	landed, err := p.waitAny(ctx, InventoryMarker, LoginError)
	if err != nil {
		return fmt.Errorf("await login result: %w", err)
	}
	if landed != LoginError {
		return nil
	}

	msg, err := p.ErrorText(ctx)
	if err != nil {
		return err
	}
	return &entity.AuthenticationRejected{Username: creds.Username, Message: msg}
}

func (p *LoginPage) ErrorText(ctx context.Context) (string, error) {
	return p.text(ctx, LoginError)
}
