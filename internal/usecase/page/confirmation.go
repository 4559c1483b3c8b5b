package page

import (
	"context"
	"fmt"

	"shopcheck/internal/application/port/output"
	"shopcheck/internal/domain/entity"
)

type ConfirmationPage struct {
	base
}

func NewConfirmationPage(session output.SessionPort, timeouts Timeouts) *ConfirmationPage {
	return &ConfirmationPage{
		base: newBase(session, entity.PageConfirmation, ConfirmationMarker, timeouts),
	}
}

func (p *ConfirmationPage) Summary(ctx context.Context) (entity.PriceSummary, error) {
	var s entity.PriceSummary
	var err error

	if s.Subtotal, err = p.text(ctx, SummarySubtotal); err != nil {
		return entity.PriceSummary{}, err
	}
	if s.Tax, err = p.text(ctx, SummaryTax); err != nil {
		return entity.PriceSummary{}, err
	}
	if s.Total, err = p.text(ctx, SummaryTotal); err != nil {
		return entity.PriceSummary{}, err
	}
	return s, nil
}

func (p *ConfirmationPage) Finalize(ctx context.Context) error {
	return p.click(ctx, ConfirmationFinish)
}

func (p *ConfirmationPage) CompletionMessage(ctx context.Context) (string, error) {
	ctx, cancel := context.WithTimeout(ctx, p.timeouts.Load)
	defer cancel()

	el, err := p.session.WaitVisible(ctx, ConfirmationComplete)
	if err != nil {
		return "", fmt.Errorf("wait %s: %w", ConfirmationComplete, err)
	}
	return elementText(ctx, el, ConfirmationComplete)
}
