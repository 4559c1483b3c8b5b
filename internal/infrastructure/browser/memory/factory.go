package memory

import (
	"context"

	"shopcheck/internal/application/port/output"
	"shopcheck/internal/domain/entity"
)

var _ output.SessionFactory = (*Factory)(nil)

// Factory hands out sessions on independent storefront instances.
type Factory struct {
	opts Options
}

func NewFactory(opts Options) *Factory {
	return &Factory{opts: opts}
}

func (f *Factory) Engine() entity.Engine {
	return entity.EngineMemory
}

func (f *Factory) NewSession(ctx context.Context) (output.SessionPort, error) {
	if err := ctx.Err(); err != nil {
		return nil, err
	}
	return NewSession(f.opts), nil
}

func (f *Factory) Close() error {
	return nil
}
