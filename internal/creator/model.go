package creator

import (
	"context"

	"strata/internal/artifact"
)

// modelCreator handles trained models fitted against a production pipeline.
// Loose by default: identical configuration and pipeline are trusted to
// produce an equivalent model without refitting it first.
type modelCreator struct {
	chain *Chain
}

func (c *modelCreator) Kind() artifact.Kind {
	return artifact.KindModel
}

func (c *modelCreator) DetermineFilters(ctx context.Context, req Request) (artifact.Filters, error) {
	return linkedFilters(ctx, c.chain, c.Kind(), req, false)
}

func (c *modelCreator) CreateNew(ctx context.Context, req Request) (*Result, error) {
	return c.chain.createNew(ctx, c.Kind(), req)
}
