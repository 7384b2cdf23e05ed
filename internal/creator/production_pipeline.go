package creator

import (
	"context"

	"strata/internal/artifact"
)

// productionPipelineCreator handles the serving-time feature pipeline fitted
// against a processed dataset. Shares the linked filter policy with dataset
// pipelines: loose by default, materialize before hashing under strict.
type productionPipelineCreator struct {
	chain *Chain
}

func (c *productionPipelineCreator) Kind() artifact.Kind {
	return artifact.KindProductionPipeline
}

func (c *productionPipelineCreator) DetermineFilters(ctx context.Context, req Request) (artifact.Filters, error) {
	return linkedFilters(ctx, c.chain, c.Kind(), req, false)
}

func (c *productionPipelineCreator) CreateNew(ctx context.Context, req Request) (*Result, error) {
	return c.chain.createNew(ctx, c.Kind(), req)
}
