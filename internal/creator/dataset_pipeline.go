package creator

import (
	"context"
	"fmt"

	"strata/internal/artifact"
)

// datasetPipelineCreator handles pipelines from raw to processed datasets.
// Pipelines default to loose hashing: if configuration and the upstream
// dataset are identical, fitting is assumed deterministic, so the candidate
// is only materialized before hashing under strict mode.
type datasetPipelineCreator struct {
	chain *Chain
}

func (c *datasetPipelineCreator) Kind() artifact.Kind {
	return artifact.KindDatasetPipeline
}

func (c *datasetPipelineCreator) DetermineFilters(ctx context.Context, req Request) (artifact.Filters, error) {
	return linkedFilters(ctx, c.chain, c.Kind(), req, false)
}

func (c *datasetPipelineCreator) CreateNew(ctx context.Context, req Request) (*Result, error) {
	return c.chain.createNew(ctx, c.Kind(), req)
}

// linkedFilters is the shared filter policy for kinds whose identity is a
// hash over configuration plus the resolved dependency: resolve the
// dependency, build a candidate with it attached, materialize only under
// strict mode, and filter by the resulting fingerprint.
func linkedFilters(ctx context.Context, chain *Chain, kind artifact.Kind, req Request, strictDefault bool) (artifact.Filters, error) {
	if req.Version > 0 {
		return artifact.Filters{Name: req.Name, Version: req.Version}, nil
	}
	if req.RegisteredName == "" {
		return artifact.Filters{}, fmt.Errorf("%w: registered name required for %s lookup",
			ErrInvalidRequest, kind)
	}

	dep, err := chain.resolveDependency(ctx, kind, req)
	if err != nil {
		return artifact.Filters{}, err
	}

	impl, err := chain.registry.Construct(req.RegisteredName, req.Name, req.Config)
	if err != nil {
		return artifact.Filters{}, err
	}
	if err := impl.AttachDependency(dep.Impl); err != nil {
		return artifact.Filters{}, fmt.Errorf("attaching %s dependency: %w", kind, err)
	}
	impl.SetDependencyHash(dep.Record.Hash())
	if req.strictOrDefault(strictDefault) {
		if err := impl.Materialize(ctx); err != nil {
			return artifact.Filters{}, fmt.Errorf("materializing %s candidate %q: %w",
				kind, req.Name, err)
		}
	}
	hash, err := impl.Hash()
	if err != nil {
		return artifact.Filters{}, fmt.Errorf("hashing %s candidate %q: %w", kind, req.Name, err)
	}
	return artifact.Filters{
		Name:           req.Name,
		RegisteredName: req.RegisteredName,
		Hash:           hash,
	}, nil
}
