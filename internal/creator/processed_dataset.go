package creator

import (
	"context"
	"fmt"

	"strata/internal/artifact"
)

// processedDatasetCreator handles datasets derived through a dataset
// pipeline. Like raw datasets they default to strict matching; in loose mode
// the combination of name, implementation, and the exact upstream pipeline
// record is assumed to identify the dataset without rebuilding it.
type processedDatasetCreator struct {
	chain *Chain
}

func (c *processedDatasetCreator) Kind() artifact.Kind {
	return artifact.KindProcessedDataset
}

func (c *processedDatasetCreator) DetermineFilters(ctx context.Context, req Request) (artifact.Filters, error) {
	if req.Version > 0 {
		return artifact.Filters{Name: req.Name, Version: req.Version}, nil
	}
	if req.RegisteredName == "" {
		return artifact.Filters{}, fmt.Errorf("%w: registered name required for %s lookup",
			ErrInvalidRequest, c.Kind())
	}

	dep, err := c.chain.resolveDependency(ctx, c.Kind(), req)
	if err != nil {
		return artifact.Filters{}, err
	}

	if !req.strictOrDefault(true) {
		// Natural key: same name, implementation, and upstream pipeline
		// record imply the same dataset without loading it.
		return artifact.Filters{
			Name:           req.Name,
			RegisteredName: req.RegisteredName,
			DependencyID:   dep.Record.ID(),
		}, nil
	}

	impl, err := c.chain.registry.Construct(req.RegisteredName, req.Name, req.Config)
	if err != nil {
		return artifact.Filters{}, err
	}
	if err := impl.AttachDependency(dep.Impl); err != nil {
		return artifact.Filters{}, fmt.Errorf("attaching %s dependency: %w", c.Kind(), err)
	}
	impl.SetDependencyHash(dep.Record.Hash())
	if err := impl.Materialize(ctx); err != nil {
		return artifact.Filters{}, fmt.Errorf("materializing %s candidate %q: %w",
			c.Kind(), req.Name, err)
	}
	hash, err := impl.Hash()
	if err != nil {
		return artifact.Filters{}, fmt.Errorf("hashing %s candidate %q: %w",
			c.Kind(), req.Name, err)
	}
	return artifact.Filters{
		Name:           req.Name,
		RegisteredName: req.RegisteredName,
		Hash:           hash,
	}, nil
}

func (c *processedDatasetCreator) CreateNew(ctx context.Context, req Request) (*Result, error) {
	return c.chain.createNew(ctx, c.Kind(), req)
}
