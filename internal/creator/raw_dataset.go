package creator

import (
	"context"
	"fmt"

	"strata/internal/artifact"
)

// rawDatasetCreator handles the leaf kind. Raw datasets default to strict
// matching: their content is only known after loading, so identity cannot be
// assumed from name and implementation alone.
type rawDatasetCreator struct {
	chain *Chain
}

func (c *rawDatasetCreator) Kind() artifact.Kind {
	return artifact.KindRawDataset
}

func (c *rawDatasetCreator) DetermineFilters(ctx context.Context, req Request) (artifact.Filters, error) {
	if req.Version > 0 {
		return artifact.Filters{Name: req.Name, Version: req.Version}, nil
	}
	if req.RegisteredName == "" {
		return artifact.Filters{}, fmt.Errorf("%w: registered name required for %s lookup",
			ErrInvalidRequest, c.Kind())
	}

	if !req.strictOrDefault(true) {
		return artifact.Filters{Name: req.Name, RegisteredName: req.RegisteredName}, nil
	}

	// Strict: materialize a candidate purely to compute its content identity.
	// Wasted work if a concurrent writer wins, accepted for correctness.
	impl, err := c.chain.registry.Construct(req.RegisteredName, req.Name, req.Config)
	if err != nil {
		return artifact.Filters{}, err
	}
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

func (c *rawDatasetCreator) CreateNew(ctx context.Context, req Request) (*Result, error) {
	return c.chain.createNew(ctx, c.Kind(), req)
}
