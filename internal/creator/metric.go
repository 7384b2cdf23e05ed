package creator

import (
	"context"
	"fmt"

	"strata/internal/artifact"
)

// metricCreator handles evaluation metrics scored against a model. Metric
// names already encode the evaluation context (e.g. split plus metric name),
// so when both the name and the owning model's record ID are supplied the
// lookup skips hashing entirely.
type metricCreator struct {
	chain *Chain
}

func (c *metricCreator) Kind() artifact.Kind {
	return artifact.KindMetric
}

func (c *metricCreator) DetermineFilters(ctx context.Context, req Request) (artifact.Filters, error) {
	if req.Name != "" && req.DependencyID > 0 {
		return artifact.Filters{Name: req.Name, DependencyID: req.DependencyID}, nil
	}
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

	impl, err := c.chain.registry.Construct(req.RegisteredName, req.Name, req.Config)
	if err != nil {
		return artifact.Filters{}, err
	}
	if err := impl.AttachDependency(dep.Impl); err != nil {
		return artifact.Filters{}, fmt.Errorf("attaching %s dependency: %w", c.Kind(), err)
	}
	impl.SetDependencyHash(dep.Record.Hash())
	if req.strictOrDefault(false) {
		if err := impl.Materialize(ctx); err != nil {
			return artifact.Filters{}, fmt.Errorf("materializing %s candidate %q: %w",
				c.Kind(), req.Name, err)
		}
	}
	hash, err := impl.Hash()
	if err != nil {
		return artifact.Filters{}, fmt.Errorf("hashing %s candidate %q: %w",
			c.Kind(), req.Name, err)
	}

	// Metric implementations may derive their own name from the evaluation
	// context; filter on the derived name, not the requested one.
	name := impl.Name()
	if name == "" {
		name = req.Name
	}
	return artifact.Filters{
		Name:           name,
		RegisteredName: req.RegisteredName,
		Hash:           hash,
	}, nil
}

func (c *metricCreator) CreateNew(ctx context.Context, req Request) (*Result, error) {
	return c.chain.createNew(ctx, c.Kind(), req)
}
