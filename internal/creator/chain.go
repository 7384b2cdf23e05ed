package creator

import (
	"context"
	"errors"
	"fmt"
	"time"

	"go.opentelemetry.io/otel/attribute"
	"go.opentelemetry.io/otel/codes"
	"go.opentelemetry.io/otel/trace"
	"go.opentelemetry.io/otel/trace/noop"

	"strata/internal/artifact"
	"strata/internal/cachemanager"
	"strata/internal/log"
	"strata/internal/pubsub"
	"strata/internal/registry"
	"strata/internal/tracing"
)

// persistAttempts bounds the reconciliation loop for racing writers. Each
// failed attempt either adopts the winner's record or retries with a freshly
// allocated version.
const persistAttempts = 3

// Creator is the per-kind capability set. The shared orchestration on Chain
// drives these two primitives.
type Creator interface {
	// Kind returns the artifact kind this creator produces.
	Kind() artifact.Kind

	// DetermineFilters computes the store lookup for an equivalent existing
	// artifact according to the kind's identity policy.
	DetermineFilters(ctx context.Context, req Request) (artifact.Filters, error)

	// CreateNew materializes and persists a fresh artifact, resolving the
	// dependency first when one is required.
	CreateNew(ctx context.Context, req Request) (*Result, error)
}

// Chain wires the six creators to a store and registry and carries the shared
// infrastructure: payload cache, lifecycle events, and tracing.
type Chain struct {
	store    artifact.Store
	registry *registry.Registry
	creators map[artifact.Kind]Creator
	payloads *cachemanager.ReadThroughCache[string, []byte, *artifact.Record]
	events   *pubsub.Broker[Event]
	tracer   trace.Tracer
	cacheTTL time.Duration
}

// Option configures a Chain.
type Option func(*Chain)

// WithTracer sets the tracer used for retrieve-or-create spans.
func WithTracer(t trace.Tracer) Option {
	return func(c *Chain) { c.tracer = t }
}

// WithPayloadCacheTTL overrides how long loaded payloads stay cached.
func WithPayloadCacheTTL(ttl time.Duration) Option {
	return func(c *Chain) { c.cacheTTL = ttl }
}

// WithoutPayloadCache disables payload caching; every load hits the store.
func WithoutPayloadCache() Option {
	return func(c *Chain) { c.cacheTTL = 0 }
}

// NewChain builds the full creator chain over a store and registry.
func NewChain(store artifact.Store, reg *registry.Registry, opts ...Option) *Chain {
	c := &Chain{
		store:    store,
		registry: reg,
		events:   pubsub.NewBroker[Event](),
		tracer:   noop.NewTracerProvider().Tracer("noop"),
		cacheTTL: cachemanager.DefaultExpiration,
	}
	for _, opt := range opts {
		opt(c)
	}

	cache := cachemanager.NewInMemoryCacheManager[string, []byte](
		"artifact-payloads", cachemanager.DefaultExpiration, cachemanager.DefaultCleanupInterval)
	c.payloads = cachemanager.NewReadThroughCache(
		cache,
		func(ctx context.Context, rec *artifact.Record) ([]byte, error) {
			return store.LoadPayload(ctx, rec)
		},
		c.cacheTTL == 0,
	)

	c.creators = map[artifact.Kind]Creator{
		artifact.KindRawDataset:         &rawDatasetCreator{chain: c},
		artifact.KindDatasetPipeline:    &datasetPipelineCreator{chain: c},
		artifact.KindProcessedDataset:   &processedDatasetCreator{chain: c},
		artifact.KindProductionPipeline: &productionPipelineCreator{chain: c},
		artifact.KindModel:              &modelCreator{chain: c},
		artifact.KindMetric:             &metricCreator{chain: c},
	}
	return c
}

// Creator returns the creator for a kind.
func (c *Chain) Creator(kind artifact.Kind) (Creator, bool) {
	cr, ok := c.creators[kind]
	return cr, ok
}

// Events exposes the lifecycle event broker for subscription.
func (c *Chain) Events() *pubsub.Broker[Event] {
	return c.events
}

// InvalidateCache drops every cached payload, forcing reloads from the store.
// Called when an external writer modifies the store file.
func (c *Chain) InvalidateCache(ctx context.Context) error {
	return c.payloads.Flush(ctx)
}

// Close shuts down the event broker.
func (c *Chain) Close() {
	c.events.Close()
}

// RetrieveOrCreate is the sole entry point per kind: it finds an equivalent
// existing artifact and loads it, or materializes and persists a new one.
// Callers never need to know whether the artifact already existed.
func (c *Chain) RetrieveOrCreate(ctx context.Context, kind artifact.Kind, req Request) (*Result, error) {
	ctx, span := c.tracer.Start(ctx, tracing.SpanRetrieveOrCreate,
		trace.WithAttributes(
			attribute.String(tracing.AttrArtifactKind, kind.String()),
			attribute.String(tracing.AttrArtifactName, req.Name),
			attribute.String(tracing.AttrRegisteredName, req.RegisteredName),
		))
	defer span.End()

	cr, ok := c.creators[kind]
	if !ok {
		err := fmt.Errorf("%w: unknown kind %q", ErrInvalidRequest, kind)
		span.SetStatus(codes.Error, err.Error())
		return nil, err
	}

	filters, err := cr.DetermineFilters(ctx, req)
	if err != nil {
		span.SetStatus(codes.Error, err.Error())
		return nil, err
	}

	rec, err := c.retrieve(ctx, kind, filters)
	if err != nil {
		span.SetStatus(codes.Error, err.Error())
		return nil, err
	}

	if rec != nil {
		log.Info(log.CatCreator, "using existing artifact",
			"kind", kind, "name", rec.Name(), "version", rec.Version())
		res, err := c.load(ctx, rec)
		if err != nil {
			span.SetStatus(codes.Error, err.Error())
			return nil, err
		}
		span.SetAttributes(attribute.Int(tracing.AttrArtifactVersion, rec.Version()))
		c.events.Publish(pubsub.RetrievedEvent, Event{Kind: kind, Record: rec})
		return res, nil
	}

	log.Info(log.CatCreator, "existing artifact not found, creating new one",
		"kind", kind, "name", req.Name)
	res, err := cr.CreateNew(ctx, req)
	if err != nil {
		span.SetStatus(codes.Error, err.Error())
		return nil, err
	}
	log.Info(log.CatCreator, "using new artifact",
		"kind", kind, "name", res.Record.Name(), "version", res.Record.Version())
	span.SetAttributes(attribute.Int(tracing.AttrArtifactVersion, res.Record.Version()))
	c.events.Publish(pubsub.CreatedEvent, Event{Kind: kind, Record: res.Record})
	return res, nil
}

// Retrieve finds and loads an equivalent existing artifact without creating
// one on a miss. Returns (nil, nil) when nothing matches.
func (c *Chain) Retrieve(ctx context.Context, kind artifact.Kind, req Request) (*Result, error) {
	cr, ok := c.creators[kind]
	if !ok {
		return nil, fmt.Errorf("%w: unknown kind %q", ErrInvalidRequest, kind)
	}
	filters, err := cr.DetermineFilters(ctx, req)
	if err != nil {
		return nil, err
	}
	rec, err := c.retrieve(ctx, kind, filters)
	if err != nil || rec == nil {
		return nil, err
	}
	res, err := c.load(ctx, rec)
	if err != nil {
		return nil, err
	}
	c.events.Publish(pubsub.RetrievedEvent, Event{Kind: kind, Record: rec})
	return res, nil
}

// retrieve queries the store and returns the newest matching record, or nil
// when none match.
func (c *Chain) retrieve(ctx context.Context, kind artifact.Kind, filters artifact.Filters) (*artifact.Record, error) {
	records, err := c.store.Find(ctx, kind, filters)
	if err != nil {
		return nil, err
	}
	if len(records) == 0 {
		return nil, nil
	}
	return records[0], nil
}

// load reconstructs the implementation for a persisted record: the registry
// supplies the type by registered name and the stored payload rehydrates it.
func (c *Chain) load(ctx context.Context, rec *artifact.Record) (*Result, error) {
	impl, err := c.registry.Construct(rec.RegisteredName(), rec.Name(), nil)
	if err != nil {
		return nil, err
	}

	payload, err := c.payloads.Get(ctx, rec.GUID(), rec, c.cacheTTL)
	if err != nil {
		return nil, fmt.Errorf("loading payload for %s %q v%d: %w",
			rec.Kind(), rec.Name(), rec.Version(), err)
	}
	if err := impl.Restore(payload); err != nil {
		return nil, fmt.Errorf("restoring %s %q v%d: %w",
			rec.Kind(), rec.Name(), rec.Version(), err)
	}
	return &Result{Record: rec, Impl: impl}, nil
}

// resolveDependency produces the dependency artifact for a non-leaf request:
// the explicitly provided one, or a lookup against the dependency kind's own
// creator. Lookup misses are ErrMissingDependency — dependencies are never
// fabricated implicitly at this layer.
func (c *Chain) resolveDependency(ctx context.Context, kind artifact.Kind, req Request) (*Result, error) {
	if req.Dependency != nil {
		return req.Dependency, nil
	}

	depKind, ok := kind.Dependency()
	if !ok {
		return nil, nil
	}

	var depReq Request
	if req.DependencyRequest != nil {
		depReq = *req.DependencyRequest
	}

	cr := c.creators[depKind]
	filters, err := cr.DetermineFilters(ctx, depReq)
	if err != nil {
		// The lookup targets an existing record, so it must not demand the
		// dependency's own upstream parameters. When the kind's policy needs
		// more than the request carries, or would recurse further up the
		// chain, fall back to the newest record by name and registered name.
		if !errors.Is(err, ErrInvalidRequest) && !errors.Is(err, artifact.ErrMissingDependency) {
			return nil, fmt.Errorf("resolving %s dependency: %w", depKind, err)
		}
		if depReq.RegisteredName == "" {
			return nil, fmt.Errorf("%w: %s for %s %q",
				artifact.ErrMissingDependency, depKind, kind, req.Name)
		}
		filters = artifact.Filters{Name: depReq.Name, RegisteredName: depReq.RegisteredName}
	}
	rec, err := c.retrieve(ctx, depKind, filters)
	if err != nil {
		return nil, err
	}
	if rec == nil {
		return nil, fmt.Errorf("%w: %s for %s %q",
			artifact.ErrMissingDependency, depKind, kind, req.Name)
	}
	return c.load(ctx, rec)
}

// createNew is the shared creation path: resolve the dependency, construct
// the implementation through the registry, materialize, fingerprint, persist.
// A uniqueness conflict means a concurrent writer won the version race; the
// conflict is reconciled locally by adopting the winner's record when its
// content identity matches, or reallocating a version otherwise.
func (c *Chain) createNew(ctx context.Context, kind artifact.Kind, req Request) (*Result, error) {
	ctx, span := c.tracer.Start(ctx, tracing.SpanCreateNew,
		trace.WithAttributes(
			attribute.String(tracing.AttrArtifactKind, kind.String()),
			attribute.String(tracing.AttrArtifactName, req.Name),
		))
	defer span.End()

	var dep *Result
	if _, hasDep := kind.Dependency(); hasDep {
		var err error
		dep, err = c.resolveDependency(ctx, kind, req)
		if err != nil {
			return nil, err
		}
	}

	impl, err := c.registry.Construct(req.RegisteredName, req.Name, req.Config)
	if err != nil {
		return nil, err
	}
	if dep != nil {
		if err := impl.AttachDependency(dep.Impl); err != nil {
			return nil, fmt.Errorf("attaching %s dependency: %w", kind, err)
		}
		impl.SetDependencyHash(dep.Record.Hash())
	}

	if err := impl.Materialize(ctx); err != nil {
		return nil, fmt.Errorf("materializing %s %q: %w", kind, req.Name, err)
	}

	hash, err := impl.Hash()
	if err != nil {
		return nil, fmt.Errorf("hashing %s %q: %w", kind, req.Name, err)
	}

	var depID *int64
	if dep != nil {
		id := dep.Record.ID()
		depID = &id
	}

	payload, err := impl.Snapshot()
	if err != nil {
		return nil, fmt.Errorf("serializing %s %q: %w", kind, req.Name, err)
	}

	name := impl.Name()
	if name == "" {
		name = req.Name
	}

	for attempt := 0; attempt < persistAttempts; attempt++ {
		rec := artifact.NewRecord(kind, name, req.RegisteredName, hash, depID)
		rec.SetAuthor(req.Author)
		rec.SetVersionDescription(req.VersionDescription)
		rec.SetMetadata(req.Metadata)

		err = c.store.Persist(ctx, rec, payload)
		if err == nil {
			return &Result{Record: rec, Impl: impl}, nil
		}
		if !errors.Is(err, artifact.ErrUniquenessConflict) {
			return nil, err
		}

		// A concurrent writer claimed the version. If it produced the same
		// content identity, its record satisfies this request.
		log.Warn(log.CatCreator, "version conflict during create, reconciling",
			"kind", kind, "name", name, "attempt", attempt+1)
		winner, retrieveErr := c.retrieve(ctx, kind, artifact.Filters{
			Name:           name,
			RegisteredName: req.RegisteredName,
			Hash:           hash,
		})
		if retrieveErr != nil {
			return nil, retrieveErr
		}
		if winner != nil {
			return c.load(ctx, winner)
		}
		// Different content raced onto the same version; retry with a fresh
		// allocation.
	}
	return nil, fmt.Errorf("persisting %s %q: %w", kind, name, err)
}
