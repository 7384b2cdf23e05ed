// Package creator implements the retrieve-or-create framework over the
// artifact derivation chain.
//
// One Creator exists per artifact kind. Each implements two primitives —
// DetermineFilters (how to look up an equivalent existing artifact) and
// CreateNew (how to materialize and persist a fresh one) — while the shared
// orchestration (RetrieveOrCreate, retrieval, dependency resolution, payload
// loading, race reconciliation) is implemented once on Chain against that
// interface.
//
// # Identity policy
//
// Lookups follow a three-tier policy:
//
//  1. An explicit version pins the lookup to (name, version); no hashing.
//  2. Strict mode constructs a candidate instance, materializes it when
//     content participates in identity, and filters by
//     (name, registered name, hash). Identity is proven by content.
//  3. Loose mode trusts (name, registered name) — or a cheaper natural key
//     such as the metric (name, model id) pair — assuming the implementation
//     is deterministic given its declared inputs.
//
// Dataset kinds default to strict because their content is only knowable
// after loading; pipelines, models, and metrics default to loose.
//
// # Dependency resolution
//
// Requests either carry a resolved dependency artifact or lookup parameters
// for one. Lookup parameters must resolve to an existing record; a miss is
// artifact.ErrMissingDependency, never an implicit creation. Callers wanting
// fabrication invoke the dependency kind's own RetrieveOrCreate first.
// A lookup that carries less than the dependency kind's own filter policy
// needs (for example naming a model without its pipeline parameters) matches
// the newest record by name and registered name instead of recursing up the
// chain.
//
// Dependents are always fingerprinted against the dependency's persisted
// record hash, so an artifact resolved by lookup identifies its downstream
// chain exactly as it did when first created.
//
// # Concurrency
//
// Creators are stateless; all state lives in the store. Two callers racing to
// create the same content identity are reconciled through the store's
// uniqueness constraints: the loser's insert fails, and it re-queries by
// (name, registered name, hash) to adopt the winner's record.
package creator
