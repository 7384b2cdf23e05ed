// Package artifact provides the pure domain layer for derived computational
// artifacts with no infrastructure dependencies.
//
// This package follows Domain-Driven Design (DDD) principles:
//   - Contains only pure Go code with standard library imports (plus uuid)
//   - Defines the Record entity with encapsulated state and behavior
//   - Defines the Store interface for persistence abstraction
//   - Defines the Implementation capability set for user-supplied artifact logic
//   - Provides domain-specific error types
//
// # Core Types
//
// Kind enumerates the six artifact categories forming a linear derivation
// chain: RawDataset -> DatasetPipeline -> ProcessedDataset ->
// ProductionPipeline -> Model -> Metric. Each non-leaf kind has exactly one
// upstream dependency kind, exposed by Kind.Dependency.
//
// Record is the immutable persisted identity of one artifact: name, version,
// registered name, content hash, and a reference to its dependency record.
// Records are append-only; "updating" an artifact means persisting a new
// version under the same name.
//
// Implementation is the contract user code fulfils to plug concrete dataset,
// pipeline, model, and metric logic into the creation framework. The Base
// struct provides the default configuration-plus-dependency fingerprint so
// most implementations only supply Materialize and payload codec methods.
//
// The domain layer has no knowledge of infrastructure concerns (databases,
// file I/O, caches).
package artifact
