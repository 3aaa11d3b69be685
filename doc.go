// Package colops is a unified column-operations layer for columnar dataframe
// engines. It defines an engine-agnostic contract for named column operations
// (casting, imputation, nesting, histograms, label encoding, and so on),
// fans work out across partitions of a logical table, reassembles partial
// results into a single answer, and tracks applied-operation lineage on the
// table so downstream consumers can reason about how column values were
// produced.
//
// The root package contains interfaces and shared types. Implementations
// live in subpackages: schema, meta, cast, selector, deferred, aggregate,
// transform, ml, and the engine adapters under engine/.
package colops
