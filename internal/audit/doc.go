// Package audit orchestrates a full dataset integrity pass.
//
// An Auditor indexes the dataset, runs per-sample extraction (metadata,
// identity, content hashes, encoding fingerprints) across a bounded worker
// pool, reduces the results through a single goroutine into global collision
// maps, and scores the detected findings into a report. The dataset tree is
// strictly read-only; the only write is the report, performed by the caller
// after Run returns.
package audit
