// Package store provides the generic table-operations client the storefront
// uses to reach its remote row-oriented backend: select, insert, update and
// delete with equality filters, one remote round trip per call, and no
// transaction boundary visible to the caller.
//
// Two implementations exist: Postgres (the real backend, via the pgx stdlib
// driver) and InMemory (tests).
package store
