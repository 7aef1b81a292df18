// Package checkout drives the multi-step commit sequence that converts a
// cart into a persisted order: an ordered, best-effort saga over a store
// that offers no atomicity across writes.
package checkout
