// Package defaults centralizes timeout constants used across strata components.
//
// Keeping timeouts in one place makes the relationships between them visible:
// handler timeouts must be shorter than server write timeouts, and ConfigMap
// operation timeouts must fit within the handler budget that triggers them.
package defaults
