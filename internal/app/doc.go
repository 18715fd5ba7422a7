// Package app wires the driver together: logger, job registry, optional run
// ledger, and the chain driver itself.
package app
