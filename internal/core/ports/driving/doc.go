// Package driving defines the interfaces the CLI uses to drive the core:
// running the pipeline, managing the corpus cache and editing settings.
// These are the "driving" ports in hexagonal architecture terminology.
//
// Implementations of these interfaces live in internal/core/services.
package driving
