// Package orchestrator wires the document → form model → widget resolution →
// theme selection → renderer pipeline, providing dependency injection
// friendly helpers for consumers that prefer a single entry point.
package orchestrator
