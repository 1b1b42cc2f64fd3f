// Package orchestrator wires plugin activation -> discovery -> selection ->
// config validation -> generator resolution -> generation into a single
// entry point that runs once per build invocation.
package orchestrator
