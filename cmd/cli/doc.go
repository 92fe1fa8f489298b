// Package cli constructs the gitutils command-line interface, wiring the
// Cobra command hierarchy, configuration loader, and structured logging
// primitives around the repository tools.
package cli
