// Package cli constructs the projctl command-line interface, wiring the Cobra
// command hierarchy, the layered configuration, root directory resolution and
// structured logging. Execute runs the default command set.
package cli
