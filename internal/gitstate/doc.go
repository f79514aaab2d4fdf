// Package gitstate implements the `git state` command, which reports how far each
// repository beneath the configured roots has drifted from its upstream branch.
//
// CommandBuilder wires the Cobra command and Service drives the report for a set of roots.
package gitstate
