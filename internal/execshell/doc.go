// Package execshell provides structured helpers for invoking external tools.
//
// It wraps os/exec with logging via ShellExecutor, exposes OSCommandRunner for
// default process execution, and defines the abstractions projctl uses to run
// git, cargo, and upx in a testable manner. Every command carries its own
// working directory; the process working directory is never changed.
package execshell
