// Package cargo implements the `cargo` command family: a project table per root,
// optionally after running a cargo maintenance action in every project directory.
package cargo
