// Package crossbuild implements `cargo build-win`, which cross-compiles the project in the
// working directory for each configured Windows target and collects the executables
// under versioned names in an output directory.
package crossbuild
