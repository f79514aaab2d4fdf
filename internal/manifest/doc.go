// Package manifest reads the subset of a Cargo.toml manifest needed to classify build-profile hygiene.
//
// Classifier.Classify produces Metadata; Metadata.Compliance and Metadata.EditionTier derive the
// tiers consumed by reporting. Only package name, version, edition and the release profile are read.
package manifest
