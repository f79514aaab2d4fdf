package manifest

import (
	"errors"
	"fmt"
	"io/fs"
	"path/filepath"
	"strings"

	"github.com/pelletier/go-toml/v2"
)

// FileNameConstant is the base name of a Cargo manifest.
const FileNameConstant = "Cargo.toml"

const (
	entryPointDirectoryConstant       = "src"
	entryPointFileNameConstant        = "main.rs"
	releaseProfileNameConstant        = "release"
	packageNameFieldConstant          = "package.name"
	parseErrorTemplateConstant        = "manifest %s %s: %v"
	missingFieldErrorTemplateConstant = "manifest %s is missing required field %s"
	missingFieldCauseMessageConstant  = "missing field"
	parseErrorKindUnreadableConstant  = "could not be read"
	parseErrorKindMalformedConstant   = "is malformed"
)

var errMissingField = errors.New(missingFieldCauseMessageConstant)

// ParseErrorKind distinguishes the ways a manifest can fail to classify.
type ParseErrorKind int

// ParseErrorMalformed reports text that is not valid TOML, ParseErrorMissingField a document without
// a package name, and ParseErrorUnreadable a manifest that could not be read from disk.
const (
	ParseErrorMalformed ParseErrorKind = iota
	ParseErrorMissingField
	ParseErrorUnreadable
)

// ParseError reports a manifest that must be skipped.
type ParseError struct {
	Path  string
	Kind  ParseErrorKind
	Field string
	Cause error
}

func (parseError ParseError) Error() string {
	switch parseError.Kind {
	case ParseErrorMissingField:
		return fmt.Sprintf(missingFieldErrorTemplateConstant, parseError.Path, parseError.Field)
	case ParseErrorUnreadable:
		return fmt.Sprintf(parseErrorTemplateConstant, parseError.Path, parseErrorKindUnreadableConstant, parseError.Cause)
	default:
		return fmt.Sprintf(parseErrorTemplateConstant, parseError.Path, parseErrorKindMalformedConstant, parseError.Cause)
	}
}

func (parseError ParseError) Unwrap() error {
	return parseError.Cause
}

// FileSystem is the read-only file access the classifier needs.
type FileSystem interface {
	ReadFile(path string) ([]byte, error)
	Stat(path string) (fs.FileInfo, error)
}

// Metadata is the parsed subset of a manifest. Edition is nil when the manifest declares no edition
// string and ReleaseProfile is nil when it has no [profile.release] table.
type Metadata struct {
	Name            string
	Version         string
	Edition         *string
	HasBinaryTarget bool
	ReleaseProfile  *ReleaseProfileFlags
}

// Compliance computes the release-profile tier. Projects without a binary target are never held to the profile.
func (metadata Metadata) Compliance() ComplianceTier {
	if !metadata.HasBinaryTarget {
		return ComplianceNotApplicable
	}
	if metadata.ReleaseProfile == nil {
		return ComplianceProfileMissing
	}
	if !metadata.ReleaseProfile.Compliant() {
		return ComplianceProfileMismatched
	}
	return ComplianceCompliant
}

// EditionTier compares the declared edition with CurrentEditionConstant exactly.
func (metadata Metadata) EditionTier() EditionTier {
	if metadata.Edition == nil {
		return EditionUnspecified
	}
	if *metadata.Edition == CurrentEditionConstant {
		return EditionCurrent
	}
	return EditionOutdated
}

type cargoDocument struct {
	Package *cargoPackage             `toml:"package"`
	Profile map[string]map[string]any `toml:"profile"`
}

// Fields are decoded loosely because Cargo allows workspace inheritance tables in their place.
type cargoPackage struct {
	Name    any `toml:"name"`
	Version any `toml:"version"`
	Edition any `toml:"edition"`
}

// Classifier parses manifests into Metadata.
type Classifier struct {
	fileSystem FileSystem
}

// NewClassifier constructs a Classifier over the provided file system.
func NewClassifier(fileSystem FileSystem) *Classifier {
	return &Classifier{fileSystem: fileSystem}
}

// Classify parses the manifest at manifestPath. The only other file access is an existence
// check for src/main.rs next to the manifest.
func (classifier *Classifier) Classify(manifestPath string) (Metadata, error) {
	contents, readError := classifier.fileSystem.ReadFile(manifestPath)
	if readError != nil {
		return Metadata{}, ParseError{Path: manifestPath, Kind: ParseErrorUnreadable, Cause: readError}
	}

	var document cargoDocument
	if decodeError := toml.Unmarshal(contents, &document); decodeError != nil {
		return Metadata{}, ParseError{Path: manifestPath, Kind: ParseErrorMalformed, Cause: decodeError}
	}

	if document.Package == nil {
		return Metadata{}, ParseError{Path: manifestPath, Kind: ParseErrorMissingField, Field: packageNameFieldConstant, Cause: errMissingField}
	}
	packageName, _ := document.Package.Name.(string)
	if len(strings.TrimSpace(packageName)) == 0 {
		return Metadata{}, ParseError{Path: manifestPath, Kind: ParseErrorMissingField, Field: packageNameFieldConstant, Cause: errMissingField}
	}

	metadata := Metadata{
		Name:            packageName,
		HasBinaryTarget: classifier.hasEntryPoint(manifestPath),
		ReleaseProfile:  decodeReleaseProfile(document.Profile[releaseProfileNameConstant]),
	}
	if version, isString := document.Package.Version.(string); isString {
		metadata.Version = version
	}
	if edition, isString := document.Package.Edition.(string); isString {
		metadata.Edition = &edition
	}

	return metadata, nil
}

func (classifier *Classifier) hasEntryPoint(manifestPath string) bool {
	entryPointPath := filepath.Join(filepath.Dir(manifestPath), entryPointDirectoryConstant, entryPointFileNameConstant)
	_, statError := classifier.fileSystem.Stat(entryPointPath)
	return statError == nil
}
