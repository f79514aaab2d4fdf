// Package roots resolves the root directories scanned by projctl commands.
//
// Roots come from the first non-empty source among the --root flag, the
// configured roots list and the legacy project-ctl.yaml file in the user
// configuration directory.
package roots

import (
	"errors"
	"fmt"
	"io/fs"
	"os"
	"path/filepath"

	"gopkg.in/yaml.v3"

	pathutils "github.com/temirov/projctl/internal/utils/path"
)

// LegacyFileNameConstant names the roots file kept in the user configuration directory.
const LegacyFileNameConstant = "project-ctl.yaml"

const (
	noRootsConfiguredMessageConstant            = "no root directories configured"
	legacyFileReadErrorTemplateConstant         = "unable to read %s: %w"
	legacyFileParseErrorTemplateConstant        = "unable to parse %s: %w"
	configurationDirectoryErrorTemplateConstant = "unable to locate user configuration directory: %w"
)

// ErrNoRootsConfigured indicates that every roots source was empty.
var ErrNoRootsConfigured = errors.New(noRootsConfiguredMessageConstant)

// ConfigurationDirectoryProvider returns the user configuration directory.
type ConfigurationDirectoryProvider func() (string, error)

// FileReader reads whole files.
type FileReader interface {
	ReadFile(path string) ([]byte, error)
}

type legacyRootRecord struct {
	Path string `yaml:"path"`
}

// Resolver merges the roots sources into one sanitized list.
type Resolver struct {
	configurationDirectoryProvider ConfigurationDirectoryProvider
	fileReader                     FileReader
	sanitizer                      *pathutils.RootSanitizer
}

// NewResolver constructs a Resolver. Nil collaborators fall back to the operating system.
func NewResolver(configurationDirectoryProvider ConfigurationDirectoryProvider, fileReader FileReader, sanitizer *pathutils.RootSanitizer) *Resolver {
	if configurationDirectoryProvider == nil {
		configurationDirectoryProvider = os.UserConfigDir
	}
	if fileReader == nil {
		fileReader = osFileReader{}
	}
	if sanitizer == nil {
		sanitizer = pathutils.NewRootSanitizer(nil)
	}
	return &Resolver{
		configurationDirectoryProvider: configurationDirectoryProvider,
		fileReader:                     fileReader,
		sanitizer:                      sanitizer,
	}
}

// Resolve returns the roots to scan. Flag overrides win over configured roots,
// which win over the legacy file. ErrNoRootsConfigured is returned when all are empty.
func (resolver *Resolver) Resolve(overrideRoots []string, configuredRoots []string) ([]string, error) {
	if sanitized := resolver.sanitizer.Sanitize(overrideRoots); len(sanitized) > 0 {
		return sanitized, nil
	}
	if sanitized := resolver.sanitizer.Sanitize(configuredRoots); len(sanitized) > 0 {
		return sanitized, nil
	}

	legacyRoots, legacyError := resolver.readLegacyRoots()
	if legacyError != nil {
		return nil, legacyError
	}
	if sanitized := resolver.sanitizer.Sanitize(legacyRoots); len(sanitized) > 0 {
		return sanitized, nil
	}
	return nil, ErrNoRootsConfigured
}

func (resolver *Resolver) readLegacyRoots() ([]string, error) {
	configurationDirectory, directoryError := resolver.configurationDirectoryProvider()
	if directoryError != nil {
		return nil, fmt.Errorf(configurationDirectoryErrorTemplateConstant, directoryError)
	}

	legacyFilePath := filepath.Join(configurationDirectory, LegacyFileNameConstant)
	contents, readError := resolver.fileReader.ReadFile(legacyFilePath)
	if readError != nil {
		if errors.Is(readError, fs.ErrNotExist) {
			return nil, nil
		}
		return nil, fmt.Errorf(legacyFileReadErrorTemplateConstant, legacyFilePath, readError)
	}

	var records []legacyRootRecord
	if unmarshalError := yaml.Unmarshal(contents, &records); unmarshalError != nil {
		return nil, fmt.Errorf(legacyFileParseErrorTemplateConstant, legacyFilePath, unmarshalError)
	}

	legacyRoots := make([]string, 0, len(records))
	for _, record := range records {
		legacyRoots = append(legacyRoots, record.Path)
	}
	return legacyRoots, nil
}

type osFileReader struct{}

func (osFileReader) ReadFile(path string) ([]byte, error) {
	return os.ReadFile(path)
}
