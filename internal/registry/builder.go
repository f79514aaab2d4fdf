// Package registry composes discovery and manifest classification into per-root project collections.
package registry

import (
	"iter"
	"path/filepath"

	"go.uber.org/zap"

	"github.com/temirov/projctl/internal/discovery"
	"github.com/temirov/projctl/internal/manifest"
)

// RepositoryMarkerConstant is the entry whose presence makes its parent directory a git repository.
const RepositoryMarkerConstant = ".git"

const (
	currentDirectoryConstant        = "."
	skippedEntryMessageConstant     = "skipping unreadable entry"
	skippedManifestMessageConstant  = "skipping manifest"
	profileDeviationMessageConstant = "release profile deviates"
	logFieldPathConstant            = "path"
	logFieldDeviationsConstant      = "deviations"
)

// TreeWalker enumerates entries named targetName beneath root.
type TreeWalker interface {
	Walk(root string, targetName string) (iter.Seq[discovery.WalkEntry], error)
}

// ManifestClassifier parses a manifest file.
type ManifestClassifier interface {
	Classify(manifestPath string) (manifest.Metadata, error)
}

// ProjectRoot locates a discovered directory. DisplayName is AbsolutePath relative to the scanned
// root and is empty when the directory is the root itself.
type ProjectRoot struct {
	AbsolutePath string
	DisplayName  string
}

// Project pairs a manifest location with its metadata and derived tiers.
type Project struct {
	Root       ProjectRoot
	Metadata   manifest.Metadata
	Compliance manifest.ComplianceTier
	Edition    manifest.EditionTier
}

// Builder produces the ordered project and repository collections of a root.
type Builder struct {
	logger     *zap.Logger
	walker     TreeWalker
	classifier ManifestClassifier
}

// NewBuilder constructs a Builder. A nil logger disables logging.
func NewBuilder(logger *zap.Logger, walker TreeWalker, classifier ManifestClassifier) *Builder {
	if logger == nil {
		logger = zap.NewNop()
	}
	return &Builder{logger: logger, walker: walker, classifier: classifier}
}

// BuildRegistry classifies every manifest beneath root in walk order. Manifests that fail to
// classify are omitted. The returned error is always a discovery.AccessFaultError for root.
func (builder *Builder) BuildRegistry(root string) ([]Project, error) {
	entries, walkError := builder.walker.Walk(root, manifest.FileNameConstant)
	if walkError != nil {
		return nil, walkError
	}

	projects := []Project{}
	for entry := range entries {
		if !builder.accept(entry) {
			continue
		}

		metadata, classifyError := builder.classifier.Classify(entry.Path)
		if classifyError != nil {
			builder.logger.Debug(skippedManifestMessageConstant, zap.String(logFieldPathConstant, entry.Path), zap.Error(classifyError))
			continue
		}

		project := Project{
			Root:       newProjectRoot(entry.Root, filepath.Dir(entry.Path)),
			Metadata:   metadata,
			Compliance: metadata.Compliance(),
			Edition:    metadata.EditionTier(),
		}
		if project.Compliance == manifest.ComplianceProfileMismatched {
			builder.logger.Debug(
				profileDeviationMessageConstant,
				zap.String(logFieldPathConstant, entry.Path),
				zap.Strings(logFieldDeviationsConstant, metadata.ReleaseProfile.Deviations()),
			)
		}
		projects = append(projects, project)
	}
	return projects, nil
}

// DiscoverRepositories lists the directories beneath root that contain a .git entry, in walk order.
func (builder *Builder) DiscoverRepositories(root string) ([]ProjectRoot, error) {
	entries, walkError := builder.walker.Walk(root, RepositoryMarkerConstant)
	if walkError != nil {
		return nil, walkError
	}

	repositories := []ProjectRoot{}
	for entry := range entries {
		if builder.accept(entry) {
			repositories = append(repositories, newProjectRoot(entry.Root, filepath.Dir(entry.Path)))
		}
	}
	return repositories, nil
}

func (builder *Builder) accept(entry discovery.WalkEntry) bool {
	if entry.Matched() {
		return true
	}
	builder.logger.Debug(skippedEntryMessageConstant, zap.String(logFieldPathConstant, entry.Path), zap.Error(entry.SkipReason))
	return false
}

func newProjectRoot(root string, directory string) ProjectRoot {
	return ProjectRoot{AbsolutePath: directory, DisplayName: relativeDisplayName(root, directory)}
}

func relativeDisplayName(root string, directory string) string {
	relativePath, relativeError := filepath.Rel(root, directory)
	if relativeError != nil {
		return directory
	}
	if relativePath == currentDirectoryConstant {
		return ""
	}
	return relativePath
}
