package crossbuild

import (
	"context"
	"errors"
	"fmt"
	"io"
	"io/fs"
	"path/filepath"
	"strings"

	"go.uber.org/zap"

	"github.com/temirov/projctl/internal/execshell"
	"github.com/temirov/projctl/internal/manifest"
	pathutils "github.com/temirov/projctl/internal/utils/path"
)

const (
	artifactNameTemplateConstant         = "%s-v%s-windows-%s.exe"
	executableExtensionConstant          = ".exe"
	targetDirectoryNameConstant          = "target"
	releaseProfileDirectoryConstant      = "release"
	debugProfileDirectoryConstant        = "debug"
	cargoBuildSubcommandConstant         = "build"
	cargoTargetFlagConstant              = "--target"
	cargoReleaseFlagConstant             = "--release"
	artifactBuiltTemplateConstant        = "built %s\n"
	projectHeaderTemplateConstant        = "PROJECT: %s v%s\n"
	targetHeaderTemplateConstant         = "TARGET: %s\n"
	targetFailedTemplateConstant         = "FAIL %s: %v\n"
	versionMissingMessageConstant        = "package.version is required to name build artifacts"
	noTargetsMessageConstant             = "no build targets configured"
	targetsFailedTemplateConstant        = "%d of %d targets failed"
	manifestErrorTemplateConstant        = "unable to read project manifest: %w"
	outputDirectoryErrorTemplateConstant = "unable to create output directory %s: %w"
	buildFailedTemplateConstant          = "cargo build for %s failed: %w"
	copyFailedTemplateConstant           = "unable to copy %s to %s: %w"
	compressionFailedTemplateConstant    = "upx compression of %s failed: %w"
	targetFailedMessageConstant          = "build target failed"
	logFieldTargetConstant               = "target"
)

const (
	outputDirectoryPermissionsConstant fs.FileMode = 0o755
	artifactPermissionsConstant        fs.FileMode = 0o755
)

var (
	// ErrVersionMissing indicates that the manifest has no usable package.version.
	ErrVersionMissing = errors.New(versionMissingMessageConstant)
	// ErrNoTargets indicates that the configuration lists no targets.
	ErrNoTargets = errors.New(noTargetsMessageConstant)
)

// ManifestClassifier parses the project manifest.
type ManifestClassifier interface {
	Classify(manifestPath string) (manifest.Metadata, error)
}

// ToolExecutor runs cargo and upx, failing on a non-zero exit status.
type ToolExecutor interface {
	ExecuteCargo(executionContext context.Context, details execshell.CommandDetails) (execshell.ExecutionResult, error)
	ExecuteUPX(executionContext context.Context, details execshell.CommandDetails) (execshell.ExecutionResult, error)
}

// FileSystem copies build artifacts.
type FileSystem interface {
	ReadFile(path string) ([]byte, error)
	MkdirAll(path string, permissions fs.FileMode) error
	WriteFile(path string, data []byte, permissions fs.FileMode) error
}

// Options controls a single build run.
type Options struct {
	ProjectDirectory string
	OutputDirectory  string
	Targets          []Target
	Release          bool
	UseUPX           bool
}

// Service builds and collects the Windows executables of one project.
type Service struct {
	logger       *zap.Logger
	classifier   ManifestClassifier
	executor     ToolExecutor
	fileSystem   FileSystem
	homeExpander *pathutils.HomeExpander
	outputWriter io.Writer
}

// NewService constructs a Service reporting artifact paths to outputWriter.
func NewService(logger *zap.Logger, classifier ManifestClassifier, executor ToolExecutor, fileSystem FileSystem, homeExpander *pathutils.HomeExpander, outputWriter io.Writer) *Service {
	if logger == nil {
		logger = zap.NewNop()
	}
	if homeExpander == nil {
		homeExpander = pathutils.NewHomeExpander()
	}
	return &Service{
		logger:       logger,
		classifier:   classifier,
		executor:     executor,
		fileSystem:   fileSystem,
		homeExpander: homeExpander,
		outputWriter: outputWriter,
	}
}

// Run builds every target in order. A failed target is reported and the next one proceeds;
// the returned error counts the failures.
func (service *Service) Run(executionContext context.Context, options Options) error {
	if len(options.Targets) == 0 {
		return ErrNoTargets
	}

	metadata, classifyError := service.classifier.Classify(filepath.Join(options.ProjectDirectory, manifest.FileNameConstant))
	if classifyError != nil {
		return fmt.Errorf(manifestErrorTemplateConstant, classifyError)
	}
	if len(strings.TrimSpace(metadata.Version)) == 0 {
		return ErrVersionMissing
	}

	outputDirectory := filepath.Clean(service.homeExpander.Expand(strings.TrimSpace(options.OutputDirectory)))
	if mkdirError := service.fileSystem.MkdirAll(outputDirectory, outputDirectoryPermissionsConstant); mkdirError != nil {
		return fmt.Errorf(outputDirectoryErrorTemplateConstant, outputDirectory, mkdirError)
	}

	fmt.Fprintf(service.outputWriter, projectHeaderTemplateConstant, metadata.Name, metadata.Version)

	failedTargets := 0
	for _, target := range options.Targets {
		fmt.Fprintf(service.outputWriter, targetHeaderTemplateConstant, target.Triple)
		artifactPath, targetError := service.buildTarget(executionContext, options, metadata, target, outputDirectory)
		if targetError != nil {
			failedTargets++
			service.logger.Warn(targetFailedMessageConstant, zap.String(logFieldTargetConstant, target.Triple), zap.Error(targetError))
			fmt.Fprintf(service.outputWriter, targetFailedTemplateConstant, target.Triple, targetError)
			continue
		}
		fmt.Fprintf(service.outputWriter, artifactBuiltTemplateConstant, artifactPath)
	}

	if failedTargets > 0 {
		return fmt.Errorf(targetsFailedTemplateConstant, failedTargets, len(options.Targets))
	}
	return nil
}

func (service *Service) buildTarget(executionContext context.Context, options Options, metadata manifest.Metadata, target Target, outputDirectory string) (string, error) {
	buildArguments := []string{cargoBuildSubcommandConstant, cargoTargetFlagConstant, target.Triple}
	profileDirectory := debugProfileDirectoryConstant
	if options.Release {
		buildArguments = append(buildArguments, cargoReleaseFlagConstant)
		profileDirectory = releaseProfileDirectoryConstant
	}

	if _, buildError := service.executor.ExecuteCargo(executionContext, execshell.CommandDetails{
		Arguments:        buildArguments,
		WorkingDirectory: options.ProjectDirectory,
	}); buildError != nil {
		return "", fmt.Errorf(buildFailedTemplateConstant, target.Triple, buildError)
	}

	sourcePath := filepath.Join(options.ProjectDirectory, targetDirectoryNameConstant, target.Triple, profileDirectory, metadata.Name+executableExtensionConstant)
	artifactPath := filepath.Join(outputDirectory, ArtifactName(metadata.Name, metadata.Version, target.Suffix))
	if copyError := service.copyArtifact(sourcePath, artifactPath); copyError != nil {
		return "", fmt.Errorf(copyFailedTemplateConstant, sourcePath, artifactPath, copyError)
	}

	if options.UseUPX {
		if _, compressionError := service.executor.ExecuteUPX(executionContext, execshell.CommandDetails{
			Arguments:        []string{artifactPath},
			WorkingDirectory: options.ProjectDirectory,
		}); compressionError != nil {
			return "", fmt.Errorf(compressionFailedTemplateConstant, artifactPath, compressionError)
		}
	}
	return artifactPath, nil
}

func (service *Service) copyArtifact(sourcePath string, destinationPath string) error {
	contents, readError := service.fileSystem.ReadFile(sourcePath)
	if readError != nil {
		return readError
	}
	return service.fileSystem.WriteFile(destinationPath, contents, artifactPermissionsConstant)
}

// ArtifactName formats the collected executable name, e.g. tool-v1.2.0-windows-x86_64.exe.
func ArtifactName(packageName string, version string, suffix string) string {
	return fmt.Sprintf(artifactNameTemplateConstant, packageName, version, suffix)
}
