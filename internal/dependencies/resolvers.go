// Package dependencies supplies default collaborators for command builders when none are injected.
package dependencies

import (
	"go.uber.org/zap"

	"github.com/temirov/projctl/internal/discovery"
	"github.com/temirov/projctl/internal/execshell"
	"github.com/temirov/projctl/internal/filesystem"
	"github.com/temirov/projctl/internal/gitinfo"
	"github.com/temirov/projctl/internal/manifest"
	"github.com/temirov/projctl/internal/registry"
)

// LoggerProvider supplies a zap logger for command execution.
type LoggerProvider func() *zap.Logger

// ResolveLogger returns the provider's logger or a no-op logger.
func ResolveLogger(provider LoggerProvider) *zap.Logger {
	if provider == nil {
		return zap.NewNop()
	}
	logger := provider()
	if logger == nil {
		return zap.NewNop()
	}
	return logger
}

// ResolveShellExecutor constructs a ShellExecutor backed by operating system processes.
func ResolveShellExecutor(logger *zap.Logger, observer execshell.CommandEventObserver) (*execshell.ShellExecutor, error) {
	return execshell.NewShellExecutor(logger, execshell.NewOSCommandRunner(), observer)
}

// ResolveTreeWalker returns the provided walker or a filesystem-backed default.
func ResolveTreeWalker(existing registry.TreeWalker) registry.TreeWalker {
	if existing != nil {
		return existing
	}
	return discovery.NewTreeWalker()
}

// ResolveManifestClassifier returns the provided classifier or one reading the local filesystem.
func ResolveManifestClassifier(existing registry.ManifestClassifier) registry.ManifestClassifier {
	if existing != nil {
		return existing
	}
	return manifest.NewClassifier(filesystem.OSFileSystem{})
}

// ResolveRegistryBuilder assembles a registry builder from the resolved walker and classifier.
func ResolveRegistryBuilder(logger *zap.Logger, walker registry.TreeWalker, classifier registry.ManifestClassifier) *registry.Builder {
	return registry.NewBuilder(logger, ResolveTreeWalker(walker), ResolveManifestClassifier(classifier))
}

// ResolveFileSystem returns the provided filesystem or an OS-backed default.
func ResolveFileSystem(existing filesystem.FileSystem) filesystem.FileSystem {
	if existing != nil {
		return existing
	}
	return filesystem.OSFileSystem{}
}

// ResolveBranchReader returns a go-git backed branch reader.
func ResolveBranchReader() *gitinfo.BranchReader {
	return gitinfo.NewBranchReader()
}
