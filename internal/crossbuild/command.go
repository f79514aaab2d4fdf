package crossbuild

import (
	"os"

	"github.com/spf13/cobra"

	"github.com/temirov/projctl/internal/dependencies"
	"github.com/temirov/projctl/internal/execshell"
)

const (
	commandUseConstant              = "build-win"
	commandShortDescriptionConstant = "Cross-compile the current project for Windows"
	commandLongDescriptionConstant  = "build-win builds the Cargo project in the working directory for every configured Windows target and copies each executable to the output directory as <name>-v<version>-windows-<suffix>.exe."
	releaseFlagNameConstant         = "release"
	releaseFlagUsageConstant        = "Build with the release profile"
	upxFlagNameConstant             = "use-upx"
	upxFlagUsageConstant            = "Compress collected executables with upx"
)

// ConfigurationProvider returns the current build-win configuration.
type ConfigurationProvider func() CommandConfiguration

// CommandBuilder assembles the build-win cobra command with configurable dependencies.
type CommandBuilder struct {
	LoggerProvider        dependencies.LoggerProvider
	ConfigurationProvider ConfigurationProvider
	WorkingDirectory      string
	Classifier            ManifestClassifier
	Executor              ToolExecutor
	FileSystem            FileSystem
	CommandEventsObserver execshell.CommandEventObserver
}

// Build constructs the cobra command.
func (builder *CommandBuilder) Build() (*cobra.Command, error) {
	command := &cobra.Command{
		Use:   commandUseConstant,
		Short: commandShortDescriptionConstant,
		Long:  commandLongDescriptionConstant,
		Args:  cobra.NoArgs,
		RunE:  builder.run,
	}

	command.Flags().Bool(releaseFlagNameConstant, false, releaseFlagUsageConstant)
	command.Flags().Bool(upxFlagNameConstant, false, upxFlagUsageConstant)

	return command, nil
}

func (builder *CommandBuilder) run(command *cobra.Command, arguments []string) error {
	release, _ := command.Flags().GetBool(releaseFlagNameConstant)
	useUPX, _ := command.Flags().GetBool(upxFlagNameConstant)

	projectDirectory, directoryError := builder.resolveWorkingDirectory()
	if directoryError != nil {
		return directoryError
	}

	logger := dependencies.ResolveLogger(builder.LoggerProvider)
	executor, executorError := builder.resolveExecutor()
	if executorError != nil {
		return executorError
	}

	fileSystem := builder.resolveFileSystem()
	classifier := builder.Classifier
	if classifier == nil {
		classifier = dependencies.ResolveManifestClassifier(nil)
	}

	configuration := builder.resolveConfiguration()
	service := NewService(logger, classifier, executor, fileSystem, nil, command.OutOrStdout())
	return service.Run(command.Context(), Options{
		ProjectDirectory: projectDirectory,
		OutputDirectory:  configuration.OutputDirectory,
		Targets:          configuration.Targets,
		Release:          release,
		UseUPX:           useUPX,
	})
}

func (builder *CommandBuilder) resolveWorkingDirectory() (string, error) {
	if len(builder.WorkingDirectory) > 0 {
		return builder.WorkingDirectory, nil
	}
	return os.Getwd()
}

func (builder *CommandBuilder) resolveConfiguration() CommandConfiguration {
	if builder.ConfigurationProvider == nil {
		return DefaultCommandConfiguration()
	}
	return builder.ConfigurationProvider()
}

func (builder *CommandBuilder) resolveExecutor() (ToolExecutor, error) {
	if builder.Executor != nil {
		return builder.Executor, nil
	}
	return dependencies.ResolveShellExecutor(dependencies.ResolveLogger(builder.LoggerProvider), builder.CommandEventsObserver)
}

func (builder *CommandBuilder) resolveFileSystem() FileSystem {
	if builder.FileSystem != nil {
		return builder.FileSystem
	}
	return dependencies.ResolveFileSystem(nil)
}
