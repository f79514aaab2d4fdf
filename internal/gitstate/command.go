package gitstate

import (
	"github.com/spf13/cobra"

	"github.com/temirov/projctl/internal/dependencies"
	"github.com/temirov/projctl/internal/divergence"
	"github.com/temirov/projctl/internal/execshell"
	"github.com/temirov/projctl/internal/registry"
)

const (
	commandUseConstant              = "state"
	commandShortDescriptionConstant = "Show how far each repository has drifted from its upstream"
	commandLongDescriptionConstant  = "state walks every configured root, finds git repositories and prints one line per repository that has staged differences against its upstream or uncommitted changes."
	allFlagNameConstant             = "all"
	allFlagUsageConstant            = "Also list repositories without changes"
	branchFlagNameConstant          = "branch"
	branchFlagUsageConstant         = "Append the current branch to each line"
)

// ConfigurationProvider returns the current git state configuration.
type ConfigurationProvider func() CommandConfiguration

// RootsProvider returns the sanitized root directories to scan.
type RootsProvider func() ([]string, error)

// CommandBuilder assembles the git state cobra command with configurable dependencies.
type CommandBuilder struct {
	LoggerProvider        dependencies.LoggerProvider
	ConfigurationProvider ConfigurationProvider
	RootsProvider         RootsProvider
	GitExecutor           divergence.GitQueryExecutor
	Walker                registry.TreeWalker
	BranchReader          BranchReader
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

	command.Flags().Bool(allFlagNameConstant, false, allFlagUsageConstant)
	command.Flags().Bool(branchFlagNameConstant, false, branchFlagUsageConstant)

	return command, nil
}

func (builder *CommandBuilder) run(command *cobra.Command, arguments []string) error {
	roots, rootsError := builder.resolveRoots()
	if rootsError != nil {
		return rootsError
	}

	includeClean, _ := command.Flags().GetBool(allFlagNameConstant)
	showBranch, _ := command.Flags().GetBool(branchFlagNameConstant)

	logger := dependencies.ResolveLogger(builder.LoggerProvider)
	gitExecutor, executorError := builder.resolveGitExecutor()
	if executorError != nil {
		return executorError
	}

	inspector := divergence.NewInspector(logger, gitExecutor, builder.resolveConfiguration().inspectorOptions())
	repositoryBuilder := dependencies.ResolveRegistryBuilder(logger, builder.Walker, nil)

	service := NewService(logger, repositoryBuilder, inspector, builder.resolveBranchReader(), command.OutOrStdout())
	return service.Run(command.Context(), Options{Roots: roots, IncludeClean: includeClean, ShowBranch: showBranch})
}

func (builder *CommandBuilder) resolveRoots() ([]string, error) {
	if builder.RootsProvider == nil {
		return nil, nil
	}
	return builder.RootsProvider()
}

func (builder *CommandBuilder) resolveConfiguration() CommandConfiguration {
	if builder.ConfigurationProvider == nil {
		return DefaultCommandConfiguration()
	}
	return builder.ConfigurationProvider()
}

func (builder *CommandBuilder) resolveGitExecutor() (divergence.GitQueryExecutor, error) {
	if builder.GitExecutor != nil {
		return builder.GitExecutor, nil
	}
	return dependencies.ResolveShellExecutor(dependencies.ResolveLogger(builder.LoggerProvider), builder.CommandEventsObserver)
}

func (builder *CommandBuilder) resolveBranchReader() BranchReader {
	if builder.BranchReader != nil {
		return builder.BranchReader
	}
	return dependencies.ResolveBranchReader()
}
