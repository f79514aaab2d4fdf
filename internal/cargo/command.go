package cargo

import (
	"fmt"

	"github.com/spf13/cobra"

	"github.com/temirov/projctl/internal/dependencies"
	"github.com/temirov/projctl/internal/execshell"
	"github.com/temirov/projctl/internal/registry"
)

const (
	groupUseConstant              = "cargo"
	groupShortDescriptionConstant = "Inspect and maintain the Rust projects beneath the configured roots"
	infoShortDescriptionConstant  = "List projects with their edition and release profile state"
	actionShortTemplateConstant   = "Run cargo %s in every project and list the outcome"
)

// RootsProvider returns the sanitized root directories to scan.
type RootsProvider func() ([]string, error)

// CommandBuilder assembles the cargo command family with configurable dependencies.
type CommandBuilder struct {
	LoggerProvider        dependencies.LoggerProvider
	RootsProvider         RootsProvider
	Walker                registry.TreeWalker
	Classifier            registry.ManifestClassifier
	Executor              Executor
	CommandEventsObserver execshell.CommandEventObserver
}

// Build constructs the cargo group command with one subcommand per action.
func (builder *CommandBuilder) Build() (*cobra.Command, error) {
	groupCommand := &cobra.Command{
		Use:   groupUseConstant,
		Short: groupShortDescriptionConstant,
		Args:  cobra.NoArgs,
		RunE: func(command *cobra.Command, arguments []string) error {
			return command.Help()
		},
	}

	groupCommand.AddCommand(builder.buildActionCommand(ActionInfo, infoShortDescriptionConstant))
	for _, action := range []Action{ActionUpdate, ActionClean, ActionAudit} {
		groupCommand.AddCommand(builder.buildActionCommand(action, fmt.Sprintf(actionShortTemplateConstant, action)))
	}

	return groupCommand, nil
}

func (builder *CommandBuilder) buildActionCommand(action Action, shortDescription string) *cobra.Command {
	return &cobra.Command{
		Use:   string(action),
		Short: shortDescription,
		Args:  cobra.NoArgs,
		RunE: func(command *cobra.Command, arguments []string) error {
			return builder.run(command, action)
		},
	}
}

func (builder *CommandBuilder) run(command *cobra.Command, action Action) error {
	roots, rootsError := builder.resolveRoots()
	if rootsError != nil {
		return rootsError
	}

	logger := dependencies.ResolveLogger(builder.LoggerProvider)
	executor, executorError := builder.resolveExecutor(action)
	if executorError != nil {
		return executorError
	}

	projectRegistry := dependencies.ResolveRegistryBuilder(logger, builder.Walker, builder.Classifier)
	service := NewService(logger, projectRegistry, executor, command.OutOrStdout())
	return service.Run(command.Context(), Options{Roots: roots, Action: action})
}

func (builder *CommandBuilder) resolveRoots() ([]string, error) {
	if builder.RootsProvider == nil {
		return nil, nil
	}
	return builder.RootsProvider()
}

func (builder *CommandBuilder) resolveExecutor(action Action) (Executor, error) {
	if builder.Executor != nil || action == ActionInfo {
		return builder.Executor, nil
	}
	return dependencies.ResolveShellExecutor(dependencies.ResolveLogger(builder.LoggerProvider), builder.CommandEventsObserver)
}
