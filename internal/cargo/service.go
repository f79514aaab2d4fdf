package cargo

import (
	"context"
	"errors"
	"io"

	"go.uber.org/zap"

	"github.com/temirov/projctl/internal/console"
	"github.com/temirov/projctl/internal/discovery"
	"github.com/temirov/projctl/internal/execshell"
	"github.com/temirov/projctl/internal/registry"
	"github.com/temirov/projctl/internal/report"
)

const (
	rootUnavailableMessageConstant = "root directory unavailable"
	actionFailedMessageConstant    = "cargo action failed"
	logFieldRootConstant           = "root"
	logFieldProjectConstant        = "project"
	logFieldActionConstant         = "action"
)

// Action is a cargo subcommand run in every project directory.
type Action string

// Supported actions. ActionInfo runs nothing and only prints the table.
const (
	ActionInfo   Action = "info"
	ActionUpdate Action = "update"
	ActionClean  Action = "clean"
	ActionAudit  Action = "audit"
)

// ProjectRegistry lists the classified projects beneath a root.
type ProjectRegistry interface {
	BuildRegistry(root string) ([]registry.Project, error)
}

// Executor runs cargo and fails on a non-zero exit status.
type Executor interface {
	ExecuteCargo(executionContext context.Context, details execshell.CommandDetails) (execshell.ExecutionResult, error)
}

// Options controls a single run.
type Options struct {
	Roots  []string
	Action Action
}

// Service prints the project table of every root and runs the requested action.
type Service struct {
	logger   *zap.Logger
	registry ProjectRegistry
	executor Executor
	renderer *console.Renderer
}

// NewService constructs a Service writing tables to outputWriter.
func NewService(logger *zap.Logger, projectRegistry ProjectRegistry, executor Executor, outputWriter io.Writer) *Service {
	if logger == nil {
		logger = zap.NewNop()
	}
	return &Service{
		logger:   logger,
		registry: projectRegistry,
		executor: executor,
		renderer: console.NewRenderer(outputWriter),
	}
}

// Run processes each root in order. Actions run sequentially in discovery order with the
// project directory as working directory. Inaccessible roots are logged and skipped.
func (service *Service) Run(executionContext context.Context, options Options) error {
	for _, root := range options.Roots {
		projects, registryError := service.registry.BuildRegistry(root)
		if registryError != nil {
			var accessFault discovery.AccessFaultError
			if errors.As(registryError, &accessFault) {
				service.logger.Warn(rootUnavailableMessageConstant, zap.String(logFieldRootConstant, root), zap.Error(registryError))
				continue
			}
			return registryError
		}

		service.renderer.RenderProjectHeader(root, len(projects))

		outcomes := service.runAction(executionContext, options.Action, projects)
		for _, row := range report.AssembleProjectRows(projects, outcomes) {
			service.renderer.RenderProjectRow(row)
		}
	}
	return nil
}

func (service *Service) runAction(executionContext context.Context, action Action, projects []registry.Project) []report.ActionOutcome {
	if action == ActionInfo || len(action) == 0 {
		return nil
	}

	outcomes := make([]report.ActionOutcome, len(projects))
	for projectIndex, project := range projects {
		_, actionError := service.executor.ExecuteCargo(executionContext, execshell.CommandDetails{
			Arguments:        []string{string(action)},
			WorkingDirectory: project.Root.AbsolutePath,
		})
		if actionError != nil {
			service.logger.Warn(
				actionFailedMessageConstant,
				zap.String(logFieldProjectConstant, project.Root.AbsolutePath),
				zap.String(logFieldActionConstant, string(action)),
				zap.Error(actionError),
			)
			outcomes[projectIndex] = report.ActionFailed
			continue
		}
		outcomes[projectIndex] = report.ActionSucceeded
	}
	return outcomes
}
