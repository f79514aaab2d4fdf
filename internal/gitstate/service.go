package gitstate

import (
	"context"
	"errors"
	"io"

	"go.uber.org/zap"

	"github.com/temirov/projctl/internal/console"
	"github.com/temirov/projctl/internal/discovery"
	"github.com/temirov/projctl/internal/divergence"
	"github.com/temirov/projctl/internal/registry"
	"github.com/temirov/projctl/internal/report"
)

const (
	rootUnavailableMessageConstant = "root directory unavailable"
	queryFailedMessageConstant     = "upstream query failed"
	logFieldRootConstant           = "root"
	logFieldRepositoryConstant     = "repository"
	logFieldDiagnosticConstant     = "diagnostic"
)

// RepositoryDiscoverer lists git repositories beneath a root.
type RepositoryDiscoverer interface {
	DiscoverRepositories(root string) ([]registry.ProjectRoot, error)
}

// DivergenceInspector classifies repositories, returning reports in input order.
type DivergenceInspector interface {
	InspectAll(executionContext context.Context, repositoryPaths []string) []divergence.Report
}

// BranchReader resolves the current branch of each repository; unreadable entries are blank.
type BranchReader interface {
	CurrentBranches(repositoryPaths []string) []string
}

// Options controls a single report run.
type Options struct {
	Roots        []string
	IncludeClean bool
	ShowBranch   bool
}

// Service renders the divergence listing for every root.
type Service struct {
	logger       *zap.Logger
	discoverer   RepositoryDiscoverer
	inspector    DivergenceInspector
	branchReader BranchReader
	renderer     *console.Renderer
}

// NewService constructs a Service writing its listing to outputWriter.
func NewService(logger *zap.Logger, discoverer RepositoryDiscoverer, inspector DivergenceInspector, branchReader BranchReader, outputWriter io.Writer) *Service {
	if logger == nil {
		logger = zap.NewNop()
	}
	return &Service{
		logger:       logger,
		discoverer:   discoverer,
		inspector:    inspector,
		branchReader: branchReader,
		renderer:     console.NewRenderer(outputWriter),
	}
}

// Run reports each root in order. A root that cannot be walked is logged and skipped;
// any other discovery error stops the run.
func (service *Service) Run(executionContext context.Context, options Options) error {
	for _, root := range options.Roots {
		service.renderer.RenderRootBanner(root)

		repositories, discoveryError := service.discoverer.DiscoverRepositories(root)
		if discoveryError != nil {
			var accessFault discovery.AccessFaultError
			if errors.As(discoveryError, &accessFault) {
				service.logger.Warn(rootUnavailableMessageConstant, zap.String(logFieldRootConstant, root), zap.Error(discoveryError))
				continue
			}
			return discoveryError
		}

		repositoryPaths := make([]string, 0, len(repositories))
		for _, repository := range repositories {
			repositoryPaths = append(repositoryPaths, repository.AbsolutePath)
		}

		reports := service.inspector.InspectAll(executionContext, repositoryPaths)
		for _, divergenceReport := range reports {
			if divergenceReport.Tier == divergence.TierQueryFailed {
				service.logger.Warn(
					queryFailedMessageConstant,
					zap.String(logFieldRepositoryConstant, divergenceReport.RepositoryPath),
					zap.String(logFieldDiagnosticConstant, divergenceReport.Diagnostic),
				)
			}
		}

		var branches []string
		if options.ShowBranch && service.branchReader != nil {
			branches = service.branchReader.CurrentBranches(repositoryPaths)
		}

		for _, row := range report.AssembleDivergenceRows(repositories, reports, branches, options.IncludeClean) {
			service.renderer.RenderDivergenceRow(row)
		}
	}
	return nil
}
