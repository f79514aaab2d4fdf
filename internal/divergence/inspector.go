// Package divergence classifies how far a git repository has drifted from its upstream branch.
package divergence

import (
	"context"
	"strings"

	"go.uber.org/zap"
	"golang.org/x/sync/errgroup"

	"github.com/temirov/projctl/internal/execshell"
)

// Upstream references tried in order, and the default bound on concurrent inspections.
const (
	DefaultPrimaryUpstreamConstant   = "origin/main"
	DefaultSecondaryUpstreamConstant = "origin/master"
	DefaultWorkerCountConstant       = 4
)

const (
	gitDiffSubcommandConstant   = "diff"
	gitNumstatFlagConstant      = "--numstat"
	gitCachedFlagConstant       = "--cached"
	gitStatusSubcommandConstant = "status"
	gitShortFlagConstant        = "-s"
	recordTerminatorConstant    = "\n"

	upstreamFallbackMessageConstant  = "upstream reference rejected, trying secondary"
	statusQueryFailedMessageConstant = "working tree status query could not run"
	logFieldRepositoryConstant       = "repository"
	logFieldUpstreamConstant         = "upstream"
	logFieldStandardErrorConstant    = "stderr"
)

// Tier is the divergence classification of a repository.
type Tier int

const (
	TierClean Tier = iota
	TierDiverged
	TierQueryFailed
)

func (tier Tier) String() string {
	switch tier {
	case TierDiverged:
		return "diverged"
	case TierQueryFailed:
		return "query_failed"
	default:
		return "clean"
	}
}

// Report is the result of inspecting one repository. ChangeCount is the number of output records
// across both queries and is positive only for TierDiverged. Diagnostic holds the query error output
// when Tier is TierQueryFailed.
type Report struct {
	RepositoryPath string
	Tier           Tier
	ChangeCount    int
	Diagnostic     string
}

// GitQueryExecutor runs git and returns its raw output without interpreting the exit status.
type GitQueryExecutor interface {
	QueryGit(executionContext context.Context, details execshell.CommandDetails) (execshell.ExecutionResult, error)
}

// Options configures an Inspector. Zero values fall back to the package defaults.
type Options struct {
	PrimaryUpstream   string
	SecondaryUpstream string
	Workers           int
}

// Inspector runs the upstream diff and working tree status queries for repositories.
// It holds no mutable state and is safe for concurrent use.
type Inspector struct {
	logger            *zap.Logger
	executor          GitQueryExecutor
	primaryUpstream   string
	secondaryUpstream string
	workers           int
}

// NewInspector constructs an Inspector. A nil logger disables logging.
func NewInspector(logger *zap.Logger, executor GitQueryExecutor, options Options) *Inspector {
	if logger == nil {
		logger = zap.NewNop()
	}

	inspector := &Inspector{
		logger:            logger,
		executor:          executor,
		primaryUpstream:   strings.TrimSpace(options.PrimaryUpstream),
		secondaryUpstream: strings.TrimSpace(options.SecondaryUpstream),
		workers:           options.Workers,
	}
	if len(inspector.primaryUpstream) == 0 {
		inspector.primaryUpstream = DefaultPrimaryUpstreamConstant
	}
	if len(inspector.secondaryUpstream) == 0 {
		inspector.secondaryUpstream = DefaultSecondaryUpstreamConstant
	}
	if inspector.workers < 1 {
		inspector.workers = DefaultWorkerCountConstant
	}
	return inspector
}

// Inspect classifies one repository. Queries run with repositoryPath as their working directory.
func (inspector *Inspector) Inspect(executionContext context.Context, repositoryPath string) Report {
	diffOutput, diffDiagnostic := inspector.queryUpstreamDiff(executionContext, repositoryPath, inspector.primaryUpstream)
	if len(diffDiagnostic) > 0 {
		inspector.logger.Debug(
			upstreamFallbackMessageConstant,
			zap.String(logFieldRepositoryConstant, repositoryPath),
			zap.String(logFieldUpstreamConstant, inspector.primaryUpstream),
			zap.String(logFieldStandardErrorConstant, diffDiagnostic),
		)
		diffOutput, diffDiagnostic = inspector.queryUpstreamDiff(executionContext, repositoryPath, inspector.secondaryUpstream)
	}

	statusResult, statusError := inspector.executor.QueryGit(executionContext, execshell.CommandDetails{
		Arguments:        []string{gitStatusSubcommandConstant, gitShortFlagConstant},
		WorkingDirectory: repositoryPath,
	})

	if len(diffDiagnostic) > 0 {
		return Report{RepositoryPath: repositoryPath, Tier: TierQueryFailed, Diagnostic: diffDiagnostic}
	}
	if statusError != nil {
		inspector.logger.Debug(statusQueryFailedMessageConstant, zap.String(logFieldRepositoryConstant, repositoryPath), zap.Error(statusError))
		return Report{RepositoryPath: repositoryPath, Tier: TierQueryFailed, Diagnostic: statusError.Error()}
	}

	changeCount := strings.Count(diffOutput, recordTerminatorConstant) + strings.Count(statusResult.StandardOutput, recordTerminatorConstant)
	if changeCount == 0 {
		return Report{RepositoryPath: repositoryPath, Tier: TierClean}
	}
	return Report{RepositoryPath: repositoryPath, Tier: TierDiverged, ChangeCount: changeCount}
}

// InspectAll inspects repositories on a bounded pool and returns reports in input order.
func (inspector *Inspector) InspectAll(executionContext context.Context, repositoryPaths []string) []Report {
	reports := make([]Report, len(repositoryPaths))

	group, groupContext := errgroup.WithContext(executionContext)
	group.SetLimit(inspector.workers)
	for repositoryIndex, repositoryPath := range repositoryPaths {
		group.Go(func() error {
			reports[repositoryIndex] = inspector.Inspect(groupContext, repositoryPath)
			return nil
		})
	}
	_ = group.Wait()

	return reports
}

// queryUpstreamDiff returns the numstat output and a non-empty diagnostic when the query reported errors.
func (inspector *Inspector) queryUpstreamDiff(executionContext context.Context, repositoryPath string, upstream string) (string, string) {
	result, queryError := inspector.executor.QueryGit(executionContext, execshell.CommandDetails{
		Arguments:        []string{gitDiffSubcommandConstant, gitNumstatFlagConstant, gitCachedFlagConstant, upstream},
		WorkingDirectory: repositoryPath,
	})
	if queryError != nil {
		return "", queryError.Error()
	}
	return result.StandardOutput, result.StandardError
}
