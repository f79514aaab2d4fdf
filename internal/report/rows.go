package report

import (
	"github.com/temirov/projctl/internal/divergence"
	"github.com/temirov/projctl/internal/registry"
)

// ProjectRow is one rendered line of the project table.
type ProjectRow struct {
	Index       Token
	Edition     Token
	Release     Token
	Name        string
	DisplayName string
}

// DivergenceRow is one rendered line of the repository status listing.
type DivergenceRow struct {
	Status      Token
	DisplayName string
	Branch      string
}

// AssembleProjectRows builds table rows in project order. outcomes is indexed like projects;
// missing entries count as ActionNotRun.
func AssembleProjectRows(projects []registry.Project, outcomes []ActionOutcome) []ProjectRow {
	rows := make([]ProjectRow, 0, len(projects))
	for projectIndex, project := range projects {
		outcome := ActionNotRun
		if projectIndex < len(outcomes) {
			outcome = outcomes[projectIndex]
		}
		rows = append(rows, ProjectRow{
			Index:       ActionToken(projectIndex+1, outcome),
			Edition:     EditionToken(project.Edition, project.Metadata.Edition),
			Release:     ComplianceToken(project.Compliance),
			Name:        project.Metadata.Name,
			DisplayName: project.Root.DisplayName,
		})
	}
	return rows
}

// AssembleDivergenceRows builds status rows in repository order. Clean repositories are
// omitted unless includeClean is set. branches is indexed like repositories and may be nil.
func AssembleDivergenceRows(repositories []registry.ProjectRoot, reports []divergence.Report, branches []string, includeClean bool) []DivergenceRow {
	rows := make([]DivergenceRow, 0, len(reports))
	for repositoryIndex, divergenceReport := range reports {
		if divergenceReport.Tier == divergence.TierClean && !includeClean {
			continue
		}
		row := DivergenceRow{Status: DivergenceToken(divergenceReport)}
		if repositoryIndex < len(repositories) {
			row.DisplayName = repositories[repositoryIndex].DisplayName
		}
		if repositoryIndex < len(branches) {
			row.Branch = branches[repositoryIndex]
		}
		rows = append(rows, row)
	}
	return rows
}
