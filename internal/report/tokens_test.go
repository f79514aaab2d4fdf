package report_test

import (
	"testing"

	"github.com/stretchr/testify/require"

	"github.com/temirov/projctl/internal/divergence"
	"github.com/temirov/projctl/internal/manifest"
	"github.com/temirov/projctl/internal/registry"
	"github.com/temirov/projctl/internal/report"
)

func TestComplianceToken(testInstance *testing.T) {
	testCases := []struct {
		tier     manifest.ComplianceTier
		expected report.Token
	}{
		{tier: manifest.ComplianceNotApplicable, expected: report.Token{Symbol: "", Color: report.ColorNeutral}},
		{tier: manifest.ComplianceCompliant, expected: report.Token{Symbol: "R", Color: report.ColorPositive}},
		{tier: manifest.ComplianceProfileMismatched, expected: report.Token{Symbol: "R-", Color: report.ColorNegative}},
		{tier: manifest.ComplianceProfileMissing, expected: report.Token{Symbol: "R!", Color: report.ColorWarning}},
	}

	for _, testCase := range testCases {
		testInstance.Run(testCase.tier.String(), func(testInstance *testing.T) {
			require.Equal(testInstance, testCase.expected, report.ComplianceToken(testCase.tier))
		})
	}
}

func TestEditionToken(testInstance *testing.T) {
	current := "2024"
	outdated := "2018"

	require.Equal(testInstance, report.Token{Symbol: "2024", Color: report.ColorNeutral}, report.EditionToken(manifest.EditionCurrent, &current))
	require.Equal(testInstance, report.Token{Symbol: "2018", Color: report.ColorWarning}, report.EditionToken(manifest.EditionOutdated, &outdated))
	require.Equal(testInstance, report.Token{Symbol: "----", Color: report.ColorWarning}, report.EditionToken(manifest.EditionUnspecified, nil))
}

func TestDivergenceToken(testInstance *testing.T) {
	testCases := []struct {
		name             string
		divergenceReport divergence.Report
		expected         report.Token
	}{
		{name: "clean", divergenceReport: divergence.Report{Tier: divergence.TierClean}, expected: report.Token{Symbol: "    ", Color: report.ColorPositive}},
		{name: "diverged", divergenceReport: divergence.Report{Tier: divergence.TierDiverged, ChangeCount: 5}, expected: report.Token{Symbol: "0005", Color: report.ColorWarning}},
		{name: "diverged_wide", divergenceReport: divergence.Report{Tier: divergence.TierDiverged, ChangeCount: 12345}, expected: report.Token{Symbol: "12345", Color: report.ColorWarning}},
		{name: "query_failed", divergenceReport: divergence.Report{Tier: divergence.TierQueryFailed, Diagnostic: "fatal"}, expected: report.Token{Symbol: "FAIL", Color: report.ColorNegative}},
	}

	for _, testCase := range testCases {
		testInstance.Run(testCase.name, func(testInstance *testing.T) {
			require.Equal(testInstance, testCase.expected, report.DivergenceToken(testCase.divergenceReport))
		})
	}
}

func TestActionToken(testInstance *testing.T) {
	require.Equal(testInstance, report.Token{Symbol: "0001", Color: report.ColorNeutral}, report.ActionToken(1, report.ActionNotRun))
	require.Equal(testInstance, report.Token{Symbol: "0042", Color: report.ColorNeutral}, report.ActionToken(42, report.ActionSucceeded))
	require.Equal(testInstance, report.Token{Symbol: "0007", Color: report.ColorNegative}, report.ActionToken(7, report.ActionFailed))
}

func TestAssembleProjectRows(testInstance *testing.T) {
	edition := "2021"
	projects := []registry.Project{
		{
			Root:       registry.ProjectRoot{AbsolutePath: "/src", DisplayName: ""},
			Metadata:   manifest.Metadata{Name: "workspace-root"},
			Compliance: manifest.ComplianceNotApplicable,
			Edition:    manifest.EditionUnspecified,
		},
		{
			Root:       registry.ProjectRoot{AbsolutePath: "/src/cli", DisplayName: "cli"},
			Metadata:   manifest.Metadata{Name: "cli", Edition: &edition, HasBinaryTarget: true},
			Compliance: manifest.ComplianceProfileMissing,
			Edition:    manifest.EditionOutdated,
		},
	}

	rows := report.AssembleProjectRows(projects, []report.ActionOutcome{report.ActionSucceeded})

	require.Equal(testInstance, []report.ProjectRow{
		{
			Index:       report.Token{Symbol: "0001", Color: report.ColorNeutral},
			Edition:     report.Token{Symbol: "----", Color: report.ColorWarning},
			Release:     report.Token{Color: report.ColorNeutral},
			Name:        "workspace-root",
			DisplayName: "",
		},
		{
			Index:       report.Token{Symbol: "0002", Color: report.ColorNeutral},
			Edition:     report.Token{Symbol: "2021", Color: report.ColorWarning},
			Release:     report.Token{Symbol: "R!", Color: report.ColorWarning},
			Name:        "cli",
			DisplayName: "cli",
		},
	}, rows)
}

func TestAssembleDivergenceRowsHidesCleanRepositoriesByDefault(testInstance *testing.T) {
	repositories := []registry.ProjectRoot{
		{AbsolutePath: "/src/a", DisplayName: "a"},
		{AbsolutePath: "/src/b", DisplayName: "b"},
		{AbsolutePath: "/src/c", DisplayName: "c"},
	}
	reports := []divergence.Report{
		{RepositoryPath: "/src/a", Tier: divergence.TierClean},
		{RepositoryPath: "/src/b", Tier: divergence.TierDiverged, ChangeCount: 2},
		{RepositoryPath: "/src/c", Tier: divergence.TierQueryFailed},
	}
	branches := []string{"main", "feature", "DETACHED"}

	require.Equal(testInstance, []report.DivergenceRow{
		{Status: report.Token{Symbol: "0002", Color: report.ColorWarning}, DisplayName: "b", Branch: "feature"},
		{Status: report.Token{Symbol: "FAIL", Color: report.ColorNegative}, DisplayName: "c", Branch: "DETACHED"},
	}, report.AssembleDivergenceRows(repositories, reports, branches, false))

	allRows := report.AssembleDivergenceRows(repositories, reports, nil, true)
	require.Len(testInstance, allRows, 3)
	require.Equal(testInstance, report.DivergenceRow{Status: report.Token{Symbol: "    ", Color: report.ColorPositive}, DisplayName: "a"}, allRows[0])
}
