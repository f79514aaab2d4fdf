package console_test

import (
	"bytes"
	"strings"
	"testing"

	"github.com/stretchr/testify/require"

	"github.com/temirov/projctl/internal/console"
	"github.com/temirov/projctl/internal/report"
)

func TestRenderProjectRowAlignsColumns(testInstance *testing.T) {
	testCases := []struct {
		name     string
		row      report.ProjectRow
		expected string
	}{
		{
			name: "compliant_binary",
			row: report.ProjectRow{
				Index:       report.Token{Symbol: "0001", Color: report.ColorNeutral},
				Edition:     report.Token{Symbol: "2024", Color: report.ColorNeutral},
				Release:     report.Token{Symbol: "R", Color: report.ColorPositive},
				Name:        "projctl",
				DisplayName: "tools/projctl",
			},
			expected: "0001 2024 R   projctl                 tools/projctl\n",
		},
		{
			name: "library_at_root_after_failed_action",
			row: report.ProjectRow{
				Index:       report.Token{Symbol: "0012", Color: report.ColorNegative},
				Edition:     report.Token{Symbol: "----", Color: report.ColorWarning},
				Release:     report.Token{Color: report.ColorNeutral},
				Name:        "core",
				DisplayName: "",
			},
			expected: "0012 ----     core                    \n",
		},
	}

	for _, testCase := range testCases {
		testInstance.Run(testCase.name, func(testInstance *testing.T) {
			outputBuffer := &bytes.Buffer{}
			console.NewRenderer(outputBuffer).RenderProjectRow(testCase.row)
			require.Equal(testInstance, testCase.expected, outputBuffer.String())
		})
	}
}

func TestRenderDivergenceOutput(testInstance *testing.T) {
	outputBuffer := &bytes.Buffer{}
	renderer := console.NewRenderer(outputBuffer)

	renderer.RenderRootBanner("/home/user/src")
	renderer.RenderDivergenceRow(report.DivergenceRow{Status: report.Token{Symbol: "0005", Color: report.ColorWarning}, DisplayName: "alpha"})
	renderer.RenderDivergenceRow(report.DivergenceRow{Status: report.Token{Symbol: "FAIL", Color: report.ColorNegative}, DisplayName: "beta", Branch: "DETACHED"})
	renderer.RenderDivergenceRow(report.DivergenceRow{Status: report.Token{Symbol: "    ", Color: report.ColorPositive}, DisplayName: "gamma"})

	require.Equal(testInstance, "===[ /home/user/src ]=\n0005 alpha\nFAIL beta  [DETACHED]\n     gamma\n", outputBuffer.String())
}

func TestRenderProjectHeaderIncludesRootAndTotal(testInstance *testing.T) {
	outputBuffer := &bytes.Buffer{}
	console.NewRenderer(outputBuffer).RenderProjectHeader("/home/user/src", 17)

	rendered := outputBuffer.String()
	require.Contains(testInstance, rendered, "Path")
	require.Contains(testInstance, rendered, "Projects")
	require.Contains(testInstance, rendered, "/home/user/src")
	require.Contains(testInstance, rendered, "17")
	require.True(testInstance, strings.HasSuffix(rendered, "\n"))
	require.NotContains(testInstance, rendered, "\x1b[")
}
