package gitstate_test

import (
	"bytes"
	"context"
	"errors"
	"os"
	"path/filepath"
	"strings"
	"sync"
	"testing"

	"github.com/stretchr/testify/require"
	"go.uber.org/zap"

	"github.com/temirov/projctl/internal/execshell"
	"github.com/temirov/projctl/internal/gitstate"
)

type recordingGitExecutor struct {
	mutex       sync.Mutex
	invocations []execshell.CommandDetails
	statusByDir map[string]string
}

func (executor *recordingGitExecutor) QueryGit(executionContext context.Context, details execshell.CommandDetails) (execshell.ExecutionResult, error) {
	executor.mutex.Lock()
	executor.invocations = append(executor.invocations, details)
	executor.mutex.Unlock()

	if details.Arguments[0] == "status" {
		return execshell.ExecutionResult{StandardOutput: executor.statusByDir[details.WorkingDirectory]}, nil
	}
	return execshell.ExecutionResult{}, nil
}

func createRepositoryFixture(testInstance *testing.T, root string, relativePaths ...string) {
	testInstance.Helper()
	for _, relativePath := range relativePaths {
		require.NoError(testInstance, os.MkdirAll(filepath.Join(root, relativePath, ".git"), 0o755))
	}
}

func TestCommandBuilderRunsStateAcrossRoots(testInstance *testing.T) {
	root := testInstance.TempDir()
	resolvedRoot, resolveError := filepath.EvalSymlinks(root)
	require.NoError(testInstance, resolveError)
	createRepositoryFixture(testInstance, resolvedRoot, "tools/dirty", "tools/tidy")

	gitExecutor := &recordingGitExecutor{statusByDir: map[string]string{
		filepath.Join(resolvedRoot, "tools", "dirty"): " M src/main.rs\n?? notes.txt\n",
	}}

	builder := gitstate.CommandBuilder{
		LoggerProvider: func() *zap.Logger { return zap.NewNop() },
		ConfigurationProvider: func() gitstate.CommandConfiguration {
			return gitstate.CommandConfiguration{PrimaryUpstream: "upstream/trunk", Workers: 2}
		},
		RootsProvider: func() ([]string, error) { return []string{resolvedRoot}, nil },
		GitExecutor:   gitExecutor,
	}

	command, buildError := builder.Build()
	require.NoError(testInstance, buildError)

	outputBuffer := &bytes.Buffer{}
	command.SetOut(outputBuffer)
	command.SetErr(outputBuffer)
	command.SetContext(context.Background())
	command.SetArgs([]string{"--all"})

	require.NoError(testInstance, command.Execute())

	expectedOutput := strings.Join([]string{
		"===[ " + resolvedRoot + " ]=",
		"0002 " + filepath.Join("tools", "dirty"),
		"     " + filepath.Join("tools", "tidy"),
		"",
	}, "\n")
	require.Equal(testInstance, expectedOutput, outputBuffer.String())

	for _, invocation := range gitExecutor.invocations {
		if invocation.Arguments[0] == "diff" {
			require.Equal(testInstance, []string{"diff", "--numstat", "--cached", "upstream/trunk"}, invocation.Arguments)
		}
	}
	require.Len(testInstance, gitExecutor.invocations, 4)
}

func TestCommandBuilderSurfacesRootsFault(testInstance *testing.T) {
	rootsFault := errors.New("no root directories configured")
	builder := gitstate.CommandBuilder{
		RootsProvider: func() ([]string, error) { return nil, rootsFault },
		GitExecutor:   &recordingGitExecutor{},
	}

	command, buildError := builder.Build()
	require.NoError(testInstance, buildError)
	command.SetOut(&bytes.Buffer{})
	command.SetErr(&bytes.Buffer{})
	command.SetContext(context.Background())
	command.SetArgs([]string{})

	require.ErrorIs(testInstance, command.Execute(), rootsFault)
}

func TestDefaultConfigurationValuesUseDivergenceDefaults(testInstance *testing.T) {
	require.Equal(testInstance, map[string]any{
		"tools.git.primary_upstream":   "origin/main",
		"tools.git.secondary_upstream": "origin/master",
		"tools.git.workers":            4,
	}, gitstate.DefaultConfigurationValues("tools.git"))
}
