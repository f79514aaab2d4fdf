package execshell

import (
	"errors"
	"testing"

	"github.com/stretchr/testify/require"
)

func TestBuildStartedMessageForUpstreamDiffIncludesReference(t *testing.T) {
	formatter := CommandMessageFormatter{}
	command := ShellCommand{
		Name: CommandGit,
		Details: CommandDetails{
			Arguments:        []string{"diff", "--numstat", "--cached", "origin/main"},
			WorkingDirectory: "/workspace/repo",
		},
	}

	require.Equal(t, "Comparing staged changes in /workspace/repo against origin/main", formatter.BuildStartedMessage(command))
}

func TestBuildFailureMessageForStatusIncludesStandardError(t *testing.T) {
	formatter := CommandMessageFormatter{}
	command := ShellCommand{Name: CommandGit, Details: CommandDetails{Arguments: []string{"status", "-s"}, WorkingDirectory: "/workspace/repo"}}

	message := formatter.BuildFailureMessage(command, ExecutionResult{ExitCode: 128, StandardError: "fatal: not a git repository\n"})

	require.Equal(t, "Failed to review working tree status in /workspace/repo (exit code 128: fatal: not a git repository)", message)
}

func TestBuildMessagesForCargoAndGenericCommands(t *testing.T) {
	formatter := CommandMessageFormatter{}
	cargoCommand := ShellCommand{Name: CommandCargo, Details: CommandDetails{Arguments: []string{"clean"}}}
	upxCommand := ShellCommand{Name: CommandUPX, Details: CommandDetails{Arguments: []string{"/tmp/app.exe"}, WorkingDirectory: "/tmp"}}

	require.Equal(t, "Running cargo clean in current directory", formatter.BuildStartedMessage(cargoCommand))
	require.Equal(t, "Completed upx /tmp/app.exe (in /tmp)", formatter.BuildSuccessMessage(upxCommand))
	require.Equal(t, "upx /tmp/app.exe (in /tmp) failed: boom", formatter.BuildExecutionFailureMessage(upxCommand, errors.New("boom")))
}
