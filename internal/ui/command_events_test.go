package ui_test

import (
	"errors"
	"testing"

	"github.com/stretchr/testify/require"
	"go.uber.org/zap"
	"go.uber.org/zap/zapcore"
	"go.uber.org/zap/zaptest/observer"

	"github.com/temirov/projctl/internal/execshell"
	"github.com/temirov/projctl/internal/ui"
)

const (
	testProjectDirectoryConstant       = "/tmp/project"
	testRepositoryDirectoryConstant    = "/tmp/repository"
	testExecutionFailureReasonConstant = "executable file not found"
)

func TestConsoleCommandEventLoggerEmitsMessages(testInstance *testing.T) {
	cargoCommand := execshell.ShellCommand{
		Name:    execshell.CommandCargo,
		Details: execshell.CommandDetails{Arguments: []string{"update"}, WorkingDirectory: testProjectDirectoryConstant},
	}
	statusCommand := execshell.ShellCommand{
		Name:    execshell.CommandGit,
		Details: execshell.CommandDetails{Arguments: []string{"status", "-s"}, WorkingDirectory: testRepositoryDirectoryConstant},
	}

	testCases := []struct {
		name            string
		invoke          func(logger *ui.ConsoleCommandEventLogger)
		expectedLevel   zapcore.Level
		expectedMessage string
	}{
		{
			name: "cargo_started",
			invoke: func(logger *ui.ConsoleCommandEventLogger) {
				logger.CommandStarted(cargoCommand)
			},
			expectedLevel:   zapcore.InfoLevel,
			expectedMessage: "Running cargo update in /tmp/project",
		},
		{
			name: "cargo_completed",
			invoke: func(logger *ui.ConsoleCommandEventLogger) {
				logger.CommandCompleted(cargoCommand, execshell.ExecutionResult{})
			},
			expectedLevel:   zapcore.InfoLevel,
			expectedMessage: "cargo update finished in /tmp/project",
		},
		{
			name: "cargo_failed",
			invoke: func(logger *ui.ConsoleCommandEventLogger) {
				logger.CommandCompleted(cargoCommand, execshell.ExecutionResult{ExitCode: 101, StandardError: "error: no matching package\n"})
			},
			expectedLevel:   zapcore.WarnLevel,
			expectedMessage: "cargo update failed in /tmp/project (exit code 101: error: no matching package)",
		},
		{
			name: "git_status_started",
			invoke: func(logger *ui.ConsoleCommandEventLogger) {
				logger.CommandStarted(statusCommand)
			},
			expectedLevel:   zapcore.DebugLevel,
			expectedMessage: "Reviewing working tree status in /tmp/repository",
		},
		{
			name: "git_status_failed",
			invoke: func(logger *ui.ConsoleCommandEventLogger) {
				logger.CommandCompleted(statusCommand, execshell.ExecutionResult{ExitCode: 128, StandardError: "fatal: not a git repository"})
			},
			expectedLevel:   zapcore.DebugLevel,
			expectedMessage: "Failed to review working tree status in /tmp/repository (exit code 128: fatal: not a git repository)",
		},
		{
			name: "execution_failure",
			invoke: func(logger *ui.ConsoleCommandEventLogger) {
				logger.CommandExecutionFailed(cargoCommand, errors.New(testExecutionFailureReasonConstant))
			},
			expectedLevel:   zapcore.ErrorLevel,
			expectedMessage: "Unable to run cargo update in /tmp/project: " + testExecutionFailureReasonConstant,
		},
	}

	for _, testCase := range testCases {
		testInstance.Run(testCase.name, func(testInstance *testing.T) {
			observerCore, observedLogs := observer.New(zapcore.DebugLevel)
			testCase.invoke(ui.NewConsoleCommandEventLogger(zap.New(observerCore)))

			entries := observedLogs.All()
			require.Len(testInstance, entries, 1)
			require.Equal(testInstance, testCase.expectedLevel, entries[0].Level)
			require.Equal(testInstance, testCase.expectedMessage, entries[0].Message)
		})
	}
}

func TestNewConsoleCommandEventLoggerAcceptsNilLogger(testInstance *testing.T) {
	eventLogger := ui.NewConsoleCommandEventLogger(nil)
	require.NotPanics(testInstance, func() {
		eventLogger.CommandStarted(execshell.ShellCommand{Name: execshell.CommandUPX})
	})
}
