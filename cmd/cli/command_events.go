package cli

import (
	"go.uber.org/zap"

	"github.com/temirov/projctl/internal/execshell"
	"github.com/temirov/projctl/internal/ui"
)

// commandEventsDispatcher forwards subprocess events to the console event logger when
// human-readable logging is active. The logger is resolved per event because it is only
// created once configuration has been loaded.
type commandEventsDispatcher struct {
	loggerProvider               func() *zap.Logger
	humanReadableLoggingProvider func() bool
}

func newCommandEventsDispatcher(loggerProvider func() *zap.Logger, humanReadableLoggingProvider func() bool) *commandEventsDispatcher {
	return &commandEventsDispatcher{
		loggerProvider:               loggerProvider,
		humanReadableLoggingProvider: humanReadableLoggingProvider,
	}
}

func (dispatcher *commandEventsDispatcher) CommandStarted(command execshell.ShellCommand) {
	if observer := dispatcher.activeObserver(); observer != nil {
		observer.CommandStarted(command)
	}
}

func (dispatcher *commandEventsDispatcher) CommandCompleted(command execshell.ShellCommand, result execshell.ExecutionResult) {
	if observer := dispatcher.activeObserver(); observer != nil {
		observer.CommandCompleted(command, result)
	}
}

func (dispatcher *commandEventsDispatcher) CommandExecutionFailed(command execshell.ShellCommand, failure error) {
	if observer := dispatcher.activeObserver(); observer != nil {
		observer.CommandExecutionFailed(command, failure)
	}
}

func (dispatcher *commandEventsDispatcher) activeObserver() execshell.CommandEventObserver {
	if dispatcher.humanReadableLoggingProvider == nil || !dispatcher.humanReadableLoggingProvider() {
		return nil
	}
	return ui.NewConsoleCommandEventLogger(dispatcher.loggerProvider())
}
