package cli

import (
	"context"
	"errors"
	"fmt"
	"os"
	"path/filepath"
	"strings"
	"syscall"

	"github.com/spf13/cobra"
	"github.com/spf13/pflag"
	"go.uber.org/zap"

	"github.com/temirov/projctl/internal/cargo"
	"github.com/temirov/projctl/internal/crossbuild"
	"github.com/temirov/projctl/internal/gitstate"
	"github.com/temirov/projctl/internal/roots"
	"github.com/temirov/projctl/internal/utils"
	"github.com/temirov/projctl/internal/utils/flags"
)

const (
	applicationNameConstant                 = "projctl"
	applicationShortDescriptionConstant     = "Project control helper for trees of git repositories and Rust projects"
	applicationLongDescriptionConstant      = "projctl scans the configured root directories, reports how far each git repository has drifted from its upstream and lists or maintains the Cargo projects it finds."
	gitGroupUseConstant                     = "git"
	gitGroupShortDescriptionConstant        = "Inspect the git repositories beneath the configured roots"
	configFileFlagNameConstant              = "config"
	configFileFlagUsageConstant             = "Optional path to a configuration file (YAML or JSON)."
	logLevelFlagNameConstant                = "log-level"
	logLevelFlagDescriptionConstant         = "Override the configured log level."
	logFormatFlagNameConstant               = "log-format"
	logFormatFlagDescriptionConstant        = "Override the configured log format."
	commonConfigurationKeyConstant          = "common"
	commonLogLevelConfigKeyConstant         = commonConfigurationKeyConstant + ".log_level"
	commonLogFormatConfigKeyConstant        = commonConfigurationKeyConstant + ".log_format"
	rootsConfigKeyConstant                  = "roots"
	toolsConfigurationKeyConstant           = "tools"
	gitConfigurationKeyConstant             = toolsConfigurationKeyConstant + ".git"
	cargoBuildConfigurationKeyConstant      = toolsConfigurationKeyConstant + ".cargo.build"
	environmentPrefixConstant               = "PROJCTL"
	configurationNameConstant               = "config"
	configurationTypeConstant               = "yaml"
	configurationDirectoryNameConstant      = "projctl"
	defaultConfigurationSearchPathConstant  = "."
	configurationInitializedMessageConstant = "configuration initialized"
	configurationLogLevelFieldConstant      = "log_level"
	configurationLogFormatFieldConstant     = "log_format"
	configurationFileFieldConstant          = "config_file"
	rootsResolvedMessageConstant            = "roots resolved"
	rootsFieldConstant                      = "roots"
	configurationLoadErrorTemplateConstant  = "unable to load configuration: %w"
	loggerCreationErrorTemplateConstant     = "unable to create logger: %w"
	loggerSyncErrorTemplateConstant         = "unable to flush logger: %w"
	rootsResolutionErrorTemplateConstant    = "%w: pass --root or set roots in the configuration"
)

// ApplicationConfiguration describes the persisted configuration for the CLI entrypoint.
type ApplicationConfiguration struct {
	Common ApplicationCommonConfiguration `mapstructure:"common"`
	Roots  []string                       `mapstructure:"roots"`
	Tools  ApplicationToolsConfiguration  `mapstructure:"tools"`
}

// ApplicationCommonConfiguration stores logging configuration shared across commands.
type ApplicationCommonConfiguration struct {
	LogLevel  string `mapstructure:"log_level"`
	LogFormat string `mapstructure:"log_format"`
}

// ApplicationToolsConfiguration holds configuration for CLI subcommands grouped by tool family.
type ApplicationToolsConfiguration struct {
	Git   gitstate.CommandConfiguration `mapstructure:"git"`
	Cargo ApplicationCargoConfiguration `mapstructure:"cargo"`
}

// ApplicationCargoConfiguration holds configuration for the cargo command family.
type ApplicationCargoConfiguration struct {
	Build crossbuild.CommandConfiguration `mapstructure:"build"`
}

// Application wires the Cobra root command, configuration loader, and structured logger.
type Application struct {
	rootCommand           *cobra.Command
	configurationLoader   *utils.ConfigurationLoader
	loggerFactory         *utils.LoggerFactory
	logger                *zap.Logger
	configuration         ApplicationConfiguration
	configurationMetadata utils.LoadedConfiguration
	configurationFilePath string
	logLevelFlagValue     string
	logFormatFlagValue    string
	rootFlagValues        *flags.RootFlagValues
	rootsResolver         *roots.Resolver
}

// NewApplication assembles a fully wired CLI application instance.
func NewApplication() *Application {
	configurationLoader := utils.NewConfigurationLoader(
		configurationNameConstant,
		configurationTypeConstant,
		environmentPrefixConstant,
		configurationSearchPaths(),
	)
	configurationLoader.SetEmbeddedConfiguration(EmbeddedDefaultConfiguration())

	application := &Application{
		configurationLoader: configurationLoader,
		loggerFactory:       utils.NewLoggerFactory(),
		logger:              zap.NewNop(),
		rootsResolver:       roots.NewResolver(nil, nil, nil),
	}

	cobraCommand := &cobra.Command{
		Use:           applicationNameConstant,
		Short:         applicationShortDescriptionConstant,
		Long:          applicationLongDescriptionConstant,
		SilenceUsage:  true,
		SilenceErrors: true,
		PersistentPreRunE: func(command *cobra.Command, arguments []string) error {
			return application.initializeConfiguration(command)
		},
		RunE: func(command *cobra.Command, arguments []string) error {
			return command.Help()
		},
	}

	cobraCommand.SetContext(context.Background())
	persistentFlagSet := cobraCommand.PersistentFlags()
	persistentFlagSet.StringVar(&application.configurationFilePath, configFileFlagNameConstant, "", configFileFlagUsageConstant)
	persistentFlagSet.StringVar(
		&application.logLevelFlagValue,
		logLevelFlagNameConstant,
		"",
		flags.FormatChoiceUsage(string(utils.LogLevelWarn), supportedLogLevels(), logLevelFlagDescriptionConstant),
	)
	persistentFlagSet.StringVar(
		&application.logFormatFlagValue,
		logFormatFlagNameConstant,
		"",
		flags.FormatChoiceUsage(string(utils.LogFormatConsole), supportedLogFormats(), logFormatFlagDescriptionConstant),
	)
	application.rootFlagValues = flags.BindRootFlags(cobraCommand, flags.RootFlagDefinition{Persistent: true})

	commandEventsObserver := newCommandEventsDispatcher(application.loggerProvider, application.humanReadableLoggingEnabled)

	gitCommand := &cobra.Command{
		Use:   gitGroupUseConstant,
		Short: gitGroupShortDescriptionConstant,
		Args:  cobra.NoArgs,
		RunE: func(command *cobra.Command, arguments []string) error {
			return command.Help()
		},
	}
	gitStateBuilder := gitstate.CommandBuilder{
		LoggerProvider: application.loggerProvider,
		ConfigurationProvider: func() gitstate.CommandConfiguration {
			return application.configuration.Tools.Git
		},
		RootsProvider:         application.resolveRoots,
		CommandEventsObserver: commandEventsObserver,
	}
	gitStateCommand, gitStateBuildError := gitStateBuilder.Build()
	if gitStateBuildError == nil {
		gitCommand.AddCommand(gitStateCommand)
	}
	cobraCommand.AddCommand(gitCommand)

	cargoBuilder := cargo.CommandBuilder{
		LoggerProvider:        application.loggerProvider,
		RootsProvider:         application.resolveRoots,
		CommandEventsObserver: commandEventsObserver,
	}
	cargoCommand, cargoBuildError := cargoBuilder.Build()
	if cargoBuildError == nil {
		crossBuildBuilder := crossbuild.CommandBuilder{
			LoggerProvider: application.loggerProvider,
			ConfigurationProvider: func() crossbuild.CommandConfiguration {
				return application.configuration.Tools.Cargo.Build
			},
			CommandEventsObserver: commandEventsObserver,
		}
		crossBuildCommand, crossBuildError := crossBuildBuilder.Build()
		if crossBuildError == nil {
			cargoCommand.AddCommand(crossBuildCommand)
		}
		cobraCommand.AddCommand(cargoCommand)
	}

	application.rootCommand = cobraCommand

	return application
}

// Execute runs the configured Cobra command hierarchy and ensures logger flushing.
func (application *Application) Execute() error {
	executionError := application.rootCommand.Execute()
	if syncError := application.syncLoggerInstance(application.logger); syncError != nil {
		return fmt.Errorf(loggerSyncErrorTemplateConstant, syncError)
	}
	return executionError
}

// Execute builds a fresh application instance and executes the root command hierarchy.
func Execute() error {
	return NewApplication().Execute()
}

func (application *Application) initializeConfiguration(command *cobra.Command) error {
	defaultValues := map[string]any{
		commonLogLevelConfigKeyConstant:  string(utils.LogLevelWarn),
		commonLogFormatConfigKeyConstant: string(utils.LogFormatConsole),
		rootsConfigKeyConstant:           []string{},
	}
	for configurationKey, configurationValue := range gitstate.DefaultConfigurationValues(gitConfigurationKeyConstant) {
		defaultValues[configurationKey] = configurationValue
	}
	for configurationKey, configurationValue := range crossbuild.DefaultConfigurationValues(cargoBuildConfigurationKeyConstant) {
		defaultValues[configurationKey] = configurationValue
	}

	loadedConfiguration, loadError := application.configurationLoader.LoadConfiguration(application.configurationFilePath, defaultValues, &application.configuration)
	if loadError != nil {
		return fmt.Errorf(configurationLoadErrorTemplateConstant, loadError)
	}
	application.configurationMetadata = loadedConfiguration

	if application.persistentFlagChanged(command, logLevelFlagNameConstant) {
		application.configuration.Common.LogLevel = application.logLevelFlagValue
	}
	if application.persistentFlagChanged(command, logFormatFlagNameConstant) {
		application.configuration.Common.LogFormat = application.logFormatFlagValue
	}

	logger, loggerCreationError := application.loggerFactory.CreateLogger(
		utils.LogLevel(application.configuration.Common.LogLevel),
		utils.LogFormat(application.configuration.Common.LogFormat),
	)
	if loggerCreationError != nil {
		return fmt.Errorf(loggerCreationErrorTemplateConstant, loggerCreationError)
	}
	application.logger = logger

	application.logger.Info(
		configurationInitializedMessageConstant,
		zap.String(configurationLogLevelFieldConstant, application.configuration.Common.LogLevel),
		zap.String(configurationLogFormatFieldConstant, application.configuration.Common.LogFormat),
		zap.String(configurationFileFieldConstant, application.configurationMetadata.ConfigFileUsed),
	)

	return nil
}

func (application *Application) loggerProvider() *zap.Logger {
	return application.logger
}

func (application *Application) humanReadableLoggingEnabled() bool {
	logFormatValue := strings.TrimSpace(application.configuration.Common.LogFormat)
	return strings.EqualFold(logFormatValue, string(utils.LogFormatConsole))
}

// resolveRoots merges --root overrides, configured roots and the legacy roots file.
func (application *Application) resolveRoots() ([]string, error) {
	var overrideRoots []string
	if application.rootFlagValues != nil {
		overrideRoots = application.rootFlagValues.Roots
	}

	resolvedRoots, resolveError := application.rootsResolver.Resolve(overrideRoots, application.configuration.Roots)
	if resolveError != nil {
		if errors.Is(resolveError, roots.ErrNoRootsConfigured) {
			return nil, fmt.Errorf(rootsResolutionErrorTemplateConstant, resolveError)
		}
		return nil, resolveError
	}

	application.logger.Debug(rootsResolvedMessageConstant, zap.Strings(rootsFieldConstant, resolvedRoots))
	return resolvedRoots, nil
}

func (application *Application) syncLoggerInstance(logger *zap.Logger) error {
	if logger == nil {
		return nil
	}

	syncError := logger.Sync()
	switch {
	case syncError == nil:
		return nil
	case errors.Is(syncError, syscall.ENOTSUP):
		return nil
	case errors.Is(syncError, syscall.EINVAL):
		return nil
	case errors.Is(syncError, syscall.ENOTTY):
		return nil
	default:
		return syncError
	}
}

func (application *Application) persistentFlagChanged(command *cobra.Command, flagName string) bool {
	if command == nil {
		return false
	}

	flagSetsToInspect := []*pflag.FlagSet{
		command.PersistentFlags(),
		command.InheritedFlags(),
	}
	if rootCommand := command.Root(); rootCommand != nil {
		flagSetsToInspect = append(flagSetsToInspect, rootCommand.PersistentFlags())
	}

	for _, flagSet := range flagSetsToInspect {
		if flagSet != nil && flagSet.Changed(flagName) {
			return true
		}
	}
	return false
}

func configurationSearchPaths() []string {
	searchPaths := []string{defaultConfigurationSearchPathConstant}
	if userConfigurationDirectory, directoryError := os.UserConfigDir(); directoryError == nil {
		searchPaths = append(searchPaths, filepath.Join(userConfigurationDirectory, configurationDirectoryNameConstant))
	}
	return searchPaths
}

func supportedLogLevels() []string {
	return []string{string(utils.LogLevelDebug), string(utils.LogLevelInfo), string(utils.LogLevelWarn), string(utils.LogLevelError)}
}

func supportedLogFormats() []string {
	return []string{string(utils.LogFormatConsole), string(utils.LogFormatStructured)}
}
