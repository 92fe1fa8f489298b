package cli

import (
	"context"
	"errors"
	"fmt"
	"io"
	"maps"
	"os"
	"strings"
	"syscall"

	"github.com/spf13/cobra"
	"github.com/spf13/pflag"
	"go.uber.org/zap"

	"github.com/temirov/gitutils/cmd/cli/configcmd"
	"github.com/temirov/gitutils/internal/branches"
	"github.com/temirov/gitutils/internal/profiles"
	"github.com/temirov/gitutils/internal/proxy"
	"github.com/temirov/gitutils/internal/syncplan"
	"github.com/temirov/gitutils/internal/utils"
	flagutils "github.com/temirov/gitutils/internal/utils/flags"
)

const (
	applicationNameConstant                 = "gitutils"
	applicationShortDescriptionConstant     = "Everyday git workflows: multi-remote sync, branch switching, user profiles"
	applicationLongDescriptionConstant      = "gitutils reads the enclosing repository's .git/config and HEAD directly and drives git for multi-remote synchronization, branch management, identity switching and plain command proxies."
	configFileFlagNameConstant              = "config"
	configFileFlagUsageConstant             = "Optional path to a configuration file (YAML)."
	logLevelFlagNameConstant                = "log-level"
	logLevelFlagUsageConstant               = "Override the configured log level."
	logFormatFlagNameConstant               = "log-format"
	logFormatFlagDescriptionConstant        = "Override the configured log format."
	workingDirectoryFlagNameConstant        = "cwd"
	workingDirectoryFlagUsageConstant       = "Run as if gitutils was started in this directory."
	commonConfigurationKeyConstant          = "common"
	commonLogLevelConfigKeyConstant         = commonConfigurationKeyConstant + ".log_level"
	commonLogFormatConfigKeyConstant        = commonConfigurationKeyConstant + ".log_format"
	commonLogFileConfigKeyConstant          = commonConfigurationKeyConstant + ".log_file"
	environmentPrefixConstant               = "GITUTILS"
	configurationNameConstant               = "config"
	configurationTypeConstant               = "yaml"
	configurationInitializedMessageConstant = "configuration initialized"
	configurationLogLevelFieldConstant      = "log_level"
	configurationLogFormatFieldConstant     = "log_format"
	configurationFileFieldConstant          = "config_file"
	workingDirectoryFieldConstant           = "working_directory"
	configurationLoadErrorTemplateConstant  = "unable to load configuration: %w"
	loggerCreationErrorTemplateConstant     = "unable to create logger: %w"
	loggerSyncErrorTemplateConstant         = "unable to flush logger: %w"
	commandBuildErrorTemplateConstant       = "unable to build %s command: %w"
	passthroughFlagErrorTemplateConstant    = "invalid argument for --%s: %w"
	rootCommandDebugMessageConstant         = "gitutils CLI diagnostics"
	logFieldCommandNameConstant             = "command_name"
	logFieldArgumentsConstant               = "arguments"
	defaultConfigurationSearchPathConstant  = "."
	userConfigurationSearchPathConstant     = "~/.gitutils"
	toolsConfigurationKeyConstant           = "tools"
	syncConfigurationKeyConstant            = toolsConfigurationKeyConstant + ".sync"
	branchesConfigurationKeyConstant        = toolsConfigurationKeyConstant + ".branches"
	profilesConfigurationKeyConstant        = toolsConfigurationKeyConstant + ".profiles"
	proxyConfigurationKeyConstant           = toolsConfigurationKeyConstant + ".proxy"
)

// Version is the reported application version, overridden at link time.
var Version = "dev"

var logFormatChoices = flagutils.NewChoiceSet(string(utils.LogFormatConsole), string(utils.LogFormatStructured), string(utils.LogFormatConsole))

// ApplicationConfiguration describes the persisted configuration for the CLI entrypoint.
type ApplicationConfiguration struct {
	Common ApplicationCommonConfiguration `mapstructure:"common"`
	Tools  ApplicationToolsConfiguration  `mapstructure:"tools"`
}

// ApplicationCommonConfiguration stores logging configuration shared across commands.
type ApplicationCommonConfiguration struct {
	LogLevel  string `mapstructure:"log_level"`
	LogFormat string `mapstructure:"log_format"`
	LogFile   string `mapstructure:"log_file"`
}

// ApplicationToolsConfiguration holds configuration for CLI subcommands grouped by tool.
type ApplicationToolsConfiguration struct {
	Sync     syncplan.CommandConfiguration `mapstructure:"sync"`
	Branches branches.CommandConfiguration `mapstructure:"branches"`
	Profiles profiles.CommandConfiguration `mapstructure:"profiles"`
	Proxy    proxy.CommandConfiguration    `mapstructure:"proxy"`
}

// Application wires the Cobra root command, configuration loader, and structured logger.
type Application struct {
	rootCommand            *cobra.Command
	configurationLoader    *utils.ConfigurationLoader
	loggerFactory          *utils.LoggerFactory
	homeExpander           *utils.HomeExpander
	logger                 *zap.Logger
	configuration          ApplicationConfiguration
	configurationMetadata  utils.LoadedConfiguration
	configurationFilePath  string
	logLevelFlagValue      string
	logFormatFlagValue     string
	workingDirectoryValue  string
	arguments              []string
	commandContextAccessor utils.CommandContextAccessor
}

// NewApplication assembles a fully wired CLI application instance.
func NewApplication() (*Application, error) {
	configurationLoader := utils.NewConfigurationLoader(
		configurationNameConstant,
		configurationTypeConstant,
		environmentPrefixConstant,
		[]string{defaultConfigurationSearchPathConstant, userConfigurationSearchPathConstant},
	)
	configurationLoader.SetEmbeddedConfiguration(EmbeddedDefaultConfiguration())

	application := &Application{
		configurationLoader:    configurationLoader,
		loggerFactory:          utils.NewLoggerFactory(),
		homeExpander:           utils.NewHomeExpander(),
		logger:                 zap.NewNop(),
		commandContextAccessor: utils.NewCommandContextAccessor(),
	}

	cobraCommand := &cobra.Command{
		Use:           applicationNameConstant,
		Short:         applicationShortDescriptionConstant,
		Long:          applicationLongDescriptionConstant,
		Version:       Version,
		SilenceUsage:  true,
		SilenceErrors: true,
		PersistentPreRunE: func(command *cobra.Command, arguments []string) error {
			return application.initializeConfiguration(command)
		},
		RunE: func(command *cobra.Command, arguments []string) error {
			return application.runRootCommand(command, arguments)
		},
	}

	cobraCommand.SetContext(context.Background())
	cobraCommand.PersistentFlags().StringVar(&application.configurationFilePath, configFileFlagNameConstant, "", configFileFlagUsageConstant)
	cobraCommand.PersistentFlags().StringVar(&application.logLevelFlagValue, logLevelFlagNameConstant, "", logLevelFlagUsageConstant)
	cobraCommand.PersistentFlags().StringVar(&application.logFormatFlagValue, logFormatFlagNameConstant, "", logFormatChoices.Usage(logFormatFlagDescriptionConstant))
	cobraCommand.PersistentFlags().StringVar(&application.workingDirectoryValue, workingDirectoryFlagNameConstant, "", workingDirectoryFlagUsageConstant)

	loggerProvider := func() *zap.Logger {
		return application.logger
	}

	syncBuilder := syncplan.CommandBuilder{
		LoggerProvider:               loggerProvider,
		HumanReadableLoggingProvider: application.humanReadableLoggingEnabled,
		ConfigurationProvider: func() syncplan.CommandConfiguration {
			return application.configuration.Tools.Sync
		},
	}
	branchesBuilder := branches.CommandBuilder{
		LoggerProvider:               loggerProvider,
		HumanReadableLoggingProvider: application.humanReadableLoggingEnabled,
		ConfigurationProvider: func() branches.CommandConfiguration {
			return application.configuration.Tools.Branches
		},
	}
	profilesBuilder := profiles.CommandBuilder{
		LoggerProvider:               loggerProvider,
		HumanReadableLoggingProvider: application.humanReadableLoggingEnabled,
		ConfigurationProvider: func() profiles.CommandConfiguration {
			return application.configuration.Tools.Profiles
		},
	}
	inspectionBuilder := configcmd.CommandBuilder{}

	commandBuilders := []struct {
		name  string
		build func() (*cobra.Command, error)
	}{
		{name: "sync", build: syncBuilder.Build},
		{name: "br", build: branchesBuilder.Build},
		{name: "usr", build: profilesBuilder.Build},
		{name: "config", build: inspectionBuilder.Build},
		{name: "head", build: inspectionBuilder.BuildHead},
	}
	for _, commandBuilder := range commandBuilders {
		subcommand, buildError := commandBuilder.build()
		if buildError != nil {
			return nil, fmt.Errorf(commandBuildErrorTemplateConstant, commandBuilder.name, buildError)
		}
		cobraCommand.AddCommand(subcommand)
	}

	proxyBuilder := proxy.CommandBuilder{
		LoggerProvider: loggerProvider,
		ConfigurationProvider: func() proxy.CommandConfiguration {
			return application.configuration.Tools.Proxy
		},
	}
	proxyCommands, proxyBuildError := proxyBuilder.BuildAll()
	if proxyBuildError != nil {
		return nil, fmt.Errorf(commandBuildErrorTemplateConstant, proxyConfigurationKeyConstant, proxyBuildError)
	}
	cobraCommand.AddCommand(proxyCommands...)

	application.rootCommand = cobraCommand

	return application, nil
}

// ExecuteContext runs the configured Cobra command hierarchy and ensures logger flushing.
func (application *Application) ExecuteContext(executionContext context.Context) error {
	if flagError := application.applyPassthroughRootFlags(); flagError != nil {
		return flagError
	}
	executionError := application.rootCommand.ExecuteContext(executionContext)
	if syncError := application.flushLogger(); syncError != nil && executionError == nil {
		return fmt.Errorf(loggerSyncErrorTemplateConstant, syncError)
	}
	return executionError
}

// Execute builds a fresh application instance and executes the root command hierarchy.
func Execute(executionContext context.Context) error {
	application, creationError := NewApplication()
	if creationError != nil {
		return creationError
	}
	return application.ExecuteContext(executionContext)
}

// SetArguments overrides the command-line arguments, used by tests and embedding callers.
func (application *Application) SetArguments(arguments []string) {
	application.arguments = arguments
	application.rootCommand.SetArgs(arguments)
}

// SetOutputs redirects standard output and standard error of every command.
func (application *Application) SetOutputs(output io.Writer, errorOutput io.Writer) {
	application.rootCommand.SetOut(output)
	application.rootCommand.SetErr(errorOutput)
}

// Configuration returns the configuration resolved by the last invocation.
func (application *Application) Configuration() ApplicationConfiguration {
	return application.configuration
}

func (application *Application) initializeConfiguration(command *cobra.Command) error {
	defaultValues := map[string]any{
		commonLogLevelConfigKeyConstant:  string(utils.LogLevelWarn),
		commonLogFormatConfigKeyConstant: string(utils.LogFormatConsole),
		commonLogFileConfigKeyConstant:   "",
	}
	maps.Copy(defaultValues, syncplan.DefaultConfigurationValues(syncConfigurationKeyConstant))
	maps.Copy(defaultValues, branches.DefaultConfigurationValues(branchesConfigurationKeyConstant))
	maps.Copy(defaultValues, profiles.DefaultConfigurationValues(profilesConfigurationKeyConstant))
	maps.Copy(defaultValues, proxy.DefaultConfigurationValues(proxyConfigurationKeyConstant))

	loadedConfiguration, loadError := application.configurationLoader.LoadConfiguration(application.configurationFilePath, defaultValues, &application.configuration)
	if loadError != nil {
		return fmt.Errorf(configurationLoadErrorTemplateConstant, loadError)
	}

	application.configurationMetadata = loadedConfiguration

	if application.persistentFlagChanged(command, logLevelFlagNameConstant) {
		application.configuration.Common.LogLevel = application.logLevelFlagValue
	}

	if application.persistentFlagChanged(command, logFormatFlagNameConstant) {
		normalizedFormat, formatError := logFormatChoices.Normalize(application.logFormatFlagValue)
		if formatError != nil {
			return formatError
		}
		application.configuration.Common.LogFormat = normalizedFormat
	}

	logger, loggerCreationError := application.loggerFactory.CreateLoggerWithOptions(utils.LoggerOptions{
		Level:    utils.LogLevel(application.configuration.Common.LogLevel),
		Format:   utils.LogFormat(application.configuration.Common.LogFormat),
		FilePath: application.configuration.Common.LogFile,
	})
	if loggerCreationError != nil {
		return fmt.Errorf(loggerCreationErrorTemplateConstant, loggerCreationError)
	}

	application.logger = logger

	updatedContext := application.commandContextAccessor.WithConfigurationFilePath(
		command.Context(),
		application.configurationMetadata.ConfigFileUsed,
	)

	workingDirectory := strings.TrimSpace(application.workingDirectoryValue)
	if len(workingDirectory) > 0 {
		workingDirectory = application.homeExpander.Expand(workingDirectory)
		updatedContext = application.commandContextAccessor.WithWorkingDirectory(updatedContext, workingDirectory)
	}

	application.logger.Debug(
		configurationInitializedMessageConstant,
		zap.String(configurationLogLevelFieldConstant, application.configuration.Common.LogLevel),
		zap.String(configurationLogFormatFieldConstant, application.configuration.Common.LogFormat),
		zap.String(configurationFileFieldConstant, application.configurationMetadata.ConfigFileUsed),
		zap.String(workingDirectoryFieldConstant, workingDirectory),
	)

	command.SetContext(updatedContext)
	if rootCommand := command.Root(); rootCommand != nil {
		rootCommand.SetContext(updatedContext)
	}

	return nil
}

// applyPassthroughRootFlags sets the root flags written before a command that forwards its
// arguments verbatim, since cobra parses no flags for such commands. Flags after the command name
// belong to git.
func (application *Application) applyPassthroughRootFlags() error {
	arguments := application.arguments
	if arguments == nil {
		arguments = os.Args[1:]
	}

	rootFlags := application.rootCommand.PersistentFlags()
	assignments, remainingArguments := flagutils.SplitLeadingFlags(rootFlags, arguments)
	if len(assignments) == 0 || len(remainingArguments) == 0 {
		return nil
	}

	passthroughCommand := application.findSubcommand(remainingArguments[0])
	if passthroughCommand == nil || !passthroughCommand.DisableFlagParsing {
		return nil
	}

	for _, assignment := range assignments {
		if setError := rootFlags.Set(assignment.Name, assignment.Value); setError != nil {
			return fmt.Errorf(passthroughFlagErrorTemplateConstant, assignment.Name, setError)
		}
	}
	application.rootCommand.SetArgs(remainingArguments)
	return nil
}

func (application *Application) findSubcommand(name string) *cobra.Command {
	for _, subcommand := range application.rootCommand.Commands() {
		if subcommand.Name() == name || subcommand.HasAlias(name) {
			return subcommand
		}
	}
	return nil
}

func (application *Application) humanReadableLoggingEnabled() bool {
	logFormatValue := strings.TrimSpace(application.configuration.Common.LogFormat)
	return strings.EqualFold(logFormatValue, string(utils.LogFormatConsole))
}

func (application *Application) runRootCommand(command *cobra.Command, arguments []string) error {
	application.logger.Debug(
		rootCommandDebugMessageConstant,
		zap.String(logFieldCommandNameConstant, command.Name()),
		zap.Strings(logFieldArgumentsConstant, arguments),
	)
	return command.Help()
}

func (application *Application) flushLogger() error {
	if application.logger == nil {
		return nil
	}

	syncError := application.logger.Sync()
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
