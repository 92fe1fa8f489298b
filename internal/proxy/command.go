package proxy

import (
	"fmt"
	"slices"

	"github.com/spf13/cobra"
	"go.uber.org/zap"

	"github.com/temirov/gitutils/internal/dependencies"
	"github.com/temirov/gitutils/internal/execshell"
	"github.com/temirov/gitutils/internal/shared"
)

const (
	commandUseTemplateConstant         = "%s [git arguments]"
	commandShortTemplateConstant       = "Run git %s with the terminal attached"
	commandLongTemplateConstant        = "%[1]s forwards every argument to git %[1]s unchanged. -h, --help, tldr and --tldr show git's own help for the command."
	gitHelpFlagConstant                = "--help"
	disabledProxyErrorTemplateConstant = "git proxy %s is disabled\nAdd it to tools.proxy.commands to enable it"
	proxyInvocationLogMessageConstant  = "proxying git command"
	logFieldSubcommandConstant         = "subcommand"
	logFieldArgumentsConstant          = "arguments"
)

var helpArguments = []string{"-h", "--help", "tldr", "--tldr"}

// DisabledProxyError reports a proxy that is absent from the configured command list.
type DisabledProxyError struct {
	Name string
}

// Error describes the disabled proxy.
func (disabled DisabledProxyError) Error() string {
	return fmt.Sprintf(disabledProxyErrorTemplateConstant, disabled.Name)
}

// LoggerProvider yields a zap logger instance.
type LoggerProvider func() *zap.Logger

// CommandBuilder assembles proxy commands.
type CommandBuilder struct {
	LoggerProvider        LoggerProvider
	Runner                shared.AttachedGitRunner
	ConfigurationProvider func() CommandConfiguration
}

// BuildAll constructs one proxy command per built-in git command.
func (builder *CommandBuilder) BuildAll() ([]*cobra.Command, error) {
	commands := make([]*cobra.Command, 0, len(DefaultCommandNames))
	for _, commandName := range DefaultCommandNames {
		command, buildError := builder.Build(commandName)
		if buildError != nil {
			return nil, buildError
		}
		commands = append(commands, command)
	}
	return commands, nil
}

// Build constructs the proxy for git subcommand commandName.
func (builder *CommandBuilder) Build(commandName string) (*cobra.Command, error) {
	return &cobra.Command{
		Use:                fmt.Sprintf(commandUseTemplateConstant, commandName),
		Short:              fmt.Sprintf(commandShortTemplateConstant, commandName),
		Long:               fmt.Sprintf(commandLongTemplateConstant, commandName),
		DisableFlagParsing: true,
		RunE: func(command *cobra.Command, arguments []string) error {
			return builder.run(command, commandName, arguments)
		},
	}, nil
}

// ForwardedArguments returns the git arguments for a proxy invocation. Any help-like argument
// replaces the invocation with git's help for the command.
func ForwardedArguments(commandName string, arguments []string) []string {
	for _, argument := range arguments {
		if slices.Contains(helpArguments, argument) {
			return []string{commandName, gitHelpFlagConstant}
		}
	}
	return append([]string{commandName}, arguments...)
}

func (builder *CommandBuilder) run(command *cobra.Command, commandName string, arguments []string) error {
	if !builder.resolveConfiguration().Enabled(commandName) {
		return DisabledProxyError{Name: commandName}
	}

	logger := builder.resolveLogger()
	runner, runnerError := dependencies.ResolveAttachedGitRunner(builder.Runner, logger)
	if runnerError != nil {
		return runnerError
	}

	workingDirectory, workingDirectoryError := dependencies.ResolveWorkingDirectory(command.Context())
	if workingDirectoryError != nil {
		return workingDirectoryError
	}

	forwardedArguments := ForwardedArguments(commandName, arguments)
	logger.Debug(proxyInvocationLogMessageConstant, zap.String(logFieldSubcommandConstant, commandName), zap.Strings(logFieldArgumentsConstant, forwardedArguments))

	return runner.RunGitAttached(command.Context(), execshell.CommandDetails{
		Arguments:        forwardedArguments,
		WorkingDirectory: workingDirectory,
	}, execshell.AttachedStreams{
		Input:       command.InOrStdin(),
		Output:      command.OutOrStdout(),
		ErrorOutput: command.ErrOrStderr(),
	})
}

func (builder *CommandBuilder) resolveConfiguration() CommandConfiguration {
	if builder.ConfigurationProvider == nil {
		return DefaultCommandConfiguration()
	}
	return builder.ConfigurationProvider()
}

func (builder *CommandBuilder) resolveLogger() *zap.Logger {
	if builder.LoggerProvider == nil {
		return zap.NewNop()
	}
	logger := builder.LoggerProvider()
	if logger == nil {
		return zap.NewNop()
	}
	return logger
}
