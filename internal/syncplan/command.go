package syncplan

import (
	"github.com/spf13/cobra"
	"go.uber.org/zap"

	"github.com/temirov/gitutils/internal/dependencies"
	"github.com/temirov/gitutils/internal/repository"
	"github.com/temirov/gitutils/internal/shared"
	"github.com/temirov/gitutils/internal/ui"
	flagutils "github.com/temirov/gitutils/internal/utils/flags"
)

const (
	commandUseConstant              = "sync from <remote[:branch]> [to <remote>]"
	commandShortDescriptionConstant = "Rebase the current branch onto a remote and optionally push it elsewhere"
	commandLongDescriptionConstant  = "sync fetches a branch from one remote, rebases the local copy onto it without merge commits, and optionally pushes the result to a second remote. The planned git commands are shown and confirmed before anything runs."
	commandExampleConstant          = "gitutils sync from upstream\ngitutils sync from github:feature/login to gitea"
)

// LoggerProvider yields a zap logger instance.
type LoggerProvider func() *zap.Logger

// CommandBuilder assembles the sync command.
type CommandBuilder struct {
	LoggerProvider               LoggerProvider
	GitExecutor                  shared.GitExecutor
	FileSystem                   shared.FileSystem
	Prompter                     shared.ConfirmationPrompter
	HumanReadableLoggingProvider func() bool
	ConfigurationProvider        func() CommandConfiguration
}

// Build constructs the sync command.
func (builder *CommandBuilder) Build() (*cobra.Command, error) {
	command := &cobra.Command{
		Use:     commandUseConstant,
		Short:   commandShortDescriptionConstant,
		Long:    commandLongDescriptionConstant,
		Example: commandExampleConstant,
		Args:    cobra.ArbitraryArgs,
		RunE:    builder.run,
	}
	flagutils.BindAssumeYesFlag(command)

	return command, nil
}

func (builder *CommandBuilder) run(command *cobra.Command, arguments []string) error {
	request, parseError := ParseArguments(arguments)
	if parseError != nil {
		return parseError
	}

	configuration := builder.resolveConfiguration()
	logger := builder.resolveLogger()
	humanReadableLogging := false
	if builder.HumanReadableLoggingProvider != nil {
		humanReadableLogging = builder.HumanReadableLoggingProvider()
	}

	gitExecutor, executorError := dependencies.ResolveGitExecutor(builder.GitExecutor, logger, humanReadableLogging)
	if executorError != nil {
		return executorError
	}

	workingDirectory, workingDirectoryError := dependencies.ResolveWorkingDirectory(command.Context())
	if workingDirectoryError != nil {
		return workingDirectoryError
	}

	repositoryContext, repositoryError := repository.New(workingDirectory, repository.Dependencies{
		FileSystem:  builder.FileSystem,
		GitExecutor: gitExecutor,
	})
	if repositoryError != nil {
		return repositoryError
	}

	service, serviceError := NewService(ServiceDependencies{
		Repository:   repositoryContext,
		Prompter:     builder.resolvePrompter(command, configuration),
		Output:       command.OutOrStdout(),
		ColorEnabled: ui.ShouldColorize(command.OutOrStdout()),
		Logger:       logger,
	})
	if serviceError != nil {
		return serviceError
	}

	_, syncError := service.Sync(command.Context(), Options{Request: request, TrunkBranch: configuration.DefaultBranch})
	return syncError
}

func (builder *CommandBuilder) resolveConfiguration() CommandConfiguration {
	if builder.ConfigurationProvider == nil {
		return DefaultCommandConfiguration()
	}
	return builder.ConfigurationProvider().Sanitize()
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

func (builder *CommandBuilder) resolvePrompter(command *cobra.Command, configuration CommandConfiguration) shared.ConfirmationPrompter {
	if flagutils.ResolveAssumeYes(command, configuration.AssumeYes) {
		return ui.StaticConfirmationPrompter{Answer: true}
	}
	if builder.Prompter != nil {
		return builder.Prompter
	}
	return ui.NewIOConfirmationPrompter(command.InOrStdin(), command.OutOrStdout(), true)
}
