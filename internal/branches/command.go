package branches

import (
	"fmt"

	"github.com/spf13/cobra"
	"go.uber.org/zap"

	"github.com/temirov/gitutils/internal/dependencies"
	"github.com/temirov/gitutils/internal/repository"
	"github.com/temirov/gitutils/internal/shared"
	"github.com/temirov/gitutils/internal/ui"
	flagutils "github.com/temirov/gitutils/internal/utils/flags"
)

const (
	commandUseConstant                        = "br [branch]"
	commandShortDescriptionConstant           = "List, switch, create, or delete branches"
	commandLongDescriptionConstant            = "br lists branches when called without arguments, switches to the named branch when one is given (offering to create it when it does not exist), and deletes a merged branch with --delete."
	commandExampleConstant                    = "gitutils br\ngitutils br feature/login\ngitutils br --delete feature/old"
	flagListNameConstant                      = "list"
	flagListShorthandConstant                 = "l"
	flagListDescriptionConstant               = "List branches"
	flagDeleteNameConstant                    = "delete"
	flagDeleteShorthandConstant               = "d"
	flagDeleteDescriptionConstant             = "Delete the named local branch"
	flagCreateNameConstant                    = "create"
	flagCreateShorthandConstant               = "c"
	flagCreateDescriptionConstant             = "Create the branch without asking when it does not exist"
	listTitleConstant                         = "Branches"
	switchedMessageTemplateConstant           = "Switched to branch %s\n"
	createdMessageTemplateConstant            = "Created branch %s\n"
	deletedMessageTemplateConstant            = "Deleted branch %s\n"
	declinedMessageConstant                   = "Aborted."
	gitOutputTemplateConstant                 = "%s\n"
	conflictingArgumentsMessageConstant       = "--delete cannot be combined with a branch argument"
	conflictingArgumentsErrorTemplateConstant = "%w: %s"
)

// LoggerProvider yields a zap logger instance.
type LoggerProvider func() *zap.Logger

// CommandBuilder assembles the br command.
type CommandBuilder struct {
	LoggerProvider               LoggerProvider
	GitExecutor                  shared.GitExecutor
	FileSystem                   shared.FileSystem
	Prompter                     shared.ConfirmationPrompter
	HumanReadableLoggingProvider func() bool
	ConfigurationProvider        func() CommandConfiguration
}

// Build constructs the br command.
func (builder *CommandBuilder) Build() (*cobra.Command, error) {
	command := &cobra.Command{
		Use:     commandUseConstant,
		Short:   commandShortDescriptionConstant,
		Long:    commandLongDescriptionConstant,
		Example: commandExampleConstant,
		Args:    cobra.MaximumNArgs(1),
		RunE:    builder.run,
	}

	command.Flags().BoolP(flagListNameConstant, flagListShorthandConstant, false, flagListDescriptionConstant)
	command.Flags().StringP(flagDeleteNameConstant, flagDeleteShorthandConstant, "", flagDeleteDescriptionConstant)
	command.Flags().BoolP(flagCreateNameConstant, flagCreateShorthandConstant, false, flagCreateDescriptionConstant)
	flagutils.BindAssumeYesFlag(command)

	return command, nil
}

func (builder *CommandBuilder) run(command *cobra.Command, arguments []string) error {
	configuration := builder.resolveConfiguration()

	deleteBranchName, _ := command.Flags().GetString(flagDeleteNameConstant)
	deleteRequested := command.Flags().Changed(flagDeleteNameConstant)
	listRequested, _ := command.Flags().GetBool(flagListNameConstant)
	if deleteRequested && len(arguments) > 0 {
		return fmt.Errorf(conflictingArgumentsErrorTemplateConstant, ErrBadUsage, conflictingArgumentsMessageConstant)
	}
	if deleteRequested {
		if _, validationError := ValidateBranchName(deleteBranchName); validationError != nil {
			return validationError
		}
	}
	if len(arguments) == 1 {
		if _, validationError := ValidateBranchName(arguments[0]); validationError != nil {
			return validationError
		}
	}

	service, serviceError := builder.buildService(command, configuration)
	if serviceError != nil {
		return serviceError
	}

	output := command.OutOrStdout()
	switch {
	case deleteRequested:
		gitOutput, deleteError := service.Delete(command.Context(), deleteBranchName)
		if deleteError != nil {
			return deleteError
		}
		builder.printGitOutput(command, gitOutput)
		fmt.Fprintf(output, deletedMessageTemplateConstant, deleteBranchName)
		return nil
	case len(arguments) == 1 && !listRequested:
		createIfMissing, _ := command.Flags().GetBool(flagCreateNameConstant)
		checkoutResult, checkoutError := service.Checkout(command.Context(), CheckoutOptions{
			BranchName:      arguments[0],
			CreateIfMissing: createIfMissing || configuration.CreateIfMissing,
		})
		if checkoutError != nil {
			return checkoutError
		}
		builder.printCheckoutResult(command, checkoutResult)
		return nil
	default:
		listing, listError := service.List(command.Context())
		if listError != nil {
			return listError
		}
		builder.printListing(command, listing)
		return nil
	}
}

func (builder *CommandBuilder) buildService(command *cobra.Command, configuration CommandConfiguration) (*Service, error) {
	logger := builder.resolveLogger()
	humanReadableLogging := false
	if builder.HumanReadableLoggingProvider != nil {
		humanReadableLogging = builder.HumanReadableLoggingProvider()
	}

	gitExecutor, executorError := dependencies.ResolveGitExecutor(builder.GitExecutor, logger, humanReadableLogging)
	if executorError != nil {
		return nil, executorError
	}

	workingDirectory, workingDirectoryError := dependencies.ResolveWorkingDirectory(command.Context())
	if workingDirectoryError != nil {
		return nil, workingDirectoryError
	}

	repositoryContext, repositoryError := repository.New(workingDirectory, repository.Dependencies{
		FileSystem:  builder.FileSystem,
		GitExecutor: gitExecutor,
	})
	if repositoryError != nil {
		return nil, repositoryError
	}

	return NewService(ServiceDependencies{
		Repository: repositoryContext,
		Prompter:   builder.resolvePrompter(command, configuration),
		Logger:     logger,
	})
}

func (builder *CommandBuilder) printCheckoutResult(command *cobra.Command, result CheckoutResult) {
	builder.printGitOutput(command, result.Output)
	switch {
	case result.Declined:
		fmt.Fprintln(command.OutOrStdout(), declinedMessageConstant)
	case result.Created:
		fmt.Fprintf(command.OutOrStdout(), createdMessageTemplateConstant, result.BranchName)
	default:
		fmt.Fprintf(command.OutOrStdout(), switchedMessageTemplateConstant, result.BranchName)
	}
}

func (builder *CommandBuilder) printGitOutput(command *cobra.Command, gitOutput string) {
	if len(gitOutput) == 0 {
		return
	}
	fmt.Fprintf(command.OutOrStdout(), gitOutputTemplateConstant, gitOutput)
}

func (builder *CommandBuilder) printListing(command *cobra.Command, listing Listing) {
	items := make([]ui.ListItem, 0, len(listing.Branches)+1)
	if len(listing.Current) > 0 {
		items = append(items, ui.ListItem{Text: listing.Current, Highlighted: true})
	}
	for _, branchName := range listing.Branches {
		items = append(items, ui.ListItem{Text: branchName})
	}
	ui.NewListPrinter(command.OutOrStdout(), ui.ShouldColorize(command.OutOrStdout())).Print(listTitleConstant, items)
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

func (builder *CommandBuilder) resolvePrompter(command *cobra.Command, configuration CommandConfiguration) shared.ConfirmationPrompter {
	if flagutils.ResolveAssumeYes(command, configuration.AssumeYes) {
		return ui.StaticConfirmationPrompter{Answer: true}
	}
	if builder.Prompter != nil {
		return builder.Prompter
	}
	return ui.NewIOConfirmationPrompter(command.InOrStdin(), command.OutOrStdout(), true)
}
