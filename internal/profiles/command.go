package profiles

import (
	"fmt"
	"text/tabwriter"

	"github.com/spf13/cobra"
	"go.uber.org/zap"

	"github.com/temirov/gitutils/internal/dependencies"
	"github.com/temirov/gitutils/internal/shared"
	"github.com/temirov/gitutils/internal/ui"
)

const (
	commandUseConstant                  = "usr"
	commandShortDescriptionConstant     = "Manage and switch git user profiles"
	commandLongDescriptionConstant      = "usr stores git identities (name, email, signing key) as profiles and switches between them by rewriting the global user settings. Without a subcommand it shows the active profile."
	listUseConstant                     = "list"
	listShortDescriptionConstant        = "List stored profiles"
	addUseConstant                      = "add"
	addShortDescriptionConstant         = "Add a profile"
	removeUseConstant                   = "rm <id>"
	removeShortDescriptionConstant      = "Remove a profile"
	setUseConstant                      = "set <id>"
	setShortDescriptionConstant         = "Activate a profile in the global git configuration"
	configUseConstant                   = "cfg"
	configShortDescriptionConstant      = "Print the profiles file"
	flagIdentifierNameConstant          = "id"
	flagIdentifierDescriptionConstant   = "Profile identifier (generated when omitted)"
	flagNameNameConstant                = "name"
	flagNameDescriptionConstant         = "Git user.name for the profile"
	flagEmailNameConstant               = "email"
	flagEmailDescriptionConstant        = "Git user.email for the profile"
	flagSigningKeyNameConstant          = "signingkey"
	flagSigningKeyDescriptionConstant   = "Git user.signingkey for the profile"
	viewLineTemplateConstant            = "%s: %s\n"
	viewNameLabelConstant               = "Name"
	viewEmailLabelConstant              = "Email"
	viewSigningKeyLabelConstant         = "Signing key"
	tableHeaderConstant                 = "id\tname\temail\tgpg"
	tableRowTemplateConstant            = "%s\t%s\t%s\t%s\n"
	tableMissingSigningKeyConstant      = "None"
	tableMinimumWidthConstant           = 0
	tableTabWidthConstant               = 4
	tablePaddingConstant                = 2
	tablePaddingCharacterConstant       = ' '
	addedMessageTemplateConstant        = "Added profile %s: %s <%s>\n"
	removedMessageTemplateConstant      = "Removed profile %s\n"
	activatedMessageTemplateConstant    = "Active profile set to: %s <%s>\n"
	configurationHeaderTemplateConstant = "# %s\n"
)

// LoggerProvider yields a zap logger instance.
type LoggerProvider func() *zap.Logger

// CommandBuilder assembles the usr command and its subcommands.
type CommandBuilder struct {
	LoggerProvider               LoggerProvider
	GitExecutor                  shared.GitExecutor
	FileSystem                   shared.FileSystem
	ExecutableLocator            func() (string, error)
	IdentifierGenerator          IdentifierGenerator
	HumanReadableLoggingProvider func() bool
	ConfigurationProvider        func() CommandConfiguration
}

// Build constructs the usr command.
func (builder *CommandBuilder) Build() (*cobra.Command, error) {
	command := &cobra.Command{
		Use:   commandUseConstant,
		Short: commandShortDescriptionConstant,
		Long:  commandLongDescriptionConstant,
		Args:  cobra.NoArgs,
		RunE:  builder.runView,
	}

	listCommand := &cobra.Command{
		Use:   listUseConstant,
		Short: listShortDescriptionConstant,
		Args:  cobra.NoArgs,
		RunE:  builder.runList,
	}

	addCommand := &cobra.Command{
		Use:   addUseConstant,
		Short: addShortDescriptionConstant,
		Args:  cobra.NoArgs,
		RunE:  builder.runAdd,
	}
	addCommand.Flags().String(flagIdentifierNameConstant, "", flagIdentifierDescriptionConstant)
	addCommand.Flags().String(flagNameNameConstant, "", flagNameDescriptionConstant)
	addCommand.Flags().String(flagEmailNameConstant, "", flagEmailDescriptionConstant)
	addCommand.Flags().String(flagSigningKeyNameConstant, "", flagSigningKeyDescriptionConstant)

	removeCommand := &cobra.Command{
		Use:   removeUseConstant,
		Short: removeShortDescriptionConstant,
		Args:  cobra.ExactArgs(1),
		RunE:  builder.runRemove,
	}

	setCommand := &cobra.Command{
		Use:   setUseConstant,
		Short: setShortDescriptionConstant,
		Args:  cobra.ExactArgs(1),
		RunE:  builder.runSet,
	}

	configCommand := &cobra.Command{
		Use:   configUseConstant,
		Short: configShortDescriptionConstant,
		Args:  cobra.NoArgs,
		RunE:  builder.runConfig,
	}

	command.AddCommand(listCommand, addCommand, removeCommand, setCommand, configCommand)
	return command, nil
}

func (builder *CommandBuilder) runView(command *cobra.Command, arguments []string) error {
	service, serviceError := builder.buildService(command)
	if serviceError != nil {
		return serviceError
	}

	profile, activeError := service.Active(command.Context())
	if activeError != nil {
		return activeError
	}

	palette := ui.NewPalette(ui.ShouldColorize(command.OutOrStdout()))
	output := command.OutOrStdout()
	fmt.Fprintf(output, viewLineTemplateConstant, palette.Label.Sprint(viewNameLabelConstant), profile.Name)
	fmt.Fprintf(output, viewLineTemplateConstant, palette.Label.Sprint(viewEmailLabelConstant), profile.Email)
	if len(profile.SigningKey) > 0 {
		fmt.Fprintf(output, viewLineTemplateConstant, palette.Label.Sprint(viewSigningKeyLabelConstant), profile.SigningKey)
	}
	return nil
}

func (builder *CommandBuilder) runList(command *cobra.Command, arguments []string) error {
	service, serviceError := builder.buildService(command)
	if serviceError != nil {
		return serviceError
	}

	storedProfiles, listError := service.List()
	if listError != nil {
		return listError
	}

	tableWriter := tabwriter.NewWriter(command.OutOrStdout(), tableMinimumWidthConstant, tableTabWidthConstant, tablePaddingConstant, tablePaddingCharacterConstant, 0)
	fmt.Fprintln(tableWriter, tableHeaderConstant)
	for _, profile := range storedProfiles {
		signingKey := profile.SigningKey
		if len(signingKey) == 0 {
			signingKey = tableMissingSigningKeyConstant
		}
		fmt.Fprintf(tableWriter, tableRowTemplateConstant, profile.ID, profile.Name, profile.Email, signingKey)
	}
	return tableWriter.Flush()
}

func (builder *CommandBuilder) runAdd(command *cobra.Command, arguments []string) error {
	service, serviceError := builder.buildService(command)
	if serviceError != nil {
		return serviceError
	}

	identifier, _ := command.Flags().GetString(flagIdentifierNameConstant)
	name, _ := command.Flags().GetString(flagNameNameConstant)
	email, _ := command.Flags().GetString(flagEmailNameConstant)
	signingKey, _ := command.Flags().GetString(flagSigningKeyNameConstant)

	profile, addError := service.Add(AddOptions{ID: identifier, Name: name, Email: email, SigningKey: signingKey})
	if addError != nil {
		return addError
	}
	fmt.Fprintf(command.OutOrStdout(), addedMessageTemplateConstant, profile.ID, profile.Name, profile.Email)
	return nil
}

func (builder *CommandBuilder) runRemove(command *cobra.Command, arguments []string) error {
	service, serviceError := builder.buildService(command)
	if serviceError != nil {
		return serviceError
	}
	if removeError := service.Remove(arguments[0]); removeError != nil {
		return removeError
	}
	fmt.Fprintf(command.OutOrStdout(), removedMessageTemplateConstant, arguments[0])
	return nil
}

func (builder *CommandBuilder) runSet(command *cobra.Command, arguments []string) error {
	service, serviceError := builder.buildService(command)
	if serviceError != nil {
		return serviceError
	}
	profile, activateError := service.Activate(command.Context(), arguments[0])
	if activateError != nil {
		return activateError
	}
	fmt.Fprintf(command.OutOrStdout(), activatedMessageTemplateConstant, profile.Name, profile.Email)
	return nil
}

func (builder *CommandBuilder) runConfig(command *cobra.Command, arguments []string) error {
	service, serviceError := builder.buildService(command)
	if serviceError != nil {
		return serviceError
	}
	profilesPath, content, renderError := service.Render()
	if renderError != nil {
		return renderError
	}
	fmt.Fprintf(command.OutOrStdout(), configurationHeaderTemplateConstant, profilesPath)
	fmt.Fprint(command.OutOrStdout(), content)
	return nil
}

func (builder *CommandBuilder) buildService(command *cobra.Command) (*Service, error) {
	profilesPath, pathError := ResolveProfilesPath(builder.resolveConfiguration(), builder.ExecutableLocator)
	if pathError != nil {
		return nil, pathError
	}

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

	return NewService(ServiceDependencies{
		Store:               NewStore(profilesPath, builder.FileSystem),
		GitExecutor:         gitExecutor,
		WorkingDirectory:    workingDirectory,
		IdentifierGenerator: builder.IdentifierGenerator,
		Logger:              logger,
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
