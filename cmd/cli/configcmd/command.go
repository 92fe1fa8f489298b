package configcmd

import (
	"fmt"

	"github.com/spf13/cobra"

	flagutils "github.com/temirov/gitutils/internal/utils/flags"
)

const (
	configUseConstant               = "config"
	configShortDescriptionConstant  = "Inspect the repository's .git/config"
	configLongDescriptionConstant   = "config reads .git/config of the enclosing repository without invoking git."
	remotesUseConstant              = "remotes"
	remotesShortDescriptionConstant = "List remotes with their URLs"
	sectionsUseConstant             = "sections"
	sectionsShortDescription        = "Print every parsed section"
	getUseConstant                  = "get <section[.description].key>"
	getShortDescriptionConstant     = "Print the value of a configuration key"
	headUseConstant                 = "head"
	headShortDescriptionConstant    = "Print the current branch or detached commit"
	formatFlagNameConstant          = "format"
	formatFlagDescriptionConstant   = "Output format"
	remoteLineTemplateConstant      = "%s\t%s\n"
	valueLineTemplateConstant       = "%s\n"
	keyLookupErrorTemplateConstant  = "%s: %w"
)

var outputFormatChoices = flagutils.NewChoiceSet(string(OutputFormatText), string(OutputFormatText), string(OutputFormatYAML))

// CommandBuilder assembles the config inspection group and the head command.
type CommandBuilder struct{}

// Build constructs the config command group.
func (builder *CommandBuilder) Build() (*cobra.Command, error) {
	command := &cobra.Command{
		Use:   configUseConstant,
		Short: configShortDescriptionConstant,
		Long:  configLongDescriptionConstant,
	}

	remotesCommand := &cobra.Command{
		Use:   remotesUseConstant,
		Short: remotesShortDescriptionConstant,
		Args:  cobra.NoArgs,
		RunE:  builder.runRemotes,
	}

	sectionsCommand := &cobra.Command{
		Use:   sectionsUseConstant,
		Short: sectionsShortDescription,
		Args:  cobra.NoArgs,
		RunE:  builder.runSections,
	}
	sectionsCommand.Flags().String(formatFlagNameConstant, string(OutputFormatText), outputFormatChoices.Usage(formatFlagDescriptionConstant))

	getCommand := &cobra.Command{
		Use:   getUseConstant,
		Short: getShortDescriptionConstant,
		Args:  cobra.ExactArgs(1),
		RunE:  builder.runGet,
	}

	command.AddCommand(remotesCommand, sectionsCommand, getCommand)
	return command, nil
}

// BuildHead constructs the head command.
func (builder *CommandBuilder) BuildHead() (*cobra.Command, error) {
	return &cobra.Command{
		Use:   headUseConstant,
		Short: headShortDescriptionConstant,
		Args:  cobra.NoArgs,
		RunE:  builder.runHead,
	}, nil
}

func (builder *CommandBuilder) runRemotes(command *cobra.Command, arguments []string) error {
	files, loadError := LoadRepositoryFiles(command.Context())
	if loadError != nil {
		return loadError
	}
	for _, remote := range files.Config.Remotes() {
		fmt.Fprintf(command.OutOrStdout(), remoteLineTemplateConstant, remote.Name, remote.URL)
	}
	return nil
}

func (builder *CommandBuilder) runSections(command *cobra.Command, arguments []string) error {
	formatValue, _ := command.Flags().GetString(formatFlagNameConstant)
	normalizedFormat, formatError := outputFormatChoices.Normalize(formatValue)
	if formatError != nil {
		return formatError
	}

	files, loadError := LoadRepositoryFiles(command.Context())
	if loadError != nil {
		return loadError
	}

	rendered, renderError := RenderSections(files.Config, OutputFormat(normalizedFormat))
	if renderError != nil {
		return renderError
	}
	fmt.Fprint(command.OutOrStdout(), rendered)
	return nil
}

func (builder *CommandBuilder) runGet(command *cobra.Command, arguments []string) error {
	files, loadError := LoadRepositoryFiles(command.Context())
	if loadError != nil {
		return loadError
	}

	value, getError := files.Config.Get(arguments[0])
	if getError != nil {
		return fmt.Errorf(keyLookupErrorTemplateConstant, arguments[0], getError)
	}
	for _, entry := range value.Values() {
		fmt.Fprintf(command.OutOrStdout(), valueLineTemplateConstant, entry)
	}
	return nil
}

func (builder *CommandBuilder) runHead(command *cobra.Command, arguments []string) error {
	files, loadError := LoadRepositoryFiles(command.Context())
	if loadError != nil {
		return loadError
	}
	fmt.Fprintln(command.OutOrStdout(), files.Head.String())
	return nil
}
