// Package flags provides helpers for binding standardized flags to Cobra commands.
package flags

import (
	"strings"

	"github.com/spf13/cobra"
	"github.com/spf13/pflag"
)

const (
	// AssumeYesFlagName exposes the shared assume-yes flag name.
	AssumeYesFlagName = "yes"
	// AssumeYesFlagShorthand provides the shorthand for the assume-yes flag.
	AssumeYesFlagShorthand = "y"
	// AssumeYesFlagUsage describes the shared assume-yes flag purpose.
	AssumeYesFlagUsage = "Automatically confirm prompts"

	longFlagPrefixConstant     = "--"
	flagTerminatorConstant     = "--"
	flagValueSeparatorConstant = "="
)

// BindAssumeYesFlag attaches the --yes flag to command when it is not already present.
func BindAssumeYesFlag(command *cobra.Command) {
	if command == nil {
		return
	}
	if command.Flags().Lookup(AssumeYesFlagName) != nil {
		return
	}
	command.Flags().BoolP(AssumeYesFlagName, AssumeYesFlagShorthand, false, AssumeYesFlagUsage)
}

// ResolveAssumeYes returns the explicit --yes value when the flag was set, otherwise the configured default.
func ResolveAssumeYes(command *cobra.Command, configuredDefault bool) bool {
	if command == nil {
		return configuredDefault
	}
	assumeYesFlag := command.Flags().Lookup(AssumeYesFlagName)
	if assumeYesFlag == nil || !assumeYesFlag.Changed {
		return configuredDefault
	}
	assumeYes, parseError := command.Flags().GetBool(AssumeYesFlagName)
	if parseError != nil {
		return configuredDefault
	}
	return assumeYes
}

// FlagAssignment is a flag name with the raw value given on the command line.
type FlagAssignment struct {
	Name  string
	Value string
}

// SplitLeadingFlags takes the long flags defined by flagSet from the front of arguments, accepting
// both --name value and --name=value. Scanning stops at the first token that is not such a flag,
// and the remaining arguments start there.
func SplitLeadingFlags(flagSet *pflag.FlagSet, arguments []string) ([]FlagAssignment, []string) {
	assignments := []FlagAssignment{}
	if flagSet == nil {
		return assignments, arguments
	}

	argumentIndex := 0
	for argumentIndex < len(arguments) {
		argument := arguments[argumentIndex]
		if argument == flagTerminatorConstant || !strings.HasPrefix(argument, longFlagPrefixConstant) {
			break
		}

		flagName, flagValue, hasInlineValue := strings.Cut(strings.TrimPrefix(argument, longFlagPrefixConstant), flagValueSeparatorConstant)
		definedFlag := flagSet.Lookup(flagName)
		if definedFlag == nil {
			break
		}

		if !hasInlineValue {
			switch {
			case len(definedFlag.NoOptDefVal) > 0:
				flagValue = definedFlag.NoOptDefVal
			case argumentIndex+1 < len(arguments):
				argumentIndex++
				flagValue = arguments[argumentIndex]
			default:
				return assignments, arguments[argumentIndex:]
			}
		}

		assignments = append(assignments, FlagAssignment{Name: flagName, Value: flagValue})
		argumentIndex++
	}

	return assignments, arguments[argumentIndex:]
}
