package syncplan

import (
	"strings"

	"github.com/temirov/gitutils/internal/shared"
)

const (
	defaultBranchConfigurationKeyConstant = "default_branch"
	assumeYesConfigurationKeyConstant     = "assume_yes"
	configurationKeySeparatorConstant     = "."
)

// CommandConfiguration captures configuration values for the sync command.
type CommandConfiguration struct {
	DefaultBranch string `mapstructure:"default_branch"`
	AssumeYes     bool   `mapstructure:"assume_yes"`
}

// DefaultCommandConfiguration provides baseline configuration values for sync.
func DefaultCommandConfiguration() CommandConfiguration {
	return CommandConfiguration{
		DefaultBranch: shared.DefaultTrunkBranchNameConstant,
		AssumeYes:     false,
	}
}

// DefaultConfigurationValues exposes the defaults keyed under prefix for the configuration loader.
func DefaultConfigurationValues(prefix string) map[string]any {
	defaults := DefaultCommandConfiguration()
	return map[string]any{
		prefix + configurationKeySeparatorConstant + defaultBranchConfigurationKeyConstant: defaults.DefaultBranch,
		prefix + configurationKeySeparatorConstant + assumeYesConfigurationKeyConstant:     defaults.AssumeYes,
	}
}

// Sanitize trims configuration values and restores the trunk branch when it is blank.
func (configuration CommandConfiguration) Sanitize() CommandConfiguration {
	sanitized := configuration
	sanitized.DefaultBranch = strings.TrimSpace(configuration.DefaultBranch)
	if len(sanitized.DefaultBranch) == 0 {
		sanitized.DefaultBranch = shared.DefaultTrunkBranchNameConstant
	}
	return sanitized
}
