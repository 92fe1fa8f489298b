package proxy

import "slices"

const (
	commandsConfigurationKeyConstant  = "commands"
	configurationKeySeparatorConstant = "."
)

// DefaultCommandNames lists the git commands that can be proxied.
var DefaultCommandNames = []string{
	"add",
	"branch",
	"checkout",
	"clone",
	"commit",
	"log",
	"merge",
	"pull",
	"push",
	"remote",
	"status",
}

// CommandConfiguration captures which proxies are enabled.
type CommandConfiguration struct {
	Commands []string `mapstructure:"commands"`
}

// DefaultCommandConfiguration enables every built-in proxy.
func DefaultCommandConfiguration() CommandConfiguration {
	return CommandConfiguration{Commands: slices.Clone(DefaultCommandNames)}
}

// DefaultConfigurationValues exposes the defaults keyed under prefix for the configuration loader.
func DefaultConfigurationValues(prefix string) map[string]any {
	return map[string]any{
		prefix + configurationKeySeparatorConstant + commandsConfigurationKeyConstant: DefaultCommandConfiguration().Commands,
	}
}

// Enabled reports whether commandName is listed in the configuration.
func (configuration CommandConfiguration) Enabled(commandName string) bool {
	return slices.Contains(configuration.Commands, commandName)
}
