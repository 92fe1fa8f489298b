package branches

const (
	createIfMissingConfigurationKeyConstant = "create_if_missing"
	assumeYesConfigurationKeyConstant       = "assume_yes"
	configurationKeySeparatorConstant       = "."
)

// CommandConfiguration captures configuration values for the br command.
type CommandConfiguration struct {
	CreateIfMissing bool `mapstructure:"create_if_missing"`
	AssumeYes       bool `mapstructure:"assume_yes"`
}

// DefaultCommandConfiguration provides baseline configuration values for br.
func DefaultCommandConfiguration() CommandConfiguration {
	return CommandConfiguration{
		CreateIfMissing: false,
		AssumeYes:       false,
	}
}

// DefaultConfigurationValues exposes the defaults keyed under prefix for the configuration loader.
func DefaultConfigurationValues(prefix string) map[string]any {
	defaults := DefaultCommandConfiguration()
	return map[string]any{
		prefix + configurationKeySeparatorConstant + createIfMissingConfigurationKeyConstant: defaults.CreateIfMissing,
		prefix + configurationKeySeparatorConstant + assumeYesConfigurationKeyConstant:       defaults.AssumeYes,
	}
}
