package profiles

import (
	"fmt"
	"os"
	"path/filepath"
	"strings"

	"github.com/temirov/gitutils/internal/utils"
)

const (
	defaultProfilesFileNameConstant         = "gusr.toml"
	pathConfigurationKeyConstant            = "path"
	configurationKeySeparatorConstant       = "."
	executableLocationErrorTemplateConstant = "unable to locate executable for default profiles path: %w"
)

// CommandConfiguration captures configuration values for the usr command.
type CommandConfiguration struct {
	Path string `mapstructure:"path"`
}

// DefaultCommandConfiguration provides baseline configuration values for usr.
// An empty path selects the file next to the executable.
func DefaultCommandConfiguration() CommandConfiguration {
	return CommandConfiguration{Path: ""}
}

// DefaultConfigurationValues exposes the defaults keyed under prefix for the configuration loader.
func DefaultConfigurationValues(prefix string) map[string]any {
	return map[string]any{
		prefix + configurationKeySeparatorConstant + pathConfigurationKeyConstant: DefaultCommandConfiguration().Path,
	}
}

// ResolveProfilesPath expands the configured path or falls back to gusr.toml beside the executable.
func ResolveProfilesPath(configuration CommandConfiguration, executableLocator func() (string, error)) (string, error) {
	configuredPath := strings.TrimSpace(configuration.Path)
	if len(configuredPath) > 0 {
		return utils.NewHomeExpander().Expand(configuredPath), nil
	}

	if executableLocator == nil {
		executableLocator = os.Executable
	}
	executablePath, locateError := executableLocator()
	if locateError != nil {
		return "", fmt.Errorf(executableLocationErrorTemplateConstant, locateError)
	}
	return filepath.Join(filepath.Dir(executablePath), defaultProfilesFileNameConstant), nil
}
