package configcmd

import (
	"context"
	"fmt"

	"github.com/temirov/gitutils/internal/dependencies"
	"github.com/temirov/gitutils/internal/gitconfig"
	"github.com/temirov/gitutils/internal/repository"
)

const (
	configurationLoadErrorTemplateConstant = "unable to load repository configuration: %w"
)

// RepositoryFiles bundles the parsed configuration and HEAD of the discovered repository.
type RepositoryFiles struct {
	Root   string
	Config *gitconfig.ConfigStore
	Head   repository.Head
}

// LoadRepositoryFiles discovers the repository enclosing the command's working directory.
func LoadRepositoryFiles(executionContext context.Context) (RepositoryFiles, error) {
	workingDirectory, workingDirectoryError := dependencies.ResolveWorkingDirectory(executionContext)
	if workingDirectoryError != nil {
		return RepositoryFiles{}, workingDirectoryError
	}

	rootDirectory, configPath, discoveryError := repository.Discover(workingDirectory)
	if discoveryError != nil {
		return RepositoryFiles{}, discoveryError
	}

	configStore, loadError := gitconfig.LoadConfiguration(configPath)
	if loadError != nil {
		return RepositoryFiles{}, fmt.Errorf(configurationLoadErrorTemplateConstant, loadError)
	}

	head, headError := repository.ResolveHead(rootDirectory)
	if headError != nil {
		return RepositoryFiles{}, headError
	}

	return RepositoryFiles{Root: rootDirectory, Config: configStore, Head: head}, nil
}
