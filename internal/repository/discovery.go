package repository

import (
	"fmt"
	"path/filepath"

	"github.com/temirov/gitutils/internal/filesystem"
	"github.com/temirov/gitutils/internal/shared"
)

const (
	gitMetadataDirectoryNameConstant      = ".git"
	gitConfigFileNameConstant             = "config"
	gitHeadFileNameConstant               = "HEAD"
	discoveryAbsolutePathTemplateConstant = "unable to resolve %s: %w"
)

// Discover walks upward from startDirectory and returns the first directory containing
// .git/config together with the configuration file path.
func Discover(startDirectory string) (string, string, error) {
	return discover(filesystem.OSFileSystem{}, startDirectory)
}

func discover(fileSystem shared.FileSystem, startDirectory string) (string, string, error) {
	candidateDirectory, absoluteError := fileSystem.Abs(startDirectory)
	if absoluteError != nil {
		return "", "", fmt.Errorf(discoveryAbsolutePathTemplateConstant, startDirectory, absoluteError)
	}

	for {
		configPath := filepath.Join(candidateDirectory, gitMetadataDirectoryNameConstant, gitConfigFileNameConstant)
		if fileInfo, statError := fileSystem.Stat(configPath); statError == nil && fileInfo.Mode().IsRegular() {
			return candidateDirectory, configPath, nil
		}

		parentDirectory := filepath.Dir(candidateDirectory)
		if parentDirectory == candidateDirectory {
			return "", "", NotAGitRepositoryError{StartDirectory: startDirectory, Hint: notAGitRepositoryHintConstant}
		}
		candidateDirectory = parentDirectory
	}
}
