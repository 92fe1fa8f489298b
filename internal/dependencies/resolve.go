package dependencies

import (
	"context"
	"fmt"
	"os"

	"go.uber.org/zap"

	"github.com/temirov/gitutils/internal/execshell"
	"github.com/temirov/gitutils/internal/filesystem"
	"github.com/temirov/gitutils/internal/shared"
	"github.com/temirov/gitutils/internal/ui"
	"github.com/temirov/gitutils/internal/utils"
)

const (
	workingDirectoryResolutionErrorTemplateConstant = "unable to determine working directory: %w"
)

// ResolveFileSystem returns the provided filesystem or an OS-backed default.
func ResolveFileSystem(existing shared.FileSystem) shared.FileSystem {
	if existing != nil {
		return existing
	}
	return filesystem.OSFileSystem{}
}

// ResolveGitExecutor returns the provided executor or constructs a shell-backed default.
// Human-readable mode reports command lifecycle events through the console event logger.
func ResolveGitExecutor(existing shared.GitExecutor, logger *zap.Logger, humanReadable bool) (shared.GitExecutor, error) {
	if existing != nil {
		return existing, nil
	}
	return newShellExecutor(logger, humanReadable)
}

// ResolveAttachedGitRunner returns the provided runner or constructs a shell-backed default.
func ResolveAttachedGitRunner(existing shared.AttachedGitRunner, logger *zap.Logger) (shared.AttachedGitRunner, error) {
	if existing != nil {
		return existing, nil
	}
	return newShellExecutor(logger, false)
}

// ResolveWorkingDirectory returns the working directory recorded on the command context,
// falling back to the process working directory.
func ResolveWorkingDirectory(executionContext context.Context) (string, error) {
	if executionContext != nil {
		if workingDirectory, available := utils.NewCommandContextAccessor().WorkingDirectory(executionContext); available {
			return workingDirectory, nil
		}
	}
	processWorkingDirectory, workingDirectoryError := os.Getwd()
	if workingDirectoryError != nil {
		return "", fmt.Errorf(workingDirectoryResolutionErrorTemplateConstant, workingDirectoryError)
	}
	return processWorkingDirectory, nil
}

func newShellExecutor(logger *zap.Logger, humanReadable bool) (*execshell.ShellExecutor, error) {
	if logger == nil {
		logger = zap.NewNop()
	}

	var observer execshell.CommandEventObserver
	if humanReadable {
		observer = ui.NewConsoleCommandEventLogger(logger)
	}

	return execshell.NewShellExecutorWithObserver(logger, execshell.NewOSCommandRunner(), observer)
}
