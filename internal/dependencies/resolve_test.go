package dependencies_test

import (
	"context"
	"os"
	"testing"

	"github.com/stretchr/testify/require"
	"go.uber.org/zap"

	"github.com/temirov/gitutils/internal/dependencies"
	"github.com/temirov/gitutils/internal/execshell"
	"github.com/temirov/gitutils/internal/filesystem"
	"github.com/temirov/gitutils/internal/utils"
)

type stubGitExecutor struct{}

func (stubGitExecutor) ExecuteGit(context.Context, execshell.CommandDetails) (execshell.ExecutionResult, error) {
	return execshell.ExecutionResult{}, nil
}

func (stubGitExecutor) StreamGit(context.Context, execshell.CommandDetails, execshell.LineHandler) error {
	return nil
}

func TestResolveFileSystemDefaultsToOperatingSystem(testInstance *testing.T) {
	require.IsType(testInstance, filesystem.OSFileSystem{}, dependencies.ResolveFileSystem(nil))
}

func TestResolveGitExecutorPrefersExisting(testInstance *testing.T) {
	existing := stubGitExecutor{}
	resolved, resolveError := dependencies.ResolveGitExecutor(existing, zap.NewNop(), true)
	require.NoError(testInstance, resolveError)
	require.Equal(testInstance, existing, resolved)

	constructed, constructionError := dependencies.ResolveGitExecutor(nil, nil, true)
	require.NoError(testInstance, constructionError)
	require.IsType(testInstance, &execshell.ShellExecutor{}, constructed)

	attached, attachedError := dependencies.ResolveAttachedGitRunner(nil, zap.NewNop())
	require.NoError(testInstance, attachedError)
	require.IsType(testInstance, &execshell.ShellExecutor{}, attached)
}

func TestResolveWorkingDirectory(testInstance *testing.T) {
	overrideDirectory := testInstance.TempDir()
	overrideContext := utils.NewCommandContextAccessor().WithWorkingDirectory(context.Background(), overrideDirectory)

	resolvedDirectory, resolveError := dependencies.ResolveWorkingDirectory(overrideContext)
	require.NoError(testInstance, resolveError)
	require.Equal(testInstance, overrideDirectory, resolvedDirectory)

	processDirectory, processDirectoryError := os.Getwd()
	require.NoError(testInstance, processDirectoryError)

	fallbackDirectory, fallbackError := dependencies.ResolveWorkingDirectory(context.Background())
	require.NoError(testInstance, fallbackError)
	require.Equal(testInstance, processDirectory, fallbackDirectory)
}
