package syncplan_test

import (
	"bytes"
	"context"
	"os"
	"path/filepath"
	"testing"

	"github.com/stretchr/testify/require"
	"go.uber.org/zap"

	"github.com/temirov/gitutils/internal/execshell"
	"github.com/temirov/gitutils/internal/syncplan"
	"github.com/temirov/gitutils/internal/utils"
)

type recordingGitExecutor struct {
	streamedArguments [][]string
	workingDirectory  []string
}

func (executor *recordingGitExecutor) ExecuteGit(context.Context, execshell.CommandDetails) (execshell.ExecutionResult, error) {
	return execshell.ExecutionResult{}, nil
}

func (executor *recordingGitExecutor) StreamGit(_ context.Context, details execshell.CommandDetails, handler execshell.LineHandler) error {
	executor.streamedArguments = append(executor.streamedArguments, details.Arguments)
	executor.workingDirectory = append(executor.workingDirectory, details.WorkingDirectory)
	return nil
}

func createSyncRepository(testInstance *testing.T, headContent string) string {
	testInstance.Helper()
	rootDirectory, evaluationError := filepath.EvalSymlinks(testInstance.TempDir())
	require.NoError(testInstance, evaluationError)
	gitDirectory := filepath.Join(rootDirectory, ".git")
	require.NoError(testInstance, os.MkdirAll(gitDirectory, 0o755))
	require.NoError(testInstance, os.WriteFile(filepath.Join(gitDirectory, "config"), []byte(testConfigContentConstant), 0o644))
	require.NoError(testInstance, os.WriteFile(filepath.Join(gitDirectory, "HEAD"), []byte(headContent), 0o644))
	return rootDirectory
}

func TestSyncCommandRunsPlanFromRepositoryRoot(testInstance *testing.T) {
	rootDirectory := createSyncRepository(testInstance, "ref: refs/heads/topic\n")
	nestedDirectory := filepath.Join(rootDirectory, "docs")
	require.NoError(testInstance, os.MkdirAll(nestedDirectory, 0o755))

	executor := &recordingGitExecutor{}
	builder := syncplan.CommandBuilder{
		LoggerProvider: func() *zap.Logger { return zap.NewNop() },
		GitExecutor:    executor,
		ConfigurationProvider: func() syncplan.CommandConfiguration {
			return syncplan.CommandConfiguration{DefaultBranch: "master"}
		},
	}
	command, buildError := builder.Build()
	require.NoError(testInstance, buildError)

	output := &bytes.Buffer{}
	command.SetOut(output)
	command.SetErr(output)
	command.SetContext(utils.NewCommandContextAccessor().WithWorkingDirectory(context.Background(), nestedDirectory))
	command.SetArgs([]string{"from", "upstream", "to", "origin", "--yes"})

	require.NoError(testInstance, command.Execute())
	require.Equal(testInstance, [][]string{
		{"fetch", "upstream", "topic"},
		{"checkout", "topic"},
		{"rebase", "upstream/topic"},
		{"push", "origin", "topic"},
	}, executor.streamedArguments)
	for _, workingDirectory := range executor.workingDirectory {
		require.Equal(testInstance, rootDirectory, workingDirectory)
	}
}

func TestSyncCommandReadsConfirmationFromInput(testInstance *testing.T) {
	rootDirectory := createSyncRepository(testInstance, "ref: refs/heads/master\n")

	executor := &recordingGitExecutor{}
	builder := syncplan.CommandBuilder{GitExecutor: executor}
	command, buildError := builder.Build()
	require.NoError(testInstance, buildError)

	output := &bytes.Buffer{}
	command.SetOut(output)
	command.SetIn(bytes.NewBufferString("no\n"))
	command.SetContext(utils.NewCommandContextAccessor().WithWorkingDirectory(context.Background(), rootDirectory))
	command.SetArgs([]string{"from", "upstream"})

	require.ErrorIs(testInstance, command.Execute(), syncplan.ErrSyncAborted)
	require.Empty(testInstance, executor.streamedArguments)
}

func TestSyncCommandValidatesArgumentsBeforeDiscovery(testInstance *testing.T) {
	builder := syncplan.CommandBuilder{GitExecutor: &recordingGitExecutor{}}
	command, buildError := builder.Build()
	require.NoError(testInstance, buildError)
	command.SetOut(&bytes.Buffer{})
	command.SetErr(&bytes.Buffer{})
	command.SetContext(utils.NewCommandContextAccessor().WithWorkingDirectory(context.Background(), testInstance.TempDir()))
	command.SetArgs([]string{"upstream"})

	require.ErrorIs(testInstance, command.Execute(), syncplan.ErrUsage)
}
