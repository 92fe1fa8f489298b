package execshell_test

import (
	"bytes"
	"context"
	"fmt"
	"os"
	"os/exec"
	"path/filepath"
	"strings"
	"testing"
	"time"

	"github.com/stretchr/testify/require"

	"github.com/temirov/gitutils/internal/execshell"
)

const (
	testGitExecutableNameConstant        = "git"
	testGitVersionPrefixConstant         = "git version"
	testUnknownSubcommandConstant        = "definitely-not-a-git-subcommand"
	testMissingBinaryNameConstant        = "gitutils-missing-binary"
	testGitMissingSkipTemplateConstant   = "git executable not available: %v"
	testShellExecutableNameConstant      = "sh"
	testShellMissingSkipTemplateConstant = "sh executable not available: %v"
	testFloodLineCountConstant           = 4000
	testFloodScriptConstant              = `i=0; while [ $i -lt 4000 ]; do echo "stderr line $i padded to make the pipe fill up quickly" >&2; i=$((i+1)); done; i=0; while [ $i -lt 4000 ]; do echo "stdout line $i"; i=$((i+1)); done`
	testHandshakeScriptConstant          = `echo started; while [ ! -f "$GITUTILS_TEST_MARKER" ]; do sleep 0.05; done; echo finished`
	testStreamTimeoutConstant            = 30 * time.Second
)

func requireShellExecutable(testInstance *testing.T) {
	testInstance.Helper()
	if _, lookupError := exec.LookPath(testShellExecutableNameConstant); lookupError != nil {
		testInstance.Skipf(testShellMissingSkipTemplateConstant, lookupError)
	}
}

func requireGitExecutable(testInstance *testing.T) {
	testInstance.Helper()
	if _, lookupError := exec.LookPath(testGitExecutableNameConstant); lookupError != nil {
		testInstance.Skipf(testGitMissingSkipTemplateConstant, lookupError)
	}
}

func TestOSCommandRunnerRunCapturesOutput(testInstance *testing.T) {
	requireGitExecutable(testInstance)
	runner := execshell.NewOSCommandRunner()

	executionResult, runError := runner.Run(context.Background(), execshell.ShellCommand{
		Name:    execshell.CommandGit,
		Details: execshell.CommandDetails{Arguments: []string{testCommandArgumentConstant}},
	})

	require.NoError(testInstance, runError)
	require.Equal(testInstance, 0, executionResult.ExitCode)
	require.True(testInstance, strings.HasPrefix(executionResult.StandardOutput, testGitVersionPrefixConstant))
}

func TestOSCommandRunnerRunReportsExitCode(testInstance *testing.T) {
	requireGitExecutable(testInstance)
	runner := execshell.NewOSCommandRunner()

	executionResult, runError := runner.Run(context.Background(), execshell.ShellCommand{
		Name:    execshell.CommandGit,
		Details: execshell.CommandDetails{Arguments: []string{testUnknownSubcommandConstant}},
	})

	require.NoError(testInstance, runError)
	require.NotZero(testInstance, executionResult.ExitCode)
	require.NotEmpty(testInstance, executionResult.StandardError)
}

func TestOSCommandRunnerRunMissingBinary(testInstance *testing.T) {
	runner := execshell.NewOSCommandRunner()

	_, runError := runner.Run(context.Background(), execshell.ShellCommand{Name: execshell.CommandName(testMissingBinaryNameConstant)})

	require.Error(testInstance, runError)
}

func TestOSCommandRunnerStreamForwardsBothStreams(testInstance *testing.T) {
	requireGitExecutable(testInstance)
	runner := execshell.NewOSCommandRunner()

	receivedLines := []execshell.OutputLine{}
	executionResult, streamError := runner.Stream(context.Background(), execshell.ShellCommand{
		Name:    execshell.CommandGit,
		Details: execshell.CommandDetails{Arguments: []string{testCommandArgumentConstant}},
	}, func(line execshell.OutputLine) {
		receivedLines = append(receivedLines, line)
	})

	require.NoError(testInstance, streamError)
	require.Equal(testInstance, 0, executionResult.ExitCode)
	require.NotEmpty(testInstance, receivedLines)
	require.Equal(testInstance, execshell.OutputStreamStandardOutput, receivedLines[0].Stream)
	require.True(testInstance, strings.HasPrefix(receivedLines[0].Text, testGitVersionPrefixConstant))

	failureLines := []execshell.OutputLine{}
	failureResult, failureError := runner.Stream(context.Background(), execshell.ShellCommand{
		Name:    execshell.CommandGit,
		Details: execshell.CommandDetails{Arguments: []string{testUnknownSubcommandConstant}},
	}, func(line execshell.OutputLine) {
		failureLines = append(failureLines, line)
	})

	require.NoError(testInstance, failureError)
	require.NotZero(testInstance, failureResult.ExitCode)
	require.NotEmpty(testInstance, failureResult.StandardError)
	require.NotEmpty(testInstance, failureLines)
	require.Equal(testInstance, execshell.OutputStreamStandardError, failureLines[0].Stream)
}

func TestOSCommandRunnerRunAttachedUsesProvidedStreams(testInstance *testing.T) {
	requireGitExecutable(testInstance)
	runner := execshell.NewOSCommandRunner()

	var outputBuffer bytes.Buffer
	var errorBuffer bytes.Buffer
	executionResult, runError := runner.RunAttached(context.Background(), execshell.ShellCommand{
		Name:    execshell.CommandGit,
		Details: execshell.CommandDetails{Arguments: []string{testCommandArgumentConstant}},
	}, execshell.AttachedStreams{Output: &outputBuffer, ErrorOutput: &errorBuffer})

	require.NoError(testInstance, runError)
	require.Equal(testInstance, 0, executionResult.ExitCode)
	require.True(testInstance, strings.HasPrefix(outputBuffer.String(), testGitVersionPrefixConstant))
	require.Empty(testInstance, errorBuffer.String())
}

func TestOSCommandRunnerStreamDrainsLargeStandardErrorBeforeStandardOutput(testInstance *testing.T) {
	requireShellExecutable(testInstance)
	runner := execshell.NewOSCommandRunner()

	executionContext, cancel := context.WithTimeout(context.Background(), testStreamTimeoutConstant)
	defer cancel()

	standardOutputLines := []string{}
	standardErrorLines := []string{}
	executionResult, streamError := runner.Stream(executionContext, execshell.ShellCommand{
		Name:    execshell.CommandName(testShellExecutableNameConstant),
		Details: execshell.CommandDetails{Arguments: []string{"-c", testFloodScriptConstant}},
	}, func(line execshell.OutputLine) {
		if line.Stream == execshell.OutputStreamStandardError {
			standardErrorLines = append(standardErrorLines, line.Text)
			return
		}
		standardOutputLines = append(standardOutputLines, line.Text)
	})

	require.NoError(testInstance, streamError)
	require.NoError(testInstance, executionContext.Err())
	require.Equal(testInstance, 0, executionResult.ExitCode)
	require.Len(testInstance, standardErrorLines, testFloodLineCountConstant)
	require.Len(testInstance, standardOutputLines, testFloodLineCountConstant)
	for lineIndex := 0; lineIndex < testFloodLineCountConstant; lineIndex++ {
		require.Equal(testInstance, fmt.Sprintf("stderr line %d padded to make the pipe fill up quickly", lineIndex), standardErrorLines[lineIndex])
		require.Equal(testInstance, fmt.Sprintf("stdout line %d", lineIndex), standardOutputLines[lineIndex])
	}
	require.Greater(testInstance, len(executionResult.StandardError), 64*1024)
}

func TestOSCommandRunnerStreamDeliversLinesWhileProcessRuns(testInstance *testing.T) {
	requireShellExecutable(testInstance)
	runner := execshell.NewOSCommandRunner()
	markerPath := filepath.Join(testInstance.TempDir(), "received")

	executionContext, cancel := context.WithTimeout(context.Background(), testStreamTimeoutConstant)
	defer cancel()

	receivedLines := []string{}
	executionResult, streamError := runner.Stream(executionContext, execshell.ShellCommand{
		Name: execshell.CommandName(testShellExecutableNameConstant),
		Details: execshell.CommandDetails{
			Arguments:            []string{"-c", testHandshakeScriptConstant},
			EnvironmentVariables: map[string]string{"GITUTILS_TEST_MARKER": markerPath},
		},
	}, func(line execshell.OutputLine) {
		receivedLines = append(receivedLines, line.Text)
		if line.Text == "started" {
			require.NoError(testInstance, os.WriteFile(markerPath, nil, 0o600))
		}
	})

	require.NoError(testInstance, streamError)
	require.NoError(testInstance, executionContext.Err())
	require.Equal(testInstance, 0, executionResult.ExitCode)
	require.Equal(testInstance, []string{"started", "finished"}, receivedLines)
}
