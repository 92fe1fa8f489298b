package execshell

import (
	"bufio"
	"bytes"
	"context"
	"errors"
	"fmt"
	"io"
	"os"
	"os/exec"
	"strings"

	"golang.org/x/sync/errgroup"
)

const (
	environmentAssignmentSeparatorConstant  = "="
	environmentAssignmentTemplateConstant   = "%s%s%s"
	standardOutputPipeErrorTemplateConstant = "unable to attach standard output: %w"
	standardErrorPipeErrorTemplateConstant  = "unable to attach standard error: %w"
	streamReadErrorTemplateConstant         = "unable to read process output: %w"
	lineScannerInitialBufferSizeConstant    = 64 * 1024
	lineScannerMaximumBufferSizeConstant    = 1024 * 1024
)

// OSCommandRunner executes commands using the operating system facilities.
type OSCommandRunner struct{}

// NewOSCommandRunner constructs a runner backed by os/exec.
func NewOSCommandRunner() *OSCommandRunner {
	return &OSCommandRunner{}
}

// Run executes the supplied command using os/exec and buffers both output streams.
func (runner *OSCommandRunner) Run(executionContext context.Context, command ShellCommand) (ExecutionResult, error) {
	executable := runner.buildExecutable(executionContext, command)

	var standardOutputBuffer bytes.Buffer
	var standardErrorBuffer bytes.Buffer
	executable.Stdout = &standardOutputBuffer
	executable.Stderr = &standardErrorBuffer

	runError := executable.Run()
	if runError != nil {
		exitError := &exec.ExitError{}
		if errors.As(runError, &exitError) {
			return ExecutionResult{
				StandardOutput: standardOutputBuffer.String(),
				StandardError:  standardErrorBuffer.String(),
				ExitCode:       exitError.ExitCode(),
			}, nil
		}
		return ExecutionResult{}, runError
	}

	return ExecutionResult{
		StandardOutput: standardOutputBuffer.String(),
		StandardError:  standardErrorBuffer.String(),
		ExitCode:       0,
	}, nil
}

// Stream executes the supplied command and forwards each output line to handler as it arrives.
// Both pipes are drained concurrently so a full pipe on one stream never blocks the other.
func (runner *OSCommandRunner) Stream(executionContext context.Context, command ShellCommand, handler LineHandler) (ExecutionResult, error) {
	executable := runner.buildExecutable(executionContext, command)

	standardOutputPipe, standardOutputPipeError := executable.StdoutPipe()
	if standardOutputPipeError != nil {
		return ExecutionResult{}, fmt.Errorf(standardOutputPipeErrorTemplateConstant, standardOutputPipeError)
	}
	standardErrorPipe, standardErrorPipeError := executable.StderrPipe()
	if standardErrorPipeError != nil {
		return ExecutionResult{}, fmt.Errorf(standardErrorPipeErrorTemplateConstant, standardErrorPipeError)
	}

	if startError := executable.Start(); startError != nil {
		return ExecutionResult{}, startError
	}

	outputLines := make(chan OutputLine)
	var readerGroup errgroup.Group
	readerGroup.Go(func() error {
		return scanOutputLines(standardOutputPipe, OutputStreamStandardOutput, outputLines)
	})
	readerGroup.Go(func() error {
		return scanOutputLines(standardErrorPipe, OutputStreamStandardError, outputLines)
	})

	var readersError error
	go func() {
		readersError = readerGroup.Wait()
		close(outputLines)
	}()

	var standardErrorBuilder strings.Builder
	for outputLine := range outputLines {
		if outputLine.Stream == OutputStreamStandardError {
			standardErrorBuilder.WriteString(outputLine.Text)
			standardErrorBuilder.WriteByte('\n')
		}
		if handler != nil {
			handler(outputLine)
		}
	}

	waitError := executable.Wait()
	if readersError != nil {
		return ExecutionResult{}, fmt.Errorf(streamReadErrorTemplateConstant, readersError)
	}
	if waitError != nil {
		exitError := &exec.ExitError{}
		if errors.As(waitError, &exitError) {
			return ExecutionResult{
				StandardError: standardErrorBuilder.String(),
				ExitCode:      exitError.ExitCode(),
			}, nil
		}
		return ExecutionResult{}, waitError
	}

	return ExecutionResult{StandardError: standardErrorBuilder.String(), ExitCode: 0}, nil
}

// RunAttached executes the supplied command with its standard streams connected to streams.
func (runner *OSCommandRunner) RunAttached(executionContext context.Context, command ShellCommand, streams AttachedStreams) (ExecutionResult, error) {
	executable := runner.buildExecutable(executionContext, command)
	executable.Stdin = streams.Input
	executable.Stdout = streams.Output
	executable.Stderr = streams.ErrorOutput

	runError := executable.Run()
	if runError != nil {
		exitError := &exec.ExitError{}
		if errors.As(runError, &exitError) {
			return ExecutionResult{ExitCode: exitError.ExitCode()}, nil
		}
		return ExecutionResult{}, runError
	}
	return ExecutionResult{ExitCode: 0}, nil
}

func (runner *OSCommandRunner) buildExecutable(executionContext context.Context, command ShellCommand) *exec.Cmd {
	commandArguments := append([]string{}, command.Details.Arguments...)
	executable := exec.CommandContext(executionContext, string(command.Name), commandArguments...)

	if len(command.Details.WorkingDirectory) > 0 {
		executable.Dir = command.Details.WorkingDirectory
	}

	if len(command.Details.EnvironmentVariables) > 0 {
		mergedEnvironment := append([]string{}, os.Environ()...)
		for environmentKey, environmentValue := range command.Details.EnvironmentVariables {
			mergedEnvironment = append(mergedEnvironment, fmt.Sprintf(environmentAssignmentTemplateConstant, environmentKey, environmentAssignmentSeparatorConstant, environmentValue))
		}
		executable.Env = mergedEnvironment
	}

	if len(command.Details.StandardInput) > 0 {
		executable.Stdin = bytes.NewReader(command.Details.StandardInput)
	}

	return executable
}

func scanOutputLines(reader io.Reader, stream OutputStream, outputLines chan<- OutputLine) error {
	scanner := bufio.NewScanner(reader)
	scanner.Buffer(make([]byte, 0, lineScannerInitialBufferSizeConstant), lineScannerMaximumBufferSizeConstant)
	for scanner.Scan() {
		outputLines <- OutputLine{Stream: stream, Text: scanner.Text()}
	}
	if scanError := scanner.Err(); scanError != nil {
		// keep draining so the child never blocks on a full pipe
		_, _ = io.Copy(io.Discard, reader)
		return scanError
	}
	return nil
}
