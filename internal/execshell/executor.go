package execshell

import (
	"context"
	"errors"
	"fmt"
	"strings"

	"go.uber.org/zap"
)

const (
	loggerNotConfiguredMessageConstant          = "logger not configured"
	commandRunnerNotConfiguredMessageConstant   = "command runner not configured"
	streamingNotSupportedMessageConstant        = "command runner does not support streaming"
	attachedNotSupportedMessageConstant         = "command runner does not support attached execution"
	commandFailedErrorTemplateConstant          = "%s failed with exit code %d%s"
	commandExecutionErrorTemplateConstant       = "%s failed: %v"
	commandFailureStandardErrorTemplateConstant = ": %s"
	logFieldCommandConstant                     = "command"
	logFieldArgumentsConstant                   = "arguments"
	logFieldWorkingDirectoryConstant            = "working_directory"
	logFieldExitCodeConstant                    = "exit_code"
	logFieldStandardErrorConstant               = "stderr"
	commandArgumentsJoinSeparatorConstant       = " "
)

// ErrLoggerNotConfigured indicates a ShellExecutor was built without a logger.
var ErrLoggerNotConfigured = errors.New(loggerNotConfiguredMessageConstant)

// ErrCommandRunnerNotConfigured indicates a ShellExecutor was built without a runner.
var ErrCommandRunnerNotConfigured = errors.New(commandRunnerNotConfiguredMessageConstant)

// ErrStreamingNotSupported indicates the configured runner cannot stream output.
var ErrStreamingNotSupported = errors.New(streamingNotSupportedMessageConstant)

// ErrAttachedExecutionNotSupported indicates the configured runner cannot attach standard streams.
var ErrAttachedExecutionNotSupported = errors.New(attachedNotSupportedMessageConstant)

// CommandFailedError reports a command that ran to completion with a non-zero exit code.
type CommandFailedError struct {
	Command ShellCommand
	Result  ExecutionResult
}

// Error describes the failed command including its trimmed standard error.
func (failure CommandFailedError) Error() string {
	standardErrorSuffix := ""
	trimmedStandardError := strings.TrimSpace(failure.Result.StandardError)
	if len(trimmedStandardError) > 0 {
		standardErrorSuffix = fmt.Sprintf(commandFailureStandardErrorTemplateConstant, trimmedStandardError)
	}
	return fmt.Sprintf(commandFailedErrorTemplateConstant, describeCommand(failure.Command), failure.Result.ExitCode, standardErrorSuffix)
}

// CommandExecutionError reports a command that could not be run at all.
type CommandExecutionError struct {
	Command ShellCommand
	Cause   error
}

// Error describes the execution failure.
func (failure CommandExecutionError) Error() string {
	return fmt.Sprintf(commandExecutionErrorTemplateConstant, describeCommand(failure.Command), failure.Cause)
}

// Unwrap exposes the underlying cause.
func (failure CommandExecutionError) Unwrap() error {
	return failure.Cause
}

// ShellExecutor runs commands through a CommandRunner and records their lifecycle.
type ShellExecutor struct {
	logger    *zap.Logger
	runner    CommandRunner
	observer  CommandEventObserver
	formatter CommandMessageFormatter
}

// NewShellExecutor constructs a ShellExecutor that logs through the provided logger.
func NewShellExecutor(logger *zap.Logger, runner CommandRunner) (*ShellExecutor, error) {
	return NewShellExecutorWithObserver(logger, runner, nil)
}

// NewShellExecutorWithObserver constructs a ShellExecutor that also notifies observer of command events.
func NewShellExecutorWithObserver(logger *zap.Logger, runner CommandRunner, observer CommandEventObserver) (*ShellExecutor, error) {
	if logger == nil {
		return nil, ErrLoggerNotConfigured
	}
	if runner == nil {
		return nil, ErrCommandRunnerNotConfigured
	}
	if observer == nil {
		observer = noopCommandEventObserver{}
	}
	return &ShellExecutor{logger: logger, runner: runner, observer: observer, formatter: CommandMessageFormatter{}}, nil
}

// ExecuteGit runs git with the provided details and returns the captured output.
func (executor *ShellExecutor) ExecuteGit(executionContext context.Context, details CommandDetails) (ExecutionResult, error) {
	return executor.Execute(executionContext, ShellCommand{Name: CommandGit, Details: details})
}

// StreamGit runs git with the provided details, forwarding output lines to handler while the process runs.
func (executor *ShellExecutor) StreamGit(executionContext context.Context, details CommandDetails, handler LineHandler) error {
	return executor.Stream(executionContext, ShellCommand{Name: CommandGit, Details: details}, handler)
}

// RunGitAttached runs git with its standard streams connected to streams.
func (executor *ShellExecutor) RunGitAttached(executionContext context.Context, details CommandDetails, streams AttachedStreams) error {
	return executor.RunAttached(executionContext, ShellCommand{Name: CommandGit, Details: details}, streams)
}

// Execute runs an arbitrary command and converts non-zero exit codes into CommandFailedError.
func (executor *ShellExecutor) Execute(executionContext context.Context, command ShellCommand) (ExecutionResult, error) {
	executor.recordStart(command)

	executionResult, runError := executor.runner.Run(executionContext, command)
	if runError != nil {
		executor.recordExecutionFailure(command, runError)
		return ExecutionResult{}, CommandExecutionError{Command: command, Cause: runError}
	}

	if completionError := executor.recordCompletion(command, executionResult); completionError != nil {
		return ExecutionResult{}, completionError
	}
	return executionResult, nil
}

// Stream runs an arbitrary command through a streaming runner.
func (executor *ShellExecutor) Stream(executionContext context.Context, command ShellCommand, handler LineHandler) error {
	streamingRunner, supportsStreaming := executor.runner.(StreamingCommandRunner)
	if !supportsStreaming {
		return ErrStreamingNotSupported
	}

	executor.recordStart(command)

	executionResult, runError := streamingRunner.Stream(executionContext, command, handler)
	if runError != nil {
		executor.recordExecutionFailure(command, runError)
		return CommandExecutionError{Command: command, Cause: runError}
	}

	return executor.recordCompletion(command, executionResult)
}

// RunAttached runs an arbitrary command through an attached runner.
func (executor *ShellExecutor) RunAttached(executionContext context.Context, command ShellCommand, streams AttachedStreams) error {
	attachedRunner, supportsAttached := executor.runner.(AttachedCommandRunner)
	if !supportsAttached {
		return ErrAttachedExecutionNotSupported
	}

	executor.recordStart(command)

	executionResult, runError := attachedRunner.RunAttached(executionContext, command, streams)
	if runError != nil {
		executor.recordExecutionFailure(command, runError)
		return CommandExecutionError{Command: command, Cause: runError}
	}

	return executor.recordCompletion(command, executionResult)
}

func (executor *ShellExecutor) recordStart(command ShellCommand) {
	executor.observer.CommandStarted(command)
	executor.logger.Debug(
		executor.formatter.BuildStartedMessage(command),
		zap.String(logFieldCommandConstant, string(command.Name)),
		zap.Strings(logFieldArgumentsConstant, command.Details.Arguments),
		zap.String(logFieldWorkingDirectoryConstant, command.Details.WorkingDirectory),
	)
}

func (executor *ShellExecutor) recordExecutionFailure(command ShellCommand, failure error) {
	executor.observer.CommandExecutionFailed(command, failure)
	executor.logger.Error(
		executor.formatter.BuildExecutionFailureMessage(command, failure),
		zap.String(logFieldCommandConstant, string(command.Name)),
		zap.Error(failure),
	)
}

func (executor *ShellExecutor) recordCompletion(command ShellCommand, executionResult ExecutionResult) error {
	executor.observer.CommandCompleted(command, executionResult)
	if executionResult.ExitCode != 0 {
		executor.logger.Debug(
			executor.formatter.BuildFailureMessage(command, executionResult),
			zap.String(logFieldCommandConstant, string(command.Name)),
			zap.Int(logFieldExitCodeConstant, executionResult.ExitCode),
			zap.String(logFieldStandardErrorConstant, strings.TrimSpace(executionResult.StandardError)),
		)
		return CommandFailedError{Command: command, Result: executionResult}
	}

	executor.logger.Debug(
		executor.formatter.BuildSuccessMessage(command),
		zap.String(logFieldCommandConstant, string(command.Name)),
	)
	return nil
}

func describeCommand(command ShellCommand) string {
	if len(command.Details.Arguments) == 0 {
		return string(command.Name)
	}
	return string(command.Name) + commandArgumentsJoinSeparatorConstant + strings.Join(command.Details.Arguments, commandArgumentsJoinSeparatorConstant)
}
