package execshell

import (
	"context"
	"io"
)

const (
	commandGitStringConstant = "git"
)

// CommandName identifies an executable supported by the shell executor.
type CommandName string

// CommandGit identifies the git executable.
const CommandGit CommandName = CommandName(commandGitStringConstant)

// CommandDetails describes the arguments and environment of a single invocation.
type CommandDetails struct {
	Arguments            []string
	WorkingDirectory     string
	EnvironmentVariables map[string]string
	StandardInput        []byte
}

// ShellCommand combines an executable name with invocation details.
type ShellCommand struct {
	Name    CommandName
	Details CommandDetails
}

// ExecutionResult captures the observable results of a finished process.
type ExecutionResult struct {
	StandardOutput string
	StandardError  string
	ExitCode       int
}

// OutputStream identifies the standard stream a line was read from.
type OutputStream int

// Supported output streams.
const (
	OutputStreamStandardOutput OutputStream = iota
	OutputStreamStandardError
)

// OutputLine is a single line produced by a streamed process.
type OutputLine struct {
	Stream OutputStream
	Text   string
}

// LineHandler receives streamed output lines in arrival order.
type LineHandler func(line OutputLine)

// CommandRunner executes a command and captures its output.
type CommandRunner interface {
	Run(executionContext context.Context, command ShellCommand) (ExecutionResult, error)
}

// StreamingCommandRunner executes a command and forwards output lines while the process runs.
// The returned result carries the exit code and the accumulated standard error; standard output
// is delivered only through the handler.
type StreamingCommandRunner interface {
	Stream(executionContext context.Context, command ShellCommand, handler LineHandler) (ExecutionResult, error)
}

// AttachedStreams binds a child process directly to caller-provided standard streams.
type AttachedStreams struct {
	Input       io.Reader
	Output      io.Writer
	ErrorOutput io.Writer
}

// AttachedCommandRunner executes a command whose standard streams are connected to the caller's.
// The returned result carries only the exit code.
type AttachedCommandRunner interface {
	RunAttached(executionContext context.Context, command ShellCommand, streams AttachedStreams) (ExecutionResult, error)
}
