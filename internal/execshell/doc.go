// Package execshell provides structured helpers for invoking the git executable.
//
// It wraps os/exec with logging via ShellExecutor, exposes OSCommandRunner for
// captured and streamed process execution, and defines the CommandRunner
// abstractions used throughout gitutils to run git in a testable manner.
package execshell
