package shared

import (
	"context"
	"io/fs"

	"github.com/temirov/gitutils/internal/execshell"
)

const (
	// OriginRemoteNameConstant identifies the conventional primary remote.
	OriginRemoteNameConstant = "origin"
	// DefaultTrunkBranchNameConstant identifies the branch synchronized without an explicit refspec.
	DefaultTrunkBranchNameConstant = "master"
)

// FileSystem exposes the filesystem operations used by gitutils services.
type FileSystem interface {
	Stat(path string) (fs.FileInfo, error)
	Abs(path string) (string, error)
	MkdirAll(path string, permissions fs.FileMode) error
	ReadFile(path string) ([]byte, error)
	WriteFile(path string, data []byte, permissions fs.FileMode) error
}

// ConfirmationPrompter collects user confirmations prior to mutating actions.
type ConfirmationPrompter interface {
	Confirm(prompt string) (bool, error)
}

// GitExecutor exposes the subset of shell execution used by repository services.
type GitExecutor interface {
	ExecuteGit(executionContext context.Context, details execshell.CommandDetails) (execshell.ExecutionResult, error)
	StreamGit(executionContext context.Context, details execshell.CommandDetails, handler execshell.LineHandler) error
}

// AttachedGitRunner runs git with its standard streams connected to the caller's.
type AttachedGitRunner interface {
	RunGitAttached(executionContext context.Context, details execshell.CommandDetails, streams execshell.AttachedStreams) error
}
