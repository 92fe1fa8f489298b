package repository

import (
	"errors"
	"fmt"
)

const (
	notAGitRepositoryMessageConstant       = "not a git repository"
	notAGitRepositoryErrorTemplateConstant = "%s: could not find .git/config in %s (or any of the parent directories)\nhint: %s"
	notAGitRepositoryHintConstant          = "run this command inside a git working tree or pass --cwd <repository>"
	malformedHeadErrorTemplateConstant     = "HEAD file %s is not valid UTF-8 text"
	gitExecutorMissingMessageConstant      = "git executor not configured"
	subcommandRequiredMessageConstant      = "git subcommand must be provided"
)

// ErrNotAGitRepository is matched by every discovery failure.
var ErrNotAGitRepository = errors.New(notAGitRepositoryMessageConstant)

// ErrGitExecutorNotConfigured indicates the git executor dependency was missing.
var ErrGitExecutorNotConfigured = errors.New(gitExecutorMissingMessageConstant)

// ErrSubcommandRequired indicates an empty git subcommand was requested.
var ErrSubcommandRequired = errors.New(subcommandRequiredMessageConstant)

// NotAGitRepositoryError reports that discovery reached the filesystem root without finding .git/config.
type NotAGitRepositoryError struct {
	StartDirectory string
	Hint           string
}

// Error describes the failed discovery with its hint.
func (discoveryError NotAGitRepositoryError) Error() string {
	return fmt.Sprintf(notAGitRepositoryErrorTemplateConstant, notAGitRepositoryMessageConstant, discoveryError.StartDirectory, discoveryError.Hint)
}

// Is matches ErrNotAGitRepository.
func (discoveryError NotAGitRepositoryError) Is(target error) bool {
	return target == ErrNotAGitRepository
}

// MalformedHeadError reports a HEAD file that cannot be read as text.
type MalformedHeadError struct {
	Path string
}

// Error describes the malformed HEAD file.
func (headError MalformedHeadError) Error() string {
	return fmt.Sprintf(malformedHeadErrorTemplateConstant, headError.Path)
}
