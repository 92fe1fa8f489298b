package repository

import (
	"context"
	"fmt"
	"strings"

	"github.com/temirov/gitutils/internal/dependencies"
	"github.com/temirov/gitutils/internal/execshell"
	"github.com/temirov/gitutils/internal/gitconfig"
	"github.com/temirov/gitutils/internal/shared"
)

const (
	configurationLoadErrorTemplateConstant = "unable to load repository configuration: %w"
	headResolutionErrorTemplateConstant    = "unable to resolve HEAD: %w"
	carriageReturnClearLineConstant        = "\r\x1b[K"
)

// Dependencies enumerates collaborators required by a Repository.
type Dependencies struct {
	FileSystem  shared.FileSystem
	GitExecutor shared.GitExecutor
}

// Repository is the discovered repository context for one invocation.
type Repository struct {
	root        string
	config      *gitconfig.ConfigStore
	head        Head
	rawHead     string
	gitExecutor shared.GitExecutor
}

// New discovers the repository enclosing startDirectory and loads its configuration and HEAD.
func New(startDirectory string, repositoryDependencies Dependencies) (*Repository, error) {
	if repositoryDependencies.GitExecutor == nil {
		return nil, ErrGitExecutorNotConfigured
	}
	fileSystem := dependencies.ResolveFileSystem(repositoryDependencies.FileSystem)

	rootDirectory, configPath, discoveryError := discover(fileSystem, startDirectory)
	if discoveryError != nil {
		return nil, discoveryError
	}

	configContent, readError := fileSystem.ReadFile(configPath)
	if readError != nil {
		return nil, fmt.Errorf(configurationLoadErrorTemplateConstant, gitconfig.ConfigReadError{Path: configPath, Cause: readError})
	}
	configStore := gitconfig.ParseConfiguration(configPath, string(configContent))

	head, rawHead, headError := resolveHead(fileSystem, rootDirectory)
	if headError != nil {
		return nil, fmt.Errorf(headResolutionErrorTemplateConstant, headError)
	}

	return &Repository{
		root:        rootDirectory,
		config:      configStore,
		head:        head,
		rawHead:     rawHead,
		gitExecutor: repositoryDependencies.GitExecutor,
	}, nil
}

// Root returns the directory containing .git.
func (repository *Repository) Root() string {
	return repository.root
}

// Config returns the parsed repository configuration.
func (repository *Repository) Config() *gitconfig.ConfigStore {
	return repository.config
}

// Head returns the classified HEAD.
func (repository *Repository) Head() Head {
	return repository.head
}

// RawHead returns the trimmed HEAD file content.
func (repository *Repository) RawHead() string {
	return repository.rawHead
}

// ExecuteCapture runs git with the working directory pinned to the repository root and returns standard output.
// A non-zero exit surfaces as execshell.CommandFailedError carrying the exit code and standard error.
func (repository *Repository) ExecuteCapture(executionContext context.Context, subcommand string, arguments ...string) (string, error) {
	details, detailsError := repository.buildDetails(subcommand, arguments)
	if detailsError != nil {
		return "", detailsError
	}

	executionResult, executionError := repository.gitExecutor.ExecuteGit(executionContext, details)
	if executionError != nil {
		return "", executionError
	}
	return executionResult.StandardOutput, nil
}

// ExecuteStream runs git pinned to the repository root and forwards each output line to handler as it arrives.
func (repository *Repository) ExecuteStream(executionContext context.Context, handler execshell.LineHandler, subcommand string, arguments ...string) error {
	details, detailsError := repository.buildDetails(subcommand, arguments)
	if detailsError != nil {
		return detailsError
	}

	return repository.gitExecutor.StreamGit(executionContext, details, func(line execshell.OutputLine) {
		if handler == nil {
			return
		}
		line.Text = strings.ReplaceAll(line.Text, carriageReturnClearLineConstant, "")
		handler(line)
	})
}

func (repository *Repository) buildDetails(subcommand string, arguments []string) (execshell.CommandDetails, error) {
	trimmedSubcommand := strings.TrimSpace(subcommand)
	if len(trimmedSubcommand) == 0 {
		return execshell.CommandDetails{}, ErrSubcommandRequired
	}
	commandArguments := make([]string, 0, len(arguments)+1)
	commandArguments = append(commandArguments, trimmedSubcommand)
	commandArguments = append(commandArguments, arguments...)
	return execshell.CommandDetails{Arguments: commandArguments, WorkingDirectory: repository.root}, nil
}
