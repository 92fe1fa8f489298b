package syncplan

import (
	"errors"
	"fmt"
	"strings"

	"github.com/temirov/gitutils/internal/gitconfig"
)

const (
	fromKeywordConstant                 = "from"
	toKeywordConstant                   = "to"
	remoteBranchSeparatorConstant       = ":"
	remoteReferenceSeparatorConstant    = "/"
	gitExecutableLabelConstant          = "git"
	stepLabelSeparatorConstant          = " "
	gitFetchSubcommandConstant          = "fetch"
	gitCheckoutSubcommandConstant       = "checkout"
	gitRebaseSubcommandConstant         = "rebase"
	gitPushSubcommandConstant           = "push"
	usageMessageConstant                = "usage: sync from <remote[:branch]> [to <remote>]"
	sameRemoteMessageConstant           = "both remotes are the same"
	remoteNotFoundErrorTemplateConstant = "remote '%s' not found\nRun git remote add %s <url> to add the remote"
	branchRequiredMessageConstant       = "branch name must be provided"
)

// ErrUsage indicates the sync arguments do not follow the from/to grammar.
var ErrUsage = errors.New(usageMessageConstant)

// ErrSameRemote indicates the source and target remotes are identical.
var ErrSameRemote = errors.New(sameRemoteMessageConstant)

// ErrBranchRequired indicates neither the request nor HEAD supplied a branch.
var ErrBranchRequired = errors.New(branchRequiredMessageConstant)

// RemoteNotFoundError reports a remote missing from the repository configuration.
type RemoteNotFoundError struct {
	Name string
}

// Error describes the missing remote and how to add it.
func (notFound RemoteNotFoundError) Error() string {
	return fmt.Sprintf(remoteNotFoundErrorTemplateConstant, notFound.Name, notFound.Name)
}

// Request is a validated sync invocation.
type Request struct {
	SourceRemote string
	SourceBranch string
	TargetRemote string
}

// Step is a single git invocation of a plan.
type Step struct {
	Subcommand string
	Arguments  []string
}

// String renders the step the way it would be typed on a shell.
func (step Step) String() string {
	fields := append([]string{gitExecutableLabelConstant, step.Subcommand}, step.Arguments...)
	return strings.Join(fields, stepLabelSeparatorConstant)
}

// Plan is the ordered list of steps a sync performs.
type Plan struct {
	Branch string
	Steps  []Step
}

// ParseArguments validates "from <remote[:branch]> [to <remote>]".
func ParseArguments(arguments []string) (Request, error) {
	if len(arguments) < 2 || arguments[0] != fromKeywordConstant {
		return Request{}, ErrUsage
	}
	if len(arguments) > 2 && (arguments[2] != toKeywordConstant || len(arguments) != 4) {
		return Request{}, ErrUsage
	}

	sourceRemote, sourceBranch, _ := strings.Cut(arguments[1], remoteBranchSeparatorConstant)
	request := Request{
		SourceRemote: strings.TrimSpace(sourceRemote),
		SourceBranch: strings.TrimSpace(sourceBranch),
	}
	if len(request.SourceRemote) == 0 {
		return Request{}, ErrUsage
	}

	if len(arguments) == 4 {
		request.TargetRemote = strings.TrimSpace(arguments[3])
		if len(request.TargetRemote) == 0 {
			return Request{}, ErrUsage
		}
		if request.TargetRemote == request.SourceRemote {
			return Request{}, ErrSameRemote
		}
	}

	return request, nil
}

// BuildPlan produces the steps for request. The branch defaults to currentBranch; the trunk branch
// is fetched with the remote's default refspec and needs no checkout. A nil remotes slice skips
// remote validation.
func BuildPlan(request Request, currentBranch string, trunkBranch string, remotes []gitconfig.Remote) (Plan, error) {
	branch := strings.TrimSpace(currentBranch)
	if len(request.SourceBranch) > 0 {
		branch = request.SourceBranch
	}
	if len(branch) == 0 {
		return Plan{}, ErrBranchRequired
	}

	if remotes != nil {
		for _, remoteName := range []string{request.SourceRemote, request.TargetRemote} {
			if len(remoteName) == 0 {
				continue
			}
			if !containsRemote(remotes, remoteName) {
				return Plan{}, RemoteNotFoundError{Name: remoteName}
			}
		}
	}

	steps := make([]Step, 0, 4)
	if branch == trunkBranch {
		steps = append(steps, Step{Subcommand: gitFetchSubcommandConstant, Arguments: []string{request.SourceRemote}})
	} else {
		steps = append(steps,
			Step{Subcommand: gitFetchSubcommandConstant, Arguments: []string{request.SourceRemote, branch}},
			Step{Subcommand: gitCheckoutSubcommandConstant, Arguments: []string{branch}},
		)
	}
	steps = append(steps, Step{Subcommand: gitRebaseSubcommandConstant, Arguments: []string{request.SourceRemote + remoteReferenceSeparatorConstant + branch}})
	if len(request.TargetRemote) > 0 {
		steps = append(steps, Step{Subcommand: gitPushSubcommandConstant, Arguments: []string{request.TargetRemote, branch}})
	}

	return Plan{Branch: branch, Steps: steps}, nil
}

func containsRemote(remotes []gitconfig.Remote, remoteName string) bool {
	for _, remote := range remotes {
		if remote.Name == remoteName {
			return true
		}
	}
	return false
}
