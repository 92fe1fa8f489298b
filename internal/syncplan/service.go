package syncplan

import (
	"context"
	"errors"
	"fmt"
	"io"
	"strings"

	"go.uber.org/zap"

	"github.com/temirov/gitutils/internal/execshell"
	"github.com/temirov/gitutils/internal/gitconfig"
	"github.com/temirov/gitutils/internal/repository"
	"github.com/temirov/gitutils/internal/shared"
	"github.com/temirov/gitutils/internal/ui"
)

const (
	repositoryMissingMessageConstant  = "repository not configured"
	prompterMissingMessageConstant    = "confirmation prompter not configured"
	syncAbortedMessageConstant        = "aborted"
	detachedHeadErrorTemplateConstant = "you are in a detached HEAD state at commit %s"
	stepFailureErrorTemplateConstant  = "%s: %w"
	confirmationErrorTemplateConstant = "unable to read confirmation: %w"
	planHeaderMessageConstant         = "Will execute the following commands:"
	planStepPrefixConstant            = "  - "
	confirmationPromptConstant        = "Do you want to continue?"
	executingMessageConstant          = "Executing commands..."
	completedMessageConstant          = "Done"
	planPreparedLogMessageConstant    = "sync plan prepared"
	logFieldBranchConstant            = "branch"
	logFieldSourceRemoteConstant      = "source_remote"
	logFieldTargetRemoteConstant      = "target_remote"
	logFieldStepCountConstant         = "step_count"
	lineTerminatorConstant            = "\n"
)

// ErrRepositoryNotConfigured indicates the service was built without a repository.
var ErrRepositoryNotConfigured = errors.New(repositoryMissingMessageConstant)

// ErrPrompterNotConfigured indicates the service was built without a confirmation prompter.
var ErrPrompterNotConfigured = errors.New(prompterMissingMessageConstant)

// ErrSyncAborted indicates the user declined the plan.
var ErrSyncAborted = errors.New(syncAbortedMessageConstant)

// DetachedHeadError reports that HEAD points at a commit rather than a branch.
type DetachedHeadError struct {
	CommitHash string
}

// Error describes the detached commit.
func (detached DetachedHeadError) Error() string {
	return fmt.Sprintf(detachedHeadErrorTemplateConstant, detached.CommitHash)
}

// Repository is the repository context the service synchronizes.
type Repository interface {
	Head() repository.Head
	Config() *gitconfig.ConfigStore
	ExecuteStream(executionContext context.Context, handler execshell.LineHandler, subcommand string, arguments ...string) error
}

// ServiceDependencies enumerates collaborators required by the service.
type ServiceDependencies struct {
	Repository   Repository
	Prompter     shared.ConfirmationPrompter
	Output       io.Writer
	ColorEnabled bool
	Logger       *zap.Logger
}

// Options configure a sync operation.
type Options struct {
	Request     Request
	TrunkBranch string
}

// Result captures the outcome of a sync.
type Result struct {
	Plan          Plan
	ExecutedSteps int
}

// Service plans and executes syncs for one repository.
type Service struct {
	repository  Repository
	prompter    shared.ConfirmationPrompter
	output      io.Writer
	palette     ui.Palette
	childOutput *ui.ChildOutputPrinter
	logger      *zap.Logger
}

// NewService constructs a Service from the provided dependencies.
func NewService(dependencies ServiceDependencies) (*Service, error) {
	if dependencies.Repository == nil {
		return nil, ErrRepositoryNotConfigured
	}
	if dependencies.Prompter == nil {
		return nil, ErrPrompterNotConfigured
	}
	output := dependencies.Output
	if output == nil {
		output = io.Discard
	}
	logger := dependencies.Logger
	if logger == nil {
		logger = zap.NewNop()
	}
	return &Service{
		repository:  dependencies.Repository,
		prompter:    dependencies.Prompter,
		output:      output,
		palette:     ui.NewPalette(dependencies.ColorEnabled),
		childOutput: ui.NewChildOutputPrinter(output, dependencies.ColorEnabled),
		logger:      logger,
	}, nil
}

// Sync prints the plan for options, asks for confirmation, then streams every step.
// Execution stops at the first failing step.
func (service *Service) Sync(executionContext context.Context, options Options) (Result, error) {
	head := service.repository.Head()
	currentBranch, onBranch := head.BranchName()
	if !onBranch {
		commitHash, _ := head.CommitHash()
		return Result{}, DetachedHeadError{CommitHash: commitHash}
	}

	trunkBranch := strings.TrimSpace(options.TrunkBranch)
	if len(trunkBranch) == 0 {
		trunkBranch = shared.DefaultTrunkBranchNameConstant
	}

	plan, planError := BuildPlan(options.Request, currentBranch, trunkBranch, service.repository.Config().Remotes())
	if planError != nil {
		return Result{}, planError
	}

	service.logger.Info(
		planPreparedLogMessageConstant,
		zap.String(logFieldBranchConstant, plan.Branch),
		zap.String(logFieldSourceRemoteConstant, options.Request.SourceRemote),
		zap.String(logFieldTargetRemoteConstant, options.Request.TargetRemote),
		zap.Int(logFieldStepCountConstant, len(plan.Steps)),
	)

	service.printPlan(plan)

	confirmed, confirmationError := service.prompter.Confirm(confirmationPromptConstant)
	if confirmationError != nil {
		return Result{Plan: plan}, fmt.Errorf(confirmationErrorTemplateConstant, confirmationError)
	}
	if !confirmed {
		return Result{Plan: plan}, ErrSyncAborted
	}

	fmt.Fprint(service.output, lineTerminatorConstant+service.palette.Label.Sprint(executingMessageConstant)+lineTerminatorConstant+lineTerminatorConstant)

	executedSteps := 0
	for _, step := range plan.Steps {
		stepLabel := step.String()
		stepError := service.childOutput.Frame(stepLabel, func(handler execshell.LineHandler) error {
			return service.repository.ExecuteStream(executionContext, handler, step.Subcommand, step.Arguments...)
		})
		if stepError != nil {
			return Result{Plan: plan, ExecutedSteps: executedSteps}, fmt.Errorf(stepFailureErrorTemplateConstant, stepLabel, stepError)
		}
		executedSteps++
	}

	fmt.Fprint(service.output, lineTerminatorConstant+service.palette.Success.Sprint(completedMessageConstant)+lineTerminatorConstant)
	return Result{Plan: plan, ExecutedSteps: executedSteps}, nil
}

func (service *Service) printPlan(plan Plan) {
	fmt.Fprint(service.output, planHeaderMessageConstant+lineTerminatorConstant+lineTerminatorConstant)
	for _, step := range plan.Steps {
		fmt.Fprint(service.output, service.palette.Success.Sprint(planStepPrefixConstant)+step.String()+lineTerminatorConstant)
	}
	fmt.Fprint(service.output, lineTerminatorConstant)
}
