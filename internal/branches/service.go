package branches

import (
	"context"
	"errors"
	"fmt"
	"strings"

	"go.uber.org/zap"

	"github.com/temirov/gitutils/internal/shared"
)

const (
	repositoryMissingMessageConstant    = "repository not configured"
	prompterMissingMessageConstant      = "confirmation prompter not configured"
	branchNameRequiredMessageConstant   = "branch name must be provided"
	badUsageMessageConstant             = "bad usage: branch names cannot start with '-'\nTry gitutils br --help for more information"
	branchNotFoundErrorTemplateConstant = "branch %s does not exist"
	branchListingErrorTemplateConstant  = "unable to list branches: %w"
	branchCreationErrorTemplateConstant = "unable to create branch %s: %w"
	confirmationErrorTemplateConstant   = "unable to read confirmation: %w"
	createBranchPromptTemplateConstant  = "Create a new branch '%s'?"
	branchFlagPrefixConstant            = "-"
	gitBranchSubcommandConstant         = "branch"
	gitBranchAllFlagConstant            = "--all"
	gitBranchNoColorFlagConstant        = "--no-color"
	gitBranchDeleteFlagConstant         = "-d"
	gitCheckoutSubcommandConstant       = "checkout"
	gitCheckoutCreateFlagConstant       = "-b"
	checkoutFallbackLogMessageConstant  = "checkout failed, offering branch creation"
	logFieldBranchConstant              = "branch"
)

// ErrRepositoryNotConfigured indicates the service was built without a repository.
var ErrRepositoryNotConfigured = errors.New(repositoryMissingMessageConstant)

// ErrPrompterNotConfigured indicates the service was built without a confirmation prompter.
var ErrPrompterNotConfigured = errors.New(prompterMissingMessageConstant)

// ErrBranchNameRequired indicates an empty branch name.
var ErrBranchNameRequired = errors.New(branchNameRequiredMessageConstant)

// ErrBadUsage indicates a flag-like value was supplied where a branch name was expected.
var ErrBadUsage = errors.New(badUsageMessageConstant)

// BranchNotFoundError reports a branch that could not be deleted.
type BranchNotFoundError struct {
	Name  string
	Cause error
}

// Error describes the missing branch.
func (notFound BranchNotFoundError) Error() string {
	return fmt.Sprintf(branchNotFoundErrorTemplateConstant, notFound.Name)
}

// Unwrap exposes the git failure.
func (notFound BranchNotFoundError) Unwrap() error {
	return notFound.Cause
}

// Repository is the repository context branch operations run against.
type Repository interface {
	ExecuteCapture(executionContext context.Context, subcommand string, arguments ...string) (string, error)
}

// ServiceDependencies enumerates collaborators required by the service.
type ServiceDependencies struct {
	Repository Repository
	Prompter   shared.ConfirmationPrompter
	Logger     *zap.Logger
}

// CheckoutOptions configure a checkout.
type CheckoutOptions struct {
	BranchName      string
	CreateIfMissing bool
}

// CheckoutResult captures the outcome of a checkout.
type CheckoutResult struct {
	BranchName string
	Created    bool
	Declined   bool
	Output     string
}

// Service runs branch operations for one repository.
type Service struct {
	repository Repository
	prompter   shared.ConfirmationPrompter
	logger     *zap.Logger
}

// NewService constructs a Service from the provided dependencies.
func NewService(dependencies ServiceDependencies) (*Service, error) {
	if dependencies.Repository == nil {
		return nil, ErrRepositoryNotConfigured
	}
	if dependencies.Prompter == nil {
		return nil, ErrPrompterNotConfigured
	}
	logger := dependencies.Logger
	if logger == nil {
		logger = zap.NewNop()
	}
	return &Service{repository: dependencies.Repository, prompter: dependencies.Prompter, logger: logger}, nil
}

// ValidateBranchName rejects empty names and names that look like flags.
func ValidateBranchName(branchName string) (string, error) {
	trimmedBranchName := strings.TrimSpace(branchName)
	if len(trimmedBranchName) == 0 {
		return "", ErrBranchNameRequired
	}
	if strings.HasPrefix(trimmedBranchName, branchFlagPrefixConstant) {
		return "", ErrBadUsage
	}
	return trimmedBranchName, nil
}

// List returns local and remote-tracking branches.
func (service *Service) List(executionContext context.Context) (Listing, error) {
	output, listError := service.repository.ExecuteCapture(executionContext, gitBranchSubcommandConstant, gitBranchAllFlagConstant, gitBranchNoColorFlagConstant)
	if listError != nil {
		return Listing{}, fmt.Errorf(branchListingErrorTemplateConstant, listError)
	}
	return ParseListing(output), nil
}

// Checkout switches to the requested branch. When the switch fails the branch is created,
// either directly when CreateIfMissing is set or after confirmation.
func (service *Service) Checkout(executionContext context.Context, options CheckoutOptions) (CheckoutResult, error) {
	branchName, validationError := ValidateBranchName(options.BranchName)
	if validationError != nil {
		return CheckoutResult{}, validationError
	}

	output, checkoutError := service.repository.ExecuteCapture(executionContext, gitCheckoutSubcommandConstant, branchName)
	if checkoutError == nil {
		return CheckoutResult{BranchName: branchName, Output: strings.TrimSpace(output)}, nil
	}

	service.logger.Debug(checkoutFallbackLogMessageConstant, zap.String(logFieldBranchConstant, branchName), zap.Error(checkoutError))

	if !options.CreateIfMissing {
		confirmed, confirmationError := service.prompter.Confirm(fmt.Sprintf(createBranchPromptTemplateConstant, branchName))
		if confirmationError != nil {
			return CheckoutResult{}, fmt.Errorf(confirmationErrorTemplateConstant, confirmationError)
		}
		if !confirmed {
			return CheckoutResult{BranchName: branchName, Declined: true}, nil
		}
	}

	creationOutput, creationError := service.repository.ExecuteCapture(executionContext, gitCheckoutSubcommandConstant, gitCheckoutCreateFlagConstant, branchName)
	if creationError != nil {
		return CheckoutResult{}, fmt.Errorf(branchCreationErrorTemplateConstant, branchName, creationError)
	}
	return CheckoutResult{BranchName: branchName, Created: true, Output: strings.TrimSpace(creationOutput)}, nil
}

// Delete removes a fully merged local branch.
func (service *Service) Delete(executionContext context.Context, branchName string) (string, error) {
	validatedBranchName, validationError := ValidateBranchName(branchName)
	if validationError != nil {
		return "", validationError
	}

	output, deleteError := service.repository.ExecuteCapture(executionContext, gitBranchSubcommandConstant, gitBranchDeleteFlagConstant, validatedBranchName)
	if deleteError != nil {
		return "", BranchNotFoundError{Name: validatedBranchName, Cause: deleteError}
	}
	return strings.TrimSpace(output), nil
}
