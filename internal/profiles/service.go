package profiles

import (
	"context"
	"errors"
	"fmt"
	"math/rand/v2"
	"strings"

	"go.uber.org/zap"

	"github.com/temirov/gitutils/internal/execshell"
	"github.com/temirov/gitutils/internal/shared"
)

const (
	storeMissingMessageConstant           = "profiles store not configured"
	gitExecutorMissingMessageConstant     = "git executor not configured"
	noActiveProfileMessageConstant        = "no active profile set\nUse gitutils usr add to create a new profile and then gitutils usr set to activate it"
	nameRequiredMessageConstant           = "name is required"
	emailRequiredMessageConstant          = "email is required"
	profileNotFoundErrorTemplateConstant  = "profile %s not found\nTry gitutils usr list to see all profiles"
	duplicateProfileErrorTemplateConstant = "profile %s already exists"
	gitConfigurationErrorTemplateConstant = "unable to update git configuration %s: %w"
	activeProfileKeyConstant              = "gusr.active"
	userNameKeyConstant                   = "user.name"
	userEmailKeyConstant                  = "user.email"
	userSigningKeyKeyConstant             = "user.signingkey"
	gitConfigSubcommandConstant           = "config"
	gitConfigGetFlagConstant              = "--get"
	gitConfigGlobalFlagConstant           = "--global"
	gitConfigUnsetFlagConstant            = "--unset"
	gitConfigUnsetMissingExitCodeConstant = 5
	generatedIdentifierLengthConstant     = 4
	generatedIdentifierAlphabetConstant   = "ABCDEFGHIJKLMNOPQRSTUVWXYZabcdefghijklmnopqrstuvwxyz0123456789"
	profileActivatedLogMessageConstant    = "profile activated"
	logFieldProfileIdentifierConstant     = "profile_id"
)

// ErrStoreNotConfigured indicates the service was built without a store.
var ErrStoreNotConfigured = errors.New(storeMissingMessageConstant)

// ErrGitExecutorNotConfigured indicates the service was built without a git executor.
var ErrGitExecutorNotConfigured = errors.New(gitExecutorMissingMessageConstant)

// ErrNoActiveProfile indicates gusr.active is unset or names an unknown profile.
var ErrNoActiveProfile = errors.New(noActiveProfileMessageConstant)

// ErrNameRequired indicates a profile without a name.
var ErrNameRequired = errors.New(nameRequiredMessageConstant)

// ErrEmailRequired indicates a profile without an email.
var ErrEmailRequired = errors.New(emailRequiredMessageConstant)

// ProfileNotFoundError reports an unknown profile identifier.
type ProfileNotFoundError struct {
	Identifier string
}

// Error describes the missing profile.
func (notFound ProfileNotFoundError) Error() string {
	return fmt.Sprintf(profileNotFoundErrorTemplateConstant, notFound.Identifier)
}

// DuplicateProfileError reports an identifier that is already taken.
type DuplicateProfileError struct {
	Identifier string
}

// Error describes the duplicate identifier.
func (duplicate DuplicateProfileError) Error() string {
	return fmt.Sprintf(duplicateProfileErrorTemplateConstant, duplicate.Identifier)
}

// IdentifierGenerator produces candidate profile identifiers.
type IdentifierGenerator func() string

// ServiceDependencies enumerates collaborators required by the service.
type ServiceDependencies struct {
	Store               *Store
	GitExecutor         shared.GitExecutor
	WorkingDirectory    string
	IdentifierGenerator IdentifierGenerator
	Logger              *zap.Logger
}

// AddOptions describe a new profile. An empty ID selects a generated one.
type AddOptions struct {
	ID         string
	Name       string
	Email      string
	SigningKey string
}

// Service manages profiles and the global git identity.
type Service struct {
	store               *Store
	executor            shared.GitExecutor
	workingDirectory    string
	identifierGenerator IdentifierGenerator
	logger              *zap.Logger
}

// NewService constructs a Service from the provided dependencies.
func NewService(dependencies ServiceDependencies) (*Service, error) {
	if dependencies.Store == nil {
		return nil, ErrStoreNotConfigured
	}
	if dependencies.GitExecutor == nil {
		return nil, ErrGitExecutorNotConfigured
	}
	identifierGenerator := dependencies.IdentifierGenerator
	if identifierGenerator == nil {
		identifierGenerator = generateRandomIdentifier
	}
	logger := dependencies.Logger
	if logger == nil {
		logger = zap.NewNop()
	}
	return &Service{
		store:               dependencies.Store,
		executor:            dependencies.GitExecutor,
		workingDirectory:    dependencies.WorkingDirectory,
		identifierGenerator: identifierGenerator,
		logger:              logger,
	}, nil
}

// Active returns the profile named by gusr.active.
func (service *Service) Active(executionContext context.Context) (Profile, error) {
	executionResult, executionError := service.executor.ExecuteGit(executionContext, execshell.CommandDetails{
		Arguments:        []string{gitConfigSubcommandConstant, gitConfigGetFlagConstant, activeProfileKeyConstant},
		WorkingDirectory: service.workingDirectory,
	})
	if executionError != nil {
		commandFailure := execshell.CommandFailedError{}
		if errors.As(executionError, &commandFailure) {
			return Profile{}, ErrNoActiveProfile
		}
		return Profile{}, executionError
	}

	document, loadError := service.store.Load()
	if loadError != nil {
		return Profile{}, loadError
	}

	profile, found := document.Find(strings.TrimSpace(executionResult.StandardOutput))
	if !found {
		return Profile{}, ErrNoActiveProfile
	}
	return profile, nil
}

// List returns the stored profiles in file order.
func (service *Service) List() ([]Profile, error) {
	document, loadError := service.store.Load()
	if loadError != nil {
		return nil, loadError
	}
	return document.Profiles, nil
}

// Add validates options and appends a new profile.
func (service *Service) Add(options AddOptions) (Profile, error) {
	profile := Profile{
		ID:         strings.TrimSpace(options.ID),
		Name:       strings.TrimSpace(options.Name),
		Email:      strings.TrimSpace(options.Email),
		SigningKey: strings.TrimSpace(options.SigningKey),
	}
	if len(profile.Name) == 0 {
		return Profile{}, ErrNameRequired
	}
	if len(profile.Email) == 0 {
		return Profile{}, ErrEmailRequired
	}

	document, loadError := service.store.Load()
	if loadError != nil {
		return Profile{}, loadError
	}

	if len(profile.ID) == 0 {
		profile.ID = service.uniqueIdentifier(document)
	} else if _, exists := document.Find(profile.ID); exists {
		return Profile{}, DuplicateProfileError{Identifier: profile.ID}
	}

	document.Profiles = append(document.Profiles, profile)
	if saveError := service.store.Save(document); saveError != nil {
		return Profile{}, saveError
	}
	return profile, nil
}

// Remove deletes the profile with identifier.
func (service *Service) Remove(identifier string) error {
	document, loadError := service.store.Load()
	if loadError != nil {
		return loadError
	}

	trimmedIdentifier := strings.TrimSpace(identifier)
	remaining := make([]Profile, 0, len(document.Profiles))
	for _, profile := range document.Profiles {
		if profile.ID == trimmedIdentifier {
			continue
		}
		remaining = append(remaining, profile)
	}
	if len(remaining) == len(document.Profiles) {
		return ProfileNotFoundError{Identifier: trimmedIdentifier}
	}

	document.Profiles = remaining
	return service.store.Save(document)
}

// Activate writes the profile into the global git configuration and records it as active.
func (service *Service) Activate(executionContext context.Context, identifier string) (Profile, error) {
	document, loadError := service.store.Load()
	if loadError != nil {
		return Profile{}, loadError
	}

	trimmedIdentifier := strings.TrimSpace(identifier)
	profile, found := document.Find(trimmedIdentifier)
	if !found {
		return Profile{}, ProfileNotFoundError{Identifier: trimmedIdentifier}
	}

	assignments := [][2]string{
		{activeProfileKeyConstant, profile.ID},
		{userNameKeyConstant, profile.Name},
		{userEmailKeyConstant, profile.Email},
	}
	if len(profile.SigningKey) > 0 {
		assignments = append(assignments, [2]string{userSigningKeyKeyConstant, profile.SigningKey})
	}
	for _, assignment := range assignments {
		if setError := service.runGlobalConfig(executionContext, assignment[0], assignment[1]); setError != nil {
			return Profile{}, fmt.Errorf(gitConfigurationErrorTemplateConstant, assignment[0], setError)
		}
	}

	if len(profile.SigningKey) == 0 {
		unsetError := service.runGlobalConfig(executionContext, gitConfigUnsetFlagConstant, userSigningKeyKeyConstant)
		if unsetError != nil && !isMissingKeyFailure(unsetError) {
			return Profile{}, fmt.Errorf(gitConfigurationErrorTemplateConstant, userSigningKeyKeyConstant, unsetError)
		}
	}

	service.logger.Info(profileActivatedLogMessageConstant, zap.String(logFieldProfileIdentifierConstant, profile.ID))
	return profile, nil
}

// Render returns the profiles file path and its canonical TOML content.
func (service *Service) Render() (string, string, error) {
	document, loadError := service.store.Load()
	if loadError != nil {
		return "", "", loadError
	}
	content, encodeError := Encode(document)
	if encodeError != nil {
		return "", "", encodeError
	}
	return service.store.Path(), string(content), nil
}

func (service *Service) runGlobalConfig(executionContext context.Context, arguments ...string) error {
	commandArguments := append([]string{gitConfigSubcommandConstant, gitConfigGlobalFlagConstant}, arguments...)
	_, executionError := service.executor.ExecuteGit(executionContext, execshell.CommandDetails{
		Arguments:        commandArguments,
		WorkingDirectory: service.workingDirectory,
	})
	return executionError
}

func (service *Service) uniqueIdentifier(document Document) string {
	for {
		candidate := service.identifierGenerator()
		if _, exists := document.Find(candidate); !exists && len(candidate) > 0 {
			return candidate
		}
	}
}

func isMissingKeyFailure(executionError error) bool {
	commandFailure := execshell.CommandFailedError{}
	return errors.As(executionError, &commandFailure) && commandFailure.Result.ExitCode == gitConfigUnsetMissingExitCodeConstant
}

func generateRandomIdentifier() string {
	var identifierBuilder strings.Builder
	for range generatedIdentifierLengthConstant {
		identifierBuilder.WriteByte(generatedIdentifierAlphabetConstant[rand.IntN(len(generatedIdentifierAlphabetConstant))])
	}
	return identifierBuilder.String()
}
