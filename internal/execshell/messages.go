package execshell

import (
	"fmt"
	"strings"
)

type messageStage int

const (
	messageStageStart messageStage = iota
	messageStageSuccess
	messageStageFailure
	messageStageExecutionFailure
)

const (
	genericStartTemplateConstant            = "Running %s"
	genericSuccessTemplateConstant          = "Completed %s"
	genericFailureTemplateConstant          = "%s failed with exit code %d%s"
	genericExecutionFailureTemplateConstant = "%s failed: %s"
	commandLabelTemplateConstant            = "%s%s"
	workingDirectorySuffixTemplateConstant  = " (in %s)"
	standardErrorSuffixTemplateConstant     = ": %s"
	failureDetailsTemplateConstant          = " (exit code %d%s)"
	executionFailureDetailsTemplateConstant = ": %s"
	unknownFailureMessageConstant           = "unknown error"
	emptyStringConstant                     = ""
	defaultWorkingDirectoryLabelConstant    = "current directory"
	fallbackUnknownValueLabelConstant       = "unknown"
	flagPrefixConstant                      = "-"
)

const (
	gitFetchSubcommandNameConstant    = "fetch"
	gitCheckoutSubcommandNameConstant = "checkout"
	gitRebaseSubcommandNameConstant   = "rebase"
	gitPushSubcommandNameConstant     = "push"
	gitBranchSubcommandNameConstant   = "branch"
	gitConfigSubcommandNameConstant   = "config"
	gitDeleteShortFlagConstant        = "-d"
	gitDeleteFlagConstant             = "--delete"
	gitCreateBranchFlagConstant       = "-b"
	gitGlobalFlagConstant             = "--global"
	gitGetFlagConstant                = "--get"
)

const (
	gitFetchStartTemplateConstant            = "Fetching %s from %s in %s"
	gitFetchSuccessTemplateConstant          = "Fetched %s from %s in %s"
	gitFetchFailureTemplateConstant          = "Failed to fetch %s from %s in %s"
	gitFetchExecutionFailureTemplateConstant = "Unable to fetch %s from %s in %s"
	gitFetchDefaultReferenceLabelConstant    = "default refs"

	gitCheckoutStartTemplateConstant            = "Switching %s to branch %s"
	gitCheckoutSuccessTemplateConstant          = "%s now on branch %s"
	gitCheckoutFailureTemplateConstant          = "Failed to switch %s to branch %s"
	gitCheckoutExecutionFailureTemplateConstant = "Unable to switch %s to branch %s"

	gitBranchCreationStartTemplateConstant            = "Creating branch %s in %s"
	gitBranchCreationSuccessTemplateConstant          = "Created branch %s in %s"
	gitBranchCreationFailureTemplateConstant          = "Failed to create branch %s in %s"
	gitBranchCreationExecutionFailureTemplateConstant = "Unable to create branch %s in %s"

	gitRebaseStartTemplateConstant            = "Rebasing %s onto %s"
	gitRebaseSuccessTemplateConstant          = "Rebased %s onto %s"
	gitRebaseFailureTemplateConstant          = "Failed to rebase %s onto %s"
	gitRebaseExecutionFailureTemplateConstant = "Unable to rebase %s onto %s"

	gitPushStartTemplateConstant            = "Pushing %s to %s from %s"
	gitPushSuccessTemplateConstant          = "Pushed %s to %s from %s"
	gitPushFailureTemplateConstant          = "Failed to push %s to %s from %s"
	gitPushExecutionFailureTemplateConstant = "Unable to push %s to %s from %s"

	gitBranchDeletionStartTemplateConstant            = "Removing local branch %s in %s"
	gitBranchDeletionSuccessTemplateConstant          = "Removed local branch %s in %s"
	gitBranchDeletionFailureTemplateConstant          = "Failed to remove local branch %s in %s"
	gitBranchDeletionExecutionFailureTemplateConstant = "Unable to remove local branch %s in %s"

	gitBranchListStartTemplateConstant            = "Listing branches in %s"
	gitBranchListSuccessTemplateConstant          = "Listed branches in %s"
	gitBranchListFailureTemplateConstant          = "Failed to list branches in %s"
	gitBranchListExecutionFailureTemplateConstant = "Unable to list branches in %s"

	gitConfigReadStartTemplateConstant            = "Reading %s configuration %s"
	gitConfigReadSuccessTemplateConstant          = "Read %s configuration %s"
	gitConfigReadFailureTemplateConstant          = "Failed to read %s configuration %s"
	gitConfigReadExecutionFailureTemplateConstant = "Unable to read %s configuration %s"

	gitConfigWriteStartTemplateConstant            = "Updating %s configuration %s"
	gitConfigWriteSuccessTemplateConstant          = "Updated %s configuration %s"
	gitConfigWriteFailureTemplateConstant          = "Failed to update %s configuration %s"
	gitConfigWriteExecutionFailureTemplateConstant = "Unable to update %s configuration %s"

	gitConfigGlobalScopeLabelConstant = "global"
	gitConfigLocalScopeLabelConstant  = "repository"
)

type stageTemplates struct {
	start            string
	success          string
	failure          string
	executionFailure string
}

var (
	gitFetchTemplates          = stageTemplates{gitFetchStartTemplateConstant, gitFetchSuccessTemplateConstant, gitFetchFailureTemplateConstant, gitFetchExecutionFailureTemplateConstant}
	gitCheckoutTemplates       = stageTemplates{gitCheckoutStartTemplateConstant, gitCheckoutSuccessTemplateConstant, gitCheckoutFailureTemplateConstant, gitCheckoutExecutionFailureTemplateConstant}
	gitBranchCreationTemplates = stageTemplates{gitBranchCreationStartTemplateConstant, gitBranchCreationSuccessTemplateConstant, gitBranchCreationFailureTemplateConstant, gitBranchCreationExecutionFailureTemplateConstant}
	gitRebaseTemplates         = stageTemplates{gitRebaseStartTemplateConstant, gitRebaseSuccessTemplateConstant, gitRebaseFailureTemplateConstant, gitRebaseExecutionFailureTemplateConstant}
	gitPushTemplates           = stageTemplates{gitPushStartTemplateConstant, gitPushSuccessTemplateConstant, gitPushFailureTemplateConstant, gitPushExecutionFailureTemplateConstant}
	gitBranchDeletionTemplates = stageTemplates{gitBranchDeletionStartTemplateConstant, gitBranchDeletionSuccessTemplateConstant, gitBranchDeletionFailureTemplateConstant, gitBranchDeletionExecutionFailureTemplateConstant}
	gitBranchListTemplates     = stageTemplates{gitBranchListStartTemplateConstant, gitBranchListSuccessTemplateConstant, gitBranchListFailureTemplateConstant, gitBranchListExecutionFailureTemplateConstant}
	gitConfigReadTemplates     = stageTemplates{gitConfigReadStartTemplateConstant, gitConfigReadSuccessTemplateConstant, gitConfigReadFailureTemplateConstant, gitConfigReadExecutionFailureTemplateConstant}
	gitConfigWriteTemplates    = stageTemplates{gitConfigWriteStartTemplateConstant, gitConfigWriteSuccessTemplateConstant, gitConfigWriteFailureTemplateConstant, gitConfigWriteExecutionFailureTemplateConstant}
)

// CommandMessageFormatter builds human-readable messages for command lifecycle events.
type CommandMessageFormatter struct{}

// BuildStartedMessage formats the message describing a command about to run.
func (formatter CommandMessageFormatter) BuildStartedMessage(command ShellCommand) string {
	return formatter.buildMessage(command, ExecutionResult{}, nil, messageStageStart)
}

// BuildSuccessMessage formats the message describing a completed command with a zero exit code.
func (formatter CommandMessageFormatter) BuildSuccessMessage(command ShellCommand) string {
	return formatter.buildMessage(command, ExecutionResult{}, nil, messageStageSuccess)
}

// BuildFailureMessage formats the message describing a command that returned a non-zero exit code.
func (formatter CommandMessageFormatter) BuildFailureMessage(command ShellCommand, result ExecutionResult) string {
	return formatter.buildMessage(command, result, nil, messageStageFailure)
}

// BuildExecutionFailureMessage formats the message describing an unexpected execution failure.
func (formatter CommandMessageFormatter) BuildExecutionFailureMessage(command ShellCommand, failure error) string {
	return formatter.buildMessage(command, ExecutionResult{}, failure, messageStageExecutionFailure)
}

func (formatter CommandMessageFormatter) buildMessage(command ShellCommand, result ExecutionResult, failure error, stage messageStage) string {
	if command.Name != CommandGit || len(command.Details.Arguments) == 0 {
		return formatter.buildGenericMessage(command, result, failure, stage)
	}

	arguments := command.Details.Arguments
	workingDirectory := formatter.describeWorkingDirectory(command)
	switch strings.TrimSpace(arguments[0]) {
	case gitFetchSubcommandNameConstant:
		remoteName, references := formatter.extractRemoteAndReferences(arguments[1:])
		referenceLabel := strings.Join(references, ", ")
		if len(referenceLabel) == 0 {
			referenceLabel = gitFetchDefaultReferenceLabelConstant
		}
		return formatter.applyTemplates(gitFetchTemplates, stage, result, failure, referenceLabel, formatter.ensureValue(remoteName), workingDirectory)
	case gitCheckoutSubcommandNameConstant:
		branchName := formatter.ensureValue(formatter.extractLastNonFlagArgument(arguments[1:]))
		if containsArgument(arguments, gitCreateBranchFlagConstant) {
			return formatter.applyTemplates(gitBranchCreationTemplates, stage, result, failure, branchName, workingDirectory)
		}
		return formatter.applyTemplates(gitCheckoutTemplates, stage, result, failure, workingDirectory, branchName)
	case gitRebaseSubcommandNameConstant:
		upstream := formatter.ensureValue(formatter.extractLastNonFlagArgument(arguments[1:]))
		return formatter.applyTemplates(gitRebaseTemplates, stage, result, failure, workingDirectory, upstream)
	case gitPushSubcommandNameConstant:
		remoteName, references := formatter.extractRemoteAndReferences(arguments[1:])
		return formatter.applyTemplates(gitPushTemplates, stage, result, failure, formatter.ensureValue(strings.Join(references, ", ")), formatter.ensureValue(remoteName), workingDirectory)
	case gitBranchSubcommandNameConstant:
		if containsArgument(arguments, gitDeleteShortFlagConstant) || containsArgument(arguments, gitDeleteFlagConstant) {
			branchName := formatter.ensureValue(formatter.extractLastNonFlagArgument(arguments[1:]))
			return formatter.applyTemplates(gitBranchDeletionTemplates, stage, result, failure, branchName, workingDirectory)
		}
		if len(formatter.extractLastNonFlagArgument(arguments[1:])) == 0 {
			return formatter.applyTemplates(gitBranchListTemplates, stage, result, failure, workingDirectory)
		}
		return formatter.buildGenericMessage(command, result, failure, stage)
	case gitConfigSubcommandNameConstant:
		scopeLabel := gitConfigLocalScopeLabelConstant
		if containsArgument(arguments, gitGlobalFlagConstant) {
			scopeLabel = gitConfigGlobalScopeLabelConstant
		}
		keyName := formatter.ensureValue(formatter.extractFirstNonFlagArgument(arguments[1:]))
		if containsArgument(arguments, gitGetFlagConstant) {
			return formatter.applyTemplates(gitConfigReadTemplates, stage, result, failure, scopeLabel, keyName)
		}
		return formatter.applyTemplates(gitConfigWriteTemplates, stage, result, failure, scopeLabel, keyName)
	default:
		return formatter.buildGenericMessage(command, result, failure, stage)
	}
}

func (formatter CommandMessageFormatter) applyTemplates(templates stageTemplates, stage messageStage, result ExecutionResult, failure error, values ...any) string {
	switch stage {
	case messageStageStart:
		return fmt.Sprintf(templates.start, values...)
	case messageStageSuccess:
		return fmt.Sprintf(templates.success, values...)
	case messageStageFailure:
		return fmt.Sprintf(templates.failure, values...) + fmt.Sprintf(failureDetailsTemplateConstant, result.ExitCode, formatter.formatStandardErrorSuffix(result.StandardError))
	case messageStageExecutionFailure:
		return fmt.Sprintf(templates.executionFailure, values...) + fmt.Sprintf(executionFailureDetailsTemplateConstant, formatter.describeFailure(failure))
	default:
		return emptyStringConstant
	}
}

func (formatter CommandMessageFormatter) buildGenericMessage(command ShellCommand, result ExecutionResult, failure error, stage messageStage) string {
	commandLabel := formatter.formatCommandLabel(command)
	switch stage {
	case messageStageStart:
		return fmt.Sprintf(genericStartTemplateConstant, commandLabel)
	case messageStageSuccess:
		return fmt.Sprintf(genericSuccessTemplateConstant, commandLabel)
	case messageStageFailure:
		return fmt.Sprintf(genericFailureTemplateConstant, commandLabel, result.ExitCode, formatter.formatStandardErrorSuffix(result.StandardError))
	case messageStageExecutionFailure:
		return fmt.Sprintf(genericExecutionFailureTemplateConstant, commandLabel, formatter.describeFailure(failure))
	default:
		return emptyStringConstant
	}
}

func (formatter CommandMessageFormatter) formatCommandLabel(command ShellCommand) string {
	return fmt.Sprintf(commandLabelTemplateConstant, describeCommand(command), formatter.formatWorkingDirectorySuffix(command))
}

func (formatter CommandMessageFormatter) formatWorkingDirectorySuffix(command ShellCommand) string {
	trimmedWorkingDirectory := strings.TrimSpace(command.Details.WorkingDirectory)
	if len(trimmedWorkingDirectory) == 0 {
		return emptyStringConstant
	}
	return fmt.Sprintf(workingDirectorySuffixTemplateConstant, trimmedWorkingDirectory)
}

func (formatter CommandMessageFormatter) formatStandardErrorSuffix(standardError string) string {
	trimmedStandardError := strings.TrimSpace(standardError)
	if len(trimmedStandardError) == 0 {
		return emptyStringConstant
	}
	return fmt.Sprintf(standardErrorSuffixTemplateConstant, trimmedStandardError)
}

func (formatter CommandMessageFormatter) describeWorkingDirectory(command ShellCommand) string {
	trimmedWorkingDirectory := strings.TrimSpace(command.Details.WorkingDirectory)
	if len(trimmedWorkingDirectory) == 0 {
		return defaultWorkingDirectoryLabelConstant
	}
	return trimmedWorkingDirectory
}

func (formatter CommandMessageFormatter) describeFailure(failure error) string {
	if failure == nil {
		return unknownFailureMessageConstant
	}
	return failure.Error()
}

func (formatter CommandMessageFormatter) ensureValue(value string) string {
	trimmed := strings.TrimSpace(value)
	if len(trimmed) == 0 {
		return fallbackUnknownValueLabelConstant
	}
	return trimmed
}

func (formatter CommandMessageFormatter) extractRemoteAndReferences(arguments []string) (string, []string) {
	remoteName := emptyStringConstant
	references := []string{}
	for _, argument := range arguments {
		trimmed := strings.TrimSpace(argument)
		if len(trimmed) == 0 || strings.HasPrefix(trimmed, flagPrefixConstant) {
			continue
		}
		if len(remoteName) == 0 {
			remoteName = trimmed
			continue
		}
		references = append(references, trimmed)
	}
	return remoteName, references
}

func (formatter CommandMessageFormatter) extractFirstNonFlagArgument(arguments []string) string {
	for _, argument := range arguments {
		trimmed := strings.TrimSpace(argument)
		if len(trimmed) == 0 || strings.HasPrefix(trimmed, flagPrefixConstant) {
			continue
		}
		return trimmed
	}
	return emptyStringConstant
}

func (formatter CommandMessageFormatter) extractLastNonFlagArgument(arguments []string) string {
	for index := len(arguments) - 1; index >= 0; index-- {
		trimmed := strings.TrimSpace(arguments[index])
		if len(trimmed) == 0 || strings.HasPrefix(trimmed, flagPrefixConstant) {
			continue
		}
		return trimmed
	}
	return emptyStringConstant
}

func containsArgument(arguments []string, value string) bool {
	for _, argument := range arguments {
		if strings.TrimSpace(argument) == value {
			return true
		}
	}
	return false
}
