package configcmd_test

import (
	"bytes"
	"context"
	"os"
	"path/filepath"
	"testing"

	"github.com/spf13/cobra"
	"github.com/stretchr/testify/require"
	"gopkg.in/yaml.v3"

	"github.com/temirov/gitutils/cmd/cli/configcmd"
	"github.com/temirov/gitutils/internal/gitconfig"
	"github.com/temirov/gitutils/internal/repository"
	"github.com/temirov/gitutils/internal/utils"
)

const testInspectionConfigContentConstant = `[core]
	bare = false
[remote "origin"]
	url = git@github.com:example/project.git
	fetch = +refs/heads/*:refs/remotes/origin/*
	fetch = +refs/pull/*:refs/remotes/origin/pr/*
[remote "upstream"]
	url = https://github.com/upstream/project.git
`

func createInspectionRepository(testInstance *testing.T, headContent string) string {
	testInstance.Helper()
	rootDirectory, evaluationError := filepath.EvalSymlinks(testInstance.TempDir())
	require.NoError(testInstance, evaluationError)
	gitDirectory := filepath.Join(rootDirectory, ".git")
	require.NoError(testInstance, os.MkdirAll(gitDirectory, 0o755))
	require.NoError(testInstance, os.WriteFile(filepath.Join(gitDirectory, "config"), []byte(testInspectionConfigContentConstant), 0o644))
	require.NoError(testInstance, os.WriteFile(filepath.Join(gitDirectory, "HEAD"), []byte(headContent), 0o644))
	return rootDirectory
}

func executeInspectionCommand(testInstance *testing.T, command *cobra.Command, workingDirectory string, arguments ...string) (string, error) {
	testInstance.Helper()
	output := &bytes.Buffer{}
	command.SetOut(output)
	command.SetErr(output)
	command.SilenceErrors = true
	command.SilenceUsage = true
	command.SetContext(utils.NewCommandContextAccessor().WithWorkingDirectory(context.Background(), workingDirectory))
	command.SetArgs(arguments)
	executionError := command.Execute()
	return output.String(), executionError
}

func buildConfigCommand(testInstance *testing.T) *cobra.Command {
	testInstance.Helper()
	builder := configcmd.CommandBuilder{}
	command, buildError := builder.Build()
	require.NoError(testInstance, buildError)
	return command
}

func TestConfigRemotesCommand(testInstance *testing.T) {
	rootDirectory := createInspectionRepository(testInstance, "ref: refs/heads/master\n")
	nestedDirectory := filepath.Join(rootDirectory, "src", "pkg")
	require.NoError(testInstance, os.MkdirAll(nestedDirectory, 0o755))

	output, executionError := executeInspectionCommand(testInstance, buildConfigCommand(testInstance), nestedDirectory, "remotes")
	require.NoError(testInstance, executionError)
	require.Equal(testInstance, "origin\tgit@github.com:example/project.git\nupstream\thttps://github.com/upstream/project.git\n", output)
}

func TestConfigGetCommand(testInstance *testing.T) {
	rootDirectory := createInspectionRepository(testInstance, "ref: refs/heads/master\n")

	testCases := []struct {
		name           string
		key            string
		expectedOutput string
		expectedError  error
	}{
		{name: "single_value", key: "remote.upstream.url", expectedOutput: "https://github.com/upstream/project.git\n"},
		{name: "multiple_values", key: "remote.origin.fetch", expectedOutput: "+refs/heads/*:refs/remotes/origin/*\n+refs/pull/*:refs/remotes/origin/pr/*\n"},
		{name: "section_without_description", key: "core.bare", expectedOutput: "false\n"},
		{name: "missing_key", key: "core.editor", expectedError: gitconfig.ErrKeyNotFound},
	}

	for _, testCase := range testCases {
		testInstance.Run(testCase.name, func(testInstance *testing.T) {
			output, executionError := executeInspectionCommand(testInstance, buildConfigCommand(testInstance), rootDirectory, "get", testCase.key)
			if testCase.expectedError != nil {
				require.ErrorIs(testInstance, executionError, testCase.expectedError)
				return
			}
			require.NoError(testInstance, executionError)
			require.Equal(testInstance, testCase.expectedOutput, output)
		})
	}
}

func TestConfigSectionsCommand(testInstance *testing.T) {
	rootDirectory := createInspectionRepository(testInstance, "ref: refs/heads/master\n")

	textOutput, textError := executeInspectionCommand(testInstance, buildConfigCommand(testInstance), rootDirectory, "sections")
	require.NoError(testInstance, textError)
	require.Equal(testInstance, testInspectionConfigContentConstant, textOutput)

	yamlOutput, yamlError := executeInspectionCommand(testInstance, buildConfigCommand(testInstance), rootDirectory, "sections", "--format", "YAML")
	require.NoError(testInstance, yamlError)

	decodedSections := []map[string]any{}
	require.NoError(testInstance, yaml.Unmarshal([]byte(yamlOutput), &decodedSections))
	require.Len(testInstance, decodedSections, 3)
	require.Equal(testInstance, "core", decodedSections[0]["name"])
	require.NotContains(testInstance, decodedSections[0], "description")
	require.Equal(testInstance, "origin", decodedSections[1]["description"])
	originOptions := decodedSections[1]["options"].([]any)
	require.Equal(testInstance, map[string]any{
		"key":    "fetch",
		"values": []any{"+refs/heads/*:refs/remotes/origin/*", "+refs/pull/*:refs/remotes/origin/pr/*"},
	}, originOptions[1])

	_, formatError := executeInspectionCommand(testInstance, buildConfigCommand(testInstance), rootDirectory, "sections", "--format", "json")
	require.EqualError(testInstance, formatError, "unsupported value \"json\": expected one of text, yaml")
}

func TestHeadCommand(testInstance *testing.T) {
	testCases := []struct {
		name           string
		headContent    string
		expectedOutput string
	}{
		{name: "branch", headContent: "ref: refs/heads/feature/login\n", expectedOutput: "branch feature/login\n"},
		{name: "detached", headContent: "3f2a9c0d1e\n", expectedOutput: "detached 3f2a9c0d1e\n"},
	}

	for _, testCase := range testCases {
		testInstance.Run(testCase.name, func(testInstance *testing.T) {
			rootDirectory := createInspectionRepository(testInstance, testCase.headContent)
			builder := configcmd.CommandBuilder{}
			command, buildError := builder.BuildHead()
			require.NoError(testInstance, buildError)

			output, executionError := executeInspectionCommand(testInstance, command, rootDirectory)
			require.NoError(testInstance, executionError)
			require.Equal(testInstance, testCase.expectedOutput, output)
		})
	}
}

func TestInspectionOutsideRepository(testInstance *testing.T) {
	builder := configcmd.CommandBuilder{}
	command, buildError := builder.BuildHead()
	require.NoError(testInstance, buildError)

	_, executionError := executeInspectionCommand(testInstance, command, testInstance.TempDir())
	require.ErrorIs(testInstance, executionError, repository.ErrNotAGitRepository)
}
