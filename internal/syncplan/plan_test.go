package syncplan_test

import (
	"testing"

	"github.com/stretchr/testify/require"

	"github.com/temirov/gitutils/internal/gitconfig"
	"github.com/temirov/gitutils/internal/syncplan"
)

const (
	testTrunkBranchConstant   = "master"
	testFeatureBranchConstant = "feature-branch"
)

func TestParseArguments(testInstance *testing.T) {
	testCases := []struct {
		name            string
		arguments       []string
		expectedRequest syncplan.Request
		expectedError   error
	}{
		{name: "source_only", arguments: []string{"from", "gitea"}, expectedRequest: syncplan.Request{SourceRemote: "gitea"}},
		{name: "source_branch", arguments: []string{"from", "github:feature/x"}, expectedRequest: syncplan.Request{SourceRemote: "github", SourceBranch: "feature/x"}},
		{name: "source_and_target", arguments: []string{"from", "gitea", "to", "github"}, expectedRequest: syncplan.Request{SourceRemote: "gitea", TargetRemote: "github"}},
		{name: "empty", arguments: []string{}, expectedError: syncplan.ErrUsage},
		{name: "missing_from", arguments: []string{"gitea"}, expectedError: syncplan.ErrUsage},
		{name: "wrong_keyword", arguments: []string{"into", "gitea"}, expectedError: syncplan.ErrUsage},
		{name: "dangling_to", arguments: []string{"from", "gitea", "to"}, expectedError: syncplan.ErrUsage},
		{name: "wrong_second_keyword", arguments: []string{"from", "gitea", "onto", "github"}, expectedError: syncplan.ErrUsage},
		{name: "extra_arguments", arguments: []string{"from", "gitea", "to", "github", "now"}, expectedError: syncplan.ErrUsage},
		{name: "empty_remote", arguments: []string{"from", ":feature"}, expectedError: syncplan.ErrUsage},
		{name: "same_remote", arguments: []string{"from", "origin", "to", "origin"}, expectedError: syncplan.ErrSameRemote},
		{name: "same_remote_with_branch", arguments: []string{"from", "origin:topic", "to", "origin"}, expectedError: syncplan.ErrSameRemote},
	}

	for _, testCase := range testCases {
		testInstance.Run(testCase.name, func(testInstance *testing.T) {
			request, parseError := syncplan.ParseArguments(testCase.arguments)
			if testCase.expectedError != nil {
				require.ErrorIs(testInstance, parseError, testCase.expectedError)
				return
			}
			require.NoError(testInstance, parseError)
			require.Equal(testInstance, testCase.expectedRequest, request)
		})
	}
}

func TestBuildPlan(testInstance *testing.T) {
	testCases := []struct {
		name          string
		request       syncplan.Request
		currentBranch string
		expectedSteps []string
	}{
		{
			name:          "trunk_from_remote",
			request:       syncplan.Request{SourceRemote: "gitea"},
			currentBranch: testTrunkBranchConstant,
			expectedSteps: []string{"git fetch gitea", "git rebase gitea/master"},
		},
		{
			name:          "trunk_with_push",
			request:       syncplan.Request{SourceRemote: "gitea", TargetRemote: "github"},
			currentBranch: testTrunkBranchConstant,
			expectedSteps: []string{"git fetch gitea", "git rebase gitea/master", "git push github master"},
		},
		{
			name:          "explicit_branch",
			request:       syncplan.Request{SourceRemote: "github", SourceBranch: testFeatureBranchConstant},
			currentBranch: testTrunkBranchConstant,
			expectedSteps: []string{"git fetch github feature-branch", "git checkout feature-branch", "git rebase github/feature-branch"},
		},
		{
			name:          "explicit_branch_with_push",
			request:       syncplan.Request{SourceRemote: "github", SourceBranch: testFeatureBranchConstant, TargetRemote: "gitea"},
			currentBranch: testTrunkBranchConstant,
			expectedSteps: []string{"git fetch github feature-branch", "git checkout feature-branch", "git rebase github/feature-branch", "git push gitea feature-branch"},
		},
		{
			name:          "current_non_trunk_branch",
			request:       syncplan.Request{SourceRemote: "github"},
			currentBranch: "topic",
			expectedSteps: []string{"git fetch github topic", "git checkout topic", "git rebase github/topic"},
		},
	}

	for _, testCase := range testCases {
		testInstance.Run(testCase.name, func(testInstance *testing.T) {
			plan, planError := syncplan.BuildPlan(testCase.request, testCase.currentBranch, testTrunkBranchConstant, nil)
			require.NoError(testInstance, planError)

			renderedSteps := make([]string, 0, len(plan.Steps))
			for _, step := range plan.Steps {
				renderedSteps = append(renderedSteps, step.String())
			}
			require.Equal(testInstance, testCase.expectedSteps, renderedSteps)
		})
	}
}

func TestBuildPlanValidatesRemotes(testInstance *testing.T) {
	remotes := []gitconfig.Remote{{Name: "origin", URL: "git@github.com:example/project.git"}}

	_, planError := syncplan.BuildPlan(syncplan.Request{SourceRemote: "gitea"}, testTrunkBranchConstant, testTrunkBranchConstant, remotes)
	require.Equal(testInstance, syncplan.RemoteNotFoundError{Name: "gitea"}, planError)
	require.Contains(testInstance, planError.Error(), "git remote add gitea <url>")

	_, planError = syncplan.BuildPlan(syncplan.Request{SourceRemote: "origin", TargetRemote: "mirror"}, testTrunkBranchConstant, testTrunkBranchConstant, remotes)
	require.Equal(testInstance, syncplan.RemoteNotFoundError{Name: "mirror"}, planError)

	_, planError = syncplan.BuildPlan(syncplan.Request{SourceRemote: "origin"}, testTrunkBranchConstant, testTrunkBranchConstant, []gitconfig.Remote{})
	require.Equal(testInstance, syncplan.RemoteNotFoundError{Name: "origin"}, planError)

	plan, planError := syncplan.BuildPlan(syncplan.Request{SourceRemote: "origin"}, testTrunkBranchConstant, testTrunkBranchConstant, remotes)
	require.NoError(testInstance, planError)
	require.Equal(testInstance, testTrunkBranchConstant, plan.Branch)
}

func TestBuildPlanRequiresBranch(testInstance *testing.T) {
	_, planError := syncplan.BuildPlan(syncplan.Request{SourceRemote: "origin"}, "", testTrunkBranchConstant, nil)
	require.ErrorIs(testInstance, planError, syncplan.ErrBranchRequired)
}

func TestCommandConfigurationSanitize(testInstance *testing.T) {
	require.Equal(testInstance, testTrunkBranchConstant, syncplan.CommandConfiguration{DefaultBranch: "  "}.Sanitize().DefaultBranch)
	require.Equal(testInstance, "main", syncplan.CommandConfiguration{DefaultBranch: " main "}.Sanitize().DefaultBranch)
	require.Equal(testInstance, map[string]any{"tools.sync.default_branch": testTrunkBranchConstant, "tools.sync.assume_yes": false}, syncplan.DefaultConfigurationValues("tools.sync"))
}
