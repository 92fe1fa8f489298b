package repository_test

import (
	"os"
	"path/filepath"
	"testing"

	"github.com/stretchr/testify/require"

	"github.com/temirov/gitutils/internal/repository"
)

const (
	testConfigContentConstant = "[core]\n\tbare = false\n[remote \"origin\"]\n\turl = https://github.com/example/project.git\n"
	testBranchHeadConstant    = "ref: refs/heads/feature/x\n"
)

func createRepositoryFixture(testInstance *testing.T, headContent string) string {
	testInstance.Helper()
	rootDirectory := testInstance.TempDir()
	gitDirectory := filepath.Join(rootDirectory, ".git")
	require.NoError(testInstance, os.MkdirAll(gitDirectory, 0o755))
	require.NoError(testInstance, os.WriteFile(filepath.Join(gitDirectory, "config"), []byte(testConfigContentConstant), 0o644))
	require.NoError(testInstance, os.WriteFile(filepath.Join(gitDirectory, "HEAD"), []byte(headContent), 0o644))
	resolvedRoot, resolveError := filepath.EvalSymlinks(rootDirectory)
	require.NoError(testInstance, resolveError)
	return resolvedRoot
}

func TestDiscoverFromRootAndDescendants(testInstance *testing.T) {
	rootDirectory := createRepositoryFixture(testInstance, testBranchHeadConstant)
	nestedDirectory := filepath.Join(rootDirectory, "src", "pkg", "deep")
	require.NoError(testInstance, os.MkdirAll(nestedDirectory, 0o755))

	testCases := []struct {
		name           string
		startDirectory string
	}{
		{name: "root", startDirectory: rootDirectory},
		{name: "child", startDirectory: filepath.Join(rootDirectory, "src")},
		{name: "deep_descendant", startDirectory: nestedDirectory},
		{name: "git_directory", startDirectory: filepath.Join(rootDirectory, ".git")},
	}

	for _, testCase := range testCases {
		testInstance.Run(testCase.name, func(testInstance *testing.T) {
			discoveredRoot, configPath, discoveryError := repository.Discover(testCase.startDirectory)
			require.NoError(testInstance, discoveryError)
			require.Equal(testInstance, rootDirectory, discoveredRoot)
			require.Equal(testInstance, filepath.Join(rootDirectory, ".git", "config"), configPath)
		})
	}
}

func TestDiscoverNearestRepositoryWins(testInstance *testing.T) {
	outerRoot := createRepositoryFixture(testInstance, testBranchHeadConstant)
	innerRoot := filepath.Join(outerRoot, "vendor", "inner")
	require.NoError(testInstance, os.MkdirAll(filepath.Join(innerRoot, ".git"), 0o755))
	require.NoError(testInstance, os.WriteFile(filepath.Join(innerRoot, ".git", "config"), []byte(testConfigContentConstant), 0o644))

	discoveredRoot, _, discoveryError := repository.Discover(innerRoot)
	require.NoError(testInstance, discoveryError)
	require.Equal(testInstance, innerRoot, discoveredRoot)
}
