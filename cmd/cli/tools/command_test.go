package tools_test

import (
	"bytes"
	"context"
	"fmt"
	"strings"
	"testing"

	"github.com/spf13/cobra"
	"github.com/stretchr/testify/require"
	"go.uber.org/zap"

	"github.com/temirov/gitup/cmd/cli/tools"
)

const (
	testRootPathConstant          = "/workspace"
	testRepositoryPathConstant    = "/workspace/project"
	testBranchNameConstant        = "main"
	testFeatureBranchNameConstant = "develop"
)

type recordedGitAction struct {
	repositoryPath  string
	action          string
	actionArguments []string
}

type stubRepositoryManager struct {
	currentBranchByRepository map[string]string
	recordedActions           []recordedGitAction
	recordedSwitches          []string
}

func newStubRepositoryManager() *stubRepositoryManager {
	return &stubRepositoryManager{currentBranchByRepository: map[string]string{}}
}

func (manager *stubRepositoryManager) GetCurrentBranch(_ context.Context, repositoryPath string) (string, error) {
	return manager.currentBranchByRepository[repositoryPath], nil
}

func (manager *stubRepositoryManager) CheckCleanWorktree(_ context.Context, _ string) (bool, error) {
	return true, nil
}

func (manager *stubRepositoryManager) SwitchBranch(_ context.Context, repositoryPath string, branchName string) error {
	manager.currentBranchByRepository[repositoryPath] = branchName
	manager.recordedSwitches = append(manager.recordedSwitches, branchName)
	return nil
}

func (manager *stubRepositoryManager) RunGitAction(_ context.Context, repositoryPath string, action string, actionArguments []string) error {
	manager.recordedActions = append(manager.recordedActions, recordedGitAction{
		repositoryPath:  repositoryPath,
		action:          action,
		actionArguments: actionArguments,
	})
	return nil
}

type stubRepositoryScanner struct {
	subdirectoriesByDirectory map[string][]string
	repositoryDirectories     map[string]bool
}

func (scanner *stubRepositoryScanner) ListSubdirectories(directoryPath string) ([]string, error) {
	return scanner.subdirectoriesByDirectory[directoryPath], nil
}

func (scanner *stubRepositoryScanner) HasGitMetadata(directoryPath string) bool {
	return scanner.repositoryDirectories[directoryPath]
}

func newSingleRepositoryScanner() *stubRepositoryScanner {
	return &stubRepositoryScanner{
		subdirectoriesByDirectory: map[string][]string{testRootPathConstant: {testRepositoryPathConstant}},
		repositoryDirectories:     map[string]bool{testRepositoryPathConstant: true},
	}
}

func executeCommand(testInstance *testing.T, command *cobra.Command, arguments []string) string {
	outputBuffer := &bytes.Buffer{}
	command.SetOut(outputBuffer)
	command.SetErr(outputBuffer)
	command.SetContext(context.Background())
	command.SetArgs(arguments)
	require.NoError(testInstance, command.Execute())
	return outputBuffer.String()
}

func TestFetchCommandRunsFetchAction(testInstance *testing.T) {
	manager := newStubRepositoryManager()
	manager.currentBranchByRepository[testRepositoryPathConstant] = testBranchNameConstant

	builder := tools.FetchCommandBuilder{
		LoggerProvider:    func() *zap.Logger { return zap.NewNop() },
		RepositoryManager: manager,
		RepositoryScanner: newSingleRepositoryScanner(),
	}
	command, buildError := builder.Build()
	require.NoError(testInstance, buildError)

	commandOutput := executeCommand(testInstance, command, []string{"--path", testRootPathConstant, "--params", "--prune --tags"})

	require.Equal(testInstance, []recordedGitAction{
		{
			repositoryPath:  testRepositoryPathConstant,
			action:          "fetch",
			actionArguments: []string{"--prune", "--tags"},
		},
	}, manager.recordedActions)
	require.Empty(testInstance, manager.recordedSwitches)
	require.Contains(testInstance, commandOutput, fmt.Sprintf("Fetching repositories under %s\n", testRootPathConstant))
	require.Contains(testInstance, commandOutput, "Finished processing repositories.")
}

func TestPullCommandFetchesThenMergesIncludedBranches(testInstance *testing.T) {
	manager := newStubRepositoryManager()
	manager.currentBranchByRepository[testRepositoryPathConstant] = testBranchNameConstant

	builder := tools.PullCommandBuilder{
		LoggerProvider:    func() *zap.Logger { return zap.NewNop() },
		RepositoryManager: manager,
		RepositoryScanner: newSingleRepositoryScanner(),
	}
	command, buildError := builder.Build()
	require.NoError(testInstance, buildError)

	commandOutput := executeCommand(testInstance, command, []string{
		"--path", testRootPathConstant,
		"--include-branches", testFeatureBranchNameConstant,
	})

	require.Equal(testInstance, []recordedGitAction{
		{repositoryPath: testRepositoryPathConstant, action: "fetch", actionArguments: nil},
		{repositoryPath: testRepositoryPathConstant, action: "merge", actionArguments: []string{}},
		{repositoryPath: testRepositoryPathConstant, action: "merge", actionArguments: []string{}},
	}, manager.recordedActions)
	require.Equal(testInstance, []string{testFeatureBranchNameConstant, testBranchNameConstant}, manager.recordedSwitches)
	require.Contains(testInstance, commandOutput, fmt.Sprintf("Pulling repositories under %s\n", testRootPathConstant))
	require.Contains(testInstance, commandOutput, fmt.Sprintf("Updating branch %s in %s\n", testBranchNameConstant, testRepositoryPathConstant))
	require.Contains(testInstance, commandOutput, fmt.Sprintf("Updating branch %s in %s\n", testFeatureBranchNameConstant, testRepositoryPathConstant))
}

func TestOptimizeCommandRunsGarbageCollection(testInstance *testing.T) {
	manager := newStubRepositoryManager()
	manager.currentBranchByRepository[testRepositoryPathConstant] = testBranchNameConstant

	builder := tools.OptimizeCommandBuilder{
		LoggerProvider:    func() *zap.Logger { return zap.NewNop() },
		RepositoryManager: manager,
		RepositoryScanner: newSingleRepositoryScanner(),
	}
	command, buildError := builder.Build()
	require.NoError(testInstance, buildError)

	commandOutput := executeCommand(testInstance, command, []string{"--path", testRootPathConstant, "--params", "--aggressive"})

	require.Equal(testInstance, []recordedGitAction{
		{
			repositoryPath:  testRepositoryPathConstant,
			action:          "gc",
			actionArguments: []string{"--aggressive"},
		},
	}, manager.recordedActions)
	require.Empty(testInstance, manager.recordedSwitches)
	require.Contains(testInstance, commandOutput, fmt.Sprintf("Optimizing repositories under %s\n", testRootPathConstant))
	require.False(testInstance, strings.Contains(commandOutput, "Updating branch"))
}

func TestFetchCommandUsesConfiguredValuesWhenFlagsAbsent(testInstance *testing.T) {
	manager := newStubRepositoryManager()
	manager.currentBranchByRepository[testRepositoryPathConstant] = testBranchNameConstant

	builder := tools.FetchCommandBuilder{
		LoggerProvider:    func() *zap.Logger { return zap.NewNop() },
		RepositoryManager: manager,
		RepositoryScanner: newSingleRepositoryScanner(),
		ConfigurationProvider: func() tools.FetchConfiguration {
			return tools.FetchConfiguration{Path: "  " + testRootPathConstant + "  ", Params: "--prune"}
		},
	}
	command, buildError := builder.Build()
	require.NoError(testInstance, buildError)

	commandOutput := executeCommand(testInstance, command, []string{})

	require.Equal(testInstance, []recordedGitAction{
		{
			repositoryPath:  testRepositoryPathConstant,
			action:          "fetch",
			actionArguments: []string{"--prune"},
		},
	}, manager.recordedActions)
	require.Contains(testInstance, commandOutput, fmt.Sprintf("Fetching repositories under %s\n", testRootPathConstant))
}

func TestPullCommandFlagOverridesConfiguredIncludeBranches(testInstance *testing.T) {
	manager := newStubRepositoryManager()
	manager.currentBranchByRepository[testRepositoryPathConstant] = testBranchNameConstant

	builder := tools.PullCommandBuilder{
		LoggerProvider:    func() *zap.Logger { return zap.NewNop() },
		RepositoryManager: manager,
		RepositoryScanner: newSingleRepositoryScanner(),
		ConfigurationProvider: func() tools.PullConfiguration {
			return tools.PullConfiguration{Path: testRootPathConstant, IncludeBranches: "release"}
		},
	}
	command, buildError := builder.Build()
	require.NoError(testInstance, buildError)

	executeCommand(testInstance, command, []string{"--include-branches", testFeatureBranchNameConstant})

	require.Equal(testInstance, []string{testFeatureBranchNameConstant, testBranchNameConstant}, manager.recordedSwitches)
}
