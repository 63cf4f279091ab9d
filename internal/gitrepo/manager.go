package gitrepo

import (
	"context"
	"errors"
	"fmt"
	"strings"

	"github.com/temirov/gitup/internal/execshell"
)

const (
	executorMissingMessageConstant              = "git executor not configured"
	currentBranchFailureTemplateConstant        = "failed to read current branch: %w"
	worktreeStatusFailureTemplateConstant       = "failed to read working tree status: %w"
	branchSwitchFailureTemplateConstant         = "failed to switch to branch %q: %w"
	gitActionFailureTemplateConstant            = "git %s failed: %w"
	gitSymbolicRefSubcommandConstant            = "symbolic-ref"
	gitShortFlagConstant                        = "--short"
	gitHeadReferenceConstant                    = "HEAD"
	gitStatusSubcommandConstant                 = "status"
	gitStatusShortFlagConstant                  = "--short"
	gitStatusUntrackedFilesFlagConstant         = "--untracked-files=no"
	gitSwitchSubcommandConstant                 = "switch"
	gitSwitchQuietFlagConstant                  = "--quiet"
	gitTerminalPromptEnvironmentNameConstant    = "GIT_TERMINAL_PROMPT"
	gitTerminalPromptEnvironmentDisableConstant = "0"
)

// ErrExecutorNotConfigured indicates the repository manager was constructed without an executor.
var ErrExecutorNotConfigured = errors.New(executorMissingMessageConstant)

// GitExecutor exposes the subset of shell execution used by the repository manager.
type GitExecutor interface {
	ExecuteGit(executionContext context.Context, details execshell.CommandDetails) (execshell.ExecutionResult, error)
}

// RepositoryManager performs repository-level git operations through a shell executor.
type RepositoryManager struct {
	executor GitExecutor
}

// NewRepositoryManager validates the executor dependency and constructs a RepositoryManager.
func NewRepositoryManager(executor GitExecutor) (*RepositoryManager, error) {
	if executor == nil {
		return nil, ErrExecutorNotConfigured
	}
	return &RepositoryManager{executor: executor}, nil
}

// GetCurrentBranch resolves the branch currently checked out in the repository.
func (manager *RepositoryManager) GetCurrentBranch(executionContext context.Context, repositoryPath string) (string, error) {
	executionResult, executionError := manager.executeGit(executionContext, repositoryPath, []string{gitSymbolicRefSubcommandConstant, gitShortFlagConstant, gitHeadReferenceConstant})
	if executionError != nil {
		return "", fmt.Errorf(currentBranchFailureTemplateConstant, executionError)
	}
	return strings.TrimSpace(executionResult.StandardOutput), nil
}

// CheckCleanWorktree reports whether the repository has no uncommitted changes to tracked files.
func (manager *RepositoryManager) CheckCleanWorktree(executionContext context.Context, repositoryPath string) (bool, error) {
	executionResult, executionError := manager.executeGit(executionContext, repositoryPath, []string{gitStatusSubcommandConstant, gitStatusShortFlagConstant, gitStatusUntrackedFilesFlagConstant})
	if executionError != nil {
		return false, fmt.Errorf(worktreeStatusFailureTemplateConstant, executionError)
	}
	return len(strings.TrimSpace(executionResult.StandardOutput)) == 0, nil
}

// SwitchBranch checks out the named branch; a non-zero exit reports the branch as unavailable.
func (manager *RepositoryManager) SwitchBranch(executionContext context.Context, repositoryPath string, branchName string) error {
	_, executionError := manager.executeGit(executionContext, repositoryPath, []string{gitSwitchSubcommandConstant, branchName, gitSwitchQuietFlagConstant})
	if executionError != nil {
		return fmt.Errorf(branchSwitchFailureTemplateConstant, branchName, executionError)
	}
	return nil
}

// RunGitAction executes an arbitrary git subcommand with caller-supplied arguments.
func (manager *RepositoryManager) RunGitAction(executionContext context.Context, repositoryPath string, action string, actionArguments []string) error {
	commandArguments := append([]string{action}, actionArguments...)
	_, executionError := manager.executeGit(executionContext, repositoryPath, commandArguments)
	if executionError != nil {
		return fmt.Errorf(gitActionFailureTemplateConstant, action, executionError)
	}
	return nil
}

func (manager *RepositoryManager) executeGit(executionContext context.Context, repositoryPath string, commandArguments []string) (execshell.ExecutionResult, error) {
	return manager.executor.ExecuteGit(executionContext, execshell.CommandDetails{
		Arguments:        commandArguments,
		WorkingDirectory: repositoryPath,
		EnvironmentVariables: map[string]string{
			gitTerminalPromptEnvironmentNameConstant: gitTerminalPromptEnvironmentDisableConstant,
		},
	})
}
