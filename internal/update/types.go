package update

import "context"

// RepositoryManager exposes repository-level git operations used by the updater.
type RepositoryManager interface {
	GetCurrentBranch(executionContext context.Context, repositoryPath string) (string, error)
	CheckCleanWorktree(executionContext context.Context, repositoryPath string) (bool, error)
	SwitchBranch(executionContext context.Context, repositoryPath string, branchName string) error
	RunGitAction(executionContext context.Context, repositoryPath string, action string, actionArguments []string) error
}

// RepositoryScanner locates git repositories beneath a root directory.
type RepositoryScanner interface {
	ListSubdirectories(directoryPath string) ([]string, error)
	HasGitMetadata(directoryPath string) bool
}
