package tools

import (
	"go.uber.org/zap"

	"github.com/temirov/gitup/internal/discovery"
	"github.com/temirov/gitup/internal/execshell"
	"github.com/temirov/gitup/internal/gitrepo"
	"github.com/temirov/gitup/internal/ui"
	"github.com/temirov/gitup/internal/update"
)

// resolveGitExecutor returns the provided executor or builds an OS-backed shell executor.
//
// Human-readable logging attaches a console observer so git lifecycle
// messages reach the terminal alongside structured telemetry.
func resolveGitExecutor(existingExecutor gitrepo.GitExecutor, logger *zap.Logger, humanReadableLogging bool) (gitrepo.GitExecutor, error) {
	if existingExecutor != nil {
		return existingExecutor, nil
	}

	shellExecutor, executorError := execshell.NewShellExecutor(logger, execshell.NewOSCommandRunner())
	if executorError != nil {
		return nil, executorError
	}
	if humanReadableLogging {
		shellExecutor.SetCommandEventObserver(ui.NewConsoleCommandEventLogger(logger))
	}
	return shellExecutor, nil
}

// resolveRepositoryManager returns the provided manager or builds one over the executor.
func resolveRepositoryManager(existingManager update.RepositoryManager, executor gitrepo.GitExecutor) (update.RepositoryManager, error) {
	if existingManager != nil {
		return existingManager, nil
	}

	repositoryManager, managerError := gitrepo.NewRepositoryManager(executor)
	if managerError != nil {
		return nil, managerError
	}
	return repositoryManager, nil
}

// resolveRepositoryScanner returns the provided scanner or a filesystem-backed one.
func resolveRepositoryScanner(existingScanner update.RepositoryScanner) update.RepositoryScanner {
	if existingScanner != nil {
		return existingScanner
	}
	return discovery.NewFilesystemRepositoryScanner()
}
