package update

import (
	"context"
	"errors"
	"fmt"
	"io"

	"go.uber.org/zap"
)

const (
	rootListingErrorTemplateConstant        = "unable to list directories under %s: %w"
	nestedListingWarningMessageConstant     = "unable to list directories; skipping folder"
	currentBranchWarningMessageConstant     = "unable to determine current branch; skipping repository"
	worktreeStatusWarningMessageConstant    = "unable to determine worktree status; skipping repository"
	dirtyWorktreeWarningMessageConstant     = "worktree has uncommitted changes; skipping repository"
	branchReadWarningMessageConstant        = "unable to determine current branch; skipping branch"
	branchSwitchWarningMessageConstant      = "unable to switch branch; skipping branch"
	branchRestorationWarningMessageConstant = "unable to restore original branch"
	branchAnnouncementTemplateConstant      = "Updating branch %s in %s\n"
	completionNoticeMessageConstant         = "Finished processing repositories.\n"
	logFieldDirectoryPathConstant           = "directory_path"
	logFieldRepositoryPathConstant          = "repository_path"
	logFieldBranchNameConstant              = "branch_name"
	logFieldOriginalBranchNameConstant      = "original_branch_name"
)

var (
	// ErrRepositoryManagerNotConfigured indicates a missing repository manager dependency.
	ErrRepositoryManagerNotConfigured = errors.New("repository manager not configured")
	// ErrRepositoryScannerNotConfigured indicates a missing repository scanner dependency.
	ErrRepositoryScannerNotConfigured = errors.New("repository scanner not configured")
	// ErrLoggerNotConfigured indicates a missing logger dependency.
	ErrLoggerNotConfigured = errors.New("logger not configured")
	// ErrOutputWriterNotConfigured indicates a missing output writer dependency.
	ErrOutputWriterNotConfigured = errors.New("output writer not configured")
)

// Dependencies enumerates the collaborators required by the updater service.
type Dependencies struct {
	RepositoryManager RepositoryManager
	RepositoryScanner RepositoryScanner
	Logger            *zap.Logger
	Output            io.Writer
}

// Service walks repository trees and applies the configured git actions.
type Service struct {
	repositoryManager RepositoryManager
	repositoryScanner RepositoryScanner
	logger            *zap.Logger
	output            io.Writer
}

// NewService validates dependencies and constructs an updater service.
func NewService(dependencies Dependencies) (*Service, error) {
	if dependencies.RepositoryManager == nil {
		return nil, ErrRepositoryManagerNotConfigured
	}
	if dependencies.RepositoryScanner == nil {
		return nil, ErrRepositoryScannerNotConfigured
	}
	if dependencies.Logger == nil {
		return nil, ErrLoggerNotConfigured
	}
	if dependencies.Output == nil {
		return nil, ErrOutputWriterNotConfigured
	}

	service := &Service{
		repositoryManager: dependencies.RepositoryManager,
		repositoryScanner: dependencies.RepositoryScanner,
		logger:            dependencies.Logger,
		output:            dependencies.Output,
	}
	return service, nil
}

// Update processes every repository found under the configured path.
//
// Directories that directly contain .git metadata are updated; other
// directories join the worklist when subdirectory scanning is enabled and are
// ignored otherwise. Only a listing failure on the root path is fatal.
func (service *Service) Update(executionContext context.Context, configuration Configuration) error {
	pendingDirectories := []string{configuration.Path}
	rootDirectoryPending := true

	for len(pendingDirectories) > 0 {
		if contextError := executionContext.Err(); contextError != nil {
			return contextError
		}

		directoryPath := pendingDirectories[0]
		pendingDirectories = pendingDirectories[1:]
		listingRoot := rootDirectoryPending
		rootDirectoryPending = false

		subdirectoryPaths, listingError := service.repositoryScanner.ListSubdirectories(directoryPath)
		if listingError != nil {
			if listingRoot {
				return fmt.Errorf(rootListingErrorTemplateConstant, directoryPath, listingError)
			}
			service.logger.Warn(
				nestedListingWarningMessageConstant,
				zap.String(logFieldDirectoryPathConstant, directoryPath),
				zap.Error(listingError),
			)
			continue
		}

		for _, subdirectoryPath := range subdirectoryPaths {
			if contextError := executionContext.Err(); contextError != nil {
				return contextError
			}

			if service.repositoryScanner.HasGitMetadata(subdirectoryPath) {
				service.updateRepository(executionContext, configuration, subdirectoryPath)
				continue
			}

			if configuration.ScanSubdirectories {
				pendingDirectories = append(pendingDirectories, subdirectoryPath)
			}
		}
	}

	if !configuration.MuteFinalMessage {
		fmt.Fprint(service.output, completionNoticeMessageConstant)
	}
	return nil
}

// updateRepository applies the configured actions to a single repository.
//
// A dirty or unreadable worktree skips the repository entirely. Once the
// clean gate passes, restoration of the original branch and the completion
// action are guaranteed to run on every exit path.
func (service *Service) updateRepository(executionContext context.Context, configuration Configuration, repositoryPath string) {
	originalBranchName, branchError := service.repositoryManager.GetCurrentBranch(executionContext, repositoryPath)
	if branchError != nil {
		service.logger.Warn(
			currentBranchWarningMessageConstant,
			zap.String(logFieldRepositoryPathConstant, repositoryPath),
			zap.Error(branchError),
		)
		return
	}

	worktreeClean, statusError := service.repositoryManager.CheckCleanWorktree(executionContext, repositoryPath)
	if statusError != nil {
		service.logger.Warn(
			worktreeStatusWarningMessageConstant,
			zap.String(logFieldRepositoryPathConstant, repositoryPath),
			zap.Error(statusError),
		)
		return
	}
	if !worktreeClean {
		service.logger.Warn(
			dirtyWorktreeWarningMessageConstant,
			zap.String(logFieldRepositoryPathConstant, repositoryPath),
		)
		return
	}

	defer func() {
		service.restoreOriginalBranch(executionContext, repositoryPath, originalBranchName)
		if len(configuration.CompletionAction) > 0 {
			_ = service.repositoryManager.RunGitAction(executionContext, repositoryPath, configuration.CompletionAction, configuration.CompletionArguments)
		}
	}()

	if len(configuration.PreparationAction) > 0 {
		_ = service.repositoryManager.RunGitAction(executionContext, repositoryPath, configuration.PreparationAction, configuration.PreparationArguments)
	}

	branchNames := BuildBranchList(originalBranchName, configuration.IncludeBranches)
	for _, branchName := range branchNames {
		service.updateBranch(executionContext, configuration, repositoryPath, branchName)
	}
}

// updateBranch switches to the requested branch when necessary and runs the
// main action. Action failures are reported by the executor and do not stop
// the walk.
func (service *Service) updateBranch(executionContext context.Context, configuration Configuration, repositoryPath string, branchName string) {
	currentBranchName, branchError := service.repositoryManager.GetCurrentBranch(executionContext, repositoryPath)
	if branchError != nil {
		service.logger.Warn(
			branchReadWarningMessageConstant,
			zap.String(logFieldRepositoryPathConstant, repositoryPath),
			zap.String(logFieldBranchNameConstant, branchName),
			zap.Error(branchError),
		)
		return
	}

	if currentBranchName != branchName {
		if switchError := service.repositoryManager.SwitchBranch(executionContext, repositoryPath, branchName); switchError != nil {
			service.logger.Warn(
				branchSwitchWarningMessageConstant,
				zap.String(logFieldRepositoryPathConstant, repositoryPath),
				zap.String(logFieldBranchNameConstant, branchName),
				zap.Error(switchError),
			)
			return
		}
	}

	if configuration.ShowBranchName {
		fmt.Fprintf(service.output, branchAnnouncementTemplateConstant, branchName, repositoryPath)
	}

	_ = service.repositoryManager.RunGitAction(executionContext, repositoryPath, configuration.Action, configuration.ActionArguments)
}

func (service *Service) restoreOriginalBranch(executionContext context.Context, repositoryPath string, originalBranchName string) {
	currentBranchName, branchError := service.repositoryManager.GetCurrentBranch(executionContext, repositoryPath)
	if branchError == nil && currentBranchName == originalBranchName {
		return
	}

	if switchError := service.repositoryManager.SwitchBranch(executionContext, repositoryPath, originalBranchName); switchError != nil {
		service.logger.Warn(
			branchRestorationWarningMessageConstant,
			zap.String(logFieldRepositoryPathConstant, repositoryPath),
			zap.String(logFieldOriginalBranchNameConstant, originalBranchName),
			zap.Error(switchError),
		)
	}
}
