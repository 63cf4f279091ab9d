package tools

import (
	"fmt"

	"github.com/spf13/cobra"

	"github.com/temirov/gitup/internal/gitrepo"
	"github.com/temirov/gitup/internal/update"
)

const (
	pullUseConstant                   = "pull"
	pullShortDescriptionConstant      = "Fetch and merge tracked changes for every repository under a folder"
	pullLongDescriptionConstant       = "pull walks the subdirectories of a root folder, fetches once per clean repository, and merges tracked changes on the current branch plus any included branches."
	pullPreparationActionNameConstant = "fetch"
	pullActionNameConstant            = "merge"
	pullStatusTemplateConstant        = "Pulling repositories under %s\n"
)

// PullCommandBuilder assembles the pull command.
type PullCommandBuilder struct {
	LoggerProvider               LoggerProvider
	GitExecutor                  gitrepo.GitExecutor
	RepositoryManager            update.RepositoryManager
	RepositoryScanner            update.RepositoryScanner
	HumanReadableLoggingProvider func() bool
	ConfigurationProvider        func() PullConfiguration
}

// Build constructs the pull command.
func (builder *PullCommandBuilder) Build() (*cobra.Command, error) {
	command := &cobra.Command{
		Use:   pullUseConstant,
		Short: pullShortDescriptionConstant,
		Long:  pullLongDescriptionConstant,
		RunE:  builder.run,
	}

	command.Flags().String(pathFlagNameConstant, "", pathFlagUsageConstant)
	command.Flags().String(paramsFlagNameConstant, "", paramsFlagUsageConstant)
	command.Flags().String(includeBranchesFlagNameConstant, "", includeBranchesFlagUsageConstant)
	command.Flags().Bool(scanSubdirectoriesFlagNameConstant, false, scanSubdirectoriesFlagUsageConstant)

	return command, nil
}

func (builder *PullCommandBuilder) run(command *cobra.Command, _ []string) error {
	configuration := builder.resolveConfiguration()

	if command.Flags().Changed(pathFlagNameConstant) {
		configuration.Path, _ = command.Flags().GetString(pathFlagNameConstant)
	}
	if command.Flags().Changed(paramsFlagNameConstant) {
		configuration.Params, _ = command.Flags().GetString(paramsFlagNameConstant)
	}
	if command.Flags().Changed(includeBranchesFlagNameConstant) {
		configuration.IncludeBranches, _ = command.Flags().GetString(includeBranchesFlagNameConstant)
	}
	if command.Flags().Changed(scanSubdirectoriesFlagNameConstant) {
		configuration.ScanSubdirectories, _ = command.Flags().GetBool(scanSubdirectoriesFlagNameConstant)
	}

	rootPath, pathError := resolveRootPath(configuration.Path)
	if pathError != nil {
		return pathError
	}

	logger := resolveLogger(builder.LoggerProvider)
	gitExecutor, executorError := resolveGitExecutor(builder.GitExecutor, logger, resolveHumanReadableLogging(builder.HumanReadableLoggingProvider))
	if executorError != nil {
		return executorError
	}

	repositoryManager, managerError := resolveRepositoryManager(builder.RepositoryManager, gitExecutor)
	if managerError != nil {
		return managerError
	}

	service, serviceError := update.NewService(update.Dependencies{
		RepositoryManager: repositoryManager,
		RepositoryScanner: resolveRepositoryScanner(builder.RepositoryScanner),
		Logger:            logger,
		Output:            command.OutOrStdout(),
	})
	if serviceError != nil {
		return serviceError
	}

	fmt.Fprintf(command.OutOrStdout(), pullStatusTemplateConstant, rootPath)

	return service.Update(command.Context(), update.Configuration{
		Path:               rootPath,
		PreparationAction:  pullPreparationActionNameConstant,
		Action:             pullActionNameConstant,
		ActionArguments:    splitActionParams(configuration.Params),
		IncludeBranches:    configuration.IncludeBranches,
		ScanSubdirectories: configuration.ScanSubdirectories,
		ShowBranchName:     true,
	})
}

func (builder *PullCommandBuilder) resolveConfiguration() PullConfiguration {
	if builder.ConfigurationProvider == nil {
		defaults := DefaultToolsConfiguration()
		return defaults.Pull
	}
	return builder.ConfigurationProvider().sanitize()
}
