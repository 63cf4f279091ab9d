package tools

import (
	"fmt"

	"github.com/spf13/cobra"

	"github.com/temirov/gitup/internal/gitrepo"
	"github.com/temirov/gitup/internal/update"
)

const (
	fetchUseConstant              = "fetch"
	fetchShortDescriptionConstant = "Fetch remote updates for every repository under a folder"
	fetchLongDescriptionConstant  = "fetch walks the subdirectories of a root folder and runs git fetch in every clean repository."
	fetchActionNameConstant       = "fetch"
	fetchStatusTemplateConstant   = "Fetching repositories under %s\n"
)

// FetchCommandBuilder assembles the fetch command.
type FetchCommandBuilder struct {
	LoggerProvider               LoggerProvider
	GitExecutor                  gitrepo.GitExecutor
	RepositoryManager            update.RepositoryManager
	RepositoryScanner            update.RepositoryScanner
	HumanReadableLoggingProvider func() bool
	ConfigurationProvider        func() FetchConfiguration
}

// Build constructs the fetch command.
func (builder *FetchCommandBuilder) Build() (*cobra.Command, error) {
	command := &cobra.Command{
		Use:   fetchUseConstant,
		Short: fetchShortDescriptionConstant,
		Long:  fetchLongDescriptionConstant,
		RunE:  builder.run,
	}

	command.Flags().String(pathFlagNameConstant, "", pathFlagUsageConstant)
	command.Flags().String(paramsFlagNameConstant, "", paramsFlagUsageConstant)
	command.Flags().Bool(scanSubdirectoriesFlagNameConstant, false, scanSubdirectoriesFlagUsageConstant)

	return command, nil
}

func (builder *FetchCommandBuilder) run(command *cobra.Command, _ []string) error {
	configuration := builder.resolveConfiguration()

	if command.Flags().Changed(pathFlagNameConstant) {
		configuration.Path, _ = command.Flags().GetString(pathFlagNameConstant)
	}
	if command.Flags().Changed(paramsFlagNameConstant) {
		configuration.Params, _ = command.Flags().GetString(paramsFlagNameConstant)
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

	fmt.Fprintf(command.OutOrStdout(), fetchStatusTemplateConstant, rootPath)

	return service.Update(command.Context(), update.Configuration{
		Path:               rootPath,
		Action:             fetchActionNameConstant,
		ActionArguments:    splitActionParams(configuration.Params),
		ScanSubdirectories: configuration.ScanSubdirectories,
	})
}

func (builder *FetchCommandBuilder) resolveConfiguration() FetchConfiguration {
	if builder.ConfigurationProvider == nil {
		defaults := DefaultToolsConfiguration()
		return defaults.Fetch
	}
	return builder.ConfigurationProvider().sanitize()
}
