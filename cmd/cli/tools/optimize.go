package tools

import (
	"fmt"

	"github.com/spf13/cobra"

	"github.com/temirov/gitup/internal/gitrepo"
	"github.com/temirov/gitup/internal/update"
)

const (
	optimizeUseConstant              = "optimize"
	optimizeShortDescriptionConstant = "Run git garbage collection for every repository under a folder"
	optimizeLongDescriptionConstant  = "optimize walks the subdirectories of a root folder and runs git gc in every clean repository."
	optimizeActionNameConstant       = "gc"
	optimizeStatusTemplateConstant   = "Optimizing repositories under %s\n"
)

// OptimizeCommandBuilder assembles the optimize command.
type OptimizeCommandBuilder struct {
	LoggerProvider               LoggerProvider
	GitExecutor                  gitrepo.GitExecutor
	RepositoryManager            update.RepositoryManager
	RepositoryScanner            update.RepositoryScanner
	HumanReadableLoggingProvider func() bool
	ConfigurationProvider        func() OptimizeConfiguration
}

// Build constructs the optimize command.
func (builder *OptimizeCommandBuilder) Build() (*cobra.Command, error) {
	command := &cobra.Command{
		Use:   optimizeUseConstant,
		Short: optimizeShortDescriptionConstant,
		Long:  optimizeLongDescriptionConstant,
		RunE:  builder.run,
	}

	command.Flags().String(pathFlagNameConstant, "", pathFlagUsageConstant)
	command.Flags().String(paramsFlagNameConstant, "", paramsFlagUsageConstant)
	command.Flags().Bool(scanSubdirectoriesFlagNameConstant, false, scanSubdirectoriesFlagUsageConstant)

	return command, nil
}

func (builder *OptimizeCommandBuilder) run(command *cobra.Command, _ []string) error {
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

	fmt.Fprintf(command.OutOrStdout(), optimizeStatusTemplateConstant, rootPath)

	return service.Update(command.Context(), update.Configuration{
		Path:               rootPath,
		Action:             optimizeActionNameConstant,
		ActionArguments:    splitActionParams(configuration.Params),
		ScanSubdirectories: configuration.ScanSubdirectories,
	})
}

func (builder *OptimizeCommandBuilder) resolveConfiguration() OptimizeConfiguration {
	if builder.ConfigurationProvider == nil {
		defaults := DefaultToolsConfiguration()
		return defaults.Optimize
	}
	return builder.ConfigurationProvider().sanitize()
}
