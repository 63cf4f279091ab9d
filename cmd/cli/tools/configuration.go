package tools

import "strings"

const (
	fetchConfigurationKeyConstant              = "fetch"
	pullConfigurationKeyConstant               = "pull"
	optimizeConfigurationKeyConstant           = "optimize"
	configurationPathKeyConstant               = "path"
	configurationParamsKeyConstant             = "params"
	configurationIncludeBranchesKeyConstant    = "include_branches"
	configurationScanSubdirectoriesKeyConstant = "scan_subdirectories"
)

// ToolsConfiguration captures updater command configuration sections.
type ToolsConfiguration struct {
	Fetch    FetchConfiguration    `mapstructure:"fetch"`
	Pull     PullConfiguration     `mapstructure:"pull"`
	Optimize OptimizeConfiguration `mapstructure:"optimize"`
}

// FetchConfiguration describes configuration values for the fetch command.
type FetchConfiguration struct {
	Path               string `mapstructure:"path"`
	Params             string `mapstructure:"params"`
	ScanSubdirectories bool   `mapstructure:"scan_subdirectories"`
}

// PullConfiguration describes configuration values for the pull command.
type PullConfiguration struct {
	Path               string `mapstructure:"path"`
	Params             string `mapstructure:"params"`
	IncludeBranches    string `mapstructure:"include_branches"`
	ScanSubdirectories bool   `mapstructure:"scan_subdirectories"`
}

// OptimizeConfiguration describes configuration values for the optimize command.
type OptimizeConfiguration struct {
	Path               string `mapstructure:"path"`
	Params             string `mapstructure:"params"`
	ScanSubdirectories bool   `mapstructure:"scan_subdirectories"`
}

// DefaultToolsConfiguration returns baseline configuration values for updater commands.
func DefaultToolsConfiguration() ToolsConfiguration {
	return ToolsConfiguration{}
}

// DefaultConfigurationValues produces Viper defaults for updater commands.
func DefaultConfigurationValues(rootKey string) map[string]any {
	defaults := DefaultToolsConfiguration()
	return map[string]any{
		rootKey + "." + fetchConfigurationKeyConstant + "." + configurationPathKeyConstant:                  defaults.Fetch.Path,
		rootKey + "." + fetchConfigurationKeyConstant + "." + configurationParamsKeyConstant:                defaults.Fetch.Params,
		rootKey + "." + fetchConfigurationKeyConstant + "." + configurationScanSubdirectoriesKeyConstant:    defaults.Fetch.ScanSubdirectories,
		rootKey + "." + pullConfigurationKeyConstant + "." + configurationPathKeyConstant:                   defaults.Pull.Path,
		rootKey + "." + pullConfigurationKeyConstant + "." + configurationParamsKeyConstant:                 defaults.Pull.Params,
		rootKey + "." + pullConfigurationKeyConstant + "." + configurationIncludeBranchesKeyConstant:        defaults.Pull.IncludeBranches,
		rootKey + "." + pullConfigurationKeyConstant + "." + configurationScanSubdirectoriesKeyConstant:     defaults.Pull.ScanSubdirectories,
		rootKey + "." + optimizeConfigurationKeyConstant + "." + configurationPathKeyConstant:               defaults.Optimize.Path,
		rootKey + "." + optimizeConfigurationKeyConstant + "." + configurationParamsKeyConstant:             defaults.Optimize.Params,
		rootKey + "." + optimizeConfigurationKeyConstant + "." + configurationScanSubdirectoriesKeyConstant: defaults.Optimize.ScanSubdirectories,
	}
}

// sanitize normalizes fetch configuration values.
func (configuration FetchConfiguration) sanitize() FetchConfiguration {
	sanitized := configuration
	sanitized.Path = strings.TrimSpace(configuration.Path)
	sanitized.Params = strings.TrimSpace(configuration.Params)
	return sanitized
}

// sanitize normalizes pull configuration values.
func (configuration PullConfiguration) sanitize() PullConfiguration {
	sanitized := configuration
	sanitized.Path = strings.TrimSpace(configuration.Path)
	sanitized.Params = strings.TrimSpace(configuration.Params)
	sanitized.IncludeBranches = strings.TrimSpace(configuration.IncludeBranches)
	return sanitized
}

// sanitize normalizes optimize configuration values.
func (configuration OptimizeConfiguration) sanitize() OptimizeConfiguration {
	sanitized := configuration
	sanitized.Path = strings.TrimSpace(configuration.Path)
	sanitized.Params = strings.TrimSpace(configuration.Params)
	return sanitized
}
