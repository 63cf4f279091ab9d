package tools_test

import (
	"testing"

	mapstructure "github.com/go-viper/mapstructure/v2"
	"github.com/stretchr/testify/require"

	"github.com/temirov/gitup/cmd/cli/tools"
)

const toolsConfigurationRootKeyConstant = "tools"

func decodeToolsConfiguration(testInstance *testing.T, options map[string]any, target any) {
	testInstance.Helper()

	decoder, decoderError := mapstructure.NewDecoder(&mapstructure.DecoderConfig{TagName: "mapstructure", Result: target})
	require.NoError(testInstance, decoderError)
	require.NoError(testInstance, decoder.Decode(options))
}

func TestToolsConfigurationDecodesFromOptionMaps(testInstance *testing.T) {
	options := map[string]any{
		"fetch": map[string]any{
			"path":                "/srv/projects",
			"params":              "--prune",
			"scan_subdirectories": true,
		},
		"pull": map[string]any{
			"include_branches": "develop, release",
		},
		"optimize": map[string]any{
			"params": "--aggressive",
		},
	}

	var configuration tools.ToolsConfiguration
	decodeToolsConfiguration(testInstance, options, &configuration)

	require.Equal(testInstance, "/srv/projects", configuration.Fetch.Path)
	require.Equal(testInstance, "--prune", configuration.Fetch.Params)
	require.True(testInstance, configuration.Fetch.ScanSubdirectories)
	require.Equal(testInstance, "develop, release", configuration.Pull.IncludeBranches)
	require.Equal(testInstance, "--aggressive", configuration.Optimize.Params)
}

func TestDefaultConfigurationValuesCoverEveryCommandKey(testInstance *testing.T) {
	defaultValues := tools.DefaultConfigurationValues(toolsConfigurationRootKeyConstant)

	expectedKeys := []string{
		"tools.fetch.path",
		"tools.fetch.params",
		"tools.fetch.scan_subdirectories",
		"tools.pull.path",
		"tools.pull.params",
		"tools.pull.include_branches",
		"tools.pull.scan_subdirectories",
		"tools.optimize.path",
		"tools.optimize.params",
		"tools.optimize.scan_subdirectories",
	}

	require.Len(testInstance, defaultValues, len(expectedKeys))
	for _, expectedKey := range expectedKeys {
		require.Contains(testInstance, defaultValues, expectedKey)
	}
}
