package tools

import (
	"os"
	"strings"

	"go.uber.org/zap"
)

const (
	pathFlagNameConstant                = "path"
	pathFlagUsageConstant               = "Root folder whose subdirectories are scanned for repositories (defaults to the current directory)."
	paramsFlagNameConstant              = "params"
	paramsFlagUsageConstant             = "Additional arguments forwarded to the git action."
	scanSubdirectoriesFlagNameConstant  = "scan-subdirectories"
	scanSubdirectoriesFlagUsageConstant = "Scan non-repository subdirectories for nested repositories."
	includeBranchesFlagNameConstant     = "include-branches"
	includeBranchesFlagUsageConstant    = "Comma-separated branch names to update in addition to the current branch."
)

// LoggerProvider yields a zap logger for command execution.
type LoggerProvider func() *zap.Logger

func resolveLogger(provider LoggerProvider) *zap.Logger {
	if provider == nil {
		return zap.NewNop()
	}
	logger := provider()
	if logger == nil {
		return zap.NewNop()
	}
	return logger
}

func resolveHumanReadableLogging(provider func() bool) bool {
	if provider == nil {
		return false
	}
	return provider()
}

// resolveRootPath falls back to the process working directory when no path is configured.
func resolveRootPath(configuredPath string) (string, error) {
	trimmedPath := strings.TrimSpace(configuredPath)
	if len(trimmedPath) > 0 {
		return trimmedPath, nil
	}
	return os.Getwd()
}

// splitActionParams turns a raw parameter string into git action arguments.
func splitActionParams(rawParams string) []string {
	return strings.Fields(rawParams)
}
