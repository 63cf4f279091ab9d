package discovery_test

import (
	"os"
	"path/filepath"
	"testing"

	"github.com/stretchr/testify/require"

	"github.com/temirov/gitup/internal/discovery"
)

func TestListSubdirectoriesReturnsSortedImmediateDirectories(testInstance *testing.T) {
	rootDirectory := testInstance.TempDir()
	require.NoError(testInstance, os.MkdirAll(filepath.Join(rootDirectory, "zeta"), 0o755))
	require.NoError(testInstance, os.MkdirAll(filepath.Join(rootDirectory, "alpha", "nested"), 0o755))
	require.NoError(testInstance, os.WriteFile(filepath.Join(rootDirectory, "notes.txt"), []byte("ignored"), 0o600))

	scanner := discovery.NewFilesystemRepositoryScanner()
	subdirectories, listError := scanner.ListSubdirectories(rootDirectory)
	require.NoError(testInstance, listError)
	require.Equal(testInstance, []string{
		filepath.Join(rootDirectory, "alpha"),
		filepath.Join(rootDirectory, "zeta"),
	}, subdirectories)
}

func TestListSubdirectoriesReportsMissingRoot(testInstance *testing.T) {
	scanner := discovery.NewFilesystemRepositoryScanner()
	_, listError := scanner.ListSubdirectories(filepath.Join(testInstance.TempDir(), "missing"))
	require.Error(testInstance, listError)
}

func TestHasGitMetadataDetectsDirectEntriesOnly(testInstance *testing.T) {
	rootDirectory := testInstance.TempDir()
	repositoryDirectory := filepath.Join(rootDirectory, "repository")
	require.NoError(testInstance, os.MkdirAll(filepath.Join(repositoryDirectory, ".git"), 0o755))
	plainDirectory := filepath.Join(rootDirectory, "plain")
	require.NoError(testInstance, os.MkdirAll(filepath.Join(plainDirectory, "child"), 0o755))

	scanner := discovery.NewFilesystemRepositoryScanner()
	require.True(testInstance, scanner.HasGitMetadata(repositoryDirectory))
	require.False(testInstance, scanner.HasGitMetadata(plainDirectory))
}

func TestHasGitMetadataAcceptsGitFileEntries(testInstance *testing.T) {
	repositoryDirectory := testInstance.TempDir()
	require.NoError(testInstance, os.WriteFile(filepath.Join(repositoryDirectory, ".git"), []byte("gitdir: ../worktrees/repository"), 0o600))

	scanner := discovery.NewFilesystemRepositoryScanner()
	require.True(testInstance, scanner.HasGitMetadata(repositoryDirectory))
}
