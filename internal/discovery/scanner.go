package discovery

import (
	"os"
	"path/filepath"
	"sort"
)

const gitMetadataDirectoryNameConstant = ".git"

// FilesystemRepositoryScanner inspects directories on disk for git repositories.
type FilesystemRepositoryScanner struct{}

// NewFilesystemRepositoryScanner constructs a scanner backed by os.ReadDir.
func NewFilesystemRepositoryScanner() *FilesystemRepositoryScanner {
	return &FilesystemRepositoryScanner{}
}

// ListSubdirectories returns the immediate subdirectories of the supplied path in sorted order.
func (scanner *FilesystemRepositoryScanner) ListSubdirectories(directoryPath string) ([]string, error) {
	directoryEntries, readError := os.ReadDir(directoryPath)
	if readError != nil {
		return nil, readError
	}

	subdirectories := make([]string, 0, len(directoryEntries))
	for _, directoryEntry := range directoryEntries {
		if !directoryEntry.IsDir() {
			continue
		}
		subdirectories = append(subdirectories, filepath.Join(directoryPath, directoryEntry.Name()))
	}

	sort.Strings(subdirectories)
	return subdirectories, nil
}

// HasGitMetadata reports whether the directory directly contains a .git entry.
func (scanner *FilesystemRepositoryScanner) HasGitMetadata(directoryPath string) bool {
	_, statError := os.Stat(filepath.Join(directoryPath, gitMetadataDirectoryNameConstant))
	return statError == nil
}
