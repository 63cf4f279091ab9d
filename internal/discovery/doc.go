// Package discovery locates git repositories for bulk update operations.
//
// FilesystemRepositoryScanner enumerates immediate subdirectories and checks
// for git metadata without searching upward or into nested directories.
package discovery
