// Package gitrepo performs repository-level git operations for gitup.
//
// RepositoryManager wraps a shell executor to read the current branch,
// inspect working tree cleanliness, switch branches, and run caller-supplied
// git actions against a repository directory.
package gitrepo
