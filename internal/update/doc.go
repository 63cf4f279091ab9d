// Package update implements the bulk repository updater behind the gitup
// fetch, pull, and optimize commands.
//
// Service walks the immediate subdirectories of a root path, gates every
// repository on a clean worktree, iterates a derived branch list, runs the
// configured git action per branch, and always restores the originally
// checked-out branch before moving on.
package update
