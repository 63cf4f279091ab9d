package update

import "strings"

const branchListSeparatorConstant = ","

// BuildBranchList derives the ordered branch names an update visits.
//
// When includeBranches is empty the list is just the current branch. When it
// carries comma-separated names the current branch is prepended, entries are
// trimmed, empties dropped, and duplicates removed preserving first
// occurrence.
func BuildBranchList(currentBranch string, includeBranches string) []string {
	trimmedCurrentBranch := strings.TrimSpace(currentBranch)
	trimmedIncludeBranches := strings.TrimSpace(includeBranches)
	if len(trimmedIncludeBranches) == 0 {
		return []string{trimmedCurrentBranch}
	}

	combinedBranches := trimmedCurrentBranch + branchListSeparatorConstant + trimmedIncludeBranches
	branchCandidates := strings.Split(combinedBranches, branchListSeparatorConstant)

	seenBranches := make(map[string]struct{}, len(branchCandidates))
	branchNames := make([]string, 0, len(branchCandidates))
	for _, branchCandidate := range branchCandidates {
		branchName := strings.TrimSpace(branchCandidate)
		if len(branchName) == 0 {
			continue
		}
		if _, alreadySeen := seenBranches[branchName]; alreadySeen {
			continue
		}
		seenBranches[branchName] = struct{}{}
		branchNames = append(branchNames, branchName)
	}
	return branchNames
}
