package update

// Configuration is the immutable parameter bundle for a single updater run.
//
// PreparationAction runs once per repository before any branch switching,
// Action runs once per visited branch, and CompletionAction runs once after
// the original branch has been restored. Empty action names are skipped.
type Configuration struct {
	Path                 string
	PreparationAction    string
	PreparationArguments []string
	Action               string
	ActionArguments      []string
	CompletionAction     string
	CompletionArguments  []string
	IncludeBranches      string
	ScanSubdirectories   bool
	ShowBranchName       bool
	MuteFinalMessage     bool
}
