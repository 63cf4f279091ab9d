package execshell

// CommandEventObserver receives lifecycle notifications for git subprocess
// execution. The executor always emits structured telemetry; observers add
// channel-specific rendering, such as the console lines produced when
// human-readable logging is enabled.
type CommandEventObserver interface {
	// CommandStarted fires immediately before the runner spawns the process.
	CommandStarted(command ShellCommand)
	// CommandCompleted fires once the process exits, whatever the exit code.
	CommandCompleted(command ShellCommand, result ExecutionResult)
	// CommandExecutionFailed fires when the runner could not produce a result at all.
	CommandExecutionFailed(command ShellCommand, failure error)
}

// discardCommandEventObserver keeps the executor's observer non-nil between registrations.
type discardCommandEventObserver struct{}

func (discardCommandEventObserver) CommandStarted(ShellCommand) {}

func (discardCommandEventObserver) CommandCompleted(ShellCommand, ExecutionResult) {}

func (discardCommandEventObserver) CommandExecutionFailed(ShellCommand, error) {}
