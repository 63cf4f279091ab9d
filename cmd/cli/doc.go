// Package cli constructs the gitup command-line interface, wiring the
// configuration loader, structured logger, and updater subcommands into a
// single Cobra root command.
package cli
