// Package tools wires the gitup fetch, pull, and optimize commands over the
// repository updater service.
package tools
