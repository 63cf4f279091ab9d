// Package utils hosts shared infrastructure for the gitup CLI: the viper
// configuration loader and the zap logger factory.
package utils
