// Package ghostscan provides the command-line interface for the
// ghostscan tool. It configures subcommands (scan, rules, report),
// parses flags, and executes the selected command.
//
// Typical usage from a main package:
//
//	package main
//	import "github.com/ghostai/ghostscan/cmd/ghostscan"
//	func main() { ghostscan.Execute() }
package ghostscan
