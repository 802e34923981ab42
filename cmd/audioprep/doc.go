// Package main hosts the audioprep CLI entrypoint and command graph.
//
// The Cobra command tree indexes labelled audio datasets, runs preprocessing
// jobs, previews loader batch plans and inspects the run manifest. Config
// resolution and logger setup live in the command context so subcommands only
// translate flags into calls on the internal packages.
package main
