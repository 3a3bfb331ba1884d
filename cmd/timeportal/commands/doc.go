// Package commands wires the timeportal CLI.
//
// The root command runs the interactive booking wizard. Subcommands book a
// journey headlessly, manage the config file and list destinations.
package commands
