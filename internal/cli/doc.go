// Package cli wires together the Cobra command tree for the chronicle binary.
//
// The root command resolves the repository, loads configuration, runs the
// history fetch and writes the rendered document. Subcommands manage the
// config file and the detail cache. Any failure prints one "Error:" line on
// stderr and exits 1.
package cli
