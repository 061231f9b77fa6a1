// Package commands defines the declaration CLI and wires dependencies for subcommands.
//
// Commands
//
//   - (none)     Open the interactive form
//   - export     Render and save the zip from flags
//   - palettes   List palettes with colour swatches
//   - preview    Write the 400x225 preview card as PNG
//
// # Implementation
//
// The root command loads configuration, opens the log file and loads fonts
// before any subcommand runs; the post-run hook releases them.
package commands
