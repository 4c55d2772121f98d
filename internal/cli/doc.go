// Package cli is responsible for parsing command-line arguments, validating
// user input, and handling process-level concerns like exit codes. It merges
// built-in defaults, an optional HCL config file and flags into the
// application's configuration, then dispatches to the app.
package cli
