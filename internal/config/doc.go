// Package config defines the application configuration model and the Loader
// interface for reading it from files.
//
// The `config.Config` is the single source of truth for the `app` package.
// Values come from three layers, later ones winning: built-in defaults, an
// optional HCL configuration file (or directory of files), and command-line
// flags applied by the `cli` package. The merged result is checked with
// Validate before use.
package config
