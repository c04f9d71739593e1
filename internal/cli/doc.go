// Package cli defines the Cobra command tree for the kff CLI. Each file in
// this package registers one top-level command (generate, list, install,
// doctor, config, version) with the root command. Commands only parse flags
// and format output; the work is done by the internal packages.
package cli
