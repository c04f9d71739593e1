// Package installer sets up the Kindle cross-compilation environment: it
// downloads and unpacks prebuilt koxtoolchain releases from GitHub and
// builds the Kindle SDK from its git repository.
package installer
