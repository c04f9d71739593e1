// Package doctor inspects the local Kindle development environment: the
// KSDK installation, the template cache, required build tools and,
// optionally, the template registry and a template manifest.
package doctor
