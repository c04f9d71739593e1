package repository

import (
	"errors"
	"fmt"
	"strings"
)

// Source tells where a resolved template comes from.
type Source int

const (
	// SourceLocal is a template already present in the cache directory.
	SourceLocal Source = iota
	// SourceRemote is a template listed in the registry index.
	SourceRemote
)

func (s Source) String() string {
	switch s {
	case SourceLocal:
		return "local"
	case SourceRemote:
		return "remote"
	default:
		return fmt.Sprintf("Source(%d)", int(s))
	}
}

// Reference identifies a resolved template. URL is set for remote templates.
type Reference struct {
	Name   string
	Source Source
	URL    string
}

var (
	// ErrNotFound means no local template and no registry entry match the name.
	ErrNotFound = errors.New("template not found")
	// ErrRegistryUnavailable wraps transport, status and decoding failures
	// while fetching the registry index.
	ErrRegistryUnavailable = errors.New("template registry unavailable")
	// ErrInvalidName rejects names that cannot be used as a directory name.
	ErrInvalidName = errors.New("invalid template name")
)

// FetchError reports a failed clone of a remote template.
type FetchError struct {
	URL string
	Err error
}

func (e *FetchError) Error() string {
	return fmt.Sprintf("fetching template from %s: %v", e.URL, e.Err)
}

func (e *FetchError) Unwrap() error { return e.Err }

// ValidateName checks that name is usable as a single path component.
func ValidateName(name string) error {
	switch {
	case name == "", name == ".", name == "..":
		return fmt.Errorf("%w: %q", ErrInvalidName, name)
	case strings.ContainsAny(name, `/\`):
		return fmt.Errorf("%w: %q contains a path separator", ErrInvalidName, name)
	}
	return nil
}
