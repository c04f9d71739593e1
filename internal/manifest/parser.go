package manifest

import (
	"bytes"
	"encoding/json"
	"errors"
	"fmt"
	"strings"

	"github.com/Masterminds/semver/v3"
	"github.com/go-git/go-billy/v5"
	"github.com/progzone122/kff/internal/fsutil"
)

// ErrMalformed is returned when a manifest is missing, unreadable, or does
// not match the descriptor schema.
var ErrMalformed = errors.New("malformed template manifest")

// ErrIncompatible is returned when a template requires a different kff version.
var ErrIncompatible = errors.New("template is incompatible with this kff version")

// Parse reads the manifest at path and returns the validated descriptor.
// Placeholder bindings are not checked against the question list.
func Parse(fs billy.Filesystem, path string) (*Descriptor, error) {
	data, err := fsutil.ReadFile(fs, path)
	if err != nil {
		return nil, fmt.Errorf("%w: reading %s: %w", ErrMalformed, path, err)
	}
	return ParseBytes(data, path)
}

// ParseBytes validates and decodes manifest content. name is used in errors.
func ParseBytes(data []byte, name string) (*Descriptor, error) {
	result, err := Validate(data)
	if err != nil {
		return nil, fmt.Errorf("%w: %s: %w", ErrMalformed, name, err)
	}
	if !result.Valid {
		return nil, fmt.Errorf("%w: %s: %s", ErrMalformed, name, result.Summary())
	}

	dec := json.NewDecoder(bytes.NewReader(data))
	dec.UseNumber()
	dec.DisallowUnknownFields()

	var d Descriptor
	if err := dec.Decode(&d); err != nil {
		return nil, fmt.Errorf("%w: decoding %s: %w", ErrMalformed, name, err)
	}

	if err := checkUniqueNames(d.Questions); err != nil {
		return nil, fmt.Errorf("%w: %s: %w", ErrMalformed, name, err)
	}

	if d.Requires != "" {
		if _, err := semver.NewConstraint(d.Requires); err != nil {
			return nil, fmt.Errorf("%w: %s: invalid requires constraint %q: %w", ErrMalformed, name, d.Requires, err)
		}
	}

	return &d, nil
}

// CheckRequires verifies that version satisfies the descriptor's requires
// constraint. Development builds and unparseable versions are not checked.
func (d *Descriptor) CheckRequires(version string) error {
	if d.Requires == "" || version == "" || version == "dev" {
		return nil
	}
	c, err := semver.NewConstraint(d.Requires)
	if err != nil {
		return fmt.Errorf("%w: invalid requires constraint %q: %w", ErrMalformed, d.Requires, err)
	}
	v, err := semver.NewVersion(strings.TrimPrefix(version, "v"))
	if err != nil {
		return nil
	}
	if !c.Check(v) {
		return fmt.Errorf("%w: requires kff %s, running %s", ErrIncompatible, d.Requires, version)
	}
	return nil
}

func checkUniqueNames(questions []Question) error {
	seen := make(map[string]bool, len(questions))
	for _, q := range questions {
		if seen[q.Name] {
			return fmt.Errorf("duplicate question name %q", q.Name)
		}
		seen[q.Name] = true
	}
	return nil
}
