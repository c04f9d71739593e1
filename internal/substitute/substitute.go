package substitute

import (
	"errors"
	"fmt"
	"os"
	"path"
	"path/filepath"
	"strings"

	"github.com/go-git/go-billy/v5"
	"github.com/progzone122/kff/internal/fsutil"
	"github.com/progzone122/kff/internal/manifest"
)

var (
	// ErrFileNotFound is matched by *FileNotFoundError.
	ErrFileNotFound = errors.New("template file not found")
	// ErrIO wraps read and write failures on template files.
	ErrIO = errors.New("template file i/o failed")
)

// FileNotFoundError reports a manifest entry naming a file that does not
// exist under the template root, or a path that leaves it.
type FileNotFoundError struct {
	Path string
}

func (e *FileNotFoundError) Error() string {
	return fmt.Sprintf("template file not found: %s", e.Path)
}

// Is reports whether target is ErrFileNotFound.
func (e *FileNotFoundError) Is(target error) bool {
	return target == ErrFileNotFound
}

// Lookup returns the answer bound to a question name.
type Lookup interface {
	Get(name string) (string, bool)
}

// Result summarizes one Apply call.
type Result struct {
	Files        []string // files rewritten, manifest order
	Replacements int      // placeholders whose binding resolved
	Skipped      []string // "<file>: <binding>" for unresolved bindings
}

// Apply rewrites every file listed in d under root. Each placeholder token
// is replaced by the answer its binding names; bindings without an answer
// leave the token untouched. The first failure stops processing and files
// already rewritten keep their new content.
func Apply(fs billy.Filesystem, d *manifest.Descriptor, answers Lookup, root string) (*Result, error) {
	result := &Result{}
	for _, spec := range d.Files {
		target, err := resolve(root, spec.File)
		if err != nil {
			return result, err
		}

		info, err := fs.Stat(target)
		if err != nil {
			if errors.Is(err, os.ErrNotExist) {
				return result, &FileNotFoundError{Path: spec.File}
			}
			return result, fmt.Errorf("%w: stat %s: %w", ErrIO, spec.File, err)
		}
		if info.IsDir() {
			return result, fmt.Errorf("%w: %s is a directory", ErrIO, spec.File)
		}

		data, err := fsutil.ReadFile(fs, target)
		if err != nil {
			return result, fmt.Errorf("%w: %w", ErrIO, err)
		}

		content := string(data)
		for _, p := range spec.Placeholders {
			value, ok := answers.Get(p.Key())
			if !ok {
				result.Skipped = append(result.Skipped, spec.File+": "+p.Binding)
				continue
			}
			content = strings.ReplaceAll(content, p.Token, value)
			result.Replacements++
		}

		if err := fsutil.WriteFile(fs, target, []byte(content), info.Mode().Perm()); err != nil {
			return result, fmt.Errorf("%w: %w", ErrIO, err)
		}
		result.Files = append(result.Files, spec.File)
	}
	return result, nil
}

// resolve joins file onto root, rejecting absolute paths and paths that
// climb out of root.
func resolve(root, file string) (string, error) {
	clean := filepath.ToSlash(file)
	if !filepath.IsLocal(clean) {
		return "", &FileNotFoundError{Path: file}
	}
	return path.Join(root, clean), nil
}
