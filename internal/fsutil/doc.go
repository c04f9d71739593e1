// Package fsutil is the filesystem provider used by the generation pipeline:
// recursive copy and remove, whole-file read and write, and existence checks
// over a billy.Filesystem. Production code runs on the host filesystem via
// OS(); tests swap in an in-memory filesystem.
package fsutil
