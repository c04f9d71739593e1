// Package repository locates templates by name and makes them available in
// the local template cache.
//
// A template already present in the cache directory is used as is. Otherwise
// the remote registry index is consulted and the matching repository is
// cloned, with submodules, into the cache. Remote templates are always
// re-cloned so that a stale copy is never reused.
package repository
