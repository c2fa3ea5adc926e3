// Package pathutil provides the optional path-canonicalization helper
// spec.md §6 assigns to the caller, not the cache: "the cache never
// normalizes paths."
package pathutil

import "path/filepath"

// Canonicalize resolves path to an absolute, symlink-free form suitable
// for use as a cache key. Callers that want two different spellings of the
// same file to hit the same cache entry should call this before handing
// the path to cache.Client.
func Canonicalize(path string) (string, error) {
	abs, err := filepath.Abs(path)
	if err != nil {
		return "", err
	}
	resolved, err := filepath.EvalSymlinks(abs)
	if err != nil {
		return "", err
	}
	return resolved, nil
}
