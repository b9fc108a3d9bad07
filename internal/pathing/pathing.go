package pathing

import (
	"path/filepath"
	"strings"
)

// NormalizeInputPath trims user supplied paths and strips one layer of
// matching surrounding quotes, as left behind when pasting paths with spaces.
func NormalizeInputPath(path string) string {
	path = strings.TrimSpace(path)
	if len(path) >= 2 {
		first, last := path[0], path[len(path)-1]
		if first == last && (first == '"' || first == '\'') {
			path = path[1 : len(path)-1]
		}
	}
	return path
}

// IsAbsoluteLike reports whether the path should be treated as absolute
// regardless of host OS path semantics.
func IsAbsoluteLike(path string) bool {
	if path == "" {
		return false
	}
	if filepath.IsAbs(path) {
		return true
	}
	if strings.HasPrefix(path, `\\`) || strings.HasPrefix(path, `//`) {
		return true
	}
	if strings.HasPrefix(path, "/") {
		return true
	}
	if len(path) >= 3 && isASCIIAlpha(path[0]) && path[1] == ':' && (path[2] == '\\' || path[2] == '/') {
		return true
	}

	return false
}

// Resolve normalizes raw input and makes it absolute against the working
// directory. When resolution fails the normalized input is returned as given.
func Resolve(raw string) string {
	path := NormalizeInputPath(raw)
	if path == "" {
		return ""
	}
	if IsAbsoluteLike(path) {
		if filepath.IsAbs(path) {
			return filepath.Clean(path)
		}
		return path
	}

	resolved, err := filepath.Abs(path)
	if err != nil {
		return path
	}
	return resolved
}

func isASCIIAlpha(char byte) bool {
	return (char >= 'a' && char <= 'z') || (char >= 'A' && char <= 'Z')
}
