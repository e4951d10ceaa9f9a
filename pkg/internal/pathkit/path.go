// Package pathkit builds and manipulates the virtual paths stored on folders
// and files. Paths always start with "/", use "/" separators, and never end
// with a trailing slash (except the root itself).
package pathkit

import (
	"strings"
	"unicode"
)

// Slugify normalizes a display name into a path segment: whitespace runs
// become a single underscore, characters outside [A-Za-z0-9_.-] are dropped,
// and leading/trailing separators are trimmed. An empty result means the name
// has no path-safe characters; callers reject that as invalid input.
func Slugify(name string) string {
	var b strings.Builder

	b.Grow(len(name))

	prevSep := true // swallow leading separators

	for _, r := range name {
		switch {
		case unicode.IsSpace(r):
			if !prevSep {
				b.WriteByte('_')
				prevSep = true
			}
		case r >= 'a' && r <= 'z', r >= 'A' && r <= 'Z', r >= '0' && r <= '9',
			r == '.', r == '-':
			b.WriteRune(r)

			prevSep = false
		case r == '_':
			if !prevSep {
				b.WriteByte('_')
				prevSep = true
			}
		}
	}

	return strings.Trim(b.String(), "_-.")
}

// Join appends a segment to a parent path. The parent "" or "/" yields a
// root-level path.
func Join(parentPath, segment string) string {
	if parentPath == "" || parentPath == "/" {
		return "/" + segment
	}

	return parentPath + "/" + segment
}

// Base returns the last segment of a path.
func Base(path string) string {
	if i := strings.LastIndexByte(path, '/'); i >= 0 {
		return path[i+1:]
	}

	return path
}

// Parent returns the parent path of a path; the parent of a root-level path
// is "/".
func Parent(path string) string {
	i := strings.LastIndexByte(path, '/')
	if i <= 0 {
		return "/"
	}

	return path[:i]
}

// IsDescendant reports whether candidate lies strictly inside ancestorPath.
// It compares full segments, so "/docs2" is not a descendant of "/docs".
func IsDescendant(ancestorPath, candidate string) bool {
	return strings.HasPrefix(candidate, ancestorPath+"/")
}

// Rebase swaps the oldPrefix of a path for newPrefix, keeping the remainder.
// The caller guarantees path starts with oldPrefix.
func Rebase(path, oldPrefix, newPrefix string) string {
	return newPrefix + strings.TrimPrefix(path, oldPrefix)
}
