// Package validation rejects ALZ entry names and symlink targets that
// would write outside an extraction root, mirroring the reference
// extractor's traversal checks and adding a lexical check of the cleaned
// destination path; the filesystem itself (existing symlinks) is not
// consulted.
package validation

import (
	"path/filepath"
	"strings"
)

// ContainsTraversal reports whether name contains a literal "../" or
// "..\" component, the cheap first-line check the reference extractor
// applies before any filesystem resolution.
func ContainsTraversal(name string) bool {
	return strings.Contains(name, "../") || strings.Contains(name, `..\`)
}

// NormalizeEntryName converts backslash separators to forward slashes, the
// form ALZ archives created on Windows store directory names in.
func NormalizeEntryName(name string) string {
	return strings.ReplaceAll(name, `\`, "/")
}

// ResolveWithinRoot joins name onto root and confirms the resulting path,
// once ".." segments are cleaned, still lives under root. It returns the
// resolved destination path, or an error if name would escape root.
func ResolveWithinRoot(root, name string) (string, error) {
	name = NormalizeEntryName(name)
	if ContainsTraversal(name) || filepath.IsAbs(name) {
		return "", &TraversalError{Name: name}
	}

	dest := filepath.Join(root, name)
	cleanRoot := filepath.Clean(root) + string(filepath.Separator)
	cleanDest := filepath.Clean(dest)
	if cleanDest != filepath.Clean(root) && !strings.HasPrefix(cleanDest+string(filepath.Separator), cleanRoot) {
		return "", &TraversalError{Name: name}
	}
	return dest, nil
}

// ValidSymlinkTarget reports whether target, the decompressed payload of a
// symlink entry, is safe to create: relative, and free of ".." traversal.
func ValidSymlinkTarget(target string) bool {
	if filepath.IsAbs(target) {
		return false
	}
	return !ContainsTraversal(NormalizeEntryName(target))
}

// TraversalError reports a name or symlink target that would escape the
// extraction root.
type TraversalError struct {
	Name string
}

func (e *TraversalError) Error() string {
	return "alzkit: path traversal blocked: " + e.Name
}
