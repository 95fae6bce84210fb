package flatten

import "strings"

// Separator joins path segments in their flattened form.
const Separator = "_"

// Path is the sequence of mapping keys from the document root to a node.
type Path []string

// Child returns a new path with key appended. The receiver is not modified.
func (p Path) Child(key string) Path {
	out := make(Path, len(p), len(p)+1)
	copy(out, p)
	return append(out, key)
}

// String returns the flattened, normalized form of the path.
func (p Path) String() string {
	return NormalizeKey(strings.Join(p, Separator))
}

// NormalizeKey rewrites dashes to underscores.
func NormalizeKey(s string) string {
	return strings.ReplaceAll(s, "-", "_")
}
