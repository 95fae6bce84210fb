package document

import (
	"strings"

	"gopkg.in/yaml.v3"
)

const mergeTag = "!!merge"

// Pair is one key/value entry of a mapping node.
type Pair struct {
	Key   string
	Value *yaml.Node
}

// Resolve follows alias nodes to the node they reference.
func Resolve(n *yaml.Node) *yaml.Node {
	for n != nil && n.Kind == yaml.AliasNode {
		n = n.Alias
	}
	return n
}

// IsMapping reports whether n resolves to a mapping node.
func IsMapping(n *yaml.Node) bool {
	n = Resolve(n)
	return n != nil && n.Kind == yaml.MappingNode
}

// IsSequence reports whether n resolves to a sequence node.
func IsSequence(n *yaml.Node) bool {
	n = Resolve(n)
	return n != nil && n.Kind == yaml.SequenceNode
}

// IsNull reports whether n is absent or an explicit YAML null.
func IsNull(n *yaml.Node) bool {
	n = Resolve(n)
	return n == nil || n.Kind == 0 || (n.Kind == yaml.ScalarNode && n.ShortTag() == "!!null")
}

// IsFalsy reports whether n carries no meaningful value: null, false, a zero
// number, an empty string or an empty collection.
func IsFalsy(n *yaml.Node) bool {
	if IsNull(n) {
		return true
	}
	n = Resolve(n)
	switch n.Kind {
	case yaml.MappingNode:
		return len(Pairs(n)) == 0
	case yaml.SequenceNode:
		return len(n.Content) == 0
	case yaml.ScalarNode:
		switch n.ShortTag() {
		case "!!str":
			return n.Value == ""
		case "!!bool":
			var b bool
			return n.Decode(&b) == nil && !b
		case "!!int", "!!float":
			var f float64
			return n.Decode(&f) == nil && f == 0
		}
	}
	return false
}

// IsBlank reports whether n is falsy or a string of whitespace only.
func IsBlank(n *yaml.Node) bool {
	if IsFalsy(n) {
		return true
	}
	n = Resolve(n)
	return n.Kind == yaml.ScalarNode && strings.TrimSpace(n.Value) == ""
}

// Pairs returns the entries of a mapping node in document order. Merge keys
// are expanded: merged entries come first and explicit keys override them
// in place. Later duplicates of a key replace the earlier value. Non-mapping
// nodes have no pairs.
func Pairs(n *yaml.Node) []Pair {
	n = Resolve(n)
	if n == nil || n.Kind != yaml.MappingNode {
		return nil
	}

	var merged, explicit []Pair
	for i := 0; i+1 < len(n.Content); i += 2 {
		key, value := Resolve(n.Content[i]), n.Content[i+1]
		if key.ShortTag() == mergeTag {
			merged = append(merged, mergeSources(value)...)
			continue
		}
		explicit = append(explicit, Pair{Key: key.Value, Value: Resolve(value)})
	}

	out := make([]Pair, 0, len(merged)+len(explicit))
	index := make(map[string]int, cap(out))
	for _, p := range append(merged, explicit...) {
		if i, ok := index[p.Key]; ok {
			out[i].Value = p.Value
			continue
		}
		index[p.Key] = len(out)
		out = append(out, p)
	}
	return out
}

// mergeSources expands the value of a merge key: a mapping or a sequence of
// mappings. Earlier mappings in a sequence take precedence over later ones.
func mergeSources(value *yaml.Node) []Pair {
	value = Resolve(value)
	switch {
	case IsMapping(value):
		return Pairs(value)
	case IsSequence(value):
		var out []Pair
		seen := make(map[string]bool)
		for _, item := range value.Content {
			for _, p := range Pairs(item) {
				if seen[p.Key] {
					continue
				}
				seen[p.Key] = true
				out = append(out, p)
			}
		}
		return out
	}
	return nil
}

// Lookup returns the value stored under key in mapping n.
func Lookup(n *yaml.Node, key string) (*yaml.Node, bool) {
	for _, p := range Pairs(n) {
		if p.Key == key {
			return p.Value, true
		}
	}
	return nil, false
}

// Scalars calls fn with the text of every scalar in the tree rooted at n,
// mapping keys included. Collections already being visited are skipped so
// that recursive aliases terminate.
func Scalars(n *yaml.Node, fn func(string)) {
	visiting := make(map[*yaml.Node]bool)
	var visit func(*yaml.Node)
	visit = func(n *yaml.Node) {
		n = Resolve(n)
		if n == nil || visiting[n] {
			return
		}
		switch n.Kind {
		case yaml.ScalarNode:
			fn(n.Value)
		case yaml.MappingNode:
			visiting[n] = true
			for _, p := range Pairs(n) {
				fn(p.Key)
				visit(p.Value)
			}
			delete(visiting, n)
		case yaml.SequenceNode, yaml.DocumentNode:
			visiting[n] = true
			for _, c := range n.Content {
				visit(c)
			}
			delete(visiting, n)
		}
	}
	visit(n)
}
