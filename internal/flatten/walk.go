package flatten

import (
	"iter"

	"gopkg.in/yaml.v3"

	"github.com/eugenenazirov/repo-sync-config/internal/document"
)

type frame struct {
	path  Path
	node  *yaml.Node
	pairs []document.Pair
	next  int
}

// Walk yields every mapping entry below root as a (path, value) pair in
// depth-first pre-order: an entry is yielded before the entries nested under
// it, and siblings follow document order. Only mappings are descended into;
// sequences and scalars are leaves. A mapping that is already an ancestor of
// the current entry (a recursive alias) is yielded but not entered again.
//
// The traversal uses an explicit stack and advances only as far as the
// consumer reads, so breaking out of the loop stops it.
func Walk(root *yaml.Node) iter.Seq2[Path, *yaml.Node] {
	return func(yield func(Path, *yaml.Node) bool) {
		root = document.Resolve(root)
		if !document.IsMapping(root) {
			return
		}

		stack := []*frame{{node: root, pairs: document.Pairs(root)}}
		for len(stack) > 0 {
			top := stack[len(stack)-1]
			if top.next >= len(top.pairs) {
				stack = stack[:len(stack)-1]
				continue
			}

			entry := top.pairs[top.next]
			top.next++

			path := top.path.Child(entry.Key)
			if !yield(path, entry.Value) {
				return
			}

			if document.IsMapping(entry.Value) && !onStack(stack, entry.Value) {
				stack = append(stack, &frame{
					path:  path,
					node:  entry.Value,
					pairs: document.Pairs(entry.Value),
				})
			}
		}
	}
}

// Match yields the entries of Walk whose flattened path matches pattern.
// The pattern is normalized with NormalizeKey before it is compiled, so
// "my-repo" and "my_repo" select the same keys.
func Match(root *yaml.Node, pattern string) (iter.Seq2[Path, *yaml.Node], error) {
	glob, err := Compile(NormalizeKey(pattern))
	if err != nil {
		return nil, err
	}

	return func(yield func(Path, *yaml.Node) bool) {
		for path, value := range Walk(root) {
			if !glob.Match(path.String()) {
				continue
			}
			if !yield(path, value) {
				return
			}
		}
	}, nil
}

func onStack(stack []*frame, n *yaml.Node) bool {
	for _, f := range stack {
		if f.node == n {
			return true
		}
	}
	return false
}
