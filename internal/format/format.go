// Package format renders matched YAML values as plain text for shell callers.
package format

import (
	"fmt"
	"strings"

	"gopkg.in/yaml.v3"

	"github.com/eugenenazirov/repo-sync-config/internal/document"
	"github.com/eugenenazirov/repo-sync-config/internal/flatten"
)

// Lines renders a matched value as output lines.
//
// A mapping expands to its immediate key names, one per line, so a lookup
// of "repos" lists the repository names. A sequence becomes a single line of
// space separated elements. Anything else is one line holding the scalar.
func Lines(n *yaml.Node) []string {
	n = document.Resolve(n)
	switch {
	case document.IsMapping(n):
		pairs := document.Pairs(n)
		out := make([]string, 0, len(pairs))
		for _, p := range pairs {
			out = append(out, p.Key)
		}
		return out
	case document.IsSequence(n):
		return []string{List(n)}
	default:
		return []string{Scalar(n)}
	}
}

// List joins the elements of a sequence with single spaces.
func List(n *yaml.Node) string {
	n = document.Resolve(n)
	parts := make([]string, 0, len(n.Content))
	for _, item := range n.Content {
		parts = append(parts, Scalar(item))
	}
	return strings.Join(parts, " ")
}

// Scalar returns the text of a value. Scalars are returned as written in the
// document and null becomes the empty string. Collections are rendered as
// single-line flow YAML.
func Scalar(n *yaml.Node) string {
	n = document.Resolve(n)
	if document.IsNull(n) {
		return ""
	}
	if n.Kind == yaml.ScalarNode {
		return n.Value
	}
	return flow(n)
}

// Assignment renders a leaf as a shell variable assignment: name="value".
// Sequences are space joined inside the quotes. No escaping is applied.
func Assignment(path flatten.Path, n *yaml.Node) string {
	value := Scalar(n)
	if document.IsSequence(n) {
		value = List(n)
	}
	return fmt.Sprintf(`%s="%s"`, path.String(), value)
}

func flow(n *yaml.Node) string {
	out, err := yaml.Marshal(flowCopy(n, make(map[*yaml.Node]bool)))
	if err != nil {
		return ""
	}
	return strings.TrimSpace(string(out))
}

// flowCopy deep copies n with flow style set on every collection and aliases
// expanded. Collections already being copied are replaced with null.
func flowCopy(n *yaml.Node, copying map[*yaml.Node]bool) *yaml.Node {
	n = document.Resolve(n)
	if n == nil || copying[n] {
		return &yaml.Node{Kind: yaml.ScalarNode, Tag: "!!null", Value: "null"}
	}

	out := &yaml.Node{Kind: n.Kind, Tag: n.Tag, Value: n.Value}
	switch n.Kind {
	case yaml.MappingNode:
		copying[n] = true
		for _, p := range document.Pairs(n) {
			key := &yaml.Node{Kind: yaml.ScalarNode, Value: p.Key}
			out.Content = append(out.Content, key, flowCopy(p.Value, copying))
		}
		delete(copying, n)
		out.Style = yaml.FlowStyle
	case yaml.SequenceNode:
		copying[n] = true
		for _, item := range n.Content {
			out.Content = append(out.Content, flowCopy(item, copying))
		}
		delete(copying, n)
		out.Style = yaml.FlowStyle
	}
	return out
}
