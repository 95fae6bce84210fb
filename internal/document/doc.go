// Package document loads a YAML configuration file into an ordered node tree.
//
// The tree is kept as *yaml.Node rather than decoded into Go maps so that
// mapping keys are visited in document order. Aliases are followed and merge
// keys (<<) are expanded on access by Pairs, mirroring what a safe YAML
// loader produces.
package document
