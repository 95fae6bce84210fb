// Package flatten walks nested YAML mappings as a stream of key paths and
// matches those paths against shell-style glob patterns.
//
// A path is the ordered list of keys leading to a node. It is joined with
// underscores, and dashes are rewritten to underscores, only when it is
// matched or printed, so "repos" > "my-repo" > "local" becomes
// "repos_my_repo_local".
package flatten
