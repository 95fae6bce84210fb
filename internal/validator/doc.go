// Package validator checks a repository sync configuration against its
// fixed schema:
//
//	config:
//	  email: <non-empty>
//	  name: <non-empty>
//	  branch: <non-empty>
//	repos:
//	  <name>:
//	    local: <non-empty path>
//	    remotes: [<url>, ...]
//
// All violations are collected before returning so a user can fix every
// problem in one pass. Checks that need a section to exist are skipped when
// the section is missing.
package validator
