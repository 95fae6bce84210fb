// Package config resolves the runtime settings of the command-line tools
// from CLI flags, an optional settings YAML file, environment variables and
// defaults, with precedence: CLI flags > settings YAML > Environment
// variables > Defaults. The YAML document being queried is not loaded here;
// see package document.
package config
