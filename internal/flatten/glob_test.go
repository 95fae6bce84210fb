package flatten

import (
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func TestGlob_Match(t *testing.T) {
	t.Parallel()

	tests := []struct {
		pattern string
		value   string
		want    bool
	}{
		{pattern: "config_email", value: "config_email", want: true},
		{pattern: "config_email", value: "config_emails", want: false},
		{pattern: "config_*", value: "config_email", want: true},
		{pattern: "config_*", value: "config_", want: true},
		{pattern: "config_*", value: "repos_config_email", want: false},
		{pattern: "*", value: "", want: true},
		{pattern: "*_local", value: "repos_a/b_local", want: true},
		{pattern: "**_remotes", value: "repos_x_remotes", want: true},
		{pattern: "repo?", value: "repos", want: true},
		{pattern: "repo?", value: "repo", want: false},
		{pattern: "repo?", value: "repo\n", want: true},
		{pattern: "[rc]*", value: "repos", want: true},
		{pattern: "[rc]*", value: "config", want: true},
		{pattern: "[!rc]*", value: "repos", want: false},
		{pattern: "[!rc]*", value: "branch", want: true},
		{pattern: "[a-c]", value: "b", want: true},
		{pattern: "[a-c]", value: "d", want: false},
		{pattern: "[]]", value: "]", want: true},
		{pattern: "[!]]", value: "a", want: true},
		{pattern: "[!]]", value: "]", want: false},
		{pattern: "[^]", value: "^", want: true},
		{pattern: "a[", value: "a[", want: true},
		{pattern: "a.b", value: "a.b", want: true},
		{pattern: "a.b", value: "axb", want: false},
		{pattern: "a+(b)", value: "a+(b)", want: true},
		{pattern: `a\b`, value: `a\b`, want: true},
	}

	for _, tc := range tests {
		t.Run(tc.pattern+"~"+tc.value, func(t *testing.T) {
			glob, err := Compile(tc.pattern)
			require.NoError(t, err)
			assert.Equal(t, tc.want, glob.Match(tc.value))
			assert.Equal(t, tc.pattern, glob.String())
		})
	}
}

func TestCompile_InvalidRange(t *testing.T) {
	t.Parallel()

	_, err := Compile("[z-a]")
	assert.Error(t, err)
}
