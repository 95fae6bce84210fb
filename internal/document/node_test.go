package document

import (
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func keys(pairs []Pair) []string {
	out := make([]string, 0, len(pairs))
	for _, p := range pairs {
		out = append(out, p.Key)
	}
	return out
}

func TestPairs_DocumentOrder(t *testing.T) {
	t.Parallel()

	root := parseRoot(t, "zeta: 1\nalpha: 2\nmid: 3\n")

	assert.Equal(t, []string{"zeta", "alpha", "mid"}, keys(Pairs(root)))
}

func TestPairs_MergeKeys(t *testing.T) {
	t.Parallel()

	root := parseRoot(t, `
base: &base
  local: /srv/base
  branch: main
repo:
  <<: *base
  local: /srv/repo
  remotes: [origin]
`)

	repo, ok := Lookup(root, "repo")
	require.True(t, ok)

	pairs := Pairs(repo)
	assert.Equal(t, []string{"local", "branch", "remotes"}, keys(pairs))

	local, ok := Lookup(repo, "local")
	require.True(t, ok)
	assert.Equal(t, "/srv/repo", local.Value)
}

func TestPairs_MergeSequence(t *testing.T) {
	t.Parallel()

	root := parseRoot(t, `
a: &a {x: 1, y: 1}
b: &b {y: 2, z: 2}
c:
  <<: [*a, *b]
`)

	c, ok := Lookup(root, "c")
	require.True(t, ok)
	assert.Equal(t, []string{"x", "y", "z"}, keys(Pairs(c)))

	y, _ := Lookup(c, "y")
	assert.Equal(t, "1", y.Value)
}

func TestPairs_DuplicateKeyLastWins(t *testing.T) {
	t.Parallel()

	root := parseRoot(t, "a: 1\nb: 2\na: 3\n")

	pairs := Pairs(root)
	require.Len(t, pairs, 2)
	assert.Equal(t, "a", pairs[0].Key)
	assert.Equal(t, "3", pairs[0].Value.Value)
}

func TestPairs_NonMapping(t *testing.T) {
	t.Parallel()

	assert.Nil(t, Pairs(parseRoot(t, "[1, 2]\n")))
	assert.Nil(t, Pairs(nil))
}

func TestAliasesResolve(t *testing.T) {
	t.Parallel()

	root := parseRoot(t, "list: &l [a, b]\ncopy: *l\n")

	copied, ok := Lookup(root, "copy")
	require.True(t, ok)
	assert.True(t, IsSequence(copied))
	assert.Len(t, copied.Content, 2)
}

func TestIsFalsyAndBlank(t *testing.T) {
	t.Parallel()

	root := parseRoot(t, `
null_value: ~
empty_string: ""
spaces: "   "
zero: 0
zero_float: 0.0
no: false
yes: true
word: main
empty_list: []
empty_map: {}
list: [a]
`)

	falsy := map[string]bool{
		"null_value":   true,
		"empty_string": true,
		"spaces":       false,
		"zero":         true,
		"zero_float":   true,
		"no":           true,
		"yes":          false,
		"word":         false,
		"empty_list":   true,
		"empty_map":    true,
		"list":         false,
	}

	for key, want := range falsy {
		value, ok := Lookup(root, key)
		require.True(t, ok, key)
		assert.Equal(t, want, IsFalsy(value), key)
	}

	spaces, _ := Lookup(root, "spaces")
	assert.True(t, IsBlank(spaces))
	word, _ := Lookup(root, "word")
	assert.False(t, IsBlank(word))
	_, missing := Lookup(root, "absent")
	assert.False(t, missing)
}

func TestScalars_IncludesKeysAndTerminatesOnCycles(t *testing.T) {
	t.Parallel()

	root := parseRoot(t, `
outer: &o
  name: <NAME>
  items: [one, two]
  self: *o
`)

	var got []string
	Scalars(root, func(s string) { got = append(got, s) })

	assert.Equal(t, []string{"outer", "name", "<NAME>", "items", "one", "two", "self"}, got)
}
