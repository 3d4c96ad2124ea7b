package ast

import (
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func TestRegexString(t *testing.T) {
	t.Parallel()
	assert.Equal(t, "/foo/", Regex{Pattern: "foo"}.String())
	assert.Equal(t, "/foo/i", Regex{Pattern: "foo", IgnoreCase: true}.String())
}

func TestRegexCompile(t *testing.T) {
	t.Parallel()

	re, err := Regex{Pattern: "^foo$"}.Compile()
	require.NoError(t, err)
	assert.True(t, re.MatchString("foo"))
	assert.False(t, re.MatchString("FOO"))

	ci, err := Regex{Pattern: "^foo$", IgnoreCase: true}.Compile()
	require.NoError(t, err)
	assert.True(t, ci.MatchString("FOO"))
}

func TestRegexCompileInvalidPattern(t *testing.T) {
	t.Parallel()
	_, err := Regex{Pattern: "("}.Compile()
	assert.Error(t, err)
}
