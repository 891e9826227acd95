package main

import (
	"bytes"
	"context"
	"os"
	"path/filepath"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

const testDocument = `<html><head><style>
.red { color: red; }
div:hover p { margin-top: 1em; }
p::selection { color: white; }
</style></head>
<body><div><p id="a">One</p><p id="b">Two</p></div></body></html>`

func writeDocument(t *testing.T) string {
	name := filepath.Join(t.TempDir(), "doc.html")
	require.NoError(t, os.WriteFile(name, []byte(testDocument), 0o644))
	return name
}

func execute(t *testing.T, args ...string) (string, error) {
	cmd := newRootCmd()
	var out bytes.Buffer
	cmd.SetOut(&out)
	cmd.SetErr(&out)
	cmd.SetArgs(args)
	err := cmd.ExecuteContext(context.Background())
	return out.String(), err
}

func TestRestyleAfterMutations(t *testing.T) {
	doc := writeDocument(t)
	out, err := execute(t, "--set", "p#a:class=red", "--state", "div:hover", "--workers", "2", doc)
	require.NoError(t, err)
	assert.Contains(t, out, "initial:  visited=")
	assert.Contains(t, out, "restyle:  visited=")
	assert.Contains(t, out, "snapshots=2")
	assert.Contains(t, out, "p#a [clean, display=block-inline]")
}

func TestPseudoElements(t *testing.T) {
	doc := writeDocument(t)
	out, err := execute(t, "--tree=false", "--pseudo", "::selection", doc)
	require.NoError(t, err)
	assert.Contains(t, out, "p#a::selection RuleNode[p::selection@author]")
	assert.NotContains(t, out, "div::selection")
	_, err = execute(t, "--pseudo", "shadow", doc)
	assert.Error(t, err)
}

func TestMalformedMutation(t *testing.T) {
	doc := writeDocument(t)
	_, err := execute(t, "--set", "p#a", doc)
	assert.ErrorIs(t, err, errMutation)
	_, err = execute(t, "--state", "div:dizzy", doc)
	assert.Error(t, err)
}

func TestSplitMutation(t *testing.T) {
	sel, rest, ok := splitMutation("li:first-child:title=a:b")
	assert.True(t, ok)
	assert.Equal(t, "li:first-child", sel)
	assert.Equal(t, "title=a:b", rest)
	_, _, ok = splitMutation("hover")
	assert.False(t, ok)
}
