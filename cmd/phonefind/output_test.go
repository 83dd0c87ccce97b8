package main

import (
	"bytes"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func TestColorEnabled(t *testing.T) {
	var buf bytes.Buffer

	enabled, err := colorEnabled("always", &buf)
	require.NoError(t, err)
	assert.True(t, enabled)

	enabled, err = colorEnabled("never", &buf)
	require.NoError(t, err)
	assert.False(t, enabled)

	enabled, err = colorEnabled("auto", &buf)
	require.NoError(t, err)
	assert.False(t, enabled, "a buffer is not a terminal")

	_, err = colorEnabled("sometimes", &buf)
	assert.Error(t, err)
}

func TestRunFind_ColorAlways(t *testing.T) {
	resetFindFlags()
	findColor = "always"
	path := writeTestFile(t, "contacts.txt", "+3(012)-345-6789")
	cmd, out, _ := newTestCommand("")

	require.NoError(t, runFind(cmd, []string{path}))
	assert.Contains(t, out.String(), "\x1b[")
	assert.Contains(t, out.String(), "+3(012)-345-6789")
}

func TestNewStyles_Disabled(t *testing.T) {
	s := newStyles(false)
	var buf bytes.Buffer
	s.match.Fprintln(&buf, "+3(012)-345-6789")
	assert.Equal(t, "+3(012)-345-6789\n", buf.String())
}
