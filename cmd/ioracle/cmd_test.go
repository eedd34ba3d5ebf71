package main

import (
	"bytes"
	"strings"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func execute(t *testing.T, stdin string, args ...string) string {
	t.Helper()
	var out bytes.Buffer
	rootCmd.SetOut(&out)
	rootCmd.SetIn(strings.NewReader(stdin))
	rootCmd.SetArgs(args)
	require.NoError(t, rootCmd.Execute())
	return out.String()
}

func TestVersion(t *testing.T) {
	assert.Contains(t, execute(t, "", "version"), "ioracle version")
}

func TestClassify(t *testing.T) {
	out := execute(t, "500 600 500 400 500 600 500\n", "classify")
	assert.Equal(t, "samples=7 maxima=2 minima=1 line=1\n", out)

	out = execute(t, "", "classify")
	assert.Equal(t, "samples=0 maxima=0 minima=0 line=0\n", out)
}

func TestClassify_BadSample(t *testing.T) {
	rootCmd.SetIn(strings.NewReader("500 abc"))
	rootCmd.SetArgs([]string{"classify"})
	assert.Error(t, rootCmd.Execute())
}
