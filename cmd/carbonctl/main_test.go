package main

import (
	"bytes"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func TestSeedCatalogDryRun(t *testing.T) {
	var out bytes.Buffer
	cmd := newRootCmd()
	cmd.SetOut(&out)
	cmd.SetArgs([]string{"seed-catalog", "--dry-run"})

	require.NoError(t, cmd.Execute())

	assert.Contains(t, out.String(), "ID")
	assert.Contains(t, out.String(), "FACTOR")
	assert.Greater(t, bytes.Count(out.Bytes(), []byte("\n")), 1)
}

func TestSeedCatalogDryRun_MissingFile(t *testing.T) {
	cmd := newRootCmd()
	cmd.SetOut(&bytes.Buffer{})
	cmd.SetArgs([]string{"seed-catalog", "--dry-run", "--file", "does-not-exist.yaml"})

	assert.Error(t, cmd.Execute())
}
