package main

import (
	"testing"

	"github.com/stretchr/testify/require"
)

func TestCatalogSection(t *testing.T) {
	setupQuillHome(t, "light")

	stdout, _, err := executeCommand(newTestApp(), "--ephemeral", "catalog", "colors")
	require.NoError(t, err)
	require.Contains(t, stdout, "Colors")
	require.Contains(t, stdout, "#4338ca")
	require.NotContains(t, stdout, "Spacing")
}

func TestCatalogUnknownSection(t *testing.T) {
	setupQuillHome(t, "light")

	_, _, err := executeCommand(newTestApp(), "--ephemeral", "catalog", "icons")
	require.Error(t, err)
	require.Contains(t, err.Error(), "colors, spacing, typography")
}
