package main

import (
	"bytes"
	"os"
	"path/filepath"
	"testing"

	"github.com/spf13/cobra"
	"github.com/stretchr/testify/require"
)

type quillHome struct {
	config string
	state  string
}

// setupQuillHome points config and state at temp dirs and pins the system
// appearance through the override variable.
func setupQuillHome(t *testing.T, systemAppearance string) quillHome {
	t.Helper()
	root := t.TempDir()
	home := quillHome{
		config: filepath.Join(root, "config"),
		state:  filepath.Join(root, "state"),
	}
	t.Setenv("HOME", root)
	t.Setenv("XDG_CONFIG_HOME", home.config)
	t.Setenv("XDG_STATE_HOME", home.state)
	t.Setenv("QUILL_APPEARANCE", systemAppearance)
	t.Setenv("COLORFGBG", "")
	return home
}

func (h quillHome) writeConfig(t *testing.T, content string) string {
	t.Helper()
	path := filepath.Join(h.config, "quill", "config.yaml")
	require.NoError(t, os.MkdirAll(filepath.Dir(path), 0o755))
	require.NoError(t, os.WriteFile(path, []byte(content), 0o600))
	return path
}

func (h quillHome) preferences(t *testing.T) string {
	t.Helper()
	data, err := os.ReadFile(filepath.Join(h.state, "quill", "preferences.yaml"))
	require.NoError(t, err)
	return string(data)
}

func newTestApp() *AppContext {
	app := newAppContext()
	app.Interactive = func(*cobra.Command) bool { return false }
	return app
}

func executeCommand(app *AppContext, args ...string) (stdout, stderr string, err error) {
	root := newRootCmd(app)
	out := &bytes.Buffer{}
	errOut := &bytes.Buffer{}
	root.SetOut(out)
	root.SetErr(errOut)
	root.SetArgs(args)
	err = root.Execute()
	return out.String(), errOut.String(), err
}
