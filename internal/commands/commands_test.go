package commands_test

import (
	"bytes"
	"os"
	"path/filepath"
	"testing"

	"github.com/stretchr/testify/require"

	"github.com/finprofile-dev/finprofile/internal/commands"
	"github.com/finprofile-dev/finprofile/internal/config"
)

func runFinprofile(t *testing.T, args ...string) (string, string, error) {
	t.Helper()
	cmd := commands.NewRootCommand()
	var out, errOut bytes.Buffer
	cmd.SetOut(&out)
	cmd.SetErr(&errOut)
	cmd.SetArgs(args)
	err := cmd.Execute()
	return out.String(), errOut.String(), err
}

// initProject creates a project in a temp dir and applies edit to its config.
func initProject(t *testing.T, edit func(*config.Config)) (dir, cfgPath string) {
	t.Helper()
	dir = t.TempDir()
	_, _, err := runFinprofile(t, "init", dir)
	require.NoError(t, err)

	cfgPath = filepath.Join(dir, config.FileName)
	if edit != nil {
		cfg, err := config.Load(cfgPath)
		require.NoError(t, err)
		edit(cfg)
		require.NoError(t, config.Save(cfgPath, cfg))
	}
	return dir, cfgPath
}

func writeFile(t *testing.T, path, contents string) {
	t.Helper()
	require.NoError(t, os.MkdirAll(filepath.Dir(path), 0o755))
	require.NoError(t, os.WriteFile(path, []byte(contents), 0o644))
}
