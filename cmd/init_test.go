package cmd

import (
	"bytes"
	"os"
	"path/filepath"
	"testing"

	"github.com/spf13/viper"
	"github.com/stretchr/testify/require"
)

func TestInitCmd_WritesConfigFile(t *testing.T) {
	tempDir := t.TempDir()
	originalWD, err := os.Getwd()
	require.NoError(t, err)
	require.NoError(t, os.Chdir(tempDir))
	t.Cleanup(func() { require.NoError(t, os.Chdir(originalWD)) })

	cmd := newRootCmd()
	cmd.AddCommand(newInitCmd())
	cmd.SetOut(&bytes.Buffer{})
	cmd.SetErr(&bytes.Buffer{})
	cmd.SetArgs([]string{"init"})

	err = cmd.Execute()
	require.NoError(t, err)

	targetPath := filepath.Join(tempDir, configFileName)
	t.Cleanup(func() { _ = os.Remove(targetPath) })
	info, err := os.Stat(targetPath)
	require.NoError(t, err)
	require.False(t, info.IsDir())

	contents, err := os.ReadFile(targetPath)
	require.NoError(t, err)
	require.Contains(t, string(contents), "fix:")
	require.Contains(t, string(contents), "naming: "+viper.GetString(namingConfigKey))

	written := viper.New()
	written.SetConfigFile(targetPath)
	require.NoError(t, written.ReadInConfig())

	for _, key := range []string{namingConfigKey, constructorConfigKey, fixParallelConfigKey, fixDryRunConfigKey, cacheSizeConfigKey, logFilenameKey} {
		require.True(t, written.IsSet(key), "missing %s", key)
	}

	require.Equal(t, currentConfigVersion, written.GetInt(configVersionKey))
	require.Contains(t, []string{"cumulative", "sequential"}, written.GetString(namingConfigKey))
	require.Contains(t, []string{"target", "first"}, written.GetString(constructorConfigKey))
}

func TestInitCmd_WritesDefaultFixSettings(t *testing.T) {
	tempDir := t.TempDir()
	targetPath := filepath.Join(tempDir, configFileName)

	defaults := viper.New()
	defaults.SetDefault(namingConfigKey, defaultNaming)
	defaults.SetDefault(constructorConfigKey, defaultConstructor)
	require.NoError(t, defaults.SafeWriteConfigAs(targetPath))

	contents, err := os.ReadFile(targetPath)
	require.NoError(t, err)
	require.Contains(t, string(contents), "fix:")
	require.Contains(t, string(contents), "naming: cumulative")
	require.Contains(t, string(contents), "constructor: target")
}

func TestInitCmd_ErrorsWhenFileExists(t *testing.T) {
	tempDir := t.TempDir()
	originalWD, err := os.Getwd()
	require.NoError(t, err)
	require.NoError(t, os.Chdir(tempDir))
	t.Cleanup(func() { require.NoError(t, os.Chdir(originalWD)) })

	targetPath := filepath.Join(tempDir, configFileName)
	require.NoError(t, os.WriteFile(targetPath, []byte("existing: true\n"), 0o644))
	t.Cleanup(func() { _ = os.Remove(targetPath) })

	cmd := newRootCmd()
	cmd.AddCommand(newInitCmd())
	cmd.SetOut(&bytes.Buffer{})
	cmd.SetErr(&bytes.Buffer{})
	cmd.SetArgs([]string{"init"})

	err = cmd.Execute()
	require.Error(t, err)
}
