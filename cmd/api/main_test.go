package main

import (
	"bytes"
	"context"
	"os"
	"path/filepath"
	"testing"

	"github.com/SHoar/Wedding-AI/internal/config"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func writeConfig(t *testing.T, body string) string {
	t.Helper()
	path := filepath.Join(t.TempDir(), "settings.yaml")
	require.NoError(t, os.WriteFile(path, []byte(body), 0o644))
	return path
}

func clearKeys(t *testing.T) {
	t.Setenv("OPENAI_API_KEY", "")
	t.Setenv("GEMINI_API_KEY", "")
	t.Setenv("LLM_PROVIDER", "")
	t.Setenv("QDRANT_HOST", "")
	t.Setenv("CACHE_BACKEND", "")
}

func TestRootCommand_RegistersSubcommands(t *testing.T) {
	names := map[string]bool{}
	for _, c := range rootCmd.Commands() {
		names[c.Name()] = true
	}
	assert.True(t, names["serve"])
	assert.True(t, names["reindex"])
	assert.NotNil(t, rootCmd.PersistentFlags().Lookup("config"))
	assert.Equal(t, config.ServerListenAddr, serveCmd.Flags().Lookup("listen-addr").DefValue)
}

func TestReindex_MissingCredential(t *testing.T) {
	clearKeys(t)
	path := writeConfig(t, "log_level: error\n")

	rootCmd.SetArgs([]string{"reindex", "--config", path})
	err := rootCmd.Execute()
	require.Error(t, err)
	assert.Contains(t, err.Error(), "OPENAI_API_KEY is not set")
}

func TestReindex_BadConfigPath(t *testing.T) {
	clearKeys(t)
	rootCmd.SetArgs([]string{"reindex", "--config", filepath.Join(t.TempDir(), "missing.yaml")})
	err := rootCmd.Execute()
	require.Error(t, err)
	assert.Contains(t, err.Error(), "failed to read config file")
}

func TestReindex_EmptyDocsDir(t *testing.T) {
	clearKeys(t)
	dir := t.TempDir()
	path := writeConfig(t, "log_level: error\nopenai_api_key: sk-test\n"+
		"docs_dir: "+filepath.Join(dir, "docs")+"\n"+
		"index_persist_dir: "+filepath.Join(dir, "index")+"\n")

	var out bytes.Buffer
	rootCmd.SetOut(&out)
	t.Cleanup(func() { rootCmd.SetOut(nil) })
	rootCmd.SetArgs([]string{"reindex", "--config", path})

	require.NoError(t, rootCmd.Execute())
	assert.Contains(t, out.String(), config.CollectionName)
}

func TestNewApp(t *testing.T) {
	dir := t.TempDir()
	s := config.Defaults()
	s.LogLevel = "error"
	s.IndexPersistDir = dir
	s.DocsDir = filepath.Join(dir, "docs")

	t.Run("missing credential", func(t *testing.T) {
		a, err := newApp(context.Background(), s)
		require.NoError(t, err)
		defer a.Close()
		assert.Nil(t, a.index)
		assert.NotEmpty(t, a.missingCredential)
		assert.NotNil(t, a.service)
	})

	t.Run("openai with sqlite store", func(t *testing.T) {
		withKey := s
		withKey.OpenAIAPIKey = "sk-test"
		withKey.CacheTTLSeconds = 60
		a, err := newApp(context.Background(), withKey)
		require.NoError(t, err)
		defer a.Close()
		assert.NotNil(t, a.index)
		assert.Empty(t, a.missingCredential)
		assert.Equal(t, "sqlite", vectorStoreName(withKey))
	})
}
