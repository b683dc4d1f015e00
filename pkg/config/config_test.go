package config

import (
	"os"
	"path/filepath"
	"testing"
	"time"

	"github.com/stretchr/testify/require"
)

type testConfig struct {
	ConsumerKey string        `envconfig:"CONSUMER_KEY" split_words:"true" required:"true"`
	BaseURL     string        `envconfig:"BASE_URL" split_words:"true" default:"https://api.maersk.com"`
	Timeout     time.Duration `envconfig:"TIMEOUT" split_words:"true" default:"30s"`
}

// These tests mutate process env and the package env file, so they do not
// run in parallel.

func TestNewExportsEnvFile(t *testing.T) {
	dir := t.TempDir()
	path := filepath.Join(dir, "test.env")
	require.NoError(t, os.WriteFile(path, []byte("CFGTEST_CONSUMER_KEY=from-file\nCFGTEST_TIMEOUT=5s\n"), 0o600))

	t.Setenv("CFGTEST_CONSUMER_KEY", "")
	os.Unsetenv("CFGTEST_CONSUMER_KEY")
	t.Setenv("CFGTEST_TIMEOUT", "")
	os.Unsetenv("CFGTEST_TIMEOUT")

	SetEnvFile(path)
	t.Cleanup(func() { SetEnvFile("") })

	conf, err := New[testConfig]("CFGTEST")
	require.NoError(t, err)
	require.Equal(t, "from-file", conf.ConsumerKey)
	require.Equal(t, "https://api.maersk.com", conf.BaseURL)
	require.Equal(t, 5*time.Second, conf.Timeout)
}

func TestNewProcessEnvWinsOverFile(t *testing.T) {
	dir := t.TempDir()
	path := filepath.Join(dir, "test.env")
	require.NoError(t, os.WriteFile(path, []byte("CFGWIN_CONSUMER_KEY=from-file\n"), 0o600))

	t.Setenv("CFGWIN_CONSUMER_KEY", "from-env")

	SetEnvFile(path)
	t.Cleanup(func() { SetEnvFile("") })

	conf, err := New[testConfig]("CFGWIN")
	require.NoError(t, err)
	require.Equal(t, "from-env", conf.ConsumerKey)
}

func TestNewFallsBackToUnprefixedTag(t *testing.T) {
	t.Setenv("CONSUMER_KEY", "legacy-key")

	conf, err := New[testConfig]("CFGALT")
	require.NoError(t, err)
	require.Equal(t, "legacy-key", conf.ConsumerKey)
}

func TestNewMissingEnvFile(t *testing.T) {
	SetEnvFile(filepath.Join(t.TempDir(), "missing.env"))
	t.Cleanup(func() { SetEnvFile("") })

	_, err := New[testConfig]("CFGMISSING")
	require.Error(t, err)
}
