package config

import (
	"os"
	"path/filepath"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/hanatools/hanacli/internal/errs"
)

func writeProfileFile(t *testing.T, content string) string {
	t.Helper()
	path := filepath.Join(t.TempDir(), "profiles.yaml")
	require.NoError(t, os.WriteFile(path, []byte(content), 0o600))
	return path
}

func TestLoad(t *testing.T) {
	path := writeProfileFile(t, `
default: reporting
profiles:
  reporting:
    kind: postgres
    host: pg.internal
    port: 5432
    user: reader
    schema: analytics
  local:
    kind: sqlite
    dsn: file:catalog.db
`)

	f, err := Load(path)
	require.NoError(t, err)
	assert.Equal(t, "reporting", f.Default)
	require.Len(t, f.Profiles, 2)
	assert.Equal(t, "postgres", f.Profiles["reporting"].Kind)
	assert.Equal(t, 5432, f.Profiles["reporting"].Port)
	assert.Equal(t, "file:catalog.db", f.Profiles["local"].DSN)
}

func TestLoad_MissingFileIsEmpty(t *testing.T) {
	f, err := Load(filepath.Join(t.TempDir(), "absent.yaml"))
	require.NoError(t, err)
	assert.Empty(t, f.Default)
	assert.NotNil(t, f.Profiles)
}

func TestLoad_MalformedFile(t *testing.T) {
	path := writeProfileFile(t, "profiles: [not: a: map")
	_, err := Load(path)
	require.Error(t, err)
	assert.True(t, errs.IsInvalidInput(err))
}

func TestResolve(t *testing.T) {
	f := &File{
		Default: "reporting",
		Profiles: map[string]Profile{
			"reporting": {Kind: "postgres", Host: "pg.internal"},
			"untagged":  {Host: "hana.internal"},
		},
	}

	t.Run("named profile", func(t *testing.T) {
		p, err := f.Resolve("reporting")
		require.NoError(t, err)
		assert.Equal(t, "postgres", p.Kind)
	})

	t.Run("empty name uses the file default", func(t *testing.T) {
		p, err := f.Resolve("")
		require.NoError(t, err)
		assert.Equal(t, "pg.internal", p.Host)
	})

	t.Run("missing kind defaults to hana", func(t *testing.T) {
		p, err := f.Resolve("untagged")
		require.NoError(t, err)
		assert.Equal(t, "hana", p.Kind)
	})

	t.Run("unknown profile errors", func(t *testing.T) {
		_, err := f.Resolve("nope")
		require.Error(t, err)
		assert.True(t, errs.IsNotFound(err))
	})

	t.Run("hybrid synthesized when absent", func(t *testing.T) {
		empty := &File{Profiles: map[string]Profile{}}
		p, err := empty.Resolve("hybrid")
		require.NoError(t, err)
		assert.Equal(t, "hana", p.Kind)
	})
}

func TestResolve_EnvOverrides(t *testing.T) {
	t.Setenv("HANACLI_HOST", "override.internal")
	t.Setenv("HANACLI_PORT", "39015")
	t.Setenv("HANACLI_SCHEMA", "OVERRIDE")

	f := &File{Profiles: map[string]Profile{
		"prod": {Kind: "hana", Host: "hana.internal", Port: 30015, Schema: "SHOP"},
	}}

	p, err := f.Resolve("prod")
	require.NoError(t, err)
	assert.Equal(t, "override.internal", p.Host)
	assert.Equal(t, 39015, p.Port)
	assert.Equal(t, "OVERRIDE", p.Schema)

	// Resolve copies out of the map; the file itself is untouched.
	assert.Equal(t, "hana.internal", f.Profiles["prod"].Host)
}

func TestResolve_BadEnvPortIgnored(t *testing.T) {
	t.Setenv("HANACLI_PORT", "not-a-number")

	f := &File{Profiles: map[string]Profile{
		"prod": {Kind: "hana", Port: 30015},
	}}
	p, err := f.Resolve("prod")
	require.NoError(t, err)
	assert.Equal(t, 30015, p.Port)
}

func TestDefaultPath(t *testing.T) {
	t.Setenv("HANACLI_CONFIG", "/etc/hanacli/profiles.yaml")
	assert.Equal(t, "/etc/hanacli/profiles.yaml", DefaultPath())

	t.Setenv("HANACLI_CONFIG", "")
	assert.Contains(t, DefaultPath(), ".hanacli.yaml")
}
