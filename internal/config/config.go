// Package config resolves named connection profiles.
//
// A profile names both the credentials and the backend kind (hana, postgres,
// sqlite, mysql). Profiles live in a YAML file (default ~/.hanacli.yaml) and
// individual fields can be overridden through HANACLI_* environment
// variables. The reserved profile name "hybrid" is the default and always
// resolves to a direct HANA connection built from the environment when the
// file does not define it.
package config

import (
	"os"
	"path/filepath"
	"strconv"

	"go.yaml.in/yaml/v3"

	"github.com/hanatools/hanacli/internal/errs"
)

// DefaultProfile is the profile assumed when the caller names none.
const DefaultProfile = "hybrid"

// Profile holds the connection settings for one named environment.
type Profile struct {
	// Kind is the backend tag: "hana", "postgres", "sqlite" or "mysql".
	Kind string `yaml:"kind"`

	Host     string `yaml:"host"`
	Port     int    `yaml:"port"`
	User     string `yaml:"user"`
	Password string `yaml:"password"`
	Database string `yaml:"database"`

	// Schema is the credential-embedded default schema. Empty means the
	// backend decides (CURRENT_SCHEMA on HANA, "public" elsewhere).
	Schema string `yaml:"schema"`

	// DSN, when set, is used verbatim and wins over the host/port fields.
	// Required for sqlite (the file path).
	DSN string `yaml:"dsn"`

	// Encrypt enables TLS on backends that support it.
	Encrypt bool `yaml:"encrypt"`
}

// File is the on-disk shape of the profile configuration.
type File struct {
	Default  string             `yaml:"default"`
	Profiles map[string]Profile `yaml:"profiles"`
}

// Load reads a profile file. A missing file is not an error — it yields an
// empty File so that environment-only setups keep working.
func Load(path string) (*File, error) {
	raw, err := os.ReadFile(path)
	if err != nil {
		if os.IsNotExist(err) {
			return &File{Profiles: map[string]Profile{}}, nil
		}
		return nil, errs.Wrap(errs.ErrKindInvalidInput, "cannot read profile file", err)
	}

	var f File
	if err := yaml.Unmarshal(raw, &f); err != nil {
		return nil, errs.Wrap(errs.ErrKindInvalidInput, "cannot parse profile file", err)
	}
	if f.Profiles == nil {
		f.Profiles = map[string]Profile{}
	}
	return &f, nil
}

// DefaultPath returns the default profile file location.
func DefaultPath() string {
	if p := os.Getenv("HANACLI_CONFIG"); p != "" {
		return p
	}
	home, err := os.UserHomeDir()
	if err != nil {
		return ".hanacli.yaml"
	}
	return filepath.Join(home, ".hanacli.yaml")
}

// Resolve returns the profile for name, consulting the file first and then
// the environment. An empty name resolves to the file's default profile,
// falling back to DefaultProfile. The reserved "hybrid" profile is
// synthesized from the environment with kind "hana" when the file does not
// define it.
func (f *File) Resolve(name string) (*Profile, error) {
	if name == "" {
		name = f.Default
	}
	if name == "" {
		name = DefaultProfile
	}

	p, ok := f.Profiles[name]
	if !ok {
		if name != DefaultProfile {
			return nil, errs.Newf(errs.ErrKindNotFound, "profile %q not found", name)
		}
		p = Profile{Kind: "hana"}
	}
	if p.Kind == "" {
		p.Kind = "hana"
	}

	applyEnv(&p)
	return &p, nil
}

// applyEnv overlays HANACLI_* environment variables onto p.
// Set variables always win over file values.
func applyEnv(p *Profile) {
	if v := os.Getenv("HANACLI_HOST"); v != "" {
		p.Host = v
	}
	if v := os.Getenv("HANACLI_PORT"); v != "" {
		if n, err := strconv.Atoi(v); err == nil {
			p.Port = n
		}
	}
	if v := os.Getenv("HANACLI_USER"); v != "" {
		p.User = v
	}
	if v := os.Getenv("HANACLI_PASSWORD"); v != "" {
		p.Password = v
	}
	if v := os.Getenv("HANACLI_DATABASE"); v != "" {
		p.Database = v
	}
	if v := os.Getenv("HANACLI_SCHEMA"); v != "" {
		p.Schema = v
	}
	if v := os.Getenv("HANACLI_DSN"); v != "" {
		p.DSN = v
	}
}
