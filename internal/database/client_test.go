package database

import (
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/hanatools/hanacli/internal/config"
	"github.com/hanatools/hanacli/internal/errs"
)

func testConfig() *config.File {
	return &config.File{Profiles: map[string]config.Profile{
		"prod-hana": {Kind: "hana", Host: "hana.internal", Port: 30015, User: "SYSTEM"},
		"reporting": {Kind: "postgres", Host: "pg.internal", Port: 5432},
		"local":     {Kind: "sqlite", DSN: "file:catalog.db"},
		"legacy":    {Kind: "mysql", Host: "mysql.internal", Port: 3306},
		"broken":    {Kind: "oracle"},
	}}
}

func TestNewClient_Dispatch(t *testing.T) {
	tests := []struct {
		name    string
		profile string
		want    Kind
	}{
		{"hana profile", "prod-hana", KindHANA},
		{"postgres profile", "reporting", KindPostgres},
		{"sqlite profile", "local", KindSQLite},
		{"mysql profile", "legacy", KindMySQL},
		{"empty profile defaults to hybrid", "", KindHANA},
		{"hybrid synthesized when not configured", "hybrid", KindHANA},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			client, err := NewClient(Prompts{Profile: tt.profile, Table: "*"}, testConfig())
			require.NoError(t, err)
			assert.Equal(t, tt.want, client.Kind())
		})
	}
}

func TestNewClient_UnsupportedKind(t *testing.T) {
	_, err := NewClient(Prompts{Profile: "broken"}, testConfig())
	require.Error(t, err)
	assert.True(t, errs.IsUnsupportedConfig(err))
	assert.Contains(t, err.Error(), `unsupported database client type "oracle"`)
}

func TestNewClient_UnknownProfile(t *testing.T) {
	_, err := NewClient(Prompts{Profile: "nope"}, testConfig())
	require.Error(t, err)
	assert.True(t, errs.IsNotFound(err))
}

func TestSchemaCalculation(t *testing.T) {
	tests := []struct {
		name    string
		schema  string
		profile *config.Profile
		want    string
	}{
		{"explicit schema wins", "SHOP", &config.Profile{Schema: "OTHER"}, "SHOP"},
		{"empty falls back to credential schema", "", &config.Profile{Schema: "CRED"}, "CRED"},
		{"sentinel falls back to credential schema", CurrentSchemaSentinel, &config.Profile{Schema: "CRED"}, "CRED"},
		{"empty without credential schema is public", "", &config.Profile{}, "public"},
		{"nil profile is public", "", nil, "public"},
		{"wildcard becomes like pattern", "*", &config.Profile{Schema: "CRED"}, "%"},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			b := &baseClient{prompts: Prompts{Schema: tt.schema}, profile: tt.profile}
			assert.Equal(t, tt.want, b.SchemaCalculation())
		})
	}
}

func TestAdjustWildcard(t *testing.T) {
	b := &baseClient{}

	// Only the exact full wildcard translates.
	assert.Equal(t, "%", b.AdjustWildcard("*"))
	assert.Equal(t, "ORD*", b.AdjustWildcard("ORD*"))
	assert.Equal(t, "ORDERS", b.AdjustWildcard("ORDERS"))
	assert.Equal(t, "", b.AdjustWildcard(""))
}

func TestLimitDefault(t *testing.T) {
	assert.Equal(t, 200, (&baseClient{}).limit())
	assert.Equal(t, 50, (&baseClient{prompts: Prompts{Limit: 50}}).limit())
	assert.Equal(t, 200, (&baseClient{prompts: Prompts{Limit: -1}}).limit())
}
