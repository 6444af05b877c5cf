package config

import (
	"encoding/json"
	"testing"
	"time"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func TestVerifyAgainstEmbeddedSchema(t *testing.T) {
	valid := func() *Config {
		return &Config{
			API:    APIConfig{BaseURL: DefaultBaseURL, APIKey: "test", UserAgent: DefaultUserAgent},
			Search: SearchConfig{OrderBy: "newest"},
			Server: ServerConfig{Listen: ":8080", Timeout: 30 * time.Second, BaseURL: "http://localhost:8080"},
			Reader: ReaderConfig{Enabled: false},
		}
	}

	tests := []struct {
		name    string
		modify  func(c *Config)
		wantErr bool
		errMsg  string
	}{
		{name: "valid config", modify: func(c *Config) {}},
		{name: "missing server listen", modify: func(c *Config) { c.Server.Listen = "" }, wantErr: true, errMsg: "server.listen is required"},
		{name: "missing server timeout", modify: func(c *Config) { c.Server.Timeout = 0 }, wantErr: true, errMsg: "server.timeout is required"},
		{name: "missing base url", modify: func(c *Config) { c.API.BaseURL = "" }, wantErr: true, errMsg: "api.base_url is required"},
		{name: "missing api key", modify: func(c *Config) { c.API.APIKey = "" }, wantErr: true, errMsg: "api.api_key is required"},
		{
			name:    "reader enabled without timeout",
			modify:  func(c *Config) { c.Reader.Enabled = true },
			wantErr: true,
			errMsg:  "reader.timeout is required when reader is enabled",
		},
		{name: "reader disabled without timeout", modify: func(c *Config) { c.Reader.Timeout = 0 }},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			cfg := valid()
			tt.modify(cfg)
			err := VerifyAgainstEmbeddedSchema(cfg)
			if tt.wantErr {
				require.Error(t, err)
				assert.Contains(t, err.Error(), tt.errMsg)
				return
			}
			assert.NoError(t, err)
		})
	}
}

func TestVerifyAgainst(t *testing.T) {
	cfg := Default()

	t.Run("bad schema", func(t *testing.T) {
		err := verifyAgainst("{not json", cfg)
		require.Error(t, err)
		assert.Contains(t, err.Error(), "parse embedded schema")
	})

	t.Run("no root definition", func(t *testing.T) {
		err := verifyAgainst(`{"$defs":{}}`, cfg)
		require.Error(t, err)
		assert.Contains(t, err.Error(), "no Config definition")
	})

	t.Run("stale schema", func(t *testing.T) {
		err := verifyAgainst(`{"$defs":{"Config":{"properties":{"api":{},"search":{},"server":{}}}}}`, cfg)
		require.Error(t, err)
		assert.Contains(t, err.Error(), "missing in schema")
	})
}

func TestEmbeddedSchema(t *testing.T) {
	var schema map[string]any
	require.NoError(t, json.Unmarshal([]byte(embeddedSchema), &schema))
	assert.Equal(t, "#/$defs/Config", schema["$ref"])

	defs, ok := schema["$defs"].(map[string]any)
	require.True(t, ok)
	for _, name := range []string{"Config", "APIConfig", "SearchConfig", "ServerConfig", "ConnectivityConfig", "ReaderConfig"} {
		assert.Contains(t, defs, name)
	}
}

func TestGenerateSchema(t *testing.T) {
	schema, err := GenerateSchema()
	require.NoError(t, err)
	require.NotNil(t, schema)

	data, err := json.Marshal(schema)
	require.NoError(t, err)
	assert.Contains(t, string(data), "APIConfig")
	assert.Contains(t, string(data), "order_by")
}
