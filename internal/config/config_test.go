package config

import (
	"testing"
	"time"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func TestLoad_Defaults(t *testing.T) {
	for _, k := range []string{"STORE_DRIVER", "STORE_DIR", "AI_API_KEY", "OPENAI_API_KEY", "AI_MODEL", "AI_TIMEOUT", "REDIS_DB"} {
		t.Setenv(k, "")
	}

	cfg, err := Load()
	require.NoError(t, err)
	assert.Equal(t, "8080", cfg.ServerPort)
	assert.Equal(t, DriverFile, cfg.StoreDriver)
	assert.Equal(t, "docmype", cfg.StoreNamespace)
	assert.Equal(t, "gpt-4o-mini", cfg.AIModel)
	assert.Equal(t, 30*time.Second, cfg.AITimeout)
	assert.False(t, cfg.AIEnabled())
}

func TestLoad_FallsBackToOpenAIKey(t *testing.T) {
	t.Setenv("AI_API_KEY", "")
	t.Setenv("OPENAI_API_KEY", "sk-test")

	cfg, err := Load()
	require.NoError(t, err)
	assert.True(t, cfg.AIEnabled())
	assert.Equal(t, "sk-test", cfg.AIAPIKey)
}

func TestLoad_Rejects(t *testing.T) {
	tests := []struct {
		name string
		env  map[string]string
	}{
		{"unknown driver", map[string]string{"STORE_DRIVER": "sqlite"}},
		{"postgres without url", map[string]string{"STORE_DRIVER": "postgres", "DATABASE_URL": ""}},
		{"bad redis db", map[string]string{"REDIS_DB": "zero"}},
		{"bad timeout", map[string]string{"AI_TIMEOUT": "soon"}},
	}
	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			for k, v := range tt.env {
				t.Setenv(k, v)
			}
			_, err := Load()
			assert.Error(t, err)
		})
	}
}
