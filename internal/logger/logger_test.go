package logger

import (
	"os"
	"path/filepath"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func TestSetup_WritesJSONToFile(t *testing.T) {
	path := filepath.Join(t.TempDir(), "app.log")
	closeLog, err := Setup(LogConfig{Level: "debug", Format: "json", Output: path})
	require.NoError(t, err)
	t.Cleanup(func() { _, _ = Setup(DefaultConfig()) })

	l := WithComponent("documents")
	l.Info().Str("id", "abc").Msg("document voided")
	require.NoError(t, closeLog())

	data, err := os.ReadFile(path)
	require.NoError(t, err)
	assert.Contains(t, string(data), `"component":"documents"`)
	assert.Contains(t, string(data), `"message":"document voided"`)
}

func TestSetup_RejectsUnknownLevel(t *testing.T) {
	_, err := Setup(LogConfig{Level: "loud", Output: "stdout"})
	assert.Error(t, err)
}
