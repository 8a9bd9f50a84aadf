package logger

import (
	"os"
	"path/filepath"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func TestNew_FileSink(t *testing.T) {
	file := filepath.Join(t.TempDir(), "app.log")

	l, err := New(Options{Level: "warn", File: file})
	require.NoError(t, err)

	l.Info("dropped")
	l.Warn("kept")
	_ = l.Sync()

	data, err := os.ReadFile(file)
	require.NoError(t, err)
	assert.Contains(t, string(data), `"msg":"kept"`)
	assert.NotContains(t, string(data), "dropped")
}

func TestNew_BadLevel(t *testing.T) {
	_, err := New(Options{Level: "loud"})
	require.Error(t, err)
}

func TestNew_Dev(t *testing.T) {
	l, err := New(Options{Env: "dev"})
	require.NoError(t, err)
	assert.True(t, l.Core().Enabled(-1), "dev logger defaults to debug")
}
