package logging

import (
	"os"
	"path/filepath"
	"testing"

	"github.com/charmbracelet/log"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func TestParseLevel(t *testing.T) {
	tests := []struct {
		input   string
		want    log.Level
		wantErr bool
	}{
		{input: "debug", want: log.DebugLevel},
		{input: "info", want: log.InfoLevel},
		{input: "INFO", want: log.InfoLevel},
		{input: "", want: log.InfoLevel},
		{input: "warn", want: log.WarnLevel},
		{input: "warning", want: log.WarnLevel},
		{input: "error", want: log.ErrorLevel},
		{input: "verbose", wantErr: true},
	}

	for _, tt := range tests {
		t.Run(tt.input, func(t *testing.T) {
			got, err := ParseLevel(tt.input)
			if tt.wantErr {
				assert.ErrorIs(t, err, ErrInvalidLevel)
				return
			}
			require.NoError(t, err)
			assert.Equal(t, tt.want, got)
		})
	}
}

func TestInitWritesToFile(t *testing.T) {
	path := filepath.Join(t.TempDir(), "logs", "dragabyte.log")

	require.NoError(t, Init(Config{Level: "debug", Path: path}))
	defer Close()

	Get("test").Info("hello", "k", "v")

	data, err := os.ReadFile(path)
	require.NoError(t, err)
	assert.Contains(t, string(data), "hello")
	assert.Contains(t, string(data), "test")
}

func TestInitRejectsInvalidLevel(t *testing.T) {
	assert.ErrorIs(t, Init(Config{Level: "verbose"}), ErrInvalidLevel)
}

func TestGetWithoutInit(t *testing.T) {
	Close()
	assert.NotNil(t, Get("scan"))
}

func TestDefaultLogPath(t *testing.T) {
	assert.NotEmpty(t, DefaultLogPath())
}
