package logging

import (
	"bytes"
	"errors"
	"log/slog"
	"strings"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func TestParseLevel(t *testing.T) {
	tests := []struct {
		name    string
		input   string
		want    slog.Level
		wantErr bool
	}{
		{"debug", "debug", slog.LevelDebug, false},
		{"info", "info", slog.LevelInfo, false},
		{"empty defaults to info", "", slog.LevelInfo, false},
		{"warn", "warn", slog.LevelWarn, false},
		{"warning alias", "WARNING", slog.LevelWarn, false},
		{"error", "error", slog.LevelError, false},
		{"unknown", "verbose", slog.LevelInfo, true},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			got, err := ParseLevel(tt.input)
			if tt.wantErr {
				assert.Error(t, err)
				return
			}
			require.NoError(t, err)
			assert.Equal(t, tt.want, got)
		})
	}
}

func TestNew_TextFormat(t *testing.T) {
	var buf bytes.Buffer
	logger, err := New(&buf, Options{Level: "debug", Format: FormatText})
	require.NoError(t, err)

	logger.Debug("reading file", Path("/tmp/secrets.toml"))
	assert.Contains(t, buf.String(), "path=/tmp/secrets.toml")
}

func TestNew_JSONFormat(t *testing.T) {
	var buf bytes.Buffer
	logger, err := New(&buf, Options{Level: "info", Format: FormatJSON})
	require.NoError(t, err)

	logger.Info("check finished", Check("secrets"), Status("pass"))
	out := buf.String()
	assert.True(t, strings.HasPrefix(out, "{"), "expected JSON output, got %q", out)
	assert.Contains(t, out, `"check":"secrets"`)
	assert.Contains(t, out, `"status":"pass"`)
}

func TestNew_LevelFilters(t *testing.T) {
	var buf bytes.Buffer
	logger, err := New(&buf, Options{Level: "warn"})
	require.NoError(t, err)

	logger.Info("hidden")
	assert.Empty(t, buf.String())

	logger.Warn("shown")
	assert.Contains(t, buf.String(), "shown")
}

func TestNew_InvalidOptions(t *testing.T) {
	_, err := New(&bytes.Buffer{}, Options{Level: "loud"})
	assert.Error(t, err)

	_, err = New(&bytes.Buffer{}, Options{Format: "xml"})
	assert.Error(t, err)
}

func TestWithCheck(t *testing.T) {
	var buf bytes.Buffer
	logger := WithCheck(slog.New(slog.NewTextHandler(&buf, nil)), "credentials")
	logger.Info("done")
	assert.Contains(t, buf.String(), "check=credentials")
}

func TestErr(t *testing.T) {
	attr := Err(errors.New("boom"))
	assert.Equal(t, KeyError, attr.Key)
	assert.Equal(t, "boom", attr.Value.String())

	nilAttr := Err(nil)
	assert.Equal(t, "", nilAttr.Key)
}

func TestAnonymizeEmail(t *testing.T) {
	assert.Equal(t, "", AnonymizeEmail(""))

	hashed := AnonymizeEmail("bot@project.iam.gserviceaccount.com")
	assert.True(t, strings.HasPrefix(hashed, "account:"))
	assert.NotContains(t, hashed, "project")
	assert.Equal(t, hashed, AnonymizeEmail("bot@project.iam.gserviceaccount.com"))
	assert.NotEqual(t, hashed, AnonymizeEmail("other@project.iam.gserviceaccount.com"))
}

func TestAccountHash(t *testing.T) {
	attr := AccountHash("bot@project.iam.gserviceaccount.com")
	assert.Equal(t, KeyAccountHash, attr.Key)
	assert.Equal(t, AnonymizeEmail("bot@project.iam.gserviceaccount.com"), attr.Value.String())
}
