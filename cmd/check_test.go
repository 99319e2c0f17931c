package cmd

import (
	"bytes"
	"context"
	"encoding/json"
	"net/http"
	"net/http/httptest"
	"os"
	"path/filepath"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/teemow/sheetcheck/internal/googletest"
)

func executeCommand(t *testing.T, args ...string) (stdout, stderr string, err error) {
	t.Helper()

	cmd := newRootCmd()
	var out, errOut bytes.Buffer
	cmd.SetOut(&out)
	cmd.SetErr(&errOut)
	if args == nil {
		// nil would make cobra fall back to os.Args
		args = []string{}
	}
	cmd.SetArgs(args)

	err = cmd.ExecuteContext(context.Background())
	return out.String(), errOut.String(), err
}

func TestCheckCmd_EmptyProject(t *testing.T) {
	dir := t.TempDir()

	stdout, _, err := executeCommand(t, "check", "--project-root", dir)
	require.NoError(t, err, "failed checks must not fail the command")

	assert.Contains(t, stdout, "🔍 Google Sheets Connection Diagnostic Tool")
	assert.Contains(t, stdout, "✅ Required packages are installed")
	assert.Contains(t, stdout, "❌ service-account.json not found")
	assert.Contains(t, stdout, "❌ Cannot test manual connection without service-account.json")
	assert.Contains(t, stdout, "❌ Google Sheets connection is not working")
}

func TestRootCmd_RunsCheckByDefault(t *testing.T) {
	dir := t.TempDir()
	require.NoError(t, os.MkdirAll(filepath.Join(dir, ".streamlit"), 0o755))
	require.NoError(t, os.WriteFile(filepath.Join(dir, ".streamlit", "secrets.toml"), []byte("[connections.gsheets]\n"), 0o600))

	tests := []struct {
		name string
		args []string
	}{
		{name: "root with flags", args: []string{"--project-root", dir}},
		{name: "check subcommand", args: []string{"check", "--project-root", dir}},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			stdout, _, err := executeCommand(t, tt.args...)
			require.NoError(t, err)
			assert.Contains(t, stdout, "🔍 Google Sheets Connection Diagnostic Tool")
			assert.Contains(t, stdout, "has gsheets configuration")
			assert.Contains(t, stdout, "🎉 Google Sheets connection is working!")
		})
	}
}

func TestRootCmd_NoArgs(t *testing.T) {
	t.Setenv("SHEETCHECK_PROJECT_ROOT", t.TempDir())

	stdout, _, err := executeCommand(t)
	require.NoError(t, err)
	assert.Contains(t, stdout, "📊 Summary:")
}

func TestRootCmd_RejectsUnknownArgs(t *testing.T) {
	_, _, err := executeCommand(t, "bogus")
	assert.Error(t, err)
}

func TestCheckCmd_SecretsFromEnv(t *testing.T) {
	dir := t.TempDir()
	secrets := filepath.Join(dir, "custom.toml")
	require.NoError(t, os.WriteFile(secrets, []byte("[connections.gsheets]\nspreadsheet = \"abc\"\n"), 0o600))

	t.Setenv("SHEETCHECK_PROJECT_ROOT", dir)
	t.Setenv("SHEETCHECK_SECRETS_PATH", "custom.toml")

	stdout, _, err := executeCommand(t, "check")
	require.NoError(t, err)

	assert.Contains(t, stdout, "✅ "+secrets+" has gsheets configuration")
	assert.Contains(t, stdout, "🎉 Google Sheets connection is working!")
}

func TestCheckCmd_InvalidLogLevel(t *testing.T) {
	_, _, err := executeCommand(t, "check", "--project-root", t.TempDir(), "--log-level", "loud")
	require.Error(t, err)
	assert.Contains(t, err.Error(), "invalid configuration")
}

func TestCheckCmd_RejectsArgs(t *testing.T) {
	_, _, err := executeCommand(t, "check", "extra")
	assert.Error(t, err)
}

func TestCheckCmd_LiveConnection(t *testing.T) {
	tokenServer := googletest.NewTokenServer(t)
	drive := httptest.NewServer(http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		if r.Header.Get("Authorization") != "Bearer "+googletest.AccessToken {
			w.WriteHeader(http.StatusUnauthorized)
			return
		}
		w.Header().Set("Content-Type", "application/json")
		_ = json.NewEncoder(w).Encode(map[string]interface{}{
			"files": []map[string]string{
				{"id": "1", "name": "Orders"},
				{"id": "2", "name": "Inventory"},
			},
		})
	}))
	t.Cleanup(drive.Close)

	dir := t.TempDir()
	require.NoError(t, os.WriteFile(
		filepath.Join(dir, "service-account.json"),
		googletest.ServiceAccountJSON(t, tokenServer.URL),
		0o600,
	))
	t.Setenv("SHEETCHECK_DRIVE_ENDPOINT", drive.URL+"/")

	stdout, stderr, err := executeCommand(t, "check", "--project-root", dir, "--log-level", "debug", "--log-format", "json")
	require.NoError(t, err)

	assert.Contains(t, stdout, "✅ service-account.json found")
	assert.Contains(t, stdout, "🔍 Testing Google Sheets connection...")
	assert.Contains(t, stdout, "✅ Connected! Found 2 spreadsheets")
	assert.Contains(t, stdout, "   - Orders (ID: 1)")
	assert.Contains(t, stdout, "   - Inventory (ID: 2)")
	assert.Contains(t, stdout, "🎉 Google Sheets connection is working!")

	assert.Contains(t, stderr, `"msg":"diagnostic finished"`)
	assert.NotContains(t, stderr, googletest.ServiceAccountEmail, "account email must not be logged in clear")
}

func TestVersionCmd(t *testing.T) {
	SetVersion("1.2.3")
	t.Cleanup(func() { SetVersion("dev") })

	stdout, _, err := executeCommand(t, "version")
	require.NoError(t, err)
	assert.Equal(t, "sheetcheck version 1.2.3\n", stdout)
}
