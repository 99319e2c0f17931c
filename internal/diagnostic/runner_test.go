package diagnostic

import (
	"bytes"
	"context"
	"errors"
	"io"
	"log/slog"
	"path/filepath"
	"strings"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/teemow/sheetcheck/internal/config"
	"github.com/teemow/sheetcheck/internal/sheets"
)

func testConfig(dir string) config.Config {
	return config.Config{
		ProjectRoot:     dir,
		SecretsPath:     config.DefaultSecretsPath,
		CredentialsPath: config.DefaultCredentialsPath,
		LogLevel:        config.DefaultLogLevel,
		LogFormat:       config.DefaultLogFormat,
	}
}

func newTestRunner(cfg config.Config, connector Connector, out io.Writer) *Runner {
	logger := slog.New(slog.NewTextHandler(io.Discard, nil))
	return &Runner{
		Config:   cfg,
		Gate:     NewGate(),
		Probe:    &Probe{Connector: connector, Logger: logger},
		Reporter: NewReporter(out),
		Logger:   logger,
	}
}

func TestRunner_NothingConfigured(t *testing.T) {
	connector := &fakeConnector{err: errors.New("must not be called")}
	var out bytes.Buffer

	report, err := newTestRunner(testConfig(t.TempDir()), connector, &out).Run(context.Background())
	require.NoError(t, err)

	assert.False(t, report.Secrets.OK())
	assert.False(t, report.Credentials.OK())
	assert.False(t, report.Connection.Attempted)
	assert.False(t, report.Summary.Working)
	assert.Empty(t, connector.paths)

	text := out.String()
	assert.Contains(t, text, "✅ Required packages are installed")
	assert.Contains(t, text, "secrets.toml not found")
	assert.Contains(t, text, "❌ service-account.json not found")
	assert.Contains(t, text, "❌ Cannot test manual connection without service-account.json")
	assert.NotContains(t, text, "Testing Google Sheets connection...")
	assert.Contains(t, text, "❌ Google Sheets connection is not working")
}

func TestRunner_OutputOrder(t *testing.T) {
	var out bytes.Buffer
	_, err := newTestRunner(testConfig(t.TempDir()), &fakeConnector{}, &out).Run(context.Background())
	require.NoError(t, err)

	text := out.String()
	markers := []string{
		"🔍 Google Sheets Connection Diagnostic Tool",
		"📦 Checking required packages...",
		"⚙️ Checking configuration...",
		"secrets.toml",
		"service-account.json",
		"🔗 Testing connection...",
		"📊 Summary:",
	}
	last := -1
	for _, m := range markers {
		idx := strings.Index(text, m)
		require.GreaterOrEqual(t, idx, 0, "missing %q", m)
		assert.Greater(t, idx, last, "%q out of order", m)
		last = idx
	}
}

func TestRunner_SecretsAloneIsWorking(t *testing.T) {
	dir := t.TempDir()
	writeFile(t, filepath.Join(dir, ".streamlit", "secrets.toml"), validSecrets)

	var out bytes.Buffer
	report, err := newTestRunner(testConfig(dir), &fakeConnector{}, &out).Run(context.Background())
	require.NoError(t, err)

	assert.True(t, report.Secrets.OK())
	assert.False(t, report.Connection.OK())
	assert.True(t, report.Summary.Working)
	assert.Contains(t, out.String(), "🎉 Google Sheets connection is working!")
}

func TestRunner_ConnectionWorks(t *testing.T) {
	dir := t.TempDir()
	writeFile(t, filepath.Join(dir, "service-account.json"), "{}")
	opener := &fakeOpener{err: errors.New("not shared")}
	connector := &fakeConnector{conn: &Connection{
		Lister: &fakeLister{files: spreadsheets(5)},
		Opener: opener,
	}}

	cfg := testConfig(dir)
	cfg.Spreadsheet = "https://docs.google.com/spreadsheets/d/1AbCdEfGhIjK/edit#gid=0"

	var out bytes.Buffer
	report, err := newTestRunner(cfg, connector, &out).Run(context.Background())
	require.NoError(t, err)

	assert.True(t, report.Connection.OK())
	assert.Equal(t, 5, report.Connection.Count)
	assert.True(t, report.Summary.Working)
	assert.Equal(t, []string{filepath.Join(dir, "service-account.json")}, connector.paths)
	assert.Equal(t, []string{"1AbCdEfGhIjK"}, opener.ids)

	text := out.String()
	assert.Contains(t, text, "🔍 Testing Google Sheets connection...")
	assert.Contains(t, text, "✅ Connected! Found 5 spreadsheets")
	assert.Equal(t, 3, strings.Count(text, "   - Sheet "))
	assert.Contains(t, text, "⚠️ Could not open spreadsheet 1AbCdEfGhIjK: not shared")
}

func TestRunner_SpreadsheetFromSecrets(t *testing.T) {
	dir := t.TempDir()
	writeFile(t, filepath.Join(dir, ".streamlit", "secrets.toml"), validSecrets)
	writeFile(t, filepath.Join(dir, "service-account.json"), "{}")
	opener := &fakeOpener{err: errors.New("not shared")}
	connector := &fakeConnector{conn: &Connection{
		Lister: &fakeLister{files: spreadsheets(1)},
		Opener: opener,
	}}

	_, err := newTestRunner(testConfig(dir), connector, io.Discard).Run(context.Background())
	require.NoError(t, err)
	assert.Equal(t, []string{"1AbCdEfGhIjK"}, opener.ids)
}

func TestRunner_EmptyListingIsNotWorking(t *testing.T) {
	dir := t.TempDir()
	writeFile(t, filepath.Join(dir, "service-account.json"), "{}")
	connector := &fakeConnector{conn: &Connection{Lister: &fakeLister{}}}

	var out bytes.Buffer
	report, err := newTestRunner(testConfig(dir), connector, &out).Run(context.Background())
	require.NoError(t, err)

	assert.True(t, report.Connection.Attempted)
	assert.False(t, report.Connection.OK())
	assert.False(t, report.Summary.Working)
	assert.Contains(t, out.String(), "⚠️ Connected but no spreadsheets found")
	assert.Contains(t, out.String(), "   Manual connection: ❌")
}

func TestRunner_Idempotent(t *testing.T) {
	dir := t.TempDir()
	writeFile(t, filepath.Join(dir, ".streamlit", "secrets.toml"), "[general]\n")

	var first, second bytes.Buffer
	r1, err := newTestRunner(testConfig(dir), &fakeConnector{}, &first).Run(context.Background())
	require.NoError(t, err)
	r2, err := newTestRunner(testConfig(dir), &fakeConnector{}, &second).Run(context.Background())
	require.NoError(t, err)

	assert.Equal(t, r1, r2)
	assert.Equal(t, first.String(), second.String())
}

func TestRunner_GateFailureStopsRun(t *testing.T) {
	dir := t.TempDir()
	writeFile(t, filepath.Join(dir, ".streamlit", "secrets.toml"), validSecrets)

	var out bytes.Buffer
	runner := newTestRunner(testConfig(dir), &fakeConnector{}, &out)
	runner.Gate = &Gate{Capabilities: []Capability{
		{Name: "sheets connection helper", Probe: func() error { return errors.New("not linked") }},
	}}

	report, err := runner.Run(context.Background())
	var gateErr *GateError
	require.ErrorAs(t, err, &gateErr)
	assert.Equal(t, Report{}, report)

	text := out.String()
	assert.Contains(t, text, "❌ Missing package: sheets connection helper: not linked")
	assert.Contains(t, text, InstallHint)
	assert.NotContains(t, text, "Checking configuration")
	assert.NotContains(t, text, "Summary")
}

func TestRunner_InvalidSpreadsheetReportedAfterListing(t *testing.T) {
	dir := t.TempDir()
	writeFile(t, filepath.Join(dir, "service-account.json"), "{}")
	cfg := testConfig(dir)
	cfg.Spreadsheet = "not/an id"

	t.Run("listing finds spreadsheets", func(t *testing.T) {
		connector := &fakeConnector{conn: &Connection{
			Lister: &fakeLister{files: spreadsheets(2)},
			Opener: &fakeOpener{},
		}}

		var out bytes.Buffer
		_, err := newTestRunner(cfg, connector, &out).Run(context.Background())
		require.NoError(t, err)

		text := out.String()
		connected := strings.Index(text, "✅ Connected! Found 2 spreadsheets")
		ignoring := strings.Index(text, `⚠️ Ignoring spreadsheet "not/an id"`)
		require.GreaterOrEqual(t, connected, 0)
		require.GreaterOrEqual(t, ignoring, 0)
		assert.Greater(t, ignoring, connected)
	})

	t.Run("listing finds nothing", func(t *testing.T) {
		connector := &fakeConnector{conn: &Connection{
			Lister: &fakeLister{},
			Opener: &fakeOpener{},
		}}

		var out bytes.Buffer
		_, err := newTestRunner(cfg, connector, &out).Run(context.Background())
		require.NoError(t, err)
		assert.NotContains(t, out.String(), "Ignoring")
	})

	t.Run("listing fails", func(t *testing.T) {
		connector := &fakeConnector{conn: &Connection{
			Lister: &fakeLister{err: errors.New("network unreachable")},
			Opener: &fakeOpener{},
		}}

		var out bytes.Buffer
		_, err := newTestRunner(cfg, connector, &out).Run(context.Background())
		require.NoError(t, err)
		assert.NotContains(t, out.String(), "Ignoring")
	})
}

func TestRunner_WorksheetFromSecrets(t *testing.T) {
	dir := t.TempDir()
	writeFile(t, filepath.Join(dir, ".streamlit", "secrets.toml"),
		"[connections.gsheets]\nspreadsheet = \"abc\"\nworksheet = \"Orders\"\n")
	writeFile(t, filepath.Join(dir, "service-account.json"), "{}")
	opener := &fakeOpener{info: &sheets.SpreadsheetInfo{ID: "abc", Title: "Shop", Worksheets: []string{"Items"}}}
	connector := &fakeConnector{conn: &Connection{
		Lister: &fakeLister{files: spreadsheets(1)},
		Opener: opener,
	}}

	var out bytes.Buffer
	report, err := newTestRunner(testConfig(dir), connector, &out).Run(context.Background())
	require.NoError(t, err)

	assert.True(t, report.Connection.OK())
	assert.Equal(t, []string{"abc"}, opener.ids)
	assert.Contains(t, out.String(), `⚠️ Worksheet "Orders" not found in "Shop"`)
}
