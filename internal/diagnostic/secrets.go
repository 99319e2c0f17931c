package diagnostic

import (
	"errors"
	"fmt"
	"io/fs"
	"os"
	"path/filepath"
	"strings"

	"github.com/pelletier/go-toml/v2"
)

// Markers that must both appear in the secrets file.
const (
	MarkerConnections = "connections"
	MarkerGSheets     = "gsheets"
)

// CheckSecrets inspects the Streamlit secrets file at path. It passes only
// when the file is readable and its text contains both markers; the TOML
// itself is not validated.
func CheckSecrets(path string) Result {
	if _, err := os.Stat(path); err != nil {
		if errors.Is(err, fs.ErrNotExist) {
			return fail(NameSecrets, Errorf("%s not found", path))
		}
		return fail(NameSecrets, Errorf("Error reading %s: %v", filepath.Base(path), err))
	}

	content, err := os.ReadFile(path)
	if err != nil {
		return fail(NameSecrets, Errorf("Error reading %s: %v", filepath.Base(path), err))
	}

	if !HasGSheetsMarkers(string(content)) {
		return fail(NameSecrets, Errorf("%s exists but no gsheets config found", path))
	}
	return pass(NameSecrets, "%s has gsheets configuration", path)
}

// HasGSheetsMarkers reports whether text mentions both "gsheets" and
// "connections", anywhere and in any surrounding text.
func HasGSheetsMarkers(text string) bool {
	return strings.Contains(text, MarkerGSheets) && strings.Contains(text, MarkerConnections)
}

// GSheetsConnection is the [connections.gsheets] table of a Streamlit
// secrets file, as written for st-gsheets-connection.
type GSheetsConnection struct {
	Spreadsheet string      `toml:"spreadsheet"`
	Worksheet   interface{} `toml:"worksheet"`
}

// WorksheetName returns the worksheet setting as text; it may be written as
// a name or as a numeric gid.
func (c GSheetsConnection) WorksheetName() string {
	if c.Worksheet == nil {
		return ""
	}
	return fmt.Sprint(c.Worksheet)
}

type secretsFile struct {
	Connections struct {
		GSheets GSheetsConnection `toml:"gsheets"`
	} `toml:"connections"`
}

// ReadGSheetsConnection parses the secrets file as TOML and returns its
// [connections.gsheets] table. The result only feeds optional follow-up
// steps; CheckSecrets alone decides whether the secrets are configured.
func ReadGSheetsConnection(path string) (GSheetsConnection, error) {
	content, err := os.ReadFile(path)
	if err != nil {
		return GSheetsConnection{}, fmt.Errorf("failed to read secrets file: %w", err)
	}

	var f secretsFile
	if err := toml.Unmarshal(content, &f); err != nil {
		return GSheetsConnection{}, fmt.Errorf("failed to parse secrets file: %w", err)
	}
	return f.Connections.GSheets, nil
}
