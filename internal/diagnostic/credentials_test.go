package diagnostic

import (
	"path/filepath"
	"testing"

	"github.com/stretchr/testify/assert"
)

func TestCheckCredentialFile(t *testing.T) {
	dir := t.TempDir()
	path := filepath.Join(dir, "service-account.json")

	res := CheckCredentialFile(path)
	assert.False(t, res.OK())
	assert.Equal(t, "service-account.json not found", res.Message)

	// Contents are irrelevant to this check.
	writeFile(t, path, "not json")

	res = CheckCredentialFile(path)
	assert.True(t, res.OK())
	assert.Equal(t, NameCredentials, res.Name)
	assert.Equal(t, "service-account.json found", res.Message)
}
