package diagnostic

import (
	"os"
	"path/filepath"
)

// CheckCredentialFile passes iff a file exists at path. The contents are not
// inspected; the connection probe finds out whether they are usable.
func CheckCredentialFile(path string) Result {
	name := filepath.Base(path)
	if _, err := os.Stat(path); err != nil {
		return fail(NameCredentials, Errorf("%s not found", name))
	}
	return pass(NameCredentials, "%s found", name)
}
