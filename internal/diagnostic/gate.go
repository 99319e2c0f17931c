package diagnostic

import (
	"context"
	"fmt"
	"net/http"
	"runtime/debug"

	oauthgoogle "golang.org/x/oauth2/google"
	drivev3 "google.golang.org/api/drive/v3"
	"google.golang.org/api/option"
	sheetsv4 "google.golang.org/api/sheets/v4"

	"github.com/teemow/sheetcheck/internal/google"
)

// InstallHint is printed when the gate fails.
const InstallHint = "Run: go mod download && go install github.com/teemow/sheetcheck@latest"

// Capability is something the live probe depends on. Probe must be cheap and
// must not touch the network.
type Capability struct {
	// Name is shown in the "Missing package" message
	Name string

	// Module is the Go module providing the capability, for version reporting
	Module string

	Probe func() error
}

// CapabilityStatus is a resolved capability.
type CapabilityStatus struct {
	Name    string
	Module  string
	Version string
}

// GateError reports the first capability that failed to resolve.
type GateError struct {
	Capability string
	Err        error
}

func (e *GateError) Error() string {
	return fmt.Sprintf("%s: %v", e.Capability, e.Err)
}

func (e *GateError) Unwrap() error {
	return e.Err
}

// Gate checks that every capability resolves before any other check runs.
type Gate struct {
	Capabilities []Capability
}

// NewGate returns a Gate over the default capabilities.
func NewGate() *Gate {
	return &Gate{Capabilities: DefaultCapabilities()}
}

// DefaultCapabilities are the spreadsheet connection helper, the API client
// and the credentials factory.
func DefaultCapabilities() []Capability {
	return []Capability{
		{
			Name:   "sheets connection helper",
			Module: "google.golang.org/api",
			Probe: func() error {
				_, err := sheetsv4.NewService(context.Background(), option.WithHTTPClient(http.DefaultClient))
				return err
			},
		},
		{
			Name:   "API client",
			Module: "google.golang.org/api",
			Probe: func() error {
				_, err := drivev3.NewService(context.Background(), option.WithHTTPClient(http.DefaultClient))
				return err
			},
		},
		{
			Name:   "credentials factory",
			Module: "golang.org/x/oauth2",
			Probe: func() error {
				const email = "probe@sheetcheck.invalid"
				cfg, err := oauthgoogle.JWTConfigFromJSON(
					[]byte(`{"type":"service_account","client_email":"`+email+`"}`),
					google.SheetsScopes...,
				)
				if err != nil {
					return err
				}
				if cfg.Email != email {
					return fmt.Errorf("unexpected client email %q", cfg.Email)
				}
				return nil
			},
		},
	}
}

// Check resolves every capability in order and stops at the first failure.
func (g *Gate) Check() ([]CapabilityStatus, error) {
	versions := moduleVersions()

	statuses := make([]CapabilityStatus, 0, len(g.Capabilities))
	for _, c := range g.Capabilities {
		if err := runProbe(c.Probe); err != nil {
			return statuses, &GateError{Capability: c.Name, Err: err}
		}
		statuses = append(statuses, CapabilityStatus{
			Name:    c.Name,
			Module:  c.Module,
			Version: versions[c.Module],
		})
	}
	return statuses, nil
}

func runProbe(probe func() error) (err error) {
	if probe == nil {
		return fmt.Errorf("no probe defined")
	}
	defer func() {
		if r := recover(); r != nil {
			err = fmt.Errorf("probe panicked: %v", r)
		}
	}()
	return probe()
}

// moduleVersions maps module paths to the versions linked into the binary.
// Test binaries and builds without module info yield an empty map.
func moduleVersions() map[string]string {
	versions := make(map[string]string)
	bi, ok := debug.ReadBuildInfo()
	if !ok {
		return versions
	}
	for _, dep := range bi.Deps {
		if dep.Replace != nil {
			versions[dep.Path] = dep.Replace.Version
			continue
		}
		versions[dep.Path] = dep.Version
	}
	return versions
}
