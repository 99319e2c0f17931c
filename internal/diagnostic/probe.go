package diagnostic

import (
	"context"
	"fmt"
	"log/slog"
	"path/filepath"
	"strings"
	"time"

	"go.opentelemetry.io/otel/attribute"
	"google.golang.org/api/option"

	"github.com/teemow/sheetcheck/internal/drive"
	"github.com/teemow/sheetcheck/internal/google"
	"github.com/teemow/sheetcheck/internal/instrumentation"
	"github.com/teemow/sheetcheck/internal/logging"
	"github.com/teemow/sheetcheck/internal/sheets"
)

const (
	// DefaultPreviewCount is how many spreadsheets are listed by name.
	DefaultPreviewCount = 3

	// ListPageSize is the Drive page size used for the listing.
	ListPageSize = 1000
)

// SpreadsheetLister lists the spreadsheets visible to an account.
type SpreadsheetLister interface {
	ListSpreadsheets(ctx context.Context, options *drive.ListOptions) ([]*drive.SpreadsheetFile, error)
}

// SpreadsheetOpener opens a single spreadsheet read-only.
type SpreadsheetOpener interface {
	GetSpreadsheet(ctx context.Context, spreadsheetID string) (*sheets.SpreadsheetInfo, error)
}

// Connection is an authorized set of API clients.
type Connection struct {
	// Account is the service-account email, if known
	Account string

	Lister SpreadsheetLister
	Opener SpreadsheetOpener
}

// Connector builds a Connection from a credential file.
type Connector interface {
	Connect(ctx context.Context, credentialsPath string) (*Connection, error)
}

// ServiceAccountConnector authorizes Drive and Sheets clients with a
// service-account key scoped to google.SheetsScopes.
type ServiceAccountConnector struct {
	DriveOptions  []option.ClientOption
	SheetsOptions []option.ClientOption
}

// NewServiceAccountConnector returns a connector. Non-empty endpoints
// replace the public API base URLs.
func NewServiceAccountConnector(driveEndpoint, sheetsEndpoint string) *ServiceAccountConnector {
	c := &ServiceAccountConnector{}
	if driveEndpoint != "" {
		c.DriveOptions = append(c.DriveOptions, option.WithEndpoint(driveEndpoint))
	}
	if sheetsEndpoint != "" {
		c.SheetsOptions = append(c.SheetsOptions, option.WithEndpoint(sheetsEndpoint))
	}
	return c
}

// Connect implements Connector.
func (c *ServiceAccountConnector) Connect(ctx context.Context, credentialsPath string) (*Connection, error) {
	sa, err := google.LoadServiceAccount(credentialsPath, google.SheetsScopes...)
	if err != nil {
		return nil, err
	}

	httpClient := sa.HTTPClient(ctx)

	driveClient, err := drive.NewClient(ctx, httpClient, c.DriveOptions...)
	if err != nil {
		return nil, err
	}
	sheetsClient, err := sheets.NewClient(ctx, httpClient, c.SheetsOptions...)
	if err != nil {
		return nil, err
	}

	return &Connection{
		Account: sa.Email,
		Lister:  driveClient,
		Opener:  sheetsClient,
	}, nil
}

// OpenTarget names the spreadsheet, and optionally the worksheet, to open
// after listing.
type OpenTarget struct {
	// Spreadsheet is a bare spreadsheet ID
	Spreadsheet string

	// Worksheet is a worksheet title or sheet ID; empty skips the lookup
	Worksheet string
}

// TargetFunc resolves the OpenTarget. A zero target skips the open step; an
// error is reported as a warning detail.
type TargetFunc func() (OpenTarget, error)

// Probe performs the live connection check.
type Probe struct {
	Connector    Connector
	Metrics      *instrumentation.Metrics
	Logger       *slog.Logger
	PreviewCount int
}

// ProbeResult is the outcome of the live connection check.
type ProbeResult struct {
	Result

	// Attempted is false when the probe was skipped for lack of credentials
	Attempted bool

	// Count is the number of spreadsheets found
	Count int

	// Spreadsheets is the full listing, in API order
	Spreadsheets []*drive.SpreadsheetFile

	// Opened is set when a spreadsheet was opened after listing
	Opened *sheets.SpreadsheetInfo
}

// Skipped returns the result used when no credential file exists.
func (p *Probe) Skipped(credentialsPath string) ProbeResult {
	err := Errorf("Cannot test manual connection without %s", filepath.Base(credentialsPath))
	return ProbeResult{Result: fail(NameConnection, err)}
}

// Run lists the spreadsheets visible to the service account. Every error is
// reported the same way: no distinction is made between bad credentials,
// network failures and API errors. A listing with zero spreadsheets is a
// failed check.
//
// target is resolved only after a non-empty listing. The spreadsheet it
// names is then opened; that step only adds detail lines and never changes
// the outcome.
func (p *Probe) Run(ctx context.Context, credentialsPath string, target TargetFunc) ProbeResult {
	logger := logging.WithCheck(p.logger(), NameConnection)

	conn, err := p.Connector.Connect(ctx, credentialsPath)
	if err != nil {
		logger.Debug("failed to build credentials", logging.Path(credentialsPath), logging.Err(err))
		return p.failed(err)
	}
	if conn.Account != "" {
		logger.Debug("credentials loaded", logging.AccountHash(conn.Account))
	}

	files, err := p.listSpreadsheets(ctx, conn.Lister)
	if err != nil {
		logger.Debug("listing spreadsheets failed", logging.Err(err))
		return p.failed(err)
	}

	res := ProbeResult{
		Attempted:    true,
		Count:        len(files),
		Spreadsheets: files,
	}

	if len(files) == 0 {
		res.Result = Result{
			Name:    NameConnection,
			Status:  StatusWarn,
			Message: "Connected but no spreadsheets found",
			Err:     Errorf("connected but no spreadsheets found"),
		}
		return res
	}

	res.Result = pass(NameConnection, "Connected! Found %d spreadsheets", len(files))
	for _, f := range files[:min(p.previewCount(), len(files))] {
		res.Details = append(res.Details, fmt.Sprintf("   - %s (ID: %s)", f.Name, f.ID))
	}

	if target != nil && conn.Opener != nil {
		p.openTarget(ctx, logger, conn.Opener, target, &res)
	}

	return res
}

// openTarget resolves and opens the target, appending detail lines to res.
func (p *Probe) openTarget(ctx context.Context, logger *slog.Logger, opener SpreadsheetOpener, target TargetFunc, res *ProbeResult) {
	t, err := target()
	if err != nil {
		res.Details = append(res.Details, fmt.Sprintf("%s Ignoring %v", StatusWarn.Glyph(), err))
		return
	}
	if t.Spreadsheet == "" {
		return
	}

	info, err := p.openSpreadsheet(ctx, opener, t.Spreadsheet)
	if err != nil {
		logger.Debug("opening spreadsheet failed", logging.Err(err))
		res.Details = append(res.Details, fmt.Sprintf("%s Could not open spreadsheet %s: %v", StatusWarn.Glyph(), t.Spreadsheet, err))
		return
	}

	res.Opened = info
	res.Details = append(res.Details, fmt.Sprintf("%s Opened %q (worksheets: %s)", StatusPass.Glyph(), info.Title, joinOrNone(info.Worksheets)))

	if t.Worksheet == "" {
		return
	}
	if info.HasWorksheet(t.Worksheet) {
		res.Details = append(res.Details, fmt.Sprintf("%s Worksheet %q found", StatusPass.Glyph(), t.Worksheet))
	} else {
		res.Details = append(res.Details, fmt.Sprintf("%s Worksheet %q not found in %q", StatusWarn.Glyph(), t.Worksheet, info.Title))
	}
}

func (p *Probe) failed(err error) ProbeResult {
	return ProbeResult{
		Attempted: true,
		Result:    fail(NameConnection, Errorf("Manual connection failed: %v", err)),
	}
}

func (p *Probe) listSpreadsheets(ctx context.Context, lister SpreadsheetLister) ([]*drive.SpreadsheetFile, error) {
	ctx, span := instrumentation.StartGoogleAPISpan(ctx, instrumentation.ServiceDrive, instrumentation.OperationList)
	defer span.End()

	start := time.Now()
	files, err := lister.ListSpreadsheets(ctx, &drive.ListOptions{PageSize: ListPageSize})
	p.recordAPI(ctx, instrumentation.ServiceDrive, instrumentation.OperationList, err, time.Since(start))

	if err != nil {
		instrumentation.SetSpanError(span, err)
		return nil, err
	}
	span.SetAttributes(attribute.Int(instrumentation.SpanAttrResourceCount, len(files)))
	instrumentation.SetSpanSuccess(span)
	return files, nil
}

func (p *Probe) openSpreadsheet(ctx context.Context, opener SpreadsheetOpener, spreadsheetID string) (*sheets.SpreadsheetInfo, error) {
	ctx, span := instrumentation.StartGoogleAPISpan(ctx, instrumentation.ServiceSheets, instrumentation.OperationGet)
	defer span.End()

	start := time.Now()
	info, err := opener.GetSpreadsheet(ctx, spreadsheetID)
	p.recordAPI(ctx, instrumentation.ServiceSheets, instrumentation.OperationGet, err, time.Since(start))

	if err != nil {
		instrumentation.SetSpanError(span, err)
		return nil, err
	}
	instrumentation.SetSpanSuccess(span)
	return info, nil
}

func (p *Probe) recordAPI(ctx context.Context, service, operation string, err error, d time.Duration) {
	status := instrumentation.StatusSuccess
	if err != nil {
		status = instrumentation.StatusError
	}
	p.Metrics.RecordGoogleAPIOperation(ctx, service, operation, status, d)
}

func (p *Probe) previewCount() int {
	if p.PreviewCount > 0 {
		return p.PreviewCount
	}
	return DefaultPreviewCount
}

func (p *Probe) logger() *slog.Logger {
	if p.Logger != nil {
		return p.Logger
	}
	return slog.Default()
}

func joinOrNone(items []string) string {
	if len(items) == 0 {
		return "none"
	}
	return strings.Join(items, ", ")
}
