package diagnostic

import (
	"context"
	"errors"
	"fmt"
	"io"
	"log/slog"

	"go.opentelemetry.io/otel/trace"

	"github.com/teemow/sheetcheck/internal/config"
	"github.com/teemow/sheetcheck/internal/instrumentation"
	"github.com/teemow/sheetcheck/internal/logging"
	"github.com/teemow/sheetcheck/internal/sheets"
)

// Report is the machine-side outcome of a run.
type Report struct {
	Gate        []CapabilityStatus
	Secrets     Result
	Credentials Result
	Connection  ProbeResult
	Summary     Summary
}

// Runner executes the checklist in its fixed order.
type Runner struct {
	Config   config.Config
	Gate     *Gate
	Probe    *Probe
	Reporter *Reporter
	Logger   *slog.Logger
	Metrics  *instrumentation.Metrics
}

// NewRunner wires a Runner with the default gate and a service-account
// connector for cfg, reporting to out.
func NewRunner(cfg config.Config, out io.Writer, logger *slog.Logger, metrics *instrumentation.Metrics) *Runner {
	if logger == nil {
		logger = slog.Default()
	}
	return &Runner{
		Config: cfg,
		Gate:   NewGate(),
		Probe: &Probe{
			Connector: NewServiceAccountConnector(cfg.DriveEndpoint, cfg.SheetsEndpoint),
			Metrics:   metrics,
			Logger:    logger,
		},
		Reporter: NewReporter(out),
		Logger:   logger,
		Metrics:  metrics,
	}
}

// Run performs the checklist. The only error it returns is a *GateError;
// every other failure is part of the Report.
func (r *Runner) Run(ctx context.Context) (Report, error) {
	ctx, span := instrumentation.StartSpan(ctx, "sheetcheck.run")
	defer span.End()

	if r.Logger == nil {
		r.Logger = slog.Default()
	}

	var report Report

	r.Reporter.Banner()

	r.Reporter.Section("📦", "Checking required packages...")
	statuses, err := r.checkGate(ctx)
	if err != nil {
		r.Reporter.MissingPackage(err)
		instrumentation.SetSpanError(span, err)
		return report, err
	}
	report.Gate = statuses
	r.Reporter.PackagesInstalled(statuses)

	r.Reporter.Section("⚙️", "Checking configuration...")
	report.Secrets = r.runCheck(ctx, NameSecrets, func() Result {
		return CheckSecrets(r.Config.SecretsFile())
	})
	r.Reporter.Result(report.Secrets)

	report.Credentials = r.runCheck(ctx, NameCredentials, func() Result {
		return CheckCredentialFile(r.Config.CredentialsFile())
	})
	r.Reporter.Result(report.Credentials)

	r.Reporter.Section("🔗", "Testing connection...")
	report.Connection = r.runProbe(ctx, report.Credentials.OK())
	r.Reporter.Result(report.Connection.Result)

	report.Summary = Summarize(report.Secrets.OK(), report.Credentials.OK(), report.Connection.OK())
	r.Reporter.Summary(report.Summary)

	r.Logger.Info("diagnostic finished",
		slog.Bool("working", report.Summary.Working),
		slog.Int("spreadsheets", report.Connection.Count))
	instrumentation.SetSpanSuccess(span)
	return report, nil
}

func (r *Runner) checkGate(ctx context.Context) ([]CapabilityStatus, error) {
	_, span := instrumentation.StartCheckSpan(ctx, NameGate)
	defer span.End()

	statuses, err := r.Gate.Check()
	if err != nil {
		var gateErr *GateError
		if errors.As(err, &gateErr) {
			r.Logger.Error("capability missing", logging.Check(NameGate), slog.String("capability", gateErr.Capability), logging.Err(gateErr.Err))
		}
		instrumentation.SetCheckResult(span, instrumentation.ResultFail, err.Error())
		r.Metrics.RecordCheckResult(ctx, NameGate, instrumentation.ResultFail)
		return nil, err
	}

	instrumentation.SetCheckResult(span, instrumentation.ResultPass, "")
	r.Metrics.RecordCheckResult(ctx, NameGate, instrumentation.ResultPass)
	return statuses, nil
}

func (r *Runner) runCheck(ctx context.Context, name string, check func() Result) Result {
	ctx, span := instrumentation.StartCheckSpan(ctx, name)
	defer span.End()

	res := check()
	r.record(ctx, span, res, instrumentation.ResultFail)
	return res
}

func (r *Runner) runProbe(ctx context.Context, credentialsOK bool) ProbeResult {
	ctx, span := instrumentation.StartCheckSpan(ctx, NameConnection)
	defer span.End()

	if !credentialsOK {
		res := r.Probe.Skipped(r.Config.CredentialsFile())
		r.record(ctx, span, res.Result, instrumentation.ResultSkip)
		return res
	}

	r.Reporter.Line("🔍", "Testing Google Sheets connection...")
	res := r.Probe.Run(ctx, r.Config.CredentialsFile(), r.openTarget)
	r.record(ctx, span, res.Result, instrumentation.ResultFail)
	return res
}

// record logs, meters and annotates a finished check. notOK is the metric
// result for anything but a pass.
func (r *Runner) record(ctx context.Context, span trace.Span, res Result, notOK string) {
	result := instrumentation.ResultPass
	if !res.OK() {
		result = notOK
	}

	instrumentation.SetCheckResult(span, result, res.Message)
	r.Metrics.RecordCheckResult(ctx, res.Name, result)
	r.Logger.Debug("check finished", logging.Check(res.Name), logging.Status(result), slog.String("message", res.Message))
}

// openTarget returns the spreadsheet to open after listing: the configured
// one, or the one named in the secrets file together with its worksheet.
// A zero target means none.
func (r *Runner) openTarget() (OpenTarget, error) {
	raw := r.Config.Spreadsheet
	var worksheet string
	if raw == "" {
		conn, err := ReadGSheetsConnection(r.Config.SecretsFile())
		if err != nil {
			r.Logger.Debug("secrets file not usable as TOML", logging.Path(r.Config.SecretsFile()), logging.Err(err))
			return OpenTarget{}, nil
		}
		raw, worksheet = conn.Spreadsheet, conn.WorksheetName()
	}
	if raw == "" {
		return OpenTarget{}, nil
	}

	id, err := sheets.ParseSpreadsheetID(raw)
	if err != nil {
		return OpenTarget{}, fmt.Errorf("spreadsheet %q: %w", raw, err)
	}
	return OpenTarget{Spreadsheet: id, Worksheet: worksheet}, nil
}
