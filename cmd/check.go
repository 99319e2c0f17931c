package cmd

import (
	"context"
	"fmt"
	"io"
	"time"

	"github.com/spf13/cobra"
	"github.com/spf13/viper"

	"github.com/teemow/sheetcheck/internal/config"
	"github.com/teemow/sheetcheck/internal/diagnostic"
	"github.com/teemow/sheetcheck/internal/instrumentation"
	"github.com/teemow/sheetcheck/internal/logging"
)

// dotEnvFile is loaded from the working directory before configuration is read.
const dotEnvFile = ".env"

const shutdownTimeout = 5 * time.Second

func newCheckCmd() *cobra.Command {
	v := config.New()

	cmd := &cobra.Command{
		Use:   "check",
		Short: "Run the Google Sheets connection diagnostic",
		Long: `Run the Google Sheets connection diagnostic.

Steps, in order:
  1. Check that the Sheets, Drive and credential libraries are available
  2. Look for a [connections.gsheets] section in the Streamlit secrets file
  3. Look for the service-account key file
  4. Connect with the key and list the spreadsheets the account can see
  5. Print a summary

Only a missing library makes the command fail. Failed checks are reported
and the command still exits 0.

Every flag can also be set with a SHEETCHECK_ environment variable, either
in the environment or in a .env file in the working directory.`,
		Args: cobra.NoArgs,
		RunE: func(cmd *cobra.Command, args []string) error {
			return runCheck(cmd.Context(), v, cmd.OutOrStdout(), cmd.ErrOrStderr())
		},
	}

	cobra.CheckErr(config.BindFlags(v, cmd.Flags()))
	return cmd
}

func runCheck(ctx context.Context, v *viper.Viper, stdout, stderr io.Writer) error {
	if ctx == nil {
		ctx = context.Background()
	}

	if err := config.LoadDotEnv(dotEnvFile); err != nil {
		return err
	}

	cfg, err := config.Load(v)
	if err != nil {
		return fmt.Errorf("invalid configuration: %w", err)
	}

	logger, err := logging.New(stderr, logging.Options{Level: cfg.LogLevel, Format: cfg.LogFormat})
	if err != nil {
		return fmt.Errorf("failed to create logger: %w", err)
	}

	instrConfig := instrumentation.DefaultConfig()
	instrConfig.ServiceVersion = version

	provider, err := instrumentation.NewProvider(ctx, instrConfig)
	if err != nil {
		return fmt.Errorf("failed to create instrumentation provider: %w", err)
	}
	defer func() {
		shutdownCtx, cancel := context.WithTimeout(context.Background(), shutdownTimeout)
		defer cancel()
		if err := provider.Shutdown(shutdownCtx); err != nil {
			logger.Warn("error during instrumentation shutdown", logging.Err(err))
		}
	}()

	logger.Debug("starting diagnostic",
		logging.Path(cfg.ProjectRoot),
		logging.Operation("check"))

	runner := diagnostic.NewRunner(cfg, stdout, logger, provider.Metrics())
	_, err = runner.Run(ctx)
	return err
}
