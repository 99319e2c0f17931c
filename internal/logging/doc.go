// Package logging provides structured logging utilities for sheetcheck.
//
// The diagnostic report itself is plain console output written by the
// diagnostic package. This package covers the secondary slog stream on
// stderr that records what each check did, which is useful when a check fails
// for an unclear reason.
//
// # Usage Patterns
//
// Create a logger with standard attributes:
//
//	logger := logging.WithCheck(slog.Default(), "secrets")
//	logger.Debug("reading secrets file",
//	    logging.Path(path))
//
// Service-account identities are hashed before logging:
//
//	logger.Info("credentials loaded",
//	    logging.AccountHash(email))
package logging
