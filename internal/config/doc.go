// Package config resolves sheetcheck settings from flags, SHEETCHECK_*
// environment variables and an optional .env file.
//
// Precedence, highest first: explicit flag, environment variable, .env
// entry, built-in default. The .env file never overrides variables that are
// already set in the environment.
package config
