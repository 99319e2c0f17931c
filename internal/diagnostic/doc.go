// Package diagnostic implements the sheetcheck checklist.
//
// A run is a fixed sequence:
//
//  1. Gate: the Sheets, Drive and credential capabilities must resolve, or
//     the run stops with a *GateError.
//  2. Secrets: the Streamlit secrets file must mention both "connections"
//     and "gsheets".
//  3. Credentials: the service-account key file must exist.
//  4. Connection: with the key file present, list the spreadsheets the
//     service account can see.
//  5. Summary: print a pass/fail table and the overall verdict.
//
// Steps 2 to 4 are independent and always attempted. Their failures are
// reported, never returned: every check produces a Result whose Err carries
// only a human-readable message.
package diagnostic
