// Package sheets provides a read-only client for the Google Sheets API.
//
// It is used to open a single spreadsheet after the Drive listing has proven
// the credentials work, so a misconfigured spreadsheet ID or a sheet that was
// never shared with the service account shows up in the diagnostic output.
package sheets
