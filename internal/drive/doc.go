// Package drive provides a client for the parts of the Google Drive API that
// sheetcheck needs.
//
// Spreadsheets are Drive files with the Google Sheets MIME type, so listing
// the spreadsheets a service account can see is a Drive files.list query.
// The listing covers My Drive, shared drives and files shared with the
// account, and follows page tokens until it is exhausted.
//
// Example usage:
//
//	sa, err := google.LoadServiceAccount("service-account.json", google.SheetsScopes...)
//	if err != nil {
//	    log.Fatal(err)
//	}
//	client, err := drive.NewClient(ctx, sa.HTTPClient(ctx))
//	if err != nil {
//	    log.Fatal(err)
//	}
//	files, err := client.ListSpreadsheets(ctx, nil)
package drive
