package drive

import "time"

// SpreadsheetFile is the Drive metadata of a Google Sheets spreadsheet
type SpreadsheetFile struct {
	// ID is the spreadsheet ID, usable with the Sheets API
	ID string `json:"id"`

	// Name is the title of the spreadsheet as shown in Drive
	Name string `json:"name"`

	// CreatedTime is when the spreadsheet was created
	CreatedTime time.Time `json:"createdTime"`

	// ModifiedTime is when the spreadsheet was last modified
	ModifiedTime time.Time `json:"modifiedTime"`

	// WebViewLink opens the spreadsheet in the Sheets editor
	WebViewLink string `json:"webViewLink,omitempty"`

	// Owners are the email addresses of the owners
	Owners []string `json:"owners,omitempty"`
}

// ListOptions contains options for listing spreadsheets
type ListOptions struct {
	// PageSize is the number of files requested per page (max: 1000).
	// Zero uses the API default.
	PageSize int
}
