package google

// Scopes requested for the service account.
const (
	SpreadsheetsScope = "https://www.googleapis.com/auth/spreadsheets"
	DriveScope        = "https://www.googleapis.com/auth/drive"
)

// SheetsScopes grants read/write access to spreadsheets and to the Drive
// files that back them. Listing spreadsheets goes through Drive, which is why
// both are needed.
var SheetsScopes = []string{
	SpreadsheetsScope,
	DriveScope,
}
