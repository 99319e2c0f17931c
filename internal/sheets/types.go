package sheets

import "strconv"

// SpreadsheetInfo describes a spreadsheet opened through the Sheets API
type SpreadsheetInfo struct {
	// ID is the spreadsheet ID
	ID string `json:"id"`

	// Title is the spreadsheet title
	Title string `json:"title"`

	// Locale is the spreadsheet locale, e.g. "en_US"
	Locale string `json:"locale,omitempty"`

	// URL opens the spreadsheet in the Sheets editor
	URL string `json:"url,omitempty"`

	// Worksheets are the titles of the tabs, in display order
	Worksheets []string `json:"worksheets"`

	// WorksheetIDs are the sheet IDs (the gid in URLs), parallel to Worksheets
	WorksheetIDs []int64 `json:"worksheetIds"`
}

// HasWorksheet reports whether the spreadsheet has a worksheet with the
// given title or, for a numeric value, the given sheet ID.
func (s *SpreadsheetInfo) HasWorksheet(titleOrID string) bool {
	for _, title := range s.Worksheets {
		if title == titleOrID {
			return true
		}
	}
	id, err := strconv.ParseInt(titleOrID, 10, 64)
	if err != nil {
		return false
	}
	for _, wsID := range s.WorksheetIDs {
		if wsID == id {
			return true
		}
	}
	return false
}
