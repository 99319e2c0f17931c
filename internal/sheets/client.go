package sheets

import (
	"context"
	"fmt"
	"net/http"
	"net/url"
	"strings"

	"google.golang.org/api/option"
	sheetsv4 "google.golang.org/api/sheets/v4"
)

// Client wraps the Google Sheets API service
type Client struct {
	service *sheetsv4.Service
}

// NewClient creates a Sheets client that sends requests through httpClient.
// Extra options (such as option.WithEndpoint) are applied after it.
func NewClient(ctx context.Context, httpClient *http.Client, opts ...option.ClientOption) (*Client, error) {
	if httpClient == nil {
		return nil, fmt.Errorf("http client is required")
	}

	allOpts := append([]option.ClientOption{option.WithHTTPClient(httpClient)}, opts...)
	srv, err := sheetsv4.NewService(ctx, allOpts...)
	if err != nil {
		return nil, fmt.Errorf("failed to create Sheets service: %w", err)
	}

	return &Client{service: srv}, nil
}

// GetSpreadsheet fetches the title and worksheet names of a spreadsheet.
// Grid data is not requested.
func (c *Client) GetSpreadsheet(ctx context.Context, spreadsheetID string) (*SpreadsheetInfo, error) {
	if spreadsheetID == "" {
		return nil, fmt.Errorf("spreadsheetID is required")
	}

	s, err := c.service.Spreadsheets.Get(spreadsheetID).
		Context(ctx).
		IncludeGridData(false).
		Fields("spreadsheetId,spreadsheetUrl,properties(title,locale),sheets(properties(sheetId,title,index))").
		Do()
	if err != nil {
		return nil, fmt.Errorf("failed to get spreadsheet %s: %w", spreadsheetID, err)
	}

	return convertToSpreadsheetInfo(s), nil
}

func convertToSpreadsheetInfo(s *sheetsv4.Spreadsheet) *SpreadsheetInfo {
	info := &SpreadsheetInfo{
		ID:           s.SpreadsheetId,
		URL:          s.SpreadsheetUrl,
		Worksheets:   []string{},
		WorksheetIDs: []int64{},
	}
	if s.Properties != nil {
		info.Title = s.Properties.Title
		info.Locale = s.Properties.Locale
	}
	for _, sheet := range s.Sheets {
		if sheet.Properties != nil {
			info.Worksheets = append(info.Worksheets, sheet.Properties.Title)
			info.WorksheetIDs = append(info.WorksheetIDs, sheet.Properties.SheetId)
		}
	}
	return info
}

// ParseSpreadsheetID accepts either a bare spreadsheet ID or a Google Sheets
// URL of the form https://docs.google.com/spreadsheets/d/<id>/... and returns
// the ID.
func ParseSpreadsheetID(idOrURL string) (string, error) {
	idOrURL = strings.TrimSpace(idOrURL)
	if idOrURL == "" {
		return "", fmt.Errorf("spreadsheet ID is empty")
	}

	if !strings.Contains(idOrURL, "://") {
		if strings.ContainsAny(idOrURL, "/?# ") {
			return "", fmt.Errorf("invalid spreadsheet ID %q", idOrURL)
		}
		return idOrURL, nil
	}

	u, err := url.Parse(idOrURL)
	if err != nil {
		return "", fmt.Errorf("invalid spreadsheet URL: %w", err)
	}

	parts := strings.Split(strings.Trim(u.Path, "/"), "/")
	for i := 0; i+1 < len(parts); i++ {
		if parts[i] == "d" && parts[i+1] != "" {
			return parts[i+1], nil
		}
	}
	return "", fmt.Errorf("no spreadsheet ID in URL %q", idOrURL)
}
