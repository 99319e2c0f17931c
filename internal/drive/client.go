package drive

import (
	"context"
	"fmt"
	"net/http"
	"time"

	drive "google.golang.org/api/drive/v3"
	"google.golang.org/api/option"
)

const (
	// SpreadsheetMimeType is the MIME type of Google Sheets files in Drive
	SpreadsheetMimeType = "application/vnd.google-apps.spreadsheet"

	spreadsheetFields = "nextPageToken, files(id, name, createdTime, modifiedTime, webViewLink, owners(emailAddress))"
)

// Client wraps the Google Drive API service
type Client struct {
	service *drive.Service
}

// NewClient creates a Drive client that sends requests through httpClient.
// Extra options (such as option.WithEndpoint) are applied after it.
func NewClient(ctx context.Context, httpClient *http.Client, opts ...option.ClientOption) (*Client, error) {
	if httpClient == nil {
		return nil, fmt.Errorf("http client is required")
	}

	allOpts := append([]option.ClientOption{option.WithHTTPClient(httpClient)}, opts...)
	driveService, err := drive.NewService(ctx, allOpts...)
	if err != nil {
		return nil, fmt.Errorf("failed to create Drive service: %w", err)
	}

	return &Client{service: driveService}, nil
}

// ListSpreadsheets lists every spreadsheet visible to the authorized account,
// in the order Drive returns them.
func (c *Client) ListSpreadsheets(ctx context.Context, options *ListOptions) ([]*SpreadsheetFile, error) {
	if options == nil {
		options = &ListOptions{}
	}

	call := c.service.Files.List().
		Context(ctx).
		Q(spreadsheetQuery()).
		Fields(spreadsheetFields).
		SupportsAllDrives(true).
		IncludeItemsFromAllDrives(true)

	if options.PageSize > 0 {
		call = call.PageSize(int64(options.PageSize))
	}

	var files []*SpreadsheetFile
	pageToken := ""
	for {
		if pageToken != "" {
			call = call.PageToken(pageToken)
		}

		fileList, err := call.Do()
		if err != nil {
			return nil, fmt.Errorf("failed to list spreadsheets: %w", err)
		}

		for _, f := range fileList.Files {
			files = append(files, convertToSpreadsheetFile(f))
		}

		if fileList.NextPageToken == "" {
			return files, nil
		}
		pageToken = fileList.NextPageToken
	}
}

// spreadsheetQuery is the Drive search query for spreadsheets. Trashed
// spreadsheets are included.
func spreadsheetQuery() string {
	return fmt.Sprintf("mimeType='%s'", SpreadsheetMimeType)
}

// convertToSpreadsheetFile converts a Drive API File to our SpreadsheetFile type
func convertToSpreadsheetFile(f *drive.File) *SpreadsheetFile {
	file := &SpreadsheetFile{
		ID:          f.Id,
		Name:        f.Name,
		WebViewLink: f.WebViewLink,
	}

	if f.CreatedTime != "" {
		if t, err := time.Parse(time.RFC3339, f.CreatedTime); err == nil {
			file.CreatedTime = t
		}
	}
	if f.ModifiedTime != "" {
		if t, err := time.Parse(time.RFC3339, f.ModifiedTime); err == nil {
			file.ModifiedTime = t
		}
	}

	for _, owner := range f.Owners {
		if owner.EmailAddress != "" {
			file.Owners = append(file.Owners, owner.EmailAddress)
		}
	}

	return file
}
