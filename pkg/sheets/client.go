package sheets

import (
	"context"
	"fmt"
	"strings"

	"google.golang.org/api/option"
	"google.golang.org/api/sheets/v4"
)

// DefaultTab is written to when no tab is named.
const DefaultTab = "Sheet1"

type Client struct {
	service *sheets.Service
}

type Config struct {
	CredentialsPath string
	CredentialsJSON []byte
	// Endpoint overrides the API base URL.
	Endpoint string
}

func NewClient(ctx context.Context, cfg Config) (*Client, error) {
	var opts []option.ClientOption

	if cfg.CredentialsPath != "" {
		opts = append(opts, option.WithCredentialsFile(cfg.CredentialsPath))
	} else if len(cfg.CredentialsJSON) > 0 {
		opts = append(opts, option.WithCredentialsJSON(cfg.CredentialsJSON))
	} else {
		return nil, fmt.Errorf("sheets: credentials path or JSON is required")
	}
	if cfg.Endpoint != "" {
		opts = append(opts, option.WithEndpoint(cfg.Endpoint))
	}

	service, err := sheets.NewService(ctx, opts...)
	if err != nil {
		return nil, fmt.Errorf("sheets: failed to create service: %w", err)
	}

	return &Client{
		service: service,
	}, nil
}

// AppendValues inserts rows after the last row of the table found at rng.
func (c *Client) AppendValues(ctx context.Context, spreadsheetID, rng string, values [][]any) (int, error) {
	if c == nil || c.service == nil {
		return 0, fmt.Errorf("sheets: service is nil")
	}

	resp, err := c.service.Spreadsheets.Values.Append(spreadsheetID, rng, &sheets.ValueRange{Values: values}).
		ValueInputOption("RAW").
		InsertDataOption("INSERT_ROWS").
		Context(ctx).
		Do()
	if err != nil {
		return 0, fmt.Errorf("sheets: append %s: %w", rng, err)
	}
	if resp.Updates == nil {
		return 0, nil
	}
	return int(resp.Updates.UpdatedRows), nil
}

// UpdateValues overwrites the cells starting at rng.
func (c *Client) UpdateValues(ctx context.Context, spreadsheetID, rng string, values [][]any) (int, error) {
	if c == nil || c.service == nil {
		return 0, fmt.Errorf("sheets: service is nil")
	}

	resp, err := c.service.Spreadsheets.Values.Update(spreadsheetID, rng, &sheets.ValueRange{Values: values}).
		ValueInputOption("RAW").
		Context(ctx).
		Do()
	if err != nil {
		return 0, fmt.Errorf("sheets: update %s: %w", rng, err)
	}
	return int(resp.UpdatedRows), nil
}

func (c *Client) ClearValues(ctx context.Context, spreadsheetID, rng string) error {
	if c == nil || c.service == nil {
		return fmt.Errorf("sheets: service is nil")
	}

	_, err := c.service.Spreadsheets.Values.Clear(spreadsheetID, rng, &sheets.ClearValuesRequest{}).Context(ctx).Do()
	if err != nil {
		return fmt.Errorf("sheets: clear %s: %w", rng, err)
	}
	return nil
}

// TabRange returns the A1 notation of cell within tab, quoting the tab name
// when needed.
func TabRange(tab, cell string) string {
	if tab == "" {
		tab = DefaultTab
	}
	if strings.ContainsAny(tab, " '!:") {
		tab = "'" + strings.ReplaceAll(tab, "'", "''") + "'"
	}
	if cell == "" {
		return tab
	}
	return tab + "!" + cell
}
