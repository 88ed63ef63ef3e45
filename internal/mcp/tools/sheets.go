package tools

import (
	"context"
	"errors"
	"fmt"
	"strings"
	"time"

	sdkmcp "github.com/modelcontextprotocol/go-sdk/mcp"

	"github.com/honeycarbs/jobhub/internal/domain"
)

// SheetsExporter writes job rows to a spreadsheet
type SheetsExporter interface {
	Export(ctx context.Context, req SheetsExportRequest) (SheetsExportResult, error)
}

// SheetTarget identifies where rows are written
type SheetTarget struct {
	SpreadsheetID string `json:"spreadsheet_id" jsonschema:"Google Sheets document ID"`
	Tab           string `json:"tab,omitempty" jsonschema:"Tab name, Sheet1 when empty"`
	Range         string `json:"range,omitempty" jsonschema:"Optional A1 range override"`
}

// SheetsExportParams defines the arguments for the sheets_export tool
type SheetsExportParams struct {
	Filter    JobFilter   `json:"filter,omitempty" jsonschema:"Selects the exported jobs, all jobs when empty"`
	Sheet     SheetTarget `json:"sheet" jsonschema:"Destination sheet information"`
	Overwrite bool        `json:"overwrite,omitempty" jsonschema:"Replace the tab content with a header and the rows instead of appending"`
	ClearTab  bool        `json:"clear_tab,omitempty" jsonschema:"If true, clears the rows below the header before appending"`
}

// SheetsExportRequest is what the exporter writes
type SheetsExportRequest struct {
	Sheet     SheetTarget
	Rows      []domain.JobSummary
	Overwrite bool
	ClearTab  bool
}

// SheetsExportResult describes the summary returned after export
type SheetsExportResult struct {
	SpreadsheetID string    `json:"spreadsheet_id" jsonschema:"Target spreadsheet ID"`
	Tab           string    `json:"tab,omitempty" jsonschema:"Target tab name"`
	WrittenRows   int       `json:"written_rows" jsonschema:"How many job rows were written"`
	Mode          string    `json:"mode" jsonschema:"append or overwrite"`
	CompletedAt   time.Time `json:"completed_at" jsonschema:"Timestamp when export finished"`
	Message       string    `json:"message,omitempty" jsonschema:"Optional status message"`
}

type sheetsExportTool struct {
	source   JobSource
	exporter SheetsExporter
	now      func() time.Time
}

// WithSheetsExport registers the sheets_export tool. A nil exporter makes the
// tool report that export is unavailable.
func WithSheetsExport(source JobSource, exporter SheetsExporter) Option {
	return func(reg *registry) {
		reg.add(func(reg *registry) {
			t := sheetsExportTool{source: source, exporter: exporter, now: reg.now}
			addTool(reg, &sdkmcp.Tool{
				Name:        "sheets_export",
				Description: "Export collected job postings to Google Sheets",
			}, t.handle)
		})
	}
}

func (t sheetsExportTool) handle(ctx context.Context, req *sdkmcp.CallToolRequest, params *SheetsExportParams) (*sdkmcp.CallToolResult, any, error) {
	if t.exporter == nil {
		return nil, nil, errors.New("sheets_export unavailable: GOOGLE_SHEETS_CREDENTIALS_PATH not set")
	}
	if params == nil || strings.TrimSpace(params.Sheet.SpreadsheetID) == "" {
		return nil, nil, errors.New("sheets_export: sheet.spreadsheet_id is required")
	}

	jobs, err := selectJobs(ctx, t.source, params.Filter, t.now())
	if err != nil {
		return nil, nil, fmt.Errorf("sheets_export: %w", err)
	}

	result, err := t.exporter.Export(ctx, SheetsExportRequest{
		Sheet:     params.Sheet,
		Rows:      domain.Summaries(jobs, false),
		Overwrite: params.Overwrite,
		ClearTab:  params.ClearTab,
	})
	if err != nil {
		return nil, nil, fmt.Errorf("sheets_export: %w", err)
	}

	msg := fmt.Sprintf("[sheets_export] %s: %d row(s) to %s (%s)", result.Mode, result.WrittenRows, result.SpreadsheetID, result.Tab)
	return textResult(msg), result, nil
}
