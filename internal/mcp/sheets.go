package mcp

import (
	"context"
	"fmt"
	"time"

	"github.com/honeycarbs/jobhub/internal/domain"
	"github.com/honeycarbs/jobhub/internal/mcp/tools"
	sheetsclient "github.com/honeycarbs/jobhub/pkg/sheets"
)

var sheetHeader = []any{
	"ID", "Title", "Company", "Location", "Provider", "Vacancy type",
	"Salary", "Published", "Deadline", "URL",
}

// sheetsWriter is the part of pkg/sheets.Client used by the exporter.
type sheetsWriter interface {
	AppendValues(ctx context.Context, spreadsheetID, rng string, values [][]any) (int, error)
	UpdateValues(ctx context.Context, spreadsheetID, rng string, values [][]any) (int, error)
	ClearValues(ctx context.Context, spreadsheetID, rng string) error
}

type sheetsClientAdapter struct {
	client sheetsWriter
	now    func() time.Time
}

func newSheetsExporter(client *sheetsclient.Client) *sheetsClientAdapter {
	return &sheetsClientAdapter{client: client, now: time.Now}
}

// Export appends job rows, or replaces the tab with a header and the rows
// when req.Overwrite is set.
func (a *sheetsClientAdapter) Export(ctx context.Context, req tools.SheetsExportRequest) (tools.SheetsExportResult, error) {
	tab := req.Sheet.Tab
	if tab == "" {
		tab = sheetsclient.DefaultTab
	}

	result := tools.SheetsExportResult{
		SpreadsheetID: req.Sheet.SpreadsheetID,
		Tab:           tab,
		Mode:          "append",
	}
	if req.Overwrite {
		result.Mode = "overwrite"
	}

	if len(req.Rows) == 0 && !req.Overwrite {
		result.CompletedAt = a.now().UTC()
		result.Message = "no rows to export"
		return result, nil
	}

	values := convertRowsToValues(req.Rows)

	if req.Overwrite {
		if err := a.client.ClearValues(ctx, req.Sheet.SpreadsheetID, sheetsclient.TabRange(tab, "A1:Z")); err != nil {
			return result, fmt.Errorf("failed to clear sheet: %w", err)
		}
		rng := req.Sheet.Range
		if rng == "" {
			rng = sheetsclient.TabRange(tab, "A1")
		}
		if _, err := a.client.UpdateValues(ctx, req.Sheet.SpreadsheetID, rng, append([][]any{sheetHeader}, values...)); err != nil {
			return result, fmt.Errorf("failed to overwrite rows: %w", err)
		}
	} else {
		if req.ClearTab {
			if err := a.client.ClearValues(ctx, req.Sheet.SpreadsheetID, sheetsclient.TabRange(tab, "A2:Z")); err != nil {
				return result, fmt.Errorf("failed to clear sheet: %w", err)
			}
		}
		rng := req.Sheet.Range
		if rng == "" {
			rng = sheetsclient.TabRange(tab, "A1")
		}
		if _, err := a.client.AppendValues(ctx, req.Sheet.SpreadsheetID, rng, values); err != nil {
			return result, fmt.Errorf("failed to append rows: %w", err)
		}
	}

	result.WrittenRows = len(req.Rows)
	result.CompletedAt = a.now().UTC()
	result.Message = fmt.Sprintf("successfully exported %d row(s)", result.WrittenRows)

	return result, nil
}

func convertRowsToValues(rows []domain.JobSummary) [][]any {
	values := make([][]any, len(rows))
	for i, row := range rows {
		values[i] = []any{
			row.ID.String(),
			row.Title,
			row.Company,
			row.Location,
			row.Provider,
			string(row.VacancyType),
			row.Salary,
			row.PublishedAt,
			row.Deadline,
			row.URL,
		}
	}
	return values
}

var _ tools.SheetsExporter = (*sheetsClientAdapter)(nil)
