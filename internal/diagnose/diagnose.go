// Package diagnose turns a fetched board into the status-column
// diagnostic report. Everything here is pure: no I/O, no shared state.
package diagnose

import (
	"encoding/json"
	"strings"

	"mondaydiag/internal/models"
)

const (
	// NoStatus is recorded for an item with no value in the status column.
	NoStatus = "No status"
	// NotFound is the verdict when the board has no status column at all.
	NotFound = "NOT_FOUND"

	problem = "webhook is reading a column ID that may not match the board's actual status column"
)

// StatusColumns filters the board's columns down to the ones that look
// like workflow-stage columns: monday "color" columns, plus anything
// whose title mentions a stage. Board order is preserved.
func StatusColumns(cols []models.Column) []models.Column {
	var out []models.Column
	for _, col := range cols {
		if col.Type == "color" || strings.Contains(strings.ToLower(col.Title), "stage") {
			out = append(out, col)
		}
	}
	return out
}

// ColumnOptions extracts the label mapping from a column's raw settings
// payload. A column without settings yields an empty mapping. A payload
// that fails to parse yields a sentinel mapping instead of an error, so
// one broken column never sinks the whole report.
func ColumnOptions(settingsStr string) map[string]string {
	if settingsStr == "" {
		return map[string]string{}
	}

	var settings struct {
		Labels map[string]string `json:"labels"`
	}
	if err := json.Unmarshal([]byte(settingsStr), &settings); err != nil {
		return map[string]string{"error": "Could not parse"}
	}
	if settings.Labels == nil {
		return map[string]string{}
	}
	return settings.Labels
}

// ItemStatuses samples each item's rendered text in the given status
// column. Items with no matching value, or an empty one, read NoStatus.
func ItemStatuses(items []models.Item, statusColumnID string) []models.ItemStatus {
	statuses := make([]models.ItemStatus, 0, len(items))
	for _, item := range items {
		status := models.ItemStatus{ItemName: item.Name, StatusValue: NoStatus}
		for _, cv := range item.ColumnValues {
			if cv.ID != statusColumnID {
				continue
			}
			if cv.Text != "" {
				status.StatusValue = cv.Text
			}
			break
		}
		statuses = append(statuses, status)
	}
	return statuses
}

// BuildReport assembles the full diagnostic report for one board.
// boardID is the configured identifier, configKey the column key the
// rest of the config refers to, and webhookColumnID the column ID the
// webhook integration is observed to use.
func BuildReport(board *models.Board, boardID, configKey, webhookColumnID string) models.DiagnosticReport {
	statusCols := StatusColumns(board.Columns)

	found := make([]models.StatusColumnInfo, 0, len(statusCols))
	for _, col := range statusCols {
		found = append(found, models.StatusColumnInfo{
			ID:      col.ID,
			Title:   col.Title,
			Options: ColumnOptions(col.SettingsStr),
		})
	}

	// Only the first status column is cross-referenced against the
	// sampled items; boards with several stage columns are rare enough
	// that the report just lists the rest.
	var firstStatusID string
	if len(statusCols) > 0 {
		firstStatusID = statusCols[0].ID
	}

	all := make([]models.ColumnSummary, 0, len(board.Columns))
	for _, col := range board.Columns {
		all = append(all, models.ColumnSummary{ID: col.ID, Title: col.Title, Type: col.Type})
	}

	shouldUse := NotFound
	if len(statusCols) > 0 {
		shouldUse = statusCols[0].ID
	}

	return models.DiagnosticReport{
		Success:                    true,
		BoardName:                  board.Name,
		BoardID:                    boardID,
		StatusColumnsFound:         found,
		CurrentConfigSays:          configKey,
		WebhookTriesToUse:          webhookColumnID,
		CurrentStatusValuesInItems: ItemStatuses(board.Items, firstStatusID),
		AllColumns:                 all,
		Diagnosis: models.Diagnosis{
			Problem:            problem,
			CurrentlyUsing:     webhookColumnID,
			ShouldUse:          shouldUse,
			StatusColumnExists: len(statusCols) > 0,
		},
	}
}
