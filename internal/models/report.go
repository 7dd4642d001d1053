package models

// DiagnosticReport is the 200 response body of the status-column
// diagnostic endpoint. The top-level keys are upper-cased to stand out
// when the report is read by a human chasing a broken webhook.
type DiagnosticReport struct {
	Success                    bool               `json:"SUCCESS"`
	BoardName                  string             `json:"BOARD_NAME"`
	BoardID                    string             `json:"BOARD_ID"`
	StatusColumnsFound         []StatusColumnInfo `json:"STATUS_COLUMNS_FOUND"`
	CurrentConfigSays          string             `json:"CURRENT_CONFIG_SAYS"`
	WebhookTriesToUse          string             `json:"WEBHOOK_TRIES_TO_USE"`
	CurrentStatusValuesInItems []ItemStatus       `json:"CURRENT_STATUS_VALUES_IN_ITEMS"`
	AllColumns                 []ColumnSummary    `json:"ALL_COLUMNS"`
	Diagnosis                  Diagnosis          `json:"DIAGNOSIS"`
}

// StatusColumnInfo describes one candidate status column and the label
// set parsed out of its settings payload.
type StatusColumnInfo struct {
	ID      string            `json:"id"`
	Title   string            `json:"title"`
	Options map[string]string `json:"options"`
}

// ItemStatus is one sampled item's rendered status text.
type ItemStatus struct {
	ItemName    string `json:"itemName"`
	StatusValue string `json:"statusValue"`
}

type ColumnSummary struct {
	ID    string `json:"id"`
	Title string `json:"title"`
	Type  string `json:"type"`
}

// Diagnosis is the computed verdict: which column ID the webhook uses
// today versus which one the board says it should use.
type Diagnosis struct {
	Problem            string `json:"problem"`
	CurrentlyUsing     string `json:"currentlyUsing"`
	ShouldUse          string `json:"shouldUse"`
	StatusColumnExists bool   `json:"statusColumnExists"`
}

// ErrorEnvelope is the 500 response body. Stack is only set when a panic
// was recovered; ordinary errors carry a message alone.
type ErrorEnvelope struct {
	Error   bool   `json:"ERROR"`
	Message string `json:"message"`
	Stack   string `json:"stack,omitempty"`
}
