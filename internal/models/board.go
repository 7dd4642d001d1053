package models

// Board is the slice of a monday.com board the diagnostic query asks for:
// the board name, every column definition, and a small sample of items.
type Board struct {
	Name    string   `json:"name"`
	Columns []Column `json:"columns"`
	Items   []Item   `json:"items"`
}

type Column struct {
	ID    string `json:"id"`
	Title string `json:"title"`
	Type  string `json:"type"` // e.g. "color", "text", "date"
	// SettingsStr is the column's raw settings payload, JSON-encoded by
	// monday. Empty when the column has no settings. Untrusted.
	SettingsStr string `json:"settings_str"`
}

type Item struct {
	ID           string        `json:"id"`
	Name         string        `json:"name"`
	ColumnValues []ColumnValue `json:"column_values"`
}

// ColumnValue is the rendered value of one column for one item.
type ColumnValue struct {
	ID    string `json:"id"`
	Title string `json:"title"`
	Text  string `json:"text"`
}
