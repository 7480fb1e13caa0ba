package models

// Metadata is descriptive information about an analyzed file. It never
// influences parsing.
type Metadata struct {
	FileType     DialectTag `json:"file_type" msgpack:"file_type"`
	Description  string     `json:"description" msgpack:"description"`
	TotalRows    int        `json:"total_rows" msgpack:"total_rows"`
	TotalColumns int        `json:"total_columns" msgpack:"total_columns"`
}

// Shape holds the dataset dimensions.
type Shape struct {
	Rows int `json:"rows" msgpack:"rows"`
	Cols int `json:"cols" msgpack:"cols"`
}

// PreviewRow is a display-safe row keyed by column name.
type PreviewRow map[string]any

// Result is the structured outcome of analyzing one upload.
type Result struct {
	Success    bool                     `json:"success" msgpack:"success"`
	AnalysisID string                   `json:"analysis_id,omitempty" msgpack:"analysis_id,omitempty"`
	Columns    []string                 `json:"columns" msgpack:"columns"`
	Preview    []PreviewRow             `json:"preview" msgpack:"preview"`
	Statistics map[string]ColumnSummary `json:"statistics" msgpack:"statistics"`
	Metadata   Metadata                 `json:"metadata" msgpack:"metadata"`
	Shape      Shape                    `json:"shape" msgpack:"shape"`
	DataType   DialectTag               `json:"data_type" msgpack:"data_type"`

	// Dataset is the full parsed dataset; it is not serialized.
	Dataset *Dataset `json:"-" msgpack:"-"`
}

// SamplePayload is a hard-coded example dataset served to the UI.
type SamplePayload struct {
	Columns []string         `json:"columns" msgpack:"columns"`
	Data    []map[string]any `json:"data" msgpack:"data"`
}
