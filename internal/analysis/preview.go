package analysis

import "github.com/csv-insight/backend/internal/models"

// DefaultPreviewRows bounds the preview shown to clients.
const DefaultPreviewRows = 10

// BuildPreview renders the first limit rows as column-keyed scalars.
// Dates become YYYY-MM-DD strings and missing values nil.
func BuildPreview(ds *models.Dataset, limit int) []models.PreviewRow {
	if ds.Empty() {
		return []models.PreviewRow{}
	}
	if limit <= 0 {
		limit = DefaultPreviewRows
	}
	// Repeated names keep their first column
	keep := make([]int, 0, len(ds.Columns))
	for i, col := range ds.Columns {
		if ds.ColumnIndex(col) == i {
			keep = append(keep, i)
		}
	}

	n := min(limit, ds.Len())
	out := make([]models.PreviewRow, 0, n)
	for _, row := range ds.Rows[:n] {
		pr := make(models.PreviewRow, len(keep))
		for _, i := range keep {
			pr[ds.Columns[i]] = row[i].Scalar()
		}
		out = append(out, pr)
	}
	return out
}
