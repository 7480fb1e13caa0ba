package models

// Row holds one value per dataset column, aligned with Dataset.Columns.
type Row []Value

// Dataset is the rectangular result of a dialect parser.
//
// Every row has exactly len(Columns) values (a value may be missing).
// A Dataset with zero rows means the file held no usable data.
type Dataset struct {
	Columns []string
	Rows    []Row
}

// NewDataset creates an empty dataset with the given columns.
func NewDataset(columns ...string) *Dataset {
	cols := make([]string, len(columns))
	copy(cols, columns)
	return &Dataset{Columns: cols, Rows: make([]Row, 0)}
}

// Append adds a row. Rows whose width differs from the column count are
// rejected so the rectangular invariant cannot be broken by a caller.
func (d *Dataset) Append(row Row) bool {
	if len(row) != len(d.Columns) {
		return false
	}
	d.Rows = append(d.Rows, row)
	return true
}

// Empty reports whether the dataset carries no usable rows.
func (d *Dataset) Empty() bool {
	return d == nil || len(d.Rows) == 0
}

// Len returns the number of rows.
func (d *Dataset) Len() int {
	if d == nil {
		return 0
	}
	return len(d.Rows)
}

// ColumnIndex returns the position of the first column with the given name.
func (d *Dataset) ColumnIndex(name string) int {
	for i, c := range d.Columns {
		if c == name {
			return i
		}
	}
	return -1
}

// Column returns the values of column i in row order.
func (d *Dataset) Column(i int) []Value {
	out := make([]Value, 0, len(d.Rows))
	for _, r := range d.Rows {
		out = append(out, r[i])
	}
	return out
}
