package models

import (
	"encoding/json"
	"time"

	"github.com/vmihailenco/msgpack/v5"
)

// ColumnType is the inferred type of a summarized column.
type ColumnType string

const (
	ColumnNumeric     ColumnType = "numeric"
	ColumnDatetime    ColumnType = "datetime"
	ColumnCategorical ColumnType = "categorical"
)

// NumericStats summarizes a numeric column.
type NumericStats struct {
	Mean   float64
	Median float64
	// Std is the sample standard deviation; nil when fewer than two values exist.
	Std *float64
	Min float64
	Max float64
}

// DateRange summarizes a datetime column.
type DateRange struct {
	Earliest time.Time
	Latest   time.Time
}

// CategoricalStats summarizes a categorical column.
type CategoricalStats struct {
	UniqueCount int
	MostCommon  string
}

// ColumnSummary is one of three variants keyed by Type; exactly one of
// Numeric, Dates or Categorical is set.
type ColumnSummary struct {
	Type        ColumnType
	Count       int
	Numeric     *NumericStats
	Dates       *DateRange
	Categorical *CategoricalStats
}

// wire flattens the summary into the shape served to clients.
func (s ColumnSummary) wire() map[string]any {
	out := map[string]any{
		"type":  string(s.Type),
		"count": s.Count,
	}
	switch {
	case s.Numeric != nil:
		out["mean"] = s.Numeric.Mean
		out["median"] = s.Numeric.Median
		out["min"] = s.Numeric.Min
		out["max"] = s.Numeric.Max
		if s.Numeric.Std != nil {
			out["std"] = *s.Numeric.Std
		} else {
			out["std"] = nil
		}
	case s.Dates != nil:
		out["min_date"] = s.Dates.Earliest.Format(DateLayout)
		out["max_date"] = s.Dates.Latest.Format(DateLayout)
	case s.Categorical != nil:
		out["unique_count"] = s.Categorical.UniqueCount
		out["most_common"] = s.Categorical.MostCommon
	}
	return out
}

// MarshalJSON implements json.Marshaler.
func (s ColumnSummary) MarshalJSON() ([]byte, error) {
	return json.Marshal(s.wire())
}

// MarshalMsgpack implements msgpack.Marshaler.
func (s ColumnSummary) MarshalMsgpack() ([]byte, error) {
	return msgpack.Marshal(s.wire())
}
