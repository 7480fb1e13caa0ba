package models

import (
	"strconv"
	"time"
)

// ValueKind is the type tag carried by every dataset cell.
type ValueKind uint8

const (
	KindMissing ValueKind = iota
	KindNumber
	KindInteger
	KindText
	KindDate
)

func (k ValueKind) String() string {
	switch k {
	case KindNumber:
		return "number"
	case KindInteger:
		return "integer"
	case KindText:
		return "text"
	case KindDate:
		return "date"
	default:
		return "missing"
	}
}

// DateLayout is the ISO calendar date layout used wherever dates leave the core.
const DateLayout = "2006-01-02"

// Value is a single typed cell. Only the field matching Kind is meaningful.
type Value struct {
	Kind ValueKind
	Num  float64
	Int  int64
	Text string
	Date time.Time
}

// Missing returns the missing value.
func Missing() Value { return Value{} }

// Number returns a floating-point value.
func Number(f float64) Value { return Value{Kind: KindNumber, Num: f} }

// Integer returns an integer value.
func Integer(i int64) Value { return Value{Kind: KindInteger, Int: i} }

// Text returns a text value.
func Text(s string) Value { return Value{Kind: KindText, Text: s} }

// Date returns a calendar date value; the time of day is discarded.
func Date(t time.Time) Value { return Value{Kind: KindDate, Date: truncateDay(t)} }

// IsMissing reports whether the value is missing.
func (v Value) IsMissing() bool { return v.Kind == KindMissing }

// Scalar renders the value as a JSON-compatible scalar. Dates become
// YYYY-MM-DD strings and missing values become nil.
func (v Value) Scalar() any {
	switch v.Kind {
	case KindNumber:
		return v.Num
	case KindInteger:
		return v.Int
	case KindText:
		return v.Text
	case KindDate:
		return v.Date.Format(DateLayout)
	default:
		return nil
	}
}

// String renders the value for plain-text output.
func (v Value) String() string {
	switch v.Kind {
	case KindNumber:
		return strconv.FormatFloat(v.Num, 'g', -1, 64)
	case KindInteger:
		return strconv.FormatInt(v.Int, 10)
	case KindText:
		return v.Text
	case KindDate:
		return v.Date.Format(DateLayout)
	default:
		return ""
	}
}

func truncateDay(t time.Time) time.Time {
	y, m, d := t.Date()
	return time.Date(y, m, d, 0, 0, 0, 0, time.UTC)
}
