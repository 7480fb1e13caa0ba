package parser

import (
	"testing"
	"time"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/csv-insight/backend/internal/locale"
	"github.com/csv-insight/backend/internal/models"
	"github.com/csv-insight/backend/internal/testutil"
)

func TestFinanceParser_SingleRecord(t *testing.T) {
	p := NewFinanceParser(locale.Default())
	ds, errs := p.Parse(testutil.FinanceRecord)

	assert.Empty(t, errs)
	require.Equal(t, 1, ds.Len())
	assert.Equal(t, FinanceColumns, ds.Columns)

	row := ds.Rows[0]
	assert.Equal(t, models.KindDate, row[0].Kind)
	assert.Equal(t, time.Date(2024, time.October, 7, 0, 0, 0, 0, time.UTC), row[0].Date)
	assert.Equal(t, 169.14, row[1].Num)
	assert.Equal(t, 169.90, row[2].Num)
	assert.Equal(t, 164.13, row[3].Num)
	assert.Equal(t, 164.39, row[4].Num)
	assert.Equal(t, models.KindInteger, row[5].Kind)
	assert.Equal(t, int64(14034722), row[5].Int)
}

func TestFinanceParser_Export(t *testing.T) {
	p := NewFinanceParser(locale.Default())
	ds, errs := p.Parse(testutil.FinanceExport)

	require.Equal(t, 3, ds.Len())
	dates := []string{}
	for _, r := range ds.Rows {
		dates = append(dates, r[0].String())
	}
	assert.Equal(t, []string{"2024-10-07", "2024-10-08", "2024-10-10"}, dates)

	localized := ds.Rows[1]
	assert.Equal(t, 165.43, localized[1].Num)
	assert.Equal(t, 165.70, localized[4].Num)
	assert.Equal(t, int64(11723885), localized[5].Int)

	require.Len(t, errs, 2)
	assert.Equal(t, 7, errs[0].Line)
	assert.Contains(t, errs[0].Reason, "expected 6 fields")
	assert.Equal(t, 8, errs[1].Line)
	assert.Contains(t, errs[1].Reason, "Open")
}

func TestFinanceParser_DroppedRecords(t *testing.T) {
	header := "Date,Open,High,Low,Close,Volume\n"
	tests := []struct {
		name   string
		record string
	}{
		{"too few fields", "Oct 7 2024,1,2,3,4"},
		{"bad date", "Smarch 7, 2024,1,2,3,4,5"},
		{"bad price", "Oct 7, 2024,1,x,3,4,5"},
		{"infinite price", "Oct 7, 2024,1,Inf,3,4,5"},
		{"fractional volume", "Oct 7, 2024,1,2,3,4,5.5"},
		{"negative volume", "Oct 7, 2024,1,2,3,4,-5"},
		{"empty volume", "Oct 7 2024,1,2,3,4,"},
	}

	p := NewFinanceParser(locale.Default())
	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			ds, errs := p.Parse(header + tt.record + "\n")
			assert.True(t, ds.Empty())
			assert.Len(t, errs, 1)
		})
	}
}

func TestFinanceParser_Edges(t *testing.T) {
	p := NewFinanceParser(locale.Default())

	t.Run("no header", func(t *testing.T) {
		ds, errs := p.Parse("Oct 7, 2024,1,2,3,4,5\n")
		assert.True(t, ds.Empty())
		assert.Empty(t, errs)
		assert.Equal(t, FinanceColumns, ds.Columns)
	})

	t.Run("empty input", func(t *testing.T) {
		ds, _ := p.Parse("   ")
		assert.True(t, ds.Empty())
	})

	t.Run("crlf and blank lines", func(t *testing.T) {
		ds, errs := p.Parse("Date,Open,High,Low,Close,Volume\r\n\r\n\"Oct 7, 2024\",1,2,3,4,5\r\n")
		assert.Empty(t, errs)
		assert.Equal(t, 1, ds.Len())
	})

	t.Run("collapses whitespace in dates", func(t *testing.T) {
		ds, _ := p.Parse("Date,Open,High,Low,Close,Volume\n\"  мая   3,  2024 \",1,2,3,4,5\n")
		require.Equal(t, 1, ds.Len())
		assert.Equal(t, "2024-05-03", ds.Rows[0][0].String())
	})

	t.Run("trailing delimiter", func(t *testing.T) {
		ds, errs := p.Parse("Date,Open,High,Low,Close,Volume,\n" +
			"Oct 7, 2024,169.14,169.90,164.13,164.39,14034722,\n" +
			"\"Oct 8, 2024\",165.43,166.10,164.31,165.70,11723885,,\n")
		assert.Empty(t, errs)
		require.Equal(t, 2, ds.Len())
		assert.Equal(t, "2024-10-07", ds.Rows[0][0].String())
		assert.Equal(t, int64(14034722), ds.Rows[0][5].Int)
		assert.Equal(t, 165.70, ds.Rows[1][4].Num)
	})

	t.Run("non-breaking thousands separator", func(t *testing.T) {
		ds, _ := p.Parse("Date,Open,High,Low,Close,Volume\n\"Oct 7, 2024\",\"1\u00a0000,5\",2,3,4,\"1\u202f000\"\n")
		require.Equal(t, 1, ds.Len())
		assert.Equal(t, 1000.5, ds.Rows[0][1].Num)
		assert.Equal(t, int64(1000), ds.Rows[0][5].Int)
	})
}
