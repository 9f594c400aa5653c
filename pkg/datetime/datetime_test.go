package datetime

import (
	"encoding/json"
	"testing"
	"time"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func TestFinancialYear(t *testing.T) {
	t.Parallel()

	tests := []struct {
		name string
		date time.Time
		want int
	}{
		{"last day of March", time.Date(2024, time.March, 31, 23, 59, 0, 0, time.UTC), 2023},
		{"first day of April", time.Date(2024, time.April, 1, 0, 0, 0, 0, time.UTC), 2024},
		{"January", time.Date(2025, time.January, 15, 0, 0, 0, 0, time.UTC), 2024},
		{"December", time.Date(2024, time.December, 31, 0, 0, 0, 0, time.UTC), 2024},
		{"leap day", time.Date(2024, time.February, 29, 0, 0, 0, 0, time.UTC), 2023},
	}

	for _, tt := range tests {
		tt := tt
		t.Run(tt.name, func(t *testing.T) {
			t.Parallel()
			assert.Equal(t, tt.want, FinancialYear(tt.date))
		})
	}
}

func TestFinancialYearRange(t *testing.T) {
	start, end := FinancialYearRange(2024)

	assert.Equal(t, time.Date(2024, time.April, 1, 0, 0, 0, 0, time.UTC), start)
	assert.Equal(t, 2025, end.Year())
	assert.Equal(t, time.March, end.Month())
	assert.Equal(t, 31, end.Day())
	assert.Equal(t, 2024, FinancialYear(start))
	assert.Equal(t, 2024, FinancialYear(end))
	assert.Equal(t, 2025, FinancialYear(end.Add(time.Nanosecond)))
}

func TestFinancialYearLabel(t *testing.T) {
	assert.Equal(t, "2024-25", FinancialYearLabel(2024))
	assert.Equal(t, "1999-00", FinancialYearLabel(1999))
}

func TestFinancialMonth(t *testing.T) {
	tests := []struct {
		month time.Month
		want  int
	}{
		{time.April, 1},
		{time.December, 9},
		{time.January, 10},
		{time.March, 12},
	}

	for _, tt := range tests {
		t.Run(tt.month.String(), func(t *testing.T) {
			assert.Equal(t, tt.want, FinancialMonth(time.Date(2024, tt.month, 10, 0, 0, 0, 0, time.UTC)))
		})
	}
}

func TestNewDate(t *testing.T) {
	d := NewDate(2024, time.December, 25)
	assert.Equal(t, 2024, d.Year())
	assert.Equal(t, time.December, d.Month())
	assert.Equal(t, 25, d.Day())
	assert.Equal(t, time.UTC, d.Location())
}

func TestParseDate(t *testing.T) {
	t.Run("valid date", func(t *testing.T) {
		d, err := ParseDate("2024-12-25")
		require.NoError(t, err)
		assert.Equal(t, NewDate(2024, time.December, 25), d)
	})

	t.Run("wrong format", func(t *testing.T) {
		_, err := ParseDate("25/12/2024")
		assert.Error(t, err)
	})
}

func TestDateJSON(t *testing.T) {
	t.Run("marshal", func(t *testing.T) {
		data, err := json.Marshal(NewDate(2024, time.December, 25))
		require.NoError(t, err)
		assert.Equal(t, `"2024-12-25"`, string(data))
	})

	t.Run("marshal zero", func(t *testing.T) {
		data, err := json.Marshal(Date{})
		require.NoError(t, err)
		assert.Equal(t, "null", string(data))
	})

	t.Run("unmarshal RFC3339", func(t *testing.T) {
		var d Date
		require.NoError(t, json.Unmarshal([]byte(`"2024-12-25T10:30:00Z"`), &d))
		assert.Equal(t, NewDate(2024, time.December, 25), d)
	})

	t.Run("unmarshal null", func(t *testing.T) {
		var d Date
		require.NoError(t, json.Unmarshal([]byte(`null`), &d))
		assert.True(t, d.IsZero())
	})

	t.Run("unmarshal invalid", func(t *testing.T) {
		var d Date
		assert.Error(t, json.Unmarshal([]byte(`"invalid-date"`), &d))
	})
}

func TestDateScanAndValue(t *testing.T) {
	t.Run("scan time", func(t *testing.T) {
		var d Date
		require.NoError(t, d.Scan(time.Date(2024, 4, 1, 18, 30, 0, 0, time.UTC)))
		assert.Equal(t, NewDate(2024, time.April, 1), d)
	})

	t.Run("scan bytes", func(t *testing.T) {
		var d Date
		require.NoError(t, d.Scan([]byte("2024-04-01T00:00:00Z")))
		assert.Equal(t, NewDate(2024, time.April, 1), d)
	})

	t.Run("scan nil", func(t *testing.T) {
		d := NewDate(2024, time.April, 1)
		require.NoError(t, d.Scan(nil))
		assert.True(t, d.IsZero())
	})

	t.Run("scan unsupported", func(t *testing.T) {
		var d Date
		assert.Error(t, d.Scan(42))
	})

	t.Run("value", func(t *testing.T) {
		v, err := NewDate(2024, time.April, 1).Value()
		require.NoError(t, err)
		assert.Equal(t, "2024-04-01", v)

		v, err = Date{}.Value()
		require.NoError(t, err)
		assert.Nil(t, v)
	})
}

func TestStartOfDay(t *testing.T) {
	input := time.Date(2024, 12, 25, 15, 30, 45, 123456789, time.UTC)
	assert.Equal(t, time.Date(2024, 12, 25, 0, 0, 0, 0, time.UTC), StartOfDay(input))
}

func TestEndOfMonth(t *testing.T) {
	tests := []struct {
		name     string
		input    time.Time
		expected int
	}{
		{"December", time.Date(2024, 12, 15, 0, 0, 0, 0, time.UTC), 31},
		{"February leap year", time.Date(2024, 2, 15, 0, 0, 0, 0, time.UTC), 29},
		{"February non-leap year", time.Date(2023, 2, 15, 0, 0, 0, 0, time.UTC), 28},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			result := EndOfMonth(tt.input)
			assert.Equal(t, tt.expected, result.Day())
			assert.Equal(t, 23, result.Hour())
		})
	}
}

func TestDaysBetween(t *testing.T) {
	a := time.Date(2024, 3, 1, 22, 0, 0, 0, time.UTC)
	b := time.Date(2024, 3, 31, 1, 0, 0, 0, time.UTC)
	assert.Equal(t, 30, DaysBetween(a, b))
	assert.Equal(t, -30, DaysBetween(b, a))
}
