package utils

import (
	"testing"
	"time"

	"github.com/shopspring/decimal"
	"github.com/stretchr/testify/assert"
)

func TestMoney(t *testing.T) {
	tests := []struct {
		name  string
		input string
		want  string
	}{
		{name: "dot separator", input: "12.34", want: "12.34"},
		{name: "comma separator", input: "12,34", want: "12.34"},
		{name: "negative with comma", input: "-1506,5", want: "-1506.5"},
		{name: "padded with spaces", input: " 1 200,50 ", want: "1200.5"},
		{name: "empty string", input: "", want: "0"},
		{name: "garbage", input: "n/a", want: "0"},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			want, err := decimal.NewFromString(tt.want)
			assert.NoError(t, err)
			assert.True(t, Money(tt.input).Equal(want),
				"Money(%q) = %s, want %s", tt.input, Money(tt.input), want)
		})
	}
}

func TestMoneyCommaAndDotAgree(t *testing.T) {
	assert.True(t, Money("12,34").Equal(Money("12.34")))
}

func TestRound2(t *testing.T) {
	assert.Equal(t, 214.0, Round2(decimal.NewFromInt(214)))
	assert.Equal(t, 33.33, Round2(decimal.NewFromInt(100).Div(decimal.NewFromInt(3))))
}

func TestParseFlexibleDate(t *testing.T) {
	tests := []struct {
		name  string
		input string
		want  time.Time
		ok    bool
	}{
		{name: "iso date", input: "2025-03-14", want: time.Date(2025, 3, 14, 0, 0, 0, 0, time.UTC), ok: true},
		{name: "dotted date", input: "14.03.2025", want: time.Date(2025, 3, 14, 0, 0, 0, 0, time.UTC), ok: true},
		{name: "rfc3339", input: "2025-03-14T10:30:00Z", want: time.Date(2025, 3, 14, 10, 30, 0, 0, time.UTC), ok: true},
		{name: "empty", input: "", ok: false},
		{name: "garbage", input: "14/03/2025", ok: false},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			got, ok := ParseFlexibleDate(tt.input)
			assert.Equal(t, tt.ok, ok)
			if tt.ok {
				assert.True(t, got.Equal(tt.want), "got %s, want %s", got, tt.want)
			}
		})
	}
}

func TestDayBounds(t *testing.T) {
	ts := time.Date(2025, 3, 14, 15, 4, 5, 0, time.UTC)

	assert.Equal(t, time.Date(2025, 3, 14, 0, 0, 0, 0, time.UTC), StartOfDay(ts))
	assert.Equal(t, time.Date(2025, 3, 14, 23, 59, 59, 999000000, time.UTC), EndOfDay(ts))
	assert.Equal(t, time.Date(2025, 3, 1, 0, 0, 0, 0, time.UTC), StartOfMonth(ts))
	assert.Equal(t, "03-2025", MonthKey(ts))
}
