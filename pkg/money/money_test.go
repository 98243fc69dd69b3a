package money

import (
	"testing"

	"github.com/shopspring/decimal"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func TestAddSubtract(t *testing.T) {
	a := New(1050, "usd")
	b := New(250, "USD")

	sum, err := Add(a, b)
	require.NoError(t, err)
	assert.Equal(t, New(1300, "USD"), sum)

	diff, err := Subtract(b, a)
	require.NoError(t, err)
	assert.Equal(t, int64(-800), diff.Amount)

	_, err = Add(a, New(1, "EUR"))
	assert.ErrorIs(t, err, ErrCurrencyMismatch)
	_, err = Subtract(a, New(1, "EUR"))
	assert.ErrorIs(t, err, ErrCurrencyMismatch)
}

func TestMultiplyByFraction(t *testing.T) {
	tests := []struct {
		name   string
		amount int64
		num    int64
		den    int64
		want   int64
	}{
		{"exact", 10000, 2500, 10000, 2500},
		{"rounds half up", 5, 1, 2, 3},
		{"rounds down below half", 1000, 1, 3, 333},
		{"rounds up above half", 2000, 1, 3, 667},
		{"negative half rounds away from zero", -5, 1, 2, -3},
		{"third of ten dollars at 33.33%", 1000, 3333, 10000, 333},
		{"zero numerator", 1234, 0, 7, 0},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			got, err := MultiplyByFraction(New(tt.amount, "USD"), tt.num, tt.den)
			require.NoError(t, err)
			assert.Equal(t, tt.want, got.Amount)
			assert.Equal(t, "USD", got.Currency)
		})
	}

	_, err := MultiplyByFraction(New(100, "USD"), 1, 0)
	assert.ErrorIs(t, err, ErrDivisionByZero)
}

func TestMultiplyByFractionIsDeterministic(t *testing.T) {
	m := New(99999, "USD")
	first, err := MultiplyByFraction(m, 4567, 10000)
	require.NoError(t, err)
	for i := 0; i < 10; i++ {
		again, err := MultiplyByFraction(m, 4567, 10000)
		require.NoError(t, err)
		assert.Equal(t, first, again)
	}
}

func TestRoundHalfUpAndParse(t *testing.T) {
	tests := []struct {
		in       string
		currency string
		want     int64
	}{
		{"12.345", "USD", 1235},
		{"12.344", "USD", 1234},
		{"-12.345", "USD", -1235},
		{"1234.5", "JPY", 1235},
		{"1.5", "KWD", 1500},
		{"10000000000000", "USD", MaxMinorUnits},
	}
	for _, tt := range tests {
		m, err := RoundHalfUp(decimal.RequireFromString(tt.in), tt.currency)
		require.NoError(t, err, tt.in)
		assert.Equal(t, tt.want, m.Amount, tt.in)
	}

	for _, huge := range []string{"100000000000000000000", "-100000000000000000000", "10000000000000.01"} {
		_, err := RoundHalfUp(decimal.RequireFromString(huge), "USD")
		assert.ErrorIs(t, err, ErrOutOfRange, huge)
	}
	_, err := Parse("100000000000000000000", "USD")
	assert.ErrorIs(t, err, ErrOutOfRange)

	m, err := Parse(" 90.00 ", "")
	require.NoError(t, err)
	assert.Equal(t, New(9000, DefaultCurrency), m)

	_, err = Parse("ninety", "USD")
	assert.ErrorIs(t, err, ErrInvalidAmount)
}

func TestFormatting(t *testing.T) {
	assert.Equal(t, "$25.50", New(2550, "USD").String())
	assert.Equal(t, "-$15.75", New(-1575, "USD").String())
	assert.Equal(t, "+$25.50", FormatSigned(New(2550, "USD")))
	assert.Equal(t, "-$15.75", FormatSigned(New(-1575, "USD")))
	assert.Equal(t, "$0.00", FormatSigned(Zero("USD")))
	assert.Equal(t, "€3.07", New(307, "EUR").String())
	assert.Equal(t, "CHF 1.00", New(100, "CHF").String())
	assert.Equal(t, "¥500", New(500, "JPY").String())
	assert.Equal(t, "45.00", New(4500, "USD").StringFixed())
}

func TestAllocate(t *testing.T) {
	assert.Equal(t, []int64{334, 333, 333}, Allocate(1000, 3))
	assert.Equal(t, []int64{25, 25, 25, 25}, Allocate(100, 4))
	assert.Equal(t, []int64{1, 1, 0, 0, 0}, Allocate(2, 5))
	assert.Equal(t, []int64{-334, -333, -333}, Allocate(-1000, 3))
	assert.Nil(t, Allocate(100, 0))

	for total := int64(1); total < 500; total += 7 {
		for n := 1; n <= 9; n++ {
			var sum int64
			for _, p := range Allocate(total, n) {
				sum += p
			}
			assert.Equal(t, total, sum, "total=%d n=%d", total, n)
		}
	}
}
