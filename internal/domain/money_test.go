package domain

import (
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func TestParseAmount(t *testing.T) {
	testCases := []struct {
		name     string
		in       string
		expected string
		err      error
	}{
		{name: "integer", in: "100", expected: "100.00"},
		{name: "cents", in: "200.50", expected: "200.50"},
		{name: "trailing zeros beyond cents", in: "1.500", expected: "1.50"},
		{name: "surrounding spaces", in: " 7.5 ", expected: "7.50"},
		{name: "zero", in: "0", expected: "0.00"},
		{name: "column maximum", in: "9999999999.99", expected: "9999999999.99"},
		{name: "empty", in: "", err: ErrAmountNotNumber},
		{name: "letters", in: "abc", err: ErrAmountNotNumber},
		{name: "NaN", in: "NaN", err: ErrAmountNotNumber},
		{name: "Inf", in: "Inf", err: ErrAmountNotNumber},
		{name: "negative Inf", in: "-Inf", err: ErrAmountNotNumber},
		{name: "negative", in: "-1", err: ErrAmountNegative},
		{name: "half a cent", in: "0.005", err: ErrAmountPrecision},
		{name: "sub-cent above one", in: "1.005", err: ErrAmountPrecision},
		{name: "exponent overflow", in: "1e300", err: ErrAmountTooLarge},
		{name: "above the column", in: "10000000000", err: ErrAmountTooLarge},
	}

	for _, tc := range testCases {
		t.Run(tc.name, func(t *testing.T) {
			got, err := ParseAmount(tc.in)
			if tc.err != nil {
				assert.ErrorIs(t, err, tc.err)
				return
			}

			require.NoError(t, err)
			assert.Equal(t, tc.expected, got.StringFixed(2))
		})
	}
}
