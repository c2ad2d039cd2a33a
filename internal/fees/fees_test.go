package fees

import (
	"testing"

	"workingna/internal/catalog"
	"workingna/internal/selection"
	"workingna/pkg/models"

	"github.com/shopspring/decimal"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func dec(s string) decimal.Decimal {
	return decimal.RequireFromString(s)
}

func TestDiscountRate(t *testing.T) {
	tests := []struct {
		n    int
		want string
	}{
		{0, "0"},
		{1, "0"},
		{2, "0.05"},
		{3, "0.10"},
		{4, "0.15"},
		{7, "0.15"},
		{100, "0.15"},
		{-1, "0"},
	}

	for _, tt := range tests {
		assert.True(t, DiscountRate(tt.n).Equal(dec(tt.want)), "n=%d got %s", tt.n, DiscountRate(tt.n))
	}
}

func TestComputeScenarios(t *testing.T) {
	c := catalog.Default()

	tests := []struct {
		name     string
		ids      []int
		base     string
		subtotal string
		vat      string
		total    string
		display  string
	}{
		{"none", nil, "0", "0", "0", "0", "Estimated Total: R0.00"},
		{"single course", []int{5}, "750", "750", "112.5", "862.5", "Estimated Total: R862.50"},
		{"first aid and sewing", []int{1, 2}, "3000", "2850", "427.5", "3277.5", "Estimated Total: R3277.50"},
		{"three short courses", []int{5, 6, 7}, "2250", "2025", "303.75", "2328.75", "Estimated Total: R2328.75"},
		{"all seven", []int{1, 2, 3, 4, 5, 6, 7}, "8250", "7012.5", "1051.875", "8064.375", "Estimated Total: R8064.38"},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			q := Compute(selection.New(tt.ids...), c)
			assert.Equal(t, len(tt.ids), q.Count)
			assert.True(t, q.Base.Equal(dec(tt.base)), "base %s", q.Base)
			assert.True(t, q.Subtotal.Equal(dec(tt.subtotal)), "subtotal %s", q.Subtotal)
			assert.True(t, q.VAT.Equal(dec(tt.vat)), "vat %s", q.VAT)
			assert.True(t, q.Total.Equal(dec(tt.total)), "total %s", q.Total)
			assert.Equal(t, tt.display, q.Display())
			assert.True(t, ComputeTotal(selection.New(tt.ids...), c).Equal(q.Total))
		})
	}
}

func TestUnknownCourseContributesZero(t *testing.T) {
	c := catalog.Default()
	assert.True(t, ComputeTotal(selection.New(999), c).IsZero())

	// 未知课程仍计入折扣档位
	q := Compute(selection.New(1, 999), c)
	assert.True(t, q.Base.Equal(dec("1500")))
	assert.True(t, q.DiscountRate.Equal(dec("0.05")))
	assert.True(t, q.Total.Equal(dec("1638.75")))
}

func TestOrderIndependent(t *testing.T) {
	c := catalog.Default()
	a := selection.New()
	b := selection.New()
	for _, id := range []int{7, 1, 4, 5} {
		a.Toggle(id)
	}
	for _, id := range []int{5, 4, 1, 7} {
		b.Toggle(id)
	}
	assert.True(t, ComputeTotal(a, c).Equal(ComputeTotal(b, c)))
}

func TestEmptyInputs(t *testing.T) {
	assert.True(t, ComputeTotal(nil, catalog.Default()).IsZero())
	assert.True(t, ComputeTotal(selection.New(1, 2), nil).IsZero())

	empty, err := catalog.New([]models.Course{})
	require.NoError(t, err)
	assert.True(t, ComputeTotal(selection.New(1, 2, 3), empty).IsZero())
}

func TestFormatRand(t *testing.T) {
	assert.Equal(t, "R0.00", FormatRand(decimal.Zero))
	assert.Equal(t, "R8064.38", FormatRand(dec("8064.375")))
	assert.Equal(t, "R10.00", FormatRand(dec("9.999")))
}
