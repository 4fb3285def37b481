package helpers

import (
	"testing"
	"time"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func TestNormalizeName(t *testing.T) {
	assert.Equal(t, "hanikzaimatussholichah", NormalizeName("Hanik Zaimatus\tSholichah"))
	assert.Equal(t, "hanikzaimatussholichah", NormalizeName("HanikZaimatusSholichah"))
	assert.Equal(t, "", NormalizeName("  \n "))
}

func TestFormatRupiah(t *testing.T) {
	tests := map[float64]string{
		0:          "Rp 0",
		500:        "Rp 500",
		1500:       "Rp 1.500",
		1500000:    "Rp 1.500.000",
		12345678.6: "Rp 12.345.679",
		-250000:    "-Rp 250.000",
	}
	for in, want := range tests {
		assert.Equal(t, want, FormatRupiah(in), "amount %v", in)
	}
}

func TestWeightedAverageAndRounding(t *testing.T) {
	assert.Equal(t, 0.0, WeightedAverage(10, 0))
	assert.Equal(t, 3.33, Round2(WeightedAverage(10, 3)))
	assert.Equal(t, "3.50", FormatGPA(3.5))
	assert.Equal(t, "0.00", FormatGPA(WeightedAverage(0, 0)))
}

func TestISODate(t *testing.T) {
	assert.True(t, IsISODate("2003-07-15"))
	assert.False(t, IsISODate("15-07-2003"))
	assert.False(t, IsISODate("2003-7-15"))

	d, err := ParseISODate("2003-07-15")
	require.NoError(t, err)
	assert.Equal(t, "15/07/2003", FormatTanggal(d))

	_, err = ParseISODate("2003-13-45")
	assert.Error(t, err)
}

func TestTahunAjaran(t *testing.T) {
	assert.Equal(t, "2023/2024", TahunAjaran(2023))
}

func TestParseDuration(t *testing.T) {
	assert.Equal(t, 30*time.Minute, ParseDuration("30m", time.Hour))
	assert.Equal(t, time.Hour, ParseDuration("soon", time.Hour))
}

func TestPagination(t *testing.T) {
	offset, limit := CalculateOffsetLimit(3, 20)
	assert.Equal(t, uint64(40), offset)
	assert.Equal(t, uint64(20), limit)

	offset, limit = CalculateOffsetLimit(0, 1000)
	assert.Equal(t, uint64(0), offset)
	assert.Equal(t, uint64(DefaultPageSize), limit)

	info := NewPaginationInfo(25, 2, 10)
	assert.Equal(t, 3, info.TotalPages)
	assert.True(t, info.HasNext)
	assert.True(t, info.HasPrev)

	offset, limit = CalculateOffsetLimit(100000000000000000, 100)
	assert.Equal(t, uint64((MaxPage-1)*100), offset)
	assert.Equal(t, uint64(100), limit)

	empty := NewPaginationInfo(0, 1, 10)
	assert.Equal(t, 0, empty.TotalPages)
	assert.False(t, empty.HasNext)
}
