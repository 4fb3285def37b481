package enums

import (
	"testing"

	"github.com/stretchr/testify/assert"
)

func TestSemesterTypeFor(t *testing.T) {
	assert.Equal(t, SemesterGanjil, SemesterTypeFor(1))
	assert.Equal(t, SemesterGenap, SemesterTypeFor(2))
	assert.Equal(t, SemesterGanjil, SemesterTypeFor(7))
}

func TestSemesterLabels(t *testing.T) {
	assert.Equal(t, "Antara Pendek", SemesterAntaraPendek.Label())
	assert.Equal(t, "Antara Panjang", SemesterAntaraPanjang.Label())
	assert.Equal(t, "Tidak Diketahui", SemesterType(9).Label())

	assert.Equal(t, "Genap", SemesterGenap.ShortLabel())
	assert.Equal(t, "Antara", SemesterAntaraPendek.ShortLabel())
	assert.Equal(t, "Antara", SemesterType(0).ShortLabel())
}
