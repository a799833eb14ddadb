package acoustic

import (
	"math/rand"
	"testing"
)

func randomFeatures(rows, cols int, rng *rand.Rand) [][]float64 {
	m := make([][]float64, rows)
	for i := range m {
		m[i] = make([]float64, cols)
		for j := range m[i] {
			m[i][j] = rng.NormFloat64()
		}
	}
	return m
}

func BenchmarkAccumulator_Add_5x12(b *testing.B) {
	feats := randomFeatures(5, 12, rand.New(rand.NewSource(1)))
	acc := NewAccumulator("a")
	for b.Loop() {
		acc.Add(feats)
	}
}

func BenchmarkEncodeTemplate_5x12(b *testing.B) {
	tpl, err := NewTemplate("a", randomFeatures(5, 12, rand.New(rand.NewSource(2))))
	if err != nil {
		b.Fatal(err)
	}
	for b.Loop() {
		encodeTemplate(tpl)
	}
}
