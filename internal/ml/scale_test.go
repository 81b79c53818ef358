package ml

import (
	"math"
	"testing"

	"gonum.org/v1/gonum/stat"
)

func TestStandardizeZeroMeanUnitVariance(t *testing.T) {
	data := [][]float64{
		{1, 100},
		{2, 200},
		{3, 300},
		{4, 400},
	}
	scaled := Standardize(data)

	for j := 0; j < 2; j++ {
		column := make([]float64, len(scaled))
		for i := range scaled {
			column[i] = scaled[i][j]
		}
		mean, std := stat.MeanStdDev(column, nil)
		if math.Abs(mean) > 1e-9 {
			t.Fatalf("column %d mean = %v, want 0", j, mean)
		}
		if math.Abs(std-1) > 1e-9 {
			t.Fatalf("column %d std = %v, want 1", j, std)
		}
	}
}

func TestStandardizeConstantColumn(t *testing.T) {
	data := [][]float64{{5, 1}, {5, 2}, {5, 3}}
	scaled := Standardize(data)
	for i := range scaled {
		if scaled[i][0] != 0 {
			t.Fatalf("constant column should center to 0, got %v", scaled[i][0])
		}
	}
}

func TestStandardizeDoesNotMutateInput(t *testing.T) {
	data := [][]float64{{1, 2}, {3, 4}}
	Standardize(data)
	if data[0][0] != 1 || data[1][1] != 4 {
		t.Fatalf("input mutated: %v", data)
	}
}
