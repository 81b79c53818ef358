// Package ml implements the seeded numeric algorithms behind the ML analysis
// strategy: feature standardization, isolation-forest outlier scoring, and
// k-means clustering with adaptive cluster-count selection.
package ml

import "gonum.org/v1/gonum/stat"

// Standardize returns a copy of the data with every column scaled to zero
// mean and unit variance. Constant columns are centered only. Both the
// outlier scorer and k-means are distance sensitive, so this runs before
// either of them.
func Standardize(data [][]float64) [][]float64 {
	if len(data) == 0 {
		return nil
	}
	dims := len(data[0])
	out := make([][]float64, len(data))
	for i := range out {
		out[i] = make([]float64, dims)
	}

	column := make([]float64, len(data))
	for j := 0; j < dims; j++ {
		for i := range data {
			column[i] = data[i][j]
		}
		mean, std := stat.MeanStdDev(column, nil)
		for i := range data {
			if std > 0 {
				out[i][j] = (data[i][j] - mean) / std
			} else {
				out[i][j] = data[i][j] - mean
			}
		}
	}
	return out
}
