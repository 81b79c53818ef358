package analyses

import (
	"math/rand"
	"strconv"
	"testing"

	"analyzer-backend/internal/dataset"
)

// numericRecords builds rows with the given number of numeric columns plus
// textCols labelled text columns, deterministically from the seed.
func numericRecords(rows, numericCols, textCols int, seed int64) []map[string]any {
	rng := rand.New(rand.NewSource(seed))
	records := make([]map[string]any, rows)
	for i := range records {
		record := make(map[string]any, numericCols+textCols)
		for c := 0; c < numericCols; c++ {
			record["num_"+strconv.Itoa(c)] = rng.NormFloat64() * 10
		}
		for c := 0; c < textCols; c++ {
			record["txt_"+strconv.Itoa(c)] = "label-" + strconv.Itoa(i%7)
		}
		records[i] = record
	}
	return records
}

func buildDataset(t *testing.T, records []map[string]any) (*dataset.Dataset, dataset.Profile) {
	t.Helper()
	ds, err := dataset.FromRecords(records)
	if err != nil {
		t.Fatalf("build dataset: %v", err)
	}
	profile, err := ds.Profile()
	if err != nil {
		t.Fatalf("profile: %v", err)
	}
	return ds, profile
}
