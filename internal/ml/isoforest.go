package ml

import (
	"errors"
	"math"
	"math/rand"
	"sort"
)

const (
	defaultTreeCount  = 100
	defaultSampleSize = 256
)

// IsolationForest scores samples by how few random axis-aligned splits are
// needed to isolate them. Scores lie in (0, 1); higher means more anomalous.
// All randomness comes from the seed given at construction, so scores are
// reproducible for identical input.
type IsolationForest struct {
	treeCount  int
	sampleSize int
	rng        *rand.Rand
	trees      []*isoNode
	trained    int
}

// NewIsolationForest builds an untrained forest. Non-positive parameters
// fall back to the usual 100 trees / 256-sample defaults.
func NewIsolationForest(treeCount, sampleSize int, seed int64) *IsolationForest {
	if treeCount <= 0 {
		treeCount = defaultTreeCount
	}
	if sampleSize <= 0 {
		sampleSize = defaultSampleSize
	}
	return &IsolationForest{
		treeCount:  treeCount,
		sampleSize: sampleSize,
		rng:        rand.New(rand.NewSource(seed)),
	}
}

type isoNode struct {
	splitDim int
	splitVal float64
	left     *isoNode
	right    *isoNode
	size     int
}

// Fit trains the forest on the given samples.
func (f *IsolationForest) Fit(data [][]float64) error {
	if len(data) == 0 || len(data[0]) == 0 {
		return errors.New("isolation forest requires at least one sample with one feature")
	}

	sample := f.sampleSize
	if sample > len(data) {
		sample = len(data)
	}
	maxDepth := int(math.Ceil(math.Log2(float64(sample)))) + 1

	f.trained = sample
	f.trees = make([]*isoNode, f.treeCount)
	indices := make([]int, len(data))
	for i := range indices {
		indices[i] = i
	}
	for t := 0; t < f.treeCount; t++ {
		f.rng.Shuffle(len(indices), func(i, j int) {
			indices[i], indices[j] = indices[j], indices[i]
		})
		subset := make([][]float64, sample)
		for i := 0; i < sample; i++ {
			subset[i] = data[indices[i]]
		}
		f.trees[t] = f.grow(subset, 0, maxDepth)
	}
	return nil
}

func (f *IsolationForest) grow(subset [][]float64, depth, maxDepth int) *isoNode {
	if len(subset) <= 1 || depth >= maxDepth {
		return &isoNode{size: len(subset)}
	}

	dims := len(subset[0])
	dim := f.rng.Intn(dims)
	lo, hi := subset[0][dim], subset[0][dim]
	for _, row := range subset[1:] {
		if row[dim] < lo {
			lo = row[dim]
		}
		if row[dim] > hi {
			hi = row[dim]
		}
	}
	if lo == hi {
		return &isoNode{size: len(subset)}
	}

	split := lo + f.rng.Float64()*(hi-lo)
	var left, right [][]float64
	for _, row := range subset {
		if row[dim] < split {
			left = append(left, row)
		} else {
			right = append(right, row)
		}
	}
	return &isoNode{
		splitDim: dim,
		splitVal: split,
		left:     f.grow(left, depth+1, maxDepth),
		right:    f.grow(right, depth+1, maxDepth),
	}
}

// Scores returns the anomaly score for every sample.
func (f *IsolationForest) Scores(data [][]float64) ([]float64, error) {
	if len(f.trees) == 0 {
		return nil, errors.New("isolation forest is not fitted")
	}
	norm := avgPathLength(f.trained)
	scores := make([]float64, len(data))
	for i, row := range data {
		total := 0.0
		for _, tree := range f.trees {
			total += pathLength(tree, row, 0)
		}
		mean := total / float64(len(f.trees))
		scores[i] = math.Pow(2, -mean/norm)
	}
	return scores, nil
}

func pathLength(node *isoNode, row []float64, depth float64) float64 {
	if node.left == nil {
		return depth + avgPathLength(node.size)
	}
	if row[node.splitDim] < node.splitVal {
		return pathLength(node.left, row, depth+1)
	}
	return pathLength(node.right, row, depth+1)
}

// avgPathLength is the expected unsuccessful-search path length of a binary
// search tree over n points, the standard normalization term c(n).
func avgPathLength(n int) float64 {
	if n <= 1 {
		return 0
	}
	h := math.Log(float64(n-1)) + 0.5772156649
	return 2*h - 2*float64(n-1)/float64(n)
}

// TopAnomalies flags the k highest-scoring samples, ties broken by original
// order. Flagging an exact count keeps the reported proportion equal to the
// configured contamination fraction instead of drifting with the score
// distribution.
func TopAnomalies(scores []float64, k int) []bool {
	flags := make([]bool, len(scores))
	if k <= 0 {
		return flags
	}
	if k > len(scores) {
		k = len(scores)
	}
	order := make([]int, len(scores))
	for i := range order {
		order[i] = i
	}
	sort.SliceStable(order, func(a, b int) bool {
		return scores[order[a]] > scores[order[b]]
	})
	for _, idx := range order[:k] {
		flags[idx] = true
	}
	return flags
}
