package ml

import (
	"errors"
	"math"
	"math/rand"
	"strconv"

	"gonum.org/v1/gonum/floats"
)

const kmeansMaxIterations = 100

// Clustering is the result of partitioning samples into k groups.
type Clustering struct {
	K         int
	Labels    []int
	Centroids [][]float64
}

// KMeans partitions the samples into k clusters using k-means++ seeding.
// All randomness comes from rng, so results are reproducible for a fixed
// dataset and seed.
func KMeans(data [][]float64, k int, rng *rand.Rand) (Clustering, error) {
	if k < 1 {
		return Clustering{}, errors.New("k must be at least 1")
	}
	if len(data) < k {
		return Clustering{}, errors.New("fewer samples than clusters")
	}

	centroids := seedCentroids(data, k, rng)
	labels := make([]int, len(data))

	for iter := 0; iter < kmeansMaxIterations; iter++ {
		moved := false
		for i, row := range data {
			best := nearestCentroid(row, centroids)
			if labels[i] != best {
				labels[i] = best
				moved = true
			}
		}
		if iter > 0 && !moved {
			break
		}
		recomputeCentroids(data, labels, centroids)
	}

	return Clustering{K: k, Labels: labels, Centroids: centroids}, nil
}

// seedCentroids implements k-means++: each further centroid is drawn with
// probability proportional to squared distance from the nearest chosen one.
func seedCentroids(data [][]float64, k int, rng *rand.Rand) [][]float64 {
	centroids := make([][]float64, 0, k)
	first := rng.Intn(len(data))
	centroids = append(centroids, append([]float64(nil), data[first]...))

	dist := make([]float64, len(data))
	for len(centroids) < k {
		total := 0.0
		for i, row := range data {
			d := sqDist(row, centroids[0])
			for _, c := range centroids[1:] {
				if cand := sqDist(row, c); cand < d {
					d = cand
				}
			}
			dist[i] = d
			total += d
		}
		if total == 0 {
			// All remaining points coincide with a centroid; pick any.
			centroids = append(centroids, append([]float64(nil), data[rng.Intn(len(data))]...))
			continue
		}
		target := rng.Float64() * total
		acc := 0.0
		chosen := len(data) - 1
		for i, d := range dist {
			acc += d
			if acc >= target {
				chosen = i
				break
			}
		}
		centroids = append(centroids, append([]float64(nil), data[chosen]...))
	}
	return centroids
}

func recomputeCentroids(data [][]float64, labels []int, centroids [][]float64) {
	dims := len(data[0])
	counts := make([]int, len(centroids))
	for c := range centroids {
		for j := 0; j < dims; j++ {
			centroids[c][j] = 0
		}
	}
	for i, row := range data {
		c := labels[i]
		counts[c]++
		floats.Add(centroids[c], row)
	}
	for c := range centroids {
		if counts[c] == 0 {
			// Reseat an empty cluster on the sample farthest from its
			// centroid so every cluster keeps at least one member.
			far, idx := -1.0, 0
			for i, row := range data {
				if d := sqDist(row, centroids[labels[i]]); d > far {
					far, idx = d, i
				}
			}
			copy(centroids[c], data[idx])
			labels[idx] = c
			counts[c] = 1
			continue
		}
		floats.Scale(1/float64(counts[c]), centroids[c])
	}
}

func nearestCentroid(row []float64, centroids [][]float64) int {
	best, bestDist := 0, math.Inf(1)
	for c, centroid := range centroids {
		if d := sqDist(row, centroid); d < bestDist {
			best, bestDist = c, d
		}
	}
	return best
}

func sqDist(a, b []float64) float64 {
	d := floats.Distance(a, b, 2)
	return d * d
}

// SelectClusters runs k-means for every k in [kMin, kMax] and keeps the
// partition with the highest mean simplified silhouette (centroid-distance
// form, O(n*k)). Ties resolve to the smaller k. Each candidate k gets a
// fresh generator from the same seed, so adding a candidate never perturbs
// the others.
func SelectClusters(data [][]float64, kMin, kMax int, seed int64) (Clustering, error) {
	if kMin < 1 || kMax < kMin {
		return Clustering{}, errors.New("invalid cluster range")
	}
	if kMax > len(data) {
		kMax = len(data)
	}
	if kMax < kMin {
		return Clustering{}, errors.New("fewer samples than minimum clusters")
	}

	best := Clustering{}
	bestScore := math.Inf(-1)
	for k := kMin; k <= kMax; k++ {
		clustering, err := KMeans(data, k, rand.New(rand.NewSource(seed)))
		if err != nil {
			return Clustering{}, err
		}
		score := simplifiedSilhouette(data, clustering)
		if score > bestScore {
			best, bestScore = clustering, score
		}
	}
	return best, nil
}

func simplifiedSilhouette(data [][]float64, clustering Clustering) float64 {
	if clustering.K < 2 {
		return 0
	}
	total := 0.0
	for i, row := range data {
		own := floats.Distance(row, clustering.Centroids[clustering.Labels[i]], 2)
		other := math.Inf(1)
		for c, centroid := range clustering.Centroids {
			if c == clustering.Labels[i] {
				continue
			}
			if d := floats.Distance(row, centroid, 2); d < other {
				other = d
			}
		}
		denom := math.Max(own, other)
		if denom > 0 {
			total += (other - own) / denom
		}
	}
	return total / float64(len(data))
}

// Distribution maps cluster labels C0..Ck-1 to their member counts. Counts
// always sum to the number of samples in the partition.
func (c Clustering) Distribution() map[string]int {
	dist := make(map[string]int, c.K)
	for i := 0; i < c.K; i++ {
		dist[labelName(i)] = 0
	}
	for _, label := range c.Labels {
		dist[labelName(label)]++
	}
	return dist
}

func labelName(i int) string {
	return "C" + strconv.Itoa(i)
}
