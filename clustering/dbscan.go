package clustering

import (
	"errors"
	"fmt"

	"gonum.org/v1/gonum/floats"

	"github.com/Hammad1029/trend-finder/config"
)

// Noise is the label assigned to points not dense enough for any cluster
const Noise = -1

// ErrDimensionMismatch reports embeddings of inconsistent length.
// Clustering mismatched vectors would produce meaningless groups, so this is
// surfaced instead of silently proceeding.
var ErrDimensionMismatch = errors.New("embedding dimension mismatch")

// Clusterer groups embeddings by cosine distance using density-based
// clustering: points with at least MinSamples neighbors (self included)
// within Eps are core points, core points and everything reachable from them
// form a cluster, the rest is noise.
type Clusterer struct {
	eps        float64
	minSamples int
}

// NewClusterer creates a clusterer with the given neighborhood parameters
func NewClusterer(cfg config.ClusteringConfig) *Clusterer {
	return &Clusterer{
		eps:        cfg.Eps,
		minSamples: cfg.MinSamples,
	}
}

const unvisited = -2

// Fit assigns a cluster label to every embedding. Labels are arbitrary
// non-negative integers; noise points get Noise (-1). An empty input returns
// an empty label slice.
//
// Points are processed strictly in input order, and cluster expansion drains
// its seed queue in insertion order, so labels are reproducible for a fixed
// input. Border points land in the first cluster that reaches them.
func (c *Clusterer) Fit(embeddings [][]float64) ([]int, error) {
	n := len(embeddings)
	if n == 0 {
		return nil, nil
	}

	dim := len(embeddings[0])
	for i, e := range embeddings {
		if len(e) != dim {
			return nil, fmt.Errorf("%w: embedding %d has %d dimensions, expected %d",
				ErrDimensionMismatch, i, len(e), dim)
		}
	}

	norms := make([]float64, n)
	for i, e := range embeddings {
		norms[i] = floats.Norm(e, 2)
	}

	labels := make([]int, n)
	for i := range labels {
		labels[i] = unvisited
	}

	nextLabel := 0
	for i := 0; i < n; i++ {
		if labels[i] != unvisited {
			continue
		}

		neighbors := c.regionQuery(embeddings, norms, i)
		if len(neighbors) < c.minSamples {
			labels[i] = Noise
			continue
		}

		labels[i] = nextLabel
		c.expand(embeddings, norms, labels, neighbors, nextLabel)
		nextLabel++
	}

	return labels, nil
}

// expand grows a cluster from a core point's neighborhood
func (c *Clusterer) expand(embeddings [][]float64, norms []float64, labels, seeds []int, label int) {
	for qi := 0; qi < len(seeds); qi++ {
		j := seeds[qi]
		if labels[j] == Noise {
			// previously noise, reachable from a core point: border point
			labels[j] = label
			continue
		}
		if labels[j] != unvisited {
			continue
		}
		labels[j] = label

		neighbors := c.regionQuery(embeddings, norms, j)
		if len(neighbors) >= c.minSamples {
			seeds = append(seeds, neighbors...)
		}
	}
}

// regionQuery returns the indices within eps of point i, in input order.
// The point itself is included, matching the usual min_samples convention.
func (c *Clusterer) regionQuery(embeddings [][]float64, norms []float64, i int) []int {
	var neighbors []int
	for j := range embeddings {
		if cosineDistance(embeddings[i], embeddings[j], norms[i], norms[j]) <= c.eps {
			neighbors = append(neighbors, j)
		}
	}
	return neighbors
}

// cosineDistance is 1 - cosine similarity. Zero vectors carry no direction
// and are treated as maximally distant from everything, including each other.
func cosineDistance(a, b []float64, normA, normB float64) float64 {
	if normA == 0 || normB == 0 {
		return 1
	}
	return 1 - floats.Dot(a, b)/(normA*normB)
}
