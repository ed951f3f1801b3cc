package clustering

import (
	"errors"
	"testing"

	"github.com/Hammad1029/trend-finder/config"
)

func TestFitEmptyInput(t *testing.T) {
	c := NewClusterer(config.DefaultClustering())

	labels, err := c.Fit(nil)
	if err != nil {
		t.Fatalf("unexpected error: %v", err)
	}
	if len(labels) != 0 {
		t.Errorf("expected no labels, got %v", labels)
	}
}

func TestFitIdenticalEmbeddingsShareCluster(t *testing.T) {
	c := NewClusterer(config.DefaultClustering())

	labels, err := c.Fit([][]float64{
		{0.5, 0.5, 0.1},
		{0.5, 0.5, 0.1},
	})
	if err != nil {
		t.Fatalf("unexpected error: %v", err)
	}
	if labels[0] != labels[1] {
		t.Errorf("identical embeddings got labels %d and %d", labels[0], labels[1])
	}
	if labels[0] == Noise {
		t.Error("identical pair marked as noise")
	}
}

func TestFitIsolatedPointIsNoise(t *testing.T) {
	c := NewClusterer(config.DefaultClustering())

	labels, err := c.Fit([][]float64{
		{1, 0, 0},
		{1, 0.01, 0},
		{0, 0, 1}, // orthogonal to the pair, cosine distance 1
	})
	if err != nil {
		t.Fatalf("unexpected error: %v", err)
	}
	if labels[0] != labels[1] || labels[0] == Noise {
		t.Errorf("near pair should share a cluster, got %v", labels)
	}
	if labels[2] != Noise {
		t.Errorf("isolated point should be noise, got %d", labels[2])
	}
}

func TestFitTwoClusters(t *testing.T) {
	c := NewClusterer(config.DefaultClustering())

	labels, err := c.Fit([][]float64{
		{1, 0, 0},
		{0.99, 0.01, 0},
		{0, 1, 0},
		{0.01, 0.99, 0},
	})
	if err != nil {
		t.Fatalf("unexpected error: %v", err)
	}
	if labels[0] != labels[1] {
		t.Errorf("first pair split: %v", labels)
	}
	if labels[2] != labels[3] {
		t.Errorf("second pair split: %v", labels)
	}
	if labels[0] == labels[2] {
		t.Errorf("orthogonal pairs merged: %v", labels)
	}
	// labels assigned in input order
	if labels[0] != 0 || labels[2] != 1 {
		t.Errorf("expected labels 0 and 1 in input order, got %v", labels)
	}
}

func TestFitDimensionMismatch(t *testing.T) {
	c := NewClusterer(config.DefaultClustering())

	_, err := c.Fit([][]float64{
		{1, 0, 0},
		{1, 0},
	})
	if !errors.Is(err, ErrDimensionMismatch) {
		t.Errorf("expected ErrDimensionMismatch, got %v", err)
	}
}

func TestFitZeroVectorsAreNoise(t *testing.T) {
	c := NewClusterer(config.DefaultClustering())

	labels, err := c.Fit([][]float64{
		{0, 0, 0},
		{0, 0, 0},
	})
	if err != nil {
		t.Fatalf("unexpected error: %v", err)
	}
	for i, l := range labels {
		if l != Noise {
			t.Errorf("zero vector %d got label %d, want noise", i, l)
		}
	}
}
