// Package tdigest estimates quantiles of a stream of samples in bounded
// memory. vmbench feeds it per-run latencies and reads back p50/p90/p99.
package tdigest

import (
	"cmp"
	"math"
	"slices"
	"time"
)

const DefaultCompression = 100

// TDigest is a merging t-digest. Samples are buffered and folded into
// weighted centroids whenever the buffer fills; the centroid size limit is
// tighter near the tails, so extreme quantiles stay accurate.
//
// A TDigest is not safe for concurrent use. Give each goroutine its own and
// combine them with Merge.
type TDigest struct {
	compression float64
	centroids   []centroid
	buffer      []centroid
	count       float64
	min         float64
	max         float64
}

type centroid struct {
	mean   float64
	weight float64
}

// New returns an empty digest. A compression of zero or less selects
// DefaultCompression; larger values trade memory for accuracy.
func New(compression float64) *TDigest {
	if compression <= 0 {
		compression = DefaultCompression
	}

	return &TDigest{
		compression: compression,
		buffer:      make([]centroid, 0, int(compression)*4),
		min:         math.Inf(1),
		max:         math.Inf(-1),
	}
}

// Compression returns the compression factor.
func (td *TDigest) Compression() float64 {
	return td.compression
}

// Add records one sample. NaN samples are ignored.
func (td *TDigest) Add(value float64) {
	td.AddWeighted(value, 1)
}

// AddDuration records a latency sample in nanoseconds.
func (td *TDigest) AddDuration(d time.Duration) {
	td.Add(float64(d))
}

// AddWeighted records value with the given weight. Non-positive weights and
// NaN values are ignored.
func (td *TDigest) AddWeighted(value, weight float64) {
	if weight <= 0 || math.IsNaN(value) {
		return
	}

	td.min = min(td.min, value)
	td.max = max(td.max, value)
	td.count += weight
	td.buffer = append(td.buffer, centroid{mean: value, weight: weight})

	if len(td.buffer) == cap(td.buffer) {
		td.flush()
	}
}

// Merge folds other into td. other is not modified.
func (td *TDigest) Merge(other *TDigest) {
	if other == nil || other.count == 0 {
		return
	}

	td.min = min(td.min, other.min)
	td.max = max(td.max, other.max)
	td.count += other.count
	td.buffer = append(td.buffer, other.centroids...)
	td.buffer = append(td.buffer, other.buffer...)
	td.flush()
}

// Count returns the total weight recorded.
func (td *TDigest) Count() float64 {
	return td.count
}

// Min returns the smallest sample, or NaN if the digest is empty.
func (td *TDigest) Min() float64 {
	if td.count == 0 {
		return math.NaN()
	}
	return td.min
}

// Max returns the largest sample, or NaN if the digest is empty.
func (td *TDigest) Max() float64 {
	if td.count == 0 {
		return math.NaN()
	}
	return td.max
}

// Mean returns the weighted mean of all samples, or NaN if the digest is
// empty.
func (td *TDigest) Mean() float64 {
	if td.count == 0 {
		return math.NaN()
	}
	td.flush()

	sum := 0.0
	for _, c := range td.centroids {
		sum += c.mean * c.weight
	}
	return sum / td.count
}

// Quantile returns the estimated value below which a fraction q of the
// samples fall. q is clamped to [0, 1]. An empty digest returns NaN.
func (td *TDigest) Quantile(q float64) float64 {
	if td.count == 0 {
		return math.NaN()
	}
	td.flush()

	q = min(max(q, 0), 1)
	if q == 0 {
		return td.min
	}
	if q == 1 {
		return td.max
	}
	if len(td.centroids) == 1 {
		return td.centroids[0].mean
	}

	// Each centroid's mass is centred on its mean; interpolate between
	// neighbouring centres, and towards min/max at the ends.
	index := q * td.count
	first := td.centroids[0]
	if index < first.weight/2 {
		return td.min + (first.mean-td.min)*index/(first.weight/2)
	}

	cum := 0.0
	for i := 0; i < len(td.centroids)-1; i++ {
		cur, next := td.centroids[i], td.centroids[i+1]
		lo := cum + cur.weight/2
		hi := cum + cur.weight + next.weight/2
		if index < hi {
			return cur.mean + (next.mean-cur.mean)*(index-lo)/(hi-lo)
		}
		cum += cur.weight
	}

	last := td.centroids[len(td.centroids)-1]
	lo := td.count - last.weight/2
	return last.mean + (td.max-last.mean)*(index-lo)/(last.weight/2)
}

// QuantileDuration is Quantile for digests fed with AddDuration.
func (td *TDigest) QuantileDuration(q float64) time.Duration {
	v := td.Quantile(q)
	if math.IsNaN(v) {
		return 0
	}
	return time.Duration(math.Round(v))
}

// Reset clears all samples, keeping the compression factor.
func (td *TDigest) Reset() {
	td.centroids = td.centroids[:0]
	td.buffer = td.buffer[:0]
	td.count = 0
	td.min = math.Inf(1)
	td.max = math.Inf(-1)
}

// flush merges the buffered samples into the centroid list.
func (td *TDigest) flush() {
	if len(td.buffer) == 0 {
		return
	}

	all := append(td.centroids, td.buffer...)
	slices.SortFunc(all, func(a, b centroid) int {
		return cmp.Compare(a.mean, b.mean)
	})

	merged := make([]centroid, 0, len(all))
	cur := all[0]
	cum := 0.0
	for _, c := range all[1:] {
		q := (cum + cur.weight + c.weight/2) / td.count
		if cur.weight+c.weight <= td.sizeLimit(q) {
			w := cur.weight + c.weight
			cur.mean += (c.mean - cur.mean) * c.weight / w
			cur.weight = w
			continue
		}
		cum += cur.weight
		merged = append(merged, cur)
		cur = c
	}
	merged = append(merged, cur)

	td.centroids = merged
	td.buffer = td.buffer[:0]
}

// sizeLimit is the largest weight a centroid at quantile q may reach.
func (td *TDigest) sizeLimit(q float64) float64 {
	return max(1, 4*td.count*q*(1-q)/td.compression)
}
