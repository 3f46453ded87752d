// Package histogram implements a uniform-bin counting histogram with an
// out-of-range policy and a plain-text persistence format.
package histogram

import (
	"bufio"
	"fmt"
	"io"
)

// OutOfRangePolicy controls what happens when a value falls outside
// [min, max).
type OutOfRangePolicy int

const (
	// Drop silently discards out-of-range values.
	Drop OutOfRangePolicy = iota
	// Fail treats an out-of-range value as a fatal domain error.
	Fail
)

// Histogram is a uniform-bin counting histogram over [min, max).
type Histogram struct {
	counts []int64
	min    float64
	max    float64
	policy OutOfRangePolicy
}

// New constructs a Histogram with nBins uniform bins over [min, max).
func New(nBins int, min, max float64, policy OutOfRangePolicy) (*Histogram, error) {
	if nBins < 1 {
		return nil, fmt.Errorf("histogram: bin count must be at least 1, found %d", nBins)
	}
	if min >= max {
		return nil, fmt.Errorf("histogram: requires min < max, found min=%e, max=%e", min, max)
	}
	return &Histogram{counts: make([]int64, nBins), min: min, max: max, policy: policy}, nil
}

// Add records one observation of value, applying the configured
// out-of-range policy when value falls outside [min, max).
func (h *Histogram) Add(value float64) error {
	if value < h.min || value >= h.max {
		if h.policy == Fail {
			return fmt.Errorf("histogram: value %e out of range [%e, %e)", value, h.min, h.max)
		}
		return nil
	}

	width := (h.max - h.min) / float64(len(h.counts))
	index := int((value - h.min) / width)
	if index >= len(h.counts) {
		index = len(h.counts) - 1
	}
	h.counts[index]++
	return nil
}

// Counts returns the current bin counts.
func (h *Histogram) Counts() []int64 {
	return h.counts
}

// NBins returns the number of bins.
func (h *Histogram) NBins() int {
	return len(h.counts)
}

// Reset zeroes every bin without changing the range or policy.
func (h *Histogram) Reset() {
	for i := range h.counts {
		h.counts[i] = 0
	}
}

// Write serializes the histogram as `<policy> <n_bins> <min> <max>` followed
// by one count per line.
func (h *Histogram) Write(w io.Writer) error {
	bw := bufio.NewWriter(w)
	if _, err := fmt.Fprintf(bw, "%d %d %.8e %.8e\n", int(h.policy), len(h.counts), h.min, h.max); err != nil {
		return err
	}
	for _, c := range h.counts {
		if _, err := fmt.Fprintf(bw, "%d\n", c); err != nil {
			return err
		}
	}
	return bw.Flush()
}

// Read reconstructs a Histogram previously serialized by Write.
func Read(r io.Reader) (*Histogram, error) {
	br := bufio.NewReader(r)

	var policyInt, nBins int
	var min, max float64
	if _, err := fmt.Fscan(br, &policyInt, &nBins, &min, &max); err != nil {
		return nil, fmt.Errorf("histogram: failed to read header: %w", err)
	}

	h, err := New(nBins, min, max, OutOfRangePolicy(policyInt))
	if err != nil {
		return nil, err
	}

	for i := 0; i < nBins; i++ {
		if _, err := fmt.Fscan(br, &h.counts[i]); err != nil {
			return nil, fmt.Errorf("histogram: failed to read bin %d: %w", i, err)
		}
	}

	return h, nil
}
