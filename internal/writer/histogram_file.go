package writer

import (
	"bytes"
	"fmt"
	"os"

	"github.com/sarat-asymmetrica/pimc/internal/histogram"
)

// WriteHistogramAtomic rewrites h's entire contents to path via
// write-temp-then-rename. Histograms are always rewritten whole, never
// appended, since a single block's update can touch every bin.
func WriteHistogramAtomic(path string, h *histogram.Histogram) error {
	var buf bytes.Buffer
	if err := h.Write(&buf); err != nil {
		return fmt.Errorf("writer: failed to serialize histogram: %w", err)
	}

	tempPath := path + "_TEMPORARY"
	if err := os.WriteFile(tempPath, buf.Bytes(), 0o644); err != nil {
		return fmt.Errorf("writer: failed to write %s: %w", tempPath, err)
	}
	if err := os.Rename(tempPath, path); err != nil {
		return fmt.Errorf("writer: failed to publish histogram %s: %w", path, err)
	}
	return nil
}

// ReadHistogramFile parses a histogram file previously written by
// WriteHistogramAtomic.
func ReadHistogramFile(path string) (*histogram.Histogram, error) {
	f, err := os.Open(path)
	if err != nil {
		return nil, fmt.Errorf("writer: failed to open %s: %w", path, err)
	}
	defer f.Close()

	h, err := histogram.Read(f)
	if err != nil {
		return nil, fmt.Errorf("writer: failed to parse histogram %s: %w", path, err)
	}
	return h, nil
}
