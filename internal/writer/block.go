// Package writer implements the buffered, atomically-published block
// writers, the checkpoint/PRNG-state files, and the worldline snapshot
// format every driver flush touches.
//
// This package provides a single variadic BlockWriter covering any number
// of float columns, rather than separate single/double/triple-value
// writer types, so every block output shares one atomicity guarantee and
// one column-formatting path.
package writer

import (
	"bytes"
	"fmt"
	"os"
)

// DefaultBlockIndexPadding is the zero-padding width for the leading block
// index column.
const DefaultBlockIndexPadding = 5

// DefaultFloatPrecision is the number of digits written after the decimal
// point of each scientific-notation float column (one more significant
// digit precedes it).
const DefaultFloatPrecision = 8

// BlockWriter accumulates newline-delimited rows of (block index, N float
// columns) and publishes them either atomically (write-temp, rename) or by
// plain append.
type BlockWriter struct {
	path         string
	header       string
	precision    int
	indexPadding int
	pending      bytes.Buffer
	published    bool
}

// NewBlockWriter constructs a BlockWriter for path with the given header
// comment block (written once, before the first row).
func NewBlockWriter(path, header string) *BlockWriter {
	return &BlockWriter{
		path:         path,
		header:       header,
		precision:    DefaultFloatPrecision,
		indexPadding: DefaultBlockIndexPadding,
	}
}

// WriteBlock appends one row for blockIndex with the given float columns
// to the writer's pending buffer; it is not visible on disk until Flush or
// FlushAtomic is called.
func (w *BlockWriter) WriteBlock(blockIndex int, values ...float64) {
	fmt.Fprintf(&w.pending, "%0*d", w.indexPadding, blockIndex)
	for _, v := range values {
		fmt.Fprintf(&w.pending, "   %.*e", w.precision, v)
	}
	w.pending.WriteByte('\n')
}

// Flush appends the pending buffer to the file directly (creating it with
// the header first, if needed), without atomic publication. Suitable for
// high-frequency accumulation within a single process where no external
// reader observes the file mid-write.
func (w *BlockWriter) Flush() error {
	if w.pending.Len() == 0 {
		return nil
	}

	if !w.published {
		if err := w.ensureHeader(); err != nil {
			return err
		}
	}

	f, err := os.OpenFile(w.path, os.O_APPEND|os.O_CREATE|os.O_WRONLY, 0o644)
	if err != nil {
		return fmt.Errorf("writer: failed to open %s for append: %w", w.path, err)
	}
	defer f.Close()

	if _, err := f.Write(w.pending.Bytes()); err != nil {
		return fmt.Errorf("writer: failed to append to %s: %w", w.path, err)
	}

	w.published = true
	w.pending.Reset()
	return nil
}

// FlushAtomic publishes the pending buffer via write-temp-then-rename: the
// existing file contents (or just the header, if the file does not exist
// yet) plus the new rows are written to "<path>_TEMPORARY", which is then
// renamed over path. Readers of path always observe either the pre-flush
// or post-flush state, never a partial one.
func (w *BlockWriter) FlushAtomic() error {
	if w.pending.Len() == 0 {
		return nil
	}

	var existing []byte
	if data, err := os.ReadFile(w.path); err == nil {
		existing = data
	} else if !os.IsNotExist(err) {
		return fmt.Errorf("writer: failed to read %s: %w", w.path, err)
	} else {
		existing = []byte(w.header)
	}

	combined := append(existing, w.pending.Bytes()...)

	tempPath := w.path + "_TEMPORARY"
	if err := os.WriteFile(tempPath, combined, 0o644); err != nil {
		return fmt.Errorf("writer: failed to write %s: %w", tempPath, err)
	}
	if err := os.Rename(tempPath, w.path); err != nil {
		return fmt.Errorf("writer: failed to publish %s: %w", w.path, err)
	}

	w.published = true
	w.pending.Reset()
	return nil
}

func (w *BlockWriter) ensureHeader() error {
	if _, err := os.Stat(w.path); err == nil {
		return nil
	} else if !os.IsNotExist(err) {
		return fmt.Errorf("writer: failed to stat %s: %w", w.path, err)
	}
	if err := os.WriteFile(w.path, []byte(w.header), 0o644); err != nil {
		return fmt.Errorf("writer: failed to write header to %s: %w", w.path, err)
	}
	return nil
}

// SetPrecision overrides the float column precision.
func (w *BlockWriter) SetPrecision(precision int) {
	if precision >= 0 {
		w.precision = precision
	}
}

// SetBlockIndexPadding overrides the block index zero-padding width.
func (w *BlockWriter) SetBlockIndexPadding(padding int) {
	if padding > 0 {
		w.indexPadding = padding
	}
}
