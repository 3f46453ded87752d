package writer

import "fmt"

// TimingWriter records one row per block of (seconds, milliseconds,
// microseconds) elapsed wallclock, space-padded integer columns, e.g.
// "00205         12        345        678" for block 205 taking 12s 345ms
// 678us.
type TimingWriter struct {
	block *BlockWriterInt
}

// NewTimingWriter constructs a TimingWriter over path.
func NewTimingWriter(path string) *TimingWriter {
	header := "# block index, elapsed seconds, milliseconds, microseconds\n"
	return &TimingWriter{block: NewBlockWriterInt(path, header)}
}

// WriteBlock records blockIndex's elapsed duration, already decomposed
// into whole seconds/milliseconds/microseconds.
func (w *TimingWriter) WriteBlock(blockIndex, seconds, milliseconds, microseconds int) {
	w.block.WriteBlock(blockIndex, seconds, milliseconds, microseconds)
}

// FlushAtomic publishes pending rows via write-temp-then-rename.
func (w *TimingWriter) FlushAtomic() error { return w.block.FlushAtomic() }

// Flush appends pending rows directly, without atomic publication.
func (w *TimingWriter) Flush() error { return w.block.Flush() }

// BlockWriterInt is BlockWriter's integer-column counterpart, used for
// timing rows and other non-floating-point block data.
type BlockWriterInt struct {
	inner *BlockWriter
}

// NewBlockWriterInt constructs an integer-column block writer.
func NewBlockWriterInt(path, header string) *BlockWriterInt {
	return &BlockWriterInt{inner: NewBlockWriter(path, header)}
}

// WriteBlock appends one row of integer columns, each a single space
// followed by the value right-aligned in a 10-character field.
func (w *BlockWriterInt) WriteBlock(blockIndex int, values ...int) {
	fmt.Fprintf(&w.inner.pending, "%0*d", w.inner.indexPadding, blockIndex)
	for _, v := range values {
		fmt.Fprintf(&w.inner.pending, " %10d", v)
	}
	w.inner.pending.WriteByte('\n')
}

// FlushAtomic publishes pending rows via write-temp-then-rename.
func (w *BlockWriterInt) FlushAtomic() error { return w.inner.FlushAtomic() }

// Flush appends pending rows directly, without atomic publication.
func (w *BlockWriterInt) Flush() error { return w.inner.Flush() }
