package writer

import (
	"bufio"
	"fmt"
	"os"
	"strconv"
	"strings"

	"github.com/sarat-asymmetrica/pimc/internal/geom"
	"github.com/sarat-asymmetrica/pimc/internal/worldline"
)

const worldlineSnapshotHeader = "# block_index ndim n_particles n_timeslices box_side_0 ... box_side_{ndim-1}\n# followed by n_timeslices * n_particles rows of ndim floats, timeslice-major\n"

// WriteWorldlineSnapshotAtomic serializes w's full bead array to path via
// write-temp-then-rename: a header comment block, a metadata line, then
// one line per (timeslice, particle) bead in timeslice-major order.
func WriteWorldlineSnapshotAtomic(path string, blockIndex int, box geom.Box, w *worldline.Worldlines) error {
	var sb strings.Builder
	sb.WriteString(worldlineSnapshotHeader)

	fmt.Fprintf(&sb, "%d %d %d %d", blockIndex, geom.NDIM, w.NParticles(), w.NTimeslices())
	for d := 0; d < geom.NDIM; d++ {
		fmt.Fprintf(&sb, " %.17g", box.At(d))
	}
	sb.WriteByte('\n')

	for t := 0; t < w.NTimeslices(); t++ {
		for _, p := range w.Timeslice(t) {
			fmt.Fprintf(&sb, "%.17g %.17g %.17g\n", p.X, p.Y, p.Z)
		}
	}

	tempPath := path + "_TEMPORARY"
	if err := os.WriteFile(tempPath, []byte(sb.String()), 0o644); err != nil {
		return fmt.Errorf("writer: failed to write %s: %w", tempPath, err)
	}
	if err := os.Rename(tempPath, path); err != nil {
		return fmt.Errorf("writer: failed to publish worldline snapshot %s: %w", path, err)
	}
	return nil
}

// ReadWorldlineSnapshot parses a snapshot file previously written by
// WriteWorldlineSnapshotAtomic, returning the block index it was taken at,
// the box it was taken in, and the reconstructed Worldlines.
func ReadWorldlineSnapshot(path string) (int, geom.Box, *worldline.Worldlines, error) {
	f, err := os.Open(path)
	if err != nil {
		return 0, geom.Box{}, nil, fmt.Errorf("writer: failed to open %s: %w", path, err)
	}
	defer f.Close()

	scanner := bufio.NewScanner(f)
	var metaLine string
	for scanner.Scan() {
		line := scanner.Text()
		if strings.HasPrefix(line, "#") {
			continue
		}
		metaLine = line
		break
	}
	if metaLine == "" {
		return 0, geom.Box{}, nil, fmt.Errorf("writer: %s has no metadata line", path)
	}

	fields := strings.Fields(metaLine)
	if len(fields) < 4+geom.NDIM {
		return 0, geom.Box{}, nil, fmt.Errorf("writer: %s metadata line has %d fields, want at least %d", path, len(fields), 4+geom.NDIM)
	}

	blockIndex, err := strconv.Atoi(fields[0])
	if err != nil {
		return 0, geom.Box{}, nil, fmt.Errorf("writer: %s bad block index: %w", path, err)
	}
	nParticles, err := strconv.Atoi(fields[2])
	if err != nil {
		return 0, geom.Box{}, nil, fmt.Errorf("writer: %s bad particle count: %w", path, err)
	}
	nTimeslices, err := strconv.Atoi(fields[3])
	if err != nil {
		return 0, geom.Box{}, nil, fmt.Errorf("writer: %s bad timeslice count: %w", path, err)
	}

	var sides [geom.NDIM]float64
	for d := 0; d < geom.NDIM; d++ {
		v, err := strconv.ParseFloat(fields[4+d], 64)
		if err != nil {
			return 0, geom.Box{}, nil, fmt.Errorf("writer: %s bad box side %d: %w", path, d, err)
		}
		sides[d] = v
	}
	box, err := geom.NewBox(sides[0], sides[1], sides[2])
	if err != nil {
		return 0, geom.Box{}, nil, fmt.Errorf("writer: %s bad box: %w", path, err)
	}

	beads := make([]geom.Point, 0, nTimeslices*nParticles)
	for scanner.Scan() {
		line := strings.TrimSpace(scanner.Text())
		if line == "" {
			continue
		}
		fields := strings.Fields(line)
		if len(fields) != geom.NDIM {
			return 0, geom.Box{}, nil, fmt.Errorf("writer: %s bead row has %d fields, want %d", path, len(fields), geom.NDIM)
		}
		x, errX := strconv.ParseFloat(fields[0], 64)
		y, errY := strconv.ParseFloat(fields[1], 64)
		z, errZ := strconv.ParseFloat(fields[2], 64)
		if errX != nil || errY != nil || errZ != nil {
			return 0, geom.Box{}, nil, fmt.Errorf("writer: %s bad bead row %q", path, line)
		}
		beads = append(beads, geom.Point{X: x, Y: y, Z: z})
	}
	if err := scanner.Err(); err != nil {
		return 0, geom.Box{}, nil, fmt.Errorf("writer: failed reading %s: %w", path, err)
	}
	if len(beads) != nTimeslices*nParticles {
		return 0, geom.Box{}, nil, fmt.Errorf("writer: %s has %d bead rows, want %d", path, len(beads), nTimeslices*nParticles)
	}

	initial := beads[:nParticles]
	w, err := worldline.New(nTimeslices, initial)
	if err != nil {
		return 0, geom.Box{}, nil, fmt.Errorf("writer: failed to reconstruct worldlines from %s: %w", path, err)
	}
	for t := 0; t < nTimeslices; t++ {
		for i := 0; i < nParticles; i++ {
			w.Set(t, i, beads[t*nParticles+i])
		}
	}

	return blockIndex, box, w, nil
}
