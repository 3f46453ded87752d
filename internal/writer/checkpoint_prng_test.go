package writer

import (
	"path/filepath"
	"testing"

	"github.com/sarat-asymmetrica/pimc/internal/rng"
)

func TestCheckpointWriteReadRoundTrip(t *testing.T) {
	dir := t.TempDir()
	path := filepath.Join(dir, "checkpoint.toml")

	c := Checkpoint{
		MostRecentBlockIndex:            42,
		MostRecentSavedWorldlineIndex:   40,
		IsAtLeastOneWorldlineIndexSaved: true,
		IsEquilibrationComplete:         true,
	}
	if err := WriteCheckpointAtomic(path, c); err != nil {
		t.Fatalf("WriteCheckpointAtomic: %v", err)
	}

	got, err := ReadCheckpoint(path)
	if err != nil {
		t.Fatalf("ReadCheckpoint: %v", err)
	}
	if got != c {
		t.Errorf("round-tripped checkpoint = %+v, want %+v", got, c)
	}
}

func TestCheckpointWriteAtomicLeavesNoTempFile(t *testing.T) {
	dir := t.TempDir()
	path := filepath.Join(dir, "checkpoint.toml")
	if err := WriteCheckpointAtomic(path, Checkpoint{MostRecentBlockIndex: 1}); err != nil {
		t.Fatal(err)
	}
	if _, err := ReadCheckpoint(path + "_TEMPORARY"); err == nil {
		t.Error("temporary checkpoint file should not survive a successful write")
	}
}

func TestPRNGStateWriteReadRoundTrip(t *testing.T) {
	dir := t.TempDir()
	path := filepath.Join(dir, "prng.json")

	original := rng.NewFromSeed(17)
	for i := 0; i < 5; i++ {
		original.Uniform01()
	}
	if err := WritePRNGStateAtomic(path, original); err != nil {
		t.Fatalf("WritePRNGStateAtomic: %v", err)
	}

	want := make([]float64, 10)
	for i := range want {
		want[i] = original.Uniform01()
	}

	restored := rng.NewFromSeed(999)
	if err := ReadPRNGStateInto(path, restored); err != nil {
		t.Fatalf("ReadPRNGStateInto: %v", err)
	}
	for i, w := range want {
		if got := restored.Uniform01(); got != w {
			t.Fatalf("draw %d after restore = %f, want %f", i, got, w)
		}
	}
}
