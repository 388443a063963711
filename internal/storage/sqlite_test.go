package storage

import (
	"bytes"
	"os"
	"path/filepath"
	"testing"
)

func openTestStore(t *testing.T) *Store {
	t.Helper()
	store, err := Open(filepath.Join(t.TempDir(), "trace.db"))
	if err != nil {
		t.Fatalf("Open() failed: %v", err)
	}
	t.Cleanup(func() { store.Close() })
	return store
}

func testRun(id string) Run {
	return Run{ID: id, Script: "hold 3 release 1", Blend: "copy", Width: 128, Height: 64}
}

func testFrame(runID string, seq uint64) FrameRecord {
	return FrameRecord{
		RunID:     runID,
		Seq:       seq,
		Tick:      seq - 1,
		Motion:    "idle",
		Step:      -1,
		LegPhase:  int(seq % 3),
		Legs:      "A",
		ObstacleX: 128 - 2*int(seq),
		Indicator: seq%2 == 0,
		Pixels:    []byte{byte(seq), 0xff, 0x00},
	}
}

func TestStoreOpenClose(t *testing.T) {
	tmpDir := t.TempDir()
	dbPath := filepath.Join(tmpDir, "nested", "test.db")

	store, err := Open(dbPath)
	if err != nil {
		t.Fatalf("Open() failed: %v", err)
	}
	defer store.Close()

	// Check that the file was created
	if _, err := os.Stat(dbPath); os.IsNotExist(err) {
		t.Error("Database file was not created")
	}
}

func TestStoreReopenKeepsRuns(t *testing.T) {
	dbPath := filepath.Join(t.TempDir(), "test.db")

	store, err := Open(dbPath)
	if err != nil {
		t.Fatalf("Open() failed: %v", err)
	}
	if err := store.BeginRun(testRun("run-1")); err != nil {
		t.Fatalf("BeginRun() failed: %v", err)
	}
	store.Close()

	store, err = Open(dbPath)
	if err != nil {
		t.Fatalf("second Open() failed: %v", err)
	}
	defer store.Close()

	runs, err := store.Runs(10)
	if err != nil {
		t.Fatalf("Runs() failed: %v", err)
	}
	if len(runs) != 1 || runs[0].ID != "run-1" {
		t.Errorf("Runs() = %+v, expected run-1", runs)
	}
}

func TestStoreRecordAndRetrieveFrames(t *testing.T) {
	store := openTestStore(t)

	if err := store.BeginRun(testRun("run-1")); err != nil {
		t.Fatalf("BeginRun() failed: %v", err)
	}

	if err := store.RecordFrame(testFrame("run-1", 1)); err != nil {
		t.Fatalf("RecordFrame() failed: %v", err)
	}
	batch := []FrameRecord{testFrame("run-1", 2), testFrame("run-1", 3)}
	batch[1].Motion = "jumping"
	batch[1].Step = 0
	batch[1].Legs = "jump"
	if err := store.RecordFrames(batch); err != nil {
		t.Fatalf("RecordFrames() failed: %v", err)
	}

	frames, err := store.Frames("run-1")
	if err != nil {
		t.Fatalf("Frames() failed: %v", err)
	}
	if len(frames) != 3 {
		t.Fatalf("Expected 3 frames, got %d", len(frames))
	}

	for i, f := range frames {
		if f.Seq != uint64(i+1) {
			t.Errorf("frame %d Seq = %d, expected %d", i, f.Seq, i+1)
		}
	}

	last := frames[2]
	if last.Motion != "jumping" || last.Step != 0 || last.Legs != "jump" {
		t.Errorf("last frame = %+v, expected jump step 0", last)
	}
	if last.ObstacleX != 122 || last.Tick != 2 || last.Indicator {
		t.Errorf("last frame fields = %+v", last)
	}
	if !bytes.Equal(last.Pixels, []byte{3, 0xff, 0x00}) {
		t.Errorf("Pixels = %v, expected [3 255 0]", last.Pixels)
	}
	if !frames[1].Indicator {
		t.Error("frame 2 Indicator should be true")
	}
}

func TestStoreFrameLookup(t *testing.T) {
	store := openTestStore(t)
	store.BeginRun(testRun("run-1"))
	store.RecordFrame(testFrame("run-1", 1))

	f, err := store.Frame("run-1", 1)
	if err != nil {
		t.Fatalf("Frame() failed: %v", err)
	}
	if f == nil || f.ObstacleX != 126 {
		t.Errorf("Frame() = %+v, expected obstacle at 126", f)
	}

	missing, err := store.Frame("run-1", 99)
	if err != nil {
		t.Fatalf("Frame() for missing seq failed: %v", err)
	}
	if missing != nil {
		t.Errorf("Frame() for missing seq = %+v, expected nil", missing)
	}
}

func TestStoreDuplicateFrameRejected(t *testing.T) {
	store := openTestStore(t)
	store.BeginRun(testRun("run-1"))

	if err := store.RecordFrame(testFrame("run-1", 1)); err != nil {
		t.Fatalf("RecordFrame() failed: %v", err)
	}
	if err := store.RecordFrame(testFrame("run-1", 1)); err == nil {
		t.Error("RecordFrame() with a duplicate seq should fail")
	}

	// A failed batch leaves nothing behind
	err := store.RecordFrames([]FrameRecord{testFrame("run-1", 2), testFrame("run-1", 1)})
	if err == nil {
		t.Fatal("RecordFrames() with a duplicate seq should fail")
	}
	frames, _ := store.Frames("run-1")
	if len(frames) != 1 {
		t.Errorf("Expected 1 frame after rolled back batch, got %d", len(frames))
	}
}

func TestStoreRunsLimitAndCounts(t *testing.T) {
	store := openTestStore(t)

	for _, id := range []string{"a", "b", "c"} {
		if err := store.BeginRun(testRun(id)); err != nil {
			t.Fatalf("BeginRun(%s) failed: %v", id, err)
		}
	}
	store.RecordFrames([]FrameRecord{testFrame("c", 1), testFrame("c", 2)})

	runs, err := store.Runs(2)
	if err != nil {
		t.Fatalf("Runs() failed: %v", err)
	}
	if len(runs) != 2 {
		t.Fatalf("Expected 2 runs, got %d", len(runs))
	}
	// Most recent first
	if runs[0].ID != "c" || runs[0].Frames != 2 {
		t.Errorf("runs[0] = %+v, expected c with 2 frames", runs[0])
	}
	if runs[1].ID != "b" || runs[1].Frames != 0 {
		t.Errorf("runs[1] = %+v, expected b with 0 frames", runs[1])
	}
	if runs[0].Width != 128 || runs[0].Blend != "copy" || runs[0].Script != "hold 3 release 1" {
		t.Errorf("run fields = %+v", runs[0])
	}
}

func TestStoreRunByIDAndDelete(t *testing.T) {
	store := openTestStore(t)
	store.BeginRun(testRun("run-1"))
	store.RecordFrame(testFrame("run-1", 1))

	r, err := store.RunByID("run-1")
	if err != nil {
		t.Fatalf("RunByID() failed: %v", err)
	}
	if r == nil || r.Frames != 1 {
		t.Fatalf("RunByID() = %+v, expected one frame", r)
	}

	if err := store.DeleteRun("run-1"); err != nil {
		t.Fatalf("DeleteRun() failed: %v", err)
	}

	r, err = store.RunByID("run-1")
	if err != nil {
		t.Fatalf("RunByID() after delete failed: %v", err)
	}
	if r != nil {
		t.Errorf("RunByID() after delete = %+v, expected nil", r)
	}
	frames, _ := store.Frames("run-1")
	if len(frames) != 0 {
		t.Errorf("Expected frames to be deleted, got %d", len(frames))
	}
}

func TestStoreDuplicateRunRejected(t *testing.T) {
	store := openTestStore(t)

	if err := store.BeginRun(testRun("run-1")); err != nil {
		t.Fatalf("BeginRun() failed: %v", err)
	}
	if err := store.BeginRun(testRun("run-1")); err == nil {
		t.Error("BeginRun() with a duplicate ID should fail")
	}
}

func TestStoreExpandHomePath(t *testing.T) {
	home := t.TempDir()
	t.Setenv("HOME", home)

	store, err := Open("~/.oled-runner/trace.db")
	if err != nil {
		t.Fatalf("Open() failed: %v", err)
	}
	defer store.Close()

	if _, err := os.Stat(filepath.Join(home, ".oled-runner", "trace.db")); err != nil {
		t.Errorf("Database not created under home: %v", err)
	}
}
