package pipeline

import (
	"testing"
	"time"

	"github.com/dgallion1/docslice/internal/chunker"
	"github.com/dgallion1/docslice/internal/structure"
)

func TestJob_StatusAndSnapshot(t *testing.T) {
	job := &Job{ID: "j1", DocID: "d1", Filename: "a.txt", CreatedAt: time.Now()}
	job.SetStatus(StatusParsing, "parsing")
	job.SetTitle("A Title")
	job.SetContentHash("abc123")

	snap := job.Snapshot()
	if snap.Status != StatusParsing || snap.Phase != "parsing" {
		t.Errorf("unexpected status %s/%s", snap.Status, snap.Phase)
	}
	if snap.Title != "A Title" || snap.ContentHash != "abc123" {
		t.Errorf("unexpected title/hash: %q/%q", snap.Title, snap.ContentHash)
	}
	if snap.Progress.Errors == nil {
		t.Error("snapshot errors must serialize as an empty list, not null")
	}
}

func TestJob_SetResultReleasesFileData(t *testing.T) {
	job := &Job{ID: "j2"}
	job.SetFileData([]byte("raw bytes"))

	st := &structure.DocumentStructure{Type: structure.TypeUnknown}
	chunks := []chunker.Chunk{{Content: "one"}, {Content: "two"}}
	job.SetResult(st, chunks)

	if job.FileData() != nil {
		t.Error("file data should be released after SetResult")
	}
	gotSt, gotChunks := job.Result()
	if gotSt != st || len(gotChunks) != 2 {
		t.Error("result does not round-trip")
	}
	if job.Snapshot().Progress.TotalChunks != 2 {
		t.Errorf("expected 2 total chunks, got %d", job.Snapshot().Progress.TotalChunks)
	}
}

func TestJob_AddError(t *testing.T) {
	job := &Job{ID: "j3"}
	job.AddError("first")
	job.AddError("second")
	snap := job.Snapshot()
	if len(snap.Progress.Errors) != 2 || snap.Progress.Errors[1] != "second" {
		t.Errorf("unexpected errors: %v", snap.Progress.Errors)
	}
}

func TestJobStore_PutGetCleanup(t *testing.T) {
	store := NewJobStore(50 * time.Millisecond)

	fresh := &Job{ID: "fresh", UpdatedAt: time.Now()}
	stale := &Job{ID: "stale", UpdatedAt: time.Now().Add(-time.Minute)}
	store.Put(fresh)
	store.Put(stale)

	if store.Get("fresh") == nil || store.Get("stale") == nil {
		t.Fatal("both jobs should be retrievable before cleanup")
	}
	if store.Get("missing") != nil {
		t.Error("unknown id should return nil")
	}

	store.Cleanup()
	if store.Get("stale") != nil {
		t.Error("expired job should have been evicted")
	}
	if store.Get("fresh") == nil {
		t.Error("fresh job should survive cleanup")
	}
}

func TestContentHashHex(t *testing.T) {
	// SHA-256 of "abc".
	want := "ba7816bf8f01cfea414140de5dae2223b00361a396177a9cb410ff61f20015ad"
	if got := ContentHashHex([]byte("abc")); got != want {
		t.Errorf("expected %s, got %s", want, got)
	}
	if ContentHashHex(nil) == ContentHashHex([]byte("abc")) {
		t.Error("different inputs must hash differently")
	}
}
