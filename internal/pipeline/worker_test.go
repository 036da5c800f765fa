package pipeline

import (
	"context"
	"io"
	"log/slog"
	"testing"

	"github.com/dgallion1/docslice/internal/chunker"
	"github.com/dgallion1/docslice/internal/structure"
)

func testWorker() *Worker {
	return NewWorker(
		structure.NewDetector(structure.DefaultConfig()),
		chunker.New(nil),
		slog.New(slog.NewTextHandler(io.Discard, nil)),
		false,
	)
}

func TestWorker_ProcessText(t *testing.T) {
	job := &Job{ID: NewJobID(), DocID: "doc1", Filename: "report.txt"}
	job.SetFileData([]byte("Una prima frase di prova. Una seconda frase di prova."))
	job.SetOptions(chunker.DefaultOptions())

	testWorker().Process(context.Background(), job)

	snap := job.Snapshot()
	if snap.Status != StatusCompleted {
		t.Fatalf("expected completed, got %s (errors: %v)", snap.Status, snap.Progress.Errors)
	}
	if snap.Title != "report" {
		t.Errorf("expected title from filename, got %q", snap.Title)
	}
	if len(snap.ContentHash) != 64 {
		t.Errorf("expected hex sha256 content hash, got %q", snap.ContentHash)
	}
	st, chunks := job.Result()
	if st == nil {
		t.Fatal("expected a detection result")
	}
	if len(chunks) != 1 {
		t.Errorf("expected 1 chunk, got %d", len(chunks))
	}
	if snap.Progress.TotalChunks != len(chunks) {
		t.Errorf("progress total %d does not match chunks %d", snap.Progress.TotalChunks, len(chunks))
	}
	if job.FileData() != nil {
		t.Error("file data should be released after processing")
	}
}

func TestWorker_ProcessMarkdownUsesSections(t *testing.T) {
	job := &Job{ID: NewJobID(), DocID: "doc2", Filename: "guide.md"}
	job.SetFileData([]byte("# Intro\nOpening prose here.\n\n## Usage\nUsage prose here.\n"))
	job.SetOptions(chunker.DefaultOptions())

	testWorker().Process(context.Background(), job)

	if got := job.Snapshot().Status; got != StatusCompleted {
		t.Fatalf("expected completed, got %s", got)
	}
	_, chunks := job.Result()
	if len(chunks) != 2 {
		t.Fatalf("expected one chunk per section, got %d", len(chunks))
	}
	if chunks[0].Metadata.SectionTitle != "Intro" || chunks[1].Metadata.SectionTitle != "Usage" {
		t.Errorf("unexpected section tags: %q, %q",
			chunks[0].Metadata.SectionTitle, chunks[1].Metadata.SectionTitle)
	}
}

func TestWorker_UnsupportedExtensionFails(t *testing.T) {
	job := &Job{ID: NewJobID(), Filename: "binary.exe"}
	job.SetFileData([]byte{0x00, 0x01})

	testWorker().Process(context.Background(), job)

	snap := job.Snapshot()
	if snap.Status != StatusFailed {
		t.Fatalf("expected failed, got %s", snap.Status)
	}
	if len(snap.Progress.Errors) == 0 {
		t.Error("expected a recorded error")
	}
}

func TestWorker_CanceledContext(t *testing.T) {
	job := &Job{ID: NewJobID(), Filename: "late.txt"}
	job.SetFileData([]byte("Testo qualunque."))
	job.SetOptions(chunker.DefaultOptions())

	ctx, cancel := context.WithCancel(context.Background())
	cancel()
	testWorker().Process(ctx, job)

	if got := job.Snapshot().Status; got != StatusFailed {
		t.Errorf("expected failed on canceled context, got %s", got)
	}
}
