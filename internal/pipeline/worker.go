package pipeline

import (
	"bytes"
	"context"
	"fmt"
	"log/slog"

	"github.com/dgallion1/docslice/internal/chunker"
	"github.com/dgallion1/docslice/internal/parser"
	"github.com/dgallion1/docslice/internal/structure"
)

// Worker processes a single document job: parse, detect structure, chunk.
type Worker struct {
	detector    *structure.Detector
	chunker     *chunker.Chunker
	log         *slog.Logger
	pdfFallback bool
}

func NewWorker(detector *structure.Detector, ch *chunker.Chunker, log *slog.Logger, pdfFallback bool) *Worker {
	return &Worker{
		detector:    detector,
		chunker:     ch,
		log:         log,
		pdfFallback: pdfFallback,
	}
}

// Process runs the full ingest pipeline for a job.
func (w *Worker) Process(ctx context.Context, job *Job) {
	log := w.log.With("job_id", job.ID, "doc_id", job.DocID)

	// Phase 1: Parse.
	job.SetStatus(StatusParsing, "parsing")
	p, err := parser.ForFile(job.Filename)
	if err != nil {
		log.Error("unsupported format", "error", err)
		job.AddError(err.Error())
		job.SetStatus(StatusFailed, "parsing")
		return
	}
	if pp, ok := p.(*parser.PDFParser); ok {
		pp.FallbackPdftotext = w.pdfFallback
	}

	doc, err := p.Parse(bytes.NewReader(job.FileData()), job.Filename)
	if err != nil {
		log.Error("parse failed", "error", err)
		job.AddError(fmt.Sprintf("parse: %s", err))
		job.SetStatus(StatusFailed, "parsing")
		return
	}
	if job.Title == "" {
		job.SetTitle(doc.Title)
	}
	job.SetContentHash(ContentHashHex([]byte(doc.Text)))

	if ctx.Err() != nil {
		job.AddError("canceled")
		job.SetStatus(StatusFailed, "parsing")
		return
	}

	// Phase 2: Detect structure.
	job.SetStatus(StatusDetecting, "detecting")
	st := w.detector.Detect(doc.Text, doc.Format)
	log.Info("structure detected",
		"type", st.Type,
		"confidence", st.Confidence,
		"articles", len(st.Articles),
		"sections", len(st.Sections),
		"chapters", len(st.Chapters),
	)

	// Phase 3: Chunk.
	job.SetStatus(StatusChunking, "chunking")
	opts := job.Options()
	opts.Format = doc.Format
	chunks := w.chunker.Chunk(doc.Text, &st, opts)
	job.SetResult(&st, chunks)
	if len(chunks) == 0 {
		log.Warn("no chunks produced", "filename", job.Filename)
	} else {
		log.Info("chunked document", "chunks", len(chunks))
	}

	job.SetStatus(StatusCompleted, "done")
}
