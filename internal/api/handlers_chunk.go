package api

import (
	"encoding/json"
	"net/http"

	"github.com/dgallion1/docslice/internal/chunker"
	"github.com/dgallion1/docslice/internal/structure"
)

type detectRequest struct {
	Text   string `json:"text"`
	Format string `json:"format"`
}

type chunkRequest struct {
	Text              string `json:"text"`
	Format            string `json:"format"`
	TargetTokens      int    `json:"target_tokens"`
	MaxTokens         int    `json:"max_tokens"`
	MinTokens         int    `json:"min_tokens"`
	PreserveStructure *bool  `json:"preserve_structure"`
}

// structureSummary is the compact detection result returned alongside
// chunks; the full pattern lists are available from /api/detect.
type structureSummary struct {
	Type       structure.DocType `json:"type"`
	Confidence float64           `json:"confidence"`
	Articles   int               `json:"articles"`
	Sections   int               `json:"sections"`
	Chapters   int               `json:"chapters"`
}

func summarize(st structure.DocumentStructure) structureSummary {
	return structureSummary{
		Type:       st.Type,
		Confidence: st.Confidence,
		Articles:   len(st.Articles),
		Sections:   len(st.Sections),
		Chapters:   len(st.Chapters),
	}
}

func (s *Server) handleDetect(w http.ResponseWriter, r *http.Request) {
	r.Body = http.MaxBytesReader(w, r.Body, s.cfg.MaxUploadBytes)

	var req detectRequest
	if err := json.NewDecoder(r.Body).Decode(&req); err != nil {
		jsonError(w, "invalid request body: "+err.Error(), http.StatusBadRequest)
		return
	}

	st := s.detector.Detect(req.Text, structure.ParseFormat(req.Format))
	writeJSON(w, http.StatusOK, st)
}

func (s *Server) handleChunk(w http.ResponseWriter, r *http.Request) {
	r.Body = http.MaxBytesReader(w, r.Body, s.cfg.MaxUploadBytes)

	var req chunkRequest
	if err := json.NewDecoder(r.Body).Decode(&req); err != nil {
		jsonError(w, "invalid request body: "+err.Error(), http.StatusBadRequest)
		return
	}

	format := structure.ParseFormat(req.Format)
	opts := s.cfg.ChunkOptions()
	opts.Format = format
	if req.TargetTokens > 0 {
		opts.TargetTokens = req.TargetTokens
	}
	if req.MaxTokens > 0 {
		opts.MaxTokens = req.MaxTokens
	}
	if req.MinTokens > 0 {
		opts.MinTokens = req.MinTokens
	}
	if req.PreserveStructure != nil {
		opts.PreserveStructure = *req.PreserveStructure
	}

	st := s.detector.Detect(req.Text, format)
	chunks := s.chunker.Chunk(req.Text, &st, opts)
	if chunks == nil {
		chunks = []chunker.Chunk{}
	}

	writeJSON(w, http.StatusOK, map[string]any{
		"structure": summarize(st),
		"chunks":    chunks,
		"count":     len(chunks),
	})
}

func writeJSON(w http.ResponseWriter, status int, v any) {
	w.Header().Set("Content-Type", "application/json")
	w.WriteHeader(status)
	json.NewEncoder(w).Encode(v)
}
