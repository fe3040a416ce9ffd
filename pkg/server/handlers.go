package server

import (
	"errors"
	"net/http"

	"go.uber.org/zap"

	"github.com/MaiMohamed12/AI-Voice-Agent/pkg/embedder"
)

type queryRequest struct {
	Query string `json:"query" validate:"required,notblank,max=1000"`
}

type lookupResponse struct {
	Context string `json:"context"`
}

type tokenRequest struct {
	Room     string `json:"room" validate:"max=128"`
	Identity string `json:"identity" validate:"max=128"`
}

// GET /
func (s *Server) handleIndex(w http.ResponseWriter, r *http.Request) {
	writeJSON(w, http.StatusOK, map[string]interface{}{
		"service": serviceName,
		"endpoints": map[string]string{
			"GET /health":         "Health check",
			"POST /token":         "Generate access token",
			"POST /api/v1/answer": "Best single answer with confidence",
			"POST /api/v1/lookup": "Context block for the language model tool call",
		},
	})
}

// GET /health
func (s *Server) handleHealth(w http.ResponseWriter, r *http.Request) {
	resp := map[string]interface{}{
		"status":  "ok",
		"service": serviceName,
		"records": s.faq.Corpus().Len(),
		"tokens":  s.issuer != nil,
	}
	if s.issuer != nil {
		resp["livekit_url"] = s.issuer.URL()
	}
	writeJSON(w, http.StatusOK, resp)
}

// POST /token  { "room": "...", "identity": "..." }
func (s *Server) handleToken(w http.ResponseWriter, r *http.Request) {
	if s.issuer == nil {
		writeError(w, http.StatusServiceUnavailable, "token issuance is not configured", nil)
		return
	}

	var req tokenRequest
	if details, err := s.decodeAndValidate(r, &req, true); err != nil {
		writeError(w, http.StatusBadRequest, err.Error(), details)
		return
	}

	grant, err := s.issuer.Issue(req.Room, req.Identity)
	if err != nil {
		s.logger.Error("error generating token", zap.Error(err))
		writeError(w, http.StatusInternalServerError, "failed to generate token", nil)
		return
	}

	s.logger.Info("token generated",
		zap.String("identity", grant.Identity),
		zap.String("room", grant.Room))
	writeJSON(w, http.StatusOK, grant)
}

// POST /api/v1/answer  { "query": "your question" }
func (s *Server) handleAnswer(w http.ResponseWriter, r *http.Request) {
	var req queryRequest
	if details, err := s.decodeAndValidate(r, &req, false); err != nil {
		writeError(w, http.StatusBadRequest, err.Error(), details)
		return
	}

	resp, err := s.faq.GetAnswer(r.Context(), req.Query)
	if err != nil {
		s.writeSearchError(w, err)
		return
	}
	writeJSON(w, http.StatusOK, resp)
}

// POST /api/v1/lookup  { "query": "your question" }
func (s *Server) handleLookup(w http.ResponseWriter, r *http.Request) {
	var req queryRequest
	if details, err := s.decodeAndValidate(r, &req, false); err != nil {
		writeError(w, http.StatusBadRequest, err.Error(), details)
		return
	}

	text, err := s.faq.LookupInfo(r.Context(), req.Query)
	if err != nil {
		s.writeSearchError(w, err)
		return
	}
	writeJSON(w, http.StatusOK, lookupResponse{Context: text})
}

func (s *Server) writeSearchError(w http.ResponseWriter, err error) {
	if errors.Is(err, embedder.ErrEmbedding) {
		writeError(w, http.StatusBadGateway, "embedding service failed", nil)
		return
	}
	s.logger.Error("query failed", zap.Error(err))
	writeError(w, http.StatusInternalServerError, "query failed", nil)
}
