package http

import (
	"log/slog"
	"net/http"
)

// handleContacts serves the normalized CRM contact collection.
func (s *Server) handleContacts(w http.ResponseWriter, r *http.Request) {
	contacts, err := s.pipeline.Contacts(r.Context())
	if err != nil {
		slog.ErrorContext(r.Context(), "Contact fetch failed", "error", err)
		writeError(w, http.StatusInternalServerError, err)
		return
	}
	writeSuccess(w, len(contacts), contacts)
}

// handleReconciliation runs the full pipeline and serves the
// per-identity summaries. Every pipeline failure, upstream, schema,
// storage or conversion, collapses into one error envelope; there is
// no partial success.
func (s *Server) handleReconciliation(w http.ResponseWriter, r *http.Request) {
	summaries, err := s.pipeline.Reconcile(r.Context())
	if err != nil {
		slog.ErrorContext(r.Context(), "Reconciliation failed", "error", err)
		writeError(w, http.StatusInternalServerError, err)
		return
	}
	writeSuccess(w, len(summaries), summaries)
}
