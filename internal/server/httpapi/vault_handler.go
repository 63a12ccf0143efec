package httpapi

import (
	"encoding/json"
	"net/http"
	"time"

	"github.com/dmitrijs2005/timevault/internal/server/models"
	"github.com/dmitrijs2005/timevault/internal/server/vaults"
	"github.com/gorilla/mux"
)

type vaultCreateRequest struct {
	Title   string `json:"title"`
	Content string `json:"content"`
}

type vaultItemResponse struct {
	ID        string `json:"id"`
	Title     string `json:"title"`
	CreatedAt string `json:"createdAt"`
}

func itemResponse(m *vaults.ItemMeta) vaultItemResponse {
	return vaultItemResponse{ID: m.ID, Title: m.Title, CreatedAt: m.CreatedAt}
}

func (s *HTTPServer) handleVaultCreate(w http.ResponseWriter, r *http.Request) {
	var req vaultCreateRequest
	if err := json.NewDecoder(r.Body).Decode(&req); err != nil {
		writeError(w, http.StatusBadRequest, "invalid json body")
		return
	}

	meta, err := s.vaults.Create(r.Context(), userIDFrom(r), req.Title, req.Content)
	if err != nil {
		writeServiceError(w, err)
		return
	}

	writeJSON(w, http.StatusCreated, itemResponse(meta))
}

func (s *HTTPServer) handleVaultGet(w http.ResponseWriter, r *http.Request) {
	meta, err := s.vaults.Get(r.Context(), mux.Vars(r)["id"], userIDFrom(r))
	if err != nil {
		writeServiceError(w, err)
		return
	}

	writeJSON(w, http.StatusOK, itemResponse(meta))
}

func (s *HTTPServer) handleVaultList(w http.ResponseWriter, r *http.Request) {
	metas, err := s.vaults.List(r.Context(), userIDFrom(r))
	if err != nil {
		writeServiceError(w, err)
		return
	}

	items := make([]vaultItemResponse, 0, len(metas))
	for _, m := range metas {
		items = append(items, itemResponse(m))
	}

	writeJSON(w, http.StatusOK, items)
}

type auditRecordResponse struct {
	AccessedAt time.Time `json:"accessedAt"`
	Success    bool      `json:"success"`
	Outcome    string    `json:"outcome"`
	IPAddress  string    `json:"ipAddress"`
	UserAgent  string    `json:"userAgent"`
}

func (s *HTTPServer) handleVaultLogs(w http.ResponseWriter, r *http.Request) {
	records, err := s.vaults.Logs(r.Context(), mux.Vars(r)["id"], userIDFrom(r))
	if err != nil {
		writeServiceError(w, err)
		return
	}

	writeJSON(w, http.StatusOK, auditResponses(records))
}

func auditResponses(records []*models.AuditRecord) []auditRecordResponse {
	out := make([]auditRecordResponse, 0, len(records))
	for _, rec := range records {
		out = append(out, auditRecordResponse{
			AccessedAt: rec.AccessedAt,
			Success:    rec.Success,
			Outcome:    string(rec.Outcome),
			IPAddress:  rec.IPAddress,
			UserAgent:  rec.UserAgent,
		})
	}
	return out
}
