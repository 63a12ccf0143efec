package httpapi

import (
	"encoding/json"
	"net/http"
	"time"

	"github.com/dmitrijs2005/timevault/internal/server/links"
	"github.com/gorilla/mux"
)

type shareRequest struct {
	ExpiresAt time.Time `json:"expiresAt"`
	MaxViews  int       `json:"maxViews"`
	Password  string    `json:"password,omitempty"`
}

// handleVaultShare mints an access link for the vault item. The raw token
// appears only in this response.
func (s *HTTPServer) handleVaultShare(w http.ResponseWriter, r *http.Request) {
	var req shareRequest
	if err := json.NewDecoder(r.Body).Decode(&req); err != nil {
		writeError(w, http.StatusBadRequest, "invalid json body")
		return
	}

	issued, err := s.links.Issue(r.Context(), links.IssueParams{
		VaultItemID: mux.Vars(r)["id"],
		OwnerID:     userIDFrom(r),
		ExpiresAt:   req.ExpiresAt,
		MaxViews:    req.MaxViews,
		Password:    req.Password,
	})
	if err != nil {
		writeServiceError(w, err)
		return
	}

	writeJSON(w, http.StatusCreated, map[string]string{
		"linkId":   issued.LinkID,
		"url":      issued.URL,
		"rawToken": issued.RawToken,
	})
}

func (s *HTTPServer) handleLinkRevoke(w http.ResponseWriter, r *http.Request) {
	if err := s.links.Revoke(r.Context(), mux.Vars(r)["id"], userIDFrom(r)); err != nil {
		writeServiceError(w, err)
		return
	}

	writeJSON(w, http.StatusOK, map[string]bool{"ok": true})
}

type linkStatusResponse struct {
	ID           string    `json:"id"`
	Expired      bool      `json:"expired"`
	Exhausted    bool      `json:"exhausted"`
	Revoked      bool      `json:"revoked"`
	CurrentViews int       `json:"currentViews"`
	MaxViews     int       `json:"maxViews"`
	ExpiresAt    time.Time `json:"expiresAt"`
}

func (s *HTTPServer) handleLinkStatus(w http.ResponseWriter, r *http.Request) {
	st, err := s.links.Status(r.Context(), mux.Vars(r)["id"], userIDFrom(r))
	if err != nil {
		writeServiceError(w, err)
		return
	}

	writeJSON(w, http.StatusOK, linkStatusResponse{
		ID:           st.ID,
		Expired:      st.Expired,
		Exhausted:    st.Exhausted,
		Revoked:      st.Revoked,
		CurrentViews: st.CurrentViews,
		MaxViews:     st.MaxViews,
		ExpiresAt:    st.ExpiresAt,
	})
}
