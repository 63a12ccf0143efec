package httpapi

import (
	"encoding/json"
	"net/http"
	"time"

	"github.com/dmitrijs2005/timevault/internal/server/links"
	"github.com/dmitrijs2005/timevault/internal/server/models"
	"github.com/gorilla/mux"
)

type accessRequest struct {
	Password string `json:"password"`
}

type accessMeta struct {
	RemainingViews int       `json:"remainingViews"`
	ExpiresAt      time.Time `json:"expiresAt"`
}

type accessResponse struct {
	Content string     `json:"content"`
	Meta    accessMeta `json:"meta"`
}

// handleAccess is the public redemption route. GET takes the password from
// the query string; POST takes it from the JSON body.
func (s *HTTPServer) handleAccess(w http.ResponseWriter, r *http.Request) {
	password := r.URL.Query().Get("password")
	if r.Method == http.MethodPost {
		var req accessRequest
		if err := json.NewDecoder(r.Body).Decode(&req); err == nil && req.Password != "" {
			password = req.Password
		}
	}

	meta := links.RequestMeta{
		IPAddress: clientIP(r),
		UserAgent: r.UserAgent(),
	}

	result, err := s.links.Redeem(r.Context(), mux.Vars(r)["token"], password, meta)
	if err != nil {
		writeServiceError(w, err)
		return
	}

	if result.Outcome != models.OutcomeAllowed {
		status, msg := denialStatus(result.Outcome)
		writeError(w, status, msg)
		return
	}

	writeJSON(w, http.StatusOK, accessResponse{
		Content: result.Content,
		Meta: accessMeta{
			RemainingViews: result.RemainingViews,
			ExpiresAt:      result.ExpiresAt,
		},
	})
}

// denialStatus maps non-allowed outcomes onto HTTP statuses. Internal
// faults get a deliberately generic body.
func denialStatus(outcome models.Outcome) (int, string) {
	switch outcome {
	case models.OutcomeDeniedInvalidToken:
		return http.StatusNotFound, "Invalid token"
	case models.OutcomeDeniedRevoked:
		return http.StatusForbidden, "This link has been revoked"
	case models.OutcomeDeniedExpired:
		return http.StatusGone, "This link has expired"
	case models.OutcomeDeniedViewsExhausted, models.OutcomeDeniedRaceOrLimit:
		return http.StatusTooManyRequests, "This link cannot be accessed"
	case models.OutcomeDeniedPasswordRequired:
		return http.StatusUnauthorized, "Password required"
	case models.OutcomeDeniedWrongPassword:
		return http.StatusUnauthorized, "Invalid password"
	default:
		return http.StatusInternalServerError, "internal error"
	}
}
