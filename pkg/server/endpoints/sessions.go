package endpoints

import (
	"encoding/json"
	"net"
	"net/http"
	"strings"

	"github.com/gorilla/mux"

	"github.com/rolevend/rolevend/pkg/identity"
	"github.com/rolevend/rolevend/pkg/model"
	"github.com/rolevend/rolevend/pkg/server"
)

// requestBody is the wire shape of a role request. The requester identity
// and MFA flag come from the verified token, never from the body.
type requestBody struct {
	Tier          model.PermissionTier `json:"tier"`
	DurationHours int                  `json:"duration_hours"`
	Justification string               `json:"justification"`
}

func RegisterSessionsEndpoints(srv *server.Server) {
	vendor := srv.Vendor

	sessions := srv.Router.PathPrefix("/projects/{project}/sessions").Subrouter()
	sessions.Use(srv.Authn.Middleware)

	sessions.HandleFunc("", func(w http.ResponseWriter, r *http.Request) {
		caller, ok := identity.FromContext(r.Context())
		if !ok {
			respondWithError(w, http.StatusUnauthorized, "no identity")
			return
		}

		var body requestBody
		if err := json.NewDecoder(r.Body).Decode(&body); err != nil {
			respondWithError(w, http.StatusBadRequest, "malformed request body")
			return
		}

		req, err := model.NewRoleRequest(
			mux.Vars(r)["project"],
			caller.RequesterID,
			body.Tier,
			body.DurationHours,
			body.Justification,
		)
		if err != nil {
			respondWithError(w, http.StatusUnprocessableEntity, err.Error())
			return
		}
		req.SourceAddress = clientAddress(r)
		req.MFAUsed = caller.MFAUsed

		session, err := vendor.RequestRole(r.Context(), req)
		if err != nil {
			respondWithVendingError(w, err)
			return
		}
		respondWithJSON(w, http.StatusCreated, session)
	}).Methods("POST")

	sessions.HandleFunc("/{session}", func(w http.ResponseWriter, r *http.Request) {
		vars := mux.Vars(r)
		view, err := vendor.GetStatus(r.Context(), vars["project"], vars["session"])
		if err != nil {
			respondWithVendingError(w, err)
			return
		}
		respondWithJSON(w, http.StatusOK, view)
	}).Methods("GET")

	sessions.HandleFunc("/{session}", func(w http.ResponseWriter, r *http.Request) {
		vars := mux.Vars(r)
		if err := vendor.Revoke(r.Context(), vars["project"], vars["session"]); err != nil {
			respondWithVendingError(w, err)
			return
		}
		respondWithJSON(w, http.StatusOK, map[string]string{
			"session_id": vars["session"],
			"status":     model.StatusRevoked.String(),
		})
	}).Methods("DELETE")

	listRouter := srv.Router.PathPrefix("/sessions").Subrouter()
	listRouter.Use(srv.Authn.Middleware)
	listRouter.HandleFunc("", func(w http.ResponseWriter, r *http.Request) {
		caller, ok := identity.FromContext(r.Context())
		if !ok {
			respondWithError(w, http.StatusUnauthorized, "no identity")
			return
		}

		var statusFilter *model.SessionStatus
		if raw := r.URL.Query().Get("status"); raw != "" {
			status, err := model.SessionStatusString(raw)
			if err != nil {
				respondWithError(w, http.StatusBadRequest, "unknown status "+raw)
				return
			}
			statusFilter = &status
		}

		views, err := vendor.ListSessions(r.Context(), caller.RequesterID, statusFilter)
		if err != nil {
			respondWithVendingError(w, err)
			return
		}
		respondWithJSON(w, http.StatusOK, map[string]interface{}{"sessions": views})
	}).Methods("GET")
}

// clientAddress prefers the last X-Forwarded-For hop, falling back to the
// connection's remote address.
func clientAddress(r *http.Request) string {
	if forwarded := r.Header.Get("X-Forwarded-For"); forwarded != "" {
		parts := strings.Split(forwarded, ",")
		if addr := strings.TrimSpace(parts[len(parts)-1]); addr != "" {
			return addr
		}
	}
	host, _, err := net.SplitHostPort(r.RemoteAddr)
	if err != nil {
		return r.RemoteAddr
	}
	return host
}
