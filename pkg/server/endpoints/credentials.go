package endpoints

import (
	"encoding/json"
	"io"
	"net/http"

	"github.com/gorilla/mux"

	"github.com/rolevend/rolevend/pkg/server"
)

type credentialsBody struct {
	SessionName string `json:"session_name,omitempty"`
}

func RegisterCredentialsEndpoints(srv *server.Server) {
	vendor := srv.Vendor

	credsRouter := srv.Router.PathPrefix("/projects/{project}/sessions/{session}/credentials").Subrouter()
	credsRouter.Use(srv.Authn.Middleware)
	credsRouter.HandleFunc("", func(w http.ResponseWriter, r *http.Request) {
		var body credentialsBody
		if err := json.NewDecoder(r.Body).Decode(&body); err != nil && err != io.EOF {
			respondWithError(w, http.StatusBadRequest, "malformed request body")
			return
		}

		vars := mux.Vars(r)
		creds, err := vendor.IssueCredentials(r.Context(), vars["project"], vars["session"], body.SessionName)
		if err != nil {
			respondWithVendingError(w, err)
			return
		}
		respondWithJSON(w, http.StatusOK, creds)
	}).Methods("POST")
}
