package endpoints

import (
	"encoding/json"
	"errors"
	"net/http"

	"github.com/gorilla/mux"

	"github.com/rolevend/rolevend/pkg/model"
	"github.com/rolevend/rolevend/pkg/policy"
	"github.com/rolevend/rolevend/pkg/server"
	"github.com/rolevend/rolevend/pkg/vending/store"
)

func RegisterTemplatesEndpoints(srv *server.Server) {
	templates := srv.Templates

	tmplRouter := srv.Router.PathPrefix("/templates").Subrouter()
	tmplRouter.Use(srv.Authn.Middleware)

	tmplRouter.HandleFunc("/{tier}", func(w http.ResponseWriter, r *http.Request) {
		tier, err := model.PermissionTierString(mux.Vars(r)["tier"])
		if err != nil {
			respondWithError(w, http.StatusBadRequest, err.Error())
			return
		}

		tmpl, err := templates.GetTemplate(r.Context(), tier)
		if errors.Is(err, store.ErrTemplateNotFound) {
			// Surface the compiled-in default so callers always see the
			// document that would actually be rendered.
			if fallback, ok := policy.DefaultTemplate(tier); ok {
				respondWithJSON(w, http.StatusOK, fallback)
				return
			}
			respondWithError(w, http.StatusNotFound, err.Error())
			return
		}
		if err != nil {
			respondWithError(w, http.StatusBadGateway, err.Error())
			return
		}
		respondWithJSON(w, http.StatusOK, tmpl)
	}).Methods("GET")

	tmplRouter.HandleFunc("/{tier}", func(w http.ResponseWriter, r *http.Request) {
		tier, err := model.PermissionTierString(mux.Vars(r)["tier"])
		if err != nil {
			respondWithError(w, http.StatusBadRequest, err.Error())
			return
		}

		var tmpl model.PolicyTemplate
		if err := json.NewDecoder(r.Body).Decode(&tmpl); err != nil {
			respondWithError(w, http.StatusBadRequest, "malformed request body")
			return
		}
		tmpl.Tier = tier

		// Reject structurally broken documents before they can ever be
		// rendered against a live request.
		if _, err := policy.ParseDocument(tmpl.Content); err != nil {
			respondWithError(w, http.StatusUnprocessableEntity, err.Error())
			return
		}

		if err := templates.PutTemplate(r.Context(), &tmpl); err != nil {
			respondWithError(w, http.StatusBadGateway, err.Error())
			return
		}
		respondWithJSON(w, http.StatusOK, tmpl)
	}).Methods("PUT")
}
