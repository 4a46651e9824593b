package endpoints

import (
	"net/http"

	"github.com/rolevend/rolevend/pkg/model"
	"github.com/rolevend/rolevend/pkg/server"
)

// RegisterStatusEndpoints registers the unauthenticated health endpoint and
// the tier catalog.
func RegisterStatusEndpoints(srv *server.Server) {
	srv.Router.HandleFunc("/health", func(w http.ResponseWriter, r *http.Request) {
		respondWithJSON(w, http.StatusOK, map[string]string{"status": "ok"})
	}).Methods("GET")

	srv.Router.HandleFunc("/tiers", func(w http.ResponseWriter, r *http.Request) {
		type tierInfo struct {
			Tier        model.PermissionTier `json:"tier"`
			MaxHours    float64              `json:"max_duration_hours"`
			Description string               `json:"description"`
		}
		tiers := make([]tierInfo, 0, len(model.PermissionTierValues()))
		for _, tier := range model.PermissionTierValues() {
			tiers = append(tiers, tierInfo{
				Tier:        tier,
				MaxHours:    tier.MaxDuration().Hours(),
				Description: tier.Description(),
			})
		}
		respondWithJSON(w, http.StatusOK, map[string]interface{}{"tiers": tiers})
	}).Methods("GET")
}
