package endpoints

import (
	"github.com/rolevend/rolevend/pkg/server"
)

// RegisterAll registers all API endpoints on the server
func RegisterAll(srv *server.Server) {
	RegisterSessionsEndpoints(srv)
	RegisterCredentialsEndpoints(srv)
	RegisterTemplatesEndpoints(srv)
	RegisterStatusEndpoints(srv)
}
