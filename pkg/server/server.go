// Package server hosts the HTTP API in front of the vending lifecycle
// manager.
package server

import (
	"context"
	"net/http"
	"os"
	"strconv"
	"time"

	"github.com/gorilla/handlers"
	"github.com/gorilla/mux"

	"github.com/rolevend/rolevend/pkg/config"
	"github.com/rolevend/rolevend/pkg/server/middleware"
	"github.com/rolevend/rolevend/pkg/vending"
	"github.com/rolevend/rolevend/pkg/vending/store"
)

type Server struct {
	Vendor    *vending.Vendor
	Templates store.TemplateStore
	Authn     *middleware.Authenticator
	Config    config.Config
	Router    *mux.Router
	srv       *http.Server
}

func NewServer(
	vendor *vending.Vendor,
	templates store.TemplateStore,
	authn *middleware.Authenticator,
	cfg config.Config,
) *Server {
	router := mux.NewRouter().UseEncodedPath()
	srv := &http.Server{
		Handler: handlers.LoggingHandler(os.Stdout, router),
		Addr:    cfg.BindAddress + ":" + strconv.Itoa(cfg.Port),
		// Good practice: enforce timeouts for servers you create!
		WriteTimeout: 15 * time.Second,
		ReadTimeout:  15 * time.Second,
	}

	return &Server{
		Vendor:    vendor,
		Templates: templates,
		Authn:     authn,
		Config:    cfg,
		Router:    router,
		srv:       srv,
	}
}

func (s *Server) Start() error {
	return s.srv.ListenAndServe()
}

func (s *Server) Shutdown(ctx context.Context) error {
	return s.srv.Shutdown(ctx)
}
