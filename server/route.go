package server

import (
	"net/http"

	"github.com/matryer/way"
	log "github.com/sirupsen/logrus"
)

func (s *Inspector) Routes() *way.Router {
	router := way.NewRouter()
	router.HandleFunc("GET", URI_BOARD, s.HandleBoard())
	router.HandleFunc("GET", URI_WATCH, s.HandleWatch())
	return router
}

// ListenAndServe serves the inspector routes; it blocks like http.ListenAndServe.
func (s *Inspector) ListenAndServe(addr string) error {
	log.Infof("Inspector listening on %s", addr)
	return http.ListenAndServe(addr, s.Routes())
}
