// Package webapp assembles the http surface of bolulista.
package webapp

import (
	"context"
	"net/http"

	"github.com/andrebq/bolulista/auth"
	authapi "github.com/andrebq/bolulista/auth/api"
	"github.com/andrebq/bolulista/internal/logutil"
	"github.com/andrebq/bolulista/lista"
	listaapi "github.com/andrebq/bolulista/lista/api"
	"github.com/julienschmidt/httprouter"
)

type (
	Deps struct {
		Health   Pinger
		Auth     *auth.Service
		Lista    *lista.Service
		Sessions authapi.IdentityReader
	}
)

func AsHandler(ctx context.Context, deps Deps) http.Handler {
	router := httprouter.New()
	router.HandleMethodNotAllowed = true
	router.NotFound = http.HandlerFunc(notFound)
	router.MethodNotAllowed = http.HandlerFunc(methodNotAllowed)

	realm := authapi.NewRealm(deps.Sessions)
	router.Handler("GET", "/healthcheck", Healthcheck(deps.Health))
	authapi.Mount(router, deps.Auth)
	listaapi.Mount(router, deps.Lista, realm.Protect)
	log := logutil.GetOrDefault(ctx)
	log.Debug().Msg("Routes mounted")
	return router
}
