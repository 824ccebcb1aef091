package api

import (
	"net"
	"net/http"
	"strings"

	"github.com/andrebq/bolulista/auth"
	"github.com/andrebq/bolulista/internal/webresult"
	"github.com/andrebq/bolulista/store"
	"github.com/julienschmidt/httprouter"
)

const (
	maxFormSize = 64 << 10
)

type (
	userResponse struct {
		webresult.Result
		User *store.User `json:"user,omitempty"`
	}
)

func Mount(router *httprouter.Router, svc *auth.Service) {
	router.HandlerFunc("POST", "/auth/register", register(svc))
	router.HandlerFunc("POST", "/auth/login", login(svc))
	router.HandlerFunc("POST", "/auth/logout", logout(svc))
	router.HandlerFunc("GET", "/auth/me", me(svc))
}

func credentials(w http.ResponseWriter, r *http.Request) (auth.Credentials, error) {
	if err := webresult.ParseForm(w, r, maxFormSize); err != nil {
		return auth.Credentials{}, err
	}
	return auth.Credentials{
		Email:      r.PostFormValue("email"),
		Password:   r.PostFormValue("password"),
		ClientAddr: clientAddr(r),
	}, nil
}

// clientAddr is the host part of the connection address, proxy headers
// are ignored since any client can forge them.
func clientAddr(r *http.Request) string {
	addr := strings.TrimSpace(r.RemoteAddr)
	host, _, err := net.SplitHostPort(addr)
	if err != nil {
		return addr
	}
	return host
}

func register(svc *auth.Service) http.HandlerFunc {
	return func(w http.ResponseWriter, r *http.Request) {
		cred, err := credentials(w, r)
		if err != nil {
			webresult.Fail(r.Context(), w, err, "unable to create user")
			return
		}
		user, err := svc.Register(r.Context(), w, cred)
		if err != nil {
			webresult.Fail(r.Context(), w, err, "unable to create user")
			return
		}
		webresult.OK(w, userResponse{Result: webresult.Success, User: &user})
	}
}

func login(svc *auth.Service) http.HandlerFunc {
	return func(w http.ResponseWriter, r *http.Request) {
		cred, err := credentials(w, r)
		if err != nil {
			webresult.Fail(r.Context(), w, err, "unable to sign in")
			return
		}
		user, err := svc.Login(r.Context(), w, cred)
		if err != nil {
			webresult.Fail(r.Context(), w, err, "unable to sign in")
			return
		}
		webresult.OK(w, userResponse{Result: webresult.Success, User: &user})
	}
}

func logout(svc *auth.Service) http.HandlerFunc {
	return func(w http.ResponseWriter, r *http.Request) {
		svc.Logout(w)
		webresult.OK(w, webresult.Success)
	}
}

func me(svc *auth.Service) http.HandlerFunc {
	return func(w http.ResponseWriter, r *http.Request) {
		user, err := svc.CurrentUser(r.Context(), r)
		if err != nil {
			webresult.Fail(r.Context(), w, err, "unable to load user")
			return
		}
		webresult.OK(w, userResponse{Result: webresult.Success, User: &user})
	}
}
