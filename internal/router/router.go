// Package router implements spec §4.F: method dispatch to the static,
// upload, and delete handlers, plus the literal 301 redirect strings
// the upload and login-bounce paths use.
package router

import (
	"strings"

	"github.com/webserv/webserv/common"
	"github.com/webserv/webserv/internal/handlers"
)

// Router dispatches a parsed Request to the handler its method implies.
type Router struct {
	Handler *handlers.Handler
}

// New builds a Router around an already-constructed Handler.
func New(h *handlers.Handler) *Router {
	return &Router{Handler: h}
}

// Dispatch implements spec §4.F's per-method table. addr is the
// "host:port" string the connection was accepted on, used to build the
// literal redirect Location header.
func (rt *Router) Dispatch(req *common.Request, server *common.ServerConfig, addr string) *common.Response {
	switch req.Method {
	case common.MethodGet:
		if strings.HasPrefix(req.Resource, "/api/") {
			return rt.Handler.API(req)
		}
		return rt.Handler.Static(req, server)
	case common.MethodPost:
		return rt.handlePost(req, server, addr)
	case common.MethodDelete:
		return rt.handleDelete(req, server, addr)
	default:
		return rt.Handler.Error("405", server)
	}
}
