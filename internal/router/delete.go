package router

import (
	"path/filepath"
	"strings"

	"github.com/webserv/webserv/common"
	"github.com/webserv/webserv/internal/fsx"
	"github.com/webserv/webserv/internal/httpmsg"
	"github.com/webserv/webserv/internal/routes"
)

// handleDelete implements spec §4.F's DELETE row: resolve the route from
// the first path segment, cookie-gate, unlink the file named by the
// last segment, and either redirect (if the route has one) or respond
// with the literal "File Deleted" body.
func (rt *Router) handleDelete(req *common.Request, server *common.ServerConfig, addr string) *common.Response {
	parts := strings.Split(req.Resource, "/")
	if len(parts) < 2 || parts[1] == "" {
		return rt.Handler.Error("404", server)
	}
	alias := "/" + parts[1] + "/"

	route, ok := routes.Find(server, alias)
	if !ok {
		return rt.Handler.Error("404", server)
	}
	if !route.AllowsMethod(string(common.MethodDelete)) {
		return rt.Handler.Error("405", server)
	}
	if !rt.Handler.HasValidCookie(req) {
		return rt.Handler.Error("401", server)
	}

	last := parts[len(parts)-1]
	target := filepath.Join(server.Root, last)
	if err := fsx.Remove(target); err != nil {
		return rt.Handler.Error("404", server)
	}

	if len(route.Redirect) > 0 {
		return rt.Handler.Redirection(alias, route.Redirect, server)
	}

	resp := httpmsg.New(rt.Handler.HostName)
	resp.Body = "File Deleted"
	return resp
}
