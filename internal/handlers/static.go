package handlers

import (
	"path/filepath"
	"strings"

	"github.com/webserv/webserv/common"
	"github.com/webserv/webserv/internal/cgi"
	"github.com/webserv/webserv/internal/fsx"
	"github.com/webserv/webserv/internal/httpmsg"
	"github.com/webserv/webserv/internal/routes"
)

// Static implements spec §4.E's static-page handler: directory listing
// mode, bare-alias requests, CGI dispatch, bare-last-segment requests,
// and named-resource serving, in that order.
func (h *Handler) Static(req *common.Request, server *common.ServerConfig) *common.Response {
	paths := req.Resource
	routeParts := strings.Split(paths, "/")
	file := routeParts[len(routeParts)-1]

	if server.DirectoryListing {
		if resp := h.directoryListingMode(req, server, paths); resp != nil {
			return resp
		}
	}

	alias := routeAlias(routeParts)

	switch {
	case alias == paths:
		return h.bareAlias(req, server, alias)
	case strings.HasSuffix(file, ".php") || strings.HasSuffix(file, ".py"):
		return h.cgiDispatch(req, server, paths, routeParts)
	case file == "":
		return h.bareLastSegment(req, server, alias)
	default:
		return h.namedResource(req, server, paths, alias, file)
	}
}

// routeAlias computes "/" for the root path and for any single-segment
// path such as "/index.html", else "/<first-segment>/".
func routeAlias(routeParts []string) string {
	if len(routeParts) <= 2 {
		return "/"
	}
	return "/" + routeParts[1] + "/"
}

// directoryListingMode implements spec §4.E step 1. Returns nil to fall
// through to alias handling when the computed path does not exist.
func (h *Handler) directoryListingMode(req *common.Request, server *common.ServerConfig, paths string) *common.Response {
	if root, ok := routes.Find(server, "/"); ok && root.CheckCookie && !h.hasValidCookie(req) {
		return h.Error("401", server)
	}

	fullPath := filepath.Join(fsx.PublicDir(server.Root), paths)
	if !fsx.Exists(fullPath) {
		return nil
	}
	if fsx.IsDir(fullPath) {
		return h.dirListing(fullPath, server)
	}

	data, err := fsx.ReadPath(fullPath)
	if err != nil {
		return h.Error("404", server)
	}
	resp := httpmsg.New(h.HostName)
	resp.Body = string(data)
	return resp
}

// bareAlias implements spec §4.E step 3.
func (h *Handler) bareAlias(req *common.Request, server *common.ServerConfig, alias string) *common.Response {
	if !routes.CheckMethod(server, string(req.Method), alias) {
		return h.Error("405", server)
	}
	route, ok := routes.Find(server, alias)
	if !ok {
		if fsx.Exists(filepath.Join(server.Root, alias)) {
			return h.Error("403", server)
		}
		return h.Error("404", server)
	}
	if route.CheckCookie && !h.hasValidCookie(req) {
		return h.Error("401", server)
	}
	if len(route.Redirect) > 0 {
		return h.Redirection(alias, route.Redirect, server)
	}
	if route.DefaultPage == "" {
		return h.Error("404", server)
	}
	body, err := fsx.LoadFile(route.DefaultPage, server.Root)
	if err != nil {
		return h.Error("404", server)
	}
	resp := httpmsg.New(h.HostName)
	resp.Body = string(body)
	return resp
}

// cgiDispatch implements spec §4.E step 4.
func (h *Handler) cgiDispatch(req *common.Request, server *common.ServerConfig, paths string, routeParts []string) *common.Response {
	alias := "/"
	if len(routeParts) > 1 {
		alias = "/" + routeParts[1] + "/"
	}
	if route, ok := routes.Find(server, alias); ok && route.CheckCookie && !h.hasValidCookie(req) {
		return h.Error("401", server)
	}

	output, err := cgi.Run(server, paths)
	if err != nil || output == "" {
		return h.Error("404", server)
	}
	resp := httpmsg.New(h.HostName)
	resp.Body = output
	return resp
}

// bareLastSegment implements spec §4.E step 5.
func (h *Handler) bareLastSegment(req *common.Request, server *common.ServerConfig, alias string) *common.Response {
	if !routes.CheckMethod(server, string(req.Method), alias) {
		return h.Error("405", server)
	}
	route, ok := routes.Find(server, alias)
	if !ok {
		return h.Error("404", server)
	}
	if route.CheckCookie && !h.hasValidCookie(req) {
		return h.Error("401", server)
	}
	if len(route.Redirect) > 0 {
		return h.Redirection(alias, route.Redirect, server)
	}
	body, err := fsx.LoadDefaultFile(server.Root)
	if err != nil {
		return h.Error("404", server)
	}
	resp := httpmsg.New(h.HostName)
	resp.Body = string(body)
	return resp
}

// namedResource implements spec §4.E step 6. strippedPath is paths with
// its leading alias segment removed (the form Links entries are stored
// in); the file itself is always loaded from directly under Root by its
// last path segment, never by the full nested request path.
func (h *Handler) namedResource(req *common.Request, server *common.ServerConfig, paths, alias, file string) *common.Response {
	strippedPath := "/" + strings.Replace(paths, alias, "", 1)

	if routes.FoundLinks(server, strippedPath) {
		data, err := fsx.LoadFile("/"+file, server.Root)
		if err != nil {
			return h.Error("404", server)
		}
		resp := httpmsg.New(h.HostName)
		resp.Headers["Content-Type"] = contentType(file)
		resp.Body = string(data)
		return resp
	}

	route, ok := routes.Find(server, alias)
	if !ok {
		if fsx.Exists(filepath.Join(server.Root, paths)) {
			return h.Error("403", server)
		}
		return h.Error("404", server)
	}
	if route.CheckCookie && !h.hasValidCookie(req) {
		return h.Error("401", server)
	}
	if !route.AllowsMethod(string(req.Method)) {
		return h.Error("405", server)
	}
	if !route.HasPage(file) {
		return h.Error("404", server)
	}
	if len(route.Redirect) > 0 {
		return h.Redirection(alias, route.Redirect, server)
	}
	data, err := fsx.LoadFile("/"+file, server.Root)
	if err != nil {
		return h.Error("404", server)
	}
	resp := httpmsg.New(h.HostName)
	resp.Headers["Content-Type"] = contentType(file)
	resp.Body = string(data)
	return resp
}

// contentType maps a file name's extension to the handful of types
// spec §4.E names explicitly; everything else serves as text/html.
func contentType(file string) string {
	switch {
	case strings.HasSuffix(file, ".css"):
		return "text/css"
	case strings.HasSuffix(file, ".js"):
		return "text/javascript"
	default:
		return "text/html"
	}
}
