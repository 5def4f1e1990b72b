package router

import (
	"strings"

	"github.com/webserv/webserv/common"
	"github.com/webserv/webserv/internal/cookie"
	"github.com/webserv/webserv/internal/fsx"
	"github.com/webserv/webserv/internal/httpmsg"
	"github.com/webserv/webserv/internal/multipart"
	"github.com/webserv/webserv/internal/routes"
)

const loginAlias = "/login/"

// handlePost implements spec §4.F's POST row: path must end in "/",
// match a route allowing POST, carry a multipart/form-data body, and
// either bootstrap a session cookie (posting to "/" with none) or save
// an uploaded file once a valid cookie is presented.
func (rt *Router) handlePost(req *common.Request, server *common.ServerConfig, addr string) *common.Response {
	path := req.Resource
	if !strings.HasSuffix(path, "/") {
		return rt.Handler.Error("404", server)
	}

	alias := "/"
	if parts := strings.Split(path, "/"); len(parts) > 2 {
		alias = "/" + parts[1] + "/"
	}

	route, ok := routes.Find(server, alias)
	if !ok {
		return rt.Handler.Error("404", server)
	}
	if !route.AllowsMethod(string(common.MethodPost)) {
		return rt.Handler.Error("405", server)
	}

	contentType := req.Headers["Content-Type"]
	if !strings.HasPrefix(contentType, "multipart/form-data") {
		return rt.Handler.Error("400", server)
	}
	boundary, ok := boundaryFrom(contentType)
	if !ok {
		return rt.Handler.Error("400", server)
	}

	parts := multipart.Parse(req.RawBody, boundary)
	if len(parts) == 0 {
		return rt.Handler.Error("400", server)
	}

	cookieHeader, hasCookie := cookie.ExtractFromHeader(req)
	if !hasCookie {
		if path == "/" {
			return rt.issueSessionResponse(req, server)
		}
		return httpmsg.LiteralRedirect(addr, loginAlias)
	}
	valid := rt.Handler.Cookies.Verify(cookieHeader)

	for key, part := range parts {
		if key != "filename" {
			if rt.Handler.Log != nil {
				rt.Handler.Log.Info("form field %s=%s", part.FieldName, string(part.Value))
			}
			continue
		}
		if !valid {
			return rt.Handler.Error("403", server)
		}
		if err := fsx.WriteUpload(server.Root, part.FieldName, part.Value); err != nil {
			return rt.Handler.Error("500", server)
		}
		return httpmsg.LiteralRedirect(addr, "/")
	}

	resp := httpmsg.New(rt.Handler.HostName)
	resp.Body = "OK"
	return resp
}

// issueSessionResponse builds the normal static response for the
// current request and attaches a freshly issued session cookie to it,
// per spec §4.B.
func (rt *Router) issueSessionResponse(req *common.Request, server *common.ServerConfig) *common.Response {
	result, err := rt.Handler.Cookies.Issue()
	if err != nil {
		return rt.Handler.Error("500", server)
	}
	getReq := &common.Request{Method: common.MethodGet, Resource: req.Resource, Headers: req.Headers}
	resp := rt.Handler.Static(getReq, server)
	resp.Headers["Set-Cookie"] = cookie.SetCookieHeader(result.Signed)
	return resp
}

// boundaryFrom extracts the "boundary=" parameter from a Content-Type
// header value, per spec §4.C.
func boundaryFrom(contentType string) (string, bool) {
	idx := strings.Index(contentType, "boundary=")
	if idx < 0 {
		return "", false
	}
	b := contentType[idx+len("boundary="):]
	b = strings.Trim(b, `"`)
	if b == "" {
		return "", false
	}
	return b, true
}
