// Package handlers implements spec §4.E: the static-page handler,
// error-page handler, JSON demo handler, CGI dispatch, redirection with
// cycle detection, and directory listing.
package handlers

import (
	"github.com/webserv/webserv/common"
	"github.com/webserv/webserv/internal/cookie"
	"github.com/webserv/webserv/pkg/logger"
)

// Handler bundles the dependencies every spec §4.E handler needs: the
// host name written into the Server header, the cookie service for
// cookie-gated routes, and a logger for diagnostics that never reach
// the client.
type Handler struct {
	HostName string
	Cookies  *cookie.Service
	Log      logger.Logger
}

// New builds a Handler whose responses carry hostName in the Server
// header; the per-request ServerConfig is passed to each handler call.
func New(hostName string, cookies *cookie.Service, l logger.Logger) *Handler {
	return &Handler{HostName: hostName, Cookies: cookies, Log: l}
}

// hasValidCookie reports whether req carries a Cookie header that
// verifies against the cookie log, per spec §4.B's single access-control
// predicate.
func (h *Handler) hasValidCookie(req *common.Request) bool {
	raw, ok := cookie.ExtractFromHeader(req)
	if !ok {
		return false
	}
	return h.Cookies.Verify(raw)
}

// HasValidCookie exports hasValidCookie for the router's DELETE and
// upload handling, which need the same cookie-gate predicate.
func (h *Handler) HasValidCookie(req *common.Request) bool {
	return h.hasValidCookie(req)
}
