// Package routes implements the route-table lookups of spec §4.D: finding
// a route by alias, method/page/link membership checks, and the two
// startup-time ServerConfig validity predicates (R1, R2).
package routes

import "github.com/webserv/webserv/common"

// Find returns the first route in server whose Alias equals path, per
// spec §4.D's linear-scan, exact-string, case-sensitive lookup.
func Find(server *common.ServerConfig, path string) (*common.Route, bool) {
	for i := range server.Routes {
		if server.Routes[i].Alias == path {
			return &server.Routes[i], true
		}
	}
	return nil, false
}

// CheckMethod reports whether method is allowed by the route matching
// alias. A missing route is treated as disallowed.
func CheckMethod(server *common.ServerConfig, method, alias string) bool {
	r, ok := Find(server, alias)
	if !ok {
		return false
	}
	return r.AllowsMethod(method)
}

// IsPageFound reports whether page is listed in the route matching alias.
func IsPageFound(server *common.ServerConfig, page, alias string) bool {
	r, ok := Find(server, alias)
	if !ok {
		return false
	}
	return r.HasPage(page)
}

// FoundLinks reports whether any route in server lists url as a Link.
func FoundLinks(server *common.ServerConfig, url string) bool {
	for i := range server.Routes {
		if server.Routes[i].HasLink(url) {
			return true
		}
	}
	return false
}

// OkCountRedirect reports whether every route either has no redirect
// configured at all, or a redirect map with exactly one entry (spec
// invariant R1). A route whose redirect table was explicitly present
// but left empty (RedirectConfigured true, zero entries) is rejected
// too — Redirect's length alone cannot tell that apart from "no
// redirect configured" once TOML decoding has run.
func OkCountRedirect(rs []common.Route) bool {
	for _, r := range rs {
		if len(r.Redirect) > 1 {
			return false
		}
		if r.RedirectConfigured && len(r.Redirect) == 0 {
			return false
		}
	}
	return true
}

// OkSamePort reports whether every port in server is unique (spec
// invariant R2).
func OkSamePort(server *common.ServerConfig) bool {
	seen := make(map[int]bool, len(server.Ports))
	for _, p := range server.Ports {
		if seen[p] {
			return false
		}
		seen[p] = true
	}
	return true
}
