package handlers

import (
	"github.com/webserv/webserv/common"
	"github.com/webserv/webserv/internal/httpmsg"
	"github.com/webserv/webserv/internal/routes"
)

// Redirection implements spec §4.E's redirection(alias, redirect_map,
// server): a self-redirect or a cycle both yield 500; otherwise it
// emits a 302 with Location: <new_alias><new_file> and no body.
func (h *Handler) Redirection(alias string, redirectMap map[string]string, server *common.ServerConfig) *common.Response {
	newAlias, newFile, ok := (&common.Route{Redirect: redirectMap}).RedirectEntry()
	if !ok {
		return h.Error("500", server)
	}
	if alias == newAlias || isCycle(alias, newAlias, server) {
		return h.Error("500", server)
	}
	resp := httpmsg.NewStatus(h.HostName, "302")
	resp.Headers["Location"] = newAlias + newFile
	return resp
}

// isCycle implements spec §4.E's is_cycle(past, new, server): the route
// matching alias "new" has its own redirect whose destination alias
// equals "past".
func isCycle(past, newAlias string, server *common.ServerConfig) bool {
	r, ok := routes.Find(server, newAlias)
	if !ok {
		return false
	}
	dest, _, ok := r.RedirectEntry()
	if !ok {
		return false
	}
	return dest == past
}
