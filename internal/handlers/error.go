package handlers

import (
	"strings"

	"github.com/webserv/webserv/common"
	"github.com/webserv/webserv/internal/fsx"
	"github.com/webserv/webserv/internal/httpmsg"
)

// builtinErrorTemplate is used when server.ErrorPages has no custom
// template for the given code (spec §4.E).
const builtinErrorTemplate = "public/error.html"

// Error renders the error page for code: server.ErrorPages[code] if
// present, else the built-in public/error.html, substituting
// {code}/{text}/{message} from common.StatusTable.
func (h *Handler) Error(code string, server *common.ServerConfig) *common.Response {
	text, message := common.StatusFor(code)

	templatePath := builtinErrorTemplate
	if server != nil {
		if custom, ok := server.ErrorPages[code]; ok {
			templatePath = custom
		}
	}

	root := ""
	if server != nil {
		root = server.Root
	}
	body, err := fsx.LoadFile(templatePath, root)
	if err != nil {
		if h.Log != nil {
			h.Log.Error("failed to load error template %q: %v", templatePath, err)
		}
		body = []byte("<html><body><h1>{code} {text}</h1><p>{message}</p></body></html>")
	}

	rendered := substitute(string(body), map[string]string{
		"code":    code,
		"text":    text,
		"message": message,
	})

	resp := httpmsg.NewStatus(h.HostName, code)
	resp.Body = rendered
	return resp
}

// substitute replaces every {key} placeholder in tmpl with its value.
// This is deliberately string replacement, not text/template: spec.md's
// placeholders ("{code}", "{files}", ...) are not valid template actions.
func substitute(tmpl string, values map[string]string) string {
	out := tmpl
	for k, v := range values {
		out = strings.ReplaceAll(out, "{"+k+"}", v)
	}
	return out
}
