package handlers

import (
	"fmt"
	"strings"

	"github.com/dustin/go-humanize"

	"github.com/webserv/webserv/common"
	"github.com/webserv/webserv/internal/fsx"
	"github.com/webserv/webserv/internal/httpmsg"
)

const dirListingTemplate = "dir.html"

// dirListing renders fullPath's contents into the dir.html template,
// substituting {files} with an <li> per entry, directories suffixed
// with "/", per spec §4.E's list_directory_contents.
func (h *Handler) dirListing(fullPath string, server *common.ServerConfig) *common.Response {
	entries, err := fsx.ListDirectory(fullPath)
	if err != nil {
		return h.Error("404", server)
	}

	tmpl, err := fsx.LoadFile(dirListingTemplate, server.Root)
	if err != nil {
		if h.Log != nil {
			h.Log.Error("failed to load dir listing template: %v", err)
		}
		tmpl = []byte("<html><body><ul>{files}</ul></body></html>")
	}

	var items strings.Builder
	for _, e := range entries {
		name := e.Name
		if e.IsDir {
			name += "/"
			fmt.Fprintf(&items, "<li><a href=\"%s\">%s</a></li>", name, name)
			continue
		}
		fmt.Fprintf(&items, "<li><a href=\"%s\">%s</a> (%s)</li>", name, name, humanize.Bytes(uint64(e.Size)))
	}

	rendered := substitute(string(tmpl), map[string]string{"files": items.String()})
	resp := httpmsg.New(h.HostName)
	resp.Body = rendered
	return resp
}
