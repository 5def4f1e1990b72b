package handlers

import (
	"path/filepath"

	"github.com/spf13/afero"

	"github.com/webserv/webserv/common"
	"github.com/webserv/webserv/internal/fsx"
	"github.com/webserv/webserv/internal/httpmsg"
)

const ordersEndpoint = "/api/shipping/orders"

// API implements spec §4.E's web-service handler: /api/shipping/orders
// returns the contents of <DATA_PATH>/orders.json; any other /api/ path
// is a 404.
func (h *Handler) API(req *common.Request) *common.Response {
	if req.Resource != ordersEndpoint {
		return h.Error("404", nil)
	}

	data, err := afero.ReadFile(fsx.FS, filepath.Join(fsx.DataDir(), "orders.json"))
	if err != nil {
		return h.Error("404", nil)
	}

	resp := httpmsg.New(h.HostName)
	resp.Headers["Content-Type"] = "application/json"
	resp.Body = string(data)
	return resp
}
