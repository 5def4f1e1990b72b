// Package acceptor implements spec §4.H: binding every (host, port) in
// the config, a readiness multiplexer that blocks until a listener has
// a connection waiting, and dispatch to the connection pipeline.
//
// The multiplexer itself is platform-split: acceptor_unix.go polls
// listener file descriptors with golang.org/x/sys/unix.Poll; every
// other GOOS (acceptor_portable.go) falls back to one blocking-Accept
// goroutine per listener under golang.org/x/sync/errgroup, since
// neither raw fd polling nor IOCP readiness is available portably.
package acceptor

import (
	"context"
	"fmt"
	"net"

	"github.com/webserv/webserv/common"
	"github.com/webserv/webserv/internal/conn"
	"github.com/webserv/webserv/internal/routes"
	"github.com/webserv/webserv/pkg/logger"
)

// binding pairs a bound listener with the ServerConfig it serves and
// the "host:port" string it was bound on.
type binding struct {
	listener net.Listener
	server   *common.ServerConfig
	addr     string
}

// Acceptor owns every bound listener for the process lifetime.
type Acceptor struct {
	config   *common.Config
	pipeline *conn.Pipeline
	log      logger.Logger
}

// New builds an Acceptor. cfg should already have passed
// internal/config.Validate; bindAll re-checks R1/R2 defensively anyway.
func New(cfg *common.Config, pipeline *conn.Pipeline, l logger.Logger) *Acceptor {
	return &Acceptor{config: cfg, pipeline: pipeline, log: l}
}

// getServer selects the ServerConfig whose Host equals host, per spec
// §4.H's get_server lookup. Unlike the spec's "empty placeholder"
// default, an unmatched host yields ok=false (SPEC_FULL.md §9) rather
// than an empty ServerConfig. Nothing on the accept path calls it:
// every binding already carries the ServerConfig it was bound for.
func getServer(cfg *common.Config, host string) (*common.ServerConfig, bool) {
	for i := range cfg.Servers {
		if cfg.Servers[i].Host == host {
			return &cfg.Servers[i], true
		}
	}
	return nil, false
}

// Run binds every valid ServerConfig's ports and blocks serving
// connections until ctx is canceled.
func (a *Acceptor) Run(ctx context.Context) error {
	bindings, err := a.bindAll()
	if err != nil {
		return err
	}
	defer closeAll(bindings)

	if len(bindings) == 0 {
		return fmt.Errorf("acceptor: no valid ServerConfig bound any listener")
	}
	return a.poll(ctx, bindings)
}

// bindAll binds a listener for every port of every ServerConfig passing
// R1 and R2, per spec §4.H. Binding errors are fatal for that endpoint
// (logged, endpoint skipped); a ServerConfig failing R1/R2 is skipped
// entirely.
func (a *Acceptor) bindAll() ([]binding, error) {
	var bindings []binding
	for i := range a.config.Servers {
		server := &a.config.Servers[i]
		if !routes.OkCountRedirect(server.Routes) || !routes.OkSamePort(server) {
			if a.log != nil {
				a.log.Warning("skipping server %q: fails R1/R2 invariants", server.HostName)
			}
			continue
		}
		for _, port := range server.Ports {
			addr := fmt.Sprintf("%s:%d", server.Host, port)
			l, err := net.Listen("tcp", addr)
			if err != nil {
				if a.log != nil {
					a.log.Error("bind %s: %v", addr, err)
				}
				continue
			}
			if a.log != nil {
				a.log.Info("listening on %s (%s)", addr, server.HostName)
			}
			bindings = append(bindings, binding{listener: l, server: server, addr: addr})
		}
	}
	return bindings, nil
}

func closeAll(bindings []binding) {
	for _, b := range bindings {
		b.listener.Close()
	}
}

// handle dispatches one accepted connection to the pipeline in its own
// goroutine — an explicit, spec-sanctioned elevation of spec §5's
// synchronous per-connection model (see SPEC_FULL.md §5).
func (a *Acceptor) handle(c net.Conn, b binding) {
	go a.pipeline.Handle(c, b.server, b.addr)
}
